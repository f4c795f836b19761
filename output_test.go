package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintTree(t *testing.T) {
	files := []string{
		filepath.Join("src", "main.py"),
		"setup.py",
		filepath.Join("src", "util", "io.py"),
		filepath.Join("src", "app.py"),
	}

	want := "project\n" +
		"├── setup.py\n" +
		"└── src\n" +
		"    ├── app.py\n" +
		"    ├── main.py\n" +
		"    └── util\n" +
		"        └── io.py\n"
	assert.Equal(t, want, printTree(buildTree(files, "project")))
}

func TestCapWarnings(t *testing.T) {
	assert.Empty(t, capWarnings(&CollectionResult{ProcessedFiles: 3}))

	r := &CollectionResult{ProcessedFiles: 50, TotalLines: 4990, ReachedMaxFiles: true, ReachedMaxLines: true}
	assert.Equal(t, []string{
		"File limit reached (50 files). Some files were skipped.",
		"Line limit reached (4990 lines). Some files were skipped.",
	}, capWarnings(r))
}

func TestComposeOutput(t *testing.T) {
	r := &CollectionResult{Output: "File: a.py\n```python\na\n```\n", Files: []string{"a.py"}}

	assert.Equal(t, r.Output, composeOutput(r, "root", false))
	assert.Equal(t, "root\n└── a.py\n\n"+r.Output, composeOutput(r, "root", true))
}

func TestSummaryLine(t *testing.T) {
	r := &CollectionResult{ProcessedFiles: 2, TotalLines: 5}
	assert.Equal(t, "2 files (5 lines)", summaryLine(r, 0))
	assert.Equal(t, "2 files (5 lines), ~40 tokens", summaryLine(r, 40))
}

func TestDeliver(t *testing.T) {
	t.Run("clipboard", func(t *testing.T) {
		var copied string
		var stdout, status bytes.Buffer
		dest := destination{clipboard: func(s string) error { copied = s; return nil }}

		require.NoError(t, deliver("text", "1 files (1 lines)", dest, &stdout, &status))
		assert.Equal(t, "text", copied)
		assert.Empty(t, stdout.String())
		assert.Equal(t, "Copied 1 files (1 lines) to clipboard as markdown!\n", status.String())
	})

	t.Run("clipboard failure falls back to stdout", func(t *testing.T) {
		var stdout, status bytes.Buffer
		dest := destination{clipboard: func(string) error { return errors.New("no display") }}

		require.NoError(t, deliver("text", "s", dest, &stdout, &status))
		assert.Equal(t, "text\n", stdout.String())
		assert.Contains(t, status.String(), "no display")
	})

	t.Run("print", func(t *testing.T) {
		var stdout, status bytes.Buffer
		require.NoError(t, deliver("text", "s", destination{print: true}, &stdout, &status))
		assert.Equal(t, "text\n", stdout.String())
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.md")
		var stdout, status bytes.Buffer

		require.NoError(t, deliver("text", "s", destination{file: path}, &stdout, &status))
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "text", string(data))
		assert.Empty(t, stdout.String())
	})

	t.Run("unwritable file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing", "out.md")
		var stdout, status bytes.Buffer
		assert.Error(t, deliver("text", "s", destination{file: path}, &stdout, &status))
	})
}
