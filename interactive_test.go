package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCandidateDirs(t *testing.T) {
	root := writeTree(t, map[string]string{
		"src/app/main.py":       "x",
		"node_modules/pkg/a.js": "x",
		"docs/readme.txt":       "x",
	})

	dirs, err := candidateDirs(root, dirSet([]string{"node_modules"}))
	require.NoError(t, err)

	assert.Equal(t, []string{
		root,
		filepath.Join(root, "docs"),
		filepath.Join(root, "src"),
		filepath.Join(root, "src", "app"),
	}, dirs)
}
