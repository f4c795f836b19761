package main

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

var (
	ErrRootNotFound     = errors.New("root path not found")
	ErrRootNotDirectory = errors.New("root path is not a directory")
)

// Collector walks one directory tree and renders the files it keeps.
// It is single-threaded; a Collector may be reused for several roots.
type Collector struct {
	cfg    Config
	fsys   FileSystem
	langs  *LanguageTable
	logger *zap.Logger
}

// NewCollector validates cfg and returns a Collector. A nil fsys means the
// local disk, a nil logger discards diagnostics.
func NewCollector(cfg Config, fsys FileSystem, langs *LanguageTable, logger *zap.Logger) (*Collector, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if fsys == nil {
		fsys = NewFileSystem(nil)
	}
	if langs == nil {
		langs = DefaultLanguages()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Collector{cfg: cfg, fsys: fsys, langs: langs, logger: logger}, nil
}

// walk carries the state of a single Collect call.
type walk struct {
	*Collector
	root   string
	filter *PathFilter
	result *CollectionResult
}

// Collect walks root depth-first and returns the rendered result. Only a
// missing or non-directory root is an error; unreadable subdirectories and
// files end up in the result's Diagnostics.
func (c *Collector) Collect(root string) (*CollectionResult, error) {
	info, err := c.fsys.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrRootNotFound, root)
		}
		return nil, fmt.Errorf("error accessing path %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrRootNotDirectory, root)
	}

	filter, err := NewPathFilter(c.cfg, root)
	if err != nil {
		return nil, err
	}

	w := &walk{Collector: c, root: root, filter: filter, result: &CollectionResult{}}
	c.logger.Debug("Starting collection",
		zap.String("root", root),
		zap.Int("maxFiles", c.cfg.MaxFiles),
		zap.Int("maxTotalLines", c.cfg.MaxTotalLines))

	if out := w.directory(root); out.halted {
		c.logger.Debug("Collection halted by cap",
			zap.Bool("maxFiles", out.reason&haltMaxFiles != 0),
			zap.Bool("maxLines", out.reason&haltMaxLines != 0))
	}

	w.result.finalize()
	c.logger.Debug("Completed collection",
		zap.Int("files", w.result.ProcessedFiles),
		zap.Int("lines", w.result.TotalLines),
		zap.Int("diagnostics", len(w.result.Diagnostics)))
	return w.result, nil
}

// directory visits the entries of dir in listing order.
func (w *walk) directory(dir string) outcome {
	entries, err := w.fsys.ReadDir(dir)
	if err != nil {
		w.diagnose(dir, "Error listing directory", err)
		return proceed
	}

	for _, entry := range entries {
		if out := w.capReached(); out.halted {
			return out
		}

		path := filepath.Join(dir, entry.Name)
		relPath, err := filepath.Rel(w.root, path)
		if err != nil {
			w.diagnose(path, "Error computing relative path", err)
			continue
		}

		isDir := entry.Kind == KindDirectory
		if w.filter.ShouldExclude(relPath, w.root, isDir) {
			w.logger.Debug("Skipping excluded path", zap.String("path", relPath))
			continue
		}

		var out outcome
		if isDir {
			out = w.directory(path)
		} else {
			out = w.file(path, relPath, entry.Name)
		}
		if out.halted {
			return out
		}
	}
	return proceed
}

// capReached halts once either running counter has hit its cap.
func (w *walk) capReached() outcome {
	var reason haltReason
	if w.result.ProcessedFiles >= w.cfg.MaxFiles {
		reason |= haltMaxFiles
		w.result.ReachedMaxFiles = true
	}
	if w.result.TotalLines >= w.cfg.MaxTotalLines {
		reason |= haltMaxLines
		w.result.ReachedMaxLines = true
	}
	if reason == 0 {
		return proceed
	}
	return halt(reason)
}

// file classifies, reads and appends one file. A file that would push the
// line total over the cap is dropped whole and halts the walk.
func (w *walk) file(path, relPath, name string) outcome {
	label, ok := w.langs.Classify(name)
	if !ok {
		return proceed
	}

	data, err := w.fsys.ReadFile(path)
	if err != nil {
		w.diagnose(path, "Error reading file", err)
		return proceed
	}

	content := string(data)
	lines := countLines(content)
	if w.result.TotalLines+lines > w.cfg.MaxTotalLines {
		w.logger.Debug("Dropping file over line cap",
			zap.String("path", relPath),
			zap.Int("lines", lines),
			zap.Int("totalLines", w.result.TotalLines))
		w.result.ReachedMaxLines = true
		return halt(haltMaxLines)
	}

	w.result.blocks = append(w.result.blocks, renderBlock(relPath, label, content))
	w.result.Files = append(w.result.Files, relPath)
	w.result.ProcessedFiles++
	w.result.TotalLines += lines
	return proceed
}

func (w *walk) diagnose(path, msg string, err error) {
	w.logger.Warn(msg, zap.String("path", path), zap.Error(err))
	w.result.Diagnostics = append(w.result.Diagnostics, Diagnostic{Path: path, Err: err})
}

// countLines counts newline-delimited segments, so "a\n" is two lines and an
// empty file is one.
func countLines(content string) int {
	return strings.Count(content, "\n") + 1
}

// renderBlock formats one included file as a fenced markdown block.
func renderBlock(relPath, label, content string) string {
	var b strings.Builder
	b.Grow(len(relPath) + len(label) + len(content) + 16)
	b.WriteString("File: ")
	b.WriteString(relPath)
	b.WriteString("\n```")
	b.WriteString(label)
	b.WriteString("\n")
	b.WriteString(content)
	b.WriteString("\n```\n")
	return b.String()
}
