package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	gitignore "github.com/monochromegane/go-gitignore"
)

// PathFilter decides which paths a traversal skips.
type PathFilter struct {
	ignoreDirs map[string]struct{}
	patterns   []string // slash-separated
	gitignore  gitignore.IgnoreMatcher
}

// NewPathFilter builds a filter from cfg. When cfg.RespectGitignore is set and
// root holds a .gitignore, its rules are applied on top of the configured ones.
func NewPathFilter(cfg Config, root string) (*PathFilter, error) {
	f := &PathFilter{ignoreDirs: cfg.IgnoreDirs}
	for _, p := range cfg.IgnorePatterns {
		f.patterns = append(f.patterns, filepath.ToSlash(p))
	}

	if cfg.RespectGitignore {
		path := filepath.Join(root, ".gitignore")
		if _, err := os.Stat(path); err == nil {
			matcher, err := gitignore.NewGitIgnore(path, root)
			if err != nil {
				return nil, fmt.Errorf("could not parse .gitignore file %s: %w", path, err)
			}
			f.gitignore = matcher
		}
	}
	return f, nil
}

// ShouldExclude reports whether relPath (relative to basePath) is skipped.
// A directory name in the ignore set excludes everything beneath it.
func (f *PathFilter) ShouldExclude(relPath, basePath string, isDir bool) bool {
	for _, part := range strings.Split(relPath, string(filepath.Separator)) {
		if _, ok := f.ignoreDirs[part]; ok {
			return true
		}
	}

	fullPath := filepath.Join(basePath, relPath)
	if matchesAnyPattern(filepath.ToSlash(fullPath), f.patterns) {
		return true
	}

	return f.gitignore != nil && f.gitignore.Match(fullPath, isDir)
}

// matchesAnyPattern checks name against each pattern in order. Patterns are
// validated with the Config, so a match error only means "no match".
func matchesAnyPattern(name string, patterns []string) bool {
	for _, pattern := range patterns {
		if matched, err := doublestar.Match(pattern, name); err == nil && matched {
			return true
		}
	}
	return false
}
