package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	fuzzyfinder "github.com/ktr0731/go-fuzzyfinder"
)

// candidateDirs lists base and every directory beneath it that the ignore set
// does not exclude.
func candidateDirs(base string, ignoreDirs map[string]struct{}) ([]string, error) {
	var dirs []string
	err := filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() && path != base {
				return fs.SkipDir
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if _, ok := ignoreDirs[d.Name()]; ok && path != base {
			return fs.SkipDir
		}
		dirs = append(dirs, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error scanning for directories: %w", err)
	}
	return dirs, nil
}

// pickRoot lets the user choose the directory to collect. An empty path with a
// nil error means the user aborted.
func pickRoot(base string, ignoreDirs map[string]struct{}) (string, error) {
	candidates, err := candidateDirs(base, ignoreDirs)
	if err != nil {
		return "", err
	}

	idx, err := fuzzyfinder.Find(
		candidates,
		func(i int) string { return candidates[i] },
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return "Select the directory to copy. Enter to confirm, Esc to abort."
			}
			entries, err := os.ReadDir(candidates[i])
			if err != nil {
				return fmt.Sprintf("Path: %s\nError listing: %v", candidates[i], err)
			}
			preview := fmt.Sprintf("Path: %s\nEntries: %d\n", candidates[i], len(entries))
			for _, e := range entries {
				preview += "  " + e.Name() + "\n"
			}
			return preview
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return "", nil
		}
		return "", fmt.Errorf("fuzzy finder error: %w", err)
	}
	return candidates[idx], nil
}
