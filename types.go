package main

import "strings"

// EntryKind tells files and directories apart at the FileSystem boundary.
type EntryKind int

const (
	KindFile EntryKind = iota
	KindDirectory
)

// DirEntry is one immediate child of a listed directory.
type DirEntry struct {
	Name string
	Kind EntryKind
}

// Diagnostic records a non-fatal problem met during traversal.
type Diagnostic struct {
	Path string
	Err  error
}

// CollectionResult holds everything gathered by one Collect call.
// It is owned by the caller once Collect returns.
type CollectionResult struct {
	Output          string   // Rendered blocks joined in traversal order
	Files           []string // Relative paths of included files, traversal order
	ProcessedFiles  int
	TotalLines      int
	ReachedMaxFiles bool
	ReachedMaxLines bool
	Diagnostics     []Diagnostic

	blocks []string
}

// Truncated reports whether either cap stopped the traversal early.
func (r *CollectionResult) Truncated() bool {
	return r.ReachedMaxFiles || r.ReachedMaxLines
}

func (r *CollectionResult) finalize() {
	r.Output = strings.Join(r.blocks, "\n")
	r.blocks = nil
}

// haltReason is a bit set of the caps that stopped a traversal.
type haltReason uint8

const (
	haltMaxFiles haltReason = 1 << iota
	haltMaxLines
)

// outcome is returned by every step of the walk. A halted outcome must be
// returned unchanged by every enclosing call.
type outcome struct {
	halted bool
	reason haltReason
}

var proceed = outcome{}

func halt(reason haltReason) outcome {
	return outcome{halted: true, reason: reason}
}
