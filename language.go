package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrOverlappingExtension is returned when two entries claim the same extension.
var ErrOverlappingExtension = errors.New("extension claimed by more than one language")

// LanguageEntry maps a set of file extensions to the label used on the fence.
type LanguageEntry struct {
	Label      string   `yaml:"label"`
	Extensions []string `yaml:"extensions"` // With the leading dot, e.g. ".py"
}

// LanguageTable is an ordered, immutable list of language entries.
// The first entry containing an extension wins.
type LanguageTable struct {
	entries []LanguageEntry
}

// NewLanguageTable validates entries and returns a table over a private copy.
// Extensions are compared case-insensitively.
func NewLanguageTable(entries []LanguageEntry) (*LanguageTable, error) {
	claimed := make(map[string]string)
	copied := make([]LanguageEntry, 0, len(entries))

	for _, e := range entries {
		if e.Label == "" {
			return nil, fmt.Errorf("language entry with extensions %v has no label", e.Extensions)
		}
		exts := make([]string, 0, len(e.Extensions))
		for _, ext := range e.Extensions {
			ext = normalizeExt(ext)
			if ext == "" {
				continue
			}
			if owner, ok := claimed[ext]; ok && owner != e.Label {
				return nil, fmt.Errorf("%w: %s is mapped to both %s and %s", ErrOverlappingExtension, ext, owner, e.Label)
			}
			claimed[ext] = e.Label
			exts = append(exts, ext)
		}
		copied = append(copied, LanguageEntry{Label: e.Label, Extensions: exts})
	}
	return &LanguageTable{entries: copied}, nil
}

// DefaultLanguages returns the built-in table.
func DefaultLanguages() *LanguageTable {
	t, err := NewLanguageTable(defaultLanguageEntries)
	if err != nil {
		panic(err) // static table
	}
	return t
}

var defaultLanguageEntries = []LanguageEntry{
	{Label: "python", Extensions: []string{".py", ".pyi"}},
	{Label: "julia", Extensions: []string{".jl"}},
	{Label: "java", Extensions: []string{".java"}},
	{Label: "r", Extensions: []string{".r"}},
	{Label: "typescript", Extensions: []string{".ts", ".tsx"}},
	{Label: "javascript", Extensions: []string{".js", ".jsx", ".mjs", ".cjs"}},
	{Label: "go", Extensions: []string{".go"}},
	{Label: "rust", Extensions: []string{".rs"}},
	{Label: "c", Extensions: []string{".c", ".h"}},
	{Label: "cpp", Extensions: []string{".cc", ".cpp", ".cxx", ".hpp"}},
	{Label: "csharp", Extensions: []string{".cs"}},
	{Label: "kotlin", Extensions: []string{".kt", ".kts"}},
	{Label: "scala", Extensions: []string{".scala"}},
	{Label: "ruby", Extensions: []string{".rb"}},
	{Label: "php", Extensions: []string{".php"}},
	{Label: "swift", Extensions: []string{".swift"}},
	{Label: "bash", Extensions: []string{".sh", ".bash"}},
	{Label: "sql", Extensions: []string{".sql"}},
}

// Classify returns the label for filename, or false if no entry claims its extension.
func (t *LanguageTable) Classify(filename string) (string, bool) {
	if t == nil {
		return "", false
	}
	ext := normalizeExt(filepath.Ext(filename))
	if ext == "" {
		return "", false
	}
	for _, e := range t.entries {
		for _, candidate := range e.Extensions {
			if candidate == ext {
				return e.Label, true
			}
		}
	}
	return "", false
}

// Only returns a table restricted to the given labels, keeping table order.
// Unknown labels are an error.
func (t *LanguageTable) Only(labels ...string) (*LanguageTable, error) {
	if len(labels) == 0 {
		return t, nil
	}
	want := make(map[string]bool, len(labels))
	for _, l := range labels {
		want[strings.ToLower(strings.TrimSpace(l))] = false
	}

	var kept []LanguageEntry
	for _, e := range t.entries {
		if _, ok := want[strings.ToLower(e.Label)]; ok {
			want[strings.ToLower(e.Label)] = true
			kept = append(kept, e)
		}
	}
	for _, l := range labels {
		if !want[strings.ToLower(strings.TrimSpace(l))] {
			return nil, fmt.Errorf("unknown language %q", l)
		}
	}
	return &LanguageTable{entries: kept}, nil
}

// Labels lists the labels in table order.
func (t *LanguageTable) Labels() []string {
	labels := make([]string, len(t.entries))
	for i, e := range t.entries {
		labels[i] = e.Label
	}
	return labels
}

// LoadLanguageTable reads an ordered YAML list of entries, e.g.
//
//	- label: python
//	  extensions: [".py"]
func LoadLanguageTable(path string) (*LanguageTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading language file %s: %w", path, err)
	}

	var entries []LanguageEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("error parsing language file %s: %w", path, err)
	}

	t, err := NewLanguageTable(entries)
	if err != nil {
		return nil, fmt.Errorf("language file %s: %w", path, err)
	}
	return t, nil
}

// normalizeExt lowercases ext and makes sure it carries its leading dot.
func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" || ext == "." {
		return ""
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
