package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/atotto/clipboard"
)

// Node represents an entry in the directory tree view.
type Node struct {
	Name     string
	IsDir    bool
	Children []*Node
}

// buildTree turns the relative paths of included files into a tree rooted at rootName.
func buildTree(files []string, rootName string) *Node {
	root := &Node{Name: rootName, IsDir: true}
	dirs := map[string]*Node{"": root}

	for _, file := range files {
		parts := strings.Split(filepath.ToSlash(file), "/")
		parent := root
		for i, part := range parts {
			if i == len(parts)-1 {
				parent.Children = append(parent.Children, &Node{Name: part})
				break
			}
			key := strings.Join(parts[:i+1], "/")
			dir, ok := dirs[key]
			if !ok {
				dir = &Node{Name: part, IsDir: true}
				dirs[key] = dir
				parent.Children = append(parent.Children, dir)
			}
			parent = dir
		}
	}

	sortChildren(root)
	return root
}

// sortChildren recursively sorts the children of a node alphabetically.
func sortChildren(node *Node) {
	if !node.IsDir || len(node.Children) == 0 {
		return
	}
	sort.Slice(node.Children, func(i, j int) bool {
		return node.Children[i].Name < node.Children[j].Name
	})
	for _, child := range node.Children {
		sortChildren(child)
	}
}

// printTree generates the string representation of the tree.
func printTree(root *Node) string {
	var builder strings.Builder
	builder.WriteString(root.Name)
	builder.WriteString("\n")
	printNode(&builder, root.Children, "")
	return builder.String()
}

func printNode(builder *strings.Builder, children []*Node, prefix string) {
	for i, node := range children {
		connector := "├── "
		newPrefix := prefix + "│   "
		if i == len(children)-1 {
			connector = "└── "
			newPrefix = prefix + "    "
		}

		builder.WriteString(prefix)
		builder.WriteString(connector)
		builder.WriteString(node.Name)
		builder.WriteString("\n")

		if node.IsDir && len(node.Children) > 0 {
			printNode(builder, node.Children, newPrefix)
		}
	}
}

// capWarnings returns the user-facing warnings for the caps that were hit.
func capWarnings(r *CollectionResult) []string {
	var warnings []string
	if r.ReachedMaxFiles {
		warnings = append(warnings, fmt.Sprintf("File limit reached (%d files). Some files were skipped.", r.ProcessedFiles))
	}
	if r.ReachedMaxLines {
		warnings = append(warnings, fmt.Sprintf("Line limit reached (%d lines). Some files were skipped.", r.TotalLines))
	}
	return warnings
}

// composeOutput builds the text handed to the destination.
func composeOutput(r *CollectionResult, rootName string, withTree bool) string {
	if !withTree {
		return r.Output
	}
	return printTree(buildTree(r.Files, rootName)) + "\n" + r.Output
}

// summaryLine describes what was collected, e.g. "8 files (412 lines)".
func summaryLine(r *CollectionResult, tokens int) string {
	s := fmt.Sprintf("%d files (%d lines)", r.ProcessedFiles, r.TotalLines)
	if tokens > 0 {
		s += fmt.Sprintf(", ~%d tokens", tokens)
	}
	return s
}

// destination selects where delivered text goes.
type destination struct {
	file      string
	print     bool
	clipboard func(string) error
}

// deliver writes text to the chosen destination and reports on status.
// The clipboard is the default; if it fails the text goes to stdout instead.
func deliver(text, summary string, dest destination, stdout, status io.Writer) error {
	switch {
	case dest.file != "":
		if err := os.WriteFile(dest.file, []byte(text), 0644); err != nil {
			return fmt.Errorf("error writing to file %s: %w", dest.file, err)
		}
		fmt.Fprintf(status, "Saved %s to %s\n", summary, dest.file)
	case dest.print:
		fmt.Fprintln(stdout, text)
	default:
		write := dest.clipboard
		if write == nil {
			write = clipboard.WriteAll
		}
		if err := write(text); err != nil {
			fmt.Fprintf(status, "Error writing to clipboard: %v\n", err)
			fmt.Fprintln(stdout, text)
			return nil
		}
		fmt.Fprintf(status, "Copied %s to clipboard as markdown!\n", summary)
	}
	return nil
}
