package main

import (
	"io/fs"

	"github.com/spf13/afero"
)

// FileSystem is everything the collector needs from the host.
type FileSystem interface {
	// ReadDir lists the immediate children of path, sorted by name. Entries
	// that are neither regular files nor directories are left out.
	ReadDir(path string) ([]DirEntry, error)
	ReadFile(path string) ([]byte, error)
	Stat(path string) (fs.FileInfo, error)
}

// aferoFS adapts an afero.Fs to FileSystem.
type aferoFS struct {
	fs afero.Fs
}

// NewFileSystem wraps fsys; a nil fsys means the local disk.
func NewFileSystem(fsys afero.Fs) FileSystem {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	return aferoFS{fs: fsys}
}

func (a aferoFS) ReadDir(path string) ([]DirEntry, error) {
	infos, err := afero.ReadDir(a.fs, path)
	if err != nil {
		return nil, err
	}

	entries := make([]DirEntry, 0, len(infos))
	for _, info := range infos {
		switch {
		case info.IsDir():
			entries = append(entries, DirEntry{Name: info.Name(), Kind: KindDirectory})
		case info.Mode().IsRegular():
			entries = append(entries, DirEntry{Name: info.Name(), Kind: KindFile})
		}
	}
	return entries, nil
}

func (a aferoFS) ReadFile(path string) ([]byte, error) {
	return afero.ReadFile(a.fs, path)
}

func (a aferoFS) Stat(path string) (fs.FileInfo, error) {
	return a.fs.Stat(path)
}
