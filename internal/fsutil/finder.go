// Package fsutil provides file system utility functions.
package fsutil

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/afero"
)

// FindFiles recursively searches root for regular files accepted by keep.
// Paths are slash separated, relative to the file system root, and sorted.
// A missing root yields no files.
func FindFiles(fsys afero.Fs, root string, keep func(path string) bool) ([]string, error) {
	if keep == nil {
		panic("keep filter must not be nil")
	}

	exists, err := afero.DirExists(fsys, root)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, nil
	}

	var files []string
	err = afero.Walk(fsys, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		path = filepath.ToSlash(path)
		if keep(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}
