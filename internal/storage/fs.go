// Package storage provides the file system primitives used to load rule
// files and apply planned writes.
package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// FS is the local file system. Paths are used as given, callers pass
// absolute paths.
type FS struct{}

// New returns the local file system.
func New() *FS {
	return &FS{}
}

// IsDir reports whether path exists and is a directory. Symlinks are followed.
func (FS) IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// Exists reports whether anything exists at path.
func (FS) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Subdirs returns the names of directories directly under dir, sorted.
func (f FS) Subdirs(dir string) ([]string, error) {
	return f.list(dir, true)
}

// Files returns the names of non-directory entries directly under dir, sorted.
func (f FS) Files(dir string) ([]string, error) {
	return f.list(dir, false)
}

func (FS) list(dir string, wantDirs bool) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("storage: list %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		info, err := os.Stat(filepath.Join(dir, e.Name()))
		if err != nil {
			// dangling symlink
			continue
		}
		if info.IsDir() == wantDirs {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// ReadFile returns the content of path. found is false when the file does
// not exist, which is not an error.
func (FS) ReadFile(path string) (content string, found bool, err error) {
	// #nosec G304 - paths come from the project's rule layout
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("storage: read %s: %w", path, err)
	}
	return string(data), true, nil
}

// WriteFile creates parent directories and replaces path atomically:
// temp file in the same directory, fsync, rename.
func (FS) WriteFile(path, content string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("storage: mkdir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".ruleport-tmp-*")
	if err != nil {
		return fmt.Errorf("storage: create temp: %w", err)
	}
	tmpName := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.WriteString(content); err != nil {
		return fmt.Errorf("storage: write temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("storage: fsync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("storage: close temp: %w", err)
	}
	// #nosec G302 - rule files are meant to be readable by editors and other tools
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("storage: chmod: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("storage: rename: %w", err)
	}
	success = true
	return nil
}
