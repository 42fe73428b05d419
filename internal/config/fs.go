package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileSystem is the set of file primitives the Store needs.
type FileSystem interface {
	Exists(path string) bool
	ReadText(path string) (string, error)
	WriteText(path, text string) error
	EnsureDirectory(path string) error
}

// OSFileSystem implements FileSystem on the local disk.
type OSFileSystem struct{}

var _ FileSystem = OSFileSystem{}

// Exists reports false only when the path is known to be absent. Other stat
// errors report true so that the following read surfaces them.
func (OSFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, fs.ErrNotExist)
}

func (OSFileSystem) ReadText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// WriteText replaces the file through a temp file and a rename, so a failure
// leaves any previous content untouched. The file may hold a token and is
// created owner-only.
func (OSFileSystem) WriteText(path, text string) error {
	return atomicWriteFile(path, []byte(text), 0600)
}

func (OSFileSystem) EnsureDirectory(path string) error {
	return os.MkdirAll(path, 0755)
}

func atomicWriteFile(path string, data []byte, perm os.FileMode) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if err = tmp.Chmod(perm); err != nil {
		return fmt.Errorf("failed to set temp file permissions: %w", err)
	}
	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err = os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}
