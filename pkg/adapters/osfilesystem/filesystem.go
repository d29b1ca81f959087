// Package osfilesystem provides a filesystem implementation using the os package.
package osfilesystem

import (
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/user/bytereel/pkg/ports"
)

// FileSystem implements ports.FileSystem using the os package.
type FileSystem struct{}

// New creates a new FileSystem.
func New() *FileSystem {
	return &FileSystem{}
}

// ReadFile reads the entire contents of a file.
func (fs *FileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// WriteFile writes data to a file, creating parent directories as needed.
func (fs *FileSystem) WriteFile(path string, data []byte) error {
	if err := ensureParent(path); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// MkdirAll creates a directory and all parent directories.
func (fs *FileSystem) MkdirAll(path string) error {
	return os.MkdirAll(path, 0755)
}

// Exists checks if a file or directory exists.
func (fs *FileSystem) Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// Remove deletes a file or directory tree.
func (fs *FileSystem) Remove(path string) error {
	return os.RemoveAll(path)
}

// Rename moves a file, replacing the destination.
func (fs *FileSystem) Rename(oldPath, newPath string) error {
	if err := ensureParent(newPath); err != nil {
		return err
	}
	return os.Rename(oldPath, newPath)
}

// List returns the sorted entry names of dir.
func (fs *FileSystem) List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// Create opens path for writing, creating parent directories as needed.
func (fs *FileSystem) Create(path string) (io.WriteCloser, error) {
	if err := ensureParent(path); err != nil {
		return nil, err
	}
	return os.Create(path)
}

// Open opens path for reading.
func (fs *FileSystem) Open(path string) (io.ReadCloser, error) {
	return os.Open(path)
}

// Size returns the size of a file in bytes.
func (fs *FileSystem) Size(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

func ensureParent(path string) error {
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0755)
}

// Ensure FileSystem implements ports.FileSystem
var _ ports.FileSystem = (*FileSystem)(nil)
