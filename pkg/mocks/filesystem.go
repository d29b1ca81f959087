package mocks

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/user/bytereel/pkg/ports"
)

// FileSystem is an in-memory implementation of ports.FileSystem.
type FileSystem struct {
	mu    sync.RWMutex
	files map[string][]byte
	dirs  map[string]bool

	ReadFileFunc  func(path string) ([]byte, error)
	WriteFileFunc func(path string, data []byte) error
	MkdirAllFunc  func(path string) error
	ExistsFunc    func(path string) (bool, error)
	RemoveFunc    func(path string) error
	RenameFunc    func(oldPath, newPath string) error
}

// NewFileSystem creates a new mock FileSystem.
func NewFileSystem() *FileSystem {
	return &FileSystem{
		files: make(map[string][]byte),
		dirs:  make(map[string]bool),
	}
}

func (m *FileSystem) ReadFile(path string) ([]byte, error) {
	if m.ReadFileFunc != nil {
		return m.ReadFileFunc(path)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if data, ok := m.files[filepath.Clean(path)]; ok {
		return data, nil
	}
	return nil, fmt.Errorf("open %s: %w", path, os.ErrNotExist)
}

func (m *FileSystem) WriteFile(path string, data []byte) error {
	if m.WriteFileFunc != nil {
		return m.WriteFileFunc(path, data)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[filepath.Clean(path)] = append([]byte(nil), data...)
	m.dirs[filepath.Dir(filepath.Clean(path))] = true
	return nil
}

func (m *FileSystem) MkdirAll(path string) error {
	if m.MkdirAllFunc != nil {
		return m.MkdirAllFunc(path)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dirs[filepath.Clean(path)] = true
	return nil
}

func (m *FileSystem) Exists(path string) (bool, error) {
	if m.ExistsFunc != nil {
		return m.ExistsFunc(path)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	path = filepath.Clean(path)
	if _, ok := m.files[path]; ok {
		return true, nil
	}
	if _, ok := m.dirs[path]; ok {
		return true, nil
	}
	return false, nil
}

// Remove deletes a file or a directory and everything below it.
func (m *FileSystem) Remove(path string) error {
	if m.RemoveFunc != nil {
		return m.RemoveFunc(path)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	path = filepath.Clean(path)
	prefix := path + string(filepath.Separator)
	for k := range m.files {
		if k == path || strings.HasPrefix(k, prefix) {
			delete(m.files, k)
		}
	}
	for k := range m.dirs {
		if k == path || strings.HasPrefix(k, prefix) {
			delete(m.dirs, k)
		}
	}
	return nil
}

// Rename moves a file or a directory tree.
func (m *FileSystem) Rename(oldPath, newPath string) error {
	if m.RenameFunc != nil {
		return m.RenameFunc(oldPath, newPath)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	oldPath, newPath = filepath.Clean(oldPath), filepath.Clean(newPath)
	if data, ok := m.files[oldPath]; ok {
		delete(m.files, oldPath)
		m.files[newPath] = data
		return nil
	}
	if !m.dirs[oldPath] {
		return fmt.Errorf("rename %s: %w", oldPath, os.ErrNotExist)
	}
	prefix := oldPath + string(filepath.Separator)
	for k, v := range m.files {
		if strings.HasPrefix(k, prefix) {
			delete(m.files, k)
			m.files[filepath.Join(newPath, strings.TrimPrefix(k, prefix))] = v
		}
	}
	for k := range m.dirs {
		if k == oldPath || strings.HasPrefix(k, prefix) {
			delete(m.dirs, k)
			m.dirs[filepath.Join(newPath, strings.TrimPrefix(k, oldPath))] = true
		}
	}
	return nil
}

// List returns the sorted names of files and directories directly below dir.
func (m *FileSystem) List(dir string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	dir = filepath.Clean(dir)
	if !m.dirs[dir] {
		return nil, fmt.Errorf("open %s: %w", dir, os.ErrNotExist)
	}
	seen := make(map[string]bool)
	for k := range m.files {
		if filepath.Dir(k) == dir {
			seen[filepath.Base(k)] = true
		}
	}
	for k := range m.dirs {
		if k != dir && filepath.Dir(k) == dir {
			seen[filepath.Base(k)] = true
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Create returns a writer that stores its content on Close.
func (m *FileSystem) Create(path string) (io.WriteCloser, error) {
	return &memFile{fs: m, path: path}, nil
}

func (m *FileSystem) Open(path string) (io.ReadCloser, error) {
	data, err := m.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *FileSystem) Size(path string) (int64, error) {
	data, err := m.ReadFile(path)
	if err != nil {
		return 0, err
	}
	return int64(len(data)), nil
}

// GetFile returns the contents of a file (for test verification).
func (m *FileSystem) GetFile(path string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.files[filepath.Clean(path)]
	return data, ok
}

// GetAllFiles returns all files (for test verification).
func (m *FileSystem) GetAllFiles() map[string][]byte {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make(map[string][]byte)
	for k, v := range m.files {
		result[k] = v
	}
	return result
}

type memFile struct {
	fs   *FileSystem
	path string
	buf  bytes.Buffer
}

func (f *memFile) Write(p []byte) (int, error) {
	return f.buf.Write(p)
}

func (f *memFile) Close() error {
	return f.fs.WriteFile(f.path, f.buf.Bytes())
}

var _ ports.FileSystem = (*FileSystem)(nil)
