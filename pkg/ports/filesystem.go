package ports

import "io"

// FileSystem is the storage port for inputs, encoded outputs, frame
// directories and manifests. Paths are host paths; implementations create
// parent directories on write.
type FileSystem interface {
	// Whole-file access, used for inputs and manifests.
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte) error

	// Streaming access, used when decoding into a .partial staging file.
	Create(path string) (io.WriteCloser, error)
	Open(path string) (io.ReadCloser, error)

	MkdirAll(path string) error
	Exists(path string) (bool, error)
	Size(path string) (int64, error)

	// List returns the entry names of dir in lexical order, which is
	// frame order for zero-padded frame files.
	List(dir string) ([]string, error)

	// Rename publishes a staged file or directory; the destination is
	// replaced. Remove deletes a file or a whole directory tree.
	Rename(oldPath, newPath string) error
	Remove(path string) error
}
