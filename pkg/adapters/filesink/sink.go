// Package filesink provides a file-based debug sink implementation.
package filesink

import (
	"fmt"
	"image"
	"path/filepath"

	"github.com/user/bytereel/pkg/ports"
)

// Sink saves packed frames and the job manifest under a debug directory.
type Sink struct {
	baseDir string
	fs      ports.FileSystem
	codec   ports.ImageCodec
}

// New creates a new FileSink.
func New(baseDir string, fs ports.FileSystem, codec ports.ImageCodec) *Sink {
	return &Sink{
		baseDir: baseDir,
		fs:      fs,
		codec:   codec,
	}
}

// Enabled returns true as this sink saves output.
func (s *Sink) Enabled() bool {
	return true
}

// SaveFrame saves a packed frame as PNG.
func (s *Sink) SaveFrame(index int, img image.Image) error {
	dir := filepath.Join(s.baseDir, "frames")
	if err := s.fs.MkdirAll(dir); err != nil {
		return err
	}
	data, err := s.codec.Encode(img, ports.FormatPNG)
	if err != nil {
		return fmt.Errorf("encode frame %d: %w", index, err)
	}
	path := filepath.Join(dir, fmt.Sprintf("frame-%04d.png", index))
	return s.fs.WriteFile(path, data)
}

// SaveManifest saves the job manifest.
func (s *Sink) SaveManifest(data []byte) error {
	path := filepath.Join(s.baseDir, "manifest.yaml")
	return s.fs.WriteFile(path, data)
}

// Ensure Sink implements ports.FrameSink
var _ ports.FrameSink = (*Sink)(nil)
