package framecodec

import (
	"fmt"
	"path/filepath"

	"github.com/user/bytereel/pkg/geometry"
	"github.com/user/bytereel/pkg/metadata"
)

// Writer packs byte buffers into frames.
type Writer struct {
	supported []geometry.Geometry
}

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithSupported restricts the Writer to the given geometries.
// Without it any positive geometry is accepted.
func WithSupported(geometries ...geometry.Geometry) WriterOption {
	return func(w *Writer) {
		w.supported = append([]geometry.Geometry(nil), geometries...)
	}
}

// NewWriter creates a Writer.
func NewWriter(opts ...WriterOption) *Writer {
	w := &Writer{}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Validate checks g against the Writer's constraints.
func (w *Writer) Validate(g geometry.Geometry) error {
	if err := g.Validate(); err != nil {
		return err
	}
	if len(w.supported) == 0 {
		return nil
	}
	for _, s := range w.supported {
		if s == g {
			return nil
		}
	}
	return fmt.Errorf("%w: %s is not a supported resolution", ErrInvalidGeometry, g)
}

// Plan validates the input and returns the metadata for packing size bytes
// of the named file at g.
func (w *Writer) Plan(name string, size int64, g geometry.Geometry) (metadata.Metadata, error) {
	if err := w.Validate(g); err != nil {
		return metadata.Metadata{}, err
	}
	if size <= 0 {
		return metadata.Metadata{}, ErrEmptyInput
	}
	return metadata.Metadata{
		OriginalName:      filepath.Base(name),
		Width:             g.Width,
		Height:            g.Height,
		OriginalSizeBytes: size,
	}, nil
}

// Pack splits data into frames of geometry g.
func (w *Writer) Pack(data []byte, name string, g geometry.Geometry) ([]Frame, metadata.Metadata, error) {
	meta, err := w.Plan(name, int64(len(data)), g)
	if err != nil {
		return nil, metadata.Metadata{}, err
	}

	n := g.FrameCount(int64(len(data)))
	frames := make([]Frame, n)
	for i := 0; i < n; i++ {
		frames[i] = PackFrame(data, i, g)
	}
	return frames, meta, nil
}

// Pack splits data into frames of geometry g using an unrestricted Writer.
func Pack(data []byte, name string, g geometry.Geometry) ([]Frame, metadata.Metadata, error) {
	return NewWriter().Pack(data, name, g)
}

// PackFrame builds frame i of data. Bytes past the end of data are zero.
// Each frame depends only on its own slice, so frames may be built concurrently.
func PackFrame(data []byte, i int, g geometry.Geometry) Frame {
	c := g.Capacity()
	f := NewFrame(g)
	start := i * c
	if start >= len(data) {
		return f
	}
	end := start + c
	if end > len(data) {
		end = len(data)
	}
	copy(f.Pix, data[start:end])
	return f
}
