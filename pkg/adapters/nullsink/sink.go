// Package nullsink provides a no-op debug sink implementation.
package nullsink

import (
	"image"

	"github.com/user/bytereel/pkg/ports"
)

// Sink is a no-op implementation of ports.FrameSink.
// It discards all debug output.
type Sink struct{}

// New creates a new NullSink.
func New() *Sink {
	return &Sink{}
}

// Enabled returns false as this sink discards all output.
func (s *Sink) Enabled() bool {
	return false
}

// SaveFrame does nothing.
func (s *Sink) SaveFrame(index int, img image.Image) error {
	return nil
}

// SaveManifest does nothing.
func (s *Sink) SaveManifest(data []byte) error {
	return nil
}

// Ensure Sink implements ports.FrameSink
var _ ports.FrameSink = (*Sink)(nil)
