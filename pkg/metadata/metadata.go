// Package metadata describes an encoded file and serializes that description
// into a filesystem-safe token and an optional YAML manifest.
package metadata

import (
	"errors"
	"fmt"

	"github.com/user/bytereel/pkg/geometry"
)

var (
	// ErrMalformedToken is returned when a token cannot be parsed or built.
	ErrMalformedToken = errors.New("metadata: malformed token")

	// ErrInvalidDelimiter is returned for delimiters that could collide with token fields.
	ErrInvalidDelimiter = errors.New("metadata: invalid delimiter")

	// ErrChecksumMismatch is returned when decoded bytes do not match the manifest digest.
	ErrChecksumMismatch = errors.New("metadata: checksum mismatch")

	// ErrManifestMismatch is returned when a manifest disagrees with its token.
	ErrManifestMismatch = errors.New("metadata: manifest does not match token")
)

// Metadata identifies the original file carried by a frame sequence.
type Metadata struct {
	OriginalName      string
	Width             int
	Height            int
	OriginalSizeBytes int64
}

// Geometry returns the frame geometry recorded in the metadata.
func (m Metadata) Geometry() geometry.Geometry {
	return geometry.Geometry{Width: m.Width, Height: m.Height}
}

// FrameCount returns the number of frames needed to carry OriginalSizeBytes.
func (m Metadata) FrameCount() int {
	return m.Geometry().FrameCount(m.OriginalSizeBytes)
}

// PaddingBytes returns the number of zero bytes appended to the last frame.
func (m Metadata) PaddingBytes() int64 {
	return int64(m.FrameCount())*int64(m.Geometry().Capacity()) - m.OriginalSizeBytes
}

// Validate checks that the geometry is positive and the size is not negative.
func (m Metadata) Validate() error {
	if err := m.Geometry().Validate(); err != nil {
		return err
	}
	if m.OriginalSizeBytes < 0 {
		return fmt.Errorf("metadata: negative size %d", m.OriginalSizeBytes)
	}
	return nil
}
