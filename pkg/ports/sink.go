package ports

import (
	"image"
)

// FrameSink abstracts debug output for intermediate results.
type FrameSink interface {
	// Enabled returns true if debug output is enabled.
	Enabled() bool

	// SaveFrame saves a packed frame as an image.
	SaveFrame(index int, img image.Image) error

	// SaveManifest saves the job manifest.
	SaveManifest(data []byte) error
}
