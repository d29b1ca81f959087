// Package geometry defines frame dimensions and the table of supported resolutions.
package geometry

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// BytesPerPixel is the number of 8-bit channels carried by one pixel (R, G, B).
const BytesPerPixel = 3

// MaxDimension bounds each side of a frame. It keeps Capacity well inside
// int range and far above any resolution a video encoder accepts.
const MaxDimension = 16384

// ErrInvalidGeometry is returned for non-positive, oversized or unknown frame dimensions.
var ErrInvalidGeometry = errors.New("geometry: invalid frame geometry")

// Geometry is the pixel size shared by every frame of a job.
type Geometry struct {
	Width  int
	Height int
}

// New returns a validated Geometry.
func New(width, height int) (Geometry, error) {
	g := Geometry{Width: width, Height: height}
	if err := g.Validate(); err != nil {
		return Geometry{}, err
	}
	return g, nil
}

// Capacity returns the number of bytes one frame carries.
func (g Geometry) Capacity() int {
	return g.Width * g.Height * BytesPerPixel
}

// RowStride returns the number of bytes in one pixel row.
func (g Geometry) RowStride() int {
	return g.Width * BytesPerPixel
}

// Validate reports whether both dimensions lie in 1..MaxDimension.
func (g Geometry) Validate() error {
	if g.Width <= 0 || g.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidGeometry, g.Width, g.Height)
	}
	if g.Width > MaxDimension || g.Height > MaxDimension {
		return fmt.Errorf("%w: %dx%d exceeds %d pixels per side", ErrInvalidGeometry, g.Width, g.Height, MaxDimension)
	}
	return nil
}

// FrameCount returns ceil(size / capacity). It returns 0 for empty input.
func (g Geometry) FrameCount(size int64) int {
	c := int64(g.Capacity())
	if size <= 0 || c <= 0 {
		return 0
	}
	return int((size + c - 1) / c)
}

// String formats the geometry as "WxH".
func (g Geometry) String() string {
	return fmt.Sprintf("%dx%d", g.Width, g.Height)
}

// Parse parses a "WxH" string such as "640x360".
func Parse(s string) (Geometry, error) {
	ws, hs, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return Geometry{}, fmt.Errorf("%w: %q is not WxH", ErrInvalidGeometry, s)
	}
	w, err := strconv.ParseUint(ws, 10, 31)
	if err != nil {
		return Geometry{}, fmt.Errorf("%w: width %q", ErrInvalidGeometry, ws)
	}
	h, err := strconv.ParseUint(hs, 10, 31)
	if err != nil {
		return Geometry{}, fmt.Errorf("%w: height %q", ErrInvalidGeometry, hs)
	}
	return New(int(w), int(h))
}
