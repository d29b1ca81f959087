package ports

import (
	"fmt"
	"image"
)

// ImageCodec converts single frames to and from lossless image files.
type ImageCodec interface {
	// Encode encodes an image in the specified format.
	Encode(img image.Image, format ImageFormat) ([]byte, error)

	// Decode decodes image data, detecting the format from its header.
	Decode(data []byte) (image.Image, error)
}

// ImageFormat specifies a lossless image encoding.
type ImageFormat int

const (
	FormatPNG ImageFormat = iota
	FormatBMP
	FormatTIFF
)

// String returns the format name.
func (f ImageFormat) String() string {
	switch f {
	case FormatPNG:
		return "png"
	case FormatBMP:
		return "bmp"
	case FormatTIFF:
		return "tiff"
	default:
		return "unknown"
	}
}

// Extension returns the file extension including the dot.
func (f ImageFormat) Extension() string {
	switch f {
	case FormatBMP:
		return ".bmp"
	case FormatTIFF:
		return ".tif"
	default:
		return ".png"
	}
}

// ParseImageFormat parses a format name.
func ParseImageFormat(s string) (ImageFormat, error) {
	switch s {
	case "", "png":
		return FormatPNG, nil
	case "bmp":
		return FormatBMP, nil
	case "tiff", "tif":
		return FormatTIFF, nil
	default:
		return FormatPNG, fmt.Errorf("unknown image format %q", s)
	}
}
