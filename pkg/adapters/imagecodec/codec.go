// Package imagecodec encodes frames as lossless image files.
package imagecodec

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/user/bytereel/pkg/framecodec"
	"github.com/user/bytereel/pkg/ports"
)

// Codec implements ports.ImageCodec with PNG, BMP and TIFF.
type Codec struct {
	png png.Encoder
}

// Option configures a Codec.
type Option func(*Codec)

// WithPNGCompression sets the PNG compression level.
func WithPNGCompression(level png.CompressionLevel) Option {
	return func(c *Codec) {
		c.png.CompressionLevel = level
	}
}

// New creates a new Codec. PNG output favors speed by default.
func New(opts ...Option) *Codec {
	c := &Codec{png: png.Encoder{CompressionLevel: png.BestSpeed}}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Encode encodes img in the given format.
func (c *Codec) Encode(img image.Image, format ports.ImageFormat) ([]byte, error) {
	if f, ok := img.(framecodec.Frame); ok {
		img = f.ToRGBA()
	}

	var buf bytes.Buffer
	switch format {
	case ports.FormatPNG:
		if err := c.png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("encode PNG: %w", err)
		}
	case ports.FormatBMP:
		if err := bmp.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("encode BMP: %w", err)
		}
	case ports.FormatTIFF:
		if err := tiff.Encode(&buf, img, &tiff.Options{Compression: tiff.Deflate}); err != nil {
			return nil, fmt.Errorf("encode TIFF: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported format: %d", format)
	}
	return buf.Bytes(), nil
}

// Decode decodes PNG, BMP or TIFF data.
func (c *Codec) Decode(data []byte) (image.Image, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	switch format {
	case "png", "bmp", "tiff":
		return img, nil
	default:
		return nil, fmt.Errorf("decode image: %s is not a lossless format", format)
	}
}

// Ensure Codec implements ports.ImageCodec
var _ ports.ImageCodec = (*Codec)(nil)
