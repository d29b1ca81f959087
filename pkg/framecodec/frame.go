// Package framecodec packs a byte buffer into fixed-size RGB frames and
// reassembles frames back into the original bytes.
//
// Byte k of a frame maps to pixel (row k/(w*3), column (k%(w*3))/3) and
// channel k%3 in R, G, B order. Only the last frame of a sequence carries
// padding, and padding bytes are always zero.
package framecodec

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/user/bytereel/pkg/geometry"
)

var (
	// ErrInvalidGeometry is returned when frame dimensions are unusable.
	ErrInvalidGeometry = geometry.ErrInvalidGeometry

	// ErrEmptyInput is returned when asked to pack zero bytes.
	ErrEmptyInput = errors.New("framecodec: empty input")

	// ErrGeometryMismatch is returned when a frame's size disagrees with the metadata.
	ErrGeometryMismatch = errors.New("framecodec: frame geometry mismatch")

	// ErrTruncatedInput is returned when frames carry fewer bytes than recorded.
	ErrTruncatedInput = errors.New("framecodec: truncated input")

	// ErrLossyFrame is returned when an image cannot be converted to RGB without loss.
	ErrLossyFrame = errors.New("framecodec: frame is not opaque 8-bit RGB")
)

// Frame is a row-major RGB pixel grid holding exactly Width*Height*3 bytes.
type Frame struct {
	Width  int
	Height int
	Pix    []byte
}

// NewFrame allocates a zero-filled frame.
func NewFrame(g geometry.Geometry) Frame {
	return Frame{Width: g.Width, Height: g.Height, Pix: make([]byte, g.Capacity())}
}

// Geometry returns the frame dimensions.
func (f Frame) Geometry() geometry.Geometry {
	return geometry.Geometry{Width: f.Width, Height: f.Height}
}

// RGB returns the channel values of the pixel at (x, y).
func (f Frame) RGB(x, y int) (r, g, b uint8) {
	i := y*f.Geometry().RowStride() + x*geometry.BytesPerPixel
	return f.Pix[i], f.Pix[i+1], f.Pix[i+2]
}

// ColorModel implements image.Image.
func (f Frame) ColorModel() color.Model {
	return color.RGBAModel
}

// Bounds implements image.Image.
func (f Frame) Bounds() image.Rectangle {
	return image.Rect(0, 0, f.Width, f.Height)
}

// At implements image.Image. Pixels are always opaque.
func (f Frame) At(x, y int) color.Color {
	if x < 0 || y < 0 || x >= f.Width || y >= f.Height {
		return color.RGBA{}
	}
	r, g, b := f.RGB(x, y)
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// ToRGBA copies the frame into an *image.RGBA.
func (f Frame) ToRGBA() *image.RGBA {
	img := image.NewRGBA(f.Bounds())
	stride := f.Geometry().RowStride()
	for y := 0; y < f.Height; y++ {
		src := f.Pix[y*stride : (y+1)*stride]
		dst := img.Pix[y*img.Stride : y*img.Stride+f.Width*4]
		for x := 0; x < f.Width; x++ {
			dst[x*4] = src[x*3]
			dst[x*4+1] = src[x*3+1]
			dst[x*4+2] = src[x*3+2]
			dst[x*4+3] = 0xff
		}
	}
	return img
}

// FromImage converts a decoded image back into a Frame without altering
// channel values. Images with transparent pixels are rejected with
// ErrLossyFrame since their RGB values may have been premultiplied.
func FromImage(img image.Image) (Frame, error) {
	if f, ok := img.(Frame); ok {
		return f, nil
	}
	if f, ok := img.(*Frame); ok {
		return *f, nil
	}

	b := img.Bounds()
	f := NewFrame(geometry.Geometry{Width: b.Dx(), Height: b.Dy()})
	stride := f.Geometry().RowStride()

	var pix []byte
	var offset func(x, y int) int
	switch src := img.(type) {
	case *image.RGBA:
		pix, offset = src.Pix, src.PixOffset
	case *image.NRGBA:
		pix, offset = src.Pix, src.PixOffset
	case *image.Paletted, *image.Gray, *image.NRGBA64, *image.RGBA64:
		nrgba := image.NewNRGBA(image.Rect(0, 0, f.Width, f.Height))
		draw.Draw(nrgba, nrgba.Bounds(), img, b.Min, draw.Src)
		return FromImage(nrgba)
	default:
		return Frame{}, fmt.Errorf("%w: unsupported image type %T", ErrLossyFrame, img)
	}

	for y := 0; y < f.Height; y++ {
		row := pix[offset(b.Min.X, b.Min.Y+y):]
		for x := 0; x < f.Width; x++ {
			if a := row[x*4+3]; a != 0xff {
				return Frame{}, fmt.Errorf("%w: alpha %d at (%d,%d)", ErrLossyFrame, a, x, y)
			}
			i := y*stride + x*geometry.BytesPerPixel
			copy(f.Pix[i:i+3], row[x*4:x*4+3])
		}
	}
	return f, nil
}
