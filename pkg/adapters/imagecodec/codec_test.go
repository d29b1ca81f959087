package imagecodec

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"math/rand"
	"testing"

	"github.com/user/bytereel/pkg/framecodec"
	"github.com/user/bytereel/pkg/geometry"
	"github.com/user/bytereel/pkg/ports"
)

func testFrame(t *testing.T) framecodec.Frame {
	t.Helper()
	g := geometry.Geometry{Width: 17, Height: 9}
	data := make([]byte, g.Capacity())
	rand.New(rand.NewSource(42)).Read(data)
	return framecodec.PackFrame(data, 0, g)
}

func TestCodec_LosslessRoundTrip(t *testing.T) {
	c := New()
	frame := testFrame(t)

	for _, format := range []ports.ImageFormat{ports.FormatPNG, ports.FormatBMP, ports.FormatTIFF} {
		t.Run(format.String(), func(t *testing.T) {
			data, err := c.Encode(frame, format)
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}

			img, err := c.Decode(data)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}

			got, err := framecodec.FromImage(img)
			if err != nil {
				t.Fatalf("FromImage failed: %v", err)
			}
			if got.Width != frame.Width || got.Height != frame.Height {
				t.Fatalf("expected %dx%d, got %dx%d", frame.Width, frame.Height, got.Width, got.Height)
			}
			if !bytes.Equal(got.Pix, frame.Pix) {
				t.Error("pixel data changed after round trip")
			}
		})
	}
}

func TestCodec_RejectsJPEG(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatal(err)
	}

	if _, err := New().Decode(buf.Bytes()); err == nil {
		t.Error("expected JPEG input to be rejected")
	}
}

func TestCodec_UnsupportedFormat(t *testing.T) {
	if _, err := New().Encode(testFrame(t), ports.ImageFormat(99)); err == nil {
		t.Error("expected error for unknown format")
	}
}
