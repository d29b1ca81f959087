package framedir

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/user/bytereel/pkg/adapters/imagecodec"
	"github.com/user/bytereel/pkg/adapters/osfilesystem"
	"github.com/user/bytereel/pkg/framecodec"
	"github.com/user/bytereel/pkg/geometry"
	"github.com/user/bytereel/pkg/ports"
)

func packTestFrames(t *testing.T, n int, g geometry.Geometry) []framecodec.Frame {
	t.Helper()
	data := make([]byte, g.Capacity()*n-1)
	for i := range data {
		data[i] = byte(i * 7)
	}
	frames, _, err := framecodec.Pack(data, "t.bin", g)
	if err != nil {
		t.Fatalf("Pack failed: %v", err)
	}
	return frames
}

func TestWriterReader_RoundTrip(t *testing.T) {
	fs := osfilesystem.New()
	codec := imagecodec.New()
	g := geometry.Geometry{Width: 8, Height: 4}
	frames := packTestFrames(t, 3, g)
	out := filepath.Join(t.TempDir(), "a__8x4__95")

	for _, format := range []ports.ImageFormat{ports.FormatPNG, ports.FormatBMP, ports.FormatTIFF} {
		w := NewWriter(fs, codec)
		if err := w.Begin(out, g.Width, g.Height, 24, ports.EncoderOptions{FrameFormat: format}); err != nil {
			t.Fatalf("Begin failed: %v", err)
		}
		for _, f := range frames {
			if err := w.EncodeFrame(f); err != nil {
				t.Fatalf("EncodeFrame failed: %v", err)
			}
		}
		size, err := w.End()
		if err != nil {
			t.Fatalf("End failed: %v", err)
		}
		if size <= 0 {
			t.Errorf("expected positive size, got %d", size)
		}
		if _, err := os.Stat(out + ".partial"); !os.IsNotExist(err) {
			t.Error("staging directory should be gone after End")
		}

		r := NewReader(fs, codec)
		probe, err := r.Probe(context.Background(), out)
		if err != nil {
			t.Fatalf("Probe failed: %v", err)
		}
		if probe.Width != g.Width || probe.Height != g.Height || probe.FrameCount != 3 {
			t.Errorf("unexpected probe result %+v", probe)
		}

		var got []framecodec.Frame
		err = r.ReadFrames(context.Background(), out, g.Width, g.Height, func(vf ports.VideoFrame) error {
			if vf.Index != len(got) {
				t.Errorf("frame index %d out of order", vf.Index)
			}
			f, err := framecodec.FromImage(vf.Image)
			if err != nil {
				return err
			}
			got = append(got, f)
			return nil
		})
		if err != nil {
			t.Fatalf("ReadFrames failed (%s): %v", format, err)
		}
		if len(got) != len(frames) {
			t.Fatalf("expected %d frames, got %d", len(frames), len(got))
		}
		for i := range frames {
			if !bytes.Equal(frames[i].Pix, got[i].Pix) {
				t.Errorf("%s: frame %d differs", format, i)
			}
		}
	}
}

func TestWriter_RejectsWrongSize(t *testing.T) {
	w := NewWriter(osfilesystem.New(), imagecodec.New())
	out := filepath.Join(t.TempDir(), "x")
	if err := w.Begin(out, 4, 4, 24, ports.EncoderOptions{}); err != nil {
		t.Fatal(err)
	}
	defer w.Abort()

	err := w.EncodeFrame(framecodec.NewFrame(geometry.Geometry{Width: 2, Height: 2}))
	if !errors.Is(err, framecodec.ErrGeometryMismatch) {
		t.Errorf("expected ErrGeometryMismatch, got %v", err)
	}
}

func TestWriter_NotInitialized(t *testing.T) {
	w := NewWriter(osfilesystem.New(), imagecodec.New())
	if err := w.EncodeFrame(framecodec.NewFrame(geometry.Geometry{Width: 1, Height: 1})); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("expected ErrNotInitialized, got %v", err)
	}
	if _, err := w.End(); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("expected ErrNotInitialized, got %v", err)
	}
}

func TestReader_MissingFrame(t *testing.T) {
	fs := osfilesystem.New()
	codec := imagecodec.New()
	g := geometry.Geometry{Width: 2, Height: 2}
	out := filepath.Join(t.TempDir(), "gap")

	w := NewWriter(fs, codec)
	if err := w.Begin(out, 2, 2, 24, ports.EncoderOptions{}); err != nil {
		t.Fatal(err)
	}
	for _, f := range packTestFrames(t, 3, g) {
		if err := w.EncodeFrame(f); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := w.End(); err != nil {
		t.Fatal(err)
	}
	if err := os.Remove(filepath.Join(out, FrameName(1, ports.FormatPNG))); err != nil {
		t.Fatal(err)
	}

	err := NewReader(fs, codec).ReadFrames(context.Background(), out, 2, 2, func(ports.VideoFrame) error { return nil })
	if !errors.Is(err, framecodec.ErrTruncatedInput) {
		t.Errorf("expected ErrTruncatedInput, got %v", err)
	}
}

func TestReader_GeometryMismatch(t *testing.T) {
	fs := osfilesystem.New()
	codec := imagecodec.New()
	g := geometry.Geometry{Width: 3, Height: 2}
	out := filepath.Join(t.TempDir(), "dir")

	w := NewWriter(fs, codec)
	if err := w.Begin(out, g.Width, g.Height, 24, ports.EncoderOptions{}); err != nil {
		t.Fatal(err)
	}
	if err := w.EncodeFrame(framecodec.NewFrame(g)); err != nil {
		t.Fatal(err)
	}
	if _, err := w.End(); err != nil {
		t.Fatal(err)
	}

	err := NewReader(fs, codec).ReadFrames(context.Background(), out, 2, 3, func(ports.VideoFrame) error { return nil })
	if !errors.Is(err, framecodec.ErrGeometryMismatch) {
		t.Errorf("expected ErrGeometryMismatch, got %v", err)
	}
}

func TestReader_EmptyDirectory(t *testing.T) {
	dir := t.TempDir()
	_, err := NewReader(osfilesystem.New(), imagecodec.New()).Probe(context.Background(), dir)
	if !errors.Is(err, ErrNoFrames) {
		t.Errorf("expected ErrNoFrames, got %v", err)
	}
}
