package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"

	"github.com/user/bytereel/pkg/framecodec"
	"github.com/user/bytereel/pkg/geometry"
	"github.com/user/bytereel/pkg/ports"
)

// Decoder implements ports.VideoDecoder by reading rgb24 frames from ffmpeg's stdout.
type Decoder struct{}

// NewDecoder creates a new ffmpeg decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

func buildDecodeArgs(path string) []string {
	return []string{
		"-hide_banner",
		"-v", "error",
		"-i", path,
		"-map", "0:v:0",
		"-fps_mode", "passthrough",
		"-f", "rawvideo",
		"-pix_fmt", "rgb24",
		"pipe:1",
	}
}

// ReadFrames decodes every frame of the first video stream in order.
// A stream that ends in the middle of a frame fails with ErrPartialFrame.
func (d *Decoder) ReadFrames(ctx context.Context, path string, width, height int, fn func(ports.VideoFrame) error) error {
	g := geometry.Geometry{Width: width, Height: height}
	if err := g.Validate(); err != nil {
		return err
	}
	ffmpegPath, err := FindFFmpeg()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, ffmpegPath, buildDecodeArgs(path)...)
	cmd.Stderr = &stderr
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("failed to get stdout pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start ffmpeg: %w", err)
	}

	readErr := readFrames(stdout, g, fn)
	if readErr != nil {
		cancel()
		// Drain so ffmpeg is not blocked on a full pipe.
		io.Copy(io.Discard, stdout)
	}
	waitErr := cmd.Wait()

	if readErr != nil {
		return readErr
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if waitErr != nil {
		return fmt.Errorf("ffmpeg decoding failed: %w\nstderr: %s", waitErr, stderr.String())
	}
	return nil
}

func readFrames(r io.Reader, g geometry.Geometry, fn func(ports.VideoFrame) error) error {
	if err := g.Validate(); err != nil {
		return err
	}
	for index := 0; ; index++ {
		frame := framecodec.NewFrame(g)
		_, err := io.ReadFull(r, frame.Pix)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return fmt.Errorf("%w: %w: frame %d", framecodec.ErrTruncatedInput, ErrPartialFrame, index)
		}
		if err != nil {
			return fmt.Errorf("read frame %d: %w", index, err)
		}
		if err := fn(ports.VideoFrame{Index: index, Image: frame}); err != nil {
			return err
		}
	}
}

// Ensure Decoder implements ports.VideoDecoder
var _ ports.VideoDecoder = (*Decoder)(nil)
