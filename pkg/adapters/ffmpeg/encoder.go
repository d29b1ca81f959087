package ffmpeg

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"os"
	"os/exec"
	"strconv"
	"sync"

	"github.com/user/bytereel/pkg/framecodec"
	"github.com/user/bytereel/pkg/ports"
)

// Encoder implements ports.VideoEncoder by piping raw rgb24 frames into ffmpeg.
// Output is written to "<path>.partial" and renamed into place by End.
type Encoder struct {
	mu         sync.Mutex
	cmd        *exec.Cmd
	stdin      io.WriteCloser
	stderr     bytes.Buffer
	width      int
	height     int
	outputPath string
	tempPath   string
	frameCount int
	closed     bool
}

// NewEncoder creates a new ffmpeg encoder.
func NewEncoder() *Encoder {
	return &Encoder{}
}

// Begin starts ffmpeg with the lossless profile named by opts.Codec.
func (e *Encoder) Begin(outputPath string, width, height int, fps float64, opts ports.EncoderOptions) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	profile, err := LookupProfile(opts.Codec)
	if err != nil {
		return err
	}
	ffmpegPath, err := FindFFmpeg()
	if err != nil {
		return err
	}

	e.width = width
	e.height = height
	e.outputPath = outputPath
	e.tempPath = outputPath + ".partial"
	e.frameCount = 0
	e.closed = false
	e.stderr.Reset()

	args := buildEncodeArgs(profile, width, height, fps, opts.Threads, e.tempPath)

	e.cmd = exec.Command(ffmpegPath, args...)
	e.cmd.Stderr = &e.stderr

	stdin, err := e.cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("failed to get stdin pipe: %w", err)
	}
	e.stdin = stdin

	if err := e.cmd.Start(); err != nil {
		return fmt.Errorf("failed to start ffmpeg: %w", err)
	}
	return nil
}

func buildEncodeArgs(p Profile, width, height int, fps float64, threads int, output string) []string {
	args := []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-f", "rawvideo",
		"-pix_fmt", "rgb24",
		"-s", fmt.Sprintf("%dx%d", width, height),
		"-r", strconv.FormatFloat(fps, 'f', -1, 64),
		"-i", "pipe:0",
		"-an",
	}
	args = append(args, p.Args...)
	if threads > 0 {
		args = append(args, "-threads", strconv.Itoa(threads))
	}
	return append(args, "-f", p.Format, output)
}

// EncodeFrame writes one frame's rgb24 bytes to ffmpeg.
func (e *Encoder) EncodeFrame(img image.Image) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.stdin == nil || e.closed {
		return ErrNotInitialized
	}

	frame, err := framecodec.FromImage(img)
	if err != nil {
		return err
	}
	if frame.Width != e.width || frame.Height != e.height {
		return fmt.Errorf("%w: frame %d is %dx%d, expected %dx%d",
			framecodec.ErrGeometryMismatch, e.frameCount, frame.Width, frame.Height, e.width, e.height)
	}

	if _, err := e.stdin.Write(frame.Pix); err != nil {
		return fmt.Errorf("failed to write frame %d: %w\nstderr: %s", e.frameCount, err, e.stderr.String())
	}
	e.frameCount++
	return nil
}

// End closes ffmpeg's input, waits for it, and moves the output into place.
func (e *Encoder) End() (int64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.stdin == nil || e.closed {
		return 0, ErrNotInitialized
	}

	e.stdin.Close()
	e.stdin = nil
	e.closed = true

	if err := e.cmd.Wait(); err != nil {
		os.Remove(e.tempPath)
		return 0, fmt.Errorf("ffmpeg encoding failed: %w\nstderr: %s", err, e.stderr.String())
	}

	if err := os.Rename(e.tempPath, e.outputPath); err != nil {
		os.Remove(e.tempPath)
		return 0, fmt.Errorf("failed to move output: %w", err)
	}

	info, err := os.Stat(e.outputPath)
	if err != nil {
		return 0, fmt.Errorf("failed to stat output: %w", err)
	}
	return info.Size(), nil
}

// Abort kills ffmpeg and removes partial output.
func (e *Encoder) Abort() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.stdin != nil && !e.closed {
		e.stdin.Close()
		e.stdin = nil
	}
	if e.cmd != nil && e.cmd.Process != nil && !e.closed {
		e.cmd.Process.Kill()
		e.cmd.Wait()
	}
	if e.tempPath != "" {
		os.Remove(e.tempPath)
	}
	e.closed = true
}

// FrameCount returns the number of frames written since Begin.
func (e *Encoder) FrameCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.frameCount
}

// Ensure Encoder implements ports.VideoEncoder
var _ ports.VideoEncoder = (*Encoder)(nil)
