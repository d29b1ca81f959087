// Package framedir stores a frame sequence as numbered lossless images in a directory.
// It needs no external transcoder and is also the format used for debugging.
package framedir

import (
	"context"
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"sync"

	"github.com/user/bytereel/pkg/framecodec"
	"github.com/user/bytereel/pkg/ports"
)

// CodecName is the codec name selecting this adapter.
const CodecName = "frames"

var (
	// ErrNotInitialized is returned when Writer methods are called before Begin.
	ErrNotInitialized = errors.New("framedir: writer not initialized")

	// ErrNoFrames is returned when a directory contains no frame images.
	ErrNoFrames = errors.New("framedir: no frames found")
)

var framePattern = regexp.MustCompile(`^frame_(\d+)\.(png|bmp|tif|tiff)$`)

// FrameName returns the file name of frame index.
func FrameName(index int, format ports.ImageFormat) string {
	return fmt.Sprintf("frame_%04d%s", index, format.Extension())
}

// Writer implements ports.VideoEncoder by writing one image per frame.
type Writer struct {
	fs    ports.FileSystem
	codec ports.ImageCodec

	mu         sync.Mutex
	outputPath string
	tempPath   string
	format     ports.ImageFormat
	width      int
	height     int
	frameCount int
	written    int64
	active     bool
}

// NewWriter creates a frame directory writer.
func NewWriter(fs ports.FileSystem, codec ports.ImageCodec) *Writer {
	return &Writer{fs: fs, codec: codec}
}

// Begin prepares a staging directory next to outputPath.
func (w *Writer) Begin(outputPath string, width, height int, fps float64, opts ports.EncoderOptions) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.outputPath = outputPath
	w.tempPath = outputPath + ".partial"
	w.format = opts.FrameFormat
	w.width = width
	w.height = height
	w.frameCount = 0
	w.written = 0

	if err := w.fs.Remove(w.tempPath); err != nil {
		return fmt.Errorf("clear staging directory: %w", err)
	}
	if err := w.fs.MkdirAll(w.tempPath); err != nil {
		return fmt.Errorf("create staging directory: %w", err)
	}
	w.active = true
	return nil
}

// EncodeFrame writes the next frame image.
func (w *Writer) EncodeFrame(img image.Image) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.active {
		return ErrNotInitialized
	}
	b := img.Bounds()
	if b.Dx() != w.width || b.Dy() != w.height {
		return fmt.Errorf("%w: frame %d is %dx%d, expected %dx%d",
			framecodec.ErrGeometryMismatch, w.frameCount, b.Dx(), b.Dy(), w.width, w.height)
	}

	data, err := w.codec.Encode(img, w.format)
	if err != nil {
		return fmt.Errorf("encode frame %d: %w", w.frameCount, err)
	}
	path := filepath.Join(w.tempPath, FrameName(w.frameCount, w.format))
	if err := w.fs.WriteFile(path, data); err != nil {
		return fmt.Errorf("write frame %d: %w", w.frameCount, err)
	}
	w.frameCount++
	w.written += int64(len(data))
	return nil
}

// End moves the staging directory into place and returns the bytes written.
func (w *Writer) End() (int64, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.active {
		return 0, ErrNotInitialized
	}
	w.active = false

	if err := w.fs.Remove(w.outputPath); err != nil {
		return 0, fmt.Errorf("replace %s: %w", w.outputPath, err)
	}
	if err := w.fs.Rename(w.tempPath, w.outputPath); err != nil {
		return 0, fmt.Errorf("finalize %s: %w", w.outputPath, err)
	}
	return w.written, nil
}

// Abort removes the staging directory.
func (w *Writer) Abort() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.tempPath != "" {
		w.fs.Remove(w.tempPath)
	}
	w.active = false
}

// Reader implements ports.VideoDecoder and ports.ContainerProbe over a frame directory.
type Reader struct {
	fs    ports.FileSystem
	codec ports.ImageCodec
}

// NewReader creates a frame directory reader.
func NewReader(fs ports.FileSystem, codec ports.ImageCodec) *Reader {
	return &Reader{fs: fs, codec: codec}
}

type frameFile struct {
	index int
	name  string
}

// frames lists frame files in index order.
func (r *Reader) frames(dir string) ([]frameFile, error) {
	names, err := r.fs.List(dir)
	if err != nil {
		return nil, fmt.Errorf("list frames: %w", err)
	}
	var files []frameFile
	for _, name := range names {
		m := framePattern.FindStringSubmatch(name)
		if m == nil {
			continue
		}
		idx, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		files = append(files, frameFile{index: idx, name: name})
	}
	sort.Slice(files, func(i, j int) bool {
		return files[i].index < files[j].index
	})
	for i, f := range files {
		if f.index != i {
			return nil, fmt.Errorf("%w: frame %d missing (found %s)", framecodec.ErrTruncatedInput, i, f.name)
		}
	}
	return files, nil
}

// ReadFrames decodes frames in index order and passes them to fn.
func (r *Reader) ReadFrames(ctx context.Context, path string, width, height int, fn func(ports.VideoFrame) error) error {
	files, err := r.frames(path)
	if err != nil {
		return err
	}
	for i, f := range files {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		data, err := r.fs.ReadFile(filepath.Join(path, f.name))
		if err != nil {
			return fmt.Errorf("read %s: %w", f.name, err)
		}
		img, err := r.codec.Decode(data)
		if err != nil {
			return fmt.Errorf("decode %s: %w", f.name, err)
		}
		b := img.Bounds()
		if b.Dx() != width || b.Dy() != height {
			return fmt.Errorf("%w: %s is %dx%d, expected %dx%d",
				framecodec.ErrGeometryMismatch, f.name, b.Dx(), b.Dy(), width, height)
		}
		if err := fn(ports.VideoFrame{Index: i, Image: img}); err != nil {
			return err
		}
	}
	return nil
}

// Probe reports the first frame's size and the number of frames.
func (r *Reader) Probe(ctx context.Context, path string) (ports.ProbeResult, error) {
	files, err := r.frames(path)
	if err != nil {
		return ports.ProbeResult{}, err
	}
	if len(files) == 0 {
		return ports.ProbeResult{}, ErrNoFrames
	}
	data, err := r.fs.ReadFile(filepath.Join(path, files[0].name))
	if err != nil {
		return ports.ProbeResult{}, fmt.Errorf("read %s: %w", files[0].name, err)
	}
	img, err := r.codec.Decode(data)
	if err != nil {
		return ports.ProbeResult{}, fmt.Errorf("decode %s: %w", files[0].name, err)
	}
	return ports.ProbeResult{
		Width:      img.Bounds().Dx(),
		Height:     img.Bounds().Dy(),
		FrameCount: len(files),
		Codec:      CodecName,
	}, nil
}

var (
	_ ports.VideoEncoder   = (*Writer)(nil)
	_ ports.VideoDecoder   = (*Reader)(nil)
	_ ports.ContainerProbe = (*Reader)(nil)
)
