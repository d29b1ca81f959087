package framecodec

import (
	"bytes"
	"fmt"
	"io"

	"github.com/user/bytereel/pkg/metadata"
)

// Unpack concatenates frames in order and truncates the result to the
// recorded original size.
func Unpack(frames []Frame, meta metadata.Metadata) ([]byte, error) {
	var buf bytes.Buffer
	if meta.OriginalSizeBytes > 0 {
		buf.Grow(int(meta.OriginalSizeBytes))
	}

	a, err := NewAssembler(&buf, meta)
	if err != nil {
		return nil, err
	}
	for _, f := range frames {
		if err := a.Add(f); err != nil {
			return nil, err
		}
	}
	if _, err := a.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Assembler writes frame payloads to an io.Writer until the recorded size
// is reached. Bytes beyond that size are discarded.
type Assembler struct {
	w        io.Writer
	meta     metadata.Metadata
	capacity int
	written  int64
	frames   int
	surplus  int
	closed   bool
}

// NewAssembler creates an Assembler that writes to w.
func NewAssembler(w io.Writer, meta metadata.Metadata) (*Assembler, error) {
	if err := meta.Validate(); err != nil {
		return nil, err
	}
	return &Assembler{
		w:        w,
		meta:     meta,
		capacity: meta.Geometry().Capacity(),
	}, nil
}

// Add appends one frame. Frames must arrive in sequence order.
func (a *Assembler) Add(f Frame) error {
	if a.closed {
		return fmt.Errorf("framecodec: assembler closed")
	}
	if f.Width != a.meta.Width || f.Height != a.meta.Height {
		return fmt.Errorf("%w: frame %d is %dx%d, expected %dx%d",
			ErrGeometryMismatch, a.frames, f.Width, f.Height, a.meta.Width, a.meta.Height)
	}
	if len(f.Pix) != a.capacity {
		return fmt.Errorf("%w: frame %d has %d bytes, expected %d",
			ErrGeometryMismatch, a.frames, len(f.Pix), a.capacity)
	}
	a.frames++

	remaining := a.meta.OriginalSizeBytes - a.written
	if remaining <= 0 {
		a.surplus++
		return nil
	}
	chunk := f.Pix
	if int64(len(chunk)) > remaining {
		chunk = chunk[:remaining]
	}
	n, err := a.w.Write(chunk)
	a.written += int64(n)
	if err != nil {
		return fmt.Errorf("write frame %d: %w", a.frames-1, err)
	}
	return nil
}

// Close checks that the recorded size was reached and returns the number
// of bytes written.
func (a *Assembler) Close() (int64, error) {
	a.closed = true
	if a.written < a.meta.OriginalSizeBytes {
		return a.written, fmt.Errorf("%w: got %d bytes from %d frames, expected %d bytes (%d frames)",
			ErrTruncatedInput, a.written, a.frames, a.meta.OriginalSizeBytes, a.meta.FrameCount())
	}
	return a.written, nil
}

// Frames returns the number of frames added so far.
func (a *Assembler) Frames() int {
	return a.frames
}

// SurplusFrames returns the number of frames that carried no payload.
func (a *Assembler) SurplusFrames() int {
	return a.surplus
}
