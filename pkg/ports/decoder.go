package ports

import (
	"context"
	"image"
)

// VideoFrame is one decoded frame with its position in the sequence.
type VideoFrame struct {
	Index int
	Image image.Image
}

// VideoDecoder abstracts reading frames back from an encoded output.
type VideoDecoder interface {
	// ReadFrames decodes frames of the given size in order and passes each to fn.
	// Decoding stops at the first error returned by fn.
	ReadFrames(ctx context.Context, path string, width, height int, fn func(VideoFrame) error) error
}

// ProbeResult describes the video stream of an encoded output.
type ProbeResult struct {
	Width      int
	Height     int
	FrameCount int // -1 when the container does not report it
	Codec      string
}

// ContainerProbe inspects an encoded output without decoding pixel data.
type ContainerProbe interface {
	Probe(ctx context.Context, path string) (ProbeResult, error)
}
