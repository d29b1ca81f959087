package pipeline

import (
	"io"
	"time"

	"github.com/user/bytereel/pkg/framecodec"
	"github.com/user/bytereel/pkg/geometry"
	"github.com/user/bytereel/pkg/metadata"
	"github.com/user/bytereel/pkg/ports"
)

// =============================================================================
// Pack Stage Types
// =============================================================================

// PackInput contains the bytes to pack into frames.
type PackInput struct {
	Name     string
	Data     []byte
	Geometry geometry.Geometry
}

// PackResult contains the packed frames in sequence order.
type PackResult struct {
	Frames   []framecodec.Frame
	Metadata metadata.Metadata
	Padding  int64 // Zero bytes appended to the last frame
}

// =============================================================================
// Transcode Stage Types
// =============================================================================

// TranscodeInput contains parameters for writing frames to a lossless video.
type TranscodeInput struct {
	Frames     []framecodec.Frame
	OutputPath string
	FPS        float64
	Options    ports.EncoderOptions
}

// DefaultTranscodeInput returns TranscodeInput with default values.
func DefaultTranscodeInput() TranscodeInput {
	return TranscodeInput{
		FPS:     24.0,
		Options: ports.EncoderOptions{Codec: "ffv1"},
	}
}

// TranscodeResult describes the written video.
type TranscodeResult struct {
	OutputPath string
	FrameCount int
	FileSize   int64
	Duration   time.Duration // Playback duration at the requested FPS
}

// =============================================================================
// Extract Stage Types
// =============================================================================

// ExtractInput contains parameters for reading frames from a video.
type ExtractInput struct {
	VideoPath string
	Metadata  metadata.Metadata
}

// ExtractResult carries the decoded frames in sequence order.
type ExtractResult struct {
	Frames []framecodec.Frame
	Probe  ports.ProbeResult
}

// =============================================================================
// Unpack Stage Types
// =============================================================================

// UnpackInput contains the frames to reassemble and the destination.
type UnpackInput struct {
	Frames   []framecodec.Frame
	Metadata metadata.Metadata
	Output   io.Writer
}

// UnpackResult describes the reassembled file.
type UnpackResult struct {
	BytesWritten  int64
	FrameCount    int
	SurplusFrames int
}
