package ports

import (
	"image"
)

// VideoEncoder abstracts a lossless transcoder that turns an ordered frame
// sequence into a single output (a video file or a frame directory).
type VideoEncoder interface {
	// Begin starts a new output at outputPath with the given frame size and rate.
	Begin(outputPath string, width, height int, fps float64, opts EncoderOptions) error

	// EncodeFrame appends the next frame. Frames are written in call order.
	EncodeFrame(img image.Image) error

	// End finalizes the output and returns its size in bytes.
	End() (int64, error)

	// Abort stops encoding and removes any partial output.
	Abort()
}

// EncoderOptions configures video encoding parameters.
type EncoderOptions struct {
	Codec       string      // Codec name (ffv1, h264rgb, frames)
	FrameFormat ImageFormat // Image format for frame directories
	Threads     int         // Encoder threads (0 = encoder default)
}
