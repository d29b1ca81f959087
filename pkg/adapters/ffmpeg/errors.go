package ffmpeg

import "errors"

var (
	// ErrNotInitialized is returned when encoder methods are called before Begin.
	ErrNotInitialized = errors.New("ffmpeg: encoder not initialized")

	// ErrFFmpegNotFound is returned when the ffmpeg binary cannot be located.
	ErrFFmpegNotFound = errors.New("ffmpeg: ffmpeg not found")

	// ErrFFprobeNotFound is returned when the ffprobe binary cannot be located.
	ErrFFprobeNotFound = errors.New("ffmpeg: ffprobe not found")

	// ErrUnknownCodec is returned for codec names without a lossless profile.
	ErrUnknownCodec = errors.New("ffmpeg: unknown codec")

	// ErrPartialFrame is returned when the decoded stream ends inside a frame.
	ErrPartialFrame = errors.New("ffmpeg: stream ended inside a frame")
)
