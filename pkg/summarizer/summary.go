package summarizer

import (
	"time"

	"github.com/user/bytereel/pkg/orchestrator"
)

// Direction values used in JobInfo.
const (
	DirectionEncode = "encode"
	DirectionDecode = "decode"
)

// Summary contains all jobs run during one invocation.
type Summary struct {
	GeneratedAt time.Time

	Settings Settings

	Jobs []JobInfo
}

// Settings contains the configuration the jobs ran with.
type Settings struct {
	Resolution  string
	Codec       string
	FPS         int
	FrameFormat string
	Delimiter   string
	Workers     int
}

// JobInfo describes one encode or decode job.
type JobInfo struct {
	Direction string
	JobID     string
	Input     string
	Output    string
	Token     string

	Width  int
	Height int

	Frames       int
	PaddingBytes int64
	Bytes        int64 // Original payload size
	OutputSize   int64
	SHA256       string
	Verified     bool

	Elapsed time.Duration
}

// Resolution returns the frame size as WxH.
func (j JobInfo) Resolution() string {
	return formatSize(j.Width, j.Height)
}

// TotalBytes returns the sum of payload bytes over all jobs.
func (s *Summary) TotalBytes() int64 {
	var n int64
	for _, j := range s.Jobs {
		n += j.Bytes
	}
	return n
}

// NewSummary creates a new Summary with the current timestamp.
func NewSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Now(),
	}
}

// Builder provides a fluent interface for building a Summary.
type Builder struct {
	summary *Summary
}

// NewBuilder creates a new Builder.
func NewBuilder() *Builder {
	return &Builder{
		summary: NewSummary(),
	}
}

// WithSettings sets the job settings.
func (b *Builder) WithSettings(settings Settings) *Builder {
	b.summary.Settings = settings
	return b
}

// AddEncode records a finished encode job.
func (b *Builder) AddEncode(r orchestrator.EncodeResult) *Builder {
	b.summary.Jobs = append(b.summary.Jobs, JobInfo{
		Direction:    DirectionEncode,
		JobID:        r.JobID,
		Input:        r.InputPath,
		Output:       r.OutputPath,
		Token:        r.Token,
		Width:        r.Metadata.Width,
		Height:       r.Metadata.Height,
		Frames:       r.FrameCount,
		PaddingBytes: r.PaddingBytes,
		Bytes:        r.Metadata.OriginalSizeBytes,
		OutputSize:   r.OutputSize,
		SHA256:       r.SHA256,
		Verified:     r.Verified,
		Elapsed:      r.Elapsed,
	})
	return b
}

// AddDecode records a finished decode job.
func (b *Builder) AddDecode(r orchestrator.DecodeResult) *Builder {
	b.summary.Jobs = append(b.summary.Jobs, JobInfo{
		Direction:  DirectionDecode,
		JobID:      r.JobID,
		Input:      r.VideoPath,
		Output:     r.OutputPath,
		Token:      r.Token,
		Width:      r.Metadata.Width,
		Height:     r.Metadata.Height,
		Frames:     r.FrameCount,
		Bytes:      r.Metadata.OriginalSizeBytes,
		OutputSize: r.BytesWritten,
		SHA256:     r.SHA256,
		Verified:   r.ManifestVerified,
		Elapsed:    r.Elapsed,
	})
	return b
}

// Build returns the constructed Summary.
func (b *Builder) Build() *Summary {
	return b.summary
}
