// Package bytereel provides a high-level API for storing files as lossless
// video frames and restoring them.
package bytereel

import (
	"context"

	"github.com/user/bytereel/pkg/adapters/ffmpeg"
	"github.com/user/bytereel/pkg/adapters/filesink"
	"github.com/user/bytereel/pkg/adapters/imagecodec"
	"github.com/user/bytereel/pkg/adapters/logger"
	"github.com/user/bytereel/pkg/adapters/nullsink"
	"github.com/user/bytereel/pkg/adapters/osfilesystem"
	"github.com/user/bytereel/pkg/config"
	"github.com/user/bytereel/pkg/framecodec"
	"github.com/user/bytereel/pkg/geometry"
	"github.com/user/bytereel/pkg/metrics"
	"github.com/user/bytereel/pkg/orchestrator"
	"github.com/user/bytereel/pkg/ports"
	"github.com/user/bytereel/pkg/stages/extract"
	"github.com/user/bytereel/pkg/stages/pack"
	"github.com/user/bytereel/pkg/stages/transcode"
	"github.com/user/bytereel/pkg/stages/unpack"
)

// Runner runs encode and decode jobs with one configuration.
type Runner struct {
	cfg     config.Config
	fs      ports.FileSystem
	logger  ports.Logger
	metrics *metrics.Metrics
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l ports.Logger) RunnerOption {
	return func(r *Runner) {
		r.logger = l
	}
}

// WithFileSystem replaces the OS file system.
func WithFileSystem(fs ports.FileSystem) RunnerOption {
	return func(r *Runner) {
		r.fs = fs
	}
}

// WithMetrics records job counters into m.
func WithMetrics(m *metrics.Metrics) RunnerOption {
	return func(r *Runner) {
		r.metrics = m
	}
}

// NewRunner validates cfg and creates a Runner.
func NewRunner(cfg config.Config, opts ...RunnerOption) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	r := &Runner{
		cfg:    cfg,
		fs:     osfilesystem.New(),
		logger: logger.NewNoop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if cfg.FFmpegPath != "" {
		ffmpeg.SetFFmpegPath(cfg.FFmpegPath)
	}
	if cfg.FFprobePath != "" {
		ffmpeg.SetFFprobePath(cfg.FFprobePath)
	}
	return r, nil
}

// Config returns the configuration the Runner was created with.
func (r *Runner) Config() config.Config {
	return r.cfg
}

func (r *Runner) sink() ports.FrameSink {
	if !r.cfg.Debug {
		return nullsink.New()
	}
	return filesink.New(r.cfg.DebugDir, r.fs, imagecodec.New())
}

func (r *Runner) orchestrator(a Adapters) (*orchestrator.Orchestrator, error) {
	tokens, err := r.cfg.TokenCodec()
	if err != nil {
		return nil, err
	}
	sink := r.sink()

	opts := []orchestrator.Option{
		orchestrator.WithTokenCodec(tokens),
		orchestrator.WithOutputExtension(a.Extension),
		orchestrator.WithMetrics(r.metrics),
	}
	if a.Probe != nil {
		opts = append(opts, orchestrator.WithProbe(a.Probe))
	}

	var writer *framecodec.Writer
	if r.cfg.StrictResolution {
		writer = framecodec.NewWriter(framecodec.WithSupported(geometry.Geometries()...))
	}

	return orchestrator.New(
		pack.NewStage(writer, sink, r.logger, r.cfg.Workers),
		transcode.NewStage(a.Encoder, r.logger),
		extract.NewStage(a.Decoder, a.Probe, r.logger),
		unpack.NewStage(r.logger),
		r.fs,
		sink,
		r.logger,
		opts...,
	), nil
}

// Encode stores the file at inputPath in the encoded directory.
func (r *Runner) Encode(ctx context.Context, inputPath string) (orchestrator.EncodeResult, error) {
	encodeConfig, err := r.cfg.ToEncodeConfig(inputPath)
	if err != nil {
		return orchestrator.EncodeResult{}, err
	}
	a, err := adaptersForCodec(r.cfg.Codec, r.fs, r.cfg.Verify && !r.cfg.SkipProbe)
	if err != nil {
		return orchestrator.EncodeResult{}, err
	}
	if a.Probe == nil && r.cfg.Verify {
		r.logger.Warn("No container probe for %s; output is not verified", r.cfg.Codec)
	}
	o, err := r.orchestrator(a)
	if err != nil {
		return orchestrator.EncodeResult{}, err
	}
	return o.RunEncode(ctx, encodeConfig)
}

// Decode restores the file stored in the video at videoPath.
func (r *Runner) Decode(ctx context.Context, videoPath string) (orchestrator.DecodeResult, error) {
	a, err := adaptersForVideo(videoPath, r.fs, !r.cfg.SkipProbe)
	if err != nil {
		return orchestrator.DecodeResult{}, err
	}
	if a.Probe == nil {
		r.logger.Warn("No container probe for %s; frame size is not checked against the token", videoPath)
	}
	o, err := r.orchestrator(a)
	if err != nil {
		return orchestrator.DecodeResult{}, err
	}
	return o.RunDecode(ctx, r.cfg.ToDecodeConfig(videoPath))
}

// EncodeFile stores inputPath using cfg and default adapters.
// For a custom logger or file system, use NewRunner.
//
// Example:
//
//	cfg, _ := config.NewBuilder(config.Defaults()).
//	    WithResolution("1080p").
//	    WithCodec("ffv1").
//	    Build()
//	result, err := bytereel.EncodeFile(ctx, cfg, "backup.tar")
func EncodeFile(ctx context.Context, cfg config.Config, inputPath string) (orchestrator.EncodeResult, error) {
	r, err := NewRunner(cfg)
	if err != nil {
		return orchestrator.EncodeResult{}, err
	}
	return r.Encode(ctx, inputPath)
}

// DecodeFile restores the file stored at videoPath using cfg and default adapters.
func DecodeFile(ctx context.Context, cfg config.Config, videoPath string) (orchestrator.DecodeResult, error) {
	r, err := NewRunner(cfg)
	if err != nil {
		return orchestrator.DecodeResult{}, err
	}
	return r.Decode(ctx, videoPath)
}
