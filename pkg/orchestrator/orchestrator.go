// Package orchestrator coordinates the encode and decode pipelines.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/user/bytereel/pkg/framecodec"
	"github.com/user/bytereel/pkg/geometry"
	"github.com/user/bytereel/pkg/metadata"
	"github.com/user/bytereel/pkg/metrics"
	"github.com/user/bytereel/pkg/pipeline"
	"github.com/user/bytereel/pkg/ports"
)

// ErrFrameCountMismatch is returned when the encoded output does not hold
// the number of frames that were written.
var ErrFrameCountMismatch = errors.New("orchestrator: encoded frame count mismatch")

// EncodeConfig contains the parameters of one encode job.
type EncodeConfig struct {
	InputPath string
	OutputDir string

	Geometry    geometry.Geometry
	FPS         float64
	Codec       string
	FrameFormat ports.ImageFormat
	Threads     int

	WriteManifest bool // Write <token>.manifest.yaml next to the output
	Verify        bool // Re-probe the output after encoding
}

// DefaultEncodeConfig returns an EncodeConfig with default values.
func DefaultEncodeConfig() EncodeConfig {
	return EncodeConfig{
		OutputDir:     "encoded",
		Geometry:      geometry.Default().Geometry,
		FPS:           24.0,
		Codec:         "ffv1",
		FrameFormat:   ports.FormatPNG,
		WriteManifest: true,
		Verify:        true,
	}
}

// DecodeConfig contains the parameters of one decode job.
type DecodeConfig struct {
	VideoPath string
	OutputDir string

	// VerifyManifest checks the sidecar manifest when one exists.
	VerifyManifest bool
}

// DefaultDecodeConfig returns a DecodeConfig with default values.
func DefaultDecodeConfig() DecodeConfig {
	return DecodeConfig{
		OutputDir:      "decoded",
		VerifyManifest: true,
	}
}

// Orchestrator coordinates the execution of all pipeline stages.
type Orchestrator struct {
	packStage      pipeline.Stage[pipeline.PackInput, pipeline.PackResult]
	transcodeStage pipeline.Stage[pipeline.TranscodeInput, pipeline.TranscodeResult]
	extractStage   pipeline.Stage[pipeline.ExtractInput, pipeline.ExtractResult]
	unpackStage    pipeline.Stage[pipeline.UnpackInput, pipeline.UnpackResult]
	fs             ports.FileSystem
	sink           ports.FrameSink
	logger         ports.Logger

	tokens    *metadata.TokenCodec
	probe     ports.ContainerProbe
	extension string
	metrics   *metrics.Metrics
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithTokenCodec sets the codec used to name encoded outputs.
func WithTokenCodec(c *metadata.TokenCodec) Option {
	return func(o *Orchestrator) {
		o.tokens = c
	}
}

// WithProbe sets the probe used to verify encoded outputs.
func WithProbe(p ports.ContainerProbe) Option {
	return func(o *Orchestrator) {
		o.probe = p
	}
}

// WithOutputExtension sets the extension appended to the token, such as ".mkv".
// Frame directories use no extension.
func WithOutputExtension(ext string) Option {
	return func(o *Orchestrator) {
		o.extension = ext
	}
}

// WithMetrics records job counters and stage timings.
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *Orchestrator) {
		o.metrics = m
	}
}

// New creates a new Orchestrator.
func New(
	packStage pipeline.Stage[pipeline.PackInput, pipeline.PackResult],
	transcodeStage pipeline.Stage[pipeline.TranscodeInput, pipeline.TranscodeResult],
	extractStage pipeline.Stage[pipeline.ExtractInput, pipeline.ExtractResult],
	unpackStage pipeline.Stage[pipeline.UnpackInput, pipeline.UnpackResult],
	fs ports.FileSystem,
	sink ports.FrameSink,
	logger ports.Logger,
	opts ...Option,
) *Orchestrator {
	o := &Orchestrator{
		packStage:      packStage,
		transcodeStage: transcodeStage,
		extractStage:   extractStage,
		unpackStage:    unpackStage,
		fs:             fs,
		sink:           sink,
		logger:         logger,
		tokens:         metadata.DefaultTokenCodec(),
	}
	for _, opt := range opts {
		opt(o)
	}
	o.packStage = pipeline.Observed("pack", o.packStage, o.observeStage)
	o.transcodeStage = pipeline.Observed("transcode", o.transcodeStage, o.observeStage)
	o.extractStage = pipeline.Observed("extract", o.extractStage, o.observeStage)
	o.unpackStage = pipeline.Observed("unpack", o.unpackStage, o.observeStage)
	return o
}

func (o *Orchestrator) observeStage(stage string, elapsed time.Duration, err error) {
	o.metrics.ObserveStage(stage, elapsed)
	if err == nil {
		o.logger.Debug("Stage %s finished in %v", stage, elapsed.Round(time.Millisecond))
	}
}

// EncodeResult describes a finished encode job.
type EncodeResult struct {
	JobID        string
	Token        string
	Metadata     metadata.Metadata
	InputPath    string
	OutputPath   string
	ManifestPath string // Empty when no manifest was written
	Codec        string

	FrameCount    int
	PaddingBytes  int64
	OutputSize    int64
	SHA256        string
	VideoDuration time.Duration
	Verified      bool

	Elapsed time.Duration
}

// DecodeResult describes a finished decode job.
type DecodeResult struct {
	JobID      string
	Token      string
	Metadata   metadata.Metadata
	VideoPath  string
	OutputPath string

	FrameCount       int
	SurplusFrames    int
	BytesWritten     int64
	SHA256           string
	ManifestVerified bool

	Elapsed time.Duration
}

// RunEncode packs one file into frames and writes them as <token><ext>.
func (o *Orchestrator) RunEncode(ctx context.Context, config EncodeConfig) (result EncodeResult, err error) {
	start := time.Now()
	result.JobID = uuid.NewString()
	result.InputPath = config.InputPath
	result.Codec = config.Codec
	log := o.logger.WithComponent("encode")
	defer func() {
		o.metrics.RecordJob(metrics.DirectionEncode, err)
	}()

	log.Info("Encoding %s (job %s)", config.InputPath, result.JobID)

	// 1. Read input
	data, err := o.fs.ReadFile(config.InputPath)
	if err != nil {
		log.Error("Failed to read input: %s", err)
		return result, fmt.Errorf("read input: %w", err)
	}

	// 2. Pack bytes into frames
	log.Info("Packing %d bytes at %s", len(data), config.Geometry)
	packed, err := o.packStage.Execute(ctx, pipeline.PackInput{
		Name:     config.InputPath,
		Data:     data,
		Geometry: config.Geometry,
	})
	if err != nil {
		log.Error("Failed to pack frames: %s", err)
		return result, fmt.Errorf("pack stage: %w", err)
	}
	result.Metadata = packed.Metadata
	result.FrameCount = len(packed.Frames)
	result.PaddingBytes = packed.Padding
	log.Info("Packed %d frames (%d padding bytes)", len(packed.Frames), packed.Padding)

	token, err := o.tokens.EncodeToken(packed.Metadata)
	if err != nil {
		return result, fmt.Errorf("build token: %w", err)
	}
	result.Token = token

	if err := o.fs.MkdirAll(config.OutputDir); err != nil {
		return result, fmt.Errorf("create output directory: %w", err)
	}
	outputPath := filepath.Join(config.OutputDir, token+o.extension)

	// 3. Transcode to a lossless video
	log.Info("Writing %s with %s at %v fps", outputPath, config.Codec, config.FPS)
	encoded, err := o.transcodeStage.Execute(ctx, pipeline.TranscodeInput{
		Frames:     packed.Frames,
		OutputPath: outputPath,
		FPS:        config.FPS,
		Options: ports.EncoderOptions{
			Codec:       config.Codec,
			FrameFormat: config.FrameFormat,
			Threads:     config.Threads,
		},
	})
	if err != nil {
		log.Error("Failed to encode video: %s", err)
		return result, fmt.Errorf("transcode stage: %w", err)
	}
	result.OutputPath = encoded.OutputPath
	result.OutputSize = encoded.FileSize
	result.VideoDuration = encoded.Duration

	// 4. Verify the container holds every frame
	if config.Verify && o.probe != nil {
		if err := o.verify(ctx, encoded.OutputPath, packed.Metadata, len(packed.Frames)); err != nil {
			log.Error("Verification failed: %s", err)
			o.fs.Remove(encoded.OutputPath)
			return result, err
		}
		result.Verified = true
		log.Info("Verified %d frames", len(packed.Frames))
	}

	// 5. Manifest
	result.SHA256 = metadata.Digest(data)
	manifest := metadata.NewManifest(packed.Metadata, result.SHA256)
	manifest.JobID = result.JobID
	manifest.Codec = config.Codec
	manifest.FPS = config.FPS
	manifestData, err := manifest.Marshal()
	if err != nil {
		o.fs.Remove(encoded.OutputPath)
		return result, fmt.Errorf("encode manifest: %w", err)
	}
	if config.WriteManifest {
		path := metadata.ManifestPath(config.OutputDir, token)
		if err := o.fs.WriteFile(path, manifestData); err != nil {
			log.Error("Failed to write manifest: %s", err)
			o.fs.Remove(path)
			o.fs.Remove(encoded.OutputPath)
			return result, fmt.Errorf("write manifest: %w", err)
		}
		result.ManifestPath = path
	}
	if o.sink.Enabled() {
		if err := o.sink.SaveManifest(manifestData); err != nil {
			log.Warn("Failed to save debug manifest: %s", err)
		}
	}

	o.metrics.AddBytes(metrics.DirectionEncode, int64(len(data)))
	o.metrics.AddFrames(metrics.DirectionEncode, len(packed.Frames))
	result.Elapsed = time.Since(start)
	log.Info("Encoded %s to %s", config.InputPath, result.OutputPath)
	return result, nil
}

func (o *Orchestrator) verify(ctx context.Context, path string, meta metadata.Metadata, frames int) error {
	probe, err := o.probe.Probe(ctx, path)
	if err != nil {
		return fmt.Errorf("verify: %w", err)
	}
	if probe.Width != meta.Width || probe.Height != meta.Height {
		return fmt.Errorf("%w: output is %dx%d, expected %dx%d",
			framecodec.ErrGeometryMismatch, probe.Width, probe.Height, meta.Width, meta.Height)
	}
	if probe.FrameCount >= 0 && probe.FrameCount != frames {
		return fmt.Errorf("%w: output has %d frames, wrote %d", ErrFrameCountMismatch, probe.FrameCount, frames)
	}
	return nil
}

// RunDecode reads the token from the video's name, extracts its frames and
// writes the original file to config.OutputDir.
func (o *Orchestrator) RunDecode(ctx context.Context, config DecodeConfig) (result DecodeResult, err error) {
	start := time.Now()
	result.JobID = uuid.NewString()
	result.VideoPath = config.VideoPath
	log := o.logger.WithComponent("decode")
	defer func() {
		o.metrics.RecordJob(metrics.DirectionDecode, err)
	}()

	// 1. Parse the token
	token := o.tokens.TokenFromPath(config.VideoPath)
	meta, err := o.tokens.DecodeToken(token)
	if err != nil {
		log.Error("Failed to parse token %s: %s", token, err)
		return result, fmt.Errorf("parse token: %w", err)
	}
	result.Token = token
	result.Metadata = meta
	log.Info("Decoding %s (job %s): %s, %dx%d, %d bytes",
		config.VideoPath, result.JobID, meta.OriginalName, meta.Width, meta.Height, meta.OriginalSizeBytes)

	// 2. Optional manifest
	var manifest *metadata.Manifest
	if config.VerifyManifest {
		manifest, err = o.loadManifest(filepath.Dir(config.VideoPath), token)
		if err != nil {
			return result, err
		}
		if manifest != nil {
			if err := manifest.Check(meta); err != nil {
				return result, err
			}
			log.Debug("Found manifest for job %s", manifest.JobID)
		}
	}

	// 3. Extract frames
	extracted, err := o.extractStage.Execute(ctx, pipeline.ExtractInput{
		VideoPath: config.VideoPath,
		Metadata:  meta,
	})
	if err != nil {
		log.Error("Failed to extract frames: %s", err)
		return result, fmt.Errorf("extract stage: %w", err)
	}
	log.Info("Extracted %d frames", len(extracted.Frames))

	// 4. Reassemble into a staging file
	if err := o.fs.MkdirAll(config.OutputDir); err != nil {
		return result, fmt.Errorf("create output directory: %w", err)
	}
	outputPath := filepath.Join(config.OutputDir, meta.OriginalName)
	partialPath := outputPath + ".partial"

	w, err := o.fs.Create(partialPath)
	if err != nil {
		return result, fmt.Errorf("create output: %w", err)
	}
	digest := metadata.NewDigest()

	unpacked, err := o.unpackStage.Execute(ctx, pipeline.UnpackInput{
		Frames:   extracted.Frames,
		Metadata: meta,
		Output:   io.MultiWriter(w, digest),
	})
	closeErr := w.Close()
	if err == nil && closeErr != nil {
		err = fmt.Errorf("close output: %w", closeErr)
	}
	if err != nil {
		o.fs.Remove(partialPath)
		log.Error("Failed to reassemble file: %s", err)
		return result, fmt.Errorf("unpack stage: %w", err)
	}
	result.FrameCount = unpacked.FrameCount
	result.SurplusFrames = unpacked.SurplusFrames
	result.BytesWritten = unpacked.BytesWritten
	result.SHA256 = metadata.SumHex(digest)

	if manifest != nil {
		if err := manifest.Verify(result.SHA256); err != nil {
			o.fs.Remove(partialPath)
			log.Error("Checksum verification failed: %s", err)
			return result, err
		}
		result.ManifestVerified = true
	}

	if err := o.fs.Rename(partialPath, outputPath); err != nil {
		o.fs.Remove(partialPath)
		return result, fmt.Errorf("move output: %w", err)
	}
	result.OutputPath = outputPath

	o.metrics.AddBytes(metrics.DirectionDecode, unpacked.BytesWritten)
	o.metrics.AddFrames(metrics.DirectionDecode, len(extracted.Frames))
	result.Elapsed = time.Since(start)
	log.Info("Decoded %s to %s", config.VideoPath, outputPath)
	return result, nil
}

// loadManifest returns nil when no sidecar exists.
func (o *Orchestrator) loadManifest(dir, token string) (*metadata.Manifest, error) {
	path := metadata.ManifestPath(dir, token)
	exists, err := o.fs.Exists(path)
	if err != nil {
		return nil, fmt.Errorf("check manifest: %w", err)
	}
	if !exists {
		return nil, nil
	}
	data, err := o.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	manifest, err := metadata.UnmarshalManifest(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return manifest, nil
}
