package config

// Builder provides a fluent interface for layering overrides on a Config.
type Builder struct {
	config Config
}

// NewBuilder creates a Builder starting from base.
func NewBuilder(base Config) *Builder {
	return &Builder{config: base}
}

// WithResolution sets the resolution label, menu key or WxH.
func (b *Builder) WithResolution(r string) *Builder {
	b.config.Resolution = r
	return b
}

// WithCodec sets the codec name.
func (b *Builder) WithCodec(codec string) *Builder {
	b.config.Codec = codec
	return b
}

// WithFPS sets the frame rate.
func (b *Builder) WithFPS(fps float64) *Builder {
	b.config.FPS = fps
	return b
}

// WithFrameFormat sets the image format for frame directories.
func (b *Builder) WithFrameFormat(format string) *Builder {
	b.config.FrameFormat = format
	return b
}

// WithDelimiter sets the token delimiter.
func (b *Builder) WithDelimiter(delim string) *Builder {
	b.config.Delimiter = delim
	return b
}

// WithWorkers sets the number of packing workers.
func (b *Builder) WithWorkers(n int) *Builder {
	b.config.Workers = n
	return b
}

// WithThreads sets the encoder thread count.
func (b *Builder) WithThreads(n int) *Builder {
	b.config.Threads = n
	return b
}

// WithEncodedDir sets the directory encoded outputs are written to.
func (b *Builder) WithEncodedDir(dir string) *Builder {
	b.config.EncodedDir = dir
	return b
}

// WithDecodedDir sets the directory decoded files are written to.
func (b *Builder) WithDecodedDir(dir string) *Builder {
	b.config.DecodedDir = dir
	return b
}

// WithInputDir sets the directory scanned by list.
func (b *Builder) WithInputDir(dir string) *Builder {
	b.config.InputDir = dir
	return b
}

// WithFFmpegPath sets an explicit ffmpeg binary.
func (b *Builder) WithFFmpegPath(path string) *Builder {
	b.config.FFmpegPath = path
	return b
}

// WithFFprobePath sets an explicit ffprobe binary.
func (b *Builder) WithFFprobePath(path string) *Builder {
	b.config.FFprobePath = path
	return b
}

// WithStrictResolution limits encodes to the resolution table.
func (b *Builder) WithStrictResolution(strict bool) *Builder {
	b.config.StrictResolution = strict
	return b
}

// WithSkipProbe allows jobs to run when no container probe is available.
func (b *Builder) WithSkipProbe(skip bool) *Builder {
	b.config.SkipProbe = skip
	return b
}

// WithManifest enables or disables the sidecar manifest.
func (b *Builder) WithManifest(enabled bool) *Builder {
	b.config.Manifest = enabled
	return b
}

// WithVerify enables or disables post-encode verification.
func (b *Builder) WithVerify(enabled bool) *Builder {
	b.config.Verify = enabled
	return b
}

// WithLogLevel sets the log level.
func (b *Builder) WithLogLevel(level string) *Builder {
	b.config.LogLevel = level
	return b
}

// WithDebug enables debug output to dir.
func (b *Builder) WithDebug(enabled bool, dir string) *Builder {
	b.config.Debug = enabled
	if dir != "" {
		b.config.DebugDir = dir
	}
	return b
}

// WithMetricsFile sets the Prometheus textfile path.
func (b *Builder) WithMetricsFile(path string) *Builder {
	b.config.MetricsFile = path
	return b
}

// WithSummaryFile sets the Markdown summary path.
func (b *Builder) WithSummaryFile(path string) *Builder {
	b.config.SummaryFile = path
	return b
}

// Build validates and returns the Config.
func (b *Builder) Build() (Config, error) {
	if err := b.config.Validate(); err != nil {
		return b.config, err
	}
	return b.config, nil
}
