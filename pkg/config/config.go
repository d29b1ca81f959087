// Package config provides configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/user/bytereel/pkg/adapters/ffmpeg"
	"github.com/user/bytereel/pkg/adapters/framedir"
	"github.com/user/bytereel/pkg/geometry"
	"github.com/user/bytereel/pkg/metadata"
	"github.com/user/bytereel/pkg/orchestrator"
	"github.com/user/bytereel/pkg/ports"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "BYTEREEL_"

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config represents the full configuration for bytereel.
type Config struct {
	// Frames
	Resolution string `yaml:"resolution" env:"RESOLUTION"`
	// StrictResolution limits encodes to the resolution table, rejecting WxH.
	StrictResolution bool   `yaml:"strict_resolution" env:"STRICT_RESOLUTION"`
	Delimiter        string `yaml:"delimiter" env:"DELIMITER"`
	FrameFormat      string `yaml:"frame_format" env:"FRAME_FORMAT"`
	Workers          int    `yaml:"workers" env:"WORKERS"`

	// Encoding
	Codec   string  `yaml:"codec" env:"CODEC"`
	FPS     float64 `yaml:"fps" env:"FPS"`
	Threads int     `yaml:"threads" env:"THREADS"`

	// Directories
	InputDir   string `yaml:"input_dir" env:"INPUT_DIR"`
	EncodedDir string `yaml:"encoded_dir" env:"ENCODED_DIR"`
	DecodedDir string `yaml:"decoded_dir" env:"DECODED_DIR"`

	// External tools
	FFmpegPath  string `yaml:"ffmpeg_path" env:"FFMPEG_PATH"`
	FFprobePath string `yaml:"ffprobe_path" env:"FFPROBE_PATH"`
	// SkipProbe lets jobs run without a container probe, which drops the
	// geometry check on decode and verification on encode.
	SkipProbe bool `yaml:"skip_probe" env:"SKIP_PROBE"`

	// Integrity
	Manifest bool `yaml:"manifest" env:"MANIFEST"`
	Verify   bool `yaml:"verify" env:"VERIFY"`

	// Output
	LogLevel    string `yaml:"log_level" env:"LOG_LEVEL"`
	MetricsFile string `yaml:"metrics_file" env:"METRICS_FILE"`
	SummaryFile string `yaml:"summary_file" env:"SUMMARY_FILE"`

	// Debug
	Debug    bool   `yaml:"debug" env:"DEBUG"`
	DebugDir string `yaml:"debug_dir" env:"DEBUG_DIR"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		Resolution:  geometry.DefaultLabel,
		Delimiter:   metadata.DefaultDelimiter,
		FrameFormat: "png",
		Workers:     runtime.NumCPU(),

		Codec: "ffv1",
		FPS:   24.0,

		InputDir:   "input",
		EncodedDir: "encoded",
		DecodedDir: "decoded",

		Manifest: true,
		Verify:   true,

		LogLevel: "info",

		DebugDir: "./debug",
	}
}

// LoadFromFile loads configuration from a YAML file over the defaults.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, nil
}

// ApplyEnv overrides cfg with BYTEREEL_* environment variables that are set.
func ApplyEnv(cfg *Config) error {
	return env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix})
}

// ApplyEnvFrom is ApplyEnv over an explicit environment, for tests.
func ApplyEnvFrom(cfg *Config, environment map[string]string) error {
	return env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix, Environment: environment})
}

// Load returns defaults, overlaid by the YAML file at path (when path is
// not empty), overlaid by the environment.
func Load(path string) (Config, error) {
	cfg := Defaults()
	if path != "" {
		var err error
		if cfg, err = LoadFromFile(path); err != nil {
			return cfg, err
		}
	}
	if err := ApplyEnv(&cfg); err != nil {
		return cfg, fmt.Errorf("read environment: %w", err)
	}
	return cfg, nil
}

// Validate checks every field that has a restricted set of values.
func (c Config) Validate() error {
	if _, err := c.Geometry(); err != nil {
		return fmt.Errorf("%w: resolution: %v", ErrInvalidConfig, err)
	}
	if _, err := metadata.NewTokenCodec(c.Delimiter); err != nil {
		return fmt.Errorf("%w: delimiter: %v", ErrInvalidConfig, err)
	}
	if _, err := ports.ParseImageFormat(c.FrameFormat); err != nil {
		return fmt.Errorf("%w: frame_format: %v", ErrInvalidConfig, err)
	}
	if !IsCodec(c.Codec) {
		return fmt.Errorf("%w: codec %q (want one of %v)", ErrInvalidConfig, c.Codec, Codecs())
	}
	if c.FPS <= 0 {
		return fmt.Errorf("%w: fps must be positive, got %v", ErrInvalidConfig, c.FPS)
	}
	if c.Workers < 0 || c.Threads < 0 {
		return fmt.Errorf("%w: workers and threads must not be negative", ErrInvalidConfig)
	}
	if _, err := ports.ParseLogLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log_level: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Codecs returns every codec name an encode can use.
func Codecs() []string {
	return append(ffmpeg.Codecs(), framedir.CodecName)
}

// IsCodec reports whether name is a known codec.
func IsCodec(name string) bool {
	if name == framedir.CodecName {
		return true
	}
	_, err := ffmpeg.LookupProfile(name)
	return err == nil
}

// Geometry resolves the configured resolution.
func (c Config) Geometry() (geometry.Geometry, error) {
	if c.StrictResolution {
		return geometry.LookupSupported(c.Resolution)
	}
	return geometry.Lookup(c.Resolution)
}

// Level returns the configured log level, or LevelInfo when it does not parse.
func (c Config) Level() ports.LogLevel {
	level, _ := ports.ParseLogLevel(c.LogLevel)
	return level
}

// TokenCodec returns the codec for the configured delimiter.
func (c Config) TokenCodec() (*metadata.TokenCodec, error) {
	return metadata.NewTokenCodec(c.Delimiter)
}

// ToEncodeConfig converts Config to orchestrator.EncodeConfig for one input file.
func (c Config) ToEncodeConfig(inputPath string) (orchestrator.EncodeConfig, error) {
	g, err := c.Geometry()
	if err != nil {
		return orchestrator.EncodeConfig{}, err
	}
	format, err := ports.ParseImageFormat(c.FrameFormat)
	if err != nil {
		return orchestrator.EncodeConfig{}, err
	}
	return orchestrator.EncodeConfig{
		InputPath:     inputPath,
		OutputDir:     c.EncodedDir,
		Geometry:      g,
		FPS:           c.FPS,
		Codec:         c.Codec,
		FrameFormat:   format,
		Threads:       c.Threads,
		WriteManifest: c.Manifest,
		Verify:        c.Verify,
	}, nil
}

// ToDecodeConfig converts Config to orchestrator.DecodeConfig for one video.
func (c Config) ToDecodeConfig(videoPath string) orchestrator.DecodeConfig {
	return orchestrator.DecodeConfig{
		VideoPath:      videoPath,
		OutputDir:      c.DecodedDir,
		VerifyManifest: c.Manifest,
	}
}
