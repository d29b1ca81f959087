package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/user/bytereel/pkg/geometry"
	"github.com/user/bytereel/pkg/ports"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}

	g, err := cfg.Geometry()
	if err != nil {
		t.Fatal(err)
	}
	if g != (geometry.Geometry{Width: 1280, Height: 720}) {
		t.Errorf("expected 720p default, got %v", g)
	}
	if cfg.FPS != 24 || cfg.Codec != "ffv1" || cfg.Delimiter != "__" {
		t.Errorf("unexpected defaults %+v", cfg)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bytereel.yaml")
	yaml := "resolution: 360p\ncodec: frames\nframe_format: bmp\nmanifest: false\n"
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}
	if cfg.Resolution != "360p" || cfg.Codec != "frames" || cfg.FrameFormat != "bmp" || cfg.Manifest {
		t.Errorf("file values not applied: %+v", cfg)
	}
	// Untouched keys keep their defaults
	if cfg.FPS != 24 || cfg.EncodedDir != "encoded" || !cfg.Verify {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadFromFile_Errors(t *testing.T) {
	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	os.WriteFile(path, []byte("fps: [\n"), 0644)
	if _, err := LoadFromFile(path); err == nil {
		t.Error("expected error for invalid yaml")
	}
}

func TestGeometry_StrictResolution(t *testing.T) {
	cfg := Defaults()
	cfg.Resolution = "640x360"
	cfg.StrictResolution = true
	g, err := cfg.Geometry()
	if err != nil {
		t.Fatalf("table resolution given as WxH should pass: %v", err)
	}
	if g.Width != 640 || g.Height != 360 {
		t.Errorf("unexpected geometry %v", g)
	}

	cfg.Resolution = "641x360"
	if _, err := cfg.Geometry(); err == nil {
		t.Error("expected resolution outside the table to fail")
	}
	cfg.StrictResolution = false
	if _, err := cfg.Geometry(); err != nil {
		t.Errorf("free WxH should pass without strict mode: %v", err)
	}
}

func TestApplyEnvFrom(t *testing.T) {
	cfg := Defaults()
	cfg.Codec = "frames"

	err := ApplyEnvFrom(&cfg, map[string]string{
		"BYTEREEL_RESOLUTION":  "1080p",
		"BYTEREEL_FPS":         "30",
		"BYTEREEL_VERIFY":      "false",
		"BYTEREEL_ENCODED_DIR": "/tmp/out",
		"BYTEREEL_SKIP_PROBE":  "true",
		"UNRELATED":            "x",
	})
	if err != nil {
		t.Fatalf("ApplyEnvFrom failed: %v", err)
	}

	if cfg.Resolution != "1080p" || cfg.FPS != 30 || cfg.Verify || cfg.EncodedDir != "/tmp/out" {
		t.Errorf("env values not applied: %+v", cfg)
	}
	if cfg.Codec != "frames" {
		t.Errorf("unset variables must not override, got codec %q", cfg.Codec)
	}
	if !cfg.SkipProbe {
		t.Error("BYTEREEL_SKIP_PROBE not applied")
	}
}

func TestApplyEnvFrom_InvalidValue(t *testing.T) {
	cfg := Defaults()
	if err := ApplyEnvFrom(&cfg, map[string]string{"BYTEREEL_WORKERS": "many"}); err == nil {
		t.Error("expected error for non-numeric workers")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"resolution", func(c *Config) { c.Resolution = "999p" }},
		{"oversized resolution", func(c *Config) { c.Resolution = "2147483647x2147483647" }},
		{"strict resolution", func(c *Config) { c.Resolution = "4x2"; c.StrictResolution = true }},
		{"delimiter", func(c *Config) { c.Delimiter = "x" }},
		{"frame format", func(c *Config) { c.FrameFormat = "jpeg" }},
		{"codec", func(c *Config) { c.Codec = "vp9" }},
		{"fps", func(c *Config) { c.FPS = 0 }},
		{"workers", func(c *Config) { c.Workers = -1 }},
		{"log level", func(c *Config) { c.LogLevel = "loud" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestCodecs(t *testing.T) {
	for _, c := range []string{"ffv1", "h264rgb", "frames"} {
		if !IsCodec(c) {
			t.Errorf("expected %q to be a codec", c)
		}
	}
	if IsCodec("mjpeg") {
		t.Error("mjpeg is lossy and must not be accepted")
	}
	if len(Codecs()) < 3 {
		t.Errorf("unexpected codec list %v", Codecs())
	}
}

func TestToEncodeConfig(t *testing.T) {
	cfg, err := NewBuilder(Defaults()).
		WithResolution("2").
		WithCodec("frames").
		WithFrameFormat("tiff").
		WithThreads(2).
		WithEncodedDir("out").
		WithManifest(false).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	enc, err := cfg.ToEncodeConfig("input/a.bin")
	if err != nil {
		t.Fatalf("ToEncodeConfig failed: %v", err)
	}
	if enc.Geometry != (geometry.Geometry{Width: 640, Height: 360}) {
		t.Errorf("expected 640x360, got %v", enc.Geometry)
	}
	if enc.InputPath != "input/a.bin" || enc.OutputDir != "out" || enc.Codec != "frames" {
		t.Errorf("unexpected encode config %+v", enc)
	}
	if enc.FrameFormat != ports.FormatTIFF || enc.Threads != 2 || enc.WriteManifest || !enc.Verify {
		t.Errorf("unexpected encode options %+v", enc)
	}

	dec := cfg.ToDecodeConfig("out/a.bin__640x360__5")
	if dec.OutputDir != "decoded" || dec.VerifyManifest {
		t.Errorf("unexpected decode config %+v", dec)
	}
}

func TestBuilder_RejectsInvalid(t *testing.T) {
	_, err := NewBuilder(Defaults()).WithFPS(-1).Build()
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}

	cfg, err := NewBuilder(Defaults()).WithDebug(true, "").WithLogLevel("debug").Build()
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Debug || cfg.DebugDir != "./debug" || cfg.Level() != ports.LevelDebug {
		t.Errorf("unexpected debug settings %+v", cfg)
	}
}
