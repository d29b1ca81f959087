package bytereel

import (
	"bytes"
	"context"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/bytereel/pkg/adapters/ffmpeg"
	"github.com/user/bytereel/pkg/adapters/framedir"
	"github.com/user/bytereel/pkg/adapters/mp4probe"
	"github.com/user/bytereel/pkg/adapters/osfilesystem"
	"github.com/user/bytereel/pkg/config"
	"github.com/user/bytereel/pkg/metadata"
	"github.com/user/bytereel/pkg/metrics"
	"github.com/user/bytereel/pkg/mocks"
	"github.com/user/bytereel/pkg/ports"
)

func frameDirConfig(t *testing.T, root string) config.Config {
	t.Helper()
	cfg, err := config.NewBuilder(config.Defaults()).
		WithResolution("4x2").
		WithCodec(framedir.CodecName).
		WithWorkers(2).
		WithEncodedDir(filepath.Join(root, "encoded")).
		WithDecodedDir(filepath.Join(root, "decoded")).
		Build()
	require.NoError(t, err)
	return cfg
}

func TestRunner_FrameDirRoundTrip(t *testing.T) {
	root := t.TempDir()
	data := make([]byte, 24*3+7)
	rand.New(rand.NewSource(42)).Read(data)
	input := filepath.Join(root, "payload.bin")
	require.NoError(t, os.WriteFile(input, data, 0644))

	m := metrics.New()
	r, err := NewRunner(frameDirConfig(t, root), WithMetrics(m))
	require.NoError(t, err)

	enc, err := r.Encode(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, "payload.bin__4x2__79", enc.Token)
	assert.Equal(t, 4, enc.FrameCount)
	assert.Equal(t, int64(17), enc.PaddingBytes)
	assert.True(t, enc.Verified)
	assert.DirExists(t, enc.OutputPath)
	assert.FileExists(t, enc.ManifestPath)

	dec, err := r.Decode(context.Background(), enc.OutputPath)
	require.NoError(t, err)
	assert.True(t, dec.ManifestVerified)
	assert.Equal(t, enc.SHA256, dec.SHA256)
	assert.Equal(t, filepath.Join(root, "decoded", "payload.bin"), dec.OutputPath)

	out, err := os.ReadFile(dec.OutputPath)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(data, out), "decoded bytes differ")

	jobs, err := testutil.GatherAndCount(m.Registry(), "bytereel_jobs_total")
	require.NoError(t, err)
	assert.Equal(t, 2, jobs)
}

func TestEncodeFile_DecodeFile(t *testing.T) {
	root := t.TempDir()
	input := filepath.Join(root, "five.bin")
	require.NoError(t, os.WriteFile(input, []byte("ABCDE"), 0644))

	cfg := frameDirConfig(t, root)
	cfg.Resolution = "2x1"

	enc, err := EncodeFile(context.Background(), cfg, input)
	require.NoError(t, err)
	assert.Equal(t, "five.bin__2x1__5", enc.Token)
	assert.Equal(t, 1, enc.FrameCount)

	dec, err := DecodeFile(context.Background(), cfg, enc.OutputPath)
	require.NoError(t, err)
	out, err := os.ReadFile(dec.OutputPath)
	require.NoError(t, err)
	assert.Equal(t, "ABCDE", string(out))
}

func TestNewRunner_InvalidConfig(t *testing.T) {
	cfg := config.Defaults()
	cfg.Codec = "mpeg2"
	_, err := NewRunner(cfg)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

// fakeFFprobe points ffprobe discovery at a file that exists, so adapter
// selection does not depend on the host.
func fakeFFprobe(t *testing.T) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ffprobe")
	require.NoError(t, os.WriteFile(path, nil, 0755))
	ffmpeg.SetFFprobePath(path)
	t.Cleanup(func() { ffmpeg.SetFFprobePath("") })
}

func missingFFprobe(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "no-such-ffprobe")
	ffmpeg.SetFFprobePath(path)
	t.Cleanup(func() { ffmpeg.SetFFprobePath("") })
	return path
}

func TestAdaptersForCodec(t *testing.T) {
	fs := osfilesystem.New()
	fakeFFprobe(t)

	a, err := AdaptersForCodec("ffv1", fs)
	require.NoError(t, err)
	assert.Equal(t, ".mkv", a.Extension)
	assert.IsType(t, &ffmpeg.Encoder{}, a.Encoder)
	assert.IsType(t, &ffmpeg.Decoder{}, a.Decoder)
	assert.IsType(t, &ffmpeg.Prober{}, a.Probe)

	a, err = AdaptersForCodec("h264rgb", fs)
	require.NoError(t, err)
	assert.Equal(t, ".mp4", a.Extension)
	assert.IsType(t, &mp4probe.Prober{}, a.Probe)

	a, err = AdaptersForCodec(framedir.CodecName, fs)
	require.NoError(t, err)
	assert.Empty(t, a.Extension)
	assert.IsType(t, &framedir.Writer{}, a.Encoder)
	assert.IsType(t, &framedir.Reader{}, a.Probe)

	_, err = AdaptersForCodec("mpeg2", fs)
	assert.ErrorIs(t, err, ffmpeg.ErrUnknownCodec)
}

func TestAdaptersForVideo(t *testing.T) {
	fs := osfilesystem.New()
	dir := t.TempDir()

	a, err := AdaptersForVideo(dir, fs)
	require.NoError(t, err)
	assert.IsType(t, &framedir.Reader{}, a.Decoder)

	mp4 := filepath.Join(dir, "a__2x1__5.MP4")
	require.NoError(t, os.WriteFile(mp4, nil, 0644))
	a, err = AdaptersForVideo(mp4, fs)
	require.NoError(t, err)
	assert.Equal(t, ".mp4", a.Extension)
	assert.IsType(t, &mp4probe.Prober{}, a.Probe)

	bare := filepath.Join(dir, "noext")
	require.NoError(t, os.WriteFile(bare, nil, 0644))
	_, err = AdaptersForVideo(bare, fs)
	assert.Error(t, err)

	_, err = AdaptersForVideo(filepath.Join(dir, "missing.mkv"), fs)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestList(t *testing.T) {
	fs := osfilesystem.New()
	dir := t.TempDir()
	for _, name := range []string{
		"a.bin__2x1__5.mkv",
		"a.bin__2x1__5" + metadata.ManifestSuffix,
		"b.bin__640x360__100.mkv.partial",
		"notes.txt",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "c.tar__4x2__30"), 0755))

	entries, err := List(fs, dir, metadata.DefaultTokenCodec())
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "a.bin__2x1__5", entries[0].Token)
	assert.Equal(t, int64(5), entries[0].Metadata.OriginalSizeBytes)
	assert.Equal(t, "c.tar__4x2__30", entries[1].Token)
	assert.Equal(t, 4, entries[1].Metadata.Width)
}

func TestAdapters_MissingFFprobe(t *testing.T) {
	fs := osfilesystem.New()
	missingFFprobe(t)

	_, err := AdaptersForCodec("ffv1", fs)
	assert.ErrorIs(t, err, ErrProbeUnavailable)

	a, err := AdaptersForCodec("h264rgb", fs)
	require.NoError(t, err, "mp4 is probed in process")
	assert.NotNil(t, a.Probe)

	mkv := filepath.Join(t.TempDir(), "a__2x1__5.mkv")
	require.NoError(t, os.WriteFile(mkv, nil, 0644))
	_, err = AdaptersForVideo(mkv, fs)
	assert.ErrorIs(t, err, ErrProbeUnavailable)

	a, err = adaptersForVideo(mkv, fs, false)
	require.NoError(t, err)
	assert.Nil(t, a.Probe)
	assert.NotNil(t, a.Decoder)
}

func TestRunner_DecodeWithoutFFprobe(t *testing.T) {
	root := t.TempDir()
	mkv := filepath.Join(root, "a__2x1__5.mkv")
	require.NoError(t, os.WriteFile(mkv, []byte("not a video"), 0644))

	cfg := frameDirConfig(t, root)
	cfg.FFprobePath = missingFFprobe(t)

	r, err := NewRunner(cfg)
	require.NoError(t, err)
	_, err = r.Decode(context.Background(), mkv)
	require.ErrorIs(t, err, ErrProbeUnavailable)
	_, statErr := os.Stat(filepath.Join(cfg.DecodedDir, "a"))
	assert.True(t, os.IsNotExist(statErr), "nothing may be written without a geometry check")

	cfg.SkipProbe = true
	log := mocks.NewLogger()
	r, err = NewRunner(cfg, WithLogger(log))
	require.NoError(t, err)
	_, err = r.Decode(context.Background(), mkv)
	assert.Error(t, err, "the file is not a video")
	assert.NotErrorIs(t, err, ErrProbeUnavailable)

	var warned bool
	for _, e := range log.Entries() {
		if e.Level == ports.LevelWarn && strings.Contains(e.Message, "No container probe for "+mkv) {
			warned = true
		}
	}
	assert.True(t, warned, "skipping the probe must be logged")
}
