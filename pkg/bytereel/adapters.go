package bytereel

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/user/bytereel/pkg/adapters/ffmpeg"
	"github.com/user/bytereel/pkg/adapters/framedir"
	"github.com/user/bytereel/pkg/adapters/imagecodec"
	"github.com/user/bytereel/pkg/adapters/mp4probe"
	"github.com/user/bytereel/pkg/ports"
)

// ErrProbeUnavailable is returned when a container has no probe. Without one
// the raw frame stream cannot be checked against the token geometry.
var ErrProbeUnavailable = errors.New("bytereel: no container probe available")

// Adapters bundles the transcoder side of one job.
type Adapters struct {
	Encoder   ports.VideoEncoder
	Decoder   ports.VideoDecoder
	Probe     ports.ContainerProbe // nil when no probe is available
	Extension string               // Appended to the token; empty for frame directories
}

// AdaptersForCodec returns the adapters that write codec. It fails with
// ErrProbeUnavailable when the container needs ffprobe and none is found.
func AdaptersForCodec(codec string, fs ports.FileSystem) (Adapters, error) {
	return adaptersForCodec(codec, fs, true)
}

func adaptersForCodec(codec string, fs ports.FileSystem, requireProbe bool) (Adapters, error) {
	if codec == framedir.CodecName {
		return frameDirAdapters(fs), nil
	}

	profile, err := ffmpeg.LookupProfile(codec)
	if err != nil {
		return Adapters{}, err
	}
	probe, err := probeFor(profile.Extension)
	if err != nil && requireProbe {
		return Adapters{}, err
	}
	return Adapters{
		Encoder:   ffmpeg.NewEncoder(),
		Decoder:   ffmpeg.NewDecoder(),
		Probe:     probe,
		Extension: profile.Extension,
	}, nil
}

// AdaptersForVideo returns the adapters that read the encoded output at path.
// Directories are read as frame directories. Like AdaptersForCodec it fails
// with ErrProbeUnavailable when the container cannot be probed.
func AdaptersForVideo(path string, fs ports.FileSystem) (Adapters, error) {
	return adaptersForVideo(path, fs, true)
}

func adaptersForVideo(path string, fs ports.FileSystem, requireProbe bool) (Adapters, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Adapters{}, err
	}
	if info.IsDir() {
		return frameDirAdapters(fs), nil
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return Adapters{}, fmt.Errorf("%s: cannot tell container from file name", path)
	}
	probe, err := probeFor(ext)
	if err != nil && requireProbe {
		return Adapters{}, err
	}
	return Adapters{
		Decoder:   ffmpeg.NewDecoder(),
		Probe:     probe,
		Extension: ext,
	}, nil
}

func frameDirAdapters(fs ports.FileSystem) Adapters {
	codec := imagecodec.New()
	reader := framedir.NewReader(fs, codec)
	return Adapters{
		Encoder: framedir.NewWriter(fs, codec),
		Decoder: reader,
		Probe:   reader,
	}
}

// probeFor reads MP4 headers in process and falls back to ffprobe for
// other containers.
func probeFor(ext string) (ports.ContainerProbe, error) {
	if ext == ".mp4" {
		return mp4probe.New(), nil
	}
	if _, err := ffmpeg.FindFFprobe(); err != nil {
		return nil, fmt.Errorf("%w: %s files need ffprobe: %v", ErrProbeUnavailable, ext, err)
	}
	return ffmpeg.NewProber(), nil
}
