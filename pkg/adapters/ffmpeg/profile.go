package ffmpeg

import (
	"fmt"
	"sort"
)

// Profile is a lossless encoding recipe for one codec.
type Profile struct {
	Name      string
	Extension string   // Output file extension including the dot
	Format    string   // ffmpeg muxer name
	Args      []string // Encoder arguments placed after the input
}

// Every profile must reproduce rgb24 input bit for bit.
var profiles = map[string]Profile{
	"ffv1": {
		Name:      "ffv1",
		Extension: ".mkv",
		Format:    "matroska",
		Args:      []string{"-c:v", "ffv1", "-level", "3", "-g", "1", "-slicecrc", "1", "-pix_fmt", "gbrp"},
	},
	"h264rgb": {
		Name:      "h264rgb",
		Extension: ".mp4",
		Format:    "mp4",
		Args:      []string{"-c:v", "libx264rgb", "-qp", "0", "-preset", "medium", "-pix_fmt", "rgb24", "-movflags", "+faststart"},
	},
	"png": {
		Name:      "png",
		Extension: ".mkv",
		Format:    "matroska",
		Args:      []string{"-c:v", "png", "-pix_fmt", "rgb24"},
	},
}

// LookupProfile returns the profile for a codec name.
func LookupProfile(codec string) (Profile, error) {
	p, ok := profiles[codec]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %q", ErrUnknownCodec, codec)
	}
	return p, nil
}

// Codecs returns the supported codec names in sorted order.
func Codecs() []string {
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
