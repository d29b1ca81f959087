package geometry

import (
	"fmt"
	"strconv"
	"strings"
)

// Resolution is one entry of the supported resolution table.
type Resolution struct {
	Key   string // Menu key ("1".."7")
	Label string // Short name such as "720p"
	Geometry
}

// DefaultLabel is the resolution used when none is chosen.
const DefaultLabel = "720p"

var resolutions = [...]Resolution{
	{Key: "1", Label: "240p", Geometry: Geometry{Width: 426, Height: 240}},
	{Key: "2", Label: "360p", Geometry: Geometry{Width: 640, Height: 360}},
	{Key: "3", Label: "480p", Geometry: Geometry{Width: 854, Height: 480}},
	{Key: "4", Label: "720p", Geometry: Geometry{Width: 1280, Height: 720}},
	{Key: "5", Label: "1080p", Geometry: Geometry{Width: 1920, Height: 1080}},
	{Key: "6", Label: "1440p", Geometry: Geometry{Width: 2560, Height: 1440}},
	{Key: "7", Label: "2160p", Geometry: Geometry{Width: 3840, Height: 2160}},
}

// Resolutions returns a copy of the resolution table in ascending order.
func Resolutions() []Resolution {
	out := make([]Resolution, len(resolutions))
	copy(out[:], resolutions[:])
	return out
}

// Default returns the default resolution.
func Default() Resolution {
	r, _ := lookupTable(DefaultLabel)
	return r
}

// Geometries returns the geometries of the resolution table.
func Geometries() []Geometry {
	out := make([]Geometry, len(resolutions))
	for i, r := range resolutions {
		out[i] = r.Geometry
	}
	return out
}

// IsSupported reports whether g appears in the resolution table.
func IsSupported(g Geometry) bool {
	for _, r := range resolutions {
		if r.Geometry == g {
			return true
		}
	}
	return false
}

// Lookup resolves a label ("720p"), menu key ("4") or explicit "WxH" string.
// An empty string selects the default resolution.
func Lookup(s string) (Geometry, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Default().Geometry, nil
	}
	if r, ok := lookupTable(s); ok {
		return r.Geometry, nil
	}
	if strings.ContainsAny(s, "xX") {
		return Parse(s)
	}
	return Geometry{}, fmt.Errorf("%w: unknown resolution %q", ErrInvalidGeometry, s)
}

// LookupSupported is Lookup restricted to the resolution table.
func LookupSupported(s string) (Geometry, error) {
	g, err := Lookup(s)
	if err != nil {
		return Geometry{}, err
	}
	if !IsSupported(g) {
		return Geometry{}, fmt.Errorf("%w: %s is not a supported resolution", ErrInvalidGeometry, g)
	}
	return g, nil
}

func lookupTable(s string) (Resolution, bool) {
	key := strings.ToLower(s)
	if _, err := strconv.Atoi(key); err == nil {
		for _, r := range resolutions {
			if r.Key == key {
				return r, true
			}
		}
		return Resolution{}, false
	}
	for _, r := range resolutions {
		if r.Label == key {
			return r, true
		}
	}
	return Resolution{}, false
}
