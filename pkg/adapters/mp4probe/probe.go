// Package mp4probe reads video stream geometry and sample counts from MP4
// containers without decoding any frames.
package mp4probe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Eyevinn/mp4ff/mp4"

	"github.com/user/bytereel/pkg/ports"
)

// ErrNoVideoTrack is returned when the file has no usable video track.
var ErrNoVideoTrack = errors.New("mp4probe: no video track found")

// Prober implements ports.ContainerProbe for MP4 files.
type Prober struct{}

// New creates a new MP4 probe.
func New() *Prober {
	return &Prober{}
}

// Probe opens path and inspects its first video track.
func (p *Prober) Probe(ctx context.Context, path string) (ports.ProbeResult, error) {
	if err := ctx.Err(); err != nil {
		return ports.ProbeResult{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		return ports.ProbeResult{}, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	return ProbeReader(f)
}

// ProbeReader inspects an MP4 stream.
func ProbeReader(reader io.ReadSeeker) (ports.ProbeResult, error) {
	mp4File, err := mp4.DecodeFile(reader)
	if err != nil {
		return ports.ProbeResult{}, fmt.Errorf("decode mp4: %w", err)
	}
	return probeFile(mp4File)
}

func probeFile(mp4File *mp4.File) (ports.ProbeResult, error) {
	var traks []*mp4.TrakBox
	if mp4File.IsFragmented() {
		if mp4File.Init != nil && mp4File.Init.Moov != nil {
			traks = mp4File.Init.Moov.Traks
		}
	} else if mp4File.Moov != nil {
		traks = mp4File.Moov.Traks
	}

	for _, trak := range traks {
		result, ok := probeTrack(trak)
		if !ok {
			continue
		}
		if mp4File.IsFragmented() {
			result.FrameCount = countFragmentSamples(mp4File, trak.Tkhd.TrackID)
		}
		return result, nil
	}
	return ports.ProbeResult{}, ErrNoVideoTrack
}

func probeTrack(trak *mp4.TrakBox) (ports.ProbeResult, bool) {
	if trak.Mdia == nil || trak.Mdia.Hdlr == nil {
		return ports.ProbeResult{}, false
	}
	// Only video tracks
	if trak.Mdia.Hdlr.HandlerType != "vide" {
		return ports.ProbeResult{}, false
	}
	if trak.Mdia.Minf == nil || trak.Mdia.Minf.Stbl == nil || trak.Mdia.Minf.Stbl.Stsd == nil {
		return ports.ProbeResult{}, false
	}

	stbl := trak.Mdia.Minf.Stbl
	result := ports.ProbeResult{FrameCount: -1}
	for _, child := range stbl.Stsd.Children {
		vse, ok := child.(*mp4.VisualSampleEntryBox)
		if !ok {
			continue
		}
		result.Width = int(vse.Width)
		result.Height = int(vse.Height)
		result.Codec = vse.Type()
		break
	}
	if result.Codec == "" {
		return ports.ProbeResult{}, false
	}
	if stbl.Stsz != nil {
		result.FrameCount = int(stbl.Stsz.SampleNumber)
	}
	return result, true
}

func countFragmentSamples(mp4File *mp4.File, trackID uint32) int {
	count := 0
	for _, seg := range mp4File.Segments {
		for _, frag := range seg.Fragments {
			if frag.Moof == nil {
				continue
			}
			for _, traf := range frag.Moof.Trafs {
				if traf.Tfhd == nil || traf.Tfhd.TrackID != trackID {
					continue
				}
				for _, trun := range traf.Truns {
					count += int(trun.SampleCount())
				}
			}
		}
	}
	return count
}

// Ensure Prober implements ports.ContainerProbe
var _ ports.ContainerProbe = (*Prober)(nil)
