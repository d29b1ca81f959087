package ffmpeg

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"

	"github.com/user/bytereel/pkg/ports"
)

// Prober implements ports.ContainerProbe with ffprobe.
type Prober struct{}

// NewProber creates a new ffprobe-based probe.
func NewProber() *Prober {
	return &Prober{}
}

type probeOutput struct {
	Streams []struct {
		CodecName     string `json:"codec_name"`
		Width         int    `json:"width"`
		Height        int    `json:"height"`
		NbReadPackets string `json:"nb_read_packets"`
	} `json:"streams"`
}

func buildProbeArgs(path string) []string {
	return []string{
		"-v", "error",
		"-select_streams", "v:0",
		"-count_packets",
		"-show_entries", "stream=codec_name,width,height,nb_read_packets",
		"-of", "json",
		path,
	}
}

// Probe reports the dimensions and packet count of the first video stream.
func (p *Prober) Probe(ctx context.Context, path string) (ports.ProbeResult, error) {
	ffprobePath, err := FindFFprobe()
	if err != nil {
		return ports.ProbeResult{}, err
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, ffprobePath, buildProbeArgs(path)...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return ports.ProbeResult{}, fmt.Errorf("ffprobe failed: %w\nstderr: %s", err, stderr.String())
	}
	return parseProbeOutput(stdout.Bytes())
}

func parseProbeOutput(data []byte) (ports.ProbeResult, error) {
	var out probeOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return ports.ProbeResult{}, fmt.Errorf("parse ffprobe output: %w", err)
	}
	if len(out.Streams) == 0 {
		return ports.ProbeResult{}, fmt.Errorf("no video stream found")
	}

	s := out.Streams[0]
	result := ports.ProbeResult{
		Width:      s.Width,
		Height:     s.Height,
		FrameCount: -1,
		Codec:      s.CodecName,
	}
	if n, err := strconv.Atoi(s.NbReadPackets); err == nil {
		result.FrameCount = n
	}
	return result, nil
}

// Ensure Prober implements ports.ContainerProbe
var _ ports.ContainerProbe = (*Prober)(nil)
