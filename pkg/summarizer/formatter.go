// Package summarizer renders a report of the jobs run in one invocation.
package summarizer

import (
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Formatter renders a Summary as text.
type Formatter interface {
	Format(summary *Summary) string
}

// FormatFunc adapts a function to Formatter.
type FormatFunc func(summary *Summary) string

// Format calls f.
func (f FormatFunc) Format(summary *Summary) string {
	return f(summary)
}

// ForPath picks the formatter for a summary path: YAML for .yaml and .yml
// files, markdown for everything else including Stdout.
func ForPath(path string, markdown Formatter) Formatter {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAMLFormatter{}
	}
	return markdown
}

// YAMLFormatter renders a Summary as a YAML document for scripts.
type YAMLFormatter struct{}

type yamlSummary struct {
	GeneratedAt time.Time    `yaml:"generated_at"`
	Settings    yamlSettings `yaml:"settings"`
	TotalBytes  int64        `yaml:"total_bytes"`
	Jobs        []yamlJob    `yaml:"jobs"`
}

type yamlSettings struct {
	Resolution  string `yaml:"resolution,omitempty"`
	Codec       string `yaml:"codec,omitempty"`
	FPS         int    `yaml:"fps,omitempty"`
	FrameFormat string `yaml:"frame_format,omitempty"`
	Delimiter   string `yaml:"delimiter,omitempty"`
	Workers     int    `yaml:"workers,omitempty"`
}

type yamlJob struct {
	Direction    string `yaml:"direction"`
	JobID        string `yaml:"job_id"`
	Input        string `yaml:"input"`
	Output       string `yaml:"output"`
	Token        string `yaml:"token"`
	Resolution   string `yaml:"resolution"`
	Frames       int    `yaml:"frames"`
	Bytes        int64  `yaml:"bytes"`
	PaddingBytes int64  `yaml:"padding_bytes,omitempty"`
	OutputSize   int64  `yaml:"output_size,omitempty"`
	SHA256       string `yaml:"sha256"`
	Verified     bool   `yaml:"verified"`
	ElapsedMS    int64  `yaml:"elapsed_ms"`
}

// Format implements Formatter.
func (YAMLFormatter) Format(s *Summary) string {
	doc := yamlSummary{
		GeneratedAt: s.GeneratedAt.UTC().Truncate(time.Second),
		Settings:    yamlSettings(s.Settings),
		TotalBytes:  s.TotalBytes(),
		Jobs:        make([]yamlJob, 0, len(s.Jobs)),
	}
	for _, j := range s.Jobs {
		doc.Jobs = append(doc.Jobs, yamlJob{
			Direction:    j.Direction,
			JobID:        j.JobID,
			Input:        j.Input,
			Output:       j.Output,
			Token:        j.Token,
			Resolution:   j.Resolution(),
			Frames:       j.Frames,
			Bytes:        j.Bytes,
			PaddingBytes: j.PaddingBytes,
			OutputSize:   j.OutputSize,
			SHA256:       j.SHA256,
			Verified:     j.Verified,
			ElapsedMS:    j.Elapsed.Milliseconds(),
		})
	}

	out, err := yaml.Marshal(doc)
	if err != nil {
		// Only plain fields above; Marshal cannot fail on them.
		return ""
	}
	return string(out)
}
