package summarizer

import (
	"fmt"
	"strings"
	"time"
)

// MarkdownOption configures a MarkdownFormatter.
type MarkdownOption func(*MarkdownFormatter)

// WithTranslator sets the function used to translate headings and labels.
func WithTranslator(t func(string) string) MarkdownOption {
	return func(f *MarkdownFormatter) {
		f.translate = t
	}
}

// WithVersion sets the version printed in the footer.
func WithVersion(v string) MarkdownOption {
	return func(f *MarkdownFormatter) {
		f.version = v
	}
}

// MarkdownFormatter renders a Summary as a Markdown document.
type MarkdownFormatter struct {
	translate func(string) string
	version   string
}

// NewMarkdownFormatter creates a MarkdownFormatter.
func NewMarkdownFormatter(opts ...MarkdownOption) *MarkdownFormatter {
	f := &MarkdownFormatter{
		translate: func(s string) string { return s },
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format implements Formatter.
func (f *MarkdownFormatter) Format(s *Summary) string {
	t := f.translate
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", t("Job Summary"))
	fmt.Fprintf(&b, "%s: %s\n\n", t("Generated"), s.GeneratedAt.Format(time.RFC3339))

	fmt.Fprintf(&b, "## %s\n\n", t("Settings"))
	fmt.Fprintf(&b, "| %s | %s |\n|---|---|\n", t("Item"), t("Value"))
	row(&b, t("Resolution"), s.Settings.Resolution)
	row(&b, t("Codec"), s.Settings.Codec)
	if s.Settings.FPS > 0 {
		row(&b, t("Frame Rate"), fmt.Sprintf("%d fps", s.Settings.FPS))
	}
	row(&b, t("Frame Format"), s.Settings.FrameFormat)
	if s.Settings.Delimiter != "" {
		row(&b, t("Delimiter"), "`"+s.Settings.Delimiter+"`")
	}
	if s.Settings.Workers > 0 {
		row(&b, t("Workers"), fmt.Sprintf("%d", s.Settings.Workers))
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "## %s\n\n", t("Jobs"))
	if len(s.Jobs) == 0 {
		fmt.Fprintf(&b, "%s\n\n", t("No jobs were run."))
	}
	for i, j := range s.Jobs {
		fmt.Fprintf(&b, "### %d. %s: %s\n\n", i+1, t(directionTitle(j.Direction)), j.Token)
		fmt.Fprintf(&b, "| %s | %s |\n|---|---|\n", t("Item"), t("Value"))
		row(&b, t("Job ID"), j.JobID)
		row(&b, t("Input"), j.Input)
		row(&b, t("Output"), j.Output)
		row(&b, t("Resolution"), j.Resolution())
		row(&b, t("Frames"), fmt.Sprintf("%d", j.Frames))
		row(&b, t("Original Size"), formatBytes(j.Bytes))
		if j.Direction == DirectionEncode {
			row(&b, t("Padding"), formatBytes(j.PaddingBytes))
			row(&b, t("Video Size"), formatBytes(j.OutputSize))
		}
		if j.SHA256 != "" {
			row(&b, "SHA-256", "`"+j.SHA256+"`")
		}
		verified := t("No")
		if j.Verified {
			verified = t("Yes")
		}
		row(&b, t("Verified"), verified)
		row(&b, t("Elapsed"), fmt.Sprintf("%d ms", j.Elapsed.Milliseconds()))
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "%s: %s\n", t("Total Payload"), formatBytes(s.TotalBytes()))

	if f.version != "" {
		fmt.Fprintf(&b, "\n---\n\n%s bytereel %s\n", t("Generated by"), f.version)
	}
	return b.String()
}

func directionTitle(d string) string {
	if d == DirectionDecode {
		return "Decode"
	}
	return "Encode"
}

func row(b *strings.Builder, key, value string) {
	if value == "" {
		value = "-"
	}
	fmt.Fprintf(b, "| %s | %s |\n", key, value)
}

func formatSize(w, h int) string {
	return fmt.Sprintf("%dx%d", w, h)
}

// formatBytes renders n with binary units.
func formatBytes(n int64) string {
	const unit = 1024
	switch {
	case n >= unit*unit*unit:
		return fmt.Sprintf("%.2f GB", float64(n)/(unit*unit*unit))
	case n >= unit*unit:
		return fmt.Sprintf("%.2f MB", float64(n)/(unit*unit))
	case n >= unit:
		return fmt.Sprintf("%.2f KB", float64(n)/unit)
	default:
		return fmt.Sprintf("%d B", n)
	}
}
