package summarizer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Stdout is the path that makes Writer print to its console writer.
const Stdout = "-"

// Writer writes formatted summaries to files.
type Writer struct {
	formatter Formatter
	console   io.Writer
}

// NewWriter creates a new Writer with the given Formatter.
func NewWriter(formatter Formatter) *Writer {
	return &Writer{
		formatter: formatter,
		console:   os.Stdout,
	}
}

// WithConsole replaces the writer used for the Stdout path.
func (w *Writer) WithConsole(out io.Writer) *Writer {
	w.console = out
	return w
}

// Write formats the summary and writes it to path, creating parent
// directories. A path of "-" prints the summary instead.
func (w *Writer) Write(path string, summary *Summary) error {
	content := w.formatter.Format(summary)

	if path == Stdout {
		if _, err := io.WriteString(w.console, content); err != nil {
			return fmt.Errorf("write summary: %w", err)
		}
		return nil
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}
