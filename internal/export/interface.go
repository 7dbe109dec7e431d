package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/iksnae/chat-wrapped/internal"
)

// Formats lists the accepted --format values
var Formats = []string{"jsonl", "md", "yaml", "json"}

// Exporter writes a report in one output format
type Exporter interface {
	Export(report *internal.Report, w io.Writer) error
	Extension() string
}

// NewExporter creates a new exporter based on format
func NewExporter(format string) (Exporter, error) {
	switch format {
	case "jsonl":
		return &JSONLExporter{}, nil
	case "md", "markdown":
		return &MarkdownExporter{}, nil
	case "yaml":
		return &YAMLExporter{}, nil
	case "json":
		return &JSONExporter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %q (supported: %s)", format, strings.Join(Formats, ", "))
	}
}

// FileName is the name a report is written under for an exporter
func FileName(report *internal.Report, e Exporter) string {
	return fmt.Sprintf("wrapped_%s.%s", report.ID, e.Extension())
}

// WriteReport exports report in format into dir and returns the file path
func WriteReport(report *internal.Report, format, dir string) (string, error) {
	exporter, err := NewExporter(format)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", &internal.ExportError{Format: format, Path: dir, Err: fmt.Errorf("failed to create output directory: %w", err)}
	}

	path := filepath.Join(dir, FileName(report, exporter))
	file, err := os.Create(path)
	if err != nil {
		return "", &internal.ExportError{Format: format, Path: path, Err: err}
	}

	if err := exporter.Export(report, file); err != nil {
		_ = file.Close()
		return "", &internal.ExportError{Format: format, Path: path, Err: err}
	}
	if err := file.Close(); err != nil {
		return "", &internal.ExportError{Format: format, Path: path, Err: err}
	}
	return path, nil
}
