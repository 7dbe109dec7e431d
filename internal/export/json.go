package export

import (
	"encoding/json"
	"io"

	"github.com/iksnae/chat-wrapped/internal"
)

// JSONExporter exports the whole report as pretty-printed JSON
type JSONExporter struct{}

// Export exports a report to JSON format
func (e *JSONExporter) Export(report *internal.Report, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)

	return enc.Encode(report)
}

// Extension returns the file extension for this format
func (e *JSONExporter) Extension() string {
	return "json"
}
