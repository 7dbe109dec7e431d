package export

import (
	"io"

	"github.com/iksnae/chat-wrapped/internal"
	"gopkg.in/yaml.v3"
)

// YAMLExporter exports the report statistics in YAML format. Messages are
// left out; use jsonl for the message stream.
type YAMLExporter struct{}

type yamlReport struct {
	ID          string                    `yaml:"id"`
	Title       string                    `yaml:"title,omitempty"`
	Sources     []string                  `yaml:"sources"`
	Stats       *internal.ChatStatistics  `yaml:"stats"`
	Diagnostics internal.ParseDiagnostics `yaml:"diagnostics"`
	Warnings    []string                  `yaml:"warnings,omitempty"`
}

// Export exports a report to YAML format
func (e *YAMLExporter) Export(report *internal.Report, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	defer func() { _ = enc.Close() }()

	return enc.Encode(yamlReport{
		ID:          report.ID,
		Title:       report.Title,
		Sources:     report.Sources,
		Stats:       report.Stats,
		Diagnostics: report.Diagnostics,
		Warnings:    report.Warnings,
	})
}

// Extension returns the file extension for this format
func (e *YAMLExporter) Extension() string {
	return "yaml"
}
