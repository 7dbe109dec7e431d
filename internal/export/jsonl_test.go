package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/iksnae/chat-wrapped/internal"
)

func TestJSONLExporter_Export(t *testing.T) {
	tests := []struct {
		name      string
		report    *internal.Report
		wantLines int
		want      []string
	}{
		{
			name: "empty report",
			report: func() *internal.Report {
				r := internal.CreateTestReport("test1")
				r.Messages = nil
				return r
			}(),
			wantLines: 0,
		},
		{
			name:      "report with messages",
			report:    internal.CreateTestReport("test2"),
			wantLines: 3,
			want: []string{
				`"sender":"Alice"`,
				`"sender":"Bob"`,
				`"timestamp":"2025-01-02T09:00:00Z"`,
				`"has_link":true`,
				`"media_filename":"IMG-20250102-WA0001.jpg"`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			exporter := &JSONLExporter{}

			if err := exporter.Export(tt.report, &buf); err != nil {
				t.Fatalf("JSONLExporter.Export() error = %v", err)
			}

			output := strings.TrimSpace(buf.String())
			var lines []string
			if output != "" {
				lines = strings.Split(output, "\n")
			}
			if len(lines) != tt.wantLines {
				t.Fatalf("got %d lines, want %d", len(lines), tt.wantLines)
			}

			for i, line := range lines {
				var obj map[string]interface{}
				if err := json.Unmarshal([]byte(line), &obj); err != nil {
					t.Errorf("Line %d is not valid JSON: %v\nLine: %s", i+1, err, line)
				}
			}

			for _, want := range tt.want {
				if !strings.Contains(output, want) {
					t.Errorf("Output should contain %q\nOutput: %s", want, output)
				}
			}
		})
	}
}

func TestJSONLExporter_Extension(t *testing.T) {
	exporter := &JSONLExporter{}
	if got := exporter.Extension(); got != "jsonl" {
		t.Errorf("JSONLExporter.Extension() = %v, want jsonl", got)
	}
}
