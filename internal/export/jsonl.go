package export

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/iksnae/chat-wrapped/internal"
)

// JSONLExporter exports the message stream, one message per line
type JSONLExporter struct{}

// Export exports a report's messages to JSONL format
func (e *JSONLExporter) Export(report *internal.Report, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	for _, msg := range report.Messages {
		obj := map[string]interface{}{
			"timestamp":  msg.Timestamp.Format(time.RFC3339),
			"sender":     msg.Sender,
			"content":    msg.Content,
			"word_count": msg.WordCount,
		}
		if msg.IsMedia {
			obj["is_media"] = true
		}
		if msg.IsDeleted {
			obj["is_deleted"] = true
		}
		if msg.HasEmoji {
			obj["has_emoji"] = true
		}
		if msg.HasLink {
			obj["has_link"] = true
		}
		if msg.MediaFilename != "" {
			obj["media_filename"] = msg.MediaFilename
		}

		if err := enc.Encode(obj); err != nil {
			return fmt.Errorf("failed to encode message: %w", err)
		}
	}

	return nil
}

// Extension returns the file extension for this format
func (e *JSONLExporter) Extension() string {
	return "jsonl"
}
