package internal

import (
	"crypto/sha256"
	"encoding/hex"
	"path/filepath"
	"strings"
	"time"
)

// Report is the serializable result of one analysis run: the frozen
// statistics plus the ordered message list they were computed from
type Report struct {
	ID          string           `json:"id" yaml:"id"`
	Title       string           `json:"title,omitempty" yaml:"title,omitempty"`
	Sources     []string         `json:"sources" yaml:"sources"`
	GeneratedAt time.Time        `json:"generated_at" yaml:"generated_at"`
	Stats       *ChatStatistics  `json:"stats" yaml:"stats"`
	Messages    []Message        `json:"messages" yaml:"messages"`
	Diagnostics ParseDiagnostics `json:"diagnostics" yaml:"diagnostics"`
	Warnings    []string         `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// ReportID derives a stable identifier from the sources and the analysis
// settings fingerprint
func ReportID(sources []string, fingerprint string) string {
	h := sha256.New()
	for _, s := range sources {
		h.Write([]byte(s))
		h.Write([]byte{0})
	}
	h.Write([]byte(fingerprint))
	return hex.EncodeToString(h.Sum(nil))[:12]
}

// ReportTitle names a report after its first source, e.g.
// "WhatsApp Chat with Family.txt" -> "Family"
func ReportTitle(sources []string) string {
	if len(sources) == 0 {
		return ""
	}
	name := strings.TrimSuffix(filepath.Base(sources[0]), filepath.Ext(sources[0]))
	name = strings.TrimPrefix(name, "WhatsApp Chat with ")
	name = strings.TrimPrefix(name, "WhatsApp Chat - ")
	return name
}
