package internal

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Deduplicator removes messages that appear in more than one export of the
// same chat. Each call to Deduplicate is one export; a message repeated
// inside one export is kept as many times as the export with the most
// copies holds it.
type Deduplicator struct {
	kept map[string]int
}

// NewDeduplicator creates a new Deduplicator
func NewDeduplicator() *Deduplicator {
	return &Deduplicator{kept: make(map[string]int)}
}

// Deduplicate returns the messages of one export that earlier exports did
// not already cover, and the number removed
func (d *Deduplicator) Deduplicate(msgs []Message) ([]Message, int) {
	unique := make([]Message, 0, len(msgs))
	inFile := make(map[string]int)
	dropped := 0
	for _, msg := range msgs {
		hash := d.hashMessage(msg)
		inFile[hash]++
		if inFile[hash] <= d.kept[hash] {
			dropped++
			continue
		}
		unique = append(unique, msg)
	}
	for hash, n := range inFile {
		if n > d.kept[hash] {
			d.kept[hash] = n
		}
	}
	return unique, dropped
}

// hashMessage creates a content-based hash for a message
func (d *Deduplicator) hashMessage(msg Message) string {
	h := sha256.New()
	h.Write([]byte(msg.Timestamp.Format(time.RFC3339)))
	h.Write([]byte{0})
	h.Write([]byte(msg.Sender))
	h.Write([]byte{0})
	h.Write([]byte(msg.Content))
	return hex.EncodeToString(h.Sum(nil))
}
