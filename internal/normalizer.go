package internal

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// DefaultExcludedSenders are dropped from every transcript
var DefaultExcludedSenders = []string{"Meta AI"}

// systemNoticeMarkers identify header lines WhatsApp writes on its own behalf
var systemNoticeMarkers = []string{
	"messages and calls are end-to-end encrypted",
	"created group",
	"changed the subject",
	"changed this group's icon",
}

// Normalizer rewrites sender display names through the alias table and
// decides which senders are kept
type Normalizer struct {
	aliases  map[string]string
	excluded map[string]struct{}
}

// NewNormalizer creates a Normalizer. Alias keys and excluded names are
// matched after Unicode composition and whitespace trimming.
func NewNormalizer(aliases map[string]string, excluded []string) *Normalizer {
	n := &Normalizer{
		aliases:  make(map[string]string, len(aliases)),
		excluded: make(map[string]struct{}, len(excluded)),
	}
	for from, to := range aliases {
		n.aliases[cleanSender(from)] = cleanSender(to)
	}
	for _, name := range excluded {
		n.excluded[cleanSender(name)] = struct{}{}
	}
	return n
}

// Normalize returns the canonical sender name and whether the sender is kept
func (n *Normalizer) Normalize(raw string) (string, bool) {
	sender := cleanSender(raw)
	if sender == "" || isSystemNotice(sender) {
		return "", false
	}
	if _, ok := n.excluded[sender]; ok {
		return "", false
	}
	if alias, ok := n.aliases[sender]; ok {
		sender = alias
	}
	return sender, true
}

func isSystemNotice(sender string) bool {
	return containsAny(strings.ToLower(sender), systemNoticeMarkers)
}

func cleanSender(s string) string {
	return strings.TrimSpace(norm.NFC.String(stripMarks(s)))
}

// stripMarks removes bidi marks and byte order marks and turns narrow and
// no-break spaces into plain spaces
func stripMarks(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '\u200e', '\u200f', '\u202a', '\u202c', '\ufeff':
			return -1
		case '\u202f', '\u00a0':
			return ' '
		}
		return r
	}, s)
}
