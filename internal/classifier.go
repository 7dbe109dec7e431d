package internal

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

const minTokenLength = 3

var (
	wordPattern       = regexp.MustCompile(`[\p{L}\p{N}_]+`)
	urlPattern        = regexp.MustCompile(`https?://\S+|www\.\S+`)
	fileAttachPattern = regexp.MustCompile(`(?i)^(.+?)\s*\(file attached\)`)
	iosAttachPattern  = regexp.MustCompile(`(?i)<attached:\s*([^>]+)>`)

	deletedMarkers = []string{"this message was deleted", "you deleted this message"}
)

// emojiRanges are the pictographic blocks counted as emoji
var emojiRanges = [][2]rune{
	{0x1F600, 0x1F64F}, // emoticons
	{0x1F300, 0x1F5FF}, // symbols & pictographs
	{0x1F680, 0x1F6FF}, // transport & map
	{0x1F700, 0x1F77F}, // alchemical
	{0x1F780, 0x1F7FF}, // geometric shapes extended
	{0x1F800, 0x1F8FF}, // supplemental arrows-c
	{0x1F900, 0x1F9FF}, // supplemental symbols & pictographs
	{0x1FA00, 0x1FA6F}, // chess symbols
	{0x1FA70, 0x1FAFF}, // symbols & pictographs extended-a
	{0x2702, 0x27B0},   // dingbats
	{0x1F1E0, 0x1F1FF}, // regional indicators
}

// Classification holds the fields derived from a message body
type Classification struct {
	IsMedia       bool
	IsDeleted     bool
	HasEmoji      bool
	HasLink       bool
	WordCount     int
	MediaFilename string
	Tokens        []string
	Emojis        []string
}

// Classifier derives per-message flags and tokens. It never looks at
// other messages.
type Classifier struct {
	stopwords Stopwords
}

// NewClassifier creates a Classifier; a nil stopword set uses the defaults
func NewClassifier(stopwords Stopwords) *Classifier {
	if stopwords == nil {
		stopwords = DefaultStopwords()
	}
	return &Classifier{stopwords: stopwords}
}

// Stopwords returns the classifier's stopword set
func (c *Classifier) Stopwords() Stopwords {
	return c.stopwords
}

// Classify derives every flag for content
func (c *Classifier) Classify(content string) Classification {
	var cl Classification
	lower := strings.ToLower(content)

	cl.IsDeleted = containsAny(lower, deletedMarkers)
	cl.IsMedia, cl.MediaFilename = detectMedia(content, lower)

	cl.Emojis = extractEmojis(content)
	cl.HasEmoji = len(cl.Emojis) > 0
	cl.HasLink = urlPattern.MatchString(content)

	if !cl.IsMedia && !cl.IsDeleted {
		words := wordPattern.FindAllString(normalizeToken(content), -1)
		cl.WordCount = len(words)
		cl.Tokens = c.filterTokens(words)
	}
	return cl
}

// Apply classifies msg.Content and stores the result on msg
func (c *Classifier) Apply(msg *Message) {
	cl := c.Classify(msg.Content)
	msg.IsMedia = cl.IsMedia
	msg.IsDeleted = cl.IsDeleted
	msg.HasEmoji = cl.HasEmoji
	msg.HasLink = cl.HasLink
	msg.WordCount = cl.WordCount
	msg.MediaFilename = cl.MediaFilename
	msg.Tokens = cl.Tokens
	msg.Emojis = cl.Emojis
}

// Tokenize returns the vocabulary tokens of text
func (c *Classifier) Tokenize(text string) []string {
	return c.filterTokens(wordPattern.FindAllString(normalizeToken(text), -1))
}

func (c *Classifier) filterTokens(words []string) []string {
	tokens := make([]string, 0, len(words))
	for _, w := range words {
		if utf8.RuneCountInString(w) < minTokenLength || c.stopwords.Contains(w) {
			continue
		}
		tokens = append(tokens, w)
	}
	return tokens
}

func detectMedia(content, lower string) (bool, string) {
	if m := iosAttachPattern.FindStringSubmatch(content); m != nil {
		return true, strings.TrimSpace(m[1])
	}
	if strings.Contains(lower, "(file attached)") {
		name := ""
		if m := fileAttachPattern.FindStringSubmatch(content); m != nil {
			name = strings.TrimSpace(m[1])
		}
		return true, name
	}
	// covers "<Media omitted>", "image omitted", "sticker omitted", ...
	return strings.Contains(lower, "omitted"), ""
}

func extractEmojis(content string) []string {
	var emojis []string
	for _, r := range content {
		if isEmoji(r) {
			emojis = append(emojis, string(r))
		}
	}
	return emojis
}

func isEmoji(r rune) bool {
	for _, rg := range emojiRanges {
		if r >= rg[0] && r <= rg[1] {
			return true
		}
	}
	return false
}

// normalizeToken composes accents (NFC) and lower-cases text so that the
// same word typed on different keyboards counts once.
func normalizeToken(s string) string {
	return strings.ToLower(norm.NFC.String(s))
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
