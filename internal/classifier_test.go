package internal

import (
	"reflect"
	"testing"
)

func TestClassifier_Classify(t *testing.T) {
	c := NewClassifier(nil)

	tests := []struct {
		name      string
		content   string
		deleted   bool
		media     bool
		link      bool
		emoji     bool
		words     int
		filename  string
		tokens    []string
		emojiList []string
	}{
		{
			name:    "deleted",
			content: "This message was deleted",
			deleted: true,
		},
		{
			name:    "deleted by me",
			content: "You deleted this message, it was a very long message anyway",
			deleted: true,
		},
		{
			name:     "android attachment",
			content:  "IMG-20250102-WA0001.jpg (file attached)",
			media:    true,
			filename: "IMG-20250102-WA0001.jpg",
		},
		{
			name:     "ios attachment",
			content:  "<attached: 00000012-PHOTO-2025-01-02-09-02-40.jpg>",
			media:    true,
			filename: "00000012-PHOTO-2025-01-02-09-02-40.jpg",
		},
		{
			name:    "media omitted",
			content: "<Media omitted>",
			media:   true,
		},
		{
			name:    "plain text",
			content: "Mañana comemos pizza con la familia",
			words:   6,
			tokens:  []string{"mañana", "comemos", "pizza", "familia"},
		},
		{
			name:    "link",
			content: "mirá www.example.com",
			link:    true,
			words:   4,
			tokens:  []string{"mirá", "example"},
		},
		{
			name:    "upper case scheme is not a link",
			content: "VER HTTPS://EXAMPLE.COM",
			words:   4,
		},
		{
			name:      "emoji",
			content:   "gol 😀😀 🎉",
			emoji:     true,
			words:     1,
			tokens:    []string{"gol"},
			emojiList: []string{"😀", "😀", "🎉"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(tt.content)
			if got.IsDeleted != tt.deleted {
				t.Errorf("IsDeleted = %v, want %v", got.IsDeleted, tt.deleted)
			}
			if got.IsMedia != tt.media {
				t.Errorf("IsMedia = %v, want %v", got.IsMedia, tt.media)
			}
			if got.HasLink != tt.link {
				t.Errorf("HasLink = %v, want %v", got.HasLink, tt.link)
			}
			if got.HasEmoji != tt.emoji {
				t.Errorf("HasEmoji = %v, want %v", got.HasEmoji, tt.emoji)
			}
			if got.WordCount != tt.words {
				t.Errorf("WordCount = %d, want %d", got.WordCount, tt.words)
			}
			if got.MediaFilename != tt.filename {
				t.Errorf("MediaFilename = %q, want %q", got.MediaFilename, tt.filename)
			}
			if len(tt.tokens) > 0 && !reflect.DeepEqual(got.Tokens, tt.tokens) {
				t.Errorf("Tokens = %v, want %v", got.Tokens, tt.tokens)
			}
			if (tt.deleted || tt.media) && len(got.Tokens) != 0 {
				t.Errorf("Tokens = %v, want none", got.Tokens)
			}
			if len(tt.emojiList) > 0 && !reflect.DeepEqual(got.Emojis, tt.emojiList) {
				t.Errorf("Emojis = %v, want %v", got.Emojis, tt.emojiList)
			}
		})
	}
}

func TestClassifier_Apply(t *testing.T) {
	msg := Message{Sender: "Alice", Content: "This message was deleted"}
	NewClassifier(nil).Apply(&msg)
	if !msg.IsDeleted || msg.WordCount != 0 {
		t.Errorf("Apply() = %+v", msg)
	}
}

func TestClassifier_Tokenize(t *testing.T) {
	c := NewClassifier(NewStopwords([]string{"pizza"}))

	tests := []struct {
		name string
		text string
		want []string
	}{
		{name: "empty", text: "", want: []string{}},
		{name: "short words dropped", text: "yo te amo", want: []string{"amo"}},
		{name: "custom stopword", text: "pizza rica", want: []string{"rica"}},
		{name: "composed and decomposed accents match", text: "cafe\u0301 caf\u00e9", want: []string{"café", "café"}},
		{name: "case folded", text: "FAMILIA Familia", want: []string{"familia", "familia"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Tokenize(tt.text); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestStopwords(t *testing.T) {
	sw := DefaultStopwords()
	for _, w := range []string{"de", "jaja", "omitted", "https"} {
		if !sw.Contains(w) {
			t.Errorf("default stopwords should contain %q", w)
		}
	}
	if sw.Contains("pizza") {
		t.Error("pizza is not a stopword")
	}

	// Copies are independent
	sw["pizza"] = struct{}{}
	if DefaultStopwords().Contains("pizza") {
		t.Error("DefaultStopwords() should return a fresh set")
	}
}
