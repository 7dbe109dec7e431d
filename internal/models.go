package internal

import (
	"time"
)

// Message represents one logical turn in the conversation. Continuation
// lines are already merged into Content and the classification flags are
// final once the parser emits it.
type Message struct {
	Timestamp     time.Time `json:"timestamp" yaml:"timestamp"`
	Sender        string    `json:"sender" yaml:"sender"`
	Content       string    `json:"content" yaml:"content"`
	IsMedia       bool      `json:"is_media" yaml:"is_media"`
	IsDeleted     bool      `json:"is_deleted" yaml:"is_deleted"`
	HasEmoji      bool      `json:"has_emoji" yaml:"has_emoji"`
	HasLink       bool      `json:"has_link" yaml:"has_link"`
	WordCount     int       `json:"word_count" yaml:"word_count"`
	MediaFilename string    `json:"media_filename,omitempty" yaml:"media_filename,omitempty"`

	// Classifier output used by the aggregator; not part of the wire format.
	Tokens []string `json:"-" yaml:"-"`
	Emojis []string `json:"-" yaml:"-"`
}

// WordCount is a ranked token and its frequency
type WordCount struct {
	Word  string `json:"word" yaml:"word"`
	Count int    `json:"count" yaml:"count"`
}

// EmojiCount is a ranked emoji codepoint and its frequency
type EmojiCount struct {
	Emoji string `json:"emoji" yaml:"emoji"`
	Count int    `json:"count" yaml:"count"`
}

// ConversationSpan is a run of messages where every adjacent pair is within
// the segmentation gap.
type ConversationSpan struct {
	Start        int      `json:"start"`
	End          int      `json:"end"`
	Length       int      `json:"length"`
	Participants []string `json:"participants"`
}

// LongestConversation summarises the longest qualifying span
type LongestConversation struct {
	Length       int      `json:"length" yaml:"length"`
	Participants []string `json:"participants" yaml:"participants"`
	Date         string   `json:"date" yaml:"date"`
}

// ChatStatistics is the aggregate snapshot over a whole transcript. It is
// built by a single fold and is read-only afterwards.
type ChatStatistics struct {
	Year         int       `json:"year" yaml:"year"`
	Language     string    `json:"language,omitempty" yaml:"language,omitempty"`
	Participants []string  `json:"participants" yaml:"participants"`
	FirstMessage time.Time `json:"first_message_date" yaml:"first_message_date"`
	LastMessage  time.Time `json:"last_message_date" yaml:"last_message_date"`

	TotalMessages int `json:"total_messages" yaml:"total_messages"`
	TotalWords    int `json:"total_words" yaml:"total_words"`
	MediaCount    int `json:"media_count" yaml:"media_count"`
	LinkCount     int `json:"link_count" yaml:"link_count"`
	EmojiCount    int `json:"emoji_count" yaml:"emoji_count"`

	MessagesBySender     map[string]int     `json:"messages_by_sender" yaml:"messages_by_sender"`
	WordsBySender        map[string]int     `json:"words_by_sender" yaml:"words_by_sender"`
	MediaBySender        map[string]int     `json:"media_by_sender" yaml:"media_by_sender"`
	EmojiBySender        map[string]int     `json:"emoji_by_sender" yaml:"emoji_by_sender"`
	LinksBySender        map[string]int     `json:"links_by_sender" yaml:"links_by_sender"`
	DeletedBySender      map[string]int     `json:"deleted_by_sender" yaml:"deleted_by_sender"`
	AvgMessageLength     map[string]float64 `json:"avg_message_length" yaml:"avg_message_length"`
	ConversationStarters map[string]int     `json:"conversation_starters" yaml:"conversation_starters"`
	NightOwls            map[string]int     `json:"night_owls" yaml:"night_owls"`
	EarlyBirds           map[string]int     `json:"early_birds" yaml:"early_birds"`

	MessagesByHour     map[int]int    `json:"messages_by_hour" yaml:"messages_by_hour"`
	MessagesByDay      map[string]int `json:"messages_by_day" yaml:"messages_by_day"`
	MessagesByMonth    map[string]int `json:"messages_by_month" yaml:"messages_by_month"`
	MessagesByDate     map[string]int `json:"messages_by_date" yaml:"messages_by_date"`
	MessagesByDatetime map[string]int `json:"messages_by_datetime" yaml:"messages_by_datetime"`

	MostActiveDay    string `json:"most_active_day" yaml:"most_active_day"`
	MostActiveHour   int    `json:"most_active_hour" yaml:"most_active_hour"`
	MostActiveDate   string `json:"most_active_date" yaml:"most_active_date"`
	PeakHourDatetime string `json:"peak_hour_datetime" yaml:"peak_hour_datetime"`

	TopWords            []WordCount            `json:"top_words" yaml:"top_words"`
	TopEmojis           []EmojiCount           `json:"top_emojis" yaml:"top_emojis"`
	RareEmojis          []EmojiCount           `json:"rare_emojis" yaml:"rare_emojis"`
	WordsByPerson       map[string][]WordCount `json:"words_by_person" yaml:"words_by_person"`
	UniqueWordsByPerson map[string][]string    `json:"unique_words_by_person" yaml:"unique_words_by_person"`

	MediaFiles            []string            `json:"media_files" yaml:"media_files"`
	MediaFilesBySender    map[string][]string `json:"media_files_by_sender" yaml:"media_files_by_sender"`
	ImagesBySender        map[string][]string `json:"images_by_sender" yaml:"images_by_sender"`
	AudioBySender         map[string]int      `json:"audio_by_sender" yaml:"audio_by_sender"`
	AudioFilesBySender    map[string][]string `json:"audio_files_by_sender" yaml:"audio_files_by_sender"`
	AudioDurationBySender map[string]float64  `json:"audio_duration_by_sender" yaml:"audio_duration_by_sender"`
	MediaBytesBySender    map[string]int64    `json:"media_bytes_by_sender" yaml:"media_bytes_by_sender"`

	LongestConversation *LongestConversation `json:"longest_conversation,omitempty" yaml:"longest_conversation,omitempty"`
}

// ParseDiagnostics counts what the parser did with each physical line
type ParseDiagnostics struct {
	LinesRead      int `json:"lines_read" yaml:"lines_read"`
	HeaderLines    int `json:"header_lines" yaml:"header_lines"`
	Continuations  int `json:"continuations" yaml:"continuations"`
	StrayLines     int `json:"stray_lines" yaml:"stray_lines"`
	DateErrors     int `json:"date_errors" yaml:"date_errors"`
	YearFiltered   int `json:"year_filtered" yaml:"year_filtered"`
	SenderFiltered int `json:"sender_filtered" yaml:"sender_filtered"`
	Duplicates     int `json:"duplicates" yaml:"duplicates"`
	Messages       int `json:"messages" yaml:"messages"`
}

// Add merges the counters of another diagnostics value
func (d *ParseDiagnostics) Add(o ParseDiagnostics) {
	d.LinesRead += o.LinesRead
	d.HeaderLines += o.HeaderLines
	d.Continuations += o.Continuations
	d.StrayLines += o.StrayLines
	d.DateErrors += o.DateErrors
	d.YearFiltered += o.YearFiltered
	d.SenderFiltered += o.SenderFiltered
	d.Duplicates += o.Duplicates
	d.Messages += o.Messages
}
