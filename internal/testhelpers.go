package internal

import (
	"time"
)

// testClassifier classifies messages built by the helpers below
var testClassifier = NewClassifier(nil)

// TestTime returns a UTC wall-clock time on 2025-01-02 at hour:minute
func TestTime(hour, minute int) time.Time {
	return time.Date(2025, time.January, 2, hour, minute, 0, 0, time.UTC)
}

// CreateTestMessage creates a classified message
func CreateTestMessage(ts time.Time, sender, content string) Message {
	msg := Message{Timestamp: ts, Sender: sender, Content: content}
	testClassifier.Apply(&msg)
	return msg
}

// CreateTestMessages creates one classified message per sender, spaced by gap
func CreateTestMessages(start time.Time, gap time.Duration, senders ...string) []Message {
	msgs := make([]Message, 0, len(senders))
	for i, s := range senders {
		msgs = append(msgs, CreateTestMessage(start.Add(time.Duration(i)*gap), s, "hola que tal todo"))
	}
	return msgs
}

// CreateTestReport creates a small analyzed report
func CreateTestReport(id string) *Report {
	msgs := []Message{
		CreateTestMessage(TestTime(9, 0), "Alice", "Buenos días familia 😀"),
		CreateTestMessage(TestTime(9, 2), "Bob", "Hola Alice! https://example.com"),
		CreateTestMessage(TestTime(9, 3), "Alice", "IMG-20250102-WA0001.jpg (file attached)"),
	}
	agg := NewAggregator(AggregatorOptions{})
	for i := range msgs {
		agg.Add(i, &msgs[i])
	}
	stats := agg.Finalize()
	stats.Year = 2025
	return &Report{
		ID:          id,
		Title:       "Family",
		Sources:     []string{"WhatsApp Chat with Family.txt"},
		GeneratedAt: TestTime(12, 0),
		Stats:       stats,
		Messages:    msgs,
		Diagnostics: ParseDiagnostics{LinesRead: 3, HeaderLines: 3, Messages: 3},
	}
}
