package internal

import (
	"time"
)

// Segmentation defaults. The segment gap groups replies into one
// conversation and is deliberately shorter than the starter gap.
const (
	DefaultSegmentGap      = 5 * time.Minute
	DefaultMinSpanMessages = 10
)

// Segmenter finds conversation spans in a chronological message list
type Segmenter struct {
	// Gap is the largest pause between adjacent messages inside one span
	Gap time.Duration
	// MinMessages is exclusive: a span qualifies with more messages than this
	MinMessages int
}

// NewSegmenter creates a Segmenter, using defaults for zero values
func NewSegmenter(gap time.Duration, minMessages int) *Segmenter {
	if gap <= 0 {
		gap = DefaultSegmentGap
	}
	if minMessages < 0 {
		minMessages = DefaultMinSpanMessages
	}
	return &Segmenter{Gap: gap, MinMessages: minMessages}
}

// Spans returns every qualifying span in order: more than MinMessages
// messages and at least two distinct participants
func (s *Segmenter) Spans(msgs []Message) []ConversationSpan {
	var spans []ConversationSpan
	if len(msgs) == 0 {
		return spans
	}

	start := 0
	participants := NewCounter[string]()
	closeSpan := func(end int) {
		length := end - start
		if length > s.MinMessages && participants.Len() >= 2 {
			spans = append(spans, ConversationSpan{
				Start:        start,
				End:          end - 1,
				Length:       length,
				Participants: participants.Keys(),
			})
		}
	}

	for i := 1; i < len(msgs); i++ {
		if msgs[i].Timestamp.Sub(msgs[i-1].Timestamp) <= s.Gap {
			participants.Add(msgs[i-1].Sender, 1, int64(i-1))
			participants.Add(msgs[i].Sender, 1, int64(i))
			continue
		}
		closeSpan(i)
		start = i
		participants = NewCounter[string]()
	}
	closeSpan(len(msgs))
	return spans
}

// Longest returns the longest qualifying span; ties go to the earliest
func (s *Segmenter) Longest(msgs []Message) (ConversationSpan, bool) {
	var best ConversationSpan
	found := false
	for _, span := range s.Spans(msgs) {
		if !found || span.Length > best.Length {
			best, found = span, true
		}
	}
	return best, found
}

// Summarize describes span: its length, its two most active senders and the
// date it started
func (s *Segmenter) Summarize(msgs []Message, span ConversationSpan) *LongestConversation {
	counts := NewCounter[string]()
	for i := span.Start; i <= span.End && i < len(msgs); i++ {
		counts.Add(msgs[i].Sender, 1, int64(i))
	}
	top := counts.Top(2)
	names := make([]string, 0, len(top))
	for _, e := range top {
		names = append(names, e.Key)
	}
	return &LongestConversation{
		Length:       span.Length,
		Participants: names,
		Date:         msgs[span.Start].Timestamp.Format(dateLayout),
	}
}

// LongestConversation finds and summarizes the longest span, or nil
func (s *Segmenter) LongestConversation(msgs []Message) *LongestConversation {
	span, ok := s.Longest(msgs)
	if !ok {
		return nil
	}
	return s.Summarize(msgs, span)
}
