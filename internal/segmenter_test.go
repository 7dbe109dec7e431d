package internal

import (
	"reflect"
	"testing"
	"time"
)

// chatAt builds messages at the given minute offsets from 9:00
func chatAt(entries ...at) []Message {
	msgs := make([]Message, 0, len(entries))
	for _, e := range entries {
		msgs = append(msgs, CreateTestMessage(TestTime(9, 0).Add(time.Duration(e.min)*time.Minute), e.sender, "hola que tal"))
	}
	return msgs
}

type at struct {
	min    int
	sender string
}

func TestSegmenter_SingleParticipantNeverQualifies(t *testing.T) {
	s := NewSegmenter(300*time.Second, 1)

	msgs := []Message{
		CreateTestMessage(TestTime(9, 0), "Alice", "hello world"),
		CreateTestMessage(TestTime(9, 0), "Alice", "nice day"),
	}
	if spans := s.Spans(msgs); len(spans) != 0 {
		t.Errorf("Spans() = %+v, want none with a single participant", spans)
	}

	msgs = append(msgs, CreateTestMessage(TestTime(9, 3), "Bob", "hi"))
	spans := s.Spans(msgs)
	if len(spans) != 1 {
		t.Fatalf("Spans() = %+v, want one span", spans)
	}
	want := ConversationSpan{Start: 0, End: 2, Length: 3, Participants: []string{"Alice", "Bob"}}
	if !reflect.DeepEqual(spans[0], want) {
		t.Errorf("span = %+v, want %+v", spans[0], want)
	}
}

func TestSegmenter_GapBoundary(t *testing.T) {
	s := NewSegmenter(5*time.Minute, 1)

	tests := []struct {
		name    string
		msgs    []Message
		lengths []int
	}{
		{
			name:    "gap equal to threshold stays in span",
			msgs:    chatAt(at{0, "A"}, at{5, "B"}, at{10, "A"}),
			lengths: []int{3},
		},
		{
			name:    "gap above threshold splits",
			msgs:    chatAt(at{0, "A"}, at{1, "B"}, at{7, "A"}, at{8, "B"}),
			lengths: []int{2, 2},
		},
		{
			name:    "final span is evaluated",
			msgs:    chatAt(at{0, "A"}, at{30, "B"}, at{31, "A"}, at{32, "B"}),
			lengths: []int{3},
		},
		{
			name:    "isolated messages",
			msgs:    chatAt(at{0, "A"}, at{30, "B"}, at{60, "A"}),
			lengths: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []int
			for _, sp := range s.Spans(tt.msgs) {
				got = append(got, sp.Length)
				if sp.End-sp.Start+1 != sp.Length {
					t.Errorf("span %+v has inconsistent bounds", sp)
				}
			}
			if !reflect.DeepEqual(got, tt.lengths) {
				t.Errorf("span lengths = %v, want %v", got, tt.lengths)
			}
		})
	}
}

func TestSegmenter_MinMessagesIsExclusive(t *testing.T) {
	s := NewSegmenter(0, DefaultMinSpanMessages)

	senders := []string{"A", "B", "A", "B", "A", "B", "A", "B", "A", "B"}
	ten := CreateTestMessages(TestTime(9, 0), time.Minute, senders...)
	if lc := s.LongestConversation(ten); lc != nil {
		t.Errorf("10 messages should not qualify, got %+v", lc)
	}

	eleven := CreateTestMessages(TestTime(9, 0), time.Minute, append(senders, "C")...)
	lc := s.LongestConversation(eleven)
	if lc == nil {
		t.Fatal("11 messages should qualify")
	}
	if lc.Length != 11 {
		t.Errorf("Length = %d, want 11", lc.Length)
	}
	if !reflect.DeepEqual(lc.Participants, []string{"A", "B"}) {
		t.Errorf("Participants = %v, want the two most active", lc.Participants)
	}
	if lc.Date != "2025-01-02" {
		t.Errorf("Date = %q", lc.Date)
	}
}

func TestSegmenter_LongestTiesGoToFirst(t *testing.T) {
	s := NewSegmenter(time.Minute, 1)
	msgs := chatAt(
		at{0, "A"}, at{1, "B"},
		at{30, "C"}, at{31, "D"},
	)

	span, ok := s.Longest(msgs)
	if !ok {
		t.Fatal("Longest() found nothing")
	}
	if span.Start != 0 {
		t.Errorf("Longest() = %+v, want the first span", span)
	}
}

func TestSegmenter_SummarizeRanksParticipants(t *testing.T) {
	s := NewSegmenter(time.Minute, 1)
	msgs := chatAt(at{0, "A"}, at{1, "B"}, at{2, "C"}, at{3, "C"}, at{4, "B"})

	lc := s.LongestConversation(msgs)
	if lc == nil {
		t.Fatal("LongestConversation() = nil")
	}
	// B and C both have two messages; B was seen first
	if !reflect.DeepEqual(lc.Participants, []string{"B", "C"}) {
		t.Errorf("Participants = %v, want [B C]", lc.Participants)
	}
}

func TestNewSegmenter_Defaults(t *testing.T) {
	s := NewSegmenter(0, -1)
	if s.Gap != DefaultSegmentGap || s.MinMessages != DefaultMinSpanMessages {
		t.Errorf("NewSegmenter(0, -1) = %+v", s)
	}
	if DefaultSegmentGap >= DefaultStarterGap {
		t.Error("segment gap must be shorter than the starter gap")
	}
	if spans := s.Spans(nil); len(spans) != 0 {
		t.Errorf("Spans(nil) = %v", spans)
	}
}
