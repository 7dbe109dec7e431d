package export

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/iksnae/chat-wrapped/internal"
)

// markdownTopWords caps the word table; the full list is in json/yaml
const markdownTopWords = 20

// MarkdownExporter renders a readable summary of the report
type MarkdownExporter struct{}

// Export exports a report to Markdown format
func (e *MarkdownExporter) Export(report *internal.Report, w io.Writer) error {
	s := report.Stats
	if s == nil {
		return fmt.Errorf("report %s has no statistics", report.ID)
	}

	title := report.Title
	if title == "" {
		title = report.ID
	}
	_, _ = fmt.Fprintf(w, "# Chat Wrapped %d: %s\n\n", s.Year, escapeMarkdown(title))
	_, _ = fmt.Fprintf(w, "**Report:** %s  \n", report.ID)
	if !s.FirstMessage.IsZero() {
		_, _ = fmt.Fprintf(w, "**Period:** %s to %s  \n", s.FirstMessage.Format("2006-01-02"), s.LastMessage.Format("2006-01-02"))
	}
	if s.Language != "" {
		_, _ = fmt.Fprintf(w, "**Language:** %s  \n", s.Language)
	}
	_, _ = fmt.Fprintf(w, "**Messages:** %s\n\n", humanize.Comma(int64(s.TotalMessages)))

	_, _ = fmt.Fprintf(w, "## Overview\n\n")
	_, _ = fmt.Fprintf(w, "| Metric | Total |\n|---|---|\n")
	_, _ = fmt.Fprintf(w, "| Messages | %s |\n", humanize.Comma(int64(s.TotalMessages)))
	_, _ = fmt.Fprintf(w, "| Words | %s |\n", humanize.Comma(int64(s.TotalWords)))
	_, _ = fmt.Fprintf(w, "| Media | %s |\n", humanize.Comma(int64(s.MediaCount)))
	_, _ = fmt.Fprintf(w, "| Links | %s |\n", humanize.Comma(int64(s.LinkCount)))
	_, _ = fmt.Fprintf(w, "| Messages with emoji | %s |\n\n", humanize.Comma(int64(s.EmojiCount)))

	_, _ = fmt.Fprintf(w, "## Participants\n\n")
	_, _ = fmt.Fprintf(w, "| Sender | Messages | Words | Avg length | Media | Starters | Night | Early |\n")
	_, _ = fmt.Fprintf(w, "|---|---|---|---|---|---|---|---|\n")
	for _, p := range rankedParticipants(s) {
		_, _ = fmt.Fprintf(w, "| %s | %s | %s | %.1f | %d | %d | %d | %d |\n",
			escapeMarkdown(p),
			humanize.Comma(int64(s.MessagesBySender[p])),
			humanize.Comma(int64(s.WordsBySender[p])),
			s.AvgMessageLength[p],
			s.MediaBySender[p],
			s.ConversationStarters[p],
			s.NightOwls[p],
			s.EarlyBirds[p])
	}
	_, _ = fmt.Fprintln(w)

	_, _ = fmt.Fprintf(w, "## Activity\n\n")
	_, _ = fmt.Fprintf(w, "- Most active day: %s\n", s.MostActiveDay)
	_, _ = fmt.Fprintf(w, "- Most active hour: %02d:00\n", s.MostActiveHour)
	_, _ = fmt.Fprintf(w, "- Most active date: %s (%d messages)\n", s.MostActiveDate, s.MessagesByDate[s.MostActiveDate])
	_, _ = fmt.Fprintf(w, "- Busiest hour: %s:00\n", s.PeakHourDatetime)
	if lc := s.LongestConversation; lc != nil {
		_, _ = fmt.Fprintf(w, "- Longest conversation: %d messages on %s, led by %s\n",
			lc.Length, lc.Date, strings.Join(lc.Participants, " and "))
	}
	_, _ = fmt.Fprintln(w)

	if len(s.TopWords) > 0 {
		_, _ = fmt.Fprintf(w, "## Top Words\n\n| # | Word | Count |\n|---|---|---|\n")
		for i, wc := range s.TopWords {
			if i == markdownTopWords {
				break
			}
			_, _ = fmt.Fprintf(w, "| %d | %s | %d |\n", i+1, escapeMarkdown(wc.Word), wc.Count)
		}
		_, _ = fmt.Fprintln(w)
	}

	if len(s.UniqueWordsByPerson) > 0 {
		_, _ = fmt.Fprintf(w, "## Signature Words\n\n")
		for _, p := range rankedParticipants(s) {
			if words := s.UniqueWordsByPerson[p]; len(words) > 0 {
				_, _ = fmt.Fprintf(w, "- **%s:** %s\n", escapeMarkdown(p), escapeMarkdown(strings.Join(words, ", ")))
			}
		}
		_, _ = fmt.Fprintln(w)
	}

	if len(s.TopEmojis) > 0 {
		_, _ = fmt.Fprintf(w, "## Emojis\n\n")
		_, _ = fmt.Fprintf(w, "Top: %s\n\n", joinEmojis(s.TopEmojis))
		if len(s.RareEmojis) > 0 {
			_, _ = fmt.Fprintf(w, "Rare: %s\n\n", joinEmojis(s.RareEmojis))
		}
	}

	if len(s.MediaFiles) > 0 || len(s.AudioBySender) > 0 {
		_, _ = fmt.Fprintf(w, "## Media\n\n")
		for _, p := range rankedParticipants(s) {
			files := len(s.MediaFilesBySender[p])
			if files == 0 {
				continue
			}
			line := fmt.Sprintf("- **%s:** %d files, %d images, %d voice notes", escapeMarkdown(p), files, len(s.ImagesBySender[p]), s.AudioBySender[p])
			if secs := s.AudioDurationBySender[p]; secs > 0 {
				line += fmt.Sprintf(" (%.0f min)", secs/60)
			}
			if b := s.MediaBytesBySender[p]; b > 0 {
				line += ", " + humanize.Bytes(uint64(b))
			}
			_, _ = fmt.Fprintln(w, line)
		}
		_, _ = fmt.Fprintln(w)
	}

	if len(report.Warnings) > 0 {
		_, _ = fmt.Fprintf(w, "## Warnings\n\n")
		for _, warn := range report.Warnings {
			_, _ = fmt.Fprintf(w, "- %s\n", warn)
		}
		_, _ = fmt.Fprintln(w)
	}

	return nil
}

// rankedParticipants orders senders by message count, then first appearance
func rankedParticipants(s *internal.ChatStatistics) []string {
	ranked := slices.Clone(s.Participants)
	slices.SortStableFunc(ranked, func(a, b string) int {
		return s.MessagesBySender[b] - s.MessagesBySender[a]
	})
	return ranked
}

func joinEmojis(emojis []internal.EmojiCount) string {
	parts := make([]string, 0, len(emojis))
	for _, e := range emojis {
		parts = append(parts, fmt.Sprintf("%s ×%d", e.Emoji, e.Count))
	}
	return strings.Join(parts, "  ")
}

// escapeMarkdown escapes characters that would break tables or emphasis
func escapeMarkdown(text string) string {
	text = strings.ReplaceAll(text, "|", "\\|")
	text = strings.ReplaceAll(text, "**", "\\*\\*")
	text = strings.ReplaceAll(text, "__", "\\_\\_")
	return text
}

// Extension returns the file extension for this format
func (e *MarkdownExporter) Extension() string {
	return "md"
}
