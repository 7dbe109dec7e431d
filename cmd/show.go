package cmd

import (
	"fmt"
	"hash/fnv"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/iksnae/chat-wrapped/internal"
	"github.com/spf13/cobra"
)

var (
	limit int
	since string
)

var (
	// Styles for show command
	reportHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("212")).
				Padding(0, 1).
				MarginBottom(1)

	reportMetaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)

	messageContentStyle = lipgloss.NewStyle().
				Padding(0, 2).
				MarginBottom(1)

	timestampStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	senderColors = []string{"39", "135", "42", "214", "205", "81", "178", "99"}
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show <report-id>",
	Short: "Show a cached report",
	Long: `Display the summary of a cached report and, with --limit, its messages.
The report ID may be abbreviated to any unique prefix.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cacheManager := internal.NewCacheManager(appConfig.CacheDir)
		entry, err := cacheManager.FindReport(args[0])
		if err != nil {
			return fmt.Errorf("%w (use 'chat-wrapped list' to see cached reports)", err)
		}
		report, err := cacheManager.LoadReport(entry.ID)
		if err != nil {
			return err
		}

		printReportSummary(report)
		if limit == 0 && since == "" {
			return nil
		}

		messagesToShow := report.Messages
		if since != "" {
			sinceTime, err := parseSince(since)
			if err != nil {
				return err
			}
			filtered := make([]internal.Message, 0, len(messagesToShow))
			for _, msg := range messagesToShow {
				if !msg.Timestamp.Before(sinceTime) {
					filtered = append(filtered, msg)
				}
			}
			messagesToShow = filtered
		}

		totalFiltered := len(messagesToShow)
		if limit > 0 && limit < len(messagesToShow) {
			messagesToShow = messagesToShow[:limit]
		}

		for i, msg := range messagesToShow {
			displayMessage(i+1, msg, totalFiltered)
		}

		if limit > 0 && limit < totalFiltered {
			fmt.Println(lipgloss.NewStyle().
				Foreground(lipgloss.Color("243")).
				Italic(true).
				Render(fmt.Sprintf("... (%d more message(s))", totalFiltered-limit)))
		}
		return nil
	},
}

// parseSince accepts a date (2025-01-02) or an RFC3339 timestamp
func parseSince(s string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --since value %q (expected YYYY-MM-DD or RFC3339): %w", s, err)
	}
	return t, nil
}

// printReportSummary prints the headline statistics of report
func printReportSummary(report *internal.Report) {
	s := report.Stats
	if s == nil {
		return
	}

	title := report.Title
	if title == "" {
		title = "Chat"
	}
	fmt.Println(reportHeaderStyle.Render(fmt.Sprintf("🎁 %s Wrapped %d", title, s.Year)))

	meta := []string{"Report: " + report.ID}
	if !s.FirstMessage.IsZero() {
		meta = append(meta, fmt.Sprintf("%s → %s", s.FirstMessage.Format(time.DateOnly), s.LastMessage.Format(time.DateOnly)))
	}
	if s.Language != "" {
		meta = append(meta, "Language: "+s.Language)
	}
	fmt.Println(reportMetaStyle.Render(strings.Join(meta, " • ")))

	fmt.Printf("%s %s messages, %s words, %s media, %s links\n",
		labelStyle.Render("Totals:"),
		humanize.Comma(int64(s.TotalMessages)),
		humanize.Comma(int64(s.TotalWords)),
		humanize.Comma(int64(s.MediaCount)),
		humanize.Comma(int64(s.LinkCount)))
	fmt.Printf("%s %s, %02d:00, %s\n",
		labelStyle.Render("Most active:"), s.MostActiveDay, s.MostActiveHour, s.MostActiveDate)
	if lc := s.LongestConversation; lc != nil {
		fmt.Printf("%s %d messages on %s (%s)\n",
			labelStyle.Render("Longest conversation:"), lc.Length, lc.Date, strings.Join(lc.Participants, ", "))
	}
	fmt.Println()

	ranked := slices.Clone(s.Participants)
	slices.SortStableFunc(ranked, func(a, b string) int {
		return s.MessagesBySender[b] - s.MessagesBySender[a]
	})
	for _, p := range ranked {
		line := fmt.Sprintf("%s %s msgs, %.1f words/msg", senderStyle(p).Render(p),
			humanize.Comma(int64(s.MessagesBySender[p])), s.AvgMessageLength[p])
		if n := s.ConversationStarters[p]; n > 0 {
			line += fmt.Sprintf(", started %d", n)
		}
		if n := s.NightOwls[p]; n > 0 {
			line += fmt.Sprintf(", %d at night", n)
		}
		if n := s.EarlyBirds[p]; n > 0 {
			line += fmt.Sprintf(", %d early", n)
		}
		if words := s.UniqueWordsByPerson[p]; len(words) > 0 {
			line += " " + timestampStyle.Render("("+strings.Join(words, ", ")+")")
		}
		fmt.Println("  " + line)
	}
	fmt.Println()

	if len(s.TopWords) > 0 {
		words := make([]string, 0, 10)
		for i, wc := range s.TopWords {
			if i == 10 {
				break
			}
			words = append(words, fmt.Sprintf("%s (%d)", wc.Word, wc.Count))
		}
		fmt.Printf("%s %s\n", labelStyle.Render("Top words:"), strings.Join(words, ", "))
	}
	if len(s.TopEmojis) > 0 {
		emojis := make([]string, 0, len(s.TopEmojis))
		for _, e := range s.TopEmojis {
			emojis = append(emojis, fmt.Sprintf("%s%d", e.Emoji, e.Count))
		}
		fmt.Printf("%s %s\n", labelStyle.Render("Top emojis:"), strings.Join(emojis, " "))
	}
	fmt.Println()
}

// senderStyle gives each sender a stable color
func senderStyle(sender string) lipgloss.Style {
	h := fnv.New32a()
	_, _ = h.Write([]byte(sender))
	color := senderColors[h.Sum32()%uint32(len(senderColors))]
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(true)
}

func displayMessage(index int, msg internal.Message, total int) {
	header := senderStyle(msg.Sender).Render(msg.Sender) + " " +
		timestampStyle.Render(fmt.Sprintf("[%d/%d] %s", index, total, msg.Timestamp.Format("2006-01-02 15:04")))
	fmt.Println(header)

	content := strings.TrimSpace(msg.Content)
	switch {
	case msg.IsDeleted:
		fmt.Println(messageContentStyle.Foreground(lipgloss.Color("240")).Render("(deleted)"))
	case msg.IsMedia && msg.MediaFilename != "":
		fmt.Println(messageContentStyle.Foreground(lipgloss.Color("240")).Render("📎 " + msg.MediaFilename))
	case content == "":
		fmt.Println(messageContentStyle.Foreground(lipgloss.Color("240")).Render("(empty message)"))
	default:
		fmt.Println(messageContentStyle.Render(wrapText(content, 80)))
	}
}

func wrapText(text string, width int) string {
	lines := strings.Split(text, "\n")
	var wrapped []string

	for _, line := range lines {
		if len(line) <= width {
			wrapped = append(wrapped, line)
			continue
		}

		words := strings.Fields(line)
		currentLine := ""
		for _, word := range words {
			if len(currentLine)+len(word)+1 > width {
				if currentLine != "" {
					wrapped = append(wrapped, currentLine)
					currentLine = word
				} else {
					wrapped = append(wrapped, word)
					currentLine = ""
				}
			} else {
				if currentLine == "" {
					currentLine = word
				} else {
					currentLine += " " + word
				}
			}
		}
		if currentLine != "" {
			wrapped = append(wrapped, currentLine)
		}
	}

	return strings.Join(wrapped, "\n")
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().IntVarP(&limit, "limit", "n", 0, "Show up to n messages after the summary")
	showCmd.Flags().StringVar(&since, "since", "", "Show messages since a date (YYYY-MM-DD or RFC3339)")
}
