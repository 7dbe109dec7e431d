package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/iksnae/chat-wrapped/internal"
	"github.com/spf13/cobra"
)

var (
	listClearCache bool
)

var (
	// Styles
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	idStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Italic(true)

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	dateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List cached reports",
	Long:  `List the reports stored in the report cache by previous 'analyze' runs.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cacheManager := internal.NewCacheManager(appConfig.CacheDir)

		if listClearCache {
			if err := cacheManager.ClearCache(); err != nil {
				return fmt.Errorf("failed to clear cache: %w", err)
			}
			internal.PrintSuccess("Cache cleared")
			return nil
		}

		index, err := cacheManager.LoadIndex()
		if err != nil {
			return err
		}
		displayReportIndex(index, cacheManager.GetCacheDir())
		return nil
	},
}

func displayReportIndex(index *internal.ReportIndex, dir string) {
	if len(index.Reports) == 0 {
		fmt.Println(headerStyle.Render("📋 No cached reports in " + dir))
		return
	}

	fmt.Println(headerStyle.Render(fmt.Sprintf("📋 Found %d report(s)", len(index.Reports))))
	fmt.Println()

	w := tabwriter.NewWriter(lipgloss.DefaultRenderer().Output(), 0, 0, 3, ' ', 0)

	_, _ = fmt.Fprintln(w, titleStyle.Render("ID")+"\t"+titleStyle.Render("Chat")+"\t"+titleStyle.Render("Year")+"\t"+
		titleStyle.Render("Messages")+"\t"+titleStyle.Render("People")+"\t"+titleStyle.Render("Generated")+"\t")
	_, _ = fmt.Fprintln(w, strings.Repeat("─", 90))

	for _, entry := range index.Reports {
		name := entry.Title
		if name == "" {
			name = "Untitled"
		}
		if len(name) > 40 {
			name = name[:37] + "..."
		}

		_, _ = fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%d\t%s\t\n",
			idStyle.Render(entry.ID),
			lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Render(name),
			entry.Year,
			countStyle.Render(strconv.Itoa(entry.MessageCount)),
			entry.Participants,
			dateStyle.Render(formatGenerated(entry.GeneratedAt)))
	}

	_ = w.Flush()
	fmt.Println()
	fmt.Println(idStyle.Render("💡 Tip: Use the ID (e.g., ") +
		lipgloss.NewStyle().Foreground(lipgloss.Color("62")).Render(index.Reports[0].ID) +
		idStyle.Render(") with `chat-wrapped show <id>`"))
}

func formatGenerated(t time.Time) string {
	if t.IsZero() {
		return "—"
	}
	if time.Since(t) < 7*24*time.Hour {
		return humanize.Time(t)
	}
	return t.Format(time.DateOnly)
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listClearCache, "clear-cache", false, "Remove every cached report")
}
