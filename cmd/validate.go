package cmd

import (
	"errors"
	"fmt"
	"slices"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/chat-wrapped/internal"
	"github.com/spf13/cobra"
)

var (
	validateDetails bool
)

var (
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")).
			Bold(true).
			Underline(true)
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate <export.txt>...",
	Short: "Check that chat exports parse cleanly",
	Long: `Parse chat exports without computing the report and check:
  • How each physical line was handled (headers, continuations, stray lines)
  • Lines whose date could not be read
  • Messages dropped by the year filter or the sender exclusion list
  • That the transcript is not empty and its timestamps never go backwards
  • That every configured location has a timezone offset

This command is useful for checking a new export or a new config file.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(sectionStyle.Render("🔍 Chat Export Validation"))
		fmt.Println()

		// Step 1: Parse
		fmt.Println(infoStyle.Render("Step 1: Parsing exports..."))
		analyzer := internal.NewAnalyzer(appConfig)
		msgs, diag, err := analyzer.ParseFiles(args)
		if err != nil {
			fmt.Println(errorStyle.Render("❌ Failed to read exports:"), err)
			return err
		}
		fmt.Println(successStyle.Render(fmt.Sprintf("✅ Parsed %d file(s), %d message(s)", len(args), len(msgs))))
		printDiagnostics(diag)
		fmt.Println()

		// Step 2: Invariants
		fmt.Println(infoStyle.Render("Step 2: Checking transcript invariants..."))
		problems := 0
		if err := checkInvariants(msgs); err != nil {
			var inv *internal.InvariantError
			if errors.As(err, &inv) && inv.Kind == internal.InvariantOrder && appConfig.SortMessages {
				fmt.Println(warningStyle.Render("⚠️  " + err.Error()))
				fmt.Println("   Messages will be sorted (--sort)")
			} else {
				fmt.Println(errorStyle.Render("❌ " + err.Error()))
				problems++
			}
		} else {
			fmt.Println(successStyle.Render("✅ Messages present and in chronological order"))
		}
		fmt.Println()

		// Step 3: Config
		fmt.Println(infoStyle.Render("Step 3: Checking timezone configuration..."))
		problems += checkLocations(msgs)
		fmt.Println()

		fmt.Println(sectionStyle.Render("📊 Summary"))
		fmt.Println()
		if problems > 0 {
			fmt.Println(errorStyle.Render("❌ Validation failed"))
			return fmt.Errorf("validation failed: %d problem(s)", problems)
		}
		if diag.DateErrors > 0 || diag.StrayLines > 0 {
			fmt.Println(warningStyle.Render("⚠️  Export is usable but some lines were skipped"))
			return nil
		}
		fmt.Println(successStyle.Render("✅ Validation passed!"))
		return nil
	},
}

// checkInvariants reports an empty or out-of-order transcript
func checkInvariants(msgs []internal.Message) error {
	if len(msgs) == 0 {
		return &internal.InvariantError{Kind: internal.InvariantEmpty, Detail: "transcript has no messages"}
	}
	if i := internal.CheckOrder(msgs); i >= 0 {
		return &internal.InvariantError{
			Kind:   internal.InvariantOrder,
			Detail: fmt.Sprintf("message %d is older than the message before it", i),
		}
	}
	return nil
}

// checkLocations warns about senders the localizer cannot place and
// returns the number of configuration errors
func checkLocations(msgs []internal.Message) int {
	problems := 0
	for sender, loc := range appConfig.Locations {
		if _, ok := appConfig.TimezoneOffsets[loc]; !ok {
			fmt.Println(errorStyle.Render(fmt.Sprintf("❌ Location %q of %s has no timezone offset", loc, sender)))
			problems++
		}
	}

	localizer := appConfig.Localizer()
	var unmapped, mapped []string
	for _, m := range msgs {
		_, ok := appConfig.Locations[m.Sender]
		switch {
		case !ok && !slices.Contains(unmapped, m.Sender):
			unmapped = append(unmapped, m.Sender)
		case ok && !slices.Contains(mapped, m.Sender):
			mapped = append(mapped, m.Sender)
		}
	}
	if validateDetails {
		for _, s := range mapped {
			fmt.Printf("   • %s: %s (UTC%+d)\n", s, appConfig.Locations[s], localizer.Offset(s))
		}
	}
	if len(unmapped) > 0 {
		fmt.Println(warningStyle.Render(fmt.Sprintf("⚠️  %d sender(s) without a location use the reference offset (UTC%+d)",
			len(unmapped), localizer.Reference())))
		if validateDetails {
			for _, s := range unmapped {
				fmt.Printf("   • %s\n", s)
			}
		}
	} else if problems == 0 {
		fmt.Println(successStyle.Render("✅ Every sender has a location"))
	}
	return problems
}

func printDiagnostics(d internal.ParseDiagnostics) {
	fmt.Printf("   Lines read:        %d\n", d.LinesRead)
	fmt.Printf("   Header lines:      %d\n", d.HeaderLines)
	fmt.Printf("   Continuations:     %d\n", d.Continuations)
	if d.StrayLines > 0 {
		fmt.Println(warningStyle.Render(fmt.Sprintf("   Stray lines:       %d", d.StrayLines)))
	}
	if d.DateErrors > 0 {
		fmt.Println(warningStyle.Render(fmt.Sprintf("   Unreadable dates:  %d", d.DateErrors)))
	}
	if validateDetails || d.YearFiltered > 0 {
		fmt.Printf("   Other years:       %d\n", d.YearFiltered)
	}
	if validateDetails || d.SenderFiltered > 0 {
		fmt.Printf("   Excluded senders:  %d\n", d.SenderFiltered)
	}
	if d.Duplicates > 0 {
		fmt.Printf("   Duplicates:        %d\n", d.Duplicates)
	}
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().BoolVarP(&validateDetails, "details", "d", false, "Show detailed diagnostic information")
}
