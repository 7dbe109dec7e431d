package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/iksnae/chat-wrapped/internal"
	"github.com/iksnae/chat-wrapped/internal/export"
	"github.com/spf13/cobra"
)

var (
	analyzeDB      string
	analyzeFormat  string
	analyzeOut     string
	analyzeWorkers int
	analyzeNoCache bool
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze [export.txt...]",
	Short: "Parse chat exports and compute the report",
	Long: `Parse one or more WhatsApp exports of the same chat and compute the
statistics report. Several files are merged chronologically and duplicate
messages removed. With --db the messages are read from a SQLite archive
written by 'chat-wrapped archive' instead.

Reports are cached; an unchanged input with unchanged settings is served from
the cache unless --no-cache is given.

Examples:
  chat-wrapped analyze chat.txt
  chat-wrapped analyze part1.txt part2.txt --year 2025
  chat-wrapped analyze --db family.db --format md --out ./wrapped`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 && analyzeDB == "" {
			return fmt.Errorf("no input: pass export files or --db")
		}
		if len(args) > 0 && analyzeDB != "" {
			return fmt.Errorf("pass either export files or --db, not both")
		}

		cfg := appConfig
		if cmd.Flags().Changed("workers") {
			cfg.Workers = analyzeWorkers
		}

		sources := args
		if analyzeDB != "" {
			sources = []string{analyzeDB}
		}
		for i, src := range sources {
			if abs, err := filepath.Abs(src); err == nil {
				sources[i] = abs
			}
		}

		ctx := context.Background()
		cacheManager := internal.NewCacheManager(cfg.CacheDir)
		fingerprint := cfg.Fingerprint()

		var report *internal.Report
		if !analyzeNoCache {
			if cached, ok := cacheManager.Lookup(sources, fingerprint); ok {
				internal.LogInfo("Loaded report %s from cache", cached.ID)
				report = cached
			}
		}

		if report == nil {
			analyzer := internal.NewAnalyzer(cfg)
			err := internal.ShowProgress(ctx, fmt.Sprintf("Analyzing %d source(s)", len(sources)), func() error {
				var (
					msgs []internal.Message
					diag internal.ParseDiagnostics
					err  error
				)
				if analyzeDB != "" {
					msgs, diag, err = analyzer.LoadArchive(ctx, analyzeDB)
				} else {
					msgs, diag, err = analyzer.ParseFiles(sources)
				}
				if err != nil {
					return err
				}
				report, err = analyzer.BuildReport(ctx, sources, msgs, diag)
				return err
			})
			if err != nil {
				return err
			}

			if !analyzeNoCache {
				if err := cacheManager.SaveReport(report, fingerprint); err != nil {
					internal.LogWarn("Failed to cache report: %v", err)
				}
			}
		}

		for _, w := range report.Warnings {
			internal.PrintWarning(w)
		}
		printReportSummary(report)

		if analyzeFormat != "" {
			path, err := export.WriteReport(report, analyzeFormat, analyzeOut)
			if err != nil {
				return err
			}
			internal.PrintSuccess(fmt.Sprintf("Report written to %s", path))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVar(&analyzeDB, "db", "", "Analyze messages from a SQLite archive")
	analyzeCmd.Flags().StringVarP(&analyzeFormat, "format", "f", "", "Also export the report ("+strings.Join(export.Formats, ", ")+")")
	analyzeCmd.Flags().StringVarP(&analyzeOut, "out", "o", "./exports", "Output directory for --format")
	analyzeCmd.Flags().IntVarP(&analyzeWorkers, "workers", "w", 1, "Aggregate in parallel shards")
	analyzeCmd.Flags().BoolVar(&analyzeNoCache, "no-cache", false, "Neither read nor write the report cache")
}
