package cmd

import (
	"fmt"
	"os"

	"github.com/iksnae/chat-wrapped/internal"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	configPath string
	yearFlag   int
	cacheDir   string
	sortFlag   bool
	version    string = "dev"
	commit     string = "unknown"
	date       string = "unknown"

	// appConfig is resolved once per invocation in PersistentPreRunE
	appConfig = internal.DefaultConfig()
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "chat-wrapped",
	Short: "Turn a WhatsApp chat export into a year-in-review report",
	Long: `A CLI tool that parses WhatsApp chat exports and computes a "wrapped"
style report: who talks most, when, with which words and emojis.

Features:
  • Parses Android (dash) and iOS (bracketed) export formats
  • Per-sender activity, hourly/daily/monthly distributions
  • Night owls and early birds using per-person timezones
  • Conversation starters and the longest conversation
  • Top, rare and signature words and emojis
  • Exports to JSON, YAML, JSONL and Markdown
  • SQLite archive of parsed messages and a report cache

Quick Start:
  chat-wrapped analyze "WhatsApp Chat with Family.txt"    # Analyze an export
  chat-wrapped analyze chat.txt --year 2025 --format md   # Filter a year, write Markdown
  chat-wrapped list                                       # List cached reports
  chat-wrapped show <report-id>                           # View a cached report

Settings are read from a YAML file (--config or CHAT_WRAPPED_CONFIG), then
CHAT_WRAPPED_* environment variables (a .env file is loaded if present), then flags.`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		internal.SetVerbose(verbose)
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}
		appConfig = cfg
		return nil
	},
}

// resolveConfig layers defaults, config file, environment and flags
func resolveConfig(cmd *cobra.Command) (internal.Config, error) {
	internal.LoadDotEnv()

	path := configPath
	if path == "" {
		path = internal.ConfigPathFromEnv()
	}
	cfg, err := internal.LoadConfig(path)
	if err != nil {
		return cfg, err
	}
	if err := internal.ApplyEnv(&cfg); err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("year") {
		cfg.Year = yearFlag
	}
	if flags.Changed("cache-dir") {
		cfg.CacheDir = cacheDir
	}
	if flags.Changed("sort") {
		cfg.SortMessages = sortFlag
	}
	if err := cfg.Validate(); err != nil {
		return cfg, &internal.ConfigError{Path: path, Err: err}
	}
	return cfg, nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		internal.PrintError(fmt.Sprintf("Error: %v", err))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().IntVar(&yearFlag, "year", 0, "Only keep messages from this year (0 keeps all)")
	rootCmd.PersistentFlags().StringVar(&cacheDir, "cache-dir", "", "Report cache directory (default ~/.chat-wrapped-cache)")
	rootCmd.PersistentFlags().BoolVar(&sortFlag, "sort", false, "Sort out-of-order messages instead of failing")

	// Set version template to ensure --version flag works
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}
