package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/iksnae/chat-wrapped/internal"
	"github.com/spf13/cobra"
)

var archiveDB string

// archiveCmd represents the archive command
var archiveCmd = &cobra.Command{
	Use:   "archive <export.txt>...",
	Short: "Store parsed messages in a SQLite archive",
	Long: `Parse chat exports and store their messages in a SQLite archive.
Importing a file again replaces its previous messages, so the archive can be
refreshed with newer exports of the same chat.

The archive can then be analyzed with 'chat-wrapped analyze --db'.

Examples:
  chat-wrapped archive chat.txt --db family.db
  chat-wrapped archive 2024.txt 2025.txt --db family.db`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if archiveDB == "" {
			return fmt.Errorf("--db is required")
		}

		store, err := internal.OpenStorage(archiveDB)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		ctx := context.Background()
		analyzer := internal.NewAnalyzer(appConfig)
		total := 0
		steps := make([]internal.ProgressStep, 0, len(args))
		for _, path := range args {
			source := path
			if abs, err := filepath.Abs(path); err == nil {
				source = abs
			}
			steps = append(steps, internal.ProgressStep{
				Message: fmt.Sprintf("Archiving %s", filepath.Base(path)),
				Fn: func() error {
					msgs, diag, err := analyzer.ParseFile(path)
					if err != nil {
						return err
					}
					if err := store.SaveMessages(ctx, source, msgs); err != nil {
						return &internal.StorageError{Path: archiveDB, Op: "write", Err: err}
					}
					total += len(msgs)
					internal.LogDebug("archived %d messages from %s (%d stray lines)", len(msgs), path, diag.StrayLines)
					return nil
				},
			})
		}
		if err := internal.ShowProgressWithSteps(ctx, steps); err != nil {
			return err
		}

		internal.PrintSuccess(fmt.Sprintf("Archived %d message(s) from %d file(s) into %s", total, len(args), archiveDB))
		internal.PrintInfo(fmt.Sprintf("Analyze it with: chat-wrapped analyze --db %s", archiveDB))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(archiveCmd)
	archiveCmd.Flags().StringVar(&archiveDB, "db", "", "Path to the SQLite archive (created if missing)")
}
