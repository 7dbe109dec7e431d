package cmd

import (
	"fmt"
	"strings"

	"github.com/iksnae/chat-wrapped/internal"
	"github.com/iksnae/chat-wrapped/internal/export"
	"github.com/spf13/cobra"
)

var (
	format    string
	outputDir string
	exportAll bool
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export [report-id]",
	Short: "Export cached reports to file",
	Long: `Export a cached report to one of the supported formats (jsonl, md, yaml, json).

json contains the statistics and every message, yaml only the statistics,
jsonl one message per line, md a readable summary.
Use 'chat-wrapped list' to see available report IDs, or --all to export every report.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 && !exportAll {
			return fmt.Errorf("pass a report ID or --all")
		}
		cacheManager := internal.NewCacheManager(appConfig.CacheDir)

		var ids []string
		if exportAll {
			index, err := cacheManager.LoadIndex()
			if err != nil {
				return err
			}
			for _, entry := range index.Reports {
				ids = append(ids, entry.ID)
			}
		} else {
			entry, err := cacheManager.FindReport(args[0])
			if err != nil {
				return fmt.Errorf("%w (use 'chat-wrapped list' to see cached reports)", err)
			}
			ids = append(ids, entry.ID)
		}

		exported := 0
		for _, id := range ids {
			report, err := cacheManager.LoadReport(id)
			if err != nil {
				internal.LogError("Failed to load report %s: %v", id, err)
				continue
			}
			path, err := export.WriteReport(report, format, outputDir)
			if err != nil {
				if exportAll {
					internal.LogError("Failed to export report %s: %v", id, err)
					continue
				}
				return err
			}
			internal.LogDebug("wrote %s", path)
			exported++
		}

		internal.PrintSuccess(fmt.Sprintf("Export complete: %d report(s) exported to %s", exported, outputDir))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&format, "format", "f", "json", "Export format ("+strings.Join(export.Formats, ", ")+")")
	exportCmd.Flags().StringVarP(&outputDir, "out", "o", "./exports", "Output directory")
	exportCmd.Flags().BoolVar(&exportAll, "all", false, "Export every cached report")
}
