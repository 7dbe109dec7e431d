package cmd

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/iksnae/chat-wrapped/internal"
	"github.com/spf13/cobra"
)

var (
	inspectFormat     string
	inspectSampleRows int
)

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect <archive.db>",
	Short: "Inspect a message archive",
	Long: `Inspect the schema and contents of a SQLite archive written by
'chat-wrapped archive'.

This command provides detailed information about:
  • Imported transcripts and their message counts
  • Database schema (tables, columns, types)
  • Row counts and sample rows

Examples:
  chat-wrapped inspect family.db                      # Inspect an archive
  chat-wrapped inspect family.db --format json        # Machine-readable output
  chat-wrapped inspect family.db --sample 5           # Show 5 sample rows per table`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return inspectDatabase(args[0])
	},
}

type inspectResult struct {
	Path    string                    `json:"path"`
	Sources []internal.ArchivedSource `json:"sources"`
	Tables  []internal.TableInfo      `json:"tables"`
}

func inspectDatabase(dbPath string) error {
	if _, err := os.Stat(dbPath); err != nil {
		return &internal.StorageError{Path: dbPath, Op: "open", Err: err}
	}
	db, err := internal.OpenDatabase(dbPath)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	tables, err := internal.ListTables(db)
	if err != nil {
		return &internal.StorageError{Path: dbPath, Op: "query", Err: err}
	}

	var sources []internal.ArchivedSource
	if hasTable(tables, "sources") {
		sources, err = internal.NewStorage(db).Sources(context.Background())
		if err != nil {
			return &internal.StorageError{Path: dbPath, Op: "query", Err: err}
		}
	}

	if inspectFormat == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(inspectResult{Path: dbPath, Sources: sources, Tables: tables})
	}

	if len(tables) == 0 {
		fmt.Println("⚠️  No tables found in database")
		return nil
	}

	fmt.Printf("📋 Database: %s\n", dbPath)
	if len(sources) > 0 {
		fmt.Printf("📥 Imported transcripts:\n")
		for _, src := range sources {
			fmt.Printf("  • %s (%s messages, imported %s)\n",
				src.Path, humanize.Comma(int64(src.MessageCount)), humanize.Time(src.ImportedAt))
		}
	}
	fmt.Printf("📊 Found %d table(s)\n\n", len(tables))

	for _, table := range tables {
		printTable(table)
		if table.Rows > 0 && inspectSampleRows > 0 {
			if err := showSampleData(db, table, inspectSampleRows); err != nil {
				fmt.Printf("⚠️  Error showing sample data: %v\n", err)
			}
		}
		fmt.Println()
	}
	return nil
}

func hasTable(tables []internal.TableInfo, name string) bool {
	for _, t := range tables {
		if t.Name == name {
			return true
		}
	}
	return false
}

func printTable(table internal.TableInfo) {
	fmt.Printf("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n")
	fmt.Printf("📦 Table: %s\n", table.Name)
	fmt.Printf("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n")
	fmt.Printf("📊 Rows: %s\n\n", humanize.Comma(int64(table.Rows)))

	fmt.Printf("📐 Schema:\n")
	for _, col := range table.Columns {
		pk := ""
		if col.PrimaryKey {
			pk = " [PRIMARY KEY]"
		}
		notNull := ""
		if col.NotNull {
			notNull = " NOT NULL"
		}
		fmt.Printf("  • %s: %s%s%s\n", col.Name, col.Type, notNull, pk)
	}
	fmt.Println()
}

func showSampleData(db *sql.DB, table internal.TableInfo, limit int) error {
	if len(table.Columns) == 0 {
		return nil
	}

	colNames := make([]string, len(table.Columns))
	for i, col := range table.Columns {
		colNames[i] = fmt.Sprintf("%q", col.Name)
	}

	query := fmt.Sprintf("SELECT %s FROM %q LIMIT %d", strings.Join(colNames, ", "), table.Name, limit)
	rows, err := db.Query(query)
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()

	fmt.Printf("📄 Sample Data (first %d rows):\n", limit)
	rowNum := 0
	for rows.Next() {
		rowNum++
		values := make([]interface{}, len(table.Columns))
		valuePtrs := make([]interface{}, len(table.Columns))
		for i := range values {
			valuePtrs[i] = &values[i]
		}

		if err := rows.Scan(valuePtrs...); err != nil {
			fmt.Printf("  ⚠️  Row %d: error scanning: %v\n", rowNum, err)
			continue
		}

		fmt.Printf("\n  Row %d:\n", rowNum)
		for i, col := range table.Columns {
			fmt.Printf("    %s: %s\n", col.Name, formatValue(values[i]))
		}
	}
	return rows.Err()
}

// formatValue renders a column value on one line of at most 200 bytes
func formatValue(val interface{}) string {
	if val == nil {
		return "<NULL>"
	}
	var s string
	if b, ok := val.([]byte); ok {
		s = string(b)
	} else {
		s = fmt.Sprintf("%v", val)
	}
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i] + "..."
	}
	if len(s) > 200 {
		s = s[:200] + "..."
	}
	return s
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().StringVar(&inspectFormat, "format", "text", "Output format (text, json)")
	inspectCmd.Flags().IntVar(&inspectSampleRows, "sample", 3, "Number of sample rows to show")
}
