package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/pr17-lab/sata-backend/internal/importer"
)

var validateCmd = &cobra.Command{
	Use:   "validate <csv-file>",
	Short: "Check a CSV export before importing it",
	Long: `Validate a roster or academic-records CSV without touching the
database. The file kind is detected from its header row. Exits non-zero
when problems are found.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := importer.ReadCSV(args[0])
		if err != nil {
			return err
		}

		var issues []string
		switch {
		case table.RequireColumns(importer.RosterColumns...) == nil:
			issues = importer.ValidateRoster(table)
		case table.RequireColumns(importer.RecordsColumns...) == nil:
			issues = importer.ValidateRecords(table)
		default:
			return fmt.Errorf("unrecognized CSV header: expected roster columns (%v) or records columns (%v)",
				importer.RosterColumns, importer.RecordsColumns)
		}

		if len(issues) > 0 {
			for _, issue := range issues {
				fmt.Println(issue)
			}
			return fmt.Errorf("%d problem(s) found in %s", len(issues), args[0])
		}

		fmt.Printf("%s: %d rows, no problems found\n", args[0], len(table.Rows))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
