// Package importer loads roster and academic-record CSV exports into the
// database. Row-level failures are logged and skipped; structural problems
// (missing file, missing columns) abort before any writes.
package importer

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// Table is a CSV file parsed into header-keyed rows.
type Table struct {
	Headers []string
	Rows    []map[string]string
}

// ReadCSV parses a CSV file with a header row. Cell values are trimmed.
func ReadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV file %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("CSV file %s is empty", path)
	}

	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = strings.TrimSpace(h)
	}

	table := &Table{
		Headers: headers,
		Rows:    make([]map[string]string, 0, len(records)-1),
	}
	for _, record := range records[1:] {
		row := make(map[string]string, len(headers))
		for i, header := range headers {
			if i < len(record) {
				row[header] = strings.TrimSpace(record[i])
			}
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

// RequireColumns fails when any named column is absent from the header row.
func (t *Table) RequireColumns(columns ...string) error {
	present := make(map[string]bool, len(t.Headers))
	for _, h := range t.Headers {
		present[h] = true
	}

	var missing []string
	for _, col := range columns {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("CSV is missing required columns: %s", strings.Join(missing, ", "))
	}
	return nil
}
