// Package export materializes flattened issue records as CSV.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// Record is one flattened issue row. Every field is already rendered as
// its final cell text; missing source data is the empty string.
type Record struct {
	Key         string
	Summary     string
	IssueType   string
	Status      string
	Priority    string
	Assignee    string
	Reporter    string
	Resolution  string
	Updated     string
	Sprint      string
	EpicKey     string
	EpicName    string
	Labels      string
	ExtractDate string
}

// Columns is the fixed CSV header. Extract_Date is always last and
// holds the run's shared timestamp.
var Columns = []string{
	"Key",
	"Summary",
	"Issue_Type",
	"Status",
	"Priority",
	"Assignee",
	"Reporter",
	"Resolution",
	"Updated",
	"Sprint",
	"Epic_Key",
	"Epic_Name",
	"Labels",
	"Extract_Date",
}

// Row returns the record's cells in Columns order.
func (r Record) Row() []string {
	return []string{
		r.Key,
		r.Summary,
		r.IssueType,
		r.Status,
		r.Priority,
		r.Assignee,
		r.Reporter,
		r.Resolution,
		r.Updated,
		r.Sprint,
		r.EpicKey,
		r.EpicName,
		r.Labels,
		r.ExtractDate,
	}
}

// WriteCSV writes the header and one row per record to path, creating
// parent directories as needed, and returns the number of data rows
// written. An empty record slice still produces a header-only file.
func WriteCSV(path string, records []Record) (int, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return 0, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create output file: %w", err)
	}

	writer := csv.NewWriter(file)
	if err := writer.Write(Columns); err != nil {
		file.Close()
		return 0, fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, record := range records {
		if err := writer.Write(record.Row()); err != nil {
			file.Close()
			return 0, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		file.Close()
		return 0, fmt.Errorf("failed to flush CSV output: %w", err)
	}
	if err := file.Close(); err != nil {
		return 0, fmt.Errorf("failed to close output file: %w", err)
	}

	log.Debug().Str("path", path).Int("rows", len(records)).Msg("CSV written")
	return len(records), nil
}
