package trialbalance

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// AllowedExtensions lists the upload formats accepted at the ingestion
// boundary.
var AllowedExtensions = []string{".csv"}

// AllowedExtension reports whether the filename carries an accepted extension.
func AllowedExtension(filename string) bool {
	lower := strings.ToLower(filename)
	for _, ext := range AllowedExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// ReadCSV decodes a CSV stream into a raw table. The first record is the
// header row; ragged records are tolerated and padded during normalisation.
func ReadCSV(r io.Reader) (Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return Table{}, &FileProcessingError{Err: fmt.Errorf("reading csv: %w", err)}
	}
	if len(records) == 0 {
		return Table{}, &FileProcessingError{Err: errors.New("uploaded file is empty")}
	}

	table := Table{Columns: records[0]}
	for _, rec := range records[1:] {
		if isBlank(rec) {
			continue
		}
		table.Rows = append(table.Rows, rec)
	}
	return table, nil
}

func isBlank(rec []string) bool {
	for _, cell := range rec {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
