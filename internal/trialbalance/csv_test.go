package trialbalance

import (
	"errors"
	"strings"
	"testing"
)

func TestReadCSV(t *testing.T) {
	input := "Acc Code,Description,Debit,Credit\n" +
		"1000,Cash,1000.00,0\n" +
		",,,\n" +
		"2000,Payables,0,400.00\n"

	table, err := ReadCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(table.Columns) != 4 {
		t.Fatalf("expected 4 columns, got %d", len(table.Columns))
	}
	if len(table.Rows) != 2 {
		t.Fatalf("blank record should be skipped, got %d rows", len(table.Rows))
	}
}

func TestReadCSVEmpty(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""))
	var ferr *FileProcessingError
	if !errors.As(err, &ferr) {
		t.Fatalf("expected FileProcessingError, got %v", err)
	}
}

func TestAllowedExtension(t *testing.T) {
	if !AllowedExtension("tb_2026.CSV") {
		t.Fatal("expected .CSV to be accepted")
	}
	if AllowedExtension("tb_2026.xlsx") {
		t.Fatal("expected .xlsx to be rejected")
	}
}
