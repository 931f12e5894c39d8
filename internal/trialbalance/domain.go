// Package trialbalance normalises uploaded trial balance tables into typed
// rows and runs the accounting-sanity checks on them.
package trialbalance

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Canonical column names after normalisation.
const (
	ColAccountCode        = "Account Code"
	ColAccountDescription = "Account Description"
	ColDebitBalance       = "Debit Balance"
	ColCreditBalance      = "Credit Balance"
	ColNetBalance         = "Net Balance"
)

// Tolerance is the maximum accepted difference between total debits and
// total credits before the imbalance warning fires.
var Tolerance = decimal.NewFromFloat(0.01)

// Table is the raw tabular input as produced by the file-reading boundary:
// string column headers over string cells.
type Table struct {
	Columns []string
	Rows    [][]string
}

// Row is one normalised ledger account. NetBalance is always debit minus
// credit once normalisation completes, whether or not the source supplied it.
type Row struct {
	AccountCode        string
	AccountDescription string
	DebitBalance       decimal.Decimal
	CreditBalance      decimal.Decimal
	NetBalance         decimal.Decimal
}

// ValidationError reports a malformed or incomplete input schema.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("trial balance validation: %s: %s", e.Field, e.Message)
	}
	return "trial balance validation: " + e.Message
}

// FileProcessingError reports a failure at the file ingestion boundary.
type FileProcessingError struct {
	Filename string
	Err      error
}

func (e *FileProcessingError) Error() string {
	if e.Filename != "" {
		return fmt.Sprintf("file processing %s: %v", e.Filename, e.Err)
	}
	return fmt.Sprintf("file processing: %v", e.Err)
}

func (e *FileProcessingError) Unwrap() error {
	return e.Err
}
