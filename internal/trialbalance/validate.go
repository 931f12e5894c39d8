package trialbalance

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Report is the outcome of the raw integrity checks. Errors block further
// processing; warnings are surfaced alongside a successful run.
type Report struct {
	Valid         bool     `json:"valid"`
	Errors        []string `json:"errors"`
	Warnings      []string `json:"warnings"`
	TotalAccounts int      `json:"total_accounts"`
}

// Check runs the accounting-sanity checks over normalised rows.
func Check(rows []Row) Report {
	report := Report{
		Errors:        []string{},
		Warnings:      []string{},
		TotalAccounts: len(rows),
	}

	emptyCodes := 0
	seen := make(map[string]int, len(rows))
	bothSides := 0
	negativeDebits := 0
	negativeCredits := 0
	totalDebit := decimal.Zero
	totalCredit := decimal.Zero

	for _, row := range rows {
		if row.AccountCode == "" {
			emptyCodes++
		} else {
			seen[row.AccountCode]++
		}
		if !row.DebitBalance.IsZero() && !row.CreditBalance.IsZero() {
			bothSides++
		}
		if row.DebitBalance.IsNegative() {
			negativeDebits++
		}
		if row.CreditBalance.IsNegative() {
			negativeCredits++
		}
		totalDebit = totalDebit.Add(row.DebitBalance)
		totalCredit = totalCredit.Add(row.CreditBalance)
	}

	duplicates := 0
	for _, n := range seen {
		if n > 1 {
			duplicates += n
		}
	}

	if emptyCodes > 0 {
		report.Warnings = append(report.Warnings, fmt.Sprintf("found %d rows with empty account codes", emptyCodes))
	}
	if duplicates > 0 {
		report.Warnings = append(report.Warnings, fmt.Sprintf("found %d duplicate account codes", duplicates))
	}
	if bothSides > 0 {
		report.Warnings = append(report.Warnings, fmt.Sprintf("found %d accounts with both debit and credit balances", bothSides))
	}
	if totalDebit.Sub(totalCredit).Abs().GreaterThan(Tolerance) {
		report.Warnings = append(report.Warnings, fmt.Sprintf(
			"trial balance does not balance: debit %s vs credit %s",
			totalDebit.StringFixed(2), totalCredit.StringFixed(2)))
	}
	if negativeDebits > 0 {
		report.Warnings = append(report.Warnings, fmt.Sprintf("found %d accounts with negative debit balances", negativeDebits))
	}
	if negativeCredits > 0 {
		report.Warnings = append(report.Warnings, fmt.Sprintf("found %d accounts with negative credit balances", negativeCredits))
	}

	report.Valid = len(report.Errors) == 0
	return report
}
