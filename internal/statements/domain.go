// Package statements derives GRAP financial statements and ratios from a
// classified trial balance.
package statements

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/grapfin/grapfin/internal/grap"
	"github.com/grapfin/grapfin/internal/trialbalance"
)

// MappedAccount joins a trial balance row with its GRAP classification.
// Mapped is false when the account code has no entry in the mapping table;
// such accounts block statement generation until remediated.
type MappedAccount struct {
	trialbalance.Row
	Mapped   bool
	GRAPCode string
	GRAPItem string
	Category grap.Category
}

// UnmappedAccount is the remediation payload returned to callers when
// classification finds accounts without a GRAP mapping.
type UnmappedAccount struct {
	AccountCode        string  `json:"account_code"`
	AccountDescription string  `json:"account_description"`
	NetBalance         float64 `json:"net_balance"`
}

// LineItem aggregates the net balances of all accounts sharing a GRAP code.
type LineItem struct {
	GRAPCode string
	GRAPItem string
	Category grap.Category
	Amount   decimal.Decimal
}

// Group is a named list of line items with its subtotal.
type Group struct {
	Label string
	Items []LineItem
	Total decimal.Decimal
}

// FinancialPosition is the SOFP: assets, liabilities, and net assets, with
// the identity assets = liabilities + net assets expected to hold for a
// balanced trial balance.
type FinancialPosition struct {
	Assets      Group
	Liabilities Group
	NetAssets   Group
}

// FinancialPerformance is the SOFE: revenue, expenses, and the derived
// surplus or deficit.
type FinancialPerformance struct {
	Revenue  Group
	Expenses Group
	Surplus  decimal.Decimal
}

// CashFlow is the SCF built via the indirect method.
type CashFlow struct {
	Operating   Group
	Investing   Group
	Financing   Group
	NetMovement decimal.Decimal
}

// MappingError reports unmapped account codes. It carries the full
// remediation list so callers can render an actionable message.
type MappingError struct {
	Unmapped []UnmappedAccount
}

func (e *MappingError) Error() string {
	if len(e.Unmapped) == 0 {
		return "grap mapping failed"
	}
	return fmt.Sprintf("found %d unmapped accounts (first: %s)", len(e.Unmapped), e.Unmapped[0].AccountCode)
}

// FirstAccountCode returns the first offending account code, or "".
func (e *MappingError) FirstAccountCode() string {
	if len(e.Unmapped) == 0 {
		return ""
	}
	return e.Unmapped[0].AccountCode
}

// ValidationError reports a structural or taxonomy failure in generated
// statements.
type ValidationError struct {
	Section string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Section != "" {
		return fmt.Sprintf("statement validation: %s: %s", e.Section, e.Message)
	}
	return "statement validation: " + e.Message
}
