package trialbalance

import (
	"strings"

	"github.com/shopspring/decimal"
)

// renameTable maps known header variants to canonical column names. Matching
// is case sensitive; a rename is skipped when the canonical column already
// exists so a precomputed column is never clobbered.
var renameTable = map[string]string{
	"Acc Code":    ColAccountCode,
	"AccCode":     ColAccountCode,
	"Account":     ColAccountCode,
	"Description": ColAccountDescription,
	"Debit":       ColDebitBalance,
	"Credit":      ColCreditBalance,
}

// Normalize reconciles variant column names into the canonical schema and
// returns typed rows with the net balance derived when absent.
func Normalize(table Table) ([]Row, error) {
	columns := make([]string, len(table.Columns))
	for i, col := range table.Columns {
		columns[i] = strings.TrimSpace(col)
	}

	if err := checkRecognizable(columns); err != nil {
		return nil, err
	}

	columns = applyRenames(columns)

	idx := columnIndex(columns)
	codeCol, ok := idx[ColAccountCode]
	if !ok {
		return nil, &ValidationError{Field: ColAccountCode, Message: "missing required column"}
	}
	descCol, hasDesc := idx[ColAccountDescription]
	debitCol, hasDebit := idx[ColDebitBalance]
	creditCol, hasCredit := idx[ColCreditBalance]
	netCol, hasNet := idx[ColNetBalance]

	if !hasDebit && !hasCredit && !hasNet {
		return nil, &ValidationError{
			Field:   ColNetBalance,
			Message: "file must contain debit balance and credit balance columns or a net balance column",
		}
	}

	rows := make([]Row, 0, len(table.Rows))
	for _, raw := range table.Rows {
		row := Row{AccountCode: strings.TrimSpace(cell(raw, codeCol))}
		if hasDesc {
			row.AccountDescription = strings.TrimSpace(cell(raw, descCol))
		}
		if hasDebit {
			v, err := parseAmount(cell(raw, debitCol))
			if err != nil {
				return nil, &ValidationError{Field: ColDebitBalance, Message: err.Error()}
			}
			row.DebitBalance = v
		}
		if hasCredit {
			v, err := parseAmount(cell(raw, creditCol))
			if err != nil {
				return nil, &ValidationError{Field: ColCreditBalance, Message: err.Error()}
			}
			row.CreditBalance = v
		}
		if hasNet {
			v, err := parseAmount(cell(raw, netCol))
			if err != nil {
				return nil, &ValidationError{Field: ColNetBalance, Message: err.Error()}
			}
			row.NetBalance = v
		} else {
			row.NetBalance = row.DebitBalance.Sub(row.CreditBalance)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// checkRecognizable rejects tables where no header looks like an account
// identifier or like an amount column, using case-insensitive substring
// matches against the header text.
func checkRecognizable(columns []string) error {
	hasAccount := false
	hasAmount := false
	for _, col := range columns {
		lower := strings.ToLower(col)
		if strings.Contains(lower, "account") || strings.Contains(lower, "acc") {
			hasAccount = true
		}
		if strings.Contains(lower, "debit") || strings.Contains(lower, "credit") || strings.Contains(lower, "balance") {
			hasAmount = true
		}
	}
	if !hasAccount {
		return &ValidationError{Field: ColAccountCode, Message: "no column recognizable as account identifier"}
	}
	if !hasAmount {
		return &ValidationError{Field: ColDebitBalance, Message: "no column recognizable as debit, credit or balance"}
	}
	return nil
}

func applyRenames(columns []string) []string {
	present := make(map[string]bool, len(columns))
	for _, col := range columns {
		present[col] = true
	}
	renamed := make([]string, len(columns))
	for i, col := range columns {
		target, ok := renameTable[col]
		if ok && !present[target] {
			renamed[i] = target
			continue
		}
		renamed[i] = col
	}
	return renamed
}

func columnIndex(columns []string) map[string]int {
	idx := make(map[string]int, len(columns))
	for i, col := range columns {
		if _, seen := idx[col]; !seen {
			idx[col] = i
		}
	}
	return idx
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

// parseAmount converts a cell like "1,234.56" or "R 1 234.56" into a decimal.
// Empty cells default to zero.
func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, "R", "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, " ", "")
	if s == "" || s == "-" {
		return decimal.Zero, nil
	}
	// Accounting notation: (123.45) means negative.
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		s = "-" + s[1:len(s)-1]
	}
	return decimal.NewFromString(s)
}
