package report

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/grapfin/grapfin/internal/grap"
	"github.com/grapfin/grapfin/internal/statements"
	"github.com/grapfin/grapfin/internal/trialbalance"
)

func sampleRun(t *testing.T) statements.Run {
	t.Helper()
	svc := statements.NewService(grap.DefaultTable(), nil, nil, nil)
	result, err := svc.Generate(trialbalance.Table{
		Columns: []string{"Acc Code", "Description", "Debit", "Credit"},
		Rows: [][]string{
			{"1000", "Cash", "1500000.00", "0"},
			{"2000", "Payables", "0", "400000.00"},
			{"3000", "Equity", "0", "1100000.00"},
			{"4100", "Licence fees", "0", "5000.00"},
			{"5000", "Salaries", "5000.00", "0"},
		},
	})
	require.NoError(t, err)
	return statements.Run{
		ID:        uuid.New(),
		Result:    result,
		CreatedAt: time.Date(2026, time.February, 10, 9, 30, 0, 0, time.UTC),
	}
}

func TestRendererHTML(t *testing.T) {
	r, err := NewRenderer("SOUTH AFRICAN DIAMOND AND PRECIOUS METALS REGULATOR")
	require.NoError(t, err)

	html, err := r.HTML(sampleRun(t))
	require.NoError(t, err)

	require.Contains(t, html, "STATEMENT OF FINANCIAL POSITION")
	require.Contains(t, html, "CASH FLOW STATEMENT")
	require.Contains(t, html, "Cash and Cash Equivalents (CA-001)")
	require.Contains(t, html, "R 1,500,000.00")
	require.Contains(t, html, "For the year ended 31 March 2026")
}

func TestRendererFiscalYear(t *testing.T) {
	if got := fiscalYear(time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC)); got != 2027 {
		t.Fatalf("expected fiscal year 2027, got %d", got)
	}
	if got := fiscalYear(time.Date(2026, time.March, 31, 0, 0, 0, 0, time.UTC)); got != 2026 {
		t.Fatalf("expected fiscal year 2026, got %d", got)
	}
}

func TestRendererNegativeAmounts(t *testing.T) {
	r, err := NewRenderer("Test Entity")
	require.NoError(t, err)
	if got := r.formatAmount(-400); got != "(R 400.00)" {
		t.Fatalf("expected accounting parentheses, got %q", got)
	}
	if !strings.HasPrefix(r.formatAmount(12.5), "R 12.50") {
		t.Fatalf("unexpected format %q", r.formatAmount(12.5))
	}
}
