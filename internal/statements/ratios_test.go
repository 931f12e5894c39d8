package statements

import (
	"testing"

	"github.com/grapfin/grapfin/internal/trialbalance"
)

func statementsFor(t *testing.T, rows []trialbalance.Row) (FinancialPosition, FinancialPerformance) {
	t.Helper()
	_, items := pipeline(t, rows)
	return BuildFinancialPosition(items), BuildFinancialPerformance(items)
}

func TestComputeRatios(t *testing.T) {
	position, performance := statementsFor(t, []trialbalance.Row{
		tbRow("1000", "Cash", 1500, 0),
		tbRow("1300", "Inventories", 500, 0),
		tbRow("1600", "PPE", 2000, 0),
		tbRow("2000", "Payables", 0, 1000),
		tbRow("3000", "Equity", 0, 3000),
		tbRow("4100", "Fees", 0, 1000),
		tbRow("5000", "Salaries", 800, 0),
	})

	ratios := ComputeRatios(position, performance)
	// current assets 2000, current liabilities 1000.
	if ratios.CurrentRatio != 2.00 {
		t.Fatalf("expected current ratio 2.00, got %v", ratios.CurrentRatio)
	}
	// (2000-500)/1000.
	if ratios.QuickRatio != 1.50 {
		t.Fatalf("expected quick ratio 1.50, got %v", ratios.QuickRatio)
	}
	// liabilities 1000 / net assets 3000.
	if ratios.DebtToEquity != 0.33 {
		t.Fatalf("expected debt to equity 0.33, got %v", ratios.DebtToEquity)
	}
	// (1000-800)/1000*100.
	if ratios.OperatingMargin != 20.00 {
		t.Fatalf("expected operating margin 20.00, got %v", ratios.OperatingMargin)
	}
	// surplus 200 / assets 4000 * 100.
	if ratios.ReturnOnAssets != 5.00 {
		t.Fatalf("expected return on assets 5.00, got %v", ratios.ReturnOnAssets)
	}
}

// Scenario D: zero denominators yield exactly 0, never an error or NaN.
func TestComputeRatiosZeroDenominators(t *testing.T) {
	position, performance := statementsFor(t, []trialbalance.Row{
		tbRow("1000", "Cash", 1000, 0),
	})

	ratios := ComputeRatios(position, performance)
	if ratios.CurrentRatio != 0 {
		t.Fatalf("expected current ratio 0, got %v", ratios.CurrentRatio)
	}
	if ratios.DebtToEquity != 0 || ratios.OperatingMargin != 0 || ratios.ReturnOnEquity != 0 {
		t.Fatalf("expected guarded ratios to be 0, got %+v", ratios)
	}
	// Assets exist, surplus is zero: return on assets is a genuine 0.
	if ratios.ReturnOnAssets != 0 {
		t.Fatalf("expected return on assets 0, got %v", ratios.ReturnOnAssets)
	}
}

func TestRatioAssessments(t *testing.T) {
	position, performance := statementsFor(t, []trialbalance.Row{
		tbRow("1000", "Cash", 3000, 0),
		tbRow("2000", "Payables", 0, 1000),
		tbRow("3000", "Equity", 0, 2000),
		tbRow("4100", "Fees", 0, 1000),
		tbRow("5000", "Salaries", 950, 0),
	})

	ratios := ComputeRatios(position, performance)
	assessments := ratios.Assess()
	if len(assessments) != 4 {
		t.Fatalf("expected 4 assessed ratios, got %d", len(assessments))
	}
	byName := make(map[string]RatioAssessment)
	for _, a := range assessments {
		byName[a.Name] = a
	}
	// current ratio 3.0 >= min 1.5.
	if !byName["current_ratio"].Within {
		t.Fatalf("expected current ratio within benchmark: %+v", byName["current_ratio"])
	}
	// operating margin 5% < min 10%.
	if byName["operating_margin"].Within {
		t.Fatalf("expected operating margin below benchmark: %+v", byName["operating_margin"])
	}
	// debt to equity 0.5 <= max 1.0.
	if !byName["debt_to_equity"].Within {
		t.Fatalf("expected debt to equity within benchmark: %+v", byName["debt_to_equity"])
	}
}
