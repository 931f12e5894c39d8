package trialbalance

import (
	"strings"
	"testing"
)

func row(code string, debit, credit string) Row {
	r := Row{AccountCode: code, DebitBalance: dec(debit), CreditBalance: dec(credit)}
	r.NetBalance = r.DebitBalance.Sub(r.CreditBalance)
	return r
}

func TestCheckBalancedBook(t *testing.T) {
	report := Check([]Row{
		row("1000", "1000", "0"),
		row("2000", "0", "400"),
		row("3000", "0", "600"),
	})

	if !report.Valid {
		t.Fatalf("expected valid report, got errors %v", report.Errors)
	}
	if report.TotalAccounts != 3 {
		t.Fatalf("expected 3 accounts, got %d", report.TotalAccounts)
	}
	if len(report.Warnings) != 0 {
		t.Fatalf("expected no warnings, got %v", report.Warnings)
	}
}

func TestCheckWarnings(t *testing.T) {
	report := Check([]Row{
		row("1000", "1000", "0"),
		row("1000", "50", "0"),  // duplicate
		row("", "10", "0"),      // empty code
		row("4000", "20", "30"), // both sides
		row("5000", "-5", "0"),  // negative debit
		row("6000", "0", "-7"),  // negative credit
	})

	if !report.Valid {
		t.Fatalf("warnings must not invalidate the report: %v", report.Errors)
	}
	wantFragments := []string{
		"empty account codes",
		"duplicate account codes",
		"both debit and credit",
		"does not balance",
		"negative debit",
		"negative credit",
	}
	for _, fragment := range wantFragments {
		found := false
		for _, w := range report.Warnings {
			if strings.Contains(w, fragment) {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("missing warning containing %q in %v", fragment, report.Warnings)
		}
	}
}

func TestCheckToleranceBoundary(t *testing.T) {
	// Off by exactly the tolerance: no warning.
	report := Check([]Row{
		row("1000", "100.01", "0"),
		row("2000", "0", "100.00"),
	})
	for _, w := range report.Warnings {
		if strings.Contains(w, "does not balance") {
			t.Fatalf("difference equal to tolerance should not warn: %v", report.Warnings)
		}
	}

	// Off by more than the tolerance: warning fires.
	report = Check([]Row{
		row("1000", "100.02", "0"),
		row("2000", "0", "100.00"),
	})
	found := false
	for _, w := range report.Warnings {
		if strings.Contains(w, "does not balance") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected imbalance warning, got %v", report.Warnings)
	}
}
