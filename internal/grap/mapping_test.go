package grap

import "testing"

func TestCategoryOf(t *testing.T) {
	cases := []struct {
		code string
		want Category
	}{
		{"CA-001", CategoryCurrentAsset},
		{"NCA-001", CategoryNonCurrentAsset},
		{"CL-003", CategoryCurrentLiability},
		{"NCL-002", CategoryNonCurrentLiability},
		{"NA-001", CategoryNetAsset},
		{"REV-001", CategoryRevenue},
		{"EXP-004", CategoryExpense},
		{"XX-999", CategoryUnknown},
		{"", CategoryUnknown},
	}
	for _, tc := range cases {
		if got := CategoryOf(tc.code); got != tc.want {
			t.Fatalf("CategoryOf(%q) = %v, want %v", tc.code, got, tc.want)
		}
	}
}

func TestDefaultTableLookup(t *testing.T) {
	table := DefaultTable()
	if table.Version() != MappingVersion {
		t.Fatalf("unexpected version %q", table.Version())
	}

	entry, ok := table.Lookup("1000")
	if !ok {
		t.Fatal("expected mapping for account 1000")
	}
	if entry.GRAPCode != "CA-001" || entry.GRAPItem != "Cash and Cash Equivalents" {
		t.Fatalf("unexpected entry %+v", entry)
	}
	if entry.Category != CategoryCurrentAsset {
		t.Fatalf("expected derived category, got %v", entry.Category)
	}

	if _, ok := table.Lookup("9999"); ok {
		t.Fatal("expected no mapping for account 9999")
	}
	// Exact match only: no trimming of leading zeros.
	if _, ok := table.Lookup("01000"); ok {
		t.Fatal("expected exact-match lookup to miss 01000")
	}
}

func TestCategoryGroups(t *testing.T) {
	if !CategoryCurrentAsset.IsAsset() || !CategoryNonCurrentAsset.IsAsset() {
		t.Fatal("asset categories should report IsAsset")
	}
	if !CategoryCurrentLiability.IsLiability() || !CategoryNonCurrentLiability.IsLiability() {
		t.Fatal("liability categories should report IsLiability")
	}
	if CategoryNetAsset.IsAsset() || CategoryNetAsset.IsLiability() {
		t.Fatal("net assets belong to neither assets nor liabilities")
	}
}
