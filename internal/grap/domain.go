// Package grap holds the GRAP classification reference data used to map
// ledger accounts onto statement line items.
package grap

import "strings"

// MappingVersion tags the compiled-in mapping schema for future evolution.
const MappingVersion = "2.0"

// Category is the statement classification derived from a GRAP code prefix.
// It is resolved once at table load time so downstream aggregation never
// re-parses code strings.
type Category string

const (
	CategoryCurrentAsset       Category = "CURRENT_ASSET"
	CategoryNonCurrentAsset    Category = "NON_CURRENT_ASSET"
	CategoryCurrentLiability   Category = "CURRENT_LIABILITY"
	CategoryNonCurrentLiability Category = "NON_CURRENT_LIABILITY"
	CategoryNetAsset           Category = "NET_ASSET"
	CategoryRevenue            Category = "REVENUE"
	CategoryExpense            Category = "EXPENSE"
	CategoryUnknown            Category = "UNKNOWN"
)

// CategoryOf resolves the statement category for a GRAP code.
// Prefix order matters: NCA/NCL must be tested before CA/CL and NA.
func CategoryOf(grapCode string) Category {
	switch {
	case strings.HasPrefix(grapCode, "NCA-"):
		return CategoryNonCurrentAsset
	case strings.HasPrefix(grapCode, "NCL-"):
		return CategoryNonCurrentLiability
	case strings.HasPrefix(grapCode, "CA-"):
		return CategoryCurrentAsset
	case strings.HasPrefix(grapCode, "CL-"):
		return CategoryCurrentLiability
	case strings.HasPrefix(grapCode, "NA-"):
		return CategoryNetAsset
	case strings.HasPrefix(grapCode, "REV-"):
		return CategoryRevenue
	case strings.HasPrefix(grapCode, "EXP-"):
		return CategoryExpense
	default:
		return CategoryUnknown
	}
}

// IsAsset reports whether the category belongs to the SOFP assets group.
func (c Category) IsAsset() bool {
	return c == CategoryCurrentAsset || c == CategoryNonCurrentAsset
}

// IsLiability reports whether the category belongs to the SOFP liabilities group.
func (c Category) IsLiability() bool {
	return c == CategoryCurrentLiability || c == CategoryNonCurrentLiability
}

// Entry maps one raw account code to a GRAP line item.
type Entry struct {
	AccountCode string
	GRAPCode    string
	GRAPItem    string
	Category    Category
}
