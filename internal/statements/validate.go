package statements

import (
	"fmt"

	"github.com/grapfin/grapfin/internal/grap"
)

// MappingSummary counts classification coverage over a trial balance.
type MappingSummary struct {
	Total    int `json:"total_accounts"`
	Mapped   int `json:"mapped_accounts"`
	Unmapped int `json:"unmapped_accounts"`
}

// ValidateMapping verifies classification coverage. Any unmapped account is a
// blocking condition: statement totals would be silently wrong if generation
// proceeded without the missing amounts.
func ValidateMapping(accounts []MappedAccount) (MappingSummary, error) {
	summary := MappingSummary{Total: len(accounts)}
	for _, acc := range accounts {
		if acc.Mapped {
			summary.Mapped++
		}
	}
	summary.Unmapped = summary.Total - summary.Mapped
	if summary.Unmapped > 0 {
		return summary, &MappingError{Unmapped: DetectUnmapped(accounts)}
	}
	return summary, nil
}

// ValidateStatements checks structural completeness and taxonomy conformance
// of the generated statements.
func ValidateStatements(position FinancialPosition, performance FinancialPerformance) error {
	sections := []struct {
		name  string
		group Group
		allow func(grap.Category) bool
	}{
		{"assets", position.Assets, grap.Category.IsAsset},
		{"liabilities", position.Liabilities, grap.Category.IsLiability},
		{"net_assets", position.NetAssets, func(c grap.Category) bool { return c == grap.CategoryNetAsset }},
		{"revenue", performance.Revenue, func(c grap.Category) bool { return c == grap.CategoryRevenue }},
		{"expenses", performance.Expenses, func(c grap.Category) bool { return c == grap.CategoryExpense }},
	}
	for _, section := range sections {
		if section.group.Label == "" {
			return &ValidationError{Section: section.name, Message: "missing statement section"}
		}
		for _, item := range section.group.Items {
			if category := grap.CategoryOf(item.GRAPCode); !section.allow(category) {
				return &ValidationError{
					Section: section.name,
					Message: fmt.Sprintf("grap code %s does not belong in this section", item.GRAPCode),
				}
			}
		}
	}
	return nil
}
