package statements

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/grapfin/grapfin/internal/grap"
	"github.com/grapfin/grapfin/internal/trialbalance"
)

// Classify joins each trial balance row against the mapping table. Rows
// without a mapping entry are kept with Mapped=false; they are never
// dropped or guessed.
func Classify(rows []trialbalance.Row, table *grap.Table) []MappedAccount {
	mapped := make([]MappedAccount, 0, len(rows))
	for _, row := range rows {
		acc := MappedAccount{Row: row}
		if entry, ok := table.Lookup(row.AccountCode); ok {
			acc.Mapped = true
			acc.GRAPCode = entry.GRAPCode
			acc.GRAPItem = entry.GRAPItem
			acc.Category = entry.Category
		}
		mapped = append(mapped, acc)
	}
	return mapped
}

// DetectUnmapped returns the remediation list for accounts that did not
// resolve to a GRAP entry.
func DetectUnmapped(accounts []MappedAccount) []UnmappedAccount {
	var unmapped []UnmappedAccount
	for _, acc := range accounts {
		if acc.Mapped {
			continue
		}
		unmapped = append(unmapped, UnmappedAccount{
			AccountCode:        acc.AccountCode,
			AccountDescription: acc.AccountDescription,
			NetBalance:         acc.NetBalance.InexactFloat64(),
		})
	}
	return unmapped
}

// Aggregate sums net balances by GRAP code. Unmapped accounts are excluded;
// callers gate on DetectUnmapped before aggregating. Output is ordered by
// GRAP code ascending for reproducible rendering.
func Aggregate(accounts []MappedAccount) []LineItem {
	totals := make(map[string]*LineItem)
	for _, acc := range accounts {
		if !acc.Mapped {
			continue
		}
		item, ok := totals[acc.GRAPCode]
		if !ok {
			item = &LineItem{
				GRAPCode: acc.GRAPCode,
				GRAPItem: acc.GRAPItem,
				Category: acc.Category,
				Amount:   decimal.Zero,
			}
			totals[acc.GRAPCode] = item
		}
		item.Amount = item.Amount.Add(acc.NetBalance)
	}

	items := make([]LineItem, 0, len(totals))
	for _, item := range totals {
		items = append(items, *item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].GRAPCode < items[j].GRAPCode })
	return items
}
