package statements

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/grapfin/grapfin/internal/grap"
)

// Depreciation add-back and capital expenditure anchors for the indirect
// cash flow method.
const (
	depreciationCode = "EXP-002"
	ppeCode          = "NCA-001"
)

// BuildFinancialPosition partitions line items into the SOFP groups.
// Liabilities and net assets are presented in absolute value; assets keep
// their natural debit-positive sign.
func BuildFinancialPosition(items []LineItem) FinancialPosition {
	position := FinancialPosition{
		Assets:      Group{Label: "Assets", Total: decimal.Zero},
		Liabilities: Group{Label: "Liabilities", Total: decimal.Zero},
		NetAssets:   Group{Label: "Net Assets", Total: decimal.Zero},
	}
	for _, item := range items {
		switch {
		case item.Category.IsAsset():
			appendItem(&position.Assets, item)
		case item.Category.IsLiability():
			item.Amount = item.Amount.Abs()
			appendItem(&position.Liabilities, item)
		case item.Category == grap.CategoryNetAsset:
			item.Amount = item.Amount.Abs()
			appendItem(&position.NetAssets, item)
		}
	}
	return position
}

// BuildFinancialPerformance partitions line items into the SOFE groups.
// Revenue is presented in absolute value (natural credit-negative balances);
// expenses keep their natural sign.
func BuildFinancialPerformance(items []LineItem) FinancialPerformance {
	performance := FinancialPerformance{
		Revenue:  Group{Label: "Revenue", Total: decimal.Zero},
		Expenses: Group{Label: "Expenses", Total: decimal.Zero},
	}
	for _, item := range items {
		switch item.Category {
		case grap.CategoryRevenue:
			item.Amount = item.Amount.Abs()
			appendItem(&performance.Revenue, item)
		case grap.CategoryExpense:
			appendItem(&performance.Expenses, item)
		}
	}
	performance.Surplus = performance.Revenue.Total.Sub(performance.Expenses.Total)
	return performance
}

// BuildCashFlow derives the SCF via the indirect method: surplus adjusted for
// depreciation and working-capital movement, capital spend on PPE, and
// non-current liability movements.
//
// The investing rule only recognises a negative PPE net movement as an
// outflow; a positive movement (an apparent disposal) contributes zero
// rather than an inflow. Kept as inherited behaviour.
func BuildCashFlow(performance FinancialPerformance, accounts []MappedAccount) CashFlow {
	flow := CashFlow{
		Operating: Group{Label: "Operating Activities", Total: decimal.Zero},
		Investing: Group{Label: "Investing Activities", Total: decimal.Zero},
		Financing: Group{Label: "Financing Activities", Total: decimal.Zero},
	}

	depreciation := decimal.Zero
	for _, item := range performance.Expenses.Items {
		if item.GRAPCode == depreciationCode {
			depreciation = item.Amount
			break
		}
	}

	receivables := decimal.Zero
	payables := decimal.Zero
	capex := decimal.Zero
	financing := decimal.Zero
	for _, acc := range accounts {
		if !acc.Mapped {
			continue
		}
		switch {
		case strings.HasPrefix(acc.GRAPCode, "CA-00"):
			receivables = receivables.Add(acc.NetBalance)
		case strings.HasPrefix(acc.GRAPCode, "CL-00"):
			payables = payables.Add(acc.NetBalance)
		}
		if acc.GRAPCode == ppeCode {
			capex = capex.Add(acc.NetBalance)
		}
		if acc.Category == grap.CategoryNonCurrentLiability {
			financing = financing.Add(acc.NetBalance)
		}
	}

	workingCapital := receivables.Sub(payables).Neg()

	appendItem(&flow.Operating, LineItem{GRAPCode: "SCF-001", GRAPItem: "Surplus/(Deficit) for the Year", Amount: performance.Surplus})
	appendItem(&flow.Operating, LineItem{GRAPCode: "SCF-002", GRAPItem: "Depreciation and Amortisation", Amount: depreciation})
	appendItem(&flow.Operating, LineItem{GRAPCode: "SCF-003", GRAPItem: "Working Capital Movements", Amount: workingCapital})

	if capex.IsNegative() {
		appendItem(&flow.Investing, LineItem{GRAPCode: "SCF-010", GRAPItem: "Acquisition of Property, Plant and Equipment", Amount: capex})
	}

	if !financing.IsZero() {
		appendItem(&flow.Financing, LineItem{GRAPCode: "SCF-020", GRAPItem: "Movement in Non-Current Liabilities", Amount: financing})
	}

	flow.NetMovement = flow.Operating.Total.Add(flow.Investing.Total).Add(flow.Financing.Total)
	return flow
}

func appendItem(group *Group, item LineItem) {
	group.Items = append(group.Items, item)
	group.Total = group.Total.Add(item.Amount)
}
