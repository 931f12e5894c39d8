package statements

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/grapfin/grapfin/internal/grap"
)

// RatioSet holds the derived financial indicators, each rounded to two
// decimals. Percentages are expressed as 0-100 values.
type RatioSet struct {
	CurrentRatio    float64 `json:"current_ratio"`
	QuickRatio      float64 `json:"quick_ratio"`
	DebtToEquity    float64 `json:"debt_to_equity"`
	DebtToAssets    float64 `json:"debt_to_assets"`
	OperatingMargin float64 `json:"operating_margin"`
	ReturnOnAssets  float64 `json:"return_on_assets"`
	ReturnOnEquity  float64 `json:"return_on_equity"`
	AssetTurnover   float64 `json:"asset_turnover"`
}

// Benchmark is the static comparison band for one ratio. Min/Max are bounds
// when non-nil; Target is the aspirational value. Benchmarks are
// informational only and never gate processing.
type Benchmark struct {
	Min    *float64 `json:"min,omitempty"`
	Max    *float64 `json:"max,omitempty"`
	Target float64  `json:"target"`
}

// RatioAssessment pairs a computed ratio with its benchmark comparison.
type RatioAssessment struct {
	Name      string    `json:"name"`
	Value     float64   `json:"value"`
	Benchmark Benchmark `json:"benchmark"`
	Within    bool      `json:"within_benchmark"`
}

func ptr(v float64) *float64 { return &v }

// Benchmarks returns the static ratio benchmark bands.
func Benchmarks() map[string]Benchmark {
	return map[string]Benchmark{
		"current_ratio":    {Min: ptr(1.5), Target: 2.0},
		"debt_to_equity":   {Max: ptr(1.0), Target: 0.5},
		"operating_margin": {Min: ptr(10.0), Target: 15.0},
		"return_on_assets": {Min: ptr(5.0), Target: 8.0},
	}
}

// inventoriesCode identifies the stock line excluded from the quick ratio.
const inventoriesCode = "CA-004"

// ComputeRatios derives the ratio set from statement totals. Every division
// is guarded: a zero or negative denominator yields 0, never an error or a
// non-finite value.
func ComputeRatios(position FinancialPosition, performance FinancialPerformance) RatioSet {
	totalAssets := position.Assets.Total
	totalLiabilities := position.Liabilities.Total
	netAssets := position.NetAssets.Total
	totalRevenue := performance.Revenue.Total
	totalExpenses := performance.Expenses.Total
	surplus := performance.Surplus

	currentAssets := decimal.Zero
	inventories := decimal.Zero
	for _, item := range position.Assets.Items {
		if item.Category == grap.CategoryCurrentAsset {
			currentAssets = currentAssets.Add(item.Amount)
		}
		if item.GRAPCode == inventoriesCode {
			inventories = inventories.Add(item.Amount)
		}
	}
	currentLiabilities := decimal.Zero
	for _, item := range position.Liabilities.Items {
		if item.Category == grap.CategoryCurrentLiability {
			currentLiabilities = currentLiabilities.Add(item.Amount)
		}
	}

	return RatioSet{
		CurrentRatio:    safeRatio(currentAssets, currentLiabilities),
		QuickRatio:      safeRatio(currentAssets.Sub(inventories), currentLiabilities),
		DebtToEquity:    safeRatio(totalLiabilities, netAssets),
		DebtToAssets:    safeRatio(totalLiabilities, totalAssets),
		OperatingMargin: safePercent(totalRevenue.Sub(totalExpenses), totalRevenue),
		ReturnOnAssets:  safePercent(surplus, totalAssets),
		ReturnOnEquity:  safePercent(surplus, netAssets),
		AssetTurnover:   safeRatio(totalRevenue, totalAssets),
	}
}

// Assess compares the core ratios against their benchmarks.
func (r RatioSet) Assess() []RatioAssessment {
	benchmarks := Benchmarks()
	values := []struct {
		name  string
		value float64
	}{
		{"current_ratio", r.CurrentRatio},
		{"debt_to_equity", r.DebtToEquity},
		{"operating_margin", r.OperatingMargin},
		{"return_on_assets", r.ReturnOnAssets},
	}
	assessments := make([]RatioAssessment, 0, len(values))
	for _, v := range values {
		b := benchmarks[v.name]
		assessments = append(assessments, RatioAssessment{
			Name:      v.name,
			Value:     v.value,
			Benchmark: b,
			Within:    withinBenchmark(v.value, b),
		})
	}
	return assessments
}

func withinBenchmark(value float64, b Benchmark) bool {
	if b.Min != nil && value < *b.Min {
		return false
	}
	if b.Max != nil && value > *b.Max {
		return false
	}
	return true
}

func safeRatio(numerator, denominator decimal.Decimal) float64 {
	if denominator.LessThanOrEqual(decimal.Zero) {
		return 0
	}
	return round2(numerator.InexactFloat64() / denominator.InexactFloat64())
}

func safePercent(numerator, denominator decimal.Decimal) float64 {
	if denominator.LessThanOrEqual(decimal.Zero) {
		return 0
	}
	return round2(numerator.InexactFloat64() / denominator.InexactFloat64() * 100)
}

func round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return math.Round(v*100) / 100
}
