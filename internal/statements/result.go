package statements

import "time"

// LineItemView is the serialized form of a line item: plain values only, so
// the result can round-trip through JSON storage between the process and
// report-generation requests.
type LineItemView struct {
	GRAPCode string  `json:"grap_code"`
	GRAPItem string  `json:"grap_item"`
	Amount   float64 `json:"amount"`
}

// GroupView is the serialized form of a statement group.
type GroupView struct {
	Label string         `json:"label"`
	Items []LineItemView `json:"items"`
	Total float64        `json:"total"`
}

// Summary carries the headline totals, ratios, and processing metadata.
type Summary struct {
	TotalAssets      float64           `json:"total_assets"`
	TotalLiabilities float64           `json:"total_liabilities"`
	NetAssets        float64           `json:"net_assets"`
	TotalRevenue     float64           `json:"total_revenue"`
	TotalExpenses    float64           `json:"total_expenses"`
	SurplusDeficit   float64           `json:"surplus_deficit"`
	Ratios           RatioSet          `json:"ratios"`
	RatioAssessments []RatioAssessment `json:"ratio_assessments"`
	MappingVersion   string            `json:"mapping_version"`
	TotalAccounts    int               `json:"total_accounts"`
	Warnings         []string          `json:"warnings"`
	Timestamp        string            `json:"timestamp"`
}

// SOFPView is the serialized Statement of Financial Position.
type SOFPView struct {
	Assets      GroupView `json:"assets"`
	Liabilities GroupView `json:"liabilities"`
	NetAssets   GroupView `json:"net_assets"`
}

// SOFEView is the serialized Statement of Financial Performance.
type SOFEView struct {
	Revenue  GroupView `json:"revenue"`
	Expenses GroupView `json:"expenses"`
	Surplus  float64   `json:"surplus"`
}

// SCFView is the serialized Cash Flow Statement.
type SCFView struct {
	Operating   GroupView `json:"operating"`
	Investing   GroupView `json:"investing"`
	Financing   GroupView `json:"financing"`
	NetMovement float64   `json:"net_movement"`
}

// Result is the full structured output of one processing run.
type Result struct {
	Summary Summary  `json:"summary"`
	SOFP    SOFPView `json:"sofp"`
	SOFE    SOFEView `json:"sofe"`
	SCF     SCFView  `json:"scf"`
}

// NewResult serializes the derived statements into the plain result form.
func NewResult(position FinancialPosition, performance FinancialPerformance, flow CashFlow, ratios RatioSet, mappingVersion string, totalAccounts int, warnings []string, now time.Time) Result {
	if warnings == nil {
		warnings = []string{}
	}
	return Result{
		Summary: Summary{
			TotalAssets:      position.Assets.Total.InexactFloat64(),
			TotalLiabilities: position.Liabilities.Total.InexactFloat64(),
			NetAssets:        position.NetAssets.Total.InexactFloat64(),
			TotalRevenue:     performance.Revenue.Total.InexactFloat64(),
			TotalExpenses:    performance.Expenses.Total.InexactFloat64(),
			SurplusDeficit:   performance.Surplus.InexactFloat64(),
			Ratios:           ratios,
			RatioAssessments: ratios.Assess(),
			MappingVersion:   mappingVersion,
			TotalAccounts:    totalAccounts,
			Warnings:         warnings,
			Timestamp:        now.UTC().Format(time.RFC3339),
		},
		SOFP: SOFPView{
			Assets:      groupView(position.Assets),
			Liabilities: groupView(position.Liabilities),
			NetAssets:   groupView(position.NetAssets),
		},
		SOFE: SOFEView{
			Revenue:  groupView(performance.Revenue),
			Expenses: groupView(performance.Expenses),
			Surplus:  performance.Surplus.InexactFloat64(),
		},
		SCF: SCFView{
			Operating:   groupView(flow.Operating),
			Investing:   groupView(flow.Investing),
			Financing:   groupView(flow.Financing),
			NetMovement: flow.NetMovement.InexactFloat64(),
		},
	}
}

func groupView(group Group) GroupView {
	view := GroupView{Label: group.Label, Items: []LineItemView{}, Total: group.Total.InexactFloat64()}
	for _, item := range group.Items {
		view.Items = append(view.Items, LineItemView{
			GRAPCode: item.GRAPCode,
			GRAPItem: item.GRAPItem,
			Amount:   item.Amount.InexactFloat64(),
		})
	}
	return view
}
