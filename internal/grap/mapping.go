package grap

// Table is an immutable account-to-GRAP lookup constructed once per engine
// instance. Lookups are exact string matches; unrecognised codes return
// ok=false and the decision is left to the caller.
type Table struct {
	version string
	entries map[string]Entry
}

// NewTable builds a lookup table from mapping entries, deriving each entry's
// category from its GRAP code.
func NewTable(version string, entries []Entry) *Table {
	index := make(map[string]Entry, len(entries))
	for _, e := range entries {
		e.Category = CategoryOf(e.GRAPCode)
		index[e.AccountCode] = e
	}
	return &Table{version: version, entries: index}
}

// Version returns the mapping schema version tag.
func (t *Table) Version() string {
	return t.version
}

// Len returns the number of account codes in the table.
func (t *Table) Len() int {
	return len(t.entries)
}

// Lookup resolves an account code to its GRAP entry.
func (t *Table) Lookup(accountCode string) (Entry, bool) {
	e, ok := t.entries[accountCode]
	return e, ok
}

// DefaultTable returns the compiled-in SADPMR chart-of-accounts mapping.
func DefaultTable() *Table {
	return NewTable(MappingVersion, []Entry{
		// Assets
		{AccountCode: "1000", GRAPCode: "CA-001", GRAPItem: "Cash and Cash Equivalents"},
		{AccountCode: "1100", GRAPCode: "CA-001", GRAPItem: "Cash and Cash Equivalents"},
		{AccountCode: "1200", GRAPCode: "CA-002", GRAPItem: "Receivables from Exchange Transactions"},
		{AccountCode: "1210", GRAPCode: "CA-002", GRAPItem: "Receivables from Exchange Transactions"},
		{AccountCode: "1250", GRAPCode: "CA-002", GRAPItem: "Receivables from Exchange Transactions"},
		{AccountCode: "1300", GRAPCode: "CA-004", GRAPItem: "Inventories"},
		{AccountCode: "1400", GRAPCode: "CA-003", GRAPItem: "Receivables from Non-Exchange Transactions"},
		{AccountCode: "1500", GRAPCode: "CA-005", GRAPItem: "Prepayments"},
		{AccountCode: "1600", GRAPCode: "NCA-001", GRAPItem: "Property, Plant and Equipment"},
		{AccountCode: "1700", GRAPCode: "NCA-002", GRAPItem: "Intangible Assets"},
		{AccountCode: "1800", GRAPCode: "NCA-003", GRAPItem: "Investments"},

		// Liabilities
		{AccountCode: "2000", GRAPCode: "CL-001", GRAPItem: "Payables from Exchange Transactions"},
		{AccountCode: "2100", GRAPCode: "CL-002", GRAPItem: "Employee Benefit Obligations (Current)"},
		{AccountCode: "2200", GRAPCode: "CL-003", GRAPItem: "Provisions (Current)"},
		{AccountCode: "2300", GRAPCode: "NCL-001", GRAPItem: "Employee Benefit Obligations (Non-Current)"},
		{AccountCode: "2400", GRAPCode: "NCL-002", GRAPItem: "Provisions (Non-Current)"},

		// Net assets
		{AccountCode: "3000", GRAPCode: "NA-001", GRAPItem: "Accumulated Surplus/(Deficit)"},

		// Revenue
		{AccountCode: "4000", GRAPCode: "REV-002", GRAPItem: "Revenue from Non-Exchange Transactions"},
		{AccountCode: "4100", GRAPCode: "REV-001", GRAPItem: "Revenue from Exchange Transactions"},
		{AccountCode: "4200", GRAPCode: "REV-001", GRAPItem: "Revenue from Exchange Transactions"},

		// Expenses
		{AccountCode: "5000", GRAPCode: "EXP-001", GRAPItem: "Employee Costs"},
		{AccountCode: "5100", GRAPCode: "EXP-001", GRAPItem: "Employee Costs"},
		{AccountCode: "5200", GRAPCode: "EXP-001", GRAPItem: "Employee Costs"},
		{AccountCode: "6000", GRAPCode: "EXP-003", GRAPItem: "General Expenses"},
		{AccountCode: "6100", GRAPCode: "EXP-002", GRAPItem: "Depreciation and Amortisation"},
		{AccountCode: "6200", GRAPCode: "EXP-004", GRAPItem: "Finance Costs"},
		{AccountCode: "6300", GRAPCode: "EXP-003", GRAPItem: "General Expenses"},
	})
}
