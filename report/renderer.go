// Package report renders processed statement runs into printable documents.
package report

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/grapfin/grapfin/internal/statements"
)

// RenderError reports a failure while producing the report document.
type RenderError struct {
	ReportType string
	Err        error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("report %s: %v", e.ReportType, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// Renderer builds the annual financial statements document from a run
// result.
type Renderer struct {
	entity  string
	tmpl    *template.Template
	printer *message.Printer
}

// NewRenderer constructs a renderer for the given reporting entity name.
func NewRenderer(entity string) (*Renderer, error) {
	r := &Renderer{
		entity:  entity,
		printer: message.NewPrinter(language.English),
	}
	tmpl, err := template.New("statements").Funcs(template.FuncMap{
		"amount": r.formatAmount,
		"deref":  func(p *float64) float64 { return *p },
	}).Parse(statementsTemplate)
	if err != nil {
		return nil, &RenderError{ReportType: "statements", Err: err}
	}
	r.tmpl = tmpl
	return r, nil
}

// HTML renders the full statement pack for one run.
func (r *Renderer) HTML(run statements.Run) (string, error) {
	data := struct {
		Entity      string
		Run         statements.Run
		Result      statements.Result
		YearEnd     string
		GeneratedAt string
	}{
		Entity:      r.entity,
		Run:         run,
		Result:      run.Result,
		YearEnd:     fmt.Sprintf("31 March %d", fiscalYear(run.CreatedAt)),
		GeneratedAt: run.CreatedAt.Format("2 January 2006 15:04"),
	}
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, data); err != nil {
		return "", &RenderError{ReportType: "statements", Err: err}
	}
	return buf.String(), nil
}

// formatAmount prints a currency value as "R 1,234.56" with accounting
// parentheses for negatives.
func (r *Renderer) formatAmount(v float64) string {
	if v < 0 {
		return r.printer.Sprintf("(R %.2f)", -v)
	}
	return r.printer.Sprintf("R %.2f", v)
}

// fiscalYear maps a generation time onto its 31 March year end.
func fiscalYear(t time.Time) int {
	if t.Month() > time.March {
		return t.Year() + 1
	}
	return t.Year()
}

const statementsTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
body { font-family: Helvetica, Arial, sans-serif; margin: 2.5cm; color: #212121; }
h1 { font-size: 16px; text-align: center; color: #1a237e; }
h2 { font-size: 12px; color: #283593; margin-top: 28px; }
p.sub { font-size: 10px; margin-top: 0; }
table { width: 100%; border-collapse: collapse; font-size: 10px; margin-top: 8px; }
th, td { border: 0.5px solid #9e9e9e; padding: 5px 8px; text-align: left; }
th { background: #e3f2fd; color: #1a237e; }
td.amt, th.amt { text-align: right; }
tr.total td { font-weight: bold; background: #f5f5f5; }
</style>
</head>
<body>
<h1>{{ .Entity }}</h1>
<h1>ANNUAL FINANCIAL STATEMENTS</h1>
<p class="sub">For the year ended {{ .YearEnd }} &mdash; generated {{ .GeneratedAt }} (mapping v{{ .Result.Summary.MappingVersion }})</p>

<h2>STATEMENT OF FINANCIAL POSITION</h2>
{{ template "group" .Result.SOFP.Assets }}
{{ template "group" .Result.SOFP.Liabilities }}
{{ template "group" .Result.SOFP.NetAssets }}

<h2>STATEMENT OF FINANCIAL PERFORMANCE</h2>
{{ template "group" .Result.SOFE.Revenue }}
{{ template "group" .Result.SOFE.Expenses }}
<table>
<tr class="total"><td>SURPLUS/(DEFICIT) FOR THE YEAR</td><td class="amt">{{ amount .Result.SOFE.Surplus }}</td></tr>
</table>

<h2>CASH FLOW STATEMENT &mdash; INDIRECT METHOD</h2>
{{ template "group" .Result.SCF.Operating }}
{{ template "group" .Result.SCF.Investing }}
{{ template "group" .Result.SCF.Financing }}
<table>
<tr class="total"><td>NET MOVEMENT IN CASH</td><td class="amt">{{ amount .Result.SCF.NetMovement }}</td></tr>
</table>

<h2>KEY FINANCIAL RATIOS</h2>
<table>
<tr><th>Ratio</th><th class="amt">Value</th><th>Benchmark</th><th>Status</th></tr>
{{ range .Result.Summary.RatioAssessments }}
<tr>
<td>{{ .Name }}</td>
<td class="amt">{{ printf "%.2f" .Value }}</td>
<td>{{ if .Benchmark.Min }}&ge; {{ printf "%.1f" (deref .Benchmark.Min) }}{{ end }}{{ if .Benchmark.Max }}&le; {{ printf "%.1f" (deref .Benchmark.Max) }}{{ end }} (target {{ printf "%.1f" .Benchmark.Target }})</td>
<td>{{ if .Within }}within{{ else }}outside{{ end }}</td>
</tr>
{{ end }}
</table>
</body>
</html>

{{ define "group" }}
<table>
<tr><th>{{ .Label }}</th><th class="amt">Amount</th></tr>
{{ range .Items }}
<tr><td>{{ .GRAPItem }} ({{ .GRAPCode }})</td><td class="amt">{{ amount .Amount }}</td></tr>
{{ end }}
<tr class="total"><td>TOTAL {{ .Label }}</td><td class="amt">{{ amount .Total }}</td></tr>
</table>
{{ end }}`
