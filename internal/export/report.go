package export

import (
	"fmt"
	"html/template"
	"io"
	"math"
	"strings"
	"time"

	"github.com/theirongolddev/tarifa/internal/model"
	"github.com/theirongolddev/tarifa/internal/money"
	"github.com/theirongolddev/tarifa/internal/pipeline"
	"github.com/theirongolddev/tarifa/internal/pricing"
)

// ReportFilename is the suggested name for the HTML report.
const ReportFilename = "tarifa_report.html"

// DefaultAccent is the report's brand colour.
const DefaultAccent = "#F64D08"

// ReportData is the input to WriteReport.
type ReportData struct {
	Brand    string
	Handle   string
	Accent   string
	Date     time.Time
	Currency string
	Rates    pricing.Rates
	Rollup   model.LogRollup
	Log      []model.LoggedProject
}

type kpi struct {
	Title string
	Value string
}

type reportRow struct {
	N          int
	Date       string
	Name       string
	Price      string
	Hours      string
	RealHourly string
}

type reportView struct {
	Brand    string
	Handle   string
	Initials string
	Accent   template.CSS
	Date     string
	Year     int
	Currency string
	KPIs     [2][]kpi
	Rows     []reportRow
	Insights []string
}

// WriteReport renders a self-contained, print-ready HTML report.
func WriteReport(w io.Writer, d ReportData) error {
	if err := reportTmpl.Execute(w, buildView(d)); err != nil {
		return fmt.Errorf("rendering report: %w", err)
	}
	return nil
}

func buildView(d ReportData) reportView {
	m := func(n float64) string { return money.Format(d.Currency, n) }
	r := d.Rollup

	v := reportView{
		Brand:    d.Brand,
		Handle:   d.Handle,
		Initials: Initials(d.Brand),
		Accent:   template.CSS(DefaultAccent),
		Date:     d.Date.Format(model.DateLayout),
		Year:     d.Date.Year(),
		Currency: d.Currency,
	}
	if isHexColor(d.Accent) {
		v.Accent = template.CSS(d.Accent)
	}

	v.KPIs[0] = []kpi{
		{"Min hourly rate (current)", m(d.Rates.MinHourlyRate)},
		{"Projects", fmt.Sprintf("%d", r.Projects)},
		{"Total hours", fmt.Sprintf("%.2f h", r.Hours)},
		{"Revenue", m(r.Revenue)},
	}
	v.KPIs[1] = []kpi{
		{"Avg real hourly", m(r.AvgRealHourly)},
		{"Deviation vs minimum", m(r.AvgDeviation)},
		{"% above minimum", fmt.Sprintf("%.0f%%", r.PctAbove)},
		{"% below minimum", fmt.Sprintf("%.0f%%", r.PctBelow)},
	}

	for i, p := range d.Log {
		row := reportRow{
			N:          i + 1,
			Date:       p.Date,
			Name:       p.Name,
			Price:      m(p.Price),
			Hours:      fmt.Sprintf("%.2f", p.Hours),
			RealHourly: "-",
		}
		if p.Hours > 0 {
			row.RealHourly = m(pipeline.RealHourly(p))
		}
		v.Rows = append(v.Rows, row)
	}

	v.Insights = Insights(d.Currency, d.Rates.MinHourlyRate, r)
	return v
}

// Insights returns the three coaching lines shown under the report table.
func Insights(currency string, minHourly float64, r model.LogRollup) []string {
	m := func(n float64) string { return money.Format(currency, n) }

	var first string
	switch {
	case r.Projects == 0:
		first = "Log projects to see insights."
	case r.PctBelow > 0:
		first = fmt.Sprintf("%.0f%% of your projects are below your minimum: review scope or pricing.", r.PctBelow)
	default:
		first = "Every project is at or above your minimum. Excellent."
	}

	var second string
	if r.AvgDeviation >= 0 {
		second = fmt.Sprintf("Your average real hourly is %s above your minimum.", m(r.AvgDeviation))
	} else {
		second = fmt.Sprintf("Your average real hourly is %s below your minimum.", m(math.Abs(r.AvgDeviation)))
	}

	return []string{
		first,
		second,
		fmt.Sprintf("Current minimum hourly rate used as reference: %s.", m(minHourly)),
	}
}

// Initials returns up to two lower-case initials of name, "nd" style.
func Initials(name string) string {
	var out []rune
	for _, word := range strings.Fields(name) {
		out = append(out, []rune(strings.ToLower(word))[0])
		if len(out) == 2 {
			break
		}
	}
	return string(out)
}

func isHexColor(s string) bool {
	if len(s) != 4 && len(s) != 7 || s[0] != '#' {
		return false
	}
	for _, c := range s[1:] {
		if !strings.ContainsRune("0123456789abcdefABCDEF", c) {
			return false
		}
	}
	return true
}

var reportTmpl = template.Must(template.New("report").Parse(`<!doctype html>
<html><head><meta charset="utf-8"/>
<title>Designer report – {{.Brand}}</title>
<style>
  :root{ --brand:{{.Accent}}; --ink:#111; }
  *{ box-sizing:border-box; }
  body{ font-family:ui-sans-serif,system-ui,Segoe UI,Roboto,Helvetica,Arial; color:var(--ink); margin:28px; }
  .hdr{ display:flex; justify-content:space-between; align-items:center; margin-bottom:12px; }
  .logo{ background:var(--brand); color:#000; font-weight:900; width:40px; height:40px; display:flex; align-items:center; justify-content:center; border-radius:10px; }
  h1{ margin:0; font-size:22px; }
  .muted{ color:#666; font-size:12px; }
  .grid4{ display:grid; grid-template-columns:repeat(4,1fr); gap:10px; margin:10px 0; }
  .kpi{ border:1px solid #eee; border-radius:10px; padding:10px; }
  .kpi .t{ color:#666; font-size:12px; }
  .kpi .v{ font-size:18px; font-weight:800; }
  table{ width:100%; border-collapse:collapse; margin-top:10px; }
  th, td{ border:1px solid #e9e9e9; padding:8px; font-size:12px; }
  th{ background:#fafafa; text-align:left; }
  .num{ text-align:right; }
  .insights{ border:1px solid #eee; border-radius:10px; padding:12px; margin-top:12px; }
  .footer{ margin-top:18px; font-size:12px; color:#666; }
</style></head><body>
  <div class="hdr">
    <div style="display:flex; gap:10px; align-items:center;">
      <div class="logo">{{.Initials}}</div>
      <div>
        <h1>Designer report</h1>
        <div class="muted">Generated with the {{.Brand}} freelance calculator{{with .Handle}} ({{.}}){{end}}</div>
      </div>
    </div>
    <div style="text-align:right; font-size:12px; color:#444">
      <div><b>Date:</b> {{.Date}}</div>
      <div><b>Currency:</b> {{.Currency}}</div>
    </div>
  </div>
{{range .KPIs}}
  <div class="grid4">{{range .}}
    <div class="kpi"><div class="t">{{.Title}}</div><div class="v">{{.Value}}</div></div>{{end}}
  </div>{{end}}

  <table>
    <thead><tr><th>#</th><th>Date</th><th>Project</th><th class="num">Price</th><th class="num">Hours</th><th class="num">Real hourly</th></tr></thead>
    <tbody>{{range .Rows}}
      <tr><td>{{.N}}</td><td>{{.Date}}</td><td>{{.Name}}</td><td class="num">{{.Price}}</td><td class="num">{{.Hours}}</td><td class="num">{{.RealHourly}}</td></tr>{{else}}
      <tr><td colspan="6" class="muted">No projects logged</td></tr>{{end}}
    </tbody>
  </table>

  <div class="insights">
    <div style="font-weight:700; margin-bottom:6px">This month's insights</div>
    <ul style="margin:0; padding-left:16px">{{range .Insights}}
      <li>{{.}}</li>{{end}}
    </ul>
  </div>

  <div class="footer">© {{.Year}} {{.Brand}}. Internal designer report. Do not share with clients.</div>
  <script>window.print();</script>
</body></html>
`))
