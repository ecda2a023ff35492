// Package export renders the calculator state as CSV and as a printable
// HTML report.
package export

import (
	"io"
	"strconv"
	"strings"

	"github.com/theirongolddev/tarifa/internal/model"
	"github.com/theirongolddev/tarifa/internal/pipeline"
	"github.com/theirongolddev/tarifa/internal/pricing"
)

// CSVFilename is the suggested name for the CSV export.
const CSVFilename = "tarifa_report.csv"

// Snapshot is everything the CSV export needs.
type Snapshot struct {
	Currency string
	Config   pricing.Config
	Rates    pricing.Rates
	Log      []model.LoggedProject
}

// WriteCSV writes the two-section CSV: configuration and results first,
// then the project log in log order. Every field is quoted.
func WriteCSV(w io.Writer, s Snapshot) error {
	c, r := s.Config, s.Rates

	section1 := [][]string{
		{"Section", "Metric", "Value"},
		{"Summary", "Currency", s.Currency},
		{"Summary", "Monthly target", num(c.MonthlyTarget)},
		{"Summary", "Projects/month", num(c.ProjectsPerMonth)},
		{"Summary", "Hours/project", num(c.HoursPerProject)},
		{"Summary", "Tools/month", num(c.ToolsMonthly)},
		{"Summary", "Tax (%)", num(c.TaxPct)},
		{"Calculation", "Min hourly rate", num(r.MinHourlyRate)},
		{"Calculation", "Min per project (before tax)", num(r.MinProjectPrice)},
		{"Calculation", "Final price (with tax)", num(r.FinalPriceWithTax)},
		{"Calculation", "Total hours/month", num(r.TotalHours)},
		{"Calculation", "Min monthly revenue", num(r.MinMonthlyRevenue)},
	}

	section2 := [][]string{{"Date", "Project", "Price", "Hours", "Real hourly"}}
	for _, p := range s.Log {
		section2 = append(section2, []string{
			p.Date, p.Name, num(p.Price), num(p.Hours), num(pipeline.RealHourly(p)),
		})
	}

	var b strings.Builder
	writeRows(&b, section1)
	b.WriteString("\n")
	writeRows(&b, section2)

	_, err := io.WriteString(w, b.String())
	return err
}

// writeRows writes each row terminated by "\n".
func writeRows(b *strings.Builder, rows [][]string) {
	for _, row := range rows {
		for i, field := range row {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(quote(field))
		}
		b.WriteByte('\n')
	}
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// num formats with the fewest digits that round-trip.
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
