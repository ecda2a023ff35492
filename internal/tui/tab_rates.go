package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/tarifa/internal/cli"
	"github.com/theirongolddev/tarifa/internal/model"
	"github.com/theirongolddev/tarifa/internal/tui/components"
	"github.com/theirongolddev/tarifa/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderRatesTab(cw int) string {
	t := theme.Active
	cfg := a.ctrl.Config()
	rates := a.ctrl.Rates()
	code := cfg.Currency
	var b strings.Builder

	// Row 1: the four headline numbers
	cards := []components.Metric{
		{Label: "Min hourly rate", Value: cli.FormatMoney(code, rates.MinHourlyRate), Delta: "per hour, before tax"},
		{Label: "Min per project", Value: cli.FormatMoney(code, rates.MinProjectPrice), Delta: "before tax"},
		{Label: "Final price", Value: cli.FormatMoney(code, rates.FinalPriceWithTax), Delta: fmt.Sprintf("with %s tax", cli.FormatPercent(cfg.Floored().TaxPct)), Tone: components.TonePositive},
		{Label: "Monthly revenue", Value: cli.FormatMoney(code, rates.MinMonthlyRevenue), Delta: cli.FormatHours(rates.TotalHours) + " / month"},
	}
	b.WriteString(components.MetricCardRow(cards, cw))
	b.WriteString("\n")

	// Row 2: inputs beside this month's progress
	if a.isCompactLayout() {
		b.WriteString(components.ContentCard("Inputs", a.renderFields(a.rates, rateFields, cw), cw))
		b.WriteString("\n")
		b.WriteString(components.ContentCard("This month", a.renderMonthProgress(cw), cw))
		return b.String()
	}

	halves := components.LayoutRow(cw, 2)
	inputsW := halves[0] + halves[1]/3
	progressW := cw - inputsW
	b.WriteString(components.CardRow([]string{
		components.ContentCard("Inputs", a.renderFields(a.rates, rateFields, inputsW), inputsW),
		components.ContentCard("This month", a.renderMonthProgress(progressW), progressW),
	}))
	b.WriteString("\n")

	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Background)
	b.WriteString(dimStyle.Render("  Inputs below their floor are raised to it: 1 project, 0.1 h, 0.01 target."))

	return b.String()
}

// renderMonthProgress compares revenue logged this month with the minimum
// monthly revenue.
func (a App) renderMonthProgress(cw int) string {
	t := theme.Active
	code := a.ctrl.Form().Currency
	rates := a.ctrl.Rates()

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Bold(true)

	month := a.now().Format(model.DateLayout)[:7]
	var cur model.LogRollup
	for _, m := range a.ctrl.Months() {
		if m.Month == month {
			cur = m.Rollup
			break
		}
	}

	barW := components.CardInnerWidth(cw) - 6
	if barW < 10 {
		barW = 10
	}

	pct := 0.0
	if rates.MinMonthlyRevenue > 0 {
		pct = cur.Revenue / rates.MinMonthlyRevenue
	}

	var b strings.Builder
	b.WriteString(labelStyle.Render("Logged  ") + valueStyle.Render(cli.FormatMoney(code, cur.Revenue)))
	b.WriteString(labelStyle.Render(" of " + cli.FormatMoney(code, rates.MinMonthlyRevenue)))
	b.WriteString("\n\n")
	b.WriteString(components.ProgressBar(pct, barW))
	b.WriteString("\n\n")
	b.WriteString(labelStyle.Render(fmt.Sprintf("%s in %s", pluralize(cur.Projects, "project"), month)))
	return b.String()
}
