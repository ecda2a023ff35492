package tui

import (
	"strings"

	"github.com/theirongolddev/tarifa/internal/cli"
	"github.com/theirongolddev/tarifa/internal/pricing"
	"github.com/theirongolddev/tarifa/internal/tui/components"
	"github.com/theirongolddev/tarifa/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderCompareTab(cw int) string {
	t := theme.Active
	f := a.ctrl.Form()
	code := f.Currency
	minHourly := a.ctrl.Rates().MinHourlyRate
	cmp := a.ctrl.Comparison()
	h := f.Hypothetical()

	tone := components.TonePositive
	if cmp.Diagnostic == pricing.BelowMinimum {
		tone = components.ToneNegative
	}

	var b strings.Builder

	cards := []components.Metric{
		{Label: "Real hourly", Value: cli.FormatMoney(code, cmp.RealHourly), Delta: truncStr(h.Name, 24), Tone: tone},
		{Label: "Your minimum", Value: cli.FormatMoney(code, minHourly), Delta: "per hour"},
		{Label: "Difference", Value: cli.FormatSignedMoney(code, cmp.Deviation), Delta: cmp.Diagnostic.String(), Tone: tone},
	}
	b.WriteString(components.MetricCardRow(cards, cw))
	b.WriteString("\n")

	b.WriteString(components.ContentCard("Quote", a.renderFields(a.compare, compareFields, cw), cw))
	b.WriteString("\n")

	verdictStyle := lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface).Bold(true)
	if tone == components.ToneNegative {
		verdictStyle = verdictStyle.Foreground(t.Red)
	}
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	var verdict strings.Builder
	verdict.WriteString(verdictStyle.Render(cmp.Diagnostic.Advice()))
	verdict.WriteString("\n")
	verdict.WriteString(mutedStyle.Render(
		cli.FormatMoney(code, h.Price) + " for " + cli.FormatHours(h.Hours) +
			" against a minimum of " + cli.FormatMoney(code, minHourly) + " per hour."))

	b.WriteString(components.ContentCard("Verdict", verdict.String(), cw))
	return b.String()
}
