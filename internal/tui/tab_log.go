package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/tarifa/internal/cli"
	"github.com/theirongolddev/tarifa/internal/export"
	"github.com/theirongolddev/tarifa/internal/model"
	"github.com/theirongolddev/tarifa/internal/pipeline"
	"github.com/theirongolddev/tarifa/internal/tui/components"
	"github.com/theirongolddev/tarifa/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// logState tracks the project list.
type logState struct {
	cursor int
	month  string // "YYYY-MM" filter, empty for all
}

func (s *logState) move(delta, n int) {
	s.cursor += delta
	s.clamp(n)
}

func (s *logState) clamp(n int) {
	if s.cursor >= n {
		s.cursor = n - 1
	}
	if s.cursor < 0 {
		s.cursor = 0
	}
}

// visibleLog is the log under the current month filter, most recent first.
func (a App) visibleLog() []model.LoggedProject {
	return pipeline.FilterByMonth(a.ctrl.Log(), a.logView.month)
}

func (a App) updateLogKeys(key string) (tea.Model, tea.Cmd, bool) {
	entries := a.visibleLog()

	switch key {
	case "j", "down":
		a.logView.move(1, len(entries))
		return a, nil, true
	case "k", "up":
		a.logView.move(-1, len(entries))
		return a, nil, true
	case "g":
		a.logView.cursor = 0
		return a, nil, true
	case "G":
		a.logView.cursor = len(entries) - 1
		a.logView.clamp(len(entries))
		return a, nil, true

	case "m":
		months := []string{""}
		for _, m := range a.ctrl.Months() {
			if m.Month != model.UnknownMonth {
				months = append(months, m.Month)
			}
		}
		a.logView.month = nextOf(months, a.logView.month)
		a.logView.cursor = 0
		return a, nil, true

	case "a":
		a.addVals = &addValues{}
		m, cmd := a.openForm(formAdd, newAddForm(a.addVals, a.ctrl.Form().Currency))
		return m, cmd, true

	case "d":
		if len(entries) == 0 {
			return a, nil, true
		}
		a.logView.clamp(len(entries))
		p := entries[a.logView.cursor]
		a.pendingDelete = p.ID
		a.confirm = new(bool)
		m, cmd := a.openForm(formDelete, newConfirmForm(
			fmt.Sprintf("Delete %q?", p.Name),
			p.Date+" · "+cli.FormatMoney(a.ctrl.Form().Currency, p.Price),
			a.confirm))
		return m, cmd, true

	case "D":
		if len(a.ctrl.Log()) == 0 {
			return a, nil, true
		}
		a.confirm = new(bool)
		m, cmd := a.openForm(formClear, newConfirmForm(
			"Clear the whole log?",
			"This removes every logged project.",
			a.confirm))
		return m, cmd, true
	}
	return a, nil, false
}

func (a App) renderLogTab(cw, h int) string {
	t := theme.Active
	code := a.ctrl.Form().Currency
	minHourly := a.ctrl.Rates().MinHourlyRate
	entries := a.visibleLog()
	r := pipeline.Aggregate(entries, minHourly)

	var b strings.Builder

	// Row 1: KPIs for the filtered log
	devTone := components.TonePositive
	if r.AvgDeviation < 0 {
		devTone = components.ToneNegative
	}
	cards := []components.Metric{
		{Label: "Projects", Value: cli.FormatNumber(int64(r.Projects)), Delta: cli.FormatHours(r.Hours)},
		{Label: "Revenue", Value: cli.FormatMoney(code, r.Revenue)},
		{Label: "Avg real hourly", Value: cli.FormatMoney(code, r.AvgRealHourly), Delta: "hours-weighted"},
		{Label: "vs minimum", Value: cli.FormatSignedMoney(code, r.AvgDeviation), Delta: "min " + cli.FormatMoney(code, minHourly), Tone: devTone},
	}
	b.WriteString(components.MetricCardRow(cards, cw))
	b.WriteString("\n")

	// Row 2: share bars + insights
	innerW := components.CardInnerWidth(cw)
	barW := innerW - 24
	if barW > 60 {
		barW = 60
	}
	if barW < 10 {
		barW = 10
	}
	var shares strings.Builder
	shares.WriteString(components.ShareBar("Above minimum", r.PctAbove, 16, barW))
	shares.WriteString("\n")
	shares.WriteString(components.ShareBar("Below minimum", r.PctBelow, 16, barW))
	if r.Projects > 0 {
		mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
		for _, line := range export.Insights(code, minHourly, r) {
			shares.WriteString("\n")
			shares.WriteString(mutedStyle.Render(truncStr("· "+line, innerW)))
		}
	}
	b.WriteString(components.ContentCard("Pricing health", shares.String(), cw))
	b.WriteString("\n")

	// Row 3: the list, sized to what is left
	used := lipgloss.Height(b.String())
	rows := h - used - 4 // card border + title + column header
	if rows < 3 {
		rows = 3
	}

	title := "Projects"
	if a.logView.month != "" {
		title += " · " + a.logView.month
	}
	b.WriteString(components.ContentCard(title, a.renderLogList(entries, minHourly, innerW, rows), cw))
	return b.String()
}

func (a App) renderLogList(entries []model.LoggedProject, minHourly float64, innerW, rows int) string {
	t := theme.Active
	code := a.ctrl.Form().Currency
	now := a.now()

	headStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	goodStyle := lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface)
	badStyle := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	if len(entries) == 0 {
		return mutedStyle.Render("No projects logged. Press [a] to add one.")
	}

	dateW, priceW, hoursW, rateW := 26, 14, 8, 14
	nameW := innerW - dateW - priceW - hoursW - rateW - 4
	if nameW < 8 {
		nameW = 8
	}

	var b strings.Builder
	b.WriteString(headStyle.Render(fmt.Sprintf("%-*s %-*s %*s %*s %*s",
		dateW, "Date", nameW, "Project", priceW, "Price", hoursW, "Hours", rateW, "Real/h")))

	cursor := a.logView.cursor
	if cursor >= len(entries) {
		cursor = len(entries) - 1
	}
	start := 0
	if cursor >= rows {
		start = cursor - rows + 1
	}
	end := start + rows
	if end > len(entries) {
		end = len(entries)
	}

	for i := start; i < end; i++ {
		p := entries[i]
		rh := pipeline.RealHourly(p)

		left := fmt.Sprintf("%-*s %-*s %*s %*s ",
			dateW, truncStr(cli.FormatDate(p.Date, now), dateW),
			nameW, truncStr(p.Name, nameW),
			priceW, cli.FormatMoney(code, p.Price),
			hoursW, cli.FormatHours(p.Hours))
		rate := fmt.Sprintf("%*s", rateW, cli.FormatMoney(code, rh))

		b.WriteString("\n")
		if i == cursor {
			b.WriteString(selStyle.Render(left + rate))
			continue
		}
		b.WriteString(rowStyle.Render(left))
		switch {
		case p.Hours <= 0:
			b.WriteString(mutedStyle.Render(rate))
		case rh >= minHourly:
			b.WriteString(goodStyle.Render(rate))
		default:
			b.WriteString(badStyle.Render(rate))
		}
	}

	if len(entries) > rows {
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render(fmt.Sprintf("%d of %d", cursor+1, len(entries))))
	}
	return b.String()
}
