package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/theirongolddev/tarifa/internal/money"
	"github.com/theirongolddev/tarifa/internal/state"
	"github.com/theirongolddev/tarifa/internal/tui/components"
	"github.com/theirongolddev/tarifa/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// editorState tracks a list of editable fields.
type editorState struct {
	cursor  int
	editing bool
	input   textinput.Model
}

// field is one editable row. Keys are state form keys or settings keys.
type field struct {
	key   string
	label string
	hint  string
	cycle bool // Enter steps through fixed choices instead of typing
}

var rateFields = []field{
	{state.KeyCurrency, "Currency", strings.Join(money.Codes(), " "), true},
	{state.KeyMonthlyTarget, "Monthly target", "what you need to earn per month", false},
	{state.KeyProjectsPerMonth, "Projects / month", "at least 1", false},
	{state.KeyHoursPerProject, "Hours / project", "at least 0.1", false},
	{state.KeyToolsMonthly, "Tools / month", "software, subscriptions", false},
	{state.KeyTaxPct, "Tax %", "e.g. 10", false},
}

var compareFields = []field{
	{state.KeyCompareName, "Project", "what you are quoting", false},
	{state.KeyComparePrice, "Price", "what you plan to charge", false},
	{state.KeyCompareHours, "Hours", "how long it will take", false},
}

// editor returns the field editor of the active tab, or nil.
func (a *App) editor() *editorState {
	switch a.activeTab {
	case tabRates:
		return &a.rates
	case tabCompare:
		return &a.compare
	case tabSettings:
		return &a.settings
	}
	return nil
}

func (a App) fields() []field {
	switch a.activeTab {
	case tabRates:
		return rateFields
	case tabCompare:
		return compareFields
	case tabSettings:
		return settingsFields
	}
	return nil
}

// value returns the current text of a field.
func (a App) value(key string) string {
	if v, ok := a.settingValue(key); ok {
		return v
	}
	v, _ := a.ctrl.Form().Get(key)
	return v
}

// updateEditorKeys handles navigation on a field list.
func (a App) updateEditorKeys(key string) (tea.Model, tea.Cmd, bool) {
	ed := a.editor()
	n := len(a.fields())

	switch key {
	case "j", "down":
		if ed.cursor < n-1 {
			ed.cursor++
		}
		return a, nil, true
	case "k", "up":
		if ed.cursor > 0 {
			ed.cursor--
		}
		return a, nil, true
	case "enter":
		m, cmd := a.startEdit()
		return m, cmd, true
	case "R":
		if a.activeTab == tabSettings {
			return a, nil, false
		}
		a.confirm = new(bool)
		m, cmd := a.openForm(formReset, newConfirmForm(
			"Reset inputs to defaults?",
			"Your logged projects are kept.",
			a.confirm))
		return m, cmd, true
	}
	return a, nil, false
}

func (a App) startEdit() (tea.Model, tea.Cmd) {
	ed := a.editor()
	f := a.fields()[ed.cursor]

	if f.cycle {
		return a.cycleField(f)
	}

	ti := textinput.New()
	ti.CharLimit = 120
	ti.Width = 40
	ti.Placeholder = f.hint
	ti.SetValue(a.value(f.key))
	ti.Focus()

	ed.editing = true
	ed.input = ti
	return a, ti.Cursor.BlinkCmd()
}

// cycleField advances a fixed-choice field to its next option.
func (a App) cycleField(f field) (tea.Model, tea.Cmd) {
	if f.key == state.KeyCurrency {
		next := nextOf(money.Codes(), a.ctrl.Form().Currency)
		ctrl := a.ctrl
		return a, a.persist("Currency: "+next, func(ctx context.Context) error {
			return ctrl.Set(ctx, state.KeyCurrency, next)
		})
	}

	if f.key == settingTheme {
		next := nextOf(theme.Names(), theme.Active.Name)
		theme.SetActive(next)
		a.cfg.Appearance.Theme = next
		return a, a.saveConfigCmd("Theme: " + next)
	}
	return a, nil
}

func (a App) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ed := a.editor()

	switch msg.String() {
	case "enter":
		ed.editing = false
		f := a.fields()[ed.cursor]
		return a, a.commit(f, strings.TrimSpace(ed.input.Value()))
	case "esc":
		ed.editing = false
		return a, nil
	}

	var cmd tea.Cmd
	ed.input, cmd = ed.input.Update(msg)
	return a, cmd
}

// commit stores an edited value. Form fields go through the controller,
// settings through the config file.
func (a *App) commit(f field, val string) tea.Cmd {
	if a.applySetting(f.key, val) {
		return a.saveConfigCmd(f.label + " saved")
	}

	ctrl := a.ctrl
	return a.persist("", func(ctx context.Context) error {
		return ctrl.Set(ctx, f.key, val)
	})
}

// renderFields draws a field list with the cursor row highlighted.
func (a App) renderFields(ed editorState, fields []field, cw int) string {
	t := theme.Active

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	hintStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	selectedLabelStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.SurfaceBright).Bold(true)
	selectedHintStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.SurfaceBright)
	accentStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceBright)

	innerW := components.CardInnerWidth(cw)

	var b strings.Builder
	for i, f := range fields {
		if ed.editing && i == ed.cursor {
			b.WriteString(markerStyle.Render("▸ "))
			b.WriteString(accentStyle.Render(fmt.Sprintf("%-18s ", f.label)))
			b.WriteString(ed.input.View())
			b.WriteString("\n")
			continue
		}

		val := a.value(f.key)
		if val == "" {
			val = "(not set)"
		}

		if i == ed.cursor {
			marker := markerStyle.Render("▸ ")
			label := selectedLabelStyle.Render(fmt.Sprintf("%-18s ", f.label+":"))
			value := selectedStyle.Render(fmt.Sprintf("%-14s", val))
			hint := selectedHintStyle.Render("  " + f.hint)
			line := marker + label + value + hint
			b.WriteString(line)
			if pad := innerW - lipgloss.Width(line); pad > 0 {
				b.WriteString(lipgloss.NewStyle().Background(t.SurfaceBright).Render(strings.Repeat(" ", pad)))
			}
		} else {
			b.WriteString(lipgloss.NewStyle().Background(t.Surface).Render("  "))
			b.WriteString(labelStyle.Render(fmt.Sprintf("%-18s ", f.label+":")))
			b.WriteString(valueStyle.Render(fmt.Sprintf("%-14s", val)))
			if !a.isCompactLayout() {
				b.WriteString(hintStyle.Render("  " + f.hint))
			}
		}
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// nextOf returns the element after cur in list, wrapping around. Unknown
// values start over at the first element.
func nextOf(list []string, cur string) string {
	for i, v := range list {
		if strings.EqualFold(v, cur) {
			return list[(i+1)%len(list)]
		}
	}
	return list[0]
}
