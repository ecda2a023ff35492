package tui

import (
	"strconv"
	"strings"

	"github.com/theirongolddev/tarifa/internal/config"
	"github.com/theirongolddev/tarifa/internal/tui/components"
	"github.com/theirongolddev/tarifa/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

const (
	settingTheme     = "theme"
	settingBrand     = "brand"
	settingHandle    = "handle"
	settingOutputDir = "output_dir"
)

var settingsFields = []field{
	{settingTheme, "Theme", "Enter to cycle", true},
	{settingBrand, "Report brand", "name printed on reports", false},
	{settingHandle, "Report handle", "e.g. @studio", false},
	{settingOutputDir, "Export folder", "empty for the current folder", false},
}

func (a App) settingValue(key string) (string, bool) {
	switch key {
	case settingTheme:
		return theme.Active.Name, true
	case settingBrand:
		return a.cfg.Report.Brand, true
	case settingHandle:
		return a.cfg.Report.Handle, true
	case settingOutputDir:
		return a.cfg.Report.OutputDir, true
	}
	return "", false
}

// applySetting updates the in-memory config. It reports false for keys
// that are not settings.
func (a *App) applySetting(key, val string) bool {
	switch key {
	case settingBrand:
		if val != "" {
			a.cfg.Report.Brand = val
		}
	case settingHandle:
		a.cfg.Report.Handle = val
	case settingOutputDir:
		a.cfg.Report.OutputDir = val
	default:
		return false
	}
	return true
}

func (a App) renderSettingsTab(cw int) string {
	t := theme.Active

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)

	formBody := a.renderFields(a.settings, settingsFields, cw)

	var infoBody strings.Builder
	infoBody.WriteString(labelStyle.Render("Config file:  ") + valueStyle.Render(config.ConfigPath()) + "\n")
	infoBody.WriteString(labelStyle.Render("Store:        ") + valueStyle.Render(a.storeLabel) + "\n")
	if a.cfg.Store.Backend == config.BackendSQLite {
		infoBody.WriteString(labelStyle.Render("State file:   ") + valueStyle.Render(config.StatePath(a.cfg)) + "\n")
	}
	infoBody.WriteString(labelStyle.Render("Logged:       ") + valueStyle.Render(pluralize(len(a.ctrl.Log()), "project")))

	var b strings.Builder
	b.WriteString(components.ContentCard("Settings", formBody, cw))
	b.WriteString("\n")
	b.WriteString(components.ContentCard("General", infoBody.String(), cw))

	return b.String()
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}
