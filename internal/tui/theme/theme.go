// Package theme defines color themes for the tarifa TUI dashboard.
package theme

import (
	"slices"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color roles used throughout the TUI.
type Theme struct {
	Name          string
	Background    lipgloss.Color // Main app background
	Surface       lipgloss.Color // Card/panel backgrounds
	SurfaceHover  lipgloss.Color // Highlighted surface (active tab, selected row)
	SurfaceBright lipgloss.Color // Extra bright surface for emphasis
	Border        lipgloss.Color // Subtle borders
	BorderBright  lipgloss.Color // Prominent borders (cards, focus)
	BorderAccent  lipgloss.Color // Accent-colored borders for focus states
	TextDim       lipgloss.Color // Lowest contrast text (hints, disabled)
	TextMuted     lipgloss.Color // Secondary text (labels, metadata)
	TextPrimary   lipgloss.Color // Primary content text
	Accent        lipgloss.Color // Primary accent (links, active states)
	AccentBright  lipgloss.Color // Brighter accent for emphasis
	AccentDim     lipgloss.Color // Dimmed accent for backgrounds
	Green         lipgloss.Color
	GreenBright   lipgloss.Color
	Orange        lipgloss.Color
	Red           lipgloss.Color
	Blue          lipgloss.Color
	BlueBright    lipgloss.Color
	Yellow        lipgloss.Color
	Magenta       lipgloss.Color
	Cyan          lipgloss.Color
}

// Active is the currently selected theme.
var Active = TarifaDark

// TarifaDark is the default theme: black paper, white ink, orange brand.
var TarifaDark = Theme{
	Name:          "tarifa-dark",
	Background:    lipgloss.Color("#000000"),
	Surface:       lipgloss.Color("#111111"),
	SurfaceHover:  lipgloss.Color("#1E1E1E"),
	SurfaceBright: lipgloss.Color("#2A2A2A"),
	Border:        lipgloss.Color("#333333"),
	BorderBright:  lipgloss.Color("#4D4D4D"),
	BorderAccent:  lipgloss.Color("#F64D08"),
	TextDim:       lipgloss.Color("#6B6B6B"),
	TextMuted:     lipgloss.Color("#BFBFBF"),
	TextPrimary:   lipgloss.Color("#FFFFFF"),
	Accent:        lipgloss.Color("#F64D08"),
	AccentBright:  lipgloss.Color("#FF7A3D"),
	AccentDim:     lipgloss.Color("#3D1502"),
	Green:         lipgloss.Color("#16A34A"),
	GreenBright:   lipgloss.Color("#22C55E"),
	Orange:        lipgloss.Color("#F97316"),
	Red:           lipgloss.Color("#EF4444"),
	Blue:          lipgloss.Color("#3B82F6"),
	BlueBright:    lipgloss.Color("#60A5FA"),
	Yellow:        lipgloss.Color("#EAB308"),
	Magenta:       lipgloss.Color("#D946EF"),
	Cyan:          lipgloss.Color("#06B6D4"),
}

// Terminal uses ANSI 16 colors only - maximum compatibility.
var Terminal = Theme{
	Name:          "terminal",
	Background:    lipgloss.Color("0"),
	Surface:       lipgloss.Color("0"),
	SurfaceHover:  lipgloss.Color("8"),
	SurfaceBright: lipgloss.Color("8"),
	Border:        lipgloss.Color("8"),
	BorderBright:  lipgloss.Color("7"),
	BorderAccent:  lipgloss.Color("6"),
	TextDim:       lipgloss.Color("8"),
	TextMuted:     lipgloss.Color("7"),
	TextPrimary:   lipgloss.Color("15"),
	Accent:        lipgloss.Color("6"),
	AccentBright:  lipgloss.Color("14"),
	AccentDim:     lipgloss.Color("0"),
	Green:         lipgloss.Color("2"),
	GreenBright:   lipgloss.Color("10"),
	Orange:        lipgloss.Color("3"),
	Red:           lipgloss.Color("1"),
	Blue:          lipgloss.Color("4"),
	BlueBright:    lipgloss.Color("12"),
	Yellow:        lipgloss.Color("3"),
	Magenta:       lipgloss.Color("5"),
	Cyan:          lipgloss.Color("6"),
}

// All available themes.
var All = []Theme{TarifaDark, TarifaLight, Terminal}

// ByName returns a theme by its name, defaulting to TarifaDark.
func ByName(name string) Theme {
	for _, t := range All {
		if t.Name == name {
			return t
		}
	}
	return TarifaDark
}

// Names lists the available theme names.
func Names() []string {
	names := make([]string, len(All))
	for i, t := range All {
		names[i] = t.Name
	}
	return names
}

// Exists reports whether name is a known theme.
func Exists(name string) bool {
	return slices.Contains(Names(), name)
}

// SetActive sets the active theme by name.
func SetActive(name string) {
	Active = ByName(name)
}
