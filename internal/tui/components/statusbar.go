package components

import (
	"github.com/theirongolddev/tarifa/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom status bar: key hints on the left,
// a message on the right. Errors are drawn in red.
func RenderStatusBar(width int, hints, message string, isErr bool) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	msgStyle := style.Foreground(t.Green)
	if isErr {
		msgStyle = style.Foreground(t.Red)
	}

	left := style.Render(" " + hints)
	right := ""
	if message != "" {
		right = msgStyle.Render(message + " ")
	}

	// Pad middle
	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}

	return left + style.Render(spaces(padding)) + right
}

func spaces(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}
