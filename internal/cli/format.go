// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/theirongolddev/tarifa/internal/model"
	"github.com/theirongolddev/tarifa/internal/money"
)

// FormatMoney formats an amount in the given currency.
func FormatMoney(code string, n float64) string {
	return money.Format(code, n)
}

// FormatSignedMoney formats a deviation with an explicit sign.
// e.g., 10.1 -> "+$10.10", -1.56 -> "-$1.56"
func FormatSignedMoney(code string, n float64) string {
	if n >= 0 {
		return "+" + money.Format(code, n)
	}
	return money.Format(code, n)
}

// FormatHours formats an hour count, e.g. 8 -> "8 h", 2.5 -> "2.5 h".
func FormatHours(h float64) string {
	if math.IsNaN(h) || math.IsInf(h, 0) {
		h = 0
	}
	return strconv.FormatFloat(math.Round(h*100)/100, 'f', -1, 64) + " h"
}

// FormatQuantity formats a plain count with at most two decimals,
// e.g. 6 -> "6", 1.5 -> "1.5".
func FormatQuantity(v float64) string {
	return strings.TrimSuffix(FormatHours(v), " h")
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	return humanize.Comma(n)
}

// FormatPercent formats a 0-100 value as a whole percentage.
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%.0f%%", pct)
}

// FormatDate renders a logged date with a relative hint, e.g.
// "2025-06-01 (2 weeks ago)". Unparseable dates are returned as typed.
func FormatDate(date string, now time.Time) string {
	t, err := time.ParseInLocation(model.DateLayout, date, now.Location())
	if err != nil {
		return date
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if t.Equal(today) {
		return date + " (today)"
	}
	return fmt.Sprintf("%s (%s)", date, humanize.RelTime(t, today, "ago", "from now"))
}
