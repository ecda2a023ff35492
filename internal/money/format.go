// Package money formats amounts in the calculator's supported currencies.
package money

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Currency is a supported display currency and the locale used to format it.
type Currency struct {
	Code   string
	Locale string

	symbolAfter bool // "1.234,50 €"
	spaced      bool // space between symbol and number
}

// Currencies lists the supported currencies. The first entry is the default.
var Currencies = []Currency{
	{Code: "USD", Locale: "en-US"},
	{Code: "UYU", Locale: "es-UY", spaced: true},
	{Code: "ARS", Locale: "es-AR", spaced: true},
	{Code: "MXN", Locale: "es-MX"},
	{Code: "EUR", Locale: "es-ES", symbolAfter: true, spaced: true},
}

// Lookup returns the currency for code (case-insensitive), defaulting to
// the first supported currency.
func Lookup(code string) Currency {
	code = strings.ToUpper(strings.TrimSpace(code))
	for _, c := range Currencies {
		if c.Code == code {
			return c
		}
	}
	return Currencies[0]
}

// Supported reports whether code is one of Currencies.
func Supported(code string) bool {
	code = strings.ToUpper(strings.TrimSpace(code))
	for _, c := range Currencies {
		if c.Code == code {
			return true
		}
	}
	return false
}

// Codes returns the supported currency codes in display order.
func Codes() []string {
	codes := make([]string, len(Currencies))
	for i, c := range Currencies {
		codes[i] = c.Code
	}
	return codes
}

// Format renders n in the given currency with two decimals.
// Unknown codes render as the default currency.
func Format(code string, n float64) string {
	c := Lookup(code)
	return c.Format(n, 2)
}

// Format renders n with the currency's locale conventions.
func (c Currency) Format(n float64, decimals int) string {
	s, err := c.localized(n, decimals)
	if err != nil {
		return Fallback(c.Code, n, decimals)
	}
	return s
}

// FormatLocale renders n as code in locale. If locale-aware formatting is
// not possible it degrades to Fallback.
func FormatLocale(code, locale string, n float64, decimals int) string {
	for _, c := range Currencies {
		if c.Code == code && c.Locale == locale {
			return c.Format(n, decimals)
		}
	}
	return Currency{Code: code, Locale: locale}.Format(n, decimals)
}

// Fallback renders n as "<CODE> <fixed-decimal>", e.g. "USD 12.50".
func Fallback(code string, n float64, decimals int) string {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		n = 0
	}
	if decimals < 0 {
		decimals = 0
	}
	return fmt.Sprintf("%s %s", code, decimal.NewFromFloat(n).StringFixed(int32(decimals)))
}

func (c Currency) localized(n float64, decimals int) (string, error) {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		n = 0
	}
	if decimals < 0 {
		decimals = 0
	}

	tag, err := language.Parse(c.Locale)
	if err != nil {
		return "", fmt.Errorf("parsing locale %q: %w", c.Locale, err)
	}
	unit, err := currency.ParseISO(c.Code)
	if err != nil {
		return "", fmt.Errorf("parsing currency %q: %w", c.Code, err)
	}

	p := message.NewPrinter(tag)
	sym := p.Sprint(currency.NarrowSymbol(unit))
	if sym == "" {
		return "", errors.New("no currency symbol")
	}
	num := p.Sprint(number.Decimal(math.Abs(n), number.Scale(decimals)))

	sep := ""
	if c.spaced {
		sep = " "
	}

	var s string
	if c.symbolAfter {
		s = num + sep + sym
	} else {
		s = sym + sep + num
	}
	if n < 0 && num != p.Sprint(number.Decimal(0.0, number.Scale(decimals))) {
		s = "-" + s
	}
	return s, nil
}
