// Package numeric turns user-typed text into finite numbers.
package numeric

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Parse reads the leading number in s, accepting ',' as the decimal
// separator. Trailing garbage is ignored. fallback is returned when no
// number can be read or the result is not finite.
// e.g., "1,5" -> 1.5, "12 hrs" -> 12, "abc" -> fallback
func Parse(s string, fallback float64) float64 {
	s = strings.Replace(s, ",", ".", 1)
	s = strings.TrimLeft(s, " \t\n\r\v\f")

	prefix := leadingFloat(s)
	if prefix == "" {
		return fallback
	}

	f, err := strconv.ParseFloat(prefix, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return fallback
	}
	return f
}

// Coerce converts an arbitrary value into a finite number. Strings go
// through Parse; numeric kinds pass through; nil and anything else yield
// fallback.
func Coerce(v any, fallback float64) float64 {
	var f float64
	switch x := v.(type) {
	case nil:
		return fallback
	case string:
		return Parse(x, fallback)
	case Raw:
		return Parse(string(x), fallback)
	case json.Number:
		return Parse(x.String(), fallback)
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int:
		f = float64(x)
	case int64:
		f = float64(x)
	case int32:
		f = float64(x)
	case uint:
		f = float64(x)
	case uint64:
		f = float64(x)
	case uint32:
		f = float64(x)
	default:
		return fallback
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fallback
	}
	return f
}

// leadingFloat returns the longest prefix of s that is a decimal float
// literal: [sign] digits [. digits] [e [sign] digits]. At least one mantissa
// digit is required.
func leadingFloat(s string) string {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}

	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return ""
	}

	end := i
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		expStart := j
		for j < len(s) && isDigit(s[j]) {
			j++
		}
		if j > expStart {
			end = j
		}
	}

	return s[:end]
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
