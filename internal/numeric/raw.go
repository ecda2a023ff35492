package numeric

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Raw is a numeric field exactly as the user typed it. It is kept as text so
// that partial input ("12,", "") survives a save/load cycle unchanged.
type Raw string

// RawFloat formats f as the shortest Raw that parses back to f.
func RawFloat(f float64) Raw {
	return Raw(strconv.FormatFloat(f, 'f', -1, 64))
}

// Float coerces the text, returning fallback when it does not parse.
func (r Raw) Float(fallback float64) float64 {
	return Parse(string(r), fallback)
}

// String implements fmt.Stringer.
func (r Raw) String() string {
	return string(r)
}

// MarshalJSON always writes a JSON string.
func (r Raw) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(r))
}

// UnmarshalJSON accepts a JSON string, a JSON number or null.
func (r *Raw) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*r = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*r = Raw(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*r = Raw(n.String())
	return nil
}
