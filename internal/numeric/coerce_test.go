package numeric

import (
	"encoding/json"
	"math"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in       string
		fallback float64
		want     float64
	}{
		{"1,5", 0, 1.5},
		{"", 7, 7},
		{"abc", 3, 3},
		{"42", 0, 42},
		{"  12.25", 0, 12.25},
		{"12 hrs", 0, 12},
		{"8h", 1, 8},
		{"-3.5", 0, -3.5},
		{"+2", 0, 2},
		{".5", 0, 0.5},
		{"5.", 0, 5},
		{"1e3", 0, 1000},
		{"1e", 0, 1},
		{"2E-2x", 0, 0.02},
		{"1,234,5", 0, 1.234},
		{"0x10", 9, 0},
		{"-", 4, 4},
		{".", 4, 4},
		{"NaN", 6, 6},
		{"Infinity", 6, 6},
		{"1e999", 2, 2},
	}

	for _, tt := range tests {
		if got := Parse(tt.in, tt.fallback); got != tt.want {
			t.Errorf("Parse(%q, %v) = %v, want %v", tt.in, tt.fallback, got, tt.want)
		}
	}
}

func TestCoerce(t *testing.T) {
	tests := []struct {
		name     string
		in       any
		fallback float64
		want     float64
	}{
		{"nil", nil, 5, 5},
		{"string", "1,5", 0, 1.5},
		{"raw", Raw("250"), 0, 250},
		{"float", 31.5625, 0, 31.5625},
		{"int", 6, 0, 6},
		{"int64", int64(-2), 0, -2},
		{"nan", math.NaN(), 8, 8},
		{"inf", math.Inf(1), 8, 8},
		{"json number", json.Number("3.25"), 0, 3.25},
		{"bool", true, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Coerce(tt.in, tt.fallback); got != tt.want {
				t.Errorf("Coerce(%v, %v) = %v, want %v", tt.in, tt.fallback, got, tt.want)
			}
		})
	}
}

func TestRawUnmarshalAcceptsNumbersAndStrings(t *testing.T) {
	var v struct {
		A Raw `json:"a"`
		B Raw `json:"b"`
		C Raw `json:"c"`
	}
	if err := json.Unmarshal([]byte(`{"a":1500,"b":"12,5","c":null}`), &v); err != nil {
		t.Fatal(err)
	}
	if v.A != "1500" {
		t.Errorf("A = %q, want 1500", v.A)
	}
	if v.B.Float(0) != 12.5 {
		t.Errorf("B.Float = %v, want 12.5", v.B.Float(0))
	}
	if v.C != "" {
		t.Errorf("C = %q, want empty", v.C)
	}

	out, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != `{"a":"1500","b":"12,5","c":""}` {
		t.Errorf("Marshal = %s", out)
	}
}

func TestRawFloat(t *testing.T) {
	if got := RawFloat(31.5625); got != "31.5625" {
		t.Errorf("RawFloat = %q, want 31.5625", got)
	}
	if got := RawFloat(0); got != "0" {
		t.Errorf("RawFloat(0) = %q, want 0", got)
	}
}
