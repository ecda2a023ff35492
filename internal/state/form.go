// Package state owns the calculator's persisted form and project log.
package state

import (
	"errors"
	"fmt"
	"strings"

	"github.com/theirongolddev/tarifa/internal/numeric"
	"github.com/theirongolddev/tarifa/internal/pricing"
)

// ErrUnknownKey is returned by Form.Set for keys that are not form fields.
var ErrUnknownKey = errors.New("unknown form key")

// Form is the editable calculator state exactly as the user typed it.
// Numbers stay as text and are coerced on read.
type Form struct {
	Currency         string      `json:"currency"`
	MonthlyTarget    numeric.Raw `json:"monthly_target"`
	ProjectsPerMonth numeric.Raw `json:"projects_per_month"`
	HoursPerProject  numeric.Raw `json:"hours_per_project"`
	ToolsMonthly     numeric.Raw `json:"tools_monthly"`
	TaxPct           numeric.Raw `json:"tax_pct"`
	CompareName      string      `json:"compare_name"`
	ComparePrice     numeric.Raw `json:"compare_price"`
	CompareHours     numeric.Raw `json:"compare_hours"`
}

// Defaults returns the form a new user starts with.
func Defaults() Form {
	return Form{
		Currency:         "USD",
		MonthlyTarget:    "1500",
		ProjectsPerMonth: "6",
		HoursPerProject:  "8",
		ToolsMonthly:     "15",
		TaxPct:           "10",
		CompareName:      "Basic logo",
		ComparePrice:     "250",
		CompareHours:     "6",
	}
}

// Form keys, in display order.
const (
	KeyCurrency         = "currency"
	KeyMonthlyTarget    = "monthly_target"
	KeyProjectsPerMonth = "projects_per_month"
	KeyHoursPerProject  = "hours_per_project"
	KeyToolsMonthly     = "tools_monthly"
	KeyTaxPct           = "tax_pct"
	KeyCompareName      = "compare_name"
	KeyComparePrice     = "compare_price"
	KeyCompareHours     = "compare_hours"
)

// Keys lists every form key in display order.
func Keys() []string {
	return []string{
		KeyCurrency,
		KeyMonthlyTarget, KeyProjectsPerMonth, KeyHoursPerProject, KeyToolsMonthly, KeyTaxPct,
		KeyCompareName, KeyComparePrice, KeyCompareHours,
	}
}

// aliases maps alternative spellings to form keys. The pro_/cmp_ names are
// the ones older share links used.
var aliases = map[string]string{
	"monthlyTarget":        KeyMonthlyTarget,
	"projectsPerMonth":     KeyProjectsPerMonth,
	"hoursPerProject":      KeyHoursPerProject,
	"toolsMonthly":         KeyToolsMonthly,
	"taxPct":               KeyTaxPct,
	"compareName":          KeyCompareName,
	"comparePrice":         KeyComparePrice,
	"compareHours":         KeyCompareHours,
	"pro_monthlyTarget":    KeyMonthlyTarget,
	"pro_projectsPerMonth": KeyProjectsPerMonth,
	"pro_hoursPerProject":  KeyHoursPerProject,
	"pro_toolsMonthly":     KeyToolsMonthly,
	"pro_taxPct":           KeyTaxPct,
	"cmp_name":             KeyCompareName,
	"cmp_price":            KeyComparePrice,
	"cmp_hours":            KeyCompareHours,
}

// CanonicalKey resolves aliases and reports whether key names a form field.
func CanonicalKey(key string) (string, bool) {
	key = strings.TrimSpace(key)
	if k, ok := aliases[key]; ok {
		return k, true
	}
	k := strings.ReplaceAll(strings.ToLower(key), "-", "_")
	for _, known := range Keys() {
		if k == known {
			return known, true
		}
	}
	return "", false
}

func (f *Form) field(key string) (*numeric.Raw, *string) {
	switch key {
	case KeyCurrency:
		return nil, &f.Currency
	case KeyMonthlyTarget:
		return &f.MonthlyTarget, nil
	case KeyProjectsPerMonth:
		return &f.ProjectsPerMonth, nil
	case KeyHoursPerProject:
		return &f.HoursPerProject, nil
	case KeyToolsMonthly:
		return &f.ToolsMonthly, nil
	case KeyTaxPct:
		return &f.TaxPct, nil
	case KeyCompareName:
		return nil, &f.CompareName
	case KeyComparePrice:
		return &f.ComparePrice, nil
	case KeyCompareHours:
		return &f.CompareHours, nil
	}
	return nil, nil
}

// Set stores value under key. Numeric fields keep the text unchanged;
// currency codes are upper-cased.
func (f *Form) Set(key, value string) error {
	k, ok := CanonicalKey(key)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	raw, text := f.field(k)
	switch {
	case k == KeyCurrency:
		*text = strings.ToUpper(strings.TrimSpace(value))
	case text != nil:
		*text = value
	default:
		*raw = numeric.Raw(value)
	}
	return nil
}

// Get returns the text stored under key.
func (f Form) Get(key string) (string, bool) {
	k, ok := CanonicalKey(key)
	if !ok {
		return "", false
	}
	raw, text := f.field(k)
	if text != nil {
		return *text, true
	}
	return raw.String(), true
}

// Config coerces the pricing fields. Unparseable text counts as 0 and is
// then lifted to the engine's floors.
func (f Form) Config() pricing.Config {
	return pricing.Config{
		MonthlyTarget:    f.MonthlyTarget.Float(0),
		ProjectsPerMonth: f.ProjectsPerMonth.Float(0),
		HoursPerProject:  f.HoursPerProject.Float(0),
		ToolsMonthly:     f.ToolsMonthly.Float(0),
		TaxPct:           f.TaxPct.Float(0),
		Currency:         f.Currency,
	}
}

// Hypothetical coerces the comparator fields.
func (f Form) Hypothetical() pricing.Hypothetical {
	return pricing.Hypothetical{
		Name:  f.CompareName,
		Price: f.ComparePrice.Float(0),
		Hours: f.CompareHours.Float(0),
	}
}
