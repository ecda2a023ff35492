// Package pricing derives minimum viable rates from monthly targets.
package pricing

import "math"

// Input floors applied before any division.
const (
	MinMonthlyTarget    = 0.01
	MinProjectsPerMonth = 1
	MinHoursPerProject  = 0.1
	MinToolsMonthly     = 0
	MinTaxPct           = 0

	// Comparator floors.
	MinPrice = 0.01
	MinHours = 0.1
)

// Config holds the numeric pricing inputs.
// Currency is a display selector only and never affects the arithmetic.
type Config struct {
	MonthlyTarget    float64
	ProjectsPerMonth float64
	HoursPerProject  float64
	ToolsMonthly     float64
	TaxPct           float64 // percent, e.g. 10 for 10%
	Currency         string
}

// Rates holds the values derived from a Config. All amounts exclude tax
// except FinalPriceWithTax.
type Rates struct {
	TotalHours        float64
	MinHourlyRate     float64
	MinProjectPrice   float64
	FinalPriceWithTax float64
	MinMonthlyRevenue float64
}

// Floored returns cfg with every input clamped to its floor.
func (cfg Config) Floored() Config {
	return Config{
		MonthlyTarget:    floor(cfg.MonthlyTarget, MinMonthlyTarget),
		ProjectsPerMonth: floor(cfg.ProjectsPerMonth, MinProjectsPerMonth),
		HoursPerProject:  floor(cfg.HoursPerProject, MinHoursPerProject),
		ToolsMonthly:     floor(cfg.ToolsMonthly, MinToolsMonthly),
		TaxPct:           floor(cfg.TaxPct, MinTaxPct),
		Currency:         cfg.Currency,
	}
}

// ComputeRates derives the minimum rates for cfg. Out-of-range inputs are
// clamped to their floors, so the result is always defined.
func ComputeRates(cfg Config) Rates {
	c := cfg.Floored()

	totalHours := c.ProjectsPerMonth * c.HoursPerProject
	minHourly := (c.MonthlyTarget + c.ToolsMonthly) / totalHours
	minProject := minHourly * c.HoursPerProject

	return Rates{
		TotalHours:        totalHours,
		MinHourlyRate:     minHourly,
		MinProjectPrice:   minProject,
		FinalPriceWithTax: minProject * (1 + c.TaxPct/100),
		MinMonthlyRevenue: minProject * c.ProjectsPerMonth,
	}
}

// floor clamps v to lo. Non-finite values count as below the floor.
func floor(v, lo float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < lo {
		return lo
	}
	return v
}
