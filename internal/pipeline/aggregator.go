// Package pipeline aggregates the project log into KPIs.
package pipeline

import (
	"math"
	"sort"
	"strings"

	"github.com/theirongolddev/tarifa/internal/model"

	"github.com/shopspring/decimal"
)

// Aggregate computes log KPIs against minHourly in a single pass.
// Sums are kept in exact decimal arithmetic, so the result does not depend
// on the order of log. Entries with zero hours count as projects and
// revenue but are left out of the above/below split and the weighted rate.
func Aggregate(log []model.LoggedProject, minHourly float64) model.LogRollup {
	var (
		hours    = decimal.Zero
		revenue  = decimal.Zero
		weighted = decimal.Zero
	)

	stats := model.LogRollup{MinHourlyRate: minHourly}

	for _, p := range log {
		stats.Projects++
		hours = hours.Add(dec(p.Hours))
		revenue = revenue.Add(dec(p.Price))

		if p.Hours <= 0 {
			continue
		}
		rate := p.Price / p.Hours
		weighted = weighted.Add(dec(rate * p.Hours))
		if rate >= minHourly {
			stats.Above++
		} else {
			stats.Below++
		}
	}

	stats.Hours = hours.InexactFloat64()
	stats.Revenue = revenue.InexactFloat64()
	stats.RealHourlyWeighted = weighted.InexactFloat64()

	if stats.Hours > 0 {
		stats.AvgRealHourly = stats.RealHourlyWeighted / stats.Hours
	}
	stats.AvgDeviation = stats.AvgRealHourly - minHourly

	if stats.Projects > 0 {
		n := float64(stats.Projects)
		stats.PctAbove = float64(stats.Above) / n * 100
		stats.PctBelow = float64(stats.Below) / n * 100
	}

	return stats
}

// dec converts f for exact summation. Non-finite values contribute nothing.
func dec(f float64) decimal.Decimal {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}

// RealHourly returns price/hours for one entry, or 0 when no hours were
// logged.
func RealHourly(p model.LoggedProject) float64 {
	if p.Hours > 0 {
		return p.Price / p.Hours
	}
	return 0
}

// AggregateMonths computes one rollup per calendar month (most recent
// first). Entries without a readable date are grouped last under
// model.UnknownMonth.
func AggregateMonths(log []model.LoggedProject, minHourly float64) []model.MonthRollup {
	byMonth := make(map[string][]model.LoggedProject)
	for _, p := range log {
		m := p.Month()
		if m == "" {
			m = model.UnknownMonth
		}
		byMonth[m] = append(byMonth[m], p)
	}

	months := make([]model.MonthRollup, 0, len(byMonth))
	for m, entries := range byMonth {
		months = append(months, model.MonthRollup{
			Month:  m,
			Rollup: Aggregate(entries, minHourly),
		})
	}

	sort.Slice(months, func(i, j int) bool {
		if months[i].Month == model.UnknownMonth {
			return false
		}
		if months[j].Month == model.UnknownMonth {
			return true
		}
		return months[i].Month > months[j].Month
	})

	return months
}

// FilterByMonth returns entries dated within month ("YYYY-MM").
func FilterByMonth(log []model.LoggedProject, month string) []model.LoggedProject {
	if month == "" {
		return log
	}
	var result []model.LoggedProject
	for _, p := range log {
		if p.Month() == month {
			result = append(result, p)
		}
	}
	return result
}

// FilterByName returns entries whose name contains substr, ignoring case.
func FilterByName(log []model.LoggedProject, substr string) []model.LoggedProject {
	if substr == "" {
		return log
	}
	var result []model.LoggedProject
	for _, p := range log {
		if containsIgnoreCase(p.Name, substr) {
			result = append(result, p)
		}
	}
	return result
}

// SortByDate returns a copy of log ordered by date, most recent first.
// Entries with equal dates keep their relative order.
func SortByDate(log []model.LoggedProject) []model.LoggedProject {
	sorted := make([]model.LoggedProject, len(log))
	copy(sorted, log)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date > sorted[j].Date
	})
	return sorted
}

func containsIgnoreCase(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
