package model

// LogRollup holds the KPIs computed over a project log against a minimum
// hourly rate.
type LogRollup struct {
	Projects int
	Hours    float64
	Revenue  float64

	// RealHourlyWeighted is the numerator of the hours-weighted average:
	// the sum of (price/hours)*hours over entries with hours > 0.
	RealHourlyWeighted float64
	AvgRealHourly      float64

	MinHourlyRate float64
	AvgDeviation  float64 // AvgRealHourly - MinHourlyRate

	Above    int // entries with hours > 0 and real rate >= minimum
	Below    int // entries with hours > 0 and real rate < minimum
	PctAbove float64
	PctBelow float64
}

// MonthRollup is the rollup of one calendar month of the log.
type MonthRollup struct {
	Month  string // "YYYY-MM", or UnknownMonth
	Rollup LogRollup
}

// UnknownMonth groups entries whose date could not be read.
const UnknownMonth = "unknown"
