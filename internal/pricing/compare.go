package pricing

// Diagnostic classifies a real hourly rate against the minimum.
type Diagnostic int

const (
	AtOrAboveMinimum Diagnostic = iota
	BelowMinimum
)

// String returns a short label for tables.
func (d Diagnostic) String() string {
	switch d {
	case AtOrAboveMinimum:
		return "at or above minimum"
	case BelowMinimum:
		return "below minimum"
	}
	return "unknown"
}

// Advice returns the one-line coaching text shown next to a comparison.
func (d Diagnostic) Advice() string {
	if d == BelowMinimum {
		return "Heads up: you are below your minimum. Raise the price, cut scope or extend the deadline."
	}
	return "Good: you are charging at or above your minimum."
}

// Hypothetical is a project the user is considering quoting.
type Hypothetical struct {
	Name  string
	Price float64
	Hours float64
}

// Comparison is the result of checking a Hypothetical against the minimum.
type Comparison struct {
	RealHourly float64
	Deviation  float64 // RealHourly - minimum; negative means underpriced
	Diagnostic Diagnostic
}

// Compare computes the real hourly rate of h and its deviation from
// minHourly. Price and hours are floored like ComputeRates inputs. A rate
// exactly equal to the minimum counts as at-or-above.
func Compare(h Hypothetical, minHourly float64) Comparison {
	rate := floor(h.Price, MinPrice) / floor(h.Hours, MinHours)
	dev := rate - minHourly

	diag := AtOrAboveMinimum
	if dev < 0 {
		diag = BelowMinimum
	}

	return Comparison{
		RealHourly: rate,
		Deviation:  dev,
		Diagnostic: diag,
	}
}
