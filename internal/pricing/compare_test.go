package pricing

import "testing"

func TestCompare_AboveMinimum(t *testing.T) {
	minHourly := ComputeRates(defaultConfig()).MinHourlyRate

	c := Compare(Hypothetical{Price: 250, Hours: 6}, minHourly)

	if !nearly(c.RealHourly, 41.67, 0.01) {
		t.Fatalf("RealHourly = %.4f, want ~41.67", c.RealHourly)
	}
	if !nearly(c.Deviation, 10.10, 0.01) {
		t.Fatalf("Deviation = %.4f, want ~+10.10", c.Deviation)
	}
	if c.Diagnostic != AtOrAboveMinimum {
		t.Fatalf("Diagnostic = %v, want %v", c.Diagnostic, AtOrAboveMinimum)
	}
}

func TestCompare_BelowMinimum(t *testing.T) {
	c := Compare(Hypothetical{Price: 100, Hours: 10}, 31.5625)
	if c.Diagnostic != BelowMinimum {
		t.Fatalf("Diagnostic = %v, want %v", c.Diagnostic, BelowMinimum)
	}
	if c.Deviation >= 0 {
		t.Fatalf("Deviation = %v, want negative", c.Deviation)
	}
}

func TestCompare_InclusiveAtBoundary(t *testing.T) {
	c := Compare(Hypothetical{Price: 300, Hours: 10}, 30)
	if c.Deviation != 0 {
		t.Fatalf("Deviation = %v, want 0", c.Deviation)
	}
	if c.Diagnostic != AtOrAboveMinimum {
		t.Fatalf("Diagnostic = %v, want %v at zero deviation", c.Diagnostic, AtOrAboveMinimum)
	}
}

func TestCompare_FloorsInputs(t *testing.T) {
	c := Compare(Hypothetical{Price: 0, Hours: 0}, 0)
	// 0.01 / 0.1
	if !nearly(c.RealHourly, 0.1, 1e-12) {
		t.Fatalf("RealHourly = %v, want 0.1", c.RealHourly)
	}

	c = Compare(Hypothetical{Price: -50, Hours: -2}, 1)
	if !nearly(c.RealHourly, 0.1, 1e-12) {
		t.Fatalf("negative inputs RealHourly = %v, want 0.1", c.RealHourly)
	}
}

func TestDiagnosticText(t *testing.T) {
	if AtOrAboveMinimum.String() == BelowMinimum.String() {
		t.Fatal("diagnostic labels should differ")
	}
	if AtOrAboveMinimum.Advice() == BelowMinimum.Advice() {
		t.Fatal("diagnostic advice should differ")
	}
	if Diagnostic(9).String() != "unknown" {
		t.Fatalf("unexpected label %q", Diagnostic(9).String())
	}
}
