package state

import (
	"github.com/theirongolddev/tarifa/internal/export"
	"github.com/theirongolddev/tarifa/internal/pipeline"
	"github.com/theirongolddev/tarifa/internal/pricing"
)

// Snapshot captures the current state for the CSV export.
func (c *Controller) Snapshot() export.Snapshot {
	f := c.Form()
	cfg := f.Config()
	return export.Snapshot{
		Currency: f.Currency,
		Config:   cfg.Floored(),
		Rates:    pricing.ComputeRates(cfg),
		Log:      c.Log(),
	}
}

// Report captures the current state for the printable report.
func (c *Controller) Report(brand, handle string) export.ReportData {
	f := c.Form()
	cfg := f.Config()
	rates := pricing.ComputeRates(cfg)
	log := c.Log()
	return export.ReportData{
		Brand:    brand,
		Handle:   handle,
		Accent:   export.DefaultAccent,
		Date:     c.now(),
		Currency: f.Currency,
		Rates:    rates,
		Rollup:   pipeline.Aggregate(log, rates.MinHourlyRate),
		Log:      log,
	}
}
