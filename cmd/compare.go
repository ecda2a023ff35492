package cmd

import (
	"fmt"

	"github.com/theirongolddev/tarifa/internal/cli"
	"github.com/theirongolddev/tarifa/internal/pricing"
	"github.com/theirongolddev/tarifa/internal/state"

	"github.com/spf13/cobra"
)

var (
	flagCompareName  string
	flagComparePrice string
	flagCompareHours string
	flagCompareSave  bool
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Check a quote against your minimum hourly rate",
	Args:  cobra.NoArgs,
	RunE:  runCompare,
}

func init() {
	compareCmd.Flags().StringVar(&flagCompareName, "name", "", "Project name (default: saved comparison)")
	compareCmd.Flags().StringVar(&flagComparePrice, "price", "", "Price you plan to charge")
	compareCmd.Flags().StringVar(&flagCompareHours, "hours", "", "Hours it will take")
	compareCmd.Flags().BoolVar(&flagCompareSave, "save", false, "Keep these values as the saved comparison")
	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	f := s.ctrl.Form()
	overrides := map[string]string{}
	if cmd.Flags().Changed("name") {
		overrides[state.KeyCompareName] = flagCompareName
	}
	if cmd.Flags().Changed("price") {
		overrides[state.KeyComparePrice] = flagComparePrice
	}
	if cmd.Flags().Changed("hours") {
		overrides[state.KeyCompareHours] = flagCompareHours
	}
	apply := func(f *state.Form) {
		for k, v := range overrides {
			_ = f.Set(k, v)
		}
	}
	apply(&f)

	if flagCompareSave && len(overrides) > 0 {
		if err := s.ctrl.Update(cmd.Context(), apply); err != nil {
			return fmt.Errorf("saving comparison: %w", err)
		}
	}

	code := f.Currency
	h := f.Hypothetical()
	minHourly := pricing.ComputeRates(f.Config()).MinHourlyRate
	c := pricing.Compare(h, minHourly)

	fmt.Println()
	fmt.Println(cli.RenderTitle("TARIFA  Quote check"))
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   h.Name,
		Headers: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Price", cli.FormatMoney(code, h.Price)},
			{"Hours", cli.FormatHours(h.Hours)},
			{"---"},
			{"Real hourly", cli.FormatMoney(code, c.RealHourly)},
			{"Your minimum", cli.FormatMoney(code, minHourly)},
			{"Difference", cli.FormatSignedMoney(code, c.Deviation)},
		},
	}))
	fmt.Println()
	fmt.Println("  " + cli.RenderDiagnostic(c.Diagnostic))
	return nil
}
