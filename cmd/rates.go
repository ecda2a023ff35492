package cmd

import (
	"fmt"
	"os"

	"github.com/theirongolddev/tarifa/internal/cli"
	"github.com/theirongolddev/tarifa/internal/clipboard"
	"github.com/theirongolddev/tarifa/internal/pricing"

	"github.com/spf13/cobra"
)

var flagCopy bool

var ratesCmd = &cobra.Command{
	Use:   "rates",
	Short: "Show your minimum hourly rate and project price",
	RunE:  runRates,
}

func init() {
	ratesCmd.Flags().BoolVar(&flagCopy, "copy", false, "Copy the final price to the clipboard")
	rootCmd.Flags().BoolVar(&flagCopy, "copy", false, "Copy the final price to the clipboard")
	rootCmd.AddCommand(ratesCmd)
}

func runRates(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	cfg := s.ctrl.Config()
	rates := s.ctrl.Rates()
	floored := cfg.Floored()
	code := cfg.Currency

	fmt.Println()
	fmt.Println(cli.RenderTitle("TARIFA  Minimum rates · " + code))
	fmt.Println()

	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Inputs",
		Headers: []string{"Input", "Value"},
		Rows: [][]string{
			{"Monthly target", cli.FormatMoney(code, floored.MonthlyTarget)},
			{"Projects / month", cli.FormatQuantity(floored.ProjectsPerMonth)},
			{"Hours / project", cli.FormatHours(floored.HoursPerProject)},
			{"Tools / month", cli.FormatMoney(code, floored.ToolsMonthly)},
			{"Tax", cli.FormatPercent(floored.TaxPct)},
		},
	}))
	fmt.Println()

	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Results",
		Headers: []string{"Metric", "Value"},
		Rows:    resultRows(code, rates),
	}))

	if flagCopy {
		fmt.Println()
		text := cli.FormatMoney(code, rates.FinalPriceWithTax)
		method, err := clipboard.Copy(text)
		if err != nil {
			return fmt.Errorf("copying price: %w", err)
		}
		if method != clipboard.Manual {
			fmt.Fprintf(os.Stderr, "  Copied %s (%s)\n", text, method)
		}
	}
	return nil
}

func resultRows(code string, r pricing.Rates) [][]string {
	return [][]string{
		{"Min hourly rate", cli.FormatMoney(code, r.MinHourlyRate)},
		{"Min per project (before tax)", cli.FormatMoney(code, r.MinProjectPrice)},
		{"Final price (with tax)", cli.FormatMoney(code, r.FinalPriceWithTax)},
		{"---"},
		{"Total hours / month", cli.FormatHours(r.TotalHours)},
		{"Min monthly revenue", cli.FormatMoney(code, r.MinMonthlyRevenue)},
	}
}
