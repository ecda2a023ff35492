package cmd

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/theirongolddev/tarifa/internal/cli"
	"github.com/theirongolddev/tarifa/internal/model"
	"github.com/theirongolddev/tarifa/internal/pipeline"
	"github.com/theirongolddev/tarifa/internal/state"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var (
	flagLogName    string
	flagLogPrice   string
	flagLogHours   string
	flagLogDate    string
	flagLogMonth   string
	flagLogProject string
	flagLogYes     bool
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Record finished projects and see how they paid off",
	RunE:  runLogList,
}

var logAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Log a finished project",
	Args:  cobra.NoArgs,
	RunE:  runLogAdd,
}

var logListCmd = &cobra.Command{
	Use:   "list",
	Short: "List logged projects with their real hourly rate",
	Args:  cobra.NoArgs,
	RunE:  runLogList,
}

var logRmCmd = &cobra.Command{
	Use:   "rm ID",
	Short: "Delete a logged project (an unambiguous ID prefix is enough)",
	Args:  cobra.ExactArgs(1),
	RunE:  runLogRm,
}

var logClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every logged project",
	Args:  cobra.NoArgs,
	RunE:  runLogClear,
}

var logMonthsCmd = &cobra.Command{
	Use:   "months",
	Short: "Per-month totals",
	Args:  cobra.NoArgs,
	RunE:  runLogMonths,
}

func init() {
	logAddCmd.Flags().StringVar(&flagLogName, "name", "", "Project name (default \""+state.DefaultProjectName+"\")")
	logAddCmd.Flags().StringVar(&flagLogPrice, "price", "0", "Price charged")
	logAddCmd.Flags().StringVar(&flagLogHours, "hours", "0", "Hours spent")
	logAddCmd.Flags().StringVar(&flagLogDate, "date", "", "Date as YYYY-MM-DD (default today)")

	for _, c := range []*cobra.Command{logCmd, logListCmd} {
		c.Flags().StringVar(&flagLogMonth, "month", "", "Only this month (YYYY-MM)")
		c.Flags().StringVar(&flagLogProject, "project", "", "Only projects whose name contains this text")
	}

	logClearCmd.Flags().BoolVarP(&flagLogYes, "yes", "y", false, "Do not ask for confirmation")

	logCmd.AddCommand(logAddCmd, logListCmd, logRmCmd, logClearCmd, logMonthsCmd)
	rootCmd.AddCommand(logCmd)
}

func runLogAdd(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	p, err := s.ctrl.AddProject(cmd.Context(), state.NewProject{
		Name:  flagLogName,
		Price: flagLogPrice,
		Hours: flagLogHours,
		Date:  flagLogDate,
	})
	if err != nil {
		return fmt.Errorf("saving log: %w", err)
	}

	code := s.ctrl.Form().Currency
	minHourly := s.ctrl.Rates().MinHourlyRate
	rh := pipeline.RealHourly(p)

	fmt.Printf("  Logged %s (%s): %s for %s\n", p.Name, p.Date,
		cli.FormatMoney(code, p.Price), cli.FormatHours(p.Hours))
	if p.Hours > 0 {
		fmt.Printf("  Real hourly %s, %s vs your minimum\n",
			cli.FormatMoney(code, rh),
			cli.RenderSigned(cli.FormatSignedMoney(code, rh-minHourly), rh-minHourly))
	}
	return nil
}

func runLogList(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	code := s.ctrl.Form().Currency
	minHourly := s.ctrl.Rates().MinHourlyRate

	entries := pipeline.FilterByMonth(s.ctrl.Log(), flagLogMonth)
	entries = pipeline.FilterByName(entries, flagLogProject)

	if len(entries) == 0 {
		fmt.Println("\n  No projects logged.")
		fmt.Println("  Add one with `tarifa log add --name Logo --price 400 --hours 8`.")
		return nil
	}

	rows := make([][]string, 0, len(entries))
	for _, p := range entries {
		rh := pipeline.RealHourly(p)
		rows = append(rows, []string{
			shortID(p.ID),
			p.Date,
			p.Name,
			cli.FormatMoney(code, p.Price),
			cli.FormatHours(p.Hours),
			cli.FormatMoney(code, rh),
		})
	}

	title := "PROJECT LOG"
	if flagLogMonth != "" {
		title += "  " + flagLogMonth
	}
	fmt.Println()
	fmt.Println(cli.RenderTitle(title))
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"ID", "Date", "Project", "Price", "Hours", "Real/h"},
		Rows:    rows,
	}))
	fmt.Println()

	r := pipeline.Aggregate(entries, minHourly)
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Summary",
		Headers: []string{"Metric", "Value"},
		Rows:    summaryRows(code, minHourly, r),
	}))
	return nil
}

func summaryRows(code string, minHourly float64, r model.LogRollup) [][]string {
	return [][]string{
		{"Projects", cli.FormatNumber(int64(r.Projects))},
		{"Hours", cli.FormatHours(r.Hours)},
		{"Revenue", cli.FormatMoney(code, r.Revenue)},
		{"---"},
		{"Avg real hourly", cli.FormatMoney(code, r.AvgRealHourly)},
		{"Min hourly rate", cli.FormatMoney(code, minHourly)},
		{"Difference", cli.FormatSignedMoney(code, r.AvgDeviation)},
		{"---"},
		{"Above minimum", cli.RenderProgressBar(r.PctAbove, 20)},
		{"Below minimum", cli.RenderProgressBar(r.PctBelow, 20)},
	}
}

// shortID abbreviates a log id for display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// resolveID finds the single log entry whose id starts with prefix.
func resolveID(log []model.LoggedProject, prefix string) (model.LoggedProject, error) {
	var matches []model.LoggedProject
	for _, p := range log {
		if p.ID == prefix {
			return p, nil
		}
		if strings.HasPrefix(p.ID, prefix) {
			matches = append(matches, p)
		}
	}
	switch len(matches) {
	case 0:
		return model.LoggedProject{}, fmt.Errorf("%w: %s", state.ErrNotFound, prefix)
	case 1:
		return matches[0], nil
	}
	return model.LoggedProject{}, fmt.Errorf("id prefix %q matches %d projects", prefix, len(matches))
}

func runLogRm(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	p, err := resolveID(s.ctrl.Log(), args[0])
	if err != nil {
		return err
	}
	if err := s.ctrl.DeleteProject(cmd.Context(), p.ID); err != nil {
		return fmt.Errorf("saving log: %w", err)
	}
	fmt.Printf("  Deleted %s (%s).\n", p.Name, p.Date)
	return nil
}

func runLogClear(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	n := len(s.ctrl.Log())
	if n == 0 {
		fmt.Println("  The log is already empty.")
		return nil
	}

	if !flagLogYes {
		confirmed := false
		err := huh.NewConfirm().
			Title(fmt.Sprintf("Delete all %d logged projects?", n)).
			Affirmative("Yes").
			Negative("No").
			Value(&confirmed).
			Run()
		if errors.Is(err, huh.ErrUserAborted) || (err == nil && !confirmed) {
			fmt.Println("  Nothing deleted.")
			return nil
		}
		if err != nil {
			return fmt.Errorf("asking for confirmation (use --yes to skip): %w", err)
		}
	}

	if err := s.ctrl.ClearLog(cmd.Context()); err != nil {
		return fmt.Errorf("saving log: %w", err)
	}
	fmt.Printf("  Deleted %d projects.\n", n)
	return nil
}

func runLogMonths(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	months := s.ctrl.Months()
	if len(months) == 0 {
		fmt.Println("\n  No projects logged.")
		return nil
	}
	code := s.ctrl.Form().Currency
	target := s.ctrl.Rates().MinMonthlyRevenue

	rows := make([][]string, 0, len(months))
	revenue := make([]float64, 0, len(months))
	peak := target
	for _, m := range months {
		r := m.Rollup
		rows = append(rows, []string{
			m.Month,
			cli.FormatNumber(int64(r.Projects)),
			cli.FormatHours(r.Hours),
			cli.FormatMoney(code, r.Revenue),
			cli.FormatMoney(code, r.AvgRealHourly),
			cli.FormatPercent(r.PctAbove),
		})
		if m.Month != model.UnknownMonth {
			revenue = append(revenue, r.Revenue)
		}
		peak = max(peak, r.Revenue)
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("MONTHLY TOTALS"))
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Month", "Projects", "Hours", "Revenue", "Avg real/h", "Above min"},
		Rows:    rows,
	}))
	fmt.Println()

	// Oldest month first reads left to right.
	slices.Reverse(revenue)
	fmt.Printf("  Revenue trend  %s\n\n", cli.RenderSparkline(revenue))

	fmt.Println(cli.RenderHorizontalBar(fmt.Sprintf("%-8s", "minimum"), target, peak, 40) +
		" " + cli.RenderMuted(cli.FormatMoney(code, target)))
	for _, m := range months {
		if m.Month == model.UnknownMonth {
			continue
		}
		fmt.Println(cli.RenderHorizontalBar(m.Month+" ", m.Rollup.Revenue, peak, 40) +
			" " + cli.FormatMoney(code, m.Rollup.Revenue))
	}
	return nil
}
