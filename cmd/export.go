package cmd

import (
	"fmt"

	"github.com/theirongolddev/tarifa/internal/export"

	"github.com/spf13/cobra"
)

var flagOutput string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export your numbers as CSV or a printable HTML report",
}

var exportCSVCmd = &cobra.Command{
	Use:   "csv",
	Short: "Write inputs, results and the project log as CSV",
	Args:  cobra.NoArgs,
	RunE:  runExportCSV,
}

var exportReportCmd = &cobra.Command{
	Use:   "report",
	Short: "Write a branded HTML report ready to print as PDF",
	Args:  cobra.NoArgs,
	RunE:  runExportReport,
}

func init() {
	for _, c := range []*cobra.Command{exportCSVCmd, exportReportCmd} {
		c.Flags().StringVarP(&flagOutput, "output", "o", "", "Output file (default in report.output_dir or the current directory)")
	}
	exportCmd.AddCommand(exportCSVCmd, exportReportCmd)
	rootCmd.AddCommand(exportCmd)
}

func runExportCSV(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	path := export.Resolve(flagOutput, s.cfg.Report.OutputDir, export.CSVFilename)
	if err := export.SaveCSV(path, s.ctrl.Snapshot()); err != nil {
		return fmt.Errorf("exporting csv: %w", err)
	}
	fmt.Printf("  Wrote %s\n", path)
	return nil
}

func runExportReport(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	path := export.Resolve(flagOutput, s.cfg.Report.OutputDir, export.ReportFilename)
	data := s.ctrl.Report(s.cfg.Report.Brand, s.cfg.Report.Handle)
	if err := export.SaveReport(path, data); err != nil {
		return fmt.Errorf("exporting report: %w", err)
	}
	fmt.Printf("  Wrote %s\n", path)
	fmt.Println("  Open it in a browser and print to PDF.")
	return nil
}
