package cmd

import (
	"fmt"
	"os"

	"github.com/theirongolddev/tarifa/internal/config"
	"github.com/theirongolddev/tarifa/internal/store"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Currency: %s\n", cfg.General.Currency)
	fmt.Println()

	fmt.Println("  [Store]")
	fmt.Printf("    Backend:    %s\n", cfg.Store.Backend)
	switch cfg.Store.Backend {
	case config.BackendRedis:
		fmt.Printf("    Address:    %s (db %d)\n", config.GetRedisAddr(cfg), cfg.Store.RedisDB)
		fmt.Printf("    Key prefix: %q\n", cfg.Store.KeyPrefix)
		if pw := config.GetRedisPassword(cfg); pw != "" {
			fmt.Printf("    Password:   %s\n", maskSecret(pw))
		} else {
			fmt.Println("    Password:   not configured")
		}
	case config.BackendMemory:
		fmt.Println("    Nothing is saved between runs.")
	default:
		path := config.StatePath(cfg)
		fmt.Printf("    State file: %s\n", path)
		fmt.Printf("    Last saved: %s\n", lastSaved(cmd, path))
	}
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  [Report]")
	fmt.Printf("    Brand:      %s\n", cfg.Report.Brand)
	if cfg.Report.Handle != "" {
		fmt.Printf("    Handle:     %s\n", cfg.Report.Handle)
	}
	if cfg.Report.OutputDir != "" {
		fmt.Printf("    Output dir: %s\n", cfg.Report.OutputDir)
	} else {
		fmt.Println("    Output dir: current directory")
	}
	fmt.Println()

	fmt.Println("  Run `tarifa setup` to reconfigure.")
	return nil
}

// lastSaved reports when the calculator state was last written to path.
func lastSaved(cmd *cobra.Command, path string) string {
	if _, err := os.Stat(path); err != nil {
		return "never"
	}
	db, err := store.OpenSQLite(path)
	if err != nil {
		return "unknown (" + err.Error() + ")"
	}
	defer db.Close()

	at, err := db.UpdatedAt(cmd.Context(), store.KeyState)
	if err != nil {
		return "unknown (" + err.Error() + ")"
	}
	if at.IsZero() {
		return "never"
	}
	return humanize.Time(at)
}
