// Package cmd implements the tarifa CLI commands.
package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/theirongolddev/tarifa/internal/config"
	"github.com/theirongolddev/tarifa/internal/state"
	"github.com/theirongolddev/tarifa/internal/store"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	flagSeed    string
	flagStore   string
	flagDB      string
	flagQuiet   bool
	flagVerbose bool
)

const openTimeout = 5 * time.Second

var rootCmd = &cobra.Command{
	Use:   "tarifa",
	Short: "Freelance pricing calculator",
	Long: "Work out the minimum hourly rate and project price you need to hit a monthly target,\n" +
		"log what you actually charged, and check quotes before you send them.",
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		setupLogging()
	},
	RunE: runRates,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagSeed, "seed", "", `Initial values as a query string, e.g. "monthly_target=2000&currency=EUR"`)
	rootCmd.PersistentFlags().StringVar(&flagStore, "store", "", "State backend: sqlite, redis or memory (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "SQLite state file (default from config)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Only log errors")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log what is loaded and saved")
}

func setupLogging() {
	logrus.SetOutput(os.Stderr)
	logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	switch {
	case flagQuiet:
		logrus.SetLevel(logrus.ErrorLevel)
	case flagVerbose:
		logrus.SetLevel(logrus.InfoLevel)
	default:
		logrus.SetLevel(logrus.WarnLevel)
	}
}

// session is the shared state every command works on.
type session struct {
	cfg     config.Config
	ctrl    *state.Controller
	backend string // backend actually in use
}

func (s *session) Close() {
	if err := s.ctrl.Close(); err != nil {
		logrus.Warnf("closing store: %v", err)
	}
}

// loadConfig loads the config file, falling back to defaults so a broken
// file never blocks the calculator.
func loadConfig() config.Config {
	cfg, err := config.Load()
	if err != nil {
		logrus.Warnf("%v; using defaults", err)
		return config.DefaultConfig()
	}
	return cfg
}

// openSession opens the configured store and loads the calculator state.
// A store that cannot be opened degrades to memory with a warning.
func openSession(ctx context.Context) (*session, error) {
	cfg := loadConfig()
	if flagStore != "" {
		cfg.Store.Backend = flagStore
	}
	if flagDB != "" {
		cfg.Store.Path = flagDB
	}

	kv, err := openStore(ctx, cfg)
	backend := cfg.Store.Backend
	if err != nil {
		logrus.Warnf("%v; changes will not be saved", err)
		kv = store.NewMemory()
		backend = config.BackendMemory
	}

	seed, err := state.ParseSeed(flagSeed)
	if err != nil {
		_ = kv.Close()
		return nil, err
	}

	ctrl, err := state.Open(ctx, kv, seedWithDefaults(cfg, seed), state.WithLogger(logrus.StandardLogger()))
	if err != nil {
		_ = kv.Close()
		return nil, err
	}

	return &session{cfg: cfg, ctrl: ctrl, backend: backend}, nil
}

func openStore(ctx context.Context, cfg config.Config) (store.KV, error) {
	switch cfg.Store.Backend {
	case config.BackendMemory:
		return store.NewMemory(), nil

	case config.BackendRedis:
		ctx, cancel := context.WithTimeout(ctx, openTimeout)
		defer cancel()
		kv, err := store.OpenRedis(ctx, store.RedisOptions{
			Addr:     config.GetRedisAddr(cfg),
			Password: config.GetRedisPassword(cfg),
			DB:       cfg.Store.RedisDB,
			Prefix:   cfg.Store.KeyPrefix,
		})
		if err != nil {
			return nil, err
		}
		logrus.Infof("state in redis %s (prefix %q)", config.GetRedisAddr(cfg), cfg.Store.KeyPrefix)
		return kv, nil

	case config.BackendSQLite, "":
		path := config.StatePath(cfg)
		kv, err := store.OpenSQLite(path)
		if err != nil {
			return nil, err
		}
		logrus.Infof("state in %s", path)
		return kv, nil
	}
	return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
}

// seedWithDefaults puts the configured currency under the user's seed.
func seedWithDefaults(cfg config.Config, seed map[string]string) map[string]string {
	merged := make(map[string]string, len(seed)+1)
	if cfg.General.Currency != "" {
		merged[state.KeyCurrency] = cfg.General.Currency
	}
	for k, v := range seed {
		merged[k] = v
	}
	return merged
}
