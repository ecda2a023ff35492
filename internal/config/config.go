// Package config loads and saves tarifa's TOML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Store backends.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Config holds all tarifa configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Store      StoreConfig      `toml:"store"`
	Appearance AppearanceConfig `toml:"appearance"`
	Report     ReportConfig     `toml:"report"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	Currency string `toml:"currency"` // currency for a fresh calculator state
}

// StoreConfig selects where the calculator state is persisted.
type StoreConfig struct {
	Backend       string `toml:"backend"`
	Path          string `toml:"path,omitempty"`
	RedisAddr     string `toml:"redis_addr,omitempty"`
	RedisPassword string `toml:"redis_password,omitempty"`
	RedisDB       int    `toml:"redis_db"`
	KeyPrefix     string `toml:"key_prefix"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// ReportConfig holds the branding and destination of exported reports.
type ReportConfig struct {
	Brand     string `toml:"brand"`
	Handle    string `toml:"handle,omitempty"`
	OutputDir string `toml:"output_dir,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			Currency: "USD",
		},
		Store: StoreConfig{
			Backend:   BackendSQLite,
			RedisAddr: "localhost:6379",
			KeyPrefix: "tarifa:",
		},
		Appearance: AppearanceConfig{
			Theme: "tarifa-dark",
		},
		Report: ReportConfig{
			Brand: "tarifa",
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "tarifa")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "tarifa")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// DataDir returns the XDG-compliant data directory for the state database.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "tarifa")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "tarifa")
}

// StatePath returns the SQLite state path, honouring store.path.
func StatePath(cfg Config) string {
	if cfg.Store.Path != "" {
		return cfg.Store.Path
	}
	return filepath.Join(DataDir(), "state.db")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	return LoadFile(ConfigPath())
}

// LoadFile reads the config at path, returning defaults if it doesn't exist.
func LoadFile(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path) //nolint:gosec // path is the user's own config file
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	return SaveFile(ConfigPath(), cfg)
}

// SaveFile writes the config to path, creating its directory.
func SaveFile(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600) //nolint:gosec // path is the user's own config file
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// GetRedisAddr returns the Redis address from env var or config, in that order.
func GetRedisAddr(cfg Config) string {
	if addr := os.Getenv("TARIFA_REDIS_ADDR"); addr != "" {
		return addr
	}
	return cfg.Store.RedisAddr
}

// GetRedisPassword returns the Redis password from env var or config, in that order.
func GetRedisPassword(cfg Config) string {
	if pw := os.Getenv("TARIFA_REDIS_PASSWORD"); pw != "" {
		return pw
	}
	return cfg.Store.RedisPassword
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}
