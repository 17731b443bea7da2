// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/javiermolinar/salonboard/internal/booking"
	"github.com/javiermolinar/salonboard/internal/timegrid"
)

// Storage drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverHTTP     = "http"
)

// Config holds the application configuration.
type Config struct {
	Schedule ScheduleConfig `toml:"schedule"`
	Storage  StorageConfig  `toml:"storage"`
	Cache    CacheConfig    `toml:"cache"`
	UI       UIConfig       `toml:"ui"`
	Server   ServerConfig   `toml:"server"`
}

// ScheduleConfig holds the day board grid and workflow settings.
type ScheduleConfig struct {
	DomainStart        string `toml:"domain_start"`        // e.g., "08:00"
	DomainEnd          string `toml:"domain_end"`          // e.g., "20:00"
	GranularityMinutes int    `toml:"granularity_minutes"` // slot size
	SlotHeight         int    `toml:"slot_height"`         // terminal rows per slot
	HeaderHeight       int    `toml:"header_height"`       // rows above the grid body in each column
	DefaultDuration    int    `toml:"default_duration"`    // minutes; 0 uses the service duration
	RevertOnFailure    bool   `toml:"revert_on_failure"`   // roll back a move whose write failed
	OrphanCleanup      bool   `toml:"orphan_cleanup"`      // delete the customer if the booking insert fails
}

// StorageConfig selects and configures the booking store.
type StorageConfig struct {
	Driver             string  `toml:"driver"`  // "sqlite", "postgres", "http"
	DBPath             string  `toml:"db_path"` // sqlite
	DSN                string  `toml:"dsn"`     // postgres
	BaseURL            string  `toml:"base_url"`
	APIKey             string  `toml:"api_key"`
	TimeoutSeconds     int     `toml:"timeout_seconds"`
	RateLimitPerSecond float64 `toml:"rate_limit_per_second"` // 0 disables
}

// CacheConfig configures the optional Redis read cache for the http driver.
type CacheConfig struct {
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
	TTLSeconds    int    `toml:"ttl_seconds"`
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme   string   `toml:"theme"`   // "mocha", "macchiato", "frappe", "latte"
	Palette []string `toml:"palette"` // fallback resource colors; empty uses the built-in palette
}

// ServerConfig holds settings for the serve command.
type ServerConfig struct {
	Addr        string `toml:"addr"`
	MetricsPath string `toml:"metrics_path"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Schedule: ScheduleConfig{
			DomainStart:        "08:00",
			DomainEnd:          "20:00",
			GranularityMinutes: 30,
			SlotHeight:         2,
			HeaderHeight:       2,
		},
		Storage: StorageConfig{
			Driver:         DriverSQLite,
			DBPath:         defaultDBPath(),
			TimeoutSeconds: 10,
		},
		Cache: CacheConfig{
			TTLSeconds: 60,
		},
		UI: UIConfig{
			Theme: "frappe",
		},
		Server: ServerConfig{
			Addr:        ":8080",
			MetricsPath: "/metrics",
		},
	}
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "salonboard.db"
	}
	return filepath.Join(home, ".local", "share", "salonboard", "salonboard.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "salonboard", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, loads a .env
// file from the working directory without overriding the real environment,
// then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// loadDotEnv populates unset environment variables from path, if present.
func loadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) error {
	strs := []struct {
		key string
		dst *string
	}{
		{"SALONBOARD_DOMAIN_START", &cfg.Schedule.DomainStart},
		{"SALONBOARD_DOMAIN_END", &cfg.Schedule.DomainEnd},
		{"SALONBOARD_STORAGE_DRIVER", &cfg.Storage.Driver},
		{"SALONBOARD_DB_PATH", &cfg.Storage.DBPath},
		{"SALONBOARD_DSN", &cfg.Storage.DSN},
		{"SALONBOARD_BASE_URL", &cfg.Storage.BaseURL},
		{"SALONBOARD_API_KEY", &cfg.Storage.APIKey},
		{"SALONBOARD_REDIS_ADDR", &cfg.Cache.RedisAddr},
		{"SALONBOARD_REDIS_PASSWORD", &cfg.Cache.RedisPassword},
		{"SALONBOARD_UI_THEME", &cfg.UI.Theme},
		{"SALONBOARD_SERVER_ADDR", &cfg.Server.Addr},
	}
	for _, s := range strs {
		if v := os.Getenv(s.key); v != "" {
			*s.dst = v
		}
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"SALONBOARD_GRANULARITY_MINUTES", &cfg.Schedule.GranularityMinutes},
		{"SALONBOARD_SLOT_HEIGHT", &cfg.Schedule.SlotHeight},
		{"SALONBOARD_HEADER_HEIGHT", &cfg.Schedule.HeaderHeight},
		{"SALONBOARD_CACHE_TTL_SECONDS", &cfg.Cache.TTLSeconds},
		{"SALONBOARD_REDIS_DB", &cfg.Cache.RedisDB},
	}
	for _, i := range ints {
		v := os.Getenv(i.key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", i.key, err)
		}
		*i.dst = n
	}

	bools := []struct {
		key string
		dst *bool
	}{
		{"SALONBOARD_REVERT_ON_FAILURE", &cfg.Schedule.RevertOnFailure},
		{"SALONBOARD_ORPHAN_CLEANUP", &cfg.Schedule.OrphanCleanup},
	}
	for _, b := range bools {
		v := os.Getenv(b.key)
		if v == "" {
			continue
		}
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", b.key, err)
		}
		*b.dst = parsed
	}

	if v := os.Getenv("SALONBOARD_UI_PALETTE"); v != "" {
		cfg.UI.Palette = splitList(v)
	}
	return nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if _, err := c.GridParams(); err != nil {
		return err
	}
	if c.Schedule.HeaderHeight < 0 {
		return errors.New("header_height cannot be negative")
	}
	if c.Schedule.DefaultDuration < 0 {
		return errors.New("default_duration cannot be negative")
	}

	switch c.Storage.Driver {
	case DriverSQLite:
		if c.Storage.DBPath == "" {
			return errors.New("db_path must be set for the sqlite driver")
		}
	case DriverPostgres:
		if c.Storage.DSN == "" {
			return errors.New("dsn must be set for the postgres driver")
		}
	case DriverHTTP:
		if c.Storage.BaseURL == "" {
			return errors.New("base_url must be set for the http driver")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	if c.Storage.RateLimitPerSecond < 0 {
		return errors.New("rate_limit_per_second cannot be negative")
	}

	for _, color := range c.UI.Palette {
		if !booking.ValidColor(color) {
			return fmt.Errorf("palette: %w: %q", booking.ErrInvalidColor, color)
		}
	}
	return nil
}

// GridParams converts the schedule section into validated grid parameters.
func (c *Config) GridParams() (timegrid.Params, error) {
	start, err := booking.ParseClock(c.Schedule.DomainStart)
	if err != nil {
		return timegrid.Params{}, fmt.Errorf("domain_start must be in HH:MM format, got %q", c.Schedule.DomainStart)
	}
	end, err := booking.ParseClock(c.Schedule.DomainEnd)
	if err != nil {
		return timegrid.Params{}, fmt.Errorf("domain_end must be in HH:MM format, got %q", c.Schedule.DomainEnd)
	}
	p := timegrid.Params{
		DomainStart: start,
		DomainEnd:   end,
		Granularity: c.Schedule.GranularityMinutes,
		SlotHeight:  c.Schedule.SlotHeight,
	}
	if _, err := timegrid.New(p); err != nil {
		return timegrid.Params{}, err
	}
	return p, nil
}

// Grid builds the configured time grid.
func (c *Config) Grid() (timegrid.Grid, error) {
	p, err := c.GridParams()
	if err != nil {
		return timegrid.Grid{}, fmt.Errorf("invalid schedule: %w", err)
	}
	return timegrid.New(p)
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
