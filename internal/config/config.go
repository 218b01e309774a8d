// Package config loads the bot configuration from defaults, an optional TOML
// file, a .env file and the environment, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// DefaultConfigFile is read when CONFIG_FILE is not set and the file exists
const DefaultConfigFile = "config.toml"

// Config represents the application configuration
type Config struct {
	Telegram  TelegramConfig  `toml:"telegram"`
	Database  DatabaseConfig  `toml:"database"`
	Seed      SeedConfig      `toml:"seed"`
	Scheduler SchedulerConfig `toml:"scheduler"`
	// IANA zone used to decide which day a review belongs to
	Timezone string `toml:"timezone" validate:"required"`
}

// TelegramConfig contains the bot credentials
type TelegramConfig struct {
	Token string `toml:"token" validate:"required"`
	// Only this user may talk to the bot; 0 allows anyone
	OwnerID int64 `toml:"owner_id" validate:"gte=0"`
	// Long polling timeout in seconds
	PollTimeout int `toml:"poll_timeout" validate:"gte=0,lte=600"`
}

// DatabaseConfig selects the key-value store backend
type DatabaseConfig struct {
	Driver  string `toml:"driver" validate:"oneof=sqlite3 postgres"`
	URL     string `toml:"url" validate:"required_if=Driver postgres"`
	DataDir string `toml:"data_dir"`
}

// SeedConfig points at an optional spreadsheet with the starting vocabulary
type SeedConfig struct {
	File  string `toml:"file"`
	// Empty reads the active sheet
	Sheet string `toml:"sheet"`
}

// SchedulerConfig controls the daily summary
type SchedulerConfig struct {
	Enabled     bool `toml:"enabled"`
	SummaryHour int  `toml:"summary_hour" validate:"gte=0,lte=23"`
}

var validate = validator.New()

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Telegram: TelegramConfig{
			PollTimeout: 60,
		},
		Database: DatabaseConfig{
			Driver:  "sqlite3",
			DataDir: "data",
		},
		Scheduler: SchedulerConfig{
			Enabled:     true,
			SummaryHour: 20,
		},
		Timezone: "UTC",
	}
}

// Load builds the configuration and validates it
func Load() (*Config, error) {
	// A missing .env file is not an error
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Warning: could not read .env file: %v", err)
	}

	cfg := DefaultConfig()

	path := os.Getenv("CONFIG_FILE")
	required := path != ""
	if path == "" {
		path = DefaultConfigFile
	}
	if err := cfg.loadFile(path, required); err != nil {
		return nil, err
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadFile decodes a TOML file over the current values
func (c *Config) loadFile(path string, required bool) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) && !required {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	if err := toml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

// applyEnv overrides values with the environment variables that are set
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}

	str("TELEGRAM_BOT_TOKEN", &c.Telegram.Token)
	str("DATABASE_DRIVER", &c.Database.Driver)
	str("DATABASE_URL", &c.Database.URL)
	str("DATA_DIR", &c.Database.DataDir)
	str("SEED_FILE", &c.Seed.File)
	str("SEED_SHEET", &c.Seed.Sheet)
	str("TIMEZONE", &c.Timezone)

	if v, ok := lookup("OWNER_USER_ID"); ok && v != "" {
		id, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return fmt.Errorf("invalid OWNER_USER_ID %q: %w", v, err)
		}
		c.Telegram.OwnerID = id
	}

	if v, ok := lookup("ENABLE_SCHEDULER"); ok && v != "" {
		enabled, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid ENABLE_SCHEDULER %q: %w", v, err)
		}
		c.Scheduler.Enabled = enabled
	}

	if v, ok := lookup("SUMMARY_HOUR"); ok && v != "" {
		hour, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid SUMMARY_HOUR %q: %w", v, err)
		}
		c.Scheduler.SummaryHour = hour
	}

	return nil
}

// Validate checks the configuration for missing or out-of-range values
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// Location returns the configured time zone
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("unknown timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}
