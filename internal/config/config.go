// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

type DatabaseConfig struct {
	Driver   string `yaml:"driver"`
	Filename string `yaml:"filename"`
	// Milliseconds a writer waits on SQLite's lock before failing.
	BusyTimeoutMS int `yaml:"busy_timeout_ms"`
}

// StateChangePolicy controls how far the administrative reservation state
// editor may go beyond the self-service cancel path.
type StateChangePolicy struct {
	GuardPastCancellation bool `yaml:"guard_past_cancellation"`
	AllowReactivation     bool `yaml:"allow_reactivation"`
}

type BookingConfig struct {
	Timezone         string            `yaml:"timezone"`
	Opening          string            `yaml:"opening"`
	Closing          string            `yaml:"closing"`
	SlotMinutes      int               `yaml:"slot_minutes"`
	Durations        []int             `yaml:"durations"`
	AdminStateChange StateChangePolicy `yaml:"admin_state_change"`
}

type SessionConfig struct {
	TTL string `yaml:"ttl"`
}

type SchedulerConfig struct {
	FinishReservationsCron string `yaml:"finish_reservations_cron"`
	PruneSessionsCron      string `yaml:"prune_sessions_cron"`
}

type EmailConfig struct {
	Region          string `yaml:"region"`
	Sender          string `yaml:"sender"`
	AccessKeyID     string `yaml:"-"` // Loaded from environment
	SecretAccessKey string `yaml:"-"` // Loaded from environment
}

// Enabled reports whether enough is configured to send mail through SES.
func (e EmailConfig) Enabled() bool {
	return e.Region != "" && e.Sender != "" && e.AccessKeyID != "" && e.SecretAccessKey != ""
}

type Config struct {
	App struct {
		Name        string `yaml:"name"`
		Environment string `yaml:"environment"`
		Port        int    `yaml:"port"`
		BaseURL     string `yaml:"base_url"`
		TrustProxy  bool   `yaml:"trust_proxy"`
		SecretKey   string `yaml:"-"` // Loaded from environment
	} `yaml:"app"`

	Database  DatabaseConfig  `yaml:"database"`
	Booking   BookingConfig   `yaml:"booking"`
	Session   SessionConfig   `yaml:"session"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	Email     EmailConfig     `yaml:"email"`

	Profile struct {
		DefaultPhoneRegion string `yaml:"default_phone_region"`
	} `yaml:"profile"`

	Features struct {
		EnableMetrics bool `yaml:"enable_metrics"`
		EnableDebug   bool `yaml:"enable_debug"`
	} `yaml:"features"`
}

// Default returns the configuration used for any key the YAML file omits.
func Default() *Config {
	var cfg Config
	cfg.App.Name = "Court & Play"
	cfg.App.Environment = "development"
	cfg.App.Port = 8080
	cfg.Database = DatabaseConfig{
		Driver:        "sqlite",
		Filename:      "data/courtplay.db",
		BusyTimeoutMS: 5000,
	}
	cfg.Booking = BookingConfig{
		Timezone:    "Europe/Prague",
		Opening:     "07:00",
		Closing:     "22:00",
		SlotMinutes: 30,
		Durations:   []int{60, 90, 120},
	}
	cfg.Session.TTL = "8h"
	cfg.Scheduler = SchedulerConfig{
		FinishReservationsCron: "*/15 * * * *",
		PruneSessionsCron:      "*/15 * * * *",
	}
	cfg.Profile.DefaultPhoneRegion = "CZ"
	return &cfg
}

// Load loads both .env and yaml configuration
func Load(configPath string) (*Config, error) {
	// Load .env file if it exists
	envPath := filepath.Join(filepath.Dir(configPath), ".env")
	if err := godotenv.Load(envPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}

	// Load sensitive values from environment
	cfg.App.SecretKey = os.Getenv("APP_SECRET_KEY")
	cfg.Email.AccessKeyID = os.Getenv("AWS_ACCESS_KEY_ID")
	cfg.Email.SecretAccessKey = os.Getenv("AWS_SECRET_ACCESS_KEY")

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Parse decodes YAML over Default without touching the environment.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.App.Name == "" {
		return fmt.Errorf("app name is required")
	}
	if c.App.Port == 0 {
		return fmt.Errorf("app port is required")
	}
	if c.Database.Driver == "" {
		return fmt.Errorf("database driver is required")
	}

	switch c.Database.Driver {
	case "sqlite":
		if c.Database.Filename == "" {
			return fmt.Errorf("database filename is required for sqlite")
		}
	default:
		return fmt.Errorf("unsupported database driver: %s", c.Database.Driver)
	}

	if err := c.Booking.validate(); err != nil {
		return err
	}

	if _, err := c.SessionTTL(); err != nil {
		return err
	}

	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	for name, expr := range map[string]string{
		"scheduler.finish_reservations_cron": c.Scheduler.FinishReservationsCron,
		"scheduler.prune_sessions_cron":      c.Scheduler.PruneSessionsCron,
	} {
		if strings.TrimSpace(expr) == "" {
			continue
		}
		if _, err := parser.Parse(expr); err != nil {
			return fmt.Errorf("%s: invalid cron expression %q: %w", name, expr, err)
		}
	}

	return nil
}

func (b BookingConfig) validate() error {
	if _, err := time.LoadLocation(b.Timezone); err != nil {
		return fmt.Errorf("booking timezone %q: %w", b.Timezone, err)
	}
	opening, err := parseClock(b.Opening)
	if err != nil {
		return fmt.Errorf("booking opening: %w", err)
	}
	closing, err := parseClock(b.Closing)
	if err != nil {
		return fmt.Errorf("booking closing: %w", err)
	}
	if opening >= closing {
		return fmt.Errorf("booking opening %s must be before closing %s", b.Opening, b.Closing)
	}
	if b.SlotMinutes <= 0 {
		return fmt.Errorf("booking slot_minutes must be positive")
	}
	if len(b.Durations) == 0 {
		return fmt.Errorf("booking durations are required")
	}
	for _, d := range b.Durations {
		if d <= 0 || d%b.SlotMinutes != 0 {
			return fmt.Errorf("booking duration %d must be a positive multiple of %d", d, b.SlotMinutes)
		}
	}
	return nil
}

// Location returns the booking time zone. Validate guarantees it loads.
func (b BookingConfig) Location() *time.Location {
	loc, err := time.LoadLocation(b.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// SessionTTL parses session.ttl.
func (c *Config) SessionTTL() (time.Duration, error) {
	ttl, err := time.ParseDuration(c.Session.TTL)
	if err != nil {
		return 0, fmt.Errorf("session ttl %q: %w", c.Session.TTL, err)
	}
	if ttl <= 0 {
		return 0, fmt.Errorf("session ttl must be positive")
	}
	return ttl, nil
}

// parseClock returns minutes since midnight for an "HH:MM" value; "24:00" is accepted.
func parseClock(value string) (int, error) {
	if len(value) != 5 || value[2] != ':' || strings.ContainsAny(value, "+- ") {
		return 0, fmt.Errorf("invalid time of day %q", value)
	}
	h, errH := strconv.Atoi(value[:2])
	m, errM := strconv.Atoi(value[3:])
	if errH != nil || errM != nil {
		return 0, fmt.Errorf("invalid time of day %q", value)
	}
	if h < 0 || m < 0 || m > 59 || h > 24 || (h == 24 && m != 0) {
		return 0, fmt.Errorf("invalid time of day %q", value)
	}
	return h*60 + m, nil
}
