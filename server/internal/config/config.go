package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Default values for the server configuration.
const (
	DefaultHTTPPort        = 8080
	DefaultTimezone        = "UTC"
	DefaultLogLevel        = "info"
	DefaultProfileTTL      = 24 * time.Hour
	DefaultStreamInterval  = 30 * time.Second
	DefaultReminderLimit   = 64
	DefaultAppointmentLead = 24 * time.Hour
)

// Config holds the server-side configuration parsed from the `server:` section
// of config.yaml.
type Config struct {
	Server ServerConfig `yaml:"server"`
}

// ServerConfig holds all server-side settings.
type ServerConfig struct {
	// HTTPPort is the port the REST API, metrics and WebSocket hub listen on
	// (default 8080).
	HTTPPort int `yaml:"http_port"`

	// Timezone is the IANA zone whose calendar date counts as "today" when
	// computing vaccination status (default UTC).
	Timezone string `yaml:"timezone"`

	// LogLevel is one of: debug | info | warn | error. Applied again on every
	// hot reload.
	LogLevel string `yaml:"log_level"`

	// Profiles controls in-memory child profile retention.
	Profiles ProfilesConfig `yaml:"profiles"`

	// Stream controls the WebSocket dashboard broadcast.
	Stream StreamConfig `yaml:"stream"`

	// Reminders bounds reminder planning.
	Reminders RemindersConfig `yaml:"reminders"`
}

// ProfilesConfig controls the child profile store.
type ProfilesConfig struct {
	// TTL is how long a profile remains in the store after its last update.
	// Default: 24h.
	TTL time.Duration `yaml:"ttl"`
}

// StreamConfig controls the dashboard broadcast loop.
type StreamConfig struct {
	// Interval between dashboard broadcasts. Default: 30s.
	Interval time.Duration `yaml:"interval"`
}

// RemindersConfig bounds reminder planning.
type RemindersConfig struct {
	// MaxPerMedication caps planned reminders per medication. Default: 64.
	MaxPerMedication int `yaml:"max_per_medication"`

	// AppointmentLead is how long before an appointment its reminder fires.
	// Default: 24h.
	AppointmentLead time.Duration `yaml:"appointment_lead"`
}

// Location resolves Timezone. Validation guarantees it loads.
func (s ServerConfig) Location() *time.Location {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Level maps LogLevel to a slog.Level.
func (s ServerConfig) Level() slog.Level {
	lvl, _ := parseLevel(s.LogLevel)
	return lvl
}

// Load reads and parses the config file at path, returning the server configuration.
// Missing fields are filled with sensible defaults before validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("server config: read %q: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML config bytes, applying defaults and validation.
func Parse(data []byte) (*Config, error) {
	cfg := Defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("server config: parse yaml: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("server config: %w", err)
	}

	return cfg, nil
}

// Defaults returns a Config pre-populated with default values.
func Defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort: DefaultHTTPPort,
			Timezone: DefaultTimezone,
			LogLevel: DefaultLogLevel,
			Profiles: ProfilesConfig{
				TTL: DefaultProfileTTL,
			},
			Stream: StreamConfig{
				Interval: DefaultStreamInterval,
			},
			Reminders: RemindersConfig{
				MaxPerMedication: DefaultReminderLimit,
				AppointmentLead:  DefaultAppointmentLead,
			},
		},
	}
}

// validate checks structural constraints on the parsed configuration.
func validate(cfg *Config) error {
	s := cfg.Server
	if s.HTTPPort <= 0 || s.HTTPPort > 65535 {
		return fmt.Errorf("server.http_port %d is out of range [1, 65535]", s.HTTPPort)
	}
	if _, err := time.LoadLocation(s.Timezone); err != nil {
		return fmt.Errorf("server.timezone %q: %w", s.Timezone, err)
	}
	if _, ok := parseLevel(s.LogLevel); !ok {
		return fmt.Errorf("server.log_level %q unknown: want debug|info|warn|error", s.LogLevel)
	}
	if s.Profiles.TTL <= 0 {
		return fmt.Errorf("server.profiles.ttl must be positive")
	}
	if s.Stream.Interval <= 0 {
		return fmt.Errorf("server.stream.interval must be positive")
	}
	if s.Reminders.MaxPerMedication <= 0 {
		return fmt.Errorf("server.reminders.max_per_medication must be positive")
	}
	if s.Reminders.AppointmentLead < 0 {
		return fmt.Errorf("server.reminders.appointment_lead must not be negative")
	}
	return nil
}

func parseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, true
	case "info", "":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}
