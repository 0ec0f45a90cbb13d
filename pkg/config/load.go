package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of every environment variable override.
const EnvPrefix = "ADVENT_"

// LoadConfig loads configuration from a YAML file at the specified path.
// It applies default values, validates the configuration, and returns any errors.
// The configuration is not modified by environment variables; use LoadConfigWithEnvOverrides
// for that functionality.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	cfg, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and applies
// environment variable overrides. Environment variables follow the naming
// convention ADVENT_SECTION_FIELD (e.g., ADVENT_HISTORY_DRIVER).
// Environment variables always take precedence over file-based configuration.
//
// The loading sequence is:
// 1. Load YAML from file
// 2. Apply default values
// 3. Apply environment variable overrides
// 4. Validate final configuration
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// LoadOrDefault behaves like LoadConfigWithEnvOverrides but falls back to
// the defaults when the file does not exist. Any other read error is returned.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := LoadConfigWithEnvOverrides(path)
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	cfg = Default()
	applyEnvOverrides(cfg)
	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}
	return cfg, nil
}

// parse decodes YAML on top of the defaults so that booleans defaulting to
// true can still be switched off explicitly.
func parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	ApplyDefaults(cfg)
	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Values that fail to parse are ignored.
func applyEnvOverrides(cfg *Config) {
	// Puzzle overrides
	if val := os.Getenv(EnvPrefix + "PUZZLES_EXPENSE_INPUT"); val != "" {
		cfg.Puzzles.Expense.Input = val
	}
	if val := os.Getenv(EnvPrefix + "PUZZLES_EXPENSE_TARGET"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Puzzles.Expense.Target = i
		}
	}
	if val := os.Getenv(EnvPrefix + "PUZZLES_PASSWORDS_INPUT"); val != "" {
		cfg.Puzzles.Passwords.Input = val
	}
	if val := os.Getenv(EnvPrefix + "PUZZLES_PASSWORDS_KINDS"); val != "" {
		cfg.Puzzles.Passwords.Kinds = splitList(val)
	}
	if val := os.Getenv(EnvPrefix + "PUZZLES_PASSWORDS_KEEP_GOING"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Puzzles.Passwords.KeepGoing = b
		}
	}
	if val := os.Getenv(EnvPrefix + "PUZZLES_TOBOGGAN_INPUT"); val != "" {
		cfg.Puzzles.Toboggan.Input = val
	}
	if val := os.Getenv(EnvPrefix + "PUZZLES_TOBOGGAN_MARKER"); val != "" {
		cfg.Puzzles.Toboggan.Marker = val
	}

	// History overrides
	if val := os.Getenv(EnvPrefix + "HISTORY_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.History.Enabled = b
		}
	}
	if val := os.Getenv(EnvPrefix + "HISTORY_DRIVER"); val != "" {
		cfg.History.Driver = val
	}
	if val := os.Getenv(EnvPrefix + "HISTORY_PATH"); val != "" {
		cfg.History.Path = val
	}
	if val := os.Getenv(EnvPrefix + "HISTORY_BUSY_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.History.BusyTimeout = d
		}
	}
	if val := os.Getenv(EnvPrefix + "HISTORY_RETENTION_DAYS"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.History.Retention.Days = i
		}
	}
	if val := os.Getenv(EnvPrefix + "HISTORY_RETENTION_MAX_RECORDS"); val != "" {
		if i, err := strconv.ParseInt(val, 10, 64); err == nil {
			cfg.History.Retention.MaxRecords = i
		}
	}
	if val := os.Getenv(EnvPrefix + "HISTORY_RETENTION_SCHEDULE"); val != "" {
		cfg.History.Retention.Schedule = val
	}

	// Watch overrides
	if val := os.Getenv(EnvPrefix + "WATCH_DEBOUNCE"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Watch.Debounce = d
		}
	}

	// Telemetry overrides
	if val := os.Getenv(EnvPrefix + "TELEMETRY_LOGGING_LEVEL"); val != "" {
		cfg.Telemetry.Logging.Level = val
	}
	if val := os.Getenv(EnvPrefix + "TELEMETRY_LOGGING_FORMAT"); val != "" {
		cfg.Telemetry.Logging.Format = val
	}
	if val := os.Getenv(EnvPrefix + "TELEMETRY_METRICS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Metrics.Enabled = b
		}
	}
	if val := os.Getenv(EnvPrefix + "TELEMETRY_METRICS_TEXTFILE"); val != "" {
		cfg.Telemetry.Metrics.Textfile = val
	}
	if val := os.Getenv(EnvPrefix + "TELEMETRY_TRACING_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Tracing.Enabled = b
		}
	}
	if val := os.Getenv(EnvPrefix + "TELEMETRY_TRACING_EXPORTER"); val != "" {
		cfg.Telemetry.Tracing.Exporter = val
	}
	if val := os.Getenv(EnvPrefix + "TELEMETRY_TRACING_ENDPOINT"); val != "" {
		cfg.Telemetry.Tracing.Endpoint = val
	}
	if val := os.Getenv(EnvPrefix + "TELEMETRY_TRACING_SAMPLE_RATIO"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			cfg.Telemetry.Tracing.SampleRatio = f
		}
	}
}

func splitList(val string) []string {
	var out []string
	for _, part := range strings.Split(val, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
