package config

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// FieldError represents a validation error for a specific configuration field.
type FieldError struct {
	// Field is the dotted path to the configuration field (e.g., "history.driver").
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError represents one or more validation errors in a configuration.
// It implements the error interface and provides access to all field errors.
type ValidationError struct {
	// Errors contains all validation errors found in the configuration.
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("configuration validation failed with %d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// Validate validates the entire configuration and returns a ValidationError
// if any validation rules fail. It returns nil if the configuration is valid.
// All validation errors are collected and returned together.
func Validate(cfg *Config) error {
	var errs []FieldError

	errs = append(errs, validatePuzzles(&cfg.Puzzles)...)
	errs = append(errs, validateHistory(&cfg.History)...)
	errs = append(errs, validateWatch(&cfg.Watch)...)
	errs = append(errs, validateTelemetry(&cfg.Telemetry)...)

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}

	return nil
}

func validatePuzzles(cfg *PuzzlesConfig) []FieldError {
	var errs []FieldError

	if cfg.Expense.Target < 0 {
		errs = append(errs, FieldError{
			Field:   "puzzles.expense.target",
			Message: fmt.Sprintf("must be non-negative, got %d", cfg.Expense.Target),
		})
	}

	for i, kind := range cfg.Passwords.Kinds {
		if !isOneOf(strings.ToLower(kind), "count", "position") {
			errs = append(errs, FieldError{
				Field:   fmt.Sprintf("puzzles.passwords.kinds[%d]", i),
				Message: fmt.Sprintf("invalid rule kind %q (valid: count, position)", kind),
			})
		}
	}

	if utf8.RuneCountInString(cfg.Toboggan.Marker) != 1 {
		errs = append(errs, FieldError{
			Field:   "puzzles.toboggan.marker",
			Message: fmt.Sprintf("must be a single character, got %q", cfg.Toboggan.Marker),
		})
	}

	errs = append(errs, validateRoute("puzzles.toboggan.slope", cfg.Toboggan.Slope)...)
	for i, r := range cfg.Toboggan.Routes {
		errs = append(errs, validateRoute(fmt.Sprintf("puzzles.toboggan.routes[%d]", i), r)...)
	}

	return errs
}

func validateRoute(field string, r RouteConfig) []FieldError {
	var errs []FieldError
	if r.Right < 1 {
		errs = append(errs, FieldError{
			Field:   field + ".right",
			Message: fmt.Sprintf("must be positive, got %d", r.Right),
		})
	}
	if r.Down < 1 {
		errs = append(errs, FieldError{
			Field:   field + ".down",
			Message: fmt.Sprintf("must be positive, got %d", r.Down),
		})
	}
	return errs
}

func validateHistory(cfg *HistoryConfig) []FieldError {
	var errs []FieldError

	if !isOneOf(cfg.Driver, "sqlite", "sqlite3", "memory") {
		errs = append(errs, FieldError{
			Field:   "history.driver",
			Message: fmt.Sprintf("invalid driver %q (valid: sqlite, sqlite3, memory)", cfg.Driver),
		})
	}
	if cfg.Driver != "memory" && cfg.Path == "" {
		errs = append(errs, FieldError{
			Field:   "history.path",
			Message: "required for sqlite drivers",
		})
	}
	if cfg.MaxOpenConns < 0 {
		errs = append(errs, FieldError{
			Field:   "history.max_open_conns",
			Message: fmt.Sprintf("must be non-negative, got %d", cfg.MaxOpenConns),
		})
	}
	if cfg.BusyTimeout < 0 {
		errs = append(errs, FieldError{
			Field:   "history.busy_timeout",
			Message: "must be non-negative",
		})
	}
	if cfg.Retention.Days < 0 {
		errs = append(errs, FieldError{
			Field:   "history.retention.days",
			Message: fmt.Sprintf("must be non-negative, got %d", cfg.Retention.Days),
		})
	}
	if cfg.Retention.MaxRecords < 0 {
		errs = append(errs, FieldError{
			Field:   "history.retention.max_records",
			Message: fmt.Sprintf("must be non-negative, got %d", cfg.Retention.MaxRecords),
		})
	}

	return errs
}

func validateWatch(cfg *WatchConfig) []FieldError {
	if cfg.Debounce <= 0 {
		return []FieldError{{
			Field:   "watch.debounce",
			Message: "must be positive",
		}}
	}
	return nil
}

func validateTelemetry(cfg *TelemetryConfig) []FieldError {
	var errs []FieldError

	if !isOneOf(strings.ToLower(cfg.Logging.Level), "debug", "info", "warn", "warning", "error") {
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.level",
			Message: fmt.Sprintf("invalid level %q (valid: debug, info, warn, error)", cfg.Logging.Level),
		})
	}
	if !isOneOf(strings.ToLower(cfg.Logging.Format), "json", "text", "console") {
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.format",
			Message: fmt.Sprintf("invalid format %q (valid: json, text, console)", cfg.Logging.Format),
		})
	}

	if cfg.Metrics.Enabled && cfg.Metrics.Namespace == "" {
		errs = append(errs, FieldError{
			Field:   "telemetry.metrics.namespace",
			Message: "required when metrics are enabled",
		})
	}

	if cfg.Tracing.Enabled {
		if !isOneOf(cfg.Tracing.Exporter, "stdout", "otlp") {
			errs = append(errs, FieldError{
				Field:   "telemetry.tracing.exporter",
				Message: fmt.Sprintf("invalid exporter %q (valid: stdout, otlp)", cfg.Tracing.Exporter),
			})
		}
		if cfg.Tracing.Exporter == "otlp" && cfg.Tracing.Endpoint == "" {
			errs = append(errs, FieldError{
				Field:   "telemetry.tracing.endpoint",
				Message: "required for the otlp exporter",
			})
		}
	}
	if !isOneOf(cfg.Tracing.Sampler, "always", "never", "ratio") {
		errs = append(errs, FieldError{
			Field:   "telemetry.tracing.sampler",
			Message: fmt.Sprintf("invalid sampler %q (valid: always, never, ratio)", cfg.Tracing.Sampler),
		})
	}
	if cfg.Tracing.SampleRatio < 0 || cfg.Tracing.SampleRatio > 1 {
		errs = append(errs, FieldError{
			Field:   "telemetry.tracing.sample_ratio",
			Message: fmt.Sprintf("must be between 0 and 1, got %g", cfg.Tracing.SampleRatio),
		})
	}

	return errs
}

func isOneOf(val string, valid ...string) bool {
	for _, v := range valid {
		if val == v {
			return true
		}
	}
	return false
}
