package config

import "time"

// Default values for configuration fields.
const (
	// Puzzle defaults
	DefaultExpenseInput   = "input/day1.txt"
	DefaultExpenseTarget  = 2020
	DefaultPasswordsInput = "input/day2.txt"
	DefaultTobogganInput  = "input/day3.txt"
	DefaultTobogganMarker = "#"
	DefaultTobogganRight  = 3
	DefaultTobogganDown   = 1

	// History defaults
	DefaultHistoryEnabled         = true
	DefaultHistoryDriver          = "sqlite"
	DefaultHistoryPath            = "data/history.db"
	DefaultHistoryMaxOpenConns    = 4
	DefaultHistoryWALMode         = true
	DefaultHistoryBusyTimeout     = 5 * time.Second
	DefaultHistoryRetentionDays   = 30
	DefaultHistoryRetentionPrune  = "0 3 * * *"
	DefaultHistoryRetentionMaxRec = int64(0)

	// Watch defaults
	DefaultWatchDebounce = 200 * time.Millisecond

	// Telemetry defaults
	DefaultLoggingLevel       = "info"
	DefaultLoggingFormat      = "text"
	DefaultLoggingRedact      = true
	DefaultMetricsEnabled     = true
	DefaultMetricsNamespace   = "advent"
	DefaultMetricsSubsystem   = "solver"
	DefaultTracingEnabled     = false
	DefaultTracingExporter    = "stdout"
	DefaultTracingTimeout     = 10 * time.Second
	DefaultTracingSampler     = "always"
	DefaultTracingSampleRatio = 1.0
	DefaultTracingServiceName = "advent"
)

// DefaultPasswordsKinds returns the rule kinds reported by default.
func DefaultPasswordsKinds() []string {
	return []string{"count", "position"}
}

// DefaultRoutes returns the routes multiplied for the second toboggan answer.
func DefaultRoutes() []RouteConfig {
	return []RouteConfig{
		{Right: 1, Down: 1},
		{Right: 3, Down: 1},
		{Right: 5, Down: 1},
		{Right: 7, Down: 1},
		{Right: 1, Down: 2},
	}
}

// DefaultDurationBuckets returns histogram buckets for solve durations:
// solvers finish in microseconds to milliseconds.
func DefaultDurationBuckets() []float64 {
	return []float64{0.00001, 0.0001, 0.001, 0.01, 0.1, 1}
}

// Default returns a configuration with every default applied, including the
// boolean fields that default to true.
func Default() *Config {
	cfg := &Config{
		History: HistoryConfig{
			Enabled: DefaultHistoryEnabled,
			WALMode: DefaultHistoryWALMode,
		},
		Telemetry: TelemetryConfig{
			Logging: LoggingConfig{
				RedactSubjects: DefaultLoggingRedact,
			},
			Metrics: MetricsConfig{
				Enabled: DefaultMetricsEnabled,
			},
			Tracing: TracingConfig{
				Enabled: DefaultTracingEnabled,
			},
		},
	}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills zero-valued fields with their defaults. Boolean fields
// are left alone: a false value cannot be told apart from "not set", so
// true-by-default booleans are seeded by Default before the YAML is decoded.
// ApplyDefaults is idempotent.
func ApplyDefaults(cfg *Config) {
	// Expense defaults
	if cfg.Puzzles.Expense.Input == "" {
		cfg.Puzzles.Expense.Input = DefaultExpenseInput
	}
	if cfg.Puzzles.Expense.Target == 0 {
		cfg.Puzzles.Expense.Target = DefaultExpenseTarget
	}

	// Passwords defaults
	if cfg.Puzzles.Passwords.Input == "" {
		cfg.Puzzles.Passwords.Input = DefaultPasswordsInput
	}
	if len(cfg.Puzzles.Passwords.Kinds) == 0 {
		cfg.Puzzles.Passwords.Kinds = DefaultPasswordsKinds()
	}

	// Toboggan defaults
	if cfg.Puzzles.Toboggan.Input == "" {
		cfg.Puzzles.Toboggan.Input = DefaultTobogganInput
	}
	if cfg.Puzzles.Toboggan.Marker == "" {
		cfg.Puzzles.Toboggan.Marker = DefaultTobogganMarker
	}
	if cfg.Puzzles.Toboggan.Slope == (RouteConfig{}) {
		cfg.Puzzles.Toboggan.Slope = RouteConfig{Right: DefaultTobogganRight, Down: DefaultTobogganDown}
	}
	if len(cfg.Puzzles.Toboggan.Routes) == 0 {
		cfg.Puzzles.Toboggan.Routes = DefaultRoutes()
	}

	// History defaults
	if cfg.History.Driver == "" {
		cfg.History.Driver = DefaultHistoryDriver
	}
	if cfg.History.Path == "" {
		cfg.History.Path = DefaultHistoryPath
	}
	if cfg.History.MaxOpenConns == 0 {
		cfg.History.MaxOpenConns = DefaultHistoryMaxOpenConns
	}
	if cfg.History.BusyTimeout == 0 {
		cfg.History.BusyTimeout = DefaultHistoryBusyTimeout
	}
	if cfg.History.Retention.Days == 0 {
		cfg.History.Retention.Days = DefaultHistoryRetentionDays
	}
	if cfg.History.Retention.Schedule == "" {
		cfg.History.Retention.Schedule = DefaultHistoryRetentionPrune
	}

	// Watch defaults
	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = DefaultWatchDebounce
	}

	// Logging defaults
	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLoggingFormat
	}

	// Metrics defaults
	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Telemetry.Metrics.Subsystem == "" {
		cfg.Telemetry.Metrics.Subsystem = DefaultMetricsSubsystem
	}
	if len(cfg.Telemetry.Metrics.DurationBuckets) == 0 {
		cfg.Telemetry.Metrics.DurationBuckets = DefaultDurationBuckets()
	}

	// Tracing defaults
	if cfg.Telemetry.Tracing.Exporter == "" {
		cfg.Telemetry.Tracing.Exporter = DefaultTracingExporter
	}
	if cfg.Telemetry.Tracing.Timeout == 0 {
		cfg.Telemetry.Tracing.Timeout = DefaultTracingTimeout
	}
	if cfg.Telemetry.Tracing.Sampler == "" {
		cfg.Telemetry.Tracing.Sampler = DefaultTracingSampler
	}
	if cfg.Telemetry.Tracing.SampleRatio == 0 {
		cfg.Telemetry.Tracing.SampleRatio = DefaultTracingSampleRatio
	}
	if cfg.Telemetry.Tracing.ServiceName == "" {
		cfg.Telemetry.Tracing.ServiceName = DefaultTracingServiceName
	}
}
