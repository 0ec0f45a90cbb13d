package config

import "time"

// Config is the root configuration structure for advent.
// It contains the per-puzzle settings, answer history storage, watch mode
// and telemetry.
type Config struct {
	// Puzzles contains input locations and parameters for each solver.
	Puzzles PuzzlesConfig `yaml:"puzzles"`

	// History contains configuration for the answer history store
	// including backend selection and retention.
	History HistoryConfig `yaml:"history"`

	// Watch contains configuration for re-solving on input changes.
	Watch WatchConfig `yaml:"watch"`

	// Telemetry contains configuration for logging, metrics and tracing.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// PuzzlesConfig groups the settings of every registered solver.
type PuzzlesConfig struct {
	Expense   ExpenseConfig   `yaml:"expense"`
	Passwords PasswordsConfig `yaml:"passwords"`
	Toboggan  TobogganConfig  `yaml:"toboggan"`
}

// ExpenseConfig configures the expense report solver.
type ExpenseConfig struct {
	// Input is the path of the report, one integer per line.
	// Default: "input/day1.txt"
	Input string `yaml:"input"`

	// Target is the sum the entries must reach.
	// Default: 2020
	Target int `yaml:"target"`
}

// PasswordsConfig configures the password policy solver.
type PasswordsConfig struct {
	// Input is the path of the policy file, one entry per line.
	// Default: "input/day2.txt"
	Input string `yaml:"input"`

	// Kinds lists the rule interpretations to report ("count", "position").
	// Default: ["count", "position"]
	Kinds []string `yaml:"kinds"`

	// KeepGoing skips malformed lines instead of failing the run.
	// Default: false
	KeepGoing bool `yaml:"keep_going"`
}

// TobogganConfig configures the grid traversal solver.
type TobogganConfig struct {
	// Input is the path of the grid file.
	// Default: "input/day3.txt"
	Input string `yaml:"input"`

	// Marker is the single character that denotes an occupied cell.
	// Default: "#"
	Marker string `yaml:"marker"`

	// Slope is the route used for the first answer.
	// Default: right 3, down 1
	Slope RouteConfig `yaml:"slope"`

	// Routes are the routes whose counts are multiplied for the second answer.
	// Default: (1,1) (3,1) (5,1) (7,1) (1,2)
	Routes []RouteConfig `yaml:"routes"`
}

// RouteConfig is a traversal slope.
type RouteConfig struct {
	Right int `yaml:"right"`
	Down  int `yaml:"down"`
}

// HistoryConfig configures where solved answers are recorded.
type HistoryConfig struct {
	// Enabled controls whether answers are recorded at all.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Driver selects the storage backend: "sqlite3" (cgo, mattn/go-sqlite3),
	// "sqlite" (pure Go, modernc.org/sqlite) or "memory".
	// Default: "sqlite"
	Driver string `yaml:"driver"`

	// Path is the database file path for the sqlite drivers.
	// Default: "data/history.db"
	Path string `yaml:"path"`

	// MaxOpenConns is the maximum number of open database connections.
	// Default: 4
	MaxOpenConns int `yaml:"max_open_conns"`

	// WALMode enables Write-Ahead Logging.
	// Default: true
	WALMode bool `yaml:"wal_mode"`

	// BusyTimeout is how long to wait on a locked database.
	// Default: 5s
	BusyTimeout time.Duration `yaml:"busy_timeout"`

	// Retention controls pruning of old answers.
	Retention RetentionConfig `yaml:"retention"`
}

// RetentionConfig controls automatic pruning of the answer history.
type RetentionConfig struct {
	// Days is how long answers are kept. Zero keeps them forever.
	// Default: 30
	Days int `yaml:"days"`

	// MaxRecords caps the number of stored answers. Zero means unlimited.
	// Default: 0
	MaxRecords int64 `yaml:"max_records"`

	// Schedule is the cron expression for pruning while watching.
	// Empty disables scheduled pruning.
	// Default: "0 3 * * *"
	Schedule string `yaml:"schedule"`
}

// WatchConfig configures watch mode.
type WatchConfig struct {
	// Debounce is the quiet period after a file change before re-solving.
	// Default: 200ms
	Debounce time.Duration `yaml:"debounce"`
}

// TelemetryConfig contains logging, metrics and tracing configuration.
type TelemetryConfig struct {
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
	Tracing TracingConfig `yaml:"tracing"`
}

// LoggingConfig configures the structured logger.
type LoggingConfig struct {
	// Level is the minimum level: "debug", "info", "warn", "error".
	// Default: "info"
	Level string `yaml:"level"`

	// Format is "json", "text" or "console".
	// Default: "text"
	Format string `yaml:"format"`

	// AddSource includes file:line in log records.
	// Default: false
	AddSource bool `yaml:"add_source"`

	// RedactSubjects masks password subjects in log fields.
	// Default: true
	RedactSubjects bool `yaml:"redact_subjects"`
}

// MetricsConfig configures Prometheus metrics.
type MetricsConfig struct {
	// Enabled controls metric collection.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Namespace is the metric name prefix.
	// Default: "advent"
	Namespace string `yaml:"namespace"`

	// Subsystem is the second metric name component.
	// Default: "solver"
	Subsystem string `yaml:"subsystem"`

	// Textfile, when set, receives the gathered metrics in Prometheus text
	// format after every run (node_exporter textfile collector layout).
	Textfile string `yaml:"textfile"`

	// DurationBuckets are the histogram buckets for solve durations, in seconds.
	DurationBuckets []float64 `yaml:"duration_buckets"`
}

// TracingConfig configures OpenTelemetry tracing.
type TracingConfig struct {
	// Enabled controls tracing.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Exporter is "stdout" or "otlp".
	// Default: "stdout"
	Exporter string `yaml:"exporter"`

	// Endpoint is the OTLP gRPC collector address (host:port).
	Endpoint string `yaml:"endpoint"`

	// Insecure disables TLS towards the OTLP collector.
	Insecure bool `yaml:"insecure"`

	// Timeout bounds exporter calls.
	// Default: 10s
	Timeout time.Duration `yaml:"timeout"`

	// Sampler is "always", "never" or "ratio".
	// Default: "always"
	Sampler string `yaml:"sampler"`

	// SampleRatio is used by the "ratio" sampler.
	// Default: 1.0
	SampleRatio float64 `yaml:"sample_ratio"`

	// ServiceName is reported as the service.name resource attribute.
	// Default: "advent"
	ServiceName string `yaml:"service_name"`
}
