package config

import "time"

// ConfigBuilder provides a fluent API for building Config instances in tests.
// It starts with default values and allows selective overrides.
type ConfigBuilder struct {
	cfg Config
}

// NewTestConfig creates a new ConfigBuilder with defaults and an in-memory
// history store. The resulting configuration is valid.
func NewTestConfig() *ConfigBuilder {
	cfg := *Default()
	cfg.History.Driver = "memory"
	return &ConfigBuilder{cfg: cfg}
}

// Build returns the built Config instance.
func (b *ConfigBuilder) Build() *Config {
	return &b.cfg
}

// WithPasswordsInput sets the password policy input path.
func (b *ConfigBuilder) WithPasswordsInput(path string) *ConfigBuilder {
	b.cfg.Puzzles.Passwords.Input = path
	return b
}

// WithKinds sets the password rule kinds.
func (b *ConfigBuilder) WithKinds(kinds ...string) *ConfigBuilder {
	b.cfg.Puzzles.Passwords.Kinds = kinds
	return b
}

// WithRoutes sets the toboggan routes.
func (b *ConfigBuilder) WithRoutes(routes ...RouteConfig) *ConfigBuilder {
	b.cfg.Puzzles.Toboggan.Routes = routes
	return b
}

// WithSQLite selects a sqlite history driver at path.
func (b *ConfigBuilder) WithSQLite(driver, path string) *ConfigBuilder {
	b.cfg.History.Driver = driver
	b.cfg.History.Path = path
	return b
}

// WithRetention sets history retention.
func (b *ConfigBuilder) WithRetention(days int, maxRecords int64) *ConfigBuilder {
	b.cfg.History.Retention.Days = days
	b.cfg.History.Retention.MaxRecords = maxRecords
	return b
}

// WithDebounce sets the watch debounce interval.
func (b *ConfigBuilder) WithDebounce(d time.Duration) *ConfigBuilder {
	b.cfg.Watch.Debounce = d
	return b
}

// WithTracing enables tracing with the given exporter and endpoint.
func (b *ConfigBuilder) WithTracing(exporter, endpoint string) *ConfigBuilder {
	b.cfg.Telemetry.Tracing.Enabled = true
	b.cfg.Telemetry.Tracing.Exporter = exporter
	b.cfg.Telemetry.Tracing.Endpoint = endpoint
	return b
}
