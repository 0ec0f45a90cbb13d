package config

import (
	"fmt"
	"sync"
)

var (
	mu       sync.RWMutex
	global   *Config
	initOnce sync.Once
)

// Initialize loads the configuration at path (see LoadOrDefault) into the
// process-wide instance. Only the first call has any effect.
func Initialize(path string) error {
	var err error

	initOnce.Do(func() {
		var cfg *Config
		cfg, err = LoadOrDefault(path)
		if err != nil {
			return
		}
		SetConfig(cfg)
	})

	return err
}

// GetConfig returns the process-wide configuration, or nil before
// Initialize or SetConfig.
func GetConfig() *Config {
	mu.RLock()
	defer mu.RUnlock()
	return global
}

// SetConfig replaces the process-wide configuration. Commands use
// Initialize; SetConfig exists for tests and for ReloadConfig.
func SetConfig(cfg *Config) {
	mu.Lock()
	defer mu.Unlock()
	global = cfg
}

// ReloadConfig re-reads path, applying environment overrides and
// validation. On failure the current configuration is kept.
func ReloadConfig(path string) error {
	cfg, err := LoadConfigWithEnvOverrides(path)
	if err != nil {
		return fmt.Errorf("failed to reload configuration: %w", err)
	}

	SetConfig(cfg)
	return nil
}
