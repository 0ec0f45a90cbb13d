// Package config provides configuration management for advent.
//
// This package handles loading, validating, and managing configuration from
// YAML files with environment variable overrides. Every field has a default,
// so the solvers run without any configuration file at all.
//
// # Configuration Loading
//
// Configuration can be loaded in three ways:
//
//  1. From a YAML file only:
//     cfg, err := config.LoadConfig("advent.yaml")
//
//  2. From a YAML file with environment variable overrides:
//     cfg, err := config.LoadConfigWithEnvOverrides("advent.yaml")
//
//  3. As above, falling back to the defaults when the file is missing:
//     cfg, err := config.LoadOrDefault("advent.yaml")
//
// # Environment Variable Overrides
//
// Environment variables follow the naming convention ADVENT_SECTION_FIELD.
// For example:
//
//   - ADVENT_PUZZLES_PASSWORDS_INPUT overrides puzzles.passwords.input
//   - ADVENT_HISTORY_DRIVER overrides history.driver
//   - ADVENT_TELEMETRY_LOGGING_LEVEL overrides telemetry.logging.level
//
// # Configuration Precedence
//
//  1. Default values (defined in defaults.go)
//  2. Values from YAML file
//  3. Environment variable overrides
//  4. Validation (fails fast if invalid)
//
// # Singleton Pattern
//
//	if err := config.Initialize("advent.yaml"); err != nil {
//	    log.Fatal(err)
//	}
//	cfg := config.GetConfig()
//
// For testing, prefer dependency injection with explicit Config instances
// rather than the global singleton.
//
// # Example Configuration
//
//	puzzles:
//	  passwords:
//	    input: "input/day2.txt"
//	    kinds: ["count", "position"]
//	  toboggan:
//	    input: "input/day3.txt"
//	    slope: {right: 3, down: 1}
//
//	history:
//	  driver: "sqlite"
//	  path: "data/history.db"
//	  retention:
//	    days: 30
//
//	telemetry:
//	  logging:
//	    level: "info"
//	    format: "text"
package config
