package storage

import (
	"fmt"

	"mercator-hq/advent/pkg/config"
	"mercator-hq/advent/pkg/history"
)

// Open creates the storage backend selected by the history configuration.
func Open(cfg *config.HistoryConfig) (history.Storage, error) {
	switch cfg.Driver {
	case "memory":
		return NewMemoryStorage(), nil
	case DriverCGO, DriverPureGo:
		return NewSQLiteStorage(&SQLiteConfig{
			Driver:       cfg.Driver,
			Path:         cfg.Path,
			MaxOpenConns: cfg.MaxOpenConns,
			WALMode:      cfg.WALMode,
			BusyTimeout:  cfg.BusyTimeout,
		})
	default:
		return nil, fmt.Errorf("unknown history driver %q", cfg.Driver)
	}
}
