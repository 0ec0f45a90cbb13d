package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3" // registers "sqlite3" (cgo)
	_ "modernc.org/sqlite"          // registers "sqlite" (pure Go)

	"mercator-hq/advent/pkg/history"
)

// Driver names accepted by NewSQLiteStorage.
const (
	DriverCGO    = "sqlite3"
	DriverPureGo = "sqlite"
)

// SQLiteConfig contains configuration for the SQLite storage backend.
type SQLiteConfig struct {
	// Driver is the database/sql driver name, DriverCGO or DriverPureGo.
	// Default: DriverPureGo
	Driver string

	// Path is the database file path. Parent directories are created.
	Path string

	// MaxOpenConns is the maximum number of open connections to the database.
	// Default: 4
	MaxOpenConns int

	// WALMode enables Write-Ahead Logging mode for better concurrency.
	WALMode bool

	// BusyTimeout is the duration to wait when the database is locked.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

// DefaultSQLiteConfig returns the default SQLite configuration.
func DefaultSQLiteConfig() *SQLiteConfig {
	return &SQLiteConfig{
		Driver:       DriverPureGo,
		Path:         "data/history.db",
		MaxOpenConns: 4,
		WALMode:      true,
		BusyTimeout:  5 * time.Second,
	}
}

// SQLiteStorage implements history.Storage using SQLite.
type SQLiteStorage struct {
	db     *sql.DB
	config *SQLiteConfig
	logger *slog.Logger
}

// NewSQLiteStorage opens the database, enables WAL mode if configured and
// creates the schema.
func NewSQLiteStorage(config *SQLiteConfig) (*SQLiteStorage, error) {
	if config == nil {
		config = DefaultSQLiteConfig()
	}
	if config.Driver == "" {
		config.Driver = DriverPureGo
	}
	if config.Driver != DriverCGO && config.Driver != DriverPureGo {
		return nil, history.NewStorageError("sqlite", "open",
			fmt.Errorf("unsupported driver %q", config.Driver))
	}
	if config.MaxOpenConns <= 0 {
		config.MaxOpenConns = 4
	}

	logger := slog.Default().With("component", "history.storage.sqlite")

	if dir := filepath.Dir(config.Path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, history.NewStorageError("sqlite", "mkdir", err)
		}
	}

	db, err := sql.Open(config.Driver, config.Path)
	if err != nil {
		return nil, history.NewStorageError("sqlite", "open", err)
	}
	db.SetMaxOpenConns(config.MaxOpenConns)

	s := &SQLiteStorage{
		db:     db,
		config: config,
		logger: logger,
	}

	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Debug("SQLite storage initialized",
		"driver", config.Driver,
		"path", config.Path,
		"wal_mode", config.WALMode,
	)

	return s, nil
}

func (s *SQLiteStorage) initialize() error {
	if s.config.WALMode {
		if _, err := s.db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
			return history.NewStorageError("sqlite", "enable_wal", err)
		}
	}

	busyTimeoutMs := s.config.BusyTimeout.Milliseconds()
	if _, err := s.db.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d;", busyTimeoutMs)); err != nil {
		return history.NewStorageError("sqlite", "set_busy_timeout", err)
	}

	if _, err := s.db.Exec(Schema); err != nil {
		return history.NewStorageError("sqlite", "create_schema", err)
	}

	if _, err := s.db.Exec(InsertSchemaVersion, SchemaVersion); err != nil {
		return history.NewStorageError("sqlite", "insert_schema_version", err)
	}

	var version int
	if err := s.db.QueryRow(GetSchemaVersion).Scan(&version); err != nil {
		return history.NewStorageError("sqlite", "get_schema_version", err)
	}
	if version != SchemaVersion {
		return history.NewStorageError("sqlite", "schema_version_mismatch",
			fmt.Errorf("expected schema version %d, got %d", SchemaVersion, version))
	}

	return nil
}

// Store persists records in a single transaction.
func (s *SQLiteStorage) Store(ctx context.Context, records ...*history.Record) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return history.NewStorageError("sqlite", "store", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, insertAnswer)
	if err != nil {
		return history.NewStorageError("sqlite", "store", err)
	}
	defer stmt.Close()

	for _, r := range records {
		var inputPath any
		if r.InputPath != "" {
			inputPath = r.InputPath
		}

		_, err := stmt.ExecContext(ctx,
			r.ID, r.RunID, r.Puzzle, r.Part, r.Label, r.Value,
			inputPath, r.InputHash, r.SolvedAt.UnixNano(),
		)
		if err != nil {
			return history.NewStorageError("sqlite", "store", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return history.NewStorageError("sqlite", "store", err)
	}
	return nil
}

// Query retrieves records matching the query filters.
func (s *SQLiteStorage) Query(ctx context.Context, query *history.Query) ([]*history.Record, error) {
	whereClause, args := buildWhereClause(query)

	sqlQuery := selectAnswers
	if whereClause != "" {
		sqlQuery += " WHERE " + whereClause
	}

	order := "DESC"
	if query != nil && query.Oldest {
		order = "ASC"
	}
	sqlQuery += fmt.Sprintf(" ORDER BY solved_at %s, rowid %s", order, order)

	if query != nil && (query.Limit > 0 || query.Offset > 0) {
		limit := query.Limit
		if limit <= 0 {
			limit = -1
		}
		sqlQuery += fmt.Sprintf(" LIMIT %d OFFSET %d", limit, query.Offset)
	}

	rows, err := s.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, history.NewStorageError("sqlite", "query", err)
	}
	defer rows.Close()

	records := []*history.Record{}
	for rows.Next() {
		record, err := scanRow(rows)
		if err != nil {
			return nil, history.NewStorageError("sqlite", "scan", err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, history.NewStorageError("sqlite", "query", err)
	}

	return records, nil
}

// Count returns the number of records matching the query filters.
func (s *SQLiteStorage) Count(ctx context.Context, query *history.Query) (int64, error) {
	whereClause, args := buildWhereClause(query)

	sqlQuery := "SELECT COUNT(*) FROM answers"
	if whereClause != "" {
		sqlQuery += " WHERE " + whereClause
	}

	var count int64
	if err := s.db.QueryRowContext(ctx, sqlQuery, args...).Scan(&count); err != nil {
		return 0, history.NewStorageError("sqlite", "count", err)
	}

	return count, nil
}

// Delete removes records matching the query filters.
func (s *SQLiteStorage) Delete(ctx context.Context, query *history.Query) (int64, error) {
	whereClause, args := buildWhereClause(query)

	sqlQuery := "DELETE FROM answers"
	if whereClause != "" {
		sqlQuery += " WHERE " + whereClause
	}

	result, err := s.db.ExecContext(ctx, sqlQuery, args...)
	if err != nil {
		return 0, history.NewStorageError("sqlite", "delete", err)
	}

	count, err := result.RowsAffected()
	if err != nil {
		return 0, history.NewStorageError("sqlite", "delete", err)
	}

	return count, nil
}

// Close releases the database connection.
func (s *SQLiteStorage) Close() error {
	if err := s.db.Close(); err != nil {
		return history.NewStorageError("sqlite", "close", err)
	}
	s.logger.Debug("SQLite storage closed")
	return nil
}

// buildWhereClause builds a SQL WHERE clause (without the keyword) and its
// arguments from query filters.
func buildWhereClause(query *history.Query) (string, []any) {
	if query == nil {
		return "", nil
	}

	var conditions []string
	var args []any

	if query.Puzzle != "" {
		conditions = append(conditions, "puzzle = ?")
		args = append(args, query.Puzzle)
	}
	if query.RunID != "" {
		conditions = append(conditions, "run_id = ?")
		args = append(args, query.RunID)
	}
	if query.InputHash != "" {
		conditions = append(conditions, "input_hash = ?")
		args = append(args, query.InputHash)
	}
	if query.Since != nil {
		conditions = append(conditions, "solved_at >= ?")
		args = append(args, query.Since.UnixNano())
	}
	if query.Until != nil {
		conditions = append(conditions, "solved_at <= ?")
		args = append(args, query.Until.UnixNano())
	}
	if query.IDs != nil {
		if len(query.IDs) == 0 {
			// An empty ID list matches nothing.
			conditions = append(conditions, "0")
		} else {
			placeholders := strings.TrimSuffix(strings.Repeat("?,", len(query.IDs)), ",")
			conditions = append(conditions, "id IN ("+placeholders+")")
			for _, id := range query.IDs {
				args = append(args, id)
			}
		}
	}

	return strings.Join(conditions, " AND "), args
}

func scanRow(rows *sql.Rows) (*history.Record, error) {
	var record history.Record
	var inputPath sql.NullString
	var solvedAt int64

	err := rows.Scan(
		&record.ID, &record.RunID, &record.Puzzle, &record.Part, &record.Label, &record.Value,
		&inputPath, &record.InputHash, &solvedAt,
	)
	if err != nil {
		return nil, err
	}

	if inputPath.Valid {
		record.InputPath = inputPath.String
	}
	record.SolvedAt = time.Unix(0, solvedAt)

	return &record, nil
}
