package storage

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"mercator-hq/advent/pkg/config"
	"mercator-hq/advent/pkg/history"
)

var baseTime = time.Date(2020, 12, 3, 6, 0, 0, 0, time.UTC)

// backends returns a fresh instance of every storage backend.
func backends(t *testing.T) map[string]history.Storage {
	t.Helper()

	result := map[string]history.Storage{
		"memory": NewMemoryStorage(),
	}

	for _, driver := range []string{DriverCGO, DriverPureGo} {
		s, err := NewSQLiteStorage(&SQLiteConfig{
			Driver:       driver,
			Path:         filepath.Join(t.TempDir(), "history.db"),
			MaxOpenConns: 2,
			WALMode:      true,
			BusyTimeout:  5 * time.Second,
		})
		if err != nil {
			t.Fatalf("NewSQLiteStorage(%s) failed: %v", driver, err)
		}
		result["sqlite/"+driver] = s
	}

	for _, s := range result {
		s := s
		t.Cleanup(func() { s.Close() })
	}

	return result
}

func makeRecord(id, puzzle string, offset time.Duration) *history.Record {
	return &history.Record{
		ID:        id,
		RunID:     "run-" + puzzle,
		Puzzle:    puzzle,
		Part:      1,
		Label:     "Answer",
		Value:     int64(len(id)),
		InputPath: "input/" + puzzle + ".txt",
		InputHash: history.HashInput([]byte(puzzle)),
		SolvedAt:  baseTime.Add(offset),
	}
}

func seed(t *testing.T, s history.Storage) {
	t.Helper()
	err := s.Store(context.Background(),
		makeRecord("a", "expense", 0),
		makeRecord("b", "passwords", time.Minute),
		makeRecord("c", "toboggan", 2*time.Minute),
		makeRecord("d", "toboggan", 3*time.Minute),
	)
	if err != nil {
		t.Fatalf("Store() failed: %v", err)
	}
}

func ids(records []*history.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

func TestStorage_StoreAndQuery(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			want := makeRecord("r1", "toboggan", 0)
			want.Value = 336

			if err := s.Store(ctx, want); err != nil {
				t.Fatalf("Store() failed: %v", err)
			}

			got, err := s.Query(ctx, &history.Query{RunID: "run-toboggan"})
			if err != nil {
				t.Fatalf("Query() failed: %v", err)
			}
			if len(got) != 1 {
				t.Fatalf("Query() returned %d records, want 1", len(got))
			}

			r := got[0]
			if r.ID != want.ID || r.Puzzle != want.Puzzle || r.Part != want.Part ||
				r.Label != want.Label || r.Value != want.Value ||
				r.InputPath != want.InputPath || r.InputHash != want.InputHash {
				t.Errorf("Query() = %+v, want %+v", r, want)
			}
			if !r.SolvedAt.Equal(want.SolvedAt) {
				t.Errorf("SolvedAt = %v, want %v", r.SolvedAt, want.SolvedAt)
			}
		})
	}
}

func TestStorage_EmptyInputPath(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			r := makeRecord("stdin", "expense", 0)
			r.InputPath = ""

			if err := s.Store(ctx, r); err != nil {
				t.Fatalf("Store() failed: %v", err)
			}

			got, err := s.Query(ctx, nil)
			if err != nil {
				t.Fatalf("Query() failed: %v", err)
			}
			if len(got) != 1 || got[0].InputPath != "" {
				t.Errorf("Query() = %+v, want one record with empty input path", got)
			}
		})
	}
}

func TestStorage_QueryOrdering(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			seed(t, s)
			ctx := context.Background()

			tests := []struct {
				name  string
				query *history.Query
				want  []string
			}{
				{"nil query newest first", nil, []string{"d", "c", "b", "a"}},
				{"oldest first", &history.Query{Oldest: true}, []string{"a", "b", "c", "d"}},
				{"limit", &history.Query{Limit: 2}, []string{"d", "c"}},
				{"offset", &history.Query{Offset: 1, Limit: 2}, []string{"c", "b"}},
				{"offset only", &history.Query{Offset: 3}, []string{"a"}},
				{"offset past end", &history.Query{Offset: 10}, []string{}},
				{"oldest with limit", &history.Query{Oldest: true, Limit: 1}, []string{"a"}},
			}

			for _, tt := range tests {
				t.Run(tt.name, func(t *testing.T) {
					got, err := s.Query(ctx, tt.query)
					if err != nil {
						t.Fatalf("Query() failed: %v", err)
					}
					if fmt.Sprint(ids(got)) != fmt.Sprint(tt.want) {
						t.Errorf("Query() ids = %v, want %v", ids(got), tt.want)
					}
				})
			}
		})
	}
}

func TestStorage_QueryTieBreak(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			// Same SolvedAt: insertion order breaks ties.
			err := s.Store(ctx,
				makeRecord("first", "toboggan", 0),
				makeRecord("second", "toboggan", 0),
			)
			if err != nil {
				t.Fatalf("Store() failed: %v", err)
			}

			got, err := s.Query(ctx, &history.Query{Oldest: true})
			if err != nil {
				t.Fatalf("Query() failed: %v", err)
			}
			if fmt.Sprint(ids(got)) != "[first second]" {
				t.Errorf("Query(oldest) ids = %v, want [first second]", ids(got))
			}
		})
	}
}

func TestStorage_QueryFilters(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			seed(t, s)
			ctx := context.Background()

			since := baseTime.Add(time.Minute)
			until := baseTime.Add(2 * time.Minute)

			tests := []struct {
				name  string
				query *history.Query
				want  []string
			}{
				{"puzzle", &history.Query{Puzzle: "toboggan"}, []string{"d", "c"}},
				{"run id", &history.Query{RunID: "run-expense"}, []string{"a"}},
				{"input hash", &history.Query{InputHash: history.HashInput([]byte("passwords"))}, []string{"b"}},
				{"since inclusive", &history.Query{Since: &since}, []string{"d", "c", "b"}},
				{"until inclusive", &history.Query{Until: &until}, []string{"c", "b", "a"}},
				{"range", &history.Query{Since: &since, Until: &until}, []string{"c", "b"}},
				{"ids", &history.Query{IDs: []string{"a", "d", "missing"}}, []string{"d", "a"}},
				{"empty ids", &history.Query{IDs: []string{}}, []string{}},
				{"combined", &history.Query{Puzzle: "toboggan", Until: &until}, []string{"c"}},
				{"no match", &history.Query{Puzzle: "unknown"}, []string{}},
			}

			for _, tt := range tests {
				t.Run(tt.name, func(t *testing.T) {
					got, err := s.Query(ctx, tt.query)
					if err != nil {
						t.Fatalf("Query() failed: %v", err)
					}
					if fmt.Sprint(ids(got)) != fmt.Sprint(tt.want) {
						t.Errorf("Query() ids = %v, want %v", ids(got), tt.want)
					}

					count, err := s.Count(ctx, tt.query)
					if err != nil {
						t.Fatalf("Count() failed: %v", err)
					}
					if count != int64(len(tt.want)) {
						t.Errorf("Count() = %d, want %d", count, len(tt.want))
					}
				})
			}
		})
	}
}

func TestStorage_CountIgnoresLimit(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			seed(t, s)

			count, err := s.Count(context.Background(), &history.Query{Limit: 1, Offset: 1})
			if err != nil {
				t.Fatalf("Count() failed: %v", err)
			}
			if count != 4 {
				t.Errorf("Count() = %d, want 4", count)
			}
		})
	}
}

func TestStorage_Delete(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			seed(t, s)
			ctx := context.Background()

			deleted, err := s.Delete(ctx, &history.Query{Puzzle: "toboggan"})
			if err != nil {
				t.Fatalf("Delete() failed: %v", err)
			}
			if deleted != 2 {
				t.Errorf("Delete() = %d, want 2", deleted)
			}

			got, err := s.Query(ctx, nil)
			if err != nil {
				t.Fatalf("Query() failed: %v", err)
			}
			if fmt.Sprint(ids(got)) != "[b a]" {
				t.Errorf("remaining ids = %v, want [b a]", ids(got))
			}

			deleted, err = s.Delete(ctx, &history.Query{IDs: []string{"a"}})
			if err != nil {
				t.Fatalf("Delete() failed: %v", err)
			}
			if deleted != 1 {
				t.Errorf("Delete(ids) = %d, want 1", deleted)
			}

			deleted, err = s.Delete(ctx, nil)
			if err != nil {
				t.Fatalf("Delete() failed: %v", err)
			}
			if deleted != 1 {
				t.Errorf("Delete(nil) = %d, want 1", deleted)
			}
		})
	}
}

func TestStorage_StoreDuplicateIsAtomic(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			if err := s.Store(ctx, makeRecord("a", "expense", 0)); err != nil {
				t.Fatalf("Store() failed: %v", err)
			}

			err := s.Store(ctx,
				makeRecord("new", "expense", time.Minute),
				makeRecord("a", "expense", 2*time.Minute),
			)
			if err == nil {
				t.Fatal("Store() with duplicate ID succeeded, want error")
			}

			var storageErr *history.StorageError
			if !errors.As(err, &storageErr) {
				t.Errorf("Store() error = %T, want *history.StorageError", err)
			} else if storageErr.Operation != "store" {
				t.Errorf("Operation = %q, want store", storageErr.Operation)
			}

			count, err := s.Count(ctx, nil)
			if err != nil {
				t.Fatalf("Count() failed: %v", err)
			}
			if count != 1 {
				t.Errorf("Count() = %d after failed store, want 1", count)
			}
		})
	}
}

func TestStorage_StoreNothing(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if err := s.Store(context.Background()); err != nil {
				t.Errorf("Store() with no records = %v, want nil", err)
			}
		})
	}
}

func TestMemoryStorage_CanceledContext(t *testing.T) {
	s := NewMemoryStorage()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := s.Store(ctx, makeRecord("a", "expense", 0)); !errors.Is(err, context.Canceled) {
		t.Errorf("Store() error = %v, want context.Canceled", err)
	}
	if _, err := s.Query(ctx, nil); !errors.Is(err, context.Canceled) {
		t.Errorf("Query() error = %v, want context.Canceled", err)
	}
	if _, err := s.Count(ctx, nil); !errors.Is(err, context.Canceled) {
		t.Errorf("Count() error = %v, want context.Canceled", err)
	}
	if _, err := s.Delete(ctx, nil); !errors.Is(err, context.Canceled) {
		t.Errorf("Delete() error = %v, want context.Canceled", err)
	}
}

func TestMemoryStorage_ReturnsCopies(t *testing.T) {
	s := NewMemoryStorage()
	ctx := context.Background()
	r := makeRecord("a", "expense", 0)
	if err := s.Store(ctx, r); err != nil {
		t.Fatalf("Store() failed: %v", err)
	}
	r.Value = 999

	got, _ := s.Query(ctx, nil)
	if got[0].Value == 999 {
		t.Error("Store() kept a reference to the caller's record")
	}

	got[0].Value = 999
	again, _ := s.Query(ctx, nil)
	if again[0].Value == 999 {
		t.Error("Query() returned a reference to the stored record")
	}
}

func TestSQLiteStorage_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "history.db")
	cfg := &SQLiteConfig{Driver: DriverPureGo, Path: path, WALMode: true, BusyTimeout: time.Second}

	s, err := NewSQLiteStorage(cfg)
	if err != nil {
		t.Fatalf("NewSQLiteStorage() failed: %v", err)
	}
	if err := s.Store(context.Background(), makeRecord("a", "expense", 0)); err != nil {
		t.Fatalf("Store() failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}

	reopened, err := NewSQLiteStorage(cfg)
	if err != nil {
		t.Fatalf("NewSQLiteStorage() reopen failed: %v", err)
	}
	defer reopened.Close()

	count, err := reopened.Count(context.Background(), nil)
	if err != nil {
		t.Fatalf("Count() failed: %v", err)
	}
	if count != 1 {
		t.Errorf("Count() after reopen = %d, want 1", count)
	}
}

func TestNewSQLiteStorage_UnsupportedDriver(t *testing.T) {
	_, err := NewSQLiteStorage(&SQLiteConfig{Driver: "postgres", Path: filepath.Join(t.TempDir(), "x.db")})
	if err == nil {
		t.Fatal("NewSQLiteStorage() with unsupported driver succeeded, want error")
	}
}

func TestOpen(t *testing.T) {
	tests := []struct {
		name    string
		driver  string
		want    string
		wantErr bool
	}{
		{"memory", "memory", "*storage.MemoryStorage", false},
		{"pure go sqlite", "sqlite", "*storage.SQLiteStorage", false},
		{"cgo sqlite", "sqlite3", "*storage.SQLiteStorage", false},
		{"unknown", "bolt", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.HistoryConfig{
				Driver:       tt.driver,
				Path:         filepath.Join(t.TempDir(), "history.db"),
				MaxOpenConns: 1,
				BusyTimeout:  time.Second,
			}

			s, err := Open(&cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Open() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			defer s.Close()

			if got := fmt.Sprintf("%T", s); got != tt.want {
				t.Errorf("Open() type = %s, want %s", got, tt.want)
			}
		})
	}
}
