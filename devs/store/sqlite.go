package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	_ "modernc.org/sqlite"
)

// SQLiteStore is a single-file TraceStore backed by modernc.org/sqlite
// (pure Go, no cgo). Same WAL-mode-plus-busy-timeout connection setup and
// auto-migrate-on-open shape as a larger checkpoint/outbox-oriented store
// would use, with the schema collapsed down to the single append-only
// trace table this domain actually needs.
type SQLiteStore struct {
	db   *sql.DB
	mu   sync.Mutex
	path string
}

// NewSQLiteStore opens (creating if absent) a SQLite database at path and
// migrates its schema. Pass ":memory:" for an ephemeral database.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite connection: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	ctx := context.Background()
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("set %q: %w", pragma, err)
		}
	}

	s := &SQLiteStore{db: db, path: path}
	if err := s.createTables(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) createTables(ctx context.Context) error {
	const traceTable = `
		CREATE TABLE IF NOT EXISTS trace_records (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL,
			seq INTEGER NOT NULL,
			t TEXT NOT NULL,
			msg TEXT NOT NULL
		)
	`
	if _, err := s.db.ExecContext(ctx, traceTable); err != nil {
		return fmt.Errorf("create trace_records: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, "CREATE INDEX IF NOT EXISTS idx_trace_run_seq ON trace_records(run_id, seq)"); err != nil {
		return fmt.Errorf("create idx_trace_run_seq: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Append(ctx context.Context, runID string, t string, msg string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var next int
	row := s.db.QueryRowContext(ctx, "SELECT COALESCE(MAX(seq), -1) + 1 FROM trace_records WHERE run_id = ?", runID)
	if err := row.Scan(&next); err != nil {
		return fmt.Errorf("compute next seq: %w", err)
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO trace_records (run_id, seq, t, msg) VALUES (?, ?, ?, ?)",
		runID, next, t, msg)
	if err != nil {
		return fmt.Errorf("insert trace record: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Load(ctx context.Context, runID string) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT t, msg FROM trace_records WHERE run_id = ? ORDER BY seq ASC", runID)
	if err != nil {
		return nil, fmt.Errorf("query trace records: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.Time, &r.Msg); err != nil {
			return nil, fmt.Errorf("scan trace record: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate trace records: %w", err)
	}
	if len(out) == 0 {
		return nil, ErrNotFound
	}
	return out, nil
}

// Close releases the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

var _ TraceStore = (*SQLiteStore)(nil)
