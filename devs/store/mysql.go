package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
)

// MySQLStore is a TraceStore backed by a shared MySQL database, for runs
// whose trace needs to be visible to more than one process (multiple
// cmd/ runners inspecting the same run_id, or a separate reporting job).
// A dsn-driven sql.Open plus auto-migrate-on-open shape, schema collapsed
// the same way as SQLiteStore.
type MySQLStore struct {
	db *sql.DB
}

// NewMySQLStore opens a connection using dsn (a go-sql-driver/mysql data
// source name, e.g. "user:pass@tcp(127.0.0.1:3306)/dbname") and migrates
// its schema.
func NewMySQLStore(dsn string) (*MySQLStore, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("open mysql connection: %w", err)
	}

	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping mysql: %w", err)
	}

	s := &MySQLStore{db: db}
	if err := s.createTables(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}
	return s, nil
}

func (s *MySQLStore) createTables(ctx context.Context) error {
	const traceTable = `
		CREATE TABLE IF NOT EXISTS trace_records (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			run_id VARCHAR(255) NOT NULL,
			seq BIGINT NOT NULL,
			t VARCHAR(255) NOT NULL,
			msg TEXT NOT NULL,
			UNIQUE KEY uniq_run_seq (run_id, seq),
			KEY idx_run_id (run_id)
		) ENGINE=InnoDB
	`
	if _, err := s.db.ExecContext(ctx, traceTable); err != nil {
		return fmt.Errorf("create trace_records: %w", err)
	}
	return nil
}

func (s *MySQLStore) Append(ctx context.Context, runID string, t string, msg string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	var next int64
	row := tx.QueryRowContext(ctx, "SELECT COALESCE(MAX(seq), -1) + 1 FROM trace_records WHERE run_id = ? FOR UPDATE", runID)
	if err := row.Scan(&next); err != nil {
		return fmt.Errorf("compute next seq: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO trace_records (run_id, seq, t, msg) VALUES (?, ?, ?, ?)",
		runID, next, t, msg); err != nil {
		return fmt.Errorf("insert trace record: %w", err)
	}
	return tx.Commit()
}

func (s *MySQLStore) Load(ctx context.Context, runID string) ([]Record, error) {
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

// Close releases the underlying database connection pool.
func (s *MySQLStore) Close() error {
	return s.db.Close()
}

var _ TraceStore = (*MySQLStore)(nil)
