package audit

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	mgerrors "git.home.luguber.info/inful/metricsgate/internal/errors"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewSQLiteStore creates a new SQLite-based denial store.
// Use ":memory:" for an in-memory database, or a file path for persistence.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, mgerrors.AuditStore("open", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.initialize(); err != nil {
		_ = db.Close() // Best effort cleanup on initialization error
		return nil, mgerrors.AuditStore("initialize", err)
	}

	return store, nil
}

func (s *SQLiteStore) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS denials (
		id TEXT PRIMARY KEY,
		identity TEXT NOT NULL,
		capability TEXT NOT NULL,
		metric TEXT NOT NULL,
		tenant_id TEXT,
		occurred_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_denials_identity ON denials(identity);
	CREATE INDEX IF NOT EXISTS idx_denials_occurred_at ON denials(occurred_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Append adds a denial record to the store.
func (s *SQLiteStore) Append(ctx context.Context, d Denial) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO denials (id, identity, capability, metric, tenant_id, occurred_at) VALUES (?, ?, ?, ?, ?, ?)",
		d.ID, d.Identity, d.Capability, d.Metric, d.TenantID, d.OccurredAt.Unix(),
	)
	if err != nil {
		return mgerrors.AuditStore("append", err)
	}
	return nil
}

// Recent returns the most recent denials, newest first.
func (s *SQLiteStore) Recent(ctx context.Context, limit int) ([]Denial, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, identity, capability, metric, tenant_id, occurred_at FROM denials ORDER BY occurred_at DESC, id LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, mgerrors.AuditStore("query", err)
	}
	defer rows.Close()

	var denials []Denial
	for rows.Next() {
		var d Denial
		var occurredUnix int64
		if err := rows.Scan(&d.ID, &d.Identity, &d.Capability, &d.Metric, &d.TenantID, &occurredUnix); err != nil {
			return nil, fmt.Errorf("scan denial: %w", err)
		}
		d.OccurredAt = time.Unix(occurredUnix, 0)
		denials = append(denials, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return denials, nil
}

// Prune deletes records older than cutoff.
func (s *SQLiteStore) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx,
		"DELETE FROM denials WHERE occurred_at < ?", cutoff.Unix(),
	)
	if err != nil {
		return 0, mgerrors.AuditStore("prune", err)
	}
	return res.RowsAffected()
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}
