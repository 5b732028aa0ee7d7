// Package sqlite provides SQLite-backed persistence for the call journal.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/harriothq/experience-console/internal/journal"
	"github.com/harriothq/experience-console/internal/platform/storage/sqlitemigrate"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

const defaultRecentLimit = 50

// Store provides SQLite-backed persistence for journal entries.
type Store struct {
	sqlDB *sql.DB
}

// Open opens and migrates a journal SQLite store at path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	if err := sqlitemigrate.Apply(sqlDB, migrationFS, "migrations"); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close releases the underlying SQLite connection.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// AppendEntry inserts one journal entry.
func (s *Store) AppendEntry(ctx context.Context, entry journal.Entry) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(entry.ID) == "" {
		return fmt.Errorf("entry id is required")
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO gateway_calls (id, capability, sequence, outcome, error, latency_ms, recorded_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.ID,
		entry.Capability,
		int64(entry.Sequence),
		string(entry.Outcome),
		entry.Error,
		entry.Latency.Milliseconds(),
		entry.RecordedAt.UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("insert journal entry: %w", err)
	}
	return nil
}

// RecentEntries returns the newest entries, most recent first. A
// non-positive limit falls back to a default.
func (s *Store) RecentEntries(ctx context.Context, limit int) ([]journal.Entry, error) {
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	if limit <= 0 {
		limit = defaultRecentLimit
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, capability, sequence, outcome, error, latency_ms, recorded_at
		 FROM gateway_calls
		 ORDER BY recorded_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query journal entries: %w", err)
	}
	defer rows.Close()

	var entries []journal.Entry
	for rows.Next() {
		var entry journal.Entry
		var sequence int64
		var outcome string
		var latencyMS int64
		var recordedAt int64
		if err := rows.Scan(
			&entry.ID,
			&entry.Capability,
			&sequence,
			&outcome,
			&entry.Error,
			&latencyMS,
			&recordedAt,
		); err != nil {
			return nil, fmt.Errorf("scan journal entry: %w", err)
		}
		entry.Sequence = uint64(sequence)
		entry.Outcome = journal.Outcome(outcome)
		entry.Latency = time.Duration(latencyMS) * time.Millisecond
		entry.RecordedAt = time.UnixMilli(recordedAt).UTC()
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate journal entries: %w", err)
	}
	return entries, nil
}
