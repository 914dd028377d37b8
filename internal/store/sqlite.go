package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/amishk599/jobdigest/internal/model"
)

// Ensure SQLiteStore implements model.RunLog.
var _ model.RunLog = (*SQLiteStore)(nil)

// SQLiteStore keeps a history of digest runs in a SQLite database. It records
// counts and delivery status only, never job identities.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath and ensures the
// digest_runs table exists.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging sqlite db: %w", err)
	}

	createTable := `CREATE TABLE IF NOT EXISTS digest_runs (
		id        INTEGER PRIMARY KEY AUTOINCREMENT,
		ran_at    TEXT NOT NULL,
		fetched   INTEGER NOT NULL,
		delivered INTEGER NOT NULL,
		status    INTEGER NOT NULL,
		error     TEXT NOT NULL DEFAULT ''
	)`
	if _, err := db.Exec(createTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating digest_runs table: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Record appends one run outcome.
func (s *SQLiteStore) Record(rec model.RunRecord) error {
	_, err := s.db.Exec(
		"INSERT INTO digest_runs (ran_at, fetched, delivered, status, error) VALUES (?, ?, ?, ?, ?)",
		rec.RanAt.UTC().Format(time.RFC3339), rec.Fetched, rec.Delivered, rec.Status, rec.Err,
	)
	if err != nil {
		return fmt.Errorf("recording digest run: %w", err)
	}
	return nil
}

// Recent returns up to limit runs, newest first.
func (s *SQLiteStore) Recent(limit int) ([]model.RunRecord, error) {
	rows, err := s.db.Query(
		"SELECT id, ran_at, fetched, delivered, status, error FROM digest_runs ORDER BY id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("listing digest runs: %w", err)
	}
	defer rows.Close()

	var out []model.RunRecord
	for rows.Next() {
		var (
			rec   model.RunRecord
			ranAt string
		)
		if err := rows.Scan(&rec.ID, &ranAt, &rec.Fetched, &rec.Delivered, &rec.Status, &rec.Err); err != nil {
			return nil, fmt.Errorf("scanning digest run: %w", err)
		}
		rec.RanAt, err = time.Parse(time.RFC3339, ranAt)
		if err != nil {
			return nil, fmt.Errorf("parsing ran_at %q: %w", ranAt, err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing digest runs: %w", err)
	}
	return out, nil
}

// Cleanup deletes runs older than the given duration.
func (s *SQLiteStore) Cleanup(olderThan time.Duration) error {
	cutoff := time.Now().Add(-olderThan).UTC().Format(time.RFC3339)
	_, err := s.db.Exec("DELETE FROM digest_runs WHERE ran_at < ?", cutoff)
	if err != nil {
		return fmt.Errorf("cleaning up digest runs older than %v: %w", olderThan, err)
	}
	return nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
