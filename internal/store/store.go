// Package store persists the clean sighting set to SQLite for ad-hoc
// querying after a run. Persistence is optional and entirely outside the
// artifact contract: the pipeline's outputs are identical with or without it.
package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/skywatch/sightings-etl/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS sightings (
	id               INTEGER PRIMARY KEY AUTOINCREMENT,
	timestamp        TEXT    NOT NULL,
	year             INTEGER NOT NULL,
	month            INTEGER NOT NULL,
	hour             INTEGER NOT NULL,
	duration_seconds REAL    NOT NULL,
	latitude         REAL    NOT NULL,
	longitude        REAL    NOT NULL,
	shape            TEXT    NOT NULL,
	country          TEXT    NOT NULL,
	state            TEXT    NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_sightings_country ON sightings(country);
CREATE INDEX IF NOT EXISTS idx_sightings_year ON sightings(year);
`

// Store wraps the SQLite database holding the clean set.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and ensures the schema exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set journal mode: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveSightings replaces the stored set with the given clean records inside a
// single transaction, so a re-run never leaves a partial mix of old and new.
func (s *Store) SaveSightings(sightings []domain.Sighting) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	if _, err := tx.Exec("DELETE FROM sightings"); err != nil {
		return fmt.Errorf("clear sightings: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO sightings
		(timestamp, year, month, hour, duration_seconds, latitude, longitude, shape, country, state)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i := range sightings {
		sg := &sightings[i]
		_, err := stmt.Exec(
			sg.Timestamp.UTC().Format(time.RFC3339),
			sg.Year, sg.Month, sg.Hour,
			sg.DurationSeconds, sg.Latitude, sg.Longitude,
			sg.Shape, sg.Country, sg.State,
		)
		if err != nil {
			return fmt.Errorf("insert sighting: %w", err)
		}
	}

	return tx.Commit()
}

// Count returns the number of stored sightings.
func (s *Store) Count() (int, error) {
	var n int
	err := s.db.QueryRow("SELECT COUNT(*) FROM sightings").Scan(&n)
	return n, err
}

// CountByCountry returns per-country counts, descending, ties broken
// alphabetically.
func (s *Store) CountByCountry() (domain.CountList, error) {
	rows, err := s.db.Query(`
		SELECT country, COUNT(*) AS n FROM sightings
		GROUP BY country ORDER BY n DESC, country ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out domain.CountList
	for rows.Next() {
		var lc domain.LabelCount
		if err := rows.Scan(&lc.Label, &lc.Count); err != nil {
			return nil, err
		}
		out = append(out, lc)
	}
	return out, rows.Err()
}
