// Package journal persists encounter history to SQLite.
package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

var ErrNotFound = errors.New("not found")

type Encounter struct {
	ID        string
	StartedAt time.Time
}

type Event struct {
	Seq         int64
	EncounterID string
	At          time.Time
	Rule        string
	Kind        string
	Detail      string
	Line        string
}

type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the journal at path and applies the
// migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	dsn := MemoryPath
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, fmt.Errorf("create journal dir: %w", err)
		}
		dsn = fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)", path)
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// One connection keeps :memory: a single database.
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		db.Close() //nolint:errcheck
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if err := ApplyMigrations(ctx, db); err != nil {
		db.Close() //nolint:errcheck
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) InsertEncounter(ctx context.Context, enc Encounter) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO encounters(encounter_id, started_at) VALUES (?, ?)`,
		enc.ID, ts(enc.StartedAt))
	if err != nil {
		return fmt.Errorf("insert encounter: %w", err)
	}
	return nil
}

func (s *Store) InsertEvent(ctx context.Context, ev Event) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO events(encounter_id, at, rule, kind, detail, line)
VALUES (?, ?, ?, ?, ?, ?)`,
		ev.EncounterID, ts(ev.At), ev.Rule, ev.Kind, ev.Detail, ev.Line)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

// ListEncounters returns the most recent encounters first.
func (s *Store) ListEncounters(ctx context.Context, limit int) ([]Encounter, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT encounter_id, started_at FROM encounters
ORDER BY started_at DESC, rowid DESC
LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list encounters: %w", err)
	}
	defer rows.Close()

	var out []Encounter
	for rows.Next() {
		var enc Encounter
		var started string
		if err := rows.Scan(&enc.ID, &started); err != nil {
			return nil, fmt.Errorf("scan encounter: %w", err)
		}
		if enc.StartedAt, err = parseTS(started); err != nil {
			return nil, err
		}
		out = append(out, enc)
	}
	return out, rows.Err()
}

// ListEvents returns an encounter's events in arrival order.
func (s *Store) ListEvents(ctx context.Context, encounterID string) ([]Event, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM encounters WHERE encounter_id = ?`, encounterID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lookup encounter: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT seq, encounter_id, at, rule, kind, detail, line FROM events
WHERE encounter_id = ?
ORDER BY seq`, encounterID)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var ev Event
		var at string
		if err := rows.Scan(&ev.Seq, &ev.EncounterID, &at, &ev.Rule, &ev.Kind, &ev.Detail, &ev.Line); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		if ev.At, err = parseTS(at); err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}

func ts(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTS(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t, nil
}
