// Package sqlite provides the single-file SQLite store used for local and
// small-shelter deployments. It reads legacy rows as well as its own: trait
// maps and tag lists are JSON text columns normalized on the way out.
package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// DB wraps a SQLite connection.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path and applies the schema.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("op=sqlite.open: %w", err)
	}
	conn.SetMaxOpenConns(1)

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("op=sqlite.migrate: %w", err)
	}
	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error { return db.conn.Close() }

// Ping satisfies the readiness Pinger.
func (db *DB) Ping(ctx context.Context) error { return db.conn.PingContext(ctx) }

func (db *DB) Animals() *AnimalRepo   { return &AnimalRepo{db: db.conn} }
func (db *DB) Adopters() *AdopterRepo { return &AdopterRepo{db: db.conn} }
func (db *DB) Tasks() *TaskRepo       { return &TaskRepo{db: db.conn} }

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS animals (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		species TEXT NOT NULL DEFAULT '',
		breed TEXT NOT NULL DEFAULT '',
		health TEXT NOT NULL DEFAULT '',
		behavior TEXT NOT NULL DEFAULT '',
		intake_date TEXT NOT NULL DEFAULT '',
		age REAL,
		size TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'available',
		personality TEXT,
		tags TEXT,
		created_at TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS adopters (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		housing_size TEXT NOT NULL DEFAULT '',
		has_yard INTEGER,
		activity_level TEXT NOT NULL DEFAULT '',
		hours_alone INTEGER,
		travels_frequently INTEGER,
		has_trait_preference INTEGER,
		preferred_traits TEXT,
		preferred_size TEXT NOT NULL DEFAULT '',
		preferred_age_bracket TEXT NOT NULL DEFAULT '',
		preferred_gender TEXT NOT NULL DEFAULT '',
		ideal_tags TEXT,
		previous_experience TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS tasks (
		id TEXT PRIMARY KEY,
		animal_id TEXT NOT NULL,
		type TEXT NOT NULL,
		due_date TEXT NOT NULL,
		notes TEXT NOT NULL DEFAULT '',
		done INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL DEFAULT ''
	);

	CREATE INDEX IF NOT EXISTS idx_tasks_animal ON tasks(animal_id);
	`
	_, err := db.conn.Exec(schema)
	return err
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		t = time.Now().UTC()
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
