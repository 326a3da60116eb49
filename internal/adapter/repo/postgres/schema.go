package postgres

import (
	"context"
	"fmt"
)

const schemaDDL = `
CREATE TABLE IF NOT EXISTS animals (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	species TEXT NOT NULL DEFAULT '',
	breed TEXT NOT NULL DEFAULT '',
	health TEXT NOT NULL DEFAULT '',
	behavior TEXT NOT NULL DEFAULT '',
	intake_date TEXT NOT NULL DEFAULT '',
	age DOUBLE PRECISION NOT NULL DEFAULT 0,
	size TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL DEFAULT 'available',
	personality JSONB,
	tags JSONB,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS adopters (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	email TEXT NOT NULL DEFAULT '',
	phone TEXT NOT NULL DEFAULT '',
	housing_size TEXT NOT NULL DEFAULT '',
	has_yard BOOLEAN NOT NULL DEFAULT false,
	activity_level TEXT NOT NULL DEFAULT '',
	hours_alone INTEGER NOT NULL DEFAULT 0,
	travels_frequently BOOLEAN NOT NULL DEFAULT false,
	has_trait_preference BOOLEAN NOT NULL DEFAULT false,
	preferred_traits JSONB,
	preferred_size TEXT NOT NULL DEFAULT '',
	preferred_age_bracket TEXT NOT NULL DEFAULT '',
	preferred_gender TEXT NOT NULL DEFAULT '',
	ideal_tags JSONB,
	previous_experience TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS tasks (
	id TEXT PRIMARY KEY,
	animal_id TEXT NOT NULL REFERENCES animals(id) ON DELETE CASCADE,
	type TEXT NOT NULL,
	due_date TEXT NOT NULL,
	notes TEXT NOT NULL DEFAULT '',
	done BOOLEAN NOT NULL DEFAULT false,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_tasks_animal ON tasks(animal_id);
CREATE INDEX IF NOT EXISTS idx_tasks_pending ON tasks(done) WHERE NOT done;
`

// EnsureSchema creates the tables when they are missing.
func EnsureSchema(ctx context.Context, p PgxPool) error {
	if _, err := p.Exec(ctx, schemaDDL); err != nil {
		return fmt.Errorf("op=postgres.ensure_schema: %w", err)
	}
	return nil
}
