package store

import (
	"context"
	"fmt"
)

// schema is applied statement by statement; every statement is idempotent.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS runs (
		id         uuid PRIMARY KEY,
		created_at timestamptz NOT NULL DEFAULT now(),
		summary    jsonb NOT NULL,
		trace      jsonb NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS runs_created_at_idx ON runs (created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS run_records (
		run_id       uuid NOT NULL REFERENCES runs (id) ON DELETE CASCADE,
		row_index    integer NOT NULL,
		merged       boolean NOT NULL DEFAULT false,
		field_values text[] NOT NULL,
		PRIMARY KEY (run_id, row_index)
	)`,
	`CREATE TABLE IF NOT EXISTS run_findings (
		run_id     uuid NOT NULL REFERENCES runs (id) ON DELETE CASCADE,
		row_index  integer NOT NULL,
		identifier text NOT NULL,
		is_valid   boolean NOT NULL,
		finding    jsonb NOT NULL,
		PRIMARY KEY (run_id, row_index)
	)`,
	`CREATE INDEX IF NOT EXISTS run_findings_invalid_idx ON run_findings (run_id) WHERE NOT is_valid`,
}

// Migrate creates the run tables on db.
func Migrate(ctx context.Context, db DBTX) error {
	for i, stmt := range schema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i+1, err)
		}
	}
	return nil
}
