// Package store persists pipeline runs in PostgreSQL.
//
// A run is stored as one runs row (summary and trace as jsonb), its canonical
// records in run_records (one text[] per row, canonical column order) and its
// validation findings in run_findings. Records and findings are written with
// COPY inside the same transaction as the run row.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gabbyignacio7/colony-bank-hmda-cra-tool-sub000/internal/core"
)

// DBTX is the interface for database operations.
// Satisfied by both *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

var (
	recordColumns  = []string{"run_id", "row_index", "merged", "field_values"}
	findingColumns = []string{"run_id", "row_index", "identifier", "is_valid", "finding"}
)

// Store is a core.RunStore backed by a pgx pool.
type Store struct {
	pool *pgxpool.Pool
}

var _ core.RunStore = (*Store)(nil)

// New creates a Store.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Migrate creates the tables if they do not exist.
func (s *Store) Migrate(ctx context.Context) error {
	return Migrate(ctx, s.pool)
}

// SaveRun writes a run, its records and its findings in one transaction.
func (s *Store) SaveRun(ctx context.Context, run *core.Run) error {
	id, err := runUUID(run.ID)
	if err != nil {
		return err
	}
	summary, err := json.Marshal(run.RunSummary)
	if err != nil {
		return fmt.Errorf("encode summary: %w", err)
	}
	trace, err := json.Marshal(run.Trace)
	if err != nil {
		return fmt.Errorf("encode trace: %w", err)
	}
	findings, err := findingRows(id, run.Findings)
	if err != nil {
		return err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO runs (id, created_at, summary, trace)
		VALUES ($1, $2, $3, $4)`,
		id, run.CreatedAt, summary, trace)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	if _, err := tx.CopyFrom(ctx, pgx.Identifier{"run_records"}, recordColumns,
		pgx.CopyFromRows(recordRows(id, run.Records))); err != nil {
		return fmt.Errorf("copy records: %w", err)
	}
	if _, err := tx.CopyFrom(ctx, pgx.Identifier{"run_findings"}, findingColumns,
		pgx.CopyFromRows(findings)); err != nil {
		return fmt.Errorf("copy findings: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// LoadRun reads a run with its records and findings.
// A missing run yields core.ErrRunNotFound.
func (s *Store) LoadRun(ctx context.Context, id string) (*core.Run, error) {
	rid, err := runUUID(id)
	if err != nil {
		return nil, core.ErrRunNotFound
	}

	var summary, trace []byte
	err = s.pool.QueryRow(ctx, `SELECT summary, trace FROM runs WHERE id = $1`, rid).Scan(&summary, &trace)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, core.ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query run: %w", err)
	}

	run := &core.Run{}
	if err := json.Unmarshal(summary, &run.RunSummary); err != nil {
		return nil, fmt.Errorf("decode summary: %w", err)
	}
	if err := json.Unmarshal(trace, &run.Trace); err != nil {
		return nil, fmt.Errorf("decode trace: %w", err)
	}

	if run.Records, err = loadRecords(ctx, s.pool, rid); err != nil {
		return nil, err
	}
	if run.Findings, err = loadFindings(ctx, s.pool, rid); err != nil {
		return nil, err
	}
	return run, nil
}

// ListRuns returns the summaries of the newest runs.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]core.RunSummary, error) {
	rows, err := s.pool.Query(ctx, `SELECT summary FROM runs ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var out []core.RunSummary
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		var sum core.RunSummary
		if err := json.Unmarshal(raw, &sum); err != nil {
			return nil, fmt.Errorf("decode summary: %w", err)
		}
		out = append(out, sum)
	}
	return out, rows.Err()
}

// DeleteRun removes a run. Records and findings cascade.
func (s *Store) DeleteRun(ctx context.Context, id string) error {
	rid, err := runUUID(id)
	if err != nil {
		return core.ErrRunNotFound
	}
	tag, err := s.pool.Exec(ctx, `DELETE FROM runs WHERE id = $1`, rid)
	if err != nil {
		return fmt.Errorf("delete run: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return core.ErrRunNotFound
	}
	return nil
}

func loadRecords(ctx context.Context, db DBTX, id pgtype.UUID) ([]core.CanonicalRecord, error) {
	rows, err := db.Query(ctx, `
		SELECT merged, field_values FROM run_records
		WHERE run_id = $1 ORDER BY row_index`, id)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	var out []core.CanonicalRecord
	for rows.Next() {
		var (
			merged bool
			values []string
		)
		if err := rows.Scan(&merged, &values); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		rec, err := core.RecordFromValues(values)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", len(out), err)
		}
		rec.Merged = merged
		out = append(out, rec)
	}
	return out, rows.Err()
}

func loadFindings(ctx context.Context, db DBTX, id pgtype.UUID) ([]core.ValidationFinding, error) {
	rows, err := db.Query(ctx, `
		SELECT finding FROM run_findings
		WHERE run_id = $1 ORDER BY row_index`, id)
	if err != nil {
		return nil, fmt.Errorf("query findings: %w", err)
	}
	defer rows.Close()

	var out []core.ValidationFinding
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan finding: %w", err)
		}
		var f core.ValidationFinding
		if err := json.Unmarshal(raw, &f); err != nil {
			return nil, fmt.Errorf("decode finding: %w", err)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// recordRows builds COPY rows for run_records.
func recordRows(id pgtype.UUID, records []core.CanonicalRecord) [][]any {
	out := make([][]any, len(records))
	for i := range records {
		out[i] = []any{id, int32(i), records[i].Merged, records[i].Values()}
	}
	return out
}

// findingRows builds COPY rows for run_findings.
func findingRows(id pgtype.UUID, findings []core.ValidationFinding) ([][]any, error) {
	out := make([][]any, len(findings))
	for i, f := range findings {
		raw, err := json.Marshal(f)
		if err != nil {
			return nil, fmt.Errorf("encode finding %d: %w", f.RowIndex, err)
		}
		out[i] = []any{id, int32(f.RowIndex), f.Identifier, f.IsValid, raw}
	}
	return out, nil
}

func runUUID(id string) (pgtype.UUID, error) {
	u, err := uuid.Parse(id)
	if err != nil {
		return pgtype.UUID{}, fmt.Errorf("invalid run id %q: %w", id, err)
	}
	return pgtype.UUID{Bytes: u, Valid: true}, nil
}
