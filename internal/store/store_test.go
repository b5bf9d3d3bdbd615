package store

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/gabbyignacio7/colony-bank-hmda-cra-tool-sub000/internal/core"
)

func TestRecordRows(t *testing.T) {
	id, err := runUUID(uuid.NewString())
	if err != nil {
		t.Fatal(err)
	}

	var a, b core.CanonicalRecord
	a.Set(core.FieldULI, "U1")
	b.Set(core.FieldULI, "U2")
	b.Merged = true

	rows := recordRows(id, []core.CanonicalRecord{a, b})
	if len(rows) != 2 {
		t.Fatalf("rows = %d", len(rows))
	}
	if len(rows[0]) != len(recordColumns) {
		t.Fatalf("row width %d, want %d", len(rows[0]), len(recordColumns))
	}
	if rows[1][1] != int32(1) || rows[1][2] != true {
		t.Errorf("row 1 = %v", rows[1][:3])
	}
	values := rows[1][3].([]string)
	if len(values) != core.FieldCount {
		t.Fatalf("values = %d columns, want %d", len(values), core.FieldCount)
	}
	uli, _ := core.FieldIndex(core.FieldULI)
	lei, _ := core.FieldIndex(core.FieldLEI)
	if values[uli] != "U2" {
		t.Errorf("ULI column = %q, want U2", values[uli])
	}
	if values[lei] != "" {
		t.Errorf("LEI column = %q, want empty", values[lei])
	}
}

func TestFindingRows(t *testing.T) {
	id, _ := runUUID(uuid.NewString())
	findings := []core.ValidationFinding{
		{RowIndex: 4, Identifier: "U9", IsValid: false, Errors: []string{"Action: required field is empty"}},
	}
	rows, err := findingRows(id, findings)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows[0]) != len(findingColumns) {
		t.Fatalf("row width %d, want %d", len(rows[0]), len(findingColumns))
	}
	if rows[0][1] != int32(4) || rows[0][2] != "U9" || rows[0][3] != false {
		t.Errorf("row = %v", rows[0][:4])
	}

	var back core.ValidationFinding
	if err := json.Unmarshal(rows[0][4].([]byte), &back); err != nil {
		t.Fatal(err)
	}
	if back.Identifier != "U9" || len(back.Errors) != 1 {
		t.Errorf("decoded finding = %+v", back)
	}
}

func TestRunUUID(t *testing.T) {
	if _, err := runUUID("not-a-uuid"); err == nil {
		t.Error("expected error for malformed id")
	}
	u := uuid.New()
	got, err := runUUID(u.String())
	if err != nil || !got.Valid || got.Bytes != u {
		t.Errorf("runUUID = %v, %v", got, err)
	}
}

type execRecorder struct {
	stmts  []string
	failAt int
}

func (e *execRecorder) Exec(_ context.Context, sql string, _ ...interface{}) (pgconn.CommandTag, error) {
	e.stmts = append(e.stmts, sql)
	if e.failAt > 0 && len(e.stmts) == e.failAt {
		return pgconn.CommandTag{}, errors.New("permission denied")
	}
	return pgconn.NewCommandTag("CREATE TABLE"), nil
}

func (e *execRecorder) Query(context.Context, string, ...interface{}) (pgx.Rows, error) {
	return nil, errors.New("not implemented")
}

func (e *execRecorder) QueryRow(context.Context, string, ...interface{}) pgx.Row {
	return nil
}

func TestMigrate(t *testing.T) {
	db := &execRecorder{}
	if err := Migrate(context.Background(), db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	if len(db.stmts) != len(schema) {
		t.Fatalf("executed %d statements, want %d", len(db.stmts), len(schema))
	}
	if !strings.Contains(db.stmts[0], "CREATE TABLE IF NOT EXISTS runs") {
		t.Errorf("first statement = %q", db.stmts[0])
	}

	failing := &execRecorder{failAt: 3}
	err := Migrate(context.Background(), failing)
	if err == nil || !strings.Contains(err.Error(), "migration 3") {
		t.Errorf("Migrate = %v, want migration 3 failure", err)
	}
}
