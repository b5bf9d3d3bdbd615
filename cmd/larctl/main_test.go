package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gabbyignacio7/colony-bank-hmda-cra-tool-sub000/internal/core"
)

const primaryCSV = "Universal Loan Identifier (ULI),Loan Amount,Action Taken,Loan Type\n" +
	"U1,100000,1,1\n" +
	"U1,100000,1,1\n" +
	"U2,0,9,1\n"

const supplementalCSV = "ULI,APR\nU1,6.9\n"

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunWritesOutputs(t *testing.T) {
	dir := t.TempDir()
	primary := writeFile(t, dir, "los.csv", primaryCSV)
	supp := writeFile(t, dir, "supp.csv", supplementalCSV)
	exceptions := filepath.Join(dir, "exceptions.csv")
	trace := filepath.Join(dir, "trace.json")

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{
		"-primary", primary,
		"-supplemental", supp,
		"-exceptions", exceptions,
		"-trace", trace,
		"-log-level", "error",
	}, &stdout, &stderr)
	if err != nil {
		t.Fatalf("run: %v (stderr %s)", err, stderr.String())
	}

	rows, err := csv.NewReader(&stdout).ReadAll()
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("output rows = %d, want header + 2", len(rows))
	}
	if len(rows[0]) != core.FieldCount {
		t.Errorf("header columns = %d, want %d", len(rows[0]), core.FieldCount)
	}

	report, err := os.ReadFile(exceptions)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(report), "U2") {
		t.Errorf("exception report missing U2:\n%s", report)
	}

	raw, err := os.ReadFile(trace)
	if err != nil {
		t.Fatal(err)
	}
	var steps []core.StepTrace
	if err := json.Unmarshal(raw, &steps); err != nil {
		t.Fatalf("decode trace: %v", err)
	}
	if len(steps) != 5 {
		t.Errorf("trace steps = %d, want 5", len(steps))
	}
}

func TestRunOutputFile(t *testing.T) {
	dir := t.TempDir()
	primary := writeFile(t, dir, "los.csv", primaryCSV)
	out := filepath.Join(dir, "lar.csv")

	var stdout, stderr bytes.Buffer
	if err := run(context.Background(), []string{"-primary", primary, "-out", out}, &stdout, &stderr); err != nil {
		t.Fatalf("run: %v", err)
	}
	if stdout.Len() != 0 {
		t.Errorf("stdout = %q, want empty", stdout.String())
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), strings.Join(core.Header(), ",")) {
		t.Errorf("output does not start with the LAR header")
	}
}

func TestRunErrors(t *testing.T) {
	dir := t.TempDir()
	supp := writeFile(t, dir, "supp.csv", supplementalCSV)
	empty := writeFile(t, dir, "empty.csv", "")

	tests := []struct {
		name string
		args []string
		want error
	}{
		{"no primary", []string{"-supplemental", supp}, core.ErrNoPrimaryFile},
		{"empty primary", []string{"-primary", empty}, core.ErrEmptyFile},
		{"missing file", []string{"-primary", filepath.Join(dir, "nope.csv")}, os.ErrNotExist},
		{"stray argument", []string{"-primary", supp, "extra"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			err := run(context.Background(), tt.args, &stdout, &stderr)
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestFileList(t *testing.T) {
	var f fileList
	_ = f.Set("a.csv")
	_ = f.Set("b.csv")
	if f.String() != "a.csv,b.csv" {
		t.Errorf("String() = %q", f.String())
	}
}
