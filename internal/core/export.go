package core

// export.go writes pipeline output as CSV: the canonical 126-column table
// and the exception report consumed by reviewers.

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ExceptionHeader is the column layout of the exception report.
var ExceptionHeader = []string{"rowIndex", "identifier", "isValid", "errors", "warnings", "autoCorrected"}

// WriteCanonicalCSV writes the header and one row per record in canonical order.
func WriteCanonicalCSV(w io.Writer, records []CanonicalRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i := range records {
		if err := cw.Write(records[i].values[:]); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteExceptionReport writes findings that carry an error, a warning or a
// correction. Clean rows are omitted.
func WriteExceptionReport(w io.Writer, findings []ValidationFinding) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ExceptionHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, f := range findings {
		if f.IsValid && len(f.Warnings) == 0 && len(f.AutoCorrected) == 0 {
			continue
		}
		row := []string{
			strconv.Itoa(f.RowIndex),
			f.Identifier,
			strconv.FormatBool(f.IsValid),
			strings.Join(f.Errors, "; "),
			strings.Join(f.Warnings, "; "),
			formatCorrections(f.AutoCorrected),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write finding %d: %w", f.RowIndex, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatCorrections(c map[string]Correction) string {
	parts := make([]string, 0, len(c))
	for _, field := range sortedKeys(c) {
		parts = append(parts, fmt.Sprintf("%s: %s -> %s", field, c[field].From, c[field].To))
	}
	return strings.Join(parts, "; ")
}
