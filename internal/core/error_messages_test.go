package core

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{name: "nil error returns empty", err: nil, wantCode: ""},
		{name: "file too large", err: fmt.Errorf("read primary: %w", ErrFileTooLarge), wantCode: "FILE001"},
		{name: "no header row", err: fmt.Errorf("legacy.txt: %w", ErrNoHeader), wantCode: "FILE002"},
		{name: "no primary file", err: ErrNoPrimaryFile, wantCode: "FILE004"},
		{name: "empty file", err: ErrEmptyFile, wantCode: "FILE005"},
		{name: "csv parse error", err: errors.New("parse error on line 3, column 4: bare \" in non-quoted-field"), wantCode: "FILE006"},
		{name: "busy", err: ErrTooManyRuns, wantCode: "RUN001"},
		{name: "run not found", err: ErrRunNotFound, wantCode: "RUN002"},
		{name: "cancelled", err: context.Canceled, wantCode: "RUN003"},
		{name: "deadline", err: context.DeadlineExceeded, wantCode: "RUN004"},
		{name: "connection refused", err: errors.New("dial tcp 127.0.0.1:5432: connection refused"), wantCode: "DB001"},
		{name: "case insensitive", err: errors.New("DUPLICATE KEY value violates unique constraint"), wantCode: "DB003"},
		{name: "unknown error returns default", err: errors.New("some random internal error"), wantCode: "ERR000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("MapError() code = %q, want %q", got.Code, tt.wantCode)
			}
		})
	}
}

func TestFormatUserError(t *testing.T) {
	got := FormatUserError(ErrRunNotFound)
	want := "Run not found (Code: RUN002). The run may have expired, start a new run"
	if got != want {
		t.Errorf("FormatUserError() = %q, want %q", got, want)
	}
	if FormatUserError(nil) != "" {
		t.Error("FormatUserError(nil) should be empty")
	}
}

func TestIsUserFacing(t *testing.T) {
	if IsUserFacing(nil) {
		t.Error("nil error should not be user facing")
	}
	if !IsUserFacing(ErrEmptyFile) {
		t.Error("known error should be user facing")
	}
	if IsUserFacing(errors.New("random internal error xyz")) {
		t.Error("unknown error should not be user facing")
	}
}

func TestNewUserError(t *testing.T) {
	if got := NewUserError(nil); got != nil {
		t.Errorf("NewUserError(nil) = %v, want nil", got)
	}

	techErr := fmt.Errorf("acquire: %w", ErrTooManyRuns)
	userErr := NewUserError(techErr)
	if userErr.Error() != "System is busy processing other runs" {
		t.Errorf("Error() = %q, want user message", userErr.Error())
	}
	if !errors.Is(userErr, ErrTooManyRuns) {
		t.Error("Unwrap() should expose the original error")
	}
}
