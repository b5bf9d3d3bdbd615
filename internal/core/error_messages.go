// Package core provides the HMDA loan-record ETL: field normalization,
// deduplication, merge, transformation and validation.
//
// # Error Codes Reference
//
// Operational errors (never data problems, which are reported as findings)
// are mapped to user-friendly messages with a code for support reference.
//
// # File Errors (FILE001-FILE099)
//
//	FILE001 - File too large: file exceeds the upload size limit
//	          Patterns: "file too large", "request body too large"
//	FILE002 - No header: no recognisable header row in the first rows
//	          Patterns: "no header row"
//	FILE003 - Encoding error: file could not be decoded
//	          Patterns: "encoding error"
//	FILE004 - No file: no primary export was supplied
//	          Patterns: "no primary file"
//	FILE005 - Empty file: the file has no data rows
//	          Patterns: "empty file"
//	FILE006 - Malformed file: delimited text could not be parsed
//	          Patterns: "parse error", "wrong number of fields"
//
// # Run Errors (RUN001-RUN099)
//
//	RUN001 - System busy: all run slots are taken
//	         Patterns: "too many concurrent runs"
//	RUN002 - Run not found: unknown or expired run id
//	         Patterns: "run not found"
//	RUN003 - Request cancelled
//	         Patterns: "context canceled"
//	RUN004 - Request timeout
//	         Patterns: "context deadline exceeded"
//
// # Reference Data Errors (REF001-REF099)
//
//	REF001 - Reference data: branch/officer file could not be loaded
//	         Patterns: "reference data"
//
// # Database Errors (DB001-DB099)
//
//	DB001 - Connection refused       Patterns: "connection refused"
//	DB002 - Connection reset         Patterns: "connection reset"
//	DB003 - Duplicate run            Patterns: "duplicate key"
//	DB004 - Timeout                  Patterns: "timeout"
//
// # Default Error (ERR000)
//
// Fallback when no pattern matches. Check the logs for the technical error.
//
// Patterns are matched case-insensitively with strings.Contains; the first
// match wins, so specific patterns come before general ones.
package core

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors surfaced to callers.
var (
	ErrRunNotFound   = errors.New("run not found")
	ErrNoPrimaryFile = errors.New("no primary file provided")
	ErrEmptyFile     = errors.New("empty file: no data rows")
	ErrNoHeader      = errors.New("no header row found")
	ErrFileTooLarge  = errors.New("file too large")
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string `json:"message"` // What happened
	Action  string `json:"action"`  // What to do about it
	Code    string `json:"code"`    // Support reference
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

var (
	msgFileTooLarge = UserMessage{"File exceeds the maximum upload size", "Split the export into smaller files", "FILE001"}
	msgMalformed    = UserMessage{"File could not be parsed as delimited text", "Export the report as CSV, tab or pipe delimited text", "FILE006"}
	msgTimeout      = UserMessage{"Operation timed out", "Try again with a smaller batch", "DB004"}
)

// errorPatterns maps technical error text to user messages. Order matters.
var errorPatterns = []errorPattern{
	{"file too large", msgFileTooLarge},
	{"request body too large", msgFileTooLarge},
	{"no header row", UserMessage{"No header row was found in the file", "Check that the file is a loan export with column headers", "FILE002"}},
	{"encoding error", UserMessage{"File contains invalid characters", "Save the file as UTF-8", "FILE003"}},
	{"no primary file", UserMessage{"No primary loan export was selected", "Attach at least one primary, secondary or legacy export", "FILE004"}},
	{"empty file", UserMessage{"The file has no data rows", "Upload an export that contains loan rows", "FILE005"}},
	{"parse error", msgMalformed},
	{"wrong number of fields", msgMalformed},

	{"too many concurrent runs", UserMessage{"System is busy processing other runs", "Please wait a moment and try again", "RUN001"}},
	{"run not found", UserMessage{"Run not found", "The run may have expired, start a new run", "RUN002"}},
	{"context canceled", UserMessage{"Request was cancelled", "Please try again", "RUN003"}},
	{"context deadline exceeded", UserMessage{"Request timed out", "Try again with a smaller batch", "RUN004"}},

	{"reference data", UserMessage{"Branch reference data could not be loaded", "Check the reference data file path and format", "REF001"}},

	{"connection refused", UserMessage{"Unable to connect to database", "Please try again in a few moments", "DB001"}},
	{"connection reset", UserMessage{"Database connection was interrupted", "Please try again", "DB002"}},
	{"duplicate key", UserMessage{"This run was already saved", "Start a new run", "DB003"}},
	{"timeout", msgTimeout},
}

// defaultMessage is returned when no pattern matches.
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// A nil error yields the zero UserMessage.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}
	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}
	return defaultMessage
}

// FormatUserError renders "Message (Code: XXX). Action".
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err matches a known pattern.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}

// UserError pairs a technical error with its user message.
type UserError struct {
	Technical error
	User      UserMessage
}

func (e *UserError) Error() string { return e.User.Message }

func (e *UserError) Unwrap() error { return e.Technical }

// NewUserError maps err to a UserError, or returns nil for a nil error.
func NewUserError(err error) *UserError {
	if err == nil {
		return nil
	}
	return &UserError{Technical: err, User: MapError(err)}
}
