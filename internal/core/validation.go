package core

// validation.go flags invalid or suspicious canonical records.
//
// Validation never blocks output. Every record gets exactly one finding:
//  1. Errors: missing identifiers, missing required codes, out-of-range values
//  2. Warnings: informational gaps a reviewer should look at
//  3. Auto-corrections: from -> to mappings for fields that can be fixed safely
//
// A record is valid when it has no errors, whatever its warnings.

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// ValidationError represents a single validation problem for a field.
type ValidationError struct {
	Field   string // Field/column name
	Value   string // The offending value
	Message string // Human-readable error message
}

func (e ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// Correction is a safe normalization of one field value.
type Correction struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// ValidationFinding is the validation outcome of one record.
type ValidationFinding struct {
	RowIndex      int                   `json:"rowIndex"` // zero-based position in the batch
	Identifier    string                `json:"identifier"`
	IsValid       bool                  `json:"isValid"`
	Errors        []string              `json:"errors"`
	Warnings      []string              `json:"warnings"`
	AutoCorrected map[string]Correction `json:"autoCorrected"`
}

var (
	minInterestRate = decimal.Zero
	maxInterestRate = decimal.NewFromInt(25)
)

// stateCodeSuffix matches a two-letter code followed only by punctuation,
// digits or spaces ("GA.", "GA - ").
var stateCodeSuffix = regexp.MustCompile(`^([A-Za-z]{2})[^A-Za-z]+$`)

var validActions = map[string]bool{
	"1": true, "2": true, "3": true, "4": true,
	"5": true, "6": true, "7": true, "8": true,
}

// Validate returns one finding per record, in order.
func Validate(records []CanonicalRecord) []ValidationFinding {
	out := make([]ValidationFinding, len(records))
	for i := range records {
		out[i] = ValidateRecord(i, &records[i])
	}
	return out
}

// ValidateRecord validates a single record at position row.
func ValidateRecord(row int, rec *CanonicalRecord) ValidationFinding {
	var errs, warns []ValidationError

	if rec.Get(FieldULI) == "" && rec.Get(FieldLEI) == "" {
		errs = append(errs, ValidationError{Field: "ULI/LEI", Message: "missing identifier, ULI or LEI is required"})
	}
	if rec.Get(FieldLoanType) == "" {
		errs = append(errs, ValidationError{Field: string(FieldLoanType), Message: "required field is empty"})
	}

	action := rec.Get(FieldAction)
	switch {
	case action == "":
		errs = append(errs, ValidationError{Field: string(FieldAction), Message: "required field is empty"})
	case !validActions[action]:
		errs = append(errs, ValidationError{
			Field:   string(FieldAction),
			Value:   action,
			Message: fmt.Sprintf("invalid action taken code %q, expected 1-8", action),
		})
	}

	if e, w := checkInterestRate(rec.Get(FieldInterestRate)); e != nil {
		errs = append(errs, *e)
	} else if w != nil {
		warns = append(warns, *w)
	}

	if rec.Get(FieldAddress) == "" {
		warns = append(warns, ValidationError{Field: string(FieldAddress), Message: "property address is missing"})
	}
	if action == "1" && rec.Get(FieldIncome) == "" {
		warns = append(warns, ValidationError{Field: string(FieldIncome), Message: "income is missing on an originated loan"})
	}
	if amt := rec.Get(FieldLoanAmount); amt == "" || Str(amt).IsZero() {
		warns = append(warns, ValidationError{Field: string(FieldLoanAmount), Value: amt, Message: WarnLoanAmount})
	}

	f := ValidationFinding{
		RowIndex:      row,
		Identifier:    recordIdentifier(row, rec),
		IsValid:       len(errs) == 0,
		Errors:        messages(errs),
		Warnings:      messages(warns),
		AutoCorrected: corrections(rec),
	}
	return f
}

// checkInterestRate flags a present, positive rate outside [0, 25].
// Blank and zero rates are not checked; non-numeric text is a warning.
func checkInterestRate(raw string) (errp, warnp *ValidationError) {
	if raw == "" || strings.EqualFold(raw, "NA") || strings.EqualFold(raw, "Exempt") {
		return nil, nil
	}
	f, ok := Str(raw).Float()
	if !ok {
		return nil, &ValidationError{Field: string(FieldInterestRate), Value: raw, Message: "interest rate is not numeric"}
	}
	rate := decimal.NewFromFloat(f)
	if !rate.IsPositive() {
		return nil, nil
	}
	if rate.LessThan(minInterestRate) || rate.GreaterThan(maxInterestRate) {
		return &ValidationError{
			Field:   string(FieldInterestRate),
			Value:   raw,
			Message: fmt.Sprintf("interest rate %s%% outside 0-25%%", rate.String()),
		}, nil
	}
	return nil, nil
}

// corrections records safe normalizations of state, ZIP and county.
func corrections(rec *CanonicalRecord) map[string]Correction {
	out := map[string]Correction{}
	add := func(f Field, to string) {
		if from := rec.Get(f); to != "" && to != from {
			out[string(f)] = Correction{From: from, To: to}
		}
	}
	if s := rec.Get(FieldState); s != "" {
		add(FieldState, correctState(s))
	}
	if z := rec.Get(FieldZip); z != "" {
		add(FieldZip, correctZip(z))
	}
	if c := rec.Get(FieldCounty); c != "" {
		add(FieldCounty, correctCounty(c))
	}
	return out
}

// correctState maps a state name to its code, or drops trailing non-letters
// after a valid code. Misspelled names and other text are left alone.
func correctState(s string) string {
	if code, ok := NormalizeUsState(s); ok {
		return code
	}
	m := stateCodeSuffix.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return ""
	}
	if code := strings.ToUpper(m[1]); stateCodes[code] {
		return code
	}
	return ""
}

// correctZip strips non-digit characters when a 5 or 9 digit ZIP remains.
func correctZip(z string) string {
	var b strings.Builder
	for _, r := range z {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	switch len(digits) {
	case 5:
		return digits
	case 9:
		return digits[:5] + "-" + digits[5:]
	default:
		return ""
	}
}

// correctCounty zero-pads a numeric county FIPS code to 5 digits.
func correctCounty(c string) string {
	if !digitsRegex.MatchString(c) || len(c) >= 5 {
		return ""
	}
	return strings.Repeat("0", 5-len(c)) + c
}

// ApplyCorrections writes the finding's auto-corrections into rec.
func ApplyCorrections(rec *CanonicalRecord, f ValidationFinding) {
	for field, c := range f.AutoCorrected {
		rec.Set(Field(field), c.To)
	}
}

// recordIdentifier names a record for reports: ULI, loan number, LEI, or row.
func recordIdentifier(row int, rec *CanonicalRecord) string {
	for _, f := range []Field{FieldULI, FieldLoanNumber, FieldLEI} {
		if v := rec.Get(f); v != "" {
			return v
		}
	}
	return fmt.Sprintf("row %d", row+1)
}

func messages(errs []ValidationError) []string {
	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = e.Error()
	}
	return out
}
