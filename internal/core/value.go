package core

// value.go defines the loosely-typed cell model handed over by container parsers.
//
// Spreadsheet and text exports deliver cells as strings, numbers, or nothing.
// Value keeps those cases apart so that a numeric 0 or an empty string is never
// confused with a column that is not there at all.

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Reserved RawRecord keys. They never collide with export column names.
const (
	SourceKey = "_source"
	MergedKey = "_merged"
)

// Source tags recognised for dedup tie-breaking, highest priority first.
const (
	SourcePrimary   = "primary"
	SourceSecondary = "secondary"
	SourceLegacy    = "legacy"
)

var sourcePriority = map[string]int{
	SourcePrimary:   3,
	SourceSecondary: 2,
	SourceLegacy:    1,
}

// SourcePriority ranks a source tag. Unknown and empty tags rank lowest.
func SourcePriority(source string) int {
	return sourcePriority[strings.ToLower(strings.TrimSpace(source))]
}

type valueKind uint8

const (
	kindNull valueKind = iota
	kindString
	kindNumber
)

// Value is a scalar cell: null, string, or number.
// The zero Value is null.
type Value struct {
	kind valueKind
	str  string
	num  float64
}

// Null returns an explicit null cell.
func Null() Value { return Value{} }

// Str returns a string cell.
func Str(s string) Value { return Value{kind: kindString, str: s} }

// Num returns a numeric cell. NaN and infinities are stored as null.
func Num(f float64) Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Value{}
	}
	return Value{kind: kindNumber, num: f}
}

// IsNull reports whether the cell holds no value.
func (v Value) IsNull() bool { return v.kind == kindNull }

// IsNumber reports whether the cell was delivered as a number.
func (v Value) IsNumber() bool { return v.kind == kindNumber }

// String renders the cell as canonical text.
// Null renders as "", strings are trimmed, numbers use their shortest decimal form.
func (v Value) String() string {
	switch v.kind {
	case kindString:
		return strings.TrimSpace(v.str)
	case kindNumber:
		return decimal.NewFromFloat(v.num).String()
	default:
		return ""
	}
}

// IsBlank reports whether the rendered cell is empty.
func (v Value) IsBlank() bool { return v.String() == "" }

// IsZero reports whether the cell is a numeric zero (0, "0", "0.0", " 0 ").
func (v Value) IsZero() bool {
	switch v.kind {
	case kindNumber:
		return v.num == 0
	case kindString:
		s := strings.TrimSpace(v.str)
		if s == "" {
			return false
		}
		f, err := strconv.ParseFloat(s, 64)
		return err == nil && f == 0
	default:
		return false
	}
}

// Float returns the numeric value of the cell and whether it had one.
// Numeric strings with currency symbols or thousands separators are accepted.
func (v Value) Float() (float64, bool) {
	switch v.kind {
	case kindNumber:
		return v.num, true
	case kindString:
		return parseNumber(v.str)
	default:
		return 0, false
	}
}

// parseNumber parses a loosely formatted number: "$1,234.50", " 12 ", "(5)".
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	neg := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		neg = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	s = strings.NewReplacer("$", "", ",", "", "%", "").Replace(s)
	if !numericRegex.MatchString(s) {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	if neg {
		f = -f
	}
	return f, true
}

// RawRecord is one input row: source column name to cell value.
// Records are treated as immutable; helpers that change a record return a copy.
type RawRecord map[string]Value

// Source returns the provenance tag of the record, or "".
func (r RawRecord) Source() string {
	v, ok := r[SourceKey]
	if !ok {
		return ""
	}
	return v.String()
}

// Merged reports whether supplemental data was merged into the record.
func (r RawRecord) Merged() bool {
	v, ok := r[MergedKey]
	return ok && v.String() == "true"
}

// Clone returns a shallow copy of the record.
func (r RawRecord) Clone() RawRecord {
	out := make(RawRecord, len(r)+1)
	for k, v := range r {
		out[k] = v
	}
	return out
}

// FromStrings builds a record from string cells, tagging it with source.
// Empty cells are kept as empty strings, not nulls.
func FromStrings(cells map[string]string, source string) RawRecord {
	rec := make(RawRecord, len(cells)+1)
	for k, v := range cells {
		rec[k] = Str(v)
	}
	if source != "" {
		rec[SourceKey] = Str(source)
	}
	return rec
}
