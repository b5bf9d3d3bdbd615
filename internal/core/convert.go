package core

// convert.go provides the value derivers that canonicalize individual HMDA fields.
//
// These functions handle the messy reality of loan-system exports:
//   - Dates as text, as YYYYMMDD numbers, or as spreadsheet day serials
//   - Census tracts with decimal points and dropped leading zeros
//   - Free-text AUS vendor names instead of HMDA codes
//   - Loan terms that may be in years or in months
//
// Every deriver is total: it never panics and always returns a string,
// returning the input unchanged when it cannot map it safely.

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// numericRegex validates that a string is a plain decimal number after cleanup.
var numericRegex = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

var (
	digitsRegex    = regexp.MustCompile(`^\d+$`)
	ausSystemCode  = regexp.MustCompile(`^[1-6]$`)
	ausResultCode  = regexp.MustCompile(`^([1-9]|1[0-7])$`)
	separatorRegex = regexp.MustCompile(`[\s/_\-]+`)
)

// PlaceholderCode marks a value the LOS exports when the field was never keyed.
// It is not a valid HMDA code.
const PlaceholderCode = "1111"

// Spreadsheet serial date bounds and epoch offset.
// Serial 25569 is 1970-01-01 in the 1900 date system.
const (
	serialUnixEpoch = 25569
	serialMin       = 1000
	serialMax       = 100000
)

// FormatDate renders a date as M/D/YY.
//
// Text dates (ISO or slash form) are returned unchanged. An eight digit
// YYYYMMDD value is parsed positionally. Other numbers are spreadsheet
// serials; serials outside [1000, 100000] are not dates and are returned
// as text.
func FormatDate(v Value) string {
	s := v.String()
	if s == "" {
		return ""
	}

	if len(s) == 8 && digitsRegex.MatchString(s) {
		y, _ := strconv.Atoi(s[0:4])
		m, _ := strconv.Atoi(s[4:6])
		d, _ := strconv.Atoi(s[6:8])
		if validYMD(y, m, d) {
			return shortDate(y, time.Month(m), d)
		}
		return s
	}

	f, ok := v.Float()
	if !ok || !numericRegex.MatchString(s) {
		return s
	}
	if f < serialMin || f > serialMax {
		return s
	}
	t := time.Unix(0, 0).UTC().AddDate(0, 0, int(math.Floor(f))-serialUnixEpoch)
	return shortDate(t.Year(), t.Month(), t.Day())
}

func validYMD(y, m, d int) bool {
	if m < 1 || m > 12 || d < 1 || d > 31 || y < 1900 {
		return false
	}
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	return t.Day() == d
}

func shortDate(y int, m time.Month, d int) string {
	return fmt.Sprintf("%d/%d/%02d", int(m), d, y%100)
}

// SplitName splits a combined borrower name.
//
// "Last, First Middle" splits on the first comma and keeps the first token
// after it as the first name. "First Last" splits on the first space and
// everything after it is the last name. A single token is a last name.
func SplitName(full string) (first, last string) {
	full = strings.Join(strings.Fields(full), " ")
	if full == "" {
		return "", ""
	}

	if i := strings.Index(full, ","); i >= 0 {
		last = strings.TrimSpace(full[:i])
		rest := strings.TrimSpace(full[i+1:])
		if j := strings.Index(rest, " "); j >= 0 {
			rest = rest[:j]
		}
		return rest, last
	}

	if i := strings.Index(full, " "); i >= 0 {
		return full[:i], strings.TrimSpace(full[i+1:])
	}
	return "", full
}

// FormatTract renders a census tract as an 11 digit code.
//
// NA and Exempt (any case) are upper-cased and kept. Decimal points and
// leading zeros are removed and the digits left-padded to 11. Input that
// is not numeric, or longer than 11 digits, is returned unchanged.
func FormatTract(v Value) string {
	s := v.String()
	if s == "" {
		return ""
	}
	switch up := strings.ToUpper(s); up {
	case "NA", "EXEMPT":
		return up
	}

	digits := strings.TrimLeft(strings.ReplaceAll(s, ".", ""), "0")
	if digits != "" && !digitsRegex.MatchString(digits) {
		return s
	}
	if len(digits) > 11 {
		return s
	}
	return strings.Repeat("0", 11-len(digits)) + digits
}

// ausSystemNames maps vendor names to HMDA automated underwriting system codes.
var ausSystemNames = map[string]string{
	"desktop underwriter":                 "1",
	"du":                                  "1",
	"fannie mae du":                       "1",
	"fnma du":                             "1",
	"loan product advisor":                "2",
	"loan prospector":                     "2",
	"lpa":                                 "2",
	"lp":                                  "2",
	"freddie mac lpa":                     "2",
	"fhlmc lp":                            "2",
	"technology open to approved lenders": "3",
	"total scorecard":                     "3",
	"total":                               "3",
	"fha total":                           "3",
	"guaranteed underwriting system":      "4",
	"gus":                                 "4",
	"usda gus":                            "4",
	"other":                               "5",
	"not applicable":                      "6",
	"n a":                                 "6",
	"na":                                  "6",
	"none":                                "6",
	"manual":                              "6",
	"manual underwrite":                   "6",
}

// ausSystemPhrases are matched as substrings when no exact name matched.
var ausSystemPhrases = []struct {
	phrase, code string
}{
	{"desktop underwriter", "1"},
	{"loan product advisor", "2"},
	{"loan prospector", "2"},
	{"technology open to approved lenders", "3"},
	{"total scorecard", "3"},
	{"guaranteed underwriting", "4"},
}

// MapAUSystem maps an AUS vendor name to its HMDA code (1-6).
// Valid codes pass through, the 1111 placeholder becomes "", and
// unrecognised text is returned unchanged.
func MapAUSystem(v Value) string {
	s := v.String()
	if s == "" || s == PlaceholderCode {
		return ""
	}
	if ausSystemCode.MatchString(s) {
		return s
	}
	key := foldLabel(s)
	if code, ok := ausSystemNames[key]; ok {
		return code
	}
	for _, p := range ausSystemPhrases {
		if strings.Contains(key, p.phrase) {
			return p.code
		}
	}
	return s
}

// ausResultNames maps AUS decision text to HMDA result codes.
var ausResultNames = map[string]string{
	"approve eligible":                 "1",
	"approve ineligible":               "2",
	"refer eligible":                   "3",
	"refer ineligible":                 "4",
	"refer with caution":               "5",
	"refer w caution":                  "5",
	"out of scope":                     "6",
	"error":                            "7",
	"accept":                           "8",
	"caution":                          "9",
	"ineligible":                       "10",
	"incomplete":                       "11",
	"invalid":                          "12",
	"refer":                            "13",
	"eligible":                         "14",
	"unable to determine":              "15",
	"unknown":                          "15",
	"unable to determine or unknown":   "15",
	"other":                            "16",
	"not applicable":                   "17",
	"n a":                              "17",
	"na":                               "17",
	"accept eligible":                  "8",
	"caution eligible":                 "9",
	"approve eligible manual":          "1",
	"approve eligible with conditions": "1",
}

// MapAUSResult maps an AUS decision to its HMDA code (1-17).
// Valid codes pass through, the 1111 placeholder becomes "", and
// unrecognised text is returned unchanged.
func MapAUSResult(v Value) string {
	s := v.String()
	if s == "" || s == PlaceholderCode {
		return ""
	}
	if ausResultCode.MatchString(s) {
		return s
	}
	if code, ok := ausResultNames[foldLabel(s)]; ok {
		return code
	}
	return s
}

// Non-amortizing feature codes.
const (
	NonAmortBalloon      = "1"
	NonAmortInterestOnly = "2"
	NonAmortNegativeAm   = "3"
)

var nonAmortNames = map[string]string{
	"balloon":               NonAmortBalloon,
	"balloon payment":       NonAmortBalloon,
	"interest only":         NonAmortInterestOnly,
	"io":                    NonAmortInterestOnly,
	"interest only payment": NonAmortInterestOnly,
	"negative amortization": NonAmortNegativeAm,
	"neg am":                NonAmortNegativeAm,
	"negam":                 NonAmortNegativeAm,
}

// MapNonAmortizing derives the non-amortizing feature code.
//
// The balloon, interest-only and negative-amortization flags are checked in
// that order and the first set flag wins (1, 2, 3). Without a flag the raw
// value is mapped; blank, placeholder and unmapped input default to 2.
func MapNonAmortizing(raw Value, balloon, interestOnly, negAm Value) string {
	switch {
	case flagSet(balloon):
		return NonAmortBalloon
	case flagSet(interestOnly):
		return NonAmortInterestOnly
	case flagSet(negAm):
		return NonAmortNegativeAm
	}

	s := raw.String()
	switch s {
	case NonAmortBalloon, NonAmortInterestOnly, NonAmortNegativeAm:
		return s
	}
	if code, ok := nonAmortNames[foldLabel(s)]; ok {
		return code
	}
	return NonAmortInterestOnly
}

// flagSet reports whether a yes/no style flag is set.
// HMDA encodes "yes" as 1 and "no" as 2.
func flagSet(v Value) bool {
	switch strings.ToLower(v.String()) {
	case "1", "y", "yes", "true", "t", "x":
		return true
	default:
		return false
	}
}

// Rate type codes.
const (
	RateTypeFixed    = "1"
	RateTypeVariable = "2"
)

// introMonths returns the introductory rate period in months when it
// denotes a variable rate.
func introMonths(intro Value) (float64, bool) {
	s := intro.String()
	switch strings.ToUpper(s) {
	case "", "N/A", "NA", "EXEMPT", PlaceholderCode:
		return 0, false
	}
	f, ok := intro.Float()
	if !ok || f <= 0 {
		return 0, false
	}
	return f, true
}

// DeriveRateType returns 2 (variable) when the introductory rate period is a
// positive number of months, otherwise 1 (fixed).
func DeriveRateType(intro Value) string {
	if _, ok := introMonths(intro); ok {
		return RateTypeVariable
	}
	return RateTypeFixed
}

// DeriveVarTerm returns the variable-rate term in years, rounded up
// (1-12 months is 1 year, 13 months is 2). Fixed-rate loans yield "".
func DeriveVarTerm(intro Value) string {
	m, ok := introMonths(intro)
	if !ok {
		return ""
	}
	return strconv.Itoa(int(math.Ceil(m / 12)))
}

// commonTermYears are whole-year terms that are assumed to be in years.
var commonTermYears = map[int]bool{
	1: true, 2: true, 3: true, 5: true, 7: true, 10: true,
	15: true, 20: true, 25: true, 30: true, 40: true,
}

// LoanTermYears converts a term in months to whole years, rounding down.
// Non-numeric input, or a year count outside the int64 range, is returned
// unchanged.
func LoanTermYears(months Value) string {
	f, ok := months.Float()
	if !ok {
		return months.String()
	}
	y := math.Floor(f / 12)
	if y < -(1<<63) || y >= 1<<63 {
		return months.String()
	}
	return strconv.FormatInt(int64(y), 10)
}

// LoanTermMonths normalizes a loan term to months.
//
// Common whole-year terms (1, 2, 3, 5, 7, 10, 15, 20, 25, 30, 40) are
// multiplied by 12. Anything else is already months, or not a term, and is
// returned unchanged.
func LoanTermMonths(term Value) string {
	f, ok := term.Float()
	if ok && f == math.Trunc(f) && commonTermYears[int(f)] {
		return strconv.Itoa(int(f) * 12)
	}
	return term.String()
}

// foldLabel lower-cases s and collapses separators to single spaces.
func foldLabel(s string) string {
	return strings.TrimSpace(separatorRegex.ReplaceAllString(strings.ToLower(s), " "))
}
