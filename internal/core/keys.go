package core

// keys.go builds the natural keys used to match records across files.

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldText lower-cases s, strips accents and collapses whitespace, so that
// "  José  Díaz " and "jose diaz" compare equal.
//
// A transform chain carries state, so one is built per call; keys are built
// from worker goroutines.
func foldText(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, strings.ToLower(s))
	if err != nil {
		out = strings.ToLower(s)
	}
	return strings.Join(strings.Fields(out), " ")
}

// uliKey normalizes a Universal Loan Identifier: upper-cased, all whitespace removed.
func uliKey(uli string) string {
	return strings.ToUpper(strings.Join(strings.Fields(uli), ""))
}

// loanNumberKey normalizes a loan or application number.
func loanNumberKey(n string) string {
	return strings.ToLower(strings.Join(strings.Fields(n), ""))
}

// addressKey returns "address|city", folded. An empty address yields "".
func addressKey(address, city string) string {
	a := foldText(address)
	if a == "" {
		return ""
	}
	return a + "|" + foldText(city)
}
