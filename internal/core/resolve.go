package core

// resolve.go implements the "first present alias wins" lookup used by every
// stage that reads a raw record by canonical field.

import (
	"sort"
	"strings"
)

// Resolve finds the value of canonical field f in rec.
//
// Search order, first hit wins:
//  1. key equal to f
//  2. each alias of f, exact key
//  3. each alias of f, case-insensitive key
//  4. f itself, case-insensitive key
//
// A present key yields its value even when that value is 0, "" or null.
// The boolean is false only when no key matched at any step.
func Resolve(rec RawRecord, f Field) (Value, bool) {
	return newRecordLookup(rec).resolve(f)
}

// ResolveString resolves f and renders it, returning "" when not found.
func ResolveString(rec RawRecord, f Field) string {
	v, _ := Resolve(rec, f)
	return v.String()
}

// recordLookup caches a lower-cased key index for repeated resolution
// against the same record.
type recordLookup struct {
	rec   RawRecord
	lower map[string]string // lower-cased key -> original key
}

func newRecordLookup(rec RawRecord) *recordLookup {
	keys := make([]string, 0, len(rec))
	for k := range rec {
		keys = append(keys, k)
	}
	// Sorted so that keys differing only by case resolve deterministically.
	sort.Strings(keys)

	lower := make(map[string]string, len(keys))
	for _, k := range keys {
		lk := strings.ToLower(strings.TrimSpace(k))
		if _, exists := lower[lk]; !exists {
			lower[lk] = k
		}
	}
	return &recordLookup{rec: rec, lower: lower}
}

func (l *recordLookup) resolve(f Field) (Value, bool) {
	if v, ok := l.rec[string(f)]; ok {
		return v, true
	}
	for _, alias := range fieldAliases[f] {
		if v, ok := l.rec[alias]; ok {
			return v, true
		}
	}
	for _, alias := range aliasesLower[f] {
		if k, ok := l.lower[alias]; ok {
			return l.rec[k], true
		}
	}
	if k, ok := l.lower[strings.ToLower(string(f))]; ok {
		return l.rec[k], true
	}
	return Value{}, false
}

// str resolves f and renders it, "" when not found.
func (l *recordLookup) str(f Field) string {
	v, _ := l.resolve(f)
	return v.String()
}
