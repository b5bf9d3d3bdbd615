package core

// normalize.go maps source column names onto canonical field names.

import (
	"sort"
	"strings"
)

// Normalize maps a source column name to its canonical field name.
//
// Lookup order: exact long-form match, then case-insensitive long-form match.
// Unknown names are returned unchanged so that no column is silently dropped.
// Normalize is idempotent.
func Normalize(name string) string {
	if f, ok := longFormNames[name]; ok {
		return string(f)
	}
	if f, ok := longFormLower[strings.ToLower(strings.TrimSpace(name))]; ok {
		return string(f)
	}
	return name
}

// NormalizeRecord returns a copy of rec with every key normalized.
//
// When two source columns normalize to the same name, the first non-blank
// value wins; keys are visited in sorted order so the result is deterministic.
func NormalizeRecord(rec RawRecord) RawRecord {
	keys := make([]string, 0, len(rec))
	for k := range rec {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(RawRecord, len(rec))
	for _, k := range keys {
		v := rec[k]
		name := k
		if k != SourceKey && k != MergedKey {
			name = Normalize(k)
		}
		if prev, exists := out[name]; exists && !prev.IsBlank() {
			continue
		}
		out[name] = v
	}
	return out
}
