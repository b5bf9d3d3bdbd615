package core

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// CanonicalRecord is one output row: a string for every canonical field.
// Values are never null; a missing value is "".
type CanonicalRecord struct {
	values [FieldCount]string

	// Merged is set when supplemental data filled at least one field.
	Merged bool
}

// Get returns the value of f, or "" for a non-canonical field.
func (r *CanonicalRecord) Get(f Field) string {
	i, ok := FieldIndex(f)
	if !ok {
		return ""
	}
	return r.values[i]
}

// Set assigns the value of f. Non-canonical fields are ignored.
func (r *CanonicalRecord) Set(f Field, v string) {
	if i, ok := FieldIndex(f); ok {
		r.values[i] = v
	}
}

// Values returns the field values in canonical order.
func (r *CanonicalRecord) Values() []string {
	out := make([]string, FieldCount)
	copy(out, r.values[:])
	return out
}

// Map returns the record as a field name to value map.
func (r *CanonicalRecord) Map() map[string]string {
	out := make(map[string]string, FieldCount)
	for i, f := range CanonicalFields {
		out[string(f)] = r.values[i]
	}
	return out
}

// Raw converts the record back to a RawRecord keyed by canonical names.
func (r *CanonicalRecord) Raw() RawRecord {
	out := make(RawRecord, FieldCount+1)
	for i, f := range CanonicalFields {
		out[string(f)] = Str(r.values[i])
	}
	if r.Merged {
		out[MergedKey] = Str("true")
	}
	return out
}

// MarshalJSON writes the fields as an object in canonical order.
func (r CanonicalRecord) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range CanonicalFields {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(string(f))
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(r.values[i])
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads an object keyed by canonical field names.
// Unknown keys are rejected.
func (r *CanonicalRecord) UnmarshalJSON(data []byte) error {
	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	var rec CanonicalRecord
	for k, v := range m {
		i, ok := FieldIndex(Field(k))
		if !ok {
			return fmt.Errorf("unknown canonical field %q", k)
		}
		rec.values[i] = v
	}
	*r = rec
	return nil
}

// RecordFromValues builds a record from values in canonical order.
func RecordFromValues(values []string) (CanonicalRecord, error) {
	var rec CanonicalRecord
	if len(values) != FieldCount {
		return rec, fmt.Errorf("record has %d values, want %d", len(values), FieldCount)
	}
	copy(rec.values[:], values)
	return rec, nil
}
