package core

import "testing"

func TestResolve_Order(t *testing.T) {
	tests := []struct {
		name   string
		rec    RawRecord
		field  Field
		want   string
		wantOK bool
	}{
		{
			name:   "direct key",
			rec:    RawRecord{"ULI": Str("A1"), "Universal Loan Identifier": Str("B2")},
			field:  FieldULI,
			want:   "A1",
			wantOK: true,
		},
		{
			name:   "alias exact",
			rec:    RawRecord{"Universal Loan Identifier": Str("B2")},
			field:  FieldULI,
			want:   "B2",
			wantOK: true,
		},
		{
			name:   "first alias in list order wins",
			rec:    RawRecord{"HMDA ULI": Str("C3"), "ULI Number": Str("D4")},
			field:  FieldULI,
			want:   "D4",
			wantOK: true,
		},
		{
			name:   "alias case-insensitive",
			rec:    RawRecord{"universal loan identifier": Str("E5")},
			field:  FieldULI,
			want:   "E5",
			wantOK: true,
		},
		{
			name:   "canonical case-insensitive",
			rec:    RawRecord{"uli": Str("F6")},
			field:  FieldULI,
			want:   "F6",
			wantOK: true,
		},
		{
			name:   "not found",
			rec:    RawRecord{"Something": Str("x")},
			field:  FieldULI,
			want:   "",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok := Resolve(tt.rec, tt.field)
			if ok != tt.wantOK || v.String() != tt.want {
				t.Errorf("Resolve() = (%q, %v), want (%q, %v)", v.String(), ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestResolve_PresentEmptyAndZero(t *testing.T) {
	rec := RawRecord{
		"LoanAmount":  Num(0),
		"Income":      Str(""),
		"Action":      Null(),
		"Loan Amount": Num(125000),
	}

	v, ok := Resolve(rec, FieldLoanAmount)
	if !ok || !v.IsZero() {
		t.Errorf("zero must resolve as found, got (%v, %v)", v, ok)
	}
	if _, ok := Resolve(rec, FieldIncome); !ok {
		t.Error("empty string must resolve as found")
	}
	if v, ok := Resolve(rec, FieldAction); !ok || !v.IsNull() {
		t.Error("explicit null must resolve as found")
	}
	if got := ResolveString(rec, FieldPurpose); got != "" {
		t.Errorf("ResolveString(missing) = %q, want empty", got)
	}
}

func TestValue_Rendering(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want string
		zero bool
	}{
		{"integer number", Num(250000), "250000", false},
		{"fractional number", Num(6.875), "6.875", false},
		{"zero number", Num(0), "0", true},
		{"string zero", Str("0"), "0", true},
		{"string zero with decimals", Str("0.0"), "0.0", true},
		{"padded string", Str("  abc "), "abc", false},
		{"null", Null(), "", false},
		{"NaN becomes null", Num(nan()), "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
			if got := tt.v.IsZero(); got != tt.zero {
				t.Errorf("IsZero() = %v, want %v", got, tt.zero)
			}
		})
	}
}

func TestValue_Float(t *testing.T) {
	tests := []struct {
		in     string
		want   float64
		wantOK bool
	}{
		{"$1,234.50", 1234.5, true},
		{"(5)", -5, true},
		{"6.5%", 6.5, true},
		{"1e3", 1000, true},
		{"abc", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := Str(tt.in).Float()
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("Float(%q) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestSourcePriority(t *testing.T) {
	if !(SourcePriority(SourcePrimary) > SourcePriority(SourceSecondary) &&
		SourcePriority(SourceSecondary) > SourcePriority(SourceLegacy) &&
		SourcePriority(SourceLegacy) > SourcePriority("")) {
		t.Error("source priority must be primary > secondary > legacy > untagged")
	}
	if SourcePriority(" PRIMARY ") != SourcePriority(SourcePrimary) {
		t.Error("source tags are case-insensitive")
	}
}

func nan() float64 {
	var zero float64
	return zero / zero
}
