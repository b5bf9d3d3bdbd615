package core

import (
	"regexp"
	"testing"
)

// ----------------------------------------------------------------------------
// FormatDate Tests
// ----------------------------------------------------------------------------

func TestFormatDate(t *testing.T) {
	tests := []struct {
		name  string
		input Value
		want  string
	}{
		{"slash date unchanged", Str("1/15/24"), "1/15/24"},
		{"ISO date unchanged", Str("2024-01-15"), "2024-01-15"},
		{"YYYYMMDD string", Str("20241015"), "10/15/24"},
		{"YYYYMMDD number", Num(20241015), "10/15/24"},
		{"YYYYMMDD with leading zero month", Str("20240105"), "1/5/24"},
		{"invalid YYYYMMDD unchanged", Str("20241399"), "20241399"},
		{"serial number", Num(45000), "3/15/23"},
		{"serial as string", Str("45000"), "3/15/23"},
		{"serial with time fraction", Num(45000.75), "3/15/23"},
		{"unix epoch serial", Num(25569), "1/1/70"},
		{"serial below range", Num(999), "999"},
		{"serial above range", Num(100001), "100001"},
		{"empty", Str(""), ""},
		{"null", Null(), ""},
		{"free text unchanged", Str("pending"), "pending"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatDate(tt.input); got != tt.want {
				t.Errorf("FormatDate(%v) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatDate_SerialShape(t *testing.T) {
	shape := regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{2}$`)
	for _, serial := range []float64{1000, 36526, 45000, 45292, 99999} {
		if got := FormatDate(Num(serial)); !shape.MatchString(got) {
			t.Errorf("FormatDate(%v) = %q, want M/D/YY", serial, got)
		}
	}
}

// ----------------------------------------------------------------------------
// SplitName Tests
// ----------------------------------------------------------------------------

func TestSplitName(t *testing.T) {
	tests := []struct {
		input     string
		wantFirst string
		wantLast  string
	}{
		{"Smith, John William", "John", "Smith"},
		{"Smith,John", "John", "Smith"},
		{"John Smith", "John", "Smith"},
		{"Mary Ann de la Cruz", "Mary", "Ann de la Cruz"},
		{"  John   Smith  ", "John", "Smith"},
		{"Cher", "", "Cher"},
		{"", "", ""},
		{"   ", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			first, last := SplitName(tt.input)
			if first != tt.wantFirst || last != tt.wantLast {
				t.Errorf("SplitName(%q) = (%q, %q), want (%q, %q)",
					tt.input, first, last, tt.wantFirst, tt.wantLast)
			}
		})
	}
}

// ----------------------------------------------------------------------------
// FormatTract Tests
// ----------------------------------------------------------------------------

func TestFormatTract(t *testing.T) {
	tests := []struct {
		name  string
		input Value
		want  string
	}{
		{"pads short tract", Str("1234567"), "00001234567"},
		{"full tract unchanged", Str("13081010202"), "13081010202"},
		{"numeric tract", Num(13081010202), "13081010202"},
		{"strips decimal point", Str("0102.02"), "00000010202"},
		{"strips leading zeros then pads", Str("0001234567"), "00001234567"},
		{"NA upper-cased", Str("na"), "NA"},
		{"NA unchanged", Str("NA"), "NA"},
		{"Exempt upper-cased", Str("Exempt"), "EXEMPT"},
		{"non-numeric unchanged", Str("13081-0102"), "13081-0102"},
		{"too long unchanged", Str("123456789012"), "123456789012"},
		{"empty", Str(""), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatTract(tt.input); got != tt.want {
				t.Errorf("FormatTract(%v) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// ----------------------------------------------------------------------------
// AUS Mapping Tests
// ----------------------------------------------------------------------------

func TestMapAUSystem(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Desktop Underwriter", "1"},
		{"DU", "1"},
		{"du", "1"},
		{"Loan Product Advisor", "2"},
		{"LPA", "2"},
		{"TOTAL Scorecard", "3"},
		{"GUS", "4"},
		{"Other", "5"},
		{"Not Applicable", "6"},
		{"N/A", "6"},
		{"DU - Desktop Underwriter 11.1", "1"},
		{"3", "3"},
		{"6", "6"},
		{"1111", ""},
		{"", ""},
		{"Acme Engine", "Acme Engine"},
		{"7", "7"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := MapAUSystem(Str(tt.input)); got != tt.want {
				t.Errorf("MapAUSystem(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestMapAUSResult(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Approve/Eligible", "1"},
		{"Approve Eligible", "1"},
		{"approve-ineligible", "2"},
		{"Refer/Eligible", "3"},
		{"Refer with Caution", "5"},
		{"Accept", "8"},
		{"Caution", "9"},
		{"Refer", "13"},
		{"Eligible", "14"},
		{"Not Applicable", "17"},
		{"17", "17"},
		{"1", "1"},
		{"18", "18"},
		{"1111", ""},
		{"Manual review pending", "Manual review pending"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := MapAUSResult(Str(tt.input)); got != tt.want {
				t.Errorf("MapAUSResult(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// ----------------------------------------------------------------------------
// MapNonAmortizing Tests
// ----------------------------------------------------------------------------

func TestMapNonAmortizing(t *testing.T) {
	tests := []struct {
		name               string
		raw                string
		balloon, io, negAm string
		want               string
	}{
		{name: "balloon flag", raw: "", balloon: "1", io: "2", negAm: "2", want: "1"},
		{name: "interest-only flag", raw: "", balloon: "2", io: "Y", negAm: "2", want: "2"},
		{name: "negative amortization flag", raw: "", balloon: "", io: "", negAm: "yes", want: "3"},
		{name: "balloon wins over later flags", raw: "", balloon: "true", io: "1", negAm: "1", want: "1"},
		{name: "flag overrides raw", raw: "Negative Amortization", balloon: "1", want: "1"},
		{name: "raw text mapped", raw: "Negative Amortization", want: "3"},
		{name: "raw balloon text", raw: "Balloon", want: "1"},
		{name: "raw code kept", raw: "3", want: "3"},
		{name: "blank defaults to 2", raw: "", want: "2"},
		{name: "placeholder defaults to 2", raw: "1111", want: "2"},
		{name: "unmapped defaults to 2", raw: "something else", want: "2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapNonAmortizing(Str(tt.raw), Str(tt.balloon), Str(tt.io), Str(tt.negAm))
			if got != tt.want {
				t.Errorf("MapNonAmortizing() = %q, want %q", got, tt.want)
			}
		})
	}
}

// ----------------------------------------------------------------------------
// Rate Type / Variable Term Tests
// ----------------------------------------------------------------------------

func TestDeriveRateType(t *testing.T) {
	tests := []struct {
		input Value
		want  string
	}{
		{Str(""), "1"},
		{Null(), "1"},
		{Str("N/A"), "1"},
		{Str("NA"), "1"},
		{Str("Exempt"), "1"},
		{Str("1111"), "1"},
		{Str("0"), "1"},
		{Str("60"), "2"},
		{Num(84), "2"},
	}

	for _, tt := range tests {
		if got := DeriveRateType(tt.input); got != tt.want {
			t.Errorf("DeriveRateType(%v) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestDeriveVarTerm(t *testing.T) {
	tests := []struct {
		input Value
		want  string
	}{
		{Str("1"), "1"},
		{Str("12"), "1"},
		{Str("13"), "2"},
		{Str("60"), "5"},
		{Num(84), "7"},
		{Null(), ""},
		{Str(""), ""},
		{Str("Exempt"), ""},
		{Str("1111"), ""},
	}

	for _, tt := range tests {
		if got := DeriveVarTerm(tt.input); got != tt.want {
			t.Errorf("DeriveVarTerm(%v) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

// ----------------------------------------------------------------------------
// Loan Term Tests
// ----------------------------------------------------------------------------

func TestLoanTermYears(t *testing.T) {
	tests := []struct {
		input Value
		want  string
	}{
		{Num(360), "30"},
		{Str("360"), "30"},
		{Num(18), "1"},
		{Num(11), "0"},
		{Num(180), "15"},
		{Str(""), ""},
		{Str("Exempt"), "Exempt"},
		{Str("1e300"), "1e300"},
		{Str("-1e300"), "-1e300"},
	}

	for _, tt := range tests {
		if got := LoanTermYears(tt.input); got != tt.want {
			t.Errorf("LoanTermYears(%v) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestLoanTermMonths(t *testing.T) {
	tests := []struct {
		input Value
		want  string
	}{
		{Num(30), "360"},
		{Str("15"), "180"},
		{Num(1), "12"},
		{Num(40), "480"},
		{Num(360), "360"},
		{Num(41), "41"},
		{Num(18), "18"},
		{Num(36), "36"},
		{Str(""), ""},
		{Str("Exempt"), "Exempt"},
		{Num(0), "0"},
		{Num(7.5), "7.5"},
		{Num(0.5), "0.5"},
		{Str("360.0"), "360.0"},
		{Num(30.5), "30.5"},
	}

	for _, tt := range tests {
		if got := LoanTermMonths(tt.input); got != tt.want {
			t.Errorf("LoanTermMonths(%v) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
