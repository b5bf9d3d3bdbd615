package core

// transform.go builds canonical 126-column records from raw rows.

import "strings"

// Combined-name columns split into first/last when the separate columns are empty.
var (
	borrowerNameColumns   = []string{"Borrower Name", "Borrower Full Name", "Applicant Name", "Full Name", "BORR_NAME"}
	coBorrowerNameColumns = []string{"Co-Borrower Name", "CoBorrower Name", "Co-Applicant Name", "Co-Borrower Full Name", "COBORR_NAME"}
)

// coApplicantDefaults are the HMDA "no co-applicant" codes, applied only to blank fields.
var coApplicantDefaults = []struct {
	field Field
	value string
}{
	{FieldCoaEthnicity1, "5"},
	{FieldCoaEthnicityDeterminant, "4"},
	{FieldCoaRace1, "8"},
	{FieldCoaRaceDeterminant, "4"},
	{FieldCoaSex, "5"},
	{FieldCoaSexDeterminant, "4"},
	{FieldCoaAge, "9999"},
	{FieldCoaCreditScore, "9999"},
	{FieldCoaCreditModel, "10"},
}

// Transform warnings.
const (
	WarnMissingIdentifiers = "missing both ULI and LEI"
	WarnLoanAmount         = "loan amount zero or missing"
	WarnBranchUnknown      = "branch unknown"
)

// Transformer converts raw records into canonical records.
// It holds only read-only reference data and is safe for concurrent use.
type Transformer struct {
	branches BranchDirectory
	officers BranchLookup
}

// NewTransformer returns a Transformer using the given branch directory and
// officer lookup. A nil directory uses DefaultBranches; a nil lookup disables
// officer-based branch derivation.
func NewTransformer(branches BranchDirectory, officers BranchLookup) *Transformer {
	if branches == nil {
		branches = DefaultBranches()
	}
	return &Transformer{branches: branches, officers: officers}
}

// Transform builds the canonical record for raw and returns any warnings.
// It never fails: unknown or malformed values become "" or pass through.
func (t *Transformer) Transform(raw RawRecord) (CanonicalRecord, []string) {
	var (
		rec      CanonicalRecord
		warnings []string
	)
	l := newRecordLookup(raw)

	for i, f := range CanonicalFields {
		v, ok := l.resolve(f)
		switch {
		case !ok:
			rec.values[i] = ""
		case v.IsZero():
			rec.values[i] = "0"
		default:
			rec.values[i] = v.String()
		}
	}
	rec.Merged = raw.Merged()

	fillNames(&rec, l, FieldFirstName, FieldLastName, borrowerNameColumns)
	fillNames(&rec, l, FieldCoaFirstName, FieldCoaLastName, coBorrowerNameColumns)

	if !t.resolveBranch(&rec) {
		w := WarnBranchUnknown
		if officer := rec.Get(FieldLender); officer != "" {
			w += " for officer " + officer
		}
		warnings = append(warnings, w)
	}

	for _, f := range blankByDesign {
		rec.Set(f, "")
	}
	for _, d := range coApplicantDefaults {
		if rec.Get(d.field) == "" {
			rec.Set(d.field, d.value)
		}
	}

	applyDerivers(&rec)

	if rec.Get(FieldULI) == "" && rec.Get(FieldLEI) == "" {
		warnings = append(warnings, WarnMissingIdentifiers)
	}
	if amt := rec.Get(FieldLoanAmount); amt == "" || Str(amt).IsZero() {
		warnings = append(warnings, WarnLoanAmount)
	}
	return rec, warnings
}

// fillNames splits a combined name column into the empty name slots.
// A name that already resolved is never overwritten.
func fillNames(rec *CanonicalRecord, l *recordLookup, firstField, lastField Field, columns []string) {
	first, last := rec.Get(firstField), rec.Get(lastField)
	if first != "" && last != "" {
		return
	}
	full := l.firstOf(columns)
	if full == "" {
		return
	}
	f, s := SplitName(full)
	if first == "" {
		rec.Set(firstField, f)
	}
	if last == "" {
		rec.Set(lastField, s)
	}
}

// resolveBranch fills Branch from the loan officer when absent and BranchName
// from the directory. It reports false when no branch name could be found.
func (t *Transformer) resolveBranch(rec *CanonicalRecord) bool {
	branch := rec.Get(FieldBranch)
	if branch == "" && t.officers != nil {
		if b, ok := t.officers.BranchFor(rec.Get(FieldLender)); ok {
			branch = b
			rec.Set(FieldBranch, b)
		}
	}
	if rec.Get(FieldBranchName) != "" {
		return true
	}
	if branch == "" {
		return false
	}
	name, ok := t.branches.Name(branch)
	if !ok {
		return false
	}
	rec.Set(FieldBranchName, name)
	return true
}

// applyDerivers canonicalizes derived fields, always overwriting.
func applyDerivers(rec *CanonicalRecord) {
	for _, f := range dateFields {
		rec.Set(f, FormatDate(Str(rec.Get(f))))
	}
	rec.Set(FieldTract, FormatTract(Str(rec.Get(FieldTract))))

	for _, f := range ausSystemFields {
		rec.Set(f, MapAUSystem(Str(rec.Get(f))))
	}
	for _, f := range ausResultFields {
		rec.Set(f, MapAUSResult(Str(rec.Get(f))))
	}

	rec.Set(FieldNonAmortz, MapNonAmortizing(
		Str(rec.Get(FieldNonAmortz)),
		Str(rec.Get(FieldBalloonPMT)),
		Str(rec.Get(FieldIOPMT)),
		Str(rec.Get(FieldNegAM)),
	))

	intro := Str(rec.Get(FieldIntroRatePeriod))
	rec.Set(FieldRateType, DeriveRateType(intro))
	rec.Set(FieldVarTerm, DeriveVarTerm(intro))

	if term := rec.Get(FieldLoanTerm); term != "" {
		months := LoanTermMonths(Str(term))
		rec.Set(FieldLoanTerm, months)
		rec.Set(FieldLoanTermYears, LoanTermYears(Str(months)))
	}
}

// firstOf returns the first non-blank value among the named columns,
// matching exact keys before case-insensitive ones.
func (l *recordLookup) firstOf(columns []string) string {
	for _, c := range columns {
		if v, ok := l.rec[c]; ok && !v.IsBlank() {
			return v.String()
		}
	}
	for _, c := range columns {
		if k, ok := l.lower[strings.ToLower(c)]; ok {
			if v := l.rec[k]; !v.IsBlank() {
				return v.String()
			}
		}
	}
	return ""
}
