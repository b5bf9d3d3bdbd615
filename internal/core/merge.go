package core

import "fmt"

// mergeFields are copied from a matching supplemental record into empty
// primary fields.
var mergeFields = []Field{
	FieldFirstName, FieldLastName, FieldCoaFirstName, FieldCoaLastName,
	FieldLender, FieldProcessor, FieldPostCloser,
	FieldAPR, FieldRateLockDate, FieldLoanProgram, FieldRateType, FieldBranchName,
	FieldCoaEthnicity1, FieldCoaEthnicityDeterminant,
	FieldCoaRace1, FieldCoaRaceDeterminant,
	FieldCoaSex, FieldCoaSexDeterminant,
	FieldCoaAge, FieldCoaCreditScore,
	FieldAddress, FieldCity, FieldState,
}

// Match kinds, in probe order.
const (
	MatchULI        = "uli"
	MatchLoanNumber = "loan_number"
	MatchAddress    = "address"
)

// lowMatchRate is the match rate below which a merge is reported as suspect.
const lowMatchRate = 0.5

// MergeResult is the outcome of enriching primary records.
type MergeResult struct {
	Records   []RawRecord
	Matched   int
	MatchedBy map[string]int
	Warnings  []string
}

type mergeIndex struct {
	byULI     map[string]RawRecord
	byLoan    map[string]RawRecord
	byAddress map[string]RawRecord
}

func buildMergeIndex(supplemental []RawRecord) mergeIndex {
	idx := mergeIndex{
		byULI:     make(map[string]RawRecord, len(supplemental)),
		byLoan:    make(map[string]RawRecord, len(supplemental)),
		byAddress: make(map[string]RawRecord, len(supplemental)),
	}
	put := func(m map[string]RawRecord, key string, rec RawRecord) {
		if _, exists := m[key]; key != "" && !exists {
			m[key] = rec
		}
	}
	for _, rec := range supplemental {
		l := newRecordLookup(rec)
		put(idx.byULI, uliKey(l.str(FieldULI)), rec)
		put(idx.byLoan, loanNumberKey(l.str(FieldLoanNumber)), rec)
		put(idx.byAddress, addressKey(l.str(FieldAddress), l.str(FieldCity)), rec)
	}
	return idx
}

func (idx mergeIndex) probe(l *recordLookup) (RawRecord, string) {
	if k := uliKey(l.str(FieldULI)); k != "" {
		if rec, ok := idx.byULI[k]; ok {
			return rec, MatchULI
		}
	}
	if k := loanNumberKey(l.str(FieldLoanNumber)); k != "" {
		if rec, ok := idx.byLoan[k]; ok {
			return rec, MatchLoanNumber
		}
	}
	if k := addressKey(l.str(FieldAddress), l.str(FieldCity)); k != "" {
		if rec, ok := idx.byAddress[k]; ok {
			return rec, MatchAddress
		}
	}
	return nil, ""
}

// Merge fills empty primary fields from matching supplemental records.
//
// Supplemental records are matched by ULI, then loan number, then
// address|city. Populated primary fields are never overwritten. Matched
// records carry the merge flag. Primary records are not modified; matched
// records are returned as copies.
func Merge(primary, supplemental []RawRecord) MergeResult {
	res := MergeResult{
		Records:   primary,
		MatchedBy: map[string]int{},
	}
	if len(supplemental) == 0 || len(primary) == 0 {
		return res
	}

	idx := buildMergeIndex(supplemental)
	out := make([]RawRecord, len(primary))
	for i, rec := range primary {
		out[i] = rec
		l := newRecordLookup(rec)
		sup, how := idx.probe(l)
		if sup == nil {
			continue
		}

		merged := rec.Clone()
		sl := newRecordLookup(sup)
		for _, f := range mergeFields {
			if l.str(f) != "" {
				continue
			}
			if v, ok := sl.resolve(f); ok && !v.IsBlank() {
				merged[string(f)] = v
			}
		}
		merged[MergedKey] = Str("true")
		out[i] = merged
		res.Matched++
		res.MatchedBy[how]++
	}
	res.Records = out

	if rate := float64(res.Matched) / float64(len(primary)); rate < lowMatchRate {
		res.Warnings = append(res.Warnings, fmt.Sprintf(
			"low merge match rate: %d of %d records matched (%.0f%%), check the supplemental key columns",
			res.Matched, len(primary), rate*100))
	}
	return res
}
