package core

import "fmt"

// DedupeResult is the outcome of collapsing duplicate loans.
type DedupeResult struct {
	// Kept holds one record per natural key plus every keyless record,
	// in first-seen order.
	Kept []RawRecord
	// Removed counts discarded duplicates.
	Removed int
	// Keys holds the natural key of each kept record ("" when keyless).
	Keys []string
	// Log records every replacement and discard with its key.
	Log []string
}

// NaturalKey returns the dedup key of a raw record: "uli:<ULI>" when a ULI
// is present, else "addr:<address|city>", else "".
func NaturalKey(rec RawRecord) string {
	return naturalKey(newRecordLookup(rec))
}

func naturalKey(l *recordLookup) string {
	if uli := uliKey(l.str(FieldULI)); uli != "" {
		return "uli:" + uli
	}
	if addr := addressKey(l.str(FieldAddress), l.str(FieldCity)); addr != "" {
		return "addr:" + addr
	}
	return ""
}

// Dedupe collapses records that share a natural key.
//
// The first record with a key takes the slot. A later record with the same
// key replaces it only when its source ranks strictly higher; otherwise it
// is skipped. Records without a key are always kept.
func Dedupe(records []RawRecord) DedupeResult {
	res := DedupeResult{
		Kept: make([]RawRecord, 0, len(records)),
		Keys: make([]string, 0, len(records)),
	}
	slots := make(map[string]int, len(records))
	rows := make([]int, 0, len(records))

	for i, rec := range records {
		key := NaturalKey(rec)
		if key == "" {
			res.Kept = append(res.Kept, rec)
			res.Keys = append(res.Keys, "")
			rows = append(rows, i)
			continue
		}

		slot, seen := slots[key]
		if !seen {
			slots[key] = len(res.Kept)
			res.Kept = append(res.Kept, rec)
			res.Keys = append(res.Keys, key)
			rows = append(rows, i)
			continue
		}

		res.Removed++
		kept := res.Kept[slot]
		if SourcePriority(rec.Source()) > SourcePriority(kept.Source()) {
			res.Log = append(res.Log, fmt.Sprintf("%s: %s replaced by %s",
				key, rowLabel(rows[slot], kept), rowLabel(i, rec)))
			res.Kept[slot] = rec
			rows[slot] = i
			continue
		}
		res.Log = append(res.Log, fmt.Sprintf("%s: kept %s, skipped %s",
			key, rowLabel(rows[slot], kept), rowLabel(i, rec)))
	}
	return res
}

func rowLabel(row int, rec RawRecord) string {
	src := rec.Source()
	if src == "" {
		src = "untagged"
	}
	return fmt.Sprintf("row %d (%s)", row+1, src)
}
