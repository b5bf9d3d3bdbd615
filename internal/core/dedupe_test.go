package core

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestDedupe(t *testing.T) {
	Convey("Given raw records from several exports", t, func() {
		Convey("When two records share a ULI and the later one has a higher priority source", func() {
			records := []RawRecord{
				{"ULI": Str("abc 123"), "LoanAmount": Num(100), SourceKey: Str(SourceLegacy)},
				{"ULI": Str("ABC123"), "LoanAmount": Num(200), SourceKey: Str(SourcePrimary)},
			}
			res := Dedupe(records)

			Convey("Then the higher priority record replaces the first in its slot", func() {
				So(res.Removed, ShouldEqual, 1)
				So(res.Kept, ShouldHaveLength, 1)
				So(ResolveString(res.Kept[0], FieldLoanAmount), ShouldEqual, "200")
				So(res.Keys[0], ShouldEqual, "uli:ABC123")
			})

			Convey("And the replacement is logged with its key", func() {
				So(res.Log, ShouldHaveLength, 1)
				So(res.Log[0], ShouldContainSubstring, "uli:ABC123")
				So(res.Log[0], ShouldContainSubstring, "replaced by")
			})
		})

		Convey("When the later duplicate has lower or equal priority", func() {
			records := []RawRecord{
				{"ULI": Str("X1"), "LoanAmount": Num(100), SourceKey: Str(SourcePrimary)},
				{"ULI": Str("X1"), "LoanAmount": Num(200), SourceKey: Str(SourceLegacy)},
				{"ULI": Str("X1"), "LoanAmount": Num(300), SourceKey: Str(SourcePrimary)},
			}
			res := Dedupe(records)

			Convey("Then the first record is kept and the others are skipped", func() {
				So(res.Removed, ShouldEqual, 2)
				So(res.Kept, ShouldHaveLength, 1)
				So(ResolveString(res.Kept[0], FieldLoanAmount), ShouldEqual, "100")
				So(res.Log[0], ShouldContainSubstring, "kept row 1 (primary), skipped row 2 (legacy)")
			})
		})

		Convey("When records have no ULI but share an address and city", func() {
			records := []RawRecord{
				{"Address": Str("12 Main St"), "City": Str("Tifton")},
				{"Property Address": Str(" 12  MAIN st "), "Property City": Str("TIFTON")},
				{"Address": Str("12 Main St"), "City": Str("Albany")},
			}
			res := Dedupe(records)

			Convey("Then the address|city key collapses them", func() {
				So(res.Removed, ShouldEqual, 1)
				So(res.Kept, ShouldHaveLength, 2)
				So(res.Keys, ShouldResemble, []string{"addr:12 main st|tifton", "addr:12 main st|albany"})
			})
		})

		Convey("When accents differ in the address", func() {
			records := []RawRecord{
				{"Address": Str("1 Calle José"), "City": Str("Macon")},
				{"Address": Str("1 Calle Jose"), "City": Str("Macon")},
			}

			Convey("Then they are the same loan", func() {
				So(Dedupe(records).Removed, ShouldEqual, 1)
			})
		})

		Convey("When records carry no natural key", func() {
			records := []RawRecord{
				{"LoanAmount": Num(1)},
				{"LoanAmount": Num(1)},
				{"City": Str("Tifton")},
			}
			res := Dedupe(records)

			Convey("Then every record is kept", func() {
				So(res.Removed, ShouldEqual, 0)
				So(res.Kept, ShouldHaveLength, 3)
				So(res.Keys, ShouldResemble, []string{"", "", ""})
			})
		})

		Convey("When there are no records", func() {
			res := Dedupe(nil)

			Convey("Then the result is empty", func() {
				So(res.Kept, ShouldBeEmpty)
				So(res.Removed, ShouldEqual, 0)
			})
		})
	})
}
