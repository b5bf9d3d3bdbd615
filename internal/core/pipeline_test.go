package core

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type stepRecorder struct {
	mu    sync.Mutex
	steps []string
}

func (r *stepRecorder) ObserveStep(t StepTrace) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.steps = append(r.steps, t.Step)
}

func TestPipeline(t *testing.T) {
	Convey("Given a pipeline", t, func() {
		rec := &stepRecorder{}
		p := NewPipeline(
			WithLogger(quietLogger()),
			WithObserver(rec),
			WithWorkers(2),
		)
		ctx := context.Background()

		Convey("When a batch has duplicates across sources and a supplemental file", func() {
			batch := Batch{
				Primary: []RawRecord{
					{"Universal Loan Identifier (ULI)": Str("U1"), "Loan Amount": Num(100000), "Action Taken": Str("1"), "Loan Type": Str("1"), SourceKey: Str(SourceLegacy)},
					{"ULI": Str("U1"), "LoanAmount": Num(120000), "Action": Str("1"), "LoanType": Str("1"), SourceKey: Str(SourcePrimary)},
					{"ULI": Str("U2"), "LoanAmount": Num(0), "Action": Str("3"), "LoanType": Str("2"), SourceKey: Str(SourcePrimary)},
				},
				Supplemental: []RawRecord{
					{"ULI": Str("U1"), "Loan Officer": Str("Jane Doe"), "APR": Str("6.9")},
				},
			}
			res, err := p.Run(ctx, batch)

			Convey("Then every step is traced in order", func() {
				So(err, ShouldBeNil)
				So(rec.steps, ShouldResemble, []string{StepNormalize, StepDedupe, StepMerge, StepTransform, StepValidate})
				So(res.Trace, ShouldHaveLength, 5)
				So(res.Trace[1].InputCount, ShouldEqual, 3)
				So(res.Trace[1].OutputCount, ShouldEqual, 2)
			})

			Convey("Then the primary-source duplicate wins and supplemental data fills gaps", func() {
				So(res.Duplicates, ShouldEqual, 1)
				So(res.Records, ShouldHaveLength, 2)
				So(res.Records[0].Get(FieldLoanAmount), ShouldEqual, "120000")
				So(res.Records[0].Get(FieldLender), ShouldEqual, "Jane Doe")
				So(res.Records[0].Get(FieldAPR), ShouldEqual, "6.9")
				So(res.Records[0].Merged, ShouldBeTrue)
				So(res.Matched, ShouldEqual, 1)
			})

			Convey("Then there is one finding per output record", func() {
				So(res.Findings, ShouldHaveLength, len(res.Records))
				So(res.Records[1].Get(FieldLoanAmount), ShouldEqual, "0")
				So(res.Findings[1].Warnings, ShouldContain, "LoanAmount: "+WarnLoanAmount)
			})
		})

		Convey("When the batch is empty", func() {
			res, err := p.Run(ctx, Batch{})

			Convey("Then the run completes with empty output", func() {
				So(err, ShouldBeNil)
				So(res.Records, ShouldBeEmpty)
				So(res.Findings, ShouldBeEmpty)
				So(res.Trace, ShouldHaveLength, 5)
			})
		})

		Convey("When the end-to-end bad row is processed", func() {
			res, err := p.Run(ctx, Batch{Primary: []RawRecord{
				{"ULI": Str(""), "LEI": Str(""), "LoanAmount": Num(0), "Action": Str("9")},
			}})

			Convey("Then it is output, flagged invalid", func() {
				So(err, ShouldBeNil)
				So(res.Records, ShouldHaveLength, 1)
				So(res.Records[0].Get(FieldAction), ShouldEqual, "9")
				So(res.Invalid, ShouldEqual, 1)
				So(res.Findings[0].IsValid, ShouldBeFalse)
				So(res.Trace[4].Errors, ShouldNotBeEmpty)
			})
		})

		Convey("When auto-correction is enabled", func() {
			p := NewPipeline(WithLogger(quietLogger()), WithAutoCorrect(true))
			res, err := p.Run(ctx, Batch{Primary: []RawRecord{
				{"ULI": Str("U9"), "State": Str("Georgia"), "County": Str("1081")},
			}})

			Convey("Then corrections are applied and still recorded", func() {
				So(err, ShouldBeNil)
				So(res.Trace, ShouldHaveLength, 6)
				So(res.Trace[5].Step, ShouldEqual, StepAutoCorrect)
				So(res.Records[0].Get(FieldState), ShouldEqual, "GA")
				So(res.Records[0].Get(FieldCounty), ShouldEqual, "01081")
				So(res.Findings[0].AutoCorrected[string(FieldState)].From, ShouldEqual, "Georgia")
			})
		})

		Convey("When many rows run on the worker pool", func() {
			rows := make([]RawRecord, 1000)
			for i := range rows {
				rows[i] = RawRecord{"LoanNumber": Num(float64(i + 1)), "LoanAmount": Num(float64(i))}
			}
			res, err := p.Run(ctx, Batch{Primary: rows})

			Convey("Then row order is preserved", func() {
				So(err, ShouldBeNil)
				So(res.Records, ShouldHaveLength, 1000)
				for i := range res.Records {
					So(res.Findings[i].RowIndex, ShouldEqual, i)
				}
				So(res.Records[999].Get(FieldLoanNumber), ShouldEqual, "1000")
			})
		})

		Convey("When the context is cancelled", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			_, err := p.Run(cctx, Batch{Primary: []RawRecord{{"ULI": Str("U1")}}})

			Convey("Then the run fails with the context error", func() {
				So(err, ShouldEqual, context.Canceled)
			})
		})
	})
}
