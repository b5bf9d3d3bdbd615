package core

// pipeline.go sequences the ETL steps over one batch:
//
//	normalize -> dedupe -> merge -> transform -> validate (-> autocorrect)
//
// Dedupe and merge are order-sensitive and run in a single pass. Transform
// and validate are independent per row and run on a bounded worker pool.
// Every input row produces exactly one output record and one finding.

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"
)

// rowsPerTask is the chunk of rows handled by one worker task.
const rowsPerTask = 256

// Batch is the input of one pipeline run.
type Batch struct {
	// Primary rows from one or more exports, each tagged with its _source.
	Primary []RawRecord
	// Supplemental rows used only to fill gaps in primary rows.
	Supplemental []RawRecord
}

// Result is the output of one pipeline run.
type Result struct {
	Records    []CanonicalRecord   `json:"records"`
	Findings   []ValidationFinding `json:"findings"`
	Trace      []StepTrace         `json:"trace"`
	Duplicates int                 `json:"duplicatesRemoved"`
	Matched    int                 `json:"matched"`
	Invalid    int                 `json:"invalid"`
	Duration   time.Duration       `json:"-"`
}

// Pipeline runs batches through the ETL steps.
type Pipeline struct {
	transformer *Transformer
	logger      *slog.Logger
	observer    StepObserver
	workers     int
	autoCorrect bool
	sampleSize  int
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithTransformer sets the record transformer.
func WithTransformer(t *Transformer) PipelineOption {
	return func(p *Pipeline) {
		if t != nil {
			p.transformer = t
		}
	}
}

// WithLogger sets the logger for step summaries.
func WithLogger(l *slog.Logger) PipelineOption {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithObserver adds an observer notified after every step.
func WithObserver(o StepObserver) PipelineOption {
	return func(p *Pipeline) {
		if o == nil {
			return
		}
		if p.observer == nil {
			p.observer = o
			return
		}
		p.observer = multiObserver{p.observer, o}
	}
}

// WithWorkers sets the number of transform/validate workers.
// Values below 1 use GOMAXPROCS.
func WithWorkers(n int) PipelineOption {
	return func(p *Pipeline) {
		if n > 0 {
			p.workers = n
		}
	}
}

// WithAutoCorrect applies recorded auto-corrections to the output records.
func WithAutoCorrect(enabled bool) PipelineOption {
	return func(p *Pipeline) { p.autoCorrect = enabled }
}

// WithSampleSize sets how many items each step trace samples (0 disables).
func WithSampleSize(n int) PipelineOption {
	return func(p *Pipeline) {
		if n >= 0 {
			p.sampleSize = n
		}
	}
}

// NewPipeline returns a pipeline with the given options.
func NewPipeline(opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		transformer: NewTransformer(nil, nil),
		logger:      slog.Default(),
		workers:     runtime.GOMAXPROCS(0),
		sampleSize:  3,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run processes one batch. It fails only when ctx is cancelled; bad data is
// reported in the findings and trace, never as an error.
func (p *Pipeline) Run(ctx context.Context, b Batch) (*Result, error) {
	start := time.Now()
	res := &Result{}

	// normalize
	tb := newTraceBuilder(StepNormalize, len(b.Primary)+len(b.Supplemental))
	primary := make([]RawRecord, len(b.Primary))
	for i, rec := range b.Primary {
		primary[i] = NormalizeRecord(rec)
	}
	supplemental := make([]RawRecord, len(b.Supplemental))
	for i, rec := range b.Supplemental {
		supplemental[i] = NormalizeRecord(rec)
	}
	unknown := unknownColumns(primary)
	for _, col := range unknown {
		tb.warnf("unrecognised column %q passed through", col)
	}
	p.record(ctx, res, tb.finish(len(primary)+len(supplemental), p.headerSample(primary)))
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// dedupe
	tb = newTraceBuilder(StepDedupe, len(primary))
	dd := Dedupe(primary)
	for _, line := range dd.Log {
		tb.warnf("%s", line)
	}
	res.Duplicates = dd.Removed
	p.record(ctx, res, tb.finish(len(dd.Kept), map[string]int{"duplicatesRemoved": dd.Removed}))
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// merge
	tb = newTraceBuilder(StepMerge, len(dd.Kept))
	mr := Merge(dd.Kept, supplemental)
	for _, w := range mr.Warnings {
		tb.warnf("%s", w)
	}
	res.Matched = mr.Matched
	p.record(ctx, res, tb.finish(len(mr.Records), map[string]any{
		"supplemental": len(supplemental),
		"matched":      mr.Matched,
		"matchedBy":    mr.MatchedBy,
	}))
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// transform
	tb = newTraceBuilder(StepTransform, len(mr.Records))
	records := make([]CanonicalRecord, len(mr.Records))
	rowWarnings := make([][]string, len(mr.Records))
	err := p.forEachRow(ctx, len(records), func(i int) {
		records[i], rowWarnings[i] = p.transformer.Transform(mr.Records[i])
	})
	if err != nil {
		return nil, fmt.Errorf("transform: %w", err)
	}
	for i, ws := range rowWarnings {
		for _, w := range ws {
			tb.warnf("row %d: %s", i+1, w)
		}
	}
	res.Records = records
	p.record(ctx, res, tb.finish(len(records), p.recordSample(records)))

	// validate
	tb = newTraceBuilder(StepValidate, len(records))
	findings := make([]ValidationFinding, len(records))
	err = p.forEachRow(ctx, len(records), func(i int) {
		findings[i] = ValidateRecord(i, &records[i])
	})
	if err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}
	for _, f := range findings {
		if !f.IsValid {
			res.Invalid++
		}
		for _, e := range f.Errors {
			tb.errorf("row %d (%s): %s", f.RowIndex+1, f.Identifier, e)
		}
	}
	res.Findings = findings
	p.record(ctx, res, tb.finish(len(findings), p.findingSample(findings)))

	if p.autoCorrect {
		tb = newTraceBuilder(StepAutoCorrect, len(records))
		applied := 0
		for i, f := range findings {
			if len(f.AutoCorrected) == 0 {
				continue
			}
			ApplyCorrections(&records[i], f)
			for _, field := range sortedKeys(f.AutoCorrected) {
				c := f.AutoCorrected[field]
				tb.warnf("row %d: %s %q -> %q", i+1, field, c.From, c.To)
				applied++
			}
		}
		p.record(ctx, res, tb.finish(len(records), map[string]int{"applied": applied}))
	}

	res.Duration = time.Since(start)
	p.logger.InfoContext(ctx, "pipeline run completed",
		"rows", len(records),
		"duplicates_removed", res.Duplicates,
		"matched", res.Matched,
		"invalid", res.Invalid,
		"duration_ms", res.Duration.Milliseconds(),
	)
	return res, nil
}

// record appends a step trace, logs it and notifies the observer.
func (p *Pipeline) record(ctx context.Context, res *Result, t StepTrace) {
	res.Trace = append(res.Trace, t)
	p.logger.DebugContext(ctx, "pipeline step",
		"step", t.Step,
		"input", t.InputCount,
		"output", t.OutputCount,
		"errors", len(t.Errors),
		"warnings", len(t.Warnings),
		"duration_ms", t.DurationMs,
	)
	if p.observer != nil {
		p.observer.ObserveStep(t)
	}
}

// forEachRow calls fn for every row index on the worker pool.
// Rows are split into chunks; fn must only touch its own index.
func (p *Pipeline) forEachRow(ctx context.Context, n int, fn func(i int)) error {
	if n == 0 {
		return ctx.Err()
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for lo := 0; lo < n; lo += rowsPerTask {
		lo, hi := lo, min(lo+rowsPerTask, n)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			for i := lo; i < hi; i++ {
				fn(i)
			}
			return nil
		})
	}
	return g.Wait()
}

func (p *Pipeline) headerSample(records []RawRecord) any {
	if p.sampleSize == 0 || len(records) == 0 {
		return nil
	}
	keys := make([]string, 0, len(records[0]))
	for k := range records[0] {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return map[string]any{"columns": keys}
}

func (p *Pipeline) recordSample(records []CanonicalRecord) any {
	if p.sampleSize == 0 || len(records) == 0 {
		return nil
	}
	return records[:min(p.sampleSize, len(records))]
}

func (p *Pipeline) findingSample(findings []ValidationFinding) any {
	if p.sampleSize == 0 || len(findings) == 0 {
		return nil
	}
	return findings[:min(p.sampleSize, len(findings))]
}

// unknownColumns lists record keys that match no canonical field or alias.
func unknownColumns(records []RawRecord) []string {
	seen := map[string]bool{}
	var out []string
	for _, rec := range records {
		for k := range rec {
			if seen[k] || k == SourceKey || k == MergedKey {
				continue
			}
			seen[k] = true
			if !KnownColumn(k) {
				out = append(out, k)
			}
		}
	}
	sort.Strings(out)
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
