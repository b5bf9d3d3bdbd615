package core

import (
	"fmt"
	"time"
)

// Pipeline step names.
const (
	StepNormalize   = "normalize"
	StepDedupe      = "dedupe"
	StepMerge       = "merge"
	StepTransform   = "transform"
	StepValidate    = "validate"
	StepAutoCorrect = "autocorrect"
)

// maxTraceMessages caps the errors and warnings kept per step.
const maxTraceMessages = 200

// StepTrace is the per-step report of a pipeline run.
type StepTrace struct {
	Step        string   `json:"step"`
	InputCount  int      `json:"inputCount"`
	OutputCount int      `json:"outputCount"`
	DurationMs  int64    `json:"durationMs"`
	Errors      []string `json:"errors"`
	Warnings    []string `json:"warnings"`
	Sample      any      `json:"sample,omitempty"`
}

// StepObserver receives every completed step trace.
type StepObserver interface {
	ObserveStep(StepTrace)
}

// ObserverFunc adapts a function to StepObserver.
type ObserverFunc func(StepTrace)

// ObserveStep implements StepObserver.
func (f ObserverFunc) ObserveStep(t StepTrace) { f(t) }

// multiObserver fans a trace out to several observers.
type multiObserver []StepObserver

func (m multiObserver) ObserveStep(t StepTrace) {
	for _, o := range m {
		o.ObserveStep(t)
	}
}

// traceBuilder collects one step's messages while it runs.
type traceBuilder struct {
	trace      StepTrace
	start      time.Time
	droppedErr int
	droppedWrn int
}

func newTraceBuilder(step string, input int) *traceBuilder {
	return &traceBuilder{
		trace: StepTrace{Step: step, InputCount: input, Errors: []string{}, Warnings: []string{}},
		start: time.Now(),
	}
}

func (b *traceBuilder) errorf(format string, args ...any) {
	if len(b.trace.Errors) >= maxTraceMessages {
		b.droppedErr++
		return
	}
	b.trace.Errors = append(b.trace.Errors, fmt.Sprintf(format, args...))
}

func (b *traceBuilder) warnf(format string, args ...any) {
	if len(b.trace.Warnings) >= maxTraceMessages {
		b.droppedWrn++
		return
	}
	b.trace.Warnings = append(b.trace.Warnings, fmt.Sprintf(format, args...))
}

func (b *traceBuilder) finish(output int, sample any) StepTrace {
	if b.droppedErr > 0 {
		b.trace.Errors = append(b.trace.Errors, fmt.Sprintf("... and %d more", b.droppedErr))
	}
	if b.droppedWrn > 0 {
		b.trace.Warnings = append(b.trace.Warnings, fmt.Sprintf("... and %d more", b.droppedWrn))
	}
	b.trace.OutputCount = output
	b.trace.DurationMs = time.Since(b.start).Milliseconds()
	b.trace.Sample = sample
	return b.trace
}
