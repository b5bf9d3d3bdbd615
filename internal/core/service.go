package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultRunTimeout bounds a single pipeline run.
var DefaultRunTimeout = 5 * time.Minute

// DefaultRetainedRuns is how many completed runs stay in memory.
const DefaultRetainedRuns = 20

// SourceFile describes one input file of a run.
type SourceFile struct {
	Name   string `json:"name"`
	Source string `json:"source"` // primary, secondary, legacy or supplemental
	Rows   int    `json:"rows"`
}

// RunSummary is the metadata of a completed run.
type RunSummary struct {
	ID                string       `json:"id"`
	CreatedAt         time.Time    `json:"createdAt"`
	Files             []SourceFile `json:"files"`
	InputRows         int          `json:"inputRows"`
	OutputRows        int          `json:"outputRows"`
	DuplicatesRemoved int          `json:"duplicatesRemoved"`
	Matched           int          `json:"matched"`
	Invalid           int          `json:"invalid"`
	DurationMs        int64        `json:"durationMs"`
}

// Run is a completed pipeline run with its output.
type Run struct {
	RunSummary
	Trace    []StepTrace         `json:"trace"`
	Records  []CanonicalRecord   `json:"-"`
	Findings []ValidationFinding `json:"-"`
}

// RunStore persists completed runs.
type RunStore interface {
	SaveRun(ctx context.Context, run *Run) error
	LoadRun(ctx context.Context, id string) (*Run, error)
}

// Service runs batches and keeps their results for retrieval.
type Service struct {
	pipeline *Pipeline
	limiter  *RunLimiter
	store    RunStore
	logger   *slog.Logger
	timeout  time.Duration
	retain   int

	mu    sync.RWMutex
	runs  map[string]*Run
	order []string // run ids, oldest first
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithStore persists every run to store.
func WithStore(store RunStore) ServiceOption {
	return func(s *Service) { s.store = store }
}

// WithLimiter sets the concurrent run limiter.
func WithLimiter(l *RunLimiter) ServiceOption {
	return func(s *Service) {
		if l != nil {
			s.limiter = l
		}
	}
}

// WithRunTimeout bounds each run.
func WithRunTimeout(d time.Duration) ServiceOption {
	return func(s *Service) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithRetainedRuns sets how many runs are kept in memory.
func WithRetainedRuns(n int) ServiceOption {
	return func(s *Service) {
		if n > 0 {
			s.retain = n
		}
	}
}

// WithServiceLogger sets the service logger.
func WithServiceLogger(l *slog.Logger) ServiceOption {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewService creates a Service around a pipeline.
func NewService(p *Pipeline, opts ...ServiceOption) *Service {
	s := &Service{
		pipeline: p,
		limiter:  NewRunLimiter(0, 0),
		logger:   slog.Default(),
		timeout:  DefaultRunTimeout,
		retain:   DefaultRetainedRuns,
		runs:     make(map[string]*Run),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run processes a batch synchronously and records the result.
func (s *Service) Run(ctx context.Context, b Batch, files []SourceFile) (*Run, error) {
	if len(b.Primary) == 0 {
		return nil, ErrNoPrimaryFile
	}
	if err := s.limiter.Acquire(ctx); err != nil {
		return nil, err
	}
	defer s.limiter.Release()

	runCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	id := uuid.New().String()
	log := s.logger.With("run_id", id)
	log.InfoContext(ctx, "run started",
		"primary_rows", len(b.Primary),
		"supplemental_rows", len(b.Supplemental),
	)

	res, err := s.pipeline.Run(runCtx, b)
	if err != nil {
		log.ErrorContext(ctx, "run failed", "error", err)
		return nil, fmt.Errorf("run %s: %w", id, err)
	}

	run := &Run{
		RunSummary: RunSummary{
			ID:                id,
			CreatedAt:         time.Now().UTC(),
			Files:             files,
			InputRows:         len(b.Primary),
			OutputRows:        len(res.Records),
			DuplicatesRemoved: res.Duplicates,
			Matched:           res.Matched,
			Invalid:           res.Invalid,
			DurationMs:        res.Duration.Milliseconds(),
		},
		Trace:    res.Trace,
		Records:  res.Records,
		Findings: res.Findings,
	}

	if s.store != nil {
		if err := s.store.SaveRun(runCtx, run); err != nil {
			// The run is still served from memory.
			log.ErrorContext(ctx, "persist run failed", "error", err)
		}
	}

	s.remember(run)
	log.InfoContext(ctx, "run completed",
		"output_rows", run.OutputRows,
		"invalid", run.Invalid,
		"duration_ms", run.DurationMs,
	)
	return run, nil
}

func (s *Service) remember(run *Run) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[run.ID] = run
	s.order = append(s.order, run.ID)
	for len(s.order) > s.retain {
		delete(s.runs, s.order[0])
		s.order = s.order[1:]
	}
}

// Get returns a run from memory, falling back to the store.
func (s *Service) Get(ctx context.Context, id string) (*Run, error) {
	s.mu.RLock()
	run, ok := s.runs[id]
	s.mu.RUnlock()
	if ok {
		return run, nil
	}
	if s.store == nil {
		return nil, ErrRunNotFound
	}
	run, err := s.store.LoadRun(ctx, id)
	if err != nil {
		if errors.Is(err, ErrRunNotFound) {
			return nil, ErrRunNotFound
		}
		return nil, fmt.Errorf("load run %s: %w", id, err)
	}
	return run, nil
}

// List returns the retained runs, newest first.
func (s *Service) List() []RunSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]RunSummary, 0, len(s.order))
	for i := len(s.order) - 1; i >= 0; i-- {
		out = append(out, s.runs[s.order[i]].RunSummary)
	}
	return out
}

// LimiterStatus reports run slot usage.
func (s *Service) LimiterStatus() LimiterStatus {
	return s.limiter.Status()
}

// Drain waits for in-flight runs to finish.
func (s *Service) Drain(ctx context.Context) error {
	return s.limiter.WaitForDrain(ctx)
}
