package web

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/gabbyignacio7/colony-bank-hmda-cra-tool-sub000/internal/core"
	"github.com/gabbyignacio7/colony-bank-hmda-cra-tool-sub000/internal/ingest"
	"github.com/gabbyignacio7/colony-bank-hmda-cra-tool-sub000/internal/logging"
	"github.com/gabbyignacio7/colony-bank-hmda-cra-tool-sub000/internal/metrics"
)

// SourceSupplemental is the form field of supplemental exports.
const SourceSupplemental = "supplemental"

// uploadFields are the multipart file fields, in batch order.
var uploadFields = []string{core.SourcePrimary, core.SourceSecondary, core.SourceLegacy, SourceSupplemental}

// maxMemory is the multipart memory threshold; larger parts spill to disk.
const maxMemory = 32 << 20

// Default and maximum page size for record listing.
const (
	defaultPageSize = 100
	maxPageSize     = 1000
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]any{
		"status": "ok",
		"runs":   s.service.LimiterStatus(),
	})
}

func (s *Server) handleListFields(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]any{
		"count":  core.FieldCount,
		"fields": core.Header(),
	})
}

// handleCreateRun reads the uploaded exports and runs the pipeline.
//
// Form fields primary, secondary and legacy hold loan exports (repeatable);
// supplemental holds enrichment exports.
func (s *Server) handleCreateRun(w http.ResponseWriter, r *http.Request) {
	maxFiles := int64(s.cfg.Upload.MaxFiles)
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Upload.MaxFileSize*maxFiles)

	if err := r.ParseMultipartForm(maxMemory); err != nil {
		respondError(w, r, fmt.Errorf("%w: invalid form: %w", errBadRequest, err))
		return
	}
	defer r.MultipartForm.RemoveAll()

	total := 0
	for _, field := range uploadFields {
		total += len(r.MultipartForm.File[field])
	}
	if total > s.cfg.Upload.MaxFiles {
		respondError(w, r, fmt.Errorf("%w: %d files exceeds the limit of %d", errBadRequest, total, s.cfg.Upload.MaxFiles))
		return
	}

	var (
		batch core.Batch
		files []core.SourceFile
	)
	for _, field := range uploadFields {
		for _, fh := range r.MultipartForm.File[field] {
			f, err := s.readUpload(fh, field)
			if err != nil {
				respondError(w, r, err)
				return
			}
			files = append(files, f.Summary())
			if field == SourceSupplemental {
				batch.Supplemental = append(batch.Supplemental, f.Records...)
			} else {
				batch.Primary = append(batch.Primary, f.Records...)
			}
		}
	}

	logging.FromContext(r.Context()).Info("files received",
		"files", len(files),
		"primary_rows", len(batch.Primary),
		"supplemental_rows", len(batch.Supplemental),
	)

	s.runStarted()
	run, err := s.service.Run(r.Context(), batch, files)
	s.runFinished(run, err)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, run)
}

func (s *Server) readUpload(fh *multipart.FileHeader, source string) (*ingest.File, error) {
	if fh.Size > s.cfg.Upload.MaxFileSize {
		return nil, fmt.Errorf("%s: %w", fh.Filename, core.ErrFileTooLarge)
	}
	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", fh.Filename, err)
	}
	defer src.Close()

	return ingest.Read(src, fh.Filename, ingest.Options{
		Source:              source,
		MaxBytes:            s.cfg.Upload.MaxFileSize,
		MaxHeaderSearchRows: s.cfg.Upload.MaxHeaderSearchRows,
	})
}

func (s *Server) runStarted() {
	if s.metrics != nil {
		s.metrics.RunStarted()
	}
}

func (s *Server) runFinished(run *core.Run, err error) {
	if s.metrics == nil {
		return
	}
	switch {
	case err == nil:
		s.metrics.RunFinished(metrics.OutcomeSuccess, &run.RunSummary)
	case statusFor(err) == http.StatusServiceUnavailable:
		s.metrics.RunFinished(metrics.OutcomeBusy, nil)
	default:
		s.metrics.RunFinished(metrics.OutcomeFailure, nil)
	}
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]any{"runs": s.service.List()})
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	run, ok := s.loadRun(w, r)
	if !ok {
		return
	}
	writeJSON(w, r, http.StatusOK, run)
}

// handleRunFindings lists validation findings. ?invalid=true keeps only
// rows with errors.
func (s *Server) handleRunFindings(w http.ResponseWriter, r *http.Request) {
	run, ok := s.loadRun(w, r)
	if !ok {
		return
	}

	findings := run.Findings
	if invalidOnly, _ := strconv.ParseBool(r.URL.Query().Get("invalid")); invalidOnly {
		findings = make([]core.ValidationFinding, 0, run.Invalid)
		for _, f := range run.Findings {
			if !f.IsValid {
				findings = append(findings, f)
			}
		}
	}
	writeJSON(w, r, http.StatusOK, map[string]any{
		"runId":    run.ID,
		"total":    len(findings),
		"findings": findings,
	})
}

// handleRunRecords pages through canonical records with ?offset and ?limit.
func (s *Server) handleRunRecords(w http.ResponseWriter, r *http.Request) {
	run, ok := s.loadRun(w, r)
	if !ok {
		return
	}

	offset := parseIntParam(r, "offset", 0)
	limit := min(parseIntParam(r, "limit", defaultPageSize), maxPageSize)
	if limit <= 0 {
		limit = defaultPageSize
	}
	start := min(offset, len(run.Records))
	end := min(start+limit, len(run.Records))

	writeJSON(w, r, http.StatusOK, map[string]any{
		"runId":   run.ID,
		"total":   len(run.Records),
		"offset":  start,
		"records": run.Records[start:end],
	})
}

func (s *Server) handleExportOutput(w http.ResponseWriter, r *http.Request) {
	run, ok := s.loadRun(w, r)
	if !ok {
		return
	}
	setCSVHeaders(w, fmt.Sprintf("hmda_lar_%s.csv", run.ID))
	if err := core.WriteCanonicalCSV(w, run.Records); err != nil {
		logging.WithFields(r.Context(), "run_id", run.ID).Error("write output csv", "error", err)
	}
}

func (s *Server) handleExportExceptions(w http.ResponseWriter, r *http.Request) {
	run, ok := s.loadRun(w, r)
	if !ok {
		return
	}
	setCSVHeaders(w, fmt.Sprintf("hmda_exceptions_%s.csv", run.ID))
	if err := core.WriteExceptionReport(w, run.Findings); err != nil {
		logging.WithFields(r.Context(), "run_id", run.ID).Error("write exception report", "error", err)
	}
}

// loadRun resolves {runID}, writing the error response when it fails.
func (s *Server) loadRun(w http.ResponseWriter, r *http.Request) (*core.Run, bool) {
	run, err := s.service.Get(r.Context(), chi.URLParam(r, "runID"))
	if err != nil {
		respondError(w, r, err)
		return nil, false
	}
	return run, true
}

func setCSVHeaders(w http.ResponseWriter, filename string) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
}

// parseIntParam parses a non-negative integer query parameter with a default value.
func parseIntParam(r *http.Request, name string, defaultVal int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil || i < 0 {
		return defaultVal
	}
	return i
}
