package server

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/avencia/tika-batch/internal/store"
	"github.com/avencia/tika-batch/internal/tika"
)

// Service runs extraction batches on behalf of API callers.
type Service struct {
	defaults tika.Config
	jobs     store.JobRepository // nil disables history
	runner   tika.Runner         // nil uses the exec runner
	logger   *slog.Logger
}

func NewService(defaults tika.Config, jobs store.JobRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{defaults: defaults, jobs: jobs, logger: logger}
}

// SetRunner overrides process execution, for tests.
func (s *Service) SetRunner(r tika.Runner) { s.runner = r }

type BatchRequest struct {
	Name      string            `json:"name"`
	Options   map[string]string `json:"options,omitempty"`
	Documents []DocumentRequest `json:"documents"`
}

type DocumentRequest struct {
	Name     string `json:"name"`
	Path     string `json:"path"`
	Password string `json:"password,omitempty"`
}

type DocumentResult struct {
	Name     string              `json:"name"`
	Path     string              `json:"path"`
	Content  string              `json:"content,omitempty"`
	Metadata map[string][]string `json:"metadata,omitempty"`
}

type BatchResponse struct {
	JobID     string           `json:"job_id,omitempty"`
	Processed int              `json:"processed"`
	Documents []DocumentResult `json:"documents"`
}

// RunBatch builds a batch from the request, applies per-request option
// overrides on top of the daemon defaults, and processes it synchronously.
// On failure the response still reports how many documents were processed
// before the failure point; the error carries the cause.
func (s *Service) RunBatch(ctx context.Context, req BatchRequest) (*BatchResponse, error) {
	if len(req.Documents) == 0 {
		return nil, fmt.Errorf("%w: at least one document is required", errInvalidRequest)
	}

	cfg := s.defaults
	for option, value := range req.Options {
		if err := cfg.Set(option, value); err != nil {
			return nil, fmt.Errorf("%w: %v", errInvalidRequest, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidRequest, err)
	}

	name := req.Name
	if name == "" {
		name = "adhoc"
	}
	batch := tika.NewBatch(name)
	for _, d := range req.Documents {
		docName := d.Name
		if docName == "" {
			docName = filepath.Base(d.Path)
		}
		doc := tika.NewDocument(docName, d.Path)
		if d.Password != "" {
			doc.SetPassword(d.Password)
		}
		batch.Add(doc)
	}

	var extractor *tika.Extractor
	if s.runner != nil {
		extractor = tika.NewExtractorWithRunner(cfg, s.runner, s.logger)
	} else {
		extractor = tika.NewExtractor(cfg, s.logger)
	}

	var job *store.Job
	if s.jobs != nil {
		var err error
		job, err = s.jobs.Start(ctx, name, batch.Len())
		if err != nil {
			s.logger.Warn("job history unavailable", "batch", name, "err", err)
			job = nil
		}
	}

	runErr := extractor.ProcessBatch(ctx, batch)
	processed := tika.ProcessedCount(batch, runErr)

	if job != nil {
		if runErr != nil {
			_ = s.jobs.FinishFailure(ctx, job.ID, processed, runErr.Error())
		} else {
			_ = s.jobs.FinishSuccess(ctx, job.ID, processed)
		}
	}

	resp := &BatchResponse{Processed: processed}
	if job != nil {
		resp.JobID = job.ID.String()
	}
	for _, doc := range batch.Documents() {
		res := DocumentResult{Name: doc.Name(), Path: doc.SourcePath(), Content: doc.Content()}
		if m := doc.Metadata(); m != nil {
			res.Metadata = make(map[string][]string, len(m.Names()))
			for _, field := range m.Names() {
				res.Metadata[field] = m.Values(field)
			}
		}
		resp.Documents = append(resp.Documents, res)
	}
	return resp, runErr
}

// History returns recent job rows, newest first.
func (s *Service) History(ctx context.Context, limit int) ([]store.Job, error) {
	if s.jobs == nil {
		return nil, nil
	}
	return s.jobs.History(ctx, limit)
}
