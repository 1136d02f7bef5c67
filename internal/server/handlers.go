package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/avencia/tika-batch/internal/tika"
)

var errInvalidRequest = errors.New("invalid request")

// NewRouter wires the HTTP API for a batch service.
func NewRouter(svc *Service, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/v1/batches", handleRunBatch(svc, logger))
	r.Get("/v1/jobs", handleListJobs(svc))

	return r
}

func handleRunBatch(svc *Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req BatchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "BAD_JSON", err.Error())
			return
		}

		resp, err := svc.RunBatch(r.Context(), req)
		if err != nil {
			logger.Warn("batch run failed", "batch", req.Name, "err", err)
			status, code := errorStatus(err)
			// Partial results are still useful to the caller: everything
			// before the failure point is populated.
			writeJSON(w, status, map[string]any{
				"error":  map[string]string{"code": code, "message": err.Error()},
				"result": resp,
			})
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func handleListJobs(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 50
		if v := r.URL.Query().Get("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				limit = n
			}
		}
		jobs, err := svc.History(r.Context(), limit)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "HISTORY_FAILED", err.Error())
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"jobs": jobs})
	}
}

func errorStatus(err error) (int, string) {
	var exErr *tika.ExtractionError
	var parseErr *tika.OutputParseError
	switch {
	case errors.Is(err, errInvalidRequest), errors.Is(err, tika.ErrUnknownOption):
		return http.StatusBadRequest, "INVALID_REQUEST"
	case errors.Is(err, tika.ErrUnknownDocument):
		return http.StatusNotFound, "UNKNOWN_DOCUMENT"
	case errors.As(err, &exErr):
		return http.StatusBadGateway, "EXTRACTION_FAILED"
	case errors.As(err, &parseErr):
		return http.StatusBadGateway, "OUTPUT_PARSE_FAILED"
	default:
		return http.StatusInternalServerError, "INTERNAL"
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]any{
		"error": map[string]string{"code": code, "message": message},
	})
}
