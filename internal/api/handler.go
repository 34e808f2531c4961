// internal/api/handler.go
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gradelens/backend/internal/service"
	"github.com/gradelens/backend/internal/store"
)

// Handler holds all dependencies needed by HTTP handlers.
// Instead of relying on package-level globals, every handler method
// receives its dependencies through this struct.
type Handler struct {
	evaluations *service.EvaluationService
	feedback    *service.FeedbackService
	analytics   *service.AnalyticsService
	logger      *slog.Logger
}

// NewHandler creates a Handler with the given dependencies.
func NewHandler(evaluations *service.EvaluationService, feedback *service.FeedbackService, analytics *service.AnalyticsService, logger *slog.Logger) *Handler {
	return &Handler{
		evaluations: evaluations,
		feedback:    feedback,
		analytics:   analytics,
		logger:      logger,
	}
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// respondError writes a JSON error body with the given status code.
func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

// validator is implemented by request types that can check themselves.
type validator interface {
	Validate() error
}

// decodeAndValidate decodes the request body into req and validates it.
// Returns false if an error response was already written.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, req validator) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json")
		return false
	}
	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

// handleStoreError checks for common store errors and writes the appropriate
// HTTP response. Returns true if an error was handled (caller should return).
func (h *Handler) handleStoreError(w http.ResponseWriter, err error, entity string) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, entity+" not found")
		return true
	}
	if errors.Is(err, store.ErrAlreadyReviewed) {
		respondError(w, http.StatusConflict, "feedback already submitted for this evaluation")
		return true
	}
	h.logger.Error("store error", "error", err, "entity", entity)
	respondError(w, http.StatusInternalServerError, "internal error")
	return true
}
