package api

import (
	"errors"
	"net/http"
	"strings"
)

// ── Request / Response types ────────────────────────────────────────────────

type SubmitFeedbackRequest struct {
	EvaluationID    string   `json:"evaluation_id"`
	TeacherScore    float64  `json:"teacher_score" example:"80"`
	Feedback        string   `json:"feedback" example:"The answer covers integration by parts but misses the boundary terms."`
	ConceptFeedback []string `json:"concept_feedback,omitempty"`
	IsCorrect       bool     `json:"is_correct" example:"true"`
}

func (r *SubmitFeedbackRequest) Validate() error {
	if r.EvaluationID == "" {
		return errors.New("evaluation_id is required")
	}
	if r.TeacherScore < 0 || r.TeacherScore > 100 {
		return errors.New("teacher_score must be between 0 and 100")
	}
	if strings.TrimSpace(r.Feedback) == "" {
		return errors.New("feedback text cannot be empty")
	}
	return nil
}

type SubmitFeedbackResponse struct {
	Success         bool    `json:"success"`
	Message         string  `json:"message"`
	Accuracy        float64 `json:"accuracy" example:"100"`
	ScoreDifference float64 `json:"score_difference" example:"8"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// submitFeedback records a teacher correction for one evaluation.
// @Summary      Submit teacher feedback
// @Description  Appends one immutable correction to the feedback ledger and updates the running statistics. A second submission for the same evaluation is rejected.
// @Tags         Feedback
// @Accept       json
// @Produce      json
// @Param        body  body      SubmitFeedbackRequest  true  "Teacher correction"
// @Success      200   {object}  SubmitFeedbackResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string  "evaluation not found"
// @Failure      409   {object}  map[string]string  "already reviewed"
// @Failure      500   {object}  map[string]string
// @Router       /feedback [post]
func (h *Handler) submitFeedback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req SubmitFeedbackRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.feedback.Submit(ctx, req.EvaluationID, req.TeacherScore, req.Feedback, req.ConceptFeedback, req.IsCorrect)
	if h.handleStoreError(w, err, "evaluation") {
		return
	}

	respondJSON(w, http.StatusOK, SubmitFeedbackResponse{
		Success:         true,
		Message:         "Feedback submitted successfully",
		Accuracy:        result.Accuracy,
		ScoreDifference: result.ScoreDifference,
	})
}
