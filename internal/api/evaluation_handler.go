package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gradelens/backend/internal/domain/evaluation"
	"github.com/gradelens/backend/internal/domain/feedback"
	"github.com/gradelens/backend/internal/store"
)

// ── Request / Response types ────────────────────────────────────────────────

type CreateEvaluationRequest struct {
	AnswerScriptID  *string  `json:"answer_script_id,omitempty"`
	StudentID       *string  `json:"student_id,omitempty"`
	StudentName     string   `json:"student_name" example:"Aisha Khan"`
	ClassID         *string  `json:"class_id,omitempty"`
	ClassName       *string  `json:"class_name,omitempty" example:"Grade 10"`
	SectionID       *string  `json:"section_id,omitempty"`
	SectionName     *string  `json:"section_name,omitempty" example:"A"`
	Subject         string   `json:"subject" example:"Math"`
	Topic           *string  `json:"topic,omitempty" example:"Calculus"`
	Question        *string  `json:"question,omitempty"`
	AnswerText      *string  `json:"answer_text,omitempty"`
	ExamDate        *string  `json:"exam_date,omitempty" example:"2025-03-14"`
	Score           float64  `json:"score" example:"72.5"`
	MaxScore        float64  `json:"max_score,omitempty" example:"100"`
	Explanation     string   `json:"explanation"`
	MatchedConcepts []string `json:"matched_concepts"`
	MissingKeywords []string `json:"missing_keywords"`
	SimilarityScore float64  `json:"similarity_score" example:"0.84"`
	RetrievedChunks int      `json:"retrieved_chunks" example:"5"`
	OCRText         *string  `json:"ocr_text,omitempty"`
	PageImages      []string `json:"page_images,omitempty"`
}

func (r *CreateEvaluationRequest) Validate() error {
	if r.StudentName == "" {
		return errors.New("student_name is required")
	}
	if r.Subject == "" {
		return errors.New("subject is required")
	}
	if r.Score < 0 || r.Score > 100 {
		return errors.New("score must be between 0 and 100")
	}
	if r.SimilarityScore < 0 || r.SimilarityScore > 1 {
		return errors.New("similarity_score must be between 0.0 and 1.0")
	}
	if r.RetrievedChunks < 0 {
		return errors.New("retrieved_chunks cannot be negative")
	}
	return nil
}

// EvaluationResponse is the list/detail shape without provenance blobs.
type EvaluationResponse struct {
	ID              string    `json:"id"`
	AnswerScriptID  *string   `json:"answer_script_id,omitempty"`
	StudentID       *string   `json:"student_id,omitempty"`
	StudentName     string    `json:"student_name"`
	ClassID         *string   `json:"class_id,omitempty"`
	ClassName       *string   `json:"class_name,omitempty"`
	SectionID       *string   `json:"section_id,omitempty"`
	SectionName     *string   `json:"section_name,omitempty"`
	Subject         string    `json:"subject"`
	Topic           *string   `json:"topic,omitempty"`
	Question        *string   `json:"question,omitempty"`
	AnswerText      *string   `json:"answer_text,omitempty"`
	ExamDate        *string   `json:"exam_date,omitempty"`
	Score           float64   `json:"score"`
	MaxScore        float64   `json:"max_score"`
	Explanation     string    `json:"explanation"`
	MatchedConcepts []string  `json:"matched_concepts"`
	MissingKeywords []string  `json:"missing_keywords"`
	SimilarityScore float64   `json:"similarity_score"`
	RetrievedChunks int       `json:"retrieved_chunks"`
	Reviewed        bool      `json:"reviewed"`
	CreatedAt       time.Time `json:"created_at"`
}

// FullEvaluationResponse adds provenance and the ledger entry, if any.
type FullEvaluationResponse struct {
	EvaluationResponse
	OCRText  *string           `json:"ocr_text,omitempty"`
	AllPages []string          `json:"all_pages"`
	Feedback *FeedbackResponse `json:"feedback,omitempty"`
}

type FeedbackResponse struct {
	ID                   string    `json:"id"`
	EvaluationID         string    `json:"evaluation_id"`
	TeacherScore         float64   `json:"teacher_score"`
	Feedback             string    `json:"feedback"`
	ConceptFeedback      []string  `json:"concept_feedback"`
	IsCorrect            bool      `json:"is_correct"`
	ScoreDifference      float64   `json:"score_difference"`
	AccuracyContribution float64   `json:"accuracy_contribution"`
	CreatedAt            time.Time `json:"created_at"`
}

func toEvaluationResponse(e *evaluation.Evaluation, reviewed bool) EvaluationResponse {
	return EvaluationResponse{
		ID:              e.ID,
		AnswerScriptID:  e.AnswerScriptID,
		StudentID:       e.StudentID,
		StudentName:     e.StudentName,
		ClassID:         e.ClassID,
		ClassName:       e.ClassName,
		SectionID:       e.SectionID,
		SectionName:     e.SectionName,
		Subject:         e.Subject,
		Topic:           e.Topic,
		Question:        e.Question,
		AnswerText:      e.AnswerText,
		ExamDate:        e.ExamDate,
		Score:           e.Score,
		MaxScore:        e.MaxScore,
		Explanation:     e.Explanation,
		MatchedConcepts: e.MatchedConcepts,
		MissingKeywords: e.MissingKeywords,
		SimilarityScore: e.SimilarityScore,
		RetrievedChunks: e.RetrievedChunks,
		Reviewed:        reviewed,
		CreatedAt:       e.CreatedAt,
	}
}

func toFeedbackResponse(fb *feedback.Feedback) *FeedbackResponse {
	return &FeedbackResponse{
		ID:                   fb.ID,
		EvaluationID:         fb.EvaluationID,
		TeacherScore:         fb.TeacherScore,
		Feedback:             fb.Feedback,
		ConceptFeedback:      fb.ConceptFeedback,
		IsCorrect:            fb.IsCorrect,
		ScoreDifference:      fb.ScoreDifference,
		AccuracyContribution: fb.AccuracyContribution,
		CreatedAt:            fb.CreatedAt,
	}
}

// ── Handlers ────────────────────────────────────────────────────────────────

// createEvaluation ingests one AI evaluation from the scoring pipeline.
// @Summary      Store an evaluation
// @Description  Called by the scoring pipeline once OCR and retrieval-based scoring complete.
// @Tags         Evaluations
// @Accept       json
// @Produce      json
// @Param        body  body      CreateEvaluationRequest  true  "Evaluation to store"
// @Success      201   {object}  EvaluationResponse
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /evaluations [post]
func (h *Handler) createEvaluation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req CreateEvaluationRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	eval, err := h.evaluations.Create(ctx, evaluation.Params{
		AnswerScriptID:  req.AnswerScriptID,
		StudentID:       req.StudentID,
		StudentName:     req.StudentName,
		ClassID:         req.ClassID,
		ClassName:       req.ClassName,
		SectionID:       req.SectionID,
		SectionName:     req.SectionName,
		Subject:         req.Subject,
		Topic:           req.Topic,
		Question:        req.Question,
		AnswerText:      req.AnswerText,
		ExamDate:        req.ExamDate,
		Score:           req.Score,
		MaxScore:        req.MaxScore,
		Explanation:     req.Explanation,
		MatchedConcepts: req.MatchedConcepts,
		MissingKeywords: req.MissingKeywords,
		SimilarityScore: req.SimilarityScore,
		RetrievedChunks: req.RetrievedChunks,
		OCRText:         req.OCRText,
		PageImages:      req.PageImages,
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to store evaluation")
		return
	}

	respondJSON(w, http.StatusCreated, toEvaluationResponse(eval, false))
}

// listEvaluations lists evaluations, newest first.
// @Summary      List evaluations
// @Description  Filter by subject, class, section, student, or review status.
// @Tags         Evaluations
// @Produce      json
// @Param        subject   query  string  false  "Subject"
// @Param        class     query  string  false  "Class id"
// @Param        section   query  string  false  "Section id"
// @Param        student   query  string  false  "Student name"
// @Param        reviewed  query  bool    false  "Feedback presence"
// @Success      200  {array}   EvaluationResponse
// @Failure      500  {object}  map[string]string
// @Router       /evaluations [get]
func (h *Handler) listEvaluations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filter := store.EvaluationFilter{
		Subject:     r.URL.Query().Get("subject"),
		ClassID:     r.URL.Query().Get("class"),
		SectionID:   r.URL.Query().Get("section"),
		StudentName: r.URL.Query().Get("student"),
	}
	if v := r.URL.Query().Get("reviewed"); v != "" {
		reviewed := v == "true" || v == "1"
		filter.Reviewed = &reviewed
	}

	evals, reviewedIDs, err := h.evaluations.List(ctx, filter)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load evaluations")
		return
	}

	response := make([]EvaluationResponse, len(evals))
	for i, e := range evals {
		_, reviewed := reviewedIDs[e.ID]
		response[i] = toEvaluationResponse(e, reviewed)
	}

	respondJSON(w, http.StatusOK, response)
}

// getEvaluation returns a single evaluation without provenance blobs.
// @Summary      Get an evaluation
// @Tags         Evaluations
// @Produce      json
// @Param        evaluationID  path      string  true  "Evaluation ID"
// @Success      200  {object}  EvaluationResponse
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /evaluations/{evaluationID} [get]
func (h *Handler) getEvaluation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	evaluationID := r.PathValue("evaluationID")

	eval, err := h.evaluations.Get(ctx, evaluationID)
	if h.handleStoreError(w, err, "evaluation") {
		return
	}

	_, reviewed, err := h.reviewStatus(r, evaluationID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load feedback")
		return
	}

	respondJSON(w, http.StatusOK, toEvaluationResponse(eval, reviewed))
}

// getEvaluationFull returns an evaluation with all provenance pages and
// its feedback, for the review screen.
// @Summary      Get an evaluation with provenance
// @Description  Includes OCR text, all script pages, and the teacher feedback if present.
// @Tags         Evaluations
// @Produce      json
// @Param        evaluationID  path      string  true  "Evaluation ID"
// @Success      200  {object}  FullEvaluationResponse
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /evaluations/{evaluationID}/full [get]
func (h *Handler) getEvaluationFull(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	evaluationID := r.PathValue("evaluationID")

	eval, err := h.evaluations.Get(ctx, evaluationID)
	if h.handleStoreError(w, err, "evaluation") {
		return
	}

	fb, reviewed, err := h.reviewStatus(r, evaluationID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load feedback")
		return
	}

	response := FullEvaluationResponse{
		EvaluationResponse: toEvaluationResponse(eval, reviewed),
		OCRText:            eval.OCRText,
		AllPages:           eval.PageImages,
	}
	if response.AllPages == nil {
		response.AllPages = []string{}
	}
	if fb != nil {
		response.Feedback = toFeedbackResponse(fb)
	}

	respondJSON(w, http.StatusOK, response)
}

// reviewStatus looks up the ledger entry for an evaluation. A missing
// entry is not an error, it just means "not reviewed yet".
func (h *Handler) reviewStatus(r *http.Request, evaluationID string) (*feedback.Feedback, bool, error) {
	fb, err := h.analytics.FeedbackFor(r.Context(), evaluationID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return fb, true, nil
}
