package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gradelens/backend/internal/service"
)

// ── Response types ──────────────────────────────────────────────────────────

type SubjectStatsResponse struct {
	Count      int     `json:"count" example:"2"`
	TotalScore float64 `json:"total_score" example:"132"`
	AvgScore   float64 `json:"avg_score" example:"66"`
}

type TrendResponse struct {
	StudentName string    `json:"student_name"`
	Subject     string    `json:"subject"`
	Score       float64   `json:"score"`
	Date        time.Time `json:"date"`
}

type AnalyticsResponse struct {
	TotalEvaluations int                             `json:"total_evaluations"`
	AverageScore     float64                         `json:"average_score"`
	TotalStudents    int                             `json:"total_students"`
	FeedbackCount    int                             `json:"feedback_count"`
	ModelAccuracy    float64                         `json:"model_accuracy"`
	AvgSimilarity    float64                         `json:"avg_similarity"`
	AvgChunks        float64                         `json:"avg_chunks"`
	SubjectWiseStats map[string]SubjectStatsResponse `json:"subject_wise_stats"`
	RecentTrends     []TrendResponse                 `json:"recent_trends"`
}

type AccuracyPointResponse struct {
	Index    int     `json:"index" example:"1"`
	Accuracy float64 `json:"accuracy" example:"100"`
}

type PerformancePointResponse struct {
	Index          int       `json:"index"`
	PredictedScore float64   `json:"predicted_score"`
	ActualScore    float64   `json:"actual_score"`
	Error          float64   `json:"error"`
	IsCorrect      bool      `json:"is_correct"`
	Timestamp      time.Time `json:"timestamp"`
}

type PerformanceResponse struct {
	PerformanceData  []PerformancePointResponse `json:"performance_data"`
	RunningAccuracy  []AccuracyPointResponse    `json:"running_accuracy"`
	AvgError         float64                    `json:"avg_error"`
	TotalFeedback    int                        `json:"total_feedback"`
	TotalEvaluations int                        `json:"total_evaluations"`
}

type ValidationLogResponse struct {
	Page     int                        `json:"page"`
	PageSize int                        `json:"page_size"`
	Total    int                        `json:"total"`
	Entries  []PerformancePointResponse `json:"entries"`
}

func toPerformancePoints(points []service.PerformancePoint) []PerformancePointResponse {
	out := make([]PerformancePointResponse, len(points))
	for i, p := range points {
		out[i] = PerformancePointResponse{
			Index:          p.Index,
			PredictedScore: p.PredictedScore,
			ActualScore:    p.ActualScore,
			Error:          p.Error,
			IsCorrect:      p.IsCorrect,
			Timestamp:      p.Timestamp,
		}
	}
	return out
}

// ── Handlers ────────────────────────────────────────────────────────────────

// getAnalytics returns the dashboard summary.
// @Summary      Dashboard summary
// @Description  Running aggregates over all evaluations and the feedback ledger. All fields degrade to zero/empty when no data exists yet.
// @Tags         Analytics
// @Produce      json
// @Success      200  {object}  AnalyticsResponse
// @Router       /analytics [get]
func (h *Handler) getAnalytics(w http.ResponseWriter, r *http.Request) {
	snap := h.analytics.Summary()

	subjects := make(map[string]SubjectStatsResponse, len(snap.SubjectWiseStats))
	for subject, stats := range snap.SubjectWiseStats {
		subjects[subject] = SubjectStatsResponse{
			Count:      stats.Count,
			TotalScore: stats.TotalScore,
			AvgScore:   stats.AvgScore,
		}
	}

	trends := make([]TrendResponse, len(snap.RecentTrends))
	for i, t := range snap.RecentTrends {
		trends[i] = TrendResponse{
			StudentName: t.StudentName,
			Subject:     t.Subject,
			Score:       t.Score,
			Date:        t.Date,
		}
	}

	respondJSON(w, http.StatusOK, AnalyticsResponse{
		TotalEvaluations: snap.TotalEvaluations,
		AverageScore:     snap.AverageScore,
		TotalStudents:    snap.TotalStudents,
		FeedbackCount:    snap.FeedbackCount,
		ModelAccuracy:    snap.ModelAccuracy,
		AvgSimilarity:    snap.AvgSimilarity,
		AvgChunks:        snap.AvgChunks,
		SubjectWiseStats: subjects,
		RecentTrends:     trends,
	})
}

// getModelPerformance returns the full calibration series.
// @Summary      Model performance series
// @Description  Running accuracy and prediction/correction pairs in feedback ledger order.
// @Tags         Analytics
// @Produce      json
// @Success      200  {object}  PerformanceResponse
// @Router       /model/performance [get]
func (h *Handler) getModelPerformance(w http.ResponseWriter, r *http.Request) {
	snap := h.analytics.Performance()

	accuracy := make([]AccuracyPointResponse, len(snap.RunningAccuracy))
	for i, p := range snap.RunningAccuracy {
		accuracy[i] = AccuracyPointResponse{Index: p.Index, Accuracy: p.Accuracy}
	}

	respondJSON(w, http.StatusOK, PerformanceResponse{
		PerformanceData:  toPerformancePoints(snap.PerformanceData),
		RunningAccuracy:  accuracy,
		AvgError:         snap.AvgError,
		TotalFeedback:    snap.TotalFeedback,
		TotalEvaluations: snap.TotalEvaluations,
	})
}

// getValidationLog returns one page of the validation log.
// @Summary      Validation log page
// @Description  Most-recent-first pages of the performance series. Pages are 1-indexed; a page past the end is empty.
// @Tags         Analytics
// @Produce      json
// @Param        page  query     int  false  "Page number (default 1)"
// @Success      200  {object}  ValidationLogResponse
// @Failure      400  {object}  map[string]string
// @Router       /model/validation-log [get]
func (h *Handler) getValidationLog(w http.ResponseWriter, r *http.Request) {
	page := 1
	if v := r.URL.Query().Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			respondError(w, http.StatusBadRequest, "page must be a positive integer")
			return
		}
		page = n
	}

	log := h.analytics.ValidationLog(page)
	respondJSON(w, http.StatusOK, ValidationLogResponse{
		Page:     log.Page,
		PageSize: log.PageSize,
		Total:    log.Total,
		Entries:  toPerformancePoints(log.Entries),
	})
}
