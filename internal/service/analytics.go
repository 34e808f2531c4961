// internal/service/analytics.go
package service

import (
	"context"
	"math"

	"github.com/gradelens/backend/internal/domain/feedback"
	"github.com/gradelens/backend/internal/store"
)

// AnalyticsService serves the read-only composed views. Everything comes
// from the stats engine's snapshots; the store is only consulted for the
// per-evaluation joins the dashboards don't need on the hot path.
type AnalyticsService struct {
	store    store.Store
	stats    *StatsEngine
	pageSize int
}

// NewAnalyticsService creates an AnalyticsService with the given
// validation-log page size.
func NewAnalyticsService(s store.Store, stats *StatsEngine, pageSize int) *AnalyticsService {
	if pageSize <= 0 {
		pageSize = 8
	}
	return &AnalyticsService{
		store:    s,
		stats:    stats,
		pageSize: pageSize,
	}
}

// Summary returns the dashboard aggregates, rounded the way the dashboards
// expect: scores and accuracy to 2 decimals, similarity to 3, chunks to 1.
func (a *AnalyticsService) Summary() SummarySnapshot {
	snap := a.stats.Summary()
	snap.AverageScore = round(snap.AverageScore, 2)
	snap.ModelAccuracy = round(snap.ModelAccuracy, 2)
	snap.AvgSimilarity = round(snap.AvgSimilarity, 3)
	snap.AvgChunks = round(snap.AvgChunks, 1)
	for subject, stats := range snap.SubjectWiseStats {
		stats.AvgScore = round(stats.AvgScore, 2)
		snap.SubjectWiseStats[subject] = stats
	}
	return snap
}

// Performance returns the full model-performance series.
func (a *AnalyticsService) Performance() PerformanceSnapshot {
	return a.stats.Performance()
}

// ValidationLogPage is one page of the validation log.
type ValidationLogPage struct {
	Page     int
	PageSize int
	Total    int
	Entries  []PerformancePoint
}

// ValidationLog returns the requested most-recent-first page.
func (a *AnalyticsService) ValidationLog(page int) ValidationLogPage {
	entries, total := a.stats.ValidationPage(page, a.pageSize)
	return ValidationLogPage{
		Page:     page,
		PageSize: a.pageSize,
		Total:    total,
		Entries:  entries,
	}
}

// FeedbackFor returns the ledger entry for one evaluation, if any.
func (a *AnalyticsService) FeedbackFor(ctx context.Context, evaluationID string) (*feedback.Feedback, error) {
	return a.store.GetFeedbackByEvaluation(ctx, evaluationID)
}

func round(v float64, places int) float64 {
	pow := math.Pow(10, float64(places))
	return math.Round(v*pow) / pow
}
