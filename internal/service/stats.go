// internal/service/stats.go
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gradelens/backend/internal/domain/evaluation"
	"github.com/gradelens/backend/internal/domain/feedback"
	"github.com/gradelens/backend/internal/store"
)

// AccuracyPoint is one entry of the running-accuracy series: the agreement
// rate after the Index-th feedback, in ledger order. Index is 1-based.
type AccuracyPoint struct {
	Index    int
	Accuracy float64
}

// PerformancePoint pairs an AI prediction with its teacher correction.
type PerformancePoint struct {
	Index          int
	Timestamp      time.Time
	PredictedScore float64
	ActualScore    float64
	Error          float64
	IsCorrect      bool
}

// SubjectStats is the per-subject running aggregate over all evaluations,
// fed-back or not.
type SubjectStats struct {
	Count      int
	TotalScore float64
	AvgScore   float64
}

// TrendEntry is one slot of the bounded recent-evaluations window.
type TrendEntry struct {
	StudentName string
	Subject     string
	Score       float64
	Date        time.Time
}

// SummarySnapshot is a consistent copy of the dashboard counters.
type SummarySnapshot struct {
	TotalEvaluations int
	AverageScore     float64
	TotalStudents    int
	FeedbackCount    int
	ModelAccuracy    float64
	AvgSimilarity    float64
	AvgChunks        float64
	SubjectWiseStats map[string]SubjectStats
	RecentTrends     []TrendEntry
}

// PerformanceSnapshot is a consistent copy of the feedback-driven series.
type PerformanceSnapshot struct {
	RunningAccuracy  []AccuracyPoint
	PerformanceData  []PerformancePoint
	AvgError         float64
	TotalFeedback    int
	TotalEvaluations int
}

// StatsEngine maintains every aggregate incrementally, in O(1) per event.
// It is a projection of the two stores: a Rebuild from the ledgers must
// reproduce exactly the state reached by incremental updates. Writers hold
// the lock only for counter bumps; readers get snapshot copies, so neither
// side can observe a partially applied feedback transaction.
type StatsEngine struct {
	mu sync.RWMutex

	// Feedback-driven state, strictly in ledger order.
	accuracy     []AccuracyPoint
	performance  []PerformancePoint
	correctCount int
	errorSum     float64

	// Evaluation-driven state, independent of feedback.
	evalCount     int
	scoreSum      float64
	similaritySum float64
	chunkSum      float64
	students      map[string]struct{}
	subjects      map[string]*SubjectStats

	// Bounded ring of the most recent evaluations.
	trendBuf  []TrendEntry
	trendHead int
	trendLen  int
}

// NewStatsEngine creates an empty engine with the given trend window size.
func NewStatsEngine(trendWindow int) *StatsEngine {
	if trendWindow <= 0 {
		trendWindow = 10
	}
	return &StatsEngine{
		students: make(map[string]struct{}),
		subjects: make(map[string]*SubjectStats),
		trendBuf: make([]TrendEntry, trendWindow),
	}
}

// ── Writes ──────────────────────────────────────────────────────────────────

// RecordEvaluation folds a newly stored evaluation into the counters.
func (se *StatsEngine) RecordEvaluation(e *evaluation.Evaluation) {
	se.mu.Lock()
	defer se.mu.Unlock()
	se.recordEvaluationLocked(e)
}

func (se *StatsEngine) recordEvaluationLocked(e *evaluation.Evaluation) {
	se.evalCount++
	se.scoreSum += e.Score
	se.similaritySum += e.SimilarityScore
	se.chunkSum += float64(e.RetrievedChunks)
	se.students[e.StudentName] = struct{}{}

	subj, ok := se.subjects[e.Subject]
	if !ok {
		subj = &SubjectStats{}
		se.subjects[e.Subject] = subj
	}
	subj.Count++
	subj.TotalScore += e.Score
	subj.AvgScore = subj.TotalScore / float64(subj.Count)

	se.trendBuf[se.trendHead] = TrendEntry{
		StudentName: e.StudentName,
		Subject:     e.Subject,
		Score:       e.Score,
		Date:        e.CreatedAt,
	}
	se.trendHead = (se.trendHead + 1) % len(se.trendBuf)
	if se.trendLen < len(se.trendBuf) {
		se.trendLen++
	}
}

// RecordFeedback appends the next point of every feedback-driven series.
// Callers must invoke it exactly once per ledger append, in ledger order.
func (se *StatsEngine) RecordFeedback(e *evaluation.Evaluation, fb *feedback.Feedback) {
	se.mu.Lock()
	defer se.mu.Unlock()
	se.recordFeedbackLocked(e, fb)
}

func (se *StatsEngine) recordFeedbackLocked(e *evaluation.Evaluation, fb *feedback.Feedback) {
	index := len(se.accuracy) + 1
	if fb.IsCorrect {
		se.correctCount++
	}
	se.errorSum += fb.ScoreDifference

	se.accuracy = append(se.accuracy, AccuracyPoint{
		Index:    index,
		Accuracy: float64(se.correctCount) / float64(index) * 100,
	})
	se.performance = append(se.performance, PerformancePoint{
		Index:          index,
		Timestamp:      fb.CreatedAt,
		PredictedScore: e.Score,
		ActualScore:    fb.TeacherScore,
		Error:          fb.ScoreDifference,
		IsCorrect:      fb.IsCorrect,
	})
}

// ── Reads ───────────────────────────────────────────────────────────────────

// LatestAccuracy returns the newest running-accuracy value, 0 when the
// ledger is empty.
func (se *StatsEngine) LatestAccuracy() float64 {
	se.mu.RLock()
	defer se.mu.RUnlock()
	if len(se.accuracy) == 0 {
		return 0
	}
	return se.accuracy[len(se.accuracy)-1].Accuracy
}

// Summary copies the dashboard counters. All averages degrade to 0 when
// nothing has been recorded yet.
func (se *StatsEngine) Summary() SummarySnapshot {
	se.mu.RLock()
	defer se.mu.RUnlock()

	snap := SummarySnapshot{
		TotalEvaluations: se.evalCount,
		TotalStudents:    len(se.students),
		FeedbackCount:    len(se.accuracy),
		SubjectWiseStats: make(map[string]SubjectStats, len(se.subjects)),
		RecentTrends:     se.recentTrendsLocked(),
	}
	if se.evalCount > 0 {
		n := float64(se.evalCount)
		snap.AverageScore = se.scoreSum / n
		snap.AvgSimilarity = se.similaritySum / n
		snap.AvgChunks = se.chunkSum / n
	}
	if len(se.accuracy) > 0 {
		snap.ModelAccuracy = se.accuracy[len(se.accuracy)-1].Accuracy
	}
	for subject, stats := range se.subjects {
		snap.SubjectWiseStats[subject] = *stats
	}
	return snap
}

// recentTrendsLocked unwinds the ring most-recent-first.
func (se *StatsEngine) recentTrendsLocked() []TrendEntry {
	trends := make([]TrendEntry, 0, se.trendLen)
	for i := 0; i < se.trendLen; i++ {
		pos := (se.trendHead - 1 - i + len(se.trendBuf)*2) % len(se.trendBuf)
		trends = append(trends, se.trendBuf[pos])
	}
	return trends
}

// Performance copies the full feedback-driven series.
func (se *StatsEngine) Performance() PerformanceSnapshot {
	se.mu.RLock()
	defer se.mu.RUnlock()

	snap := PerformanceSnapshot{
		RunningAccuracy:  make([]AccuracyPoint, len(se.accuracy)),
		PerformanceData:  make([]PerformancePoint, len(se.performance)),
		TotalFeedback:    len(se.performance),
		TotalEvaluations: se.evalCount,
	}
	copy(snap.RunningAccuracy, se.accuracy)
	copy(snap.PerformanceData, se.performance)
	if len(se.performance) > 0 {
		snap.AvgError = se.errorSum / float64(len(se.performance))
	}
	return snap
}

// ValidationPage returns one most-recent-first page of the performance
// series. Pages are 1-indexed; a page past the end is empty, not an error.
func (se *StatsEngine) ValidationPage(page, pageSize int) (entries []PerformancePoint, total int) {
	se.mu.RLock()
	defer se.mu.RUnlock()

	total = len(se.performance)
	if page < 1 || pageSize < 1 {
		return []PerformancePoint{}, total
	}

	end := total - (page-1)*pageSize
	if end <= 0 {
		return []PerformancePoint{}, total
	}
	start := end - pageSize
	if start < 0 {
		start = 0
	}

	entries = make([]PerformancePoint, 0, end-start)
	for i := end - 1; i >= start; i-- {
		entries = append(entries, se.performance[i])
	}
	return entries, total
}

// ── Rebuild ─────────────────────────────────────────────────────────────────

// Rebuild discards all counters and replays the stores: evaluations in
// creation order, then the feedback ledger in sequence order. A feedback
// record without a backing evaluation means the ledger and the record
// store have diverged; the caller must treat that as fatal.
func (se *StatsEngine) Rebuild(ctx context.Context, st store.Store) error {
	evals, err := st.ListEvaluations(ctx, store.EvaluationFilter{})
	if err != nil {
		return fmt.Errorf("rebuild: list evaluations: %w", err)
	}
	ledger, err := st.ListFeedback(ctx)
	if err != nil {
		return fmt.Errorf("rebuild: list feedback: %w", err)
	}

	se.mu.Lock()
	defer se.mu.Unlock()

	se.accuracy = nil
	se.performance = nil
	se.correctCount = 0
	se.errorSum = 0
	se.evalCount = 0
	se.scoreSum = 0
	se.similaritySum = 0
	se.chunkSum = 0
	se.students = make(map[string]struct{})
	se.subjects = make(map[string]*SubjectStats)
	se.trendHead = 0
	se.trendLen = 0

	// ListEvaluations is newest first; replay oldest first.
	byID := make(map[string]*evaluation.Evaluation, len(evals))
	for i := len(evals) - 1; i >= 0; i-- {
		e := evals[i]
		se.recordEvaluationLocked(e)
		byID[e.ID] = e
	}

	for _, fb := range ledger {
		e, ok := byID[fb.EvaluationID]
		if !ok {
			return fmt.Errorf("%w: feedback %s -> evaluation %s",
				store.ErrConsistency, fb.ID, fb.EvaluationID)
		}
		se.recordFeedbackLocked(e, fb)
	}
	return nil
}
