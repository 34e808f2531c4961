// internal/service/feedback.go
package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/gradelens/backend/internal/domain/calibration"
	"github.com/gradelens/backend/internal/domain/feedback"
	"github.com/gradelens/backend/internal/store"
)

// FeedbackService runs the write path of the calibration engine: validate
// the teacher's submission, derive the calibration signals, append to the
// ledger, and fold the result into the running statistics.
type FeedbackService struct {
	store  store.Store
	stats  *StatsEngine
	logger *slog.Logger

	// mu serializes ledger appends with their stats updates so the
	// sequence number assigned by the store always matches the series
	// position in the stats engine. The store's unique constraint on
	// evaluation_id remains the backstop for duplicates.
	mu sync.Mutex
}

// NewFeedbackService creates a FeedbackService.
func NewFeedbackService(s store.Store, stats *StatsEngine, logger *slog.Logger) *FeedbackService {
	return &FeedbackService{
		store:  s,
		stats:  stats,
		logger: logger,
	}
}

// SubmitResult is what the review UI gets back after a submission.
type SubmitResult struct {
	FeedbackID      string
	Accuracy        float64
	ScoreDifference float64
}

// Submit records one teacher correction. Errors: a validation error from
// feedback.New, store.ErrNotFound when the evaluation does not exist, and
// store.ErrAlreadyReviewed on a duplicate. In every case nothing is
// partially applied.
func (s *FeedbackService) Submit(ctx context.Context, evaluationID string, teacherScore float64, text string, conceptFeedback []string, isCorrect bool) (*SubmitResult, error) {
	fb, err := feedback.New(evaluationID, teacherScore, text, conceptFeedback, isCorrect)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	eval, err := s.store.GetEvaluation(ctx, evaluationID)
	if err != nil {
		return nil, err
	}

	sig := calibration.Derive(eval.Score, fb.TeacherScore, fb.IsCorrect)
	fb.ScoreDifference = sig.ScoreDifference
	fb.AccuracyContribution = sig.AccuracyContribution

	if err := s.store.AppendFeedback(ctx, fb); err != nil {
		return nil, err
	}
	s.stats.RecordFeedback(eval, fb)

	accuracy := s.stats.LatestAccuracy()
	s.logger.Info("feedback submitted",
		"evaluation_id", evaluationID,
		"seq", fb.Seq,
		"score_difference", fb.ScoreDifference,
		"running_accuracy", accuracy,
	)

	return &SubmitResult{
		FeedbackID:      fb.ID,
		Accuracy:        accuracy,
		ScoreDifference: fb.ScoreDifference,
	}, nil
}
