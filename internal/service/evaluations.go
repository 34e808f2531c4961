// internal/service/evaluations.go
package service

import (
	"context"
	"log/slog"

	"github.com/gradelens/backend/internal/domain/evaluation"
	"github.com/gradelens/backend/internal/store"
)

// EvaluationService ingests evaluation records from the scoring pipeline
// and keeps the per-subject and trend aggregates current.
type EvaluationService struct {
	store  store.Store
	stats  *StatsEngine
	logger *slog.Logger
}

// NewEvaluationService creates an EvaluationService.
func NewEvaluationService(s store.Store, stats *StatsEngine, logger *slog.Logger) *EvaluationService {
	return &EvaluationService{
		store:  s,
		stats:  stats,
		logger: logger,
	}
}

// Create validates, persists, and records a new evaluation.
func (s *EvaluationService) Create(ctx context.Context, p evaluation.Params) (*evaluation.Evaluation, error) {
	eval, err := evaluation.New(p)
	if err != nil {
		return nil, err
	}
	if err := s.store.SaveEvaluation(ctx, eval); err != nil {
		return nil, err
	}
	s.stats.RecordEvaluation(eval)

	s.logger.Info("evaluation stored",
		"evaluation_id", eval.ID,
		"subject", eval.Subject,
		"score", eval.Score,
	)
	return eval, nil
}

// Get returns the full evaluation record, provenance included.
func (s *EvaluationService) Get(ctx context.Context, id string) (*evaluation.Evaluation, error) {
	return s.store.GetEvaluation(ctx, id)
}

// List returns filtered evaluations newest first, without provenance blobs,
// plus the set of ids that already have feedback.
func (s *EvaluationService) List(ctx context.Context, f store.EvaluationFilter) ([]*evaluation.Evaluation, map[string]struct{}, error) {
	evals, err := s.store.ListEvaluations(ctx, f)
	if err != nil {
		return nil, nil, err
	}
	reviewed, err := s.store.ListReviewedIDs(ctx)
	if err != nil {
		return nil, nil, err
	}
	return evals, reviewed, nil
}
