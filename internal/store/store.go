package store

import (
	"context"
	"errors"

	"github.com/gradelens/backend/internal/domain/evaluation"
	"github.com/gradelens/backend/internal/domain/feedback"
)

var (
	// ErrNotFound is returned when an operation targets a missing record.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyReviewed is returned when a feedback append targets an
	// evaluation that already has one. The original feedback stays intact.
	ErrAlreadyReviewed = errors.New("evaluation already reviewed")

	// ErrConsistency is returned by a ledger replay that finds a feedback
	// record whose evaluation does not exist. It is fatal: serving stats
	// derived from a broken ledger would silently diverge.
	ErrConsistency = errors.New("feedback ledger references missing evaluation")
)

// EvaluationFilter narrows ListEvaluations. Zero values mean "no filter".
// Reviewed filters on feedback presence: nil ignores it, true keeps only
// evaluations with feedback, false only those still awaiting review.
type EvaluationFilter struct {
	Subject     string
	ClassID     string
	SectionID   string
	StudentName string
	Reviewed    *bool
}

// Store is the persistence boundary for the evaluation record store and
// the feedback ledger. Implementations must enforce at most one feedback
// per evaluation and assign strictly increasing feedback sequence numbers.
type Store interface {
	SaveEvaluation(ctx context.Context, e *evaluation.Evaluation) error
	GetEvaluation(ctx context.Context, id string) (*evaluation.Evaluation, error)
	ListEvaluations(ctx context.Context, f EvaluationFilter) ([]*evaluation.Evaluation, error)
	CountEvaluations(ctx context.Context) (int, error)
	ListReviewedIDs(ctx context.Context) (map[string]struct{}, error)

	AppendFeedback(ctx context.Context, fb *feedback.Feedback) error
	GetFeedbackByEvaluation(ctx context.Context, evaluationID string) (*feedback.Feedback, error)
	ListFeedback(ctx context.Context) ([]*feedback.Feedback, error)

	Close() error
}
