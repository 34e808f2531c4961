package feedback

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Feedback is exactly one teacher correction of exactly one evaluation.
// Records are immutable once appended to the ledger; a second submission
// for the same evaluation is rejected, never merged or overwritten.
type Feedback struct {
	ID           string
	EvaluationID string

	// Seq is the server-assigned ledger position. Zero until the store
	// appends the record; strictly increasing afterwards.
	Seq int64

	TeacherScore    float64
	Feedback        string
	ConceptFeedback []string
	IsCorrect       bool

	// Derived at write time by the calibration calculator.
	ScoreDifference      float64
	AccuracyContribution float64

	CreatedAt time.Time
}

// New validates the teacher's submission and builds a Feedback record.
// The derived fields stay zero until the caller runs the calibration
// calculator against the target evaluation.
func New(evaluationID string, teacherScore float64, text string, conceptFeedback []string, isCorrect bool) (*Feedback, error) {
	if strings.TrimSpace(evaluationID) == "" {
		return nil, errors.New("evaluation_id is required")
	}
	if teacherScore < 0 || teacherScore > 100 {
		return nil, errors.New("teacher_score must be between 0 and 100")
	}
	if strings.TrimSpace(text) == "" {
		return nil, errors.New("feedback text cannot be empty")
	}

	concepts := conceptFeedback
	if concepts == nil {
		concepts = []string{}
	}

	return &Feedback{
		ID:              uuid.NewString(),
		EvaluationID:    evaluationID,
		TeacherScore:    teacherScore,
		Feedback:        text,
		ConceptFeedback: concepts,
		IsCorrect:       isCorrect,
		CreatedAt:       time.Now().UTC(),
	}, nil
}
