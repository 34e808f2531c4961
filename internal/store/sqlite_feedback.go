package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"github.com/gradelens/backend/internal/domain/feedback"
)

// ============================================================================
// Feedback ledger
// ============================================================================

const feedbackColumns = `seq, id, evaluation_id, teacher_score, feedback,
	concept_feedback, is_correct, score_difference, accuracy_contribution, created_at`

// AppendFeedback appends an immutable feedback record and assigns its
// ledger sequence number. The UNIQUE constraint on evaluation_id enforces
// the at-most-one-feedback invariant; a violation maps to ErrAlreadyReviewed.
func (s *SQLiteStore) AppendFeedback(ctx context.Context, fb *feedback.Feedback) error {
	concepts, _ := json.Marshal(fb.ConceptFeedback)

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO feedback (
			id, evaluation_id, teacher_score, feedback, concept_feedback,
			is_correct, score_difference, accuracy_contribution, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		fb.ID, fb.EvaluationID, fb.TeacherScore, fb.Feedback, string(concepts),
		fb.IsCorrect, fb.ScoreDifference, fb.AccuracyContribution, fb.CreatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: feedback.evaluation_id") {
			return ErrAlreadyReviewed
		}
		return err
	}

	seq, err := res.LastInsertId()
	if err != nil {
		return err
	}
	fb.Seq = seq
	return nil
}

func (s *SQLiteStore) GetFeedbackByEvaluation(ctx context.Context, evaluationID string) (*feedback.Feedback, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+feedbackColumns+" FROM feedback WHERE evaluation_id = ?",
		evaluationID,
	)
	fb, err := scanFeedback(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return fb, nil
}

// ListFeedback returns the whole ledger in insertion order. This order is
// canonical for every running series; callers must not re-sort it.
func (s *SQLiteStore) ListFeedback(ctx context.Context) ([]*feedback.Feedback, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+feedbackColumns+" FROM feedback ORDER BY seq ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ledger []*feedback.Feedback
	for rows.Next() {
		fb, err := scanFeedback(rows)
		if err != nil {
			return nil, err
		}
		ledger = append(ledger, fb)
	}
	return ledger, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFeedback(row rowScanner) (*feedback.Feedback, error) {
	var fb feedback.Feedback
	var concepts string

	err := row.Scan(
		&fb.Seq, &fb.ID, &fb.EvaluationID, &fb.TeacherScore, &fb.Feedback,
		&concepts, &fb.IsCorrect, &fb.ScoreDifference, &fb.AccuracyContribution,
		&fb.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	json.Unmarshal([]byte(concepts), &fb.ConceptFeedback)
	return &fb, nil
}
