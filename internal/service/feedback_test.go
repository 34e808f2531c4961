package service_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"

	"github.com/gradelens/backend/internal/domain/evaluation"
	"github.com/gradelens/backend/internal/service"
	"github.com/gradelens/backend/internal/store"
)

type testEnv struct {
	store       store.Store
	stats       *service.StatsEngine
	evaluations *service.EvaluationService
	feedback    *service.FeedbackService
	analytics   *service.AnalyticsService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	st, err := store.NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("newTestEnv: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	stats := service.NewStatsEngine(10)
	return &testEnv{
		store:       st,
		stats:       stats,
		evaluations: service.NewEvaluationService(st, stats, logger),
		feedback:    service.NewFeedbackService(st, stats, logger),
		analytics:   service.NewAnalyticsService(st, stats, 8),
	}
}

func (env *testEnv) createEvaluation(t *testing.T, student, subject string, score float64) *evaluation.Evaluation {
	t.Helper()
	eval, err := env.evaluations.Create(context.Background(), evaluation.Params{
		StudentName:     student,
		Subject:         subject,
		Score:           score,
		SimilarityScore: 0.8,
		RetrievedChunks: 5,
	})
	if err != nil {
		t.Fatalf("createEvaluation: %v", err)
	}
	return eval
}

func TestSubmit(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	eval := env.createEvaluation(t, "Aisha Khan", "Math", 72.0)

	result, err := env.feedback.Submit(ctx, eval.ID, 80.0, "Good setup, partial credit missed.", nil, true)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if result.ScoreDifference != 8.0 {
		t.Errorf("expected score difference 8.0, got %v", result.ScoreDifference)
	}
	if result.Accuracy != 100.0 {
		t.Errorf("expected running accuracy 100, got %v", result.Accuracy)
	}
	if result.FeedbackID == "" {
		t.Error("expected a feedback id")
	}

	stored, err := env.store.GetFeedbackByEvaluation(ctx, eval.ID)
	if err != nil {
		t.Fatalf("GetFeedbackByEvaluation: %v", err)
	}
	if stored.Seq != 1 {
		t.Errorf("expected ledger sequence 1, got %d", stored.Seq)
	}
	if stored.ScoreDifference != 8.0 || stored.AccuracyContribution != 1.0 {
		t.Errorf("unexpected derived fields: diff %v contribution %v",
			stored.ScoreDifference, stored.AccuracyContribution)
	}
}

func TestSubmit_SecondFeedbackLowersAccuracy(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	e1 := env.createEvaluation(t, "Aisha Khan", "Math", 72.0)
	e2 := env.createEvaluation(t, "Rohan Mehta", "Math", 60.0)

	if _, err := env.feedback.Submit(ctx, e1.ID, 80.0, "Fine.", nil, true); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	result, err := env.feedback.Submit(ctx, e2.ID, 50.0, "Too generous.", nil, false)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if result.Accuracy != 50.0 {
		t.Errorf("expected running accuracy 50 after one miss in two, got %v", result.Accuracy)
	}
}

func TestSubmit_Duplicate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	eval := env.createEvaluation(t, "Aisha Khan", "Math", 72.0)
	if _, err := env.feedback.Submit(ctx, eval.ID, 80.0, "Fine.", nil, true); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	_, err := env.feedback.Submit(ctx, eval.ID, 30.0, "Changed my mind.", nil, false)
	if !errors.Is(err, store.ErrAlreadyReviewed) {
		t.Fatalf("expected ErrAlreadyReviewed, got %v", err)
	}

	// The rejected submission must leave the series untouched.
	perf := env.stats.Performance()
	if len(perf.RunningAccuracy) != 1 || perf.RunningAccuracy[0].Accuracy != 100.0 {
		t.Errorf("expected series unchanged after rejected duplicate, got %+v", perf.RunningAccuracy)
	}
}

func TestSubmit_EvaluationNotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.feedback.Submit(context.Background(), "missing", 80.0, "Fine.", nil, true)
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSubmit_Invalid(t *testing.T) {
	env := newTestEnv(t)
	eval := env.createEvaluation(t, "Aisha Khan", "Math", 72.0)

	if _, err := env.feedback.Submit(context.Background(), eval.ID, 80.0, "   ", nil, true); err == nil {
		t.Error("expected validation error for blank feedback text")
	}
	if _, err := env.feedback.Submit(context.Background(), eval.ID, 101.0, "Fine.", nil, true); err == nil {
		t.Error("expected validation error for out-of-range score")
	}
}

func TestSubmit_ConcurrentDuplicates(t *testing.T) {
	env := newTestEnv(t)
	eval := env.createEvaluation(t, "Aisha Khan", "Math", 72.0)

	const attempts = 8
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = env.feedback.Submit(context.Background(), eval.ID, 80.0, "Fine.", nil, true)
		}(i)
	}
	wg.Wait()

	var wins, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, store.ErrAlreadyReviewed):
			conflicts++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	if wins != 1 {
		t.Errorf("expected exactly one winning submission, got %d", wins)
	}
	if conflicts != attempts-1 {
		t.Errorf("expected %d conflicts, got %d", attempts-1, conflicts)
	}

	perf := env.stats.Performance()
	if len(perf.RunningAccuracy) != 1 {
		t.Errorf("expected one series point after the race, got %d", len(perf.RunningAccuracy))
	}
}
