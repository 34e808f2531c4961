package service_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/gradelens/backend/internal/domain/calibration"
	"github.com/gradelens/backend/internal/domain/evaluation"
	"github.com/gradelens/backend/internal/domain/feedback"
	"github.com/gradelens/backend/internal/service"
	"github.com/gradelens/backend/internal/store"
)

func makeEvaluation(t *testing.T, student, subject string, score, similarity float64, chunks int) *evaluation.Evaluation {
	t.Helper()
	eval, err := evaluation.New(evaluation.Params{
		StudentName:     student,
		Subject:         subject,
		Score:           score,
		SimilarityScore: similarity,
		RetrievedChunks: chunks,
	})
	if err != nil {
		t.Fatalf("makeEvaluation: %v", err)
	}
	return eval
}

func makeFeedback(t *testing.T, eval *evaluation.Evaluation, teacherScore float64, isCorrect bool) *feedback.Feedback {
	t.Helper()
	fb, err := feedback.New(eval.ID, teacherScore, "Reviewed.", nil, isCorrect)
	if err != nil {
		t.Fatalf("makeFeedback: %v", err)
	}
	sig := calibration.Derive(eval.Score, teacherScore, isCorrect)
	fb.ScoreDifference = sig.ScoreDifference
	fb.AccuracyContribution = sig.AccuracyContribution
	return fb
}

func TestStatsEngine_EmptyState(t *testing.T) {
	se := service.NewStatsEngine(10)

	summary := se.Summary()
	if summary.TotalEvaluations != 0 || summary.AverageScore != 0 || summary.ModelAccuracy != 0 {
		t.Errorf("expected zeroed summary, got %+v", summary)
	}
	if len(summary.SubjectWiseStats) != 0 || len(summary.RecentTrends) != 0 {
		t.Error("expected empty collections in the summary")
	}

	perf := se.Performance()
	if perf.AvgError != 0 || perf.TotalFeedback != 0 {
		t.Errorf("expected zeroed performance, got %+v", perf)
	}
	if len(perf.RunningAccuracy) != 0 || len(perf.PerformanceData) != 0 {
		t.Error("expected empty series")
	}

	if se.LatestAccuracy() != 0 {
		t.Errorf("expected 0 accuracy on empty ledger, got %v", se.LatestAccuracy())
	}
}

func TestStatsEngine_RecordEvaluation(t *testing.T) {
	se := service.NewStatsEngine(10)
	se.RecordEvaluation(makeEvaluation(t, "Aisha Khan", "Math", 72.0, 0.84, 5))

	summary := se.Summary()
	if summary.TotalEvaluations != 1 {
		t.Errorf("expected 1 evaluation, got %d", summary.TotalEvaluations)
	}
	if summary.AverageScore != 72.0 {
		t.Errorf("expected average 72.0, got %v", summary.AverageScore)
	}
	if summary.TotalStudents != 1 {
		t.Errorf("expected 1 student, got %d", summary.TotalStudents)
	}
	if summary.AvgSimilarity != 0.84 {
		t.Errorf("expected avg similarity 0.84, got %v", summary.AvgSimilarity)
	}
	if summary.AvgChunks != 5.0 {
		t.Errorf("expected avg chunks 5.0, got %v", summary.AvgChunks)
	}

	math, ok := summary.SubjectWiseStats["Math"]
	if !ok {
		t.Fatal("expected Math subject stats")
	}
	if math.Count != 1 || math.TotalScore != 72.0 || math.AvgScore != 72.0 {
		t.Errorf("unexpected subject stats: %+v", math)
	}
}

func TestStatsEngine_FeedbackSeries(t *testing.T) {
	se := service.NewStatsEngine(10)

	e1 := makeEvaluation(t, "Aisha Khan", "Math", 72.0, 0.84, 5)
	se.RecordEvaluation(e1)
	se.RecordFeedback(e1, makeFeedback(t, e1, 80.0, true))

	if got := se.LatestAccuracy(); got != 100.0 {
		t.Errorf("expected accuracy 100 after one correct verdict, got %v", got)
	}

	e2 := makeEvaluation(t, "Rohan Mehta", "Math", 60.0, 0.7, 4)
	se.RecordEvaluation(e2)
	se.RecordFeedback(e2, makeFeedback(t, e2, 50.0, false))

	perf := se.Performance()
	if len(perf.RunningAccuracy) != 2 {
		t.Fatalf("expected 2 accuracy points, got %d", len(perf.RunningAccuracy))
	}
	if perf.RunningAccuracy[0].Index != 1 || perf.RunningAccuracy[0].Accuracy != 100.0 {
		t.Errorf("unexpected first accuracy point: %+v", perf.RunningAccuracy[0])
	}
	if perf.RunningAccuracy[1].Index != 2 || perf.RunningAccuracy[1].Accuracy != 50.0 {
		t.Errorf("unexpected second accuracy point: %+v", perf.RunningAccuracy[1])
	}

	// Errors: |72-80| = 8 and |60-50| = 10, averaging 9.
	if perf.AvgError != 9.0 {
		t.Errorf("expected avg error 9.0, got %v", perf.AvgError)
	}
	if perf.TotalFeedback != 2 || perf.TotalEvaluations != 2 {
		t.Errorf("unexpected totals: %+v", perf)
	}

	p := perf.PerformanceData[1]
	if p.PredictedScore != 60.0 || p.ActualScore != 50.0 || p.Error != 10.0 || p.IsCorrect {
		t.Errorf("unexpected performance point: %+v", p)
	}

	math := se.Summary().SubjectWiseStats["Math"]
	if math.Count != 2 || math.AvgScore != 66.0 {
		t.Errorf("unexpected subject stats: %+v", math)
	}
}

func TestStatsEngine_TrendWindow(t *testing.T) {
	se := service.NewStatsEngine(3)

	students := []string{"A", "B", "C", "D", "E"}
	for i, name := range students {
		se.RecordEvaluation(makeEvaluation(t, name, "Math", float64(50+i), 0.5, 1))
	}

	trends := se.Summary().RecentTrends
	if len(trends) != 3 {
		t.Fatalf("expected window of 3 trends, got %d", len(trends))
	}
	// Most recent first.
	for i, want := range []string{"E", "D", "C"} {
		if trends[i].StudentName != want {
			t.Errorf("trend %d: expected %q, got %q", i, want, trends[i].StudentName)
		}
	}
}

func TestStatsEngine_ValidationPage(t *testing.T) {
	se := service.NewStatsEngine(10)

	for i := 0; i < 10; i++ {
		e := makeEvaluation(t, "Student", "Math", 70.0, 0.5, 1)
		se.RecordEvaluation(e)
		se.RecordFeedback(e, makeFeedback(t, e, 70.0, true))
	}

	entries, total := se.ValidationPage(1, 4)
	if total != 10 {
		t.Errorf("expected total 10, got %d", total)
	}
	if len(entries) != 4 {
		t.Fatalf("expected 4 entries on page 1, got %d", len(entries))
	}
	if entries[0].Index != 10 || entries[3].Index != 7 {
		t.Errorf("expected indexes 10..7 most recent first, got %d..%d", entries[0].Index, entries[3].Index)
	}

	entries, _ = se.ValidationPage(3, 4)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries on the last page, got %d", len(entries))
	}
	if entries[0].Index != 2 || entries[1].Index != 1 {
		t.Errorf("expected indexes 2, 1, got %d, %d", entries[0].Index, entries[1].Index)
	}

	entries, total = se.ValidationPage(4, 4)
	if len(entries) != 0 || total != 10 {
		t.Errorf("expected empty page past the end, got %d entries total %d", len(entries), total)
	}
}

func TestStatsEngine_Rebuild(t *testing.T) {
	dir := t.TempDir()
	st, err := store.NewSQLite(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("NewSQLite: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	ctx := context.Background()

	incremental := service.NewStatsEngine(10)
	base := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

	type event struct {
		student      string
		subject      string
		score        float64
		teacherScore float64
		isCorrect    bool
	}
	events := []event{
		{"Aisha Khan", "Math", 72.0, 80.0, true},
		{"Rohan Mehta", "Math", 60.0, 50.0, false},
		{"Lucia Alvarez", "Physics", 88.5, 90.0, true},
	}

	for i, ev := range events {
		eval := makeEvaluation(t, ev.student, ev.subject, ev.score, 0.8, 5)
		eval.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		if err := st.SaveEvaluation(ctx, eval); err != nil {
			t.Fatalf("SaveEvaluation: %v", err)
		}
		incremental.RecordEvaluation(eval)

		fb := makeFeedback(t, eval, ev.teacherScore, ev.isCorrect)
		if err := st.AppendFeedback(ctx, fb); err != nil {
			t.Fatalf("AppendFeedback: %v", err)
		}
		incremental.RecordFeedback(eval, fb)
	}

	rebuilt := service.NewStatsEngine(10)
	if err := rebuilt.Rebuild(ctx, st); err != nil {
		t.Fatalf("Rebuild: %v", err)
	}

	// A replay of the ledgers must reproduce the incremental state.
	want, got := incremental.Summary(), rebuilt.Summary()
	if got.TotalEvaluations != want.TotalEvaluations ||
		got.AverageScore != want.AverageScore ||
		got.TotalStudents != want.TotalStudents ||
		got.FeedbackCount != want.FeedbackCount ||
		got.ModelAccuracy != want.ModelAccuracy {
		t.Errorf("summary diverged after rebuild:\nincremental %+v\nrebuilt     %+v", want, got)
	}
	for subject, ws := range want.SubjectWiseStats {
		gs, ok := got.SubjectWiseStats[subject]
		if !ok || gs != ws {
			t.Errorf("subject %q diverged: incremental %+v rebuilt %+v", subject, ws, gs)
		}
	}

	wantPerf, gotPerf := incremental.Performance(), rebuilt.Performance()
	if gotPerf.AvgError != wantPerf.AvgError || gotPerf.TotalFeedback != wantPerf.TotalFeedback {
		t.Errorf("performance diverged: incremental %+v rebuilt %+v", wantPerf, gotPerf)
	}
	for i := range wantPerf.RunningAccuracy {
		if gotPerf.RunningAccuracy[i] != wantPerf.RunningAccuracy[i] {
			t.Errorf("accuracy point %d diverged: %+v vs %+v", i,
				wantPerf.RunningAccuracy[i], gotPerf.RunningAccuracy[i])
		}
	}
}

func TestStatsEngine_RebuildConsistencyFault(t *testing.T) {
	dir := t.TempDir()
	st, err := store.NewSQLite(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("NewSQLite: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	ctx := context.Background()

	// A ledger entry pointing at an evaluation that was never stored.
	orphan, err := feedback.New("no-such-evaluation", 80.0, "Reviewed.", nil, true)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := st.AppendFeedback(ctx, orphan); err != nil {
		t.Fatalf("AppendFeedback: %v", err)
	}

	se := service.NewStatsEngine(10)
	if err := se.Rebuild(ctx, st); !errors.Is(err, store.ErrConsistency) {
		t.Errorf("expected ErrConsistency, got %v", err)
	}
}
