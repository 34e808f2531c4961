// cmd/seed seeds a local database with sample evaluations and teacher
// corrections through the real service path, so the dashboards have
// something to show during development.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/gradelens/backend/internal/domain/evaluation"
	"github.com/gradelens/backend/internal/service"
	"github.com/gradelens/backend/internal/store"
)

type sample struct {
	student      string
	subject      string
	topic        string
	aiScore      float64
	teacherScore float64
	isCorrect    bool
	comment      string
}

var samples = []sample{
	{"Aisha Khan", "Math", "Calculus", 72.0, 80.0, true, "Good coverage of integration by parts, the AI missed partial credit for the setup."},
	{"Rohan Mehta", "Math", "Algebra", 60.0, 50.0, false, "The answer confuses factoring with expansion; the AI scored it too generously."},
	{"Lucia Alvarez", "Physics", "Optics", 88.5, 90.0, true, "Accurate evaluation, ray diagrams were correctly credited."},
	{"David Chen", "Chemistry", "Stoichiometry", 45.0, 55.0, true, "Units were right even though the final value was off; worth a few more points."},
	{"Fatima Noor", "Physics", "Mechanics", 91.0, 70.0, false, "The AI credited a memorized formula that was applied incorrectly."},
}

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	ctx := context.Background()

	dbPath := "gradelens.db"
	if len(os.Args) > 1 {
		dbPath = os.Args[1]
	}

	db, err := store.NewSQLite(dbPath)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	stats := service.NewStatsEngine(10)
	if err := stats.Rebuild(ctx, db); err != nil {
		logger.Error("failed to rebuild statistics", "error", err)
		os.Exit(1)
	}

	evaluationSvc := service.NewEvaluationService(db, stats, logger)
	feedbackSvc := service.NewFeedbackService(db, stats, logger)
	analyticsSvc := service.NewAnalyticsService(db, stats, 8)

	for _, s := range samples {
		topic := s.topic
		eval, err := evaluationSvc.Create(ctx, evaluation.Params{
			StudentName:     s.student,
			Subject:         s.subject,
			Topic:           &topic,
			Score:           s.aiScore,
			Explanation:     "Scored against the reference syllabus.",
			MatchedConcepts: []string{"definition", "worked example"},
			MissingKeywords: []string{"units"},
			SimilarityScore: 0.8,
			RetrievedChunks: 5,
		})
		if err != nil {
			logger.Error("failed to seed evaluation", "student", s.student, "error", err)
			os.Exit(1)
		}

		result, err := feedbackSvc.Submit(ctx, eval.ID, s.teacherScore, s.comment, nil, s.isCorrect)
		if err != nil {
			logger.Error("failed to seed feedback", "evaluation_id", eval.ID, "error", err)
			os.Exit(1)
		}
		fmt.Printf("seeded %s / %s: ai=%.1f teacher=%.1f accuracy=%.1f%%\n",
			s.student, s.subject, s.aiScore, s.teacherScore, result.Accuracy)
	}

	summary := analyticsSvc.Summary()
	fmt.Printf("\n%d evaluations, %d students, average score %.2f, model accuracy %.2f%%\n",
		summary.TotalEvaluations, summary.TotalStudents, summary.AverageScore, summary.ModelAccuracy)
	for subject, stats := range summary.SubjectWiseStats {
		fmt.Printf("  %-12s count=%d avg=%.2f\n", subject, stats.Count, stats.AvgScore)
	}
}
