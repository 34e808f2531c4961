package evaluation_test

import (
	"testing"

	"github.com/gradelens/backend/internal/domain/evaluation"
)

func validParams() evaluation.Params {
	return evaluation.Params{
		StudentName:     "Aisha Khan",
		Subject:         "Math",
		Score:           72.0,
		SimilarityScore: 0.84,
		RetrievedChunks: 5,
	}
}

func TestNewEvaluation(t *testing.T) {
	eval, err := evaluation.New(validParams())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if eval.ID == "" {
		t.Error("expected a generated id")
	}
	if eval.StudentName != "Aisha Khan" {
		t.Errorf("expected student %q, got %q", "Aisha Khan", eval.StudentName)
	}
	if eval.Score != 72.0 {
		t.Errorf("expected score 72.0, got %v", eval.Score)
	}
	if eval.CreatedAt.IsZero() {
		t.Error("expected created_at to be set")
	}
}

func TestNewEvaluation_Defaults(t *testing.T) {
	eval, err := evaluation.New(validParams())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if eval.MaxScore != 100.0 {
		t.Errorf("expected default max score 100, got %v", eval.MaxScore)
	}
	if eval.MatchedConcepts == nil || eval.MissingKeywords == nil || eval.PageImages == nil {
		t.Error("expected nil slices to default to empty")
	}
}

func TestNewEvaluation_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*evaluation.Params)
	}{
		{"missing student name", func(p *evaluation.Params) { p.StudentName = "" }},
		{"blank student name", func(p *evaluation.Params) { p.StudentName = "   " }},
		{"missing subject", func(p *evaluation.Params) { p.Subject = "" }},
		{"score below range", func(p *evaluation.Params) { p.Score = -1 }},
		{"score above range", func(p *evaluation.Params) { p.Score = 100.5 }},
		{"similarity above range", func(p *evaluation.Params) { p.SimilarityScore = 1.1 }},
		{"similarity below range", func(p *evaluation.Params) { p.SimilarityScore = -0.1 }},
		{"negative chunks", func(p *evaluation.Params) { p.RetrievedChunks = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validParams()
			tt.mutate(&p)

			if _, err := evaluation.New(p); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestTopicOrGeneral(t *testing.T) {
	topic := "Calculus"
	blank := "  "

	tests := []struct {
		name  string
		topic *string
		want  string
	}{
		{"set topic", &topic, "Calculus"},
		{"nil topic", nil, "General"},
		{"blank topic", &blank, "General"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validParams()
			p.Topic = tt.topic
			eval, err := evaluation.New(p)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := eval.TopicOrGeneral(); got != tt.want {
				t.Errorf("expected topic %q, got %q", tt.want, got)
			}
		})
	}
}
