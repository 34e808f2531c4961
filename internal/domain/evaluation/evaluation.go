package evaluation

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Evaluation is one AI-scored answer instance produced by the upstream
// scoring pipeline. Records are write-once: nothing here changes after
// creation. Teacher corrections live in the feedback ledger, never on
// the evaluation itself.
type Evaluation struct {
	ID string

	// Roster context, passed through verbatim from the roster collaborator.
	AnswerScriptID *string
	StudentID      *string
	StudentName    string
	ClassID        *string
	ClassName      *string
	SectionID      *string
	SectionName    *string
	Subject        string
	Topic          *string
	Question       *string
	AnswerText     *string
	ExamDate       *string

	// AI output.
	Score           float64
	MaxScore        float64
	Explanation     string
	MatchedConcepts []string
	MissingKeywords []string
	SimilarityScore float64
	RetrievedChunks int

	// Provenance from the OCR collaborator, stored as opaque strings.
	OCRText    *string
	PageImages []string

	CreatedAt time.Time
}

// Params carries the inputs for a new evaluation. Optional fields are
// pointers so absent and empty stay distinguishable, matching the store.
type Params struct {
	AnswerScriptID  *string
	StudentID       *string
	StudentName     string
	ClassID         *string
	ClassName       *string
	SectionID       *string
	SectionName     *string
	Subject         string
	Topic           *string
	Question        *string
	AnswerText      *string
	ExamDate        *string
	Score           float64
	MaxScore        float64
	Explanation     string
	MatchedConcepts []string
	MissingKeywords []string
	SimilarityScore float64
	RetrievedChunks int
	OCRText         *string
	PageImages      []string
}

// New validates the params and builds an Evaluation with a fresh id.
func New(p Params) (*Evaluation, error) {
	if strings.TrimSpace(p.StudentName) == "" {
		return nil, errors.New("student_name is required")
	}
	if strings.TrimSpace(p.Subject) == "" {
		return nil, errors.New("subject is required")
	}
	if p.Score < 0 || p.Score > 100 {
		return nil, errors.New("score must be between 0 and 100")
	}
	if p.SimilarityScore < 0 || p.SimilarityScore > 1 {
		return nil, errors.New("similarity_score must be between 0.0 and 1.0")
	}
	if p.RetrievedChunks < 0 {
		return nil, errors.New("retrieved_chunks cannot be negative")
	}

	maxScore := p.MaxScore
	if maxScore == 0 {
		maxScore = 100.0
	}

	matched := p.MatchedConcepts
	if matched == nil {
		matched = []string{}
	}
	missing := p.MissingKeywords
	if missing == nil {
		missing = []string{}
	}
	pages := p.PageImages
	if pages == nil {
		pages = []string{}
	}

	return &Evaluation{
		ID:              uuid.NewString(),
		AnswerScriptID:  p.AnswerScriptID,
		StudentID:       p.StudentID,
		StudentName:     p.StudentName,
		ClassID:         p.ClassID,
		ClassName:       p.ClassName,
		SectionID:       p.SectionID,
		SectionName:     p.SectionName,
		Subject:         p.Subject,
		Topic:           p.Topic,
		Question:        p.Question,
		AnswerText:      p.AnswerText,
		ExamDate:        p.ExamDate,
		Score:           p.Score,
		MaxScore:        maxScore,
		Explanation:     p.Explanation,
		MatchedConcepts: matched,
		MissingKeywords: missing,
		SimilarityScore: p.SimilarityScore,
		RetrievedChunks: p.RetrievedChunks,
		OCRText:         p.OCRText,
		PageImages:      pages,
		CreatedAt:       time.Now().UTC(),
	}, nil
}

// TopicOrGeneral returns the topic, normalized to "General" when unset.
func (e *Evaluation) TopicOrGeneral() string {
	if e.Topic == nil || strings.TrimSpace(*e.Topic) == "" {
		return "General"
	}
	return *e.Topic
}
