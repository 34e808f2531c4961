// internal/store/sqlite.go
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/gradelens/backend/internal/domain/evaluation"
)

const schema = `
CREATE TABLE IF NOT EXISTS evaluations (
    id TEXT PRIMARY KEY,
    answer_script_id TEXT,
    student_id TEXT,
    student_name TEXT NOT NULL,
    class_id TEXT,
    class_name TEXT,
    section_id TEXT,
    section_name TEXT,
    subject TEXT NOT NULL,
    topic TEXT,
    question TEXT,
    answer_text TEXT,
    exam_date TEXT,
    score REAL NOT NULL,
    max_score REAL NOT NULL DEFAULT 100,
    explanation TEXT NOT NULL DEFAULT '',
    matched_concepts TEXT NOT NULL DEFAULT '[]',
    missing_keywords TEXT NOT NULL DEFAULT '[]',
    similarity_score REAL NOT NULL DEFAULT 0,
    retrieved_chunks INTEGER NOT NULL DEFAULT 0,
    ocr_text TEXT,
    page_images TEXT NOT NULL DEFAULT '[]',
    created_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS feedback (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    id TEXT NOT NULL UNIQUE,
    evaluation_id TEXT NOT NULL UNIQUE,
    teacher_score REAL NOT NULL,
    feedback TEXT NOT NULL,
    concept_feedback TEXT NOT NULL DEFAULT '[]',
    is_correct BOOLEAN NOT NULL,
    score_difference REAL NOT NULL,
    accuracy_contribution REAL NOT NULL,
    created_at DATETIME NOT NULL,
    FOREIGN KEY (evaluation_id) REFERENCES evaluations(id)
);

CREATE INDEX IF NOT EXISTS idx_evaluations_subject ON evaluations(subject);
CREATE INDEX IF NOT EXISTS idx_evaluations_created ON evaluations(created_at);
`

type SQLiteStore struct {
	db *sql.DB
}

// Compile-time check: *SQLiteStore satisfies the Store interface.
var _ Store = (*SQLiteStore)(nil)

func NewSQLite(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, err
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// ============================================================================
// Evaluations
// ============================================================================

// evalListColumns excludes the provenance blobs (ocr_text, page_images);
// list responses never carry them. GetEvaluation loads the full record.
const evalListColumns = `id, answer_script_id, student_id, student_name,
	class_id, class_name, section_id, section_name, subject, topic, question,
	answer_text, exam_date, score, max_score, explanation, matched_concepts,
	missing_keywords, similarity_score, retrieved_chunks, created_at`

func (s *SQLiteStore) SaveEvaluation(ctx context.Context, e *evaluation.Evaluation) error {
	matched, _ := json.Marshal(e.MatchedConcepts)
	missing, _ := json.Marshal(e.MissingKeywords)
	pages, _ := json.Marshal(e.PageImages)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO evaluations (
			id, answer_script_id, student_id, student_name,
			class_id, class_name, section_id, section_name,
			subject, topic, question, answer_text, exam_date,
			score, max_score, explanation, matched_concepts, missing_keywords,
			similarity_score, retrieved_chunks, ocr_text, page_images, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.AnswerScriptID, e.StudentID, e.StudentName,
		e.ClassID, e.ClassName, e.SectionID, e.SectionName,
		e.Subject, e.Topic, e.Question, e.AnswerText, e.ExamDate,
		e.Score, e.MaxScore, e.Explanation, string(matched), string(missing),
		e.SimilarityScore, e.RetrievedChunks, e.OCRText, string(pages), e.CreatedAt,
	)
	return err
}

func (s *SQLiteStore) GetEvaluation(ctx context.Context, id string) (*evaluation.Evaluation, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+evalListColumns+`, ocr_text, page_images
		FROM evaluations WHERE id = ?`, id)

	var e evaluation.Evaluation
	var answerScriptID, studentID, classID, className, sectionID, sectionName sql.NullString
	var topic, question, answerText, examDate, ocrText sql.NullString
	var matched, missing, pages string

	err := row.Scan(
		&e.ID, &answerScriptID, &studentID, &e.StudentName,
		&classID, &className, &sectionID, &sectionName,
		&e.Subject, &topic, &question, &answerText, &examDate,
		&e.Score, &e.MaxScore, &e.Explanation, &matched, &missing,
		&e.SimilarityScore, &e.RetrievedChunks, &e.CreatedAt,
		&ocrText, &pages,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	e.AnswerScriptID = fromNull(answerScriptID)
	e.StudentID = fromNull(studentID)
	e.ClassID = fromNull(classID)
	e.ClassName = fromNull(className)
	e.SectionID = fromNull(sectionID)
	e.SectionName = fromNull(sectionName)
	e.Topic = fromNull(topic)
	e.Question = fromNull(question)
	e.AnswerText = fromNull(answerText)
	e.ExamDate = fromNull(examDate)
	e.OCRText = fromNull(ocrText)

	json.Unmarshal([]byte(matched), &e.MatchedConcepts)
	json.Unmarshal([]byte(missing), &e.MissingKeywords)
	json.Unmarshal([]byte(pages), &e.PageImages)

	return &e, nil
}

// ListEvaluations returns evaluations newest first, with a deterministic
// id tiebreak so the order is stable under equal timestamps.
func (s *SQLiteStore) ListEvaluations(ctx context.Context, f EvaluationFilter) ([]*evaluation.Evaluation, error) {
	var conds []string
	var args []any

	if f.Subject != "" {
		conds = append(conds, "subject = ?")
		args = append(args, f.Subject)
	}
	if f.ClassID != "" {
		conds = append(conds, "class_id = ?")
		args = append(args, f.ClassID)
	}
	if f.SectionID != "" {
		conds = append(conds, "section_id = ?")
		args = append(args, f.SectionID)
	}
	if f.StudentName != "" {
		conds = append(conds, "student_name = ?")
		args = append(args, f.StudentName)
	}
	if f.Reviewed != nil {
		sub := "EXISTS (SELECT 1 FROM feedback WHERE feedback.evaluation_id = evaluations.id)"
		if !*f.Reviewed {
			sub = "NOT " + sub
		}
		conds = append(conds, sub)
	}

	query := "SELECT " + evalListColumns + " FROM evaluations"
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC, id DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var evals []*evaluation.Evaluation
	for rows.Next() {
		var e evaluation.Evaluation
		var answerScriptID, studentID, classID, className, sectionID, sectionName sql.NullString
		var topic, question, answerText, examDate sql.NullString
		var matched, missing string

		if err := rows.Scan(
			&e.ID, &answerScriptID, &studentID, &e.StudentName,
			&classID, &className, &sectionID, &sectionName,
			&e.Subject, &topic, &question, &answerText, &examDate,
			&e.Score, &e.MaxScore, &e.Explanation, &matched, &missing,
			&e.SimilarityScore, &e.RetrievedChunks, &e.CreatedAt,
		); err != nil {
			return nil, err
		}

		e.AnswerScriptID = fromNull(answerScriptID)
		e.StudentID = fromNull(studentID)
		e.ClassID = fromNull(classID)
		e.ClassName = fromNull(className)
		e.SectionID = fromNull(sectionID)
		e.SectionName = fromNull(sectionName)
		e.Topic = fromNull(topic)
		e.Question = fromNull(question)
		e.AnswerText = fromNull(answerText)
		e.ExamDate = fromNull(examDate)

		json.Unmarshal([]byte(matched), &e.MatchedConcepts)
		json.Unmarshal([]byte(missing), &e.MissingKeywords)

		evals = append(evals, &e)
	}
	return evals, rows.Err()
}

func (s *SQLiteStore) CountEvaluations(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM evaluations").Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count evaluations: %w", err)
	}
	return n, nil
}

// ListReviewedIDs returns the set of evaluation ids that have feedback.
func (s *SQLiteStore) ListReviewedIDs(ctx context.Context) (map[string]struct{}, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT evaluation_id FROM feedback")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make(map[string]struct{})
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids[id] = struct{}{}
	}
	return ids, rows.Err()
}

func fromNull(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return &s.String
}
