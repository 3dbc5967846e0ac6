package postgres

import (
	"context"
	"fmt"

	"dogslife-quiz/internal/domain"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

const selectQuestions = `SELECT id, question_text, question_type, all_answers, correct_answers, category FROM questions`

// QuestionStore keeps the question bank in the questions table.
type QuestionStore struct {
	pool *pgxpool.Pool
}

func NewQuestionStore(pool *pgxpool.Pool) *QuestionStore {
	return &QuestionStore{pool: pool}
}

func (s *QuestionStore) ListAll(ctx context.Context) ([]domain.Question, error) {
	return s.query(ctx, selectQuestions+` ORDER BY id`)
}

func (s *QuestionStore) ListByCategory(ctx context.Context, category string) ([]domain.Question, error) {
	return s.query(ctx, selectQuestions+` WHERE category=$1 ORDER BY id`, category)
}

func (s *QuestionStore) InsertMany(ctx context.Context, questions []domain.Question) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin insert: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	batch := &pgx.Batch{}
	for _, q := range questions {
		batch.Queue(`INSERT INTO questions (question_text, question_type, all_answers, correct_answers, category)
			VALUES ($1, $2, $3, $4, $5)`, q.Text, string(q.Type), q.AllAnswers, q.CorrectAnswers, q.Category)
	}
	results := tx.SendBatch(ctx, batch)
	for i := range questions {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			return fmt.Errorf("insert question %d: %w", i+1, err)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("insert questions: %w", err)
	}
	return tx.Commit(ctx)
}

func (s *QuestionStore) Upsert(ctx context.Context, q domain.Question) (domain.Question, error) {
	if q.ID == 0 {
		err := s.pool.QueryRow(ctx, `INSERT INTO questions (question_text, question_type, all_answers, correct_answers, category)
			VALUES ($1, $2, $3, $4, $5) RETURNING id`,
			q.Text, string(q.Type), q.AllAnswers, q.CorrectAnswers, q.Category).Scan(&q.ID)
		if err != nil {
			return domain.Question{}, fmt.Errorf("insert question: %w", err)
		}
		return q, nil
	}

	tag, err := s.pool.Exec(ctx, `UPDATE questions SET question_text=$1, question_type=$2, all_answers=$3, correct_answers=$4, category=$5
		WHERE id=$6`, q.Text, string(q.Type), q.AllAnswers, q.CorrectAnswers, q.Category, q.ID)
	if err != nil {
		return domain.Question{}, fmt.Errorf("update question %d: %w", q.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.Question{}, domain.ErrQuestionNotFound
	}
	return q, nil
}

func (s *QuestionStore) DeleteByID(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM questions WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("delete question %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrQuestionNotFound
	}
	return nil
}

func (s *QuestionStore) query(ctx context.Context, sql string, args ...interface{}) ([]domain.Question, error) {
	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}
	defer rows.Close()

	questions := []domain.Question{}
	for rows.Next() {
		var (
			q     domain.Question
			qType string
		)
		if err := rows.Scan(&q.ID, &q.Text, &qType, &q.AllAnswers, &q.CorrectAnswers, &q.Category); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		q.Type = domain.QuestionType(qType)
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}
	return questions, nil
}
