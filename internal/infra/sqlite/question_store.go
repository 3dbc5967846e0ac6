package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"dogslife-quiz/internal/domain"
	_ "modernc.org/sqlite" // registers "sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS questions (
	id              INTEGER PRIMARY KEY AUTOINCREMENT,
	question_text   TEXT NOT NULL,
	question_type   TEXT NOT NULL,
	all_answers     TEXT NOT NULL,
	correct_answers TEXT NOT NULL,
	category        TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS questions_category_idx ON questions (category);`

const selectQuestions = `SELECT id, question_text, question_type, all_answers, correct_answers, category FROM questions`

// QuestionStore keeps the question bank in a single SQLite file. Answer lists
// are stored as JSON arrays.
type QuestionStore struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and ensures the schema exists.
func Open(ctx context.Context, path string) (*QuestionStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// SQLite should not use many concurrent writers; keep pool small.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, `PRAGMA busy_timeout = 5000;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite pragmas: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite schema: %w", err)
	}
	return &QuestionStore{db: db}, nil
}

func (s *QuestionStore) Close() error {
	return s.db.Close()
}

func (s *QuestionStore) ListAll(ctx context.Context) ([]domain.Question, error) {
	return s.query(ctx, selectQuestions+` ORDER BY id`)
}

func (s *QuestionStore) ListByCategory(ctx context.Context, category string) ([]domain.Question, error) {
	return s.query(ctx, selectQuestions+` WHERE category = ? ORDER BY id`, category)
}

func (s *QuestionStore) InsertMany(ctx context.Context, questions []domain.Question) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin insert: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO questions (question_text, question_type, all_answers, correct_answers, category) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, q := range questions {
		args, err := columns(q)
		if err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("insert question %d: %w", i+1, err)
		}
	}
	return tx.Commit()
}

func (s *QuestionStore) Upsert(ctx context.Context, q domain.Question) (domain.Question, error) {
	args, err := columns(q)
	if err != nil {
		return domain.Question{}, err
	}

	if q.ID == 0 {
		res, err := s.db.ExecContext(ctx, `INSERT INTO questions (question_text, question_type, all_answers, correct_answers, category) VALUES (?, ?, ?, ?, ?)`, args...)
		if err != nil {
			return domain.Question{}, fmt.Errorf("insert question: %w", err)
		}
		if q.ID, err = res.LastInsertId(); err != nil {
			return domain.Question{}, fmt.Errorf("insert question: %w", err)
		}
		return q, nil
	}

	res, err := s.db.ExecContext(ctx, `UPDATE questions SET question_text = ?, question_type = ?, all_answers = ?, correct_answers = ?, category = ? WHERE id = ?`,
		append(args, q.ID)...)
	if err != nil {
		return domain.Question{}, fmt.Errorf("update question %d: %w", q.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.Question{}, domain.ErrQuestionNotFound
	}
	return q, nil
}

func (s *QuestionStore) DeleteByID(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM questions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete question %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrQuestionNotFound
	}
	return nil
}

func (s *QuestionStore) query(ctx context.Context, query string, args ...any) ([]domain.Question, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}
	defer rows.Close()

	questions := []domain.Question{}
	for rows.Next() {
		var (
			q                   domain.Question
			qType, all, correct string
		)
		if err := rows.Scan(&q.ID, &q.Text, &qType, &all, &correct, &q.Category); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		q.Type = domain.QuestionType(qType)
		if err := json.Unmarshal([]byte(all), &q.AllAnswers); err != nil {
			return nil, fmt.Errorf("decode answers of question %d: %w", q.ID, err)
		}
		if err := json.Unmarshal([]byte(correct), &q.CorrectAnswers); err != nil {
			return nil, fmt.Errorf("decode correct answers of question %d: %w", q.ID, err)
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

func columns(q domain.Question) ([]any, error) {
	all, err := json.Marshal(q.AllAnswers)
	if err != nil {
		return nil, err
	}
	correct, err := json.Marshal(q.CorrectAnswers)
	if err != nil {
		return nil, err
	}
	return []any{q.Text, string(q.Type), string(all), string(correct), q.Category}, nil
}
