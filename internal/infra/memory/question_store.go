package memory

import (
	"context"
	"sort"
	"sync"

	"dogslife-quiz/internal/domain"
)

// QuestionStore is an in-memory implementation of app.QuestionRepository.
type QuestionStore struct {
	mu        sync.RWMutex
	nextID    int64
	questions map[int64]domain.Question
}

func NewQuestionStore(seed ...domain.Question) *QuestionStore {
	s := &QuestionStore{nextID: 1, questions: make(map[int64]domain.Question)}
	for _, q := range seed {
		s.insertLocked(q)
	}
	return s
}

func (s *QuestionStore) ListAll(_ context.Context) ([]domain.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collectLocked(func(domain.Question) bool { return true }), nil
}

func (s *QuestionStore) ListByCategory(_ context.Context, category string) ([]domain.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collectLocked(func(q domain.Question) bool { return q.Category == category }), nil
}

func (s *QuestionStore) InsertMany(_ context.Context, questions []domain.Question) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, q := range questions {
		s.insertLocked(q)
	}
	return nil
}

func (s *QuestionStore) Upsert(_ context.Context, q domain.Question) (domain.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if q.ID == 0 {
		return s.insertLocked(q), nil
	}
	if _, ok := s.questions[q.ID]; !ok {
		return domain.Question{}, domain.ErrQuestionNotFound
	}
	q = clone(q)
	s.questions[q.ID] = q
	return clone(q), nil
}

func (s *QuestionStore) DeleteByID(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.questions[id]; !ok {
		return domain.ErrQuestionNotFound
	}
	delete(s.questions, id)
	return nil
}

func (s *QuestionStore) insertLocked(q domain.Question) domain.Question {
	q = clone(q)
	q.ID = s.nextID
	s.nextID++
	s.questions[q.ID] = q
	return clone(q)
}

func (s *QuestionStore) collectLocked(keep func(domain.Question) bool) []domain.Question {
	out := make([]domain.Question, 0, len(s.questions))
	for _, q := range s.questions {
		if keep(q) {
			out = append(out, clone(q))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func clone(q domain.Question) domain.Question {
	q.AllAnswers = append([]string(nil), q.AllAnswers...)
	q.CorrectAnswers = append([]string(nil), q.CorrectAnswers...)
	return q
}
