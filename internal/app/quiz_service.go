package app

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"dogslife-quiz/internal/domain"
	"dogslife-quiz/internal/quiz"
	"github.com/google/uuid"
)

// QuestionRepository is the remote question store (Postgres, SQLite, in-memory, cached variants).
type QuestionRepository interface {
	ListAll(ctx context.Context) ([]domain.Question, error)
	ListByCategory(ctx context.Context, category string) ([]domain.Question, error)
	InsertMany(ctx context.Context, questions []domain.Question) error
	// Upsert inserts when ID is zero and replaces the stored question otherwise.
	Upsert(ctx context.Context, question domain.Question) (domain.Question, error)
	DeleteByID(ctx context.Context, id int64) error
}

// SessionRepository abstracts where live sessions are kept (in-memory, Redis-marked, etc).
type SessionRepository interface {
	Put(session *Session)
	Get(id string) (*Session, bool)
	Delete(id string)
	// Sweep closes and drops sessions older than maxAge, returning how many were removed.
	Sweep(maxAge time.Duration) int
}

// ResultPublisher receives a summary of every finished session.
type ResultPublisher interface {
	PublishResult(ctx context.Context, result SessionResult) error
}

// SessionResult is the published summary of a finished session.
type SessionResult struct {
	SessionID     string    `json:"sessionId"`
	Category      string    `json:"category"`
	CorrectCount  int       `json:"correctCount"`
	TotalCount    int       `json:"totalCount"`
	Percentage    int       `json:"percentage"`
	Passed        bool      `json:"passed"`
	ForceFinished bool      `json:"forceFinished"`
	FinishedAt    time.Time `json:"finishedAt"`
}

// Offer describes the choices shown on the selection screen.
type Offer struct {
	Categories []string `json:"categories"`
	Counts     []int    `json:"counts"`
	TimedCount int      `json:"timedCount"`
	TimeLimit  int      `json:"timeLimitSeconds"`
}

// Option customizes a QuizService.
type Option func(*QuizService)

func WithTimePolicy(p quiz.TimePolicy) Option { return func(s *QuizService) { s.policy = p } }
func WithTickInterval(d time.Duration) Option { return func(s *QuizService) { s.tick = d } }
func WithResultPublisher(p ResultPublisher) Option {
	return func(s *QuizService) { s.publisher = p }
}
func WithRand(rnd *rand.Rand) Option { return func(s *QuizService) { s.rnd = rnd } }
func WithClock(now func() time.Time) Option {
	return func(s *QuizService) { s.now = now }
}
func WithOffer(categories []string, counts []int) Option {
	return func(s *QuizService) {
		s.categories = categories
		s.counts = counts
	}
}

// QuizService contains the participant use cases.
type QuizService struct {
	sessions  SessionRepository
	questions QuestionRepository
	policy    quiz.TimePolicy
	tick      time.Duration
	publisher ResultPublisher
	now       func() time.Time

	categories []string
	counts     []int

	rndMu sync.Mutex
	rnd   *rand.Rand
}

func NewQuizService(sessions SessionRepository, questions QuestionRepository, opts ...Option) *QuizService {
	s := &QuizService{
		sessions:  sessions,
		questions: questions,
		policy:    quiz.DefaultTimePolicy,
		tick:      time.Second,
		now:       time.Now,
		rnd:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *QuizService) Offer() Offer {
	return Offer{
		Categories: s.categories,
		Counts:     s.counts,
		TimedCount: s.policy.TimedCount,
		TimeLimit:  s.policy.BudgetFor(s.policy.TimedCount),
	}
}

// StartSession fetches the category, picks the questions and starts a live
// session. Nothing is created when the fetch fails or the category is empty.
func (s *QuizService) StartSession(ctx context.Context, cfg domain.QuizConfig) (Snapshot, error) {
	if err := cfg.Validate(); err != nil {
		return Snapshot{}, err
	}

	available, err := s.questions.ListByCategory(ctx, cfg.Category)
	if err != nil {
		return Snapshot{}, fmt.Errorf("%w: %w", domain.ErrFetchFailure, err)
	}
	if len(available) == 0 {
		return Snapshot{}, fmt.Errorf("%w: %q", domain.ErrEmptyCategory, cfg.Category)
	}

	s.rndMu.Lock()
	picked := quiz.Pick(available, cfg.Count, s.rnd)
	s.rndMu.Unlock()

	budget := s.policy.BudgetFor(cfg.Count)
	session := newSession(uuid.NewString(), cfg.Category, quiz.NewState(picked, budget), s.now)
	session.onFinish = s.finished
	s.sessions.Put(session)
	if budget > 0 {
		session.startTimer(s.tick)
	}

	log.Printf("session %s started: category=%q questions=%d time_limit=%ds", session.id, cfg.Category, len(picked), budget)
	return session.Snapshot(), nil
}

// Get returns the current snapshot of a session.
func (s *QuizService) Get(_ context.Context, sessionID string) (Snapshot, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return Snapshot{}, domain.ErrSessionNotFound
	}
	return session.Snapshot(), nil
}

// Dispatch forwards a participant event to the session.
func (s *QuizService) Dispatch(_ context.Context, sessionID string, ev quiz.Event) (Snapshot, bool, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return Snapshot{}, false, domain.ErrSessionNotFound
	}
	return session.Dispatch(ev)
}

// Result returns the scored review of a finished session.
func (s *QuizService) Result(_ context.Context, sessionID string) (quiz.Result, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return quiz.Result{}, domain.ErrSessionNotFound
	}
	return session.Result()
}

// Subscribe returns a channel that receives session snapshots.
// The caller must invoke the returned cancel function to avoid leaks.
func (s *QuizService) Subscribe(_ context.Context, sessionID string) (<-chan Snapshot, func(), error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, nil, domain.ErrSessionNotFound
	}
	ch, cancel := session.Subscribe()
	return ch, cancel, nil
}

// Abandon stops the session timer and forgets the session.
func (s *QuizService) Abandon(_ context.Context, sessionID string) error {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return domain.ErrSessionNotFound
	}
	session.Close()
	s.sessions.Delete(sessionID)
	return nil
}

// Sweep drops sessions older than maxAge.
func (s *QuizService) Sweep(maxAge time.Duration) int {
	return s.sessions.Sweep(maxAge)
}

func (s *QuizService) finished(snap Snapshot, result quiz.Result) {
	log.Printf("session %s finished: %d/%d (%d%%) passed=%v forced=%v",
		snap.SessionID, result.CorrectCount, result.TotalCount, result.Percentage, result.Passed, snap.State.ForceFinished)
	if s.publisher == nil {
		return
	}
	summary := SessionResult{
		SessionID:     snap.SessionID,
		Category:      snap.Category,
		CorrectCount:  result.CorrectCount,
		TotalCount:    result.TotalCount,
		Percentage:    result.Percentage,
		Passed:        result.Passed,
		ForceFinished: snap.State.ForceFinished,
		FinishedAt:    snap.UpdatedAt,
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.publisher.PublishResult(ctx, summary); err != nil {
			log.Printf("publish result for session %s: %v", summary.SessionID, err)
		}
	}()
}
