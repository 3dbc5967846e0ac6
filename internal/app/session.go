package app

import (
	"sync"
	"time"

	"dogslife-quiz/internal/domain"
	"dogslife-quiz/internal/quiz"
)

// Snapshot is an immutable copy of a session's state at one instant.
type Snapshot struct {
	SessionID string     `json:"sessionId"`
	Category  string     `json:"category"`
	State     quiz.State `json:"state"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// Session is the single controller owning one participant's quiz state.
// Every event is applied under mu, so events are processed one at a time in
// arrival order.
type Session struct {
	id        string
	category  string
	createdAt time.Time
	now       func() time.Time

	mu          sync.Mutex
	state       quiz.State
	result      *quiz.Result
	closed      bool
	subscribers map[chan Snapshot]struct{}
	onFinish    func(Snapshot, quiz.Result)

	stop     chan struct{}
	stopOnce sync.Once
}

func newSession(id, category string, state quiz.State, now func() time.Time) *Session {
	return &Session{
		id:          id,
		category:    category,
		createdAt:   now(),
		now:         now,
		state:       state,
		subscribers: make(map[chan Snapshot]struct{}),
		stop:        make(chan struct{}),
	}
}

// NewSession is exported for infrastructure layers and tests that need to seed sessions.
func NewSession(id string, questions []domain.Question, timeLimit int) *Session {
	category := ""
	if len(questions) > 0 {
		category = questions[0].Category
	}
	return newSession(id, category, quiz.NewState(questions, timeLimit), time.Now)
}

func (s *Session) ID() string { return s.id }

func (s *Session) CreatedAt() time.Time { return s.createdAt }

// Snapshot returns the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Dispatch applies one event. Rejected events leave the state untouched and
// report accepted=false; they are not errors.
func (s *Session) Dispatch(ev quiz.Event) (Snapshot, bool, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return Snapshot{}, false, domain.ErrSessionNotFound
	}

	next, accepted := quiz.Reduce(s.state, ev)
	if !accepted {
		snap := s.snapshotLocked()
		s.mu.Unlock()
		return snap, false, nil
	}
	s.state = next

	var (
		result       quiz.Result
		justFinished bool
	)
	if next.Phase == quiz.PhaseFinished && s.result == nil {
		result = quiz.Score(next.Questions, next.Answers)
		s.result = &result
		justFinished = true
		s.stopTimer()
	}
	snap := s.broadcastLocked()
	hook := s.onFinish
	s.mu.Unlock()

	if justFinished && hook != nil {
		hook(snap, result)
	}
	return snap, true, nil
}

// Result returns the scored review once the session is finished.
func (s *Session) Result() (quiz.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.result == nil {
		return quiz.Result{}, domain.ErrSessionNotFinished
	}
	return *s.result, nil
}

// Subscribe returns a channel receiving a snapshot after every accepted event.
// The caller must invoke the returned cancel function to avoid leaks.
func (s *Session) Subscribe() (<-chan Snapshot, func()) {
	ch := make(chan Snapshot, 8)

	s.mu.Lock()
	ch <- s.snapshotLocked()
	if s.closed {
		s.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	s.subscribers[ch] = struct{}{}
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		if _, ok := s.subscribers[ch]; ok {
			delete(s.subscribers, ch)
			close(ch)
		}
		s.mu.Unlock()
	}
	return ch, cancel
}

// Close abandons the session: the timer stops and subscribers are released.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.stopTimer()
	for ch := range s.subscribers {
		delete(s.subscribers, ch)
		close(ch)
	}
}

// startTimer dispatches a tick every interval until the session finishes or
// is closed. The tick reads the state at fire time through Dispatch.
func (s *Session) startTimer(interval time.Duration) {
	if interval <= 0 {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-s.stop:
				return
			case <-ticker.C:
				snap, _, err := s.Dispatch(quiz.Event{Kind: quiz.EventTick})
				if err != nil || snap.State.Phase == quiz.PhaseFinished {
					return
				}
			}
		}
	}()
}

func (s *Session) stopTimer() {
	s.stopOnce.Do(func() { close(s.stop) })
}

func (s *Session) timerStopped() bool {
	select {
	case <-s.stop:
		return true
	default:
		return false
	}
}

// Expired reports whether the session is older than maxAge. A zero maxAge never expires.
func (s *Session) Expired(maxAge time.Duration) bool {
	return maxAge > 0 && s.now().Sub(s.createdAt) > maxAge
}

func (s *Session) broadcastLocked() Snapshot {
	snap := s.snapshotLocked()
	for ch := range s.subscribers {
		select {
		case ch <- snap:
		default:
			// Drop the oldest queued snapshot so a slow reader never blocks the session.
			select {
			case <-ch:
			default:
			}
			ch <- snap
		}
	}
	return snap
}

func (s *Session) snapshotLocked() Snapshot {
	return Snapshot{
		SessionID: s.id,
		Category:  s.category,
		State:     s.state,
		UpdatedAt: s.now(),
	}
}
