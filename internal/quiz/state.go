package quiz

import "dogslife-quiz/internal/domain"

// Phase is the lifecycle position of a session.
type Phase string

const (
	PhaseInProgress       Phase = "in_progress"
	PhaseConfirmingFinish Phase = "confirming_finish"
	PhaseFinished         Phase = "finished"
)

// State is the full state of one quiz attempt. Transitions never mutate the
// receiver; they return a new State and whether the event was accepted.
type State struct {
	Questions    []domain.Question `json:"questions"`
	CurrentIndex int               `json:"currentIndex"`
	Answers      domain.Answers    `json:"answers"`
	// TimeLimit is the configured budget in seconds; 0 means no limit is enforced.
	TimeLimit     int   `json:"timeLimit"`
	TimeRemaining int   `json:"timeRemaining"`
	Phase         Phase `json:"phase"`
	// ForceFinished is set when the session ended because time ran out.
	ForceFinished bool `json:"forceFinished"`
}

// NewState starts a session over a fixed question list with an optional time budget in seconds.
func NewState(questions []domain.Question, timeLimit int) State {
	if timeLimit < 0 {
		timeLimit = 0
	}
	return State{
		Questions:     append([]domain.Question(nil), questions...),
		Answers:       domain.Answers{},
		TimeLimit:     timeLimit,
		TimeRemaining: timeLimit,
		Phase:         PhaseInProgress,
	}
}

// Current returns the question at CurrentIndex.
func (s State) Current() (domain.Question, bool) {
	if s.CurrentIndex < 0 || s.CurrentIndex >= len(s.Questions) {
		return domain.Question{}, false
	}
	return s.Questions[s.CurrentIndex], true
}

func (s State) IsLast() bool {
	return s.CurrentIndex == len(s.Questions)-1
}

func (s State) Timed() bool {
	return s.TimeLimit > 0
}

// AllAnswered reports whether every question has a non-empty selection.
func (s State) AllAnswered() bool {
	for _, q := range s.Questions {
		if len(s.Answers[q.ID]) == 0 {
			return false
		}
	}
	return true
}

// CanFinish mirrors the enabled state of the finish affordance.
func (s State) CanFinish() bool {
	return s.Phase == PhaseInProgress && s.IsLast() && s.AllAnswered()
}

func (s State) question(id int64) (domain.Question, bool) {
	for _, q := range s.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return domain.Question{}, false
}

// SelectAnswer applies radio semantics to single choice questions and
// checkbox semantics to multiple choice questions.
func (s State) SelectAnswer(questionID int64, option string) (State, bool) {
	if s.Phase != PhaseInProgress {
		return s, false
	}
	q, ok := s.question(questionID)
	if !ok || !q.HasOption(option) {
		return s, false
	}

	current := s.Answers[questionID]
	var next []string
	if q.Type == domain.SingleChoice {
		next = []string{option}
	} else {
		removed := false
		for _, sel := range current {
			if sel == option {
				removed = true
				continue
			}
			next = append(next, sel)
		}
		if !removed {
			next = append(next, option)
		}
	}

	answers := s.Answers.Clone()
	if len(next) == 0 {
		delete(answers, questionID)
	} else {
		answers[questionID] = next
	}
	s.Answers = answers
	return s, true
}

func (s State) Next() (State, bool) {
	if s.Phase != PhaseInProgress || s.CurrentIndex >= len(s.Questions)-1 {
		return s, false
	}
	s.CurrentIndex++
	return s, true
}

func (s State) Previous() (State, bool) {
	if s.Phase != PhaseInProgress || s.CurrentIndex <= 0 {
		return s, false
	}
	s.CurrentIndex--
	return s, true
}

// RequestFinish opens the finish confirmation. Only allowed on the last
// question with every question answered.
func (s State) RequestFinish() (State, bool) {
	if !s.CanFinish() {
		return s, false
	}
	s.Phase = PhaseConfirmingFinish
	return s, true
}

func (s State) ConfirmFinish() (State, bool) {
	if s.Phase != PhaseConfirmingFinish {
		return s, false
	}
	s.Phase = PhaseFinished
	return s, true
}

func (s State) CancelFinish() (State, bool) {
	if s.Phase != PhaseConfirmingFinish {
		return s, false
	}
	s.Phase = PhaseInProgress
	return s, true
}

// Tick consumes one second of the budget. Reaching zero finishes the session
// with whatever answers exist, skipping the all-answered check.
func (s State) Tick() (State, bool) {
	if !s.Timed() || s.Phase == PhaseFinished {
		return s, false
	}
	if s.TimeRemaining > 0 {
		s.TimeRemaining--
	}
	if s.TimeRemaining == 0 {
		s.Phase = PhaseFinished
		s.ForceFinished = true
	}
	return s, true
}

// EventKind names a participant or timer event.
type EventKind string

const (
	EventSelect        EventKind = "select"
	EventNext          EventKind = "next"
	EventPrevious      EventKind = "previous"
	EventRequestFinish EventKind = "finish"
	EventConfirmFinish EventKind = "confirm"
	EventCancelFinish  EventKind = "cancel"
	EventTick          EventKind = "tick"
)

// Event is the input of Reduce. QuestionID and Option are only read by EventSelect.
type Event struct {
	Kind       EventKind `json:"type"`
	QuestionID int64     `json:"questionId,omitempty"`
	Option     string    `json:"option,omitempty"`
}

// Reduce dispatches an event to its transition. Unknown events are rejected.
func Reduce(s State, ev Event) (State, bool) {
	switch ev.Kind {
	case EventSelect:
		return s.SelectAnswer(ev.QuestionID, ev.Option)
	case EventNext:
		return s.Next()
	case EventPrevious:
		return s.Previous()
	case EventRequestFinish:
		return s.RequestFinish()
	case EventConfirmFinish:
		return s.ConfirmFinish()
	case EventCancelFinish:
		return s.CancelFinish()
	case EventTick:
		return s.Tick()
	}
	return s, false
}
