package http

import (
	"time"

	"dogslife-quiz/internal/app"
	"dogslife-quiz/internal/domain"
	"dogslife-quiz/internal/quiz"
)

// questionView hides the correct answers until the session is finished.
type questionView struct {
	ID             int64               `json:"id"`
	Text           string              `json:"question_text"`
	Type           domain.QuestionType `json:"question_type"`
	AllAnswers     []string            `json:"all_answers"`
	CorrectAnswers []string            `json:"correct_answers,omitempty"`
	Category       string              `json:"category"`
}

type sessionView struct {
	SessionID     string         `json:"sessionId"`
	Category      string         `json:"category"`
	Questions     []questionView `json:"questions"`
	CurrentIndex  int            `json:"currentIndex"`
	Answers       domain.Answers `json:"answers"`
	TimeLimit     int            `json:"timeLimit"`
	TimeRemaining int            `json:"timeRemaining"`
	Phase         quiz.Phase     `json:"phase"`
	ForceFinished bool           `json:"forceFinished"`
	CanFinish     bool           `json:"canFinish"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

func newSessionView(snap app.Snapshot) sessionView {
	st := snap.State
	reveal := st.Phase == quiz.PhaseFinished
	questions := make([]questionView, len(st.Questions))
	for i, q := range st.Questions {
		questions[i] = questionView{
			ID:         q.ID,
			Text:       q.Text,
			Type:       q.Type,
			AllAnswers: q.AllAnswers,
			Category:   q.Category,
		}
		if reveal {
			questions[i].CorrectAnswers = q.CorrectAnswers
		}
	}
	return sessionView{
		SessionID:     snap.SessionID,
		Category:      snap.Category,
		Questions:     questions,
		CurrentIndex:  st.CurrentIndex,
		Answers:       st.Answers,
		TimeLimit:     st.TimeLimit,
		TimeRemaining: st.TimeRemaining,
		Phase:         st.Phase,
		ForceFinished: st.ForceFinished,
		CanFinish:     st.CanFinish(),
		UpdatedAt:     snap.UpdatedAt,
	}
}

type dispatchResponse struct {
	Accepted bool        `json:"accepted"`
	Session  sessionView `json:"session"`
}
