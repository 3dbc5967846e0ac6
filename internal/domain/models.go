package domain

import (
	"fmt"
	"strings"
)

// QuestionType distinguishes radio (single) from checkbox (multiple) questions.
type QuestionType string

const (
	SingleChoice   QuestionType = "single_choice"
	MultipleChoice QuestionType = "multiple_choice"
)

// ParseQuestionType accepts the canonical values and the human aliases used in CSV files.
func ParseQuestionType(raw string) (QuestionType, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case string(SingleChoice), "single choice":
		return SingleChoice, true
	case string(MultipleChoice), "multiple choice":
		return MultipleChoice, true
	}
	return "", false
}

// Question is one entry of the question bank.
type Question struct {
	ID             int64        `json:"id"`
	Text           string       `json:"question_text"`
	Type           QuestionType `json:"question_type"`
	AllAnswers     []string     `json:"all_answers"`
	CorrectAnswers []string     `json:"correct_answers"`
	Category       string       `json:"category"`
}

// HasOption reports whether option is one of the displayed answers.
func (q Question) HasOption(option string) bool {
	for _, a := range q.AllAnswers {
		if a == option {
			return true
		}
	}
	return false
}

// IsCorrectOption reports whether option belongs to the correct answer set.
func (q Question) IsCorrectOption(option string) bool {
	option = strings.TrimSpace(option)
	for _, c := range q.CorrectAnswers {
		if strings.TrimSpace(c) == option {
			return true
		}
	}
	return false
}

// Validate reports whether q is fit to be stored.
func (q Question) Validate() error {
	if strings.TrimSpace(q.Text) == "" {
		return fmt.Errorf("%w: question text is required", ErrValidation)
	}
	if strings.TrimSpace(q.Category) == "" {
		return fmt.Errorf("%w: category is required", ErrValidation)
	}
	if q.Type != SingleChoice && q.Type != MultipleChoice {
		return fmt.Errorf("%w: invalid question type %q", ErrValidation, q.Type)
	}
	if len(q.AllAnswers) < 2 {
		return fmt.Errorf("%w: at least 2 answers are required", ErrValidation)
	}
	seen := make(map[string]struct{}, len(q.AllAnswers))
	for _, a := range q.AllAnswers {
		if strings.TrimSpace(a) == "" {
			return fmt.Errorf("%w: answers must not be blank", ErrValidation)
		}
		if _, dup := seen[a]; dup {
			return fmt.Errorf("%w: duplicate answer %q", ErrValidation, a)
		}
		seen[a] = struct{}{}
	}
	for _, c := range q.CorrectAnswers {
		if _, ok := seen[c]; !ok {
			return fmt.Errorf("%w: correct answer %q is not an option", ErrValidation, c)
		}
	}
	switch {
	case q.Type == SingleChoice && len(q.CorrectAnswers) != 1:
		return fmt.Errorf("%w: single choice questions need exactly one correct answer", ErrValidation)
	case q.Type == MultipleChoice && len(q.CorrectAnswers) == 0:
		return fmt.Errorf("%w: multiple choice questions need at least one correct answer", ErrValidation)
	}
	return nil
}

// QuizConfig is the participant's choice before a session starts.
type QuizConfig struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

func (c QuizConfig) Validate() error {
	if strings.TrimSpace(c.Category) == "" {
		return fmt.Errorf("%w: category is required", ErrValidation)
	}
	if c.Count <= 0 {
		return fmt.Errorf("%w: count must be a positive integer", ErrValidation)
	}
	return nil
}

// Answers maps question IDs to the options selected so far. A missing key is an empty selection.
type Answers map[int64][]string

// Selected returns the selection for a question, nil when unanswered.
func (a Answers) Selected(questionID int64) []string {
	return a[questionID]
}

// Clone returns a deep copy.
func (a Answers) Clone() Answers {
	out := make(Answers, len(a))
	for id, sel := range a {
		out[id] = append([]string(nil), sel...)
	}
	return out
}
