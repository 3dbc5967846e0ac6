package quiz

import (
	"strings"

	"dogslife-quiz/internal/domain"
)

// PassPercentage is the inclusive pass threshold.
const PassPercentage = 80

// OptionStatus classifies one answer option in the result review.
type OptionStatus string

const (
	OptionCorrectSelected OptionStatus = "correct_selected"
	OptionWrongSelected   OptionStatus = "wrong_selected"
	OptionMissed          OptionStatus = "missed"
	OptionNeutral         OptionStatus = "neutral"
)

// OptionReview is the review line for a single option.
type OptionReview struct {
	Text   string       `json:"text"`
	Status OptionStatus `json:"status"`
}

// QuestionResult is the scored outcome for one question.
type QuestionResult struct {
	Question  domain.Question `json:"question"`
	Selected  []string        `json:"selected"`
	Correct   []string        `json:"correct"`
	IsCorrect bool            `json:"isCorrect"`
	Options   []OptionReview  `json:"options"`
}

// Result is the scored review of a finished session.
type Result struct {
	Questions    []QuestionResult `json:"questions"`
	CorrectCount int              `json:"correctCount"`
	TotalCount   int              `json:"totalCount"`
	Percentage   int              `json:"percentage"`
	Passed       bool             `json:"passed"`
}

// Score grades every question by set equality of trimmed selections against
// the correct answers. No partial credit is given.
func Score(questions []domain.Question, answers domain.Answers) Result {
	result := Result{
		Questions:  make([]QuestionResult, 0, len(questions)),
		TotalCount: len(questions),
	}
	for _, q := range questions {
		selected := append([]string(nil), answers[q.ID]...)
		selectedSet := trimmedSet(selected)
		correctSet := trimmedSet(q.CorrectAnswers)

		isCorrect := sameSet(selectedSet, correctSet)
		if isCorrect {
			result.CorrectCount++
		}

		options := make([]OptionReview, 0, len(q.AllAnswers))
		for _, opt := range q.AllAnswers {
			_, chosen := selectedSet[strings.TrimSpace(opt)]
			_, right := correctSet[strings.TrimSpace(opt)]
			options = append(options, OptionReview{Text: opt, Status: optionStatus(chosen, right)})
		}

		result.Questions = append(result.Questions, QuestionResult{
			Question:  q,
			Selected:  selected,
			Correct:   append([]string(nil), q.CorrectAnswers...),
			IsCorrect: isCorrect,
			Options:   options,
		})
	}
	result.Percentage = Percentage(result.CorrectCount, result.TotalCount)
	result.Passed = result.TotalCount > 0 && result.Percentage >= PassPercentage
	return result
}

// Percentage rounds 100*correct/total half-up using integer arithmetic.
// A zero total yields 0.
func Percentage(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return (200*correct + total) / (2 * total)
}

func trimmedSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[strings.TrimSpace(v)] = struct{}{}
	}
	return set
}

func sameSet(a, b map[string]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for v := range a {
		if _, ok := b[v]; !ok {
			return false
		}
	}
	return true
}

func optionStatus(chosen, right bool) OptionStatus {
	switch {
	case chosen && right:
		return OptionCorrectSelected
	case chosen:
		return OptionWrongSelected
	case right:
		return OptionMissed
	}
	return OptionNeutral
}
