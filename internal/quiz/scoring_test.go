package quiz

import (
	"reflect"
	"testing"

	"dogslife-quiz/internal/domain"
)

func TestScoreRequiresExactSet(t *testing.T) {
	q := domain.Question{
		ID:             7,
		Type:           domain.MultipleChoice,
		AllAnswers:     []string{"A", "B", "C"},
		CorrectAnswers: []string{"A", "B"},
	}
	cases := []struct {
		selected []string
		want     bool
	}{
		{[]string{"A"}, false},
		{[]string{"A", "B", "C"}, false},
		{[]string{"B", "A"}, true},
		{[]string{" A ", "B"}, true},
		{nil, false},
	}
	for _, tc := range cases {
		res := Score([]domain.Question{q}, domain.Answers{7: tc.selected})
		if res.Questions[0].IsCorrect != tc.want {
			t.Fatalf("selected %v: got correct=%v, want %v", tc.selected, res.Questions[0].IsCorrect, tc.want)
		}
	}
}

func TestScorePassBoundary(t *testing.T) {
	cases := []struct {
		correct, total, pct int
		passed              bool
	}{
		{8, 10, 80, true},
		{7, 10, 70, false},
		{10, 10, 100, true},
		{4, 5, 80, true},
		{47, 60, 78, false},
		{48, 60, 80, true},
	}
	for _, tc := range cases {
		questions := make([]domain.Question, tc.total)
		answers := domain.Answers{}
		for i := range questions {
			questions[i] = domain.Question{
				ID:             int64(i + 1),
				Type:           domain.SingleChoice,
				AllAnswers:     []string{"ja", "nein"},
				CorrectAnswers: []string{"ja"},
			}
			if i < tc.correct {
				answers[int64(i+1)] = []string{"ja"}
			} else {
				answers[int64(i+1)] = []string{"nein"}
			}
		}
		res := Score(questions, answers)
		if res.CorrectCount != tc.correct || res.Percentage != tc.pct || res.Passed != tc.passed {
			t.Fatalf("%d/%d: got %d correct, %d%%, passed=%v", tc.correct, tc.total, res.CorrectCount, res.Percentage, res.Passed)
		}
	}
}

func TestPercentageRoundsHalfUp(t *testing.T) {
	cases := []struct{ correct, total, want int }{
		{1, 8, 13},
		{2, 3, 67},
		{1, 3, 33},
		{7, 9, 78},
		{0, 0, 0},
	}
	for _, tc := range cases {
		if got := Percentage(tc.correct, tc.total); got != tc.want {
			t.Fatalf("Percentage(%d, %d) = %d, want %d", tc.correct, tc.total, got, tc.want)
		}
	}
}

func TestScoreEmptySessionDoesNotPass(t *testing.T) {
	res := Score(nil, nil)
	if res.Percentage != 0 || res.Passed || res.TotalCount != 0 {
		t.Fatalf("expected empty result, got %+v", res)
	}
}

func TestScoreIsDeterministic(t *testing.T) {
	questions := sampleQuestions()
	answers := domain.Answers{1: {"12 Monate"}, 2: {"Hecheln", "Gähnen"}}
	first := Score(questions, answers)
	second := Score(questions, answers)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("score not deterministic:\n%+v\n%+v", first, second)
	}
	if !reflect.DeepEqual(answers, domain.Answers{1: {"12 Monate"}, 2: {"Hecheln", "Gähnen"}}) {
		t.Fatalf("score mutated answers: %v", answers)
	}
	if first.CorrectCount != 2 || first.TotalCount != 3 || first.Percentage != 67 || first.Passed {
		t.Fatalf("unexpected aggregate %+v", first)
	}
}

func TestScoreOptionReview(t *testing.T) {
	questions := sampleQuestions()[1:2]
	res := Score(questions, domain.Answers{2: {"Gähnen", "Schlafen"}})
	want := []OptionReview{
		{Text: "Gähnen", Status: OptionCorrectSelected},
		{Text: "Hecheln", Status: OptionMissed},
		{Text: "Schwanzwedeln", Status: OptionNeutral},
		{Text: "Schlafen", Status: OptionWrongSelected},
	}
	if !reflect.DeepEqual(res.Questions[0].Options, want) {
		t.Fatalf("unexpected review %+v", res.Questions[0].Options)
	}
}
