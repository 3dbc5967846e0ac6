package quiz

import (
	"math/rand"
	"testing"
	"time"

	"dogslife-quiz/internal/domain"
)

func TestPickTruncatesToAvailable(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	picked := Pick(sampleQuestions(), 5, rnd)
	if len(picked) != 3 {
		t.Fatalf("expected all 3 questions, got %d", len(picked))
	}
}

func TestPickIsWithoutReplacement(t *testing.T) {
	pool := make([]domain.Question, 20)
	for i := range pool {
		pool[i] = domain.Question{ID: int64(i + 1)}
	}
	rnd := rand.New(rand.NewSource(42))
	picked := Pick(pool, 10, rnd)
	if len(picked) != 10 {
		t.Fatalf("expected 10 questions, got %d", len(picked))
	}
	seen := map[int64]bool{}
	for _, q := range picked {
		if seen[q.ID] {
			t.Fatalf("question %d picked twice", q.ID)
		}
		seen[q.ID] = true
	}
	for i, q := range pool {
		if q.ID != int64(i+1) {
			t.Fatalf("input slice was reordered")
		}
	}
}

func TestPickIsReproducibleWithSeed(t *testing.T) {
	pool := make([]domain.Question, 30)
	for i := range pool {
		pool[i] = domain.Question{ID: int64(i + 1)}
	}
	a := Pick(pool, 10, rand.New(rand.NewSource(7)))
	b := Pick(pool, 10, rand.New(rand.NewSource(7)))
	for i := range a {
		if a[i].ID != b[i].ID {
			t.Fatalf("same seed produced different picks at %d", i)
		}
	}
}

func TestTimePolicyBudget(t *testing.T) {
	p := TimePolicy{TimedCount: 60, Limit: 90 * time.Minute}
	if got := p.BudgetFor(60); got != 5400 {
		t.Fatalf("expected 5400 seconds, got %d", got)
	}
	for _, count := range []int{5, 10, 20, 59} {
		if got := p.BudgetFor(count); got != 0 {
			t.Fatalf("count %d: expected untimed, got %d", count, got)
		}
	}
	if got := (TimePolicy{}).BudgetFor(60); got != 0 {
		t.Fatalf("expected zero policy to be untimed, got %d", got)
	}
}
