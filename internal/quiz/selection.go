package quiz

import (
	"math/rand"
	"time"

	"dogslife-quiz/internal/domain"
)

// Pick shuffles a copy of questions with Fisher-Yates and keeps the first
// min(count, len(questions)). Selection is uniform without replacement but
// not cryptographically random; pass a seeded rnd for reproducible tests.
func Pick(questions []domain.Question, count int, rnd *rand.Rand) []domain.Question {
	shuffled := make([]domain.Question, len(questions))
	copy(shuffled, questions)

	for i := len(shuffled) - 1; i > 0; i-- {
		j := rnd.Intn(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}

	if count <= 0 || count > len(shuffled) {
		count = len(shuffled)
	}
	return shuffled[:count]
}

// TimePolicy decides the time budget of a session from its requested size.
// Only sessions of exactly TimedCount questions run against the clock.
type TimePolicy struct {
	TimedCount int
	Limit      time.Duration
}

// DefaultTimePolicy is the full exam: 60 questions in 90 minutes.
var DefaultTimePolicy = TimePolicy{TimedCount: 60, Limit: 90 * time.Minute}

// BudgetFor returns the budget in whole seconds, 0 meaning untimed.
func (p TimePolicy) BudgetFor(count int) int {
	if p.TimedCount <= 0 || count != p.TimedCount || p.Limit <= 0 {
		return 0
	}
	return int(p.Limit / time.Second)
}
