package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"dogslife-quiz/internal/app"
	"dogslife-quiz/internal/domain"
	"golang.org/x/sync/singleflight"
)

const allCategories = "\x00all"

// CachedQuestions caches question lists per category with TTL to avoid repeated
// store hits. Writes go straight to the store and invalidate the cache.
type CachedQuestions struct {
	app.QuestionRepository

	ttl   time.Duration
	clock func() time.Time
	sf    singleflight.Group

	rndMu sync.Mutex
	rnd   *rand.Rand

	mu         sync.RWMutex
	generation uint64
	cache      map[string]cachedList
}

type cachedList struct {
	questions []domain.Question
	expiresAt time.Time
}

func NewCachedQuestions(store app.QuestionRepository, ttl time.Duration) *CachedQuestions {
	return &CachedQuestions{
		QuestionRepository: store,
		ttl:                ttl,
		clock:              time.Now,
		rnd:                rand.New(rand.NewSource(time.Now().UnixNano())),
		cache:              make(map[string]cachedList),
	}
}

func (c *CachedQuestions) ListAll(ctx context.Context) ([]domain.Question, error) {
	return c.load(ctx, allCategories, func(ctx context.Context) ([]domain.Question, error) {
		return c.QuestionRepository.ListAll(ctx)
	})
}

func (c *CachedQuestions) ListByCategory(ctx context.Context, category string) ([]domain.Question, error) {
	return c.load(ctx, category, func(ctx context.Context) ([]domain.Question, error) {
		return c.QuestionRepository.ListByCategory(ctx, category)
	})
}

func (c *CachedQuestions) InsertMany(ctx context.Context, questions []domain.Question) error {
	defer c.Invalidate()
	return c.QuestionRepository.InsertMany(ctx, questions)
}

func (c *CachedQuestions) Upsert(ctx context.Context, q domain.Question) (domain.Question, error) {
	defer c.Invalidate()
	return c.QuestionRepository.Upsert(ctx, q)
}

func (c *CachedQuestions) DeleteByID(ctx context.Context, id int64) error {
	defer c.Invalidate()
	return c.QuestionRepository.DeleteByID(ctx, id)
}

// Invalidate drops every cached list. Loads already in flight are not stored.
func (c *CachedQuestions) Invalidate() {
	c.mu.Lock()
	c.generation++
	c.cache = make(map[string]cachedList)
	c.mu.Unlock()
}

func (c *CachedQuestions) load(ctx context.Context, key string, fetch func(context.Context) ([]domain.Question, error)) ([]domain.Question, error) {
	if questions, ok := c.lookup(key); ok {
		return questions, nil
	}

	result, err, _ := c.sf.Do(key, func() (interface{}, error) {
		if questions, ok := c.lookup(key); ok {
			return questions, nil
		}

		c.mu.RLock()
		gen := c.generation
		c.mu.RUnlock()

		questions, err := fetch(ctx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		if gen == c.generation {
			c.cache[key] = cachedList{
				questions: questions,
				expiresAt: c.clock().Add(c.ttlWithJitter()),
			}
		}
		c.mu.Unlock()
		return questions, nil
	})
	if err != nil {
		return nil, err
	}
	return copyAll(result.([]domain.Question)), nil
}

func (c *CachedQuestions) lookup(key string) ([]domain.Question, bool) {
	now := c.clock()
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.cache[key]
	if !ok || !entry.expiresAt.After(now) {
		return nil, false
	}
	return copyAll(entry.questions), true
}

func (c *CachedQuestions) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(c.ttl) / 10
	c.rndMu.Lock()
	defer c.rndMu.Unlock()
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}

func copyAll(questions []domain.Question) []domain.Question {
	out := make([]domain.Question, len(questions))
	for i, q := range questions {
		out[i] = clone(q)
	}
	return out
}
