package redis

import (
	"context"
	"encoding/json"
	"log"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"dogslife-quiz/internal/app"
	"dogslife-quiz/internal/domain"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

const (
	allKey   = "questions:all"
	indexKey = "questions:keys"
)

// CachedQuestions caches question lists in Redis and falls back to the store on cache miss.
// Lists are stored as JSON:  SET questions:category:{category} [...]
// Every cached key is tracked in the set questions:keys so writes can drop them all.
// A non-positive ttl disables caching.
type CachedQuestions struct {
	app.QuestionRepository

	client *redis.Client
	ttl    time.Duration
	sf     singleflight.Group

	// generation changes on every Invalidate; loads that straddle one never fill the cache.
	generation atomic.Uint64

	rndMu sync.Mutex
	rnd   *rand.Rand
}

func NewCachedQuestions(client *redis.Client, store app.QuestionRepository, ttl time.Duration) *CachedQuestions {
	return &CachedQuestions{
		QuestionRepository: store,
		client:             client,
		ttl:                ttl,
		rnd:                rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (c *CachedQuestions) ListAll(ctx context.Context) ([]domain.Question, error) {
	return c.load(ctx, allKey, func(ctx context.Context) ([]domain.Question, error) {
		return c.QuestionRepository.ListAll(ctx)
	})
}

func (c *CachedQuestions) ListByCategory(ctx context.Context, category string) ([]domain.Question, error) {
	return c.load(ctx, categoryKey(category), func(ctx context.Context) ([]domain.Question, error) {
		return c.QuestionRepository.ListByCategory(ctx, category)
	})
}

func (c *CachedQuestions) InsertMany(ctx context.Context, questions []domain.Question) error {
	defer c.Invalidate(ctx)
	return c.QuestionRepository.InsertMany(ctx, questions)
}

func (c *CachedQuestions) Upsert(ctx context.Context, q domain.Question) (domain.Question, error) {
	defer c.Invalidate(ctx)
	return c.QuestionRepository.Upsert(ctx, q)
}

func (c *CachedQuestions) DeleteByID(ctx context.Context, id int64) error {
	defer c.Invalidate(ctx)
	return c.QuestionRepository.DeleteByID(ctx, id)
}

// Invalidate removes every cached list.
func (c *CachedQuestions) Invalidate(ctx context.Context) {
	c.generation.Add(1)
	keys, err := c.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		log.Printf("question cache: list keys: %v", err)
		return
	}
	keys = append(keys, indexKey)
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		log.Printf("question cache: invalidate: %v", err)
	}
}

func (c *CachedQuestions) load(ctx context.Context, key string, fetch func(context.Context) ([]domain.Question, error)) ([]domain.Question, error) {
	if c.ttl <= 0 {
		return fetch(ctx)
	}
	if questions, ok := c.lookup(ctx, key); ok {
		return questions, nil
	}

	result, err, _ := c.sf.Do(key, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if questions, ok := c.lookup(ctx, key); ok {
			return questions, nil
		}

		gen := c.generation.Load()
		questions, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		if gen != c.generation.Load() {
			return questions, nil
		}

		payload, err := json.Marshal(questions)
		if err != nil {
			return questions, nil
		}
		pipe := c.client.TxPipeline()
		pipe.Set(ctx, key, payload, c.ttlWithJitter())
		pipe.SAdd(ctx, indexKey, key)
		if _, err := pipe.Exec(ctx); err != nil {
			log.Printf("question cache: store %s: %v", key, err)
			return questions, nil
		}
		// An Invalidate may have run between the check and the write.
		if gen != c.generation.Load() {
			if err := c.client.Del(ctx, key).Err(); err != nil {
				log.Printf("question cache: drop stale %s: %v", key, err)
			}
		}
		return questions, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Question), nil
}

// lookup treats any Redis failure as a miss so the store stays the source of truth.
func (c *CachedQuestions) lookup(ctx context.Context, key string) ([]domain.Question, bool) {
	payload, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	var questions []domain.Question
	if err := json.Unmarshal(payload, &questions); err != nil {
		return nil, false
	}
	return questions, true
}

func categoryKey(category string) string {
	return "questions:category:" + category
}

func (c *CachedQuestions) ttlWithJitter() time.Duration {
	jitterMax := int64(c.ttl) / 10
	c.rndMu.Lock()
	defer c.rndMu.Unlock()
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
