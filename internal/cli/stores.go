package cli

import (
	"context"
	"log"
	"time"

	"dogslife-quiz/internal/app"
	"dogslife-quiz/internal/config"
	"dogslife-quiz/internal/infra/memory"
	"dogslife-quiz/internal/infra/postgres"
	infraredis "dogslife-quiz/internal/infra/redis"
	"dogslife-quiz/internal/infra/sqlite"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
)

// backends holds the opened infrastructure so callers can release it.
type backends struct {
	questions app.QuestionRepository
	redis     *redis.Client
	closers   []func()
}

func (b *backends) Close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		b.closers[i]()
	}
}

// openQuestionStore picks Postgres, then SQLite, then the in-memory sample bank.
func openQuestionStore(ctx context.Context, cfg config.Config) (*backends, error) {
	b := &backends{}

	switch {
	case cfg.Postgres.URL != "":
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return nil, err
		}
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return nil, err
		}
		b.closers = append(b.closers, pool.Close)
		b.questions = postgres.NewQuestionStore(pool)
		log.Printf("questions: postgres")
	case cfg.SQLite.Path != "":
		store, err := sqlite.Open(ctx, cfg.SQLite.Path)
		if err != nil {
			return nil, err
		}
		b.closers = append(b.closers, func() { _ = store.Close() })
		b.questions = store
		log.Printf("questions: sqlite %s", cfg.SQLite.Path)
	default:
		b.questions = memory.NewQuestionStore(memory.SampleQuestions()...)
		log.Printf("questions: in-memory sample bank")
	}
	return b, nil
}

// withCache opens Redis when configured and wraps the question store in a cache.
func (b *backends) withCache(cfg config.Config) {
	ttl := config.TTLDuration(cfg.Quiz.TTL, 10*time.Minute)
	if cfg.Redis.Addr == "" {
		b.questions = memory.NewCachedQuestions(b.questions, ttl)
		return
	}
	b.redis = redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	b.closers = append(b.closers, func() { _ = b.redis.Close() })
	b.questions = infraredis.NewCachedQuestions(b.redis, b.questions, ttl)
}
