package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dogslife-quiz/internal/app"
	"dogslife-quiz/internal/auth"
	"dogslife-quiz/internal/config"
	"dogslife-quiz/internal/infra/memory"
	"dogslife-quiz/internal/infra/rabbit"
	infraredis "dogslife-quiz/internal/infra/redis"
	"dogslife-quiz/internal/quiz"
	transport "dogslife-quiz/internal/transport/http"
	"github.com/spf13/cobra"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the quiz server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	b, err := openQuestionStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer b.Close()
	b.withCache(cfg)

	sessionTTL := config.TTLDuration(cfg.Quiz.SessionTTL, 6*time.Hour)
	var sessions app.SessionRepository
	if b.redis != nil {
		sessions = infraredis.NewSessionStore(b.redis, config.TTLDuration(cfg.Redis.TTL, sessionTTL))
	} else {
		sessions = memory.NewSessionStore()
	}

	opts := quizOptions(cfg)
	if cfg.Rabbit.URL != "" {
		publisher, err := rabbit.Dial(cfg.Rabbit.URL, cfg.Rabbit.Queue)
		if err != nil {
			// Results are informational; the quiz keeps working without the broker.
			log.Printf("rabbitmq unavailable, results will not be published: %v", err)
		} else {
			defer publisher.Close()
			opts = append(opts, app.WithResultPublisher(publisher))
		}
	}

	service := app.NewQuizService(sessions, b.questions, opts...)
	admin := app.NewAdminService(b.questions, cfg.Quiz.CategoryAliases)
	authn := auth.NewService(cfg.Admin.PasswordHash, cfg.Admin.JWTSecret, config.TTLDuration(cfg.Admin.TokenTTL, 8*time.Hour))
	if !authn.Enabled() {
		log.Printf("admin login disabled: set admin.password_hash and admin.jwt_secret")
	}

	router := transport.NewRouter(transport.RouterConfig{
		Quiz:        service,
		Admin:       admin,
		Auth:        authn,
		CORSOrigins: cfg.CORS.Origins,
	})

	server := &http.Server{
		Addr:        ":" + finalPort,
		Handler:     router,
		ReadTimeout: 15 * time.Second,
	}

	janitorCtx, stopJanitor := context.WithCancel(context.Background())
	defer stopJanitor()
	go sweepSessions(janitorCtx, service, sessionTTL)

	go func() {
		log.Printf("starting quiz service on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// quizOptions translates the quiz section of the config into service options.
func quizOptions(cfg config.Config) []app.Option {
	return []app.Option{
		app.WithTimePolicy(quiz.TimePolicy{
			TimedCount: cfg.Quiz.TimedCount,
			Limit:      config.TTLDuration(cfg.Quiz.TimeLimit, 90*time.Minute),
		}),
		app.WithTickInterval(config.TTLDuration(cfg.Quiz.Tick, time.Second)),
		app.WithOffer(cfg.Quiz.Categories, cfg.Quiz.Counts),
	}
}

// sweepSessions drops abandoned sessions so their timers and memory are released.
func sweepSessions(ctx context.Context, service *app.QuizService, maxAge time.Duration) {
	interval := maxAge / 4
	if interval < time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := service.Sweep(maxAge); n > 0 {
				log.Printf("swept %d stale sessions", n)
			}
		}
	}
}
