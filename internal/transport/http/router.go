package http

import (
	"net/http"
	"time"

	"dogslife-quiz/internal/app"
	"dogslife-quiz/internal/auth"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// RouterConfig collects what the HTTP surface needs.
type RouterConfig struct {
	Quiz        *app.QuizService
	Admin       *app.AdminService
	Auth        *auth.Service
	CORSOrigins []string
}

// NewRouter wires REST, WebSocket and health endpoints.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition", "Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	// The WebSocket stays outside the timeout middleware; sessions can last 90 minutes.
	r.Get("/ws", NewWSHandler(cfg.Quiz).ServeWS)

	r.Route("/api", func(api chi.Router) {
		api.Use(middleware.Timeout(30 * time.Second))
		NewSessionHandlers(cfg.Quiz).Routes(api)
		api.Route("/admin", NewAdminHandlers(cfg.Admin, cfg.Auth).Routes)
	})
	return r
}
