package http

import (
	"net/http"

	"dogslife-quiz/internal/app"
	"dogslife-quiz/internal/domain"
	"dogslife-quiz/internal/quiz"
	"github.com/go-chi/chi/v5"
)

// SessionHandlers exposes participant sessions over REST.
type SessionHandlers struct {
	service *app.QuizService
}

func NewSessionHandlers(service *app.QuizService) *SessionHandlers {
	return &SessionHandlers{service: service}
}

func (h *SessionHandlers) Routes(r chi.Router) {
	r.Get("/categories", h.categories)
	r.Route("/sessions", func(sr chi.Router) {
		sr.Post("/", h.start)
		sr.Route("/{id}", func(ir chi.Router) {
			ir.Get("/", h.get)
			ir.Delete("/", h.abandon)
			ir.Post("/answers", h.selectAnswer)
			ir.Post("/next", h.event(quiz.EventNext))
			ir.Post("/previous", h.event(quiz.EventPrevious))
			ir.Post("/finish", h.event(quiz.EventRequestFinish))
			ir.Post("/finish/confirm", h.event(quiz.EventConfirmFinish))
			ir.Post("/finish/cancel", h.event(quiz.EventCancelFinish))
			ir.Get("/result", h.result)
		})
	})
}

func (h *SessionHandlers) categories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.Offer())
}

type startRequest struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

func (h *SessionHandlers) start(w http.ResponseWriter, r *http.Request) {
	var req startRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, err)
		return
	}
	snap, err := h.service.StartSession(r.Context(), domain.QuizConfig{Category: req.Category, Count: req.Count})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, newSessionView(snap))
}

func (h *SessionHandlers) get(w http.ResponseWriter, r *http.Request) {
	snap, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newSessionView(snap))
}

func (h *SessionHandlers) abandon(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Abandon(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type answerRequest struct {
	QuestionID int64  `json:"questionId"`
	Option     string `json:"option"`
}

func (h *SessionHandlers) selectAnswer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, err)
		return
	}
	h.dispatch(w, r, quiz.Event{Kind: quiz.EventSelect, QuestionID: req.QuestionID, Option: req.Option})
}

func (h *SessionHandlers) event(kind quiz.EventKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.dispatch(w, r, quiz.Event{Kind: kind})
	}
}

func (h *SessionHandlers) dispatch(w http.ResponseWriter, r *http.Request, ev quiz.Event) {
	snap, accepted, err := h.service.Dispatch(r.Context(), chi.URLParam(r, "id"), ev)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dispatchResponse{Accepted: accepted, Session: newSessionView(snap)})
}

func (h *SessionHandlers) result(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Result(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
