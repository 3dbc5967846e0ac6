package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"dogslife-quiz/internal/app"
	"dogslife-quiz/internal/domain"
	"dogslife-quiz/internal/quiz"
	"github.com/gorilla/websocket"
)

type WSHandler struct {
	service  *app.QuizService
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.QuizService) *WSHandler {
	return &WSHandler{
		service: service,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type selectPayload struct {
	QuestionID int64  `json:"questionId"`
	Option     string `json:"option"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

type rejectedPayload struct {
	Command string `json:"command"`
}

var commands = map[string]quiz.EventKind{
	"select":   quiz.EventSelect,
	"next":     quiz.EventNext,
	"previous": quiz.EventPrevious,
	"finish":   quiz.EventRequestFinish,
	"confirm":  quiz.EventConfirmFinish,
	"cancel":   quiz.EventCancelFinish,
}

// ServeWS upgrades HTTP requests to websockets and streams one session: every
// state change (timer ticks included) is pushed, commands are read from the client.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("sessionId")
	if sessionID == "" {
		http.Error(w, "missing sessionId", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	updates, cancel, err := h.service.Subscribe(r.Context(), sessionID)
	if err != nil {
		_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: err.Error()}})
		return
	}
	defer cancel()

	send := make(chan outboundMessage[any], 16)
	closeSignals := make(chan struct{})
	writerDone := make(chan struct{})
	updatesDone := make(chan struct{})

	// Only the writer goroutine touches conn for writes.
	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				log.Printf("ws write error: %v", err)
				return
			}
		}
	}()

	go func() {
		defer close(updatesDone)
		resultSent := false
		for {
			select {
			case snap, ok := <-updates:
				if !ok {
					return
				}
				msgs := []outboundMessage[any]{{Type: "state", Payload: newSessionView(snap)}}
				if snap.State.Phase == quiz.PhaseFinished && !resultSent {
					if result, err := h.service.Result(r.Context(), sessionID); err == nil {
						msgs = append(msgs, outboundMessage[any]{Type: "result", Payload: result})
						resultSent = true
					}
				}
				for _, msg := range msgs {
					select {
					case send <- msg:
					case <-closeSignals:
						return
					}
				}
			case <-closeSignals:
				return
			}
		}
	}()

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		reply, ok := h.handleCommand(r, sessionID, inbound)
		if !ok {
			continue
		}
		select {
		case send <- reply:
		case <-writerDone:
		}
	}

	close(closeSignals)
	<-updatesDone
	close(send)
	<-writerDone
}

// handleCommand applies one client command. Accepted commands need no reply;
// the resulting state arrives through the subscription.
func (h *WSHandler) handleCommand(r *http.Request, sessionID string, inbound inboundMessage) (outboundMessage[any], bool) {
	kind, known := commands[inbound.Type]
	if !known {
		return outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "unsupported message type"}}, true
	}

	ev := quiz.Event{Kind: kind}
	if kind == quiz.EventSelect {
		var payload selectPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			return outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "invalid select payload"}}, true
		}
		ev.QuestionID = payload.QuestionID
		ev.Option = payload.Option
	}

	_, accepted, err := h.service.Dispatch(r.Context(), sessionID, ev)
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		return outboundMessage[any]{Type: "error", Payload: errorPayload{Message: err.Error()}}, true
	case err != nil:
		log.Printf("ws dispatch %s: %v", inbound.Type, err)
		return outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "internal error"}}, true
	case !accepted:
		return outboundMessage[any]{Type: "rejected", Payload: rejectedPayload{Command: inbound.Type}}, true
	}
	return outboundMessage[any]{}, false
}
