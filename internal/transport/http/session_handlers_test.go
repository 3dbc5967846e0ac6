package http

import (
	"net/http"
	"testing"

	"dogslife-quiz/internal/app"
	"dogslife-quiz/internal/quiz"
)

func TestSessionRoundTripOverREST(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodPost, "/api/sessions", "", map[string]any{"category": "Trainerprüfung", "count": 3})
	expectStatus(t, resp, http.StatusCreated)
	view := decode[sessionView](t, resp)
	if len(view.Questions) != 3 || view.Phase != quiz.PhaseInProgress {
		t.Fatalf("unexpected session %+v", view)
	}
	for _, q := range view.Questions {
		if len(q.CorrectAnswers) != 0 {
			t.Fatalf("correct answers leaked before finish: %+v", q)
		}
	}
	base := "/api/sessions/" + view.SessionID

	resp = env.do(t, http.MethodPost, base+"/finish", "", nil)
	expectStatus(t, resp, http.StatusOK)
	if decode[dispatchResponse](t, resp).Accepted {
		t.Fatalf("finish must be rejected before every question is answered")
	}

	for i, q := range view.Questions {
		for _, option := range env.correctAnswers(t, q.ID) {
			resp = env.do(t, http.MethodPost, base+"/answers", "", map[string]any{"questionId": q.ID, "option": option})
			expectStatus(t, resp, http.StatusOK)
			if !decode[dispatchResponse](t, resp).Accepted {
				t.Fatalf("select %q rejected", option)
			}
		}
		if i < len(view.Questions)-1 {
			expectStatus(t, env.do(t, http.MethodPost, base+"/next", "", nil), http.StatusOK)
		}
	}

	expectStatus(t, env.do(t, http.MethodGet, base+"/result", "", nil), http.StatusConflict)

	expectStatus(t, env.do(t, http.MethodPost, base+"/finish", "", nil), http.StatusOK)
	resp = env.do(t, http.MethodPost, base+"/finish/confirm", "", nil)
	expectStatus(t, resp, http.StatusOK)
	final := decode[dispatchResponse](t, resp)
	if !final.Accepted || final.Session.Phase != quiz.PhaseFinished {
		t.Fatalf("expected finished session, got %+v", final)
	}
	if len(final.Session.Questions[0].CorrectAnswers) == 0 {
		t.Fatalf("expected correct answers after finish")
	}

	resp = env.do(t, http.MethodGet, base+"/result", "", nil)
	expectStatus(t, resp, http.StatusOK)
	result := decode[quiz.Result](t, resp)
	if result.CorrectCount != 3 || result.Percentage != 100 || !result.Passed {
		t.Fatalf("unexpected result %+v", result)
	}

	expectStatus(t, env.do(t, http.MethodDelete, base, "", nil), http.StatusNoContent)
	expectStatus(t, env.do(t, http.MethodGet, base, "", nil), http.StatusNotFound)
}

func TestSelectAnswerIgnoresExtraFields(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodPost, "/api/sessions", "", map[string]any{"category": "Hundeführerschein", "count": 1})
	expectStatus(t, resp, http.StatusCreated)
	view := decode[sessionView](t, resp)
	q := view.Questions[0]

	resp = env.do(t, http.MethodPost, "/api/sessions/"+view.SessionID+"/answers", "", map[string]any{
		"sessionId":  view.SessionID,
		"questionId": q.ID,
		"option":     q.AllAnswers[0],
	})
	expectStatus(t, resp, http.StatusOK)
	if !decode[dispatchResponse](t, resp).Accepted {
		t.Fatalf("answer with extra fields rejected")
	}
}

func TestStartSessionErrorsMapToStatus(t *testing.T) {
	env := newTestEnv(t)

	expectStatus(t, env.do(t, http.MethodPost, "/api/sessions", "", map[string]any{"category": "Unbekannt", "count": 5}), http.StatusNotFound)
	expectStatus(t, env.do(t, http.MethodPost, "/api/sessions", "", map[string]any{"category": "Trainerprüfung", "count": 0}), http.StatusBadRequest)
	expectStatus(t, env.do(t, http.MethodPost, "/api/sessions", "", map[string]any{"bogus": true}), http.StatusBadRequest)
}

func TestCategoriesEndpoint(t *testing.T) {
	env := newTestEnv(t, app.WithOffer([]string{"Hundeführerschein", "Trainerprüfung"}, []int{5, 10, 20, 60}))

	resp := env.do(t, http.MethodGet, "/api/categories", "", nil)
	expectStatus(t, resp, http.StatusOK)
	offer := decode[app.Offer](t, resp)
	if len(offer.Categories) != 2 || offer.TimeLimit != 5400 {
		t.Fatalf("unexpected offer %+v", offer)
	}
}
