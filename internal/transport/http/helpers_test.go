package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dogslife-quiz/internal/app"
	"dogslife-quiz/internal/auth"
	"dogslife-quiz/internal/infra/memory"
	"golang.org/x/crypto/bcrypt"
)

const testPassword = "wuff"

type testEnv struct {
	server    *httptest.Server
	questions *memory.QuestionStore
	quiz      *app.QuizService
}

func newTestEnv(t *testing.T, opts ...app.Option) *testEnv {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	questions := memory.NewQuestionStore(memory.SampleQuestions()...)
	service := app.NewQuizService(memory.NewSessionStore(), questions, opts...)
	router := NewRouter(RouterConfig{
		Quiz:        service,
		Admin:       app.NewAdminService(questions, map[string]string{"Koalatest": "Hundeführerschein"}),
		Auth:        auth.NewService(string(hash), "test-secret", time.Hour),
		CORSOrigins: []string{"http://localhost:3000"},
	})
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return &testEnv{server: server, questions: questions, quiz: service}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()
	var payload bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&payload).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req, err := http.NewRequest(method, e.server.URL+path, &payload)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return v
}

func expectStatus(t *testing.T, resp *http.Response, want int) {
	t.Helper()
	if resp.StatusCode != want {
		t.Fatalf("%s %s: expected status %d, got %d", resp.Request.Method, resp.Request.URL.Path, want, resp.StatusCode)
	}
}

// correctAnswers looks up the stored question since session views hide the solution.
func (e *testEnv) correctAnswers(t *testing.T, id int64) []string {
	t.Helper()
	all, err := e.questions.ListAll(context.Background())
	if err != nil {
		t.Fatalf("list questions: %v", err)
	}
	for _, q := range all {
		if q.ID == id {
			return q.CorrectAnswers
		}
	}
	t.Fatalf("question %d not found", id)
	return nil
}

func (e *testEnv) login(t *testing.T) string {
	t.Helper()
	resp := e.do(t, http.MethodPost, "/api/admin/login", "", map[string]string{"password": testPassword})
	expectStatus(t, resp, http.StatusOK)
	return decode[loginResponse](t, resp).AccessToken
}
