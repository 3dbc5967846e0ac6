package http

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"dogslife-quiz/internal/app"
	"dogslife-quiz/internal/catalog"
	"dogslife-quiz/internal/domain"
	"github.com/stretchr/testify/require"
)

func TestAdminRequiresToken(t *testing.T) {
	env := newTestEnv(t)

	expectStatus(t, env.do(t, http.MethodGet, "/api/admin/questions", "", nil), http.StatusUnauthorized)
	expectStatus(t, env.do(t, http.MethodGet, "/api/admin/questions", "forged", nil), http.StatusUnauthorized)
	expectStatus(t, env.do(t, http.MethodPost, "/api/admin/login", "", map[string]string{"password": "falsch"}), http.StatusUnauthorized)
}

func TestAdminQuestionCRUD(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t)

	resp := env.do(t, http.MethodGet, "/api/admin/questions?category="+url.QueryEscape("Trainerprüfung"), token, nil)
	expectStatus(t, resp, http.StatusOK)
	require.Len(t, decode[[]domain.Question](t, resp), 3)

	q := domain.Question{
		Text:           "Darf man einen Hund im Auto lassen?",
		Type:           domain.SingleChoice,
		AllAnswers:     []string{"Ja", "Nein"},
		CorrectAnswers: []string{"Nein"},
		Category:       "Hundeführerschein",
	}
	resp = env.do(t, http.MethodPost, "/api/admin/questions", token, q)
	expectStatus(t, resp, http.StatusCreated)
	created := decode[domain.Question](t, resp)
	require.NotZero(t, created.ID)

	created.CorrectAnswers = []string{"Ja", "Nein"}
	expectStatus(t, env.do(t, http.MethodPut, "/api/admin/questions/"+itoa(created.ID), token, created), http.StatusBadRequest)

	created.Text = "Darf man einen Hund bei Hitze im Auto lassen?"
	created.CorrectAnswers = []string{"Nein"}
	resp = env.do(t, http.MethodPut, "/api/admin/questions/"+itoa(created.ID), token, created)
	expectStatus(t, resp, http.StatusOK)
	require.Equal(t, created.Text, decode[domain.Question](t, resp).Text)

	expectStatus(t, env.do(t, http.MethodDelete, "/api/admin/questions/"+itoa(created.ID), token, nil), http.StatusNoContent)
	expectStatus(t, env.do(t, http.MethodDelete, "/api/admin/questions/"+itoa(created.ID), token, nil), http.StatusNotFound)
	expectStatus(t, env.do(t, http.MethodDelete, "/api/admin/questions/abc", token, nil), http.StatusBadRequest)
}

func TestAdminImportMultipart(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "fragen.csv")
	require.NoError(t, err)
	_, _ = io.WriteString(part, catalog.Header+"\n"+
		`"Importierte Frage","single choice","Ja;Nein","Ja","Koalatest"`+"\n"+
		`"Kaputt","essay","A;B","A","Koalatest"`)
	require.NoError(t, mw.Close())

	req, err := http.NewRequest(http.MethodPost, env.server.URL+"/api/admin/questions/import", &body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	expectStatus(t, resp, http.StatusOK)
	report := decode[app.ImportReport](t, resp)
	require.Equal(t, 1, report.Imported)
	require.Len(t, report.Skipped, 1)
	require.Equal(t, 3, report.Skipped[0].Line)
}

func TestAdminImportRawBodyAllInvalid(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t)

	req, err := http.NewRequest(http.MethodPost, env.server.URL+"/api/admin/questions/import",
		strings.NewReader(catalog.Header+"\n"+`"x","bogus","A;B","A","c"`))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "text/csv")
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	expectStatus(t, resp, http.StatusBadRequest)
}

func TestAdminExports(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t)

	resp := env.do(t, http.MethodGet, "/api/admin/questions/export.csv?category="+url.QueryEscape("Trainerprüfung"), token, nil)
	expectStatus(t, resp, http.StatusOK)
	require.Contains(t, resp.Header.Get("Content-Disposition"), "dogs_life_export_Trainerprüfung_")
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(data), catalog.Header+"\n"))

	resp = env.do(t, http.MethodGet, "/api/admin/questions/export.pdf", token, nil)
	expectStatus(t, resp, http.StatusOK)
	require.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	require.Contains(t, resp.Header.Get("Content-Disposition"), "fragenkatalog_Alle_")

	expectStatus(t, env.do(t, http.MethodGet, "/api/admin/questions/export.csv?category=Leer", token, nil), http.StatusNotFound)
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
