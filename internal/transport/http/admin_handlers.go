package http

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"dogslife-quiz/internal/app"
	"dogslife-quiz/internal/auth"
	"dogslife-quiz/internal/catalog"
	"dogslife-quiz/internal/domain"
	"github.com/go-chi/chi/v5"
)

const maxImportBytes = 10 << 20

// AdminHandlers exposes question management behind admin bearer tokens.
type AdminHandlers struct {
	service *app.AdminService
	auth    *auth.Service
	now     func() time.Time
}

func NewAdminHandlers(service *app.AdminService, authn *auth.Service) *AdminHandlers {
	return &AdminHandlers{service: service, auth: authn, now: time.Now}
}

func (h *AdminHandlers) Routes(r chi.Router) {
	r.Post("/login", h.login)
	r.Group(func(pr chi.Router) {
		pr.Use(h.requireAdmin)
		pr.Route("/questions", func(qr chi.Router) {
			qr.Get("/", h.list)
			qr.Post("/", h.create)
			qr.Put("/{id}", h.update)
			qr.Delete("/{id}", h.delete)
			qr.Post("/import", h.importCSV)
			qr.Get("/export.csv", h.exportCSV)
			qr.Get("/export.pdf", h.exportPDF)
		})
	})
}

func (h *AdminHandlers) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			writeErr(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		if _, err := h.auth.Verify(strings.TrimPrefix(header, "Bearer ")); err != nil {
			writeErr(w, http.StatusUnauthorized, "invalid token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

type loginRequest struct {
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
}

func (h *AdminHandlers) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, err)
		return
	}
	token, err := h.auth.Login(req.Password)
	if err != nil {
		writeErr(w, http.StatusUnauthorized, "Falsches Passwort")
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{AccessToken: token})
}

func (h *AdminHandlers) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	questions, err := h.service.List(r.Context(), app.Filter{Category: q.Get("category"), Search: q.Get("search")})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, questions)
}

func (h *AdminHandlers) create(w http.ResponseWriter, r *http.Request) {
	var q domain.Question
	if err := decodeJSON(r, &q); err != nil {
		writeServiceError(w, err)
		return
	}
	q.ID = 0
	saved, err := h.service.Save(r.Context(), q)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

func (h *AdminHandlers) update(w http.ResponseWriter, r *http.Request) {
	id, err := questionID(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	var q domain.Question
	if err := decodeJSON(r, &q); err != nil {
		writeServiceError(w, err)
		return
	}
	q.ID = id
	saved, err := h.service.Save(r.Context(), q)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func (h *AdminHandlers) delete(w http.ResponseWriter, r *http.Request) {
	id, err := questionID(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// importCSV accepts either a multipart upload in field "file" or a raw CSV body.
func (h *AdminHandlers) importCSV(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImportBytes)

	var body io.Reader = r.Body
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		file, _, err := r.FormFile("file")
		if err != nil {
			writeErr(w, http.StatusBadRequest, "missing file field")
			return
		}
		defer file.Close()
		body = file
	}

	report, err := h.service.Import(r.Context(), body)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			writeJSON(w, http.StatusBadRequest, struct {
				Error string `json:"error"`
				app.ImportReport
			}{Error: err.Error(), ImportReport: report})
			return
		}
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *AdminHandlers) exportCSV(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	var buf bytes.Buffer
	if err := h.service.ExportCSV(r.Context(), &buf, category); err != nil {
		writeServiceError(w, err)
		return
	}
	h.attachment(w, "text/csv; charset=utf-8", catalog.ExportFilename("dogs_life_export", category, "csv", h.now()), buf.Bytes())
}

func (h *AdminHandlers) exportPDF(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	var buf bytes.Buffer
	if err := h.service.ExportPDF(r.Context(), &buf, category); err != nil {
		writeServiceError(w, err)
		return
	}
	h.attachment(w, "application/pdf", catalog.ExportFilename("fragenkatalog", category, "pdf", h.now()), buf.Bytes())
}

func (h *AdminHandlers) attachment(w http.ResponseWriter, contentType, filename string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func questionID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid question id", domain.ErrValidation)
	}
	return id, nil
}
