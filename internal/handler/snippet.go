// Package handler contains the HTTP handlers: the JSON snippet API and the
// server-rendered screens.
//
// Handlers only translate between HTTP and the layers below. They parse the
// request, call the service or the controller, and write the response. No
// business rule lives here.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/code-vault/internal/apperror"
	"github.com/sakif/code-vault/internal/query"
	"github.com/sakif/code-vault/internal/service"
)

// maxBodyBytes caps JSON request bodies. Snippets are short by nature.
const maxBodyBytes = 1 << 20

// SnippetHandler serves the JSON API over the same store the screens use.
type SnippetHandler struct {
	svc    *service.SnippetService
	logger *slog.Logger
}

func NewSnippetHandler(svc *service.SnippetService, logger *slog.Logger) *SnippetHandler {
	return &SnippetHandler{svc: svc, logger: logger}
}

// HandleList returns the filtered snippet list.
//
// HTTP: GET /api/snippets?q=world&language=rust
func (h *SnippetHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	f := query.Filter{
		Search:   r.URL.Query().Get("q"),
		Language: r.URL.Query().Get("language"),
	}

	snippets, err := h.svc.Query(r.Context(), f)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, snippets)
}

// HandleLanguages returns the distinct stored languages, sorted.
//
// HTTP: GET /api/languages
func (h *SnippetHandler) HandleLanguages(w http.ResponseWriter, r *http.Request) {
	langs, err := h.svc.Languages(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, langs)
}

// HandleGetByID returns one snippet.
//
// HTTP: GET /api/snippets/{id}
func (h *SnippetHandler) HandleGetByID(w http.ResponseWriter, r *http.Request) {
	snippet, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, snippet)
}

// HandleCreate adds a snippet.
//
// HTTP: POST /api/snippets
// BODY: {"title":"...","language":"go","code":"...","description":"","tags":"a, b"}
func (h *SnippetHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	form, ok := h.decodeForm(w, r)
	if !ok {
		return
	}

	snippet, err := h.svc.Create(r.Context(), form)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, snippet)
}

// HandleUpdate replaces a snippet's editable fields.
//
// HTTP: PUT /api/snippets/{id}
//
// The store treats a missing id as a no-op; over HTTP the caller still needs
// to know nothing was saved, so that case is a 404.
func (h *SnippetHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	form, ok := h.decodeForm(w, r)
	if !ok {
		return
	}

	snippet, err := h.svc.Update(r.Context(), id, form)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if snippet == nil {
		writeError(w, h.logger, apperror.NotFound("snippet", id))
		return
	}
	writeJSON(w, http.StatusOK, snippet)
}

// HandleDelete removes a snippet. Deleting an unknown id also returns 204.
//
// HTTP: DELETE /api/snippets/{id}
func (h *SnippetHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleToggleFavorite flips the favorite flag and returns the snippet.
//
// HTTP: POST /api/snippets/{id}/favorite
func (h *SnippetHandler) HandleToggleFavorite(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.svc.ToggleFavorite(r.Context(), id); err != nil {
		writeError(w, h.logger, err)
		return
	}

	snippet, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, snippet)
}

// ExplainResponse wraps the explanation text.
type ExplainResponse struct {
	ID          string `json:"id"`
	Explanation string `json:"explanation"`
}

// HandleExplain returns the canned explanation for a snippet.
//
// HTTP: GET /api/snippets/{id}/explain
func (h *SnippetHandler) HandleExplain(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	text, err := h.svc.Explain(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, ExplainResponse{ID: id, Explanation: text})
}

func (h *SnippetHandler) decodeForm(w http.ResponseWriter, r *http.Request) (service.Form, bool) {
	var form service.Form
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&form); err != nil {
		h.logger.Warn("invalid snippet JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "bad_request",
			Message: "Invalid JSON body",
		})
		return service.Form{}, false
	}
	return form, true
}
