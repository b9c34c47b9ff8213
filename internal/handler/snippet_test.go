package handler_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/code-vault/internal/app"
	"github.com/sakif/code-vault/internal/explain"
	"github.com/sakif/code-vault/internal/handler"
	"github.com/sakif/code-vault/internal/model"
	"github.com/sakif/code-vault/internal/repository/memory"
	"github.com/sakif/code-vault/internal/seed"
	"github.com/sakif/code-vault/internal/service"
	"github.com/sakif/code-vault/web"
)

// newTestRouter mounts the handlers the same way the server does, on a
// store seeded with the built-in samples.
func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	svc := service.NewSnippetService(memory.New(seed.Samples()...), explain.Canned{}, logger)

	screens, err := handler.NewScreenHandler(app.New(svc, logger), web.Templates, logger)
	require.NoError(t, err)
	snippets := handler.NewSnippetHandler(svc, logger)

	r := chi.NewRouter()
	r.Get("/", screens.HandleScreen)
	r.Post("/events", screens.HandleEvent)
	r.Get("/api/screen", screens.HandleState)
	r.Get("/api/languages", snippets.HandleLanguages)
	r.Get("/api/snippets", snippets.HandleList)
	r.Post("/api/snippets", snippets.HandleCreate)
	r.Get("/api/snippets/{id}", snippets.HandleGetByID)
	r.Put("/api/snippets/{id}", snippets.HandleUpdate)
	r.Delete("/api/snippets/{id}", snippets.HandleDelete)
	r.Post("/api/snippets/{id}/favorite", snippets.HandleToggleFavorite)
	r.Get("/api/snippets/{id}/explain", snippets.HandleExplain)
	return r
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Buffer
	if body != "" {
		reader = bytes.NewBufferString(body)
	} else {
		reader = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&v))
	return v
}

func TestHandleList(t *testing.T) {
	h := newTestRouter(t)

	t.Run("all", func(t *testing.T) {
		rr := do(t, h, http.MethodGet, "/api/snippets", "")
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Len(t, decode[[]model.Snippet](t, rr), 3)
	})

	t.Run("search and language", func(t *testing.T) {
		rr := do(t, h, http.MethodGet, "/api/snippets?q=WORLD", "")
		got := decode[[]model.Snippet](t, rr)
		require.Len(t, got, 1)
		assert.Equal(t, "1", got[0].ID)

		rr = do(t, h, http.MethodGet, "/api/snippets?q=world&language=python", "")
		assert.Empty(t, decode[[]model.Snippet](t, rr))
	})
}

func TestHandleLanguages(t *testing.T) {
	rr := do(t, newTestRouter(t), http.MethodGet, "/api/languages", "")
	assert.Equal(t, []string{"javascript", "python", "rust"}, decode[[]string](t, rr))
}

func TestHandleGetByID(t *testing.T) {
	h := newTestRouter(t)

	rr := do(t, h, http.MethodGet, "/api/snippets/2", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "JavaScript For Loop", decode[model.Snippet](t, rr).Title)

	rr = do(t, h, http.MethodGet, "/api/snippets/404", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "not_found", decode[handler.ErrorResponse](t, rr).Error)
}

func TestHandleCreate(t *testing.T) {
	h := newTestRouter(t)

	t.Run("valid", func(t *testing.T) {
		rr := do(t, h, http.MethodPost, "/api/snippets",
			`{"title":"Goroutine","language":"go","code":"go f()","tags":"a, b ,, c"}`)
		require.Equal(t, http.StatusCreated, rr.Code)

		created := decode[model.Snippet](t, rr)
		assert.NotEmpty(t, created.ID)
		assert.Equal(t, []string{"a", "b", "c"}, created.Tags)
		assert.Equal(t, created.CreatedAt, created.UpdatedAt)
	})

	t.Run("missing title", func(t *testing.T) {
		rr := do(t, h, http.MethodPost, "/api/snippets", `{"title":"","code":"x"}`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		body := decode[handler.ErrorResponse](t, rr)
		assert.Equal(t, "validation_error", body.Error)
		assert.Equal(t, "title", body.Field)
	})

	t.Run("malformed json", func(t *testing.T) {
		rr := do(t, h, http.MethodPost, "/api/snippets", `{"title":`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("unknown field", func(t *testing.T) {
		rr := do(t, h, http.MethodPost, "/api/snippets", `{"title":"t","code":"c","id":"forced"}`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestHandleUpdate(t *testing.T) {
	h := newTestRouter(t)

	rr := do(t, h, http.MethodPut, "/api/snippets/1",
		`{"title":"Hello World in Rust","language":"rust","code":"fn main() {}","description":"edited","tags":"beginner, rust"}`)
	require.Equal(t, http.StatusOK, rr.Code)

	updated := decode[model.Snippet](t, rr)
	assert.Equal(t, "1", updated.ID)
	assert.Equal(t, "edited", updated.Description)
	assert.True(t, updated.IsFavorite, "sample 1 stays a favorite")
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt))

	rr = do(t, h, http.MethodPut, "/api/snippets/ghost", `{"title":"t","code":"c"}`)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestHandleDelete(t *testing.T) {
	h := newTestRouter(t)

	assert.Equal(t, http.StatusNoContent, do(t, h, http.MethodDelete, "/api/snippets/3", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/api/snippets/3", "").Code)
	assert.Equal(t, http.StatusNoContent, do(t, h, http.MethodDelete, "/api/snippets/3", "").Code)
}

func TestHandleToggleFavorite(t *testing.T) {
	h := newTestRouter(t)

	rr := do(t, h, http.MethodPost, "/api/snippets/2/favorite", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, decode[model.Snippet](t, rr).IsFavorite)

	rr = do(t, h, http.MethodPost, "/api/snippets/2/favorite", "")
	assert.False(t, decode[model.Snippet](t, rr).IsFavorite)

	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodPost, "/api/snippets/nope/favorite", "").Code)
}

func TestHandleExplain(t *testing.T) {
	h := newTestRouter(t)

	rr := do(t, h, http.MethodGet, "/api/snippets/3/explain", "")
	require.Equal(t, http.StatusOK, rr.Code)
	body := decode[handler.ExplainResponse](t, rr)
	assert.Equal(t, "3", body.ID)
	assert.Contains(t, body.Explanation, "python")
}
