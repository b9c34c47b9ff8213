package handler

import (
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/sakif/code-vault/internal/app"
	"github.com/sakif/code-vault/internal/apperror"
	"github.com/sakif/code-vault/internal/router"
	"github.com/sakif/code-vault/internal/service"
)

// previewLength is how much code a home-screen card shows.
const previewLength = 100

// ScreenHandler renders the active screen as HTML and turns form posts into
// controller commands.
//
// TEMPLATE COMPOSITION:
// base.html lays out the page and calls {{template "content" .}}. Each screen
// file defines its own "content", so every screen gets its own clone of the
// base set; parsing them all into one set would make the definitions collide.
type ScreenHandler struct {
	app       *app.App
	templates map[router.Kind]*template.Template
	logger    *slog.Logger
}

type buttonArgs struct {
	Command string
	ID      string
	Label   string
}

var funcs = template.FuncMap{
	"args": func(command, id, label string) buttonArgs {
		return buttonArgs{Command: command, ID: id, Label: label}
	},
	"preview": func(code string) string {
		if utf8.RuneCountInString(code) <= previewLength {
			return code
		}
		return string([]rune(code)[:previewLength]) + "..."
	},
	"star": func(favorite bool) string {
		if favorite {
			return "★"
		}
		return "☆"
	},
	"date": func(t time.Time) string {
		return t.Format("2006-01-02")
	},
}

// NewScreenHandler parses the templates once at startup.
func NewScreenHandler(a *app.App, templates fs.FS, logger *slog.Logger) (*ScreenHandler, error) {
	base, err := template.New("base").Funcs(funcs).ParseFS(templates, "templates/base.html")
	if err != nil {
		return nil, fmt.Errorf("parsing base template: %w", err)
	}

	files := map[router.Kind]string{
		router.KindHome: "templates/home.html",
		router.KindAdd:  "templates/form.html",
		router.KindEdit: "templates/form.html",
		router.KindView: "templates/detail.html",
	}
	h := &ScreenHandler{
		app:       a,
		templates: make(map[router.Kind]*template.Template, len(files)),
		logger:    logger,
	}
	for kind, file := range files {
		clone, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("cloning base template: %w", err)
		}
		if h.templates[kind], err = clone.ParseFS(templates, file); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", file, err)
		}
	}
	return h, nil
}

// HandleScreen renders whatever screen the controller is on.
//
// HTTP: GET /
func (h *ScreenHandler) HandleScreen(w http.ResponseWriter, r *http.Request) {
	page, err := h.app.Render(r.Context())
	if err != nil {
		h.logger.Error("failed to build page", slog.String("error", err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	data := map[string]any{
		"Title": "Code Vault",
		"Page":  page,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates[page.Screen.Kind].ExecuteTemplate(w, "base", data); err != nil {
		h.logger.Error("failed to render template",
			slog.String("screen", page.Screen.String()),
			slog.String("error", err.Error()),
		)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// HandleState returns the active screen's view model as JSON.
//
// HTTP: GET /api/screen
func (h *ScreenHandler) HandleState(w http.ResponseWriter, r *http.Request) {
	page, err := h.app.Render(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// HandleEvent dispatches one form-posted command and redirects back to the
// screen (POST/redirect/GET, so a browser refresh never replays the event).
//
// HTTP: POST /events
// FORM: command=<action>&id=<snippet id>&text=<search or language>
//
//	&title=&language=&code=&description=&tags=   (save only)
//
// Rejected commands still redirect: a validation error is shown by the form
// itself, and a stale button press just re-renders the current screen.
func (h *ScreenHandler) HandleEvent(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form body", http.StatusBadRequest)
		return
	}

	cmd := app.Command{
		Action: router.Action(r.PostForm.Get("command")),
		ID:     r.PostForm.Get("id"),
		Text:   r.PostForm.Get("text"),
		Form: service.Form{
			Title:       r.PostForm.Get("title"),
			Language:    r.PostForm.Get("language"),
			Code:        r.PostForm.Get("code"),
			Description: r.PostForm.Get("description"),
			Tags:        r.PostForm.Get("tags"),
		},
	}

	if err := h.app.Dispatch(r.Context(), cmd); err != nil {
		var appErr *apperror.AppError
		if !errors.As(err, &appErr) {
			h.logger.Error("command failed",
				slog.String("command", string(cmd.Action)),
				slog.String("error", err.Error()),
			)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		h.logger.Info("command rejected",
			slog.String("command", string(cmd.Action)),
			slog.String("reason", appErr.Message),
		)
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}
