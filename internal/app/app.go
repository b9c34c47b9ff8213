// Package app is the controller that owns the application's UI state.
//
// App holds the active screen, the home screen's filter, the form draft and
// the detail screen's explanation. Nothing else may change them: every user
// event is a Command passed to Dispatch, the single update function. Views
// read state through Render, which returns plain view models.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/sakif/code-vault/internal/apperror"
	"github.com/sakif/code-vault/internal/model"
	"github.com/sakif/code-vault/internal/query"
	"github.com/sakif/code-vault/internal/router"
	"github.com/sakif/code-vault/internal/service"
)

// App is safe for concurrent use. Dispatch and Render take one mutex, so
// events are applied strictly one at a time, in arrival order, and a
// save-then-navigate is never observed half done.
type App struct {
	svc    *service.SnippetService
	logger *slog.Logger

	mu     sync.Mutex
	screen router.Screen
	filter query.Filter

	// draft holds the last rejected form submission so the form can be
	// shown again with the user's input. nil means "render from the store".
	draft     *service.Form
	formError *apperror.AppError

	// explanation belongs to the View screen it was requested on.
	explanation string
}

// New returns an App on the Home screen with an empty filter.
func New(svc *service.SnippetService, logger *slog.Logger) *App {
	return &App{
		svc:    svc,
		logger: logger,
		screen: router.Home(),
	}
}

// Screen returns the active screen.
func (a *App) Screen() router.Screen {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.screen
}

// Filter returns the home screen's current search and language filter.
func (a *App) Filter() query.Filter {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.filter
}

// Dispatch applies one command.
//
// The router decides the destination first; then the store effect runs; the
// screen changes only if the effect succeeded. A rejected command leaves the
// screen where it was and returns the reason.
func (a *App) Dispatch(ctx context.Context, cmd Command) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	t, err := router.Next(a.screen, cmd.Action, cmd.ID)
	if err != nil {
		a.logger.Debug("command rejected",
			slog.String("action", string(cmd.Action)),
			slog.String("screen", a.screen.String()),
			slog.String("error", err.Error()),
		)
		return err
	}

	if err := a.perform(ctx, cmd, t); err != nil {
		return err
	}

	a.enter(t.To)
	return nil
}

// perform runs the side effect of an accepted command.
func (a *App) perform(ctx context.Context, cmd Command, t router.Transition) error {
	switch cmd.Action {
	case router.SaveSnippet:
		return a.save(ctx, cmd.Form, t.Target)

	case router.DeleteSnippet:
		return a.svc.Delete(ctx, t.Target)

	case router.ToggleFavorite:
		return a.svc.ToggleFavorite(ctx, t.Target)

	case router.SetSearch:
		a.filter.Search = cmd.Text

	case router.SetLanguage:
		a.filter.Language = cmd.Text

	case router.ExplainSnippet:
		text, err := a.svc.Explain(ctx, t.Target)
		if err != nil {
			// The detail screen already renders "not found" for a stale id.
			if apperror.IsNotFound(err) {
				return nil
			}
			return err
		}
		a.explanation = text

	case router.CopyCode:
		a.logger.Info("copy to clipboard requested", slog.String("id", t.Target))

	case router.ShareSnippet:
		a.logger.Info("share requested", slog.String("id", t.Target))
	}
	return nil
}

// save creates (Add screen) or updates (Edit screen) a snippet. A rejected
// save (validation, conflict) keeps the submitted values as a draft for the
// next render.
func (a *App) save(ctx context.Context, form service.Form, target string) error {
	var err error
	if a.screen.Kind == router.KindAdd {
		_, err = a.svc.Create(ctx, form)
	} else {
		_, err = a.svc.Update(ctx, target, form)
	}

	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		a.draft = &form
		a.formError = appErr
	}
	return err
}

// enter commits a successful transition. Leaving a screen discards its
// transient state: the form draft, and the explanation unless we stay on the
// same detail screen.
func (a *App) enter(to router.Screen) {
	if to != a.screen {
		a.explanation = ""
		a.logger.Debug("screen changed",
			slog.String("from", a.screen.String()),
			slog.String("to", to.String()),
		)
	}
	a.draft = nil
	a.formError = nil
	a.screen = to
}

// Page is everything a view needs to draw the active screen. Exactly one of
// Home, Form and Detail is set, matching Screen.Kind.
type Page struct {
	Screen router.Screen `json:"screen"`
	Home   *HomePage     `json:"home,omitempty"`
	Form   *FormPage     `json:"form,omitempty"`
	Detail *DetailPage   `json:"detail,omitempty"`
}

type HomePage struct {
	Filter    query.Filter    `json:"filter"`
	Languages []string        `json:"languages"`
	Snippets  []model.Snippet `json:"snippets"`
	// Total counts every stored snippet, filtered or not.
	Total        int    `json:"total"`
	EmptyMessage string `json:"emptyMessage,omitempty"`
}

type FormPage struct {
	Editing bool         `json:"editing"`
	ID      string       `json:"id,omitempty"`
	Form    service.Form `json:"form"`
	// LanguageOptions always includes the form's current language, even when
	// it is not one of the known languages.
	LanguageOptions []string `json:"languageOptions"`
	NotFound        bool     `json:"notFound"`
	Error           string   `json:"error,omitempty"`
	ErrorField      string   `json:"errorField,omitempty"`
}

type DetailPage struct {
	Snippet     *model.Snippet `json:"snippet,omitempty"`
	NotFound    bool           `json:"notFound"`
	Explanation string         `json:"explanation,omitempty"`
}

// Render builds the view model for the active screen. Snippet ids are
// resolved against the store on every call.
func (a *App) Render(ctx context.Context) (*Page, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	page := &Page{Screen: a.screen}
	var err error
	switch a.screen.Kind {
	case router.KindHome:
		page.Home, err = a.renderHome(ctx)
	case router.KindAdd, router.KindEdit:
		page.Form, err = a.renderForm(ctx)
	case router.KindView:
		page.Detail, err = a.renderDetail(ctx)
	default:
		err = fmt.Errorf("app: unknown screen %q", a.screen.Kind)
	}
	if err != nil {
		return nil, err
	}
	return page, nil
}

func (a *App) renderHome(ctx context.Context) (*HomePage, error) {
	all, err := a.svc.List(ctx)
	if err != nil {
		return nil, err
	}

	home := &HomePage{
		Filter:    a.filter,
		Languages: query.Languages(all),
		Snippets:  query.View(all, a.filter),
		Total:     len(all),
	}
	if len(home.Snippets) == 0 {
		home.EmptyMessage = query.EmptyMessage(a.filter)
	}
	return home, nil
}

func (a *App) renderForm(ctx context.Context) (*FormPage, error) {
	page := &FormPage{
		Editing: a.screen.Kind == router.KindEdit,
		ID:      a.screen.ID,
	}

	switch {
	case a.draft != nil:
		page.Form = *a.draft
	case page.Editing:
		snippet, err := a.svc.Get(ctx, a.screen.ID)
		if apperror.IsNotFound(err) {
			page.NotFound = true
			return page, nil
		}
		if err != nil {
			return nil, err
		}
		page.Form = service.FormFrom(snippet)
	default:
		page.Form = service.Form{Language: model.DefaultLanguage}
	}

	if a.formError != nil {
		page.Error = a.formError.Message
		page.ErrorField = a.formError.Field
	}
	page.LanguageOptions = languageOptions(page.Form.Language)
	return page, nil
}

func (a *App) renderDetail(ctx context.Context) (*DetailPage, error) {
	snippet, err := a.svc.Get(ctx, a.screen.ID)
	if apperror.IsNotFound(err) {
		return &DetailPage{NotFound: true}, nil
	}
	if err != nil {
		return nil, err
	}
	return &DetailPage{Snippet: snippet, Explanation: a.explanation}, nil
}

func languageOptions(current string) []string {
	options := slices.Clone(model.Languages)
	if current != "" && !slices.Contains(options, current) {
		options = append(options, current)
	}
	return options
}
