// Package service contains the business logic layer of the application.
//
// THE THREE-LAYER ARCHITECTURE:
//
//	Handler / Controller  → parses input, decides what to show
//	Service               → validates forms, assigns IDs and timestamps
//	Repository            → holds the records (memory or SQLite)
//
// The service accepts plain Go values (a Form, an id), never HTTP types, so
// the HTML controller and the JSON API share the exact same rules.
//
// DEPENDENCY INJECTION:
// SnippetService takes a repository.SnippetRepository (interface), not a
// concrete store. Tests pass the in-memory store; the server passes whichever
// backend the config selects.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/rs/xid"

	"github.com/sakif/code-vault/internal/apperror"
	"github.com/sakif/code-vault/internal/explain"
	"github.com/sakif/code-vault/internal/model"
	"github.com/sakif/code-vault/internal/query"
	"github.com/sakif/code-vault/internal/repository"
)

// Form is the add/edit form as submitted. Tags is the raw comma-separated
// text field; the service parses it.
type Form struct {
	Title       string `json:"title"`
	Language    string `json:"language"`
	Code        string `json:"code"`
	Description string `json:"description"`
	Tags        string `json:"tags"`
}

// FormFrom fills a form from an existing snippet, for the edit screen.
func FormFrom(s *model.Snippet) Form {
	return Form{
		Title:       s.Title,
		Language:    s.Language,
		Code:        s.Code,
		Description: s.Description,
		Tags:        model.JoinTags(s.Tags),
	}
}

// Validate checks the two required fields. Nothing else is validated.
func (f Form) Validate() error {
	if f.Title == "" {
		return apperror.ValidationFailed("title", "title is required")
	}
	if f.Code == "" {
		return apperror.ValidationFailed("code", "code is required")
	}
	return nil
}

// apply copies the form's fields onto s. Identity fields are left alone.
func (f Form) apply(s *model.Snippet) {
	s.Title = f.Title
	s.Language = strings.TrimSpace(f.Language)
	if s.Language == "" {
		s.Language = model.DefaultLanguage
	}
	s.Code = f.Code
	s.Description = f.Description
	s.Tags = model.ParseTags(f.Tags)
}

// SnippetService handles business logic for code snippets.
type SnippetService struct {
	repo      repository.SnippetRepository
	explainer explain.Explainer
	logger    *slog.Logger

	// Swappable in tests.
	now   func() time.Time
	newID func() string
}

// NewSnippetService creates a new SnippetService.
//
// IDs come from xid: 20 URL-safe characters, time-sortable, and unique even
// for two snippets created within the same clock tick.
func NewSnippetService(repo repository.SnippetRepository, explainer explain.Explainer, logger *slog.Logger) *SnippetService {
	return &SnippetService{
		repo:      repo,
		explainer: explainer,
		logger:    logger,
		now:       time.Now,
		newID:     func() string { return xid.New().String() },
	}
}

// Create validates the form and appends a new snippet to the store.
// New snippets are never favorites; CreatedAt and UpdatedAt start equal.
func (s *SnippetService) Create(ctx context.Context, form Form) (*model.Snippet, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}

	now := s.now()
	snippet := &model.Snippet{
		ID:        s.newID(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	form.apply(snippet)

	if err := s.repo.Create(ctx, snippet); err != nil {
		s.logger.Error("failed to create snippet",
			slog.String("title", snippet.Title),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating snippet: %w", err)
	}

	s.logger.Info("snippet created",
		slog.String("id", snippet.ID),
		slog.String("title", snippet.Title),
		slog.String("language", snippet.Language),
	)
	return snippet, nil
}

// Get returns the snippet or an apperror.NotFound.
func (s *SnippetService) Get(ctx context.Context, id string) (*model.Snippet, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns every snippet in store order.
func (s *SnippetService) List(ctx context.Context) ([]model.Snippet, error) {
	snippets, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list snippets", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing snippets: %w", err)
	}
	return snippets, nil
}

// Query returns the snippets matching f, in store order.
func (s *SnippetService) Query(ctx context.Context, f query.Filter) ([]model.Snippet, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return query.View(all, f), nil
}

// Languages returns the distinct languages currently stored, sorted.
func (s *SnippetService) Languages(ctx context.Context) ([]string, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return query.Languages(all), nil
}

// Update replaces every editable field of the snippet with the form's values.
//
// ID, CreatedAt and IsFavorite are preserved. UpdatedAt moves to the current
// time, and always strictly forward: if the clock has not advanced since the
// last write, it is bumped by a nanosecond so the edit stays observable.
//
// A missing snippet is not an error: Update returns (nil, nil) and nothing
// changes, matching the store's silent no-op.
func (s *SnippetService) Update(ctx context.Context, id string, form Form) (*model.Snippet, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}

	snippet, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if apperror.IsNotFound(err) {
			s.logger.Debug("update of missing snippet ignored", slog.String("id", id))
			return nil, nil
		}
		return nil, fmt.Errorf("updating snippet: %w", err)
	}

	form.apply(snippet)
	snippet.UpdatedAt = s.nextStamp(snippet.UpdatedAt)

	if err := s.repo.Update(ctx, snippet); err != nil {
		s.logger.Error("failed to update snippet",
			slog.String("id", id),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("updating snippet: %w", err)
	}

	s.logger.Info("snippet updated",
		slog.String("id", snippet.ID),
		slog.String("title", snippet.Title),
	)
	return snippet, nil
}

// Delete removes the snippet. Deleting an unknown id succeeds and changes nothing.
func (s *SnippetService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete snippet",
			slog.String("id", id),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("deleting snippet: %w", err)
	}

	s.logger.Info("snippet deleted", slog.String("id", id))
	return nil
}

// ToggleFavorite flips the favorite flag. It does not touch UpdatedAt:
// favoriting is not an edit.
func (s *SnippetService) ToggleFavorite(ctx context.Context, id string) error {
	if err := s.repo.ToggleFavorite(ctx, id); err != nil {
		s.logger.Error("failed to toggle favorite",
			slog.String("id", id),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("toggling favorite: %w", err)
	}

	s.logger.Debug("favorite toggled", slog.String("id", id))
	return nil
}

// Explain asks the explainer to describe the snippet.
func (s *SnippetService) Explain(ctx context.Context, id string) (string, error) {
	snippet, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}

	text, err := s.explainer.Explain(ctx, snippet)
	if err != nil {
		return "", fmt.Errorf("explaining snippet %s: %w", id, err)
	}
	return text, nil
}

func (s *SnippetService) nextStamp(previous time.Time) time.Time {
	now := s.now()
	if !now.After(previous) {
		return previous.Add(time.Nanosecond)
	}
	return now
}
