// Package repository defines the Record Store contract shared by every
// storage backend.
//
// All operations are total: an id that matches nothing is a silent no-op for
// Update, Delete and ToggleFavorite. Only GetByID reports absence, as an
// apperror.NotFound. A returned error otherwise means the backend itself
// failed.
package repository

import (
	"context"

	"github.com/sakif/code-vault/internal/model"
)

type SnippetRepository interface {
	// Create appends the snippet after every existing record.
	Create(ctx context.Context, snippet *model.Snippet) error
	// GetByID returns the record or an apperror.NotFound.
	GetByID(ctx context.Context, id string) (*model.Snippet, error)
	// List returns every record in insertion order.
	List(ctx context.Context) ([]model.Snippet, error)
	// Update replaces the whole record whose ID matches snippet.ID.
	Update(ctx context.Context, snippet *model.Snippet) error
	// Delete removes every record with the given id.
	Delete(ctx context.Context, id string) error
	// ToggleFavorite flips IsFavorite on the matching record.
	ToggleFavorite(ctx context.Context, id string) error
}
