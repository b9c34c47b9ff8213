// Package memory implements the Record Store as an ordered in-memory slice.
//
// This is the default backend: state lives exactly as long as the process,
// which is all the application promises. The slice (not a map) keeps
// records in the order they were added, so listing is a plain copy.
package memory

import (
	"context"
	"sync"

	"github.com/sakif/code-vault/internal/apperror"
	"github.com/sakif/code-vault/internal/model"
	"github.com/sakif/code-vault/internal/repository"
)

var _ repository.SnippetRepository = (*Store)(nil)

// Store is an ordered collection of snippets keyed by ID.
//
// The mutex makes the store safe to share between HTTP handlers. Lookups are
// linear scans; the collection is a personal snippet list, not a database.
type Store struct {
	mu       sync.RWMutex
	snippets []model.Snippet
}

// New returns a store holding clones of the given snippets, in order.
func New(seed ...model.Snippet) *Store {
	s := &Store{snippets: make([]model.Snippet, 0, len(seed))}
	for _, snippet := range seed {
		s.snippets = append(s.snippets, snippet.Clone())
	}
	return s
}

// Create appends the snippet. IDs are not checked for uniqueness: the
// service generates collision-resistant IDs before calling Create.
func (s *Store) Create(_ context.Context, snippet *model.Snippet) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snippets = append(s.snippets, snippet.Clone())
	return nil
}

func (s *Store) GetByID(_ context.Context, id string) (*model.Snippet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(id); i >= 0 {
		found := s.snippets[i].Clone()
		return &found, nil
	}
	return nil, apperror.NotFound("snippet", id)
}

func (s *Store) List(_ context.Context) ([]model.Snippet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Snippet, len(s.snippets))
	for i, snippet := range s.snippets {
		out[i] = snippet.Clone()
	}
	return out, nil
}

// Update replaces the matching record in place, keeping its position.
func (s *Store) Update(_ context.Context, snippet *model.Snippet) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(snippet.ID); i >= 0 {
		s.snippets[i] = snippet.Clone()
	}
	return nil
}

// Delete removes all records with the id, preserving the order of the rest.
func (s *Store) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.snippets[:0]
	for _, snippet := range s.snippets {
		if snippet.ID != id {
			kept = append(kept, snippet)
		}
	}
	// Zero the tail so removed snippets can be garbage collected.
	clear(s.snippets[len(kept):])
	s.snippets = kept
	return nil
}

func (s *Store) ToggleFavorite(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(id); i >= 0 {
		s.snippets[i].IsFavorite = !s.snippets[i].IsFavorite
	}
	return nil
}

// indexOf returns the position of the first record with id, or -1.
// Callers must hold the lock.
func (s *Store) indexOf(id string) int {
	for i := range s.snippets {
		if s.snippets[i].ID == id {
			return i
		}
	}
	return -1
}
