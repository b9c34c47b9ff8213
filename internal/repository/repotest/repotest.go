// Package repotest holds the behaviour every SnippetRepository backend must
// share. Backend test files call Run with a constructor for a fresh, empty
// store:
//
//	func TestContract(t *testing.T) {
//	    repotest.Run(t, func(t *testing.T) repository.SnippetRepository {
//	        return newTestDB(t)
//	    })
//	}
package repotest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/code-vault/internal/apperror"
	"github.com/sakif/code-vault/internal/model"
	"github.com/sakif/code-vault/internal/repository"
)

// Factory returns an empty repository owned by the test.
type Factory func(t *testing.T) repository.SnippetRepository

// Sample returns a fully populated snippet with the given id. Timestamps are
// whole seconds in UTC so they survive a trip through any backend.
func Sample(id, title string) *model.Snippet {
	stamp := time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)
	return &model.Snippet{
		ID:          id,
		Title:       title,
		Language:    "rust",
		Code:        "fn main() {}",
		Description: "sample " + id,
		Tags:        []string{"beginner", "rust"},
		CreatedAt:   stamp,
		UpdatedAt:   stamp,
	}
}

// Run executes the shared contract as subtests.
func Run(t *testing.T, newRepo Factory) {
	t.Run("create then get", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		want := Sample("1", "Hello World in Rust")

		require.NoError(t, repo.Create(ctx, want))

		got, err := repo.GetByID(ctx, "1")
		require.NoError(t, err)
		assertSameSnippet(t, want, got)
	})

	t.Run("get missing returns NotFound", func(t *testing.T) {
		repo := newRepo(t)

		_, err := repo.GetByID(context.Background(), "missing")

		require.Error(t, err)
		assert.True(t, errors.Is(err, apperror.ErrNotFound), "error = %v, want ErrNotFound", err)
	})

	t.Run("list keeps insertion order", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		for _, id := range []string{"c", "a", "b"} {
			require.NoError(t, repo.Create(ctx, Sample(id, "title "+id)))
		}

		all, err := repo.List(ctx)
		require.NoError(t, err)

		assert.Equal(t, []string{"c", "a", "b"}, ids(all))
	})

	t.Run("list empty", func(t *testing.T) {
		all, err := newRepo(t).List(context.Background())
		require.NoError(t, err)
		assert.Empty(t, all)
	})

	t.Run("update replaces every field in place", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		require.NoError(t, repo.Create(ctx, Sample("1", "first")))
		require.NoError(t, repo.Create(ctx, Sample("2", "second")))

		changed := Sample("1", "renamed")
		changed.Language = "go"
		changed.Code = "package main"
		changed.Description = ""
		changed.Tags = []string{"x", "x"}
		changed.UpdatedAt = changed.UpdatedAt.Add(time.Hour)
		require.NoError(t, repo.Update(ctx, changed))

		got, err := repo.GetByID(ctx, "1")
		require.NoError(t, err)
		assertSameSnippet(t, changed, got)

		all, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"1", "2"}, ids(all), "update must not move the record")
	})

	t.Run("update missing is a no-op", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		require.NoError(t, repo.Create(ctx, Sample("1", "first")))

		require.NoError(t, repo.Update(ctx, Sample("ghost", "nobody")))

		all, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"1"}, ids(all))
	})

	t.Run("delete removes the record", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		require.NoError(t, repo.Create(ctx, Sample("1", "first")))
		require.NoError(t, repo.Create(ctx, Sample("2", "second")))
		require.NoError(t, repo.Create(ctx, Sample("3", "third")))

		require.NoError(t, repo.Delete(ctx, "2"))

		_, err := repo.GetByID(ctx, "2")
		assert.True(t, errors.Is(err, apperror.ErrNotFound))
		all, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"1", "3"}, ids(all))
	})

	t.Run("delete missing leaves store unchanged", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		require.NoError(t, repo.Create(ctx, Sample("1", "first")))
		before, err := repo.List(ctx)
		require.NoError(t, err)

		require.NoError(t, repo.Delete(ctx, "nonexistent"))

		after, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, ids(before), ids(after))
	})

	t.Run("toggle favorite twice restores the flag", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		require.NoError(t, repo.Create(ctx, Sample("1", "first")))

		require.NoError(t, repo.ToggleFavorite(ctx, "1"))
		got, err := repo.GetByID(ctx, "1")
		require.NoError(t, err)
		assert.True(t, got.IsFavorite)

		require.NoError(t, repo.ToggleFavorite(ctx, "1"))
		got, err = repo.GetByID(ctx, "1")
		require.NoError(t, err)
		assert.False(t, got.IsFavorite)
	})

	t.Run("toggle favorite missing is a no-op", func(t *testing.T) {
		repo := newRepo(t)
		assert.NoError(t, repo.ToggleFavorite(context.Background(), "missing"))
	})

	t.Run("returned snippets are copies", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		original := Sample("1", "first")
		require.NoError(t, repo.Create(ctx, original))

		// Mutating the caller's value after Create must not leak in.
		original.Tags[0] = "mutated"

		got, err := repo.GetByID(ctx, "1")
		require.NoError(t, err)
		got.Tags[1] = "also mutated"

		again, err := repo.GetByID(ctx, "1")
		require.NoError(t, err)
		assert.Equal(t, []string{"beginner", "rust"}, again.Tags)
	})
}

func assertSameSnippet(t *testing.T, want, got *model.Snippet) {
	t.Helper()
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.Title, got.Title)
	assert.Equal(t, want.Language, got.Language)
	assert.Equal(t, want.Code, got.Code)
	assert.Equal(t, want.Description, got.Description)
	assert.Equal(t, want.Tags, got.Tags)
	assert.True(t, want.CreatedAt.Equal(got.CreatedAt), "CreatedAt = %v, want %v", got.CreatedAt, want.CreatedAt)
	assert.True(t, want.UpdatedAt.Equal(got.UpdatedAt), "UpdatedAt = %v, want %v", got.UpdatedAt, want.UpdatedAt)
	assert.Equal(t, want.IsFavorite, got.IsFavorite)
}

func ids(snippets []model.Snippet) []string {
	out := make([]string, len(snippets))
	for i, s := range snippets {
		out[i] = s.ID
	}
	return out
}
