package seed

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fallback = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

func TestParse(t *testing.T) {
	doc := []byte(`
snippets:
  - id: abc
    title: Hello
    language: go
    code: |
      package main
    description: greets
    tags: [a, b, a]
    favorite: true
    created_at: 2024-01-15T10:00:00Z
    updated_at: 2024-01-16T10:00:00Z
  - title: Second
    code: x
`)

	got, err := Parse(doc, fallback)
	require.NoError(t, err)
	require.Len(t, got, 2)

	first := got[0]
	assert.Equal(t, "abc", first.ID)
	assert.Equal(t, "go", first.Language)
	assert.Equal(t, "package main\n", first.Code)
	assert.Equal(t, []string{"a", "b", "a"}, first.Tags)
	assert.True(t, first.IsFavorite)
	assert.True(t, first.UpdatedAt.After(first.CreatedAt))

	second := got[1]
	assert.Equal(t, "2", second.ID, "missing ids default to position")
	assert.Equal(t, "rust", second.Language)
	assert.Equal(t, fallback, second.CreatedAt)
	assert.Equal(t, second.CreatedAt, second.UpdatedAt)
	assert.NotNil(t, second.Tags)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "invalid yaml", doc: "snippets: [unclosed"},
		{name: "missing title", doc: "snippets:\n  - id: x\n    code: y\n"},
		{name: "duplicate id", doc: "snippets:\n  - {id: a, title: one}\n  - {id: a, title: two}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc), fallback)
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte("snippets:\n  - {title: one, code: x}\n"), 0o644))

	got, err := Load(path)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "one", got[0].Title)
	assert.False(t, got[0].CreatedAt.IsZero())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestSamples(t *testing.T) {
	samples := Samples()
	require.Len(t, samples, 3)

	ids := map[string]bool{}
	for _, s := range samples {
		assert.False(t, ids[s.ID])
		ids[s.ID] = true
		assert.NotEmpty(t, s.Title)
		assert.False(t, s.UpdatedAt.Before(s.CreatedAt))
	}

	// Each call returns fresh slices.
	samples[0].Tags[0] = "changed"
	assert.Equal(t, "beginner", Samples()[0].Tags[0])
}
