// Package model defines the data structures used throughout the application.
// In Go, we use structs to represent our data. There is no inheritance:
// behaviour is attached with methods and shared through composition.
package model

import "time"

// DefaultLanguage is the language preselected on the add form.
const DefaultLanguage = "rust"

// Languages lists the language options offered by the add/edit form, in the
// order they are shown. A snippet's Language is free text and is not checked
// against this list.
var Languages = []string{
	"rust", "javascript", "python", "typescript", "go", "java",
	"cpp", "c", "swift", "kotlin", "dart", "php", "ruby", "html", "css",
}

// Snippet represents a saved code snippet.
//
// ID and CreatedAt are fixed when the snippet is created. UpdatedAt is
// refreshed on every edit, so CreatedAt <= UpdatedAt always holds.
// IsFavorite is flipped on its own and is never touched by an edit.
//
// The `json:"..."` struct tags control how encoding/json names the fields
// in API responses:
//
//	{"id":"cv37rs3pp9olc6atsptg","title":"Hello World in Rust",...}
type Snippet struct {
	ID          string    `json:"id"          yaml:"id"`
	Title       string    `json:"title"       yaml:"title"`
	Language    string    `json:"language"    yaml:"language"`
	Code        string    `json:"code"        yaml:"code"`
	Description string    `json:"description" yaml:"description"` // empty means "no description"
	Tags        []string  `json:"tags"        yaml:"tags"`
	CreatedAt   time.Time `json:"createdAt"   yaml:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt"   yaml:"updated_at"`
	IsFavorite  bool      `json:"isFavorite"  yaml:"favorite"`
}

// Clone returns a deep copy of the snippet.
//
// WHY NOT JUST COPY THE STRUCT?
// `copy := *s` copies every field, but Tags is a slice: both values would
// point at the same backing array, so appending to or editing one snippet's
// tags would silently change the other. Stores hand out clones so callers can
// never reach into stored state.
func (s Snippet) Clone() Snippet {
	c := s
	if s.Tags != nil {
		c.Tags = make([]string, len(s.Tags))
		copy(c.Tags, s.Tags)
	}
	return c
}

// HasDescription reports whether the optional description is set.
func (s Snippet) HasDescription() bool {
	return s.Description != ""
}
