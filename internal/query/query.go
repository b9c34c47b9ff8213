// Package query derives the home screen's list from the stored snippets.
//
// Everything here is a pure function of its inputs: nothing is cached and
// nothing is written back. The full list goes in, a filtered view comes out
// in the same relative order.
package query

import (
	"slices"
	"strings"

	"github.com/sakif/code-vault/internal/model"
)

// Empty-state messages. Which one applies depends only on whether a filter
// is active, not on whether the store itself is empty.
const (
	MessageNoSnippets = "Start by adding your first code snippet!"
	MessageNoMatches  = "Try adjusting your search or filters"
)

// Filter is the home screen's search box plus its language chip.
type Filter struct {
	Search   string `json:"search"`
	Language string `json:"language"`
}

// Active reports whether the user has narrowed the list at all.
func (f Filter) Active() bool {
	return f.Search != "" || f.Language != ""
}

// Matches reports whether a snippet passes both halves of the filter.
//
// Search is a case-insensitive substring match against the title, the code,
// or any single tag. Language is an exact, case-sensitive comparison.
// An empty value on either half matches everything.
func Matches(s model.Snippet, f Filter) bool {
	return matchesSearch(s, strings.ToLower(f.Search)) && matchesLanguage(s, f.Language)
}

// matchesSearch expects needle already lowercased.
func matchesSearch(s model.Snippet, needle string) bool {
	if needle == "" {
		return true
	}
	if strings.Contains(strings.ToLower(s.Title), needle) ||
		strings.Contains(strings.ToLower(s.Code), needle) {
		return true
	}
	return slices.ContainsFunc(s.Tags, func(tag string) bool {
		return strings.Contains(strings.ToLower(tag), needle)
	})
}

func matchesLanguage(s model.Snippet, language string) bool {
	return language == "" || s.Language == language
}

// View returns the snippets that match f, preserving input order.
// The result is never nil, so it encodes as [] rather than null.
func View(snippets []model.Snippet, f Filter) []model.Snippet {
	needle := strings.ToLower(f.Search)
	out := make([]model.Snippet, 0, len(snippets))
	for _, s := range snippets {
		if matchesSearch(s, needle) && matchesLanguage(s, f.Language) {
			out = append(out, s)
		}
	}
	return out
}

// Languages returns the distinct languages present, sorted lexicographically.
// These populate the filter chips; they are recomputed on every render.
func Languages(snippets []model.Snippet) []string {
	seen := make(map[string]struct{}, len(snippets))
	for _, s := range snippets {
		seen[s.Language] = struct{}{}
	}
	langs := make([]string, 0, len(seen))
	for lang := range seen {
		langs = append(langs, lang)
	}
	slices.Sort(langs)
	return langs
}

// EmptyMessage is the hint shown when View returns nothing.
func EmptyMessage(f Filter) string {
	if f.Active() {
		return MessageNoMatches
	}
	return MessageNoSnippets
}
