// Package seed provides the snippets the store starts with.
//
// Without a seed file the application starts with three built-in samples.
// A YAML file can replace them:
//
//	snippets:
//	  - id: "1"
//	    title: Hello World in Rust
//	    language: rust
//	    code: |
//	      fn main() {}
//	    tags: [beginner, rust]
//	    favorite: true
//	    created_at: 2024-01-15T00:00:00Z
//
// Seeding only fills the in-memory store at startup; nothing is written back.
package seed

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sakif/code-vault/internal/model"
)

type file struct {
	Snippets []model.Snippet `yaml:"snippets"`
}

// Load reads snippets from a YAML file.
//
// Missing IDs get their 1-based position as ID. A missing created_at falls
// back to the file's modification time, and a missing or earlier updated_at
// is raised to created_at.
func Load(path string) ([]model.Snippet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("seed: reading %s: %w", path, err)
	}

	stamp := time.Now()
	if info, err := os.Stat(path); err == nil {
		stamp = info.ModTime()
	}

	snippets, err := Parse(data, stamp)
	if err != nil {
		return nil, fmt.Errorf("seed: %s: %w", path, err)
	}
	return snippets, nil
}

// Parse decodes a YAML seed document. fallback stamps snippets that carry no
// created_at.
func Parse(data []byte, fallback time.Time) ([]model.Snippet, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing yaml: %w", err)
	}

	seen := make(map[string]int, len(f.Snippets))
	for i := range f.Snippets {
		s := &f.Snippets[i]
		if s.ID == "" {
			s.ID = fmt.Sprint(i + 1)
		}
		if prev, dup := seen[s.ID]; dup {
			return nil, fmt.Errorf("snippet %d reuses id %q from snippet %d", i+1, s.ID, prev+1)
		}
		seen[s.ID] = i

		if s.Title == "" {
			return nil, fmt.Errorf("snippet %q has no title", s.ID)
		}
		if s.Language == "" {
			s.Language = model.DefaultLanguage
		}
		if s.Tags == nil {
			s.Tags = []string{}
		}
		if s.CreatedAt.IsZero() {
			s.CreatedAt = fallback
		}
		if s.UpdatedAt.Before(s.CreatedAt) {
			s.UpdatedAt = s.CreatedAt
		}
	}
	return f.Snippets, nil
}

// Samples returns the built-in starter snippets.
func Samples() []model.Snippet {
	day := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }
	return []model.Snippet{
		{
			ID:          "1",
			Title:       "Hello World in Rust",
			Language:    "rust",
			Code:        "fn main() {\n    println!(\"Hello, world!\");\n}",
			Description: "A simple Hello World program in Rust",
			Tags:        []string{"beginner", "rust", "hello-world"},
			CreatedAt:   day(15),
			UpdatedAt:   day(15),
			IsFavorite:  true,
		},
		{
			ID:          "2",
			Title:       "JavaScript For Loop",
			Language:    "javascript",
			Code:        "for (let i = 0; i < 10; i++) {\n    console.log(`Count: ${i}`);\n}",
			Description: "Basic for loop example in JavaScript",
			Tags:        []string{"javascript", "loop", "basics"},
			CreatedAt:   day(14),
			UpdatedAt:   day(14),
		},
		{
			ID:          "3",
			Title:       "Python List Comprehension",
			Language:    "python",
			Code:        "squares = [x**2 for x in range(10)]\nprint(squares)",
			Description: "Creating a list of squares using list comprehension",
			Tags:        []string{"python", "list-comprehension", "functional"},
			CreatedAt:   day(13),
			UpdatedAt:   day(13),
			IsFavorite:  true,
		},
	}
}
