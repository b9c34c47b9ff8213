package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	sqlitedriver "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/sakif/code-vault/internal/apperror"
	"github.com/sakif/code-vault/internal/model"
	"github.com/sakif/code-vault/internal/repository"
)

// Compile-time check that *DB satisfies the repository contract.
var _ repository.SnippetRepository = (*DB)(nil)

const snippetColumns = `id, title, language, code, description, tags, is_favorite, created_at, updated_at`

// rowScanner is satisfied by both *sql.Row and *sql.Rows, so one scan
// function serves GetByID and List.
type rowScanner interface {
	Scan(dest ...any) error
}

// Create inserts the snippet after all existing rows.
//
// Create does NOT generate the ID or the timestamps: the service owns both
// so every backend behaves identically.
func (db *DB) Create(ctx context.Context, snippet *model.Snippet) error {
	tags, err := encodeTags(snippet.Tags)
	if err != nil {
		return fmt.Errorf("sqlite: creating snippet %s: %w", snippet.ID, err)
	}

	_, err = db.conn.ExecContext(ctx,
		`INSERT INTO snippets (`+snippetColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		snippet.ID,
		snippet.Title,
		snippet.Language,
		snippet.Code,
		snippet.Description,
		tags,
		snippet.IsFavorite,
		snippet.CreatedAt,
		snippet.UpdatedAt,
	)
	if err != nil {
		if isConstraintViolation(err) {
			return apperror.Conflict("snippet", snippet.ID)
		}
		return fmt.Errorf("sqlite: creating snippet %s: %w", snippet.ID, err)
	}

	return nil
}

// GetByID translates sql.ErrNoRows into the application's NotFound error.
func (db *DB) GetByID(ctx context.Context, id string) (*model.Snippet, error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT `+snippetColumns+` FROM snippets WHERE id = ?`,
		id,
	)

	snippet, err := scanSnippet(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("snippet", id)
		}
		return nil, fmt.Errorf("sqlite: getting snippet %s: %w", id, err)
	}

	return snippet, nil
}

// List returns every snippet in insertion order.
//
// There is no pagination: the query engine filters the full list in memory,
// and a personal snippet collection is small.
func (db *DB) List(ctx context.Context) ([]model.Snippet, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+snippetColumns+` FROM snippets ORDER BY seq`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing snippets: %w", err)
	}
	// rows holds the only pool connection until closed.
	defer rows.Close()

	snippets := []model.Snippet{}
	for rows.Next() {
		snippet, err := scanSnippet(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning snippet row: %w", err)
		}
		snippets = append(snippets, *snippet)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating snippets: %w", err)
	}

	return snippets, nil
}

// Update replaces every mutable column. id, created_at and seq are never
// written, so the record keeps its identity and position. Zero rows affected
// means the snippet is gone, which is not an error.
func (db *DB) Update(ctx context.Context, snippet *model.Snippet) error {
	tags, err := encodeTags(snippet.Tags)
	if err != nil {
		return fmt.Errorf("sqlite: updating snippet %s: %w", snippet.ID, err)
	}

	_, err = db.conn.ExecContext(ctx,
		`UPDATE snippets
		 SET title = ?, language = ?, code = ?, description = ?, tags = ?,
		     is_favorite = ?, updated_at = ?
		 WHERE id = ?`,
		snippet.Title,
		snippet.Language,
		snippet.Code,
		snippet.Description,
		tags,
		snippet.IsFavorite,
		snippet.UpdatedAt,
		snippet.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating snippet %s: %w", snippet.ID, err)
	}

	return nil
}

func (db *DB) Delete(ctx context.Context, id string) error {
	if _, err := db.conn.ExecContext(ctx, `DELETE FROM snippets WHERE id = ?`, id); err != nil {
		return fmt.Errorf("sqlite: deleting snippet %s: %w", id, err)
	}
	return nil
}

// ToggleFavorite flips the flag in a single statement, so there is no
// read-modify-write window.
func (db *DB) ToggleFavorite(ctx context.Context, id string) error {
	_, err := db.conn.ExecContext(ctx,
		`UPDATE snippets SET is_favorite = 1 - is_favorite WHERE id = ?`,
		id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: toggling favorite on %s: %w", id, err)
	}
	return nil
}

func scanSnippet(row rowScanner) (*model.Snippet, error) {
	var (
		s    model.Snippet
		tags string
	)
	if err := row.Scan(
		&s.ID,
		&s.Title,
		&s.Language,
		&s.Code,
		&s.Description,
		&tags,
		&s.IsFavorite,
		&s.CreatedAt,
		&s.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(tags), &s.Tags); err != nil {
		return nil, fmt.Errorf("decoding tags of %s: %w", s.ID, err)
	}
	return &s, nil
}

func encodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("encoding tags: %w", err)
	}
	return string(b), nil
}

// isConstraintViolation reports whether err is SQLite rejecting a row on a
// UNIQUE or PRIMARY KEY constraint. Extended result codes keep the primary
// code in the low byte.
func isConstraintViolation(err error) bool {
	var sqliteErr *sqlitedriver.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT
}
