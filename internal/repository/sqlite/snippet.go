package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/xid"
	"github.com/sakif/snippetshare/internal/apperror"
	"github.com/sakif/snippetshare/internal/model"
	"github.com/sakif/snippetshare/internal/repository"
)

// compile-time check that *DB implements repository.SnippetRepository
var _ repository.SnippetRepository = (*DB)(nil)

// snippetColumns is the SELECT list shared by every snippet query, in the
// order scanSnippet expects.
const snippetColumns = `id, title, description, language, content, author, created_at, updated_at`

func scanSnippet(row interface{ Scan(...any) error }, s *model.Snippet) error {
	return row.Scan(
		&s.ID,
		&s.Title,
		&s.Description,
		&s.Language,
		&s.Content,
		&s.Author,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
}

// Create inserts a new snippet. The ID is generated here (xid — URL-safe and
// sortable by creation time) and written back to the caller's struct along
// with the timestamps.
func (db *DB) Create(ctx context.Context, snippet *model.Snippet) error {
	snippet.ID = xid.New().String()

	now := time.Now()
	snippet.CreatedAt = now
	snippet.UpdatedAt = now

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO snippets (id, title, description, language, content, author, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		snippet.ID,
		snippet.Title,
		snippet.Description,
		snippet.Language,
		snippet.Content,
		snippet.Author,
		snippet.CreatedAt,
		snippet.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating snippet: %w", err)
	}

	return nil
}

// GetByID retrieves a single snippet by its ID.
// Returns apperror.ErrNotFound if the snippet doesn't exist.
func (db *DB) GetByID(ctx context.Context, id string) (*model.Snippet, error) {
	var s model.Snippet

	row := db.conn.QueryRowContext(ctx,
		`SELECT `+snippetColumns+` FROM snippets WHERE id = ?`, id)
	if err := scanSnippet(row, &s); err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("snippet", id)
		}
		return nil, fmt.Errorf("sqlite: getting snippet %s: %w", id, err)
	}

	return &s, nil
}

// ListAll returns every snippet, newest first. The id is a tiebreak for rows
// created in the same instant so the order is deterministic.
func (db *DB) ListAll(ctx context.Context) ([]model.Snippet, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+snippetColumns+` FROM snippets
		 ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing snippets: %w", err)
	}
	defer rows.Close()

	return collectSnippets(rows)
}

// ListByAuthor returns the snippets created by the given username, newest
// first.
func (db *DB) ListByAuthor(ctx context.Context, author string) ([]model.Snippet, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+snippetColumns+` FROM snippets
		 WHERE author = ?
		 ORDER BY created_at DESC, id DESC`,
		author)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing snippets by author %s: %w", author, err)
	}
	defer rows.Close()

	return collectSnippets(rows)
}

func collectSnippets(rows *sql.Rows) ([]model.Snippet, error) {
	snippets := []model.Snippet{}
	for rows.Next() {
		var s model.Snippet
		if err := scanSnippet(rows, &s); err != nil {
			return nil, fmt.Errorf("sqlite: scanning snippet row: %w", err)
		}
		snippets = append(snippets, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating snippets: %w", err)
	}
	return snippets, nil
}

// Update replaces the mutable fields (title, description, language, content)
// of an existing snippet. id, author, and created_at are never touched.
func (db *DB) Update(ctx context.Context, snippet *model.Snippet) error {
	snippet.UpdatedAt = time.Now()

	result, err := db.conn.ExecContext(ctx,
		`UPDATE snippets
		 SET title = ?, description = ?, language = ?, content = ?, updated_at = ?
		 WHERE id = ?`,
		snippet.Title,
		snippet.Description,
		snippet.Language,
		snippet.Content,
		snippet.UpdatedAt,
		snippet.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating snippet %s: %w", snippet.ID, err)
	}

	// Zero rows affected means the WHERE clause matched nothing.
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("snippet", snippet.ID)
	}

	return nil
}

// Delete permanently removes a snippet by its ID. There is no soft delete.
func (db *DB) Delete(ctx context.Context, id string) error {
	result, err := db.conn.ExecContext(ctx,
		`DELETE FROM snippets WHERE id = ?`,
		id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: deleting snippet %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("snippet", id)
	}

	return nil
}
