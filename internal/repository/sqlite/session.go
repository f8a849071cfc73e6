package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sakif/snippetshare/internal/apperror"
	"github.com/sakif/snippetshare/internal/model"
	"github.com/sakif/snippetshare/internal/repository"
)

// compile-time check that *DB implements repository.SessionRepository
var _ repository.SessionRepository = (*DB)(nil)

// Create inserts a new session row. The token is generated by the session
// manager, not here — the manager owns the cookie/token pairing.
func (db *DB) CreateSession(ctx context.Context, session *model.Session) error {
	flashType, flashText := flashColumns(session.Flash)

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO sessions (token, username, flash_type, flash_text, created_at, expires_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		session.Token,
		session.User,
		flashType,
		flashText,
		session.CreatedAt,
		session.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating session: %w", err)
	}

	return nil
}

// GetSession loads the session for a token. A session past its expiry is
// treated as absent: the stale row is removed and ErrNotFound is returned,
// so callers never see an expired session.
func (db *DB) GetSession(ctx context.Context, token string) (*model.Session, error) {
	var (
		s         model.Session
		flashType string
		flashText string
	)

	err := db.conn.QueryRowContext(ctx,
		`SELECT token, username, flash_type, flash_text, created_at, expires_at
		 FROM sessions WHERE token = ?`,
		token,
	).Scan(
		&s.Token,
		&s.User,
		&flashType,
		&flashText,
		&s.CreatedAt,
		&s.ExpiresAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("session", token)
		}
		return nil, fmt.Errorf("sqlite: getting session: %w", err)
	}

	if s.Expired() {
		// Lazy cleanup: the expired row is useless, drop it now.
		if err := db.DeleteSession(ctx, token); err != nil {
			return nil, err
		}
		return nil, apperror.NotFound("session", token)
	}

	if flashType != "" {
		s.Flash = &model.Flash{Type: flashType, Text: flashText}
	}

	return &s, nil
}

// UpdateSession persists the mutable session state (user and flash).
func (db *DB) UpdateSession(ctx context.Context, session *model.Session) error {
	flashType, flashText := flashColumns(session.Flash)

	result, err := db.conn.ExecContext(ctx,
		`UPDATE sessions SET username = ?, flash_type = ?, flash_text = ?
		 WHERE token = ?`,
		session.User,
		flashType,
		flashText,
		session.Token,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating session: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("session", session.Token)
	}

	return nil
}

// DeleteSession invalidates a session permanently. Deleting a token that is
// already gone is not an error.
func (db *DB) DeleteSession(ctx context.Context, token string) error {
	if _, err := db.conn.ExecContext(ctx,
		`DELETE FROM sessions WHERE token = ?`, token); err != nil {
		return fmt.Errorf("sqlite: deleting session: %w", err)
	}
	return nil
}

func flashColumns(f *model.Flash) (flashType, flashText string) {
	if f == nil {
		return "", ""
	}
	return f.Type, f.Text
}
