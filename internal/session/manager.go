// Package session implements server-side sessions keyed by an opaque cookie
// token.
//
// The cookie carries only the token; the username and any pending flash
// message live in the session store. That is what makes logout real: deleting
// the stored row invalidates the session immediately, no matter what cookie
// a client keeps replaying.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/sakif/snippetshare/internal/apperror"
	"github.com/sakif/snippetshare/internal/model"
	"github.com/sakif/snippetshare/internal/repository"
)

// DefaultLifetime is how long a session lives after creation.
const DefaultLifetime = 24 * time.Hour

// cookieName identifies the session cookie.
const cookieName = "snippet_session"

// Manager loads, mutates, and persists sessions. Every mutation is written
// through to the store immediately, so a handler crash after SetFlash cannot
// lose the message.
type Manager struct {
	store    repository.SessionRepository
	logger   *slog.Logger
	lifetime time.Duration
}

// NewManager creates a Manager with the default 24-hour session lifetime.
func NewManager(store repository.SessionRepository, logger *slog.Logger) *Manager {
	return &Manager{
		store:    store,
		logger:   logger,
		lifetime: DefaultLifetime,
	}
}

// NewManagerWithLifetime creates a Manager with a custom lifetime. Used by
// tests to exercise expiry without waiting a day.
func NewManagerWithLifetime(store repository.SessionRepository, logger *slog.Logger, lifetime time.Duration) *Manager {
	return &Manager{
		store:    store,
		logger:   logger,
		lifetime: lifetime,
	}
}

// Load returns the session for the request's cookie, creating a fresh empty
// session (and setting its cookie on w) when the cookie is missing, unknown,
// or expired.
func (m *Manager) Load(ctx context.Context, w http.ResponseWriter, r *http.Request) (*model.Session, error) {
	cookie, err := r.Cookie(cookieName)
	if err == nil && cookie.Value != "" {
		sess, err := m.store.GetSession(ctx, cookie.Value)
		if err == nil {
			return sess, nil
		}
		if !errors.Is(err, apperror.ErrNotFound) {
			return nil, fmt.Errorf("session: loading session: %w", err)
		}
		// Unknown or expired token — fall through and start over.
	}

	return m.create(ctx, w)
}

// create makes a new empty session, persists it, and sets the cookie.
func (m *Manager) create(ctx context.Context, w http.ResponseWriter) (*model.Session, error) {
	token, err := newToken()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	sess := &model.Session{
		Token:     token,
		CreatedAt: now,
		ExpiresAt: now.Add(m.lifetime),
	}
	if err := m.store.CreateSession(ctx, sess); err != nil {
		return nil, fmt.Errorf("session: creating session: %w", err)
	}

	m.setCookie(w, sess)

	return sess, nil
}

// SetUser attaches the logged-in username to the session.
func (m *Manager) SetUser(ctx context.Context, sess *model.Session, username string) error {
	sess.User = username
	if err := m.store.UpdateSession(ctx, sess); err != nil {
		return fmt.Errorf("session: setting user: %w", err)
	}
	return nil
}

// ClearUser detaches the logged-in user without destroying the session.
func (m *Manager) ClearUser(ctx context.Context, sess *model.Session) error {
	sess.User = ""
	if err := m.store.UpdateSession(ctx, sess); err != nil {
		return fmt.Errorf("session: clearing user: %w", err)
	}
	return nil
}

// Destroy invalidates the session entirely: the stored row is deleted and a
// brand-new anonymous session (with a new cookie) replaces it. The fresh
// session is returned so the caller can queue a flash message that survives
// the logout redirect.
func (m *Manager) Destroy(ctx context.Context, w http.ResponseWriter, sess *model.Session) (*model.Session, error) {
	if err := m.store.DeleteSession(ctx, sess.Token); err != nil {
		return nil, fmt.Errorf("session: destroying session: %w", err)
	}

	m.logger.Info("session destroyed", slog.String("user", sess.User))

	return m.create(ctx, w)
}

// SetFlash queues a one-shot notification on the session. At most one flash
// is pending at a time; a new one replaces whatever was there.
func (m *Manager) SetFlash(ctx context.Context, sess *model.Session, flashType, text string) error {
	sess.Flash = &model.Flash{Type: flashType, Text: text}
	if err := m.store.UpdateSession(ctx, sess); err != nil {
		return fmt.Errorf("session: setting flash: %w", err)
	}
	return nil
}

// TakeFlash returns the pending flash message and removes it from the
// session, so it renders exactly once. Returns nil when nothing is pending.
func (m *Manager) TakeFlash(ctx context.Context, sess *model.Session) (*model.Flash, error) {
	if sess.Flash == nil {
		return nil, nil
	}

	flash := sess.Flash
	sess.Flash = nil
	if err := m.store.UpdateSession(ctx, sess); err != nil {
		return nil, fmt.Errorf("session: taking flash: %w", err)
	}

	return flash, nil
}

func (m *Manager) setCookie(w http.ResponseWriter, sess *model.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    sess.Token,
		Path:     "/",
		MaxAge:   int(m.lifetime.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// newToken returns 32 bytes of crypto/rand entropy, hex encoded. The token
// is the only secret tying a browser to its session, so it must be
// unguessable.
func newToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("session: generating token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
