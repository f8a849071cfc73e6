// Package repository declares the persistence interfaces the service layer
// depends on. The sqlite subpackage provides the real implementation; tests
// substitute in-memory mocks.
package repository

import (
	"context"

	"github.com/sakif/snippetshare/internal/model"
)

// UserRepository persists account records. Usernames are unique at the store
// level — CreateUser fails with a conflict when the username is already
// taken, even if two registrations race past any earlier existence check.
type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
}

// SnippetRepository persists snippet records.
//
// ListAll and ListByAuthor return snippets newest-first with a deterministic
// tiebreak, so repeated listings see the same order.
type SnippetRepository interface {
	Create(ctx context.Context, snippet *model.Snippet) error
	GetByID(ctx context.Context, id string) (*model.Snippet, error)
	ListAll(ctx context.Context) ([]model.Snippet, error)
	ListByAuthor(ctx context.Context, author string) ([]model.Snippet, error)
	Update(ctx context.Context, snippet *model.Snippet) error
	Delete(ctx context.Context, id string) error
}

// SessionRepository persists session state keyed by the opaque cookie token.
// GetSession treats expired sessions as absent. DeleteSession is a no-op
// when the token does not exist — destroying an already-gone session is not
// an error.
type SessionRepository interface {
	CreateSession(ctx context.Context, session *model.Session) error
	GetSession(ctx context.Context, token string) (*model.Session, error)
	UpdateSession(ctx context.Context, session *model.Session) error
	DeleteSession(ctx context.Context, token string) error
}
