package service

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/sakif/snippetshare/internal/apperror"
	"github.com/sakif/snippetshare/internal/auth"
	"github.com/sakif/snippetshare/internal/model"
	"github.com/sakif/snippetshare/internal/repository"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testPasswords() *auth.PasswordService {
	return auth.NewPasswordServiceForTest(4)
}

// memUserRepo is an in-memory UserRepository for service tests.
type memUserRepo struct {
	mu    sync.Mutex
	users map[string]model.User
}

var _ repository.UserRepository = (*memUserRepo)(nil)

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]model.User)}
}

func (r *memUserRepo) CreateUser(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[user.Username]; exists {
		return apperror.Conflict("user", user.Username)
	}

	user.ID = "user-" + strconv.Itoa(len(r.users)+1)
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.users[user.Username] = *user
	return nil
}

func (r *memUserRepo) GetUserByUsername(_ context.Context, username string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[username]
	if !ok {
		return nil, apperror.NotFound("user", username)
	}
	return &user, nil
}

// memSnippetRepo is an in-memory SnippetRepository for service tests.
type memSnippetRepo struct {
	mu       sync.Mutex
	seq      int
	snippets map[string]model.Snippet
}

var _ repository.SnippetRepository = (*memSnippetRepo)(nil)

func newMemSnippetRepo() *memSnippetRepo {
	return &memSnippetRepo{snippets: make(map[string]model.Snippet)}
}

func (r *memSnippetRepo) Create(_ context.Context, snippet *model.Snippet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	// Zero-padded so lexical order matches insertion order, like xid.
	snippet.ID = "snip-" + strconv.Itoa(100+r.seq)
	now := time.Now()
	snippet.CreatedAt = now
	snippet.UpdatedAt = now
	r.snippets[snippet.ID] = *snippet
	return nil
}

func (r *memSnippetRepo) GetByID(_ context.Context, id string) (*model.Snippet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	snippet, ok := r.snippets[id]
	if !ok {
		return nil, apperror.NotFound("snippet", id)
	}
	return &snippet, nil
}

func (r *memSnippetRepo) ListAll(_ context.Context) ([]model.Snippet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.sorted(func(model.Snippet) bool { return true }), nil
}

func (r *memSnippetRepo) ListByAuthor(_ context.Context, author string) ([]model.Snippet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.sorted(func(s model.Snippet) bool { return s.Author == author }), nil
}

// sorted returns matching snippets newest first. Callers hold r.mu.
func (r *memSnippetRepo) sorted(keep func(model.Snippet) bool) []model.Snippet {
	out := []model.Snippet{}
	for _, s := range r.snippets {
		if keep(s) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func (r *memSnippetRepo) Update(_ context.Context, snippet *model.Snippet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.snippets[snippet.ID]
	if !ok {
		return apperror.NotFound("snippet", snippet.ID)
	}

	existing.Title = snippet.Title
	existing.Description = snippet.Description
	existing.Language = snippet.Language
	existing.Content = snippet.Content
	existing.UpdatedAt = time.Now()
	r.snippets[snippet.ID] = existing
	return nil
}

func (r *memSnippetRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.snippets[id]; !ok {
		return apperror.NotFound("snippet", id)
	}
	delete(r.snippets, id)
	return nil
}
