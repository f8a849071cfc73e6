package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/snippetshare/internal/apperror"
	"github.com/sakif/snippetshare/internal/model"
	"github.com/sakif/snippetshare/internal/repository"
)

// SnippetService handles business logic for snippets: validation and CRUD
// orchestration. Ownership checks live in the authorization guards, not
// here — by the time Update or Delete runs, the caller has already been
// established as the owner.
type SnippetService struct {
	repo   repository.SnippetRepository
	logger *slog.Logger
}

// NewSnippetService creates a SnippetService.
func NewSnippetService(repo repository.SnippetRepository, logger *slog.Logger) *SnippetService {
	return &SnippetService{
		repo:   repo,
		logger: logger,
	}
}

// Create validates and saves a new snippet for the given author.
//
// Title and description are trimmed; content is stored exactly as submitted
// because leading/trailing whitespace can be meaningful in code. The author
// is copied onto the snippet and never changes afterwards.
func (s *SnippetService) Create(ctx context.Context, title, description, language, content, author string) (*model.Snippet, error) {
	if author == "" {
		return nil, apperror.Forbidden("you must be logged in to create a snippet")
	}

	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)

	if verrs := model.ValidateSnippet(title, description, language, content); len(verrs) > 0 {
		return nil, verrs
	}

	snippet := &model.Snippet{
		Title:       title,
		Description: description,
		Language:    language,
		Content:     content,
		Author:      author,
	}
	if err := s.repo.Create(ctx, snippet); err != nil {
		s.logger.Error("failed to create snippet",
			slog.String("title", title),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating snippet: %w", err)
	}

	s.logger.Info("snippet created",
		slog.String("id", snippet.ID),
		slog.String("author", snippet.Author),
	)

	return snippet, nil
}

// GetByID retrieves a snippet by its ID.
// Returns apperror.ErrNotFound if the snippet doesn't exist.
func (s *SnippetService) GetByID(ctx context.Context, id string) (*model.Snippet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "snippet ID is required")
	}

	return s.repo.GetByID(ctx, id)
}

// ListAll returns every snippet, newest first.
func (s *SnippetService) ListAll(ctx context.Context) ([]model.Snippet, error) {
	snippets, err := s.repo.ListAll(ctx)
	if err != nil {
		s.logger.Error("failed to list snippets", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing snippets: %w", err)
	}
	return snippets, nil
}

// ListByAuthor returns the snippets created by the given username, newest
// first. An unknown username yields an empty list, not an error.
func (s *SnippetService) ListByAuthor(ctx context.Context, author string) ([]model.Snippet, error) {
	snippets, err := s.repo.ListByAuthor(ctx, author)
	if err != nil {
		s.logger.Error("failed to list snippets by author",
			slog.String("author", author),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("listing snippets by author: %w", err)
	}
	return snippets, nil
}

// Update replaces the mutable fields of an existing snippet. This is a full
// replacement of title, description, language, and content — id, author, and
// created_at are immutable. Concurrent updates are last-write-wins; there is
// no conflict detection at this scale.
func (s *SnippetService) Update(ctx context.Context, id, title, description, language, content string) (*model.Snippet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "snippet ID is required")
	}

	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)

	if verrs := model.ValidateSnippet(title, description, language, content); len(verrs) > 0 {
		return nil, verrs
	}

	// Fetch first so a missing snippet surfaces as NotFound before any
	// write, and so the returned value carries the untouched fields.
	snippet, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	snippet.Title = title
	snippet.Description = description
	snippet.Language = language
	snippet.Content = content

	if err := s.repo.Update(ctx, snippet); err != nil {
		s.logger.Error("failed to update snippet",
			slog.String("id", id),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("updating snippet: %w", err)
	}

	s.logger.Info("snippet updated", slog.String("id", snippet.ID))

	return snippet, nil
}

// Delete permanently removes a snippet by its ID.
// Returns apperror.ErrNotFound if the snippet doesn't exist.
func (s *SnippetService) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return apperror.ValidationFailed("id", "snippet ID is required")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("snippet deleted", slog.String("id", id))
	return nil
}
