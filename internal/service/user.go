// Package service contains the business logic layer: validation, permission
// rules, and orchestration between handlers and repositories. Services accept
// plain values and return domain errors — they know nothing about HTTP.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/snippetshare/internal/apperror"
	"github.com/sakif/snippetshare/internal/auth"
	"github.com/sakif/snippetshare/internal/model"
	"github.com/sakif/snippetshare/internal/repository"
)

// UserService handles registration, login, and profile lookups.
type UserService struct {
	users     repository.UserRepository
	snippets  repository.SnippetRepository
	passwords *auth.PasswordService
	logger    *slog.Logger

	// dummyHash is verified against when a login names an unknown user,
	// so both failure paths pay the same bcrypt cost and the response
	// time doesn't reveal whether the username exists.
	dummyHash string
}

// NewUserService creates a UserService with all required dependencies.
func NewUserService(
	users repository.UserRepository,
	snippets repository.SnippetRepository,
	passwords *auth.PasswordService,
	logger *slog.Logger,
) *UserService {
	dummyHash, err := passwords.Hash("snippetshare-dummy-credential")
	if err != nil {
		// Hash only fails on >72-byte input; this constant is fine.
		dummyHash = ""
	}

	return &UserService{
		users:     users,
		snippets:  snippets,
		passwords: passwords,
		logger:    logger,
		dummyHash: dummyHash,
	}
}

// Register validates the input and creates a new account.
//
// Failure modes: ValidationError for a malformed username, short password,
// or mismatched confirmation; ConflictError when the username is taken. The
// existence pre-check gives the common case a clean message, and the UNIQUE
// index in the store catches the racing registration it can miss.
func (s *UserService) Register(ctx context.Context, username, password, confirmPassword string) (*model.User, error) {
	username = strings.TrimSpace(username)

	if password != confirmPassword {
		return nil, apperror.ValidationFailed("password", "The passwords do not match")
	}
	if verrs := model.ValidateUser(username, password); len(verrs) > 0 {
		return nil, verrs
	}

	if _, err := s.users.GetUserByUsername(ctx, username); err == nil {
		return nil, usernameTaken()
	} else if !errors.Is(err, apperror.ErrNotFound) {
		return nil, fmt.Errorf("service/user: checking username %s: %w", username, err)
	}

	hash, err := s.passwords.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("service/user: hashing password: %w", err)
	}

	user := &model.User{
		Username:     username,
		PasswordHash: hash,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, apperror.ErrConflict) {
			// Lost the race against a concurrent registration.
			return nil, usernameTaken()
		}
		return nil, fmt.Errorf("service/user: creating user %s: %w", username, err)
	}

	s.logger.Info("user registered", slog.String("username", user.Username))

	return user, nil
}

// Authenticate looks up the user and verifies the password.
//
// Both an unknown username and a wrong password return the same generic
// AuthError — nothing in the message or the timing says which one happened.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.users.GetUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			// Burn the same bcrypt cost as the found-user path.
			_ = s.passwords.Verify(s.dummyHash, password)
			return nil, apperror.InvalidLogin()
		}
		return nil, fmt.Errorf("service/user: looking up user: %w", err)
	}

	if err := s.passwords.Verify(user.PasswordHash, password); err != nil {
		return nil, apperror.InvalidLogin()
	}

	s.logger.Info("user authenticated", slog.String("username", user.Username))

	return user, nil
}

// Profile returns a user's public profile: the account and their snippets,
// newest first. Returns apperror.ErrNotFound when no such user exists.
func (s *UserService) Profile(ctx context.Context, username string) (*model.User, []model.Snippet, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, nil, err
	}

	snippets, err := s.snippets.ListByAuthor(ctx, user.Username)
	if err != nil {
		return nil, nil, fmt.Errorf("service/user: listing snippets for %s: %w", username, err)
	}

	return user, snippets, nil
}

func usernameTaken() *apperror.AppError {
	return &apperror.AppError{
		Err:     apperror.ErrConflict,
		Message: "That username is already taken!",
		Field:   "username",
	}
}
