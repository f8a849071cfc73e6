package service

import (
	"context"
	"errors"
	"testing"

	"github.com/sakif/snippetshare/internal/apperror"
)

func newTestUserService() (*UserService, *memUserRepo, *memSnippetRepo) {
	users := newMemUserRepo()
	snippets := newMemSnippetRepo()
	svc := NewUserService(users, snippets, testPasswords(), discardLogger())
	return svc, users, snippets
}

func TestRegister(t *testing.T) {
	svc, _, _ := newTestUserService()

	user, err := svc.Register(context.Background(), "alice", "longenough123", "longenough123")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if user.Username != "alice" {
		t.Errorf("Username = %q, want %q", user.Username, "alice")
	}
	if user.PasswordHash == "" || user.PasswordHash == "longenough123" {
		t.Error("password was not hashed")
	}
}

func TestRegister_TrimsUsername(t *testing.T) {
	svc, _, _ := newTestUserService()

	user, err := svc.Register(context.Background(), "  alice  ", "longenough123", "longenough123")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if user.Username != "alice" {
		t.Errorf("Username = %q, want trimmed %q", user.Username, "alice")
	}
}

func TestRegister_PasswordMismatch(t *testing.T) {
	svc, _, _ := newTestUserService()

	_, err := svc.Register(context.Background(), "alice", "longenough123", "different12345")
	if !errors.Is(err, apperror.ErrValidation) {
		t.Fatalf("error = %v, want ErrValidation", err)
	}

	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || appErr.Message != "The passwords do not match" {
		t.Errorf("error = %v, want the mismatch message", err)
	}
}

func TestRegister_InvalidInput(t *testing.T) {
	svc, _, _ := newTestUserService()

	cases := []struct {
		name     string
		username string
		password string
	}{
		{"username too short", "ab", "longenough123"},
		{"username has illegal characters", "bad name!", "longenough123"},
		{"password too short", "alice", "nine-char"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tc.username, tc.password, tc.password)
			if !errors.Is(err, apperror.ErrValidation) {
				t.Errorf("error = %v, want ErrValidation", err)
			}
		})
	}
}

func TestRegister_UsernameTaken(t *testing.T) {
	svc, _, _ := newTestUserService()

	if _, err := svc.Register(context.Background(), "alice", "longenough123", "longenough123"); err != nil {
		t.Fatalf("first Register() error = %v", err)
	}

	_, err := svc.Register(context.Background(), "alice", "otherpassword1", "otherpassword1")
	if !errors.Is(err, apperror.ErrConflict) {
		t.Fatalf("error = %v, want ErrConflict", err)
	}

	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || appErr.Message != "That username is already taken!" {
		t.Errorf("error = %v, want the taken-username message", err)
	}
}

func TestAuthenticate(t *testing.T) {
	svc, _, _ := newTestUserService()

	if _, err := svc.Register(context.Background(), "alice", "longenough123", "longenough123"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	user, err := svc.Authenticate(context.Background(), "alice", "longenough123")
	if err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}
	if user.Username != "alice" {
		t.Errorf("Username = %q, want %q", user.Username, "alice")
	}
}

func TestAuthenticate_FailuresAreIndistinguishable(t *testing.T) {
	svc, _, _ := newTestUserService()

	if _, err := svc.Register(context.Background(), "alice", "longenough123", "longenough123"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	// Wrong password for a real user and any password for a missing user
	// must produce the same error value.
	_, wrongPass := svc.Authenticate(context.Background(), "alice", "not-the-password")
	_, noUser := svc.Authenticate(context.Background(), "mallory", "whatever-at-all")

	for name, err := range map[string]error{"wrong password": wrongPass, "unknown user": noUser} {
		if !errors.Is(err, apperror.ErrAuth) {
			t.Errorf("%s: error = %v, want ErrAuth", name, err)
		}
	}
	if wrongPass.Error() != noUser.Error() {
		t.Errorf("messages differ: %q vs %q", wrongPass, noUser)
	}
}

func TestProfile(t *testing.T) {
	svc, _, snippets := newTestUserService()

	if _, err := svc.Register(context.Background(), "alice", "longenough123", "longenough123"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	snippetSvc := NewSnippetService(snippets, discardLogger())
	if _, err := snippetSvc.Create(context.Background(), "mine", "d", "text", "c", "alice"); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := snippetSvc.Create(context.Background(), "theirs", "d", "text", "c", "bob"); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	user, list, err := svc.Profile(context.Background(), "alice")
	if err != nil {
		t.Fatalf("Profile() error = %v", err)
	}
	if user.Username != "alice" {
		t.Errorf("Username = %q, want %q", user.Username, "alice")
	}
	if len(list) != 1 || list[0].Title != "mine" {
		t.Errorf("snippets = %v, want only alice's", list)
	}
}

func TestProfile_UnknownUser(t *testing.T) {
	svc, _, _ := newTestUserService()

	_, _, err := svc.Profile(context.Background(), "nobody")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}
