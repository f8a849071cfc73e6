package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/sakif/snippetshare/internal/apperror"
	"github.com/sakif/snippetshare/internal/model"
)

// newTestDB opens a fresh in-memory database for one test.
func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func createTestUser(t *testing.T, db *DB, username string) *model.User {
	t.Helper()
	user := &model.User{Username: username, PasswordHash: "$2a$04$fakehashfortesting"}
	if err := db.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

func TestCreateUser(t *testing.T) {
	db := newTestDB(t)

	user := &model.User{Username: "alice", PasswordHash: "$2a$04$somehash"}
	if err := db.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}

	if user.ID == "" {
		t.Error("CreateUser() did not set user.ID")
	}
	if user.CreatedAt.IsZero() || user.UpdatedAt.IsZero() {
		t.Error("CreateUser() did not set timestamps")
	}
}

func TestCreateUser_DuplicateUsername(t *testing.T) {
	db := newTestDB(t)
	createTestUser(t, db, "alice")

	dup := &model.User{Username: "alice", PasswordHash: "$2a$04$otherhash"}
	err := db.CreateUser(context.Background(), dup)
	if err == nil {
		t.Fatal("CreateUser() should fail for a duplicate username")
	}
	if !errors.Is(err, apperror.ErrConflict) {
		t.Errorf("error = %v, want ErrConflict", err)
	}

	// Exactly one alice exists afterwards.
	found, err := db.GetUserByUsername(context.Background(), "alice")
	if err != nil {
		t.Fatalf("GetUserByUsername() error = %v", err)
	}
	if found.PasswordHash != "$2a$04$fakehashfortesting" {
		t.Error("the original user was overwritten by the duplicate insert")
	}
}

func TestGetUserByUsername(t *testing.T) {
	db := newTestDB(t)
	created := createTestUser(t, db, "bob")

	found, err := db.GetUserByUsername(context.Background(), "bob")
	if err != nil {
		t.Fatalf("GetUserByUsername() error = %v", err)
	}
	if found.ID != created.ID {
		t.Errorf("ID = %q, want %q", found.ID, created.ID)
	}
	if found.Username != "bob" {
		t.Errorf("Username = %q, want %q", found.Username, "bob")
	}
}

func TestGetUserByUsername_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.GetUserByUsername(context.Background(), "nobody")
	if err == nil {
		t.Fatal("GetUserByUsername() should error for an unknown username")
	}
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestGetUserByUsername_ExactMatch(t *testing.T) {
	db := newTestDB(t)
	createTestUser(t, db, "alice")

	// Lookups are exact-string: a different casing is a different name.
	if _, err := db.GetUserByUsername(context.Background(), "Alice"); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("lookup with different casing: error = %v, want ErrNotFound", err)
	}
}
