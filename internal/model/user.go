// Package model defines the data structures used throughout the application.
package model

import "time"

// User represents a registered account.
//
// Username is the public identity: snippets reference their author by
// username, and the session stores the logged-in username. It is immutable
// after registration and globally unique (enforced by a UNIQUE index in the
// store).
//
// PasswordHash holds the bcrypt hash of the password. The plaintext is never
// stored and never leaves the registration/login request.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
