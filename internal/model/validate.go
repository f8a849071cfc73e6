package model

import (
	"fmt"
	"regexp"

	"github.com/sakif/snippetshare/internal/apperror"
)

// Validation limits for the two entities. The snippet limits bound the form
// fields; the user limits bound registration input.
const (
	MinUsernameLength = 3
	MaxUsernameLength = 16
	MinPasswordLength = 10

	MaxTitleLength       = 50
	MaxDescriptionLength = 500
	MaxContentLength     = 1500
)

// usernamePattern accepts letters, digits, underscore and dash. The match is
// case-insensitive, but lookups and uniqueness work on the exact string the
// user registered with.
var usernamePattern = regexp.MustCompile(`(?i)^[a-z0-9_-]+$`)

// ValidateUser checks registration input and returns every field error found.
// A nil result means the input is valid. The plaintext password is only
// inspected for length — it is hashed before it reaches the store.
func ValidateUser(username, password string) apperror.ValidationErrors {
	var errs apperror.ValidationErrors

	if len(username) < MinUsernameLength || len(username) > MaxUsernameLength {
		errs = append(errs, apperror.FieldError{
			Field: "username",
			Message: fmt.Sprintf("The Username must be between %d-%d characters long",
				MinUsernameLength, MaxUsernameLength),
		})
	} else if !usernamePattern.MatchString(username) {
		errs = append(errs, apperror.FieldError{
			Field:   "username",
			Message: "Username must only contain alphanumeric characters underscore and dash",
		})
	}

	if len(password) < MinPasswordLength {
		errs = append(errs, apperror.FieldError{
			Field: "password",
			Message: fmt.Sprintf("The password must be of the minimum length of %d characters",
				MinPasswordLength),
		})
	}

	return errs
}

// ValidateSnippet checks the mutable snippet fields and returns every field
// error found. A nil result means the fields are valid. Create and Update
// both call this — the author and id are set by the system, never validated
// here.
func ValidateSnippet(title, description, language, content string) apperror.ValidationErrors {
	var errs apperror.ValidationErrors

	if len(title) < 1 || len(title) > MaxTitleLength {
		errs = append(errs, apperror.FieldError{
			Field:   "title",
			Message: fmt.Sprintf("The title must be between 1-%d characters long", MaxTitleLength),
		})
	}
	if len(description) < 1 || len(description) > MaxDescriptionLength {
		errs = append(errs, apperror.FieldError{
			Field:   "description",
			Message: fmt.Sprintf("The description must be between 1-%d characters long", MaxDescriptionLength),
		})
	}
	if !ValidLanguage(language) {
		errs = append(errs, apperror.FieldError{
			Field:   "language",
			Message: "The language must be one of: text, html, javascript, java",
		})
	}
	if len(content) < 1 || len(content) > MaxContentLength {
		errs = append(errs, apperror.FieldError{
			Field:   "content",
			Message: fmt.Sprintf("The snippet must be between 1-%d characters long", MaxContentLength),
		})
	}

	return errs
}
