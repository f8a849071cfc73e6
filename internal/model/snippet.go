package model

import "time"

// Snippet represents a shared piece of code text.
//
// Author is the username of the creator, copied at creation time. It is not
// re-validated against the users table on reads — deleting a user (which no
// exposed operation does) would leave the author value behind as-is.
type Snippet struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Language    string    `json:"language"`
	Content     string    `json:"content"`
	Author      string    `json:"author"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Languages is the fixed set of values accepted for Snippet.Language.
var Languages = []string{"text", "html", "javascript", "java"}

// ValidLanguage reports whether lang is one of the supported languages.
func ValidLanguage(lang string) bool {
	for _, l := range Languages {
		if lang == l {
			return true
		}
	}
	return false
}
