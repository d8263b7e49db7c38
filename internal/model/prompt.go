// Package model defines the data structures used throughout the application.
// In Go, we use structs to represent our data — similar to classes in other languages,
// but without inheritance. Go favours composition over inheritance.
package model

import "time"

// Prompt is the core content entity of the library: a reusable prompt with a
// title, a longer description, and a set of tags for filtering.
//
// Tags are an ordered set of strings — duplicates removed, first occurrence
// order preserved. The service layer normalizes them once at the boundary;
// everywhere else in the app they can be trusted to already be canonical.
// The repository stores them as a JSON array in a single TEXT column.
//
// AuthorName and AuthorAvatarURL are join artifacts: the repository fills
// them from the users table when listing or fetching prompts, so the API can
// return author display data without a second query. They are never written
// back to the prompts table.
type Prompt struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	AuthorID    string    `json:"authorId"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	// Populated by LEFT JOIN on users; empty if the author row is missing.
	AuthorName      string `json:"authorName,omitempty"`
	AuthorAvatarURL string `json:"avatarUrl,omitempty"`
}
