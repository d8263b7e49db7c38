package repository

import (
	"context"

	"github.com/sakif/prompt-library/internal/model"
)

// PromptRepository is the storage interface for prompts.
//
// List and GetByID return prompts with the author's username and avatar
// joined in (LEFT JOIN — tolerant of a missing author row). There is no
// pagination: the library is small and tag filtering happens client-side
// over the full result set.
type PromptRepository interface {
	Create(ctx context.Context, prompt *model.Prompt) error
	GetByID(ctx context.Context, id string) (*model.Prompt, error)
	List(ctx context.Context) ([]model.Prompt, error)
	Update(ctx context.Context, prompt *model.Prompt) error
}

// UserRepository is the storage interface for user accounts.
type UserRepository interface {
	// Upsert inserts the user on first login and refreshes username, email
	// and avatar on subsequent logins, keyed by GitHubID. Fills in ID and
	// timestamps on the passed value.
	Upsert(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id string) (*model.User, error)
}

// HistoryRepository is the storage interface for the append-only audit trail.
//
// Method names carry the History suffix because the SQLite backend implements
// all repository interfaces on one type and plain List is taken by prompts.
type HistoryRepository interface {
	// Append writes one audit row. Rows are never updated or deleted.
	Append(ctx context.Context, entry *model.ChangeHistory) error
	// ListHistory returns all audit rows newest-first, with user name and
	// prompt title joined in where the referenced rows still exist.
	ListHistory(ctx context.Context) ([]model.ChangeHistory, error)
}

// TagRepository is the storage interface for the tag catalog.
type TagRepository interface {
	// RecordTags ensures every name exists in the catalog. Existing names
	// are left untouched.
	RecordTags(ctx context.Context, names []string) error
	ListTags(ctx context.Context) ([]model.Tag, error)
}
