package model

import "time"

// ChangeType identifies what kind of edit a ChangeHistory row records.
//
// The set is closed: create, update, delete. The app currently never deletes
// prompts, but "delete" stays part of the declared enum so the audit trail
// format doesn't change if a deletion flow is added.
type ChangeType string

const (
	ChangeCreate ChangeType = "create"
	ChangeUpdate ChangeType = "update"
	ChangeDelete ChangeType = "delete"
)

// Valid reports whether t is one of the declared change types.
func (t ChangeType) Valid() bool {
	switch t {
	case ChangeCreate, ChangeUpdate, ChangeDelete:
		return true
	}
	return false
}

// ChangeHistory is one row of the append-only audit trail. A row is written
// after every successful prompt create or update and is never mutated.
//
// PromptID is nullable in the schema (ON DELETE SET NULL) — an empty string
// here means the referenced prompt no longer exists. UserName and PromptTitle
// are LEFT JOIN artifacts filled in by the repository for display; both
// tolerate the referenced row being absent.
type ChangeHistory struct {
	ID                string     `json:"id"`
	PromptID          string     `json:"promptId,omitempty"`
	UserID            string     `json:"userId"`
	ChangeType        ChangeType `json:"changeType"`
	ChangeDescription string     `json:"changeDescription"`
	CreatedAt         time.Time  `json:"createdAt"`

	// Join artifacts, empty when the referenced row is gone.
	UserName    string `json:"userName,omitempty"`
	PromptTitle string `json:"promptTitle,omitempty"`
}
