package model

import "time"

// Tag is a catalog entry for a tag name that has appeared on at least one
// prompt. The catalog backs the filter bar on the library page — it lets the
// UI offer every known tag without scanning all prompts.
//
// Names are unique. Rows are inserted lazily as a side effect of prompt
// create/update and never removed, even if the last prompt using a tag drops it.
type Tag struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}
