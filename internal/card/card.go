// Package card models the per-prompt dialog flow as a small state machine.
//
// Each prompt card on the library page moves through four states:
//
//	Collapsed → Viewing ⇄ Editing → ConfirmDiscard → Collapsed
//
// with a dirty flag tracking unsaved edits. The rules:
//
//   - Opening an existing card goes to Viewing; the "create new" card opens
//     straight into Editing.
//   - Any field change or tag toggle while Editing sets the dirty flag.
//   - Closing while dirty asks for confirmation (ConfirmDiscard); confirming
//     reverts the draft to the last-saved values before closing.
//   - A successful save commits the draft, clears the dirty flag and closes;
//     a failed save keeps the dialog open with the draft and flag intact so
//     the user can retry.
//
// The machine is pure and deterministic: no I/O, no clocks. Persistence is
// injected into Save as a callback, the same way services receive repository
// interfaces. Events that are invalid in the current state are ignored, the
// way a UI toolkit drops stray clicks.
package card

import "slices"

// State is the dialog state of a single card.
type State int

const (
	// Collapsed: the card is closed, showing only its summary.
	Collapsed State = iota
	// Viewing: the dialog is open on the read-only tab.
	Viewing
	// Editing: the dialog is open on the edit tab.
	Editing
	// ConfirmDiscard: the user tried to close with unsaved edits and is
	// being asked whether to discard them.
	ConfirmDiscard
)

// String returns the state name for logs and test failure messages.
func (s State) String() string {
	switch s {
	case Collapsed:
		return "collapsed"
	case Viewing:
		return "viewing"
	case Editing:
		return "editing"
	case ConfirmDiscard:
		return "confirm-discard"
	}
	return "unknown"
}

// Fields holds the editable content of a card.
type Fields struct {
	Title       string
	Description string
	Tags        []string
}

// clone copies f deeply enough that draft edits never alias saved state.
func (f Fields) clone() Fields {
	f.Tags = slices.Clone(f.Tags)
	return f
}

// Card is the state machine for one prompt card.
//
// saved always holds the last persisted values; draft is what the edit form
// shows. They only converge on a successful Save or a confirmed discard.
type Card struct {
	state State
	saved Fields
	draft Fields
	dirty bool
	isNew bool
}

// New returns a card for an existing prompt, starting Collapsed.
func New(saved Fields) *Card {
	return &Card{
		state: Collapsed,
		saved: saved.clone(),
		draft: saved.clone(),
	}
}

// NewBlank returns the "create new" card: empty fields, starting Collapsed,
// opening straight into Editing.
func NewBlank() *Card {
	c := New(Fields{})
	c.isNew = true
	return c
}

// State returns the current dialog state.
func (c *Card) State() State { return c.state }

// Dirty reports whether the draft has unsaved edits.
func (c *Card) Dirty() bool { return c.dirty }

// Draft returns a copy of the current form values.
func (c *Card) Draft() Fields { return c.draft.clone() }

// Saved returns a copy of the last persisted values.
func (c *Card) Saved() Fields { return c.saved.clone() }

// Open opens the dialog: Viewing for an existing card, Editing for the
// "create new" card. Ignored unless the card is Collapsed.
func (c *Card) Open() {
	if c.state != Collapsed {
		return
	}
	if c.isNew {
		c.state = Editing
		return
	}
	c.state = Viewing
}

// StartEdit switches from the read-only tab to the edit tab.
func (c *Card) StartEdit() {
	if c.state != Viewing {
		return
	}
	c.state = Editing
}

// SetTitle updates the draft title. Only meaningful while Editing; marks the
// card dirty when the value actually changes.
func (c *Card) SetTitle(title string) {
	if c.state != Editing || c.draft.Title == title {
		return
	}
	c.draft.Title = title
	c.dirty = true
}

// SetDescription updates the draft description.
func (c *Card) SetDescription(description string) {
	if c.state != Editing || c.draft.Description == description {
		return
	}
	c.draft.Description = description
	c.dirty = true
}

// ToggleTag adds the tag to the draft if absent, removes it if present,
// preserving the order of the remaining tags. Marks the card dirty.
func (c *Card) ToggleTag(tag string) {
	if c.state != Editing || tag == "" {
		return
	}
	if i := slices.Index(c.draft.Tags, tag); i >= 0 {
		c.draft.Tags = slices.Delete(c.draft.Tags, i, i+1)
	} else {
		c.draft.Tags = append(c.draft.Tags, tag)
	}
	c.dirty = true
}

// RequestClose is the user clicking the close button. With unsaved edits it
// moves to ConfirmDiscard instead of closing; otherwise the dialog closes
// immediately.
func (c *Card) RequestClose() {
	switch c.state {
	case Viewing:
		c.state = Collapsed
	case Editing:
		if c.dirty {
			c.state = ConfirmDiscard
			return
		}
		c.state = Collapsed
	}
}

// DiscardChanges confirms the discard prompt: the draft reverts to the
// last-saved values, the dirty flag clears, and the dialog closes.
func (c *Card) DiscardChanges() {
	if c.state != ConfirmDiscard {
		return
	}
	c.draft = c.saved.clone()
	c.dirty = false
	c.state = Collapsed
}

// KeepEditing cancels the discard prompt and returns to the edit tab with
// the draft intact.
func (c *Card) KeepEditing() {
	if c.state != ConfirmDiscard {
		return
	}
	c.state = Editing
}

// Save persists the draft through the given callback (typically a closure
// over the prompt service's create or update call).
//
// On success the draft becomes the saved state, the dirty flag clears, and
// the dialog closes. On failure the card stays in Editing with the draft and
// dirty flag intact, and the error is returned for the caller to surface.
func (c *Card) Save(persist func(Fields) error) error {
	if c.state != Editing {
		return nil
	}
	if err := persist(c.draft.clone()); err != nil {
		return err
	}
	c.saved = c.draft.clone()
	c.dirty = false
	c.state = Collapsed
	return nil
}
