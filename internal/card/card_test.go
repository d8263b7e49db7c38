package card

import (
	"errors"
	"slices"
	"testing"
)

func existingCard() *Card {
	return New(Fields{
		Title:       "Aiven",
		Description: "desc",
		Tags:        []string{"Edge", "Engineer"},
	})
}

func TestOpenExistingGoesToViewing(t *testing.T) {
	c := existingCard()
	if c.State() != Collapsed {
		t.Fatalf("initial state = %s, want collapsed", c.State())
	}

	c.Open()
	if c.State() != Viewing {
		t.Errorf("state after Open = %s, want viewing", c.State())
	}
}

func TestOpenBlankGoesToEditing(t *testing.T) {
	c := NewBlank()

	c.Open()
	if c.State() != Editing {
		t.Errorf("state after Open = %s, want editing", c.State())
	}
	if c.Dirty() {
		t.Error("blank card is dirty before any edit")
	}
}

func TestStartEdit(t *testing.T) {
	c := existingCard()
	c.Open()

	c.StartEdit()
	if c.State() != Editing {
		t.Errorf("state = %s, want editing", c.State())
	}

	// The draft starts as a copy of the saved values.
	draft := c.Draft()
	if draft.Title != "Aiven" || !slices.Equal(draft.Tags, []string{"Edge", "Engineer"}) {
		t.Errorf("draft = %+v, want copy of saved fields", draft)
	}
}

func TestEditsMarkDirty(t *testing.T) {
	c := existingCard()
	c.Open()
	c.StartEdit()

	c.SetTitle("Aiven v2")
	if !c.Dirty() {
		t.Error("SetTitle did not mark the card dirty")
	}

	c = existingCard()
	c.Open()
	c.StartEdit()
	c.SetDescription("new desc")
	if !c.Dirty() {
		t.Error("SetDescription did not mark the card dirty")
	}

	c = existingCard()
	c.Open()
	c.StartEdit()
	c.ToggleTag("Golang")
	if !c.Dirty() {
		t.Error("ToggleTag did not mark the card dirty")
	}
}

func TestSetTitleSameValueStaysClean(t *testing.T) {
	c := existingCard()
	c.Open()
	c.StartEdit()

	c.SetTitle("Aiven")
	if c.Dirty() {
		t.Error("setting the title to its current value marked the card dirty")
	}
}

func TestToggleTag(t *testing.T) {
	c := existingCard()
	c.Open()
	c.StartEdit()

	c.ToggleTag("Golang")
	if got := c.Draft().Tags; !slices.Equal(got, []string{"Edge", "Engineer", "Golang"}) {
		t.Errorf("tags after add = %v", got)
	}

	c.ToggleTag("Edge")
	if got := c.Draft().Tags; !slices.Equal(got, []string{"Engineer", "Golang"}) {
		t.Errorf("tags after remove = %v, want order preserved", got)
	}
}

func TestRequestCloseCleanClosesImmediately(t *testing.T) {
	c := existingCard()
	c.Open()
	c.StartEdit()

	c.RequestClose()
	if c.State() != Collapsed {
		t.Errorf("state = %s, want collapsed (no unsaved edits)", c.State())
	}
}

func TestRequestCloseDirtyAsksToConfirm(t *testing.T) {
	c := existingCard()
	c.Open()
	c.StartEdit()
	c.SetTitle("changed")

	c.RequestClose()
	if c.State() != ConfirmDiscard {
		t.Errorf("state = %s, want confirm-discard", c.State())
	}
}

func TestDiscardChangesRevertsDraft(t *testing.T) {
	c := existingCard()
	c.Open()
	c.StartEdit()
	c.SetTitle("changed")
	c.ToggleTag("Golang")
	c.RequestClose()

	c.DiscardChanges()
	if c.State() != Collapsed {
		t.Errorf("state = %s, want collapsed", c.State())
	}
	if c.Dirty() {
		t.Error("card still dirty after discard")
	}
	draft := c.Draft()
	if draft.Title != "Aiven" || !slices.Equal(draft.Tags, []string{"Edge", "Engineer"}) {
		t.Errorf("draft = %+v, want reverted to saved values", draft)
	}
}

func TestKeepEditingReturnsWithDraftIntact(t *testing.T) {
	c := existingCard()
	c.Open()
	c.StartEdit()
	c.SetTitle("changed")
	c.RequestClose()

	c.KeepEditing()
	if c.State() != Editing {
		t.Errorf("state = %s, want editing", c.State())
	}
	if !c.Dirty() {
		t.Error("dirty flag cleared by KeepEditing")
	}
	if c.Draft().Title != "changed" {
		t.Errorf("draft title = %q, want %q", c.Draft().Title, "changed")
	}
}

func TestSaveCommitsAndCloses(t *testing.T) {
	c := existingCard()
	c.Open()
	c.StartEdit()
	c.SetDescription("new desc")

	var persisted Fields
	err := c.Save(func(f Fields) error {
		persisted = f
		return nil
	})
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if persisted.Description != "new desc" {
		t.Errorf("persisted description = %q, want the draft value", persisted.Description)
	}
	if c.State() != Collapsed {
		t.Errorf("state = %s, want collapsed after save", c.State())
	}
	if c.Dirty() {
		t.Error("card still dirty after save")
	}
	if c.Saved().Description != "new desc" {
		t.Errorf("saved description = %q, draft was not committed", c.Saved().Description)
	}
}

func TestSaveFailureKeepsEditing(t *testing.T) {
	c := existingCard()
	c.Open()
	c.StartEdit()
	c.SetTitle("changed")

	wantErr := errors.New("store unavailable")
	err := c.Save(func(Fields) error { return wantErr })
	if !errors.Is(err, wantErr) {
		t.Fatalf("Save() error = %v, want the persist error", err)
	}

	if c.State() != Editing {
		t.Errorf("state = %s, want editing after failed save", c.State())
	}
	if !c.Dirty() {
		t.Error("dirty flag cleared by failed save")
	}
	if c.Draft().Title != "changed" {
		t.Errorf("draft title = %q, draft lost by failed save", c.Draft().Title)
	}
	if c.Saved().Title != "Aiven" {
		t.Errorf("saved title = %q, failed save mutated saved state", c.Saved().Title)
	}
}

// Events that make no sense in the current state are dropped silently.
func TestInvalidEventsAreIgnored(t *testing.T) {
	c := existingCard()

	// Everything while Collapsed except Open is a no-op.
	c.StartEdit()
	c.SetTitle("x")
	c.ToggleTag("x")
	c.RequestClose()
	c.DiscardChanges()
	c.KeepEditing()
	if err := c.Save(func(Fields) error { t.Error("persist called while collapsed"); return nil }); err != nil {
		t.Errorf("Save() error = %v, want nil no-op", err)
	}
	if c.State() != Collapsed || c.Dirty() {
		t.Errorf("state = %s dirty = %v, want untouched collapsed card", c.State(), c.Dirty())
	}

	// Field edits while Viewing are ignored.
	c.Open()
	c.SetTitle("x")
	if c.Dirty() || c.Draft().Title != "Aiven" {
		t.Error("SetTitle mutated the draft while viewing")
	}

	// Opening an already-open card is a no-op.
	c.Open()
	if c.State() != Viewing {
		t.Errorf("state = %s, want viewing", c.State())
	}
}

// Mutating the Fields passed to New must not leak into the card.
func TestFieldsAreCopied(t *testing.T) {
	tags := []string{"Edge"}
	c := New(Fields{Title: "t", Tags: tags})
	tags[0] = "mutated"

	if c.Saved().Tags[0] != "Edge" {
		t.Error("card aliases the caller's tag slice")
	}

	// And the copy returned by Draft must not alias internal state.
	c.Open()
	c.StartEdit()
	draft := c.Draft()
	draft.Tags[0] = "mutated"
	if c.Draft().Tags[0] != "Edge" {
		t.Error("Draft() returned an aliased tag slice")
	}
}
