package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/sakif/prompt-library/internal/apperror"
	"github.com/sakif/prompt-library/internal/model"
)

func TestUserUpsert_Insert(t *testing.T) {
	db := newTestDB(t)

	user := &model.User{
		GitHubID:  42,
		Username:  "alice",
		Email:     "alice@example.com",
		AvatarURL: "https://avatars.example/alice",
	}

	if err := db.Upsert(context.Background(), user); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	if user.ID == "" {
		t.Error("Upsert() did not set user.ID")
	}
	if user.CreatedAt.IsZero() {
		t.Error("Upsert() did not set user.CreatedAt")
	}

	found, err := db.GetUserByID(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("GetUserByID() error = %v", err)
	}
	if found.Username != "alice" {
		t.Errorf("Username = %q, want %q", found.Username, "alice")
	}
	if found.GitHubID != 42 {
		t.Errorf("GitHubID = %d, want 42", found.GitHubID)
	}
	if found.IsAdmin {
		t.Error("IsAdmin = true, want false by default")
	}
}

func TestUserUpsert_UpdateKeepsInternalID(t *testing.T) {
	db := newTestDB(t)

	first := &model.User{GitHubID: 42, Username: "alice"}
	if err := db.Upsert(context.Background(), first); err != nil {
		t.Fatalf("first Upsert() error = %v", err)
	}

	// Same GitHub account logs in again with a changed profile.
	second := &model.User{
		GitHubID:  42,
		Username:  "alice-renamed",
		Email:     "new@example.com",
		AvatarURL: "https://avatars.example/new",
	}
	if err := db.Upsert(context.Background(), second); err != nil {
		t.Fatalf("second Upsert() error = %v", err)
	}

	if second.ID != first.ID {
		t.Errorf("Upsert() changed internal ID: %q → %q", first.ID, second.ID)
	}

	found, err := db.GetUserByID(context.Background(), first.ID)
	if err != nil {
		t.Fatalf("GetUserByID() error = %v", err)
	}
	if found.Username != "alice-renamed" {
		t.Errorf("Username = %q, want %q", found.Username, "alice-renamed")
	}
	if found.Email != "new@example.com" {
		t.Errorf("Email = %q, want %q", found.Email, "new@example.com")
	}
}

func TestUserUpsert_UpdatePreservesAdminFlag(t *testing.T) {
	db := newTestDB(t)

	user := &model.User{GitHubID: 42, Username: "alice"}
	if err := db.Upsert(context.Background(), user); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	// Promote out of band, the way an operator would.
	if _, err := db.conn.Exec(`UPDATE users SET is_admin = 1 WHERE id = ?`, user.ID); err != nil {
		t.Fatalf("promoting user: %v", err)
	}

	again := &model.User{GitHubID: 42, Username: "alice"}
	if err := db.Upsert(context.Background(), again); err != nil {
		t.Fatalf("second Upsert() error = %v", err)
	}
	if !again.IsAdmin {
		t.Error("Upsert() lost is_admin on re-login")
	}

	found, err := db.GetUserByID(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("GetUserByID() error = %v", err)
	}
	if !found.IsAdmin {
		t.Error("is_admin reset by login upsert")
	}
}

func TestGetUserByID_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.GetUserByID(context.Background(), "does-not-exist")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetUserByID() error = %v, want ErrNotFound", err)
	}
}
