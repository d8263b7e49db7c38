package service

import (
	"context"
	"testing"

	"github.com/rs/xid"
	"github.com/sakif/prompt-library/internal/apperror"
	"github.com/sakif/prompt-library/internal/auth"
	"github.com/sakif/prompt-library/internal/model"
)

type mockUserRepo struct {
	byID       map[string]*model.User
	byGitHubID map[int64]string
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		byID:       make(map[string]*model.User),
		byGitHubID: make(map[int64]string),
	}
}

func (m *mockUserRepo) Upsert(_ context.Context, user *model.User) error {
	if id, ok := m.byGitHubID[user.GitHubID]; ok {
		existing := m.byID[id]
		existing.Username = user.Username
		existing.Email = user.Email
		existing.AvatarURL = user.AvatarURL
		*user = *existing
		return nil
	}
	user.ID = xid.New().String()
	stored := *user
	m.byID[user.ID] = &stored
	m.byGitHubID[user.GitHubID] = user.ID
	return nil
}

func (m *mockUserRepo) GetUserByID(_ context.Context, id string) (*model.User, error) {
	user, ok := m.byID[id]
	if !ok {
		return nil, apperror.NotFound("user", id)
	}
	result := *user
	return &result, nil
}

func newAuthFixture(t *testing.T) (*AuthService, *mockUserRepo) {
	t.Helper()
	tokens, err := auth.NewTokenService("test-secret-key-16chars-or-more")
	if err != nil {
		t.Fatalf("NewTokenService() error = %v", err)
	}
	users := newMockUserRepo()
	return NewAuthService(users, tokens, testLogger()), users
}

func TestLoginOrRegisterGitHub_NewUser(t *testing.T) {
	svc, users := newAuthFixture(t)

	result, err := svc.LoginOrRegisterGitHub(context.Background(), &auth.GitHubUser{
		ID:        12345,
		Login:     "alice",
		Email:     "alice@example.com",
		AvatarURL: "https://avatars.example.com/alice",
	})
	if err != nil {
		t.Fatalf("LoginOrRegisterGitHub() error = %v", err)
	}

	if result.User.Username != "alice" {
		t.Errorf("Username = %q, want %q", result.User.Username, "alice")
	}
	if result.User.ID == "" {
		t.Error("User.ID is empty, want generated ID")
	}
	if result.Token == "" {
		t.Error("Token is empty, want signed session token")
	}
	if len(users.byID) != 1 {
		t.Errorf("user store has %d users, want 1", len(users.byID))
	}
}

func TestLoginOrRegisterGitHub_ReturningUser(t *testing.T) {
	svc, users := newAuthFixture(t)
	ctx := context.Background()

	first, err := svc.LoginOrRegisterGitHub(ctx, &auth.GitHubUser{ID: 12345, Login: "alice"})
	if err != nil {
		t.Fatalf("first login error = %v", err)
	}

	// Same GitHub identity, changed profile. No new row; profile refreshed.
	second, err := svc.LoginOrRegisterGitHub(ctx, &auth.GitHubUser{
		ID:        12345,
		Login:     "alice-renamed",
		AvatarURL: "https://avatars.example.com/new",
	})
	if err != nil {
		t.Fatalf("second login error = %v", err)
	}

	if second.User.ID != first.User.ID {
		t.Errorf("internal ID changed across logins: %q then %q", first.User.ID, second.User.ID)
	}
	if second.User.Username != "alice-renamed" {
		t.Errorf("Username = %q, want refreshed login", second.User.Username)
	}
	if len(users.byID) != 1 {
		t.Errorf("user store has %d users, want 1", len(users.byID))
	}
}

func TestLoginOrRegisterGitHub_TokenRoundTrip(t *testing.T) {
	tokens, err := auth.NewTokenService("test-secret-key-16chars-or-more")
	if err != nil {
		t.Fatalf("NewTokenService() error = %v", err)
	}
	svc := NewAuthService(newMockUserRepo(), tokens, testLogger())

	result, err := svc.LoginOrRegisterGitHub(context.Background(), &auth.GitHubUser{ID: 1, Login: "alice"})
	if err != nil {
		t.Fatalf("LoginOrRegisterGitHub() error = %v", err)
	}

	userID, err := tokens.Validate(result.Token)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if userID != result.User.ID {
		t.Errorf("token subject = %q, want %q", userID, result.User.ID)
	}
}

func TestAuthServiceGetUserByID(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	result, err := svc.LoginOrRegisterGitHub(ctx, &auth.GitHubUser{ID: 7, Login: "bob"})
	if err != nil {
		t.Fatalf("LoginOrRegisterGitHub() error = %v", err)
	}

	user, err := svc.GetUserByID(ctx, result.User.ID)
	if err != nil {
		t.Fatalf("GetUserByID() error = %v", err)
	}
	if user.Username != "bob" {
		t.Errorf("Username = %q, want %q", user.Username, "bob")
	}
}
