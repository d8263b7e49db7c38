package auth

import (
	"strings"
	"testing"
)

func TestGitHubUserUsername(t *testing.T) {
	tests := []struct {
		name string
		user GitHubUser
		want string
	}{
		{
			name: "login wins",
			user: GitHubUser{ID: 1, Login: "alice", Name: "Alice A", Email: "alice@example.com"},
			want: "alice",
		},
		{
			name: "login is trimmed",
			user: GitHubUser{ID: 1, Login: "  alice  "},
			want: "alice",
		},
		{
			name: "falls back to display name",
			user: GitHubUser{ID: 1, Name: "Alice A", Email: "alice@example.com"},
			want: "Alice A",
		},
		{
			name: "falls back to email local part",
			user: GitHubUser{ID: 1, Email: "alice@example.com"},
			want: "alice",
		},
		{
			name: "email without at sign used whole",
			user: GitHubUser{ID: 1, Email: "alice"},
			want: "alice",
		},
		{
			name: "everything hidden derives from ID",
			user: GitHubUser{ID: 12345},
			want: "user_12345",
		},
		{
			name: "long ID truncated to eight digits",
			user: GitHubUser{ID: 1234567890},
			want: "user_12345678",
		},
		{
			name: "whitespace-only fields skipped",
			user: GitHubUser{ID: 7, Login: "   ", Name: "\t", Email: " "},
			want: "user_7",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.user.Username(); got != tt.want {
				t.Errorf("Username() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGitHubProviderAuthURL(t *testing.T) {
	provider := NewGitHubProvider("client-id", "client-secret", "http://localhost:8080/auth/github/callback")

	url := provider.AuthURL("random-state")
	if !strings.Contains(url, "github.com") {
		t.Errorf("AuthURL() = %q, want GitHub authorization endpoint", url)
	}
	if !strings.Contains(url, "state=random-state") {
		t.Errorf("AuthURL() = %q, missing state parameter", url)
	}
	if !strings.Contains(url, "client_id=client-id") {
		t.Errorf("AuthURL() = %q, missing client_id", url)
	}
}
