package apperror

import (
	"errors"
	"fmt"
	"testing"
)

func TestSentinelUnwrapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"not found", NotFound("prompt", "abc"), ErrNotFound},
		{"validation", ValidationFailed("title", "title is required"), ErrValidation},
		{"conflict", Conflict("tag", "Edge"), ErrConflict},
		{"forbidden", Forbidden("admins only"), ErrForbidden},
		{"unauthenticated", Unauthenticated("login required"), ErrUnauthenticated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.sentinel) {
				t.Errorf("errors.Is(%v, %v) = false, want true", tt.err, tt.sentinel)
			}
		})
	}
}

func TestSentinelSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("updating prompt: %w", NotFound("prompt", "abc"))

	if !errors.Is(err, ErrNotFound) {
		t.Error("wrapped AppError lost its sentinel")
	}

	var appErr *AppError
	if !errors.As(err, &appErr) {
		t.Fatal("errors.As failed to recover the AppError")
	}
	if appErr.Message != "prompt not found with id abc" {
		t.Errorf("Message = %q", appErr.Message)
	}
}

func TestErrorMessage(t *testing.T) {
	err := ValidationFailed("title", "title is required")
	if err.Error() != "title is required" {
		t.Errorf("Error() = %q, want the human-readable message", err.Error())
	}
	if err.Field != "title" {
		t.Errorf("Field = %q, want %q", err.Field, "title")
	}
}
