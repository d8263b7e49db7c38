// Package service contains the business logic layer of the application.
//
// THE THREE-LAYER ARCHITECTURE:
//
//	Handler (HTTP layer)     → parses requests, writes responses
//	Service (Business layer)  → validates, enforces rules, orchestrates
//	Repository (Data layer)   → reads/writes to the database
//
// Handlers only know about HTTP. Services only know about business rules.
// Neither knows about SQL. Services take repository interfaces, not the
// concrete sqlite type, so tests can pass in-memory mocks.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/prompt-library/internal/apperror"
	"github.com/sakif/prompt-library/internal/model"
	"github.com/sakif/prompt-library/internal/repository"
)

// Validation constants.
const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 20000
	MaxTagsPerPrompt     = 10
	MaxTagLength         = 40
)

// PromptService handles business logic for prompts: validation, tag
// normalization, and keeping the audit trail and tag catalog in step with
// every write.
type PromptService struct {
	prompts repository.PromptRepository
	history repository.HistoryRepository
	tags    repository.TagRepository
	logger  *slog.Logger
}

// NewPromptService creates a PromptService. The caller decides which
// repository implementations to use (SQLite in production, mocks in tests).
func NewPromptService(
	prompts repository.PromptRepository,
	history repository.HistoryRepository,
	tags repository.TagRepository,
	logger *slog.Logger,
) *PromptService {
	return &PromptService{
		prompts: prompts,
		history: history,
		tags:    tags,
		logger:  logger,
	}
}

// List returns all prompts with author display data joined in. There is no
// server-side filtering — tag filtering happens in the client over the full
// result set.
func (s *PromptService) List(ctx context.Context) ([]model.Prompt, error) {
	prompts, err := s.prompts.List(ctx)
	if err != nil {
		s.logger.Error("failed to list prompts", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing prompts: %w", err)
	}
	return prompts, nil
}

// Get retrieves a single prompt by ID.
// Returns apperror.ErrNotFound if the prompt doesn't exist.
func (s *PromptService) Get(ctx context.Context, id string) (*model.Prompt, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "prompt ID is required")
	}
	return s.prompts.GetByID(ctx, id)
}

// Create validates and saves a new prompt authored by userID, then appends
// one "create" row to the audit trail and records any new tag names in the
// catalog.
//
// The caller (the RequireAuth middleware, ultimately) guarantees userID
// identifies an authenticated user; an empty userID is rejected here as a
// second line of defence so an anonymous create can never write a row.
//
// The audit append is a second statement after the insert, not a
// transaction. A crash between the two loses one history row; the prompt
// itself is never left half-written.
func (s *PromptService) Create(ctx context.Context, userID, title, description string, tags []string) (*model.Prompt, error) {
	if userID == "" {
		return nil, apperror.Unauthenticated("authentication required to create prompts")
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, apperror.ValidationFailed("title", "prompt title is required")
	}
	if len(title) > MaxTitleLength {
		return nil, apperror.ValidationFailed("title",
			fmt.Sprintf("prompt title must be %d characters or less", MaxTitleLength))
	}
	if len(description) > MaxDescriptionLength {
		return nil, apperror.ValidationFailed("description",
			fmt.Sprintf("prompt description must be %d characters or less", MaxDescriptionLength))
	}

	normTags, err := NormalizeTags(tags)
	if err != nil {
		return nil, err
	}

	prompt := &model.Prompt{
		Title:       title,
		Description: strings.TrimSpace(description),
		AuthorID:    userID,
		Tags:        normTags,
	}

	if err := s.prompts.Create(ctx, prompt); err != nil {
		s.logger.Error("failed to create prompt",
			slog.String("title", title),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating prompt: %w", err)
	}

	s.recordChange(ctx, prompt.ID, userID, model.ChangeCreate, "Created new prompt")
	s.recordTags(ctx, normTags)

	s.logger.Info("prompt created",
		slog.String("id", prompt.ID),
		slog.String("title", prompt.Title),
		slog.String("authorID", userID),
	)

	return prompt, nil
}

// Update replaces the title, description and tags of an existing prompt and
// appends one "update" row to the audit trail.
//
// There is deliberately no ownership check: any authenticated user may edit
// any prompt, and the audit trail records who did. userID here is the
// editor, not necessarily the author.
//
// Strategy is fetch-then-update: confirming the prompt exists first gives a
// clean NotFound instead of a silent zero-row UPDATE.
func (s *PromptService) Update(ctx context.Context, userID, id, title, description string, tags []string) (*model.Prompt, error) {
	if userID == "" {
		return nil, apperror.Unauthenticated("authentication required to update prompts")
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "prompt ID is required")
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, apperror.ValidationFailed("title", "prompt title is required")
	}
	if len(title) > MaxTitleLength {
		return nil, apperror.ValidationFailed("title",
			fmt.Sprintf("prompt title must be %d characters or less", MaxTitleLength))
	}
	if len(description) > MaxDescriptionLength {
		return nil, apperror.ValidationFailed("description",
			fmt.Sprintf("prompt description must be %d characters or less", MaxDescriptionLength))
	}

	normTags, err := NormalizeTags(tags)
	if err != nil {
		return nil, err
	}

	// Fetch existing prompt — returns NotFound if it doesn't exist
	prompt, err := s.prompts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Last-write-wins replacement of the editable fields.
	prompt.Title = title
	prompt.Description = strings.TrimSpace(description)
	prompt.Tags = normTags

	if err := s.prompts.Update(ctx, prompt); err != nil {
		s.logger.Error("failed to update prompt",
			slog.String("id", id),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("updating prompt: %w", err)
	}

	s.recordChange(ctx, prompt.ID, userID, model.ChangeUpdate, "Updated prompt")
	s.recordTags(ctx, normTags)

	s.logger.Info("prompt updated",
		slog.String("id", prompt.ID),
		slog.String("title", prompt.Title),
		slog.String("editorID", userID),
	)

	return prompt, nil
}

// ListTags returns every tag name ever used on a prompt, sorted.
func (s *PromptService) ListTags(ctx context.Context) ([]string, error) {
	tags, err := s.tags.ListTags(ctx)
	if err != nil {
		s.logger.Error("failed to list tags", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing tags: %w", err)
	}

	names := make([]string, 0, len(tags))
	for _, t := range tags {
		names = append(names, t.Name)
	}
	return names, nil
}

// recordChange appends an audit row for a successful write. An append
// failure is logged but does not fail the operation — the primary write
// already succeeded and must not be reported as an error to the user.
func (s *PromptService) recordChange(ctx context.Context, promptID, userID string, ct model.ChangeType, description string) {
	err := s.history.Append(ctx, &model.ChangeHistory{
		PromptID:          promptID,
		UserID:            userID,
		ChangeType:        ct,
		ChangeDescription: description,
	})
	if err != nil {
		s.logger.Error("failed to record change history",
			slog.String("promptID", promptID),
			slog.String("changeType", string(ct)),
			slog.String("error", err.Error()),
		)
	}
}

// recordTags mirrors the prompt's tag names into the catalog. Best-effort,
// same reasoning as recordChange.
func (s *PromptService) recordTags(ctx context.Context, names []string) {
	if len(names) == 0 {
		return
	}
	if err := s.tags.RecordTags(ctx, names); err != nil {
		s.logger.Error("failed to record tags", slog.String("error", err.Error()))
	}
}

// NormalizeTags canonicalizes a tag list into an ordered set: entries are
// trimmed, empties dropped, duplicates removed keeping the first occurrence.
// Exported because the card state machine and tests want the same rule.
func NormalizeTags(tags []string) ([]string, error) {
	normalized := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))

	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if len(tag) > MaxTagLength {
			return nil, apperror.ValidationFailed("tags",
				fmt.Sprintf("tag %q exceeds %d characters", tag, MaxTagLength))
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		normalized = append(normalized, tag)
	}

	if len(normalized) > MaxTagsPerPrompt {
		return nil, apperror.ValidationFailed("tags",
			fmt.Sprintf("a prompt may have at most %d tags", MaxTagsPerPrompt))
	}

	return normalized, nil
}
