package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sakif/prompt-library/internal/model"
	"github.com/sakif/prompt-library/internal/repository"
)

// HistoryService exposes the read side of the audit trail. Writes go
// through PromptService, which appends a row after every successful
// create/update — this service never mutates anything.
type HistoryService struct {
	history repository.HistoryRepository
	logger  *slog.Logger
}

// NewHistoryService creates a HistoryService.
func NewHistoryService(history repository.HistoryRepository, logger *slog.Logger) *HistoryService {
	return &HistoryService{
		history: history,
		logger:  logger,
	}
}

// List returns the full audit trail, newest first, with user names and
// prompt titles joined in for display.
func (s *HistoryService) List(ctx context.Context) ([]model.ChangeHistory, error) {
	entries, err := s.history.ListHistory(ctx)
	if err != nil {
		s.logger.Error("failed to list change history", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing history: %w", err)
	}
	return entries, nil
}
