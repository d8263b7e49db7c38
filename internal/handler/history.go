package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/prompt-library/internal/service"
)

// HistoryHandler serves the read side of the audit trail.
type HistoryHandler struct {
	history *service.HistoryService
	logger  *slog.Logger
}

// NewHistoryHandler creates a HistoryHandler.
func NewHistoryHandler(history *service.HistoryService, logger *slog.Logger) *HistoryHandler {
	return &HistoryHandler{
		history: history,
		logger:  logger,
	}
}

// HandleList returns the full change history, newest first, with user names
// and prompt titles joined in.
//
// HTTP: GET /api/history
func (h *HistoryHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	entries, err := h.history.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, entries)
}
