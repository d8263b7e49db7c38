// Package handler contains HTTP request handlers for the prompt library.
//
// Handlers are the glue between HTTP and the service layer: they parse the
// incoming request, call business logic, and write the response. They
// contain no business rules and no SQL.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sakif/prompt-library/internal/auth"
	"github.com/sakif/prompt-library/internal/service"
)

// PromptHandler manages CRUD operations for prompts plus the tag catalog.
type PromptHandler struct {
	prompts *service.PromptService
	logger  *slog.Logger
}

// NewPromptHandler creates a PromptHandler.
func NewPromptHandler(prompts *service.PromptService, logger *slog.Logger) *PromptHandler {
	return &PromptHandler{
		prompts: prompts,
		logger:  logger,
	}
}

// promptRequest is the JSON body of POST /api/prompts and PUT /api/prompts/{id}.
type promptRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

// HandleList returns all prompts with author display data.
//
// HTTP: GET /api/prompts
//
// There is no pagination or server-side filtering: the frontend filters by
// tag over the full result set.
func (h *PromptHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	prompts, err := h.prompts.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, prompts)
}

// HandleGet returns a single prompt.
//
// HTTP: GET /api/prompts/{id}
func (h *PromptHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	prompt, err := h.prompts.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, prompt)
}

// HandleCreate saves a new prompt authored by the session user.
//
// HTTP: POST /api/prompts
// Auth: Required (RequireAuth middleware sets userID in context)
// BODY: {"title": "...", "description": "...", "tags": ["..."]}
//
// Responds 200 {"id": "..."} on success, matching what the frontend's save
// flow expects.
func (h *PromptHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		// Should never happen on a RequireAuth-protected route, but be safe.
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthenticated",
			Message: "Not authenticated",
		})
		return
	}

	var req promptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid prompt JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "Invalid JSON body",
		})
		return
	}

	prompt, err := h.prompts.Create(r.Context(), userID, req.Title, req.Description, req.Tags)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"id": prompt.ID})
}

// HandleUpdate replaces the editable fields of an existing prompt.
//
// HTTP: PUT /api/prompts/{id}
// Auth: Required
// BODY: {"title": "...", "description": "...", "tags": ["..."]}
//
// Responds 200 {"success": true} on success.
func (h *PromptHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthenticated",
			Message: "Not authenticated",
		})
		return
	}

	var req promptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid prompt JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "Invalid JSON body",
		})
		return
	}

	_, err := h.prompts.Update(r.Context(), userID, r.PathValue("id"), req.Title, req.Description, req.Tags)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// HandleListTags returns every known tag name, sorted.
//
// HTTP: GET /api/tags
func (h *PromptHandler) HandleListTags(w http.ResponseWriter, r *http.Request) {
	names, err := h.prompts.ListTags(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, names)
}
