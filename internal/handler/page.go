package handler

import (
	"html/template"
	"log/slog"
	"net/http"
	"path/filepath"
)

// PageHandler serves the server-rendered shell of the library UI.
// It holds parsed templates so we don't re-parse them on every request.
//
// base.html defines the overall page structure with a {{template "content" .}}
// placeholder; library.html fills it with {{define "content"}}...{{end}}.
// The actual prompt cards are rendered client-side from /api/prompts.
type PageHandler struct {
	templates *template.Template
	logger    *slog.Logger
}

// NewPageHandler creates a PageHandler and parses the HTML templates once
// at startup.
func NewPageHandler(templateDir string, logger *slog.Logger) (*PageHandler, error) {
	tmpl, err := template.ParseFiles(
		filepath.Join(templateDir, "base.html"),
		filepath.Join(templateDir, "library.html"),
	)
	if err != nil {
		return nil, err
	}

	return &PageHandler{
		templates: tmpl,
		logger:    logger,
	}, nil
}

// HandleLibrary serves the main library page.
//
// HTTP: GET /  (and GET /login — the shell shows the login button itself
// when /auth/check reports no session)
func (h *PageHandler) HandleLibrary(w http.ResponseWriter, r *http.Request) {
	data := map[string]interface{}{
		"Title": "Prompt Library",
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	if err := h.templates.ExecuteTemplate(w, "base", data); err != nil {
		h.logger.Error("failed to render template",
			slog.String("error", err.Error()),
		)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
