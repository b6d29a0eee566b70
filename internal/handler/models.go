package handler

import (
	"log/slog"
	"net/http"

	"chatfolio/internal/httputil"
	"chatfolio/internal/service/modelinfo"
	"chatfolio/internal/service/ollama"
)

// ModelsHandler serves the installed-model list and relays generation
// requests to the local Ollama daemon.
type ModelsHandler struct {
	ollama   *ollama.Client
	registry *modelinfo.Registry
	logger   *slog.Logger
}

// NewModelsHandler creates a new models handler
func NewModelsHandler(client *ollama.Client, registry *modelinfo.Registry, logger *slog.Logger) *ModelsHandler {
	return &ModelsHandler{
		ollama:   client,
		registry: registry,
		logger:   logger,
	}
}

// modelEntry is an installed model merged with registry metadata
type modelEntry struct {
	Name              string                 `json:"name"`
	DisplayName       string                 `json:"display_name"`
	Size              int64                  `json:"size"`
	DefaultParameters map[string]interface{} `json:"default_parameters,omitempty"`
}

// ListModels lists the models installed in Ollama, enriched with display
// names and parameter defaults where the family is known
// GET /api/models
func (h *ModelsHandler) ListModels(w http.ResponseWriter, r *http.Request) {
	installed, err := h.ollama.ListModels(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	entries := make([]modelEntry, 0, len(installed))
	for _, m := range installed {
		entry := modelEntry{Name: m.Name, DisplayName: m.Name, Size: m.Size}
		if meta, ok := h.registry.Lookup(m.Name); ok {
			entry.DisplayName = meta.DisplayName
			entry.DefaultParameters = meta.DefaultParameters
		}
		entries = append(entries, entry)
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"models": entries,
	})
}

// Generate relays a completion request to Ollama and returns the whole
// response once generation finishes
// POST /api/generate
func (h *ModelsHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req ollama.GenerateRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Model == "" || req.Prompt == "" {
		httputil.RespondError(w, http.StatusBadRequest, "model and prompt are required")
		return
	}

	resp, err := h.ollama.Generate(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, resp)
}
