package handler

import (
	"log/slog"
	"net/http"

	"chatfolio/internal/domain/repositories"
	"chatfolio/internal/domain/services"
	"chatfolio/internal/httputil"
)

// ConversationHandler handles conversation HTTP requests
type ConversationHandler struct {
	convService services.ConversationService
	logger      *slog.Logger
}

// NewConversationHandler creates a new conversation handler
func NewConversationHandler(convService services.ConversationService, logger *slog.Logger) *ConversationHandler {
	return &ConversationHandler{
		convService: convService,
		logger:      logger,
	}
}

// CreateConversation creates a new conversation
// POST /api/conversations
func (h *ConversationHandler) CreateConversation(w http.ResponseWriter, r *http.Request) {
	var req services.CreateConversationRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	conv, err := h.convService.CreateConversation(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, conv)
}

// ListConversations lists conversations, optionally filtered by folder
// or tag via query parameters
// GET /api/conversations?folder_id=...&tag_id=...
func (h *ConversationHandler) ListConversations(w http.ResponseWriter, r *http.Request) {
	var filter repositories.ConversationFilter
	if v := r.URL.Query().Get("folder_id"); v != "" {
		filter.FolderID = &v
	}
	if v := r.URL.Query().Get("tag_id"); v != "" {
		filter.TagID = &v
	}

	convs, err := h.convService.ListConversations(r.Context(), filter)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, convs)
}

// GetConversation retrieves a conversation by ID
// GET /api/conversations/{id}
func (h *ConversationHandler) GetConversation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	conv, err := h.convService.GetConversation(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, conv)
}

// UpdateConversation applies a partial update, including refiling into a
// different folder (or out of any folder with an explicit null)
// PATCH /api/conversations/{id}
func (h *ConversationHandler) UpdateConversation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req services.UpdateConversationRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	conv, err := h.convService.UpdateConversation(r.Context(), id, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, conv)
}

// DeleteConversation removes a conversation
// DELETE /api/conversations/{id}
func (h *ConversationHandler) DeleteConversation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.convService.DeleteConversation(r.Context(), id); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ShareConversation enables public access and mints a share ID
// POST /api/conversations/{id}/share
func (h *ConversationHandler) ShareConversation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req services.ShareConversationRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	conv, err := h.convService.ShareConversation(r.Context(), id, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, conv)
}

// UnshareConversation revokes public access
// DELETE /api/conversations/{id}/share
func (h *ConversationHandler) UnshareConversation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.convService.UnshareConversation(r.Context(), id); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetSharedConversation serves a shared conversation by its public share
// ID. Unshared or expired shares read as not found.
// GET /api/share/{shareId}
func (h *ConversationHandler) GetSharedConversation(w http.ResponseWriter, r *http.Request) {
	shareID := r.PathValue("shareId")
	if shareID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "share ID is required")
		return
	}

	conv, err := h.convService.GetSharedConversation(r.Context(), shareID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, conv)
}
