package services

import (
	"context"
	"time"

	"chatfolio/internal/domain/models"
	"chatfolio/internal/domain/repositories"
	"chatfolio/internal/httputil"
)

// CreateConversationRequest carries a new conversation.
type CreateConversationRequest struct {
	Title        string                 `json:"title"`
	Model        string                 `json:"model"`
	SystemPrompt string                 `json:"system_prompt,omitempty"`
	Messages     []models.Message       `json:"messages,omitempty"`
	Parameters   map[string]interface{} `json:"parameters,omitempty"`
	FolderID     *string                `json:"folder_id,omitempty"`
	TagIDs       []string               `json:"tag_ids,omitempty"`
}

// UpdateConversationRequest is a partial update. Messages and TagIDs
// replace wholesale when present; FolderID is tri-state like a folder
// move (null files the conversation nowhere).
type UpdateConversationRequest struct {
	Title        *string                 `json:"title,omitempty"`
	Model        *string                 `json:"model,omitempty"`
	SystemPrompt *string                 `json:"system_prompt,omitempty"`
	Messages     *[]models.Message       `json:"messages,omitempty"`
	Parameters   map[string]interface{}  `json:"parameters,omitempty"`
	FolderID     httputil.OptionalString `json:"folder_id"`
	TagIDs       *[]string               `json:"tag_ids,omitempty"`
}

// ShareConversationRequest enables public access to a conversation.
type ShareConversationRequest struct {
	IsPublic      bool       `json:"is_public"`
	AllowComments bool       `json:"allow_comments"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
}

// ConversationService exposes conversation CRUD, filing and sharing.
type ConversationService interface {
	CreateConversation(ctx context.Context, req *CreateConversationRequest) (*models.Conversation, error)
	GetConversation(ctx context.Context, id string) (*models.Conversation, error)
	UpdateConversation(ctx context.Context, id string, req *UpdateConversationRequest) (*models.Conversation, error)
	DeleteConversation(ctx context.Context, id string) error
	ListConversations(ctx context.Context, filter repositories.ConversationFilter) ([]models.Conversation, error)
	ShareConversation(ctx context.Context, id string, req *ShareConversationRequest) (*models.Conversation, error)
	UnshareConversation(ctx context.Context, id string) error
	GetSharedConversation(ctx context.Context, shareID string) (*models.Conversation, error)
}
