package models

import (
	"time"
)

// Message roles
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single transcript entry.
type Message struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// ShareSettings controls public access to a shared conversation.
type ShareSettings struct {
	IsPublic      bool       `json:"is_public"`
	AllowComments bool       `json:"allow_comments"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
}

// Conversation is a saved chat transcript. FolderID is the only link the
// folder subsystem cares about: nullable, and nulled (never deleted) when
// the referenced folder goes away.
type Conversation struct {
	ID            string                 `json:"id"`
	Title         string                 `json:"title"`
	Messages      []Message              `json:"messages"`
	Model         string                 `json:"model"`
	SystemPrompt  string                 `json:"system_prompt,omitempty"`
	Parameters    map[string]interface{} `json:"parameters,omitempty"`
	FolderID      *string                `json:"folder_id"`
	TagIDs        []string               `json:"tag_ids"`
	IsShared      bool                   `json:"is_shared"`
	ShareID       *string                `json:"share_id,omitempty"`
	ShareSettings ShareSettings          `json:"share_settings"`
	CreatedAt     time.Time              `json:"created_at"`
	UpdatedAt     time.Time              `json:"updated_at"`
}

// ConversationPlacement is the projection the tree builder needs: which
// folder (if any) each conversation sits in.
type ConversationPlacement struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	FolderID  *string   `json:"folder_id"`
	UpdatedAt time.Time `json:"updated_at"`
}
