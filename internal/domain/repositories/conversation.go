package repositories

import (
	"context"

	"chatfolio/internal/domain/models"
)

// ConversationFilter narrows List results.
type ConversationFilter struct {
	FolderID *string // conversations filed in this folder
	TagID    *string // conversations carrying this tag
}

// ConversationRepository defines data access operations for conversations
type ConversationRepository interface {
	// Create inserts a new conversation
	Create(ctx context.Context, conv *models.Conversation) error

	// GetByID retrieves a conversation by ID
	GetByID(ctx context.Context, id string) (*models.Conversation, error)

	// GetByShareID retrieves a conversation by its public share ID
	GetByShareID(ctx context.Context, shareID string) (*models.Conversation, error)

	// Update persists all mutable fields of a conversation
	Update(ctx context.Context, conv *models.Conversation) error

	// Delete removes a conversation
	Delete(ctx context.Context, id string) error

	// List returns conversations matching the filter, most recently
	// updated first
	List(ctx context.Context, filter ConversationFilter) ([]models.Conversation, error)

	// ListPlacements returns the id/title/folder projection of every
	// conversation, for tree assembly
	ListPlacements(ctx context.Context) ([]models.ConversationPlacement, error)

	// ClearFolderRefs nulls folder_id on every conversation whose
	// folder_id is in the given set and returns how many were orphaned.
	// Idempotent: re-running it is safe.
	ClearFolderRefs(ctx context.Context, folderIDs []string) (int64, error)

	// DetachTag removes a tag id from every conversation carrying it
	DetachTag(ctx context.Context, tagID string) (int64, error)
}
