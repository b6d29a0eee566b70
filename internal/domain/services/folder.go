package services

import (
	"context"

	"chatfolio/internal/domain/models"
	"chatfolio/internal/httputil"
)

// CreateFolderRequest carries the caller-supplied fields for a new folder.
// Path and level are always derived server-side.
type CreateFolderRequest struct {
	Name     string  `json:"name"`
	Color    string  `json:"color,omitempty"`
	ParentID *string `json:"parent_id,omitempty"`
}

// UpdateFolderRequest covers rename, recolor and move in one PATCH.
// ParentID is tri-state: absent leaves placement alone, null moves to
// root, a value reparents under that folder.
type UpdateFolderRequest struct {
	Name     *string                 `json:"name,omitempty"`
	Color    *string                 `json:"color,omitempty"`
	ParentID httputil.OptionalString `json:"parent_id"`
}

// DeleteFolderResult reports what a cascade delete removed.
type DeleteFolderResult struct {
	DeletedFolderIDs      []string `json:"deleted_folder_ids"`
	DeletedCount          int64    `json:"deleted_count"`
	OrphanedConversations int64    `json:"orphaned_conversations"`
}

// FolderService exposes the folder hierarchy operations.
//
// Guarantees, for every successful call:
//   - each stored folder's path is exactly its parent chain, root first,
//     ending in its own id, and level == len(path segments) - 1
//   - a move never creates a cycle and always recomputes the ancestry of
//     the whole moved subtree
//   - a delete removes the full subtree and orphans (nulls, never
//     deletes) every conversation filed anywhere inside it
type FolderService interface {
	CreateFolder(ctx context.Context, req *CreateFolderRequest) (*models.Folder, error)
	GetFolder(ctx context.Context, id string) (*models.Folder, error)
	UpdateFolder(ctx context.Context, id string, req *UpdateFolderRequest) (*models.Folder, error)
	DeleteFolder(ctx context.Context, id string) (*DeleteFolderResult, error)
	ListFolders(ctx context.Context) ([]models.Folder, error)
	GetTree(ctx context.Context) (*models.Tree, error)
}
