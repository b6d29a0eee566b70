package repositories

import (
	"context"

	"chatfolio/internal/domain/models"
)

// FolderRepository defines data access operations for folders.
// Implementations must persist Path and Level exactly as given; derived
// ancestry is computed by the service layer, never in SQL.
type FolderRepository interface {
	// Create inserts a new folder with its precomputed path and level
	Create(ctx context.Context, folder *models.Folder) error

	// GetByID retrieves a folder by ID
	GetByID(ctx context.Context, id string) (*models.Folder, error)

	// GetAll retrieves every folder, ordered by level then name
	GetAll(ctx context.Context) ([]models.Folder, error)

	// Update persists all mutable fields of a folder, including ancestry
	Update(ctx context.Context, folder *models.Folder) error

	// ListSubtree returns every folder whose materialized path contains
	// rootID as a segment: the folder itself and all its descendants
	ListSubtree(ctx context.Context, rootID string) ([]models.Folder, error)

	// DeleteByIDs removes all folders in the given id set and returns
	// how many rows were deleted
	DeleteByIDs(ctx context.Context, ids []string) (int64, error)
}
