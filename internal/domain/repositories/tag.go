package repositories

import (
	"context"

	"chatfolio/internal/domain/models"
)

// TagRepository defines data access operations for tags
type TagRepository interface {
	// Create inserts a new tag
	Create(ctx context.Context, tag *models.Tag) error

	// GetByID retrieves a tag by ID
	GetByID(ctx context.Context, id string) (*models.Tag, error)

	// GetAll retrieves every tag, ordered by name
	GetAll(ctx context.Context) ([]models.Tag, error)

	// Update persists a tag's mutable fields
	Update(ctx context.Context, tag *models.Tag) error

	// Delete removes a tag
	Delete(ctx context.Context, id string) error
}
