package services

import (
	"context"

	"chatfolio/internal/domain/models"
)

// CreateTagRequest carries a new tag.
type CreateTagRequest struct {
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// UpdateTagRequest renames or recolors a tag.
type UpdateTagRequest struct {
	Name  *string `json:"name,omitempty"`
	Color *string `json:"color,omitempty"`
}

// TagService exposes tag CRUD. Deleting a tag detaches it from every
// conversation carrying it.
type TagService interface {
	CreateTag(ctx context.Context, req *CreateTagRequest) (*models.Tag, error)
	ListTags(ctx context.Context) ([]models.Tag, error)
	UpdateTag(ctx context.Context, id string, req *UpdateTagRequest) (*models.Tag, error)
	DeleteTag(ctx context.Context, id string) error
}
