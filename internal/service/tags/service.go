package tags

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"chatfolio/internal/config"
	"chatfolio/internal/domain"
	"chatfolio/internal/domain/models"
	"chatfolio/internal/domain/repositories"
	"chatfolio/internal/domain/services"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

type tagService struct {
	tagRepo   repositories.TagRepository
	convRepo  repositories.ConversationRepository
	txManager repositories.TransactionManager
	logger    *slog.Logger
}

// NewTagService creates a new tag service
func NewTagService(
	tagRepo repositories.TagRepository,
	convRepo repositories.ConversationRepository,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) services.TagService {
	return &tagService{
		tagRepo:   tagRepo,
		convRepo:  convRepo,
		txManager: txManager,
		logger:    logger,
	}
}

// CreateTag creates a new tag
func (s *tagService) CreateTag(ctx context.Context, req *services.CreateTagRequest) (*models.Tag, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	color := req.Color
	if color == "" {
		color = models.DefaultTagColor
	}

	tag := &models.Tag{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Color:     color,
		CreatedAt: time.Now(),
	}

	if err := s.tagRepo.Create(ctx, tag); err != nil {
		return nil, err
	}

	s.logger.Info("tag created", "id", tag.ID, "name", tag.Name)
	return tag, nil
}

// ListTags returns all tags ordered by name
func (s *tagService) ListTags(ctx context.Context) ([]models.Tag, error) {
	return s.tagRepo.GetAll(ctx)
}

// UpdateTag renames or recolors a tag
func (s *tagService) UpdateTag(ctx context.Context, id string, req *services.UpdateTagRequest) (*models.Tag, error) {
	if req.Name == nil && req.Color == nil {
		return nil, fmt.Errorf("%w: at least one field must be provided", domain.ErrValidation)
	}

	tag, err := s.tagRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: tag name cannot be empty", domain.ErrValidation)
		}
		tag.Name = name
	}
	if req.Color != nil {
		tag.Color = *req.Color
	}

	if err := s.tagRepo.Update(ctx, tag); err != nil {
		return nil, err
	}

	s.logger.Info("tag updated", "id", tag.ID, "name", tag.Name)
	return tag, nil
}

// DeleteTag removes a tag and detaches it from every conversation, as
// one transaction: no conversation may keep a tag id that no longer
// resolves.
func (s *tagService) DeleteTag(ctx context.Context, id string) error {
	var detached int64

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if _, err := s.tagRepo.GetByID(txCtx, id); err != nil {
			return err
		}

		var err error
		detached, err = s.convRepo.DetachTag(txCtx, id)
		if err != nil {
			return fmt.Errorf("detach tag from conversations: %w", err)
		}

		return s.tagRepo.Delete(txCtx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info("tag deleted", "id", id, "detached_conversations", detached)
	return nil
}

func (s *tagService) validateCreateRequest(req *services.CreateTagRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Name,
			validation.Required,
			validation.Length(1, config.MaxTagNameLength),
		),
	)
}
