package conversations

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

type conversationService struct {
	convRepo   repositories.ConversationRepository
	folderRepo repositories.FolderRepository
	tagRepo    repositories.TagRepository
	logger     *slog.Logger
}

// NewConversationService creates a new conversation service
func NewConversationService(
	convRepo repositories.ConversationRepository,
	folderRepo repositories.FolderRepository,
	tagRepo repositories.TagRepository,
	logger *slog.Logger,
) services.ConversationService {
	return &conversationService{
		convRepo:   convRepo,
		folderRepo: folderRepo,
		tagRepo:    tagRepo,
		logger:     logger,
	}
}

// CreateConversation creates a conversation, optionally filed into an
// existing folder and carrying existing tags.
func (s *conversationService) CreateConversation(ctx context.Context, req *services.CreateConversationRequest) (*models.Conversation, error) {
	if req.FolderID != nil && *req.FolderID == "" {
		req.FolderID = nil
	}
	req.Title = strings.TrimSpace(req.Title)

	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if req.FolderID != nil {
		if _, err := s.folderRepo.GetByID(ctx, *req.FolderID); err != nil {
			return nil, fmt.Errorf("target folder: %w", err)
		}
	}
	if err := s.checkTagsExist(ctx, req.TagIDs); err != nil {
		return nil, err
	}

	now := time.Now()
	conv := &models.Conversation{
		ID:           uuid.NewString(),
		Title:        req.Title,
		Model:        req.Model,
		SystemPrompt: req.SystemPrompt,
		Messages:     req.Messages,
		Parameters:   req.Parameters,
		FolderID:     req.FolderID,
		TagIDs:       req.TagIDs,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if conv.Messages == nil {
		conv.Messages = []models.Message{}
	}
	if conv.TagIDs == nil {
		conv.TagIDs = []string{}
	}

	if err := s.convRepo.Create(ctx, conv); err != nil {
		return nil, err
	}

	s.logger.Info("conversation created",
		"id", conv.ID,
		"title", conv.Title,
		"model", conv.Model,
		"folder_id", conv.FolderID,
	)

	return conv, nil
}

// GetConversation retrieves a conversation by ID
func (s *conversationService) GetConversation(ctx context.Context, id string) (*models.Conversation, error) {
	return s.convRepo.GetByID(ctx, id)
}

// UpdateConversation applies a partial update. Filing into a folder
// verifies the target exists; null folder_id clears the placement.
func (s *conversationService) UpdateConversation(ctx context.Context, id string, req *services.UpdateConversationRequest) (*models.Conversation, error) {
	conv, err := s.convRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title cannot be empty", domain.ErrValidation)
		}
		conv.Title = title
	}
	if req.Model != nil {
		conv.Model = *req.Model
	}
	if req.SystemPrompt != nil {
		conv.SystemPrompt = *req.SystemPrompt
	}
	if req.Messages != nil {
		conv.Messages = *req.Messages
	}
	if req.Parameters != nil {
		conv.Parameters = req.Parameters
	}

	if req.FolderID.Present {
		if req.FolderID.Value != nil && *req.FolderID.Value != "" {
			if _, err := s.folderRepo.GetByID(ctx, *req.FolderID.Value); err != nil {
				return nil, fmt.Errorf("target folder: %w", err)
			}
			conv.FolderID = req.FolderID.Value
		} else {
			conv.FolderID = nil
		}
	}

	if req.TagIDs != nil {
		if err := s.checkTagsExist(ctx, *req.TagIDs); err != nil {
			return nil, err
		}
		conv.TagIDs = *req.TagIDs
	}

	conv.UpdatedAt = time.Now()
	if err := s.convRepo.Update(ctx, conv); err != nil {
		return nil, err
	}

	s.logger.Info("conversation updated", "id", conv.ID, "folder_id", conv.FolderID)
	return conv, nil
}

// DeleteConversation removes a conversation
func (s *conversationService) DeleteConversation(ctx context.Context, id string) error {
	if err := s.convRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("conversation deleted", "id", id)
	return nil
}

// ListConversations returns conversations matching the filter, most
// recently updated first
func (s *conversationService) ListConversations(ctx context.Context, filter repositories.ConversationFilter) ([]models.Conversation, error) {
	return s.convRepo.List(ctx, filter)
}

// ShareConversation marks a conversation shared under a fresh opaque id
func (s *conversationService) ShareConversation(ctx context.Context, id string, req *services.ShareConversationRequest) (*models.Conversation, error) {
	conv, err := s.convRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	shareID := uuid.NewString()
	conv.IsShared = true
	conv.ShareID = &shareID
	conv.ShareSettings = models.ShareSettings{
		IsPublic:      req.IsPublic,
		AllowComments: req.AllowComments,
		ExpiresAt:     req.ExpiresAt,
	}
	conv.UpdatedAt = time.Now()

	if err := s.convRepo.Update(ctx, conv); err != nil {
		return nil, err
	}

	s.logger.Info("conversation shared", "id", conv.ID, "share_id", shareID)
	return conv, nil
}

// UnshareConversation revokes public access
func (s *conversationService) UnshareConversation(ctx context.Context, id string) error {
	conv, err := s.convRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	conv.IsShared = false
	conv.ShareID = nil
	conv.ShareSettings = models.ShareSettings{}
	conv.UpdatedAt = time.Now()

	if err := s.convRepo.Update(ctx, conv); err != nil {
		return err
	}

	s.logger.Info("conversation unshared", "id", conv.ID)
	return nil
}

// GetSharedConversation fetches by share id; revoked or expired shares
// read as not found so the public endpoint leaks nothing.
func (s *conversationService) GetSharedConversation(ctx context.Context, shareID string) (*models.Conversation, error) {
	conv, err := s.convRepo.GetByShareID(ctx, shareID)
	if err != nil {
		return nil, err
	}

	if !conv.IsShared {
		return nil, fmt.Errorf("shared conversation %s: %w", shareID, domain.ErrNotFound)
	}
	if exp := conv.ShareSettings.ExpiresAt; exp != nil && exp.Before(time.Now()) {
		return nil, fmt.Errorf("shared conversation %s: %w", shareID, domain.ErrNotFound)
	}

	return conv, nil
}

func (s *conversationService) checkTagsExist(ctx context.Context, tagIDs []string) error {
	for _, tagID := range tagIDs {
		if _, err := s.tagRepo.GetByID(ctx, tagID); err != nil {
			return fmt.Errorf("tag %s: %w", tagID, err)
		}
	}
	return nil
}

func (s *conversationService) validateCreateRequest(req *services.CreateConversationRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Title,
			validation.Required,
			validation.Length(1, config.MaxConversationTitleLength),
		),
		validation.Field(&req.Model, validation.Required),
	)
}
