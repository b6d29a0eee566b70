package folders

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

type folderService struct {
	folderRepo repositories.FolderRepository
	convRepo   repositories.ConversationRepository
	txManager  repositories.TransactionManager
	logger     *slog.Logger
}

// NewFolderService creates a new folder service
func NewFolderService(
	folderRepo repositories.FolderRepository,
	convRepo repositories.ConversationRepository,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) services.FolderService {
	return &folderService{
		folderRepo: folderRepo,
		convRepo:   convRepo,
		txManager:  txManager,
		logger:     logger,
	}
}

// CreateFolder creates a folder, deriving its materialized path and level
// from the requested parent. The parent lookup and the insert share one
// transaction so a concurrent cascade delete cannot slip between them.
func (s *folderService) CreateFolder(ctx context.Context, req *services.CreateFolderRequest) (*models.Folder, error) {
	// Normalize empty string to nil for root-level folders
	if req.ParentID != nil && *req.ParentID == "" {
		req.ParentID = nil
	}
	req.Name = strings.TrimSpace(req.Name)

	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	color := req.Color
	if color == "" {
		color = models.DefaultFolderColor
	}

	now := time.Now()
	folder := &models.Folder{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Color:     color,
		ParentID:  req.ParentID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		path, level, err := ComputePath(txCtx, folder, s.folderRepo)
		if err != nil {
			return err
		}
		folder.Path = path
		folder.Level = level

		return s.folderRepo.Create(txCtx, folder)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("folder created",
		"id", folder.ID,
		"name", folder.Name,
		"parent_id", folder.ParentID,
		"level", folder.Level,
	)

	return folder, nil
}

// GetFolder retrieves a folder by ID
func (s *folderService) GetFolder(ctx context.Context, id string) (*models.Folder, error) {
	return s.folderRepo.GetByID(ctx, id)
}

// UpdateFolder updates a folder: rename/recolor, and/or move. A move
// re-derives the materialized path and level of the folder and of every
// descendant, all inside one transaction, after the cycle check passes.
func (s *folderService) UpdateFolder(ctx context.Context, id string, req *services.UpdateFolderRequest) (*models.Folder, error) {
	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		req.Name = &trimmed
	}
	if err := s.validateUpdateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	var folder *models.Folder

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		var err error
		folder, err = s.folderRepo.GetByID(txCtx, id)
		if err != nil {
			return err
		}

		if req.Name != nil {
			folder.Name = *req.Name
		}
		if req.Color != nil {
			folder.Color = *req.Color
		}

		// Tri-state: only touch placement if parent_id was present in
		// the request body
		if req.ParentID.Present {
			if err := s.moveFolder(txCtx, folder, req.ParentID.Value); err != nil {
				return err
			}
		}

		folder.UpdatedAt = time.Now()
		return s.folderRepo.Update(txCtx, folder)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("folder updated",
		"id", folder.ID,
		"name", folder.Name,
		"parent_id", folder.ParentID,
		"level", folder.Level,
	)

	return folder, nil
}

// moveFolder reparents folder under newParentID (nil = root) and
// recomputes ancestry for the whole moved subtree. Runs inside the
// caller's transaction; every lookup sees the same snapshot.
func (s *folderService) moveFolder(ctx context.Context, folder *models.Folder, newParentID *string) error {
	if newParentID != nil && *newParentID == folder.ID {
		return &domain.ValidationError{Message: "folder cannot be its own parent"}
	}

	// One consistent view of the forest: cycle walk, parent resolution
	// and descendant recomputation all read from this snapshot.
	all, err := s.folderRepo.GetAll(ctx)
	if err != nil {
		return err
	}
	lookup := make(mapLookup, len(all))
	for i := range all {
		lookup[all[i].ID] = &all[i]
	}

	if newParentID != nil {
		if _, ok := lookup[*newParentID]; !ok {
			return fmt.Errorf("parent folder %s: %w", *newParentID, domain.ErrNotFound)
		}

		cyclic, err := WouldCreateCycle(ctx, folder.ID, newParentID, lookup, len(all))
		if err != nil {
			return err
		}
		if cyclic {
			return &domain.CyclicMoveError{FolderID: folder.ID, ParentID: *newParentID}
		}
	}

	folder.ParentID = newParentID
	path, level, err := ComputePath(ctx, folder, lookup)
	if err != nil {
		return err
	}
	folder.Path = path
	folder.Level = level

	// The snapshot must agree with the record we are about to persist,
	// or descendant paths would extend the stale ancestry.
	lookup[folder.ID] = folder

	return s.recomputeDescendants(ctx, folder, lookup)
}

// recomputeDescendants walks the moved folder's subtree breadth-first,
// re-deriving each descendant's path and level from its (already
// updated) parent and persisting the result. Skipping this would leave
// every descendant's ancestry pointing at the old location.
func (s *folderService) recomputeDescendants(ctx context.Context, moved *models.Folder, lookup mapLookup) error {
	// Children adjacency over the snapshot
	children := make(map[string][]*models.Folder)
	for _, f := range lookup {
		if f.ParentID != nil {
			children[*f.ParentID] = append(children[*f.ParentID], f)
		}
	}

	now := time.Now()
	queue := []*models.Folder{moved}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, child := range children[current.ID] {
			path, level, err := ComputePath(ctx, child, lookup)
			if err != nil {
				return fmt.Errorf("recompute path for %s: %w", child.ID, err)
			}
			child.Path = path
			child.Level = level
			child.UpdatedAt = now

			if err := s.folderRepo.Update(ctx, child); err != nil {
				return fmt.Errorf("persist recomputed ancestry for %s: %w", child.ID, err)
			}
			queue = append(queue, child)
		}
	}

	return nil
}

// DeleteFolder deletes a folder and its entire descendant subtree, and
// orphans (nulls, never deletes) every conversation filed in any of
// them. Orphaning happens before the folder rows go, inside the same
// transaction, so no conversation can ever reference a folder id that no
// longer exists.
func (s *folderService) DeleteFolder(ctx context.Context, id string) (*services.DeleteFolderResult, error) {
	result := &services.DeleteFolderResult{}

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if _, err := s.folderRepo.GetByID(txCtx, id); err != nil {
			return err
		}

		// Full descendant set in one pass via the materialized path:
		// every folder whose path contains id as a segment, including
		// the target itself.
		subtree, err := s.folderRepo.ListSubtree(txCtx, id)
		if err != nil {
			return err
		}

		ids := make([]string, len(subtree))
		for i := range subtree {
			ids[i] = subtree[i].ID
		}

		orphaned, err := s.convRepo.ClearFolderRefs(txCtx, ids)
		if err != nil {
			return fmt.Errorf("orphan conversations: %w", err)
		}

		deleted, err := s.folderRepo.DeleteByIDs(txCtx, ids)
		if err != nil {
			return fmt.Errorf("delete folder subtree: %w", err)
		}

		result.DeletedFolderIDs = ids
		result.DeletedCount = deleted
		result.OrphanedConversations = orphaned
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("folder subtree deleted",
		"id", id,
		"deleted_count", result.DeletedCount,
		"orphaned_conversations", result.OrphanedConversations,
	)

	return result, nil
}

// ListFolders returns the flat folder set; callers rebuild the hierarchy
// by parent_id. Ordering within a level is by name.
func (s *folderService) ListFolders(ctx context.Context) ([]models.Folder, error) {
	return s.folderRepo.GetAll(ctx)
}

// validateCreateRequest validates a folder creation request
func (s *folderService) validateCreateRequest(req *services.CreateFolderRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Name,
			validation.Required,
			validation.Length(1, config.MaxFolderNameLength),
		),
	)
}

// validateUpdateRequest validates a folder update request
func (s *folderService) validateUpdateRequest(req *services.UpdateFolderRequest) error {
	// At least one field must be provided
	if req.Name == nil && req.Color == nil && !req.ParentID.Present {
		return fmt.Errorf("at least one field must be provided")
	}

	if req.Name != nil {
		return validation.ValidateStruct(req,
			validation.Field(&req.Name,
				validation.Required,
				validation.Length(1, config.MaxFolderNameLength),
			),
		)
	}

	return nil
}
