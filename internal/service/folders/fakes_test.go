package folders

import (
	"context"
	"fmt"
	"sort"

	"chatfolio/internal/domain"
	"chatfolio/internal/domain/models"
	"chatfolio/internal/domain/repositories"
)

// fakeTxManager runs the function directly; the in-memory fakes have no
// transactions to manage.
type fakeTxManager struct{}

func (fakeTxManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	return fn(ctx)
}

// fakeFolderRepo is an in-memory FolderRepository.
type fakeFolderRepo struct {
	folders map[string]models.Folder
}

func newFakeFolderRepo() *fakeFolderRepo {
	return &fakeFolderRepo{folders: make(map[string]models.Folder)}
}

func (r *fakeFolderRepo) Create(_ context.Context, folder *models.Folder) error {
	if _, exists := r.folders[folder.ID]; exists {
		return fmt.Errorf("folder %s: %w", folder.ID, domain.ErrConflict)
	}
	r.folders[folder.ID] = *folder
	return nil
}

func (r *fakeFolderRepo) GetByID(_ context.Context, id string) (*models.Folder, error) {
	folder, ok := r.folders[id]
	if !ok {
		return nil, fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}
	return &folder, nil
}

func (r *fakeFolderRepo) GetAll(_ context.Context) ([]models.Folder, error) {
	all := make([]models.Folder, 0, len(r.folders))
	for _, folder := range r.folders {
		all = append(all, folder)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Level != all[j].Level {
			return all[i].Level < all[j].Level
		}
		return all[i].Name < all[j].Name
	})
	return all, nil
}

func (r *fakeFolderRepo) Update(_ context.Context, folder *models.Folder) error {
	if _, ok := r.folders[folder.ID]; !ok {
		return fmt.Errorf("folder %s: %w", folder.ID, domain.ErrNotFound)
	}
	r.folders[folder.ID] = *folder
	return nil
}

func (r *fakeFolderRepo) ListSubtree(_ context.Context, rootID string) ([]models.Folder, error) {
	var subtree []models.Folder
	for _, folder := range r.folders {
		if folder.PathContains(rootID) {
			subtree = append(subtree, folder)
		}
	}
	sort.Slice(subtree, func(i, j int) bool { return subtree[i].Level < subtree[j].Level })
	return subtree, nil
}

func (r *fakeFolderRepo) DeleteByIDs(_ context.Context, ids []string) (int64, error) {
	var deleted int64
	for _, id := range ids {
		if _, ok := r.folders[id]; ok {
			delete(r.folders, id)
			deleted++
		}
	}
	return deleted, nil
}

// fakeConversationRepo is an in-memory ConversationRepository. The folder
// service only exercises ClearFolderRefs and ListPlacements; the rest
// exist to satisfy the interface.
type fakeConversationRepo struct {
	convs map[string]models.Conversation
}

func newFakeConversationRepo() *fakeConversationRepo {
	return &fakeConversationRepo{convs: make(map[string]models.Conversation)}
}

func (r *fakeConversationRepo) Create(_ context.Context, conv *models.Conversation) error {
	r.convs[conv.ID] = *conv
	return nil
}

func (r *fakeConversationRepo) GetByID(_ context.Context, id string) (*models.Conversation, error) {
	conv, ok := r.convs[id]
	if !ok {
		return nil, fmt.Errorf("conversation %s: %w", id, domain.ErrNotFound)
	}
	return &conv, nil
}

func (r *fakeConversationRepo) GetByShareID(_ context.Context, shareID string) (*models.Conversation, error) {
	for _, conv := range r.convs {
		if conv.ShareID != nil && *conv.ShareID == shareID {
			return &conv, nil
		}
	}
	return nil, fmt.Errorf("shared conversation %s: %w", shareID, domain.ErrNotFound)
}

func (r *fakeConversationRepo) Update(_ context.Context, conv *models.Conversation) error {
	if _, ok := r.convs[conv.ID]; !ok {
		return fmt.Errorf("conversation %s: %w", conv.ID, domain.ErrNotFound)
	}
	r.convs[conv.ID] = *conv
	return nil
}

func (r *fakeConversationRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.convs[id]; !ok {
		return fmt.Errorf("conversation %s: %w", id, domain.ErrNotFound)
	}
	delete(r.convs, id)
	return nil
}

func (r *fakeConversationRepo) List(_ context.Context, filter repositories.ConversationFilter) ([]models.Conversation, error) {
	var out []models.Conversation
	for _, conv := range r.convs {
		if filter.FolderID != nil {
			if conv.FolderID == nil || *conv.FolderID != *filter.FolderID {
				continue
			}
		}
		if filter.TagID != nil {
			carries := false
			for _, t := range conv.TagIDs {
				if t == *filter.TagID {
					carries = true
					break
				}
			}
			if !carries {
				continue
			}
		}
		out = append(out, conv)
	}
	return out, nil
}

func (r *fakeConversationRepo) ListPlacements(_ context.Context) ([]models.ConversationPlacement, error) {
	placements := make([]models.ConversationPlacement, 0, len(r.convs))
	for _, conv := range r.convs {
		placements = append(placements, models.ConversationPlacement{
			ID:        conv.ID,
			Title:     conv.Title,
			FolderID:  conv.FolderID,
			UpdatedAt: conv.UpdatedAt,
		})
	}
	sort.Slice(placements, func(i, j int) bool { return placements[i].ID < placements[j].ID })
	return placements, nil
}

func (r *fakeConversationRepo) ClearFolderRefs(_ context.Context, folderIDs []string) (int64, error) {
	inSet := make(map[string]bool, len(folderIDs))
	for _, id := range folderIDs {
		inSet[id] = true
	}

	var orphaned int64
	for id, conv := range r.convs {
		if conv.FolderID != nil && inSet[*conv.FolderID] {
			conv.FolderID = nil
			r.convs[id] = conv
			orphaned++
		}
	}
	return orphaned, nil
}

func (r *fakeConversationRepo) DetachTag(_ context.Context, tagID string) (int64, error) {
	var detached int64
	for id, conv := range r.convs {
		kept := conv.TagIDs[:0:0]
		for _, t := range conv.TagIDs {
			if t != tagID {
				kept = append(kept, t)
			}
		}
		if len(kept) != len(conv.TagIDs) {
			conv.TagIDs = kept
			r.convs[id] = conv
			detached++
		}
	}
	return detached, nil
}
