package conversations

import (
	"context"
	"fmt"

	"chatfolio/internal/domain"
	"chatfolio/internal/domain/models"
	"chatfolio/internal/domain/repositories"
)

// fakeConversationRepo is an in-memory ConversationRepository.
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

// fakeFolderRepo only needs GetByID lookups for filing checks.
type fakeFolderRepo struct {
	folders map[string]models.Folder
}

func newFakeFolderRepo() *fakeFolderRepo {
	return &fakeFolderRepo{folders: make(map[string]models.Folder)}
}

func (r *fakeFolderRepo) Create(_ context.Context, folder *models.Folder) error {
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
	return all, nil
}

func (r *fakeFolderRepo) Update(_ context.Context, folder *models.Folder) error {
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

// fakeTagRepo is an in-memory TagRepository.
type fakeTagRepo struct {
	tags map[string]models.Tag
}

func newFakeTagRepo() *fakeTagRepo {
	return &fakeTagRepo{tags: make(map[string]models.Tag)}
}

func (r *fakeTagRepo) Create(_ context.Context, tag *models.Tag) error {
	r.tags[tag.ID] = *tag
	return nil
}

func (r *fakeTagRepo) GetByID(_ context.Context, id string) (*models.Tag, error) {
	tag, ok := r.tags[id]
	if !ok {
		return nil, fmt.Errorf("tag %s: %w", id, domain.ErrNotFound)
	}
	return &tag, nil
}

func (r *fakeTagRepo) GetAll(_ context.Context) ([]models.Tag, error) {
	all := make([]models.Tag, 0, len(r.tags))
	for _, tag := range r.tags {
		all = append(all, tag)
	}
	return all, nil
}

func (r *fakeTagRepo) Update(_ context.Context, tag *models.Tag) error {
	if _, ok := r.tags[tag.ID]; !ok {
		return fmt.Errorf("tag %s: %w", tag.ID, domain.ErrNotFound)
	}
	r.tags[tag.ID] = *tag
	return nil
}

func (r *fakeTagRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.tags[id]; !ok {
		return fmt.Errorf("tag %s: %w", id, domain.ErrNotFound)
	}
	delete(r.tags, id)
	return nil
}
