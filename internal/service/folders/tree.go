package folders

import (
	"context"

	"chatfolio/internal/domain/models"

	"golang.org/x/sync/errgroup"
)

// GetTree builds the nested folder tree with conversation titles placed
// in their folders. The folder set and the conversation placements load
// concurrently; assembly is the usual multi-pass map build.
func (s *folderService) GetTree(ctx context.Context) (*models.Tree, error) {
	var (
		allFolders []models.Folder
		placements []models.ConversationPlacement
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		allFolders, err = s.folderRepo.GetAll(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		placements, err = s.convRepo.ListPlacements(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// First pass: create all folder nodes
	folderMap := make(map[string]*models.FolderTreeNode, len(allFolders))
	var rootFolderIDs []string
	for _, folder := range allFolders {
		folderMap[folder.ID] = &models.FolderTreeNode{
			ID:            folder.ID,
			Name:          folder.Name,
			Color:         folder.Color,
			ParentID:      folder.ParentID,
			Level:         folder.Level,
			CreatedAt:     folder.CreatedAt,
			Folders:       []*models.FolderTreeNode{},
			Conversations: []models.ConversationPlacement{},
		}
	}

	// Second pass: nest folders by connecting children to parents
	for _, folder := range allFolders {
		node := folderMap[folder.ID]
		if folder.ParentID == nil {
			rootFolderIDs = append(rootFolderIDs, folder.ID)
		} else if parent, exists := folderMap[*folder.ParentID]; exists {
			parent.Folders = append(parent.Folders, node)
		}
	}

	// Third pass: place conversations in their folders
	unfiled := make([]models.ConversationPlacement, 0)
	for _, placement := range placements {
		if placement.FolderID == nil {
			unfiled = append(unfiled, placement)
		} else if parent, exists := folderMap[*placement.FolderID]; exists {
			parent.Conversations = append(parent.Conversations, placement)
		}
	}

	rootFolders := make([]*models.FolderTreeNode, 0, len(rootFolderIDs))
	for _, folderID := range rootFolderIDs {
		rootFolders = append(rootFolders, folderMap[folderID])
	}

	tree := &models.Tree{
		Folders:       rootFolders,
		Conversations: unfiled,
	}

	s.logger.Debug("folder tree built",
		"folder_count", len(allFolders),
		"conversation_count", len(placements),
	)

	return tree, nil
}
