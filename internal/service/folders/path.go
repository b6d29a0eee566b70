package folders

import (
	"context"
	"fmt"

	"chatfolio/internal/domain"
	"chatfolio/internal/domain/models"
)

// ParentLookup resolves a folder by id. Both the pgx repository and the
// id-indexed map used during subtree recomputation satisfy it.
type ParentLookup interface {
	GetByID(ctx context.Context, id string) (*models.Folder, error)
}

// ComputePath derives the materialized path and level for a folder from
// its ParentID. Pure over its inputs: no writes. A root folder's path is
// its own id at level 0; otherwise the parent's path is extended.
//
// A missing parent fails with ErrNotFound instead of falling back to a
// root-level record: a silent fallback would persist a dangling
// parent reference that every later read trips over.
func ComputePath(ctx context.Context, folder *models.Folder, parents ParentLookup) (string, int, error) {
	if folder.ParentID == nil {
		return folder.ID, 0, nil
	}

	parent, err := parents.GetByID(ctx, *folder.ParentID)
	if err != nil {
		return "", 0, fmt.Errorf("resolve parent %s: %w", *folder.ParentID, err)
	}

	return parent.Path + models.PathSeparator + folder.ID, parent.Level + 1, nil
}

// mapLookup adapts an id-indexed folder map to ParentLookup.
type mapLookup map[string]*models.Folder

func (m mapLookup) GetByID(_ context.Context, id string) (*models.Folder, error) {
	f, ok := m[id]
	if !ok {
		return nil, fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}
	return f, nil
}
