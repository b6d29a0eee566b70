package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"chatfolio/internal/domain"
	"chatfolio/internal/domain/models"
	"chatfolio/internal/domain/repositories"
)

// PostgresFolderRepository implements the FolderRepository interface
type PostgresFolderRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewFolderRepository creates a new folder repository
func NewFolderRepository(config *RepositoryConfig) repositories.FolderRepository {
	return &PostgresFolderRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create inserts a new folder. ID, Path and Level are computed by the
// caller before insert; the row is stored exactly as given.
func (r *PostgresFolderRepository) Create(ctx context.Context, folder *models.Folder) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, name, color, parent_id, path, level, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, r.tables.Folders)

	exec := GetExecutor(ctx, r.pool)
	_, err := exec.Exec(ctx, query,
		folder.ID,
		folder.Name,
		folder.Color,
		folder.ParentID,
		folder.Path,
		folder.Level,
		folder.CreatedAt,
		folder.UpdatedAt,
	)

	if err != nil {
		if isPgDuplicateError(err) {
			return fmt.Errorf("folder %s: %w", folder.ID, domain.ErrConflict)
		}
		return classify("create folder", err)
	}

	return nil
}

// GetByID retrieves a folder by ID
func (r *PostgresFolderRepository) GetByID(ctx context.Context, id string) (*models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT id, name, color, parent_id, path, level, created_at, updated_at
		FROM %s
		WHERE id = $1
	`, r.tables.Folders)

	exec := GetExecutor(ctx, r.pool)
	var folder models.Folder
	err := exec.QueryRow(ctx, query, id).Scan(
		&folder.ID,
		&folder.Name,
		&folder.Color,
		&folder.ParentID,
		&folder.Path,
		&folder.Level,
		&folder.CreatedAt,
		&folder.UpdatedAt,
	)

	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
		}
		return nil, classify("get folder", err)
	}

	return &folder, nil
}

// GetAll retrieves every folder, ordered by level then name
func (r *PostgresFolderRepository) GetAll(ctx context.Context) ([]models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT id, name, color, parent_id, path, level, created_at, updated_at
		FROM %s
		ORDER BY level ASC, name ASC
	`, r.tables.Folders)

	exec := GetExecutor(ctx, r.pool)
	rows, err := exec.Query(ctx, query)
	if err != nil {
		return nil, classify("get all folders", err)
	}
	defer rows.Close()

	return scanFolders(rows)
}

// Update persists all mutable fields, including the derived path and
// level, so a move rewrites ancestry in the same statement.
func (r *PostgresFolderRepository) Update(ctx context.Context, folder *models.Folder) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, color = $2, parent_id = $3, path = $4, level = $5, updated_at = $6
		WHERE id = $7
	`, r.tables.Folders)

	exec := GetExecutor(ctx, r.pool)
	result, err := exec.Exec(ctx, query,
		folder.Name,
		folder.Color,
		folder.ParentID,
		folder.Path,
		folder.Level,
		folder.UpdatedAt,
		folder.ID,
	)

	if err != nil {
		return classify("update folder", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("folder %s: %w", folder.ID, domain.ErrNotFound)
	}

	return nil
}

// ListSubtree returns the folder whose ID is rootID together with every
// descendant. Membership is segment-exact on the materialized path, so
// an ID that happens to be a prefix of another never matches.
func (r *PostgresFolderRepository) ListSubtree(ctx context.Context, rootID string) ([]models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT id, name, color, parent_id, path, level, created_at, updated_at
		FROM %s
		WHERE $1 = ANY(string_to_array(path, ','))
		ORDER BY level ASC, name ASC
	`, r.tables.Folders)

	exec := GetExecutor(ctx, r.pool)
	rows, err := exec.Query(ctx, query, rootID)
	if err != nil {
		return nil, classify("list folder subtree", err)
	}
	defer rows.Close()

	return scanFolders(rows)
}

// DeleteByIDs removes all folders in the id set in one statement
func (r *PostgresFolderRepository) DeleteByIDs(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = ANY($1)
	`, r.tables.Folders)

	exec := GetExecutor(ctx, r.pool)
	result, err := exec.Exec(ctx, query, ids)
	if err != nil {
		return 0, classify("delete folders", err)
	}

	return result.RowsAffected(), nil
}

func scanFolders(rows pgx.Rows) ([]models.Folder, error) {
	var folders []models.Folder
	for rows.Next() {
		var folder models.Folder
		err := rows.Scan(
			&folder.ID,
			&folder.Name,
			&folder.Color,
			&folder.ParentID,
			&folder.Path,
			&folder.Level,
			&folder.CreatedAt,
			&folder.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan folder: %w", err)
		}
		folders = append(folders, folder)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate folders: %w", err)
	}

	return folders, nil
}
