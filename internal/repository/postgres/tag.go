package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"chatfolio/internal/domain"
	"chatfolio/internal/domain/models"
	"chatfolio/internal/domain/repositories"
)

// PostgresTagRepository implements the TagRepository interface
type PostgresTagRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewTagRepository creates a new tag repository
func NewTagRepository(config *RepositoryConfig) repositories.TagRepository {
	return &PostgresTagRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create inserts a new tag. Tag names are unique.
func (r *PostgresTagRepository) Create(ctx context.Context, tag *models.Tag) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, name, color, created_at)
		VALUES ($1, $2, $3, $4)
	`, r.tables.Tags)

	exec := GetExecutor(ctx, r.pool)
	_, err := exec.Exec(ctx, query, tag.ID, tag.Name, tag.Color, tag.CreatedAt)
	if err != nil {
		if isPgDuplicateError(err) {
			return fmt.Errorf("tag '%s': %w", tag.Name, domain.ErrConflict)
		}
		return classify("create tag", err)
	}

	return nil
}

// GetByID retrieves a tag by ID
func (r *PostgresTagRepository) GetByID(ctx context.Context, id string) (*models.Tag, error) {
	query := fmt.Sprintf(`
		SELECT id, name, color, created_at
		FROM %s
		WHERE id = $1
	`, r.tables.Tags)

	exec := GetExecutor(ctx, r.pool)
	var tag models.Tag
	err := exec.QueryRow(ctx, query, id).Scan(&tag.ID, &tag.Name, &tag.Color, &tag.CreatedAt)
	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("tag %s: %w", id, domain.ErrNotFound)
		}
		return nil, classify("get tag", err)
	}

	return &tag, nil
}

// GetAll retrieves every tag, ordered by name
func (r *PostgresTagRepository) GetAll(ctx context.Context) ([]models.Tag, error) {
	query := fmt.Sprintf(`
		SELECT id, name, color, created_at
		FROM %s
		ORDER BY name ASC
	`, r.tables.Tags)

	exec := GetExecutor(ctx, r.pool)
	rows, err := exec.Query(ctx, query)
	if err != nil {
		return nil, classify("get all tags", err)
	}
	defer rows.Close()

	var tags []models.Tag
	for rows.Next() {
		var tag models.Tag
		if err := rows.Scan(&tag.ID, &tag.Name, &tag.Color, &tag.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		tags = append(tags, tag)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tags: %w", err)
	}

	return tags, nil
}

// Update persists a tag's mutable fields
func (r *PostgresTagRepository) Update(ctx context.Context, tag *models.Tag) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, color = $2
		WHERE id = $3
	`, r.tables.Tags)

	exec := GetExecutor(ctx, r.pool)
	result, err := exec.Exec(ctx, query, tag.Name, tag.Color, tag.ID)
	if err != nil {
		if isPgDuplicateError(err) {
			return fmt.Errorf("tag '%s': %w", tag.Name, domain.ErrConflict)
		}
		return classify("update tag", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("tag %s: %w", tag.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes a tag
func (r *PostgresTagRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1
	`, r.tables.Tags)

	exec := GetExecutor(ctx, r.pool)
	result, err := exec.Exec(ctx, query, id)
	if err != nil {
		return classify("delete tag", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("tag %s: %w", id, domain.ErrNotFound)
	}

	return nil
}
