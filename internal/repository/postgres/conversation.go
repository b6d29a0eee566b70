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

// PostgresConversationRepository implements the ConversationRepository interface
type PostgresConversationRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewConversationRepository creates a new conversation repository
func NewConversationRepository(config *RepositoryConfig) repositories.ConversationRepository {
	return &PostgresConversationRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

const conversationColumns = `id, title, messages, model, system_prompt, parameters,
		folder_id, tag_ids, is_shared, share_id, share_settings, created_at, updated_at`

// Create inserts a new conversation
func (r *PostgresConversationRepository) Create(ctx context.Context, conv *models.Conversation) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`, r.tables.Conversations, conversationColumns)

	exec := GetExecutor(ctx, r.pool)
	_, err := exec.Exec(ctx, query,
		conv.ID,
		conv.Title,
		conv.Messages, // pgx handles slice -> JSONB
		conv.Model,
		conv.SystemPrompt,
		conv.Parameters, // pgx handles map -> JSONB (nil becomes NULL)
		conv.FolderID,
		conv.TagIDs,
		conv.IsShared,
		conv.ShareID,
		conv.ShareSettings,
		conv.CreatedAt,
		conv.UpdatedAt,
	)

	if err != nil {
		if isPgDuplicateError(err) {
			return fmt.Errorf("conversation %s: %w", conv.ID, domain.ErrConflict)
		}
		return classify("create conversation", err)
	}

	return nil
}

// GetByID retrieves a conversation by ID
func (r *PostgresConversationRepository) GetByID(ctx context.Context, id string) (*models.Conversation, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1
	`, conversationColumns, r.tables.Conversations)

	exec := GetExecutor(ctx, r.pool)
	conv, err := scanConversation(exec.QueryRow(ctx, query, id))
	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("conversation %s: %w", id, domain.ErrNotFound)
		}
		return nil, classify("get conversation", err)
	}

	return conv, nil
}

// GetByShareID retrieves a conversation by its public share ID
func (r *PostgresConversationRepository) GetByShareID(ctx context.Context, shareID string) (*models.Conversation, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE share_id = $1
	`, conversationColumns, r.tables.Conversations)

	exec := GetExecutor(ctx, r.pool)
	conv, err := scanConversation(exec.QueryRow(ctx, query, shareID))
	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("shared conversation %s: %w", shareID, domain.ErrNotFound)
		}
		return nil, classify("get shared conversation", err)
	}

	return conv, nil
}

// Update persists all mutable fields of a conversation
func (r *PostgresConversationRepository) Update(ctx context.Context, conv *models.Conversation) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET title = $1, messages = $2, model = $3, system_prompt = $4,
		    parameters = $5, folder_id = $6, tag_ids = $7, is_shared = $8,
		    share_id = $9, share_settings = $10, updated_at = $11
		WHERE id = $12
	`, r.tables.Conversations)

	exec := GetExecutor(ctx, r.pool)
	result, err := exec.Exec(ctx, query,
		conv.Title,
		conv.Messages,
		conv.Model,
		conv.SystemPrompt,
		conv.Parameters,
		conv.FolderID,
		conv.TagIDs,
		conv.IsShared,
		conv.ShareID,
		conv.ShareSettings,
		conv.UpdatedAt,
		conv.ID,
	)

	if err != nil {
		return classify("update conversation", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("conversation %s: %w", conv.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes a conversation
func (r *PostgresConversationRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1
	`, r.tables.Conversations)

	exec := GetExecutor(ctx, r.pool)
	result, err := exec.Exec(ctx, query, id)
	if err != nil {
		return classify("delete conversation", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("conversation %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// List returns conversations matching the filter, most recently updated first
func (r *PostgresConversationRepository) List(ctx context.Context, filter repositories.ConversationFilter) ([]models.Conversation, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
	`, conversationColumns, r.tables.Conversations)

	var args []interface{}
	var where []string
	if filter.FolderID != nil {
		args = append(args, *filter.FolderID)
		where = append(where, fmt.Sprintf("folder_id = $%d", len(args)))
	}
	if filter.TagID != nil {
		args = append(args, *filter.TagID)
		where = append(where, fmt.Sprintf("$%d = ANY(tag_ids)", len(args)))
	}
	for i, clause := range where {
		if i == 0 {
			query += " WHERE " + clause
		} else {
			query += " AND " + clause
		}
	}
	query += " ORDER BY updated_at DESC"

	exec := GetExecutor(ctx, r.pool)
	rows, err := exec.Query(ctx, query, args...)
	if err != nil {
		return nil, classify("list conversations", err)
	}
	defer rows.Close()

	var convs []models.Conversation
	for rows.Next() {
		conv, err := scanConversation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan conversation: %w", err)
		}
		convs = append(convs, *conv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate conversations: %w", err)
	}

	return convs, nil
}

// ListPlacements returns the id/title/folder projection of every conversation
func (r *PostgresConversationRepository) ListPlacements(ctx context.Context) ([]models.ConversationPlacement, error) {
	query := fmt.Sprintf(`
		SELECT id, title, folder_id, updated_at
		FROM %s
		ORDER BY updated_at DESC
	`, r.tables.Conversations)

	exec := GetExecutor(ctx, r.pool)
	rows, err := exec.Query(ctx, query)
	if err != nil {
		return nil, classify("list conversation placements", err)
	}
	defer rows.Close()

	var placements []models.ConversationPlacement
	for rows.Next() {
		var p models.ConversationPlacement
		if err := rows.Scan(&p.ID, &p.Title, &p.FolderID, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan conversation placement: %w", err)
		}
		placements = append(placements, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate conversation placements: %w", err)
	}

	return placements, nil
}

// ClearFolderRefs nulls folder_id on every conversation filed under one
// of the given folders. Runs as a single UPDATE so the orphan count is
// exact even when called concurrently.
func (r *PostgresConversationRepository) ClearFolderRefs(ctx context.Context, folderIDs []string) (int64, error) {
	if len(folderIDs) == 0 {
		return 0, nil
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET folder_id = NULL, updated_at = NOW()
		WHERE folder_id = ANY($1)
	`, r.tables.Conversations)

	exec := GetExecutor(ctx, r.pool)
	result, err := exec.Exec(ctx, query, folderIDs)
	if err != nil {
		return 0, classify("clear folder refs", err)
	}

	return result.RowsAffected(), nil
}

// DetachTag removes a tag id from every conversation carrying it
func (r *PostgresConversationRepository) DetachTag(ctx context.Context, tagID string) (int64, error) {
	query := fmt.Sprintf(`
		UPDATE %s
		SET tag_ids = array_remove(tag_ids, $1), updated_at = NOW()
		WHERE $1 = ANY(tag_ids)
	`, r.tables.Conversations)

	exec := GetExecutor(ctx, r.pool)
	result, err := exec.Exec(ctx, query, tagID)
	if err != nil {
		return 0, classify("detach tag", err)
	}

	return result.RowsAffected(), nil
}

func scanConversation(row pgx.Row) (*models.Conversation, error) {
	var conv models.Conversation
	err := row.Scan(
		&conv.ID,
		&conv.Title,
		&conv.Messages, // pgx handles JSONB -> slice
		&conv.Model,
		&conv.SystemPrompt,
		&conv.Parameters, // pgx handles JSONB -> map
		&conv.FolderID,
		&conv.TagIDs,
		&conv.IsShared,
		&conv.ShareID,
		&conv.ShareSettings,
		&conv.CreatedAt,
		&conv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &conv, nil
}
