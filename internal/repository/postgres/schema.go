package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema creates the tables and indexes if they do not exist.
// IDs are generated by the application (the materialized path of a
// folder must be computable before insert), so id columns are plain
// TEXT and the path column can be matched against them directly.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool, tables *TableNames) error {
	createFolders := `
		CREATE TABLE IF NOT EXISTS ` + tables.Folders + ` (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			color TEXT NOT NULL,
			parent_id TEXT,
			path TEXT NOT NULL,
			level INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	if _, err := pool.Exec(ctx, createFolders); err != nil {
		return fmt.Errorf("create folders table: %w", err)
	}

	createConversations := `
		CREATE TABLE IF NOT EXISTS ` + tables.Conversations + ` (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			messages JSONB NOT NULL DEFAULT '[]',
			model TEXT NOT NULL,
			system_prompt TEXT NOT NULL DEFAULT '',
			parameters JSONB,
			folder_id TEXT,
			tag_ids TEXT[] NOT NULL DEFAULT '{}',
			is_shared BOOLEAN NOT NULL DEFAULT FALSE,
			share_id TEXT UNIQUE,
			share_settings JSONB NOT NULL DEFAULT '{}',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	if _, err := pool.Exec(ctx, createConversations); err != nil {
		return fmt.Errorf("create conversations table: %w", err)
	}

	createTags := `
		CREATE TABLE IF NOT EXISTS ` + tables.Tags + ` (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			color TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	if _, err := pool.Exec(ctx, createTags); err != nil {
		return fmt.Errorf("create tags table: %w", err)
	}

	// No FK from conversations.folder_id to folders: the cascade delete
	// nulls the reference in the same transaction as the folder delete,
	// and ClearFolderRefs must stay idempotent against rows a dropped FK
	// would already have touched.
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_` + tables.Folders + `_parent ON ` + tables.Folders + `(parent_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tables.Conversations + `_folder ON ` + tables.Conversations + `(folder_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tables.Conversations + `_updated ON ` + tables.Conversations + `(updated_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tables.Conversations + `_tags ON ` + tables.Conversations + ` USING GIN(tag_ids)`,
	}
	for _, idx := range indexes {
		if _, err := pool.Exec(ctx, idx); err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}

	return nil
}
