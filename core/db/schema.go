package db

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
)

// Tables lists every table owned by the app, in creation order.
var Tables = []string{"installations", "retrospectives", "discussion_items", "action_items"}

// Retrospectives carry no foreign key to installations: single-workspace
// deployments run on a bot token and never go through the install flow.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS installations (
		id BIGINT PRIMARY KEY,
		team_id TEXT NOT NULL UNIQUE,
		access_token TEXT NOT NULL,
		bot_user_id TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS retrospectives (
		id BIGINT PRIMARY KEY,
		team_id TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'active' CHECK (status IN ('active', 'finished')),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		finished_at TIMESTAMPTZ,
		summary TEXT,
		CHECK ((status = 'active' AND finished_at IS NULL AND summary IS NULL)
			OR (status = 'finished' AND finished_at IS NOT NULL AND summary IS NOT NULL))
	)`,
	`CREATE TABLE IF NOT EXISTS discussion_items (
		id BIGINT PRIMARY KEY,
		retro_id BIGINT NOT NULL REFERENCES retrospectives(id) ON DELETE CASCADE,
		user_id TEXT NOT NULL,
		user_name TEXT NOT NULL,
		category TEXT NOT NULL CHECK (category IN ('good', 'bad', 'question')),
		content TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS action_items (
		id BIGINT PRIMARY KEY,
		retro_id BIGINT NOT NULL REFERENCES retrospectives(id) ON DELETE CASCADE,
		user_id TEXT NOT NULL,
		responsible_user_id TEXT NOT NULL,
		responsible_user_name TEXT NOT NULL,
		content TEXT NOT NULL,
		completed BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		completed_at TIMESTAMPTZ
	)`,
	`CREATE INDEX IF NOT EXISTS idx_retrospectives_team_id ON retrospectives(team_id)`,
	`CREATE INDEX IF NOT EXISTS idx_retrospectives_status ON retrospectives(status)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_retrospectives_one_active ON retrospectives(team_id) WHERE status = 'active'`,
	`CREATE INDEX IF NOT EXISTS idx_discussion_items_retro_id ON discussion_items(retro_id)`,
	`CREATE INDEX IF NOT EXISTS idx_action_items_retro_id ON action_items(retro_id)`,
	`CREATE INDEX IF NOT EXISTS idx_action_items_completed ON action_items(completed)`,
}

// InitSchema creates all tables and indexes. Safe to re-run.
func (db *DB) InitSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := db.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("applying schema: %w", err)
		}
	}
	slog.InfoContext(ctx, "database schema initialized", "tables", len(Tables))
	return nil
}

// CheckTables probes each table and reports whether it is queryable.
func (db *DB) CheckTables(ctx context.Context) map[string]bool {
	results := make(map[string]bool, len(Tables))
	for _, table := range Tables {
		query := fmt.Sprintf("SELECT 1 FROM %s LIMIT 1", pgx.Identifier{table}.Sanitize())
		rows, err := db.pool.Query(ctx, query)
		if err != nil {
			results[table] = false
			continue
		}
		rows.Close()
		results[table] = rows.Err() == nil
	}
	return results
}
