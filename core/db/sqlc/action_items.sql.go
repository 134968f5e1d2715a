package sqlc

import (
	"context"
)

const actionItemColumns = `id, retro_id, user_id, responsible_user_id, responsible_user_name, content, completed, created_at, completed_at`

func scanActionItem(row interface{ Scan(...any) error }) (ActionItem, error) {
	var i ActionItem
	err := row.Scan(
		&i.ID,
		&i.RetroID,
		&i.UserID,
		&i.ResponsibleUserID,
		&i.ResponsibleUserName,
		&i.Content,
		&i.Completed,
		&i.CreatedAt,
		&i.CompletedAt,
	)
	return i, err
}

func (q *Queries) collectActionItems(ctx context.Context, query string, args ...any) ([]ActionItem, error) {
	rows, err := q.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []ActionItem{}
	for rows.Next() {
		i, err := scanActionItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const createActionItem = `
INSERT INTO action_items (id, retro_id, user_id, responsible_user_id, responsible_user_name, content)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING ` + actionItemColumns

type CreateActionItemParams struct {
	ID                  int64  `json:"id"`
	RetroID             int64  `json:"retro_id"`
	UserID              string `json:"user_id"`
	ResponsibleUserID   string `json:"responsible_user_id"`
	ResponsibleUserName string `json:"responsible_user_name"`
	Content             string `json:"content"`
}

func (q *Queries) CreateActionItem(ctx context.Context, arg CreateActionItemParams) (ActionItem, error) {
	row := q.db.QueryRow(ctx, createActionItem,
		arg.ID,
		arg.RetroID,
		arg.UserID,
		arg.ResponsibleUserID,
		arg.ResponsibleUserName,
		arg.Content,
	)
	return scanActionItem(row)
}

const listIncompleteActionItemsByRetro = `
SELECT ` + actionItemColumns + ` FROM action_items
WHERE retro_id = $1 AND completed = false
ORDER BY created_at ASC, id ASC`

func (q *Queries) ListIncompleteActionItemsByRetro(ctx context.Context, retroID int64) ([]ActionItem, error) {
	return q.collectActionItems(ctx, listIncompleteActionItemsByRetro, retroID)
}

const listActionItemsByRetro = `
SELECT ` + actionItemColumns + ` FROM action_items
WHERE retro_id = $1
ORDER BY completed ASC, created_at ASC, id ASC`

func (q *Queries) ListActionItemsByRetro(ctx context.Context, retroID int64) ([]ActionItem, error) {
	return q.collectActionItems(ctx, listActionItemsByRetro, retroID)
}

const markActionItemComplete = `
UPDATE action_items
SET completed = true, completed_at = NOW()
WHERE id = $1
RETURNING ` + actionItemColumns

func (q *Queries) MarkActionItemComplete(ctx context.Context, id int64) (ActionItem, error) {
	row := q.db.QueryRow(ctx, markActionItemComplete, id)
	return scanActionItem(row)
}

const markActionItemIncomplete = `
UPDATE action_items
SET completed = false, completed_at = NULL
WHERE id = $1
RETURNING ` + actionItemColumns

func (q *Queries) MarkActionItemIncomplete(ctx context.Context, id int64) (ActionItem, error) {
	row := q.db.QueryRow(ctx, markActionItemIncomplete, id)
	return scanActionItem(row)
}

const migrateIncompleteActionItems = `
UPDATE action_items
SET retro_id = $2
WHERE retro_id = $1 AND completed = false`

type MigrateIncompleteActionItemsParams struct {
	FromRetroID int64 `json:"from_retro_id"`
	ToRetroID   int64 `json:"to_retro_id"`
}

// MigrateIncompleteActionItems is a single statement, so all matching rows move or none do.
func (q *Queries) MigrateIncompleteActionItems(ctx context.Context, arg MigrateIncompleteActionItemsParams) (int64, error) {
	result, err := q.db.Exec(ctx, migrateIncompleteActionItems, arg.FromRetroID, arg.ToRetroID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
