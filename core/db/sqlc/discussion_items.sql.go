package sqlc

import (
	"context"
)

const discussionItemColumns = `id, retro_id, user_id, user_name, category, content, created_at`

func scanDiscussionItem(row interface{ Scan(...any) error }) (DiscussionItem, error) {
	var i DiscussionItem
	err := row.Scan(
		&i.ID,
		&i.RetroID,
		&i.UserID,
		&i.UserName,
		&i.Category,
		&i.Content,
		&i.CreatedAt,
	)
	return i, err
}

const createDiscussionItem = `
INSERT INTO discussion_items (id, retro_id, user_id, user_name, category, content)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING ` + discussionItemColumns

type CreateDiscussionItemParams struct {
	ID       int64  `json:"id"`
	RetroID  int64  `json:"retro_id"`
	UserID   string `json:"user_id"`
	UserName string `json:"user_name"`
	Category string `json:"category"`
	Content  string `json:"content"`
}

func (q *Queries) CreateDiscussionItem(ctx context.Context, arg CreateDiscussionItemParams) (DiscussionItem, error) {
	row := q.db.QueryRow(ctx, createDiscussionItem,
		arg.ID,
		arg.RetroID,
		arg.UserID,
		arg.UserName,
		arg.Category,
		arg.Content,
	)
	return scanDiscussionItem(row)
}

const listDiscussionItemsByRetro = `
SELECT ` + discussionItemColumns + ` FROM discussion_items
WHERE retro_id = $1
ORDER BY category, created_at ASC, id ASC`

func (q *Queries) ListDiscussionItemsByRetro(ctx context.Context, retroID int64) ([]DiscussionItem, error) {
	rows, err := q.db.Query(ctx, listDiscussionItemsByRetro, retroID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []DiscussionItem{}
	for rows.Next() {
		i, err := scanDiscussionItem(rows)
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

const updateOwnedDiscussionItem = `
UPDATE discussion_items
SET content = $3
WHERE id = $1 AND user_id = $2
RETURNING ` + discussionItemColumns

type UpdateOwnedDiscussionItemParams struct {
	ID      int64  `json:"id"`
	UserID  string `json:"user_id"`
	Content string `json:"content"`
}

// UpdateOwnedDiscussionItem returns pgx.ErrNoRows when the item is missing or owned by someone else.
func (q *Queries) UpdateOwnedDiscussionItem(ctx context.Context, arg UpdateOwnedDiscussionItemParams) (DiscussionItem, error) {
	row := q.db.QueryRow(ctx, updateOwnedDiscussionItem, arg.ID, arg.UserID, arg.Content)
	return scanDiscussionItem(row)
}

const deleteOwnedDiscussionItem = `
DELETE FROM discussion_items
WHERE id = $1 AND user_id = $2`

type DeleteOwnedDiscussionItemParams struct {
	ID     int64  `json:"id"`
	UserID string `json:"user_id"`
}

func (q *Queries) DeleteOwnedDiscussionItem(ctx context.Context, arg DeleteOwnedDiscussionItemParams) (int64, error) {
	result, err := q.db.Exec(ctx, deleteOwnedDiscussionItem, arg.ID, arg.UserID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const deleteDiscussionItemsByRetro = `
DELETE FROM discussion_items WHERE retro_id = $1`

func (q *Queries) DeleteDiscussionItemsByRetro(ctx context.Context, retroID int64) error {
	_, err := q.db.Exec(ctx, deleteDiscussionItemsByRetro, retroID)
	return err
}
