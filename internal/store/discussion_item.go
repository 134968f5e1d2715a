package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/denwilliams/slack-retro/common/id"
	"github.com/denwilliams/slack-retro/core/db/sqlc"
	"github.com/denwilliams/slack-retro/internal/model"
)

type discussionItemStore struct {
	queries *sqlc.Queries
}

func newDiscussionItemStore(queries *sqlc.Queries) DiscussionItemStore {
	return &discussionItemStore{queries: queries}
}

func (s *discussionItemStore) Create(ctx context.Context, item *model.DiscussionItem) error {
	if item.ID == 0 {
		item.ID = id.New()
	}
	row, err := s.queries.CreateDiscussionItem(ctx, sqlc.CreateDiscussionItemParams{
		ID:       item.ID,
		RetroID:  item.RetroID,
		UserID:   item.UserID,
		UserName: item.UserName,
		Category: string(item.Category),
		Content:  item.Content,
	})
	if err != nil {
		return err
	}
	*item = toDiscussionItemModel(row)
	return nil
}

func (s *discussionItemStore) ListByRetro(ctx context.Context, retroID int64) ([]model.DiscussionItem, error) {
	rows, err := s.queries.ListDiscussionItemsByRetro(ctx, retroID)
	if err != nil {
		return nil, err
	}
	result := make([]model.DiscussionItem, len(rows))
	for i, row := range rows {
		result[i] = toDiscussionItemModel(row)
	}
	return result, nil
}

func (s *discussionItemStore) UpdateIfOwned(ctx context.Context, itemID int64, userID, content string) (*model.DiscussionItem, error) {
	row, err := s.queries.UpdateOwnedDiscussionItem(ctx, sqlc.UpdateOwnedDiscussionItemParams{
		ID:      itemID,
		UserID:  userID,
		Content: content,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	item := toDiscussionItemModel(row)
	return &item, nil
}

func (s *discussionItemStore) DeleteIfOwned(ctx context.Context, itemID int64, userID string) (bool, error) {
	affected, err := s.queries.DeleteOwnedDiscussionItem(ctx, sqlc.DeleteOwnedDiscussionItemParams{
		ID:     itemID,
		UserID: userID,
	})
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (s *discussionItemStore) DeleteAllByRetro(ctx context.Context, retroID int64) error {
	return s.queries.DeleteDiscussionItemsByRetro(ctx, retroID)
}

func toDiscussionItemModel(row sqlc.DiscussionItem) model.DiscussionItem {
	return model.DiscussionItem{
		ID:        row.ID,
		RetroID:   row.RetroID,
		UserID:    row.UserID,
		UserName:  row.UserName,
		Category:  model.Category(row.Category),
		Content:   row.Content,
		CreatedAt: row.CreatedAt.Time,
	}
}
