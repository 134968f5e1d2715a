package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/denwilliams/slack-retro/common/id"
	"github.com/denwilliams/slack-retro/core/db/sqlc"
	"github.com/denwilliams/slack-retro/internal/model"
)

type actionItemStore struct {
	queries *sqlc.Queries
}

func newActionItemStore(queries *sqlc.Queries) ActionItemStore {
	return &actionItemStore{queries: queries}
}

func (s *actionItemStore) Create(ctx context.Context, item *model.ActionItem) error {
	if item.ID == 0 {
		item.ID = id.New()
	}
	row, err := s.queries.CreateActionItem(ctx, sqlc.CreateActionItemParams{
		ID:                  item.ID,
		RetroID:             item.RetroID,
		UserID:              item.UserID,
		ResponsibleUserID:   item.ResponsibleUserID,
		ResponsibleUserName: item.ResponsibleUserName,
		Content:             item.Content,
	})
	if err != nil {
		return err
	}
	*item = toActionItemModel(row)
	return nil
}

func (s *actionItemStore) ListIncompleteByRetro(ctx context.Context, retroID int64) ([]model.ActionItem, error) {
	rows, err := s.queries.ListIncompleteActionItemsByRetro(ctx, retroID)
	if err != nil {
		return nil, err
	}
	return toActionItemModels(rows), nil
}

func (s *actionItemStore) ListByRetro(ctx context.Context, retroID int64) ([]model.ActionItem, error) {
	rows, err := s.queries.ListActionItemsByRetro(ctx, retroID)
	if err != nil {
		return nil, err
	}
	return toActionItemModels(rows), nil
}

func (s *actionItemStore) MarkComplete(ctx context.Context, itemID int64) (*model.ActionItem, error) {
	row, err := s.queries.MarkActionItemComplete(ctx, itemID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	item := toActionItemModel(row)
	return &item, nil
}

func (s *actionItemStore) MarkIncomplete(ctx context.Context, itemID int64) (*model.ActionItem, error) {
	row, err := s.queries.MarkActionItemIncomplete(ctx, itemID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	item := toActionItemModel(row)
	return &item, nil
}

func (s *actionItemStore) MigrateIncomplete(ctx context.Context, fromRetroID, toRetroID int64) (int64, error) {
	return s.queries.MigrateIncompleteActionItems(ctx, sqlc.MigrateIncompleteActionItemsParams{
		FromRetroID: fromRetroID,
		ToRetroID:   toRetroID,
	})
}

func toActionItemModel(row sqlc.ActionItem) model.ActionItem {
	var completedAt *time.Time
	if row.CompletedAt.Valid {
		completedAt = &row.CompletedAt.Time
	}

	return model.ActionItem{
		ID:                  row.ID,
		RetroID:             row.RetroID,
		UserID:              row.UserID,
		ResponsibleUserID:   row.ResponsibleUserID,
		ResponsibleUserName: row.ResponsibleUserName,
		Content:             row.Content,
		Completed:           row.Completed,
		CreatedAt:           row.CreatedAt.Time,
		CompletedAt:         completedAt,
	}
}

func toActionItemModels(rows []sqlc.ActionItem) []model.ActionItem {
	result := make([]model.ActionItem, len(rows))
	for i, row := range rows {
		result[i] = toActionItemModel(row)
	}
	return result
}
