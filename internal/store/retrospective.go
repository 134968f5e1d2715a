package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/denwilliams/slack-retro/common/id"
	"github.com/denwilliams/slack-retro/core/db/sqlc"
	"github.com/denwilliams/slack-retro/internal/model"
)

type retrospectiveStore struct {
	queries *sqlc.Queries
}

func newRetrospectiveStore(queries *sqlc.Queries) RetrospectiveStore {
	return &retrospectiveStore{queries: queries}
}

func (s *retrospectiveStore) GetActive(ctx context.Context, teamID string) (*model.Retrospective, error) {
	row, err := s.queries.GetActiveRetroByTeam(ctx, teamID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toRetrospectiveModel(row)
}

func (s *retrospectiveStore) Create(ctx context.Context, teamID string) (*model.Retrospective, error) {
	row, err := s.queries.CreateRetro(ctx, sqlc.CreateRetroParams{
		ID:     id.New(),
		TeamID: teamID,
	})
	if err != nil {
		return nil, err
	}
	return toRetrospectiveModel(row)
}

func (s *retrospectiveStore) CreateIfNoneActive(ctx context.Context, teamID string) (*model.Retrospective, error) {
	row, err := s.queries.CreateRetroIfNoneActive(ctx, sqlc.CreateRetroParams{
		ID:     id.New(),
		TeamID: teamID,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrActiveRetroExists
		}
		return nil, err
	}
	return toRetrospectiveModel(row)
}

func (s *retrospectiveStore) LockActive(ctx context.Context, retroID int64) (*model.Retrospective, error) {
	row, err := s.queries.GetActiveRetroForUpdate(ctx, retroID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toRetrospectiveModel(row)
}

func (s *retrospectiveStore) Finish(ctx context.Context, retroID int64, summary string) (*model.Retrospective, error) {
	row, err := s.queries.FinishRetro(ctx, sqlc.FinishRetroParams{
		ID:      retroID,
		Summary: summary,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toRetrospectiveModel(row)
}

func (s *retrospectiveStore) ListFinished(ctx context.Context, teamID string, limit int32) ([]model.Retrospective, error) {
	rows, err := s.queries.ListFinishedRetros(ctx, sqlc.ListFinishedRetrosParams{
		TeamID: teamID,
		Limit:  limit,
	})
	if err != nil {
		return nil, err
	}
	result := make([]model.Retrospective, 0, len(rows))
	for _, row := range rows {
		retro, err := toRetrospectiveModel(row)
		if err != nil {
			return nil, err
		}
		result = append(result, *retro)
	}
	return result, nil
}

func toRetrospectiveModel(row sqlc.Retrospective) (*model.Retrospective, error) {
	retro := &model.Retrospective{
		ID:        row.ID,
		TeamID:    row.TeamID,
		CreatedAt: row.CreatedAt.Time,
	}

	switch model.RetroStatus(row.Status) {
	case model.RetroStatusActive:
		retro.State = model.Active{}
	case model.RetroStatusFinished:
		if !row.FinishedAt.Valid || row.Summary == nil {
			return nil, fmt.Errorf("retrospective %d is finished without finish time or summary", row.ID)
		}
		retro.State = model.Finished{
			FinishedAt: row.FinishedAt.Time,
			Summary:    *row.Summary,
		}
	default:
		return nil, fmt.Errorf("retrospective %d has unknown status %q", row.ID, row.Status)
	}

	return retro, nil
}
