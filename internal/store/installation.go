package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/denwilliams/slack-retro/common/id"
	"github.com/denwilliams/slack-retro/core/db/sqlc"
	"github.com/denwilliams/slack-retro/internal/model"
)

type installationStore struct {
	queries *sqlc.Queries
}

func newInstallationStore(queries *sqlc.Queries) InstallationStore {
	return &installationStore{queries: queries}
}

func (s *installationStore) Upsert(ctx context.Context, teamID, accessToken, botUserID string) (*model.Installation, error) {
	row, err := s.queries.UpsertInstallation(ctx, sqlc.UpsertInstallationParams{
		ID:          id.New(),
		TeamID:      teamID,
		AccessToken: accessToken,
		BotUserID:   botUserID,
	})
	if err != nil {
		return nil, err
	}
	return toInstallationModel(row), nil
}

func (s *installationStore) GetByTeam(ctx context.Context, teamID string) (*model.Installation, error) {
	row, err := s.queries.GetInstallationByTeam(ctx, teamID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toInstallationModel(row), nil
}

func toInstallationModel(row sqlc.Installation) *model.Installation {
	return &model.Installation{
		ID:          row.ID,
		TeamID:      row.TeamID,
		AccessToken: row.AccessToken,
		BotUserID:   row.BotUserID,
		CreatedAt:   row.CreatedAt.Time,
	}
}
