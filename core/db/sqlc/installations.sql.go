package sqlc

import (
	"context"
)

const installationColumns = `id, team_id, access_token, bot_user_id, created_at`

func scanInstallation(row interface{ Scan(...any) error }) (Installation, error) {
	var i Installation
	err := row.Scan(
		&i.ID,
		&i.TeamID,
		&i.AccessToken,
		&i.BotUserID,
		&i.CreatedAt,
	)
	return i, err
}

const upsertInstallation = `
INSERT INTO installations (id, team_id, access_token, bot_user_id)
VALUES ($1, $2, $3, $4)
ON CONFLICT (team_id)
DO UPDATE SET access_token = EXCLUDED.access_token, bot_user_id = EXCLUDED.bot_user_id
RETURNING ` + installationColumns

type UpsertInstallationParams struct {
	ID          int64  `json:"id"`
	TeamID      string `json:"team_id"`
	AccessToken string `json:"access_token"`
	BotUserID   string `json:"bot_user_id"`
}

// UpsertInstallation keeps the original id and created_at when the team already exists.
func (q *Queries) UpsertInstallation(ctx context.Context, arg UpsertInstallationParams) (Installation, error) {
	row := q.db.QueryRow(ctx, upsertInstallation,
		arg.ID,
		arg.TeamID,
		arg.AccessToken,
		arg.BotUserID,
	)
	return scanInstallation(row)
}

const getInstallationByTeam = `
SELECT ` + installationColumns + ` FROM installations
WHERE team_id = $1`

func (q *Queries) GetInstallationByTeam(ctx context.Context, teamID string) (Installation, error) {
	row := q.db.QueryRow(ctx, getInstallationByTeam, teamID)
	return scanInstallation(row)
}
