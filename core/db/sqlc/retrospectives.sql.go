package sqlc

import (
	"context"
)

const retrospectiveColumns = `id, team_id, status, created_at, finished_at, summary`

func scanRetrospective(row interface{ Scan(...any) error }) (Retrospective, error) {
	var i Retrospective
	err := row.Scan(
		&i.ID,
		&i.TeamID,
		&i.Status,
		&i.CreatedAt,
		&i.FinishedAt,
		&i.Summary,
	)
	return i, err
}

const getActiveRetroByTeam = `
SELECT ` + retrospectiveColumns + ` FROM retrospectives
WHERE team_id = $1 AND status = 'active'
ORDER BY created_at DESC
LIMIT 1`

func (q *Queries) GetActiveRetroByTeam(ctx context.Context, teamID string) (Retrospective, error) {
	row := q.db.QueryRow(ctx, getActiveRetroByTeam, teamID)
	return scanRetrospective(row)
}

const createRetro = `
INSERT INTO retrospectives (id, team_id, status)
VALUES ($1, $2, 'active')
RETURNING ` + retrospectiveColumns

type CreateRetroParams struct {
	ID     int64  `json:"id"`
	TeamID string `json:"team_id"`
}

func (q *Queries) CreateRetro(ctx context.Context, arg CreateRetroParams) (Retrospective, error) {
	row := q.db.QueryRow(ctx, createRetro, arg.ID, arg.TeamID)
	return scanRetrospective(row)
}

const createRetroIfNoneActive = `
INSERT INTO retrospectives (id, team_id, status)
VALUES ($1, $2, 'active')
ON CONFLICT (team_id) WHERE status = 'active' DO NOTHING
RETURNING ` + retrospectiveColumns

// CreateRetroIfNoneActive returns pgx.ErrNoRows when another active retro won the race.
func (q *Queries) CreateRetroIfNoneActive(ctx context.Context, arg CreateRetroParams) (Retrospective, error) {
	row := q.db.QueryRow(ctx, createRetroIfNoneActive, arg.ID, arg.TeamID)
	return scanRetrospective(row)
}

const getActiveRetroForUpdate = `
SELECT ` + retrospectiveColumns + ` FROM retrospectives
WHERE id = $1 AND status = 'active'
FOR UPDATE`

func (q *Queries) GetActiveRetroForUpdate(ctx context.Context, id int64) (Retrospective, error) {
	row := q.db.QueryRow(ctx, getActiveRetroForUpdate, id)
	return scanRetrospective(row)
}

const finishRetro = `
UPDATE retrospectives
SET status = 'finished', finished_at = NOW(), summary = $2
WHERE id = $1
RETURNING ` + retrospectiveColumns

type FinishRetroParams struct {
	ID      int64  `json:"id"`
	Summary string `json:"summary"`
}

func (q *Queries) FinishRetro(ctx context.Context, arg FinishRetroParams) (Retrospective, error) {
	row := q.db.QueryRow(ctx, finishRetro, arg.ID, arg.Summary)
	return scanRetrospective(row)
}

const listFinishedRetros = `
SELECT ` + retrospectiveColumns + ` FROM retrospectives
WHERE team_id = $1 AND status = 'finished'
ORDER BY finished_at DESC
LIMIT $2`

type ListFinishedRetrosParams struct {
	TeamID string `json:"team_id"`
	Limit  int32  `json:"limit"`
}

func (q *Queries) ListFinishedRetros(ctx context.Context, arg ListFinishedRetrosParams) ([]Retrospective, error) {
	rows, err := q.db.Query(ctx, listFinishedRetros, arg.TeamID, arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Retrospective{}
	for rows.Next() {
		i, err := scanRetrospective(rows)
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
