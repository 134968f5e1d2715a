package sqlc

import (
	"github.com/jackc/pgx/v5/pgtype"
)

type Installation struct {
	ID          int64              `json:"id"`
	TeamID      string             `json:"team_id"`
	AccessToken string             `json:"access_token"`
	BotUserID   string             `json:"bot_user_id"`
	CreatedAt   pgtype.Timestamptz `json:"created_at"`
}

type Retrospective struct {
	ID         int64              `json:"id"`
	TeamID     string             `json:"team_id"`
	Status     string             `json:"status"`
	CreatedAt  pgtype.Timestamptz `json:"created_at"`
	FinishedAt pgtype.Timestamptz `json:"finished_at"`
	Summary    *string            `json:"summary"`
}

type DiscussionItem struct {
	ID        int64              `json:"id"`
	RetroID   int64              `json:"retro_id"`
	UserID    string             `json:"user_id"`
	UserName  string             `json:"user_name"`
	Category  string             `json:"category"`
	Content   string             `json:"content"`
	CreatedAt pgtype.Timestamptz `json:"created_at"`
}

type ActionItem struct {
	ID                  int64              `json:"id"`
	RetroID             int64              `json:"retro_id"`
	UserID              string             `json:"user_id"`
	ResponsibleUserID   string             `json:"responsible_user_id"`
	ResponsibleUserName string             `json:"responsible_user_name"`
	Content             string             `json:"content"`
	Completed           bool               `json:"completed"`
	CreatedAt           pgtype.Timestamptz `json:"created_at"`
	CompletedAt         pgtype.Timestamptz `json:"completed_at"`
}
