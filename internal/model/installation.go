package model

import "time"

type Installation struct {
	CreatedAt   time.Time `json:"created_at"`
	TeamID      string    `json:"team_id"`
	AccessToken string    `json:"-"`
	BotUserID   string    `json:"bot_user_id"`
	ID          int64     `json:"id"`
}
