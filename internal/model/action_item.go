package model

import "time"

type ActionItem struct {
	CreatedAt           time.Time  `json:"created_at"`
	CompletedAt         *time.Time `json:"completed_at,omitempty"`
	UserID              string     `json:"user_id"`
	ResponsibleUserID   string     `json:"responsible_user_id"`
	ResponsibleUserName string     `json:"responsible_user_name"`
	Content             string     `json:"content"`
	ID                  int64      `json:"id"`
	RetroID             int64      `json:"retro_id"`
	Completed           bool       `json:"completed"`
}

// SplitActionItems separates outstanding from completed items, preserving order.
func SplitActionItems(items []ActionItem) (outstanding, completed []ActionItem) {
	for _, item := range items {
		if item.Completed {
			completed = append(completed, item)
		} else {
			outstanding = append(outstanding, item)
		}
	}
	return outstanding, completed
}
