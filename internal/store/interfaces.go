package store

import (
	"context"
	"errors"

	"github.com/denwilliams/slack-retro/internal/model"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = errors.New("not found")

// ErrActiveRetroExists is returned when a team already has an active retrospective
var ErrActiveRetroExists = errors.New("team already has an active retrospective")

// InstallationStore defines the contract for workspace installation data access
type InstallationStore interface {
	Upsert(ctx context.Context, teamID, accessToken, botUserID string) (*model.Installation, error)
	GetByTeam(ctx context.Context, teamID string) (*model.Installation, error)
}

// RetrospectiveStore defines the contract for retrospective data access
type RetrospectiveStore interface {
	GetActive(ctx context.Context, teamID string) (*model.Retrospective, error)
	Create(ctx context.Context, teamID string) (*model.Retrospective, error)
	CreateIfNoneActive(ctx context.Context, teamID string) (*model.Retrospective, error)
	LockActive(ctx context.Context, id int64) (*model.Retrospective, error) // row lock, tx only
	Finish(ctx context.Context, id int64, summary string) (*model.Retrospective, error)
	ListFinished(ctx context.Context, teamID string, limit int32) ([]model.Retrospective, error)
}

// DiscussionItemStore defines the contract for discussion item data access.
// Ownership-filtered operations report a mismatch as an absent result, not an error.
type DiscussionItemStore interface {
	Create(ctx context.Context, item *model.DiscussionItem) error
	ListByRetro(ctx context.Context, retroID int64) ([]model.DiscussionItem, error)
	UpdateIfOwned(ctx context.Context, id int64, userID, content string) (*model.DiscussionItem, error)
	DeleteIfOwned(ctx context.Context, id int64, userID string) (bool, error)
	DeleteAllByRetro(ctx context.Context, retroID int64) error
}

// ActionItemStore defines the contract for action item data access
type ActionItemStore interface {
	Create(ctx context.Context, item *model.ActionItem) error
	ListIncompleteByRetro(ctx context.Context, retroID int64) ([]model.ActionItem, error)
	ListByRetro(ctx context.Context, retroID int64) ([]model.ActionItem, error)
	MarkComplete(ctx context.Context, id int64) (*model.ActionItem, error)
	MarkIncomplete(ctx context.Context, id int64) (*model.ActionItem, error)
	MigrateIncomplete(ctx context.Context, fromRetroID, toRetroID int64) (int64, error)
}
