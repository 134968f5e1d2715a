package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/denwilliams/slack-retro/internal/model"
	"github.com/denwilliams/slack-retro/internal/store"
	"github.com/denwilliams/slack-retro/internal/view"
)

// PastRetrosLimit caps how many finished retros the past-retros modal shows.
const PastRetrosLimit = 20

var (
	// ErrRetroNotActive is returned when a finish loses the race to another finish.
	ErrRetroNotActive = errors.New("retrospective is no longer active")
	// ErrNotOwner is returned when a user asks for another user's discussion item.
	ErrNotOwner = errors.New("discussion item belongs to another user")
)

// Board is the active retro and everything shown on the home tab.
type Board struct {
	Retro           model.Retrospective
	DiscussionItems []model.DiscussionItem
	ActionItems     []model.ActionItem
}

type FinishResult struct {
	Finished  model.Retrospective
	Successor model.Retrospective
	Migrated  int64
}

type NewDiscussionItem struct {
	TeamID   string
	UserID   string
	UserName string
	Category model.Category
	Content  string
}

type NewActionItem struct {
	TeamID              string
	CreatorID           string
	ResponsibleUserID   string
	ResponsibleUserName string
	Content             string
}

type RetroService interface {
	GetOrCreateActive(ctx context.Context, teamID string) (*model.Retrospective, error)
	Board(ctx context.Context, teamID string) (*Board, error)
	Finish(ctx context.Context, teamID string) (*FinishResult, error)
	PastRetros(ctx context.Context, teamID string) ([]model.Retrospective, error)

	AddDiscussionItem(ctx context.Context, params NewDiscussionItem) (*model.DiscussionItem, error)
	OwnedDiscussionItem(ctx context.Context, teamID string, itemID int64, userID string) (*model.DiscussionItem, error)
	EditDiscussionItem(ctx context.Context, itemID int64, userID, content string) (*model.DiscussionItem, error)
	DeleteDiscussionItem(ctx context.Context, itemID int64, userID string) (bool, error)

	AddActionItem(ctx context.Context, params NewActionItem) (*model.ActionItem, error)
	ToggleActionItem(ctx context.Context, teamID string, itemID int64) (*model.ActionItem, error)
}

type retroService struct {
	retros   store.RetrospectiveStore
	items    store.DiscussionItemStore
	actions  store.ActionItemStore
	txRunner TxRunner
	now      func() time.Time
}

func NewRetroService(
	retros store.RetrospectiveStore,
	items store.DiscussionItemStore,
	actions store.ActionItemStore,
	txRunner TxRunner,
	now func() time.Time,
) RetroService {
	if now == nil {
		now = time.Now
	}
	return &retroService{
		retros:   retros,
		items:    items,
		actions:  actions,
		txRunner: txRunner,
		now:      now,
	}
}

// GetOrCreateActive returns the team's active retro, creating it on first touch.
// Concurrent first touches converge: the losing insert is a no-op and re-reads the winner.
func (s *retroService) GetOrCreateActive(ctx context.Context, teamID string) (*model.Retrospective, error) {
	retro, err := s.retros.GetActive(ctx, teamID)
	if err == nil {
		return retro, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("getting active retro: %w", err)
	}

	retro, err = s.retros.CreateIfNoneActive(ctx, teamID)
	switch {
	case err == nil:
		slog.InfoContext(ctx, "retro created", "retro_id", retro.ID)
		return retro, nil
	case errors.Is(err, store.ErrActiveRetroExists):
		retro, err = s.retros.GetActive(ctx, teamID)
		if err != nil {
			return nil, fmt.Errorf("getting active retro after lost create: %w", err)
		}
		return retro, nil
	default:
		return nil, fmt.Errorf("creating retro: %w", err)
	}
}

func (s *retroService) Board(ctx context.Context, teamID string) (*Board, error) {
	retro, err := s.GetOrCreateActive(ctx, teamID)
	if err != nil {
		return nil, err
	}

	items, err := s.items.ListByRetro(ctx, retro.ID)
	if err != nil {
		return nil, fmt.Errorf("listing discussion items: %w", err)
	}

	actions, err := s.actions.ListByRetro(ctx, retro.ID)
	if err != nil {
		return nil, fmt.Errorf("listing action items: %w", err)
	}

	return &Board{Retro: *retro, DiscussionItems: items, ActionItems: actions}, nil
}

// Finish closes the active retro in one transaction: snapshot items, store the summary,
// clear discussion items, open a successor and move incomplete action items to it.
// The row lock makes a concurrent second finish fail with ErrRetroNotActive.
func (s *retroService) Finish(ctx context.Context, teamID string) (*FinishResult, error) {
	active, err := s.GetOrCreateActive(ctx, teamID)
	if err != nil {
		return nil, err
	}

	var result FinishResult
	err = s.txRunner.WithTx(ctx, func(stores StoreProvider) error {
		retro, err := stores.Retrospectives().LockActive(ctx, active.ID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrRetroNotActive
			}
			return fmt.Errorf("locking retro: %w", err)
		}

		items, err := stores.DiscussionItems().ListByRetro(ctx, retro.ID)
		if err != nil {
			return fmt.Errorf("listing discussion items: %w", err)
		}
		actions, err := stores.ActionItems().ListByRetro(ctx, retro.ID)
		if err != nil {
			return fmt.Errorf("listing action items: %w", err)
		}

		summary := view.Summary(items, actions, s.now())

		finished, err := stores.Retrospectives().Finish(ctx, retro.ID, summary)
		if err != nil {
			return fmt.Errorf("finishing retro: %w", err)
		}

		if err := stores.DiscussionItems().DeleteAllByRetro(ctx, retro.ID); err != nil {
			return fmt.Errorf("clearing discussion items: %w", err)
		}

		successor, err := stores.Retrospectives().Create(ctx, teamID)
		if err != nil {
			return fmt.Errorf("creating successor retro: %w", err)
		}

		migrated, err := stores.ActionItems().MigrateIncomplete(ctx, retro.ID, successor.ID)
		if err != nil {
			return fmt.Errorf("migrating action items: %w", err)
		}

		result = FinishResult{Finished: *finished, Successor: *successor, Migrated: migrated}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "retro finished",
		"retro_id", result.Finished.ID,
		"successor_id", result.Successor.ID,
		"migrated_action_items", result.Migrated)
	return &result, nil
}

func (s *retroService) PastRetros(ctx context.Context, teamID string) ([]model.Retrospective, error) {
	retros, err := s.retros.ListFinished(ctx, teamID, PastRetrosLimit)
	if err != nil {
		return nil, fmt.Errorf("listing finished retros: %w", err)
	}
	return retros, nil
}

// AddDiscussionItem ignores submissions without content or a valid category.
func (s *retroService) AddDiscussionItem(ctx context.Context, params NewDiscussionItem) (*model.DiscussionItem, error) {
	content := strings.TrimSpace(params.Content)
	if content == "" {
		return nil, nil
	}
	if _, err := model.ParseCategory(string(params.Category)); err != nil {
		return nil, nil
	}

	retro, err := s.GetOrCreateActive(ctx, params.TeamID)
	if err != nil {
		return nil, err
	}

	item := &model.DiscussionItem{
		RetroID:  retro.ID,
		UserID:   params.UserID,
		UserName: params.UserName,
		Category: params.Category,
		Content:  content,
	}
	if err := s.items.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("creating discussion item: %w", err)
	}

	slog.InfoContext(ctx, "discussion item added", "item_id", item.ID, "category", item.Category)
	return item, nil
}

// OwnedDiscussionItem finds an item of the active retro that userID authored.
func (s *retroService) OwnedDiscussionItem(ctx context.Context, teamID string, itemID int64, userID string) (*model.DiscussionItem, error) {
	retro, err := s.GetOrCreateActive(ctx, teamID)
	if err != nil {
		return nil, err
	}

	items, err := s.items.ListByRetro(ctx, retro.ID)
	if err != nil {
		return nil, fmt.Errorf("listing discussion items: %w", err)
	}

	for _, item := range items {
		if item.ID != itemID {
			continue
		}
		if item.UserID != userID {
			return nil, ErrNotOwner
		}
		return &item, nil
	}
	return nil, store.ErrNotFound
}

// EditDiscussionItem returns nil when the item is missing or owned by someone else.
func (s *retroService) EditDiscussionItem(ctx context.Context, itemID int64, userID, content string) (*model.DiscussionItem, error) {
	content = strings.TrimSpace(content)
	if itemID == 0 || content == "" {
		return nil, nil
	}

	item, err := s.items.UpdateIfOwned(ctx, itemID, userID, content)
	if err != nil {
		return nil, fmt.Errorf("updating discussion item: %w", err)
	}
	if item == nil {
		slog.DebugContext(ctx, "discussion item not updated, missing or not owned", "item_id", itemID)
	}
	return item, nil
}

func (s *retroService) DeleteDiscussionItem(ctx context.Context, itemID int64, userID string) (bool, error) {
	deleted, err := s.items.DeleteIfOwned(ctx, itemID, userID)
	if err != nil {
		return false, fmt.Errorf("deleting discussion item: %w", err)
	}
	if !deleted {
		slog.DebugContext(ctx, "discussion item not deleted, missing or not owned", "item_id", itemID)
	}
	return deleted, nil
}

func (s *retroService) AddActionItem(ctx context.Context, params NewActionItem) (*model.ActionItem, error) {
	content := strings.TrimSpace(params.Content)
	if content == "" || params.ResponsibleUserID == "" {
		return nil, nil
	}

	retro, err := s.GetOrCreateActive(ctx, params.TeamID)
	if err != nil {
		return nil, err
	}

	item := &model.ActionItem{
		RetroID:             retro.ID,
		UserID:              params.CreatorID,
		ResponsibleUserID:   params.ResponsibleUserID,
		ResponsibleUserName: params.ResponsibleUserName,
		Content:             content,
	}
	if err := s.actions.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("creating action item: %w", err)
	}

	slog.InfoContext(ctx, "action item added", "item_id", item.ID, "responsible_user_id", item.ResponsibleUserID)
	return item, nil
}

// ToggleActionItem flips completion of an action item on the active retro.
// Items of other retros are left alone and nil is returned.
func (s *retroService) ToggleActionItem(ctx context.Context, teamID string, itemID int64) (*model.ActionItem, error) {
	retro, err := s.GetOrCreateActive(ctx, teamID)
	if err != nil {
		return nil, err
	}

	actions, err := s.actions.ListByRetro(ctx, retro.ID)
	if err != nil {
		return nil, fmt.Errorf("listing action items: %w", err)
	}

	for _, item := range actions {
		if item.ID != itemID {
			continue
		}
		var toggled *model.ActionItem
		if item.Completed {
			toggled, err = s.actions.MarkIncomplete(ctx, itemID)
		} else {
			toggled, err = s.actions.MarkComplete(ctx, itemID)
		}
		if err != nil {
			return nil, fmt.Errorf("toggling action item: %w", err)
		}
		return toggled, nil
	}

	slog.DebugContext(ctx, "action item not on active retro", "item_id", itemID)
	return nil, nil
}
