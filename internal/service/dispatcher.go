package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/slack-go/slack"

	"github.com/denwilliams/slack-retro/common/logger"
	"github.com/denwilliams/slack-retro/internal/domain"
	"github.com/denwilliams/slack-retro/internal/service/chat"
	"github.com/denwilliams/slack-retro/internal/store"
	"github.com/denwilliams/slack-retro/internal/view"
)

// Dispatcher routes one decoded event to exactly one handler, then applies the
// handler's refresh intent. Unknown actions and forms are no-ops.
type Dispatcher interface {
	Dispatch(ctx context.Context, event domain.Event) error
}

type dispatcher struct {
	retros    RetroService
	platforms chat.Resolver
	refresher Refresher
}

func NewDispatcher(retros RetroService, platforms chat.Resolver, refresher Refresher) Dispatcher {
	return &dispatcher{
		retros:    retros,
		platforms: platforms,
		refresher: refresher,
	}
}

func (d *dispatcher) Dispatch(ctx context.Context, event domain.Event) error {
	if event == nil {
		return nil
	}

	actor := event.Source()
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		TeamID:    logger.Ptr(actor.TeamID),
		UserID:    logger.Ptr(actor.UserID),
		EventType: logger.Ptr(string(event.Kind())),
		Component: "retro.dispatcher",
	})

	sc := logger.StartSpan(ctx, "dispatcher.dispatch")
	defer sc.End()
	ctx = sc.Context()

	var (
		intent domain.RefreshIntent
		err    error
	)
	switch e := event.(type) {
	case domain.AppHomeOpened:
		intent = domain.RefreshFor(e.Actor)
	case domain.BlockAction:
		intent, err = d.handleAction(ctx, e)
	case domain.ViewSubmission:
		intent, err = d.handleSubmission(ctx, e)
	default:
		slog.DebugContext(ctx, "ignoring unhandled event", "kind", event.Kind())
	}
	if err != nil {
		sc.RecordError(err)
		return err
	}

	d.refresher.Refresh(ctx, intent)
	return nil
}

func (d *dispatcher) handleAction(ctx context.Context, e domain.BlockAction) (domain.RefreshIntent, error) {
	actor := e.Actor
	refresh := domain.RefreshFor(actor)

	switch e.Action.Kind {
	case domain.ActionAddDiscussionItem:
		return domain.RefreshIntent{}, d.openModal(ctx, actor.TeamID, e.TriggerID, view.AddDiscussionItemModal())

	case domain.ActionAddActionItem:
		return domain.RefreshIntent{}, d.openModal(ctx, actor.TeamID, e.TriggerID, view.AddActionItemModal())

	case domain.ActionRefreshHome:
		return refresh, nil

	case domain.ActionViewPastRetros:
		retros, err := d.retros.PastRetros(ctx, actor.TeamID)
		if err != nil {
			return domain.RefreshIntent{}, err
		}
		return domain.RefreshIntent{}, d.openModal(ctx, actor.TeamID, e.TriggerID, view.PastRetrosModal(retros))

	case domain.ActionFinishRetro:
		if _, err := d.retros.Finish(ctx, actor.TeamID); err != nil {
			if !errors.Is(err, ErrRetroNotActive) {
				return domain.RefreshIntent{}, err
			}
			slog.InfoContext(ctx, "retro already finished by a concurrent request")
		}
		return refresh, nil

	case domain.ActionEditDiscussionItem:
		item, err := d.retros.OwnedDiscussionItem(ctx, actor.TeamID, e.Action.TargetID, actor.UserID)
		if err != nil {
			if errors.Is(err, ErrNotOwner) || errors.Is(err, store.ErrNotFound) {
				slog.DebugContext(ctx, "not opening edit modal", "item_id", e.Action.TargetID, "reason", err)
				return domain.RefreshIntent{}, nil
			}
			return domain.RefreshIntent{}, err
		}
		return domain.RefreshIntent{}, d.openModal(ctx, actor.TeamID, e.TriggerID, view.EditDiscussionItemModal(*item))

	case domain.ActionDeleteDiscussionItem:
		if _, err := d.retros.DeleteDiscussionItem(ctx, e.Action.TargetID, actor.UserID); err != nil {
			return domain.RefreshIntent{}, err
		}
		return refresh, nil

	case domain.ActionToggleActionItem:
		item, err := d.retros.ToggleActionItem(ctx, actor.TeamID, e.Action.TargetID)
		if err != nil {
			return domain.RefreshIntent{}, err
		}
		if item == nil {
			return domain.RefreshIntent{}, nil
		}
		return refresh, nil

	case domain.ActionUnknown:
		slog.DebugContext(ctx, "ignoring unknown action", "action_id", e.Action.Raw)
		return domain.RefreshIntent{}, nil
	}

	return domain.RefreshIntent{}, nil
}

func (d *dispatcher) handleSubmission(ctx context.Context, e domain.ViewSubmission) (domain.RefreshIntent, error) {
	actor := e.Actor
	refresh := domain.RefreshFor(actor)

	switch form := e.Form.(type) {
	case domain.AddDiscussionItemForm:
		item, err := d.retros.AddDiscussionItem(ctx, NewDiscussionItem{
			TeamID:   actor.TeamID,
			UserID:   actor.UserID,
			UserName: actor.UserName,
			Category: form.Category,
			Content:  form.Content,
		})
		if err != nil || item == nil {
			return domain.RefreshIntent{}, err
		}
		return refresh, nil

	case domain.EditDiscussionItemForm:
		if form.ItemID == 0 || strings.TrimSpace(form.Content) == "" {
			return domain.RefreshIntent{}, nil
		}
		if _, err := d.retros.EditDiscussionItem(ctx, form.ItemID, actor.UserID, form.Content); err != nil {
			return domain.RefreshIntent{}, err
		}
		return refresh, nil

	case domain.AddActionItemForm:
		if form.ResponsibleUserID == "" || strings.TrimSpace(form.Content) == "" {
			return domain.RefreshIntent{}, nil
		}
		item, err := d.retros.AddActionItem(ctx, NewActionItem{
			TeamID:              actor.TeamID,
			CreatorID:           actor.UserID,
			ResponsibleUserID:   form.ResponsibleUserID,
			ResponsibleUserName: d.lookupUserName(ctx, actor.TeamID, form.ResponsibleUserID),
			Content:             form.Content,
		})
		if err != nil || item == nil {
			return domain.RefreshIntent{}, err
		}
		return refresh, nil

	case domain.UnknownForm:
		slog.DebugContext(ctx, "ignoring unknown form", "callback_id", form.CallbackID)
	}

	return domain.RefreshIntent{}, nil
}

func (d *dispatcher) openModal(ctx context.Context, teamID, triggerID string, modal slack.ModalViewRequest) error {
	platform, err := d.platforms.ForTeam(ctx, teamID)
	if err != nil {
		return err
	}
	if err := platform.OpenModal(ctx, triggerID, modal); err != nil {
		return fmt.Errorf("opening %s: %w", modal.CallbackID, err)
	}
	return nil
}

func (d *dispatcher) lookupUserName(ctx context.Context, teamID, userID string) string {
	platform, err := d.platforms.ForTeam(ctx, teamID)
	if err == nil {
		var name string
		if name, err = platform.LookupUserName(ctx, userID); err == nil {
			return name
		}
	}
	slog.WarnContext(ctx, "user lookup failed, using placeholder name", "error", err, "lookup_user_id", userID)
	return chat.UnknownUserName
}
