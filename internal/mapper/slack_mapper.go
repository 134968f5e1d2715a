package mapper

import (
	"context"
	"strings"

	"github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"

	"github.com/denwilliams/slack-retro/common/id"
	"github.com/denwilliams/slack-retro/internal/domain"
	"github.com/denwilliams/slack-retro/internal/model"
)

type SlackEventMapper struct{}

func NewSlackEventMapper() *SlackEventMapper {
	return &SlackEventMapper{}
}

func (m *SlackEventMapper) MapCallback(ctx context.Context, event slackevents.EventsAPIEvent) (domain.Event, error) {
	if event.Type != slackevents.CallbackEvent {
		return nil, nil
	}

	switch inner := event.InnerEvent.Data.(type) {
	case *slackevents.AppHomeOpenedEvent:
		return domain.AppHomeOpened{
			Actor: domain.Actor{TeamID: event.TeamID, UserID: inner.User},
		}, nil
	}

	return nil, nil
}

func (m *SlackEventMapper) MapInteraction(ctx context.Context, callback slack.InteractionCallback) (domain.Event, error) {
	actor := domain.Actor{
		TeamID:   callback.Team.ID,
		UserID:   callback.User.ID,
		UserName: callback.User.Name,
	}
	if actor.TeamID == "" {
		actor.TeamID = callback.User.TeamID
	}

	switch callback.Type {
	case slack.InteractionTypeBlockActions:
		actions := callback.ActionCallback.BlockActions
		if len(actions) == 0 || actions[0] == nil {
			return nil, nil
		}
		first := actions[0]
		return domain.BlockAction{
			Actor:     actor,
			TriggerID: callback.TriggerID,
			Action:    ParseAction(first.ActionID, first.SelectedOption.Value),
		}, nil

	case slack.InteractionTypeViewSubmission:
		return domain.ViewSubmission{
			Actor: actor,
			Form:  parseForm(callback.View),
		}, nil
	}

	return nil, nil
}

// ParseAction decodes a block action identifier. For overflow menus the selected option
// value decides between edit and delete. Anything unrecognised decodes to ActionUnknown.
func ParseAction(actionID, selectedValue string) domain.Action {
	action := domain.Action{Raw: actionID}

	switch actionID {
	case domain.ActionIDAddDiscussionItem:
		action.Kind = domain.ActionAddDiscussionItem
		return action
	case domain.ActionIDAddActionItem:
		action.Kind = domain.ActionAddActionItem
		return action
	case domain.ActionIDRefreshHome:
		action.Kind = domain.ActionRefreshHome
		return action
	case domain.ActionIDViewPastRetros:
		action.Kind = domain.ActionViewPastRetros
		return action
	case domain.ActionIDFinishRetro:
		action.Kind = domain.ActionFinishRetro
		return action
	}

	if _, ok := suffixID(actionID, domain.DiscussionOverflowPrefix); ok {
		if itemID, ok := suffixID(selectedValue, domain.EditDiscussionPrefix); ok {
			action.Kind, action.TargetID = domain.ActionEditDiscussionItem, itemID
		} else if itemID, ok := suffixID(selectedValue, domain.DeleteDiscussionPrefix); ok {
			action.Kind, action.TargetID = domain.ActionDeleteDiscussionItem, itemID
		}
		return action
	}

	if itemID, ok := suffixID(actionID, domain.ToggleActionPrefix); ok {
		action.Kind, action.TargetID = domain.ActionToggleActionItem, itemID
	}

	return action
}

func suffixID(s, prefix string) (int64, bool) {
	rest, ok := strings.CutPrefix(s, prefix)
	if !ok {
		return 0, false
	}
	itemID, err := id.Parse(rest)
	if err != nil {
		return 0, false
	}
	return itemID, true
}

// parseForm reads submitted modal state. Missing or invalid inputs come back as zero
// values; deciding whether a form is complete is left to the handler.
func parseForm(view slack.View) domain.Form {
	values := stateValue(view)

	switch view.CallbackID {
	case domain.CallbackAddDiscussionItem:
		category, err := model.ParseCategory(values(domain.BlockCategory, domain.InputCategory).SelectedOption.Value)
		if err != nil {
			category = ""
		}
		return domain.AddDiscussionItemForm{
			Category: category,
			Content:  values(domain.BlockContent, domain.InputContent).Value,
		}

	case domain.CallbackEditDiscussionItem:
		itemID, err := id.Parse(view.PrivateMetadata)
		if err != nil {
			itemID = 0
		}
		return domain.EditDiscussionItemForm{
			ItemID:  itemID,
			Content: values(domain.BlockContent, domain.InputContent).Value,
		}

	case domain.CallbackAddActionItem:
		return domain.AddActionItemForm{
			ResponsibleUserID: values(domain.BlockResponsible, domain.InputResponsible).SelectedUser,
			Content:           values(domain.BlockContent, domain.InputContent).Value,
		}
	}

	return domain.UnknownForm{CallbackID: view.CallbackID}
}

func stateValue(view slack.View) func(blockID, actionID string) slack.BlockAction {
	return func(blockID, actionID string) slack.BlockAction {
		if view.State == nil {
			return slack.BlockAction{}
		}
		return view.State.Values[blockID][actionID]
	}
}
