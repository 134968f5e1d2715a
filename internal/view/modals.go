package view

import (
	"github.com/slack-go/slack"

	"github.com/denwilliams/slack-retro/common/id"
	"github.com/denwilliams/slack-retro/internal/domain"
	"github.com/denwilliams/slack-retro/internal/model"
)

func AddDiscussionItemModal() slack.ModalViewRequest {
	options := make([]*slack.OptionBlockObject, 0, len(model.Categories()))
	for _, category := range model.Categories() {
		options = append(options, categoryOption(category))
	}

	categories := slack.NewRadioButtonsBlockElement(domain.InputCategory, options...)
	categories.InitialOption = categoryOption(model.CategoryGood)

	content := slack.NewPlainTextInputBlockElement(plain("What would you like to discuss?"), domain.InputContent)
	content.Multiline = true

	return slack.ModalViewRequest{
		Type:       slack.VTModal,
		CallbackID: domain.CallbackAddDiscussionItem,
		Title:      plain("Add Discussion Item"),
		Submit:     plain("Add"),
		Close:      plain("Cancel"),
		Blocks: slack.Blocks{BlockSet: []slack.Block{
			slack.NewInputBlock(domain.BlockCategory, plain("Category"), nil, categories),
			slack.NewInputBlock(domain.BlockContent, plain("Your thoughts"), nil, content),
		}},
	}
}

// EditDiscussionItemModal prefills the item's content and carries its id in the private metadata.
func EditDiscussionItemModal(item model.DiscussionItem) slack.ModalViewRequest {
	content := slack.NewPlainTextInputBlockElement(nil, domain.InputContent)
	content.Multiline = true
	content.InitialValue = item.Content

	return slack.ModalViewRequest{
		Type:            slack.VTModal,
		CallbackID:      domain.CallbackEditDiscussionItem,
		PrivateMetadata: id.Format(item.ID),
		Title:           plain("Edit Discussion Item"),
		Submit:          plain("Save"),
		Close:           plain("Cancel"),
		Blocks: slack.Blocks{BlockSet: []slack.Block{
			slack.NewInputBlock(domain.BlockContent, plain("Your thoughts"), nil, content),
		}},
	}
}

func AddActionItemModal() slack.ModalViewRequest {
	responsible := slack.NewOptionsSelectBlockElement(slack.OptTypeUser, plain("Select a team member"), domain.InputResponsible)

	content := slack.NewPlainTextInputBlockElement(plain("What needs to be done?"), domain.InputContent)
	content.Multiline = true

	return slack.ModalViewRequest{
		Type:       slack.VTModal,
		CallbackID: domain.CallbackAddActionItem,
		Title:      plain("Add Action Item"),
		Submit:     plain("Add"),
		Close:      plain("Cancel"),
		Blocks: slack.Blocks{BlockSet: []slack.Block{
			slack.NewInputBlock(domain.BlockResponsible, plain("Responsible person"), nil, responsible),
			slack.NewInputBlock(domain.BlockContent, plain("Action item"), nil, content),
		}},
	}
}

func categoryOption(category model.Category) *slack.OptionBlockObject {
	return slack.NewOptionBlockObject(string(category), plainEmoji(CategoryTitle(category)), nil)
}
