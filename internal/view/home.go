package view

import (
	"strconv"

	"github.com/slack-go/slack"

	"github.com/denwilliams/slack-retro/internal/domain"
	"github.com/denwilliams/slack-retro/internal/model"
)

const (
	homeTitle             = "Team Retrospective"
	homeIntro             = "Share your thoughts about how the team is doing. Add discussion items and action items below."
	noItemsPlaceholder    = "_No items yet_"
	actionItemsTitle      = "🎯 Action Items"
	noActionsPlaceholder  = "_No action items yet_"
	toggleDoneText        = "✓ Done"
	toggleIncompleteText  = "Mark Complete"
	finishConfirmQuestion = "Are you sure you want to finish this retro? This will save a summary and clear all discussion items."
)

// HomeView projects the active retro's items into the home tab of viewerID.
// The tab never exceeds Slack's block limit; items past it are summarized as "+N more".
// Discussion items are grouped good, bad, question; within a group the input order is kept.
// Edit/delete affordances appear only on items the viewer authored. Action items keep their
// input order and always carry a completion toggle.
func HomeView(items []model.DiscussionItem, actions []model.ActionItem, viewerID string) slack.HomeTabViewRequest {
	blocks := []slack.Block{
		slack.NewHeaderBlock(plainEmoji(homeTitle)),
		markdownSection(homeIntro),
		slack.NewDividerBlock(),
		homeActions(),
		slack.NewDividerBlock(),
	}

	categories := model.Categories()
	lists := len(categories) + 1
	// Each list has a header and at most one placeholder or "+N more" block, and each
	// category ends in a divider. The rest is shared by item sections in display order.
	budget := maxViewBlocks - len(blocks) - 2*lists - len(categories)

	grouped := model.DiscussionItemsByCategory(items)
	for _, category := range categories {
		blocks = append(blocks, slack.NewHeaderBlock(plainEmoji(CategoryTitle(category))))

		group := grouped[category]
		if len(group) == 0 {
			blocks = append(blocks, markdownSection(noItemsPlaceholder))
		}
		shown := min(len(group), budget)
		for _, item := range group[:shown] {
			blocks = append(blocks, discussionItemSection(item, viewerID))
		}
		budget -= shown
		if hidden := len(group) - shown; hidden > 0 {
			blocks = append(blocks, moreContext(hidden))
		}

		blocks = append(blocks, slack.NewDividerBlock())
	}

	blocks = append(blocks, slack.NewHeaderBlock(plainEmoji(actionItemsTitle)))
	if len(actions) == 0 {
		blocks = append(blocks, markdownSection(noActionsPlaceholder))
	}
	shown := min(len(actions), budget)
	for _, item := range actions[:shown] {
		blocks = append(blocks, actionItemSection(item))
	}
	if hidden := len(actions) - shown; hidden > 0 {
		blocks = append(blocks, moreContext(hidden))
	}

	return slack.HomeTabViewRequest{
		Type:   slack.VTHomeTab,
		Blocks: slack.Blocks{BlockSet: blocks},
	}
}

func homeActions() *slack.ActionBlock {
	addDiscussion := slack.NewButtonBlockElement(domain.ActionIDAddDiscussionItem, "", plainEmoji("➕ Add Discussion Item")).
		WithStyle(slack.StylePrimary)
	addAction := slack.NewButtonBlockElement(domain.ActionIDAddActionItem, "", plainEmoji("✅ Add Action Item"))
	refresh := slack.NewButtonBlockElement(domain.ActionIDRefreshHome, "", plainEmoji("🔄 Refresh"))
	pastRetros := slack.NewButtonBlockElement(domain.ActionIDViewPastRetros, "", plainEmoji("📋 Past Retros"))

	confirm := slack.NewConfirmationBlockObject(
		plain("Finish Retrospective"),
		mrkdwn(finishConfirmQuestion),
		plain("Finish"),
		plain("Cancel"),
	)
	finish := slack.NewButtonBlockElement(domain.ActionIDFinishRetro, "", plainEmoji("🏁 Finish Retro")).
		WithStyle(slack.StyleDanger).
		WithConfirm(confirm)

	return slack.NewActionBlock("", addDiscussion, addAction, refresh, pastRetros, finish)
}

func discussionItemSection(item model.DiscussionItem, viewerID string) *slack.SectionBlock {
	var accessory *slack.Accessory
	if item.UserID == viewerID {
		overflow := slack.NewOverflowBlockElement(
			domain.DiscussionOverflowActionID(item.ID),
			slack.NewOptionBlockObject(domain.EditDiscussionValue(item.ID), plainEmoji("Edit"), nil),
			slack.NewOptionBlockObject(domain.DeleteDiscussionValue(item.ID), plainEmoji("Delete"), nil),
		)
		accessory = slack.NewAccessory(overflow)
	}
	return slack.NewSectionBlock(mrkdwn(truncate(attributed(item.UserName, item.Content), maxSectionText)), nil, accessory)
}

func actionItemSection(item model.ActionItem) *slack.SectionBlock {
	label := toggleIncompleteText
	if item.Completed {
		label = toggleDoneText
	}

	toggle := slack.NewButtonBlockElement(domain.ToggleActionID(item.ID), strconv.FormatInt(item.ID, 10), plainEmoji(label))
	if item.Completed {
		toggle = toggle.WithStyle(slack.StylePrimary)
	}

	return slack.NewSectionBlock(mrkdwn(truncate(attributed(item.ResponsibleUserName, item.Content), maxSectionText)), nil, slack.NewAccessory(toggle))
}

func attributed(name, content string) string {
	return "*" + name + ":* " + content
}
