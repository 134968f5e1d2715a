package view

import (
	"strings"
	"time"

	"github.com/denwilliams/slack-retro/internal/model"
)

// Summary renders the markdown stored on a finished retro. Sections always appear in the
// order good, bad, question, then action items (outstanding before completed), so the
// output is byte-for-byte reproducible for the same input order and completion date.
func Summary(items []model.DiscussionItem, actions []model.ActionItem, completedOn time.Time) string {
	var b strings.Builder

	b.WriteString("*Retrospective Summary*\n\n")
	b.WriteString("_Completed on " + formatDate(completedOn) + "_\n\n")

	grouped := model.DiscussionItemsByCategory(items)
	for _, category := range model.Categories() {
		b.WriteString("*" + CategoryTitle(category) + "*\n\n")

		group := grouped[category]
		if len(group) == 0 {
			b.WriteString("_No items_\n\n")
			continue
		}
		for _, item := range group {
			b.WriteString("• " + attributed(item.UserName, item.Content) + "\n")
		}
		b.WriteString("\n")
	}

	b.WriteString("*🎯 Action Items*\n\n")
	if len(actions) == 0 {
		b.WriteString("_No action items_\n\n")
		return b.String()
	}

	outstanding, completed := model.SplitActionItems(actions)
	writeActionList(&b, "*Outstanding:*\n", "☐", outstanding)
	writeActionList(&b, "*Completed:*\n", "☑", completed)

	return b.String()
}

func writeActionList(b *strings.Builder, heading, box string, items []model.ActionItem) {
	if len(items) == 0 {
		return
	}
	b.WriteString(heading)
	for _, item := range items {
		b.WriteString("• " + box + " " + attributed(item.ResponsibleUserName, item.Content) + "\n")
	}
	b.WriteString("\n")
}
