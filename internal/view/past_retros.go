package view

import (
	"github.com/slack-go/slack"

	"github.com/denwilliams/slack-retro/internal/domain"
	"github.com/denwilliams/slack-retro/internal/model"
)

// PastRetrosModal lists finished retros in the order given (the store returns newest first).
// Retros that are not finished are skipped. Long summaries span several sections; retros
// that no longer fit in the modal are counted in a trailing "+N more" line.
func PastRetrosModal(retros []model.Retrospective) slack.ModalViewRequest {
	blocks := []slack.Block{
		markdownSection("*Past Retrospectives*"),
		slack.NewDividerBlock(),
	}

	var finished []model.Finished
	for _, retro := range retros {
		if f, ok := retro.Finished(); ok {
			finished = append(finished, f)
		}
	}

	for i, f := range finished {
		chunks := splitText(pastRetroText(f), maxSectionText)
		// one block stays free for the overflow line
		if len(blocks)+len(chunks)+1 > maxViewBlocks-1 {
			blocks = append(blocks, moreContext(len(finished)-i))
			break
		}
		for _, chunk := range chunks {
			blocks = append(blocks, markdownSection(chunk))
		}
		blocks = append(blocks, slack.NewDividerBlock())
	}
	if len(finished) == 0 {
		blocks = append(blocks, markdownSection("_No past retros yet_"))
	}

	return slack.ModalViewRequest{
		Type:       slack.VTModal,
		CallbackID: domain.CallbackPastRetros,
		Title:      plain("Past Retros"),
		Close:      plain("Close"),
		Blocks:     slack.Blocks{BlockSet: blocks},
	}
}

func pastRetroText(f model.Finished) string {
	summary := f.Summary
	if summary == "" {
		summary = "_No summary available_"
	}
	return "*" + formatDate(f.FinishedAt) + "*\n" + summary
}
