package view_test

import (
	"strings"
	"time"

	"github.com/slack-go/slack"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/denwilliams/slack-retro/internal/model"
	"github.com/denwilliams/slack-retro/internal/view"
)

var _ = Describe("Modals", func() {
	Describe("AddDiscussionItemModal", func() {
		It("offers the three categories and defaults to good", func() {
			modal := view.AddDiscussionItemModal()

			Expect(modal.CallbackID).To(Equal("add_discussion_item_modal"))
			Expect(modal.Blocks.BlockSet).To(HaveLen(2))

			category := modal.Blocks.BlockSet[0].(*slack.InputBlock)
			Expect(category.BlockID).To(Equal("category_block"))
			radio := category.Element.(*slack.RadioButtonsBlockElement)
			Expect(radio.ActionID).To(Equal("category_input"))
			Expect(radio.InitialOption.Value).To(Equal("good"))

			var values []string
			for _, option := range radio.Options {
				values = append(values, option.Value)
			}
			Expect(values).To(Equal([]string{"good", "bad", "question"}))

			content := modal.Blocks.BlockSet[1].(*slack.InputBlock)
			Expect(content.BlockID).To(Equal("content_block"))
			Expect(content.Element.(*slack.PlainTextInputBlockElement).ActionID).To(Equal("content_input"))
		})
	})

	Describe("EditDiscussionItemModal", func() {
		It("carries the item id and prefills the content", func() {
			modal := view.EditDiscussionItemModal(model.DiscussionItem{ID: 42, Content: "old words"})

			Expect(modal.CallbackID).To(Equal("edit_discussion_item_modal"))
			Expect(modal.PrivateMetadata).To(Equal("42"))
			input := modal.Blocks.BlockSet[0].(*slack.InputBlock).Element.(*slack.PlainTextInputBlockElement)
			Expect(input.InitialValue).To(Equal("old words"))
		})
	})

	Describe("AddActionItemModal", func() {
		It("asks for a responsible user and the action", func() {
			modal := view.AddActionItemModal()

			Expect(modal.CallbackID).To(Equal("add_action_item_modal"))
			responsible := modal.Blocks.BlockSet[0].(*slack.InputBlock)
			Expect(responsible.BlockID).To(Equal("responsible_block"))
			selectElement := responsible.Element.(*slack.SelectBlockElement)
			Expect(selectElement.Type).To(Equal(slack.OptTypeUser))
			Expect(selectElement.ActionID).To(Equal("responsible_input"))
		})
	})

	Describe("PastRetrosModal", func() {
		It("shows a placeholder when there are no finished retros", func() {
			texts := sectionTexts(view.PastRetrosModal(nil).Blocks.BlockSet)
			Expect(texts).To(Equal([]string{"*Past Retrospectives*", "_No past retros yet_"}))
		})

		It("renders each finished retro's date and summary in the given order", func() {
			retros := []model.Retrospective{
				{ID: 2, State: model.Finished{FinishedAt: time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC), Summary: "newer"}},
				{ID: 1, State: model.Finished{FinishedAt: time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), Summary: "older"}},
				{ID: 3, State: model.Active{}},
			}

			texts := sectionTexts(view.PastRetrosModal(retros).Blocks.BlockSet)
			Expect(texts).To(Equal([]string{
				"*Past Retrospectives*",
				"*2/10/2026*\nnewer",
				"*1/5/2026*\nolder",
			}))
		})

		It("splits a long summary into sections Slack accepts", func() {
			var items []model.DiscussionItem
			for i := 0; i < 12; i++ {
				items = append(items, model.DiscussionItem{ID: int64(i), UserName: "Al", Category: model.CategoryBad, Content: strings.Repeat("x", 300)})
			}
			finishedAt := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
			summary := view.Summary(items, nil, finishedAt)
			Expect(len(summary)).To(BeNumerically(">", 3000))

			retros := []model.Retrospective{{ID: 1, State: model.Finished{FinishedAt: finishedAt, Summary: summary}}}
			texts := sectionTexts(view.PastRetrosModal(retros).Blocks.BlockSet)

			Expect(len(texts)).To(BeNumerically(">", 2))
			for _, text := range texts {
				Expect(len(text)).To(BeNumerically("<=", 3000))
			}
			Expect(texts[1]).To(HavePrefix("*2/10/2026*\n*Retrospective Summary*"))
			Expect(strings.Count(strings.Join(texts[1:], "\n"), strings.Repeat("x", 300))).To(Equal(12))
		})

		It("stays within 100 blocks when many summaries are long", func() {
			long := strings.Repeat(strings.Repeat("y", 200)+"\n", 80)
			var retros []model.Retrospective
			for i := 0; i < 20; i++ {
				retros = append(retros, model.Retrospective{ID: int64(i), State: model.Finished{
					FinishedAt: time.Date(2026, 1, i+1, 0, 0, 0, 0, time.UTC),
					Summary:    long,
				}})
			}

			blocks := view.PastRetrosModal(retros).Blocks.BlockSet
			Expect(len(blocks)).To(BeNumerically("<=", 100))
			more := contextTexts(blocks)
			Expect(more).To(HaveLen(1))
			Expect(more[0]).To(MatchRegexp(`^_\+\d+ more_$`))
		})
	})
})
