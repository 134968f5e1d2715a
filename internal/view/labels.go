package view

import (
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/slack-go/slack"

	"github.com/denwilliams/slack-retro/internal/model"
)

var categoryEmoji = map[model.Category]string{
	model.CategoryGood:     ":slightly_smiling_face:",
	model.CategoryBad:      ":slightly_frowning_face:",
	model.CategoryQuestion: ":question:",
}

var categoryLabels = map[model.Category]string{
	model.CategoryGood:     "What went well",
	model.CategoryBad:      "What could be improved",
	model.CategoryQuestion: "Questions / Discussion topics",
}

// CategoryTitle is the emoji-prefixed heading of a discussion category.
func CategoryTitle(c model.Category) string {
	return categoryEmoji[c] + " " + categoryLabels[c]
}

// dateLayout renders dates as month/day/year without padding.
const dateLayout = "1/2/2006"

func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}

func plain(text string) *slack.TextBlockObject {
	return slack.NewTextBlockObject(slack.PlainTextType, text, false, false)
}

func plainEmoji(text string) *slack.TextBlockObject {
	return slack.NewTextBlockObject(slack.PlainTextType, text, true, false)
}

func mrkdwn(text string) *slack.TextBlockObject {
	return slack.NewTextBlockObject(slack.MarkdownType, text, false, false)
}

func markdownSection(text string) *slack.SectionBlock {
	return slack.NewSectionBlock(mrkdwn(text), nil, nil)
}

// Slack rejects a whole view when any of these are exceeded.
const (
	maxSectionText = 3000
	maxViewBlocks  = 100
)

// splitText breaks text into chunks of at most limit bytes, preferring line boundaries.
// A single line longer than limit is cut at a rune boundary.
func splitText(text string, limit int) []string {
	if len(text) <= limit {
		return []string{text}
	}

	var chunks []string
	var current strings.Builder
	flush := func() {
		if current.Len() > 0 {
			chunks = append(chunks, current.String())
			current.Reset()
		}
	}

	for _, line := range strings.SplitAfter(text, "\n") {
		for len(line) > limit {
			flush()
			cut := limit
			for cut > 0 && !utf8.RuneStart(line[cut]) {
				cut--
			}
			chunks = append(chunks, line[:cut])
			line = line[cut:]
		}
		if current.Len()+len(line) > limit {
			flush()
		}
		current.WriteString(line)
	}
	flush()

	result := chunks[:0]
	for _, chunk := range chunks {
		if chunk = strings.Trim(chunk, "\n"); chunk != "" {
			result = append(result, chunk)
		}
	}
	return result
}

func moreContext(hidden int) *slack.ContextBlock {
	return slack.NewContextBlock("", mrkdwn("_+"+strconv.Itoa(hidden)+" more_"))
}

func truncate(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	const ellipsis = "…"
	cut := limit - len(ellipsis)
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut] + ellipsis
}
