package domain

import "strconv"

// Static action identifiers carried by the home tab buttons.
const (
	ActionIDAddDiscussionItem = "add_discussion_item"
	ActionIDAddActionItem     = "add_action_item"
	ActionIDRefreshHome       = "refresh_home"
	ActionIDViewPastRetros    = "view_past_retros"
	ActionIDFinishRetro       = "finish_retro"
)

// Prefixes of per-item identifiers, always followed by the item id.
const (
	DiscussionOverflowPrefix = "discussion_overflow_"
	EditDiscussionPrefix     = "edit_discussion_"
	DeleteDiscussionPrefix   = "delete_discussion_"
	ToggleActionPrefix       = "toggle_action_"
)

// ActionKind is the decoded meaning of a block action.
type ActionKind string

const (
	ActionUnknown              ActionKind = ""
	ActionAddDiscussionItem    ActionKind = "add_discussion_item"
	ActionAddActionItem        ActionKind = "add_action_item"
	ActionRefreshHome          ActionKind = "refresh_home"
	ActionViewPastRetros       ActionKind = "view_past_retros"
	ActionFinishRetro          ActionKind = "finish_retro"
	ActionEditDiscussionItem   ActionKind = "edit_discussion_item"
	ActionDeleteDiscussionItem ActionKind = "delete_discussion_item"
	ActionToggleActionItem     ActionKind = "toggle_action_item"
)

// Action is a block action decoded into a kind and, for per-item actions, the target item id.
type Action struct {
	Kind     ActionKind
	TargetID int64
	// Raw is the identifier as received, kept for logging.
	Raw string
}

func (a Action) Known() bool {
	return a.Kind != ActionUnknown
}

func DiscussionOverflowActionID(itemID int64) string {
	return DiscussionOverflowPrefix + strconv.FormatInt(itemID, 10)
}

func EditDiscussionValue(itemID int64) string {
	return EditDiscussionPrefix + strconv.FormatInt(itemID, 10)
}

func DeleteDiscussionValue(itemID int64) string {
	return DeleteDiscussionPrefix + strconv.FormatInt(itemID, 10)
}

func ToggleActionID(itemID int64) string {
	return ToggleActionPrefix + strconv.FormatInt(itemID, 10)
}
