package domain

import "github.com/denwilliams/slack-retro/internal/model"

// Modal callback ids.
const (
	CallbackAddDiscussionItem  = "add_discussion_item_modal"
	CallbackEditDiscussionItem = "edit_discussion_item_modal"
	CallbackAddActionItem      = "add_action_item_modal"
	CallbackPastRetros         = "past_retros_modal"
)

// Block and element ids of modal inputs.
const (
	BlockCategory    = "category_block"
	InputCategory    = "category_input"
	BlockContent     = "content_block"
	InputContent     = "content_input"
	BlockResponsible = "responsible_block"
	InputResponsible = "responsible_input"
)

type FormKind string

const (
	FormUnknown            FormKind = ""
	FormAddDiscussionItem  FormKind = "add_discussion_item"
	FormEditDiscussionItem FormKind = "edit_discussion_item"
	FormAddActionItem      FormKind = "add_action_item"
)

// Form is the decoded content of a submitted modal.
type Form interface {
	FormKind() FormKind
}

type AddDiscussionItemForm struct {
	Category model.Category
	Content  string
}

func (AddDiscussionItemForm) FormKind() FormKind { return FormAddDiscussionItem }

type EditDiscussionItemForm struct {
	ItemID  int64
	Content string
}

func (EditDiscussionItemForm) FormKind() FormKind { return FormEditDiscussionItem }

type AddActionItemForm struct {
	ResponsibleUserID string
	Content           string
}

func (AddActionItemForm) FormKind() FormKind { return FormAddActionItem }

// UnknownForm is a submission whose callback id nothing handles.
type UnknownForm struct {
	CallbackID string
}

func (UnknownForm) FormKind() FormKind { return FormUnknown }
