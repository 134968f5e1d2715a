package domain

// EventKind discriminates the inbound platform events the dispatcher handles.
type EventKind string

const (
	EventKindAppHomeOpened  EventKind = "app_home_opened"
	EventKindBlockAction    EventKind = "block_action"
	EventKindViewSubmission EventKind = "view_submission"
)

// Actor identifies who triggered an event and in which workspace.
type Actor struct {
	TeamID   string
	UserID   string
	UserName string
}

// Event is one of AppHomeOpened, BlockAction or ViewSubmission.
type Event interface {
	Kind() EventKind
	Source() Actor
	isEvent()
}

// AppHomeOpened fires when a user opens the app's home tab.
type AppHomeOpened struct {
	Actor Actor
}

func (AppHomeOpened) Kind() EventKind { return EventKindAppHomeOpened }
func (e AppHomeOpened) Source() Actor { return e.Actor }
func (AppHomeOpened) isEvent()        {}

// BlockAction is a button or overflow click on the home tab.
type BlockAction struct {
	Actor     Actor
	TriggerID string
	Action    Action
}

func (BlockAction) Kind() EventKind { return EventKindBlockAction }
func (e BlockAction) Source() Actor { return e.Actor }
func (BlockAction) isEvent()        {}

// ViewSubmission is a submitted modal form.
type ViewSubmission struct {
	Actor Actor
	Form  Form
}

func (ViewSubmission) Kind() EventKind { return EventKindViewSubmission }
func (e ViewSubmission) Source() Actor { return e.Actor }
func (ViewSubmission) isEvent()        {}
