package domain

// ActionKind names the intent behind a message.
type ActionKind string

const (
	ActionCreateNote     ActionKind = "create_note"
	ActionCreateReminder ActionKind = "create_reminder"
	ActionConverse       ActionKind = "converse"
)

// Action is the typed result of intent classification. It is one of
// CreateNote, CreateReminder, PartialIntent or Converse.
type Action interface {
	Kind() ActionKind
	isAction()
}

type CreateNote struct {
	Title    string
	Content  string
	Category string
}

// CreateReminder carries the provider's date text unresolved; the dispatcher
// turns it into a timestamp.
type CreateReminder struct {
	Title       string
	Description string
	RawDate     string
	Priority    Priority
}

// PartialIntent is a recognized tag whose payload is incomplete.
type PartialIntent struct {
	Intent  ActionKind
	Missing []string
}

type Converse struct{}

func (CreateNote) Kind() ActionKind { return ActionCreateNote }
func (CreateReminder) Kind() ActionKind { return ActionCreateReminder }
func (p PartialIntent) Kind() ActionKind { return p.Intent }
func (Converse) Kind() ActionKind { return ActionConverse }

func (CreateNote) isAction() {}
func (CreateReminder) isAction() {}
func (PartialIntent) isAction() {}
func (Converse) isAction() {}
