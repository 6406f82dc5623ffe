package conversation

import (
	"context"
	"log/slog"

	"github.com/PabloGalante/aide/internal/domain"
	"github.com/PabloGalante/aide/internal/observability"
)

// State is a step of the message state machine.
type State string

const (
	StateResolvingSession State = "resolving_session"
	StateClassifying      State = "classifying"
	StateDispatching      State = "dispatching"
	StateNoteBranch       State = "note_branch"
	StateReminderBranch   State = "reminder_branch"
	StateConverseBranch   State = "converse_branch"
	StatePersisting       State = "persisting"
	StateDone             State = "done"
	StateFailed           State = "failed"
)

// run tracks one message through the state machine.
type run struct {
	state     State
	path      []State
	sessionID domain.SessionID
	message   string
	intent    domain.ActionKind
	log       *slog.Logger
}

func newRun(ctx context.Context, in SubmitMessageInput) *run {
	return &run{
		state:   StateResolvingSession,
		path:    []State{StateResolvingSession},
		message: in.Text,
		log:     observability.LoggerFromContext(ctx),
	}
}

func (r *run) to(next State) {
	r.log.Debug("state transition", "from", r.state, "to", next)
	r.state = next
	r.path = append(r.path, next)
}

func branchFor(action domain.Action) State {
	switch action.Kind() {
	case domain.ActionCreateNote:
		return StateNoteBranch
	case domain.ActionCreateReminder:
		return StateReminderBranch
	default:
		return StateConverseBranch
	}
}
