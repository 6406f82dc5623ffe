package agentflow

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/PabloGalante/aide/internal/app/dates"
	"github.com/PabloGalante/aide/internal/domain"
	"github.com/PabloGalante/aide/internal/observability"
)

// NoteWriter persists a new note. domain.NoteStore satisfies it.
type NoteWriter interface {
	CreateNote(ctx context.Context, note *domain.Note) error
}

// ReminderWriter persists a new reminder. domain.ReminderStore satisfies it.
type ReminderWriter interface {
	CreateReminder(ctx context.Context, r *domain.Reminder) error
}

// Outcome is the result of dispatching one action.
type Outcome struct {
	Kind     domain.ActionKind
	Partial  bool
	Response string

	// At most one of these is set.
	Note     *domain.Note
	Reminder *domain.Reminder
}

// Dispatcher performs the side effect of an action and builds the reply.
type Dispatcher struct {
	notes        NoteWriter
	reminders    ReminderWriter
	resolver     *dates.Resolver
	conversation *ConversationAgent
	now          func() time.Time
}

func NewDispatcher(
	notes NoteWriter,
	reminders ReminderWriter,
	resolver *dates.Resolver,
	conversation *ConversationAgent,
) *Dispatcher {
	return &Dispatcher{
		notes:        notes,
		reminders:    reminders,
		resolver:     resolver,
		conversation: conversation,
		now:          time.Now,
	}
}

// Dispatch runs the action exactly once. Well-formed notes and reminders
// write one record, partial intents and conversations write none.
func (d *Dispatcher) Dispatch(ctx context.Context, action domain.Action, utterance string) (*Outcome, error) {
	log := observability.LoggerFromContext(ctx).With("intent", action.Kind())

	switch a := action.(type) {
	case domain.CreateNote:
		return d.createNote(ctx, a)

	case domain.CreateReminder:
		return d.createReminder(ctx, a, utterance)

	case domain.PartialIntent:
		log.Info("partial intent, asking for clarification", "missing", a.Missing)
		return &Outcome{
			Kind:     a.Intent,
			Partial:  true,
			Response: clarification(a),
		}, nil

	default:
		if d.conversation == nil {
			return nil, fmt.Errorf("%w: no conversation agent configured", domain.ErrProviderFailure)
		}
		reply, err := d.conversation.Reply(ctx, utterance)
		if err != nil {
			return nil, err
		}
		return &Outcome{Kind: domain.ActionConverse, Response: reply}, nil
	}
}

func (d *Dispatcher) createNote(ctx context.Context, a domain.CreateNote) (*Outcome, error) {
	now := d.now()
	note := &domain.Note{
		ID:        domain.NoteID(uuid.NewString()),
		Title:     a.Title,
		Content:   a.Content,
		Category:  domain.NormalizeCategory(a.Category),
		Tags:      []string{},
		CreatedAt: now,
		UpdatedAt: now,
		Completed: false,
	}

	if err := d.notes.CreateNote(ctx, note); err != nil {
		return nil, fmt.Errorf("%w: create note: %w", domain.ErrPersistence, err)
	}

	observability.LoggerFromContext(ctx).Info("note created", "note_id", note.ID)

	return &Outcome{
		Kind:     domain.ActionCreateNote,
		Response: noteConfirmation(note),
		Note:     note,
	}, nil
}

func (d *Dispatcher) createReminder(ctx context.Context, a domain.CreateReminder, utterance string) (*Outcome, error) {
	when, source := d.resolver.ResolveWithSource(a.RawDate, utterance)

	reminder := &domain.Reminder{
		ID:          domain.ReminderID(uuid.NewString()),
		Title:       a.Title,
		Description: a.Description,
		Date:        when,
		Priority:    a.Priority,
		CreatedAt:   d.now(),
		Completed:   false,
	}
	if reminder.Priority == "" {
		reminder.Priority = domain.PriorityMedium
	}

	if err := d.reminders.CreateReminder(ctx, reminder); err != nil {
		return nil, fmt.Errorf("%w: create reminder: %w", domain.ErrPersistence, err)
	}

	observability.LoggerFromContext(ctx).Info("reminder created",
		"reminder_id", reminder.ID,
		"raw_date", a.RawDate,
		"date_source", source,
		"date", when)

	return &Outcome{
		Kind:     domain.ActionCreateReminder,
		Response: reminderConfirmation(reminder),
		Reminder: reminder,
	}, nil
}

func noteConfirmation(n *domain.Note) string {
	return fmt.Sprintf("Note saved.\n\nTitle: %s\nContent: %s\nCategory: %s",
		n.Title, n.Content, n.Category)
}

func reminderConfirmation(r *domain.Reminder) string {
	return fmt.Sprintf("Reminder scheduled.\n\nTitle: %s\nDescription: %s\nDate: %s\nPriority: %s",
		r.Title, r.Description, r.Date.Format("Mon 02 Jan 2006 15:04"), r.Priority)
}

func clarification(p domain.PartialIntent) string {
	missing := "some details"
	if len(p.Missing) > 0 {
		missing = "the " + strings.Join(p.Missing, ", ")
	}

	switch p.Intent {
	case domain.ActionCreateReminder:
		return fmt.Sprintf("I understood you want a reminder, but I could not work out %s. "+
			"Could you tell me what to remind you about and when?", missing)
	default:
		return fmt.Sprintf("I understood you want to save a note, but I could not work out %s. "+
			"Could you tell me the title and what the note should say?", missing)
	}
}
