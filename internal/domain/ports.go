package domain

import (
	"context"
	"time"
)

// CompletionGateway defines how the core application talks to a text
// completion provider. Implementations report every failure as
// ErrProviderFailure and never retry.
type CompletionGateway interface {
	Complete(ctx context.Context, instruction, userText string, maxTokens int) (string, error)
}

// SessionStore defines session's persistence
type SessionStore interface {
	CreateSession(ctx context.Context, session *Session) error
	GetSession(ctx context.Context, id SessionID) (*Session, error)
}

// ExchangeStore is the append-only transcript of every session.
type ExchangeStore interface {
	AppendExchange(ctx context.Context, ex *Exchange) error
	// ListExchangesBySession returns exchanges oldest first. limit <= 0 returns all.
	ListExchangesBySession(ctx context.Context, sessionID SessionID, limit int) ([]*Exchange, error)
	CountExchangesSince(ctx context.Context, since time.Time) (int64, error)
}

// NoteStore defines note's persistence. Update and delete report ErrNotFound
// when no note matches the id.
type NoteStore interface {
	CreateNote(ctx context.Context, note *Note) error
	GetNote(ctx context.Context, id NoteID) (*Note, error)
	// ListNotes returns matching notes newest first.
	ListNotes(ctx context.Context, filter NoteFilter) ([]*Note, error)
	UpdateNote(ctx context.Context, id NoteID, upd NoteUpdate) error
	DeleteNote(ctx context.Context, id NoteID) error
	CountNotes(ctx context.Context) (int64, error)
}

// ReminderStore defines reminder's persistence.
type ReminderStore interface {
	CreateReminder(ctx context.Context, r *Reminder) error
	// ListReminders returns matching reminders ordered by date ascending.
	ListReminders(ctx context.Context, filter ReminderFilter) ([]*Reminder, error)
	CompleteReminder(ctx context.Context, id ReminderID) error
	CountReminders(ctx context.Context, filter ReminderFilter) (int64, error)
}
