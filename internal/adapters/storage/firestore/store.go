package firestore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/firestore/apiv1/firestorepb"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/PabloGalante/aide/internal/domain"
)

type Store struct {
	client *firestore.Client
}

// NewStore creates a Firestore store.
// Uses the project passed (AIDE_GCP_PROJECT).
func NewStore(ctx context.Context, projectID string) (*Store, error) {
	if projectID == "" {
		return nil, fmt.Errorf("projectID is required for Firestore store")
	}

	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("creating firestore client: %w", err)
	}

	return &Store{client: client}, nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

// ─────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────

func (s *Store) sessionsCol() *firestore.CollectionRef {
	return s.client.Collection("sessions")
}

func (s *Store) sessionDoc(id domain.SessionID) *firestore.DocumentRef {
	return s.sessionsCol().Doc(string(id))
}

func (s *Store) exchangesCol(sessionID domain.SessionID) *firestore.CollectionRef {
	return s.sessionDoc(sessionID).Collection("exchanges")
}

func (s *Store) notesCol() *firestore.CollectionRef {
	return s.client.Collection("notes")
}

func (s *Store) remindersCol() *firestore.CollectionRef {
	return s.client.Collection("reminders")
}

// mapErr turns gRPC status codes into domain errors.
func mapErr(op string, err error) error {
	switch status.Code(err) {
	case codes.NotFound:
		return fmt.Errorf("firestore %s: %w", op, domain.ErrNotFound)
	case codes.AlreadyExists:
		return fmt.Errorf("firestore %s: %w", op, domain.ErrAlreadyExists)
	default:
		return fmt.Errorf("firestore %s: %w", op, err)
	}
}

func count(ctx context.Context, q firestore.Query, op string) (int64, error) {
	res, err := q.NewAggregationQuery().WithCount("all").Get(ctx)
	if err != nil {
		return 0, fmt.Errorf("firestore %s: %w", op, err)
	}

	v, ok := res["all"].(*firestorepb.Value)
	if !ok {
		return 0, fmt.Errorf("firestore %s: unexpected aggregation result %T", op, res["all"])
	}
	return v.GetIntegerValue(), nil
}

// ─────────────────────────────────────────
// Firestore Types
// ─────────────────────────────────────────

type sessionDoc struct {
	CreatedAt time.Time `firestore:"created_at"`
}

type exchangeDoc struct {
	SessionID string    `firestore:"session_id"`
	Message   string    `firestore:"message"`
	Response  string    `firestore:"response"`
	Intent    string    `firestore:"intent"`
	Failed    bool      `firestore:"failed"`
	Timestamp time.Time `firestore:"timestamp"`
}

type noteDoc struct {
	Title     string    `firestore:"title"`
	Content   string    `firestore:"content"`
	Category  string    `firestore:"category"`
	Tags      []string  `firestore:"tags"`
	CreatedAt time.Time `firestore:"created_at"`
	UpdatedAt time.Time `firestore:"updated_at"`
	Completed bool      `firestore:"completed"`
}

type reminderDoc struct {
	Title       string    `firestore:"title"`
	Description string    `firestore:"description"`
	Date        time.Time `firestore:"date"`
	Priority    string    `firestore:"priority"`
	CreatedAt   time.Time `firestore:"created_at"`
	Completed   bool      `firestore:"completed"`
}

func (d noteDoc) toDomain(id string) *domain.Note {
	tags := d.Tags
	if tags == nil {
		tags = []string{}
	}
	return &domain.Note{
		ID:        domain.NoteID(id),
		Title:     d.Title,
		Content:   d.Content,
		Category:  d.Category,
		Tags:      tags,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
		Completed: d.Completed,
	}
}

func (d reminderDoc) toDomain(id string) *domain.Reminder {
	return &domain.Reminder{
		ID:          domain.ReminderID(id),
		Title:       d.Title,
		Description: d.Description,
		Date:        d.Date,
		Priority:    domain.Priority(d.Priority),
		CreatedAt:   d.CreatedAt,
		Completed:   d.Completed,
	}
}

// ─────────────────────────────────────────
// SessionStore implementation
// ─────────────────────────────────────────

func (s *Store) CreateSession(ctx context.Context, session *domain.Session) error {
	_, err := s.sessionDoc(session.ID).Create(ctx, sessionDoc{CreatedAt: session.CreatedAt})
	if err != nil {
		return mapErr("CreateSession", err)
	}
	return nil
}

func (s *Store) GetSession(ctx context.Context, id domain.SessionID) (*domain.Session, error) {
	snap, err := s.sessionDoc(id).Get(ctx)
	if err != nil {
		return nil, mapErr("GetSession", err)
	}

	var doc sessionDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("firestore GetSession decode: %w", err)
	}

	return &domain.Session{ID: id, CreatedAt: doc.CreatedAt}, nil
}

// ─────────────────────────────────────────
// ExchangeStore implementation
// ─────────────────────────────────────────

func (s *Store) AppendExchange(ctx context.Context, ex *domain.Exchange) error {
	doc := exchangeDoc{
		SessionID: string(ex.SessionID),
		Message:   ex.Message,
		Response:  ex.Response,
		Intent:    string(ex.Intent),
		Failed:    ex.Failed,
		Timestamp: ex.Timestamp,
	}

	_, err := s.exchangesCol(ex.SessionID).Doc(string(ex.ID)).Set(ctx, doc)
	if err != nil {
		return fmt.Errorf("firestore AppendExchange: %w", err)
	}
	return nil
}

func (s *Store) ListExchangesBySession(
	ctx context.Context,
	sessionID domain.SessionID,
	limit int,
) ([]*domain.Exchange, error) {
	q := s.exchangesCol(sessionID).OrderBy("timestamp", firestore.Asc)
	if limit > 0 {
		q = q.LimitToLast(limit)
	}

	iter := q.Documents(ctx)
	defer iter.Stop()

	out := []*domain.Exchange{}
	for {
		snap, err := iter.Next()
		if err != nil {
			if errors.Is(err, iterator.Done) {
				break
			}
			return nil, fmt.Errorf("firestore ListExchangesBySession: %w", err)
		}

		var doc exchangeDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("decode exchangeDoc: %w", err)
		}

		out = append(out, &domain.Exchange{
			ID:        domain.ExchangeID(snap.Ref.ID),
			SessionID: sessionID,
			Message:   doc.Message,
			Response:  doc.Response,
			Intent:    domain.ActionKind(doc.Intent),
			Failed:    doc.Failed,
			Timestamp: doc.Timestamp,
		})
	}
	return out, nil
}

func (s *Store) CountExchangesSince(ctx context.Context, since time.Time) (int64, error) {
	q := s.client.CollectionGroup("exchanges").Where("timestamp", ">=", since)
	return count(ctx, q, "CountExchangesSince")
}

// ─────────────────────────────────────────
// NoteStore implementation
// ─────────────────────────────────────────

func (s *Store) CreateNote(ctx context.Context, note *domain.Note) error {
	doc := noteDoc{
		Title:     note.Title,
		Content:   note.Content,
		Category:  note.Category,
		Tags:      note.Tags,
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
		Completed: note.Completed,
	}

	if _, err := s.notesCol().Doc(string(note.ID)).Create(ctx, doc); err != nil {
		return mapErr("CreateNote", err)
	}
	return nil
}

func (s *Store) GetNote(ctx context.Context, id domain.NoteID) (*domain.Note, error) {
	snap, err := s.notesCol().Doc(string(id)).Get(ctx)
	if err != nil {
		return nil, mapErr("GetNote", err)
	}

	var doc noteDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("decode noteDoc: %w", err)
	}
	return doc.toDomain(snap.Ref.ID), nil
}

func (s *Store) ListNotes(ctx context.Context, filter domain.NoteFilter) ([]*domain.Note, error) {
	q := s.notesCol().Query
	if filter.Category != "" {
		q = q.Where("category", "==", filter.Category)
	}
	if filter.Tag != "" {
		q = q.Where("tags", "array-contains", filter.Tag)
	}
	q = q.OrderBy("created_at", firestore.Desc)

	iter := q.Documents(ctx)
	defer iter.Stop()

	out := []*domain.Note{}
	for {
		snap, err := iter.Next()
		if err != nil {
			if errors.Is(err, iterator.Done) {
				break
			}
			return nil, fmt.Errorf("firestore ListNotes: %w", err)
		}

		var doc noteDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("decode noteDoc: %w", err)
		}
		out = append(out, doc.toDomain(snap.Ref.ID))
	}
	return out, nil
}

func (s *Store) UpdateNote(ctx context.Context, id domain.NoteID, upd domain.NoteUpdate) error {
	_, err := s.notesCol().Doc(string(id)).Update(ctx, []firestore.Update{
		{Path: "title", Value: upd.Title},
		{Path: "content", Value: upd.Content},
		{Path: "category", Value: upd.Category},
		{Path: "tags", Value: upd.Tags},
		{Path: "updated_at", Value: upd.UpdatedAt},
	})
	if err != nil {
		return mapErr("UpdateNote", err)
	}
	return nil
}

func (s *Store) DeleteNote(ctx context.Context, id domain.NoteID) error {
	if _, err := s.notesCol().Doc(string(id)).Delete(ctx, firestore.Exists); err != nil {
		return mapErr("DeleteNote", err)
	}
	return nil
}

func (s *Store) CountNotes(ctx context.Context) (int64, error) {
	return count(ctx, s.notesCol().Query, "CountNotes")
}

// ─────────────────────────────────────────
// ReminderStore implementation
// ─────────────────────────────────────────

func (s *Store) CreateReminder(ctx context.Context, r *domain.Reminder) error {
	doc := reminderDoc{
		Title:       r.Title,
		Description: r.Description,
		Date:        r.Date,
		Priority:    string(r.Priority),
		CreatedAt:   r.CreatedAt,
		Completed:   r.Completed,
	}

	if _, err := s.remindersCol().Doc(string(r.ID)).Create(ctx, doc); err != nil {
		return mapErr("CreateReminder", err)
	}
	return nil
}

func (s *Store) reminderQuery(filter domain.ReminderFilter) firestore.Query {
	q := s.remindersCol().Query
	if filter.UpcomingFrom != nil {
		q = q.Where("completed", "==", false).Where("date", ">=", *filter.UpcomingFrom)
	}
	return q
}

func (s *Store) ListReminders(ctx context.Context, filter domain.ReminderFilter) ([]*domain.Reminder, error) {
	iter := s.reminderQuery(filter).OrderBy("date", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	out := []*domain.Reminder{}
	for {
		snap, err := iter.Next()
		if err != nil {
			if errors.Is(err, iterator.Done) {
				break
			}
			return nil, fmt.Errorf("firestore ListReminders: %w", err)
		}

		var doc reminderDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("decode reminderDoc: %w", err)
		}
		out = append(out, doc.toDomain(snap.Ref.ID))
	}
	return out, nil
}

func (s *Store) CompleteReminder(ctx context.Context, id domain.ReminderID) error {
	_, err := s.remindersCol().Doc(string(id)).Update(ctx, []firestore.Update{
		{Path: "completed", Value: true},
	})
	if err != nil {
		return mapErr("CompleteReminder", err)
	}
	return nil
}

func (s *Store) CountReminders(ctx context.Context, filter domain.ReminderFilter) (int64, error) {
	return count(ctx, s.reminderQuery(filter), "CountReminders")
}

var (
	_ domain.SessionStore  = (*Store)(nil)
	_ domain.ExchangeStore = (*Store)(nil)
	_ domain.NoteStore     = (*Store)(nil)
	_ domain.ReminderStore = (*Store)(nil)
)
