// Package mongo stores sessions, exchanges, notes and reminders in MongoDB.
// Records are keyed by their own "id" field rather than _id.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/PabloGalante/aide/internal/domain"
)

const (
	sessionsCollection  = "sessions"
	chatsCollection     = "chats"
	notesCollection     = "notes"
	remindersCollection = "reminders"
)

type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewStore connects to uri and uses database.
func NewStore(ctx context.Context, uri, database string) (*Store, error) {
	if uri == "" || database == "" {
		return nil, fmt.Errorf("uri and database are required for Mongo store")
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connecting to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("pinging mongo: %w", err)
	}

	return &Store{client: client, db: client.Database(database)}, nil
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *Store) col(name string) *mongo.Collection {
	return s.db.Collection(name)
}

type sessionDoc struct {
	SessionID string    `bson:"session_id"`
	CreatedAt time.Time `bson:"created_at"`
}

type exchangeDoc struct {
	ID        string    `bson:"id"`
	SessionID string    `bson:"session_id"`
	Message   string    `bson:"message"`
	Response  string    `bson:"response"`
	Intent    string    `bson:"intent"`
	Failed    bool      `bson:"failed"`
	Timestamp time.Time `bson:"timestamp"`
}

type noteDoc struct {
	ID        string    `bson:"id"`
	Title     string    `bson:"title"`
	Content   string    `bson:"content"`
	Category  string    `bson:"category"`
	Tags      []string  `bson:"tags"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
	Completed bool      `bson:"completed"`
}

type reminderDoc struct {
	ID          string    `bson:"id"`
	Title       string    `bson:"title"`
	Description string    `bson:"description"`
	Date        time.Time `bson:"date"`
	Priority    string    `bson:"priority"`
	CreatedAt   time.Time `bson:"created_at"`
	Completed   bool      `bson:"completed"`
}

func (d noteDoc) toDomain() *domain.Note {
	tags := d.Tags
	if tags == nil {
		tags = []string{}
	}
	return &domain.Note{
		ID:        domain.NoteID(d.ID),
		Title:     d.Title,
		Content:   d.Content,
		Category:  d.Category,
		Tags:      tags,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
		Completed: d.Completed,
	}
}

func (d reminderDoc) toDomain() *domain.Reminder {
	return &domain.Reminder{
		ID:          domain.ReminderID(d.ID),
		Title:       d.Title,
		Description: d.Description,
		Date:        d.Date,
		Priority:    domain.Priority(d.Priority),
		CreatedAt:   d.CreatedAt,
		Completed:   d.Completed,
	}
}

func (d exchangeDoc) toDomain() *domain.Exchange {
	return &domain.Exchange{
		ID:        domain.ExchangeID(d.ID),
		SessionID: domain.SessionID(d.SessionID),
		Message:   d.Message,
		Response:  d.Response,
		Intent:    domain.ActionKind(d.Intent),
		Failed:    d.Failed,
		Timestamp: d.Timestamp,
	}
}

// SessionStore

func (s *Store) CreateSession(ctx context.Context, session *domain.Session) error {
	filter := bson.M{"session_id": string(session.ID)}
	update := bson.M{"$setOnInsert": sessionDoc{SessionID: string(session.ID), CreatedAt: session.CreatedAt}}

	res, err := s.col(sessionsCollection).UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("mongo CreateSession: %w", err)
	}
	if res.UpsertedCount == 0 {
		return fmt.Errorf("mongo CreateSession %s: %w", session.ID, domain.ErrAlreadyExists)
	}
	return nil
}

func (s *Store) GetSession(ctx context.Context, id domain.SessionID) (*domain.Session, error) {
	var doc sessionDoc
	err := s.col(sessionsCollection).FindOne(ctx, bson.M{"session_id": string(id)}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("mongo GetSession %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("mongo GetSession: %w", err)
	}
	return &domain.Session{ID: id, CreatedAt: doc.CreatedAt}, nil
}

// ExchangeStore

func (s *Store) AppendExchange(ctx context.Context, ex *domain.Exchange) error {
	doc := exchangeDoc{
		ID:        string(ex.ID),
		SessionID: string(ex.SessionID),
		Message:   ex.Message,
		Response:  ex.Response,
		Intent:    string(ex.Intent),
		Failed:    ex.Failed,
		Timestamp: ex.Timestamp,
	}
	if _, err := s.col(chatsCollection).InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("mongo AppendExchange: %w", err)
	}
	return nil
}

func (s *Store) ListExchangesBySession(
	ctx context.Context,
	sessionID domain.SessionID,
	limit int,
) ([]*domain.Exchange, error) {
	// Newest first so the limit keeps the tail, reversed below.
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cur, err := s.col(chatsCollection).Find(ctx, bson.M{"session_id": string(sessionID)}, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo ListExchangesBySession: %w", err)
	}

	var docs []exchangeDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("mongo ListExchangesBySession decode: %w", err)
	}

	out := make([]*domain.Exchange, len(docs))
	for i, d := range docs {
		out[len(docs)-1-i] = d.toDomain()
	}
	return out, nil
}

func (s *Store) CountExchangesSince(ctx context.Context, since time.Time) (int64, error) {
	n, err := s.col(chatsCollection).CountDocuments(ctx, bson.M{"timestamp": bson.M{"$gte": since}})
	if err != nil {
		return 0, fmt.Errorf("mongo CountExchangesSince: %w", err)
	}
	return n, nil
}

// NoteStore

func (s *Store) CreateNote(ctx context.Context, note *domain.Note) error {
	doc := noteDoc{
		ID:        string(note.ID),
		Title:     note.Title,
		Content:   note.Content,
		Category:  note.Category,
		Tags:      note.Tags,
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
		Completed: note.Completed,
	}
	if _, err := s.col(notesCollection).InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("mongo CreateNote: %w", err)
	}
	return nil
}

func (s *Store) GetNote(ctx context.Context, id domain.NoteID) (*domain.Note, error) {
	var doc noteDoc
	err := s.col(notesCollection).FindOne(ctx, bson.M{"id": string(id)}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("mongo GetNote %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("mongo GetNote: %w", err)
	}
	return doc.toDomain(), nil
}

func noteQuery(filter domain.NoteFilter) bson.M {
	q := bson.M{}
	if filter.Category != "" {
		q["category"] = filter.Category
	}
	if filter.Tag != "" {
		q["tags"] = bson.M{"$in": bson.A{filter.Tag}}
	}
	return q
}

func (s *Store) ListNotes(ctx context.Context, filter domain.NoteFilter) ([]*domain.Note, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cur, err := s.col(notesCollection).Find(ctx, noteQuery(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("mongo ListNotes: %w", err)
	}

	var docs []noteDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("mongo ListNotes decode: %w", err)
	}

	out := make([]*domain.Note, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (s *Store) UpdateNote(ctx context.Context, id domain.NoteID, upd domain.NoteUpdate) error {
	update := bson.M{"$set": bson.M{
		"title":      upd.Title,
		"content":    upd.Content,
		"category":   upd.Category,
		"tags":       upd.Tags,
		"updated_at": upd.UpdatedAt,
	}}

	res, err := s.col(notesCollection).UpdateOne(ctx, bson.M{"id": string(id)}, update)
	if err != nil {
		return fmt.Errorf("mongo UpdateNote: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("mongo UpdateNote %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (s *Store) DeleteNote(ctx context.Context, id domain.NoteID) error {
	res, err := s.col(notesCollection).DeleteOne(ctx, bson.M{"id": string(id)})
	if err != nil {
		return fmt.Errorf("mongo DeleteNote: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("mongo DeleteNote %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (s *Store) CountNotes(ctx context.Context) (int64, error) {
	n, err := s.col(notesCollection).CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("mongo CountNotes: %w", err)
	}
	return n, nil
}

// ReminderStore

func (s *Store) CreateReminder(ctx context.Context, r *domain.Reminder) error {
	doc := reminderDoc{
		ID:          string(r.ID),
		Title:       r.Title,
		Description: r.Description,
		Date:        r.Date,
		Priority:    string(r.Priority),
		CreatedAt:   r.CreatedAt,
		Completed:   r.Completed,
	}
	if _, err := s.col(remindersCollection).InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("mongo CreateReminder: %w", err)
	}
	return nil
}

func reminderQuery(filter domain.ReminderFilter) bson.M {
	q := bson.M{}
	if filter.UpcomingFrom != nil {
		q["date"] = bson.M{"$gte": *filter.UpcomingFrom}
		q["completed"] = false
	}
	return q
}

func (s *Store) ListReminders(ctx context.Context, filter domain.ReminderFilter) ([]*domain.Reminder, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})

	cur, err := s.col(remindersCollection).Find(ctx, reminderQuery(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("mongo ListReminders: %w", err)
	}

	var docs []reminderDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("mongo ListReminders decode: %w", err)
	}

	out := make([]*domain.Reminder, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (s *Store) CompleteReminder(ctx context.Context, id domain.ReminderID) error {
	res, err := s.col(remindersCollection).UpdateOne(ctx,
		bson.M{"id": string(id)},
		bson.M{"$set": bson.M{"completed": true}})
	if err != nil {
		return fmt.Errorf("mongo CompleteReminder: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("mongo CompleteReminder %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (s *Store) CountReminders(ctx context.Context, filter domain.ReminderFilter) (int64, error) {
	n, err := s.col(remindersCollection).CountDocuments(ctx, reminderQuery(filter))
	if err != nil {
		return 0, fmt.Errorf("mongo CountReminders: %w", err)
	}
	return n, nil
}

var (
	_ domain.SessionStore  = (*Store)(nil)
	_ domain.ExchangeStore = (*Store)(nil)
	_ domain.NoteStore     = (*Store)(nil)
	_ domain.ReminderStore = (*Store)(nil)
)
