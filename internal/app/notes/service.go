package notes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/PabloGalante/aide/internal/domain"
	"github.com/PabloGalante/aide/internal/observability"
)

// Service holds the logic of managing notes outside the chat flow.
type Service struct {
	store domain.NoteStore
	now   func() time.Time
}

// NewService creates a notes service from a NoteStore.
func NewService(store domain.NoteStore) *Service {
	return &Service{
		store: store,
		now:   time.Now,
	}
}

type CreateInput struct {
	Title    string
	Content  string
	Category string
	Tags     []string
}

// Create stores a new note. Title is required, category defaults to
// domain.DefaultCategory.
func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Note, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: note title is required", domain.ErrInvalidInput)
	}

	now := s.now()
	note := &domain.Note{
		ID:        domain.NoteID(uuid.NewString()),
		Title:     title,
		Content:   in.Content,
		Category:  domain.NormalizeCategory(in.Category),
		Tags:      normalizeTags(in.Tags),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.store.CreateNote(ctx, note); err != nil {
		return nil, fmt.Errorf("%w: create note: %w", domain.ErrPersistence, err)
	}

	observability.LoggerFromContext(ctx).Info("note created", "note_id", note.ID, "category", note.Category)
	return note, nil
}

// List returns notes newest first.
func (s *Service) List(ctx context.Context, filter domain.NoteFilter) ([]*domain.Note, error) {
	notes, err := s.store.ListNotes(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%w: list notes: %w", domain.ErrPersistence, err)
	}
	return notes, nil
}

// Update replaces the editable fields of a note and returns the result.
func (s *Service) Update(ctx context.Context, id domain.NoteID, in CreateInput) (*domain.Note, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: note title is required", domain.ErrInvalidInput)
	}

	upd := domain.NoteUpdate{
		Title:     title,
		Content:   in.Content,
		Category:  domain.NormalizeCategory(in.Category),
		Tags:      normalizeTags(in.Tags),
		UpdatedAt: s.now(),
	}
	if err := s.store.UpdateNote(ctx, id, upd); err != nil {
		return nil, storeErr("update note", err)
	}

	note, err := s.store.GetNote(ctx, id)
	if err != nil {
		return nil, storeErr("get note", err)
	}

	observability.LoggerFromContext(ctx).Info("note updated", "note_id", id)
	return note, nil
}

func (s *Service) Delete(ctx context.Context, id domain.NoteID) error {
	if err := s.store.DeleteNote(ctx, id); err != nil {
		return storeErr("delete note", err)
	}
	observability.LoggerFromContext(ctx).Info("note deleted", "note_id", id)
	return nil
}

// storeErr keeps ErrNotFound visible and tags anything else as a persistence failure.
func storeErr(op string, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%w: %s: %w", domain.ErrPersistence, op, err)
}

func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
