package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/PabloGalante/aide/internal/domain"
)

// NoteStore is a simple in-memory implementation of domain.NoteStore.
// It is NOT persistent and is only suitable for development / local mode.
type NoteStore struct {
	mu    sync.RWMutex
	notes map[domain.NoteID]*domain.Note
}

func NewNoteStore() *NoteStore {
	return &NoteStore{
		notes: make(map[domain.NoteID]*domain.Note),
	}
}

func (s *NoteStore) CreateNote(_ context.Context, note *domain.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.notes[note.ID]; exists {
		return domain.ErrAlreadyExists
	}
	s.notes[note.ID] = cloneNote(note)
	return nil
}

func (s *NoteStore) GetNote(_ context.Context, id domain.NoteID) (*domain.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n, ok := s.notes[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneNote(n), nil
}

func (s *NoteStore) ListNotes(_ context.Context, filter domain.NoteFilter) ([]*domain.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Note, 0, len(s.notes))
	for _, n := range s.notes {
		if filter.Matches(n) {
			out = append(out, cloneNote(n))
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *NoteStore) UpdateNote(_ context.Context, id domain.NoteID, upd domain.NoteUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.notes[id]
	if !ok {
		return domain.ErrNotFound
	}

	n.Title = upd.Title
	n.Content = upd.Content
	n.Category = upd.Category
	n.Tags = append([]string(nil), upd.Tags...)
	n.UpdatedAt = upd.UpdatedAt
	return nil
}

func (s *NoteStore) DeleteNote(_ context.Context, id domain.NoteID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.notes[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.notes, id)
	return nil
}

func (s *NoteStore) CountNotes(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return int64(len(s.notes)), nil
}

func cloneNote(n *domain.Note) *domain.Note {
	cp := *n
	cp.Tags = append([]string{}, n.Tags...)
	return &cp
}
