package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/PabloGalante/aide/internal/domain"
)

type ReminderStore struct {
	mu        sync.RWMutex
	reminders map[domain.ReminderID]*domain.Reminder
}

func NewReminderStore() *ReminderStore {
	return &ReminderStore{
		reminders: make(map[domain.ReminderID]*domain.Reminder),
	}
}

func (s *ReminderStore) CreateReminder(_ context.Context, r *domain.Reminder) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.reminders[r.ID]; exists {
		return domain.ErrAlreadyExists
	}
	cp := *r
	s.reminders[r.ID] = &cp
	return nil
}

func (s *ReminderStore) ListReminders(_ context.Context, filter domain.ReminderFilter) ([]*domain.Reminder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Reminder, 0, len(s.reminders))
	for _, r := range s.reminders {
		if filter.Matches(r) {
			cp := *r
			out = append(out, &cp)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out, nil
}

func (s *ReminderStore) CompleteReminder(_ context.Context, id domain.ReminderID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.reminders[id]
	if !ok {
		return domain.ErrNotFound
	}
	r.Completed = true
	return nil
}

func (s *ReminderStore) CountReminders(_ context.Context, filter domain.ReminderFilter) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int64
	for _, r := range s.reminders {
		if filter.Matches(r) {
			n++
		}
	}
	return n, nil
}
