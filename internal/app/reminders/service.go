package reminders

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

// Service manages reminders created outside the chat flow.
type Service struct {
	store domain.ReminderStore
	now   func() time.Time
}

func NewService(store domain.ReminderStore) *Service {
	return &Service{store: store, now: time.Now}
}

type CreateInput struct {
	Title       string
	Description string
	Date        time.Time
	Priority    string
}

// Create stores a pending reminder. Title and date are required, priority
// defaults to medium.
func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Reminder, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: reminder title is required", domain.ErrInvalidInput)
	}
	if in.Date.IsZero() {
		return nil, fmt.Errorf("%w: reminder date is required", domain.ErrInvalidInput)
	}

	r := &domain.Reminder{
		ID:          domain.ReminderID(uuid.NewString()),
		Title:       title,
		Description: in.Description,
		Date:        in.Date,
		Priority:    domain.ParsePriority(in.Priority),
		CreatedAt:   s.now(),
	}

	if err := s.store.CreateReminder(ctx, r); err != nil {
		return nil, fmt.Errorf("%w: create reminder: %w", domain.ErrPersistence, err)
	}

	observability.LoggerFromContext(ctx).Info("reminder created", "reminder_id", r.ID, "date", r.Date)
	return r, nil
}

// List returns reminders ordered by date. With upcoming set, only pending
// reminders that are not yet due are returned.
func (s *Service) List(ctx context.Context, upcoming bool) ([]*domain.Reminder, error) {
	rs, err := s.store.ListReminders(ctx, s.filter(upcoming))
	if err != nil {
		return nil, fmt.Errorf("%w: list reminders: %w", domain.ErrPersistence, err)
	}
	return rs, nil
}

// Complete marks a reminder as done.
func (s *Service) Complete(ctx context.Context, id domain.ReminderID) error {
	if err := s.store.CompleteReminder(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("complete reminder: %w", err)
		}
		return fmt.Errorf("%w: complete reminder: %w", domain.ErrPersistence, err)
	}
	observability.LoggerFromContext(ctx).Info("reminder completed", "reminder_id", id)
	return nil
}

// CountUpcoming counts pending reminders that are not yet due.
func (s *Service) CountUpcoming(ctx context.Context) (int64, error) {
	n, err := s.store.CountReminders(ctx, s.filter(true))
	if err != nil {
		return 0, fmt.Errorf("%w: count reminders: %w", domain.ErrPersistence, err)
	}
	return n, nil
}

func (s *Service) filter(upcoming bool) domain.ReminderFilter {
	if !upcoming {
		return domain.ReminderFilter{}
	}
	now := s.now()
	return domain.ReminderFilter{UpcomingFrom: &now}
}
