package dashboard

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/PabloGalante/aide/internal/domain"
	"github.com/PabloGalante/aide/internal/observability"
)

// RecentWindow is how far back exchanges count as recent activity.
const RecentWindow = 7 * 24 * time.Hour

type Summary struct {
	RecentChats       int64     `json:"recent_chats"`
	TotalNotes        int64     `json:"total_notes"`
	UpcomingReminders int64     `json:"upcoming_reminders"`
	LastActivity      time.Time `json:"last_activity"`
}

type Service struct {
	exchanges domain.ExchangeStore
	notes     domain.NoteStore
	reminders domain.ReminderStore
	now       func() time.Time
}

func NewService(exchanges domain.ExchangeStore, notes domain.NoteStore, reminders domain.ReminderStore) *Service {
	return &Service{
		exchanges: exchanges,
		notes:     notes,
		reminders: reminders,
		now:       time.Now,
	}
}

// Summary runs the three counts concurrently and fails if any of them does.
func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	now := s.now()
	out := &Summary{LastActivity: now}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.exchanges.CountExchangesSince(gctx, now.Add(-RecentWindow))
		if err != nil {
			return fmt.Errorf("count exchanges: %w", err)
		}
		out.RecentChats = n
		return nil
	})
	g.Go(func() error {
		n, err := s.notes.CountNotes(gctx)
		if err != nil {
			return fmt.Errorf("count notes: %w", err)
		}
		out.TotalNotes = n
		return nil
	})
	g.Go(func() error {
		n, err := s.reminders.CountReminders(gctx, domain.ReminderFilter{UpcomingFrom: &now})
		if err != nil {
			return fmt.Errorf("count reminders: %w", err)
		}
		out.UpcomingReminders = n
		return nil
	})

	if err := g.Wait(); err != nil {
		observability.LoggerFromContext(ctx).Error("dashboard summary failed", "error", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}
	return out, nil
}
