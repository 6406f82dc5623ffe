package dashboard_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PabloGalante/aide/internal/adapters/storage/memory"
	"github.com/PabloGalante/aide/internal/app/dashboard"
	"github.com/PabloGalante/aide/internal/domain"
)

func TestSummaryCounts(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	exchanges := memory.NewExchangeStore()
	notes := memory.NewNoteStore()
	reminders := memory.NewReminderStore()

	require.NoError(t, exchanges.AppendExchange(ctx, &domain.Exchange{ID: "e1", SessionID: "s", Timestamp: now.Add(-time.Hour)}))
	require.NoError(t, exchanges.AppendExchange(ctx, &domain.Exchange{ID: "e2", SessionID: "s", Timestamp: now.Add(-30 * 24 * time.Hour)}))
	require.NoError(t, notes.CreateNote(ctx, &domain.Note{ID: "n1", Title: "a", CreatedAt: now}))
	require.NoError(t, notes.CreateNote(ctx, &domain.Note{ID: "n2", Title: "b", CreatedAt: now}))
	require.NoError(t, reminders.CreateReminder(ctx, &domain.Reminder{ID: "r1", Date: now.Add(time.Hour)}))
	require.NoError(t, reminders.CreateReminder(ctx, &domain.Reminder{ID: "r2", Date: now.Add(-time.Hour)}))
	require.NoError(t, reminders.CreateReminder(ctx, &domain.Reminder{ID: "r3", Date: now.Add(time.Hour), Completed: true}))

	sum, err := dashboard.NewService(exchanges, notes, reminders).Summary(ctx)
	require.NoError(t, err)

	assert.EqualValues(t, 1, sum.RecentChats)
	assert.EqualValues(t, 2, sum.TotalNotes)
	assert.EqualValues(t, 1, sum.UpcomingReminders)
	assert.False(t, sum.LastActivity.IsZero())
}

type brokenNotes struct {
	*memory.NoteStore
}

func (brokenNotes) CountNotes(context.Context) (int64, error) {
	return 0, errors.New("timeout")
}

func TestSummaryFailsWhenACountFails(t *testing.T) {
	svc := dashboard.NewService(memory.NewExchangeStore(), brokenNotes{memory.NewNoteStore()}, memory.NewReminderStore())

	_, err := svc.Summary(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrPersistence)
	assert.Contains(t, err.Error(), "count notes")
}
