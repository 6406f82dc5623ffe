package reminders_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PabloGalante/aide/internal/adapters/storage/memory"
	"github.com/PabloGalante/aide/internal/app/reminders"
	"github.com/PabloGalante/aide/internal/domain"
)

func TestCreateDefaultsPriority(t *testing.T) {
	svc := reminders.NewService(memory.NewReminderStore())

	r, err := svc.Create(context.Background(), reminders.CreateInput{
		Title: "Pay rent",
		Date:  time.Now().Add(24 * time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.PriorityMedium, r.Priority)
	assert.False(t, r.Completed)
}

func TestCreateValidates(t *testing.T) {
	svc := reminders.NewService(memory.NewReminderStore())

	_, err := svc.Create(context.Background(), reminders.CreateInput{Date: time.Now()})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Create(context.Background(), reminders.CreateInput{Title: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestListUpcomingAndComplete(t *testing.T) {
	ctx := context.Background()
	svc := reminders.NewService(memory.NewReminderStore())
	now := time.Now()

	past, err := svc.Create(ctx, reminders.CreateInput{Title: "past", Date: now.Add(-time.Hour)})
	require.NoError(t, err)
	later, err := svc.Create(ctx, reminders.CreateInput{Title: "later", Date: now.Add(48 * time.Hour), Priority: "alta"})
	require.NoError(t, err)
	soon, err := svc.Create(ctx, reminders.CreateInput{Title: "soon", Date: now.Add(time.Hour)})
	require.NoError(t, err)

	all, err := svc.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, past.ID, all[0].ID)

	upcoming, err := svc.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, upcoming, 2)
	assert.Equal(t, soon.ID, upcoming[0].ID)
	assert.Equal(t, later.ID, upcoming[1].ID)
	assert.Equal(t, domain.PriorityHigh, upcoming[1].Priority)

	require.NoError(t, svc.Complete(ctx, soon.ID))

	n, err := svc.CountUpcoming(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	assert.ErrorIs(t, svc.Complete(ctx, "missing"), domain.ErrNotFound)
}
