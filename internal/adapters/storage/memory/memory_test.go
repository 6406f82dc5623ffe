package memory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PabloGalante/aide/internal/adapters/storage/memory"
	"github.com/PabloGalante/aide/internal/domain"
)

var base = time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)

func TestSessionStore(t *testing.T) {
	ctx := context.Background()
	s := memory.NewSessionStore()

	_, err := s.GetSession(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, s.CreateSession(ctx, &domain.Session{ID: "s1", CreatedAt: base}))
	assert.ErrorIs(t, s.CreateSession(ctx, &domain.Session{ID: "s1"}), domain.ErrAlreadyExists)

	got, err := s.GetSession(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, base, got.CreatedAt)
}

func TestExchangeStoreOrderLimitAndCount(t *testing.T) {
	ctx := context.Background()
	s := memory.NewExchangeStore()

	for i := 0; i < 3; i++ {
		require.NoError(t, s.AppendExchange(ctx, &domain.Exchange{
			SessionID: "s1",
			Message:   string(rune('a' + i)),
			Timestamp: base.AddDate(0, 0, -i*5),
		}))
	}
	require.NoError(t, s.AppendExchange(ctx, &domain.Exchange{SessionID: "s2", Timestamp: base}))

	all, err := s.ListExchangesBySession(ctx, "s1", 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "a", all[0].Message)

	last, err := s.ListExchangesBySession(ctx, "s1", 2)
	require.NoError(t, err)
	require.Len(t, last, 2)
	assert.Equal(t, "b", last[0].Message)

	n, err := s.CountExchangesSince(ctx, base.AddDate(0, 0, -7))
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)
}

func TestNoteStoreCRUD(t *testing.T) {
	ctx := context.Background()
	s := memory.NewNoteStore()

	require.NoError(t, s.CreateNote(ctx, &domain.Note{ID: "n1", Title: "old", Category: "work", Tags: []string{"a"}, CreatedAt: base}))
	require.NoError(t, s.CreateNote(ctx, &domain.Note{ID: "n2", Title: "new", Category: "home", CreatedAt: base.Add(time.Hour)}))

	all, err := s.ListNotes(ctx, domain.NoteFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, domain.NoteID("n2"), all[0].ID, "newest first")

	byTag, err := s.ListNotes(ctx, domain.NoteFilter{Tag: "a"})
	require.NoError(t, err)
	require.Len(t, byTag, 1)
	assert.Equal(t, domain.NoteID("n1"), byTag[0].ID)

	byCat, err := s.ListNotes(ctx, domain.NoteFilter{Category: "home"})
	require.NoError(t, err)
	require.Len(t, byCat, 1)

	require.NoError(t, s.UpdateNote(ctx, "n1", domain.NoteUpdate{Title: "renamed", Category: "work", UpdatedAt: base.Add(2 * time.Hour)}))
	got, err := s.GetNote(ctx, "n1")
	require.NoError(t, err)
	assert.Equal(t, "renamed", got.Title)
	assert.Empty(t, got.Tags)

	assert.ErrorIs(t, s.UpdateNote(ctx, "nope", domain.NoteUpdate{}), domain.ErrNotFound)
	assert.ErrorIs(t, s.DeleteNote(ctx, "nope"), domain.ErrNotFound)

	require.NoError(t, s.DeleteNote(ctx, "n1"))
	n, err := s.CountNotes(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestReminderStoreUpcomingAndComplete(t *testing.T) {
	ctx := context.Background()
	s := memory.NewReminderStore()

	require.NoError(t, s.CreateReminder(ctx, &domain.Reminder{ID: "late", Date: base.Add(48 * time.Hour)}))
	require.NoError(t, s.CreateReminder(ctx, &domain.Reminder{ID: "soon", Date: base.Add(time.Hour)}))
	require.NoError(t, s.CreateReminder(ctx, &domain.Reminder{ID: "past", Date: base.Add(-time.Hour)}))

	all, err := s.ListReminders(ctx, domain.ReminderFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, domain.ReminderID("past"), all[0].ID, "ascending by date")

	now := base
	upcoming := domain.ReminderFilter{UpcomingFrom: &now}
	list, err := s.ListReminders(ctx, upcoming)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, domain.ReminderID("soon"), list[0].ID)

	require.NoError(t, s.CompleteReminder(ctx, "soon"))
	assert.ErrorIs(t, s.CompleteReminder(ctx, "nope"), domain.ErrNotFound)

	n, err := s.CountReminders(ctx, upcoming)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestStoresAreSafeForConcurrentUse(t *testing.T) {
	ctx := context.Background()
	s := memory.NewExchangeStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.AppendExchange(ctx, &domain.Exchange{SessionID: "s", Timestamp: base})
		}()
	}
	wg.Wait()

	all, err := s.ListExchangesBySession(ctx, "s", 0)
	require.NoError(t, err)
	assert.Len(t, all, 50)
}
