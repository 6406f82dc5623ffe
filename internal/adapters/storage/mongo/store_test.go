package mongo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/PabloGalante/aide/internal/domain"
)

func TestNoteQuery(t *testing.T) {
	assert.Equal(t, bson.M{}, noteQuery(domain.NoteFilter{}))
	assert.Equal(t, bson.M{
		"category": "work",
		"tags":     bson.M{"$in": bson.A{"q3"}},
	}, noteQuery(domain.NoteFilter{Category: "work", Tag: "q3"}))
}

func TestReminderQueryUpcoming(t *testing.T) {
	assert.Equal(t, bson.M{}, reminderQuery(domain.ReminderFilter{}))

	now := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, bson.M{
		"date":      bson.M{"$gte": now},
		"completed": false,
	}, reminderQuery(domain.ReminderFilter{UpcomingFrom: &now}))
}

func TestDocsRoundTripToDomain(t *testing.T) {
	n := noteDoc{ID: "n1", Title: "t"}.toDomain()
	assert.Equal(t, domain.NoteID("n1"), n.ID)
	assert.Equal(t, []string{}, n.Tags)

	r := reminderDoc{ID: "r1", Priority: "high"}.toDomain()
	assert.Equal(t, domain.PriorityHigh, r.Priority)

	e := exchangeDoc{ID: "e1", SessionID: "s", Intent: "create_note", Failed: true}.toDomain()
	assert.Equal(t, domain.ActionCreateNote, e.Intent)
	assert.True(t, e.Failed)
}

func TestNewStoreRequiresURIAndDatabase(t *testing.T) {
	_, err := NewStore(t.Context(), "", "db")
	assert.Error(t, err)
}
