package firestore

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/PabloGalante/aide/internal/domain"
)

func TestMapErr(t *testing.T) {
	assert.ErrorIs(t, mapErr("GetNote", status.Error(codes.NotFound, "gone")), domain.ErrNotFound)
	assert.ErrorIs(t, mapErr("CreateSession", status.Error(codes.AlreadyExists, "dup")), domain.ErrAlreadyExists)

	other := mapErr("ListNotes", errors.New("unavailable"))
	assert.NotErrorIs(t, other, domain.ErrNotFound)
	assert.Contains(t, other.Error(), "firestore ListNotes")
}

func TestNoteDocToDomainDefaultsTags(t *testing.T) {
	n := noteDoc{Title: "t"}.toDomain("n-1")

	assert.Equal(t, domain.NoteID("n-1"), n.ID)
	assert.NotNil(t, n.Tags)
	assert.Empty(t, n.Tags)
}

func TestNewStoreRequiresProject(t *testing.T) {
	_, err := NewStore(t.Context(), "")
	assert.Error(t, err)
}
