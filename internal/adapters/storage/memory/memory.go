// Package memory holds mutex-guarded in-memory stores for local mode and tests.
package memory

import "github.com/PabloGalante/aide/internal/domain"

var (
	_ domain.SessionStore  = (*SessionStore)(nil)
	_ domain.ExchangeStore = (*ExchangeStore)(nil)
	_ domain.NoteStore     = (*NoteStore)(nil)
	_ domain.ReminderStore = (*ReminderStore)(nil)
)
