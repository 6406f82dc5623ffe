package httpadapter

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/araddon/dateparse"
	"github.com/go-chi/chi/v5"

	"github.com/PabloGalante/aide/internal/app/notes"
	"github.com/PabloGalante/aide/internal/app/reminders"
	"github.com/PabloGalante/aide/internal/domain"
)

type noteRequest struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
}

func (req noteRequest) input() notes.CreateInput {
	return notes.CreateInput{
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
		Tags:     req.Tags,
	}
}

type reminderRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Priority    string `json:"priority"`
}

func (s *Server) handleCreateNote(w http.ResponseWriter, r *http.Request) {
	var req noteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	note, err := s.svc.Notes.Create(r.Context(), req.input())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, note)
}

func (s *Server) handleListNotes(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.NoteFilter{
		Category: q.Get("category"),
		Tag:      q.Get("tag"),
	}

	out, err := s.svc.Notes.List(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleUpdateNote(w http.ResponseWriter, r *http.Request) {
	var req noteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	id := domain.NoteID(chi.URLParam(r, "noteID"))
	if _, err := s.svc.Notes.Update(r.Context(), id, req.input()); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Note updated successfully"})
}

func (s *Server) handleDeleteNote(w http.ResponseWriter, r *http.Request) {
	id := domain.NoteID(chi.URLParam(r, "noteID"))
	if err := s.svc.Notes.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Note deleted successfully"})
}

func (s *Server) handleCreateReminder(w http.ResponseWriter, r *http.Request) {
	var req reminderRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	date, err := dateparse.ParseIn(strings.TrimSpace(req.Date), s.loc)
	if err != nil {
		writeError(w, r, fmt.Errorf("%w: invalid reminder date %q", domain.ErrInvalidInput, req.Date))
		return
	}

	reminder, err := s.svc.Reminders.Create(r.Context(), reminders.CreateInput{
		Title:       req.Title,
		Description: req.Description,
		Date:        date,
		Priority:    req.Priority,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, reminder)
}

func (s *Server) handleListReminders(w http.ResponseWriter, r *http.Request) {
	var upcoming bool
	if v := r.URL.Query().Get("upcoming"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, r, fmt.Errorf("%w: upcoming must be a boolean", domain.ErrInvalidInput))
			return
		}
		upcoming = b
	}

	out, err := s.svc.Reminders.List(r.Context(), upcoming)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCompleteReminder(w http.ResponseWriter, r *http.Request) {
	id := domain.ReminderID(chi.URLParam(r, "reminderID"))
	if err := s.svc.Reminders.Complete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Reminder completed successfully"})
}
