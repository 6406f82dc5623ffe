package httpadapter

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/PabloGalante/aide/internal/app/conversation"
	"github.com/PabloGalante/aide/internal/domain"
)

type chatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id,omitempty"`
}

type chatResponse struct {
	Response  string `json:"response"`
	SessionID string `json:"session_id"`
}

type exchangeResponse struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Response  string    `json:"response"`
	Intent    string    `json:"intent"`
	Failed    bool      `json:"failed"`
	Timestamp time.Time `json:"timestamp"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	out, err := s.svc.Conversation.SubmitMessage(r.Context(), conversation.SubmitMessageInput{
		SessionID: domain.SessionID(req.SessionID),
		Text:      req.Message,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{
		Response:  out.Response,
		SessionID: string(out.SessionID),
	})
}

func (s *Server) handleChatHistory(w http.ResponseWriter, r *http.Request) {
	id := domain.SessionID(chi.URLParam(r, "sessionID"))

	exs, err := s.svc.Conversation.History(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]exchangeResponse, 0, len(exs))
	for _, ex := range exs {
		out = append(out, exchangeResponse{
			ID:        string(ex.ID),
			Message:   ex.Message,
			Response:  ex.Response,
			Intent:    string(ex.Intent),
			Failed:    ex.Failed,
			Timestamp: ex.Timestamp,
		})
	}
	writeJSON(w, http.StatusOK, out)
}
