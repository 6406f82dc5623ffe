package httpadapter

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/PabloGalante/aide/internal/app/conversation"
	"github.com/PabloGalante/aide/internal/domain"
	"github.com/PabloGalante/aide/internal/observability"
)

// ─────────────────────────────────────────────
// HTTP Helpers
// ─────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		badRequest(w, "invalid JSON body")
		return false
	}
	return true
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{
		"error": msg,
	})
}

// writeError maps domain errors to status codes. Failed chat messages keep
// the apology and session id so the client can show them.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var exErr *conversation.ExchangeError
	switch {
	case errors.Is(err, domain.ErrInvalidInput) && errors.As(err, &exErr):
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error":      err.Error(),
			"response":   exErr.Response,
			"session_id": string(exErr.SessionID),
		})
		return
	case errors.Is(err, domain.ErrInvalidInput):
		badRequest(w, err.Error())
		return
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	}
	internalError(w, r, err)
}

func internalError(w http.ResponseWriter, r *http.Request, err error) {
	observability.LoggerFromContext(r.Context()).Error("request failed", "error", err)

	var exErr *conversation.ExchangeError
	if errors.As(err, &exErr) {
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error":      "internal server error",
			"response":   exErr.Response,
			"session_id": string(exErr.SessionID),
		})
		return
	}

	writeJSON(w, http.StatusInternalServerError, map[string]string{
		"error": "internal server error",
	})
}
