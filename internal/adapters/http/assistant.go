package httpadapter

import (
	"net/http"

	"github.com/PabloGalante/aide/internal/app/research"
)

type searchRequest struct {
	Query string `json:"query"`
	Type  string `json:"type"`
}

type codeRequest struct {
	Code     string `json:"code"`
	Language string `json:"language"`
	Task     string `json:"task"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	out, err := s.svc.Research.Search(r.Context(), req.Query, req.Type)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleAnalyzeCode(w http.ResponseWriter, r *http.Request) {
	var req codeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	out, err := s.svc.Research.AnalyzeCode(r.Context(), research.CodeRequest{
		Code:     req.Code,
		Language: req.Language,
		Task:     research.CodeTask(req.Task),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	out, err := s.svc.Dashboard.Summary(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}
