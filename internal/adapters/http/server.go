package httpadapter

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/PabloGalante/aide/internal/app/conversation"
	"github.com/PabloGalante/aide/internal/app/dashboard"
	"github.com/PabloGalante/aide/internal/app/notes"
	"github.com/PabloGalante/aide/internal/app/reminders"
	"github.com/PabloGalante/aide/internal/app/research"
)

// Services are the application services exposed over HTTP.
type Services struct {
	Conversation *conversation.Service
	Notes        *notes.Service
	Reminders    *reminders.Service
	Research     *research.Service
	Dashboard    *dashboard.Service
}

type Options struct {
	AllowedOrigins []string
	// Location interprets reminder dates sent without a zone.
	Location *time.Location
}

type Server struct {
	svc    Services
	loc    *time.Location
	router *chi.Mux
}

func NewServer(svc Services, opts Options) http.Handler {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"*"}
	}

	s := &Server{svc: svc, loc: opts.Location, router: chi.NewRouter()}

	s.router.Use(middleware.RequestID)
	s.router.Use(withLogging)
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))

	s.routes()
	return s.router
}

func (s *Server) routes() {
	r := s.router

	r.Get("/api/health", s.handleHealth)

	r.Post("/api/chat", s.handleChat)
	r.Get("/api/chat/history/{sessionID}", s.handleChatHistory)

	r.Route("/api/notes", func(r chi.Router) {
		r.Post("/", s.handleCreateNote)
		r.Get("/", s.handleListNotes)
		r.Put("/{noteID}", s.handleUpdateNote)
		r.Delete("/{noteID}", s.handleDeleteNote)
	})

	r.Route("/api/reminders", func(r chi.Router) {
		r.Post("/", s.handleCreateReminder)
		r.Get("/", s.handleListReminders)
		r.Put("/{reminderID}/complete", s.handleCompleteReminder)
	})

	r.Post("/api/search", s.handleSearch)
	r.Post("/api/code/analyze", s.handleAnalyzeCode)
	r.Get("/api/dashboard", s.handleDashboard)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"message": "aide API is running",
	})
}
