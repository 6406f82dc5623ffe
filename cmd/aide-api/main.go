package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpadapter "github.com/PabloGalante/aide/internal/adapters/http"
	"github.com/PabloGalante/aide/internal/adapters/llm"
	firestorestore "github.com/PabloGalante/aide/internal/adapters/storage/firestore"
	memstore "github.com/PabloGalante/aide/internal/adapters/storage/memory"
	mongostore "github.com/PabloGalante/aide/internal/adapters/storage/mongo"
	"github.com/PabloGalante/aide/internal/app/agentflow"
	"github.com/PabloGalante/aide/internal/app/conversation"
	"github.com/PabloGalante/aide/internal/app/dashboard"
	"github.com/PabloGalante/aide/internal/app/dates"
	"github.com/PabloGalante/aide/internal/app/notes"
	"github.com/PabloGalante/aide/internal/app/reminders"
	"github.com/PabloGalante/aide/internal/app/research"
	"github.com/PabloGalante/aide/internal/config"
	"github.com/PabloGalante/aide/internal/domain"
	"github.com/PabloGalante/aide/internal/observability"
)

type stores struct {
	sessions  domain.SessionStore
	exchanges domain.ExchangeStore
	notes     domain.NoteStore
	reminders domain.ReminderStore
	close     func(context.Context) error
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		observability.Logger().Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	log := observability.Setup(os.Stdout, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gateway, err := newGateway(ctx, cfg)
	if err != nil {
		log.Error("error initializing completion gateway", "error", err)
		os.Exit(1)
	}

	st, err := newStores(ctx, cfg)
	if err != nil {
		log.Error("error initializing storage", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := st.close(context.Background()); err != nil {
			log.Warn("error closing storage", "error", err)
		}
	}()

	loc := cfg.Location()
	flow := agentflow.NewDefaultOrchestrator(
		gateway,
		st.notes,
		st.reminders,
		dates.NewResolver(loc),
		agentflow.Budgets{Classify: cfg.ClassifyMaxTokens, Reply: cfg.ReplyMaxTokens},
		loc,
	)

	handler := httpadapter.NewServer(httpadapter.Services{
		Conversation: conversation.NewService(st.sessions, st.exchanges, flow),
		Notes:        notes.NewService(st.notes),
		Reminders:    reminders.NewService(st.reminders),
		Research:     research.NewService(gateway, cfg.ReplyMaxTokens),
		Dashboard:    dashboard.NewService(st.exchanges, st.notes, st.reminders),
	}, httpadapter.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		Location:       loc,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("aide API listening", "port", cfg.Port, "mode", cfg.Mode,
			"llm_backend", cfg.LLMBackend, "storage_backend", cfg.StorageBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
}

func newGateway(ctx context.Context, cfg *config.Config) (domain.CompletionGateway, error) {
	log := observability.Logger()

	var gw domain.CompletionGateway
	switch cfg.LLMBackend {
	case config.LLMGemini:
		log.Info("using Gemini API completion gateway", "model", cfg.ModelName)
		c, err := llm.NewGeminiClient(ctx, llm.GeminiConfig{APIKey: cfg.GeminiAPIKey, ModelName: cfg.ModelName})
		if err != nil {
			return nil, err
		}
		gw = c
	case config.LLMVertex:
		log.Info("using Vertex AI completion gateway", "project", cfg.GCPProjectID, "location", cfg.GCPLocation)
		c, err := llm.NewGeminiClient(ctx, llm.GeminiConfig{
			Project:   cfg.GCPProjectID,
			Location:  cfg.GCPLocation,
			ModelName: cfg.ModelName,
		})
		if err != nil {
			return nil, err
		}
		gw = c
	default:
		log.Info("using MOCK completion gateway")
		gw = llm.NewMockLLM()
	}

	return llm.WithTimeout(gw, cfg.CompletionTimeout), nil
}

func newStores(ctx context.Context, cfg *config.Config) (*stores, error) {
	log := observability.Logger()

	switch cfg.StorageBackend {
	case config.StorageFirestore:
		log.Info("using Firestore storage", "project", cfg.GCPProjectID)
		fs, err := firestorestore.NewStore(ctx, cfg.GCPProjectID)
		if err != nil {
			return nil, err
		}
		// 1 store, implements 4 interfaces
		return &stores{
			sessions:  fs,
			exchanges: fs,
			notes:     fs,
			reminders: fs,
			close:     func(context.Context) error { return fs.Close() },
		}, nil

	case config.StorageMongo:
		log.Info("using MongoDB storage", "database", cfg.MongoDatabase)
		ms, err := mongostore.NewStore(ctx, cfg.MongoURL, cfg.MongoDatabase)
		if err != nil {
			return nil, err
		}
		return &stores{
			sessions:  ms,
			exchanges: ms,
			notes:     ms,
			reminders: ms,
			close:     ms.Close,
		}, nil

	default:
		log.Info("using in-memory storage")
		return &stores{
			sessions:  memstore.NewSessionStore(),
			exchanges: memstore.NewExchangeStore(),
			notes:     memstore.NewNoteStore(),
			reminders: memstore.NewReminderStore(),
			close:     func(context.Context) error { return nil },
		}, nil
	}
}
