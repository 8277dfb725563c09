package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	obibackend "github.com/oba-digital/obi-backend"
	"github.com/oba-digital/obi-backend/internal/config"
	"github.com/oba-digital/obi-backend/internal/handler"
	"github.com/oba-digital/obi-backend/internal/repository"
	"github.com/oba-digital/obi-backend/internal/server"
	"github.com/oba-digital/obi-backend/internal/service"
)

func main() {
	// Setup structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Setup context with graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to database
	pool, err := repository.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Run migrations
	migrationsFS, err := fs.Sub(obibackend.MigrationsFS, "migrations")
	if err != nil {
		slog.Error("failed to load embedded migrations", "error", err)
		os.Exit(1)
	}
	if err := repository.RunMigrations(cfg.DatabaseURL, migrationsFS); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Initialize stores and services
	answers := repository.NewAnswerStore(pool)
	helpQuestions := repository.NewHelpQuestionStore(pool)

	chatClient := service.NewChatClient(cfg.OpenAIKey, cfg.OpenAIBaseURL, cfg.ChatModel)
	completion := service.NewCompletionService(chatClient)
	extraction := service.NewEntityExtractionService(chatClient)
	catalog := service.NewCatalogService(cfg)
	translate := service.NewTranslateService(cfg)
	sessions := service.NewSessionManager()
	resolver := service.NewResolver(answers, completion, extraction, catalog)

	// Initialize handler and router
	h := handler.New(handler.Deps{
		Cfg:           cfg,
		Resolver:      resolver,
		Sessions:      sessions,
		Answers:       answers,
		HelpQuestions: helpQuestions,
		Translate:     translate,
	})
	router := server.NewRouter(h, cfg.CORSOrigins)

	// Start idle conversation cleanup goroutine
	go func() {
		ticker := time.NewTicker(config.SessionCleanupInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := sessions.EvictIdle(config.SessionIdleTTL); n > 0 {
					slog.Info("evicted idle conversations", "count", n)
				}
			}
		}
	}()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: router,
	}

	go func() {
		slog.Info("starting server", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown failed", "error", err)
	}
	slog.Info("server stopped gracefully")
}
