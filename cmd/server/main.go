package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	_ "repobrowser/docs"
	"repobrowser/internal/application/service"
	"repobrowser/internal/config"
	"repobrowser/internal/domain/browser"
	"repobrowser/internal/domain/events"
	infraRepoAPI "repobrowser/internal/infrastructure/repoapi"
	"repobrowser/internal/logging"
	"repobrowser/internal/presentation/handlers"
	"repobrowser/internal/presentation/router"
	"repobrowser/internal/repoapi"
)

// @title Repository Browser API
// @version 1.0
// @description Browse GitHub repositories by topic

// @contact.name Repository Browser Team

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

const sessionPruneInterval = time.Minute

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		bootLogger := zerolog.New(os.Stderr)
		bootLogger.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logger := logging.New(cfg.Log, os.Stderr)

	// Initialize infrastructure layer
	// External service clients
	apiClient := repoapi.NewClient(repoapi.Config{
		APIBaseURL: cfg.API.BaseURL,
		Timeout:    cfg.APITimeout(),
	})

	// Infrastructure implementations of domain services
	source := infraRepoAPI.NewSource(apiClient)

	// Event fan-out to the per-session SSE streams
	dispatcher := events.NewDispatcher(logger)
	sseManager := handlers.NewSSEManager(logger)
	dispatcher.RegisterAll(browser.EventTypes, sseManager.HandleEvent)

	// Initialize application layer
	sessions := service.NewSessionStore(func(sessionID string) *service.RepositoryBrowser {
		return service.NewRepositoryBrowser(sessionID, source, dispatcher, logger)
	})

	// Set Gin mode
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize presentation layer
	engine, err := router.New(router.Deps{
		Config:   cfg,
		Sessions: sessions,
		SSE:      sseManager,
		Logger:   logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize router")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      engine,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
		// Open event streams end when shutdown begins
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	go pruneSessions(ctx, sessions, cfg.SessionIdleTimeout(), logger)

	// Start server in a goroutine
	go func() {
		logger.Info().
			Str("addr", cfg.GetServerAddress()).
			Str("api_base_url", cfg.API.BaseURL).
			Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	<-ctx.Done()
	logger.Info().Msg("Shutting down server...")

	// Give outstanding requests 30 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Server exited")
}

// pruneSessions drops browsers whose session cookie can no longer be valid
func pruneSessions(ctx context.Context, sessions *service.SessionStore, maxIdle time.Duration, logger zerolog.Logger) {
	ticker := time.NewTicker(sessionPruneInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := sessions.Prune(maxIdle); n > 0 {
				logger.Debug().Int("pruned", n).Int("active", sessions.Len()).Msg("Pruned idle sessions")
			}
		}
	}
}
