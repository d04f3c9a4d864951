package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yukikurage/todo-api/internal/auth"
	"github.com/yukikurage/todo-api/internal/config"
	"github.com/yukikurage/todo-api/internal/database"
	"github.com/yukikurage/todo-api/internal/handlers"
	"github.com/yukikurage/todo-api/internal/logger"
	"github.com/yukikurage/todo-api/internal/repository"
	"github.com/yukikurage/todo-api/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New(config.EnvProd)
		bootLog.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.New(cfg.Env)
	gin.SetMode(cfg.GinMode())

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

// run owns every resource it opens; errors are returned so deferred cleanup
// always happens before main exits.
func run(cfg *config.Config, log zerolog.Logger) error {
	// Connect to database
	db, err := database.Connect(cfg.Database, cfg.Env, log)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Error().Err(err).Msg("failed to close database")
		}
	}()

	// Run migrations
	if err := database.Migrate(db, log); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Auth primitives share the immutable config
	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)
	tokens := auth.NewTokenManager([]byte(cfg.Auth.JWTSecret), cfg.Auth.JWTIssuer, cfg.Auth.TokenTTL)

	// Initialize services and handlers
	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	authService, err := services.NewAuthService(userRepo, hasher, tokens, log)
	if err != nil {
		return err
	}
	taskService := services.NewTaskService(taskRepo, log)

	router := handlers.NewRouter(handlers.RouterDeps{
		AuthHandler:    handlers.NewAuthHandler(authService, log),
		TaskHandler:    handlers.NewTaskHandler(taskService, log),
		TokenValidator: tokens,
		Logger:         log,
	})

	return serve(cfg.HTTP, router, log)
}

// serve blocks until SIGINT/SIGTERM or a listener failure, then shuts the
// server down within the configured timeout.
func serve(cfg config.HTTPConfig, handler http.Handler, log zerolog.Logger) error {
	server := &http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Addr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-serveErr:
		return fmt.Errorf("failed to start server: %w", err)
	case <-quit:
	}

	log.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	log.Info().Msg("server stopped")
	return nil
}
