// Package server initializes and runs the notes backend: it wires the
// storage backend, domain services, token service and HTTP router once at
// startup and handles graceful shutdown.
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jojiiikol/notes-backend/internal/logging"
	"github.com/jojiiikol/notes-backend/internal/server/auth"
	"github.com/jojiiikol/notes-backend/internal/server/config"
	"github.com/jojiiikol/notes-backend/internal/server/httpapi"
	"github.com/jojiiikol/notes-backend/internal/server/metrics"
	"github.com/jojiiikol/notes-backend/internal/server/notes"
	"github.com/jojiiikol/notes-backend/internal/server/shared/db"
	"github.com/jojiiikol/notes-backend/internal/server/users"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	config      *config.Config
	logger      logging.Logger
	manager     db.RepositoryManager
	userService *users.Service
	noteService *notes.Service
	httpServer  *httpapi.Server
}

// NewApp builds the full dependency graph. Every collaborator is constructed
// here once and passed down explicitly; there are no package-level
// singletons.
func NewApp(cfg *config.Config) (*App, error) {

	logger := logging.NewDefault(cfg.Env)

	manager, err := db.NewPostgresRepositoryManager(cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	userService := users.NewService(manager.Users())
	noteService := notes.NewService(manager.Notes())
	tokenService := auth.NewTokenService(manager.Users(), logger, cfg.SecretKey, cfg.TokenTTL)
	m := metrics.New(prometheus.DefaultRegisterer)

	httpServer := httpapi.NewServer(logger, tokenService, userService, noteService, m)

	return &App{
		config:      cfg,
		logger:      logger,
		manager:     manager,
		userService: userService,
		noteService: noteService,
		httpServer:  httpServer,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	srv := &http.Server{
		Addr:    app.config.EndpointAddr,
		Handler: app.httpServer.Router(),
	}

	go func() {
		<-ctx.Done()
		app.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			app.logger.Error(ctx, "shutdown error", "error", err.Error())
		}
	}()

	app.logger.Info(ctx, "Starting HTTP server", "address", app.config.EndpointAddr, "env", app.config.Env)

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	if app.config.AdminUsername != "" && app.config.AdminPassword != "" {
		if err := app.userService.EnsureAdmin(ctx, app.config.AdminUsername, app.config.AdminPassword); err != nil {
			app.logger.Error(ctx, "failed to ensure admin account", "error", err.Error())
			return
		}
	}

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.manager.Close(); err != nil {
		app.logger.Error(ctx, "failed to close db", "error", err.Error())
	}
}
