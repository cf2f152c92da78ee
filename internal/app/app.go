package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"studyBuddy/internal/config"
	"studyBuddy/internal/handlers"
	"studyBuddy/internal/logger"
	"studyBuddy/internal/repository/task/inmemory"
	"studyBuddy/internal/service"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type App struct {
	config     *config.Config
	server     *http.Server
	handler    http.Handler
	repository service.TaskRepository
	service    handlers.Service
	shutdowns  []func(context.Context) error // run in reverse order on shutdown
}

func New(cfg *config.Config) *App {
	return &App{
		config:    cfg,
		shutdowns: make([]func(context.Context) error, 0),
	}
}

func (a *App) Init(ctx context.Context) (*App, error) {
	if err := logger.Init(a.config.Logging.Development); err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	a.shutdowns = append(a.shutdowns, func(context.Context) error {
		logger.Info("App: Flushing logs")
		logger.Sync()
		return nil
	})

	storage := inmemory.NewTaskStorage()
	if err := storage.HealthCheck(ctx); err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}
	a.repository = storage

	a.service = service.NewTaskService(a.repository)
	a.handler = NewRouter(handlers.NewTaskHandler(a.service), a.config)

	a.server = &http.Server{
		Addr:         a.config.GetServerAddr(),
		Handler:      a.handler,
		ReadTimeout:  a.config.Server.ReadTimeout,
		WriteTimeout: a.config.Server.WriteTimeout,
	}
	a.shutdowns = append(a.shutdowns, func(ctx context.Context) error {
		logger.Info("App: Stopping HTTP server")
		return a.server.Shutdown(ctx)
	})

	return a, nil
}

// Handler exposes the assembled router, for tests that serve it themselves.
func (a *App) Handler() http.Handler {
	return a.handler
}

// Run serves HTTP until ctx is cancelled or the server fails, then shuts
// everything down within the configured timeout.
func (a *App) Run(ctx context.Context) error {
	if a.server == nil {
		return errors.New("app is not initialized")
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("App: HTTP server started", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("App: Shutdown requested")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.config.Server.ShutdownTimeout)
		defer cancel()
		return a.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func (a *App) Shutdown(ctx context.Context) error {
	var err error
	for i := len(a.shutdowns) - 1; i >= 0; i-- {
		err = multierr.Append(err, a.shutdowns[i](ctx))
	}
	a.shutdowns = nil
	return err
}
