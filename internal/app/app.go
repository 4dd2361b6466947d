package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/atabekdeveloper/mini-course-api/internal/config"
	"github.com/atabekdeveloper/mini-course-api/internal/course"
	"github.com/atabekdeveloper/mini-course-api/internal/devtools"
	"github.com/atabekdeveloper/mini-course-api/internal/health"
	"github.com/atabekdeveloper/mini-course-api/internal/middleware"
	"github.com/atabekdeveloper/mini-course-api/internal/telemetry"

	"github.com/gorilla/mux"
)

const healthCheckInterval = 15 * time.Second

type App struct {
	config     *config.Config
	router     *mux.Router
	handler    http.Handler
	server     *http.Server
	grpcServer *health.GRPCServer
	checker    *health.Checker
	telemetry  *telemetry.Telemetry
	publisher  eventPublisher
	closeStore closeFunc
	logger     *slog.Logger
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	logger.Info("initializing application", "env", cfg.Env, "version", Version, "commit", GitCommit)

	tel, err := telemetry.Init(ctx, cfg.Telemetry.Enabled, cfg.Telemetry.OTLPEndpoint, ServiceName, Version, cfg.Env, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	m := tel.Metrics

	repo, closeStore, err := newRepository(ctx, cfg.Storage, m, logger)
	if err != nil {
		_ = tel.Shutdown(ctx, logger)
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	app := &App{
		config:     cfg,
		router:     mux.NewRouter(),
		telemetry:  tel,
		closeStore: closeStore,
		logger:     logger,
	}

	app.checker = health.NewChecker(m.Health, logger)
	app.checker.Register("storage", repo.Ping)

	app.publisher = newEventPublisher(cfg.Events, app.checker, m.Messaging, logger)

	var publisher course.EventPublisher
	if app.publisher != nil {
		publisher = app.publisher
	}

	if err := m.Health.RegisterDependencies(m.Meter(), app.checker.Names()...); err != nil {
		logger.Warn("failed to register dependency metrics", "error", err)
	}

	healthHandler := health.NewHandler(app.checker)
	healthHandler.RegisterRoutes(app.router)

	courseService := course.NewService(repo, publisher, logger, m.Courses)
	courseHandler := course.NewHandler(courseService, course.NewInputValidator(m.Courses), logger)
	courseHandler.RegisterRoutes(app.router)

	if cfg.TestRoutesEnabled() {
		logger.Warn("test data routes enabled")
		devtools.NewHandler(courseService, logger).RegisterRoutes(app.router)
	}

	app.router.Use(middleware.RequestLogger(logger), middleware.Metrics(m.HTTP))
	app.handler = middleware.Recovery(logger)(middleware.CORS(cfg.Server.CORSOrigins)(app.router))

	if cfg.Grpc.Port != "" {
		app.grpcServer = health.NewGRPCServer(logger)
		app.checker.OnChange(app.grpcServer.SetServing)
	}

	logger.Info("application initialized successfully")
	return app, nil
}

// Handler returns the fully wrapped HTTP handler.
func (a *App) Handler() http.Handler {
	return a.handler
}

// StartHealthChecks runs dependency checks until ctx is cancelled.
func (a *App) StartHealthChecks(ctx context.Context) {
	a.checker.Run(ctx, healthCheckInterval)
}

func (a *App) Run() error {
	if a.grpcServer != nil {
		go func() {
			if err := a.grpcServer.Serve(a.config.Grpc.Port); err != nil {
				a.logger.Error("gRPC health server stopped", "error", err)
			}
		}()
	}

	a.server = &http.Server{
		Addr:         fmt.Sprintf(":%s", a.config.Server.Port),
		Handler:      a.handler,
		ReadTimeout:  seconds(a.config.Server.ReadTimeout),
		WriteTimeout: seconds(a.config.Server.WriteTimeout),
		IdleTimeout:  seconds(a.config.Server.IdleTimeout),
	}

	a.logger.Info("server starting", "port", a.config.Server.Port)
	if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("shutting down servers")

	var errs []error
	if a.server != nil {
		if err := a.server.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("http server: %w", err))
		}
	}

	if a.grpcServer != nil {
		a.grpcServer.Stop()
	}

	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.logger.Error("event publisher close error", "error", err)
		}
	}

	if err := a.closeStore(ctx); err != nil {
		errs = append(errs, fmt.Errorf("storage: %w", err))
	}

	if err := a.telemetry.Shutdown(ctx, a.logger); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}
