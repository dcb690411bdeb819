package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/nats-io/nats.go"
	"gorm.io/gorm"

	"github.com/todoflow-labs/todo-api/internal/config"
	"github.com/todoflow-labs/todo-api/internal/events"
	"github.com/todoflow-labs/todo-api/internal/handler"
	"github.com/todoflow-labs/todo-api/internal/logging"
	"github.com/todoflow-labs/todo-api/internal/metrics"
	"github.com/todoflow-labs/todo-api/internal/repository"
	"github.com/todoflow-labs/todo-api/internal/service"
	"github.com/todoflow-labs/todo-api/internal/store"
)

const shutdownTimeout = 10 * time.Second

func Run(cfg *config.Config) error {
	logger := logging.New(cfg.LogLevel).With().Str("service", "todo-api").Logger()
	metrics.Init(cfg.MetricsAddr, &logger)

	db, err := store.Open(cfg.DBDriver, cfg.DatabaseURL, &logger)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close(db) }()
	if err := store.Migrate(db); err != nil {
		return err
	}

	pub, closePub, err := newPublisher(cfg, &logger)
	if err != nil {
		return err
	}
	defer closePub()

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           NewRouter(db, pub, &logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Msgf("todo-api listening on %s", cfg.HTTPAddr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("HTTP server failed: %w", err)
	case <-ctx.Done():
		logger.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// newPublisher connects to NATS when configured. Without NATS_URL change
// events are dropped.
func newPublisher(cfg *config.Config, logger *logging.Logger) (events.Publisher, func(), error) {
	if cfg.NATSURL == "" {
		logger.Info().Msg("NATS_URL not set, todo events disabled")
		return events.NopPublisher{}, func() {}, nil
	}

	nc, err := nats.Connect(cfg.NATSURL)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to NATS: %w", err)
	}
	js, err := nc.JetStream()
	if err != nil {
		nc.Close()
		return nil, nil, fmt.Errorf("init JetStream: %w", err)
	}
	if err := events.EnsureStream(js, cfg.NATSStream, cfg.NATSSubject); err != nil {
		nc.Close()
		return nil, nil, err
	}
	logger.Info().Str("subject", cfg.NATSSubject).Msg("publishing todo events to JetStream")
	return events.NewJetStreamPublisher(js, cfg.NATSSubject), nc.Close, nil
}

// NewRouter wires the todo item routes over db.
func NewRouter(db *gorm.DB, pub events.Publisher, logger *logging.Logger) http.Handler {
	repo := repository.NewTodoRepository(db)
	svc := service.NewTodoService(repo, logger)

	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(jsonContentType)

	// Routes
	r.Route("/todoitems", func(r chi.Router) {
		r.Get("/", handler.ListTodoItems(svc, logger))
		r.Post("/", handler.CreateTodoItem(svc, pub, logger))
		r.Get("/{id}", handler.GetTodoItem(svc, logger))
		r.Put("/{id}", handler.UpdateTodoItem(svc, pub, logger))
		r.Delete("/{id}", handler.DeleteTodoItem(svc, pub, logger))
	})

	// Error handlers
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		handler.WriteError(w, http.StatusNotFound, "route not found")
		logger.Warn().Str("path", r.URL.Path).Msg("404 not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		handler.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
		logger.Warn().Str("path", r.URL.Path).Msg("405 method not allowed")
	})

	return r
}
