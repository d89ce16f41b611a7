package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kapasiraj84-beep/bhavya-steel-industries/internal/email"
	"github.com/kapasiraj84-beep/bhavya-steel-industries/internal/events"
	apphttp "github.com/kapasiraj84-beep/bhavya-steel-industries/internal/http"
	"github.com/kapasiraj84-beep/bhavya-steel-industries/internal/http/router"
	"github.com/kapasiraj84-beep/bhavya-steel-industries/internal/notification"
	"github.com/kapasiraj84-beep/bhavya-steel-industries/internal/quote/repository"
	"github.com/kapasiraj84-beep/bhavya-steel-industries/internal/quotes"
	"github.com/kapasiraj84-beep/bhavya-steel-industries/internal/ratelimit"
	"github.com/kapasiraj84-beep/bhavya-steel-industries/internal/sheets"
	"github.com/kapasiraj84-beep/bhavya-steel-industries/internal/sink"
	"github.com/kapasiraj84-beep/bhavya-steel-industries/migrations"
	"github.com/kapasiraj84-beep/bhavya-steel-industries/platform/config"
	"github.com/kapasiraj84-beep/bhavya-steel-industries/platform/db"
	"github.com/kapasiraj84-beep/bhavya-steel-industries/platform/logger"
	"github.com/kapasiraj84-beep/bhavya-steel-industries/platform/validator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	var pool *pgxpool.Pool
	if cfg.IsDatabaseEnabled() {
		if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
			return db.RunMigrations(ctx, cfg, migrations.FS)
		}); err != nil {
			log.Error("failed to run database migrations", "error", err)
			panic("failed to run database migrations: " + err.Error())
		}
		log.Info("database migrations complete")

		if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
			p, err := db.NewPool(ctx, cfg)
			if err != nil {
				return err
			}
			pool = p
			return nil
		}); err != nil {
			log.Error("failed to connect to database", "error", err)
			panic("failed to connect to database: " + err.Error())
		}
		defer pool.Close()
		log.Info("database connection established")
	} else {
		log.Warn("DATABASE_URL not set, running without the database sink")
	}

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	sender := email.NewSender(cfg)

	// ========================================================================
	// Persistence Fan-Out
	// ========================================================================

	var sinks []sink.Sink
	if pool != nil {
		sinks = append(sinks, sink.NewPostgresSink(repository.New(pool)))
	}
	if cfg.IsSheetsEnabled() {
		sheetSink, err := sheets.New(ctx, cfg)
		if err != nil {
			log.Error("failed to initialize sheets sink", "error", err)
			panic("failed to initialize sheets sink: " + err.Error())
		}
		sinks = append(sinks, sheetSink)
		log.Info("sheets sink enabled", "sheet", cfg.GetSheetName())
	}
	coordinator := sink.NewCoordinator(sinks, cfg.GetSinkTimeout(), log)

	limiter := ratelimit.New(cfg.GetRateLimitMax(), cfg.GetRateLimitWindow(), nil)

	// Shared validator instance for dependency injection
	val := validator.New()

	// ========================================================================
	// Domain Modules
	// ========================================================================

	quotesModule := quotes.NewModule(quotes.Deps{
		Config:      cfg,
		Pool:        pool,
		Coordinator: coordinator,
		Bus:         eventBus,
		Limiter:     limiter,
		Validator:   val,
		Log:         log,
	})

	notificationModule := notification.NewModule(sender, log)
	notificationModule.RegisterHandlers(eventBus)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config: cfg,
		Logger: log,
		Modules: []apphttp.Module{
			quotesModule,
		},
	}

	engine := router.New(app)

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- engine.Run(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}
	return fmt.Errorf("%s failed after %d attempts: %w", name, attempts, lastErr)
}
