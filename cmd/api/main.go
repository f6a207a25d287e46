package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"leasewell_backend/internal/auth"
	"leasewell_backend/internal/dashboard"
	"leasewell_backend/internal/documents"
	"leasewell_backend/internal/email"
	apphttp "leasewell_backend/internal/http"
	"leasewell_backend/internal/http/router"
	"leasewell_backend/internal/invites"
	"leasewell_backend/internal/leases"
	"leasewell_backend/internal/maintenance"
	"leasewell_backend/internal/maintenance/agent"
	maintenancerepo "leasewell_backend/internal/maintenance/repository"
	maintenanceservice "leasewell_backend/internal/maintenance/service"
	"leasewell_backend/internal/messages"
	"leasewell_backend/internal/notifications"
	"leasewell_backend/internal/payments"
	"leasewell_backend/internal/profiles"
	"leasewell_backend/internal/properties"
	"leasewell_backend/internal/quotes"
	quotesrepo "leasewell_backend/internal/quotes/repository"
	"leasewell_backend/internal/scheduler"
	"leasewell_backend/migrations"
	"leasewell_backend/platform/config"
	"leasewell_backend/platform/db"
	"leasewell_backend/platform/events"
	"leasewell_backend/platform/logger"
	"leasewell_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg, migrations.FS)
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

	var pool *pgxpool.Pool
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

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	sender := email.NewSender(cfg, log)

	// Shared validator instance for dependency injection
	val := validator.New()

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	authModule := auth.NewModule(pool, cfg, log, val)
	profilesModule := profiles.NewModule(pool, val)
	propertiesModule := properties.NewModule(pool, log, val)
	leasesModule := leases.NewModule(pool, authModule.Repository(), propertiesModule.Repository(), log, val)
	notificationsModule := notifications.NewModule(pool, eventBus, log)

	// Contractor shopping agent. The repositories are shared with the modules
	// that own them; both sides read and write the same tables.
	requestStore := maintenancerepo.New(pool)
	quoteStore := quotesrepo.New(pool)
	shopper := agent.NewShopper(
		buildDirectory(cfg, log),
		buildGenerator(cfg, log),
		agent.NewSimulatedCollector(rand.New(rand.NewSource(time.Now().UnixNano())), nil, nil),
		requestStore,
		quoteStore,
		notificationsModule.Service(),
		log,
	)

	dispatcher, closeDispatcher := buildDispatcher(cfg, requestStore, shopper, log)
	if closeDispatcher != nil {
		defer closeDispatcher()
	}

	maintenanceModule := maintenance.NewModule(pool, propertiesModule.Repository(),
		notificationsModule.Service(), dispatcher, log, val)
	quotesModule := quotes.NewModule(pool, maintenanceModule.Repository(), log)
	paymentsModule := payments.NewModule(pool, cfg, leasesModule.Repository(),
		authModule.Repository(), notificationsModule.Service(), log, val)
	invitesModule := invites.NewModule(pool, cfg, propertiesModule.Repository(),
		authModule.Repository(), sender, notificationsModule.Service(), log, val)
	messagesModule := messages.NewModule(pool, notificationsModule.Service(), val, log)
	dashboardModule := dashboard.NewModule(pool)

	modules := []apphttp.Module{
		authModule,
		profilesModule,
		propertiesModule,
		leasesModule,
		maintenanceModule,
		quotesModule,
		notificationsModule,
		paymentsModule,
		invitesModule,
		messagesModule,
		dashboardModule,
	}

	if cfg.IsMinIOEnabled() {
		documentsModule, err := documents.NewModule(pool, cfg, log)
		if err != nil {
			log.Error("failed to initialize documents module", "error", err)
			panic("failed to initialize documents module: " + err.Error())
		}
		if err := withRetry(ctx, log, "ensure documents bucket", 5, 2*time.Second, func() error {
			return documentsModule.Service().EnsureBucket(ctx)
		}); err != nil {
			log.Error("failed to ensure documents bucket exists", "error", err)
			panic("failed to ensure documents bucket exists: " + err.Error())
		}
		modules = append(modules, documentsModule)
		log.Info("documents storage initialized", "bucket", cfg.GetMinioBucketDocuments())
	} else {
		log.Warn("MINIO_ENDPOINT not configured; document storage disabled")
	}

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   db.NewPoolAdapter(pool),
		EventBus: eventBus,
		Modules:  modules,
	}

	engine := router.New(app)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("server shutdown failed", "error", err)
		}
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

// buildDirectory picks the contractor directory: Google Places when an API
// key is configured, synthetic candidates otherwise.
func buildDirectory(cfg *config.Config, log *logger.Logger) agent.Directory {
	if cfg.IsPlacesEnabled() {
		log.Info("contractor directory using Google Places")
		return agent.NewPlacesDirectory(cfg.GetPlacesAPIKey(), log)
	}
	log.Info("contractor directory using synthetic candidates")
	return agent.NewMockDirectory(rand.New(rand.NewSource(time.Now().UnixNano())))
}

// buildGenerator picks the outreach message generator. OpenAI wins over
// Anthropic when both keys are present; templates need no credential.
func buildGenerator(cfg *config.Config, log *logger.Logger) agent.MessageGenerator {
	switch {
	case cfg.GetOpenAIAPIKey() != "":
		log.Info("outreach generator using OpenAI")
		return agent.NewOpenAIGenerator(cfg.GetOpenAIAPIKey())
	case cfg.GetAnthropicAPIKey() != "":
		log.Info("outreach generator using Anthropic")
		return agent.NewAnthropicGenerator(cfg.GetAnthropicAPIKey())
	default:
		log.Info("outreach generator using templates")
		return agent.NewTemplateGenerator(rand.New(rand.NewSource(time.Now().UnixNano())))
	}
}

// buildDispatcher prefers the asynq queue; without Redis the shopping run
// executes in-process.
func buildDispatcher(cfg *config.Config, requests *maintenancerepo.Repository,
	shopper *agent.Shopper, log *logger.Logger) (maintenanceservice.Dispatcher, func()) {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; shopping runs execute in-process")
		return scheduler.NewInlineDispatcher(requests, shopper, log), nil
	}

	client, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize scheduler client; shopping runs execute in-process", "error", err)
		return scheduler.NewInlineDispatcher(requests, shopper, log), nil
	}

	log.Info("shopping runs dispatch to the worker", "queue", cfg.GetAsynqQueueName())
	return client, func() {
		_ = client.Close()
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

	return errors.New(name + ": " + lastErr.Error())
}
