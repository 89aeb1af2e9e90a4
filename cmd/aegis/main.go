// Command aegis runs the multi-tenant data-access service.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	aegishttp "github.com/halvardlabs/aegis/internal/adapter/http"
	aegisnats "github.com/halvardlabs/aegis/internal/adapter/nats"
	aegisotel "github.com/halvardlabs/aegis/internal/adapter/otel"
	"github.com/halvardlabs/aegis/internal/adapter/postgres"
	"github.com/halvardlabs/aegis/internal/adapter/ristretto"
	"github.com/halvardlabs/aegis/internal/config"
	"github.com/halvardlabs/aegis/internal/logger"
	"github.com/halvardlabs/aegis/internal/middleware"
	"github.com/halvardlabs/aegis/internal/port/audit"
	"github.com/halvardlabs/aegis/internal/service"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	log, logCloser := logger.New(cfg.Logging)
	defer logCloser.Close()
	slog.SetDefault(log)

	slog.Info("config loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Logging.Level,
		"pg_max_conns", cfg.Postgres.MaxConns,
		"tenant_role", cfg.Postgres.TenantRole,
	)

	ctx := context.Background()

	// --- Telemetry ---
	otelShutdown, err := aegisotel.Setup(ctx, cfg.Telemetry, cfg.Logging.Service)
	if err != nil {
		return fmt.Errorf("otel: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := otelShutdown(shutdownCtx); err != nil {
			slog.Warn("otel shutdown", "error", err)
		}
	}()

	metrics, err := aegisotel.NewMetrics()
	if err != nil {
		return fmt.Errorf("otel metrics: %w", err)
	}

	// --- Infrastructure ---

	pool, err := postgres.NewPool(ctx, cfg.Postgres)
	if err != nil {
		return fmt.Errorf("postgres: %w", err)
	}
	slog.Info("postgres connected")

	if err := postgres.RunMigrations(ctx, cfg.Postgres.DSN); err != nil {
		pool.Close()
		return fmt.Errorf("migrations: %w", err)
	}
	slog.Info("migrations applied")

	sink, err := aegisnats.Connect(ctx, cfg.NATS.URL, metrics)
	if err != nil {
		pool.Close()
		return fmt.Errorf("nats: %w", err)
	}
	defer func() { _ = sink.Close() }()

	tenantCache, err := ristretto.New(cfg.Cache.MaxCostBytes)
	if err != nil {
		pool.Close()
		return fmt.Errorf("cache: %w", err)
	}
	defer tenantCache.Close()

	// Mutations land in the audit_events table and on the JetStream
	// stream; the table is the durable, tenant-readable trail.
	auditTrail := audit.Fanout(postgres.NewAuditStore(pool), sink)

	// The registry owns the pool from here; DisposeAll closes it.
	registry := postgres.NewRegistry(pool, postgres.Options{
		AuditSink:  auditTrail,
		TenantRole: cfg.Postgres.TenantRole,
		Logger:     log,
	})
	defer registry.DisposeAll()

	// --- Services ---

	tenantSvc := service.NewTenantService(registry, tenantCache, cfg.Cache.TenantTTL, metrics, log)
	conversationSvc := service.NewConversationService(registry)
	personaSvc := service.NewPersonaService(registry)
	documentSvc := service.NewDocumentService(registry)
	auditSvc := service.NewAuditService(registry)

	// --- HTTP ---

	handlers := &aegishttp.Handlers{
		Tenants:       tenantSvc,
		Conversations: conversationSvc,
		Personas:      personaSvc,
		Documents:     documentSvc,
		Audit:         auditSvc,
		HealthChecks: []aegishttp.HealthCheck{
			{Name: "postgres", Probe: func(ctx context.Context) error {
				if !registry.System().Healthy(ctx) {
					return fmt.Errorf("postgres unreachable")
				}
				return nil
			}},
			{Name: "nats", Probe: func(context.Context) error {
				if !sink.Healthy() {
					return fmt.Errorf("nats disconnected")
				}
				return nil
			}},
		},
	}

	r := chi.NewRouter()

	r.Use(aegishttp.CORS(cfg.Server.CORSOrigin))
	r.Use(aegishttp.SecurityHeaders)
	r.Use(middleware.RequestID)
	r.Use(aegishttp.Logger)
	r.Use(aegisotel.HTTPMiddleware(cfg.Logging.Service))
	r.Use(middleware.TenantContext)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))

	aegishttp.MountRoutes(r, handlers)

	addr := ":" + cfg.Server.Port

	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("starting server", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed", "error", err)
		}
	}()

	<-done
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
