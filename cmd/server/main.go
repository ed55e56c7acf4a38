package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"

	"github.com/scott-daily/time-tracker-api/internal/auth"
	"github.com/scott-daily/time-tracker-api/internal/config"
	"github.com/scott-daily/time-tracker-api/internal/database"
	"github.com/scott-daily/time-tracker-api/internal/handler"
	"github.com/scott-daily/time-tracker-api/internal/metrics"
	"github.com/scott-daily/time-tracker-api/internal/middleware"
	"github.com/scott-daily/time-tracker-api/internal/repository"
)

func main() {
	// Initialize structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection
	db := database.NewSurrealDB(database.Config{
		Host:      cfg.Database.Host,
		Port:      cfg.Database.Port,
		User:      cfg.Database.User,
		Password:  cfg.Database.Password,
		Namespace: cfg.Database.Namespace,
		Database:  cfg.Database.Database,
	})

	ctx := context.Background()
	if err := db.Connect(ctx); err != nil {
		slog.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	slog.Info("connected to database",
		slog.String("host", cfg.Database.Host),
		slog.String("database", cfg.Database.Database),
	)

	// Initialize token verification
	verifier, err := auth.NewVerifier(auth.Config{
		Issuer:        cfg.Auth.Issuer,
		Secret:        cfg.Auth.Secret,
		PublicKeyPath: cfg.Auth.PublicKeyPath,
		ClockSkew:     cfg.Auth.ClockSkew,
	})
	if err != nil {
		slog.Error("failed to initialize token verifier", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize metrics
	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	// Initialize store and repositories
	store := repository.NewInstrumentedStore(repository.NewSurrealStore(db), collector)
	userRepo := repository.NewUserRepository(store)
	jobRepo := repository.NewJobRepository(store)

	// Initialize handlers
	healthHandler := handler.NewHealthHandler(db)
	userHandler := handler.NewUserHandler(userRepo)
	jobHandler := handler.NewJobHandler(jobRepo)
	hookHandler := handler.NewHookHandler(userRepo, cfg.Hook.Secret)

	rateLimiter := middleware.NewRateLimiter(middleware.RateLimitConfig{
		Rate:  rate.Limit(cfg.Rate.RequestsPerSecond),
		Burst: cfg.Rate.Burst,
	})
	defer rateLimiter.Stop()

	authMiddleware := middleware.Auth(verifier)
	limit := middleware.RateLimit(rateLimiter)

	// Auth runs before the limiter so authenticated requests are bucketed
	// by caller uid rather than by remote address.
	protected := func(h http.HandlerFunc) http.Handler {
		return authMiddleware(limit(h))
	}

	// Setup routes
	mux := http.NewServeMux()

	// Operational endpoints
	mux.HandleFunc("GET /health", healthHandler.Health)
	mux.Handle("GET /metrics", metrics.Handler(registry))

	// Identity provider webhook (shared secret, not bearer auth); limited
	// by remote address
	mux.Handle("POST /hooks/user-created", limit(http.HandlerFunc(hookHandler.UserCreated)))

	// User endpoints
	mux.Handle("GET /users", protected(userHandler.List))

	// Job endpoints
	mux.Handle("GET /jobs", protected(jobHandler.List))
	mux.Handle("GET /jobs/{jobId}", protected(jobHandler.Get))
	mux.Handle("POST /jobs", protected(jobHandler.Create))
	mux.Handle("DELETE /deletejob/{jobId}", protected(jobHandler.Delete))
	mux.Handle("PUT /editjob/{jobId}", protected(jobHandler.Update))

	// Apply global middleware
	wrapped := middleware.Chain(
		mux,
		middleware.RequestID,
		middleware.Logger,
		middleware.Recovery,
		middleware.CORS(cfg.Server.AllowedOrigins),
		collector.Middleware,
	)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      wrapped,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Server.Port),
			slog.String("env", cfg.Server.Env),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", slog.String("error", err.Error()))
	}

	slog.Info("server exited")
}
