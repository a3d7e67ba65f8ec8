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
	"github.com/joho/godotenv"

	"github.com/courtside/api/internal/auth"
	"github.com/courtside/api/internal/handler"
	"github.com/courtside/api/internal/infra"
	"github.com/courtside/api/internal/provider"
	"github.com/courtside/api/internal/repository"
	"github.com/courtside/api/internal/service"
	"github.com/courtside/api/internal/settlement"
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load config
	cfg, err := infra.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Connect to Postgres
	pool, err := infra.NewPostgresPool(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer pool.Close()
	logger.Info("connected to postgres")

	// Migrations
	if err := infra.RunMigrations(cfg.DSN(), logger); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	// Parse JWT expiry durations
	userExpiry, err := time.ParseDuration(cfg.JWTUserExpiry)
	if err != nil {
		return fmt.Errorf("parse user JWT expiry: %w", err)
	}
	adminExpiry, err := time.ParseDuration(cfg.JWTAdminExpiry)
	if err != nil {
		return fmt.Errorf("parse admin JWT expiry: %w", err)
	}

	jwtMgr := auth.NewJWTManager(cfg.JWTSecret, userExpiry, adminExpiry)

	// Repositories
	gameRepo := repository.NewGameRepository()
	betRepo := repository.NewBetRepository()
	pointsRepo := repository.NewPointsRepository()
	outboxRepo := repository.NewOutboxRepository()
	authUserRepo := repository.NewAuthUserRepository()

	// External providers
	oddsClient := provider.NewOddsAPIClient(cfg.OddsAPIKey, cfg.FocusTeamName, logger)
	scheduleClient := provider.NewScheduleClient("cle", cfg.FocusTeamName, logger)

	// Settlement engine
	engine := settlement.NewEngine(pool, gameRepo, betRepo, pointsRepo, outboxRepo, cfg.PointsPerWin, logger)

	// Services
	authSvc := service.NewAuthService(pool, authUserRepo, outboxRepo, jwtMgr, logger)
	betSvc := service.NewBetService(pool, gameRepo, betRepo, outboxRepo, cfg.DefaultOdds, logger)
	gameSvc := service.NewGameService(pool, gameRepo, outboxRepo, oddsClient, scheduleClient, cfg.FocusTeamName, logger)
	pointsSvc := service.NewPointsService(pool, pointsRepo)

	// Demo accounts
	if err := authSvc.EnsureDemoUsers(ctx); err != nil {
		return fmt.Errorf("seed demo users: %w", err)
	}

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc)
	gameHandler := handler.NewGameHandler(gameSvc)
	betHandler := handler.NewBetHandler(betSvc)
	pointsHandler := handler.NewPointsHandler(pointsSvc)
	adminHandler := handler.NewAdminHandler(gameSvc, engine, cfg.DevSeedEnabled)

	// Router
	r := chi.NewRouter()

	// Global middleware (order matters)
	r.Use(handler.Recovery(logger))
	r.Use(handler.RequestID)
	r.Use(handler.RequestLogger(logger))
	r.Use(handler.CORS(cfg.CORSAllowedOrigins))
	r.Use(handler.JSONContentType)

	// Health (no auth)
	r.Get("/health", handler.HealthHandler(pool))

	// Auth routes (no auth)
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
	})

	// Public game catalog
	r.Get("/games/next", gameHandler.NextGame)
	r.Get("/games/next-schedule", gameHandler.NextSchedule)

	// User-authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(auth.AuthenticateUser(jwtMgr))

		r.Post("/bets", betHandler.PlaceBet)
		r.Get("/bets/me", betHandler.MyBets)
		r.Get("/points/me", pointsHandler.MyPoints)
	})

	// Admin-authenticated routes
	r.Route("/admin", func(r chi.Router) {
		r.Use(auth.AuthenticateAdmin(jwtMgr))

		r.Route("/games", func(r chi.Router) {
			r.Post("/refresh", adminHandler.RefreshGame)
			r.Post("/seed", adminHandler.SeedGame)
			r.Post("/seed-fake", adminHandler.SeedFakeGame)
			r.Post("/{gameID}/settle", adminHandler.SettleGame)
		})
		r.Post("/reset", adminHandler.Reset)
	})

	// Metrics server (separate port, plain text endpoints)
	metricsSrv := infra.StartMetricsServer(
		fmt.Sprintf(":%d", cfg.MetricsPort),
		func(ctx context.Context) error { return infra.HealthCheck(ctx, pool) },
	)
	defer metricsSrv.Close()

	// Background odds refresh
	if cfg.OddsAutoRefresh {
		gameSvc.StartAutoRefresh(ctx, cfg.OddsRefreshInterval)
	}

	// Start server
	addr := fmt.Sprintf(":%d", cfg.APIPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	errCh := make(chan error, 1)
	go func() {
		logger.Info("api server starting", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	logger.Info("server stopped gracefully")
	return nil
}
