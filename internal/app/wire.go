package app

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/courtside/api/internal/auth"
	"github.com/courtside/api/internal/handler"
	"github.com/courtside/api/internal/repository"
	"github.com/courtside/api/internal/service"
	"github.com/courtside/api/internal/settlement"
)

// RouterDeps holds all dependencies needed by NewRouter.
type RouterDeps struct {
	Pool   *pgxpool.Pool
	JWTMgr *auth.JWTManager
	Logger *slog.Logger

	// External feeds (injectable so tests can stub them)
	Odds     service.OddsSource
	Schedule service.ScheduleSource

	// Domain constants
	DefaultOdds  int
	PointsPerWin int64
	FocusTeam    string

	CORSAllowedOrigins string
	DevSeedEnabled     bool
}

// NewRouter assembles the chi.Router with all routes and middleware.
func NewRouter(deps RouterDeps) chi.Router {
	pool := deps.Pool
	jwtMgr := deps.JWTMgr
	logger := deps.Logger

	// Repositories
	gameRepo := repository.NewGameRepository()
	betRepo := repository.NewBetRepository()
	pointsRepo := repository.NewPointsRepository()
	outboxRepo := repository.NewOutboxRepository()
	authUserRepo := repository.NewAuthUserRepository()

	// Settlement engine
	engine := settlement.NewEngine(pool, gameRepo, betRepo, pointsRepo, outboxRepo, deps.PointsPerWin, logger)

	// Services
	authSvc := service.NewAuthService(pool, authUserRepo, outboxRepo, jwtMgr, logger)
	betSvc := service.NewBetService(pool, gameRepo, betRepo, outboxRepo, deps.DefaultOdds, logger)
	gameSvc := service.NewGameService(pool, gameRepo, outboxRepo, deps.Odds, deps.Schedule, deps.FocusTeam, logger)
	pointsSvc := service.NewPointsService(pool, pointsRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc)
	gameHandler := handler.NewGameHandler(gameSvc)
	betHandler := handler.NewBetHandler(betSvc)
	pointsHandler := handler.NewPointsHandler(pointsSvc)
	adminHandler := handler.NewAdminHandler(gameSvc, engine, deps.DevSeedEnabled)

	// Router
	r := chi.NewRouter()

	// Global middleware (order matters)
	r.Use(handler.Recovery(logger))
	r.Use(handler.RequestID)
	r.Use(handler.RequestLogger(logger))
	r.Use(handler.CORS(deps.CORSAllowedOrigins))
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

	return r
}
