package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dlwnsgus777/my-mandalateu/internal/config"
	"github.com/dlwnsgus777/my-mandalateu/internal/database"
	"github.com/dlwnsgus777/my-mandalateu/internal/handler"
	"github.com/dlwnsgus777/my-mandalateu/internal/jobs"
	"github.com/dlwnsgus777/my-mandalateu/internal/middleware"
	"github.com/dlwnsgus777/my-mandalateu/internal/repository"
	"github.com/dlwnsgus777/my-mandalateu/internal/service"
	"github.com/dlwnsgus777/my-mandalateu/pkg/jwt"
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

	// Initialize JWT service
	jwtService, err := jwt.NewService(jwt.Config{
		PrivateKeyPath: cfg.JWT.PrivateKeyPath,
		PublicKeyPath:  cfg.JWT.PublicKeyPath,
		Issuer:         cfg.JWT.Issuer,
		ExpirationMins: cfg.JWT.ExpirationMins,
	})
	if err != nil {
		slog.Error("failed to initialize JWT service", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewTokenRepository(db)
	mandalartRepo := repository.NewMandalartRepository(db)
	strategyRepo := repository.NewStrategyRepository(db)
	actionItemRepo := repository.NewActionItemRepository(db)

	// Initialize services
	tokenService := service.NewTokenService(service.TokenServiceConfig{
		JWTService:      jwtService,
		TokenRepo:       tokenRepo,
		RefreshDuration: cfg.JWT.RefreshDuration,
	})

	authService := service.NewAuthService(service.AuthServiceConfig{
		UserRepo:     userRepo,
		TokenService: tokenService,
	})

	userService := service.NewUserService(userRepo)

	mandalartService := service.NewMandalartService(service.MandalartServiceConfig{
		MandalartRepo: mandalartRepo,
		StrategyRepo:  strategyRepo,
		ItemRepo:      actionItemRepo,
	})

	strategyService := service.NewStrategyService(strategyRepo, mandalartRepo)

	actionItemService := service.NewActionItemService(service.ActionItemServiceConfig{
		ItemRepo:      actionItemRepo,
		StrategyRepo:  strategyRepo,
		MandalartRepo: mandalartRepo,
	})

	dashboardService := service.NewDashboardService(service.DashboardServiceConfig{
		MandalartRepo: mandalartRepo,
		StrategyRepo:  strategyRepo,
		ItemRepo:      actionItemRepo,
	})

	// Start background jobs
	tokenCleanup := jobs.NewTokenCleanupProcessor(tokenService, time.Hour)
	tokenCleanup.Start()
	defer tokenCleanup.Stop()

	// Initialize rate limiter
	rateLimiter := middleware.NewRateLimiter(middleware.RateLimitConfig{
		Rate:   100, // 100 requests per minute
		Window: time.Minute,
		Burst:  20, // Allow bursts up to 20
	})
	defer rateLimiter.Stop()

	// Initialize idempotency store
	idempotencyStore := middleware.NewIdempotencyStore(middleware.IdempotencyConfig{
		TTL:     24 * time.Hour,
		Cleanup: time.Hour,
	})
	defer idempotencyStore.Stop()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	mandalartHandler := handler.NewMandalartHandler(mandalartService)
	strategyHandler := handler.NewStrategyHandler(strategyService)
	actionItemHandler := handler.NewActionItemHandler(actionItemService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)

	// Create router and register routes
	mux := http.NewServeMux()

	// Health check endpoint
	mux.HandleFunc("GET /health", handler.Health)

	// Auth endpoints (public)
	mux.HandleFunc("POST /api/v1/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/v1/auth/login", authHandler.Login)
	mux.HandleFunc("POST /api/v1/auth/refresh", authHandler.Refresh)

	// Auth endpoints (protected)
	authMiddleware := middleware.Auth(tokenService)
	mux.Handle("POST /api/v1/auth/logout", authMiddleware(http.HandlerFunc(authHandler.Logout)))

	// User profile endpoints
	mux.Handle("GET /api/v1/users/me", authMiddleware(http.HandlerFunc(userHandler.Me)))
	mux.Handle("PATCH /api/v1/users/me", authMiddleware(http.HandlerFunc(userHandler.UpdateNickname)))

	// Mandalart endpoints
	mux.Handle("GET /api/v1/mandalarts", authMiddleware(http.HandlerFunc(mandalartHandler.List)))
	mux.Handle("POST /api/v1/mandalarts", authMiddleware(http.HandlerFunc(mandalartHandler.Create)))
	mux.Handle("GET /api/v1/mandalarts/{mandalartId}", authMiddleware(http.HandlerFunc(mandalartHandler.Get)))
	mux.Handle("PATCH /api/v1/mandalarts/{mandalartId}", authMiddleware(http.HandlerFunc(mandalartHandler.Update)))
	mux.Handle("DELETE /api/v1/mandalarts/{mandalartId}", authMiddleware(http.HandlerFunc(mandalartHandler.Delete)))

	// Strategy endpoints
	mux.Handle("PATCH /api/v1/mandalarts/{mandalartId}/strategies/{strategyId}",
		authMiddleware(http.HandlerFunc(strategyHandler.Update)))

	// Action item endpoints
	mux.Handle("PATCH /api/v1/mandalarts/{mandalartId}/strategies/{strategyId}/action-items/{actionItemId}",
		authMiddleware(http.HandlerFunc(actionItemHandler.Update)))

	// Dashboard endpoints
	mux.Handle("GET /api/v1/mandalarts/{mandalartId}/dashboard/summary",
		authMiddleware(http.HandlerFunc(dashboardHandler.Summary)))
	mux.Handle("GET /api/v1/mandalarts/{mandalartId}/dashboard/weekly",
		authMiddleware(http.HandlerFunc(dashboardHandler.Weekly)))
	mux.Handle("GET /api/v1/mandalarts/{mandalartId}/dashboard/streak",
		authMiddleware(http.HandlerFunc(dashboardHandler.Streak)))
	mux.Handle("GET /api/v1/mandalarts/{mandalartId}/dashboard/deadlines",
		authMiddleware(http.HandlerFunc(dashboardHandler.Deadlines)))

	// Apply global middleware
	wrapped := middleware.Chain(
		mux,
		middleware.RequestID,
		middleware.Logger,
		middleware.Recovery,
		middleware.CORS(cfg.Server.AllowedOrigins),
		middleware.RateLimit(rateLimiter),
		middleware.Idempotency(idempotencyStore),
		middleware.Compress,
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

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", slog.String("error", err.Error()))
	}

	slog.Info("server exited")
}
