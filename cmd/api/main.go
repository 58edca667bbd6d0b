package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kmazurek/saldo/internal/infra/postgres"
	infraRedis "github.com/kmazurek/saldo/internal/infra/redis"
	"github.com/kmazurek/saldo/internal/platform/admin"
	"github.com/kmazurek/saldo/internal/platform/category"
	"github.com/kmazurek/saldo/internal/platform/ledger"
	"github.com/kmazurek/saldo/internal/platform/user"
	"github.com/kmazurek/saldo/internal/platform/wallet"
	"github.com/kmazurek/saldo/internal/transport/httpapi"
	"github.com/kmazurek/saldo/internal/transport/httpapi/handler"
	"github.com/kmazurek/saldo/internal/transport/httpapi/middleware"
	"github.com/kmazurek/saldo/pkg/config"
	"github.com/kmazurek/saldo/pkg/logger"
)

// redisPinger adapts a redis client to the health handler's pinger interface
type redisPinger struct {
	client *redis.Client
}

func (p redisPinger) Ping(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}

func main() {
	// Create context that listens for termination signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.NewDefault(cfg.Env)
	log.Info("Starting Saldo API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	// Initialize database connection pool
	dbCfg := postgres.Config{
		URL: cfg.DatabaseURL,
	}
	db, err := postgres.NewPool(ctx, dbCfg)
	if err != nil {
		log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	log.Info("Database connection established")

	// Initialize Redis client for summary caching
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisURL,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	defer redisClient.Close()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	log.Info("Redis connection established")

	// Initialize repositories
	userRepo := postgres.NewUserRepository(db.Pool)
	categoryRepo := postgres.NewCategoryRepository(db.Pool)
	walletRepo := postgres.NewWalletRepository(db.Pool)
	transactionRepo := postgres.NewTransactionRepository(db.Pool)

	// Initialize summary cache
	summaryCache := infraRedis.NewSummaryCacheWithTTL(
		redisClient,
		time.Duration(cfg.SummaryCacheTTL)*time.Second,
		log,
	)

	// Initialize services
	userSvc := user.NewService(userRepo)
	jwtSvc := middleware.NewJWTService(cfg.JWTSecret)
	categorySvc := category.NewService(categoryRepo, transactionRepo)
	walletSvc := wallet.NewService(walletRepo, transactionRepo)
	ledgerSvc := ledger.NewService(transactionRepo, walletRepo, categoryRepo, summaryCache)
	adminSvc := admin.NewService(userRepo)

	// Initialize HTTP handlers
	authHandler := handler.NewAuthHandler(userSvc, jwtSvc)
	walletHandler := handler.NewWalletHandler(walletSvc, ledgerSvc)
	categoryHandler := handler.NewCategoryHandler(categorySvc)
	transactionHandler := handler.NewTransactionHandler(ledgerSvc)
	adminHandler := handler.NewAdminHandler(adminSvc)
	healthHandler := handler.NewHealthHandler(db, redisPinger{client: redisClient})

	// Create JWT middleware
	jwtMiddleware := middleware.JWTMiddleware(jwtSvc)

	// Determine allowed origins for CORS
	allowedOrigins := []string{"http://localhost:5173", "http://localhost:3000"}
	if cfg.IsProduction() {
		if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
			allowedOrigins = []string{origins}
		}
	}

	// Create HTTP router
	routerCfg := httpapi.Config{
		Logger:             log,
		AllowedOrigins:     allowedOrigins,
		AuthHandler:        authHandler,
		WalletHandler:      walletHandler,
		CategoryHandler:    categoryHandler,
		TransactionHandler: transactionHandler,
		AdminHandler:       adminHandler,
		HealthHandler:      healthHandler,
		JWTMiddleware:      jwtMiddleware,
	}
	r := httpapi.NewRouter(routerCfg)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for termination signal
	<-ctx.Done()
	log.Info("Shutdown signal received")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown failed", "error", err)
		os.Exit(1)
	}

	log.Info("Server stopped gracefully")
}
