package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"finance-tracker/api/config"
	"finance-tracker/api/handlers"
	"finance-tracker/api/llm"
	"finance-tracker/api/logger"
	"finance-tracker/api/middleware"
	"finance-tracker/api/mongodb"
)

func main() {
	// Load .env for local development; production env comes from the deployment.
	_ = godotenv.Load()

	cfg := config.Load()
	if err := logger.Init(cfg.Development, os.Getenv("LOG_LEVEL")); err != nil {
		panic(err)
	}
	defer logger.Sync()

	if err := cfg.Validate(); err != nil {
		logger.Get().Fatal("invalid configuration", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	store, err := mongodb.NewStore(ctx, cfg.MongoURI, cfg.MongoDatabase)
	cancel()
	if err != nil {
		logger.Get().Fatal("failed to initialize MongoDB store", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.Close(ctx); err != nil {
			logger.Get().Error("failed to close MongoDB store", zap.Error(err))
		}
	}()

	var scanner *llm.ReceiptScanner
	if cfg.GeminiAPIKey != "" {
		scanner, err = llm.NewReceiptScanner(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			logger.Get().Fatal("failed to initialize receipt scanner", zap.Error(err))
		}
	} else {
		logger.Get().Warn("GEMINI_API_KEY not set, receipt scanning disabled")
	}

	h := handlers.New(store, scanner)
	limiter := middleware.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow)

	sweepStop := make(chan struct{})
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				limiter.Sweep(time.Now())
			case <-sweepStop:
				return
			}
		}
	}()
	defer close(sweepStop)

	if !cfg.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS(cfg.FrontendOrigin))

	api := router.Group("/api", middleware.Auth(cfg.JWTSecret, cfg.JWTIssuer))
	{
		api.POST("/users/sync", h.SyncUser)

		api.GET("/accounts", h.GetUserAccounts)
		api.POST("/accounts", limiter.Middleware(), h.CreateAccount)
		api.GET("/accounts/:id", h.GetAccountWithTransactions)
		api.PATCH("/accounts/:id/default", h.UpdateDefaultAccount)

		api.GET("/transactions", h.GetUserTransactions)
		api.POST("/transactions", limiter.Middleware(), h.CreateTransaction)
		api.GET("/transactions/:id", h.GetTransaction)
		api.PUT("/transactions/:id", h.UpdateTransaction)
		api.DELETE("/transactions", h.BulkDeleteTransactions)

		api.GET("/budget", h.GetCurrentBudget)
		api.PUT("/budget", h.UpdateBudget)

		api.GET("/dashboard", h.GetDashboardData)

		api.POST("/receipts/scan", limiter.Middleware(), h.ScanReceipt)
	}

	internal := router.Group("/internal", middleware.InternalAuth(cfg.InternalAPIKey))
	{
		internal.POST("/seed", h.SeedDemoData)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Get().Info("server starting", zap.String("port", cfg.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Get().Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Get().Info("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Get().Error("server shutdown failed", zap.Error(err))
	}
}
