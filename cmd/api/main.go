package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"go-storefront-backend/config"
	_ "go-storefront-backend/docs" // Important for Swagger
	v1 "go-storefront-backend/internal/delivery/http/v1"
	"go-storefront-backend/internal/repository/postgres"
	"go-storefront-backend/internal/usecase"
	"go-storefront-backend/pkg/auth"
	"go-storefront-backend/pkg/database"
	"go-storefront-backend/pkg/logger"
	"go-storefront-backend/pkg/redis"
	"go-storefront-backend/pkg/storage"
	"go-storefront-backend/pkg/validation"
)

// flushInterval drives the background drain of redis page-view
// counters into daily_stats.
const flushInterval = 5 * time.Minute

// @title           Storefront Backend API
// @version         1.0
// @description     Cart, checkout and order backend for the storefront, using Clean Architecture.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting storefront backend", "port", cfg.Port)

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(cfg.DBUrl, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Setup Redis (optional; rate limiting and analytics degrade without it)
	if err := redis.Initialize(redis.Config{URL: cfg.UpstashRedisURL, Password: cfg.UpstashRedisPassword}); err != nil {
		logger.Log.Warn("Redis unavailable, falling back to in-memory rate limiting", "error", err)
	}
	defer redis.Close()

	// 5. Setup Storage (optional; image uploads fail with 503 without it)
	var uploader *storage.Uploader
	if cfg.S3AccessKeyID != "" {
		uploader, err = storage.NewUploader(context.Background(), storage.Config{
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretKey,
			Region:          cfg.S3Region,
			SupabaseURL:     cfg.SupabaseUrl,
		})
		if err != nil {
			logger.Log.Error("Failed to initialize storage", "error", err)
			os.Exit(1)
		}
	}

	// 6. Setup Repositories
	userRepo := postgres.NewUserRepository(dbPool)
	productRepo := postgres.NewProductRepository(dbPool)
	cartRepo := postgres.NewCartRepository(dbPool)
	orderRepo := postgres.NewOrderRepository(dbPool)
	addressRepo := postgres.NewAddressRepository(dbPool)
	prefRepo := postgres.NewPreferenceRepository(dbPool)
	statsRepo := postgres.NewStatsRepository(dbPool)

	// 7. Setup UseCases
	authUC := usecase.NewAuthUsecase(userRepo, cartRepo)
	productUC := usecase.NewProductUsecase(productRepo)
	cartUC := usecase.NewCartUsecase(cartRepo, productRepo)
	analyticsUC := usecase.NewAnalyticsUsecase(statsRepo)
	checkoutUC := usecase.NewCheckoutUsecase(cartRepo, productRepo, addressRepo, orderRepo, analyticsUC, cfg.DeliveryFee)
	orderUC := usecase.NewOrderUsecase(orderRepo)
	addressUC := usecase.NewAddressUsecase(addressRepo)
	prefUC := usecase.NewPreferenceUsecase(prefRepo)

	// 8. Register custom validators with Gin's binding engine
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		validation.RegisterValidators(v)
	}

	// 9. Setup Auth Provider (JWKS)
	jwksURL := cfg.SupabaseUrl + "/auth/v1/.well-known/jwks.json"
	jwksProvider := auth.NewProvider(jwksURL)

	// 10. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:       authUC,
		ProductUC:    productUC,
		CartUC:       cartUC,
		CheckoutUC:   checkoutUC,
		OrderUC:      orderUC,
		AddressUC:    addressUC,
		PreferenceUC: prefUC,
		AnalyticsUC:  analyticsUC,
		Uploader:     uploader,
		JWKSProvider: jwksProvider,
		Config:       cfg,
	})

	// 11. Background flush of page-view counters
	flushCtx, stopFlush := context.WithCancel(context.Background())
	go func() {
		ticker := time.NewTicker(flushInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := analyticsUC.FlushPageViews(flushCtx); err != nil {
					logger.Log.Warn("Page-view flush failed", "error", err)
				}
			case <-flushCtx.Done():
				return
			}
		}
	}()

	// 12. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	stopFlush()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	// One last drain so today's counters survive the restart.
	if err := analyticsUC.FlushPageViews(ctx); err != nil {
		logger.Log.Warn("Final page-view flush failed", "error", err)
	}

	logger.Log.Info("Server exiting")
}
