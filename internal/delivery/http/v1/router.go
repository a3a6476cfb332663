package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"go-storefront-backend/config"
	"go-storefront-backend/internal/delivery/http/middleware"
	"go-storefront-backend/internal/delivery/http/response"
	"go-storefront-backend/internal/domain"
	"go-storefront-backend/pkg/auth"
	"go-storefront-backend/pkg/storage"
)

type RouterDeps struct {
	AuthUC       domain.AuthUsecase
	ProductUC    domain.ProductUsecase
	CartUC       domain.CartUsecase
	CheckoutUC   domain.CheckoutUsecase
	OrderUC      domain.OrderUsecase
	AddressUC    domain.AddressUsecase
	PreferenceUC domain.PreferenceUsecase
	AnalyticsUC  domain.AnalyticsUsecase
	Uploader     *storage.Uploader
	JWKSProvider *auth.Provider
	Config       *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	// Handlers pass the gin context into usecases as a context.Context;
	// without the fallback, typed keys on the request context are
	// invisible through it.
	r.ContextWithFallback = true

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.FrontendURL)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.ErrorHandler())

	window := time.Duration(deps.Config.RateLimitWindowSeconds) * time.Second
	r.Use(middleware.RateLimitMiddleware(
		middleware.GlobalRateLimitConfig(deps.Config.RateLimitGlobalThreshold, window)))

	v1 := r.Group("/v1")

	// Health Check
	v1.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", nil)
	})

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.JWKSProvider, deps.Config, deps.AuthUC))

	// Admin routes
	admin := v1.Group("/admin")
	admin.Use(middleware.AuthMiddleware(deps.JWKSProvider, deps.Config, deps.AuthUC))
	admin.Use(middleware.RequireAdmin())

	checkoutLimiter := middleware.RateLimitMiddleware(
		middleware.CheckoutRateLimitConfig(deps.Config.RateLimitCheckoutLimit, window))
	uploadLimiter := middleware.RateLimitMiddleware(middleware.UploadRateLimitConfig())

	NewAuthHandler(protected, deps.AuthUC)
	NewProductHandler(v1, admin, deps.ProductUC)
	NewAnalyticsHandler(v1, admin, deps.AnalyticsUC)
	NewCartHandler(protected, deps.CartUC)
	NewCheckoutHandler(protected, deps.CheckoutUC, checkoutLimiter)
	NewOrderHandler(protected, admin, deps.OrderUC)
	NewAddressHandler(protected, deps.AddressUC)
	NewPreferenceHandler(protected, deps.PreferenceUC, deps.Config.USDExchangeRate)
	NewAdminHandler(admin, deps.AuthUC, deps.ProductUC, deps.Uploader, deps.Config, uploadLimiter)

	return r
}
