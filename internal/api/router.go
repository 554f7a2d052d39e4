package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/rentwheels/rental-api/internal/api/handler"
	"github.com/rentwheels/rental-api/internal/api/middleware"
	"github.com/rentwheels/rental-api/internal/core/domain"
	"github.com/rentwheels/rental-api/internal/core/service"
	"github.com/rentwheels/rental-api/internal/infrastructure/config"
	mongodb "github.com/rentwheels/rental-api/internal/infrastructure/db/mongo"
	redisdb "github.com/rentwheels/rental-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// Every dependency is constructed here from the injected config and clients;
// no package holds ambient state.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("rental"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	carRepo := mongodb.NewCarRepository(db)
	revocation := redisdb.NewRevocationStore(rdb, cfg.JWT.RefreshTTL)

	tokens := service.NewTokenIssuer(cfg.JWT.AccessSecret, cfg.JWT.RefreshSecret, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)
	authService := service.NewAuthService(userRepo, tokens, revocation, cfg.BcryptCost, log)
	carService := service.NewCarService(carRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	carHandler := handler.NewCarHandler(carService)

	authMW := middleware.Auth(cfg.JWT.AccessSecret)
	anyRole := middleware.RBAC(domain.RoleAdmin, domain.RoleUser)
	adminOnly := middleware.RBAC(domain.RoleAdmin)
	authLimit := middleware.RateLimit(cfg.RateLimit.RPS, cfg.RateLimit.Burst)

	v1 := e.Group("/v1")

	// --- Auth routes ---
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register, authLimit)
	auth.POST("/login", authHandler.Login, authLimit)
	auth.POST("/refresh-token", authHandler.Refresh, authLimit)
	auth.POST("/change-password", authHandler.ChangePassword, authMW, anyRole)

	// --- Car routes ---
	cars := v1.Group("/cars", authMW)
	cars.GET("", carHandler.List, anyRole)
	cars.GET("/:carId", carHandler.Get, anyRole)
	cars.POST("", carHandler.Create, adminOnly)
	cars.PUT("/:carId", carHandler.Update, adminOnly)
	cars.DELETE("/:carId", carHandler.Delete, adminOnly)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
