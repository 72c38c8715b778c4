package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/fotostream/identity-api/internal/api/handler"
	"github.com/fotostream/identity-api/internal/api/middleware"
	"github.com/fotostream/identity-api/internal/core/service"
	"github.com/fotostream/identity-api/internal/infrastructure/config"
	mongostore "github.com/fotostream/identity-api/internal/infrastructure/db/mongo"
	redisstore "github.com/fotostream/identity-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("identity"))

	// --- Dependencies ---
	userRepo := mongostore.NewUserRepository(db)
	roleRepo := redisstore.NewRoleCache(rdb, mongostore.NewRoleRepository(db), log)

	authService := service.NewAuthService(
		userRepo,
		roleRepo,
		service.NewBcryptHasher(cfg.BcryptCost),
		service.NewJWTTokenService(cfg.JWTSecret),
		cfg.RegisterTokenTTL,
		cfg.LoginTokenTTL,
		log,
	)

	authHandler := handler.NewAuthHandler(authService, log)
	userHandler := handler.NewUserHandler(authService)
	roleHandler := handler.NewRoleHandler(authService)

	authenticated := middleware.Auth(cfg.JWTSecret)
	adminOnly := middleware.RBAC(cfg.AdminRoles...)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.GET("/auth/me", authHandler.Me, authenticated)

	// --- Privileged administration ---
	users := e.Group("/users", authenticated, adminOnly)
	users.GET("", userHandler.List)
	users.PATCH("/:id/role", userHandler.AssignRole)

	roles := e.Group("/roles", authenticated, adminOnly)
	roles.GET("", roleHandler.List)
	roles.POST("", roleHandler.Create)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
