package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/travelblog/auth-service/internal/api/handler"
	"github.com/travelblog/auth-service/internal/api/middleware"
	"github.com/travelblog/auth-service/internal/core/password"
	"github.com/travelblog/auth-service/internal/core/ports"
	"github.com/travelblog/auth-service/internal/core/service"
	"github.com/travelblog/auth-service/internal/core/token"
	"github.com/travelblog/auth-service/internal/infrastructure/db/postgres"
)

// Deps carries everything the router needs to assemble the service graph.
// The codec (and with it the signing secret) is injected at startup and
// never mutated afterwards.
type Deps struct {
	DB       *gorm.DB
	Redis    *redis.Client
	Codec    *token.Codec
	Hasher   *password.Hasher
	TokenTTL time.Duration
	Audit    ports.AuditRecorder
	Trail    ports.AuditTrail
	Log      zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddleware("auth"))

	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Dependencies ---
	userRepo := postgres.NewUserRepository(deps.DB)
	authService := service.NewAuthService(userRepo, deps.Hasher, deps.Codec, deps.TokenTTL, deps.Audit, deps.Log)
	authHandler := handler.NewAuthHandler(authService)
	authGuard := middleware.Auth(deps.Codec, deps.Log)

	// --- Auth routes ---
	e.POST("/register", authHandler.Register)
	e.POST("/login", authHandler.Login)
	e.POST("/verify", authHandler.Verify)

	// --- Admin routes (token + role guarded) ---
	auditHandler := handler.NewAuditHandler(deps.Trail)
	admin := e.Group("/admin", authGuard, middleware.RBAC("admin"))
	admin.GET("/audit", auditHandler.Recent)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.DB, deps.Redis)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	// --- Metrics scrape endpoint ---
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
