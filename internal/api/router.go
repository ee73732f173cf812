package api

import (
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"

	_ "github.com/LSiluvaiSiprin/ReCon/docs"
	"github.com/LSiluvaiSiprin/ReCon/internal/api/handler"
	"github.com/LSiluvaiSiprin/ReCon/internal/api/middleware"
	"github.com/LSiluvaiSiprin/ReCon/internal/core/domain"
	"github.com/LSiluvaiSiprin/ReCon/internal/core/ports"
	"github.com/LSiluvaiSiprin/ReCon/internal/core/service"
	"github.com/LSiluvaiSiprin/ReCon/internal/infrastructure/config"
	mongorepo "github.com/LSiluvaiSiprin/ReCon/internal/infrastructure/db/mongo"
	redisstore "github.com/LSiluvaiSiprin/ReCon/internal/infrastructure/db/redis"
	"github.com/LSiluvaiSiprin/ReCon/internal/infrastructure/http/handlers"
	"github.com/LSiluvaiSiprin/ReCon/internal/infrastructure/token"
)

// Dependencies are the services the HTTP layer talks to.
type Dependencies struct {
	Auth         ports.AuthService
	Users        ports.UserService
	Projects     ports.ProjectService
	Tokens       middleware.TokenParser
	Revocations  middleware.RevocationChecker
	HealthChecks map[string]handlers.Check
}

// Options tune the HTTP surface. Nil Prometheus fields fall back to the
// default registry.
type Options struct {
	ServiceName        string
	CORSAllowedOrigins []string
	AuthRateLimit      float64
	Registerer         prometheus.Registerer
	Gatherer           prometheus.Gatherer
}

// NewRouter wires repositories and services against the live stores and
// returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	userRepo := mongorepo.NewUserRepository(db)
	projectRepo := mongorepo.NewProjectRepository(db)
	statsCache := redisstore.NewStatsCache(rdb, cfg.HTTP.StatsCacheTTL)
	denylist := redisstore.NewTokenDenylist(rdb)
	tokens := token.NewManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	deps := Dependencies{
		Auth:        service.NewAuthService(userRepo, tokens, denylist, statsCache, log),
		Users:       service.NewUserService(userRepo, denylist, cfg.Auth.TokenTTL, log),
		Projects:    service.NewProjectService(projectRepo, userRepo, statsCache, log),
		Tokens:      tokens,
		Revocations: denylist,
		HealthChecks: map[string]handlers.Check{
			"mongodb": handlers.MongoCheck(db),
			"redis":   handlers.RedisCheck(rdb),
		},
	}

	return NewServer(deps, Options{
		ServiceName:        cfg.ServiceName,
		CORSAllowedOrigins: cfg.HTTP.CORSAllowedOrigins,
		AuthRateLimit:      cfg.HTTP.AuthRateLimit,
	}, log)
}

// NewServer builds the Echo instance around already constructed services.
func NewServer(deps Dependencies, opts Options, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	registerer := opts.Registerer
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	gatherer := opts.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	serviceName := opts.ServiceName
	if serviceName == "" {
		serviceName = "recon-api"
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(middleware.RequestLogger(log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "recon",
		Subsystem:  "http",
		Registerer: registerer,
		Skipper:    isProbe,
	}))
	e.Use(echo.WrapMiddleware(otelhttp.NewMiddleware(serviceName,
		otelhttp.WithFilter(func(r *http.Request) bool { return !isProbePath(r.URL.Path) }),
	)))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: opts.CORSAllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	projectHandler := handler.NewProjectHandler(deps.Projects)
	userHandler := handler.NewUserHandler(deps.Users)
	adminHandler := handler.NewAdminHandler(deps.Projects, deps.Users)

	authMiddleware := middleware.Auth(deps.Tokens, deps.Revocations)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Health checks, metrics and docs (no auth required) ---
	e.GET("/health", handlers.NewHealthHandler().Liveness)
	e.GET("/health/ready", handlers.NewHealthDependenciesHandler(deps.HealthChecks).Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Auth routes ---
	auth := e.Group("/auth")
	if opts.AuthRateLimit > 0 {
		auth.Use(authRateLimiter(opts.AuthRateLimit))
	}
	auth.POST("/signup", authHandler.Signup)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout, authMiddleware)

	// --- Project routes ---
	api := e.Group("/api", authMiddleware)

	projects := api.Group("/projects")
	projects.GET("/all", projectHandler.ListAll, adminOnly)
	projects.GET("/stats", projectHandler.Stats, adminOnly)
	projects.GET("/user/:userId", projectHandler.ListByClient, middleware.SelfOrRole("userId", domain.RoleAdmin))
	projects.POST("/create", projectHandler.Create)
	projects.GET("/:id", projectHandler.Get)
	projects.PUT("/:id/status", projectHandler.UpdateStatus, adminOnly)
	projects.DELETE("/:id", projectHandler.Delete, adminOnly)

	// --- User routes ---
	selfOrAdmin := middleware.SelfOrRole("id", domain.RoleAdmin)

	users := api.Group("/users")
	users.GET("/all", userHandler.ListAll, adminOnly)
	users.GET("/:id", userHandler.Get, selfOrAdmin)
	users.PUT("/:id", userHandler.Update, selfOrAdmin)
	users.PUT("/:id/toggle-status", userHandler.ToggleStatus, adminOnly)

	// --- Admin routes ---
	api.GET("/admin/export", adminHandler.Export, adminOnly)

	return e
}

// authRateLimiter throttles the public auth endpoints per client IP.
func authRateLimiter(limit float64) echo.MiddlewareFunc {
	burst := int(math.Ceil(limit))
	if burst < 1 {
		burst = 1
	}

	return echomiddleware.RateLimiterWithConfig(echomiddleware.RateLimiterConfig{
		Store: echomiddleware.NewRateLimiterMemoryStoreWithConfig(echomiddleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(limit),
			Burst:     burst,
			ExpiresIn: 3 * time.Minute,
		}),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(http.StatusForbidden, errorResponse{Msg: "unable to identify client"})
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return c.JSON(http.StatusTooManyRequests, errorResponse{Msg: "Too many requests, please try again later"})
		},
	})
}

func isProbe(c echo.Context) bool {
	return isProbePath(c.Request().URL.Path)
}

func isProbePath(path string) bool {
	return path == "/metrics" || strings.HasPrefix(path, "/health")
}
