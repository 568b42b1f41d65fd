package api

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/planifikues/travel-planner/docs"
	"github.com/planifikues/travel-planner/internal/api/handler"
	"github.com/planifikues/travel-planner/internal/api/middleware"
	"github.com/planifikues/travel-planner/internal/core/domain"
	"github.com/planifikues/travel-planner/internal/core/ports"
)

const metricsSubsystem = "travel_planner"

// Dependencies is everything the HTTP layer needs from the composition root.
type Dependencies struct {
	Auth   ports.AuthService
	Users  ports.UserService
	Trips  ports.TripService
	Audit  ports.AuditService
	Tokens ports.TokenIssuer
	// Recorder receives access-denied events from the guard.
	Recorder ports.AuditRecorder
	// Ready lists the dependencies checked by /health/ready.
	Ready map[string]handler.Pinger

	// Registerer and Gatherer back the HTTP metrics and /metrics. Nil means
	// the prometheus default registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer

	AllowedOrigin string
	BasicEnabled  bool
	Logger        zerolog.Logger
}

// RoutePolicy is the access table for every route registered by NewRouter.
// Paths that no rule matches require an authenticated caller.
func RoutePolicy() *middleware.Policy {
	return middleware.MustPolicy(
		middleware.PublicRoute("/api/auth/register"),
		middleware.PublicRoute("/api/auth/login"),
		middleware.PublicRoute("/api/auth/check"),
		middleware.PublicRoute("/api/weather/**"),
		middleware.RoleRoute("/api/admin/**", domain.RoleAdmin),
		middleware.PublicRoute("/health/**"),
		middleware.PublicRoute("/metrics"),
		middleware.PublicRoute("/swagger/**"),
		middleware.PublicRoute("/error"),
	)
}

// NewRouter builds the Echo instance with middleware and routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	// CORS runs before the guard so preflight requests are answered without
	// credentials.
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLogger(deps.Logger))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     []string{deps.AllowedOrigin},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderAuthorization, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderOrigin},
		AllowCredentials: true,
	}))
	registerer, gatherer := deps.Registerer, deps.Gatherer
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  metricsSubsystem,
		Registerer: registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))
	e.Use(middleware.Guard(middleware.GuardConfig{
		Policy:       RoutePolicy(),
		Tokens:       deps.Tokens,
		Credentials:  deps.Auth,
		BasicEnabled: deps.BasicEnabled,
		Audit:        deps.Recorder,
		Logger:       deps.Logger,
	}))

	// --- Auth ---
	authHandler := handler.NewAuthHandler(deps.Auth, deps.Tokens, deps.Users)
	auth := e.Group("/api/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.GET("/check", authHandler.Check)
	auth.GET("/me", authHandler.Me)
	auth.POST("/logout", authHandler.Logout)

	// --- Users ---
	userHandler := handler.NewUserHandler(deps.Users)
	e.GET("/api/users/profile", userHandler.Profile)
	e.PUT("/api/users/profile", userHandler.UpdateProfile)

	admin := e.Group("/api/admin")
	admin.GET("/users", userHandler.List)
	admin.POST("/users", userHandler.Create)
	admin.GET("/users/:id", userHandler.Get)
	admin.PUT("/users/:id", userHandler.Update)
	admin.DELETE("/users/:id", userHandler.Delete)

	auditHandler := handler.NewAuditHandler(deps.Audit)
	admin.GET("/audit", auditHandler.Recent)

	// --- Trips ---
	tripHandler := handler.NewTripHandler(deps.Trips)
	trips := e.Group("/api/trips")
	trips.GET("", tripHandler.List)
	trips.POST("", tripHandler.Create)
	trips.GET("/:id", tripHandler.Get)
	trips.DELETE("/:id", tripHandler.Delete)
	trips.GET("/:id/accommodations", tripHandler.ListAccommodations)
	trips.POST("/:id/accommodations", tripHandler.AddAccommodation)
	trips.GET("/:id/activities", tripHandler.ListActivities)
	trips.POST("/:id/activities", tripHandler.AddActivity)
	e.GET("/api/accommodations", tripHandler.ListVisibleAccommodations)
	e.DELETE("/api/accommodations/:id", tripHandler.DeleteAccommodation)
	e.DELETE("/api/activities/:id", tripHandler.DeleteActivity)

	// --- Ops (no auth required) ---
	e.GET("/health", handler.NewHealthHandler().Liveness)
	e.GET("/health/ready", handler.NewReadinessHandler(deps.Ready).Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
