package api

import (
	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/squartrbnb/user-service/docs"
	"github.com/squartrbnb/user-service/internal/api/handler"
	"github.com/squartrbnb/user-service/internal/api/middleware"
	"github.com/squartrbnb/user-service/internal/core/ports"
)

// Dependencies are the collaborators the HTTP layer is built from.
type Dependencies struct {
	Users ports.UserService
	// Limiter guards write endpoints. Nil disables rate limiting.
	Limiter middleware.Limiter
	// Checks are run by the readiness probe, keyed by dependency name.
	Checks      map[string]handler.Check
	CORSOrigins []string
	// Registerer receives the HTTP request metrics. Defaults to the global registry.
	Registerer prometheus.Registerer
	Logger     zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	log := deps.Logger

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	// Rate-limit keys come from the socket peer, never from forwarding headers.
	e.IPExtractor = echo.ExtractIPDirect()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)
	e.Validator = handler.NewValidator()

	registerer := deps.Registerer
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(requestLogger(log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: deps.CORSOrigins,
		AllowMethods: []string{echo.GET, echo.POST, echo.PUT, echo.DELETE, echo.OPTIONS, echo.PATCH},
	}))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "http",
		Registerer: registerer,
	}))

	// --- Operational endpoints ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Checks)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- User routes ---
	userHandler := handler.NewUserHandler(deps.Users)

	var writes []echo.MiddlewareFunc
	if deps.Limiter != nil {
		writes = append(writes, middleware.RateLimit(deps.Limiter, log))
	}

	users := e.Group("/api/users")
	users.GET("", userHandler.List)
	users.GET("/:id", userHandler.GetByID)
	users.GET("/email/:email", userHandler.GetByEmail)
	users.GET("/username/:username", userHandler.GetByUsername)
	users.POST("", userHandler.Create, writes...)
	users.PUT("/:id", userHandler.Update, writes...)
	users.DELETE("/:id", userHandler.Delete, writes...)

	return e
}

// requestLogger writes one access log line per request through zerolog.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			log.Info().
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Str("remote_ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	})
}
