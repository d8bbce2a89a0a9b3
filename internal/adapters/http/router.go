package http

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/telcobridge/capgate/internal/adapters/http/dto"
	"github.com/telcobridge/capgate/internal/adapters/http/handlers"
	"github.com/telcobridge/capgate/internal/adapters/http/middleware"
	"github.com/telcobridge/capgate/internal/platform/config"
	"github.com/telcobridge/capgate/internal/platform/telemetry"
)

// DefaultRequestTimeout is the default timeout for API requests.
const DefaultRequestTimeout = 30 * time.Second

// RouterConfig contains configuration for setting up the router.
type RouterConfig struct {
	// Logger is the structured logger for request logging.
	Logger *slog.Logger

	// AppConfig contains application configuration.
	AppConfig *config.AppConfig

	// HealthHandler handles health check endpoints.
	HealthHandler *handlers.HealthHandler

	// CapabilityHandler handles discovery and invocation endpoints.
	CapabilityHandler *handlers.CapabilityHandler

	// Timeout is the default request timeout.
	Timeout time.Duration
}

// SetupRouter configures all routes and middleware on the Gin engine.
// Middleware is applied in the following order (first to last):
//  1. Recovery - catch panics first
//  2. Request ID - generate/extract request ID
//  3. Correlation ID - handle distributed tracing correlation
//  4. OpenTelemetry - tracing and metrics
//  5. Logging - request logging (skips health endpoints)
//  6. Timeout - request deadline on the capability group
//
// Route groups:
//   - /-/ (internal): health endpoints, no timeout for probes
//   - /capabilities: discovery and invocation endpoints
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	engine.Use(
		middleware.Recovery(cfg.Logger),
		middleware.RequestID(),
		middleware.CorrelationID(),
		telemetry.Middleware(cfg.AppConfig.Name),
		middleware.Logging(cfg.Logger),
	)

	engine.NoRoute(func(c *gin.Context) {
		RespondWithErrorCode(c, dto.ErrorCodeNotFound, "no such endpoint")
	})

	if cfg.HealthHandler != nil {
		cfg.HealthHandler.RegisterHealthRoutesOnEngine(engine)
	}

	api := engine.Group("")
	if cfg.Timeout > 0 {
		api.Use(middleware.SimpleTimeout(cfg.Timeout))
	}

	if cfg.CapabilityHandler != nil {
		cfg.CapabilityHandler.RegisterRoutes(api)
	}
}

// NewDefaultRouterConfig creates a RouterConfig with sensible defaults.
func NewDefaultRouterConfig(
	logger *slog.Logger,
	appCfg *config.AppConfig,
	healthHandler *handlers.HealthHandler,
	capabilityHandler *handlers.CapabilityHandler,
) RouterConfig {
	return RouterConfig{
		Logger:            logger,
		AppConfig:         appCfg,
		HealthHandler:     healthHandler,
		CapabilityHandler: capabilityHandler,
		Timeout:           DefaultRequestTimeout,
	}
}
