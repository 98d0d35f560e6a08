package http

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/notekeeper/internal/adapters/http/handlers"
	"github.com/jsamuelsen/notekeeper/internal/adapters/http/middleware"
	"github.com/jsamuelsen/notekeeper/internal/adapters/http/views"
	"github.com/jsamuelsen/notekeeper/internal/platform/telemetry"
)

// DefaultRequestTimeout is the default timeout for API requests.
const DefaultRequestTimeout = 15 * time.Second

// RouterConfig contains configuration for setting up the router.
type RouterConfig struct {
	// ServiceName names the server spans.
	ServiceName string

	// Renderer renders the HTML pages. Required.
	Renderer *views.Renderer

	// HealthHandler handles the /-/ operational endpoints.
	HealthHandler *handlers.HealthHandler

	// Pages serves the HTML form flow.
	Pages *handlers.NoteHTMLHandler

	// API serves the JSON API under /api.
	API *handlers.NoteAPIHandler

	// RequestTimeout bounds each /api request. Zero disables it.
	RequestTimeout time.Duration

	// RateLimiter throttles /api per client IP. Nil disables it.
	RateLimiter *middleware.RateLimiter

	// CORS enables cross-origin access to /api. Nil disables it.
	CORS *middleware.CORSConfig
}

// SetupRouter configures all routes and middleware on the Gin engine.
// Middleware is applied in the following order (first to last):
//  1. Recovery - catch panics first
//  2. Request ID - generate/extract request ID
//  3. Correlation ID - handle distributed tracing correlation
//  4. OpenTelemetry - tracing span, then metrics and X-Trace-ID
//  5. Logging - request logging (skips health endpoints)
//  6. CORS - /api only, when configured
//
// Route groups:
//   - /-/ (internal): health, build info and Prometheus metrics
//   - / and /notes (pages): HTML form flow with 303 redirects
//   - /api (public API): JSON CRUD with timeout and rate limiting
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	engine.HTMLRender = cfg.Renderer
	engine.HandleMethodNotAllowed = true

	engine.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.CorrelationID(),
		telemetry.TracingMiddleware(cfg.ServiceName),
		telemetry.Middleware(),
		middleware.Logging("/favicon.ico"),
	)

	if cfg.CORS != nil {
		corsCfg := *cfg.CORS
		corsCfg.PathPrefix = middleware.APIPrefix
		engine.Use(middleware.CORS(corsCfg))
	}

	engine.NoRoute(notFound)
	engine.NoMethod(methodNotAllowed)

	if cfg.HealthHandler != nil {
		cfg.HealthHandler.RegisterHealthRoutesOnEngine(engine)
	}

	if cfg.Pages != nil {
		cfg.Pages.RegisterRoutes(engine)
	}

	api := engine.Group(middleware.APIPrefix)
	if cfg.RequestTimeout > 0 {
		api.Use(middleware.Timeout(cfg.RequestTimeout))
	}

	if cfg.RateLimiter != nil {
		api.Use(cfg.RateLimiter.Middleware())
	}

	if cfg.API != nil {
		cfg.API.RegisterRoutes(api)
	}
}
