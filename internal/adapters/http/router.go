package http

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotes-api/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quotes-api/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quotes-api/internal/adapters/mattermost"
	"github.com/jsamuelsen/quotes-api/internal/adapters/slack"
	"github.com/jsamuelsen/quotes-api/internal/platform/config"
	"github.com/jsamuelsen/quotes-api/internal/platform/telemetry"
)

// DefaultRequestTimeout is the default timeout for API requests.
const DefaultRequestTimeout = 30 * time.Second

// RouterConfig contains configuration for setting up the router.
type RouterConfig struct {
	// Logger is the structured logger for request logging.
	Logger *slog.Logger

	// AuthConfig contains the admin token configuration.
	AuthConfig *config.AuthConfig

	// AppConfig contains application configuration.
	AppConfig *config.AppConfig

	// HealthHandler handles health check endpoints.
	HealthHandler *handlers.HealthHandler

	// QuoteHandler handles the /api/v1/quote endpoints.
	QuoteHandler *handlers.QuoteHandler

	// CharacterHandler handles the /api/v1/character endpoints.
	CharacterHandler *handlers.CharacterHandler

	// SlackHandler handles the Slack slash command webhook.
	SlackHandler *slack.Handler

	// MattermostHandler handles the Mattermost slash command webhook.
	MattermostHandler *mattermost.Handler

	// IconsDir, when non-empty, is served statically under /icons.
	IconsDir string

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
//  6. Timeout - request deadline (applied per-group)
//
// Route groups:
//   - /-/ (internal): Health endpoints, no auth required
//   - /api/v1/ (public API): REST endpoints, admin token on mutations
//   - /slack, /mattermost: slash command webhooks
//   - /icons: static character icons, when a directory is configured
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	// Apply global middleware in order
	engine.Use(
		middleware.Recovery(cfg.Logger),
		middleware.RequestID(),
		middleware.CorrelationID(),
		telemetry.Middleware(cfg.AppConfig.Name),
		middleware.Logging(cfg.Logger),
	)

	// Register health endpoints (no auth, no timeout for probes)
	if cfg.HealthHandler != nil {
		cfg.HealthHandler.RegisterHealthRoutesOnEngine(engine)
	}

	// Setup API v1 routes with timeout
	apiV1 := engine.Group("/api/v1")
	apiV1.Use(
		middleware.RequireJSONAccept(),
		middleware.APIHeaders(),
	)

	if cfg.Timeout > 0 {
		apiV1.Use(middleware.SimpleTimeout(cfg.Timeout))
	}

	setupAPIRoutes(apiV1, cfg)
	setupWebhookRoutes(engine, cfg)

	if cfg.IconsDir != "" {
		engine.Static("/icons", cfg.IconsDir)
	}
}

// setupAPIRoutes registers the REST quote and character routes. Reads are
// open; mutations sit behind the admin bearer token when auth is enabled.
func setupAPIRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	if cfg.QuoteHandler != nil {
		rg.GET("/quote/random", cfg.QuoteHandler.Random)
		rg.GET("/quote/:id", cfg.QuoteHandler.GetByID)

		admin := rg.Group("")
		if cfg.AuthConfig != nil && cfg.AuthConfig.Enabled {
			admin.Use(middleware.AdminAuth(cfg.AuthConfig.AdminToken))
		}

		admin.POST("/quote", cfg.QuoteHandler.Create)
		admin.PATCH("/quote/:id", cfg.QuoteHandler.Update)
		admin.DELETE("/quote/:id", cfg.QuoteHandler.Delete)
	}

	if cfg.CharacterHandler != nil {
		rg.GET("/character/:id", cfg.CharacterHandler.GetByToken)
		rg.GET("/character/:id/random", cfg.CharacterHandler.RandomQuote)
	}
}

// setupWebhookRoutes registers the slash command endpoints. They live
// outside /api/v1 because the chat platforms own their payload shapes and
// Accept headers.
func setupWebhookRoutes(engine *gin.Engine, cfg RouterConfig) {
	if cfg.SlackHandler != nil {
		engine.POST("/slack/quote", cfg.SlackHandler.Command)
	}

	if cfg.MattermostHandler != nil {
		engine.POST("/mattermost/quote", cfg.MattermostHandler.Command)
	}
}

// SetupMinimalRouter sets up a minimal router with just health endpoints.
// Useful for testing or lightweight deployments.
func SetupMinimalRouter(engine *gin.Engine, logger *slog.Logger, healthHandler *handlers.HealthHandler) {
	engine.Use(
		middleware.Recovery(logger),
		middleware.RequestID(),
	)

	if healthHandler != nil {
		healthHandler.RegisterHealthRoutesOnEngine(engine)
	}
}

// NewDefaultRouterConfig creates a RouterConfig with sensible defaults.
func NewDefaultRouterConfig(
	logger *slog.Logger,
	appCfg *config.AppConfig,
	authCfg *config.AuthConfig,
	healthHandler *handlers.HealthHandler,
) RouterConfig {
	return RouterConfig{
		Logger:        logger,
		AuthConfig:    authCfg,
		AppConfig:     appCfg,
		HealthHandler: healthHandler,
		Timeout:       DefaultRequestTimeout,
	}
}
