package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/voyagedesk/agent-portal/internal/api/handler"
	"github.com/voyagedesk/agent-portal/internal/api/middleware"
	"github.com/voyagedesk/agent-portal/internal/core/domain"
	"github.com/voyagedesk/agent-portal/internal/core/ports"
	"github.com/voyagedesk/agent-portal/internal/core/service"
	"github.com/voyagedesk/agent-portal/internal/infrastructure/config"
	mongodb "github.com/voyagedesk/agent-portal/internal/infrastructure/db/mongo"
	redisdb "github.com/voyagedesk/agent-portal/internal/infrastructure/db/redis"
)

// NewRouter builds the Echo instance with all routes registered, wired to the
// production Mongo repository and Redis revocation list.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) (*echo.Echo, error) {
	repo := mongodb.NewAgentRepository(db)
	revoker := redisdb.NewRevocationList(rdb)

	e, err := newRouter(repo, revoker, cfg, log)
	if err != nil {
		return nil, err
	}

	readiness := handler.NewReadinessHandler(db, rdb)
	e.GET("/health/ready", readiness.Readiness) // readiness – are dependencies up?

	return e, nil
}

// newRouter wires routes against the persistence interfaces so tests can
// drive the full HTTP surface with in-memory implementations.
func newRouter(repo ports.AgentRepository, revoker ports.TokenRevoker, cfg *config.Config, log zerolog.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true

	renderer, err := NewTemplateRenderer()
	if err != nil {
		return nil, err
	}
	e.Renderer = renderer
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("agent_portal"))

	// --- Dependencies ---
	tokens := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	agents := service.NewAgentService(repo, log)
	sessionHandler := handler.NewSessionHandler(agents, tokens, revoker, cfg.CookieName, cfg.CookieSecure)
	agentHandler := handler.NewAgentHandler(agents, tokens, revoker, cfg.CookieName, cfg.CookieSecure)

	session := middleware.Session(tokens, repo, revoker, cfg.CookieName)
	agentOnly := middleware.RequireRole(domain.RoleAgent)

	// --- Public routes ---
	e.GET("/", func(c echo.Context) error {
		return c.Redirect(http.StatusFound, "/login")
	})
	e.GET("/login", sessionHandler.LoginPage)
	e.POST("/login", sessionHandler.Login)
	e.POST("/logout", sessionHandler.Logout)

	// --- Agent routes ---
	// Session proves who the caller is; the role guard is applied per route
	// on top of it, since authentication alone says nothing about access.
	g := e.Group("/agent")
	g.POST("/register", agentHandler.Register)
	g.GET("/dashboard", agentHandler.Page("agent_dashboard.html"), session, agentOnly)
	g.GET("/clients", agentHandler.Page("agent_clients.html"), session, agentOnly)
	g.GET("/services", agentHandler.Page("agent_services.html"), session, agentOnly)
	g.GET("/offers", agentHandler.Page("agent_offers.html"), session, agentOnly)
	g.GET("/packages", agentHandler.Page("agent_packages.html"), session, agentOnly)
	g.GET("/history", agentHandler.Page("agent_history.html"), session, agentOnly)
	g.GET("/privacy", agentHandler.Page("agent_privacy.html"), session, agentOnly)
	g.GET("/profile", agentHandler.Profile, session, agentOnly)
	g.POST("/profile", agentHandler.UpdateProfile, session, agentOnly)
	g.POST("/change-password", agentHandler.ChangePassword, session, agentOnly)
	g.POST("/delete-account", agentHandler.DeleteAccount, session, agentOnly)

	// --- Observability (no auth required) ---
	e.GET("/metrics", echoprometheus.NewHandler())
	healthHandler := handler.NewHealthHandler()
	e.GET("/health", healthHandler.Liveness) // liveness – is the process alive?

	return e, nil
}
