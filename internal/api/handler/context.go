package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/voyagedesk/agent-portal/internal/api/middleware"
	"github.com/voyagedesk/agent-portal/internal/core/domain"
)

// currentAgent extracts the identity record attached by the Session
// middleware. Its absence means the route was wired without the middleware,
// which must read as unauthenticated, never as a server fault.
func currentAgent(c echo.Context) (*domain.Agent, error) {
	agent, ok := c.Get(middleware.AgentContextKey).(*domain.Agent)
	if !ok || agent == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return agent, nil
}

// currentClaims extracts the verified token claims for the request.
func currentClaims(c echo.Context) (*domain.SessionClaims, error) {
	claims, ok := c.Get(middleware.ClaimsContextKey).(*domain.SessionClaims)
	if !ok || claims == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return claims, nil
}
