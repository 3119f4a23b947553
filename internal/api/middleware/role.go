package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/voyagedesk/agent-portal/internal/core/domain"
)

// RequireRole rejects any session whose loaded record does not carry the
// required role. The check runs against the persisted record, not the token
// claim, so a stale role claim cannot widen access. Session must run first.
func RequireRole(required domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			agent, ok := c.Get(AgentContextKey).(*domain.Agent)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
			}
			if agent.Role != required {
				return echo.NewHTTPError(http.StatusForbidden, "forbidden")
			}
			return next(c)
		}
	}
}
