package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/voyagedesk/agent-portal/internal/core/domain"
	"github.com/voyagedesk/agent-portal/internal/core/ports"
)

// Context keys set by Session for downstream handlers.
const (
	AgentContextKey  = "agent"
	ClaimsContextKey = "session_claims"
)

// Session authenticates a request from its session cookie. It is the single
// chokepoint in front of every protected route: verify the token, check the
// revocation list, then load the identity record — a record deleted after
// token issuance must not resolve to a live session. On success the loaded
// record and claims are attached to the request context.
func Session(tokens ports.TokenService, repo ports.AgentRepository, revoker ports.TokenRevoker, cookieName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing session cookie")
			}

			claims, err := tokens.Verify(cookie.Value)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid session")
			}

			revoked, err := revoker.IsRevoked(c.Request().Context(), claims.TokenID)
			if err != nil {
				return err
			}
			if revoked {
				return echo.NewHTTPError(http.StatusUnauthorized, "session revoked")
			}

			agent, err := repo.FindByID(c.Request().Context(), claims.SubjectID)
			if err != nil {
				if errors.Is(err, domain.ErrAgentNotFound) {
					return echo.NewHTTPError(http.StatusUnauthorized, "unknown account")
				}
				return err
			}

			c.Set(AgentContextKey, agent)
			c.Set(ClaimsContextKey, claims)

			return next(c)
		}
	}
}
