package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/voyagedesk/agent-portal/internal/api/metrics"
	"github.com/voyagedesk/agent-portal/internal/core/domain"
	"github.com/voyagedesk/agent-portal/internal/core/ports"
)

// SessionHandler serves the login page and session start/end.
type SessionHandler struct {
	agents       ports.AgentService
	tokens       ports.TokenService
	revoker      ports.TokenRevoker
	cookieName   string
	cookieSecure bool
}

func NewSessionHandler(agents ports.AgentService, tokens ports.TokenService, revoker ports.TokenRevoker, cookieName string, cookieSecure bool) *SessionHandler {
	return &SessionHandler{
		agents:       agents,
		tokens:       tokens,
		revoker:      revoker,
		cookieName:   cookieName,
		cookieSecure: cookieSecure,
	}
}

// LoginPage renders the sign-in form.
func (h *SessionHandler) LoginPage(c echo.Context) error {
	return c.Render(http.StatusOK, "login.html", loginView{})
}

// Login verifies credentials and starts a cookie session. Bad credentials and
// unknown accounts get the same re-rendered form, so the response does not
// reveal which of the two failed.
func (h *SessionHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form payload")
	}
	if err := c.Validate(&req); err != nil {
		return c.Render(http.StatusOK, "login.html", loginView{ErrorMessage: err.Error()})
	}

	agent, err := h.agents.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) || errors.Is(err, domain.ErrAgentNotFound) {
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			return c.Render(http.StatusOK, "login.html", loginView{ErrorMessage: "Invalid email or password"})
		}
		return err
	}

	token, claims, err := h.tokens.Issue(agent.ID, agent.Role)
	if err != nil {
		return err
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()
	setSessionCookie(c, h.cookieName, token, claims.ExpiresAt, h.cookieSecure)

	return c.Redirect(http.StatusFound, "/agent/dashboard")
}

// Logout revokes the current session token when one is presented, clears the
// cookie either way, and redirects to the login page. An absent or invalid
// token is not an error here: the end state is the same.
func (h *SessionHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(h.cookieName); err == nil && cookie.Value != "" {
		if claims, err := h.tokens.Verify(cookie.Value); err == nil {
			if err := h.revoker.Revoke(c.Request().Context(), claims.TokenID, claims.ExpiresAt); err != nil {
				return err
			}
			metrics.TokenRevocationsTotal.Inc()
		}
	}

	clearSessionCookie(c, h.cookieName, h.cookieSecure)
	return c.Redirect(http.StatusFound, "/login")
}
