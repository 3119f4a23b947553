package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/voyagedesk/agent-portal/internal/api/metrics"
	"github.com/voyagedesk/agent-portal/internal/core/domain"
	"github.com/voyagedesk/agent-portal/internal/core/ports"
)

// AgentHandler serves registration, the agent pages, and account lifecycle.
type AgentHandler struct {
	agents       ports.AgentService
	tokens       ports.TokenService
	revoker      ports.TokenRevoker
	cookieName   string
	cookieSecure bool
}

func NewAgentHandler(agents ports.AgentService, tokens ports.TokenService, revoker ports.TokenRevoker, cookieName string, cookieSecure bool) *AgentHandler {
	return &AgentHandler{
		agents:       agents,
		tokens:       tokens,
		revoker:      revoker,
		cookieName:   cookieName,
		cookieSecure: cookieSecure,
	}
}

// Register creates a new agent account, starts a session for it, and sends
// the browser to the dashboard.
func (h *AgentHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	agent, err := h.agents.Register(c.Request().Context(), ports.RegisterAgentInput{
		Username: req.Agentname,
		Email:    req.Agentemail,
		Password: req.Agentpassword,
		AgentID:  req.Agentid,
		Agency:   req.Agency,
		Phone:    req.Phone,
	})
	if err != nil {
		if errors.Is(err, domain.ErrAgentExists) {
			metrics.RegistrationsTotal.WithLabelValues("conflict").Inc()
			return echo.NewHTTPError(http.StatusConflict, "agent with this email already exists")
		}
		metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		return err
	}
	metrics.RegistrationsTotal.WithLabelValues("created").Inc()

	token, claims, err := h.tokens.Issue(agent.ID, agent.Role)
	if err != nil {
		return err
	}
	setSessionCookie(c, h.cookieName, token, claims.ExpiresAt, h.cookieSecure)

	return c.Redirect(http.StatusFound, "/agent/dashboard")
}

// Page returns a handler rendering the named view with the signed-in agent's
// display name. All the read-only agent pages share this shape.
func (h *AgentHandler) Page(template string) echo.HandlerFunc {
	return func(c echo.Context) error {
		agent, err := currentAgent(c)
		if err != nil {
			return err
		}
		return c.Render(http.StatusOK, template, pageView{Agentname: agent.Username})
	}
}

// Profile renders the profile form populated from the current record.
func (h *AgentHandler) Profile(c echo.Context) error {
	agent, err := currentAgent(c)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "agent_profile.html", viewFromAgent(agent))
}

// UpdateProfile applies a full-field update to the caller's own record and
// re-renders the profile with a success flag.
func (h *AgentHandler) UpdateProfile(c echo.Context) error {
	agent, err := currentAgent(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	updated, err := h.agents.UpdateProfile(c.Request().Context(), agent.ID, ports.UpdateProfileInput{
		Username: req.Agentname,
		Email:    req.Agentemail,
		AgentID:  req.Agentid,
		Agency:   req.Agency,
		Phone:    req.Phone,
		Bio:      req.Bio,
	})
	if err != nil {
		if errors.Is(err, domain.ErrAgentNotFound) {
			metrics.ProfileUpdatesTotal.WithLabelValues("not_found").Inc()
			return echo.NewHTTPError(http.StatusNotFound, "agent not found")
		}
		metrics.ProfileUpdatesTotal.WithLabelValues("error").Inc()
		return err
	}
	metrics.ProfileUpdatesTotal.WithLabelValues("success").Inc()

	view := viewFromAgent(updated)
	view.SuccessMessage = "Profile updated successfully"
	return c.Render(http.StatusOK, "agent_profile.html", view)
}

// ChangePassword swaps the stored password after verifying the current one.
// A mismatch is a correctable user input, not an error: the profile view is
// re-rendered with an error flag and nothing is mutated.
func (h *AgentHandler) ChangePassword(c echo.Context) error {
	agent, err := currentAgent(c)
	if err != nil {
		return err
	}

	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form payload")
	}
	if err := c.Validate(&req); err != nil {
		view := viewFromAgent(agent)
		view.ErrorMessage = err.Error()
		return c.Render(http.StatusOK, "agent_profile.html", view)
	}

	err = h.agents.ChangePassword(c.Request().Context(), agent.ID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.PasswordChangesTotal.WithLabelValues("mismatch").Inc()
			view := viewFromAgent(agent)
			view.ErrorMessage = "Current password is incorrect"
			return c.Render(http.StatusOK, "agent_profile.html", view)
		}
		return err
	}
	metrics.PasswordChangesTotal.WithLabelValues("success").Inc()

	view := viewFromAgent(agent)
	view.SuccessMessage = "Password changed successfully"
	return c.Render(http.StatusOK, "agent_profile.html", view)
}

// DeleteAccount permanently removes the caller's record, revokes the session
// token, clears the cookie, and sends the browser back to the login page.
func (h *AgentHandler) DeleteAccount(c echo.Context) error {
	agent, err := currentAgent(c)
	if err != nil {
		return err
	}
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	if err := h.agents.Delete(c.Request().Context(), agent.ID); err != nil {
		return err
	}
	metrics.AccountDeletionsTotal.Inc()

	// The record is gone: drop the client credential first, so a revoker
	// fault cannot leave the deleted account's cookie behind.
	clearSessionCookie(c, h.cookieName, h.cookieSecure)

	if err := h.revoker.Revoke(c.Request().Context(), claims.TokenID, claims.ExpiresAt); err != nil {
		return err
	}
	metrics.TokenRevocationsTotal.Inc()

	return c.Redirect(http.StatusFound, "/login")
}

func viewFromAgent(agent *domain.Agent) profileView {
	return profileView{
		Agentname:  agent.Username,
		Agentemail: agent.Email,
		Agentid:    agent.AgentID,
		Agency:     agent.Agency,
		Phone:      agent.Phone,
		Bio:        agent.Bio,
	}
}
