package ports

import "github.com/voyagedesk/agent-portal/internal/core/domain"

// TokenService issues and verifies signed session tokens.
type TokenService interface {
	// Issue produces a signed token binding subjectID to role for a fixed TTL.
	Issue(subjectID string, role domain.Role) (token string, claims *domain.SessionClaims, err error)
	// Verify checks signature and expiry. Every failure mode (malformed,
	// tampered, expired, unknown role) surfaces as domain.ErrInvalidToken.
	Verify(token string) (*domain.SessionClaims, error)
}
