package domain

import "time"

// SessionClaims is the verified content of a session token.
type SessionClaims struct {
	SubjectID string
	Role      Role
	TokenID   string
	ExpiresAt time.Time
}
