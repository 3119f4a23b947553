package domain

import "fmt"

// Role is the closed set of account roles. Keeping it a distinct type forces
// authorization checks through ParseRole instead of ad-hoc string comparisons.
type Role string

const (
	RoleUser  Role = "user"
	RoleAgent Role = "agent"
)

// ParseRole maps a raw claim value to a known Role. Anything outside the
// closed set is rejected, so an unknown role can never pass a guard.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleUser:
		return RoleUser, nil
	case RoleAgent:
		return RoleAgent, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

func (r Role) String() string { return string(r) }
