package domain

import "time"

// Agent models a persisted identity record. The same collection stores every
// role; the agent-specific attributes are simply empty for plain users.
type Agent struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	AgentID      string    `json:"agent_id,omitempty"`
	Agency       string    `json:"agency,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	Bio          string    `json:"bio,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
