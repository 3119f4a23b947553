package ports

import (
	"context"

	"github.com/voyagedesk/agent-portal/internal/core/domain"
)

// RegisterAgentInput carries the fields accepted at registration time.
// Creation and update deliberately use separate input types: the create path
// owns the password, the update path never touches it.
type RegisterAgentInput struct {
	Username string
	Email    string
	Password string
	AgentID  string
	Agency   string
	Phone    string
}

// UpdateProfileInput is the full field set applied on a profile update.
type UpdateProfileInput struct {
	Username string
	Email    string
	AgentID  string
	Agency   string
	Phone    string
	Bio      string
}

type AgentService interface {
	Register(ctx context.Context, input RegisterAgentInput) (*domain.Agent, error)
	Login(ctx context.Context, email, password string) (*domain.Agent, error)
	UpdateProfile(ctx context.Context, id string, input UpdateProfileInput) (*domain.Agent, error)
	ChangePassword(ctx context.Context, id, currentPassword, newPassword string) error
	Delete(ctx context.Context, id string) error
}
