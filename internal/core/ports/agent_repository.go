package ports

import (
	"context"

	"github.com/voyagedesk/agent-portal/internal/core/domain"
)

// AgentRepository defines the interface for identity record persistence.
type AgentRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.Agent, error)
	FindByID(ctx context.Context, id string) (*domain.Agent, error)
	Create(ctx context.Context, agent *domain.Agent) (*domain.Agent, error)
	Update(ctx context.Context, agent *domain.Agent) (*domain.Agent, error)
	Delete(ctx context.Context, id string) error
}
