package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/voyagedesk/agent-portal/internal/core/domain"
	"github.com/voyagedesk/agent-portal/internal/core/ports"
)

// AgentService implements registration and account lifecycle for agents.
type AgentService struct {
	repo   ports.AgentRepository
	logger zerolog.Logger
}

var _ ports.AgentService = (*AgentService)(nil)

func NewAgentService(repo ports.AgentRepository, logger zerolog.Logger) *AgentService {
	return &AgentService{repo: repo, logger: logger}
}

func (s *AgentService) Register(ctx context.Context, input ports.RegisterAgentInput) (*domain.Agent, error) {
	if input.Username == "" || input.Email == "" || input.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	// The unique index on email is the authoritative check; this lookup just
	// gives the common case a friendlier path.
	if _, err := s.repo.FindByEmail(ctx, input.Email); err == nil {
		return nil, domain.ErrAgentExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	agent := &domain.Agent{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hash),
		Role:         domain.RoleAgent,
		AgentID:      input.AgentID,
		Agency:       input.Agency,
		Phone:        input.Phone,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, agent)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("agent_id", created.ID).Str("email", created.Email).Msg("agent registered")
	return created, nil
}

func (s *AgentService) Login(ctx context.Context, email, password string) (*domain.Agent, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	agent, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(agent.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return agent, nil
}

// UpdateProfile applies the full field set to the caller's own record.
// A record deleted between authentication and the write surfaces as
// ErrAgentNotFound rather than resurrecting the account.
func (s *AgentService) UpdateProfile(ctx context.Context, id string, input ports.UpdateProfileInput) (*domain.Agent, error) {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	current.Username = input.Username
	current.Email = input.Email
	current.AgentID = input.AgentID
	current.Agency = input.Agency
	current.Phone = input.Phone
	current.Bio = input.Bio
	current.UpdatedAt = time.Now().UTC()

	updated, err := s.repo.Update(ctx, current)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("agent_id", id).Msg("profile updated")
	return updated, nil
}

// ChangePassword swaps the stored hash after proving knowledge of the current
// password. A mismatch returns ErrInvalidCredentials and leaves the record
// untouched.
func (s *AgentService) ChangePassword(ctx context.Context, id, currentPassword, newPassword string) error {
	if newPassword == "" {
		return domain.ErrInvalidCredentials
	}

	agent, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(agent.PasswordHash), []byte(currentPassword)) != nil {
		return domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	agent.PasswordHash = string(hash)
	agent.UpdatedAt = time.Now().UTC()

	if _, err := s.repo.Update(ctx, agent); err != nil {
		return err
	}

	s.logger.Info().Str("agent_id", id).Msg("password changed")
	return nil
}

// Delete removes the record permanently. There is no soft-delete.
func (s *AgentService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("agent_id", id).Msg("account deleted")
	return nil
}
