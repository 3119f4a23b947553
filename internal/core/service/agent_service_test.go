package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/voyagedesk/agent-portal/internal/core/domain"
	"github.com/voyagedesk/agent-portal/internal/core/ports"
)

type stubAgentRepo struct {
	byID map[string]*domain.Agent
	seq  int
}

func newStubAgentRepo() *stubAgentRepo {
	return &stubAgentRepo{byID: make(map[string]*domain.Agent)}
}

func cloneAgent(a *domain.Agent) *domain.Agent {
	if a == nil {
		return nil
	}
	clone := *a
	return &clone
}

func (r *stubAgentRepo) FindByEmail(_ context.Context, email string) (*domain.Agent, error) {
	for _, a := range r.byID {
		if a.Email == email {
			return cloneAgent(a), nil
		}
	}
	return nil, domain.ErrAgentNotFound
}

func (r *stubAgentRepo) FindByID(_ context.Context, id string) (*domain.Agent, error) {
	a, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrAgentNotFound
	}
	return cloneAgent(a), nil
}

func (r *stubAgentRepo) Create(_ context.Context, agent *domain.Agent) (*domain.Agent, error) {
	for _, existing := range r.byID {
		if existing.Email == agent.Email {
			return nil, domain.ErrAgentExists
		}
	}
	r.seq++
	clone := cloneAgent(agent)
	clone.ID = fmt.Sprintf("agent-%d", r.seq)
	r.byID[clone.ID] = cloneAgent(clone)
	return clone, nil
}

func (r *stubAgentRepo) Update(_ context.Context, agent *domain.Agent) (*domain.Agent, error) {
	if _, ok := r.byID[agent.ID]; !ok {
		return nil, domain.ErrAgentNotFound
	}
	for id, existing := range r.byID {
		if id != agent.ID && existing.Email == agent.Email {
			return nil, domain.ErrAgentExists
		}
	}
	r.byID[agent.ID] = cloneAgent(agent)
	return cloneAgent(agent), nil
}

func (r *stubAgentRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrAgentNotFound
	}
	delete(r.byID, id)
	return nil
}

func newAgentService(repo ports.AgentRepository) *AgentService {
	return NewAgentService(repo, zerolog.Nop())
}

func registerTestAgent(t *testing.T, svc *AgentService, email string) *domain.Agent {
	t.Helper()
	agent, err := svc.Register(context.Background(), ports.RegisterAgentInput{
		Username: "alice",
		Email:    email,
		Password: "correct-horse",
		AgentID:  "AG-100",
		Agency:   "Sunrise Travel",
		Phone:    "555-0101",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	return agent
}

func TestAgentService_Register(t *testing.T) {
	repo := newStubAgentRepo()
	svc := newAgentService(repo)

	agent := registerTestAgent(t, svc, "alice@example.com")
	if agent.ID == "" {
		t.Fatalf("expected id to be assigned")
	}
	if agent.Role != domain.RoleAgent {
		t.Fatalf("unexpected role: %s", agent.Role)
	}
	if agent.PasswordHash == "correct-horse" {
		t.Fatalf("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(agent.PasswordHash), []byte("correct-horse")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestAgentService_Register_DuplicateEmail(t *testing.T) {
	repo := newStubAgentRepo()
	svc := newAgentService(repo)

	registerTestAgent(t, svc, "alice@example.com")
	before := len(repo.byID)

	_, err := svc.Register(context.Background(), ports.RegisterAgentInput{
		Username: "bob",
		Email:    "alice@example.com",
		Password: "another-pass",
	})
	if err != domain.ErrAgentExists {
		t.Fatalf("expected ErrAgentExists, got %v", err)
	}
	if len(repo.byID) != before {
		t.Fatalf("duplicate registration created a record")
	}
}

func TestAgentService_Register_MissingFields(t *testing.T) {
	svc := newAgentService(newStubAgentRepo())

	if _, err := svc.Register(context.Background(), ports.RegisterAgentInput{Email: "x@y.com", Password: "pw"}); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAgentService_Login(t *testing.T) {
	svc := newAgentService(newStubAgentRepo())
	registerTestAgent(t, svc, "alice@example.com")

	agent, err := svc.Login(context.Background(), "alice@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if agent.Username != "alice" {
		t.Fatalf("unexpected agent: %+v", agent)
	}

	if _, err := svc.Login(context.Background(), "alice@example.com", "wrong"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "ghost@example.com", "pw"); err != domain.ErrAgentNotFound {
		t.Fatalf("expected ErrAgentNotFound, got %v", err)
	}
}

func TestAgentService_UpdateProfile_Idempotent(t *testing.T) {
	repo := newStubAgentRepo()
	svc := newAgentService(repo)
	agent := registerTestAgent(t, svc, "alice@example.com")

	input := ports.UpdateProfileInput{
		Username: "alice-renamed",
		Email:    "alice.new@example.com",
		AgentID:  "AG-200",
		Agency:   "Moonlight Tours",
		Phone:    "555-0202",
		Bio:      "Twenty years in the business.",
	}

	first, err := svc.UpdateProfile(context.Background(), agent.ID, input)
	if err != nil {
		t.Fatalf("first update: %v", err)
	}
	second, err := svc.UpdateProfile(context.Background(), agent.ID, input)
	if err != nil {
		t.Fatalf("second update: %v", err)
	}

	if first.Username != second.Username || first.Email != second.Email ||
		first.AgentID != second.AgentID || first.Agency != second.Agency ||
		first.Phone != second.Phone || first.Bio != second.Bio {
		t.Fatalf("update not idempotent: %+v vs %+v", first, second)
	}
	if second.Email != "alice.new@example.com" {
		t.Fatalf("email not applied: %s", second.Email)
	}
}

func TestAgentService_UpdateProfile_DeletedRecord(t *testing.T) {
	repo := newStubAgentRepo()
	svc := newAgentService(repo)
	agent := registerTestAgent(t, svc, "alice@example.com")

	if err := svc.Delete(context.Background(), agent.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	_, err := svc.UpdateProfile(context.Background(), agent.ID, ports.UpdateProfileInput{
		Username: "ghost",
		Email:    "ghost@example.com",
	})
	if err != domain.ErrAgentNotFound {
		t.Fatalf("expected ErrAgentNotFound after deletion, got %v", err)
	}
	if len(repo.byID) != 0 {
		t.Fatalf("update after delete resurrected the record")
	}
}

func TestAgentService_ChangePassword_Mismatch(t *testing.T) {
	repo := newStubAgentRepo()
	svc := newAgentService(repo)
	agent := registerTestAgent(t, svc, "alice@example.com")
	originalHash := repo.byID[agent.ID].PasswordHash

	err := svc.ChangePassword(context.Background(), agent.ID, "not-the-password", "new-password-1")
	if err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if repo.byID[agent.ID].PasswordHash != originalHash {
		t.Fatalf("hash mutated on mismatched current password")
	}
}

func TestAgentService_ChangePassword_Success(t *testing.T) {
	repo := newStubAgentRepo()
	svc := newAgentService(repo)
	agent := registerTestAgent(t, svc, "alice@example.com")
	originalHash := repo.byID[agent.ID].PasswordHash

	if err := svc.ChangePassword(context.Background(), agent.ID, "correct-horse", "new-password-1"); err != nil {
		t.Fatalf("change password: %v", err)
	}
	if repo.byID[agent.ID].PasswordHash == originalHash {
		t.Fatalf("hash not replaced")
	}
	if _, err := svc.Login(context.Background(), agent.Email, "new-password-1"); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
	if _, err := svc.Login(context.Background(), agent.Email, "correct-horse"); err != domain.ErrInvalidCredentials {
		t.Fatalf("old password still accepted: %v", err)
	}
}

func TestAgentService_Delete(t *testing.T) {
	repo := newStubAgentRepo()
	svc := newAgentService(repo)
	agent := registerTestAgent(t, svc, "alice@example.com")

	if err := svc.Delete(context.Background(), agent.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.FindByID(context.Background(), agent.ID); err != domain.ErrAgentNotFound {
		t.Fatalf("record still resolvable after delete: %v", err)
	}
	if err := svc.Delete(context.Background(), agent.ID); err != domain.ErrAgentNotFound {
		t.Fatalf("expected ErrAgentNotFound on second delete, got %v", err)
	}
}
