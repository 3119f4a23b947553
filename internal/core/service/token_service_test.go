package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/voyagedesk/agent-portal/internal/core/domain"
)

func TestTokenService_RoundTrip(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	token, issued, err := svc.Issue("agent-1", domain.RoleAgent)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}
	if issued.TokenID == "" {
		t.Fatalf("expected token id to be set")
	}

	claims, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.SubjectID != "agent-1" {
		t.Fatalf("unexpected subject: %s", claims.SubjectID)
	}
	if claims.Role != domain.RoleAgent {
		t.Fatalf("unexpected role: %s", claims.Role)
	}
	if claims.TokenID != issued.TokenID {
		t.Fatalf("token id mismatch: %s vs %s", claims.TokenID, issued.TokenID)
	}

	remaining := time.Until(claims.ExpiresAt)
	if remaining < 59*time.Minute || remaining > time.Hour {
		t.Fatalf("unexpected expiry window: %v", remaining)
	}
}

func TestTokenService_Expired(t *testing.T) {
	svc := NewTokenService("secret", -time.Minute)

	token, _, err := svc.Issue("agent-1", domain.RoleAgent)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := svc.Verify(token); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestTokenService_WrongSecret(t *testing.T) {
	token, _, err := NewTokenService("secret-a", time.Hour).Issue("agent-1", domain.RoleAgent)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := NewTokenService("secret-b", time.Hour).Verify(token); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for wrong secret, got %v", err)
	}
}

func TestTokenService_Malformed(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := svc.Verify(token); err != domain.ErrInvalidToken {
			t.Fatalf("expected ErrInvalidToken for %q, got %v", token, err)
		}
	}
}

func TestTokenService_UnknownRoleClaim(t *testing.T) {
	// A structurally valid token carrying a role outside the closed set must
	// fail verification, not fall through to a guard comparison.
	raw := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "agent-1",
		"role": "superadmin",
		"jti":  "x",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	token, err := raw.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := NewTokenService("secret", time.Hour).Verify(token); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for unknown role, got %v", err)
	}
}

func TestTokenService_MissingSubject(t *testing.T) {
	raw := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"role": "agent",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	token, err := raw.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := NewTokenService("secret", time.Hour).Verify(token); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for missing subject, got %v", err)
	}
}
