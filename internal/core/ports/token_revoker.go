package ports

import (
	"context"
	"time"
)

// TokenRevoker is a denylist of session token IDs. Entries only need to live
// until the token's own expiry, after which verification rejects it anyway.
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
