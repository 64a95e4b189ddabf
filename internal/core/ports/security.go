package ports

import (
	"context"
	"time"

	"storefront/internal/core/domain/model/kernel"
)

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Compare returns nil only when password matches hash.
	Compare(hash, password string) error
}

// TokenClaims are the verified contents of an access or refresh token.
type TokenClaims struct {
	UserID    kernel.UUID
	TokenID   string
	ExpiresAt time.Time
}

// TokenIssuer signs and parses bearer tokens. Parse methods fail with
// errs.ErrUnauthenticated for malformed, expired or wrongly typed tokens.
type TokenIssuer interface {
	IssueAccessToken(userID kernel.UUID) (string, error)
	IssueRefreshToken(userID kernel.UUID) (string, TokenClaims, error)
	ParseAccessToken(token string) (TokenClaims, error)
	ParseRefreshToken(token string) (TokenClaims, error)
}

// RefreshTokenStore remembers issued refresh tokens so each can be used once.
type RefreshTokenStore interface {
	Save(ctx context.Context, tokenID string, userID kernel.UUID, ttl time.Duration) error
	// Consume deletes the token and returns its owner. Fails with
	// errs.ErrUnauthenticated when the token is unknown or already used.
	Consume(ctx context.Context, tokenID string) (kernel.UUID, error)
}
