package auth

import (
	"errors"
	"fmt"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	accessTokenType  = "access"
	refreshTokenType = "refresh"
	clockSkew        = 30 * time.Second
)

var _ ports.TokenIssuer = (*JWTIssuer)(nil)

type claims struct {
	Type string `json:"typ"`
	jwt.RegisteredClaims
}

// JWTIssuer signs and verifies tokens with a shared HMAC secret.
type JWTIssuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// NewJWTIssuer returns an issuer; the secret must not be empty.
func NewJWTIssuer(secret string, accessTTL, refreshTTL time.Duration) (*JWTIssuer, error) {
	if secret == "" {
		return nil, errs.NewValueIsRequiredError("jwt secret")
	}
	if accessTTL <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("access ttl", accessTTL, time.Second, "unbounded")
	}
	if refreshTTL <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("refresh ttl", refreshTTL, time.Second, "unbounded")
	}

	return &JWTIssuer{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}, nil
}

func (i *JWTIssuer) IssueAccessToken(userID kernel.UUID) (string, error) {
	token, _, err := i.issue(userID, accessTokenType, i.accessTTL)
	return token, err
}

func (i *JWTIssuer) IssueRefreshToken(userID kernel.UUID) (string, ports.TokenClaims, error) {
	return i.issue(userID, refreshTokenType, i.refreshTTL)
}

func (i *JWTIssuer) ParseAccessToken(token string) (ports.TokenClaims, error) {
	return i.parse(token, accessTokenType)
}

func (i *JWTIssuer) ParseRefreshToken(token string) (ports.TokenClaims, error) {
	return i.parse(token, refreshTokenType)
}

func (i *JWTIssuer) issue(userID kernel.UUID, tokenType string, ttl time.Duration) (string, ports.TokenClaims, error) {
	if err := userID.Validate(); err != nil {
		return "", ports.TokenClaims{}, err
	}

	issuedAt := i.now().UTC()
	expiresAt := issuedAt.Add(ttl)
	c := claims{
		Type: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(i.secret)
	if err != nil {
		return "", ports.TokenClaims{}, fmt.Errorf("sign %s token: %w", tokenType, err)
	}

	return signed, ports.TokenClaims{
		UserID:    userID,
		TokenID:   c.ID,
		ExpiresAt: c.ExpiresAt.Time,
	}, nil
}

func (i *JWTIssuer) parse(raw, tokenType string) (ports.TokenClaims, error) {
	var c claims
	_, err := jwt.ParseWithClaims(raw, &c, func(*jwt.Token) (any, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(clockSkew),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return ports.TokenClaims{}, errs.NewUnauthenticatedErrorWithCause("token expired", err)
		}
		return ports.TokenClaims{}, errs.NewUnauthenticatedErrorWithCause("invalid token", err)
	}

	if c.Type != tokenType {
		return ports.TokenClaims{}, errs.NewUnauthenticatedError(fmt.Sprintf("expected %s token", tokenType))
	}
	if c.ID == "" {
		return ports.TokenClaims{}, errs.NewUnauthenticatedError("token has no id")
	}

	userID, err := kernel.UUIDFromString(c.Subject)
	if err != nil {
		return ports.TokenClaims{}, errs.NewUnauthenticatedErrorWithCause("invalid token subject", err)
	}

	return ports.TokenClaims{
		UserID:    userID,
		TokenID:   c.ID,
		ExpiresAt: c.ExpiresAt.Time,
	}, nil
}
