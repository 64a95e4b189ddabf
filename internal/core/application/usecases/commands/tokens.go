package commands

import (
	"context"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"
)

const BearerTokenType = "bearer"

// TokenPair is returned by login and refresh.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	TokenType    string
}

// tokenPairIssuer signs a new pair and registers the refresh token for one use.
type tokenPairIssuer struct {
	tokens ports.TokenIssuer
	store  ports.RefreshTokenStore
}

func (i tokenPairIssuer) issue(ctx context.Context, userID kernel.UUID) (TokenPair, error) {
	access, err := i.tokens.IssueAccessToken(userID)
	if err != nil {
		return TokenPair{}, errs.WrapInternal("issue access token", err)
	}

	refresh, claims, err := i.tokens.IssueRefreshToken(userID)
	if err != nil {
		return TokenPair{}, errs.WrapInternal("issue refresh token", err)
	}

	if err = i.store.Save(ctx, claims.TokenID, userID, time.Until(claims.ExpiresAt)); err != nil {
		return TokenPair{}, errs.WrapInternal("store refresh token", err)
	}

	return TokenPair{AccessToken: access, RefreshToken: refresh, TokenType: BearerTokenType}, nil
}
