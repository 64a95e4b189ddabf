package commands

import (
	"context"
	"errors"

	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"
)

// RefreshTokenCommandHandler rotates refresh tokens. Each refresh token works
// once; replaying it fails with errs.ErrUnauthenticated.
type RefreshTokenCommandHandler struct {
	uowFactory UserUoWFactory
	tokens     ports.TokenIssuer
	store      ports.RefreshTokenStore
	issuer     tokenPairIssuer
}

func NewRefreshTokenCommandHandler(
	uowFactory UserUoWFactory,
	tokens ports.TokenIssuer,
	store ports.RefreshTokenStore,
) RefreshTokenCommandHandler {
	return RefreshTokenCommandHandler{
		uowFactory: uowFactory,
		tokens:     tokens,
		store:      store,
		issuer:     tokenPairIssuer{tokens: tokens, store: store},
	}
}

func (h *RefreshTokenCommandHandler) Handle(ctx context.Context, cmd RefreshTokenCommand) (TokenPair, error) {
	if err := cmd.Validate(); err != nil {
		return TokenPair{}, err
	}

	claims, err := h.tokens.ParseRefreshToken(cmd.RefreshToken())
	if err != nil {
		return TokenPair{}, err
	}

	owner, err := h.store.Consume(ctx, claims.TokenID)
	if err != nil {
		return TokenPair{}, errs.WrapInternal("consume refresh token", err)
	}
	if !owner.IsEqual(claims.UserID) {
		return TokenPair{}, errs.NewUnauthenticatedError("refresh token subject mismatch")
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return TokenPair{}, errs.WrapInternal("begin transaction", err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	exists, err := uow.UserRepository().Exists(ctx, owner)
	if err != nil {
		return TokenPair{}, errs.WrapInternal("check user", err)
	}
	if !exists {
		return TokenPair{}, errs.NewUnauthenticatedErrorWithCause(
			"account no longer exists",
			errors.New(owner.String()),
		)
	}

	return h.issuer.issue(ctx, owner)
}
