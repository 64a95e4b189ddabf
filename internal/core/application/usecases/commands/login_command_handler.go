package commands

import (
	"context"
	"errors"

	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"
)

// ErrInvalidCredentials is returned for an unknown email and for a wrong password alike.
var ErrInvalidCredentials = errs.NewUnauthenticatedError("invalid email or password")

// LoginCommandHandler verifies credentials and issues an access/refresh token pair.
type LoginCommandHandler struct {
	uowFactory UserUoWFactory
	hasher     ports.PasswordHasher
	issuer     tokenPairIssuer
}

func NewLoginCommandHandler(
	uowFactory UserUoWFactory,
	hasher ports.PasswordHasher,
	tokens ports.TokenIssuer,
	store ports.RefreshTokenStore,
) LoginCommandHandler {
	return LoginCommandHandler{
		uowFactory: uowFactory,
		hasher:     hasher,
		issuer:     tokenPairIssuer{tokens: tokens, store: store},
	}
}

func (h *LoginCommandHandler) Handle(ctx context.Context, cmd LoginCommand) (TokenPair, error) {
	if err := cmd.Validate(); err != nil {
		return TokenPair{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return TokenPair{}, errs.WrapInternal("begin transaction", err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	u, err := uow.UserRepository().GetByEmail(ctx, cmd.Email())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return TokenPair{}, ErrInvalidCredentials
	}
	if err != nil {
		return TokenPair{}, errs.WrapInternal("load user", err)
	}

	if err = h.hasher.Compare(u.PasswordHash(), cmd.Password()); err != nil {
		return TokenPair{}, ErrInvalidCredentials
	}

	return h.issuer.issue(ctx, u.ID())
}
