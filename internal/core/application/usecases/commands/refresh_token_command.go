package commands

import (
	"errors"
	"strings"

	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var ErrRefreshTokenCommandIsNotConstructed = errors.New(
	"RefreshTokenCommand must be created via NewRefreshTokenCommand constructor",
)

// RefreshTokenCommand trades a refresh token for a new pair. The old token is consumed.
type RefreshTokenCommand struct {
	refreshToken string

	guard guard.ConstructorGuard
}

func NewRefreshTokenCommand(refreshToken string) (RefreshTokenCommand, error) {
	token := strings.TrimSpace(refreshToken)
	if token == "" {
		return RefreshTokenCommand{}, errs.NewValueIsRequiredError("refresh token")
	}

	return RefreshTokenCommand{refreshToken: token, guard: guard.NewConstructorGuard()}, nil
}

func (c RefreshTokenCommand) Validate() error {
	return c.guard.Validate(ErrRefreshTokenCommandIsNotConstructed)
}

func (c RefreshTokenCommand) RefreshToken() string {
	return c.refreshToken
}
