package commands

import (
	"errors"

	"storefront/internal/core/domain/model/user"
	"storefront/internal/pkg/guard"
)

var ErrEnsureAdminCommandIsNotConstructed = errors.New(
	"EnsureAdminCommand must be created via NewEnsureAdminCommand constructor",
)

// EnsureAdminCommand bootstraps an administrator account at startup.
type EnsureAdminCommand struct {
	email    string
	password string

	guard guard.ConstructorGuard
}

func NewEnsureAdminCommand(email, password string) (EnsureAdminCommand, error) {
	normalized, emailErr := user.NormalizeEmail(email)
	if err := errors.Join(emailErr, user.ValidatePassword(password)); err != nil {
		return EnsureAdminCommand{}, err
	}

	return EnsureAdminCommand{email: normalized, password: password, guard: guard.NewConstructorGuard()}, nil
}

func (c EnsureAdminCommand) Validate() error {
	return c.guard.Validate(ErrEnsureAdminCommandIsNotConstructed)
}

func (c EnsureAdminCommand) Email() string {
	return c.email
}

func (c EnsureAdminCommand) Password() string {
	return c.password
}
