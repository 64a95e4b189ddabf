package commands

import (
	"errors"

	"storefront/internal/core/domain/model/user"
	"storefront/internal/pkg/guard"
)

var ErrRegisterUserCommandIsNotConstructed = errors.New(
	"RegisterUserCommand must be created via NewRegisterUserCommand constructor",
)

// RegisterUserCommand creates a regular account.
type RegisterUserCommand struct { //nolint:recvcheck //using for validation
	profile  user.Profile
	password string

	guard guard.ConstructorGuard
}

// NewRegisterUserCommand validates the profile and the plain-text password.
func NewRegisterUserCommand(profile user.Profile, password string) (RegisterUserCommand, error) {
	cmd := RegisterUserCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setProfile(profile),
		cmd.setPassword(password),
	); err != nil {
		return RegisterUserCommand{}, err
	}

	return cmd, nil
}

func (c RegisterUserCommand) Validate() error {
	return c.guard.Validate(ErrRegisterUserCommandIsNotConstructed)
}

func (c RegisterUserCommand) Profile() user.Profile {
	return c.profile
}

func (c RegisterUserCommand) Password() string {
	return c.password
}

func (c *RegisterUserCommand) setProfile(profile user.Profile) error {
	email, err := user.NormalizeEmail(profile.Email)
	if err != nil {
		return err
	}
	profile.Email = email
	c.profile = profile
	return nil
}

func (c *RegisterUserCommand) setPassword(password string) error {
	if err := user.ValidatePassword(password); err != nil {
		return err
	}
	c.password = password
	return nil
}
