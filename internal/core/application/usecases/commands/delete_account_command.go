package commands

import (
	"errors"

	"storefront/internal/core/domain/model/access"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/guard"
)

var ErrDeleteAccountCommandIsNotConstructed = errors.New(
	"DeleteAccountCommand must be created via NewDeleteAccountCommand constructor",
)

// DeleteAccountCommand removes a user account on behalf of the user or an admin.
type DeleteAccountCommand struct {
	requester *access.Principal
	userID    kernel.UUID

	guard guard.ConstructorGuard
}

func NewDeleteAccountCommand(requester *access.Principal, userID kernel.UUID) (DeleteAccountCommand, error) {
	if err := userID.Validate(); err != nil {
		return DeleteAccountCommand{}, err
	}

	return DeleteAccountCommand{requester: requester, userID: userID, guard: guard.NewConstructorGuard()}, nil
}

func (c DeleteAccountCommand) Validate() error {
	return c.guard.Validate(ErrDeleteAccountCommandIsNotConstructed)
}

func (c DeleteAccountCommand) Requester() *access.Principal {
	return c.requester
}

func (c DeleteAccountCommand) UserID() kernel.UUID {
	return c.userID
}
