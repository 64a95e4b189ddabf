package commands

import (
	"errors"

	"storefront/internal/core/domain/model/access"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/guard"
)

var ErrCancelOrderCommandIsNotConstructed = errors.New(
	"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
)

// CancelOrderCommand asks to cancel an order on behalf of its owner or an admin.
type CancelOrderCommand struct { //nolint:recvcheck //using for validation
	requester *access.Principal
	orderID   kernel.UUID

	guard guard.ConstructorGuard
}

// NewCancelOrderCommand creates the command. requester may be nil.
func NewCancelOrderCommand(requester *access.Principal, orderID kernel.UUID) (CancelOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return CancelOrderCommand{}, err
	}

	return CancelOrderCommand{
		requester: requester,
		orderID:   orderID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

func (c CancelOrderCommand) Requester() *access.Principal {
	return c.requester
}

func (c CancelOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}
