package commands

import (
	"errors"

	"storefront/internal/core/domain/model/access"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/guard"
)

var ErrMarkOrderDeliveredCommandIsNotConstructed = errors.New(
	"MarkOrderDeliveredCommand must be created via NewMarkOrderDeliveredCommand constructor",
)

// MarkOrderDeliveredCommand asks an admin-only confirmation of delivery.
type MarkOrderDeliveredCommand struct { //nolint:recvcheck //using for validation
	requester *access.Principal
	orderID   kernel.UUID

	guard guard.ConstructorGuard
}

// NewMarkOrderDeliveredCommand creates the command. requester may be nil.
func NewMarkOrderDeliveredCommand(requester *access.Principal, orderID kernel.UUID) (MarkOrderDeliveredCommand, error) {
	if err := orderID.Validate(); err != nil {
		return MarkOrderDeliveredCommand{}, err
	}

	return MarkOrderDeliveredCommand{
		requester: requester,
		orderID:   orderID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c MarkOrderDeliveredCommand) Validate() error {
	return c.guard.Validate(ErrMarkOrderDeliveredCommandIsNotConstructed)
}

func (c MarkOrderDeliveredCommand) Requester() *access.Principal {
	return c.requester
}

func (c MarkOrderDeliveredCommand) OrderID() kernel.UUID {
	return c.orderID
}
