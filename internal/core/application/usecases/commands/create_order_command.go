package commands

import (
	"errors"

	"storefront/internal/core/domain/model/access"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/services"
	"storefront/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a request to place an order for a buyer.
// Lines are kept as given; emptiness and quantities are checked by the handler
// after authorization so that anonymous callers never learn about validation.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(principal, buyerID, []services.Line{
//	    {ProductID: shoeID, Quantity: 2},
//	})
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	o, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	requester *access.Principal
	buyerID   kernel.UUID
	lines     []services.Line

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to place an order. requester may be nil.
func NewCreateOrderCommand(
	requester *access.Principal,
	buyerID kernel.UUID,
	lines []services.Line,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		requester: requester,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setBuyerID(buyerID),
		cmd.setLines(lines),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) Requester() *access.Principal {
	return c.requester
}

func (c CreateOrderCommand) BuyerID() kernel.UUID {
	return c.buyerID
}

// Lines returns a copy of the requested lines.
func (c CreateOrderCommand) Lines() []services.Line {
	lines := make([]services.Line, len(c.lines))
	copy(lines, c.lines)
	return lines
}

func (c *CreateOrderCommand) setBuyerID(buyerID kernel.UUID) error {
	if err := buyerID.Validate(); err != nil {
		return err
	}

	c.buyerID = buyerID
	return nil
}

func (c *CreateOrderCommand) setLines(lines []services.Line) error {
	for _, line := range lines {
		if err := line.ProductID.Validate(); err != nil {
			return err
		}
	}

	c.lines = make([]services.Line, len(lines))
	copy(c.lines, lines)
	return nil
}
