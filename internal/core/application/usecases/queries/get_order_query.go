package queries

import (
	"errors"

	"storefront/internal/core/domain/model/access"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves one order with its items for its owner or an admin.
//
// Example:
//
//	query, err := NewGetOrderQuery(principal, orderID)
//	if err != nil {
//	    return err
//	}
//	resp, err := handler.Handle(ctx, query)
//	// resp.Items[0].Price is the price paid, not the current catalog price
type GetOrderQuery struct {
	requester *access.Principal
	orderID   kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates the query. requester may be nil.
func NewGetOrderQuery(requester *access.Principal, orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{requester: requester, orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) Requester() *access.Principal {
	return q.requester
}

func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}
