package commands

import (
	"context"

	"storefront/internal/core/domain/model/access"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/services"
	"storefront/internal/pkg/errs"
)

// CreateOrderCommandHandler places orders. The order and all of its items are
// written in one transaction with prices copied from the catalog.
//
// Checks run in this order, and nothing is written unless all pass:
//   - requester present (unauthenticated)
//   - buyer exists (not found)
//   - requester is the buyer, admins included (forbidden)
//   - at least one line (invalid)
//   - per line: product exists, product active, quantity > 0
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	o, err := handler.Handle(ctx, cmd)
//	if errs.KindOf(err) == errs.KindForbidden {
//	    // principals can only order for themselves
//	}
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	pricer     services.OrderPricer
}

// NewCreateOrderCommandHandler creates a handler for order placement.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		pricer:     services.NewOrderPricer(),
	}
}

// Handle processes the command and returns the persisted order.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	if err := access.RequireAuthenticated(cmd.Requester()); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, errs.WrapInternal("begin transaction", err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	exists, err := uow.UserRepository().Exists(ctx, cmd.BuyerID())
	if err != nil {
		return nil, errs.WrapInternal("check buyer", err)
	}
	if !exists {
		return nil, errs.NewObjectNotFoundError("user", cmd.BuyerID())
	}

	if err = access.RequireSelf(cmd.Requester(), cmd.BuyerID(), "place order"); err != nil {
		return nil, err
	}

	lines := cmd.Lines()
	if len(lines) == 0 {
		return nil, order.ErrOrderHasNoItems
	}

	products, err := uow.ProductRepository().FindByIDs(ctx, services.ProductIDs(lines))
	if err != nil {
		return nil, errs.WrapInternal("load products", err)
	}

	items, err := h.pricer.Price(lines, products)
	if err != nil {
		return nil, err
	}

	o, err := order.NewOrder(kernel.NewUUID(), cmd.BuyerID(), items, now())
	if err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return nil, errs.NewInternalError("create order", err)
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, errs.NewInternalError("commit order", err)
	}

	return o, nil
}
