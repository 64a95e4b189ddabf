package commands

import (
	"context"
	"time"

	"storefront/internal/core/domain/model/access"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"
)

// CancelOrderCommandHandler cancels open orders for their owner or an admin.
// Canceling a canceled order returns it unchanged without writing; canceling a
// delivered order fails with errs.ErrInvalidState.
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewCancelOrderCommandHandler(uowFactory OrderUoWFactory) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the command and returns the order in its resulting state.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) (*order.Order, error) {
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

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, errs.WrapInternal("load order", err)
	}

	if err = access.RequireOwnerOrAdmin(cmd.Requester(), o.UserID(), "cancel order"); err != nil {
		return nil, err
	}

	return applyTransition(ctx, uow, o, o.Cancel)
}

// applyTransition runs a status change and persists it only if the status moved.
func applyTransition(ctx context.Context, uow OrderUoW, o *order.Order, transition func(at time.Time) error) (*order.Order, error) {
	before := o.Status()
	if err := transition(now()); err != nil {
		return nil, err
	}
	if o.Status() == before {
		return o, nil
	}

	if err := uow.OrderRepository().Update(ctx, o); err != nil {
		return nil, errs.NewInternalError("update order", err)
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, errs.NewInternalError("commit order", err)
	}

	return o, nil
}
