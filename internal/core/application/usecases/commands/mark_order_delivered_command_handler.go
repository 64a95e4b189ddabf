package commands

import (
	"context"

	"storefront/internal/core/domain/model/access"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"
)

// MarkOrderDeliveredCommandHandler moves open or canceled orders to delivered.
// Only admins may call it; the role is checked before the order is looked up,
// so non-admins get forbidden even for unknown ids. Delivering a delivered order
// returns it unchanged without writing.
type MarkOrderDeliveredCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewMarkOrderDeliveredCommandHandler(uowFactory OrderUoWFactory) MarkOrderDeliveredCommandHandler {
	return MarkOrderDeliveredCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h *MarkOrderDeliveredCommandHandler) Handle(
	ctx context.Context,
	cmd MarkOrderDeliveredCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	if err := access.RequireAdmin(cmd.Requester(), "deliver order"); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, errs.WrapInternal("begin transaction", err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, errs.WrapInternal("load order", err)
	}

	return applyTransition(ctx, uow, o, o.MarkDelivered)
}
