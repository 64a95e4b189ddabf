package commands

import (
	"context"

	"storefront/internal/core/domain/model/access"
	"storefront/internal/pkg/errs"
)

// DeleteAccountCommandHandler deletes accounts that own no orders.
// Orders are never deleted, so an account with orders fails with errs.ErrInvalidState.
type DeleteAccountCommandHandler struct {
	uowFactory UserUoWFactory
}

func NewDeleteAccountCommandHandler(uowFactory UserUoWFactory) DeleteAccountCommandHandler {
	return DeleteAccountCommandHandler{uowFactory: uowFactory}
}

func (h *DeleteAccountCommandHandler) Handle(ctx context.Context, cmd DeleteAccountCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if err := access.RequireAuthenticated(cmd.Requester()); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return errs.WrapInternal("begin transaction", err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	userRepo := uow.UserRepository()
	exists, err := userRepo.Exists(ctx, cmd.UserID())
	if err != nil {
		return errs.WrapInternal("check user", err)
	}
	if !exists {
		return errs.NewObjectNotFoundError("user", cmd.UserID())
	}

	if err = access.RequireOwnerOrAdmin(cmd.Requester(), cmd.UserID(), "delete account"); err != nil {
		return err
	}

	hasOrders, err := uow.OrderRepository().ExistsForUser(ctx, cmd.UserID())
	if err != nil {
		return errs.WrapInternal("check orders", err)
	}
	if hasOrders {
		return errs.NewInvalidStateError("account has orders and cannot be deleted")
	}

	if err = userRepo.Delete(ctx, cmd.UserID()); err != nil {
		return errs.WrapInternal("delete user", err)
	}

	return errs.WrapInternal("commit delete", uow.Commit(ctx))
}
