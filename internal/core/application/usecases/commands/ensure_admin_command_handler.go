package commands

import (
	"context"
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/user"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"
)

// EnsureAdminCommandHandler creates the bootstrap admin, or grants admin rights
// and resets the password when the email is already registered.
type EnsureAdminCommandHandler struct {
	uowFactory UserUoWFactory
	hasher     ports.PasswordHasher
}

func NewEnsureAdminCommandHandler(uowFactory UserUoWFactory, hasher ports.PasswordHasher) EnsureAdminCommandHandler {
	return EnsureAdminCommandHandler{uowFactory: uowFactory, hasher: hasher}
}

func (h *EnsureAdminCommandHandler) Handle(ctx context.Context, cmd EnsureAdminCommand) (*user.User, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	hash, err := h.hasher.Hash(cmd.Password())
	if err != nil {
		return nil, errs.WrapInternal("hash password", err)
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, errs.WrapInternal("begin transaction", err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	userRepo := uow.UserRepository()
	u, err := userRepo.GetByEmail(ctx, cmd.Email())
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		u, err = user.NewUser(kernel.NewUUID(), user.Profile{
			FirstName: "Store",
			LastName:  "Admin",
			Email:     cmd.Email(),
		}, hash, now())
		if err != nil {
			return nil, err
		}
		u.GrantAdmin()
		err = userRepo.Add(ctx, u)
	case err == nil:
		u.GrantAdmin()
		if err = u.ChangePasswordHash(hash); err != nil {
			return nil, err
		}
		err = userRepo.Update(ctx, u)
	}
	if err != nil {
		return nil, errs.WrapInternal("save admin", err)
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, errs.NewInternalError("commit admin", err)
	}

	return u, nil
}
