package commands

import (
	"context"
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/user"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"
)

// RegisterUserCommandHandler creates accounts with a hashed password.
// A taken email fails with errs.ErrObjectAlreadyExists.
type RegisterUserCommandHandler struct {
	uowFactory UserUoWFactory
	hasher     ports.PasswordHasher
}

func NewRegisterUserCommandHandler(uowFactory UserUoWFactory, hasher ports.PasswordHasher) RegisterUserCommandHandler {
	return RegisterUserCommandHandler{
		uowFactory: uowFactory,
		hasher:     hasher,
	}
}

func (h *RegisterUserCommandHandler) Handle(ctx context.Context, cmd RegisterUserCommand) (*user.User, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	hash, err := h.hasher.Hash(cmd.Password())
	if err != nil {
		return nil, errs.WrapInternal("hash password", err)
	}

	u, err := user.NewUser(kernel.NewUUID(), cmd.Profile(), hash, now())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, errs.WrapInternal("begin transaction", err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	userRepo := uow.UserRepository()
	if err = ensureEmailIsFree(ctx, userRepo, u.Email()); err != nil {
		return nil, err
	}

	if err = userRepo.Add(ctx, u); err != nil {
		return nil, errs.WrapInternal("create user", err)
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, errs.NewInternalError("commit user", err)
	}

	return u, nil
}

func ensureEmailIsFree(ctx context.Context, repo ports.UserRepository, email string) error {
	_, err := repo.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return errs.NewObjectAlreadyExistsError("email", email)
	case errors.Is(err, errs.ErrObjectNotFound):
		return nil
	default:
		return errs.WrapInternal("check email", err)
	}
}
