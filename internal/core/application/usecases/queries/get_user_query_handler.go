package queries

import (
	"context"

	"storefront/internal/core/domain/model/access"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetUserQueryHandler struct {
	db *gorm.DB
}

func NewGetUserQueryHandler(db *gorm.DB) GetUserQueryHandler {
	return GetUserQueryHandler{db: db}
}

func (h GetUserQueryHandler) Handle(ctx context.Context, query GetUserQuery) (UserResponse, error) {
	if err := query.Validate(); err != nil {
		return UserResponse{}, err
	}

	if err := access.RequireAuthenticated(query.requester); err != nil {
		return UserResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, first_name, last_name, email, is_admin, created_at
		FROM users
		WHERE id = ?
	`, query.userID.Bytes()).Rows()
	if err != nil {
		return UserResponse{}, errs.NewInternalError("read user", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return UserResponse{}, errs.NewInternalError("read user", err)
		}
		return UserResponse{}, errs.NewObjectNotFoundError("user", query.userID)
	}

	var (
		id   uuid.UUID
		resp UserResponse
	)
	if err = rows.Scan(&id, &resp.FirstName, &resp.LastName, &resp.Email, &resp.IsAdmin, &resp.CreatedAt); err != nil {
		return UserResponse{}, errs.NewInternalError("read user", err)
	}
	if resp.ID, err = kernel.UUIDFromGoogle(id); err != nil {
		return UserResponse{}, errs.NewInternalError("read user", err)
	}

	if err = access.RequireOwnerOrAdmin(query.requester, resp.ID, "view user"); err != nil {
		return UserResponse{}, err
	}

	return resp, nil
}
