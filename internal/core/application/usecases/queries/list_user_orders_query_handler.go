package queries

import (
	"context"

	"storefront/internal/core/domain/model/access"
	"storefront/internal/pkg/errs"

	"gorm.io/gorm"
)

// ListUserOrdersQueryHandler lists a user's orders for that user or an admin.
// An unknown user simply has no orders.
type ListUserOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListUserOrdersQueryHandler(db *gorm.DB) ListUserOrdersQueryHandler {
	return ListUserOrdersQueryHandler{db: db}
}

func (h ListUserOrdersQueryHandler) Handle(ctx context.Context, query ListUserOrdersQuery) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if err := access.RequireOwnerOrAdmin(query.Requester(), query.UserID(), "list orders"); err != nil {
		return nil, err
	}

	orders, err := scanOrders(ctx, h.db, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE user_id = ?
		ORDER BY created_at, id
	`, query.UserID().Bytes())
	if err != nil {
		return nil, errs.NewInternalError("list orders", err)
	}

	return orders, nil
}
