package queries

import (
	"context"

	"storefront/internal/core/domain/model/access"
	"storefront/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetOrderQueryHandler reads a single order. Checks run in order: requester
// present, order exists, requester is owner or admin.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single order reads.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return OrderResponse{}, err
	}

	if err := access.RequireAuthenticated(query.Requester()); err != nil {
		return OrderResponse{}, err
	}

	orders, err := scanOrders(ctx, h.db, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes())
	if err != nil {
		return OrderResponse{}, errs.NewInternalError("read order", err)
	}
	if len(orders) == 0 {
		return OrderResponse{}, errs.NewObjectNotFoundError("order", query.OrderID())
	}

	resp := orders[0]
	if err = access.RequireOwnerOrAdmin(query.Requester(), resp.UserID, "view order"); err != nil {
		return OrderResponse{}, err
	}

	return resp, nil
}
