package queries

import (
	"context"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderResponse is an order with its items as shown to buyers and admins.
type OrderResponse struct {
	ID        kernel.UUID
	UserID    kernel.UUID
	Status    order.Status
	Total     decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
	Items     []OrderItemResponse
}

// OrderItemResponse is one order line. Price is the snapshot taken at placement;
// the product fields reflect the live catalog.
type OrderItemResponse struct {
	ID          kernel.UUID
	ProductID   kernel.UUID
	ProductName string
	ProductSlug string
	ImageURL    string
	Quantity    int
	Price       decimal.Decimal
}

const orderColumns = `id, user_id, status, total, created_at, updated_at`

// scanOrders runs an order select and attaches items in a second query.
func scanOrders(ctx context.Context, db *gorm.DB, sql string, args ...any) ([]OrderResponse, error) {
	rows, err := db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]OrderResponse, 0)
	index := make(map[uuid.UUID]int)
	ids := make([]uuid.UUID, 0)

	for rows.Next() {
		var (
			id, userID uuid.UUID
			status     string
			resp       OrderResponse
		)
		if err = rows.Scan(&id, &userID, &status, &resp.Total, &resp.CreatedAt, &resp.UpdatedAt); err != nil {
			return nil, err
		}

		if resp.ID, err = kernel.UUIDFromGoogle(id); err != nil {
			return nil, err
		}
		if resp.UserID, err = kernel.UUIDFromGoogle(userID); err != nil {
			return nil, err
		}
		if resp.Status, err = order.StatusFromString(status); err != nil {
			return nil, err
		}
		resp.Items = make([]OrderItemResponse, 0)

		index[id] = len(orders)
		ids = append(ids, id)
		orders = append(orders, resp)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	if len(ids) == 0 {
		return orders, nil
	}

	if err = attachItems(ctx, db, orders, index, ids); err != nil {
		return nil, err
	}
	return orders, nil
}

func attachItems(
	ctx context.Context,
	db *gorm.DB,
	orders []OrderResponse,
	index map[uuid.UUID]int,
	ids []uuid.UUID,
) error {
	rows, err := db.WithContext(ctx).Raw(`
		SELECT
			i.id,
			i.order_id,
			i.product_id,
			p.name,
			p.slug,
			COALESCE(p.image_url, ''),
			i.quantity,
			i.price
		FROM order_items i
		JOIN products p ON p.id = i.product_id
		WHERE i.order_id IN ?
		ORDER BY i.position
	`, ids).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id, orderID, productID uuid.UUID
			item                   OrderItemResponse
		)
		if err = rows.Scan(
			&id,
			&orderID,
			&productID,
			&item.ProductName,
			&item.ProductSlug,
			&item.ImageURL,
			&item.Quantity,
			&item.Price,
		); err != nil {
			return err
		}

		if item.ID, err = kernel.UUIDFromGoogle(id); err != nil {
			return err
		}
		if item.ProductID, err = kernel.UUIDFromGoogle(productID); err != nil {
			return err
		}

		pos, ok := index[orderID]
		if !ok {
			continue
		}
		orders[pos].Items = append(orders[pos].Items, item)
	}

	return rows.Err()
}
