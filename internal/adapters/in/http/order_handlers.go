package http

import (
	"log/slog"
	"net/http"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/services"
	"storefront/internal/pkg/logging"

	"github.com/labstack/echo/v4"
)

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(c echo.Context) error {
	var req CreateOrderRequest
	if err := bindBody(c, &req); err != nil {
		return writeError(c, err)
	}

	lines := make([]services.Line, 0, len(req.Items))
	for _, item := range req.Items {
		lines = append(lines, services.Line{
			ProductID: toKernelUUID(item.ProductID),
			Quantity:  item.Quantity,
		})
	}

	cmd, err := commands.NewCreateOrderCommand(principalFrom(c), toKernelUUID(req.UserID), lines)
	if err != nil {
		return writeError(c, err)
	}

	o, err := s.h.CreateOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, err)
	}

	return s.renderCommitted(c, http.StatusCreated, o)
}

// GetOrder handles GET /api/v1/orders/{id}.
func (s *Server) GetOrder(c echo.Context) error {
	id, err := bindID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	return s.renderOrder(c, http.StatusOK, id)
}

// ListUserOrders handles GET /api/v1/users/{id}/orders.
func (s *Server) ListUserOrders(c echo.Context) error {
	userID, err := bindID(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	query, err := queries.NewListUserOrdersQuery(principalFrom(c), userID)
	if err != nil {
		return writeError(c, err)
	}

	orders, err := s.h.ListUserOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, err)
	}

	response := make([]Order, 0, len(orders))
	for _, o := range orders {
		response = append(response, orderFromView(o))
	}
	return c.JSON(http.StatusOK, response)
}

// CancelOrder handles PATCH /api/v1/orders/{id}/cancel.
func (s *Server) CancelOrder(c echo.Context) error {
	id, err := bindID(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	cmd, err := commands.NewCancelOrderCommand(principalFrom(c), id)
	if err != nil {
		return writeError(c, err)
	}

	o, err := s.h.CancelOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, err)
	}

	return s.renderCommitted(c, http.StatusOK, o)
}

// DeliverOrder handles PATCH /api/v1/orders/{id}/deliver.
func (s *Server) DeliverOrder(c echo.Context) error {
	id, err := bindID(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	cmd, err := commands.NewMarkOrderDeliveredCommand(principalFrom(c), id)
	if err != nil {
		return writeError(c, err)
	}

	o, err := s.h.MarkDelivered.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, err)
	}

	return s.renderCommitted(c, http.StatusOK, o)
}

// renderOrder renders the order view for id.
func (s *Server) renderOrder(c echo.Context, status int, id kernel.UUID) error {
	view, err := s.readOrder(c, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(status, orderFromView(view))
}

// renderCommitted renders an order a command has already committed. When the
// view cannot be read the aggregate itself is rendered with the same status.
func (s *Server) renderCommitted(c echo.Context, status int, o *order.Order) error {
	view, err := s.readOrder(c, o.ID())
	if err != nil {
		logging.FromCtx(c.Request().Context(), slog.Default()).
			Warn("order committed but its view could not be read", "order_id", o.ID().String(), "error", err)
		return c.JSON(status, orderFromDomain(o))
	}
	return c.JSON(status, orderFromView(view))
}

func (s *Server) readOrder(c echo.Context, id kernel.UUID) (queries.OrderResponse, error) {
	query, err := queries.NewGetOrderQuery(principalFrom(c), id)
	if err != nil {
		return queries.OrderResponse{}, err
	}
	return s.h.GetOrder.Handle(c.Request().Context(), query)
}
