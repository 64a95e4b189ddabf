// Package http exposes the application over a JSON REST API built on echo.
// Handlers translate requests into commands and queries and render results;
// every failure is rendered as an Error body with a status derived from errs.KindOf.
package http

import (
	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
)

// Handlers groups the use cases the server delegates to.
type Handlers struct {
	// Command handlers
	RegisterUser  commands.RegisterUserCommandHandler
	Login         commands.LoginCommandHandler
	RefreshToken  commands.RefreshTokenCommandHandler
	DeleteAccount commands.DeleteAccountCommandHandler
	Categories    commands.CategoryCommandHandlers
	Products      commands.ProductCommandHandlers
	CreateOrder   commands.CreateOrderCommandHandler
	CancelOrder   commands.CancelOrderCommandHandler
	MarkDelivered commands.MarkOrderDeliveredCommandHandler

	// Query handlers
	Catalog          queries.CatalogQueryHandlers
	GetUser          queries.GetUserQueryHandler
	GetOrder         queries.GetOrderQueryHandler
	ListUserOrders   queries.ListUserOrdersQueryHandler
	ResolvePrincipal queries.ResolvePrincipalQueryHandler
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	h Handlers
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(handlers Handlers) *Server {
	return &Server{h: handlers}
}
