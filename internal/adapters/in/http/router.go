package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// RouterConfig holds what NewRouter needs besides the server itself.
type RouterConfig struct {
	Logger    *slog.Logger
	Registry  prometheus.Registerer
	Gatherer  prometheus.Gatherer
	UploadDir string
	// Spec is loaded with LoadSpec when nil.
	Spec *openapi3.T
}

// NewRouter builds the echo instance serving the REST API, docs, metrics and uploaded images.
func NewRouter(server *Server, cfg RouterConfig) (*echo.Echo, error) {
	if server == nil {
		return nil, errors.New("server is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Registry == nil || cfg.Gatherer == nil {
		reg := prometheus.NewRegistry()
		cfg.Registry, cfg.Gatherer = reg, reg
	}

	doc := cfg.Spec
	if doc == nil {
		var err error
		if doc, err = LoadSpec(context.Background()); err != nil {
			return nil, err
		}
	}

	validate, err := OpenAPIValidator(doc)
	if err != nil {
		return nil, err
	}
	metrics, err := NewMetrics(cfg.Registry)
	if err != nil {
		return nil, err
	}
	if err := registerSwaggerDoc(doc); err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = newRequestValidator()
	e.HTTPErrorHandler = errorHandler

	e.Use(middleware.RequestID())
	e.Use(RequestLogger(cfg.Logger.With("component", "http")))
	e.Use(metrics.Middleware())
	e.Use(middleware.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})))
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	if cfg.UploadDir != "" {
		e.Static("/uploads", cfg.UploadDir)
	}

	api := e.Group("/api/v1",
		Authenticate(server.h.ResolvePrincipal),
		RequirePrincipal(orderRoutes),
		validate,
	)
	registerRoutes(api, server)

	return e, nil
}

// orderRoutes answer 401 to anonymous callers before any request validation.
var orderRoutes = map[string]bool{
	"/api/v1/orders":             true,
	"/api/v1/orders/:id":         true,
	"/api/v1/orders/:id/cancel":  true,
	"/api/v1/orders/:id/deliver": true,
	"/api/v1/users/:id/orders":   true,
}

func registerRoutes(api *echo.Group, s *Server) {
	api.POST("/auth/register", s.Register)
	api.POST("/auth/login", s.Login)
	api.POST("/auth/refresh", s.Refresh)

	api.GET("/categories", s.ListCategories)
	api.POST("/categories", s.CreateCategory)
	api.GET("/categories/:slug", s.GetCategory)
	api.PUT("/categories/:slug", s.UpdateCategory)
	api.DELETE("/categories/:slug", s.DeleteCategory)
	api.PATCH("/categories/:slug/image", s.ReplaceCategoryImage)
	api.GET("/categories/:slug/products", s.ListCategoryProducts)

	api.POST("/products", s.CreateProduct)
	api.GET("/products/:slug", s.GetProduct)
	api.PUT("/products/:slug", s.UpdateProduct)
	api.PATCH("/products/:slug/image", s.ReplaceProductImage)
	api.PATCH("/products/:slug/activate", s.ActivateProduct)
	api.PATCH("/products/:slug/deactivate", s.DeactivateProduct)

	api.GET("/users/:id", s.GetUser)
	api.DELETE("/users/:id", s.DeleteUser)
	api.GET("/users/:id/orders", s.ListUserOrders)

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/:id", s.GetOrder)
	api.PATCH("/orders/:id/cancel", s.CancelOrder)
	api.PATCH("/orders/:id/deliver", s.DeliverOrder)
}
