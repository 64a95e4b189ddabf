package cmd

import (
	"context"
	"log/slog"

	httpin "storefront/internal/adapters/in/http"
	"storefront/internal/adapters/out/postgres"
	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/ports"
	"storefront/internal/jobs"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

// Dependencies are the infrastructure pieces main builds from Config.
type Dependencies struct {
	DB            *gorm.DB
	Tokens        ports.TokenIssuer
	RefreshTokens ports.RefreshTokenStore
	Hasher        ports.PasswordHasher
	Images        ports.ImageStorage
	Publisher     ports.EventPublisher
	Logger        *slog.Logger
}

type CompositionRoot struct {
	cfg        Config
	deps       Dependencies
	uowFactory *postgres.GormUnitOfWorkFactory
}

func NewCompositionRoot(cfg Config, deps Dependencies) CompositionRoot {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	return CompositionRoot{
		cfg:        cfg,
		deps:       deps,
		uowFactory: postgres.NewGormUnitOfWorkFactory(deps.DB, deps.Publisher, deps.Logger),
	}
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) catalogUoWFactory() commands.CatalogUoWFactory {
	return FuncCatalogUoWFactory(func() commands.CatalogUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) userUoWFactory() commands.UserUoWFactory {
	return FuncUserUoWFactory(func() commands.UserUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateRegisterUserCommandHandler() commands.RegisterUserCommandHandler {
	return commands.NewRegisterUserCommandHandler(c.userUoWFactory(), c.deps.Hasher)
}

func (c *CompositionRoot) CreateLoginCommandHandler() commands.LoginCommandHandler {
	return commands.NewLoginCommandHandler(c.userUoWFactory(), c.deps.Hasher, c.deps.Tokens, c.deps.RefreshTokens)
}

func (c *CompositionRoot) CreateRefreshTokenCommandHandler() commands.RefreshTokenCommandHandler {
	return commands.NewRefreshTokenCommandHandler(c.userUoWFactory(), c.deps.Tokens, c.deps.RefreshTokens)
}

func (c *CompositionRoot) CreateDeleteAccountCommandHandler() commands.DeleteAccountCommandHandler {
	return commands.NewDeleteAccountCommandHandler(c.userUoWFactory())
}

func (c *CompositionRoot) CreateEnsureAdminCommandHandler() commands.EnsureAdminCommandHandler {
	return commands.NewEnsureAdminCommandHandler(c.userUoWFactory(), c.deps.Hasher)
}

func (c *CompositionRoot) CreateCategoryCommandHandlers() commands.CategoryCommandHandlers {
	return commands.NewCategoryCommandHandlers(c.catalogUoWFactory(), c.deps.Images)
}

func (c *CompositionRoot) CreateProductCommandHandlers() commands.ProductCommandHandlers {
	return commands.NewProductCommandHandlers(c.catalogUoWFactory(), c.deps.Images)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateMarkOrderDeliveredCommandHandler() commands.MarkOrderDeliveredCommandHandler {
	return commands.NewMarkOrderDeliveredCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateSweepOrphanImagesCommandHandler() commands.SweepOrphanImagesCommandHandler {
	referenced := queries.NewReferencedImagesQueryHandler(c.deps.DB)
	return commands.NewSweepOrphanImagesCommandHandler(c.deps.Images, func(ctx context.Context) (map[string]struct{}, error) {
		return referenced.Handle(ctx, queries.NewReferencedImagesQuery())
	})
}

func (c *CompositionRoot) CreateCatalogQueryHandlers() queries.CatalogQueryHandlers {
	return queries.NewCatalogQueryHandlers(c.deps.DB)
}

func (c *CompositionRoot) CreateGetUserQueryHandler() queries.GetUserQueryHandler {
	return queries.NewGetUserQueryHandler(c.deps.DB)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.deps.DB)
}

func (c *CompositionRoot) CreateListUserOrdersQueryHandler() queries.ListUserOrdersQueryHandler {
	return queries.NewListUserOrdersQueryHandler(c.deps.DB)
}

func (c *CompositionRoot) CreateResolvePrincipalQueryHandler() queries.ResolvePrincipalQueryHandler {
	return queries.NewResolvePrincipalQueryHandler(c.deps.DB, c.deps.Tokens)
}

// CreateServer wires every use case into the HTTP server.
func (c *CompositionRoot) CreateServer() *httpin.Server {
	return httpin.NewServer(httpin.Handlers{
		RegisterUser:  c.CreateRegisterUserCommandHandler(),
		Login:         c.CreateLoginCommandHandler(),
		RefreshToken:  c.CreateRefreshTokenCommandHandler(),
		DeleteAccount: c.CreateDeleteAccountCommandHandler(),
		Categories:    c.CreateCategoryCommandHandlers(),
		Products:      c.CreateProductCommandHandlers(),
		CreateOrder:   c.CreateCreateOrderCommandHandler(),
		CancelOrder:   c.CreateCancelOrderCommandHandler(),
		MarkDelivered: c.CreateMarkOrderDeliveredCommandHandler(),

		Catalog:          c.CreateCatalogQueryHandlers(),
		GetUser:          c.CreateGetUserQueryHandler(),
		GetOrder:         c.CreateGetOrderQueryHandler(),
		ListUserOrders:   c.CreateListUserOrdersQueryHandler(),
		ResolvePrincipal: c.CreateResolvePrincipalQueryHandler(),
	})
}

// CreateRouter builds the echo instance. reg receives the HTTP metrics and is
// served on /metrics.
func (c *CompositionRoot) CreateRouter(reg *prometheus.Registry) (*echo.Echo, error) {
	return httpin.NewRouter(c.CreateServer(), httpin.RouterConfig{
		Logger:    c.deps.Logger,
		Registry:  reg,
		Gatherer:  reg,
		UploadDir: c.cfg.UploadDir,
	})
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	sweeper := c.CreateSweepOrphanImagesCommandHandler()
	return jobs.NewJobManager(&sweeper, c.cfg.UploadSweepSchedule, c.deps.Logger)
}

// EnsureAdmin creates or promotes the bootstrap administrator when configured.
func (c *CompositionRoot) EnsureAdmin(ctx context.Context) error {
	if c.cfg.AdminEmail == "" {
		return nil
	}

	cmd, err := commands.NewEnsureAdminCommand(c.cfg.AdminEmail, c.cfg.AdminPassword)
	if err != nil {
		return err
	}

	handler := c.CreateEnsureAdminCommandHandler()
	if _, err = handler.Handle(ctx, cmd); err != nil {
		return err
	}
	c.deps.Logger.InfoContext(ctx, "Admin account ensured", "email", cmd.Email())
	return nil
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncCatalogUoWFactory func() commands.CatalogUoW

func (f FuncCatalogUoWFactory) Create() commands.CatalogUoW {
	return f()
}

type FuncUserUoWFactory func() commands.UserUoW

func (f FuncUserUoWFactory) Create() commands.UserUoW {
	return f()
}
