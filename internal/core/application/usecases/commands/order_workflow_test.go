package commands_test

import (
	"context"
	"sync"
	"testing"

	postgres_adapter "storefront/internal/adapters/out/postgres"
	"storefront/internal/adapters/out/postgres/dbtest"
	"storefront/internal/adapters/out/postgres/orderrepo"
	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/services"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []kernel.DomainEvent
}

func (p *recordingPublisher) Publish(_ context.Context, events ...kernel.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, events...)
	return nil
}

func (p *recordingPublisher) names() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	names := make([]string, 0, len(p.events))
	for _, e := range p.events {
		names = append(names, e.Name())
	}
	return names
}

type gormOrderUoWFactory struct {
	factory *postgres_adapter.GormUnitOfWorkFactory
}

func (f gormOrderUoWFactory) Create() commands.OrderUoW {
	return f.factory.Create()
}

type OrderWorkflowSuite struct {
	suite.Suite

	db        *gorm.DB
	publisher *recordingPublisher

	create  commands.CreateOrderCommandHandler
	cancel  commands.CancelOrderCommandHandler
	deliver commands.MarkOrderDeliveredCommandHandler

	buyer    kernel.UUID
	other    kernel.UUID
	admin    kernel.UUID
	product  kernel.UUID
	inactive kernel.UUID
}

func TestOrderWorkflowSuite(t *testing.T) {
	suite.Run(t, new(OrderWorkflowSuite))
}

func (s *OrderWorkflowSuite) SetupTest() {
	s.db = dbtest.NewSQLite(s.T())
	s.publisher = &recordingPublisher{}

	factory := gormOrderUoWFactory{factory: postgres_adapter.NewGormUnitOfWorkFactory(s.db, s.publisher, nil)}
	s.create = commands.NewCreateOrderCommandHandler(factory)
	s.cancel = commands.NewCancelOrderCommandHandler(factory)
	s.deliver = commands.NewMarkOrderDeliveredCommandHandler(factory)

	s.buyer = dbtest.SeedUser(s.T(), s.db, false)
	s.other = dbtest.SeedUser(s.T(), s.db, false)
	s.admin = dbtest.SeedUser(s.T(), s.db, true)

	category := dbtest.SeedCategory(s.T(), s.db, "tools")
	s.product = dbtest.SeedProduct(s.T(), s.db, category, "hammer", "10.00", true)
	s.inactive = dbtest.SeedProduct(s.T(), s.db, category, "old-saw", "7.00", false)
}

func (s *OrderWorkflowSuite) place(lines ...services.Line) *order.Order {
	t := s.T()
	cmd, err := commands.NewCreateOrderCommand(newTestPrincipal(t, s.buyer, false), s.buyer, lines)
	require.NoError(t, err)

	o, err := s.create.Handle(context.Background(), cmd)
	require.NoError(t, err)
	return o
}

func (s *OrderWorkflowSuite) orderCount() int64 {
	var n int64
	require.NoError(s.T(), s.db.Model(&orderrepo.OrderDTO{}).Count(&n).Error)
	return n
}

func (s *OrderWorkflowSuite) itemCount() int64 {
	var n int64
	require.NoError(s.T(), s.db.Model(&orderrepo.OrderItemDTO{}).Count(&n).Error)
	return n
}

func (s *OrderWorkflowSuite) TestPlaceOrderForSelf() {
	o := s.place(services.Line{ProductID: s.product, Quantity: 2})

	s.Equal(order.Open, o.Status())
	s.Equal("20.00", o.Total().String())
	s.Require().Len(o.Items(), 1)
	s.Equal("10.00", o.Items()[0].Price().String())
	s.Equal(2, o.Items()[0].Quantity())
	s.Equal(int64(1), s.orderCount())
	s.Equal([]string{order.PlacedEventName}, s.publisher.names())
}

func (s *OrderWorkflowSuite) TestZeroQuantityPersistsNothing() {
	cmd, err := commands.NewCreateOrderCommand(newTestPrincipal(s.T(), s.buyer, false), s.buyer, []services.Line{
		{ProductID: s.product, Quantity: 0},
	})
	s.Require().NoError(err)

	_, err = s.create.Handle(context.Background(), cmd)

	s.Equal(errs.KindInvalidArgument, errs.KindOf(err))
	s.Zero(s.orderCount())
	s.Zero(s.itemCount())
	s.Empty(s.publisher.names())
}

func (s *OrderWorkflowSuite) TestInvalidLineAfterValidOnesPersistsNothing() {
	cmd, err := commands.NewCreateOrderCommand(newTestPrincipal(s.T(), s.buyer, false), s.buyer, []services.Line{
		{ProductID: s.product, Quantity: 1},
		{ProductID: s.inactive, Quantity: 1},
	})
	s.Require().NoError(err)

	_, err = s.create.Handle(context.Background(), cmd)

	s.Equal(errs.KindInvalidArgument, errs.KindOf(err))
	s.Zero(s.orderCount())
	s.Zero(s.itemCount())
}

func (s *OrderWorkflowSuite) TestFailedItemInsertPersistsNothing() {
	s.Require().NoError(s.db.Exec(`CREATE TRIGGER fail_item_insert BEFORE INSERT ON order_items
		BEGIN SELECT RAISE(ABORT, 'disk full'); END`).Error)
	cmd, err := commands.NewCreateOrderCommand(newTestPrincipal(s.T(), s.buyer, false), s.buyer, []services.Line{
		{ProductID: s.product, Quantity: 3},
	})
	s.Require().NoError(err)

	o, err := s.create.Handle(context.Background(), cmd)

	s.Nil(o)
	s.Equal(errs.KindInternal, errs.KindOf(err))
	s.Zero(s.orderCount())
	s.Zero(s.itemCount())
	s.Empty(s.publisher.names())
}

func (s *OrderWorkflowSuite) TestPriceSnapshotSurvivesCatalogChange() {
	o := s.place(services.Line{ProductID: s.product, Quantity: 1})

	dbtest.SetProductPrice(s.T(), s.db, s.product, "99.00")

	repo := orderrepo.NewGormOrderRepository(s.db, noopTracker{})
	stored, err := repo.Get(context.Background(), o.ID())
	s.Require().NoError(err)
	s.Equal("10.00", stored.Items()[0].Price().String())
	s.Equal("10.00", stored.Total().String())
}

func (s *OrderWorkflowSuite) TestAdminDeliversThenOwnerCannotCancel() {
	o := s.place(services.Line{ProductID: s.product, Quantity: 1})

	deliverCmd, err := commands.NewMarkOrderDeliveredCommand(newTestPrincipal(s.T(), s.admin, true), o.ID())
	s.Require().NoError(err)
	delivered, err := s.deliver.Handle(context.Background(), deliverCmd)
	s.Require().NoError(err)
	s.Equal(order.Delivered, delivered.Status())

	cancelCmd, err := commands.NewCancelOrderCommand(newTestPrincipal(s.T(), s.buyer, false), o.ID())
	s.Require().NoError(err)
	_, err = s.cancel.Handle(context.Background(), cancelCmd)

	s.Equal(errs.KindInvalidState, errs.KindOf(err))
	s.Equal([]string{order.PlacedEventName, order.DeliveredEventName}, s.publisher.names())
}

func (s *OrderWorkflowSuite) TestCancelIsIdempotent() {
	o := s.place(services.Line{ProductID: s.product, Quantity: 1})
	owner := newTestPrincipal(s.T(), s.buyer, false)

	for range 2 {
		cmd, err := commands.NewCancelOrderCommand(owner, o.ID())
		s.Require().NoError(err)
		canceled, err := s.cancel.Handle(context.Background(), cmd)
		s.Require().NoError(err)
		s.Equal(order.Canceled, canceled.Status())
	}

	s.Equal([]string{order.PlacedEventName, order.CanceledEventName}, s.publisher.names())
}

func (s *OrderWorkflowSuite) TestCanceledOrderCanStillBeDelivered() {
	o := s.place(services.Line{ProductID: s.product, Quantity: 1})

	cancelCmd, err := commands.NewCancelOrderCommand(newTestPrincipal(s.T(), s.admin, true), o.ID())
	s.Require().NoError(err)
	_, err = s.cancel.Handle(context.Background(), cancelCmd)
	s.Require().NoError(err)

	deliverCmd, err := commands.NewMarkOrderDeliveredCommand(newTestPrincipal(s.T(), s.admin, true), o.ID())
	s.Require().NoError(err)
	delivered, err := s.deliver.Handle(context.Background(), deliverCmd)
	s.Require().NoError(err)
	s.Equal(order.Delivered, delivered.Status())

	again, err := s.deliver.Handle(context.Background(), deliverCmd)
	s.Require().NoError(err)
	s.Equal(order.Delivered, again.Status())
}

func (s *OrderWorkflowSuite) TestAuthorization() {
	o := s.place(services.Line{ProductID: s.product, Quantity: 1})

	tests := []struct {
		name string
		run  func() error
		kind errs.Kind
	}{
		{
			name: "stranger cannot cancel",
			run: func() error {
				cmd, err := commands.NewCancelOrderCommand(newTestPrincipal(s.T(), s.other, false), o.ID())
				s.Require().NoError(err)
				_, err = s.cancel.Handle(context.Background(), cmd)
				return err
			},
			kind: errs.KindForbidden,
		},
		{
			name: "owner cannot deliver",
			run: func() error {
				cmd, err := commands.NewMarkOrderDeliveredCommand(newTestPrincipal(s.T(), s.buyer, false), o.ID())
				s.Require().NoError(err)
				_, err = s.deliver.Handle(context.Background(), cmd)
				return err
			},
			kind: errs.KindForbidden,
		},
		{
			name: "anonymous cannot cancel",
			run: func() error {
				cmd, err := commands.NewCancelOrderCommand(nil, o.ID())
				s.Require().NoError(err)
				_, err = s.cancel.Handle(context.Background(), cmd)
				return err
			},
			kind: errs.KindUnauthenticated,
		},
		{
			name: "anonymous cannot deliver an unknown order",
			run: func() error {
				cmd, err := commands.NewMarkOrderDeliveredCommand(nil, kernel.NewUUID())
				s.Require().NoError(err)
				_, err = s.deliver.Handle(context.Background(), cmd)
				return err
			},
			kind: errs.KindUnauthenticated,
		},
		{
			name: "admin delivering an unknown order",
			run: func() error {
				cmd, err := commands.NewMarkOrderDeliveredCommand(newTestPrincipal(s.T(), s.admin, true), kernel.NewUUID())
				s.Require().NoError(err)
				_, err = s.deliver.Handle(context.Background(), cmd)
				return err
			},
			kind: errs.KindNotFound,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			assert.Equal(s.T(), tt.kind, errs.KindOf(tt.run()))
		})
	}

	s.Equal([]string{order.PlacedEventName}, s.publisher.names())
}

type noopTracker struct{}

func (noopTracker) TrackAggregate(kernel.UUID, any) {}
