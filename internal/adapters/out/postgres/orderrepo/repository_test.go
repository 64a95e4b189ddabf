package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"storefront/internal/adapters/out/postgres/dbtest"
	"storefront/internal/adapters/out/postgres/orderrepo"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type recordingTracker struct {
	tracked []kernel.UUID
}

func (r *recordingTracker) TrackAggregate(id kernel.UUID, _ any) {
	r.tracked = append(r.tracked, id)
}

func newOrder(t *testing.T, db *gorm.DB, userID kernel.UUID) *order.Order {
	t.Helper()

	categoryID := dbtest.SeedCategory(t, db, "c-"+kernel.NewUUID().String()[:8])
	first := dbtest.SeedProduct(t, db, categoryID, "p-"+kernel.NewUUID().String()[:8], "10.50", true)
	second := dbtest.SeedProduct(t, db, categoryID, "p-"+kernel.NewUUID().String()[:8], "3.00", true)

	price1, err := kernel.MoneyFromString("10.50")
	require.NoError(t, err)
	price2, err := kernel.MoneyFromString("3.00")
	require.NoError(t, err)

	item1, err := order.NewItem(second, 3, price2)
	require.NoError(t, err)
	item2, err := order.NewItem(first, 2, price1)
	require.NoError(t, err)

	o, err := order.NewOrder(kernel.NewUUID(), userID, []*order.Item{item1, item2},
		time.Now().UTC().Truncate(time.Microsecond))
	require.NoError(t, err)
	return o
}

func TestGormOrderRepository_AddAndGet(t *testing.T) {
	ctx := context.Background()
	db := dbtest.NewSQLite(t)
	tracker := &recordingTracker{}
	repo := orderrepo.NewGormOrderRepository(db, tracker)

	userID := dbtest.SeedUser(t, db, false)
	o := newOrder(t, db, userID)

	require.NoError(t, repo.Add(ctx, o))
	assert.Equal(t, []kernel.UUID{o.ID()}, tracker.tracked)

	got, err := repo.Get(ctx, o.ID())
	require.NoError(t, err)

	assert.True(t, got.ID().IsEqual(o.ID()))
	assert.True(t, got.UserID().IsEqual(userID))
	assert.Equal(t, order.Open, got.Status())
	assert.Equal(t, "30.00", got.Total().String())
	assert.True(t, got.CreatedAt().Equal(o.CreatedAt()))
	assert.Empty(t, got.DomainEvents(), "restored orders carry no events")

	require.Len(t, got.Items(), 2)
	for i, item := range o.Items() {
		assert.True(t, got.Items()[i].ID().IsEqual(item.ID()), "items keep placement order")
		assert.True(t, got.Items()[i].Price().IsEqual(item.Price()))
		assert.Equal(t, item.Quantity(), got.Items()[i].Quantity())
	}
}

func TestGormOrderRepository_Get(t *testing.T) {
	db := dbtest.NewSQLite(t)
	repo := orderrepo.NewGormOrderRepository(db, &recordingTracker{})

	t.Run("unknown id is not found", func(t *testing.T) {
		_, err := repo.Get(context.Background(), kernel.NewUUID())
		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("zero id is rejected", func(t *testing.T) {
		_, err := repo.Get(context.Background(), kernel.UUID{})
		assert.Error(t, err)
	})
}

func TestGormOrderRepository_Update(t *testing.T) {
	ctx := context.Background()
	db := dbtest.NewSQLite(t)
	repo := orderrepo.NewGormOrderRepository(db, &recordingTracker{})

	o := newOrder(t, db, dbtest.SeedUser(t, db, false))
	require.NoError(t, repo.Add(ctx, o))

	t.Run("status and updated_at are written", func(t *testing.T) {
		at := o.CreatedAt().Add(time.Hour)
		require.NoError(t, o.Cancel(at))
		require.NoError(t, repo.Update(ctx, o))

		got, err := repo.Get(ctx, o.ID())
		require.NoError(t, err)
		assert.Equal(t, order.Canceled, got.Status())
		assert.True(t, got.UpdatedAt().Equal(at))
		assert.Len(t, got.Items(), 2)
	})

	t.Run("missing row is not found", func(t *testing.T) {
		ghost := newOrder(t, db, dbtest.SeedUser(t, db, false))
		err := repo.Update(ctx, ghost)
		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}

func TestGormOrderRepository_ExistsForUser(t *testing.T) {
	ctx := context.Background()
	db := dbtest.NewSQLite(t)
	repo := orderrepo.NewGormOrderRepository(db, &recordingTracker{})

	buyer := dbtest.SeedUser(t, db, false)
	bystander := dbtest.SeedUser(t, db, false)
	require.NoError(t, repo.Add(ctx, newOrder(t, db, buyer)))

	exists, err := repo.ExistsForUser(ctx, buyer)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsForUser(ctx, bystander)
	require.NoError(t, err)
	assert.False(t, exists)
}
