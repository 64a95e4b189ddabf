package dbtest

import (
	"testing"
	"time"

	"storefront/internal/adapters/out/postgres/catalogrepo"
	"storefront/internal/adapters/out/postgres/userrepo"
	"storefront/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// SeedUser inserts an account and returns its id.
func SeedUser(t testing.TB, db *gorm.DB, isAdmin bool) kernel.UUID {
	t.Helper()

	id := uuid.New()
	require.NoError(t, db.Create(&userrepo.UserDTO{
		ID:           id,
		FirstName:    "Test",
		LastName:     "User",
		Email:        id.String() + "@example.com",
		PasswordHash: "hash",
		IsAdmin:      isAdmin,
		CreatedAt:    time.Now().UTC().Truncate(time.Microsecond),
	}).Error)

	return mustUUID(t, id)
}

// SeedCategory inserts a category with the given slug and returns its id.
func SeedCategory(t testing.TB, db *gorm.DB, slug string) kernel.UUID {
	t.Helper()

	id := uuid.New()
	require.NoError(t, db.Create(&catalogrepo.CategoryDTO{
		ID:       id,
		Name:     slug,
		Slug:     slug,
		ImageURL: "/uploads/" + slug + ".png",
	}).Error)

	return mustUUID(t, id)
}

// SeedProduct inserts a product priced at price and returns its id.
func SeedProduct(t testing.TB, db *gorm.DB, categoryID kernel.UUID, slug, price string, active bool) kernel.UUID {
	t.Helper()

	id := uuid.New()
	require.NoError(t, db.Omit("Category").Create(&catalogrepo.ProductDTO{
		ID:          id,
		Name:        slug,
		Slug:        slug,
		Description: "about " + slug,
		Price:       decimal.RequireFromString(price),
		CategoryID:  categoryID.Bytes(),
		IsActive:    active,
	}).Error)

	return mustUUID(t, id)
}

// SetProductPrice changes a catalog price the way an admin update would.
func SetProductPrice(t testing.TB, db *gorm.DB, productID kernel.UUID, price string) {
	t.Helper()

	require.NoError(t, db.Model(&catalogrepo.ProductDTO{}).
		Where("id = ?", productID.Bytes()).
		Update("price", decimal.RequireFromString(price)).Error)
}

func mustUUID(t testing.TB, id uuid.UUID) kernel.UUID {
	t.Helper()

	v, err := kernel.UUIDFromGoogle(id)
	require.NoError(t, err)
	return v
}
