package commands_test

import (
	"context"
	"testing"
	"time"

	"storefront/internal/adapters/out/auth"
	postgres_adapter "storefront/internal/adapters/out/postgres"
	"storefront/internal/adapters/out/postgres/dbtest"
	"storefront/internal/adapters/out/postgres/orderrepo"
	"storefront/internal/adapters/out/tokenstore"
	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/model/user"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type gormUserUoWFactory struct {
	factory *postgres_adapter.GormUnitOfWorkFactory
}

func (f gormUserUoWFactory) Create() commands.UserUoW {
	return f.factory.Create()
}

type accountFixture struct {
	db       *gorm.DB
	register commands.RegisterUserCommandHandler
	login    commands.LoginCommandHandler
	refresh  commands.RefreshTokenCommandHandler
	remove   commands.DeleteAccountCommandHandler
	admin    commands.EnsureAdminCommandHandler
	tokens   *auth.JWTIssuer
}

func newAccountFixture(t *testing.T) accountFixture {
	t.Helper()

	db := dbtest.NewSQLite(t)
	factory := gormUserUoWFactory{factory: postgres_adapter.NewGormUnitOfWorkFactory(db, nil, nil)}
	hasher := auth.NewBcryptHasher(bcrypt.MinCost)
	tokens, err := auth.NewJWTIssuer("an-adequately-long-test-secret-0123456789", time.Minute, time.Hour)
	require.NoError(t, err)
	store := tokenstore.NewMemoryStore()

	return accountFixture{
		db:       db,
		register: commands.NewRegisterUserCommandHandler(factory, hasher),
		login:    commands.NewLoginCommandHandler(factory, hasher, tokens, store),
		refresh:  commands.NewRefreshTokenCommandHandler(factory, tokens, store),
		remove:   commands.NewDeleteAccountCommandHandler(factory),
		admin:    commands.NewEnsureAdminCommandHandler(factory, hasher),
		tokens:   tokens,
	}
}

func (f accountFixture) registerUser(t *testing.T, email string) *user.User {
	t.Helper()

	cmd, err := commands.NewRegisterUserCommand(user.Profile{FirstName: "Ada", LastName: "Lovelace", Email: email}, "correct-horse")
	require.NoError(t, err)
	u, err := f.register.Handle(context.Background(), cmd)
	require.NoError(t, err)
	return u
}

func TestRegisterUserCommandHandler_Handle(t *testing.T) {
	f := newAccountFixture(t)

	u := f.registerUser(t, "Ada@Example.com")

	assert.Equal(t, "ada@example.com", u.Email())
	assert.False(t, u.IsAdmin())
	assert.NotEqual(t, "correct-horse", u.PasswordHash())

	cmd, err := commands.NewRegisterUserCommand(user.Profile{FirstName: "A", LastName: "B", Email: "ada@example.com"}, "another-pass")
	require.NoError(t, err)
	_, err = f.register.Handle(context.Background(), cmd)
	assert.Equal(t, errs.KindConflict, errs.KindOf(err))
}

func TestNewRegisterUserCommand_ShortPassword(t *testing.T) {
	_, err := commands.NewRegisterUserCommand(user.Profile{FirstName: "A", LastName: "B", Email: "a@example.com"}, "short")
	assert.Equal(t, errs.KindInvalidArgument, errs.KindOf(err))
}

func TestLoginAndRefreshRotation(t *testing.T) {
	ctx := context.Background()
	f := newAccountFixture(t)
	u := f.registerUser(t, "grace@example.com")

	loginCmd, err := commands.NewLoginCommand("grace@example.com", "correct-horse")
	require.NoError(t, err)
	pair, err := f.login.Handle(ctx, loginCmd)
	require.NoError(t, err)
	assert.Equal(t, commands.BearerTokenType, pair.TokenType)

	claims, err := f.tokens.ParseAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.True(t, claims.UserID.IsEqual(u.ID()))

	refreshCmd, err := commands.NewRefreshTokenCommand(pair.RefreshToken)
	require.NoError(t, err)
	rotated, err := f.refresh.Handle(ctx, refreshCmd)
	require.NoError(t, err)
	assert.NotEqual(t, pair.RefreshToken, rotated.RefreshToken)

	_, err = f.refresh.Handle(ctx, refreshCmd)
	assert.Equal(t, errs.KindUnauthenticated, errs.KindOf(err), "a refresh token works once")

	accessAsRefresh, err := commands.NewRefreshTokenCommand(pair.AccessToken)
	require.NoError(t, err)
	_, err = f.refresh.Handle(ctx, accessAsRefresh)
	assert.Equal(t, errs.KindUnauthenticated, errs.KindOf(err))
}

func TestLoginCommandHandler_InvalidCredentials(t *testing.T) {
	ctx := context.Background()
	f := newAccountFixture(t)
	f.registerUser(t, "linus@example.com")

	for _, tc := range []struct{ email, password string }{
		{"linus@example.com", "wrong-password"},
		{"nobody@example.com", "correct-horse"},
	} {
		cmd, err := commands.NewLoginCommand(tc.email, tc.password)
		require.NoError(t, err)
		_, err = f.login.Handle(ctx, cmd)
		assert.ErrorIs(t, err, commands.ErrInvalidCredentials)
		assert.Equal(t, errs.KindUnauthenticated, errs.KindOf(err))
	}
}

func TestDeleteAccountCommandHandler_Handle(t *testing.T) {
	ctx := context.Background()
	f := newAccountFixture(t)
	owner := f.registerUser(t, "owner@example.com")
	buyer := f.registerUser(t, "buyer@example.com")
	stranger := f.registerUser(t, "stranger@example.com")

	categoryID := dbtest.SeedCategory(t, f.db, "books")
	productID := dbtest.SeedProduct(t, f.db, categoryID, "novel", "9.99", true)
	price, err := kernel.MoneyFromString("9.99")
	require.NoError(t, err)
	item, err := order.NewItem(productID, 1, price)
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), buyer.ID(), []*order.Item{item}, time.Now().UTC())
	require.NoError(t, err)
	require.NoError(t, orderrepo.NewGormOrderRepository(f.db, noopTracker{}).Add(ctx, o))

	tests := []struct {
		name      string
		requester kernel.UUID
		target    kernel.UUID
		kind      errs.Kind
	}{
		{"stranger cannot delete someone else", stranger.ID(), owner.ID(), errs.KindForbidden},
		{"account with orders is kept", buyer.ID(), buyer.ID(), errs.KindInvalidState},
		{"unknown account", owner.ID(), kernel.NewUUID(), errs.KindNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := commands.NewDeleteAccountCommand(newTestPrincipal(t, tt.requester, false), tt.target)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, errs.KindOf(f.remove.Handle(ctx, cmd)))
		})
	}

	cmd, err := commands.NewDeleteAccountCommand(newTestPrincipal(t, owner.ID(), false), owner.ID())
	require.NoError(t, err)
	require.NoError(t, f.remove.Handle(ctx, cmd))

	loginCmd, err := commands.NewLoginCommand("owner@example.com", "correct-horse")
	require.NoError(t, err)
	_, err = f.login.Handle(ctx, loginCmd)
	assert.ErrorIs(t, err, commands.ErrInvalidCredentials)
}

func TestEnsureAdminCommandHandler_PromotesExistingAccount(t *testing.T) {
	ctx := context.Background()
	f := newAccountFixture(t)
	f.registerUser(t, "root@example.com")

	cmd, err := commands.NewEnsureAdminCommand("root@example.com", "new-admin-pass")
	require.NoError(t, err)
	admin, err := f.admin.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin())

	again, err := f.admin.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.True(t, again.ID().IsEqual(admin.ID()))

	loginCmd, err := commands.NewLoginCommand("root@example.com", "new-admin-pass")
	require.NoError(t, err)
	_, err = f.login.Handle(ctx, loginCmd)
	assert.NoError(t, err)
}
