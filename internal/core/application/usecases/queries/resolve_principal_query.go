package queries

import (
	"errors"

	"storefront/internal/pkg/guard"
)

var ErrResolvePrincipalQueryIsNotConstructed = errors.New(
	"ResolvePrincipalQuery must be created via NewResolvePrincipalQuery constructor",
)

// ResolvePrincipalQuery turns a bearer access token into a Principal.
type ResolvePrincipalQuery struct {
	token string
	guard guard.ConstructorGuard
}

func NewResolvePrincipalQuery(token string) ResolvePrincipalQuery {
	return ResolvePrincipalQuery{token: token, guard: guard.NewConstructorGuard()}
}

func (q ResolvePrincipalQuery) Validate() error {
	return q.guard.Validate(ErrResolvePrincipalQueryIsNotConstructed)
}
