package queries

import (
	"errors"

	"storefront/internal/core/domain/model/access"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/guard"
)

var ErrListUserOrdersQueryIsNotConstructed = errors.New(
	"ListUserOrdersQuery must be created via NewListUserOrdersQuery constructor",
)

// ListUserOrdersQuery lists every order of a user, oldest first.
type ListUserOrdersQuery struct {
	requester *access.Principal
	userID    kernel.UUID

	guard guard.ConstructorGuard
}

// NewListUserOrdersQuery creates the query. requester may be nil.
func NewListUserOrdersQuery(requester *access.Principal, userID kernel.UUID) (ListUserOrdersQuery, error) {
	if err := userID.Validate(); err != nil {
		return ListUserOrdersQuery{}, err
	}

	return ListUserOrdersQuery{requester: requester, userID: userID, guard: guard.NewConstructorGuard()}, nil
}

func (q ListUserOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListUserOrdersQueryIsNotConstructed)
}

func (q ListUserOrdersQuery) Requester() *access.Principal {
	return q.requester
}

func (q ListUserOrdersQuery) UserID() kernel.UUID {
	return q.userID
}
