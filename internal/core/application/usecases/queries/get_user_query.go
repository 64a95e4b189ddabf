package queries

import (
	"errors"
	"time"

	"storefront/internal/core/domain/model/access"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/guard"
)

var ErrGetUserQueryIsNotConstructed = errors.New("GetUserQuery must be created via NewGetUserQuery constructor")

// GetUserQuery reads a profile for the user or an admin.
type GetUserQuery struct {
	requester *access.Principal
	userID    kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetUserQuery(requester *access.Principal, userID kernel.UUID) (GetUserQuery, error) {
	if err := userID.Validate(); err != nil {
		return GetUserQuery{}, err
	}

	return GetUserQuery{requester: requester, userID: userID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetUserQuery) Validate() error {
	return q.guard.Validate(ErrGetUserQueryIsNotConstructed)
}

// UserResponse is a profile without credentials.
type UserResponse struct {
	ID        kernel.UUID
	FirstName string
	LastName  string
	Email     string
	IsAdmin   bool
	CreatedAt time.Time
}
