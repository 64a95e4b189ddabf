// Package access models the authenticated actor and the authorization predicates
// shared by every use case.
//
// A nil *Principal means "no principal resolved"; every predicate treats it as
// unauthenticated before looking at anything else.
package access

import (
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
)

// Principal is an authenticated actor resolved from a credential.
type Principal struct {
	id      kernel.UUID
	isAdmin bool
}

// NewPrincipal creates a principal for a verified identity.
func NewPrincipal(id kernel.UUID, isAdmin bool) (*Principal, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return &Principal{id: id, isAdmin: isAdmin}, nil
}

func (p *Principal) ID() kernel.UUID {
	return p.id
}

func (p *Principal) IsAdmin() bool {
	return p != nil && p.isAdmin
}

// Owns reports whether the principal is the owner identified by ownerID.
func (p *Principal) Owns(ownerID kernel.UUID) bool {
	return p != nil && p.id.IsEqual(ownerID)
}

// IsOwnerOrAdmin reports whether p may act on a resource owned by ownerID.
func IsOwnerOrAdmin(p *Principal, ownerID kernel.UUID) bool {
	return p.IsAdmin() || p.Owns(ownerID)
}

// RequireAuthenticated fails with Unauthenticated when p is nil.
func RequireAuthenticated(p *Principal) error {
	if p == nil {
		return errs.NewUnauthenticatedError("authentication required")
	}
	return nil
}

// RequireAdmin fails with Unauthenticated or Forbidden.
func RequireAdmin(p *Principal, action string) error {
	if err := RequireAuthenticated(p); err != nil {
		return err
	}
	if !p.IsAdmin() {
		return errs.NewForbiddenError(action + ": admin only")
	}
	return nil
}

// RequireOwnerOrAdmin fails with Unauthenticated or Forbidden.
func RequireOwnerOrAdmin(p *Principal, ownerID kernel.UUID, action string) error {
	if err := RequireAuthenticated(p); err != nil {
		return err
	}
	if !IsOwnerOrAdmin(p, ownerID) {
		return errs.NewForbiddenError(action + ": owner or admin only")
	}
	return nil
}

// RequireSelf fails unless p acts as userID. Admin status does not widen it.
func RequireSelf(p *Principal, userID kernel.UUID, action string) error {
	if err := RequireAuthenticated(p); err != nil {
		return err
	}
	if !p.Owns(userID) {
		return errs.NewForbiddenError(action + ": only on your own behalf")
	}
	return nil
}
