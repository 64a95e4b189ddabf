package queries

import (
	"context"
	"database/sql"
	"errors"

	"storefront/internal/core/domain/model/access"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"

	"gorm.io/gorm"
)

// ResolvePrincipalQueryHandler verifies an access token and reads the admin flag
// from the users table, so role changes apply without re-issuing tokens. Tokens of
// deleted accounts fail with errs.ErrUnauthenticated.
type ResolvePrincipalQueryHandler struct {
	db     *gorm.DB
	tokens ports.TokenIssuer
}

func NewResolvePrincipalQueryHandler(db *gorm.DB, tokens ports.TokenIssuer) ResolvePrincipalQueryHandler {
	return ResolvePrincipalQueryHandler{db: db, tokens: tokens}
}

func (h ResolvePrincipalQueryHandler) Handle(ctx context.Context, query ResolvePrincipalQuery) (*access.Principal, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	claims, err := h.tokens.ParseAccessToken(query.token)
	if err != nil {
		return nil, err
	}

	var isAdmin bool
	err = h.db.WithContext(ctx).Raw(`
		SELECT is_admin
		FROM users
		WHERE id = ?
	`, claims.UserID.Bytes()).Row().Scan(&isAdmin)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.NewUnauthenticatedError("account no longer exists")
	}
	if err != nil {
		return nil, errs.NewInternalError("resolve principal", err)
	}

	return access.NewPrincipal(claims.UserID, isAdmin)
}
