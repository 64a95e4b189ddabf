package http

import (
	"net/http"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/user"

	"github.com/labstack/echo/v4"
)

// Register handles POST /api/v1/auth/register.
func (s *Server) Register(c echo.Context) error {
	var req RegisterRequest
	if err := bindBody(c, &req); err != nil {
		return writeError(c, err)
	}

	cmd, err := commands.NewRegisterUserCommand(user.Profile{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	}, req.Password)
	if err != nil {
		return writeError(c, err)
	}

	u, err := s.h.RegisterUser.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, userFromDomain(u))
}

// Login handles POST /api/v1/auth/login.
func (s *Server) Login(c echo.Context) error {
	var req LoginRequest
	if err := bindBody(c, &req); err != nil {
		return writeError(c, err)
	}

	cmd, err := commands.NewLoginCommand(req.Email, req.Password)
	if err != nil {
		return writeError(c, err)
	}

	pair, err := s.h.Login.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, tokenPairFrom(pair))
}

// Refresh handles POST /api/v1/auth/refresh.
func (s *Server) Refresh(c echo.Context) error {
	var req RefreshRequest
	if err := bindBody(c, &req); err != nil {
		return writeError(c, err)
	}

	cmd, err := commands.NewRefreshTokenCommand(req.RefreshToken)
	if err != nil {
		return writeError(c, err)
	}

	pair, err := s.h.RefreshToken.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, tokenPairFrom(pair))
}

// GetUser handles GET /api/v1/users/{id}.
func (s *Server) GetUser(c echo.Context) error {
	id, err := bindID(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	query, err := queries.NewGetUserQuery(principalFrom(c), id)
	if err != nil {
		return writeError(c, err)
	}

	u, err := s.h.GetUser.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, userFromView(u))
}

// DeleteUser handles DELETE /api/v1/users/{id}.
func (s *Server) DeleteUser(c echo.Context) error {
	id, err := bindID(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	cmd, err := commands.NewDeleteAccountCommand(principalFrom(c), id)
	if err != nil {
		return writeError(c, err)
	}

	if err := s.h.DeleteAccount.Handle(c.Request().Context(), cmd); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// bindBody decodes the JSON body into dst and validates it.
func bindBody(c echo.Context, dst any) error {
	if err := (&echo.DefaultBinder{}).BindBody(c, dst); err != nil {
		return newHTTPError(http.StatusBadRequest, "invalid request body")
	}
	return c.Validate(dst)
}
