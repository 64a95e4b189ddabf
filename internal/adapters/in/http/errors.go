package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/logging"

	"github.com/labstack/echo/v4"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func newHTTPError(code int, message string) *echo.HTTPError {
	return echo.NewHTTPError(code, message)
}

// StatusFor maps an error kind to its HTTP status.
func StatusFor(kind errs.Kind) int {
	switch kind {
	case errs.KindUnauthenticated:
		return http.StatusUnauthorized
	case errs.KindForbidden:
		return http.StatusForbidden
	case errs.KindInvalidArgument:
		return http.StatusBadRequest
	case errs.KindNotFound:
		return http.StatusNotFound
	case errs.KindInvalidState:
		return http.StatusBadRequest
	case errs.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders err as an Error body. Internal failures are logged and
// reported without detail.
func writeError(c echo.Context, err error) error {
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return c.JSON(httpErr.Code, Error{Code: httpErr.Code, Message: fmt.Sprint(httpErr.Message)})
	}

	status := StatusFor(errs.KindOf(err))
	message := err.Error()
	if status == http.StatusInternalServerError {
		logging.FromCtx(c.Request().Context(), slog.Default()).
			Error("request failed", "error", err)
		message = "internal server error"
	} else if status == http.StatusUnauthorized {
		c.Response().Header().Set(echo.HeaderWWWAuthenticate, `Bearer realm="storefront"`)
	}

	return c.JSON(status, Error{Code: status, Message: message})
}

// errorHandler catches errors returned by echo itself and by middleware.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	_ = writeError(c, err)
}
