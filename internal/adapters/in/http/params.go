package http

import (
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// bindID binds the uuid path parameter name.
func bindID(c echo.Context, name string) (kernel.UUID, error) {
	var id uuid.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, c.Param(name), &id, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return kernel.UUIDFromGoogle(id)
}

// bindSlug binds the string path parameter "slug".
func bindSlug(c echo.Context) (string, error) {
	var slug string
	err := runtime.BindStyledParameterWithOptions("simple", "slug", c.Param("slug"), &slug, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil {
		return "", errs.NewValueIsInvalidErrorWithCause("slug", err)
	}
	return slug, nil
}

// toKernelUUID converts a decoded body id; the zero id is rejected by the caller's validation.
func toKernelUUID(id uuid.UUID) kernel.UUID {
	v, err := kernel.UUIDFromGoogle(id)
	if err != nil {
		return kernel.UUID{}
	}
	return v
}
