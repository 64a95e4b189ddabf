package http

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// ListCategories handles GET /api/v1/categories.
func (s *Server) ListCategories(c echo.Context) error {
	categories, err := s.h.Catalog.ListCategories(c.Request().Context(), queries.NewListCategoriesQuery())
	if err != nil {
		return writeError(c, err)
	}

	response := make([]Category, 0, len(categories))
	for _, category := range categories {
		response = append(response, categoryFromView(category))
	}
	return c.JSON(http.StatusOK, response)
}

// GetCategory handles GET /api/v1/categories/{slug}.
func (s *Server) GetCategory(c echo.Context) error {
	slug, err := bindSlug(c)
	if err != nil {
		return writeError(c, err)
	}

	category, err := s.h.Catalog.GetCategory(c.Request().Context(), queries.NewGetCategoryQuery(slug))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, categoryFromView(category))
}

// CreateCategory handles POST /api/v1/categories (multipart: name, slug, image).
func (s *Server) CreateCategory(c echo.Context) error {
	image, closeImage, err := formImage(c)
	if err != nil {
		return writeError(c, err)
	}
	defer closeImage()

	cmd := commands.NewCreateCategoryCommand(principalFrom(c), c.FormValue("name"), c.FormValue("slug"), image)
	category, err := s.h.Categories.Create(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, categoryFromDomain(category))
}

// UpdateCategory handles PUT /api/v1/categories/{slug}.
func (s *Server) UpdateCategory(c echo.Context) error {
	slug, err := bindSlug(c)
	if err != nil {
		return writeError(c, err)
	}

	var req CategoryUpdate
	if err := bindBody(c, &req); err != nil {
		return writeError(c, err)
	}

	cmd := commands.NewUpdateCategoryCommand(principalFrom(c), slug, req.Name, req.Slug)
	category, err := s.h.Categories.Update(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, categoryFromDomain(category))
}

// ReplaceCategoryImage handles PATCH /api/v1/categories/{slug}/image.
func (s *Server) ReplaceCategoryImage(c echo.Context) error {
	slug, err := bindSlug(c)
	if err != nil {
		return writeError(c, err)
	}

	image, closeImage, err := formImage(c)
	if err != nil {
		return writeError(c, err)
	}
	defer closeImage()

	cmd := commands.NewReplaceCategoryImageCommand(principalFrom(c), slug, image)
	category, err := s.h.Categories.ReplaceImage(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, categoryFromDomain(category))
}

// DeleteCategory handles DELETE /api/v1/categories/{slug}.
func (s *Server) DeleteCategory(c echo.Context) error {
	slug, err := bindSlug(c)
	if err != nil {
		return writeError(c, err)
	}

	cmd := commands.NewDeleteCategoryCommand(principalFrom(c), slug)
	if err := s.h.Categories.Delete(c.Request().Context(), cmd); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListCategoryProducts handles GET /api/v1/categories/{slug}/products.
func (s *Server) ListCategoryProducts(c echo.Context) error {
	slug, err := bindSlug(c)
	if err != nil {
		return writeError(c, err)
	}

	products, err := s.h.Catalog.ListCategoryProducts(c.Request().Context(), queries.NewListCategoryProductsQuery(slug))
	if err != nil {
		return writeError(c, err)
	}

	response := make([]Product, 0, len(products))
	for _, p := range products {
		response = append(response, productFromView(p))
	}
	return c.JSON(http.StatusOK, response)
}

// GetProduct handles GET /api/v1/products/{slug}.
func (s *Server) GetProduct(c echo.Context) error {
	slug, err := bindSlug(c)
	if err != nil {
		return writeError(c, err)
	}

	product, err := s.h.Catalog.GetProduct(c.Request().Context(), queries.NewGetProductQuery(slug))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, productFromView(product))
}

// CreateProduct handles POST /api/v1/products
// (multipart: name, slug, description, price, category_id, image).
func (s *Server) CreateProduct(c echo.Context) error {
	input, err := formProductInput(c)
	if err != nil {
		return writeError(c, err)
	}

	image, closeImage, err := formImage(c)
	if err != nil {
		return writeError(c, err)
	}
	defer closeImage()

	cmd := commands.NewCreateProductCommand(principalFrom(c), input, image)
	product, err := s.h.Products.Create(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, productFromDomain(product))
}

// UpdateProduct handles PUT /api/v1/products/{slug}.
func (s *Server) UpdateProduct(c echo.Context) error {
	slug, err := bindSlug(c)
	if err != nil {
		return writeError(c, err)
	}

	var req ProductUpdate
	if err := bindBody(c, &req); err != nil {
		return writeError(c, err)
	}

	cmd := commands.NewUpdateProductCommand(principalFrom(c), slug, commands.ProductInput{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		Price:       req.Price,
		CategoryID:  toKernelUUID(req.CategoryID),
	})
	product, err := s.h.Products.Update(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, productFromDomain(product))
}

// ReplaceProductImage handles PATCH /api/v1/products/{slug}/image.
func (s *Server) ReplaceProductImage(c echo.Context) error {
	slug, err := bindSlug(c)
	if err != nil {
		return writeError(c, err)
	}

	image, closeImage, err := formImage(c)
	if err != nil {
		return writeError(c, err)
	}
	defer closeImage()

	cmd := commands.NewReplaceProductImageCommand(principalFrom(c), slug, image)
	product, err := s.h.Products.ReplaceImage(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, productFromDomain(product))
}

// ActivateProduct handles PATCH /api/v1/products/{slug}/activate.
func (s *Server) ActivateProduct(c echo.Context) error {
	return s.setProductActive(c, true)
}

// DeactivateProduct handles PATCH /api/v1/products/{slug}/deactivate.
func (s *Server) DeactivateProduct(c echo.Context) error {
	return s.setProductActive(c, false)
}

func (s *Server) setProductActive(c echo.Context, active bool) error {
	slug, err := bindSlug(c)
	if err != nil {
		return writeError(c, err)
	}

	cmd := commands.NewSetProductActiveCommand(principalFrom(c), slug, active)
	product, err := s.h.Products.SetActive(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, productFromDomain(product))
}

// formImage opens the "image" part. A missing part yields an empty Image so the
// command reports it after authorization.
func formImage(c echo.Context) (commands.Image, func(), error) {
	noop := func() {}

	fh, err := c.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return commands.NewImage("", "", nil), noop, nil
		}
		return commands.Image{}, noop, newHTTPError(http.StatusBadRequest, "invalid multipart body")
	}

	f, err := fh.Open()
	if err != nil {
		return commands.Image{}, noop, errs.WrapInternal("open uploaded image", err)
	}

	var content io.Reader = f
	return commands.NewImage(fh.Filename, fh.Header.Get(echo.HeaderContentType), content), func() { _ = f.Close() }, nil
}

func formProductInput(c echo.Context) (commands.ProductInput, error) {
	input := commands.ProductInput{
		Name:        c.FormValue("name"),
		Slug:        c.FormValue("slug"),
		Description: c.FormValue("description"),
		Price:       c.FormValue("price"),
	}

	if raw := strings.TrimSpace(c.FormValue("category_id")); raw != "" {
		id, err := kernel.UUIDFromString(raw)
		if err != nil {
			return commands.ProductInput{}, err
		}
		input.CategoryID = id
	}
	return input, nil
}
