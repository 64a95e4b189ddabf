package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"storefront/cmd"
	httpin "storefront/internal/adapters/in/http"
	"storefront/internal/adapters/out/auth"
	"storefront/internal/adapters/out/filestore"
	"storefront/internal/adapters/out/postgres/dbtest"
	"storefront/internal/adapters/out/tokenstore"
	"storefront/internal/core/application/usecases/queries"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	adminEmail    = "admin@example.com"
	adminPassword = "admin-password"
)

type api struct {
	t *testing.T
	e *echo.Echo
}

func newAPI(t *testing.T) api {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tokens, err := auth.NewJWTIssuer("router-test-secret-0123456789abcdef", 15*time.Minute, time.Hour)
	require.NoError(t, err)
	uploads := t.TempDir()
	images, err := filestore.NewLocalStorage(uploads, 1<<20)
	require.NoError(t, err)

	root := cmd.NewCompositionRoot(cmd.Config{
		UploadDir:     uploads,
		AdminEmail:    adminEmail,
		AdminPassword: adminPassword,
	}, cmd.Dependencies{
		DB:            dbtest.NewSQLite(t),
		Tokens:        tokens,
		RefreshTokens: tokenstore.NewMemoryStore(),
		Hasher:        auth.NewBcryptHasher(bcrypt.MinCost),
		Images:        images,
		Logger:        logger,
	})
	require.NoError(t, root.EnsureAdmin(context.Background()))

	e, err := root.CreateRouter(prometheus.NewRegistry())
	require.NoError(t, err)
	return api{t: t, e: e}
}

func (a api) serve(req *http.Request, token string) *httptest.ResponseRecorder {
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func (a api) json(method, path string, body any, token string) *httptest.ResponseRecorder {
	a.t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	return a.serve(req, token)
}

func (a api) raw(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return a.serve(req, "")
}

func (a api) multipart(path string, fields map[string]string, token string) *httptest.ResponseRecorder {
	a.t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(a.t, w.WriteField(k, v))
	}
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="image"; filename="photo.png"`)
	header.Set("Content-Type", "image/png")
	part, err := w.CreatePart(header)
	require.NoError(a.t, err)
	_, err = part.Write([]byte("\x89PNG fake image"))
	require.NoError(a.t, err)
	require.NoError(a.t, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	return a.serve(req, token)
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func (a api) register(email string) httpin.User {
	a.t.Helper()

	rec := a.json(http.MethodPost, "/api/v1/auth/register", httpin.RegisterRequest{
		FirstName: "Test",
		LastName:  "Shopper",
		Email:     email,
		Password:  "correct-horse",
	}, "")
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[httpin.User](a.t, rec)
}

func (a api) login(email, password string) httpin.TokenPair {
	a.t.Helper()

	rec := a.json(http.MethodPost, "/api/v1/auth/login", httpin.LoginRequest{Email: email, Password: password}, "")
	require.Equal(a.t, http.StatusOK, rec.Code, rec.Body.String())
	return decode[httpin.TokenPair](a.t, rec)
}

// seedProduct creates a category and an active product priced at price, as the admin.
func (a api) seedProduct(adminToken, slug, price string) httpin.Product {
	a.t.Helper()

	rec := a.multipart("/api/v1/categories", map[string]string{"name": slug + " shelf", "slug": slug + "-shelf"}, adminToken)
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())
	category := decode[httpin.Category](a.t, rec)

	rec = a.multipart("/api/v1/products", map[string]string{
		"name":        slug,
		"slug":        slug,
		"description": "a fine " + slug,
		"price":       price,
		"category_id": category.ID.String(),
	}, adminToken)
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[httpin.Product](a.t, rec)
}

func TestOrderWorkflowOverHTTP(t *testing.T) {
	a := newAPI(t)
	admin := a.login(adminEmail, adminPassword)
	product := a.seedProduct(admin.AccessToken, "kettle", "10.00")

	owner := a.register("owner@example.com")
	ownerToken := a.login("owner@example.com", "correct-horse").AccessToken
	a.register("stranger@example.com")
	strangerToken := a.login("stranger@example.com", "correct-horse").AccessToken

	line := func(qty int) httpin.CreateOrderRequest {
		return httpin.CreateOrderRequest{
			UserID: owner.ID,
			Items:  []httpin.OrderLine{{ProductID: product.ID, Quantity: qty}},
		}
	}

	// Given an owner ordering two units of a 10.00 product
	rec := a.json(http.MethodPost, "/api/v1/orders", line(2), ownerToken)

	// Then the order is open and priced from the catalog
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	placed := decode[httpin.Order](t, rec)
	assert.Equal(t, "OPEN", placed.Status)
	assert.Equal(t, "20.00", placed.Total)
	require.Len(t, placed.Items, 1)
	assert.Equal(t, "10.00", placed.Items[0].Price)
	assert.Equal(t, 2, placed.Items[0].Quantity)
	assert.Equal(t, "kettle", placed.Items[0].ProductSlug)

	orderPath := "/api/v1/orders/" + placed.ID.String()

	t.Run("zero quantity is rejected and persists nothing", func(t *testing.T) {
		rec := a.json(http.MethodPost, "/api/v1/orders", line(0), ownerToken)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		rec = a.json(http.MethodGet, "/api/v1/users/"+owner.ID.String()+"/orders", nil, ownerToken)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, decode[[]httpin.Order](t, rec), 1)
	})

	t.Run("stranger cannot read the order", func(t *testing.T) {
		rec := a.json(http.MethodGet, orderPath, nil, strangerToken)
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, http.StatusForbidden, decode[httpin.Error](t, rec).Code)
	})

	t.Run("anonymous callers are rejected", func(t *testing.T) {
		for _, rec := range []*httptest.ResponseRecorder{
			a.json(http.MethodGet, orderPath, nil, ""),
			a.json(http.MethodPost, "/api/v1/orders", line(1), ""),
			a.json(http.MethodPatch, orderPath+"/cancel", nil, ""),
			a.json(http.MethodPatch, orderPath+"/deliver", nil, ""),
			a.json(http.MethodGet, "/api/v1/users/"+owner.ID.String()+"/orders", nil, ""),
		} {
			assert.Equal(t, http.StatusUnauthorized, rec.Code, rec.Body.String())
		}
	})

	t.Run("anonymous callers are rejected before request validation", func(t *testing.T) {
		for _, rec := range []*httptest.ResponseRecorder{
			a.raw(http.MethodPost, "/api/v1/orders", `{"items":[]}`),
			a.raw(http.MethodPost, "/api/v1/orders", `{"user_id":"00000000-0000-0000-0000-000000000000","items":[]}`),
			a.raw(http.MethodPost, "/api/v1/orders", `not json`),
			a.json(http.MethodGet, "/api/v1/orders/not-a-uuid", nil, ""),
			a.json(http.MethodPatch, "/api/v1/orders/not-a-uuid/cancel", nil, ""),
			a.json(http.MethodPatch, "/api/v1/orders/not-a-uuid/deliver", nil, ""),
			a.json(http.MethodGet, "/api/v1/users/not-a-uuid/orders", nil, ""),
		} {
			assert.Equal(t, http.StatusUnauthorized, rec.Code, rec.Body.String())
			assert.Equal(t, http.StatusUnauthorized, decode[httpin.Error](t, rec).Code)
		}
	})

	t.Run("quantity above the maximum is a client error", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(
			`{"user_id":"`+owner.ID.String()+`","items":[{"product_id":"`+product.ID.String()+`","quantity":3000000000}]}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := a.serve(req, ownerToken)

		assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
	})

	t.Run("owner cannot mark delivered", func(t *testing.T) {
		rec := a.json(http.MethodPatch, orderPath+"/deliver", nil, ownerToken)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	// When the admin delivers it
	rec = a.json(http.MethodPatch, orderPath+"/deliver", nil, admin.AccessToken)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "DELIVERED", decode[httpin.Order](t, rec).Status)

	// Then the owner can no longer cancel it
	rec = a.json(http.MethodPatch, orderPath+"/cancel", nil, ownerToken)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = a.json(http.MethodGet, orderPath, nil, ownerToken)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "DELIVERED", decode[httpin.Order](t, rec).Status)
}

func TestCancelOrderOverHTTP(t *testing.T) {
	a := newAPI(t)
	admin := a.login(adminEmail, adminPassword)
	product := a.seedProduct(admin.AccessToken, "lamp", "4.50")
	owner := a.register("owner@example.com")
	token := a.login("owner@example.com", "correct-horse").AccessToken

	rec := a.json(http.MethodPost, "/api/v1/orders", httpin.CreateOrderRequest{
		UserID: owner.ID,
		Items:  []httpin.OrderLine{{ProductID: product.ID, Quantity: 3}},
	}, token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	placed := decode[httpin.Order](t, rec)
	assert.Equal(t, "13.50", placed.Total)

	rec = a.json(http.MethodPatch, "/api/v1/orders/"+placed.ID.String()+"/cancel", nil, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "CANCELED", decode[httpin.Order](t, rec).Status)

	t.Run("admin cannot order on behalf of another user", func(t *testing.T) {
		rec := a.json(http.MethodPost, "/api/v1/orders", httpin.CreateOrderRequest{
			UserID: owner.ID,
			Items:  []httpin.OrderLine{{ProductID: product.ID, Quantity: 1}},
		}, admin.AccessToken)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("unknown product", func(t *testing.T) {
		rec := a.json(http.MethodPost, "/api/v1/orders", httpin.CreateOrderRequest{
			UserID: owner.ID,
			Items:  []httpin.OrderLine{{ProductID: uuid.New(), Quantity: 1}},
		}, token)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("empty item list", func(t *testing.T) {
		rec := a.json(http.MethodPost, "/api/v1/orders", httpin.CreateOrderRequest{
			UserID: owner.ID,
			Items:  []httpin.OrderLine{},
		}, token)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAuthOverHTTP(t *testing.T) {
	a := newAPI(t)
	registered := a.register("someone@example.com")
	assert.Equal(t, "someone@example.com", registered.Email)
	assert.False(t, registered.IsAdmin)

	rec := a.json(http.MethodPost, "/api/v1/auth/register", httpin.RegisterRequest{
		FirstName: "Again",
		LastName:  "Someone",
		Email:     "someone@example.com",
		Password:  "correct-horse",
	}, "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = a.json(http.MethodPost, "/api/v1/auth/login", httpin.LoginRequest{Email: "someone@example.com", Password: "wrong-horse"}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	pair := a.login("someone@example.com", "correct-horse")
	assert.Equal(t, "bearer", strings.ToLower(pair.TokenType))

	rec = a.json(http.MethodPost, "/api/v1/auth/refresh", httpin.RefreshRequest{RefreshToken: pair.RefreshToken}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	rotated := decode[httpin.TokenPair](t, rec)
	assert.NotEqual(t, pair.RefreshToken, rotated.RefreshToken)

	rec = a.json(http.MethodPost, "/api/v1/auth/refresh", httpin.RefreshRequest{RefreshToken: pair.RefreshToken}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code, "refresh tokens are single use")

	rec = a.json(http.MethodGet, "/api/v1/users/"+registered.ID.String(), nil, rotated.AccessToken)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, registered.ID, decode[httpin.User](t, rec).ID)

	rec = a.json(http.MethodDelete, "/api/v1/users/"+registered.ID.String(), nil, rotated.AccessToken)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = a.json(http.MethodGet, "/api/v1/users/"+registered.ID.String(), nil, rotated.AccessToken)
	assert.Equal(t, http.StatusUnauthorized, rec.Code, "tokens of a deleted account stop working")
}

func TestCatalogOverHTTP(t *testing.T) {
	a := newAPI(t)
	admin := a.login(adminEmail, adminPassword)
	product := a.seedProduct(admin.AccessToken, "teapot", "7.25")
	assert.True(t, product.IsActive)
	assert.Equal(t, "7.25", product.Price)
	require.True(t, strings.HasPrefix(product.ImageURL, "/uploads/"))

	a.register("buyer@example.com")
	buyer := a.login("buyer@example.com", "correct-horse").AccessToken

	rec := a.json(http.MethodGet, product.ImageURL, nil, "")
	assert.Equal(t, http.StatusOK, rec.Code, "uploaded images are served")

	rec = a.multipart("/api/v1/categories", map[string]string{"name": "Hats", "slug": "hats"}, buyer)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = a.json(http.MethodGet, "/api/v1/categories", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]httpin.Category](t, rec), 1)

	rec = a.json(http.MethodPatch, "/api/v1/products/teapot/deactivate", nil, admin.AccessToken)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.False(t, decode[httpin.Product](t, rec).IsActive)

	rec = a.json(http.MethodGet, "/api/v1/categories/teapot-shelf/products", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]httpin.Product](t, rec))

	rec = a.json(http.MethodPut, "/api/v1/products/teapot", httpin.ProductUpdate{
		Name:        "Teapot",
		Slug:        "teapot-xl",
		Description: "bigger",
		Price:       "9.50",
		CategoryID:  product.CategoryID,
	}, admin.AccessToken)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "9.50", decode[httpin.Product](t, rec).Price)

	rec = a.json(http.MethodDelete, "/api/v1/categories/teapot-shelf", nil, admin.AccessToken)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "categories with products cannot be deleted")

	rec = a.json(http.MethodGet, "/api/v1/products/teapot", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouterSurface(t *testing.T) {
	a := newAPI(t)
	admin := a.login(adminEmail, adminPassword)

	tests := []struct {
		name   string
		req    func() *http.Request
		status int
	}{
		{
			name:   "health",
			req:    func() *http.Request { return httptest.NewRequest(http.MethodGet, "/health", nil) },
			status: http.StatusOK,
		},
		{
			name:   "unknown api route",
			req:    func() *http.Request { return httptest.NewRequest(http.MethodGet, "/api/v1/nowhere", nil) },
			status: http.StatusNotFound,
		},
		{
			name:   "malformed order id",
			req: func() *http.Request {
				req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/not-a-uuid", nil)
				req.Header.Set(echo.HeaderAuthorization, "Bearer "+admin.AccessToken)
				return req
			},
			status: http.StatusBadRequest,
		},
		{
			name: "malformed authorization header",
			req: func() *http.Request {
				req := httptest.NewRequest(http.MethodGet, "/api/v1/categories", nil)
				req.Header.Set(echo.HeaderAuthorization, "Token abc")
				return req
			},
			status: http.StatusUnauthorized,
		},
		{
			name: "forged bearer token",
			req: func() *http.Request {
				req := httptest.NewRequest(http.MethodGet, "/api/v1/categories", nil)
				req.Header.Set(echo.HeaderAuthorization, "Bearer not.a.jwt")
				return req
			},
			status: http.StatusUnauthorized,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := a.serve(tt.req(), "")

			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
			if tt.status != http.StatusOK {
				assert.Equal(t, tt.status, decode[httpin.Error](t, rec).Code)
			}
			if tt.status == http.StatusUnauthorized {
				assert.NotEmpty(t, rec.Header().Get(echo.HeaderWWWAuthenticate))
			}
		})
	}

	rec := a.serve(httptest.NewRequest(http.MethodGet, "/metrics", nil), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_total")
}

func TestCommittedOrderRendersWhenViewFails(t *testing.T) {
	db := dbtest.NewSQLite(t)
	tokens, err := auth.NewJWTIssuer("router-test-secret-0123456789abcdef", 15*time.Minute, time.Hour)
	require.NoError(t, err)
	images, err := filestore.NewLocalStorage(t.TempDir(), 1<<20)
	require.NoError(t, err)

	root := cmd.NewCompositionRoot(cmd.Config{}, cmd.Dependencies{
		DB:            db,
		Tokens:        tokens,
		RefreshTokens: tokenstore.NewMemoryStore(),
		Hasher:        auth.NewBcryptHasher(bcrypt.MinCost),
		Images:        images,
		Logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	// The order view reads from a database that never sees the write.
	server := httpin.NewServer(httpin.Handlers{
		CreateOrder:      root.CreateCreateOrderCommandHandler(),
		CancelOrder:      root.CreateCancelOrderCommandHandler(),
		GetOrder:         queries.NewGetOrderQueryHandler(dbtest.NewSQLite(t)),
		ResolvePrincipal: root.CreateResolvePrincipalQueryHandler(),
	})
	e, err := httpin.NewRouter(server, httpin.RouterConfig{})
	require.NoError(t, err)
	a := api{t: t, e: e}

	userID := dbtest.SeedUser(t, db, false)
	productID := dbtest.SeedProduct(t, db, dbtest.SeedCategory(t, db, "teapots"), "teapot", "12.50", true)
	token, err := tokens.IssueAccessToken(userID)
	require.NoError(t, err)

	// When the order commits but its view cannot be read
	rec := a.json(http.MethodPost, "/api/v1/orders", httpin.CreateOrderRequest{
		UserID: userID.Bytes(),
		Items:  []httpin.OrderLine{{ProductID: productID.Bytes(), Quantity: 2}},
	}, token)

	// Then the caller still learns the order was created
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	placed := decode[httpin.Order](t, rec)
	assert.Equal(t, "OPEN", placed.Status)
	assert.Equal(t, "25.00", placed.Total)
	assert.Equal(t, userID.Bytes(), placed.UserID)
	require.Len(t, placed.Items, 1)
	assert.Equal(t, productID.Bytes(), placed.Items[0].ProductID)
	assert.Equal(t, "12.50", placed.Items[0].Price)
	assert.Empty(t, placed.Items[0].ProductSlug)

	var stored int64
	require.NoError(t, db.Table("orders").Where("id = ?", placed.ID).Count(&stored).Error)
	assert.Equal(t, int64(1), stored)

	// And a committed cancellation is reported the same way
	rec = a.json(http.MethodPatch, "/api/v1/orders/"+placed.ID.String()+"/cancel", nil, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "CANCELED", decode[httpin.Order](t, rec).Status)

	// While a plain read still reports the missing view
	rec = a.json(http.MethodGet, "/api/v1/orders/"+placed.ID.String(), nil, token)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
