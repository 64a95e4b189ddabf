package http

import (
	"time"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/catalog"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/model/user"

	"github.com/google/uuid"
)

type RegisterRequest struct {
	FirstName string `json:"first_name" validate:"required,max=255"`
	LastName  string `json:"last_name" validate:"required,max=255"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

type User struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

type Category struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Slug     string    `json:"slug"`
	ImageURL string    `json:"image_url"`
}

type CategoryUpdate struct {
	Name string `json:"name" validate:"required,max=255"`
	Slug string `json:"slug" validate:"required,max=255"`
}

type Product struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Price       string    `json:"price"`
	CategoryID  uuid.UUID `json:"category_id"`
	IsActive    bool      `json:"is_active"`
	ImageURL    string    `json:"image_url"`
}

type ProductUpdate struct {
	Name        string    `json:"name" validate:"required,max=255"`
	Slug        string    `json:"slug" validate:"required,max=255"`
	Description string    `json:"description" validate:"required"`
	Price       string    `json:"price" validate:"required,numeric"`
	CategoryID  uuid.UUID `json:"category_id" validate:"required"`
}

type OrderLine struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity"`
}

type CreateOrderRequest struct {
	UserID uuid.UUID   `json:"user_id" validate:"required"`
	Items  []OrderLine `json:"items" validate:"dive"`
}

type OrderItem struct {
	ID          uuid.UUID `json:"id"`
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	ProductSlug string    `json:"product_slug"`
	ImageURL    string    `json:"image_url"`
	Quantity    int       `json:"quantity"`
	Price       string    `json:"price"`
}

type Order struct {
	ID        uuid.UUID   `json:"id"`
	UserID    uuid.UUID   `json:"user_id"`
	Status    string      `json:"status"`
	Total     string      `json:"total"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
	Items     []OrderItem `json:"items"`
}

func tokenPairFrom(p commands.TokenPair) TokenPair {
	return TokenPair{
		AccessToken:  p.AccessToken,
		RefreshToken: p.RefreshToken,
		TokenType:    p.TokenType,
	}
}

func userFromDomain(u *user.User) User {
	return User{
		ID:        u.ID().Bytes(),
		FirstName: u.FirstName(),
		LastName:  u.LastName(),
		Email:     u.Email(),
		IsAdmin:   u.IsAdmin(),
		CreatedAt: u.CreatedAt(),
	}
}

func userFromView(u queries.UserResponse) User {
	return User{
		ID:        u.ID.Bytes(),
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		IsAdmin:   u.IsAdmin,
		CreatedAt: u.CreatedAt,
	}
}

func categoryFromDomain(c *catalog.Category) Category {
	return Category{
		ID:       c.ID().Bytes(),
		Name:     c.Name(),
		Slug:     c.Slug(),
		ImageURL: c.ImageURL(),
	}
}

func categoryFromView(c queries.CategoryResponse) Category {
	return Category{
		ID:       c.ID.Bytes(),
		Name:     c.Name,
		Slug:     c.Slug,
		ImageURL: c.ImageURL,
	}
}

func productFromDomain(p *catalog.Product) Product {
	return Product{
		ID:          p.ID().Bytes(),
		Name:        p.Name(),
		Slug:        p.Slug(),
		Description: p.Description(),
		Price:       p.Price().String(),
		CategoryID:  p.CategoryID().Bytes(),
		IsActive:    p.IsActive(),
		ImageURL:    p.ImageURL(),
	}
}

func productFromView(p queries.ProductResponse) Product {
	return Product{
		ID:          p.ID.Bytes(),
		Name:        p.Name,
		Slug:        p.Slug,
		Description: p.Description,
		Price:       p.Price.StringFixed(2),
		CategoryID:  p.CategoryID.Bytes(),
		IsActive:    p.IsActive,
		ImageURL:    p.ImageURL,
	}
}

func orderFromView(o queries.OrderResponse) Order {
	items := make([]OrderItem, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItem{
			ID:          item.ID.Bytes(),
			ProductID:   item.ProductID.Bytes(),
			ProductName: item.ProductName,
			ProductSlug: item.ProductSlug,
			ImageURL:    item.ImageURL,
			Quantity:    item.Quantity,
			Price:       item.Price.StringFixed(2),
		})
	}

	return Order{
		ID:        o.ID.Bytes(),
		UserID:    o.UserID.Bytes(),
		Status:    o.Status.String(),
		Total:     o.Total.StringFixed(2),
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
		Items:     items,
	}
}

// orderFromDomain renders an aggregate without the product display fields.
func orderFromDomain(o *order.Order) Order {
	items := make([]OrderItem, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, OrderItem{
			ID:        item.ID().Bytes(),
			ProductID: item.ProductID().Bytes(),
			Quantity:  item.Quantity(),
			Price:     item.Price().String(),
		})
	}

	return Order{
		ID:        o.ID().Bytes(),
		UserID:    o.UserID().Bytes(),
		Status:    o.Status().String(),
		Total:     o.Total().String(),
		CreatedAt: o.CreatedAt(),
		UpdatedAt: o.UpdatedAt(),
		Items:     items,
	}
}
