package model

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock quantity")
)

type Product struct {
	ID          uuid.UUID
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
	CategoryID  uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProductPatch carries the optional fields of a partial update. Nil fields
// leave the current value untouched.
type ProductPatch struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	Stock       *int
	CategoryID  *uuid.UUID
}

func (p ProductPatch) Apply(product *Product) {
	if p.Name != nil {
		product.Name = *p.Name
	}
	if p.Description != nil {
		product.Description = *p.Description
	}
	if p.Price != nil {
		product.Price = *p.Price
	}
	if p.Stock != nil {
		product.Stock = *p.Stock
	}
	if p.CategoryID != nil {
		product.CategoryID = *p.CategoryID
	}
}

// ProductPage is one page of a paginated product listing.
type ProductPage struct {
	Items      []Product
	Total      int
	Page       int
	PageSize   int
	TotalPages int
}

type ProductRepository interface {
	NextID() (uuid.UUID, error)
	Create(ctx context.Context, product *Product) error
	Update(ctx context.Context, product *Product) error
	Find(ctx context.Context, id uuid.UUID) (*Product, error)
	// FindForUpdate locks the product row for the rest of the surrounding
	// transaction. Outside a transaction it behaves like Find.
	FindForUpdate(ctx context.Context, id uuid.UUID) (*Product, error)
	List(ctx context.Context) ([]Product, error)
	ListPage(ctx context.Context, limit, offset int) ([]Product, int, error)
	ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]Product, error)
	Search(ctx context.Context, term string) ([]Product, error)
	SearchPage(ctx context.Context, term string, limit, offset int) ([]Product, int, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
