package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/rachelSwimmer/StoreApi/pkg/domain/model"
)

var (
	ErrInvalidPage     = errors.New("page number must be >= 1 and page size must be positive")
	ErrNegativePrice   = errors.New("price cannot be negative")
	ErrNegativeStock   = errors.New("stock cannot be negative")
	ErrUnknownCategory = errors.New("referenced category does not exist")
)

type CreateProductInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
	CategoryID  uuid.UUID
}

type ProductService interface {
	ListProducts(ctx context.Context) ([]model.Product, error)
	ListProductsPage(ctx context.Context, page, pageSize int) (*model.ProductPage, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*model.Product, error)
	ListProductsByCategory(ctx context.Context, categoryID uuid.UUID) ([]model.Product, error)
	SearchProducts(ctx context.Context, term string) ([]model.Product, error)
	SearchProductsPage(ctx context.Context, term string, page, pageSize int) (*model.ProductPage, error)
	CreateProduct(ctx context.Context, input CreateProductInput) (*model.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, patch model.ProductPatch) (*model.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}

func NewProductService(products model.ProductRepository, categories model.CategoryRepository, dispatcher EventDispatcher) ProductService {
	return &productService{
		products:   products,
		categories: categories,
		dispatcher: dispatcher,
	}
}

type productService struct {
	products   model.ProductRepository
	categories model.CategoryRepository
	dispatcher EventDispatcher
}

func (s *productService) ListProducts(ctx context.Context) ([]model.Product, error) {
	return s.products.List(ctx)
}

func (s *productService) ListProductsPage(ctx context.Context, page, pageSize int) (*model.ProductPage, error) {
	if page < 1 || pageSize < 1 {
		return nil, ErrInvalidPage
	}

	items, total, err := s.products.ListPage(ctx, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}
	return newProductPage(items, total, page, pageSize), nil
}

func (s *productService) GetProduct(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	return s.products.Find(ctx, id)
}

func (s *productService) ListProductsByCategory(ctx context.Context, categoryID uuid.UUID) ([]model.Product, error) {
	return s.products.ListByCategory(ctx, categoryID)
}

// SearchProducts treats an empty or whitespace-only term as "match nothing",
// not "match everything".
func (s *productService) SearchProducts(ctx context.Context, term string) ([]model.Product, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return []model.Product{}, nil
	}
	return s.products.Search(ctx, term)
}

func (s *productService) SearchProductsPage(ctx context.Context, term string, page, pageSize int) (*model.ProductPage, error) {
	if page < 1 || pageSize < 1 {
		return nil, ErrInvalidPage
	}

	term = strings.TrimSpace(term)
	if term == "" {
		return newProductPage([]model.Product{}, 0, page, pageSize), nil
	}

	items, total, err := s.products.SearchPage(ctx, term, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}
	return newProductPage(items, total, page, pageSize), nil
}

func (s *productService) CreateProduct(ctx context.Context, input CreateProductInput) (*model.Product, error) {
	if input.Price.IsNegative() {
		return nil, ErrNegativePrice
	}
	if input.Stock < 0 {
		return nil, ErrNegativeStock
	}
	if err := s.checkCategoryExists(ctx, input.CategoryID); err != nil {
		return nil, err
	}

	productID, err := s.products.NextID()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	product := &model.Product{
		ID:          productID,
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Stock:       input.Stock,
		CategoryID:  input.CategoryID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}

	_ = s.dispatcher.Dispatch(model.ProductCreated{
		ProductID:  productID,
		CategoryID: input.CategoryID,
		Name:       input.Name,
	})
	return product, nil
}

func (s *productService) UpdateProduct(ctx context.Context, id uuid.UUID, patch model.ProductPatch) (*model.Product, error) {
	product, err := s.products.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Price != nil && patch.Price.IsNegative() {
		return nil, ErrNegativePrice
	}
	if patch.Stock != nil && *patch.Stock < 0 {
		return nil, ErrNegativeStock
	}
	if patch.CategoryID != nil {
		if err := s.checkCategoryExists(ctx, *patch.CategoryID); err != nil {
			return nil, err
		}
	}

	patch.Apply(product)
	product.UpdatedAt = time.Now().UTC()

	if err := s.products.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *productService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return s.products.Delete(ctx, id)
}

func (s *productService) checkCategoryExists(ctx context.Context, categoryID uuid.UUID) error {
	_, err := s.categories.Find(ctx, categoryID)
	if errors.Is(err, model.ErrCategoryNotFound) {
		return errors.Wrapf(ErrUnknownCategory, "category %s", categoryID)
	}
	return err
}

func newProductPage(items []model.Product, total, page, pageSize int) *model.ProductPage {
	return &model.ProductPage{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: (total + pageSize - 1) / pageSize,
	}
}
