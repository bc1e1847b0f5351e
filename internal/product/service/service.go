// Package service implements inventory CRUD with pagination. Thin by design;
// the interesting rules live in validation and the page math.
package service

import (
	"context"
	"errors"

	"posadmin/internal/product/models"
	"posadmin/internal/product/store"
	dErrors "posadmin/pkg/domain-errors"
	"posadmin/pkg/platform/sentinel"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

type Service struct {
	products store.Store
}

func New(products store.Store) *Service {
	return &Service{products: products}
}

// Page returns one page of products. Page numbers start at 1; out-of-range
// values clamp instead of erroring so a stale pagination UI stays usable.
func (s *Service) Page(ctx context.Context, page, limit int) (*models.Page, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	total, err := s.products.Count(ctx)
	if err != nil {
		return nil, dErrors.New(dErrors.CodeInternal, "failed to count products")
	}

	products, err := s.products.List(ctx, limit, (page-1)*limit)
	if err != nil {
		return nil, dErrors.New(dErrors.CodeInternal, "failed to list products")
	}
	if products == nil {
		products = []*models.Product{}
	}

	totalPages := (total + limit - 1) / limit

	return &models.Page{
		Products:    products,
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalItems:  total,
	}, nil
}

// Create validates and stores a new product, assigning its order code.
func (s *Service) Create(ctx context.Context, product *models.Product) (int64, string, error) {
	if err := validate(product); err != nil {
		return 0, "", err
	}

	product.OrderCode = generateOrderCode()
	id, err := s.products.Create(ctx, product)
	if err != nil {
		return 0, "", dErrors.New(dErrors.CodeInternal, "failed to create product")
	}
	return id, product.OrderCode, nil
}

func (s *Service) Update(ctx context.Context, product *models.Product) error {
	if err := validate(product); err != nil {
		return err
	}

	err := s.products.Update(ctx, product)
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "product not found")
	}
	if err != nil {
		return dErrors.New(dErrors.CodeInternal, "failed to update product")
	}
	return nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	err := s.products.Delete(ctx, id)
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "product not found")
	}
	if err != nil {
		return dErrors.New(dErrors.CodeInternal, "failed to delete product")
	}
	return nil
}

func validate(product *models.Product) error {
	if product.Name == "" {
		return dErrors.New(dErrors.CodeBadRequest, "name is required")
	}
	if product.Price < 0 {
		return dErrors.New(dErrors.CodeBadRequest, "price cannot be negative")
	}
	if product.StockQuantity < 0 {
		return dErrors.New(dErrors.CodeBadRequest, "stock_quantity cannot be negative")
	}
	if product.Rating < 0 || product.Rating > 5 {
		return dErrors.New(dErrors.CodeBadRequest, "rating must be between 0 and 5")
	}
	return nil
}
