package store

import (
	"context"

	"posadmin/internal/product/models"
)

// Store is the inventory persistence surface. Mutations on absent ids return
// sentinel.ErrNotFound.
type Store interface {
	List(ctx context.Context, limit, offset int) ([]*models.Product, error)
	Count(ctx context.Context) (int, error)
	Create(ctx context.Context, product *models.Product) (int64, error)
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id int64) error
}
