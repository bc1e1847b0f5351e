package store

import (
	"context"
	"time"

	"posadmin/internal/order/models"
)

// Store is the order persistence surface. Mutations on absent ids return
// sentinel.ErrNotFound; List returns orders newest first.
type Store interface {
	List(ctx context.Context) ([]*models.Order, error)
	Get(ctx context.Context, id int64) (*models.Order, error)
	UpdateStatus(ctx context.Context, id int64, status models.Status) error
	UpdateOrderDate(ctx context.Context, id int64, orderDate time.Time) error
	ClearSalesReport(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}
