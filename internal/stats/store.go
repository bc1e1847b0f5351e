package stats

import (
	"context"
	"time"
)

// Store reads dashboard aggregates from the primary datastore.
type Store interface {
	SalesData(ctx context.Context, from, to time.Time) (SalesData, error)
	TopProducts(ctx context.Context, limit int) ([]TopProduct, error)
	TotalProducts(ctx context.Context) (int, error)
	TotalStock(ctx context.Context) (int, error)
	RatedProductsCount(ctx context.Context, from, to time.Time) (int, error)
}
