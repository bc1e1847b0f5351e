package stats

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// SalesData aggregates orders placed inside the [from, to) window.
// Customers are distinct phone numbers.
func (s *PostgresStore) SalesData(ctx context.Context, from, to time.Time) (SalesData, error) {
	const query = `
		SELECT
			COALESCE(SUM(total), 0),
			COUNT(*),
			COUNT(DISTINCT phone_number)
		FROM orders
		WHERE order_date >= $1
		  AND order_date < $2`

	var data SalesData
	err := s.db.QueryRowContext(ctx, query, from, to).
		Scan(&data.PeriodSales, &data.TotalOrders, &data.TotalCustomers)
	if err != nil {
		return SalesData{}, fmt.Errorf("query sales data: %w", err)
	}
	return data, nil
}

func (s *PostgresStore) TopProducts(ctx context.Context, limit int) ([]TopProduct, error) {
	const query = `
		SELECT p.id, p.name, p.image_url, p.rating, COALESCE(SUM(op.quantity), 0) AS sold
		FROM products p
		LEFT JOIN ordered_products op ON op.product_id = p.id
		GROUP BY p.id, p.name, p.image_url, p.rating
		ORDER BY sold DESC, p.rating DESC
		LIMIT $1`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query top products: %w", err)
	}
	defer rows.Close()

	products := make([]TopProduct, 0, limit)
	for rows.Next() {
		var p TopProduct
		if err := rows.Scan(&p.ID, &p.Name, &p.ImageURL, &p.Rating, &p.Sold); err != nil {
			return nil, fmt.Errorf("scan top product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate top products: %w", err)
	}
	return products, nil
}

func (s *PostgresStore) TotalProducts(ctx context.Context) (int, error) {
	return s.scanCount(ctx, `SELECT COUNT(*) FROM products`)
}

func (s *PostgresStore) TotalStock(ctx context.Context) (int, error) {
	return s.scanCount(ctx, `SELECT COALESCE(SUM(stock_quantity), 0) FROM products`)
}

func (s *PostgresStore) RatedProductsCount(ctx context.Context, from, to time.Time) (int, error) {
	const query = `
		SELECT COUNT(DISTINCT product_id)
		FROM product_ratings
		WHERE created_at >= $1
		  AND created_at < $2`

	var n int
	if err := s.db.QueryRowContext(ctx, query, from, to).Scan(&n); err != nil {
		return 0, fmt.Errorf("query rated products count: %w", err)
	}
	return n, nil
}

func (s *PostgresStore) scanCount(ctx context.Context, query string) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("query count: %w", err)
	}
	return n, nil
}
