package store

import (
	"context"
	"database/sql"
	"fmt"

	"posadmin/internal/product/models"
	"posadmin/pkg/platform/sentinel"
)

// Postgres persists inventory records in PostgreSQL.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) List(ctx context.Context, limit, offset int) ([]*models.Product, error) {
	query := `
		SELECT id, name, description, price, image_url, stock_quantity,
		       category, supplier_id, order_code, rating
		FROM products
		ORDER BY id
		LIMIT $1 OFFSET $2
	`
	rows, err := s.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		var p models.Product
		err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.ImageURL,
			&p.StockQuantity, &p.Category, &p.SupplierID, &p.OrderCode, &p.Rating)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, &p)
	}
	return products, rows.Err()
}

func (s *Postgres) Count(ctx context.Context) (int, error) {
	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&total); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return total, nil
}

func (s *Postgres) Create(ctx context.Context, product *models.Product) (int64, error) {
	query := `
		INSERT INTO products (name, description, price, image_url, stock_quantity,
		                      category, supplier_id, order_code, rating)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	var id int64
	err := s.db.QueryRowContext(ctx, query,
		product.Name, product.Description, product.Price, product.ImageURL,
		product.StockQuantity, product.Category, product.SupplierID,
		product.OrderCode, product.Rating,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create product: %w", err)
	}
	return id, nil
}

func (s *Postgres) Update(ctx context.Context, product *models.Product) error {
	query := `
		UPDATE products
		SET name = $1, description = $2, price = $3, image_url = $4,
		    stock_quantity = $5, category = $6, supplier_id = $7, rating = $8
		WHERE id = $9
	`
	res, err := s.db.ExecContext(ctx, query,
		product.Name, product.Description, product.Price, product.ImageURL,
		product.StockQuantity, product.Category, product.SupplierID,
		product.Rating, product.ID,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *Postgres) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}
