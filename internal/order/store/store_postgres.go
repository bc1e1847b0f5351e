package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"posadmin/internal/order/models"
	"posadmin/pkg/platform/sentinel"
)

// Postgres persists orders in PostgreSQL. Pure I/O; transition rules live in
// the service.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

const orderColumns = `
	id, full_name, phone_number, address, city, state_province, postal_code,
	delivery_address, payment_method, subtotal, delivery_fee, total,
	order_date, tracking_number, status, in_sales_report
`

func scanOrder(row interface{ Scan(...any) error }) (*models.Order, error) {
	var o models.Order
	err := row.Scan(
		&o.ID, &o.FullName, &o.PhoneNumber, &o.Address, &o.City,
		&o.StateProvince, &o.PostalCode, &o.DeliveryAddress, &o.PaymentMethod,
		&o.Subtotal, &o.DeliveryFee, &o.Total,
		&o.OrderDate, &o.TrackingNumber, &o.Status, &o.InSalesReport,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (s *Postgres) List(ctx context.Context) ([]*models.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY order_date DESC, id DESC`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []*models.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (s *Postgres) Get(ctx context.Context, id int64) (*models.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	o, err := scanOrder(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

func (s *Postgres) UpdateStatus(ctx context.Context, id int64, status models.Status) error {
	return s.exec(ctx, "update order status", `UPDATE orders SET status = $1 WHERE id = $2`, status, id)
}

func (s *Postgres) UpdateOrderDate(ctx context.Context, id int64, orderDate time.Time) error {
	return s.exec(ctx, "update order date", `UPDATE orders SET order_date = $1 WHERE id = $2`, orderDate, id)
}

func (s *Postgres) ClearSalesReport(ctx context.Context, id int64) error {
	return s.exec(ctx, "clear sales report flag", `UPDATE orders SET in_sales_report = FALSE WHERE id = $1`, id)
}

func (s *Postgres) Delete(ctx context.Context, id int64) error {
	return s.exec(ctx, "delete order", `DELETE FROM orders WHERE id = $1`, id)
}

// exec runs a single-row mutation and converts "no rows touched" into
// sentinel.ErrNotFound, mirroring the memory store.
func (s *Postgres) exec(ctx context.Context, op, query string, args ...any) error {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}
