package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

const schema = `
CREATE TABLE IF NOT EXISTS admins (
    id uuid PRIMARY KEY,
    username text NOT NULL UNIQUE,
    password_hash text NOT NULL,
    created_at timestamptz NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS login_events (
    id uuid PRIMARY KEY,
    admin_id uuid NOT NULL REFERENCES admins(id) ON DELETE CASCADE,
    username text NOT NULL,
    device text NOT NULL,
    ip_address text NOT NULL,
    created_at timestamptz NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS login_events_created_at_idx
ON login_events (created_at DESC);

CREATE TABLE IF NOT EXISTS orders (
    id bigserial PRIMARY KEY,
    full_name text NOT NULL,
    phone_number text NOT NULL,
    address text NOT NULL DEFAULT '',
    city text NOT NULL DEFAULT '',
    state_province text NOT NULL DEFAULT '',
    postal_code text NOT NULL DEFAULT '',
    delivery_address text NOT NULL DEFAULT '',
    payment_method text NOT NULL DEFAULT '',
    subtotal numeric(12,2) NOT NULL DEFAULT 0,
    delivery_fee numeric(12,2) NOT NULL DEFAULT 0,
    total numeric(12,2) NOT NULL DEFAULT 0,
    order_date timestamptz NOT NULL DEFAULT NOW(),
    tracking_number text NOT NULL DEFAULT '',
    status text NOT NULL DEFAULT 'Processing',
    in_sales_report boolean NOT NULL DEFAULT true
);

CREATE INDEX IF NOT EXISTS orders_order_date_idx
ON orders (order_date DESC);

CREATE TABLE IF NOT EXISTS products (
    id bigserial PRIMARY KEY,
    name text NOT NULL,
    description text NOT NULL DEFAULT '',
    price numeric(12,2) NOT NULL DEFAULT 0,
    image_url text NOT NULL DEFAULT '',
    stock_quantity integer NOT NULL DEFAULT 0,
    category text NOT NULL DEFAULT '',
    supplier_id bigint,
    order_code text NOT NULL UNIQUE,
    rating numeric(3,2) NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS ordered_products (
    id bigserial PRIMARY KEY,
    order_id bigint NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
    product_id bigint NOT NULL REFERENCES products(id) ON DELETE CASCADE,
    quantity integer NOT NULL DEFAULT 1
);

CREATE INDEX IF NOT EXISTS ordered_products_product_id_idx
ON ordered_products (product_id);

CREATE TABLE IF NOT EXISTS product_ratings (
    id bigserial PRIMARY KEY,
    product_id bigint NOT NULL REFERENCES products(id) ON DELETE CASCADE,
    rating numeric(3,2) NOT NULL,
    created_at timestamptz NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS product_ratings_created_at_idx
ON product_ratings (created_at);

CREATE TABLE IF NOT EXISTS scheduled_tasks (
    id uuid PRIMARY KEY,
    order_id bigint NOT NULL,
    action text NOT NULL,
    due_at timestamptz NOT NULL,
    created_at timestamptz NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS scheduled_tasks_due_at_idx
ON scheduled_tasks (due_at);
`

// Migrate applies the schema. Statements are idempotent so repeated startup
// runs are safe.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
