package orders

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/roasthouse/storefront/pkg/models"
)

// PostgresStore is the durable order log. Append wraps the order row
// and its item rows in one transaction so a failed item insert never
// leaves a partial order behind.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) (*PostgresStore, error) {
	if err := createTables(db); err != nil {
		return nil, fmt.Errorf("create order tables: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

func createTables(db *sql.DB) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS orders (
			id VARCHAR(255) PRIMARY KEY,
			customer_id VARCHAR(255) NOT NULL,
			total_price_cents BIGINT NOT NULL,
			status VARCHAR(50) NOT NULL,
			created_at TIMESTAMP NOT NULL,
			delivery_address TEXT NOT NULL,
			notes TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS order_items (
			id SERIAL PRIMARY KEY,
			order_id VARCHAR(255) NOT NULL REFERENCES orders(id),
			product_id VARCHAR(255) NOT NULL,
			product_name VARCHAR(255) NOT NULL,
			quantity INTEGER NOT NULL,
			price_cents BIGINT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_order_items_order_id ON order_items(order_id)`,
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return err
		}
	}
	return nil
}

func (s *PostgresStore) Append(ctx context.Context, order *models.Order) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO orders (id, customer_id, total_price_cents, status, created_at, delivery_address, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err = tx.ExecContext(ctx, query, order.ID, order.CustomerID, int64(order.TotalPrice),
		order.Status, order.CreatedAt, order.DeliveryAddress, order.Notes)
	if err != nil {
		return err
	}

	for _, item := range order.Items {
		itemQuery := `
			INSERT INTO order_items (order_id, product_id, product_name, quantity, price_cents)
			VALUES ($1, $2, $3, $4, $5)
		`
		_, err = tx.ExecContext(ctx, itemQuery, order.ID, item.ProductID, item.ProductName,
			item.Quantity, int64(item.Price))
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *PostgresStore) List(ctx context.Context) ([]models.Order, error) {
	query := `
		SELECT id, customer_id, total_price_cents, status, created_at, delivery_address, COALESCE(notes, '')
		FROM orders ORDER BY created_at ASC, id ASC
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var order models.Order
		var cents int64
		err := rows.Scan(&order.ID, &order.CustomerID, &cents, &order.Status,
			&order.CreatedAt, &order.DeliveryAddress, &order.Notes)
		if err != nil {
			return nil, err
		}
		order.TotalPrice = models.Money(cents)
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		items, err := s.listItems(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}

	return orders, nil
}

func (s *PostgresStore) Get(ctx context.Context, id string) (*models.Order, error) {
	order := &models.Order{}
	var cents int64

	query := `
		SELECT id, customer_id, total_price_cents, status, created_at, delivery_address, COALESCE(notes, '')
		FROM orders WHERE id = $1
	`
	err := s.db.QueryRowContext(ctx, query, id).Scan(&order.ID, &order.CustomerID, &cents,
		&order.Status, &order.CreatedAt, &order.DeliveryAddress, &order.Notes)
	if err == sql.ErrNoRows {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	order.TotalPrice = models.Money(cents)

	order.Items, err = s.listItems(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (s *PostgresStore) listItems(ctx context.Context, orderID string) ([]models.OrderItem, error) {
	query := `
		SELECT product_id, product_name, quantity, price_cents
		FROM order_items WHERE order_id = $1 ORDER BY id ASC
	`
	rows, err := s.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.OrderItem
	for rows.Next() {
		var item models.OrderItem
		var cents int64
		if err := rows.Scan(&item.ProductID, &item.ProductName, &item.Quantity, &cents); err != nil {
			return nil, err
		}
		item.Price = models.Money(cents)
		items = append(items, item)
	}
	return items, rows.Err()
}
