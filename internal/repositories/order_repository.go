package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vurel/storefront/internal/models"
	"github.com/vurel/storefront/internal/utils"
)

type OrderRepository struct {
	DB *sql.DB
}

func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{DB: db}
}

// CreateOrder writes the order and its items in a single transaction; the
// order must never appear without its lines.
func (r *OrderRepository) CreateOrder(ctx context.Context, order *models.Order) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	tx, err := r.DB.BeginTx(dbCtx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO orders (customer_id, customer_name, customer_email, customer_phone, total, shipping_address, payment_method, payment_id, coupon_id, discount, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err = tx.QueryRowContext(dbCtx, query,
		order.CustomerID, order.CustomerName, order.CustomerEmail, order.CustomerPhone,
		order.Total, order.ShippingAddress, order.PaymentMethod, order.PaymentID,
		order.CouponID, order.Discount, order.Status).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	itemQuery := `
		INSERT INTO order_items (order_id, product_id, name, unit_price, quantity, size, color)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	for i := range order.Items {

		item := &order.Items[i]
		item.OrderID = order.ID

		err := tx.QueryRowContext(dbCtx, itemQuery,
			order.ID, item.ProductID, item.Name, item.UnitPrice, item.Quantity, item.Size, item.Color).Scan(&item.ID)

		if err != nil {
			return fmt.Errorf("failed to insert an order item: %w", err)
		}

	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit order: %w", err)
	}

	return nil
}

func (r *OrderRepository) GetOrderByID(ctx context.Context, id int64) (*models.Order, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	order := &models.Order{
		ID: id,
	}

	query := `
		SELECT customer_id, customer_name, customer_email, customer_phone, total, shipping_address, payment_method, payment_id, coupon_id, discount, status, created_at, updated_at
		FROM orders
		WHERE id = $1
	`

	err := r.DB.QueryRowContext(dbCtx, query, id).Scan(
		&order.CustomerID, &order.CustomerName, &order.CustomerEmail, &order.CustomerPhone,
		&order.Total, &order.ShippingAddress, &order.PaymentMethod, &order.PaymentID,
		&order.CouponID, &order.Discount, &order.Status, &order.CreatedAt, &order.UpdatedAt)

	if err != nil {

		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("failed to get the order: %w", err)
	}

	items, err := r.getOrderItems(dbCtx, id)
	if err != nil {
		return nil, err
	}

	order.Items = items

	return order, nil

}

func (r *OrderRepository) getOrderItems(ctx context.Context, orderID int64) ([]models.OrderItem, error) {

	query := `
		SELECT id, product_id, name, unit_price, quantity, size, color
		FROM order_items
		WHERE order_id = $1
		ORDER BY id
	`

	rows, err := r.DB.QueryContext(ctx, query, orderID)

	if err != nil {
		return nil, fmt.Errorf("failed to get the order items: %w", err)
	}

	defer rows.Close()

	var items []models.OrderItem

	for rows.Next() {

		var item models.OrderItem

		err := rows.Scan(&item.ID, &item.ProductID, &item.Name, &item.UnitPrice, &item.Quantity, &item.Size, &item.Color)

		if err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}

		item.OrderID = orderID

		items = append(items, item)

	}

	return items, rows.Err()
}

func (r *OrderRepository) ListOrdersByCustomer(ctx context.Context, customerID int64, page int, size int) ([]models.Order, int, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var total int
	countQuery := `SELECT COUNT(*) FROM orders WHERE customer_id = $1`
	err := r.DB.QueryRowContext(dbCtx, countQuery, customerID).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * size

	query := `
		SELECT id, customer_name, customer_email, customer_phone, total, shipping_address, payment_method, payment_id, coupon_id, discount, status, created_at, updated_at
		FROM orders
		WHERE customer_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.DB.QueryContext(dbCtx, query, customerID, size, offset)

	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}

	defer rows.Close()

	var orders []models.Order

	for rows.Next() {

		var order models.Order

		order.CustomerID = &customerID

		err := rows.Scan(
			&order.ID, &order.CustomerName, &order.CustomerEmail, &order.CustomerPhone,
			&order.Total, &order.ShippingAddress, &order.PaymentMethod, &order.PaymentID,
			&order.CouponID, &order.Discount, &order.Status, &order.CreatedAt, &order.UpdatedAt)

		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan the orders: %w", err)
		}

		orders = append(orders, order)

	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	for i := range orders {

		items, err := r.getOrderItems(dbCtx, orders[i].ID)
		if err != nil {
			return nil, 0, err
		}

		orders[i].Items = items

	}

	return orders, total, nil
}

func (r *OrderRepository) UpdateOrderStatus(ctx context.Context, id int64, status models.OrderStatus) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE orders
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`

	result, err := r.DB.ExecContext(dbCtx, query, status, id)

	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
