package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"backoffice/internal/models"
)

// ErrInsufficientStock is returned when an order asks for more
// units than a product has on hand.
var ErrInsufficientStock = errors.New("insufficient stock")

// IsInsufficientStock reports whether err wraps ErrInsufficientStock
func IsInsufficientStock(err error) bool {
	return errors.Is(err, ErrInsufficientStock)
}

var orderSorts = map[string]string{
	"id_asc":     "id ASC",
	"id_desc":    "id DESC",
	"name_asc":   "customer_name ASC",
	"name_desc":  "customer_name DESC",
	"newest":     "created_at DESC",
	"oldest":     "created_at ASC",
	"total_desc": "total_amount DESC",
	"total_asc":  "total_amount ASC",
}

// ListOrders retrieves a page of orders with item counts, the
// customer resolved from the linked user or the guest columns
func (s *Store) ListOrders(ctx context.Context, opts ListOptions) (*Page[models.OrderSummary], error) {
	baseQuery := `
		SELECT o.id,
		       o.status,
		       o.total_amount,
		       o.created_at,
		       o.updated_at,
		       COALESCE(u.username, o.customer_name, '') AS customer_name,
		       COALESCE(u.email, o.customer_email, '') AS customer_email,
		       COUNT(oi.id) AS item_count
		FROM orders o
		LEFT JOIN users u ON o.user_id = u.id
		LEFT JOIN order_items oi ON o.id = oi.order_id`
	args := []interface{}{}

	if opts.Query != "" {
		baseQuery += ` WHERE COALESCE(u.username, o.customer_name, '') ILIKE '%' || $1 || '%'
		    OR COALESCE(u.email, o.customer_email, '') ILIKE '%' || $1 || '%'`
		args = append(args, opts.Query)
	}

	baseQuery += ` GROUP BY o.id, o.status, o.total_amount, o.created_at, o.updated_at,
		u.username, u.email, o.customer_name, o.customer_email`

	return Paginate[models.OrderSummary](ctx, s.db, baseQuery, args, PageOptions{
		Sort:         opts.Sort,
		AllowedSorts: orderSorts,
		Page:         opts.Page,
		PerPage:      opts.PerPage,
	})
}

// GetOrderByID retrieves an order with its full item list, nil when absent
func (s *Store) GetOrderByID(ctx context.Context, id int64) (*models.OrderDetail, error) {
	var order models.OrderDetail
	err := s.db.GetContext(ctx, &order, `
		SELECT o.*,
		       COALESCE(u.username, o.customer_name, '') AS customer,
		       COALESCE(u.email, o.customer_email, '') AS customer_mail
		FROM orders o
		LEFT JOIN users u ON o.user_id = u.id
		WHERE o.id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	err = s.db.SelectContext(ctx, &order.Items, `
		SELECT oi.*,
		       p.name AS product_name,
		       p.product_code
		FROM order_items oi
		JOIN products p ON oi.product_id = p.id
		WHERE oi.order_id = $1
		ORDER BY oi.id`, id)
	if err != nil {
		return nil, err
	}

	return &order, nil
}

// LatestOrders retrieves the most recent non-cancelled orders for
// the dashboard overview
func (s *Store) LatestOrders(ctx context.Context, limit int) ([]models.OrderSummary, error) {
	var orders []models.OrderSummary
	err := s.db.SelectContext(ctx, &orders, `
		SELECT o.id,
		       o.status,
		       o.total_amount,
		       o.created_at,
		       o.updated_at,
		       COALESCE(u.username, o.customer_name, '') AS customer_name,
		       COALESCE(u.email, o.customer_email, '') AS customer_email,
		       COUNT(oi.id) AS item_count
		FROM orders o
		LEFT JOIN users u ON o.user_id = u.id
		LEFT JOIN order_items oi ON o.id = oi.order_id
		WHERE o.status IN ('pending','paid','shipped','completed')
		GROUP BY o.id, o.status, o.total_amount, o.created_at, o.updated_at,
		         u.username, u.email, o.customer_name, o.customer_email
		ORDER BY o.created_at DESC
		LIMIT $1`, limit)
	return orders, err
}

// PlaceOrderTx inserts the order and its items and decrements each
// product's stock inside one transaction. Rows are locked with FOR
// UPDATE so concurrent orders cannot oversell; insufficient stock on
// any item aborts the whole order with ErrInsufficientStock. The
// returned changes carry the post-decrement stock per product.
func (s *Store) PlaceOrderTx(ctx context.Context, order *models.Order, items []models.OrderItem) ([]models.StockChange, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	err = tx.GetContext(ctx, order, `
		INSERT INTO orders (user_id, customer_name, customer_email, status, total_amount)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`,
		order.UserID, order.CustomerName, order.CustomerEmail, order.Status, order.TotalAmount)
	if err != nil {
		return nil, fmt.Errorf("failed to insert order: %w", err)
	}

	changes := make([]models.StockChange, 0, len(items))

	for i := range items {
		item := &items[i]
		item.OrderID = order.ID

		var stock int
		err = tx.GetContext(ctx, &stock,
			"SELECT stock FROM products WHERE id = $1 FOR UPDATE", item.ProductID)
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("product not found: %d", item.ProductID)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to lock product %d: %w", item.ProductID, err)
		}

		if stock < item.Quantity {
			return nil, fmt.Errorf("product %d: available=%d, requested=%d: %w",
				item.ProductID, stock, item.Quantity, ErrInsufficientStock)
		}

		var newStock int
		err = tx.GetContext(ctx, &newStock,
			"UPDATE products SET stock = stock - $1, updated_at = NOW() WHERE id = $2 RETURNING stock",
			item.Quantity, item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("failed to decrement stock for product %d: %w", item.ProductID, err)
		}

		err = tx.GetContext(ctx, &item.ID, `
			INSERT INTO order_items (order_id, product_id, quantity, price)
			VALUES ($1, $2, $3, $4)
			RETURNING id`,
			item.OrderID, item.ProductID, item.Quantity, item.Price)
		if err != nil {
			return nil, fmt.Errorf("failed to insert order item: %w", err)
		}

		changes = append(changes, models.StockChange{
			ProductID: item.ProductID,
			Delta:     -item.Quantity,
			NewStock:  newStock,
		})
	}

	return changes, tx.Commit()
}

// CancelOrderTx marks an order cancelled and restores the stock its
// items had consumed, atomically. Returns the previous status and
// the stock changes applied.
func (s *Store) CancelOrderTx(ctx context.Context, orderID int64) (string, []models.StockChange, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return "", nil, err
	}
	defer tx.Rollback()

	var oldStatus string
	err = tx.GetContext(ctx, &oldStatus,
		"SELECT status FROM orders WHERE id = $1 FOR UPDATE", orderID)
	if err == sql.ErrNoRows {
		return "", nil, fmt.Errorf("order not found: %d", orderID)
	}
	if err != nil {
		return "", nil, err
	}

	if oldStatus == models.OrderStatusCancelled {
		return oldStatus, nil, fmt.Errorf("order %d is already cancelled", orderID)
	}

	var items []models.OrderItem
	err = tx.SelectContext(ctx, &items,
		"SELECT * FROM order_items WHERE order_id = $1", orderID)
	if err != nil {
		return "", nil, err
	}

	changes := make([]models.StockChange, 0, len(items))
	for _, item := range items {
		var newStock int
		err = tx.GetContext(ctx, &newStock,
			"UPDATE products SET stock = stock + $1, updated_at = NOW() WHERE id = $2 RETURNING stock",
			item.Quantity, item.ProductID)
		if err != nil {
			return "", nil, fmt.Errorf("failed to restock product %d: %w", item.ProductID, err)
		}
		changes = append(changes, models.StockChange{
			ProductID: item.ProductID,
			Delta:     item.Quantity,
			NewStock:  newStock,
		})
	}

	_, err = tx.ExecContext(ctx,
		"UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2",
		models.OrderStatusCancelled, orderID)
	if err != nil {
		return "", nil, err
	}

	return oldStatus, changes, tx.Commit()
}

// UpdateOrderStatus updates order status
func (s *Store) UpdateOrderStatus(ctx context.Context, orderID int64, status string) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2",
		status, orderID)
	return err
}
