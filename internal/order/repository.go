package order

import (
	"context"
	"database/sql"
	"fmt"

	"wholesale-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	CreateOrderTx(ctx context.Context, o *Order) error
	GetOrders(ctx context.Context, userID *int) ([]*Order, error)
	GetOrderDetail(ctx context.Context, orderID int) (*Order, error)
	UpdateStatus(ctx context.Context, orderID int, status OrderStatus) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// CreateOrderTx inserts the order with its lines and clears the user's cart
// in one transaction. Any failure rolls the whole placement back.
func (r *repository) CreateOrderTx(ctx context.Context, o *Order) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateOrderTx"),
		zap.Int("user_id", o.UserID),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin order tx: %w", err)
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (reference, user_id, status, total, notes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, o.Reference, o.UserID, o.Status, o.Total, o.Notes).
		Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		log.Error("failed to insert order", zap.Error(err))
		return fmt.Errorf("insert order: %w", err)
	}

	for _, item := range o.Items {
		item.OrderID = o.ID
		err = tx.QueryRowContext(ctx, `
			INSERT INTO order_items (order_id, product_id, item, description, tier, quantity, price)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id
		`, item.OrderID, item.ProductID, item.Item, item.Description, item.Tier, item.Quantity, item.Price).
			Scan(&item.ID)
		if err != nil {
			log.Error("failed to insert order item", zap.Error(err))
			return fmt.Errorf("insert order item: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM carts WHERE user_id = $1`, o.UserID); err != nil {
		log.Error("failed to clear cart", zap.Error(err))
		return fmt.Errorf("clear cart: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit order tx: %w", err)
	}

	log.Info("order placed", zap.Int("order_id", o.ID))
	return nil
}

// GetOrders returns all orders, or one user's when userID is non-nil, newest
// first, with items attached by one bulk child query.
func (r *repository) GetOrders(ctx context.Context, userID *int) ([]*Order, error) {
	query := `
		SELECT id, reference, user_id, status, total, notes, created_at, updated_at
		FROM orders
	`
	args := []interface{}{}
	if userID != nil {
		query += " WHERE user_id = $1"
		args = append(args, *userID)
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("get orders: %w", err)
	}
	defer rows.Close()

	var orders []*Order
	ids := []int{}
	byID := map[int]*Order{}

	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.Reference, &o.UserID, &o.Status, &o.Total, &o.Notes, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		o.Items = []*OrderItem{}
		orders = append(orders, &o)
		ids = append(ids, o.ID)
		byID[o.ID] = &o
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(orders) == 0 {
		return orders, nil
	}

	items, err := r.itemsFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		if o, ok := byID[item.OrderID]; ok {
			o.Items = append(o.Items, item)
		}
	}

	return orders, nil
}

func (r *repository) GetOrderDetail(ctx context.Context, orderID int) (*Order, error) {
	var o Order
	err := r.db.QueryRowContext(ctx, `
		SELECT id, reference, user_id, status, total, notes, created_at, updated_at
		FROM orders
		WHERE id = $1
	`, orderID).Scan(&o.ID, &o.Reference, &o.UserID, &o.Status, &o.Total, &o.Notes, &o.CreatedAt, &o.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get order %d: %w", orderID, err)
	}

	o.Items, err = r.itemsFor(ctx, []int{o.ID})
	if err != nil {
		return nil, err
	}

	return &o, nil
}

func (r *repository) UpdateStatus(ctx context.Context, orderID int, status OrderStatus) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`, status, orderID)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrOrderNotFound
	}

	return nil
}

func (r *repository) itemsFor(ctx context.Context, orderIDs []int) ([]*OrderItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, product_id, item, description, tier, quantity, price
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY order_id, id
	`, pq.Array(orderIDs))
	if err != nil {
		return nil, fmt.Errorf("fetch order items: %w", err)
	}
	defer rows.Close()

	var items []*OrderItem
	for rows.Next() {
		var it OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Item, &it.Description, &it.Tier, &it.Quantity, &it.Price); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items = append(items, &it)
	}

	return items, rows.Err()
}
