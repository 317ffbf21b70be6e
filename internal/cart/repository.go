package cart

import (
	"context"
	"database/sql"
	"fmt"

	"wholesale-be/internal/logger"

	"go.uber.org/zap"
)

// Repository takes the resolved user id on every call. No cart state is read
// from anywhere ambient; whose cart is touched is always explicit.
type Repository interface {
	GetItems(ctx context.Context, userID int) ([]*CartItem, error)
	GetItemByProductAndTier(ctx context.Context, userID, productID, tier int) (*CartItem, error)
	CreateItem(ctx context.Context, params AddItemParams) (*CartItem, error)
	UpdateQuantity(ctx context.Context, userID, itemID, quantity int) error
	RemoveItem(ctx context.Context, userID, itemID int) error
	Clear(ctx context.Context, userID int) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// GetItems returns the cart with catalog display fields joined on. The tier
// price is resolved at read time against product_pricing.
func (r *repository) GetItems(ctx context.Context, userID int) ([]*CartItem, error) {
	query := `
	SELECT
		c.id,
		c.user_id,
		c.product_id,
		c.tier,
		c.quantity,
		c.created_at,
		c.updated_at,
		p.item,
		p.description,
		pr.sell_price,
		pr.promo_price
	FROM carts c
	JOIN products p ON p.id = c.product_id
	JOIN product_pricing pr ON pr.product_id = c.product_id AND pr.tier = c.tier
	WHERE c.user_id = $1
	ORDER BY c.id
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("get cart rows: %w", err)
	}
	defer rows.Close()

	var items []*CartItem
	for rows.Next() {
		var it CartItem
		if err := rows.Scan(
			&it.ID, &it.UserID, &it.ProductID, &it.Tier, &it.Quantity,
			&it.CreatedAt, &it.UpdatedAt,
			&it.Item, &it.Description, &it.UnitPrice, &it.PromoPrice,
		); err != nil {
			return nil, fmt.Errorf("scan cart row: %w", err)
		}
		items = append(items, &it)
	}

	return items, rows.Err()
}

func (r *repository) GetItemByProductAndTier(ctx context.Context, userID, productID, tier int) (*CartItem, error) {
	query := `
	SELECT id, user_id, product_id, tier, quantity, created_at, updated_at
	FROM carts
	WHERE user_id = $1 AND product_id = $2 AND tier = $3
	`

	var it CartItem
	err := r.db.QueryRowContext(ctx, query, userID, productID, tier).Scan(
		&it.ID, &it.UserID, &it.ProductID, &it.Tier, &it.Quantity,
		&it.CreatedAt, &it.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &it, nil
}

func (r *repository) CreateItem(ctx context.Context, params AddItemParams) (*CartItem, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateItem"),
		zap.Int("user_id", params.UserID),
		zap.Int("product_id", params.ProductID),
	)
	log.Debug("start create cart item")

	query := `
	INSERT INTO carts (user_id, product_id, tier, quantity)
	VALUES ($1, $2, $3, $4)
	RETURNING id, user_id, product_id, tier, quantity, created_at, updated_at
	`

	var it CartItem
	err := r.db.QueryRowContext(ctx, query,
		params.UserID, params.ProductID, params.Tier, params.Quantity,
	).Scan(
		&it.ID, &it.UserID, &it.ProductID, &it.Tier, &it.Quantity,
		&it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to create cart item", zap.Error(err))
		return nil, err
	}

	return &it, nil
}

func (r *repository) UpdateQuantity(ctx context.Context, userID, itemID, quantity int) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE carts
		SET quantity = $1, updated_at = NOW()
		WHERE id = $2 AND user_id = $3
	`, quantity, itemID, userID)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCartItemNotFound
	}

	return nil
}

func (r *repository) RemoveItem(ctx context.Context, userID, itemID int) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM carts
		WHERE id = $1 AND user_id = $2
	`, itemID, userID)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCartItemNotFound
	}

	return nil
}

func (r *repository) Clear(ctx context.Context, userID int) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM carts WHERE user_id = $1`, userID)
	return err
}
