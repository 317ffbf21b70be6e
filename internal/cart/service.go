package cart

import (
	"context"

	"wholesale-be/internal/logger"

	"go.uber.org/zap"
)

// Service defines the business logic for carts.
type Service interface {
	GetItems(ctx context.Context, userID int) ([]*CartItem, error)
	AddItem(ctx context.Context, params AddItemParams) (*CartItem, error)
	UpdateQuantity(ctx context.Context, userID, itemID, quantity int) error
	RemoveItem(ctx context.Context, userID, itemID int) error
	Clear(ctx context.Context, userID int) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetItems(ctx context.Context, userID int) ([]*CartItem, error) {
	items, err := s.repo.GetItems(ctx, userID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*CartItem{}
	}
	return items, nil
}

// AddItem merges into an existing line for the same (product, tier) rather
// than creating a duplicate row.
func (s *service) AddItem(ctx context.Context, params AddItemParams) (*CartItem, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AddItem"),
		zap.Int("user_id", params.UserID),
		zap.Int("product_id", params.ProductID),
		zap.Int("tier", params.Tier),
	)

	if params.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	if params.Tier < 1 || params.Tier > 3 {
		return nil, ErrInvalidTier
	}

	existing, err := s.repo.GetItemByProductAndTier(ctx, params.UserID, params.ProductID, params.Tier)
	if err != nil {
		log.Error("failed to check existing cart item", zap.Error(err))
		return nil, err
	}

	if existing != nil {
		newQty := existing.Quantity + params.Quantity
		if err := s.repo.UpdateQuantity(ctx, params.UserID, existing.ID, newQty); err != nil {
			log.Error("failed to merge cart quantity", zap.Error(err))
			return nil, err
		}
		existing.Quantity = newQty
		log.Info("cart item merged", zap.Int("cart_item_id", existing.ID))
		return existing, nil
	}

	item, err := s.repo.CreateItem(ctx, params)
	if err != nil {
		log.Error("failed to create cart item", zap.Error(err))
		return nil, err
	}

	log.Info("cart item added", zap.Int("cart_item_id", item.ID))
	return item, nil
}

func (s *service) UpdateQuantity(ctx context.Context, userID, itemID, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	return s.repo.UpdateQuantity(ctx, userID, itemID, quantity)
}

func (s *service) RemoveItem(ctx context.Context, userID, itemID int) error {
	return s.repo.RemoveItem(ctx, userID, itemID)
}

func (s *service) Clear(ctx context.Context, userID int) error {
	return s.repo.Clear(ctx, userID)
}
