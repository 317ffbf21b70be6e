package order

import (
	"context"
	"time"

	"wholesale-be/internal/cart"
	"wholesale-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Mailer sends the order confirmation. Implementations must be safe to call
// concurrently; sending is best-effort and never fails the placement.
type Mailer interface {
	SendOrderConfirmation(to string, o *Order) error
}

type Service interface {
	PlaceOrder(ctx context.Context, userID int, email, notes string) (*Order, error)
	GetOrders(ctx context.Context, userID int, seeAll bool) ([]*Order, error)
	GetOrderDetail(ctx context.Context, orderID, userID int, seeAll bool) (*Order, error)
	UpdateStatus(ctx context.Context, orderID int, status string) (*Order, error)
}

type service struct {
	repo   Repository
	carts  cart.Service
	mailer Mailer
}

func NewService(repo Repository, carts cart.Service, mailer Mailer) Service {
	return &service{repo: repo, carts: carts, mailer: mailer}
}

// PlaceOrder turns the user's cart into an order. The promo price wins over
// the tier sell price when one is set on the cart line.
func (s *service) PlaceOrder(ctx context.Context, userID int, email, notes string) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "PlaceOrder"),
		zap.Int("user_id", userID),
	)

	start := time.Now()

	lines, err := s.carts.GetItems(ctx, userID)
	if err != nil {
		log.Error("failed to load cart", zap.Error(err))
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	o := &Order{
		Reference: uuid.New(),
		UserID:    userID,
		Status:    StatusPending,
		Notes:     notes,
		Items:     make([]*OrderItem, 0, len(lines)),
	}

	for _, line := range lines {
		price := line.UnitPrice
		if line.PromoPrice != nil && *line.PromoPrice > 0 {
			price = *line.PromoPrice
		}

		o.Items = append(o.Items, &OrderItem{
			ProductID:   line.ProductID,
			Item:        line.Item,
			Description: line.Description,
			Tier:        line.Tier,
			Quantity:    line.Quantity,
			Price:       price,
		})
		o.Total += price * float64(line.Quantity)
	}

	if err := s.repo.CreateOrderTx(ctx, o); err != nil {
		log.Error("failed to place order",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)),
		)
		return nil, err
	}

	if s.mailer != nil && email != "" {
		go func(to string, placed Order) {
			if err := s.mailer.SendOrderConfirmation(to, &placed); err != nil {
				logger.L().Warn("order confirmation email failed",
					zap.Int("order_id", placed.ID),
					zap.Error(err),
				)
			}
		}(email, *o)
	}

	log.Info("order placed",
		zap.Int("order_id", o.ID),
		zap.Float64("total", o.Total),
		zap.Duration("duration", time.Since(start)),
	)
	return o, nil
}

func (s *service) GetOrders(ctx context.Context, userID int, seeAll bool) ([]*Order, error) {
	if seeAll {
		return s.repo.GetOrders(ctx, nil)
	}
	return s.repo.GetOrders(ctx, &userID)
}

func (s *service) GetOrderDetail(ctx context.Context, orderID, userID int, seeAll bool) (*Order, error) {
	o, err := s.repo.GetOrderDetail(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !seeAll && o.UserID != userID {
		return nil, ErrUnauthorized
	}
	return o, nil
}

func (s *service) UpdateStatus(ctx context.Context, orderID int, status string) (*Order, error) {
	next := OrderStatus(status)
	switch next {
	case StatusPending, StatusPicking, StatusCompleted, StatusCancelled:
	default:
		return nil, ErrInvalidStatus
	}

	o, err := s.repo.GetOrderDetail(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !CanTransition(o.Status, next) {
		return nil, ErrInvalidTransition
	}

	if err := s.repo.UpdateStatus(ctx, orderID, next); err != nil {
		return nil, err
	}

	o.Status = next
	return o, nil
}
