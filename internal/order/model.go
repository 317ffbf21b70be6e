package order

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusPicking   OrderStatus = "PICKING"
	StatusCompleted OrderStatus = "COMPLETED"
	StatusCancelled OrderStatus = "CANCELLED"
)

// CanTransition encodes the picking workflow: orders are picked before they
// complete, and only unpicked orders can be cancelled.
func CanTransition(from, to OrderStatus) bool {
	switch from {
	case StatusPending:
		return to == StatusPicking || to == StatusCancelled
	case StatusPicking:
		return to == StatusCompleted
	}
	return false
}

type Order struct {
	ID        int         `json:"id"`
	Reference uuid.UUID   `json:"reference"`
	UserID    int         `json:"user_id"`
	Status    OrderStatus `json:"status"`
	Total     float64     `json:"total"`
	Notes     string      `json:"notes,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`

	Items []*OrderItem `json:"items"`
}

// OrderItem denormalizes the catalog fields at placement time so later
// imports cannot rewrite what was ordered.
type OrderItem struct {
	ID          int     `json:"id"`
	OrderID     int     `json:"order_id"`
	ProductID   int     `json:"product_id"`
	Item        string  `json:"item"`
	Description string  `json:"description"`
	Tier        int     `json:"tier"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}
