package cart

import "time"

// CartItem is one line in a customer's cart: a product at one pricing tier.
type CartItem struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	ProductID int       `json:"product_id"`
	Tier      int       `json:"tier"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Display fields joined from the catalog at read time.
	Item        string   `json:"item"`
	Description string   `json:"description"`
	UnitPrice   float64  `json:"unit_price"`
	PromoPrice  *float64 `json:"promo_price,omitempty"`
}

type AddItemParams struct {
	UserID    int
	ProductID int
	Tier      int
	Quantity  int
}
