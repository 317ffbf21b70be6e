package product

import (
	"net/url"
	"strings"
	"time"
)

const (
	TagPMP   = "PMP"
	TagPlain = "PLAIN"

	BarcodeEAN      = "EAN"
	BarcodeInternal = "INTERNAL"

	// Clearance lines carry a /R suffix on the SKU by business convention,
	// there is no dedicated flag column.
	ClearanceSuffix = "/R"
)

type Product struct {
	ID              int       `json:"id"`
	Item            string    `json:"item"`
	Description     string    `json:"description"`
	PackDescription string    `json:"pack_description"`
	VATCode         string    `json:"vat_code"`
	Stock           int       `json:"stock"`
	CategoryID      *int      `json:"hierarchy1"`
	SubcategoryID   *int      `json:"hierarchy2"`
	BrandID         *int      `json:"brand_id"`
	PMPTag          string    `json:"pmp_tag"`
	RRP             float64   `json:"rrp"`
	POR             float64   `json:"por"`
	ImageURL        string    `json:"image_url"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	Pricing  []*PricingTier `json:"pricing"`
	Barcodes []*Barcode     `json:"barcodes"`
}

// PricingTier is one pack-size price variant of a product, tier 1..3.
// Promo fields are jointly null or jointly populated.
type PricingTier struct {
	ID         int        `json:"id"`
	ProductID  int        `json:"product_id"`
	Tier       int        `json:"tier"`
	SellPrice  float64    `json:"sell_price"`
	PromoPrice *float64   `json:"promo_price,omitempty"`
	PromoStart *time.Time `json:"promo_start,omitempty"`
	PromoEnd   *time.Time `json:"promo_end,omitempty"`
}

type Barcode struct {
	ID        int    `json:"id"`
	ProductID int    `json:"product_id"`
	Barcode   string `json:"barcode"`
	Kind      string `json:"kind"`
}

// ImageURL derives the CDN location of a product image from its SKU. SKUs can
// contain slashes ("ABC/R"), so the item is path-escaped.
func ImageURL(base, item string) string {
	if base == "" {
		return ""
	}
	return strings.TrimRight(base, "/") + "/" + url.PathEscape(item) + ".jpg"
}
