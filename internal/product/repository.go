package product

import (
	"context"
	"database/sql"
	"fmt"

	"wholesale-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	List(ctx context.Context, f Filter) ([]*Product, *int, error)
	GetByItem(ctx context.Context, item string) (*Product, error)
	GetByBarcode(ctx context.Context, barcode string) (*Product, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// List runs the compiled filter query, then attaches pricing tiers and
// barcodes for the whole page with two bulk child queries instead of per-row
// lookups.
func (r *repository) List(ctx context.Context, f Filter) ([]*Product, *int, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "List"),
	)

	var total *int
	if f.IncludeCount {
		query, args := f.countQuery()
		var n int
		if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
			log.Error("count query failed", zap.Error(err))
			return nil, nil, fmt.Errorf("count products: %w", err)
		}
		total = &n
	}

	query, args := f.listQuery()
	log.Debug("executing product list query",
		zap.String("query", query),
		zap.Any("args", args),
	)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("list query failed", zap.Error(err))
		return nil, nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products := make([]*Product, 0, f.Limit)
	ids := make([]int, 0, f.Limit)

	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, nil, err
		}
		products = append(products, p)
		ids = append(ids, p.ID)
	}
	if err := rows.Err(); err != nil {
		log.Error("rows iteration failed", zap.Error(err))
		return nil, nil, err
	}

	if len(products) == 0 {
		return products, total, nil
	}

	if err := r.attachChildren(ctx, products, ids); err != nil {
		return nil, nil, err
	}

	return products, total, nil
}

func (r *repository) GetByItem(ctx context.Context, item string) (*Product, error) {
	query := "SELECT " + productColumns + " FROM products p WHERE p.item = $1"

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, item))
	if err == sql.ErrNoRows {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get product %q: %w", item, err)
	}

	if err := r.attachChildren(ctx, []*Product{p}, []int{p.ID}); err != nil {
		return nil, err
	}
	return p, nil
}

// GetByBarcode resolves a scanned code to a product. Barcodes are not unique
// across SKUs; the most recently imported row wins.
func (r *repository) GetByBarcode(ctx context.Context, barcode string) (*Product, error) {
	query := "SELECT " + productColumns + ` FROM products p
		JOIN barcodes b ON b.product_id = p.id
		WHERE b.barcode = $1
		ORDER BY b.id DESC
		LIMIT 1`

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, barcode))
	if err == sql.ErrNoRows {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get product by barcode %q: %w", barcode, err)
	}

	if err := r.attachChildren(ctx, []*Product{p}, []int{p.ID}); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *repository) attachChildren(ctx context.Context, products []*Product, ids []int) error {
	byID := make(map[int]*Product, len(products))
	for _, p := range products {
		p.Pricing = []*PricingTier{}
		p.Barcodes = []*Barcode{}
		byID[p.ID] = p
	}

	pricing, err := r.pricingFor(ctx, ids)
	if err != nil {
		return err
	}
	for _, t := range pricing {
		if p, ok := byID[t.ProductID]; ok {
			p.Pricing = append(p.Pricing, t)
		}
	}

	barcodes, err := r.barcodesFor(ctx, ids)
	if err != nil {
		return err
	}
	for _, b := range barcodes {
		if p, ok := byID[b.ProductID]; ok {
			p.Barcodes = append(p.Barcodes, b)
		}
	}

	return nil
}

func (r *repository) pricingFor(ctx context.Context, ids []int) ([]*PricingTier, error) {
	query := `
		SELECT id, product_id, tier, sell_price, promo_price, promo_start, promo_end
		FROM product_pricing
		WHERE product_id = ANY($1)
		ORDER BY product_id, tier
	`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("fetch pricing: %w", err)
	}
	defer rows.Close()

	var tiers []*PricingTier
	for rows.Next() {
		var t PricingTier
		if err := rows.Scan(&t.ID, &t.ProductID, &t.Tier, &t.SellPrice, &t.PromoPrice, &t.PromoStart, &t.PromoEnd); err != nil {
			return nil, fmt.Errorf("scan pricing: %w", err)
		}
		tiers = append(tiers, &t)
	}
	return tiers, rows.Err()
}

func (r *repository) barcodesFor(ctx context.Context, ids []int) ([]*Barcode, error) {
	query := `
		SELECT id, product_id, barcode, kind
		FROM barcodes
		WHERE product_id = ANY($1)
		ORDER BY product_id, id
	`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("fetch barcodes: %w", err)
	}
	defer rows.Close()

	var barcodes []*Barcode
	for rows.Next() {
		var b Barcode
		if err := rows.Scan(&b.ID, &b.ProductID, &b.Barcode, &b.Kind); err != nil {
			return nil, fmt.Errorf("scan barcode: %w", err)
		}
		barcodes = append(barcodes, &b)
	}
	return barcodes, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row rowScanner) (*Product, error) {
	var p Product
	err := row.Scan(
		&p.ID, &p.Item, &p.Description, &p.PackDescription, &p.VATCode,
		&p.Stock, &p.CategoryID, &p.SubcategoryID, &p.BrandID, &p.PMPTag,
		&p.RRP, &p.POR, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
