package importer

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"wholesale-be/internal/cache"
	"wholesale-be/internal/logger"

	"go.uber.org/zap"
)

// Record is one catalog row from any source, CSV or Odoo. Classification
// comes in as names and is resolved to ids during the run.
type Record struct {
	Item            string
	Description     string
	PackDescription string
	VATCode         string
	Stock           int
	Category        string
	Subcategory     string
	Brand           string
	PMP             bool
	RRP             float64
	POR             float64
	// Tier prices indexed 0..2 for tiers 1..3. Zero means the tier is absent.
	Prices      [3]float64
	PromoPrices [3]float64
	// Promo window shared by every tier carrying a promo price. Both dates
	// are required whenever any PromoPrices entry is set.
	PromoStart *time.Time
	PromoEnd   *time.Time
	EAN        string
	InternalBC string
}

// Importer upserts catalog records. A whole run is one transaction: any bad
// row rolls back everything, so the catalog never half-updates.
type Importer struct {
	db    *sql.DB
	cache *cache.Cache
}

func New(db *sql.DB, c *cache.Cache) *Importer {
	return &Importer{db: db, cache: c}
}

// Run imports all records inside one transaction and invalidates the facet
// cache on success. Returns the number of products written.
func (im *Importer) Run(ctx context.Context, records []Record) (int, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "importer"),
		zap.String("method", "Run"),
	)
	start := time.Now()

	tx, err := im.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin import tx: %w", err)
	}
	defer tx.Rollback()

	run := &txRun{
		tx:            tx,
		categories:    map[string]int{},
		subcategories: map[string]int{},
		brands:        map[string]int{},
	}

	for i, rec := range records {
		if rec.Item == "" {
			return 0, fmt.Errorf("row %d: empty item code", i+1)
		}
		if err := run.upsert(ctx, rec); err != nil {
			log.Error("import aborted, rolling back",
				zap.Int("row", i+1),
				zap.String("item", rec.Item),
				zap.Error(err),
			)
			return 0, fmt.Errorf("row %d (%s): %w", i+1, rec.Item, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit import tx: %w", err)
	}

	im.cache.InvalidateFacets(ctx)

	log.Info("import complete",
		zap.Int("products", len(records)),
		zap.Duration("duration", time.Since(start)),
	)
	return len(records), nil
}

// txRun holds the per-run name→id lookups so each vocabulary row is resolved
// at most once per import.
type txRun struct {
	tx            *sql.Tx
	categories    map[string]int
	subcategories map[string]int
	brands        map[string]int
}

func (r *txRun) upsert(ctx context.Context, rec Record) error {
	var categoryID, subcategoryID, brandID *int

	if rec.Category != "" {
		id, err := r.resolveCategory(ctx, rec.Category)
		if err != nil {
			return err
		}
		categoryID = &id

		if rec.Subcategory != "" {
			subID, err := r.resolveSubcategory(ctx, id, rec.Subcategory)
			if err != nil {
				return err
			}
			subcategoryID = &subID
		}
	}

	if rec.Brand != "" {
		id, err := r.resolveBrand(ctx, rec.Brand)
		if err != nil {
			return err
		}
		brandID = &id
	}

	tag := "PLAIN"
	if rec.PMP {
		tag = "PMP"
	}

	var productID int
	err := r.tx.QueryRowContext(ctx, `
		INSERT INTO products (item, description, pack_description, vat_code, stock,
			hierarchy1, hierarchy2, brand_id, pmp_tag, rrp, por)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (item) DO UPDATE SET
			description = EXCLUDED.description,
			pack_description = EXCLUDED.pack_description,
			vat_code = EXCLUDED.vat_code,
			stock = EXCLUDED.stock,
			hierarchy1 = EXCLUDED.hierarchy1,
			hierarchy2 = EXCLUDED.hierarchy2,
			brand_id = EXCLUDED.brand_id,
			pmp_tag = EXCLUDED.pmp_tag,
			rrp = EXCLUDED.rrp,
			por = EXCLUDED.por,
			updated_at = NOW()
		RETURNING id
	`, rec.Item, rec.Description, rec.PackDescription, rec.VATCode, rec.Stock,
		categoryID, subcategoryID, brandID, tag, rec.RRP, rec.POR).
		Scan(&productID)
	if err != nil {
		return fmt.Errorf("upsert product: %w", err)
	}

	if err := r.replacePricing(ctx, productID, rec); err != nil {
		return err
	}

	return r.replaceBarcodes(ctx, productID, rec)
}

func (r *txRun) replacePricing(ctx context.Context, productID int, rec Record) error {
	if _, err := r.tx.ExecContext(ctx, `DELETE FROM product_pricing WHERE product_id = $1`, productID); err != nil {
		return fmt.Errorf("clear pricing: %w", err)
	}

	for i, price := range rec.Prices {
		if price <= 0 {
			continue
		}

		// Promo fields stay jointly null or jointly populated per tier row.
		var promo *float64
		var promoStart, promoEnd *time.Time
		if rec.PromoPrices[i] > 0 {
			if rec.PromoStart == nil || rec.PromoEnd == nil {
				return fmt.Errorf("pricing tier %d: promo price without promo window", i+1)
			}
			p := rec.PromoPrices[i]
			promo = &p
			promoStart = rec.PromoStart
			promoEnd = rec.PromoEnd
		}

		_, err := r.tx.ExecContext(ctx, `
			INSERT INTO product_pricing (product_id, tier, sell_price, promo_price, promo_start, promo_end)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, productID, i+1, price, promo, promoStart, promoEnd)
		if err != nil {
			return fmt.Errorf("insert pricing tier %d: %w", i+1, err)
		}
	}

	return nil
}

func (r *txRun) replaceBarcodes(ctx context.Context, productID int, rec Record) error {
	if _, err := r.tx.ExecContext(ctx, `DELETE FROM barcodes WHERE product_id = $1`, productID); err != nil {
		return fmt.Errorf("clear barcodes: %w", err)
	}

	codes := []struct {
		kind, value string
	}{
		{"EAN", rec.EAN},
		{"INTERNAL", rec.InternalBC},
	}

	for _, c := range codes {
		if c.value == "" {
			continue
		}
		_, err := r.tx.ExecContext(ctx, `
			INSERT INTO barcodes (product_id, kind, barcode)
			VALUES ($1, $2, $3)
		`, productID, c.kind, c.value)
		if err != nil {
			return fmt.Errorf("insert %s barcode: %w", c.kind, err)
		}
	}

	return nil
}

func (r *txRun) resolveCategory(ctx context.Context, name string) (int, error) {
	if id, ok := r.categories[name]; ok {
		return id, nil
	}

	var id int
	err := r.tx.QueryRowContext(ctx, `
		INSERT INTO categories (name)
		VALUES ($1)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`, name).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("resolve category %q: %w", name, err)
	}

	r.categories[name] = id
	return id, nil
}

func (r *txRun) resolveSubcategory(ctx context.Context, categoryID int, name string) (int, error) {
	key := fmt.Sprintf("%d/%s", categoryID, name)
	if id, ok := r.subcategories[key]; ok {
		return id, nil
	}

	var id int
	err := r.tx.QueryRowContext(ctx, `
		INSERT INTO subcategories (category_id, name)
		VALUES ($1, $2)
		ON CONFLICT (category_id, name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`, categoryID, name).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("resolve subcategory %q: %w", name, err)
	}

	r.subcategories[key] = id
	return id, nil
}

func (r *txRun) resolveBrand(ctx context.Context, name string) (int, error) {
	if id, ok := r.brands[name]; ok {
		return id, nil
	}

	var id int
	err := r.tx.QueryRowContext(ctx, `
		INSERT INTO brands (name)
		VALUES ($1)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`, name).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("resolve brand %q: %w", name, err)
	}

	r.brands[name] = id
	return id, nil
}
