package product

import (
	"fmt"
	"strings"

	"github.com/lib/pq"
)

const productColumns = `p.id, p.item, p.description, p.pack_description, p.vat_code,
		p.stock, p.hierarchy1, p.hierarchy2, p.brand_id, p.pmp_tag, p.rrp, p.por,
		p.created_at, p.updated_at`

const (
	promoCondition     = "(pr.promo_price IS NOT NULL AND pr.promo_price > 0)"
	clearanceCondition = "p.item ILIKE '%/R'"
)

// promoClearanceClause combines the promotion and clearance predicates. Unlike
// every other facet, which ANDs with the rest, these two OR together when both
// are requested: a product shows if it qualifies by either condition.
func promoClearanceClause(promotion, clearance bool) string {
	switch {
	case promotion && clearance:
		return "(" + promoCondition + " OR " + clearanceCondition + ")"
	case promotion:
		return promoCondition
	case clearance:
		return clearanceCondition
	default:
		return ""
	}
}

// listQuery compiles the filter into one parameterized statement.
//
// The pricing join is only taken when the promotion facet needs to inspect
// promo_price; it can match several tiers per product, so the result is
// deduplicated with GROUP BY p.id. The sort key is fixed (item ASC) so that
// offset pagination stays stable across requests.
func (f Filter) listQuery() (string, []interface{}) {
	query := "SELECT " + productColumns + " FROM products p"
	if f.Promotion {
		query += " JOIN product_pricing pr ON pr.product_id = p.id"
	}

	where, args := f.predicates()
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}

	if f.Promotion {
		query += " GROUP BY p.id"
	}

	query += " ORDER BY p.item ASC"
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, f.Limit, (f.Page-1)*f.Limit)

	return query, args
}

// countQuery shares the predicate set with listQuery and counts distinct
// products, so the total is stable under the pricing join.
func (f Filter) countQuery() (string, []interface{}) {
	query := "SELECT COUNT(DISTINCT p.id) FROM products p"
	if f.Promotion {
		query += " JOIN product_pricing pr ON pr.product_id = p.id"
	}

	where, args := f.predicates()
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}

	return query, args
}

func (f Filter) predicates() ([]string, []interface{}) {
	where := []string{}
	args := []interface{}{}

	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		where = append(where, fmt.Sprintf("(p.description ILIKE $%d OR p.item ILIKE $%d)", len(args), len(args)))
	}

	if len(f.Categories) > 0 {
		where = append(where, fmt.Sprintf("p.hierarchy1 = ANY($%d)", len(args)+1))
		args = append(args, pq.Array(f.Categories))
	}

	if len(f.Subcategories) > 0 {
		where = append(where, fmt.Sprintf("p.hierarchy2 = ANY($%d)", len(args)+1))
		args = append(args, pq.Array(f.Subcategories))
	}

	if len(f.Brands) > 0 {
		where = append(where, fmt.Sprintf("p.brand_id = ANY($%d)", len(args)+1))
		args = append(args, pq.Array(f.Brands))
	}

	if f.PMP {
		where = append(where, "p.pmp_tag = 'PMP'")
	}

	if clause := promoClearanceClause(f.Promotion, f.Clearance); clause != "" {
		where = append(where, clause)
	}

	return where, args
}
