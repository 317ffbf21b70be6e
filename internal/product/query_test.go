package product

import (
	"strings"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestPromoClearanceClause(t *testing.T) {
	tests := []struct {
		name      string
		promotion bool
		clearance bool
		want      string
	}{
		{"Neither", false, false, ""},
		{"PromotionOnly", true, false, "(pr.promo_price IS NOT NULL AND pr.promo_price > 0)"},
		{"ClearanceOnly", false, true, "p.item ILIKE '%/R'"},
		{"BothCombineWithOR", true, true, "((pr.promo_price IS NOT NULL AND pr.promo_price > 0) OR p.item ILIKE '%/R')"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, promoClearanceClause(tt.promotion, tt.clearance))
		})
	}
}

func TestListQuery_NoFacets(t *testing.T) {
	f := Filter{Page: 1, Limit: 20}
	query, args := f.listQuery()

	assert.NotContains(t, query, "WHERE")
	assert.NotContains(t, query, "JOIN")
	assert.NotContains(t, query, "GROUP BY")
	assert.Contains(t, query, "ORDER BY p.item ASC")
	assert.Contains(t, query, "LIMIT $1 OFFSET $2")
	assert.Equal(t, []interface{}{20, 0}, args)
}

func TestListQuery_Search(t *testing.T) {
	f := Filter{Search: "app", Page: 1, Limit: 20}
	query, args := f.listQuery()

	assert.Contains(t, query, "(p.description ILIKE $1 OR p.item ILIKE $1)")
	assert.Equal(t, "%app%", args[0])
}

func TestListQuery_IDFacets(t *testing.T) {
	f := Filter{
		Categories:    []int{5, 7},
		Subcategories: []int{12},
		Brands:        []int{3},
		Page:          1,
		Limit:         20,
	}
	query, args := f.listQuery()

	assert.Contains(t, query, "p.hierarchy1 = ANY($1)")
	assert.Contains(t, query, "p.hierarchy2 = ANY($2)")
	assert.Contains(t, query, "p.brand_id = ANY($3)")
	assert.Contains(t, query, "LIMIT $4 OFFSET $5")

	assert.Equal(t, pq.Array([]int{5, 7}), args[0])
	assert.Equal(t, pq.Array([]int{12}), args[1])
	assert.Equal(t, pq.Array([]int{3}), args[2])
}

func TestListQuery_PMP(t *testing.T) {
	f := Filter{PMP: true, Page: 1, Limit: 20}
	query, _ := f.listQuery()

	assert.Contains(t, query, "p.pmp_tag = 'PMP'")
}

func TestListQuery_PromotionJoinsAndDeduplicates(t *testing.T) {
	f := Filter{Promotion: true, Page: 1, Limit: 20}
	query, _ := f.listQuery()

	// The pricing join can match several tiers per product; without the
	// GROUP BY a product with two promo tiers would appear twice.
	assert.Contains(t, query, "JOIN product_pricing pr ON pr.product_id = p.id")
	assert.Contains(t, query, "GROUP BY p.id")
	assert.Contains(t, query, "pr.promo_price IS NOT NULL AND pr.promo_price > 0")

	groupIdx := strings.Index(query, "GROUP BY p.id")
	orderIdx := strings.Index(query, "ORDER BY p.item ASC")
	assert.Less(t, groupIdx, orderIdx, "GROUP BY must precede ORDER BY")
}

func TestListQuery_ClearanceOnly(t *testing.T) {
	f := Filter{Clearance: true, Page: 1, Limit: 20}
	query, _ := f.listQuery()

	assert.Contains(t, query, "p.item ILIKE '%/R'")
	assert.NotContains(t, query, "JOIN product_pricing")
	assert.NotContains(t, query, "GROUP BY")
}

func TestListQuery_PromotionOrClearance(t *testing.T) {
	f := Filter{Promotion: true, Clearance: true, Page: 1, Limit: 20}
	query, _ := f.listQuery()

	assert.Contains(t, query,
		"((pr.promo_price IS NOT NULL AND pr.promo_price > 0) OR p.item ILIKE '%/R')")
}

func TestListQuery_AllFacetsANDComposed(t *testing.T) {
	f := Filter{
		Search:     "cola",
		Categories: []int{1},
		PMP:        true,
		Page:       2,
		Limit:      20,
	}
	query, args := f.listQuery()

	whereIdx := strings.Index(query, "WHERE")
	require := query[whereIdx:]
	assert.Equal(t, 2, strings.Count(require, " AND "))

	// page 2 with limit 20 starts at offset 20
	assert.Equal(t, 20, args[len(args)-1])
}

func TestCountQuery(t *testing.T) {
	f := Filter{Promotion: true, Categories: []int{4}, Page: 3, Limit: 20}
	query, args := f.countQuery()

	assert.Contains(t, query, "SELECT COUNT(DISTINCT p.id) FROM products p")
	assert.Contains(t, query, "JOIN product_pricing pr ON pr.product_id = p.id")
	assert.Contains(t, query, "p.hierarchy1 = ANY($1)")
	assert.NotContains(t, query, "LIMIT")
	assert.NotContains(t, query, "ORDER BY")
	assert.Len(t, args, 1)
}
