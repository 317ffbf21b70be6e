// Package storefront is the client-side companion to the catalog API: a
// filter editor with draft/applied states, a debounced search box, and a
// paginating result browser that survives request races.
package storefront

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// FilterSet is one complete facet selection. The id sets are kept as maps
// so membership flips are O(1); encoding sorts them for stable URLs.
type FilterSet struct {
	Search        string
	Categories    map[int]bool
	Subcategories map[int]bool
	Brands        map[int]bool
	PMP           bool
	Promotion     bool
	Clearance     bool
}

func NewFilterSet() FilterSet {
	return FilterSet{
		Categories:    map[int]bool{},
		Subcategories: map[int]bool{},
		Brands:        map[int]bool{},
	}
}

func (f FilterSet) Clone() FilterSet {
	c := NewFilterSet()
	c.Search = f.Search
	c.PMP = f.PMP
	c.Promotion = f.Promotion
	c.Clearance = f.Clearance
	for id := range f.Categories {
		c.Categories[id] = true
	}
	for id := range f.Subcategories {
		c.Subcategories[id] = true
	}
	for id := range f.Brands {
		c.Brands[id] = true
	}
	return c
}

// Query encodes the set the way the server parses it: comma-separated
// integer lists, "true" strings for the toggles.
func (f FilterSet) Query() url.Values {
	v := url.Values{}

	if f.Search != "" {
		v.Set("search", f.Search)
	}
	if s := joinIDs(f.Categories); s != "" {
		v.Set("categories", s)
	}
	if s := joinIDs(f.Subcategories); s != "" {
		v.Set("subcategories", s)
	}
	if s := joinIDs(f.Brands); s != "" {
		v.Set("brands", s)
	}
	if f.PMP {
		v.Set("pmp", "true")
	}
	if f.Promotion {
		v.Set("promotion", "true")
	}
	if f.Clearance {
		v.Set("clearance", "true")
	}

	return v
}

func joinIDs(set map[int]bool) string {
	if len(set) == 0 {
		return ""
	}

	ids := make([]int, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}
