package product

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Filter is one faceted listing request. All facets are optional and combine
// independently; zero value means "no filtering, first page of 20".
type Filter struct {
	Search        string
	Categories    []int
	Subcategories []int
	Brands        []int
	PMP           bool
	Promotion     bool
	Clearance     bool
	Page          int
	Limit         int
	IncludeCount  bool
}

// ParseFilter decodes the wire encoding used by the storefront: comma-separated
// integer lists for id facets, "true"/"false" strings for toggles. Malformed
// values are rejected here rather than being passed through to Postgres.
func ParseFilter(values url.Values) (Filter, error) {
	f := Filter{
		Search: strings.TrimSpace(values.Get("search")),
		Page:   1,
		Limit:  DefaultLimit,
	}

	var err error
	if f.Categories, err = parseIDList(values.Get("categories")); err != nil {
		return Filter{}, fmt.Errorf("categories: %w", err)
	}
	if f.Subcategories, err = parseIDList(values.Get("subcategories")); err != nil {
		return Filter{}, fmt.Errorf("subcategories: %w", err)
	}
	if f.Brands, err = parseIDList(values.Get("brands")); err != nil {
		return Filter{}, fmt.Errorf("brands: %w", err)
	}

	if f.PMP, err = parseToggle(values.Get("pmp")); err != nil {
		return Filter{}, fmt.Errorf("pmp: %w", err)
	}
	if f.Promotion, err = parseToggle(values.Get("promotion")); err != nil {
		return Filter{}, fmt.Errorf("promotion: %w", err)
	}
	if f.Clearance, err = parseToggle(values.Get("clearance")); err != nil {
		return Filter{}, fmt.Errorf("clearance: %w", err)
	}
	if f.IncludeCount, err = parseToggle(values.Get("count")); err != nil {
		return Filter{}, fmt.Errorf("count: %w", err)
	}

	if raw := values.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return Filter{}, ErrInvalidPage
		}
		f.Page = page
	}

	if raw := values.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			return Filter{}, ErrInvalidLimit
		}
		if limit > MaxLimit {
			limit = MaxLimit
		}
		f.Limit = limit
	}

	return f, nil
}

// Normalize clamps pagination to sane bounds. Repositories assume it has run.
func (f *Filter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = DefaultLimit
	} else if f.Limit > MaxLimit {
		f.Limit = MaxLimit
	}
}

func parseIDList(raw string) ([]int, error) {
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	ids := make([]int, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidFacetID, part)
		}
		ids = append(ids, id)
	}

	return ids, nil
}

func parseToggle(raw string) (bool, error) {
	switch raw {
	case "", "false":
		return false, nil
	case "true":
		return true, nil
	default:
		return false, fmt.Errorf("%w: %q", ErrInvalidToggle, raw)
	}
}
