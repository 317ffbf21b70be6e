package storefront

import (
	"context"
	"sync"
	"time"
)

const DefaultPageSize = 20

// Product is the catalog row as the API serializes it. Only the fields the
// browsing surface needs are decoded.
type Product struct {
	ID            int      `json:"id"`
	Item          string   `json:"item"`
	Description   string   `json:"description"`
	CategoryID    *int     `json:"hierarchy1"`
	SubcategoryID *int     `json:"hierarchy2"`
	BrandID       *int     `json:"brand_id"`
	PMPTag        string   `json:"pmp_tag"`
	RRP           float64  `json:"rrp"`
	ImageURL      string   `json:"image_url,omitempty"`
	Pricing       []Tier   `json:"pricing"`
	Barcodes      []string `json:"-"`
}

type Tier struct {
	Tier       int      `json:"tier"`
	SellPrice  float64  `json:"sell_price"`
	PromoPrice *float64 `json:"promo_price,omitempty"`
}

// Page is one fetched slice of results.
type Page struct {
	Items   []Product
	HasMore bool
}

// Fetcher executes one catalog page request.
type Fetcher interface {
	FetchPage(ctx context.Context, filters FilterSet, page, limit int) (*Page, error)
}

// Browser drives the paginated result list. Filter or search changes
// replace the list from page 1; LoadMore appends. Every fetch carries the
// epoch current at its start, and responses from a superseded epoch are
// dropped, so a slow stale response can never clobber fresher results.
type Browser struct {
	fetcher  Fetcher
	limit    int
	debounce *Debouncer

	mu       sync.Mutex
	filters  FilterSet
	search   string
	page     int
	items    []Product
	seen     map[int]bool
	hasMore  bool
	inFlight bool
	epoch    uint64
}

func NewBrowser(fetcher Fetcher, limit int, settle time.Duration) *Browser {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	return &Browser{
		fetcher:  fetcher,
		limit:    limit,
		debounce: NewDebouncer(settle),
		filters:  NewFilterSet(),
		seen:     map[int]bool{},
		hasMore:  true,
	}
}

// SetFilters replaces the applied filter set and reloads from page 1.
// Wire this to Editor's onApply.
func (b *Browser) SetFilters(ctx context.Context, filters FilterSet) error {
	b.mu.Lock()
	b.filters = filters.Clone()
	b.filters.Search = b.search
	epoch := b.nextEpochLocked()
	b.mu.Unlock()

	return b.fetch(ctx, epoch, 1, true)
}

// SetSearch records a keystroke. The fetch fires only after the settle
// window passes with no further input.
func (b *Browser) SetSearch(ctx context.Context, text string) {
	b.mu.Lock()
	b.search = text
	b.mu.Unlock()

	b.debounce.Trigger(func() {
		b.mu.Lock()
		b.filters.Search = b.search
		epoch := b.nextEpochLocked()
		b.mu.Unlock()

		_ = b.fetch(ctx, epoch, 1, true)
	})
}

// LoadMore fetches the next page and appends it. Suppressed while a fetch
// is already in flight or when the last page said there is nothing left.
func (b *Browser) LoadMore(ctx context.Context) error {
	b.mu.Lock()
	if b.inFlight || !b.hasMore {
		b.mu.Unlock()
		return nil
	}
	epoch := b.epoch
	page := b.page + 1
	b.mu.Unlock()

	return b.fetch(ctx, epoch, page, false)
}

// Refresh re-runs the current filters from page 1.
func (b *Browser) Refresh(ctx context.Context) error {
	b.mu.Lock()
	epoch := b.nextEpochLocked()
	b.mu.Unlock()

	return b.fetch(ctx, epoch, 1, true)
}

// Items returns a copy of the current result list.
func (b *Browser) Items() []Product {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]Product, len(b.items))
	copy(out, b.items)
	return out
}

// HasMore reports whether another page is believed to exist.
func (b *Browser) HasMore() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.hasMore
}

// Close stops the pending debounce, if any.
func (b *Browser) Close() {
	b.debounce.Stop()
}

// nextEpochLocked invalidates every fetch currently in flight.
func (b *Browser) nextEpochLocked() uint64 {
	b.epoch++
	return b.epoch
}

func (b *Browser) fetch(ctx context.Context, epoch uint64, page int, replace bool) error {
	b.mu.Lock()
	if b.epoch != epoch {
		b.mu.Unlock()
		return nil
	}
	b.inFlight = true
	filters := b.filters.Clone()
	b.mu.Unlock()

	result, err := b.fetcher.FetchPage(ctx, filters, page, b.limit)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.inFlight = false

	// A newer epoch started while this request was on the wire; its
	// results describe filters that no longer apply.
	if b.epoch != epoch {
		return nil
	}
	if err != nil {
		return err
	}

	if replace {
		b.items = b.items[:0]
		b.seen = map[int]bool{}
	}
	for _, p := range result.Items {
		if b.seen[p.ID] {
			continue
		}
		b.seen[p.ID] = true
		b.items = append(b.items, p)
	}

	b.page = page
	b.hasMore = result.HasMore
	return nil
}
