package storefront

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeFetcher records every request and serves canned pages. A request can
// be made to block until released, to simulate a slow response.
type fakeFetcher struct {
	mu       sync.Mutex
	requests []fetchCall
	pages    map[int]*Page
	blockOn  chan struct{} // if non-nil, the next call waits here
	blocked  *Page         // response for the blocked call
}

type fetchCall struct {
	search string
	page   int
}

func (f *fakeFetcher) FetchPage(ctx context.Context, filters FilterSet, page, limit int) (*Page, error) {
	f.mu.Lock()
	f.requests = append(f.requests, fetchCall{search: filters.Search, page: page})
	block := f.blockOn
	blocked := f.blocked
	f.blockOn = nil
	f.mu.Unlock()

	if block != nil {
		<-block
		return blocked, nil
	}

	if p, ok := f.pages[page]; ok {
		return p, nil
	}
	return &Page{}, nil
}

func (f *fakeFetcher) calls() []fetchCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]fetchCall, len(f.requests))
	copy(out, f.requests)
	return out
}

func products(ids ...int) []Product {
	out := make([]Product, len(ids))
	for i, id := range ids {
		out[i] = Product{ID: id}
	}
	return out
}

func TestBrowser_DebouncedSearch(t *testing.T) {
	f := &fakeFetcher{pages: map[int]*Page{1: {Items: products(1)}}}
	b := NewBrowser(f, 20, 30*time.Millisecond)
	defer b.Close()

	// three keystrokes inside the settle window
	b.SetSearch(context.Background(), "a")
	b.SetSearch(context.Background(), "ap")
	b.SetSearch(context.Background(), "app")

	time.Sleep(100 * time.Millisecond)

	calls := f.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "app", calls[0].search)
	assert.Equal(t, 1, calls[0].page)
}

func TestBrowser_LoadMoreAppendsDeduplicated(t *testing.T) {
	f := &fakeFetcher{pages: map[int]*Page{
		1: {Items: products(1, 2, 3), HasMore: true},
		// page boundary shifted under us: id 3 repeats
		2: {Items: products(3, 4), HasMore: false},
	}}
	b := NewBrowser(f, 3, time.Millisecond)
	defer b.Close()

	require.NoError(t, b.Refresh(context.Background()))
	require.NoError(t, b.LoadMore(context.Background()))

	items := b.Items()
	ids := make([]int, len(items))
	for i, p := range items {
		ids[i] = p.ID
	}
	assert.Equal(t, []int{1, 2, 3, 4}, ids)
	assert.False(t, b.HasMore())
}

func TestBrowser_LoadMoreStopsWhenExhausted(t *testing.T) {
	f := &fakeFetcher{pages: map[int]*Page{1: {Items: products(1), HasMore: false}}}
	b := NewBrowser(f, 20, time.Millisecond)
	defer b.Close()

	require.NoError(t, b.Refresh(context.Background()))
	require.NoError(t, b.LoadMore(context.Background()))

	// only the initial fetch went out
	assert.Len(t, f.calls(), 1)
}

func TestBrowser_LoadMoreSuppressedWhileInFlight(t *testing.T) {
	release := make(chan struct{})
	f := &fakeFetcher{
		pages:   map[int]*Page{},
		blockOn: release,
		blocked: &Page{Items: products(1), HasMore: true},
	}
	b := NewBrowser(f, 20, time.Millisecond)
	defer b.Close()

	done := make(chan struct{})
	go func() {
		_ = b.Refresh(context.Background())
		close(done)
	}()

	// wait until the fetch is on the wire
	require.Eventually(t, func() bool { return len(f.calls()) == 1 }, time.Second, time.Millisecond)

	require.NoError(t, b.LoadMore(context.Background()))
	assert.Len(t, f.calls(), 1, "LoadMore must not fire while a fetch is in flight")

	close(release)
	<-done
}

func TestBrowser_StaleResponseDiscarded(t *testing.T) {
	release := make(chan struct{})
	f := &fakeFetcher{
		pages:   map[int]*Page{1: {Items: products(99), HasMore: false}},
		blockOn: release,
		blocked: &Page{Items: products(1, 2), HasMore: true},
	}
	b := NewBrowser(f, 20, time.Millisecond)
	defer b.Close()

	slow := NewFilterSet()
	slow.Promotion = true

	done := make(chan struct{})
	go func() {
		_ = b.SetFilters(context.Background(), slow)
		close(done)
	}()
	require.Eventually(t, func() bool { return len(f.calls()) == 1 }, time.Second, time.Millisecond)

	// the user changes filters before the first response lands
	fast := NewFilterSet()
	fast.Clearance = true
	require.NoError(t, b.SetFilters(context.Background(), fast))

	items := b.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 99, items[0].ID)

	// the slow response finally arrives and must be dropped
	close(release)
	<-done

	items = b.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 99, items[0].ID)
	assert.False(t, b.HasMore())
}

func TestBrowser_FilterChangeResetsToPageOne(t *testing.T) {
	f := &fakeFetcher{pages: map[int]*Page{
		1: {Items: products(1, 2), HasMore: true},
		2: {Items: products(3), HasMore: true},
	}}
	b := NewBrowser(f, 2, time.Millisecond)
	defer b.Close()

	require.NoError(t, b.Refresh(context.Background()))
	require.NoError(t, b.LoadMore(context.Background()))
	require.Len(t, b.Items(), 3)

	fs := NewFilterSet()
	fs.PMP = true
	require.NoError(t, b.SetFilters(context.Background(), fs))

	calls := f.calls()
	assert.Equal(t, 1, calls[len(calls)-1].page)
	assert.Len(t, b.Items(), 2, "list replaced, not appended")
}
