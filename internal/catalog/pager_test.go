package catalog

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ridgelinemoto/backend/pkg/wps"
)

func cursorPage(items []wps.Product, prev, next string) *wps.ProductPage {
	info := wps.PageInfo{Mode: wps.PageModeCursor, Cursor: &wps.CursorInfo{}, Count: len(items), PageSize: 24}
	if prev != "" {
		info.Cursor.Prev = &prev
		info.HasPrev = true
	}
	if next != "" {
		info.Cursor.Next = &next
		info.HasNext = true
	}
	return &wps.ProductPage{Items: items, Page: info}
}

func product(sku string) wps.Product {
	return wps.Product{SKU: sku, Images: []string{}}
}

// fixtureFetch serves a three-page cursor listing: "" -> p2 -> p3.
func fixtureFetch(calls *[]wps.ProductFilters) FetchFunc {
	var mu sync.Mutex
	return func(ctx context.Context, filters wps.ProductFilters) (*wps.ProductPage, error) {
		mu.Lock()
		*calls = append(*calls, filters)
		mu.Unlock()
		switch filters.Cursor {
		case "", "p1":
			return cursorPage([]wps.Product{product("A-1")}, "", "p2"), nil
		case "p2":
			return cursorPage([]wps.Product{product("A-2")}, "p1", "p3"), nil
		case "p3":
			return cursorPage([]wps.Product{product("A-3")}, "p2", ""), nil
		}
		return nil, errors.New("unknown cursor " + filters.Cursor)
	}
}

func TestPagerWalksForwardAndBack(t *testing.T) {
	var calls []wps.ProductFilters
	pager := NewPager(fixtureFetch(&calls), wps.ProductFilters{Category: "Brakes", PageSize: 24})

	require.Equal(t, StateIdle, pager.Snapshot().State)
	require.NoError(t, pager.Load(context.Background()))

	snap := pager.Snapshot()
	require.Equal(t, StateLoaded, snap.State)
	require.Equal(t, "A-1", snap.Items[0].SKU)
	require.True(t, snap.Page.HasNext)
	require.False(t, snap.Page.HasPrev)

	moved, err := pager.Next(context.Background())
	require.NoError(t, err)
	require.True(t, moved)
	require.Equal(t, "A-2", pager.Snapshot().Items[0].SKU)

	moved, err = pager.Prev(context.Background())
	require.NoError(t, err)
	require.True(t, moved)
	require.Equal(t, "A-1", pager.Snapshot().Items[0].SKU)
}

func TestPagerNavigationNoOpsAtBoundaries(t *testing.T) {
	var calls []wps.ProductFilters
	pager := NewPager(fixtureFetch(&calls), wps.ProductFilters{PageSize: 24})
	require.NoError(t, pager.Load(context.Background()))

	// First page: prev must be a no-op.
	moved, err := pager.Prev(context.Background())
	require.NoError(t, err)
	require.False(t, moved)

	// Walk to the last page; next must then be a no-op.
	for {
		m, err := pager.Next(context.Background())
		require.NoError(t, err)
		if !m {
			break
		}
	}
	require.Equal(t, "A-3", pager.Snapshot().Items[0].SKU)
	require.False(t, pager.Snapshot().Page.HasNext)
}

func TestPagerResetReturnsToFirstPage(t *testing.T) {
	var calls []wps.ProductFilters
	pager := NewPager(fixtureFetch(&calls), wps.ProductFilters{PageSize: 24})
	require.NoError(t, pager.Load(context.Background()))

	_, err := pager.Next(context.Background())
	require.NoError(t, err)
	_, err = pager.Next(context.Background())
	require.NoError(t, err)
	require.Equal(t, "A-3", pager.Snapshot().Items[0].SKU)

	require.NoError(t, pager.Reset(context.Background()))
	snap := pager.Snapshot()
	require.Equal(t, "A-1", snap.Items[0].SKU)
	require.False(t, snap.Page.HasPrev)
}

func TestPagerFilterChangeResetsPosition(t *testing.T) {
	var calls []wps.ProductFilters
	pager := NewPager(fixtureFetch(&calls), wps.ProductFilters{PageSize: 24})
	require.NoError(t, pager.Load(context.Background()))
	_, err := pager.Next(context.Background())
	require.NoError(t, err)

	require.NoError(t, pager.SetFilters(context.Background(), wps.ProductFilters{Search: "chain", PageSize: 24}))

	last := calls[len(calls)-1]
	require.Equal(t, "chain", last.Search)
	require.Empty(t, last.Cursor, "a filter change must never reuse a stale cursor")
	require.Zero(t, last.Page)
}

func TestPagerDiscardsSupersededResponse(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	fetch := func(ctx context.Context, filters wps.ProductFilters) (*wps.ProductPage, error) {
		if filters.Search == "slow" {
			close(started)
			<-release
			return cursorPage([]wps.Product{product("STALE")}, "", ""), nil
		}
		return cursorPage([]wps.Product{product("FRESH")}, "", ""), nil
	}

	pager := NewPager(fetch, wps.ProductFilters{Search: "slow", PageSize: 24})

	done := make(chan error, 1)
	go func() { done <- pager.Load(context.Background()) }()
	<-started

	// Supersede the in-flight request, then let the stale response land.
	require.NoError(t, pager.SetFilters(context.Background(), wps.ProductFilters{Search: "fresh", PageSize: 24}))
	close(release)
	require.NoError(t, <-done)

	snap := pager.Snapshot()
	require.Equal(t, StateLoaded, snap.State)
	require.Equal(t, "FRESH", snap.Items[0].SKU, "stale response must be discarded")
}

func TestPagerErrorRetainsPositionAndRetries(t *testing.T) {
	var failing bool
	var mu sync.Mutex
	var calls []wps.ProductFilters
	base := fixtureFetch(&calls)
	fetch := func(ctx context.Context, filters wps.ProductFilters) (*wps.ProductPage, error) {
		mu.Lock()
		fail := failing
		mu.Unlock()
		if fail {
			return nil, errors.New("upstream down")
		}
		return base(ctx, filters)
	}

	pager := NewPager(fetch, wps.ProductFilters{PageSize: 24})
	require.NoError(t, pager.Load(context.Background()))
	_, err := pager.Next(context.Background())
	require.NoError(t, err)

	mu.Lock()
	failing = true
	mu.Unlock()
	_, err = pager.Next(context.Background())
	require.Error(t, err)

	snap := pager.Snapshot()
	require.Equal(t, StateErrored, snap.State)
	require.Equal(t, "A-2", snap.Items[0].SKU, "last-known-good items retained")
	require.True(t, snap.Page.HasPrev, "last-known-good pagination retained")

	mu.Lock()
	failing = false
	mu.Unlock()
	require.NoError(t, pager.Retry(context.Background()))
	require.Equal(t, StateLoaded, pager.Snapshot().State)
	require.Equal(t, "A-3", pager.Snapshot().Items[0].SKU, "retry re-issues the failed request unchanged")
}
