package catalog

import (
	"context"
	"sync"

	"github.com/ridgelinemoto/backend/pkg/wps"
)

// State is the pager lifecycle position.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateLoaded
	StateErrored
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateErrored:
		return "errored"
	}
	return "unknown"
}

// FetchFunc loads one page of products for the given filter/position set.
type FetchFunc func(ctx context.Context, filters wps.ProductFilters) (*wps.ProductPage, error)

// Pager drives a product listing through one consistent navigation contract
// regardless of the upstream paging mechanism. Every fetch carries a
// generation token; a response whose generation no longer matches the latest
// initiated request is discarded, so a slow superseded fetch can never
// overwrite newer state.
//
// On a failed fetch the pager moves to StateErrored but keeps the
// last-known-good items and page info, so Retry re-issues the same request
// without losing position.
type Pager struct {
	mu      sync.Mutex
	fetch   FetchFunc
	filters wps.ProductFilters

	state   State
	gen     uint64
	lastReq wps.ProductFilters
	items   []wps.Product
	page    wps.PageInfo
	lastErr error
	loaded  bool
}

// Snapshot is a consistent read of the pager's visible state.
type Snapshot struct {
	State State
	Items []wps.Product
	Page  wps.PageInfo
	Err   error
}

// NewPager creates a pager positioned at the first page of the given filters.
// No fetch is issued until Load or a navigation call.
func NewPager(fetch FetchFunc, filters wps.ProductFilters) *Pager {
	filters.Cursor = ""
	filters.Page = 0
	return &Pager{
		fetch:   fetch,
		filters: filters,
		state:   StateIdle,
	}
}

// Load fetches the current position. Always valid; supersedes any in-flight
// request.
func (p *Pager) Load(ctx context.Context) error {
	p.mu.Lock()
	req := p.filters
	gen := p.begin(req)
	p.mu.Unlock()

	return p.run(ctx, gen, req)
}

// Next advances one page. Valid only when loaded with a next page available;
// otherwise it reports false without touching state.
func (p *Pager) Next(ctx context.Context) (bool, error) {
	p.mu.Lock()
	if p.state != StateLoaded || !p.page.HasNext {
		p.mu.Unlock()
		return false, nil
	}
	nextReq, ok := p.page.NextRequest(p.filters.PageSize)
	if !ok {
		p.mu.Unlock()
		return false, nil
	}
	req := p.filters
	req.Cursor = nextReq.Cursor
	req.Page = nextReq.Page
	gen := p.begin(req)
	p.mu.Unlock()

	return true, p.run(ctx, gen, req)
}

// Prev steps back one page. Valid only when loaded and not on the first page.
func (p *Pager) Prev(ctx context.Context) (bool, error) {
	p.mu.Lock()
	if p.state != StateLoaded || !p.page.HasPrev {
		p.mu.Unlock()
		return false, nil
	}
	prevReq, ok := p.page.PrevRequest(p.filters.PageSize)
	if !ok {
		p.mu.Unlock()
		return false, nil
	}
	req := p.filters
	req.Cursor = prevReq.Cursor
	req.Page = prevReq.Page
	gen := p.begin(req)
	p.mu.Unlock()

	return true, p.run(ctx, gen, req)
}

// Reset returns to the first page of the current filters. Always valid.
func (p *Pager) Reset(ctx context.Context) error {
	p.mu.Lock()
	req := p.filters
	req.Cursor = ""
	req.Page = 0
	gen := p.begin(req)
	p.mu.Unlock()

	return p.run(ctx, gen, req)
}

// SetFilters replaces the filter set and implicitly resets to the first
// page. Stale cursors from the previous filters are never reused.
func (p *Pager) SetFilters(ctx context.Context, filters wps.ProductFilters) error {
	filters.Cursor = ""
	filters.Page = 0

	p.mu.Lock()
	p.filters = filters
	gen := p.begin(filters)
	p.mu.Unlock()

	return p.run(ctx, gen, filters)
}

// Retry re-issues the last request unchanged.
func (p *Pager) Retry(ctx context.Context) error {
	p.mu.Lock()
	req := p.lastReq
	if !p.loaded && p.state == StateIdle {
		req = p.filters
	}
	gen := p.begin(req)
	p.mu.Unlock()

	return p.run(ctx, gen, req)
}

// Snapshot returns the currently visible state.
func (p *Pager) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	items := make([]wps.Product, len(p.items))
	copy(items, p.items)
	return Snapshot{
		State: p.state,
		Items: items,
		Page:  p.page,
		Err:   p.lastErr,
	}
}

// begin registers a new request generation. Caller must hold the mutex.
func (p *Pager) begin(req wps.ProductFilters) uint64 {
	p.gen++
	p.state = StateLoading
	p.lastReq = req
	return p.gen
}

func (p *Pager) run(ctx context.Context, gen uint64, req wps.ProductFilters) error {
	result, err := p.fetch(ctx, req)

	p.mu.Lock()
	defer p.mu.Unlock()
	if gen != p.gen {
		// Superseded by a newer navigation or filter change.
		return nil
	}

	if err != nil {
		p.state = StateErrored
		p.lastErr = err
		return err
	}

	p.state = StateLoaded
	p.lastErr = nil
	p.items = result.Items
	p.page = result.Page
	p.loaded = true
	// Persist the position so subsequent navigation is relative to it.
	p.filters.Cursor = req.Cursor
	p.filters.Page = req.Page
	return nil
}
