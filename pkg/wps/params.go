package wps

import (
	"net/url"
	"strconv"
	"strings"
)

const defaultReferenceListSize = 1000

// clampPageSize enforces the storefront default and the upstream maximum.
// The vendor silently truncates or errors above its cap, so anything larger
// is treated as suspect and reduced.
func (c *Client) clampPageSize(size int) int {
	if size <= 0 {
		return c.cfg.DefaultPageSize
	}
	if size > c.cfg.MaxPageSize {
		return c.cfg.MaxPageSize
	}
	return size
}

// itemsQuery assembles the upstream query for an item listing from the
// request-side filters. Exactly one pagination convention is emitted,
// selected by configuration.
func (c *Client) itemsQuery(f ProductFilters) url.Values {
	params := url.Values{}

	if s := strings.TrimSpace(f.Search); s != "" {
		params.Set("filter[name][pre]", s)
	}
	if s := strings.TrimSpace(f.Category); s != "" {
		params.Set("filter[product_type]", s)
	}
	if s := strings.TrimSpace(f.BrandID); s != "" {
		params.Set("filter[brand_id]", s)
	}
	if s := strings.TrimSpace(f.VehicleID); s != "" {
		params.Set("filter[vehicle]", s)
	}

	if field := strings.TrimSpace(f.SortBy); field != "" {
		order := "asc"
		if strings.EqualFold(f.SortOrder, "desc") {
			order = "desc"
		}
		params.Set("sort["+order+"]", field)
	}

	params.Set("include", "inventory,brand")
	c.applyPageParams(params, PageRequest{Cursor: f.Cursor, Page: f.Page, PageSize: f.PageSize})
	return params
}

func (c *Client) applyPageParams(params url.Values, page PageRequest) {
	params.Set("page[size]", strconv.Itoa(c.clampPageSize(page.PageSize)))

	if c.cursorMode() {
		if cursor := strings.TrimSpace(page.Cursor); cursor != "" {
			params.Set("page[cursor]", cursor)
		}
		return
	}
	if page.Page > 1 {
		params.Set("page[number]", strconv.Itoa(page.Page))
	}
}
