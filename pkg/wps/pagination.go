package wps

// Paging mode tags. The UI-facing contract never branches on these beyond
// HasNext/HasPrev; they exist so follow-up requests can be rebuilt.
const (
	PageModeCursor = "cursor"
	PageModeOffset = "offset"
)

// CursorInfo mirrors the vendor's opaque cursor triple. A nil Prev means the
// first page, a nil Next means the last.
type CursorInfo struct {
	Current *string `json:"current"`
	Prev    *string `json:"prev"`
	Next    *string `json:"next"`
}

// PageInfo is the consolidated paging contract. Whichever upstream mechanism
// produced it, "no more pages forward" and "already at first page" are
// independently representable via HasNext/HasPrev.
type PageInfo struct {
	Mode       string      `json:"mode"`
	HasNext    bool        `json:"hasNext"`
	HasPrev    bool        `json:"hasPrev"`
	Cursor     *CursorInfo `json:"cursor,omitempty"`
	Page       int         `json:"page,omitempty"`
	TotalPages int         `json:"totalPages,omitempty"`
	TotalItems int         `json:"totalItems,omitempty"`
	PageSize   int         `json:"pageSize,omitempty"`
	Count      int         `json:"count"`
}

// NextRequest rebuilds the page request for the following page, or false when
// there is none.
func (p PageInfo) NextRequest(pageSize int) (PageRequest, bool) {
	if !p.HasNext {
		return PageRequest{}, false
	}
	if p.Mode == PageModeCursor {
		if p.Cursor == nil || p.Cursor.Next == nil {
			return PageRequest{}, false
		}
		return PageRequest{Cursor: *p.Cursor.Next, PageSize: pageSize}, true
	}
	return PageRequest{Page: p.Page + 1, PageSize: pageSize}, true
}

// PrevRequest rebuilds the page request for the preceding page, or false when
// already on the first page.
func (p PageInfo) PrevRequest(pageSize int) (PageRequest, bool) {
	if !p.HasPrev {
		return PageRequest{}, false
	}
	if p.Mode == PageModeCursor {
		if p.Cursor == nil || p.Cursor.Prev == nil {
			return PageRequest{}, false
		}
		return PageRequest{Cursor: *p.Cursor.Prev, PageSize: pageSize}, true
	}
	page := p.Page - 1
	if page < 1 {
		page = 1
	}
	return PageRequest{Page: page, PageSize: pageSize}, true
}

// pageInfoFromMeta adapts whichever meta shape the upstream returned into the
// consolidated contract. itemCount is the length of the returned page and
// requested is the page request that produced it.
func pageInfoFromMeta(meta *listMeta, requested PageRequest, pageSize, itemCount int) PageInfo {
	if meta != nil && meta.Cursor != nil {
		cur := meta.Cursor
		count := cur.Count
		if count == 0 {
			count = itemCount
		}
		return PageInfo{
			Mode:     PageModeCursor,
			HasNext:  cur.Next != nil && *cur.Next != "",
			HasPrev:  cur.Prev != nil && *cur.Prev != "",
			Cursor:   &CursorInfo{Current: cur.Current, Prev: cur.Prev, Next: cur.Next},
			PageSize: pageSize,
			Count:    count,
		}
	}

	info := PageInfo{
		Mode:     PageModeOffset,
		Page:     1,
		PageSize: pageSize,
		Count:    itemCount,
	}
	if requested.Page > 1 {
		info.Page = requested.Page
	}
	if meta != nil {
		if meta.Page > 0 {
			info.Page = meta.Page
		}
		if meta.PerPage > 0 {
			info.PageSize = meta.PerPage
		}
		info.TotalItems = meta.Total
		if meta.Total > 0 && info.PageSize > 0 {
			info.TotalPages = (meta.Total + info.PageSize - 1) / info.PageSize
		}
	}
	if info.TotalPages > 0 {
		info.HasNext = info.Page < info.TotalPages
	} else {
		// Without totals, a full page suggests more may follow.
		info.HasNext = itemCount >= info.PageSize && itemCount > 0
	}
	info.HasPrev = info.Page > 1
	return info
}
