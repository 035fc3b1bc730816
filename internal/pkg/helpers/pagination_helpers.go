package helpers

import "math"

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	DefaultPage     = 1 // page numbers are 1-based throughout the API
)

// Pager computes page navigation over a known item count. Page numbers are
// always clamped into [1, TotalPages]; a zero-item pager has TotalPages 0 and
// no navigable pages.
type Pager struct {
	TotalItems int
	PageSize   int
	TotalPages int
}

// NewPager creates a pager for totalItems items with the given page size.
// A non-positive page size falls back to the default.
func NewPager(totalItems, pageSize int) Pager {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if totalItems < 0 {
		totalItems = 0
	}
	return Pager{
		TotalItems: totalItems,
		PageSize:   pageSize,
		TotalPages: int(math.Ceil(float64(totalItems) / float64(pageSize))),
	}
}

// GoToPage clamps the requested page into the navigable range. When there
// are no pages at all the result is 1 so callers always hold a valid page.
func (p Pager) GoToPage(page int) int {
	if p.TotalPages == 0 {
		return 1
	}
	if page < 1 {
		return 1
	}
	if page > p.TotalPages {
		return p.TotalPages
	}
	return page
}

// SliceBounds returns the half-open [start, end) indices for slicing an
// in-memory sequence for the given page.
func (p Pager) SliceBounds(page int) (start, end int) {
	page = p.GoToPage(page)
	start = (page - 1) * p.PageSize
	end = start + p.PageSize
	if start > p.TotalItems {
		start = p.TotalItems
	}
	if end > p.TotalItems {
		end = p.TotalItems
	}
	return start, end
}

// DisplayBounds returns 1-indexed inclusive start/end positions for UI text
// such as "showing 11-20 of 25". Both are 0 when the page is empty.
func (p Pager) DisplayBounds(page int) (start, end int) {
	lo, hi := p.SliceBounds(page)
	if lo == hi {
		return 0, 0
	}
	return lo + 1, hi
}

// QueryRange returns the inclusive [from, to] index window for a range-fetch
// query, with from = (page-1)*size. The page is clamped the same way as
// in-memory pagination.
func (p Pager) QueryRange(page int) (from, to int) {
	page = p.GoToPage(page)
	from = (page - 1) * p.PageSize
	to = from + p.PageSize - 1
	return from, to
}
