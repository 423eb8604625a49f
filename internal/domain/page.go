package domain

import "math"

// Pagination defaults. DefaultPageSize matches the list views' five rows.
const (
	DefaultPageSize = 5
	MaxPageSize     = 100
)

// PageRequest is a normalized, 1-indexed page selection.
type PageRequest struct {
	Page     int
	PageSize int
}

// NewPageRequest normalizes a page selection: page < 1 becomes 1, a
// non-positive size becomes defaultSize and a size above maxSize is clamped.
// page is capped so that Offset cannot overflow.
// Non-positive defaultSize and maxSize fall back to the package defaults.
func NewPageRequest(page, pageSize, defaultSize, maxSize int) PageRequest {
	if defaultSize <= 0 {
		defaultSize = DefaultPageSize
	}
	if maxSize <= 0 {
		maxSize = MaxPageSize
	}
	if defaultSize > maxSize {
		defaultSize = maxSize
	}
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = defaultSize
	}
	if pageSize > maxSize {
		pageSize = maxSize
	}
	if limit := math.MaxInt/pageSize + 1; page > limit {
		page = limit
	}
	return PageRequest{Page: page, PageSize: pageSize}
}

// Offset returns the number of rows preceding the page, saturating at
// math.MaxInt for pages beyond any addressable row.
func (r PageRequest) Offset() int {
	if r.Page <= 1 || r.PageSize <= 0 {
		return 0
	}
	if r.Page-1 > math.MaxInt/r.PageSize {
		return math.MaxInt
	}
	return (r.Page - 1) * r.PageSize
}

// Limit returns the maximum number of rows on the page.
func (r PageRequest) Limit() int {
	return r.PageSize
}

// Page is one page of an ordered result set.
type Page[T any] struct {
	Items      []T  `json:"items"`
	Page       int  `json:"page"`
	PageSize   int  `json:"page_size"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// NewPage builds a Page from the rows of req and the total row count.
// Items is never nil so an empty page encodes as [].
func NewPage[T any](items []T, req PageRequest, total int) Page[T] {
	if items == nil {
		items = []T{}
	}
	totalPages := 0
	if req.PageSize > 0 {
		totalPages = (total + req.PageSize - 1) / req.PageSize
	}
	return Page[T]{
		Items:      items,
		Page:       req.Page,
		PageSize:   req.PageSize,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    req.Page < totalPages,
		HasPrev:    req.Page > 1,
	}
}
