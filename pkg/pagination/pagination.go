package pagination

import (
	"net/url"
	"strconv"
)

const (
	// DefaultPageSize matches the page size the list views were designed around.
	DefaultPageSize = 10
	// MaxPageSize caps page_size to keep list queries bounded.
	MaxPageSize = 100
)

// Params holds normalized pagination parameters parsed from a request.
type Params struct {
	Page     int
	PageSize int
}

// ParseQuery extracts pagination parameters from URL query values.
// Out-of-range values fall back to defaults rather than erroring.
func ParseQuery(query url.Values) Params {
	page, _ := strconv.Atoi(query.Get("page"))
	if page < 1 {
		page = 1
	}

	pageSize, _ := strconv.Atoi(query.Get("page_size"))
	if pageSize < 1 || pageSize > MaxPageSize {
		pageSize = DefaultPageSize
	}

	return Params{Page: page, PageSize: pageSize}
}

// Limit returns the SQL LIMIT for these params.
func (p Params) Limit() int {
	return p.PageSize
}

// Offset returns the SQL OFFSET for these params.
func (p Params) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// TotalPages returns the number of pages needed for total items.
func (p Params) TotalPages(total int) int {
	if total <= 0 {
		return 0
	}
	pages := total / p.PageSize
	if total%p.PageSize != 0 {
		pages++
	}
	return pages
}
