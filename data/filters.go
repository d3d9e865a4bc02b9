package data

import "math"

const (
	defaultPage     = 1
	defaultPageSize = 10
	maxPageSize     = 50
)

// Filters holds a clamped pagination request. Out-of-range inputs are
// silently adjusted, never rejected, so construct values through NewFilters.
type Filters struct {
	Page     int
	PageSize int
}

// NewFilters returns a Filters with page clamped to a minimum of 1 and
// pageSize clamped to [1, 50]. A page size below 1 falls back to the
// default of 10 rather than the minimum.
func NewFilters(page, pageSize int) Filters {
	if page < 1 {
		page = defaultPage
	}
	switch {
	case pageSize > maxPageSize:
		pageSize = maxPageSize
	case pageSize < 1:
		pageSize = defaultPageSize
	}
	return Filters{Page: page, PageSize: pageSize}
}

// Limit returns the LIMIT value for a paginated query.
func (f Filters) Limit() int {
	return f.PageSize
}

// Offset returns the OFFSET value for a paginated query.
func (f Filters) Offset() int {
	return (f.Page - 1) * f.PageSize
}

// Metadata holds the navigation information for a page of results.
type Metadata struct {
	PageNumber      int  `json:"pageNumber"`
	PageSize        int  `json:"pageSize"`
	TotalCount      int  `json:"totalCount"`
	TotalPages      int  `json:"totalPages"`
	HasPreviousPage bool `json:"hasPreviousPage"`
	HasNextPage     bool `json:"hasNextPage"`
}

// CalculateMetadata derives the page navigation fields from the total record
// count and the requested page and page size.
func CalculateMetadata(totalRecords, page, pageSize int) Metadata {
	totalPages := int(math.Ceil(float64(totalRecords) / float64(pageSize)))
	return Metadata{
		PageNumber:      page,
		PageSize:        pageSize,
		TotalCount:      totalRecords,
		TotalPages:      totalPages,
		HasPreviousPage: page > 1,
		HasNextPage:     page < totalPages,
	}
}

// PaginatedBooks is the response envelope for one page of books. The
// Metadata fields marshal inline alongside the data.
type PaginatedBooks struct {
	Data []*Book `json:"data"`
	Metadata
}
