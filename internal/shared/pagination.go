package shared

import "math"

// Pagination contains metadata for paginated listings.
type Pagination struct {
	Page       int
	PerPage    int
	Total      int
	TotalPages int
}

// NewPagination computes pagination metadata. The page count is floored at 1
// even for an empty result, and the requested page is clamped into range
// rather than rejected.
func NewPagination(page, perPage, total int) Pagination {
	if perPage <= 0 {
		perPage = 10
	}
	totalPages := int(math.Ceil(float64(total) / float64(perPage)))
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	return Pagination{Page: page, PerPage: perPage, Total: total, TotalPages: totalPages}
}

// Bounds returns the half-open [from, to) slice indexes for the current page.
func (p Pagination) Bounds() (int, int) {
	from := (p.Page - 1) * p.PerPage
	if from > p.Total {
		from = p.Total
	}
	to := from + p.PerPage
	if to > p.Total {
		to = p.Total
	}
	return from, to
}
