package models

import "math"

const (
	DefaultPage = 1
	MaxPageSize = 100
)

type Pagination struct {
	Current int   `json:"current"`
	Pages   int   `json:"pages"`
	Total   int64 `json:"total"`
}

// NewPagination computes the page count for total items at the given page size.
func NewPagination(page, limit int, total int64) Pagination {
	pages := 0
	if limit > 0 {
		pages = int((total + int64(limit) - 1) / int64(limit))
	}
	return Pagination{Current: page, Pages: pages, Total: total}
}

// NormalizePage clamps page and limit, applying defaultLimit when limit is unset.
func NormalizePage(page, limit, defaultLimit int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	// Pages past this point are empty anyway; the cap keeps the skip within int32.
	if maxPage := math.MaxInt32/limit + 1; page > maxPage {
		page = maxPage
	}
	return page, limit
}

// Skip is the number of documents before the given page.
func Skip(page, limit int) int64 {
	return int64(page-1) * int64(limit)
}
