package feed

import (
	"strconv"

	"github.com/chirpnet/chirp/internal/models"
)

// DefaultPageSize is the fixed number of posts shown per page.
const DefaultPageSize = 10

// Page is one slice of a feed plus the pagination controls needed to
// render it.
type Page struct {
	Items      []*models.Post `json:"items"`
	Number     int            `json:"number"`
	PageSize   int            `json:"page_size"`
	TotalPages int            `json:"total_pages"`
	TotalCount int64          `json:"total_count"`
	HasNext    bool           `json:"has_next"`
	HasPrev    bool           `json:"has_prev"`
}

// ParsePageNumber interprets a raw page query parameter. Anything that
// is not a positive integer means page 1; values beyond the end are
// clamped later, once the total is known.
func ParsePageNumber(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// totalPages computes the page count for a result set. An empty set
// still has one (empty) page.
func totalPages(count int64, pageSize int) int {
	if count <= 0 {
		return 1
	}
	pages := int((count + int64(pageSize) - 1) / int64(pageSize))
	return pages
}

// clampPage snaps an out-of-range page number to the nearest valid
// page instead of failing.
func clampPage(page, total int) int {
	if page < 1 {
		return 1
	}
	if page > total {
		return total
	}
	return page
}
