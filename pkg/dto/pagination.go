package dto

// PaginationInfo holds pagination metadata for a paginated listing.
// Page numbers are 1-indexed; StartIndex and EndIndex are 0-indexed
// positions usable directly for slicing the full result set.
type PaginationInfo struct {
	// Page is the current page number (1-indexed).
	Page int `json:"page"`

	// PerPage is the maximum number of entries per page.
	PerPage int `json:"per_page"`

	// TotalItems is the total number of entries across all pages.
	TotalItems int `json:"total"`

	// TotalPages is the total number of pages available.
	TotalPages int `json:"total_pages"`

	// HasPrev indicates if there is a previous page.
	HasPrev bool `json:"has_prev"`

	// HasNext indicates if there is a next page.
	HasNext bool `json:"has_next"`

	// StartIndex is the 0-indexed position of the first entry of this page.
	StartIndex int `json:"-"`

	// EndIndex is the 0-indexed position (exclusive) after the last entry
	// of this page, so the page content is items[StartIndex:EndIndex].
	EndIndex int `json:"-"`
}

// NewPaginationInfo computes pagination metadata for totalItems entries
// split into pages of perPage, positioned on page (1-indexed).
// Special case: when totalItems is 0, TotalPages is 1, not 0.
func NewPaginationInfo(totalItems, perPage, page int) PaginationInfo {
	totalPages := 1
	if totalItems > 0 && perPage > 0 {
		totalPages = (totalItems + perPage - 1) / perPage
	}

	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * perPage
	end := min(start+perPage, totalItems)
	if start > totalItems {
		start = totalItems
	}

	return PaginationInfo{
		Page:       page,
		PerPage:    perPage,
		TotalItems: totalItems,
		TotalPages: totalPages,
		HasPrev:    page > 1,
		HasNext:    page < totalPages,
		StartIndex: start,
		EndIndex:   end,
	}
}
