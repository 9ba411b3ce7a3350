package utils

// Pagination carries pre-computed paging values for list queries and
// their response metadata.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Offset     int `json:"-"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// BuildPagination clamps page to >=1 and limit to 1..100, computes the
// row offset and the page count for the given total.
func BuildPagination(page, limit, total int) Pagination {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	totalPages := 0
	if total > 0 {
		totalPages = (total + limit - 1) / limit
	}

	return Pagination{
		Page:       page,
		Limit:      limit,
		Offset:     (page - 1) * limit,
		Total:      total,
		TotalPages: totalPages,
	}
}
