package adapter

// Pagination defines page/limit options shared by list queries.
type Pagination struct {
	Page  int
	Limit int
}

// Offset returns the row offset for the page.
func (p Pagination) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// TotalPages returns the number of pages needed for total rows.
func (p Pagination) TotalPages(total int64) int {
	if p.Limit <= 0 {
		return 0
	}
	return int((total + int64(p.Limit) - 1) / int64(p.Limit))
}

const (
	// DefaultPageLimit is used when a list request names no limit.
	DefaultPageLimit = 20
	// MaxPageLimit caps the page size of every list query.
	MaxPageLimit = 100
)

// NewPagination clamps page and limit into their valid ranges.
func NewPagination(page, limit int) Pagination {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	return Pagination{Page: page, Limit: limit}
}
