package ports

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// PageRequest carries 1-based pagination parameters.
type PageRequest struct {
	Page  int
	Limit int
}

// Normalize applies defaults and caps: page >= 1, 1 <= limit <= MaxPageLimit.
func (p PageRequest) Normalize() PageRequest {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	return p
}

// Skip returns the number of rows to skip for this page.
func (p PageRequest) Skip() int64 {
	return int64((p.Page - 1) * p.Limit)
}

// Page is one page of a list result.
type Page[T any] struct {
	Items      []T
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// NewPage assembles a Page and computes TotalPages.
func NewPage[T any](items []T, total int64, req PageRequest) *Page[T] {
	pages := 0
	if req.Limit > 0 {
		pages = int((total + int64(req.Limit) - 1) / int64(req.Limit))
	}
	return &Page[T]{Items: items, Total: total, Page: req.Page, Limit: req.Limit, TotalPages: pages}
}
