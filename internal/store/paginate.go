package store

// Listing defaults. Page and per_page fall back to these when the caller
// omits them or supplies something non-positive.
const (
	DefaultPage    = 1
	DefaultPerPage = 3
)

// PageMeta describes one page of a paginated listing.
// Prev and Next are nil when there is no such page.
type PageMeta struct {
	Page       int  `json:"page"`
	Pages      int  `json:"pages"`
	TotalCount int  `json:"total_count"`
	Prev       *int `json:"prev"`
	Next       *int `json:"next"`
	HasPrev    bool `json:"has_prev"`
	HasNext    bool `json:"has_next"`
}

// NewPageMeta computes pagination metadata for a listing of total items
// viewed at the given page and page size. An empty listing still has one
// (empty) page.
func NewPageMeta(page, perPage, total int) *PageMeta {
	pages := total / perPage
	if total%perPage != 0 {
		pages++
	}
	if pages == 0 {
		pages = 1
	}

	m := &PageMeta{
		Page:       page,
		Pages:      pages,
		TotalCount: total,
		HasPrev:    page > 1,
		HasNext:    page < pages,
	}
	if m.HasPrev {
		prev := page - 1
		m.Prev = &prev
	}
	if m.HasNext {
		next := page + 1
		m.Next = &next
	}
	return m
}
