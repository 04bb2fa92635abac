package pagination

// Page is the envelope for any paginated listing.
type Page[T any] struct {
	Items   []T  `json:"items"`
	Total   int  `json:"total"`
	Page    int  `json:"page"`
	Size    int  `json:"size"`
	Pages   int  `json:"pages"`
	HasNext bool `json:"hasNext"`
	HasPrev bool `json:"hasPrev"`
}

// Clamp normalizes a page/size request: page is at least 1, a non-positive
// size falls back to 10.
func Clamp(page, size int) (int, int) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 10
	}
	return page, size
}

// Window converts a clamped page/size into an offset/limit pair.
func Window(page, size int) (offset, limit int) {
	page, size = Clamp(page, size)
	return (page - 1) * size, size
}

// New wraps an already-windowed item slice with metadata. total must come from
// a count over the same filter as the page query.
func New[T any](items []T, total, page, size int) *Page[T] {
	page, size = Clamp(page, size)
	pages := (total + size - 1) / size
	if items == nil {
		items = []T{}
	}
	return &Page[T]{
		Items:   items,
		Total:   total,
		Page:    page,
		Size:    size,
		Pages:   pages,
		HasNext: page < pages,
		HasPrev: page > 1,
	}
}

// Slice paginates an in-memory list. Out-of-range pages yield empty items with
// valid metadata, never an error.
func Slice[T any](items []T, page, size int) *Page[T] {
	page, size = Clamp(page, size)
	total := len(items)
	start := (page - 1) * size
	end := start + size
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}
	return New(items[start:end], total, page, size)
}
