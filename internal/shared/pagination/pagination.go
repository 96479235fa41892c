// Package pagination provides client-style page windowing over fully fetched
// lists, including the compact page-number strip used by list views.
package pagination

// Ellipsis marks a gap in the page-number strip.
const Ellipsis = "..."

// Page holds one window of items plus the numbers needed to render controls.
type Page[T any] struct {
	Items       []T   `json:"items"`
	CurrentPage int   `json:"current_page"`
	TotalPages  int   `json:"total_pages"`
	TotalItems  int   `json:"total_items"`
	Pages       []any `json:"pages"` // page numbers interleaved with Ellipsis
}

// Paginate windows items to the requested page. Pages are 1-based; a page
// outside the valid range is clamped. perPage below 1 falls back to the whole
// list as a single page.
func Paginate[T any](items []T, page, perPage int) Page[T] {
	if perPage < 1 {
		perPage = len(items)
		if perPage < 1 {
			perPage = 1
		}
	}

	totalPages := (len(items) + perPage - 1) / perPage
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * perPage
	end := start + perPage
	if start > len(items) {
		start = len(items)
	}
	if end > len(items) {
		end = len(items)
	}

	return Page[T]{
		Items:       items[start:end],
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalItems:  len(items),
		Pages:       PageStrip(page, totalPages),
	}
}

// PageStrip returns the compact page-number strip: all pages when there are
// at most five, otherwise the first page, a window around the current page
// and the last page, with ellipses in the gaps.
func PageStrip(current, total int) []any {
	if total <= 5 {
		pages := make([]any, 0, total)
		for i := 1; i <= total; i++ {
			pages = append(pages, i)
		}
		return pages
	}

	left := current - 1
	if left < 2 {
		left = 2
	}
	right := current + 1
	if right > total-1 {
		right = total - 1
	}

	pages := []any{1}
	if left > 2 {
		pages = append(pages, Ellipsis)
	}
	for i := left; i <= right; i++ {
		pages = append(pages, i)
	}
	if right < total-1 {
		pages = append(pages, Ellipsis)
	}
	return append(pages, total)
}
