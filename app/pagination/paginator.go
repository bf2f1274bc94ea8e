package pagination

import "strconv"

// DefaultPageSize is the number of items shown per page unless configured
// otherwise.
const DefaultPageSize = 10

// Page is one bounded slice of an ordered result set, identified by a
// 1-based number.
type Page[T any] struct {
	Items      []T  `json:"items"`
	Number     int  `json:"number"`
	TotalPages int  `json:"total_pages"`
	HasPrev    bool `json:"has_prev"`
	HasNext    bool `json:"has_next"`
}

// Paginate splits items into fixed-size pages and returns the requested one.
// Page numbers are 1-based; out-of-range numbers clamp to the nearest valid
// page instead of failing. Empty input yields a single empty page.
func Paginate[T any](items []T, size, number int) Page[T] {
	if size < 1 {
		size = DefaultPageSize
	}

	total := (len(items) + size - 1) / size
	if total == 0 {
		total = 1
	}

	if number < 1 {
		number = 1
	}
	if number > total {
		number = total
	}

	start := (number - 1) * size
	end := start + size
	if start > len(items) {
		start = len(items)
	}
	if end > len(items) {
		end = len(items)
	}

	return Page[T]{
		Items:      items[start:end],
		Number:     number,
		TotalPages: total,
		HasPrev:    number > 1,
		HasNext:    number < total,
	}
}

// ParsePage converts a raw page query parameter into a page number.
// Absent or non-numeric input defaults to the first page; range clamping
// happens later in Paginate once the total is known.
func ParsePage(raw string) int {
	if raw == "" {
		return 1
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return n
}
