package pkg

import "strconv"

// PageSize is the fixed number of posts per feed page.
const PageSize = 10

type Page[T any] struct {
	Items       []T  `json:"items"`
	Number      int  `json:"number"`
	TotalPages  int  `json:"total_pages"`
	HasNext     bool `json:"has_next"`
	HasPrevious bool `json:"has_previous"`
}

// PageNumber parses a raw ?page= value. Absent or unparseable values
// fall back to the first page.
func PageNumber(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// Paginate slices items into fixed-size pages and returns the requested
// 1-based page. Out-of-range numbers clamp to the nearest valid page, so a
// request past the end returns the last page rather than an error. An empty
// sequence still counts as one (empty) page.
func Paginate[T any](items []T, page int) Page[T] {
	total := (len(items) + PageSize - 1) / PageSize
	if total < 1 {
		total = 1
	}
	if page < 1 {
		page = 1
	}
	if page > total {
		page = total
	}

	lo := (page - 1) * PageSize
	hi := lo + PageSize
	if lo > len(items) {
		lo = len(items)
	}
	if hi > len(items) {
		hi = len(items)
	}

	return Page[T]{
		Items:       items[lo:hi],
		Number:      page,
		TotalPages:  total,
		HasNext:     page < total,
		HasPrevious: page > 1,
	}
}
