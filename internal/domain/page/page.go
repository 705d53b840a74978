// Package page computes offset pagination windows over ordered results.
package page

import (
	"strconv"
	"strings"
)

// DefaultSize is the number of specimens per page.
const DefaultSize = 5

// Request is a 1-based page number and a page size.
type Request struct {
	Number int
	Size   int
}

// NewRequest creates a Request. A non-positive size falls back to DefaultSize;
// the number is kept as given, so out-of-range pages stay out of range.
func NewRequest(number, size int) Request {
	if size <= 0 {
		size = DefaultSize
	}
	return Request{Number: number, Size: size}
}

// ParseNumber reads a page number parameter. Missing or non-numeric input
// means the first page; numeric input is returned unchanged, including zero
// and negative values.
func ParseNumber(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 1
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 1
	}
	return n
}

// TotalPages returns ceil(total/size), 0 when total is 0.
func TotalPages(total, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// InRange reports whether the page has at least one item out of total.
func (r Request) InRange(total int) bool {
	return r.Size > 0 && r.Number >= 1 && r.Number <= TotalPages(total, r.Size)
}

// Bounds returns the half-open [start, end) window of the page within total
// items. Out-of-range pages return an empty window at 0.
func (r Request) Bounds(total int) (start, end int) {
	if !r.InRange(total) {
		return 0, 0
	}
	start = (r.Number - 1) * r.Size
	end = min(start+r.Size, total)
	return start, end
}

// Offset returns the number of rows to skip for an in-range page.
func (r Request) Offset() int {
	if r.Number < 1 {
		return 0
	}
	return (r.Number - 1) * r.Size
}

// Slice returns the page window of items. It never panics and never returns
// more than r.Size items.
func Slice[T any](items []T, r Request) []T {
	start, end := r.Bounds(len(items))
	if start == end {
		return []T{}
	}
	out := make([]T, end-start)
	copy(out, items[start:end])
	return out
}

// Result is one page of an ordered listing.
type Result[T any] struct {
	Items       []T
	CurrentPage int
	TotalPages  int
	TotalCount  int
	PageSize    int
}

// NewResult assembles a page result. items must already be the page window.
func NewResult[T any](items []T, r Request, totalCount int) Result[T] {
	if items == nil {
		items = []T{}
	}
	return Result[T]{
		Items:       items,
		CurrentPage: r.Number,
		TotalPages:  TotalPages(totalCount, r.Size),
		TotalCount:  totalCount,
		PageSize:    r.Size,
	}
}

// HasPrev reports whether a previous in-range page exists.
func (p Result[T]) HasPrev() bool { return p.CurrentPage > 1 && p.TotalPages > 0 }

// HasNext reports whether a following page exists.
func (p Result[T]) HasNext() bool { return p.CurrentPage >= 1 && p.CurrentPage < p.TotalPages }

// PrevPage returns the previous page number clamped into range.
func (p Result[T]) PrevPage() int { return min(max(p.CurrentPage-1, 1), max(p.TotalPages, 1)) }

// NextPage returns the next page number.
func (p Result[T]) NextPage() int { return p.CurrentPage + 1 }

// Pages returns 1..TotalPages for page navigation.
func (p Result[T]) Pages() []int {
	out := make([]int, p.TotalPages)
	for i := range out {
		out[i] = i + 1
	}
	return out
}
