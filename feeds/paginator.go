package feeds

import (
	"context"
	"strconv"
	"strings"
)

// Source is an ordered collection that can be counted and sliced.
type Source[T any] interface {
	Count(ctx context.Context) (int, error)
	Slice(ctx context.Context, offset, limit int) ([]T, error)
}

type SliceSource[T any] []T

func (s SliceSource[T]) Count(context.Context) (int, error) {
	return len(s), nil
}

func (s SliceSource[T]) Slice(_ context.Context, offset, limit int) ([]T, error) {
	if offset >= len(s) {
		return []T{}, nil
	}
	end := min(offset+limit, len(s))
	result := make([]T, end-offset)
	copy(result, s[offset:end])
	return result, nil
}

type Page[T any] struct {
	Items    []T
	Number   int
	NumPages int
	Count    int
}

func (p Page[T]) HasPrevious() bool {
	return p.Number > 1
}

func (p Page[T]) HasNext() bool {
	return p.Number < p.NumPages
}

func (p Page[T]) PreviousPageNumber() int {
	return max(p.Number-1, 1)
}

func (p Page[T]) NextPageNumber() int {
	return min(p.Number+1, p.NumPages)
}

func (p Page[T]) PageRange() []int {
	pages := make([]int, p.NumPages)
	for i := range pages {
		pages[i] = i + 1
	}
	return pages
}

// ParsePageNumber reads a 1-based page number, falling back to 1 when the
// value is absent or not an integer.
func ParsePageNumber(rawPage string) int {
	number, err := strconv.Atoi(strings.TrimSpace(rawPage))
	if err != nil {
		return 1
	}
	return number
}

// Paginate returns page rawPage of src, size items per page. Out-of-range
// numbers clamp to the first or last page. The source order is kept as is.
func Paginate[T any](ctx context.Context, src Source[T], rawPage string, size int) (Page[T], error) {
	if size < 1 {
		size = 1
	}

	count, err := src.Count(ctx)
	if err != nil {
		return Page[T]{}, err
	}

	numPages := max((count+size-1)/size, 1)
	number := min(max(ParsePageNumber(rawPage), 1), numPages)

	items, err := src.Slice(ctx, (number-1)*size, size)
	if err != nil {
		return Page[T]{}, err
	}

	return Page[T]{
		Items:    items,
		Number:   number,
		NumPages: numPages,
		Count:    count,
	}, nil
}
