package docstore

import (
	"slices"
	"time"
)

// NewestFirst sorts items by descending timestamp. Equal timestamps keep
// their insertion order.
func NewestFirst[T any](items []T, at func(T) time.Time) {
	slices.SortStableFunc(items, func(a, b T) int {
		return at(b).Compare(at(a))
	})
}

// OldestFirst sorts items by ascending timestamp. Equal timestamps keep
// their insertion order.
func OldestFirst[T any](items []T, at func(T) time.Time) {
	slices.SortStableFunc(items, func(a, b T) int {
		return at(a).Compare(at(b))
	})
}
