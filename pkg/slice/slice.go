package slice

import (
	"cmp"
	"slices"
)

func ReverseInPlace[T any](s []T) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

// SortedUnique returns a sorted copy of s without duplicates. s is not modified.
func SortedUnique[T cmp.Ordered](s []T) []T {
	c := make([]T, len(s))
	copy(c, s)
	slices.Sort(c)
	return slices.Compact(c)
}

// Remove the first occurrence of value, keeping the order of the other elements
func RemoveValue[T comparable](s []T, value T) []T {
	for i, a := range s {
		if a == value {
			return append(s[:i], s[i+1:]...)
		}
	}
	return s
}
