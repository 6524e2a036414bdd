package slice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReverseInPlace(t *testing.T) {
	s := []int{1, 2, 3, 4}
	ReverseInPlace(s)
	assert.Equal(t, []int{4, 3, 2, 1}, s)

	empty := []int{}
	ReverseInPlace(empty)
	assert.Empty(t, empty)
}

func TestSortedUnique(t *testing.T) {
	in := []int{5, 1, 3, 1, 5, 2}
	assert.Equal(t, []int{1, 2, 3, 5}, SortedUnique(in))
	assert.Equal(t, []int{5, 1, 3, 1, 5, 2}, in)
	assert.Empty(t, SortedUnique([]int(nil)))
}

func TestRemoveValue(t *testing.T) {
	s := []string{"a", "b", "c"}
	s = RemoveValue(s, "b")
	assert.Equal(t, []string{"a", "c"}, s)
	assert.Equal(t, []string{"a", "c"}, RemoveValue(s, "x"))
}
