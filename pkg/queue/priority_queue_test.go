package queue

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testItem struct {
	name     string
	priority float64
	index    int
	sequence uint64
}

func (t *testItem) Priority() float64    { return t.priority }
func (t *testItem) Index() int           { return t.index }
func (t *testItem) SetIndex(i int)       { t.index = i }
func (t *testItem) Sequence() uint64     { return t.sequence }
func (t *testItem) SetSequence(s uint64) { t.sequence = s }
func (t *testItem) String() string       { return fmt.Sprintf("%v: %v\n", t.name, t.priority) }

func popAll(h *MinHeap[*testItem]) []string {
	names := make([]string, 0, h.Len())
	for h.Len() > 0 {
		names = append(names, h.Pop().name)
	}
	return names
}

func TestMinHeapOrder(t *testing.T) {
	h := NewMinHeap[*testItem](nil)
	h.Push(&testItem{name: "c", priority: 3})
	h.Push(&testItem{name: "a", priority: 1})
	h.Push(&testItem{name: "b", priority: 2})
	h.Push(&testItem{name: "z", priority: 0.5})

	require.Equal(t, 4, h.Len())
	assert.Equal(t, "z", h.Peek().name)
	assert.Equal(t, []string{"z", "a", "b", "c"}, popAll(h))
}

func TestMinHeapTieBreakByInsertion(t *testing.T) {
	h := NewMinHeap[*testItem](nil)
	for _, name := range []string{"first", "second", "third"} {
		h.Push(&testItem{name: name, priority: 1})
	}
	assert.Equal(t, []string{"first", "second", "third"}, popAll(h))
}

func TestMinHeapUpdate(t *testing.T) {
	h := NewMinHeap[*testItem](nil)
	a := &testItem{name: "a", priority: 5}
	b := &testItem{name: "b", priority: 2}
	c := &testItem{name: "c", priority: 2}
	h.Push(a)
	h.Push(b)
	h.Push(c)

	a.priority = 2
	h.Update(a)
	// a was updated last, so it comes after the other items with the same priority
	assert.Equal(t, []string{"b", "c", "a"}, popAll(h))
	assert.Equal(t, -1, a.Index())
}

func TestMinHeapRemove(t *testing.T) {
	items := []*testItem{{name: "a", priority: 1}, {name: "b", priority: 2}, {name: "c", priority: 3}}
	h := NewMinHeap(items)
	h.Remove(items[1].Index())
	assert.Equal(t, []string{"a", "c"}, popAll(h))
	assert.Panics(t, func() { h.PeekAt(0) })
}
