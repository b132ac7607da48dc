package dataretainer

import (
	"cmp"
	"container/heap"
	"sort"
)

// Entry is a ranked group. Seq is the order in which the group was first seen and
// breaks ties between equal values, earlier first.
type Entry[V cmp.Ordered] struct {
	Key     string
	Seq     int
	Value   V
	Payload []float64
}

type entryHeap[V cmp.Ordered] struct {
	items   []Entry[V]
	largest bool // true => keep the N largest
}

// outranks reports whether a should be listed before b.
func outranks[V cmp.Ordered](a, b Entry[V], largest bool) bool {
	if a.Value != b.Value {
		if largest {
			return a.Value > b.Value
		}
		return a.Value < b.Value
	}
	return a.Seq < b.Seq
}

func (h entryHeap[V]) Len() int      { return len(h.items) }
func (h entryHeap[V]) Swap(i, j int) { h.items[i], h.items[j] = h.items[j], h.items[i] }

// Less keeps the weakest retained entry at the root.
func (h entryHeap[V]) Less(i, j int) bool {
	return outranks(h.items[j], h.items[i], h.largest)
}
func (h *entryHeap[V]) Push(x interface{}) { h.items = append(h.items, x.(Entry[V])) }
func (h *entryHeap[V]) Pop() interface{} {
	old := h.items
	n := len(old)
	x := old[n-1]
	h.items = old[:n-1]
	return x
}

// TopN retains the best capacity entries seen so far.
type TopN[V cmp.Ordered] struct {
	h        *entryHeap[V]
	capacity int
}

func NewTopN[V cmp.Ordered](capacity int, largest bool) *TopN[V] {
	if capacity <= 0 {
		capacity = 1
	}
	h := &entryHeap[V]{items: make([]Entry[V], 0, capacity), largest: largest}
	heap.Init(h)
	return &TopN[V]{h: h, capacity: capacity}
}

func (t *TopN[V]) Insert(e Entry[V]) {
	if t.h.Len() < t.capacity {
		heap.Push(t.h, e)
		return
	}
	if outranks(e, t.h.items[0], t.h.largest) {
		t.h.items[0] = e
		heap.Fix(t.h, 0)
	}
}

// Values returns the retained entries, best first.
func (t *TopN[V]) Values() []Entry[V] {
	out := make([]Entry[V], len(t.h.items))
	copy(out, t.h.items)
	sort.Slice(out, func(i, j int) bool { return outranks(out[i], out[j], t.h.largest) })
	return out
}

func (t *TopN[V]) Len() int {
	return t.h.Len()
}
