// Package sampler implements weighted reservoir sampling without
// replacement (A-Res, Efraimidis-Spirakis), used for both the domain
// sample in Frontier.SampleDomains and the URL sample inside
// Frontier.PrepareJobs (spec §4.4).
//
// The max-heap here plays exactly the role cassandra.PriorityURL plays
// in the teacher: a container/heap.Interface kept at a bounded size,
// with the worst-scoring element evicted as better ones arrive.
package sampler

import (
	"container/heap"
	"math"
	"math/rand"
)

// epsilon protects ln(0) when a draw of u lands at exactly 0. Spec
// §4.4 step 1.
const epsilon = 1e-12

// Weighted is one (item, weight) pair offered to the sampler.
type Weighted[T any] struct {
	Item   T
	Weight float64
}

// Sample draws k items from items without replacement, with
// probability proportional to weight, in O(n log k) time and O(k)
// memory. If len(items) <= k, all items are returned. Returned order
// is unspecified, matching spec §4.4.
func Sample[T any](items []Weighted[T], k int, rng *rand.Rand) []T {
	if k <= 0 {
		return nil
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}

	h := &sampledHeap[T]{}
	heap.Init(h)

	for _, w := range items {
		u := rng.Float64() // uniform on [0, 1)
		key := -math.Log(u+epsilon) / (w.Weight + 1)

		if h.Len() < k {
			heap.Push(h, sampledItem[T]{item: w.Item, key: key})
			continue
		}
		if lessKey(key, h.items[0].key) {
			h.items[0] = sampledItem[T]{item: w.Item, key: key}
			heap.Fix(h, 0)
		}
	}

	out := make([]T, h.Len())
	for i, si := range h.items {
		out[i] = si.item
	}
	return out
}

// lessKey normalizes float comparisons to Equal on any unorderable
// pair (NaN is impossible by invariant, but defensive code treats it
// as Equal rather than propagating it into heap order) per spec §9.
func lessKey(a, b float64) bool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return false
	}
	return a < b
}

type sampledItem[T any] struct {
	item T
	key  float64
}

// sampledHeap is a max-heap ordered by key: the largest key is always
// at the root, so Sample can cheaply test "is this new key smaller
// than the worst key currently kept" and evict the root on replace.
type sampledHeap[T any] struct {
	items []sampledItem[T]
}

func (h *sampledHeap[T]) Len() int { return len(h.items) }

func (h *sampledHeap[T]) Less(i, j int) bool {
	// max-heap: root should be the largest key, so "less" for the heap
	// library's purposes is "greater" for our keys.
	return lessKey(h.items[j].key, h.items[i].key)
}

func (h *sampledHeap[T]) Swap(i, j int) {
	h.items[i], h.items[j] = h.items[j], h.items[i]
}

func (h *sampledHeap[T]) Push(x any) {
	h.items = append(h.items, x.(sampledItem[T]))
}

func (h *sampledHeap[T]) Pop() any {
	old := h.items
	n := len(old)
	x := old[n-1]
	h.items = old[:n-1]
	return x
}
