// Package rank scores vectors by cosine similarity and keeps the best k.
package rank

import (
	"container/heap"
	"math"
	"sort"
)

// Cosine returns the cosine similarity of a and b in [-1, 1].
// Vectors of different length or zero magnitude score 0.
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// Hit is a scored item.
type Hit[T any] struct {
	Key   string
	Score float64
	Item  T
}

// TopK collects the k highest scoring hits. Ties are broken by key so
// results are deterministic regardless of scan order.
type TopK[T any] struct {
	k    int
	hits hitHeap[T]
}

// NewTopK creates a collector for the best k hits.
func NewTopK[T any](k int) *TopK[T] {
	return &TopK[T]{k: k}
}

// Push offers a hit to the collector.
func (t *TopK[T]) Push(key string, score float64, item T) {
	if t.k <= 0 {
		return
	}
	h := Hit[T]{Key: key, Score: score, Item: item}
	if len(t.hits) < t.k {
		heap.Push(&t.hits, h)
		return
	}
	if worse(t.hits[0], h) {
		t.hits[0] = h
		heap.Fix(&t.hits, 0)
	}
}

// Results returns the collected hits, best first.
func (t *TopK[T]) Results() []Hit[T] {
	out := make([]Hit[T], len(t.hits))
	copy(out, t.hits)
	sort.Slice(out, func(i, j int) bool { return worse(out[j], out[i]) })
	return out
}

// worse reports whether a ranks below b.
func worse[T any](a, b Hit[T]) bool {
	if a.Score != b.Score {
		return a.Score < b.Score
	}
	return a.Key > b.Key
}

// hitHeap is a min-heap with the worst hit at the root.
type hitHeap[T any] []Hit[T]

func (h hitHeap[T]) Len() int           { return len(h) }
func (h hitHeap[T]) Less(i, j int) bool { return worse(h[i], h[j]) }
func (h hitHeap[T]) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *hitHeap[T]) Push(x any) { *h = append(*h, x.(Hit[T])) }

func (h *hitHeap[T]) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}
