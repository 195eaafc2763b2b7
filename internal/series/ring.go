// Package series holds the generated data behind the charts: capped sample
// buffers and the random-walk generators that feed them.
package series

// Ring is a fixed capacity FIFO. Pushing past capacity evicts the oldest
// element. It is not safe for concurrent use; each chart owns its rings.
type Ring[T any] struct {
	buffer    []T
	nextIndex int
	size      int
}

// NewRing returns an empty ring holding at most capacity elements.
func NewRing[T any](capacity int) *Ring[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &Ring[T]{buffer: make([]T, capacity)}
}

// Push appends v, evicting the oldest element when the ring is full.
func (r *Ring[T]) Push(v T) {
	r.buffer[r.nextIndex] = v
	r.nextIndex++
	if r.nextIndex >= len(r.buffer) {
		r.nextIndex = 0
	}
	if r.size < len(r.buffer) {
		r.size++
	}
}

func (r *Ring[T]) Len() int { return r.size }

func (r *Ring[T]) Cap() int { return len(r.buffer) }

// Latest returns the most recently pushed element.
func (r *Ring[T]) Latest() (T, bool) {
	var zero T
	if r.size == 0 {
		return zero, false
	}
	idx := r.nextIndex - 1
	if idx < 0 {
		idx = len(r.buffer) - 1
	}
	return r.buffer[idx], true
}

// Last returns up to the last n elements, oldest first. The slice is a copy.
func (r *Ring[T]) Last(n int) []T {
	if n > r.size {
		n = r.size
	}
	if n <= 0 {
		return nil
	}
	out := make([]T, n)
	start := r.nextIndex - n
	if start < 0 {
		start += len(r.buffer)
	}
	for i := 0; i < n; i++ {
		out[i] = r.buffer[(start+i)%len(r.buffer)]
	}
	return out
}

// All returns every element, oldest first.
func (r *Ring[T]) All() []T { return r.Last(r.size) }

func (r *Ring[T]) Reset() {
	r.nextIndex = 0
	r.size = 0
}
