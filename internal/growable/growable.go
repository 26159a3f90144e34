// Package growable provides a slice that only ever grows its capacity.
package growable

// Slice is a growth-only backing array. Its length is always its capacity;
// callers index it directly and call EnsureCapacity before writing past the
// end.
type Slice[T any] struct {
	data     []T
	reallocs int
}

// Make returns a Slice with room for n elements.
func Make[T any](n int) Slice[T] {
	return Slice[T]{data: make([]T, n)}
}

// EnsureCapacity grows the slice to hold at least n elements, preserving the
// existing contents. It reports whether a reallocation happened. Capacity is
// at least doubled on growth so that a run of small increases reallocates
// rarely.
func (s *Slice[T]) EnsureCapacity(n int) bool {
	if n <= len(s.data) {
		return false
	}
	newCap := max(n, 2*len(s.data))
	data := make([]T, newCap)
	copy(data, s.data)
	s.data = data
	s.reallocs++
	return true
}

// Data returns the backing array. The result is invalidated by the next
// EnsureCapacity that grows.
func (s *Slice[T]) Data() []T { return s.data }

// Len returns the current capacity.
func (s *Slice[T]) Len() int { return len(s.data) }

// Reallocs returns how many times EnsureCapacity reallocated.
func (s *Slice[T]) Reallocs() int { return s.reallocs }
