// Package mapset contains typed set and ordered map containers.
package mapset

import (
	"sort"

	mset "github.com/deckarep/golang-set/v2"
)

// Set is an unordered set of comparable values. Sets returned by New are not
// synchronized: they must not be modified concurrently, but may be read
// concurrently once no writer holds them.
type Set[T comparable] struct {
	inner mset.Set[T]
}

// New creates a set holding the given items.
func New[T comparable](items ...T) Set[T] {
	return Set[T]{inner: mset.NewThreadUnsafeSet[T](items...)}
}

func (s Set[T]) set() mset.Set[T] {
	if s.inner == nil {
		return mset.NewThreadUnsafeSet[T]()
	}
	return s.inner
}

// Add inserts an item and reports whether it was not yet present.
func (s Set[T]) Add(v T) bool { return s.inner.Add(v) }

// Remove deletes an item from the set.
func (s Set[T]) Remove(v T) { s.inner.Remove(v) }

// Contains reports whether all the items are in the set.
func (s Set[T]) Contains(v ...T) bool { return s.set().Contains(v...) }

// Len returns the number of items in the set.
func (s Set[T]) Len() int {
	if s.inner == nil {
		return 0
	}
	return s.inner.Cardinality()
}

// Each calls fn for every item until fn returns false.
func (s Set[T]) Each(fn func(T) bool) {
	s.set().Each(func(v T) bool { return !fn(v) })
}

// Clone returns an independent copy of the set.
func (s Set[T]) Clone() Set[T] { return Set[T]{inner: s.set().Clone()} }

// Union returns a new set with the items of both sets.
func (s Set[T]) Union(o Set[T]) Set[T] { return Set[T]{inner: s.set().Union(o.set())} }

// Intersect returns a new set with the items present in both sets.
func (s Set[T]) Intersect(o Set[T]) Set[T] { return Set[T]{inner: s.set().Intersect(o.set())} }

// Difference returns a new set with the items of s that are not in o.
func (s Set[T]) Difference(o Set[T]) Set[T] { return Set[T]{inner: s.set().Difference(o.set())} }

// IsSubset reports whether every item of s is in o.
func (s Set[T]) IsSubset(o Set[T]) bool { return s.set().IsSubset(o.set()) }

// Equal reports whether both sets hold the same items.
func (s Set[T]) Equal(o Set[T]) bool { return s.set().Equal(o.set()) }

// ToSlice returns the items in no particular order.
func (s Set[T]) ToSlice() []T { return s.set().ToSlice() }

// Sorted returns the items ordered by less.
func (s Set[T]) Sorted(less func(a, b T) bool) []T {
	out := s.ToSlice()
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}
