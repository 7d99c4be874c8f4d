package mapset

import (
	"github.com/emirpasic/gods/trees/btree"
)

// Map is an ordered map backed by a B-tree.
type Map[K comparable, V any] struct {
	inner *btree.Tree
	cmp   func(a, b K) int
}

// NewMap creates an empty map ordered by cmp.
func NewMap[K comparable, V any](cmp func(a, b K) int) *Map[K, V] {
	return &Map[K, V]{
		inner: btree.NewWith(10, func(a, b interface{}) int {
			return cmp(a.(K), b.(K))
		}),
		cmp: cmp,
	}
}

// Put sets the value for a key.
func (m *Map[K, V]) Put(k K, v V) { m.inner.Put(k, v) }

// Get returns the value for a key, if any.
func (m *Map[K, V]) Get(k K) (V, bool) {
	v, ok := m.inner.Get(k)
	if !ok {
		var zero V
		return zero, false
	}
	return v.(V), true
}

// Contains reports whether the key is present.
func (m *Map[K, V]) Contains(k K) bool {
	_, ok := m.inner.Get(k)
	return ok
}

// Remove deletes a key.
func (m *Map[K, V]) Remove(k K) { m.inner.Remove(k) }

// Len returns the number of entries.
func (m *Map[K, V]) Len() int { return m.inner.Size() }

// Each calls fn for every entry in key order until fn returns false.
func (m *Map[K, V]) Each(fn func(k K, v V) bool) {
	it := m.inner.Iterator()
	for it.Next() {
		if !fn(it.Key().(K), it.Value().(V)) {
			return
		}
	}
}

// Keys returns all keys in order.
func (m *Map[K, V]) Keys() []K {
	out := make([]K, 0, m.Len())
	m.Each(func(k K, _ V) bool {
		out = append(out, k)
		return true
	})
	return out
}

// Values returns all values in key order.
func (m *Map[K, V]) Values() []V {
	out := make([]V, 0, m.Len())
	m.Each(func(_ K, v V) bool {
		out = append(out, v)
		return true
	})
	return out
}

// Clone returns an independent copy of the map.
func (m *Map[K, V]) Clone() *Map[K, V] {
	c := NewMap[K, V](m.cmp)
	m.Each(func(k K, v V) bool {
		c.Put(k, v)
		return true
	})
	return c
}
