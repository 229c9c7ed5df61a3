// Package ordered provides an associative structure keyed by float64 that
// is traversed in ascending key order. It is backed by a B-tree.
//
// Several values may share a key. Entries with equal keys are visited in
// insertion order, and deletion addresses an exact (key, value) pair so a
// tie never removes the wrong value.
package ordered

import (
	"errors"
	"fmt"
	"iter"
	"math"

	"github.com/google/btree"
)

var (
	// ErrNotFound is returned when deleting a pair that is not stored.
	ErrNotFound = errors.New("entry not found")
	// ErrExists is returned when inserting a value that is already stored.
	ErrExists = errors.New("value already stored")
	// ErrBadKey is returned for NaN keys, which have no position in the order.
	ErrBadKey = errors.New("key is NaN")
)

const degree = 16

type entry[V comparable] struct {
	key float64
	seq uint64
	val V
}

func less[V comparable](a, b entry[V]) bool {
	if a.key != b.key {
		return a.key < b.key
	}
	return a.seq < b.seq
}

// Map is an ordered multimap from float64 keys to values. Each value may be
// stored at most once. Not safe for concurrent use.
type Map[V comparable] struct {
	tree    *btree.BTreeG[entry[V]]
	stored  map[V]entry[V]
	nextSeq uint64
}

// New creates an empty map.
func New[V comparable]() *Map[V] {
	return &Map[V]{
		tree:   btree.NewG[entry[V]](degree, less[V]),
		stored: make(map[V]entry[V]),
	}
}

// Insert stores v under key.
func (m *Map[V]) Insert(key float64, v V) error {
	if math.IsNaN(key) {
		return ErrBadKey
	}
	if prev, ok := m.stored[v]; ok {
		return fmt.Errorf("%w: under key %v", ErrExists, prev.key)
	}
	e := entry[V]{key: key, seq: m.nextSeq, val: v}
	m.nextSeq++
	m.tree.ReplaceOrInsert(e)
	m.stored[v] = e
	return nil
}

// Delete removes v, which must be stored under key.
func (m *Map[V]) Delete(key float64, v V) error {
	e, ok := m.stored[v]
	if !ok || e.key != key {
		return fmt.Errorf("%w: key %v", ErrNotFound, key)
	}
	m.tree.Delete(e)
	delete(m.stored, v)
	return nil
}

// Key returns the key v is stored under.
func (m *Map[V]) Key(v V) (float64, bool) {
	e, ok := m.stored[v]
	return e.key, ok
}

// Len returns the number of stored entries.
func (m *Map[V]) Len() int {
	return m.tree.Len()
}

// All yields entries in ascending key order. Each call starts a fresh
// traversal; stopping early is cheap. The map must not be modified while a
// traversal is in progress.
func (m *Map[V]) All() iter.Seq2[float64, V] {
	return func(yield func(float64, V) bool) {
		m.tree.Ascend(func(e entry[V]) bool {
			return yield(e.key, e.val)
		})
	}
}
