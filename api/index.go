// Package api define types and interfaces common to ordered
// key,value indexes under gotree.
package api

import "cmp"

// Entry is a single key,value pair held by an index. Queries that
// identify an entry, like Min, Max, Floor, Ceiling and Select, return
// a copy of the entry, never a reference into the index.
type Entry[K cmp.Ordered, V any] struct {
	Key   K
	Value V
}

// Index interface for ordered key,value indexes, parameterized by the
// key type's natural total order. Implemented by llrb.LLRB and by the
// reference structure dict.Dict.
type Index[K cmp.Ordered, V any] interface {
	// ID return index instance's unique identifier.
	ID() string

	// Count return the number of entries in the index.
	Count() int64

	// Set insert a new key,value into the index, or overwrite the
	// value if key is already present. Return the old value, if any.
	Set(key K, value V) (oldvalue V, updated bool)

	// Get value for key, ok is false if key is missing.
	Get(key K) (value V, ok bool)

	// Min return the entry with the smallest key in the index.
	Min() (entry Entry[K, V], ok bool)

	// Max return the entry with the largest key in the index.
	Max() (entry Entry[K, V], ok bool)

	// Floor return the entry with the largest key <= key.
	Floor(key K) (entry Entry[K, V], ok bool)

	// Ceiling return the entry with the smallest key >= key.
	Ceiling(key K) (entry Entry[K, V], ok bool)

	// Select return the entry of rank k, 0-indexed in sort order of
	// keys, ok is false if k is outside [0, Count()).
	Select(k int64) (entry Entry[K, V], ok bool)

	// Rank return the number of keys in the index strictly less than
	// key. Key need not be present in the index.
	Rank(key K) int64

	// Delete key from the index, no-op if key is missing.
	Delete(key K) (deletedvalue V, deleted bool)

	// DeleteMin remove the entry with the smallest key, no-op on an
	// empty index.
	DeleteMin() (entry Entry[K, V], ok bool)

	// DeleteMax remove the entry with the largest key, no-op on an
	// empty index.
	DeleteMax() (entry Entry[K, V], ok bool)

	// InOrder return the full set of entries in sort order of keys.
	InOrder() []Entry[K, V]

	// Validate check index invariants, panic if violated.
	Validate()

	// Destroy release the index. To be called only after all
	// references into the index are dropped.
	Destroy()
}
