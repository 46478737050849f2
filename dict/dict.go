// Package dict implement a sorted dictionary of key,value pairs based
// on golang map. Primarily meant as a reference for validating more
// useful index algorithms.
package dict

import "cmp"
import "fmt"
import "sort"

import "github.com/bnclabs/gotree/api"

// Dict is a reference data structure, for validation purpose. Every
// ordered query sorts the full key set, don't use this outside tests
// and verification tools.
type Dict[K cmp.Ordered, V any] struct {
	id   string
	dict map[K]V
	dead bool
}

// NewDict create a new golang map for indexing key,value.
func NewDict[K cmp.Ordered, V any](id string) *Dict[K, V] {
	return &Dict[K, V]{id: id, dict: make(map[K]V)}
}

func (d *Dict[K, V]) sorted() []K {
	keys := make([]K, 0, len(d.dict))
	for key := range d.dict {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

//---- api.Index{} interface.

// ID implement api.Index interface.
func (d *Dict[K, V]) ID() string {
	return d.id
}

// Count implement api.Index interface.
func (d *Dict[K, V]) Count() int64 {
	return int64(len(d.dict))
}

// Set implement api.Index interface.
func (d *Dict[K, V]) Set(key K, value V) (oldvalue V, updated bool) {
	oldvalue, updated = d.dict[key]
	d.dict[key] = value
	return oldvalue, updated
}

// Get implement api.Index interface.
func (d *Dict[K, V]) Get(key K) (value V, ok bool) {
	value, ok = d.dict[key]
	return value, ok
}

// Min implement api.Index interface.
func (d *Dict[K, V]) Min() (entry api.Entry[K, V], ok bool) {
	if len(d.dict) == 0 {
		return entry, false
	}
	key := d.sorted()[0]
	return api.Entry[K, V]{Key: key, Value: d.dict[key]}, true
}

// Max implement api.Index interface.
func (d *Dict[K, V]) Max() (entry api.Entry[K, V], ok bool) {
	if len(d.dict) == 0 {
		return entry, false
	}
	keys := d.sorted()
	key := keys[len(keys)-1]
	return api.Entry[K, V]{Key: key, Value: d.dict[key]}, true
}

// Floor implement api.Index interface.
func (d *Dict[K, V]) Floor(key K) (entry api.Entry[K, V], ok bool) {
	keys := d.sorted()
	i := sort.Search(len(keys), func(j int) bool { return keys[j] > key })
	if i == 0 {
		return entry, false
	}
	floor := keys[i-1]
	return api.Entry[K, V]{Key: floor, Value: d.dict[floor]}, true
}

// Ceiling implement api.Index interface.
func (d *Dict[K, V]) Ceiling(key K) (entry api.Entry[K, V], ok bool) {
	keys := d.sorted()
	i := sort.Search(len(keys), func(j int) bool { return keys[j] >= key })
	if i == len(keys) {
		return entry, false
	}
	ceiling := keys[i]
	return api.Entry[K, V]{Key: ceiling, Value: d.dict[ceiling]}, true
}

// Select implement api.Index interface.
func (d *Dict[K, V]) Select(k int64) (entry api.Entry[K, V], ok bool) {
	if k < 0 || k >= int64(len(d.dict)) {
		return entry, false
	}
	key := d.sorted()[k]
	return api.Entry[K, V]{Key: key, Value: d.dict[key]}, true
}

// Rank implement api.Index interface.
func (d *Dict[K, V]) Rank(key K) int64 {
	keys := d.sorted()
	i := sort.Search(len(keys), func(j int) bool { return keys[j] >= key })
	return int64(i)
}

// Delete implement api.Index interface.
func (d *Dict[K, V]) Delete(key K) (deletedvalue V, deleted bool) {
	deletedvalue, deleted = d.dict[key]
	delete(d.dict, key)
	return deletedvalue, deleted
}

// DeleteMin implement api.Index interface.
func (d *Dict[K, V]) DeleteMin() (entry api.Entry[K, V], ok bool) {
	if entry, ok = d.Min(); ok {
		delete(d.dict, entry.Key)
	}
	return entry, ok
}

// DeleteMax implement api.Index interface.
func (d *Dict[K, V]) DeleteMax() (entry api.Entry[K, V], ok bool) {
	if entry, ok = d.Max(); ok {
		delete(d.dict, entry.Key)
	}
	return entry, ok
}

// InOrder implement api.Index interface.
func (d *Dict[K, V]) InOrder() []api.Entry[K, V] {
	entries := make([]api.Entry[K, V], 0, len(d.dict))
	for _, key := range d.sorted() {
		entries = append(entries, api.Entry[K, V]{Key: key, Value: d.dict[key]})
	}
	return entries
}

// Validate implement api.Index interface.
func (d *Dict[K, V]) Validate() {
	keys := d.sorted()
	for i := 1; i < len(keys); i++ {
		if keys[i-1] >= keys[i] {
			fmsg := "validate(): sort order, %v is >= %v"
			panic(fmt.Errorf(fmsg, keys[i-1], keys[i]))
		}
	}
}

// Destroy implement api.Index interface.
func (d *Dict[K, V]) Destroy() {
	if d.dead {
		panic("Destroy(): already dead dict")
	}
	d.dict, d.dead = nil, true
}
