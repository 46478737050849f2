// Package llrb implement a single instance of in-memory sorted index
// using left-leaning-red-black tree. The index is parameterized on
// the key's natural total order, supports point lookups, insertion,
// deletion, order-statistic queries and materialized traversals, all
// with guaranteed logarithmic depth.
//
// The tree is single threaded and fully synchronous, applications
// mutating it from multiple goroutines shall serialize access with an
// exclusive lock.
package llrb

import "cmp"
import "fmt"
import "io"
import "strings"

import s "github.com/bnclabs/gosettings"
import "github.com/bnclabs/gotree/api"
import "github.com/bnclabs/gotree/lib"

// LLRB manage a single instance of in-memory sorted index using
// left-leaning-red-black tree.
type LLRB[K cmp.Ordered, V any] struct { // tree container
	llrbstats
	h_upsertdepth *lib.HistogramInt64

	name      string
	root      *Llrbnode[K, V]
	dead      bool
	logprefix string

	// settings
	selfcheck bool
	htfactor  float64
	setts     s.Settings
}

// NewLLRB a new instance of in-memory sorted index.
func NewLLRB[K cmp.Ordered, V any](name string, setts s.Settings) *LLRB[K, V] {
	llrb := &LLRB[K, V]{name: name}
	llrb.logprefix = fmt.Sprintf("LLRB [%s]", name)

	setts = make(s.Settings).Mixin(Defaultsettings(), setts)
	llrb.readsettings(setts)
	llrb.setts = setts

	// statistics
	llrb.h_upsertdepth = lib.NewhistorgramInt64(1, 256, 4)

	infof("%v started ...\n", llrb.logprefix)
	return llrb
}

func (llrb *LLRB[K, V]) readsettings(setts s.Settings) {
	llrb.selfcheck = setts.Bool("selfcheck")
	llrb.htfactor = setts.Float64("maxheight.factor")
}

//---- api.Index{} interface, metadata methods.

// ID implement api.Index interface.
func (llrb *LLRB[K, V]) ID() string {
	return llrb.name
}

// Count implement api.Index interface, same as the number of entries
// under the root.
func (llrb *LLRB[K, V]) Count() int64 {
	return size(llrb.root)
}

// Isactive return false after the tree is destroyed.
func (llrb *LLRB[K, V]) Isactive() bool {
	return llrb.dead == false
}

// Clone the tree under a new name. Entries are copied, the clone and
// the original can be mutated independently.
func (llrb *LLRB[K, V]) Clone(name string) *LLRB[K, V] {
	newllrb := NewLLRB[K, V](name, llrb.setts)
	newllrb.llrbstats = llrb.llrbstats
	newllrb.root = clonetree(llrb.root)
	return newllrb
}

func clonetree[K cmp.Ordered, V any](nd *Llrbnode[K, V]) *Llrbnode[K, V] {
	if nd == nil {
		return nil
	}
	newnd := &Llrbnode[K, V]{
		key: nd.key, value: nd.value, n: nd.n, red: nd.red,
	}
	newnd.left = clonetree(nd.left)
	newnd.right = clonetree(nd.right)
	return newnd
}

// Destroy releases the tree. To be called only after all references
// into the tree are dropped.
func (llrb *LLRB[K, V]) Destroy() {
	if llrb.dead {
		panic("Destroy(): already dead tree")
	}
	llrb.root, llrb.setts, llrb.dead = nil, nil, true
	infof("%v destroyed\n", llrb.logprefix)
}

// Dotdump to convert whole tree into dot script that can be
// visualized using graphviz.
func (llrb *LLRB[K, V]) Dotdump(buffer io.Writer) {
	lines := []string{
		"digraph llrb {",
		"  node[shape=record];\n",
		"}",
	}
	buffer.Write([]byte(strings.Join(lines[:len(lines)-1], "\n")))
	if llrb.root != nil {
		llrb.root.dotdump(buffer)
	}
	buffer.Write([]byte(lines[len(lines)-1]))
}

//---- api.Index{} interface, write methods.

// Set a key,value in the index, if key is already present, value is
// overwritten and the old value returned. New keys always enter the
// tree as red leaves, corrections propagate towards the root while
// the recursion unwinds.
func (llrb *LLRB[K, V]) Set(key K, value V) (oldvalue V, updated bool) {
	root, oldvalue, updated := llrb.upsert(llrb.root, 1 /*depth*/, key, value)
	root.setblack()
	llrb.root = root

	llrb.upsertcounts(updated)
	if llrb.selfcheck {
		llrb.validate(llrb.root)
	}
	return oldvalue, updated
}

// returns root, oldvalue, updated
func (llrb *LLRB[K, V]) upsert(
	nd *Llrbnode[K, V], depth int64,
	key K, value V) (*Llrbnode[K, V], V, bool) {

	var oldvalue V
	var updated bool

	if nd == nil {
		llrb.h_upsertdepth.Add(depth)
		return llrb.newnode(key, value), oldvalue, false
	}

	if nd.gtkey(key) {
		nd.left, oldvalue, updated = llrb.upsert(nd.left, depth+1, key, value)
	} else if nd.ltkey(key) {
		nd.right, oldvalue, updated = llrb.upsert(nd.right, depth+1, key, value)
	} else {
		oldvalue, nd.value, updated = nd.value, value, true
		llrb.h_upsertdepth.Add(depth)
	}

	nd = llrb.walkuprot23(nd)
	return nd, oldvalue, updated
}

// Delete key from the index, a no-op if key is missing. A node with
// two children is never unlinked directly, its key,value are swapped
// with the in-order successor and the successor's old slot is excised
// with deletemin on the right subtree.
func (llrb *LLRB[K, V]) Delete(key K) (deletedvalue V, deleted bool) {
	root := llrb.root
	// manufacture a red link at the root so that moveredleft and
	// moveredright preconditions hold on the way down.
	if root != nil && isblack(root.left) && isblack(root.right) {
		root.setred()
	}

	root, delnd := llrb.delete(root, key)
	if root != nil {
		root.setblack()
	}
	llrb.root = root

	if delnd != nil {
		deletedvalue, deleted = delnd.value, true
		llrb.delcounts()
		llrb.freenode(delnd)
	}
	if llrb.selfcheck {
		llrb.validate(llrb.root)
	}
	return deletedvalue, deleted
}

func (llrb *LLRB[K, V]) delete(
	nd *Llrbnode[K, V], key K) (newnd, deleted *Llrbnode[K, V]) {

	if nd == nil {
		return nil, nil
	}

	if nd.gtkey(key) {
		if nd.left == nil { // key not present. Nothing to delete
			return nd, nil
		}
		if !isred(nd.left) && !isred(nd.left.left) {
			nd = llrb.moveredleft(nd)
		}
		nd.left, deleted = llrb.delete(nd.left, key)

	} else {
		if isred(nd.left) {
			nd = llrb.rotateright(nd)
		}
		// if @key equals @nd and no right children at @nd
		if !nd.ltkey(key) && nd.right == nil {
			return nil, nd
		}
		if nd.right != nil && !isred(nd.right) && !isred(nd.right.left) {
			nd = llrb.moveredright(nd)
		}
		// the rotations above may have moved the matching node, check
		// equality again. If @key equals @nd, then (from above)
		// nd.right is not nil.
		if !nd.ltkey(key) {
			// swap key,value with the in-order successor and excise
			// the successor's old slot from the right subtree.
			var subdeleted *Llrbnode[K, V]
			next := nd.right.minnode()
			nd.key, next.key = next.key, nd.key
			nd.value, next.value = next.value, nd.value
			nd.right, subdeleted = llrb.deletemin(nd.right)
			if subdeleted == nil {
				panic("delete(): fatal logic, call the programmer")
			}
			deleted = subdeleted
		} else { // else, @key is bigger than @nd
			nd.right, deleted = llrb.delete(nd.right, key)
		}
	}
	return llrb.fixup(nd), deleted
}

// DeleteMin remove the entry with the smallest key, a no-op on an
// empty tree.
func (llrb *LLRB[K, V]) DeleteMin() (entry api.Entry[K, V], ok bool) {
	root := llrb.root
	if root != nil && isblack(root.left) && isblack(root.right) {
		root.setred()
	}

	root, deleted := llrb.deletemin(root)
	if root != nil {
		root.setblack()
	}
	llrb.root = root

	if deleted != nil {
		entry, ok = deleted.entry(), true
		llrb.delcounts()
		llrb.freenode(deleted)
	}
	if llrb.selfcheck {
		llrb.validate(llrb.root)
	}
	return entry, ok
}

// using 2-3 trees
func (llrb *LLRB[K, V]) deletemin(
	nd *Llrbnode[K, V]) (newnd, deleted *Llrbnode[K, V]) {

	if nd == nil {
		return nil, nil
	}
	if nd.left == nil {
		return nil, nd
	}
	if !isred(nd.left) && !isred(nd.left.left) {
		nd = llrb.moveredleft(nd)
	}
	nd.left, deleted = llrb.deletemin(nd.left)
	return llrb.fixup(nd), deleted
}

// DeleteMax remove the entry with the largest key, a no-op on an
// empty tree.
func (llrb *LLRB[K, V]) DeleteMax() (entry api.Entry[K, V], ok bool) {
	root := llrb.root
	if root != nil && isblack(root.left) && isblack(root.right) {
		root.setred()
	}

	root, deleted := llrb.deletemax(root)
	if root != nil {
		root.setblack()
	}
	llrb.root = root

	if deleted != nil {
		entry, ok = deleted.entry(), true
		llrb.delcounts()
		llrb.freenode(deleted)
	}
	if llrb.selfcheck {
		llrb.validate(llrb.root)
	}
	return entry, ok
}

// using 2-3 trees
func (llrb *LLRB[K, V]) deletemax(
	nd *Llrbnode[K, V]) (newnd, deleted *Llrbnode[K, V]) {

	if nd == nil {
		return nil, nil
	}
	// the walk is about to go right, clear any left-leaning red link
	// from the path.
	if isred(nd.left) {
		nd = llrb.rotateright(nd)
	}
	if nd.right == nil {
		return nil, nd
	}
	if !isred(nd.right) && !isred(nd.right.left) {
		nd = llrb.moveredright(nd)
	}
	nd.right, deleted = llrb.deletemax(nd.right)
	return llrb.fixup(nd), deleted
}

//---- api.Index{} interface, read methods.

// Get value for key, ok is false if key is missing.
func (llrb *LLRB[K, V]) Get(key K) (value V, ok bool) {
	nd := llrb.root
	for nd != nil {
		if nd.gtkey(key) {
			nd = nd.left
		} else if nd.ltkey(key) {
			nd = nd.right
		} else {
			return nd.value, true
		}
	}
	return value, false
}

// Min return the entry with the smallest key in the index.
func (llrb *LLRB[K, V]) Min() (entry api.Entry[K, V], ok bool) {
	if llrb.root == nil {
		return entry, false
	}
	return llrb.root.minnode().entry(), true
}

// Max return the entry with the largest key in the index.
func (llrb *LLRB[K, V]) Max() (entry api.Entry[K, V], ok bool) {
	if llrb.root == nil {
		return entry, false
	}
	return llrb.root.maxnode().entry(), true
}

// Floor return the entry with the largest key less than or equal to
// key, ok is false if there is no such entry.
func (llrb *LLRB[K, V]) Floor(key K) (entry api.Entry[K, V], ok bool) {
	if nd := floorof(llrb.root, key); nd != nil {
		return nd.entry(), true
	}
	return entry, false
}

func floorof[K cmp.Ordered, V any](
	nd *Llrbnode[K, V], key K) *Llrbnode[K, V] {

	if nd == nil {
		return nil
	}
	if nd.gtkey(key) {
		return floorof(nd.left, key)
	}
	if nd.ltkey(key) {
		if floor := floorof(nd.right, key); floor != nil {
			return floor
		}
		return nd
	}
	return nd
}

// Ceiling return the entry with the smallest key greater than or
// equal to key, ok is false if there is no such entry.
func (llrb *LLRB[K, V]) Ceiling(key K) (entry api.Entry[K, V], ok bool) {
	if nd := ceilingof(llrb.root, key); nd != nil {
		return nd.entry(), true
	}
	return entry, false
}

func ceilingof[K cmp.Ordered, V any](
	nd *Llrbnode[K, V], key K) *Llrbnode[K, V] {

	if nd == nil {
		return nil
	}
	if nd.ltkey(key) {
		return ceilingof(nd.right, key)
	}
	if nd.gtkey(key) {
		if ceiling := ceilingof(nd.left, key); ceiling != nil {
			return ceiling
		}
		return nd
	}
	return nd
}

// Select return the entry of rank k, 0-indexed in sort order of keys,
// ok is false if k is outside [0, Count()).
func (llrb *LLRB[K, V]) Select(k int64) (entry api.Entry[K, V], ok bool) {
	if nd := selectof(llrb.root, k); nd != nil {
		return nd.entry(), true
	}
	return entry, false
}

func selectof[K cmp.Ordered, V any](
	nd *Llrbnode[K, V], k int64) *Llrbnode[K, V] {

	if nd == nil {
		return nil
	}
	t := size(nd.left)
	if k < t {
		return selectof(nd.left, k)
	} else if k > t {
		return selectof(nd.right, k-t-1)
	}
	return nd
}

// Rank return the number of keys in the index strictly less than
// key. Key need not be present in the index.
func (llrb *LLRB[K, V]) Rank(key K) int64 {
	return rankof(llrb.root, key)
}

func rankof[K cmp.Ordered, V any](nd *Llrbnode[K, V], key K) int64 {
	if nd == nil {
		return 0
	}
	if nd.gtkey(key) {
		return rankof(nd.left, key)
	} else if nd.ltkey(key) {
		return size(nd.left) + rankof(nd.right, key) + 1
	}
	return size(nd.left)
}

// rotation routines for 2-3 algorithm

func (llrb *LLRB[K, V]) walkuprot23(nd *Llrbnode[K, V]) *Llrbnode[K, V] {
	if isred(nd.right) && !isred(nd.left) {
		nd = llrb.rotateleft(nd)
	}
	if isred(nd.left) && isred(nd.left.left) {
		nd = llrb.rotateright(nd)
	}
	if isred(nd.left) && isred(nd.right) {
		llrb.flip(nd)
	}
	nd.updatesize()
	return nd
}

func (llrb *LLRB[K, V]) rotateleft(nd *Llrbnode[K, V]) *Llrbnode[K, V] {
	y := nd.right
	if y == nil || !y.red {
		panic("rotateleft(): rotating a black link ? call the programmer")
	}
	nd.right = y.left
	y.left = nd
	y.red = nd.red
	nd.red = true
	// y inherits nd's pre-rotation size, nd recomputes bottom-up.
	y.n = nd.n
	nd.updatesize()
	return y
}

func (llrb *LLRB[K, V]) rotateright(nd *Llrbnode[K, V]) *Llrbnode[K, V] {
	x := nd.left
	if x == nil || !x.red {
		panic("rotateright(): rotating a black link ? call the programmer")
	}
	nd.left = x.right
	x.right = nd
	x.red = nd.red
	nd.red = true
	x.n = nd.n
	nd.updatesize()
	return x
}

// REQUIRE: left and right children must be present
func (llrb *LLRB[K, V]) flip(nd *Llrbnode[K, V]) {
	nd.left.togglelink()
	nd.right.togglelink()
	nd.togglelink()
}

// REQUIRE: left and right children must be present
func (llrb *LLRB[K, V]) moveredleft(nd *Llrbnode[K, V]) *Llrbnode[K, V] {
	llrb.flip(nd)
	if isred(nd.right.left) {
		nd.right = llrb.rotateright(nd.right)
		nd = llrb.rotateleft(nd)
		llrb.flip(nd)
	}
	return nd
}

// REQUIRE: left and right children must be present
func (llrb *LLRB[K, V]) moveredright(nd *Llrbnode[K, V]) *Llrbnode[K, V] {
	llrb.flip(nd)
	if isred(nd.left.left) {
		nd = llrb.rotateright(nd)
		llrb.flip(nd)
	}
	return nd
}

// fixup restores the left-leaning and black-balance invariants after
// one local change, applied on every return path of a mutation.
func (llrb *LLRB[K, V]) fixup(nd *Llrbnode[K, V]) *Llrbnode[K, V] {
	if isred(nd.right) && !isred(nd.left) {
		nd = llrb.rotateleft(nd)
	}
	if isred(nd.left) && isred(nd.left.left) {
		nd = llrb.rotateright(nd)
	}
	if isred(nd.left) && isred(nd.right) {
		llrb.flip(nd)
	}
	nd.updatesize()
	return nd
}

//---- local functions

func (llrb *LLRB[K, V]) newnode(key K, value V) *Llrbnode[K, V] {
	nd := &Llrbnode[K, V]{key: key, value: value, n: 1, red: true}
	llrb.n_nodes++
	return nd
}

func (llrb *LLRB[K, V]) freenode(nd *Llrbnode[K, V]) {
	if nd != nil {
		nd.left, nd.right = nil, nil
		llrb.n_frees++
	}
}
