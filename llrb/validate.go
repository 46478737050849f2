package llrb

import "cmp"
import "errors"
import "fmt"
import "math"

import "github.com/bnclabs/gotree/lib"

// height of the tree cannot exceed a certain limit. For example if
// the tree holds 1-million entries, a fully balanced tree shall have
// a height of 20 levels. factor gives some breathing space on top of
// the ideal height.
func maxheight(entries int64, factor float64) float64 {
	if entries < 5 {
		return (3 * (math.Log2(float64(entries)) + 1)) // 3x breathing space.
	}
	return factor * math.Log2(float64(entries))
}

// LLRB rule, from sedgewick's paper.
var errredafterred = errors.New("consecutive red spotted")

// LLRB rule, from sedgewick's paper.
var errrightlean = errors.New("right leaning red link")

// Validate walks the full tree and panics on the first violated
// invariant: sort order of keys, consecutive red links, right leaning
// red links, unbalanced black-link count, inconsistent subtree size
// and the height ceiling.
func (llrb *LLRB[K, V]) Validate() {
	llrb.validate(llrb.root)
}

func (llrb *LLRB[K, V]) validate(root *Llrbnode[K, V]) {
	h := lib.NewhistorgramInt64(1, 256, 1)

	_, n := validatetree(root, isred(root), 0 /*blacks*/, 1 /*depth*/, h)
	if n != llrb.n_count {
		fmsg := "validate(): n_count:%v != actual:%v"
		panic(fmt.Errorf(fmsg, llrb.n_count, n))
	}

	// `h_height`.max should not exceed the height ceiling.
	if h.Samples() > 8 {
		entries := llrb.Count()
		if float64(h.Max()) > maxheight(entries, llrb.htfactor) {
			fmsg := "validate(): max height %v exceeds log2(%v)"
			panic(fmt.Errorf(fmsg, float64(h.Max()), entries))
		}
	}
}

/*
following expectations on the tree should be met.
* if a node is red, its parent should be black.
* a red link never appears as a right child while the left is black.
* at each node, number of black-links on the left subtree should be
  equal to number of black-links on the right subtree.
* at each node, the stored subtree size should equal
  size(left) + size(right) + 1.
* make sure that the tree is in sort order.
* return number of blacks, and number of entries under nd.
*/
func validatetree[K cmp.Ordered, V any](
	nd *Llrbnode[K, V], fromred bool, blacks, depth int64,
	h *lib.HistogramInt64) (nblacks, n int64) {

	if nd == nil {
		return blacks, 0
	}

	h.Add(depth)
	if fromred && isred(nd) {
		panic(errredafterred)
	}
	if isred(nd.right) && isblack(nd.left) {
		panic(errrightlean)
	}
	if !isred(nd) {
		blacks++
	}

	lblacks, ln := validatetree(nd.left, isred(nd), blacks, depth+1, h)
	rblacks, rn := validatetree(nd.right, isred(nd), blacks, depth+1, h)

	if lblacks != rblacks {
		fmsg := "validate(): unbalancedblacks {%v,%v}"
		panic(fmt.Errorf(fmsg, lblacks, rblacks))
	}
	if nd.n != ln+rn+1 {
		fmsg := "validate(): subtree size %v != %v for key %v"
		panic(fmt.Errorf(fmsg, nd.n, ln+rn+1, nd.key))
	}

	if nd.left != nil && !nd.gtkey(nd.left.key) {
		fmsg := "validate(): sort order, left node %v is >= node %v"
		panic(fmt.Errorf(fmsg, nd.left.key, nd.key))
	}
	if nd.right != nil && !nd.ltkey(nd.right.key) {
		fmsg := "validate(): sort order, node %v is >= right node %v"
		panic(fmt.Errorf(fmsg, nd.key, nd.right.key))
	}

	return lblacks, ln + rn + 1
}
