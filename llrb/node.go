package llrb

import "cmp"
import "fmt"
import "io"

import "github.com/bnclabs/gotree/api"

// Llrbnode defines a node in the LLRB tree. Every node exclusively
// owns its left and right subtree, there are no parent references,
// all fixups happen while unwinding the mutation recursion.
type Llrbnode[K cmp.Ordered, V any] struct {
	key   K
	value V
	n     int64 // number of nodes in the subtree rooted here
	red   bool
	left  *Llrbnode[K, V]
	right *Llrbnode[K, V]
}

// size of a missing link is zero.
func size[K cmp.Ordered, V any](nd *Llrbnode[K, V]) int64 {
	if nd == nil {
		return 0
	}
	return nd.n
}

// a missing link counts as black.
func isred[K cmp.Ordered, V any](nd *Llrbnode[K, V]) bool {
	if nd == nil {
		return false
	}
	return nd.red
}

func isblack[K cmp.Ordered, V any](nd *Llrbnode[K, V]) bool {
	return !isred(nd)
}

func (nd *Llrbnode[K, V]) setred() *Llrbnode[K, V] {
	nd.red = true
	return nd
}

func (nd *Llrbnode[K, V]) setblack() *Llrbnode[K, V] {
	nd.red = false
	return nd
}

func (nd *Llrbnode[K, V]) togglelink() *Llrbnode[K, V] {
	nd.red = !nd.red
	return nd
}

func (nd *Llrbnode[K, V]) updatesize() *Llrbnode[K, V] {
	nd.n = size(nd.left) + size(nd.right) + 1
	return nd
}

func (nd *Llrbnode[K, V]) ltkey(key K) bool {
	return nd.key < key
}

func (nd *Llrbnode[K, V]) gtkey(key K) bool {
	return nd.key > key
}

// minnode return the left-most node under nd.
func (nd *Llrbnode[K, V]) minnode() *Llrbnode[K, V] {
	for nd.left != nil {
		nd = nd.left
	}
	return nd
}

// maxnode return the right-most node under nd.
func (nd *Llrbnode[K, V]) maxnode() *Llrbnode[K, V] {
	for nd.right != nil {
		nd = nd.right
	}
	return nd
}

func (nd *Llrbnode[K, V]) entry() api.Entry[K, V] {
	return api.Entry[K, V]{Key: nd.key, Value: nd.value}
}

func (nd *Llrbnode[K, V]) String() string {
	color := "black"
	if nd.red {
		color = "red"
	}
	return fmt.Sprintf("{%v,%v,%v,%v}", nd.key, nd.value, nd.n, color)
}

// dotdump this node and its subtree as dot script lines.
func (nd *Llrbnode[K, V]) dotdump(buffer io.Writer) {
	fmt.Fprintf(
		buffer, "  \"%v\" [label=\"{%v|%v}\"];\n", nd.key, nd.key, nd.n,
	)
	for _, child := range []*Llrbnode[K, V]{nd.left, nd.right} {
		if child == nil {
			continue
		}
		attr := ""
		if child.red {
			attr = " [color=red]"
		}
		fmt.Fprintf(buffer, "  \"%v\" -> \"%v\"%v;\n", nd.key, child.key, attr)
		child.dotdump(buffer)
	}
}
