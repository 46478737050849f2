package llrb

import "github.com/bnclabs/gotree/api"

// Traversals materialize the full set of entries on every call, there
// is no lazy enumeration, mutating the tree while holding a returned
// slice is safe.

// PreOrder return entries in node, left-subtree, right-subtree order.
func (llrb *LLRB[K, V]) PreOrder() []api.Entry[K, V] {
	entries := make([]api.Entry[K, V], 0, llrb.Count())
	if llrb.root == nil {
		return entries
	}
	stack := []*Llrbnode[K, V]{llrb.root}
	for len(stack) > 0 {
		nd := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		entries = append(entries, nd.entry())
		if nd.right != nil {
			stack = append(stack, nd.right)
		}
		if nd.left != nil {
			stack = append(stack, nd.left)
		}
	}
	return entries
}

// InOrder return entries in sort order of keys, simulating the
// left-first recursive descent with an explicit stack.
func (llrb *LLRB[K, V]) InOrder() []api.Entry[K, V] {
	entries := make([]api.Entry[K, V], 0, llrb.Count())
	stack := make([]*Llrbnode[K, V], 0, 64)
	nd := llrb.root
	for nd != nil || len(stack) > 0 {
		for nd != nil {
			stack = append(stack, nd)
			nd = nd.left
		}
		nd = stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		entries = append(entries, nd.entry())
		nd = nd.right
	}
	return entries
}

// PostOrder return entries in left-subtree, right-subtree, node
// order, computed as the reverse of a node, right, left walk.
func (llrb *LLRB[K, V]) PostOrder() []api.Entry[K, V] {
	entries := make([]api.Entry[K, V], 0, llrb.Count())
	if llrb.root == nil {
		return entries
	}
	stack := []*Llrbnode[K, V]{llrb.root}
	for len(stack) > 0 {
		nd := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		entries = append(entries, nd.entry())
		if nd.left != nil {
			stack = append(stack, nd.left)
		}
		if nd.right != nil {
			stack = append(stack, nd.right)
		}
	}
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	return entries
}

// LevelOrder return entries level by level from the root, children
// enqueued left then right.
func (llrb *LLRB[K, V]) LevelOrder() []api.Entry[K, V] {
	entries := make([]api.Entry[K, V], 0, llrb.Count())
	if llrb.root == nil {
		return entries
	}
	queue := []*Llrbnode[K, V]{llrb.root}
	for len(queue) > 0 {
		nd := queue[0]
		queue = queue[1:]
		entries = append(entries, nd.entry())
		if nd.left != nil {
			queue = append(queue, nd.left)
		}
		if nd.right != nil {
			queue = append(queue, nd.right)
		}
	}
	return entries
}
