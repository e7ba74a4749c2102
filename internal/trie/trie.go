// Package trie implements a generic prefix index: insert values keyed by a
// sequence of symbols, then look up every value stored at any prefix of a
// probe sequence in a single walk.
package trie

// Tree is a prefix tree over string keys. Create one with New; the zero
// value has no root node and is not usable.
type Tree[V any] struct {
	root *node[V]
}

type node[V any] struct {
	children map[byte]*node[V]
	own      []V // values inserted at exactly this node
	bucket   []V // own values plus every ancestor's own values, set by Compile
}

// New returns an empty Tree.
func New[V any]() *Tree[V] {
	return &Tree[V]{root: &node[V]{children: map[byte]*node[V]{}}}
}

// Insert adds value to the bucket at the exact node for seq, creating
// intermediate nodes as needed.
func (t *Tree[V]) Insert(seq string, value V) {
	n := t.root
	for i := 0; i < len(seq); i++ {
		c := seq[i]
		child, ok := n.children[c]
		if !ok {
			child = &node[V]{children: map[byte]*node[V]{}}
			n.children[c] = child
		}
		n = child
	}
	n.own = append(n.own, value)
}

// Compile finalizes the tree by propagating each node's accumulated bucket
// down to its children, so a single Lookup returns every value stored at the
// probe sequence or any of its prefixes, in insertion order for equal-depth
// ties (shallower, i.e. shorter-prefix, values come first).
func (t *Tree[V]) Compile() {
	t.root.bucket = append([]V(nil), t.root.own...)
	for _, child := range t.root.children {
		compileNode(child, t.root.bucket)
	}
}

func compileNode[V any](n *node[V], inherited []V) {
	n.bucket = make([]V, 0, len(inherited)+len(n.own))
	n.bucket = append(n.bucket, inherited...)
	n.bucket = append(n.bucket, n.own...)
	for _, child := range n.children {
		compileNode(child, n.bucket)
	}
}

// Lookup walks seq byte by byte until a node is missing, then returns the
// accumulated bucket of the deepest node reached (nil if the tree hasn't
// been Compile()-d; empty, nil or zero-length, if seq has no prefix stored
// at all).
func (t *Tree[V]) Lookup(seq string) []V {
	n := t.root
	best := n.bucket
	for i := 0; i < len(seq); i++ {
		child, ok := n.children[seq[i]]
		if !ok {
			break
		}
		n = child
		best = n.bucket
	}
	return best
}
