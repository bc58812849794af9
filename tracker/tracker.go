// Package tracker implements the dirty tracking tree that lazy containers use
// to decide whether a decoded byte region still matches their logical content.
//
// A container creates one Node as a child of the Node it was handed at
// construction and owns it exclusively. Any mutation marks that Node dirty,
// which propagates to every ancestor. Flags never clear: when the enclosing
// structure is re-encoded into a fresh buffer, the whole Tree is discarded and
// a new one built.
//
// A Tree and every Node in it must be confined to a single goroutine.
package tracker

// Tree is an arena of tracker nodes. Nodes are addressed by index into the
// arena and hold their parent's index, which avoids pointer cycles between
// parents and children.
type Tree struct {
	nodes []node
}

type node struct {
	parent int32
	dirty  bool
}

// New returns a Tree containing only the root node.
func New() *Tree {
	return &Tree{nodes: []node{{parent: -1}}}
}

// Root returns the root Node of the tree.
func (t *Tree) Root() Node {
	return Node{tree: t}
}

// Node is a handle to a single node in a Tree. The zero Node is detached: it
// belongs to no Tree, MarkDirty is a no-op and IsDirty always reports false.
type Node struct {
	tree  *Tree
	index int32
}

// Valid reports whether n is attached to a Tree.
func (n Node) Valid() bool {
	return n.tree != nil
}

// NewChild allocates a node with n as its parent and returns it. The child is
// owned by the caller. A child of a detached Node is itself detached.
func (n Node) NewChild() Node {
	if n.tree == nil {
		return Node{}
	}
	n.tree.nodes = append(n.tree.nodes, node{parent: n.index})
	return Node{tree: n.tree, index: int32(len(n.tree.nodes) - 1)}
}

// MarkDirty sets the dirty flag on n and every ancestor up to the root. The
// walk stops at the first node that is already dirty, since everything above
// it was flagged when that node was. Idempotent.
func (n Node) MarkDirty() {
	if n.tree == nil {
		return
	}
	for i := n.index; i >= 0; {
		nd := &n.tree.nodes[i]
		if nd.dirty {
			return
		}
		nd.dirty = true
		i = nd.parent
	}
}

// IsDirty reports whether n has been marked dirty, either directly or by a
// descendant.
func (n Node) IsDirty() bool {
	if n.tree == nil {
		return false
	}
	return n.tree.nodes[n.index].dirty
}
