package radix

import (
	"fmt"

	"github.com/aglyzov/go-lpm/prefix"
)

// Node is a trie vertex: either a stored prefix or a branch point where
// two stored prefixes diverge.
//
// Nodes are owned by their Trie. A *Node stays valid until the next
// mutating call on that Trie.
type Node[V any] struct {
	child [2]*Node[V]

	// parent is only followed upward, ownership runs through child alone
	parent *Node[V]
	prefix prefix.Prefix
	val    V
	has    bool // false for a branch point
}

func (n *Node[V]) String() string {
	if n == nil {
		return "Node(nil)"
	}
	if n.has {
		return fmt.Sprintf("<Node %v val=%v>", n.prefix, n.val)
	}
	return fmt.Sprintf("<Node %v branch>", n.prefix)
}

// Prefix returns the prefix of the node.
func (n *Node[V]) Prefix() prefix.Prefix {
	return n.prefix
}

// Value returns the payload and whether there is one.
func (n *Node[V]) Value() (val V, ok bool) {
	return n.val, n.has
}

// HasValue reports whether n carries a payload rather than being a
// branch point.
func (n *Node[V]) HasValue() bool {
	return n.has
}

// Child returns the child at slot bit (0 or 1), or nil.
func (n *Node[V]) Child(bit byte) *Node[V] {
	return n.child[bit&1]
}

// Parent returns the parent node, nil for the root.
func (n *Node[V]) Parent() *Node[V] {
	return n.parent
}

// Next returns the pre-order successor of n among all nodes, branch
// points included, or nil when n is the last one.
func (n *Node[V]) Next() *Node[V] {
	if n.child[0] != nil {
		return n.child[0]
	}
	if n.child[1] != nil {
		return n.child[1]
	}

	// climb until we come up from a 0 slot with a sibling at 1
	for cur := n; cur.parent != nil; cur = cur.parent {
		if p := cur.parent; p.child[0] == cur && p.child[1] != nil {
			return p.child[1]
		}
	}
	return nil
}

// NextValue is like Next but skips nodes without a payload.
func (n *Node[V]) NextValue() *Node[V] {
	next := n.Next()
	for next != nil && !next.has {
		next = next.Next()
	}
	return next
}

// setChild attaches c under n at the bit c has at n's length.
func (n *Node[V]) setChild(c *Node[V]) {
	n.child[c.prefix.BitAt(n.prefix.Len())] = c
	c.parent = n
}

// slot returns the index of n in its parent.
func (n *Node[V]) slot() byte {
	if n.parent != nil && n.parent.child[1] == n {
		return 1
	}
	return 0
}

func (n *Node[V]) children() int {
	num := 0
	for _, c := range n.child {
		if c != nil {
			num++
		}
	}
	return num
}

// clear drops the payload, releasing whatever it references
func (n *Node[V]) clear() {
	var zero V
	n.val = zero
	n.has = false
}
