package radix

import (
	"github.com/aglyzov/go-lpm/prefix"
)

// Item is a stored prefix with its payload.
type Item[V any] struct {
	Prefix prefix.Prefix
	Val    V
}

// Trie is a path-compressed binary radix trie keyed by prefixes of a
// single family.
//
// The zero value is an empty trie that adopts the family of the first
// inserted prefix. A Trie is not safe for concurrent use.
type Trie[V any] struct {
	root  *Node[V]
	fam   prefix.Family
	size  int // nodes with a payload
	nodes int
}

// New returns an empty trie for fam, filled with items.
func New[V any](fam prefix.Family, items ...Item[V]) *Trie[V] {
	t := &Trie[V]{fam: fam}
	for _, item := range items {
		t.Insert(item.Prefix, item.Val)
	}
	return t
}

// Family returns the address family of the trie.
func (t *Trie[V]) Family() prefix.Family {
	return t.fam
}

// Len returns the number of stored prefixes.
func (t *Trie[V]) Len() int {
	return t.size
}

// NodeCount returns the number of nodes, branch points included.
func (t *Trie[V]) NodeCount() int {
	return t.nodes
}

func (t *Trie[V]) Empty() bool {
	return t.root == nil
}

// Root returns the top node or nil.
func (t *Trie[V]) Root() *Node[V] {
	return t.root
}

// First returns the first node with a payload in pre-order, or nil.
func (t *Trie[V]) First() *Node[V] {
	if t.root == nil || t.root.has {
		return t.root
	}
	return t.root.NextValue()
}

// accepts reports whether p can live in this trie
func (t *Trie[V]) accepts(p prefix.Prefix) bool {
	return p.IsValid() && (t.fam == prefix.Invalid || t.fam == p.Family())
}

// Insert stores val for p, overwriting any previous payload, and returns
// the node holding it. It returns nil if p belongs to another family.
func (t *Trie[V]) Insert(p prefix.Prefix, val V) *Node[V] {
	n := t.node(p)
	if n == nil {
		return nil
	}
	if !n.has {
		t.size++
	}
	n.val, n.has = val, true

	return n
}

// Replace applies a func to the previous payload of p (if any) and stores
// the result. Returns the previous payload.
func (t *Trie[V]) Replace(p prefix.Prefix, replace func(old V, ok bool) V) (prev V, ok bool) {
	n := t.node(p)
	if n == nil {
		return
	}
	prev, ok = n.val, n.has
	if !ok {
		t.size++
	}
	n.val, n.has = replace(prev, ok), true

	return
}

// node returns the node of exactly p, creating it and a branch point
// when needed. Only the payload is left to the caller.
func (t *Trie[V]) node(p prefix.Prefix) *Node[V] {
	if !t.accepts(p) {
		return nil
	}
	t.fam = p.Family()

	// walk down while the nodes contain p
	var matched *Node[V]
	cur := t.root

	for cur != nil && cur.prefix.Contains(p) {
		if cur.prefix.Len() == p.Len() {
			// exact node exists
			return cur
		}
		matched = cur
		cur = cur.child[p.BitAt(cur.prefix.Len())]
	}

	if cur == nil {
		// fell off the trie - a new leaf
		leaf := t.newNode(p)
		t.attach(matched, leaf)
		return leaf
	}

	// cur diverges from p - join both under their common prefix
	branch := t.newNode(prefix.Combine(cur.prefix, p))
	t.attach(matched, branch)
	branch.setChild(cur)

	if branch.prefix.Len() == p.Len() {
		return branch
	}

	leaf := t.newNode(p)
	branch.setChild(leaf)

	return leaf
}

func (t *Trie[V]) newNode(p prefix.Prefix) *Node[V] {
	t.nodes++
	return &Node[V]{prefix: p}
}

// attach hangs n under parent, or makes it the root for a nil parent.
func (t *Trie[V]) attach(parent, n *Node[V]) {
	if parent == nil {
		t.root = n
		n.parent = nil
		return
	}
	parent.setChild(n)
}

// Find returns the node of exactly p if it carries a payload, else nil.
func (t *Trie[V]) Find(p prefix.Prefix) *Node[V] {
	if !t.accepts(p) {
		return nil
	}

	cur := t.root
	for cur != nil && cur.prefix.Contains(p) {
		if cur.prefix.Len() == p.Len() {
			if cur.has {
				return cur
			}
			return nil
		}
		cur = cur.child[p.BitAt(cur.prefix.Len())]
	}
	return nil
}

// Get returns the payload stored for exactly p.
func (t *Trie[V]) Get(p prefix.Prefix) (val V, ok bool) {
	if n := t.Find(p); n != nil {
		return n.val, true
	}
	return
}

// Match returns the most specific node with a payload whose prefix
// contains p, or nil.
func (t *Trie[V]) Match(p prefix.Prefix) *Node[V] {
	if !t.accepts(p) {
		return nil
	}

	var best *Node[V]
	cur := t.root

	for cur != nil && cur.prefix.Contains(p) {
		if cur.has {
			best = cur
		}
		if cur.prefix.Len() == p.Len() {
			break
		}
		cur = cur.child[p.BitAt(cur.prefix.Len())]
	}
	return best
}

// Lookup is Match returning the matched prefix and its payload.
func (t *Trie[V]) Lookup(p prefix.Prefix) (lpm prefix.Prefix, val V, ok bool) {
	if n := t.Match(p); n != nil {
		return n.prefix, n.val, true
	}
	return
}

// Delete removes the payload of exactly p and returns it.
func (t *Trie[V]) Delete(p prefix.Prefix) (val V, ok bool) {
	n := t.Find(p)
	if n == nil {
		return
	}
	val = n.val
	t.Erase(n)

	return val, true
}

// Erase removes the payload of n and returns the node that followed n in
// pre-order before the removal, so a walk can go on across an Erase.
//
// A node with two children stays in place as a branch point. Otherwise
// it is spliced out together with every ancestor left without a payload
// and with less than two children.
func (t *Trie[V]) Erase(n *Node[V]) *Node[V] {
	if n == nil || (n.parent == nil && n != t.root) {
		// nothing or already spliced out
		return nil
	}
	next := n.Next()

	if n.has {
		t.size--
	}
	n.clear()

	// walk up instead of recursing, trie height may be large
	for n != nil && !n.has && n.children() < 2 {
		parent := n.parent
		t.splice(n)
		n = parent
	}
	return next
}

// splice replaces n by its only child (or nothing) in n's parent.
func (t *Trie[V]) splice(n *Node[V]) {
	c := n.child[0]
	if c == nil {
		c = n.child[1]
	}

	if parent := n.parent; parent == nil {
		t.root = c
	} else {
		parent.child[n.slot()] = c
	}
	if c != nil {
		c.parent = n.parent
	}

	n.parent, n.child = nil, [2]*Node[V]{}
	t.nodes--
}

// Merge inserts all payloads of other into t. Returns t.
func (t *Trie[V]) Merge(other *Trie[V]) *Trie[V] {
	if other != nil {
		for n := other.First(); n != nil; n = n.NextValue() {
			t.Insert(n.prefix, n.val)
		}
	}
	return t
}

// Keys returns all stored prefixes in pre-order.
func (t *Trie[V]) Keys() []prefix.Prefix {
	keys := make([]prefix.Prefix, 0, t.size)
	for n := t.First(); n != nil; n = n.NextValue() {
		keys = append(keys, n.prefix)
	}
	return keys
}

// Items returns all stored prefixes with their payloads in pre-order.
func (t *Trie[V]) Items() []Item[V] {
	items := make([]Item[V], 0, t.size)
	for n := t.First(); n != nil; n = n.NextValue() {
		items = append(items, Item[V]{n.prefix, n.val})
	}
	return items
}
