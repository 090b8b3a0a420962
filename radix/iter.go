package radix

import (
	"iter"

	"github.com/aglyzov/go-lpm/prefix"
)

// All returns an iterator over all stored prefixes and payloads in
// pre-order: every prefix comes before the more specific ones it
// contains, and the 0 branch before the 1 branch.
//
// The trie must not be modified during the iteration.
func (t *Trie[V]) All() iter.Seq2[prefix.Prefix, V] {
	return func(yield func(prefix.Prefix, V) bool) {
		for n := t.First(); n != nil; n = n.NextValue() {
			if !yield(n.prefix, n.val) {
				return
			}
		}
	}
}

// Nodes returns an iterator over every node in pre-order, including
// branch points without a payload.
func (t *Trie[V]) Nodes() iter.Seq[*Node[V]] {
	return func(yield func(*Node[V]) bool) {
		for n := t.root; n != nil; n = n.Next() {
			if !yield(n) {
				return
			}
		}
	}
}

// Iter calls a handler for all stored prefixes contained in p.
// It returns whether all of them were iterated.
// The handler can continue the process by returning true or abort with false.
func (t *Trie[V]) Iter(p prefix.Prefix, handler func(prefix.Prefix, V) bool) bool {
	if !t.accepts(p) {
		return true
	}

	// descend to the top of the subtree covered by p
	top := t.root
	for top != nil && !p.Contains(top.prefix) {
		if !top.prefix.Contains(p) {
			// disjoint
			return true
		}
		top = top.child[p.BitAt(top.prefix.Len())]
	}
	if top == nil {
		return true
	}

	// pre-order leaves the subtree at the first node top doesn't contain
	for n := top; n != nil && top.prefix.Contains(n.prefix); n = n.Next() {
		if n.has && !handler(n.prefix, n.val) {
			return false
		}
	}
	return true
}

// Subnets returns an iterator over all stored prefixes contained in p,
// p itself included.
func (t *Trie[V]) Subnets(p prefix.Prefix) iter.Seq2[prefix.Prefix, V] {
	return func(yield func(prefix.Prefix, V) bool) {
		t.Iter(p, yield)
	}
}

// Supernets returns an iterator over all stored prefixes containing p,
// from the least to the most specific one. The last one is Match(p).
func (t *Trie[V]) Supernets(p prefix.Prefix) iter.Seq2[prefix.Prefix, V] {
	return func(yield func(prefix.Prefix, V) bool) {
		if !t.accepts(p) {
			return
		}
		for cur := t.root; cur != nil && cur.prefix.Contains(p); {
			if cur.has && !yield(cur.prefix, cur.val) {
				return
			}
			if cur.prefix.Len() == p.Len() {
				return
			}
			cur = cur.child[p.BitAt(cur.prefix.Len())]
		}
	}
}
