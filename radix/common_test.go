package radix

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aglyzov/go-lpm/prefix"
)

var pfx = prefix.MustParse

func pfxs(ss ...string) []prefix.Prefix {
	out := make([]prefix.Prefix, 0, len(ss))
	for _, s := range ss {
		out = append(out, pfx(s))
	}
	return out
}

// structure returns the prefixes of all nodes in pre-order.
func structure[V any](tr *Trie[V]) (out []string) {
	for n := range tr.Nodes() {
		out = append(out, n.Prefix().String())
	}
	return
}

// stored returns the prefixes with a payload in pre-order.
func stored[V any](tr *Trie[V]) (out []string) {
	for p := range tr.All() {
		out = append(out, p.String())
	}
	return
}

// checkInvariants verifies links, containment, slots and counters of
// every node reachable from the root.
func checkInvariants[V any](t *testing.T, tr *Trie[V]) {
	t.Helper()

	var size, nodes int

	for n := range tr.Nodes() {
		nodes++
		if n.has {
			size++
		} else {
			require.Equal(t, 2, n.children(), "useless branch %v", n)
		}

		if n.parent == nil {
			require.Same(t, tr.root, n, "orphan %v", n)
		} else {
			require.Same(t, n, n.parent.child[n.slot()], "bad parent link %v", n)
		}

		for bit, c := range n.child {
			if c == nil {
				continue
			}
			require.Same(t, n, c.parent, "bad child link %v -> %v", n, c)
			require.Less(t, n.prefix.Len(), c.prefix.Len(), "%v -> %v", n, c)
			require.True(t, n.prefix.Contains(c.prefix), "%v -> %v", n, c)
			require.Equal(t, byte(bit), c.prefix.BitAt(n.prefix.Len()), "%v -> %v", n, c)
		}
	}

	require.Equal(t, size, tr.Len(), "size")
	require.Equal(t, nodes, tr.NodeCount(), "node count")
}

// goldTrie is a slow reference: a flat list of stored prefixes.
type goldTrie[V any] []Item[V]

func (g *goldTrie[V]) insert(p prefix.Prefix, val V) {
	for i := range *g {
		if (*g)[i].Prefix == p {
			(*g)[i].Val = val
			return
		}
	}
	*g = append(*g, Item[V]{p, val})
}

func (g *goldTrie[V]) delete(p prefix.Prefix) bool {
	for i := range *g {
		if (*g)[i].Prefix == p {
			*g = append((*g)[:i], (*g)[i+1:]...)
			return true
		}
	}
	return false
}

func (g goldTrie[V]) get(p prefix.Prefix) (val V, ok bool) {
	for _, item := range g {
		if item.Prefix == p {
			return item.Val, true
		}
	}
	return
}

func (g goldTrie[V]) match(p prefix.Prefix) (lpm prefix.Prefix, val V, ok bool) {
	best := -1
	for _, item := range g {
		if item.Prefix.Contains(p) && item.Prefix.Len() > best {
			lpm, val, ok = item.Prefix, item.Val, true
			best = item.Prefix.Len()
		}
	}
	return
}
