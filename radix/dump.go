package radix

import (
	"fmt"
	"io"
)

// DebugDump writes the structure of the trie to w, one node per line,
// indented by depth. Branch points print without a val.
func (t *Trie[V]) DebugDump(w io.Writer) {
	if t.root == nil {
		fmt.Fprintln(w, "T: <empty>")
		return
	}
	t.debugDump(w, t.root, "T:", "")
}

func (t *Trie[V]) debugDump(w io.Writer, n *Node[V], tag string, indent string) {
	if n.has {
		fmt.Fprintf(w, "%s%s %v val=%v\n", indent, tag, n.prefix, n.val)
	} else {
		fmt.Fprintf(w, "%s%s %v\n", indent, tag, n.prefix)
	}

	for bit, c := range n.child {
		if c != nil {
			t.debugDump(w, c, fmt.Sprintf("%d:", bit), indent+"  ")
		}
	}
}
