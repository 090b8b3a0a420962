// Package radix implements a path-compressed binary radix (Patricia) trie
// keyed by network prefixes, with exact and longest-prefix-match lookups.
//
// Every node holds a prefix.Prefix, an optional payload, two children
// indexed by the bit that follows the node's prefix, and a parent link.
// A node either carries a payload or is a branch point where two stored
// prefixes diverge; a node with no payload and less than two children
// never survives an operation.
//
// Example trie:
// ------------
//
// After inserting 10.10.10.0/24, 10.10.0.0/16 and 10.10.0.0/24:
//
//	[10.10.0.0/16 *] -- 0 -- [10.10.0.0/20] --+-- 0 -- [10.10.0.0/24 *]
//	                                          |
//	                                          `-- 1 -- [10.10.10.0/24 *]
//
// The /20 node is a branch point synthesized from the two /24s; nodes
// marked with * carry a payload.
//
// Traversal:
// ---------
//
// Node.Next walks all nodes in pre-order (0 branch first) using only the
// parent/child links, no stack needed. Node.NextValue skips branch points.
// Trie.Erase returns the successor of the removed node so a walk can
// delete as it goes:
//
//	for n := t.First(); n != nil; {
//		if n.HasValue() && drop(n) {
//			n = t.Erase(n)
//		} else {
//			n = n.Next()
//		}
//	}
//
// Handles returned by Insert, Find, Match and Erase are valid until the
// next mutation.
package radix
