// Package prefix implements IPv4/IPv6 network prefixes as fixed-width
// bit strings with a significant length.
//
// A Prefix offers the bit level primitives a binary radix trie is built
// on:
//
//   - BitAt     - the bit at an absolute position, MSB first;
//   - Contains  - structural containment (p is no more specific than q
//     and both agree on the first p.Len() bits);
//   - Combine   - the longest common prefix of two prefixes, used to
//     synthesize branch points.
//
// Every constructor masks the address to the prefix length, so
// 10.1.2.3/8 and 10.0.0.0/8 are the same value.
//
// Example:
//
//	p := prefix.MustParse("10.10.0.0/16")
//	q := prefix.MustParse("10.10.10.0/24")
//
//	p.Contains(q)                 // true
//	prefix.Combine(q, p).String() // "10.10.0.0/16"
package prefix
