// Package table provides a dual-stack route table on net/netip types,
// backed by one radix trie per address family.
package table

import (
	"fmt"
	"io"
	"iter"
	"net/netip"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pkg/errors"

	"github.com/aglyzov/go-lpm/prefix"
	"github.com/aglyzov/go-lpm/radix"
)

// Option configures a Table.
type Option func(*options)

type options struct {
	cacheSize int
}

// WithCache enables an LRU cache of size entries for address lookups.
// The cache is purged on every mutation.
func WithCache(size int) Option {
	return func(o *options) {
		o.cacheSize = size
	}
}

type result[V any] struct {
	lpm netip.Prefix
	val V
	ok  bool
}

// Table maps IPv4 and IPv6 prefixes to values. Not safe for concurrent use.
type Table[V any] struct {
	v4, v6 *radix.Trie[V]
	cache  *lru.Cache[netip.Addr, result[V]]
}

// New returns an empty table.
func New[V any](opts ...Option) (*Table[V], error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	t := &Table[V]{
		v4: radix.New[V](prefix.IPv4),
		v6: radix.New[V](prefix.IPv6),
	}

	if o.cacheSize != 0 {
		cache, err := lru.New[netip.Addr, result[V]](o.cacheSize)
		if err != nil {
			return nil, errors.Wrapf(err, "cache size %d", o.cacheSize)
		}
		t.cache = cache
	}
	return t, nil
}

func (t *Table[V]) trie(p prefix.Prefix) *radix.Trie[V] {
	if p.Family() == prefix.IPv4 {
		return t.v4
	}
	return t.v6
}

func (t *Table[V]) purge() {
	if t.cache != nil {
		t.cache.Purge()
	}
}

// Insert adds pfx with val, replacing a previous value. The prefix is
// masked first.
func (t *Table[V]) Insert(pfx netip.Prefix, val V) error {
	p, err := prefix.FromNetip(pfx)
	if err != nil {
		return err
	}
	t.trie(p).Insert(p, val)
	t.purge()

	return nil
}

// Update is Insert with a callback receiving the previous value.
func (t *Table[V]) Update(pfx netip.Prefix, cb func(old V, ok bool) V) (V, error) {
	p, err := prefix.FromNetip(pfx)
	if err != nil {
		var zero V
		return zero, err
	}

	var val V
	t.trie(p).Replace(p, func(old V, ok bool) V {
		val = cb(old, ok)
		return val
	})
	t.purge()

	return val, nil
}

// Delete removes pfx and returns its value.
func (t *Table[V]) Delete(pfx netip.Prefix) (val V, ok bool) {
	p, err := prefix.FromNetip(pfx)
	if err != nil {
		return
	}
	if val, ok = t.trie(p).Delete(p); ok {
		t.purge()
	}
	return
}

// Get returns the value stored for exactly pfx.
func (t *Table[V]) Get(pfx netip.Prefix) (val V, ok bool) {
	p, err := prefix.FromNetip(pfx)
	if err != nil {
		return
	}
	return t.trie(p).Get(p)
}

// Lookup returns the value of the longest prefix containing addr.
func (t *Table[V]) Lookup(addr netip.Addr) (val V, ok bool) {
	_, val, ok = t.LookupAddr(addr)
	return
}

// LookupAddr is Lookup also returning the matching prefix.
func (t *Table[V]) LookupAddr(addr netip.Addr) (lpm netip.Prefix, val V, ok bool) {
	if !addr.IsValid() {
		return
	}
	addr = addr.WithZone("")

	if t.cache != nil {
		if res, hit := t.cache.Get(addr); hit {
			return res.lpm, res.val, res.ok
		}
	}

	p, err := prefix.FromNetip(netip.PrefixFrom(addr, addr.BitLen()))
	if err != nil {
		return
	}
	lpm, val, ok = t.lookup(p)

	if t.cache != nil {
		t.cache.Add(addr, result[V]{lpm, val, ok})
	}
	return
}

// LookupPrefix returns the value of the longest prefix containing pfx.
func (t *Table[V]) LookupPrefix(pfx netip.Prefix) (val V, ok bool) {
	_, val, ok = t.LookupPrefixLPM(pfx)
	return
}

// LookupPrefixLPM is LookupPrefix also returning the matching prefix.
// Host prefixes go through the address cache.
func (t *Table[V]) LookupPrefixLPM(pfx netip.Prefix) (lpm netip.Prefix, val V, ok bool) {
	p, err := prefix.FromNetip(pfx)
	if err != nil {
		return
	}
	if p.Len() == p.Bits() {
		return t.LookupAddr(pfx.Addr())
	}
	return t.lookup(p)
}

func (t *Table[V]) lookup(p prefix.Prefix) (lpm netip.Prefix, val V, ok bool) {
	m, val, ok := t.trie(p).Lookup(p)
	if !ok {
		return
	}
	return m.Netip(), val, true
}

// Subnets returns an iterator over all prefixes contained in pfx.
func (t *Table[V]) Subnets(pfx netip.Prefix) iter.Seq2[netip.Prefix, V] {
	return func(yield func(netip.Prefix, V) bool) {
		p, err := prefix.FromNetip(pfx)
		if err != nil {
			return
		}
		t.trie(p).Iter(p, func(q prefix.Prefix, val V) bool {
			return yield(q.Netip(), val)
		})
	}
}

// Supernets returns an iterator over all prefixes containing pfx, least
// specific first.
func (t *Table[V]) Supernets(pfx netip.Prefix) iter.Seq2[netip.Prefix, V] {
	return func(yield func(netip.Prefix, V) bool) {
		p, err := prefix.FromNetip(pfx)
		if err != nil {
			return
		}
		for q, val := range t.trie(p).Supernets(p) {
			if !yield(q.Netip(), val) {
				return
			}
		}
	}
}

// All returns an iterator over all prefixes, IPv4 first, each family in
// trie pre-order.
func (t *Table[V]) All() iter.Seq2[netip.Prefix, V] {
	return func(yield func(netip.Prefix, V) bool) {
		for _, tr := range []*radix.Trie[V]{t.v4, t.v6} {
			for p, val := range tr.All() {
				if !yield(p.Netip(), val) {
					return
				}
			}
		}
	}
}

// Len returns the number of prefixes of both families.
func (t *Table[V]) Len() int {
	return t.v4.Len() + t.v6.Len()
}

// Len4 returns the number of IPv4 prefixes.
func (t *Table[V]) Len4() int {
	return t.v4.Len()
}

// Len6 returns the number of IPv6 prefixes.
func (t *Table[V]) Len6() int {
	return t.v6.Len()
}

// DebugDump writes the structure of both tries to w.
func (t *Table[V]) DebugDump(w io.Writer) {
	fmt.Fprintln(w, "### IPv4:")
	t.v4.DebugDump(w)
	fmt.Fprintln(w, "### IPv6:")
	t.v6.DebugDump(w)
}
