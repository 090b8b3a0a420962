package prefix

import (
	"fmt"
	"math/bits"
	"net/netip"

	"github.com/pkg/errors"
)

// Family selects the address width of a Prefix.
type Family uint8

const (
	Invalid Family = iota
	IPv4
	IPv6
)

// Bits returns the address width of the family.
func (f Family) Bits() int {
	switch f {
	case IPv4:
		return 32
	case IPv6:
		return 128
	}
	return 0
}

func (f Family) size() int {
	return f.Bits() / 8
}

func (f Family) String() string {
	switch f {
	case IPv4:
		return "IPv4"
	case IPv6:
		return "IPv6"
	}
	return "invalid"
}

// Prefix is a fixed-width address plus a count of significant bits.
//
// Address bits beyond the length are always zero, so two prefixes
// denoting the same block compare equal with ==.
type Prefix struct {
	addr [16]byte
	fam  Family
	len  uint8
}

// New returns a Prefix for a 4 or 16 byte address.
// Bits past length are masked off.
func New(addr []byte, length int) (Prefix, error) {
	var fam Family

	switch len(addr) {
	case 4:
		fam = IPv4
	case 16:
		fam = IPv6
	default:
		return Prefix{}, errors.Wrapf(ErrInvalidAddress, "%d byte address", len(addr))
	}
	if length < 0 || length > fam.Bits() {
		return Prefix{}, errors.Wrapf(ErrInvalidLength, "%d for %v", length, fam)
	}

	p := Prefix{fam: fam, len: uint8(length)}
	copy(p.addr[:], addr)
	p.mask()

	return p, nil
}

// Combine returns the longest common prefix of p1 and p2.
//
// p1 is expected to be no more specific than p2: the result is capped by
// the length of p2, not of p1.
func Combine(p1, p2 Prefix) Prefix {
	common := p1.CommonBits(p2)

	p := Prefix{addr: p1.addr, fam: p1.fam, len: p2.len}
	if int(p.len) > common {
		p.len = uint8(common)
	}
	p.mask()

	return p
}

// mask zeroes all address bits past the length.
func (p *Prefix) mask() {
	off := int(p.len) / 8

	if shift := p.len % 8; shift != 0 {
		p.addr[off] &= ^byte(0xFF >> shift)
		off++
	}
	for ; off < len(p.addr); off++ {
		p.addr[off] = 0
	}
}

// Family returns the address family.
func (p Prefix) Family() Family {
	return p.fam
}

// Len returns the number of significant bits.
func (p Prefix) Len() int {
	return int(p.len)
}

// Bits returns the address width.
func (p Prefix) Bits() int {
	return p.fam.Bits()
}

// Addr returns a copy of the address bytes (4 or 16 of them).
func (p Prefix) Addr() []byte {
	return append([]byte(nil), p.addr[:p.fam.size()]...)
}

// IsValid reports whether p was built by one of the constructors.
func (p Prefix) IsValid() bool {
	return p.fam != Invalid
}

// BitAt returns the bit at index, counting from the most significant bit.
// It panics if index is outside the address width.
func (p Prefix) BitAt(index int) byte {
	if index < 0 || index >= p.fam.Bits() {
		panic(fmt.Sprintf("prefix: bit index %d out of range for %v", index, p.fam))
	}
	return (p.addr[index/8] >> (7 - index%8)) & 1
}

// Contains reports whether other is inside the block denoted by p.
// It is false whenever p is more specific than other.
func (p Prefix) Contains(other Prefix) bool {
	if p.fam != other.fam || p.len > other.len {
		return false
	}

	off := int(p.len) / 8

	if shift := p.len % 8; shift != 0 {
		if (p.addr[off]^other.addr[off])&^byte(0xFF>>shift) != 0 {
			return false
		}
	}
	for i := 0; i < off; i++ {
		if p.addr[i] != other.addr[i] {
			return false
		}
	}
	return true
}

// CommonBits returns the number of leading address bits p and other agree
// on, ignoring both lengths.
func (p Prefix) CommonBits(other Prefix) int {
	size := p.fam.size()
	if s := other.fam.size(); s < size {
		size = s
	}

	for i := 0; i < size; i++ {
		if x := p.addr[i] ^ other.addr[i]; x != 0 {
			return i*8 + bits.LeadingZeros8(x)
		}
	}
	return size * 8
}

// Compare orders prefixes by family, then address, then length.
func (p Prefix) Compare(other Prefix) int {
	switch {
	case p.fam < other.fam:
		return -1
	case p.fam > other.fam:
		return 1
	}
	for i := range p.addr {
		switch {
		case p.addr[i] < other.addr[i]:
			return -1
		case p.addr[i] > other.addr[i]:
			return 1
		}
	}
	switch {
	case p.len < other.len:
		return -1
	case p.len > other.len:
		return 1
	}
	return 0
}

// FromNetip converts a netip.Prefix, masking it on the way.
func FromNetip(np netip.Prefix) (Prefix, error) {
	if !np.IsValid() {
		return Prefix{}, errors.Wrapf(ErrInvalidAddress, "%v", np)
	}

	addr := np.Addr()
	if addr.Is4() {
		a4 := addr.As4()
		return New(a4[:], np.Bits())
	}
	a16 := addr.As16()
	return New(a16[:], np.Bits())
}

// Netip returns p as a netip.Prefix.
func (p Prefix) Netip() netip.Prefix {
	var addr netip.Addr

	switch p.fam {
	case IPv4:
		addr = netip.AddrFrom4([4]byte(p.addr[:4]))
	case IPv6:
		addr = netip.AddrFrom16(p.addr)
	default:
		return netip.Prefix{}
	}
	return netip.PrefixFrom(addr, int(p.len))
}

// String returns the canonical address/length text.
func (p Prefix) String() string {
	if !p.IsValid() {
		return "invalid Prefix"
	}
	return p.Netip().String()
}
