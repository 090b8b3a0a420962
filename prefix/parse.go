package prefix

import (
	"encoding/binary"
	"net/netip"
	"strconv"
	"strings"

	"github.com/hideo55/go-popcount"
	"github.com/pkg/errors"
)

// Parse parses an address or address/length, detecting the family from
// the address text. A bare address gets the full family width.
func Parse(s string) (Prefix, error) {
	return ParseFamily(Invalid, s)
}

// ParseFamily is like Parse but fails with ErrInvalidAddress unless the
// address belongs to fam. Invalid accepts either family.
//
// IPv4 lengths may also be written as a dotted netmask (10.0.0.0/255.0.0.0).
func ParseFamily(fam Family, s string) (Prefix, error) {
	addrText, lenText, hasLen := strings.Cut(s, "/")

	addr, err := netip.ParseAddr(addrText)
	if err != nil || addr.Zone() != "" {
		return Prefix{}, errors.Wrapf(ErrInvalidAddress, "%q", addrText)
	}

	var raw []byte
	if addr.Is4() {
		a4 := addr.As4()
		raw = a4[:]
	} else {
		a16 := addr.As16()
		raw = a16[:]
	}

	got := familyOf(raw)
	if fam != Invalid && got != fam {
		return Prefix{}, errors.Wrapf(ErrInvalidAddress, "%q is not %v", addrText, fam)
	}
	fam = got

	length := fam.Bits()
	if hasLen {
		if length, err = parseLength(fam, lenText); err != nil {
			return Prefix{}, err
		}
	}

	return New(raw, length)
}

// MustParse is like Parse but panics on error. Intended for tests and
// package level variables.
func MustParse(s string) Prefix {
	p, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return p
}

func familyOf(raw []byte) Family {
	if len(raw) == 4 {
		return IPv4
	}
	return IPv6
}

func parseLength(fam Family, s string) (int, error) {
	if fam == IPv4 && strings.Contains(s, ".") {
		return netmaskLength(s)
	}

	n, err := strconv.ParseUint(s, 10, 8)
	if err != nil || int(n) > fam.Bits() {
		return 0, errors.Wrapf(ErrInvalidLength, "%q for %v", s, fam)
	}
	return int(n), nil
}

// netmaskLength converts a contiguous dotted IPv4 mask to a bit count.
func netmaskLength(s string) (int, error) {
	m, err := netip.ParseAddr(s)
	if err != nil || !m.Is4() {
		return 0, errors.Wrapf(ErrInvalidLength, "netmask %q", s)
	}

	a4 := m.As4()
	mask := binary.BigEndian.Uint32(a4[:])
	ones := popcount.Count(uint64(mask))

	// only leading ones are allowed
	if mask != ^uint32(0)<<(32-ones) {
		return 0, errors.Wrapf(ErrInvalidLength, "non-contiguous netmask %q", s)
	}
	return int(ones), nil
}
