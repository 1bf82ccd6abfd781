package keys

import "fmt"

// MaxPathDepth is the largest number of path components a derivation path
// may carry.
const MaxPathDepth = 10

// HardenedBit is the bit every path component must carry for Ed25519/SLIP-10
// derivation.
const HardenedBit = uint32(0x80000000)

// Path is an immutable, ordered sequence of 1..MaxPathDepth hardened BIP32
// path components. A Path is only ever constructed through ParsePath, which
// enforces the hardened-component invariant before returning one.
type Path struct {
	components [MaxPathDepth]uint32
	length     int
}

// Len reports the number of components in p.
func (p *Path) Len() int {
	return p.length
}

// Components returns the path's components in wire order. The returned
// slice aliases p's backing array and must not be retained past p's
// lifetime (p may be zeroized by its owner).
func (p *Path) Components() []uint32 {
	return p.components[:p.length]
}

// ParsePath reads the path wire form from data: one length byte n (1..10)
// followed by n big-endian uint32 components, each required to have its
// high bit set. It returns the parsed path and the number of bytes consumed
// from data. An empty, oversize, or under-length encoding, or any
// non-hardened component, is reported as an error and consumes nothing.
func ParsePath(data []byte) (Path, int, error) {
	var p Path

	if len(data) < 1 {
		return p, 0, fmt.Errorf("keys: parse path: empty data")
	}
	n := int(data[0])
	if n == 0 || n > MaxPathDepth {
		return p, 0, fmt.Errorf("keys: parse path: invalid component count %d", n)
	}
	required := 1 + n*4
	if len(data) < required {
		return p, 0, fmt.Errorf("keys: parse path: truncated (need %d, have %d)", required, len(data))
	}

	for i := 0; i < n; i++ {
		off := 1 + i*4
		c := uint32(data[off])<<24 | uint32(data[off+1])<<16 | uint32(data[off+2])<<8 | uint32(data[off+3])
		if c&HardenedBit == 0 {
			p.Zeroize()
			return Path{}, 0, fmt.Errorf("keys: parse path: component %d not hardened", i)
		}
		p.components[i] = c
	}
	p.length = n
	return p, required, nil
}

// Zeroize overwrites every component of p and resets its length. Callers
// must hold p by pointer (not a copy) for the overwrite to reach the
// instance whose secrecy matters — the session holds its path exactly this
// way.
func (p *Path) Zeroize() {
	for i := range p.components {
		p.components[i] = 0
	}
	p.length = 0
}
