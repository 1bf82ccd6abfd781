package txparser

import "github.com/holiman/uint256"

// Fee128 is the exact 128-bit product of two uint64 operands (gas_price *
// gas_limit), split into low/high 64-bit words for display. Overflow is set
// iff the high word is non-zero. The halves are preserved for display
// regardless; overflow is a display and policy concern, not an arithmetic
// error.
type Fee128 struct {
	Low      uint64
	High     uint64
	Overflow bool
}

// ComputeFee multiplies a and b with full 128-bit precision.
func ComputeFee(a, b uint64) Fee128 {
	x, y := uint256.NewInt(a), uint256.NewInt(b)
	product := new(uint256.Int).Mul(x, y)

	// uint256.Int is four little-endian uint64 words; words 2 and 3 are
	// provably zero for a 64x64 multiply.
	return Fee128{
		Low:      product[0],
		High:     product[1],
		Overflow: product[1] != 0,
	}
}

// Decimal renders the fee as a decimal string, or the literal "Overflow"
// when the overflow flag is set.
func (f Fee128) Decimal() string {
	if f.Overflow {
		return "Overflow"
	}
	if f.High == 0 {
		return uint256.NewInt(f.Low).Dec()
	}
	full := new(uint256.Int).Lsh(uint256.NewInt(f.High), 64)
	full.Or(full, uint256.NewInt(f.Low))
	return full.Dec()
}
