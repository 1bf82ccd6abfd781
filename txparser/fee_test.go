package txparser

import (
	"math/bits"
	"testing"
)

func TestComputeFeeEdgeCases(t *testing.T) {
	max := ^uint64(0)
	cases := []struct {
		a, b uint64
	}{
		{0, 0},
		{0, max},
		{max, 0},
		{1, 1},
		{1, max},
		{max, 1},
		{max, max},
		{1 << 32, 1 << 32},
		{(1 << 32) - 1, (1 << 32) + 1},
		{1000, 21000},
	}

	for _, tc := range cases {
		got := ComputeFee(tc.a, tc.b)
		hi, lo := bits.Mul64(tc.a, tc.b)
		if got.Low != lo || got.High != hi {
			t.Fatalf("ComputeFee(%d, %d) = (%d, %d), want (%d, %d)", tc.a, tc.b, got.High, got.Low, hi, lo)
		}
		if got.Overflow != (hi != 0) {
			t.Fatalf("ComputeFee(%d, %d) overflow = %v, want %v", tc.a, tc.b, got.Overflow, hi != 0)
		}
	}
}

func TestComputeFeeRandomizedMatchesExactProduct(t *testing.T) {
	// Deterministic xorshift so failures reproduce without a seed flag.
	s := uint64(0x9E3779B97F4A7C15)
	next := func() uint64 {
		s ^= s << 13
		s ^= s >> 7
		s ^= s << 17
		return s
	}

	for i := 0; i < 10000; i++ {
		a, b := next(), next()
		// Mix in small operands so the no-overflow half of the space is hit.
		if i%3 == 0 {
			a >>= 33
		}
		if i%5 == 0 {
			b >>= 33
		}

		got := ComputeFee(a, b)
		hi, lo := bits.Mul64(a, b)
		if got.Low != lo || got.High != hi || got.Overflow != (hi != 0) {
			t.Fatalf("ComputeFee(%d, %d) = %+v, want (high=%d, low=%d, overflow=%v)", a, b, got, hi, lo, hi != 0)
		}
	}
}

func TestFeeDecimalLowOnly(t *testing.T) {
	f := Fee128{Low: 21_000_000}
	if got := f.Decimal(); got != "21000000" {
		t.Fatalf("Decimal() = %q, want %q", got, "21000000")
	}
}

func TestFeeDecimalHighWord(t *testing.T) {
	// 1<<64 == 18446744073709551616.
	f := Fee128{Low: 0, High: 1}
	if got := f.Decimal(); got != "18446744073709551616" {
		t.Fatalf("Decimal() = %q, want %q", got, "18446744073709551616")
	}
}

func TestFeeDecimalOverflowLiteral(t *testing.T) {
	f := Fee128{Low: 5, High: 5, Overflow: true}
	if got := f.Decimal(); got != "Overflow" {
		t.Fatalf("Decimal() = %q, want %q", got, "Overflow")
	}
}
