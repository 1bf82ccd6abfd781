package address

import (
	"testing"

	"github.com/sumchain/ledger-core/hash"
)

func TestFromPubkeyMatchesBlake3Slice(t *testing.T) {
	var pub [32]byte
	for i := range pub {
		pub[i] = byte(i + 1)
	}

	var full [hash.Size]byte
	hash.Hash(pub[:], &full)

	got := FromPubkey(pub)
	var want [Size]byte
	copy(want[:], full[12:32])

	if got != want {
		t.Fatalf("FromPubkey() = %x, want %x", got, want)
	}
}

func TestFromPubkeyDeterministic(t *testing.T) {
	var pub [32]byte
	for i := range pub {
		pub[i] = 0xAB
	}
	a := FromPubkey(pub)
	b := FromPubkey(pub)
	if a != b {
		t.Fatalf("FromPubkey not deterministic: %x != %x", a, b)
	}
}

func TestFromPubkeyDiffersForDifferentKeys(t *testing.T) {
	var k1, k2 [32]byte
	k2[0] = 1
	if FromPubkey(k1) == FromPubkey(k2) {
		t.Fatalf("expected different addresses for different public keys")
	}
}
