// Package address derives SUM Chain addresses from Ed25519 public keys and
// renders them as Base58 strings.
package address

import (
	"github.com/sumchain/ledger-core/hash"
	"github.com/sumchain/ledger-core/zeroize"
)

// Size is the fixed width of an address in bytes.
const Size = 20

// FromPubkey derives the 20-byte address for a 32-byte compressed Ed25519
// public key: the BLAKE3 hash of pubkey, sliced to bytes [12:32]. No
// checksum, no version byte. The intermediate 32-byte hash is zeroized
// before return.
func FromPubkey(pubkey [32]byte) [Size]byte {
	var digest [hash.Size]byte
	hash.Hash(pubkey[:], &digest)
	defer zeroize.Array32(&digest)

	var out [Size]byte
	copy(out[:], digest[12:32])
	return out
}
