package keys

import (
	"crypto/ed25519"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/binary"
	"fmt"

	"github.com/sumchain/ledger-core/zeroize"
)

// slip10Seed is the SLIP-0010 master-key HMAC key for the Ed25519 curve.
var slip10Seed = []byte("ed25519 seed")

// deriveSeed walks path from the device seed using SLIP-0010's Ed25519
// variant, in which every derivation step is hardened regardless of the
// path component's own bit (all components here already carry the hardened
// bit per Path's invariant). It returns the final 32-byte private seed and
// zeroizes every intermediate chain code and private seed it produces along
// the way, keeping only the final result alive in the caller's buffer.
//
// The hmac.New states themselves hold ipad/opad blocks derived from the
// chain code in stdlib-owned allocations this function cannot overwrite;
// only the buffers it owns are cleared.
func deriveSeed(seed []byte, path *Path) (out [32]byte, err error) {
	if path.Len() == 0 {
		return out, fmt.Errorf("keys: derive: empty path")
	}

	mac := hmac.New(sha512.New, slip10Seed)
	mac.Write(seed)
	i := mac.Sum(nil)

	var privKey [32]byte
	var chainCode [32]byte
	copy(privKey[:], i[:32])
	copy(chainCode[:], i[32:])
	zeroize.Bytes(i)

	defer func() {
		zeroize.Array32(&chainCode)
		zeroize.Array32(&privKey)
	}()

	for _, component := range path.Components() {
		var buf [1 + 32 + 4]byte
		buf[0] = 0x00
		copy(buf[1:33], privKey[:])
		binary.BigEndian.PutUint32(buf[33:], component)

		childMAC := hmac.New(sha512.New, chainCode[:])
		childMAC.Write(buf[:])
		child := childMAC.Sum(nil)
		zeroize.Bytes(buf[:])

		zeroize.Array32(&privKey)
		copy(privKey[:], child[:32])
		copy(chainCode[:], child[32:])
		zeroize.Bytes(child)
	}

	out = privKey
	return out, nil
}

// Default is the software SLIP-10 + Ed25519 key provider used whenever the
// ledger_hw build tag is absent. Its only state is the device seed it is
// built with, held in the struct rather than a global so that callers
// (tests, the host harness) can exercise deterministic fixtures.
type Default struct {
	Seed []byte
}

var _ Provider = Default{}

// DerivePublicKey implements Provider.
func (d Default) DerivePublicKey(path *Path) (pub [PublicKeySize]byte, err error) {
	seed, derr := deriveSeed(d.Seed, path)
	if derr != nil {
		return pub, derr
	}
	defer zeroize.Array32(&seed)

	priv := ed25519.NewKeyFromSeed(seed[:])
	defer zeroize.Bytes(priv)

	copy(pub[:], priv[32:])
	return pub, nil
}

// Sign implements Provider.
func (d Default) Sign(path *Path, digest [DigestSize]byte) (sig [SignatureSize]byte, err error) {
	seed, derr := deriveSeed(d.Seed, path)
	if derr != nil {
		return sig, derr
	}
	defer zeroize.Array32(&seed)

	priv := ed25519.NewKeyFromSeed(seed[:])
	defer zeroize.Bytes(priv)

	raw := ed25519.Sign(priv, digest[:])
	copy(sig[:], raw)
	return sig, nil
}
