// Package keys implements the key-derivation/signing boundary: deriving an
// Ed25519 keypair from a hardened BIP32/SLIP-10 path over the device seed,
// and signing a 32-byte digest. Private key material exists only inside the
// scoped calls below and is zeroized on every exit path.
package keys

// PublicKeySize is the width of a compressed Ed25519 public key.
const PublicKeySize = 32

// SignatureSize is the width of an Ed25519 signature.
const SignatureSize = 64

// DigestSize is the width of the message digest Sign operates over.
const DigestSize = 32

// Provider is the narrow capability boundary the session and dispatcher use
// to reach key material. Implementations may be backed by a software SLIP-10
// derivation (Default, see slip10.go) or, behind the ledger_hw build tag, a
// secure-element-backed provider. Neither the session nor the dispatcher
// ever sees raw private key bytes; Provider is the sole owner of that scope.
type Provider interface {
	// DerivePublicKey returns the 32-byte Ed25519 public key for path.
	DerivePublicKey(path *Path) ([PublicKeySize]byte, error)

	// Sign returns the 64-byte Ed25519 signature of digest under the key
	// derived from path.
	Sign(path *Path, digest [DigestSize]byte) ([SignatureSize]byte, error)
}
