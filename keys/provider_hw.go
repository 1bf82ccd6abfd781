//go:build ledger_hw

package keys

import "fmt"

// hwProvider stands in for a secure-element-backed Provider: on real
// hardware, derivation and signing happen inside the BOLOS SDK's
// os_perso_derive_node_bip32_seed_key / cx_eddsa_sign_no_throw calls and the
// raw seed never enters this process's address space at all. This stub
// preserves the build-tag seam so a real integration has exactly one file
// to replace.
type hwProvider struct{}

var _ Provider = hwProvider{}

func (hwProvider) DerivePublicKey(path *Path) ([PublicKeySize]byte, error) {
	var zero [PublicKeySize]byte
	return zero, fmt.Errorf("keys: ledger_hw provider not wired to a secure element in this build")
}

func (hwProvider) Sign(path *Path, digest [DigestSize]byte) ([SignatureSize]byte, error) {
	var zero [SignatureSize]byte
	return zero, fmt.Errorf("keys: ledger_hw provider not wired to a secure element in this build")
}

// LoadProvider returns the hardware-backed provider. seed is ignored in this
// build: the secure element holds the seed itself.
func LoadProvider(seed []byte) (Provider, error) {
	return hwProvider{}, nil
}
