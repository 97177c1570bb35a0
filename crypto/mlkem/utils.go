// Package mlkem wraps the standard library's ML-KEM-768 implementation
// behind the same small keygen/encap/decap surface the teacher's other
// crypto/* packages expose (see crypto/dh25519, crypto/key_ed25519).
// This is the post-quantum leg of dawn-stdlib's hybrid handshake.
package mlkem

import (
	stdmlkem "crypto/mlkem"
	"errors"
)

var (
	ErrInvalidPublicKey  = errors.New("invalid mlkem public key")
	ErrInvalidPrivateKey = errors.New("invalid mlkem private key")
)

// SeedSize is the length of the private key's encoded seed.
const SeedSize = stdmlkem.SeedSize

// PublicKeySize is the length of an encoded encapsulation key.
const PublicKeySize = stdmlkem.EncapsulationKeySize768

// CiphertextSize is the length of an encapsulation ciphertext.
const CiphertextSize = stdmlkem.CiphertextSize768

// SharedSecretSize is the length of a derived shared secret.
const SharedSecretSize = 32

// PrivateKey is a decapsulation key, kept only by its owner.
type PrivateKey struct {
	key *stdmlkem.DecapsulationKey768
}

// PublicKey is an encapsulation key, published as part of an init bundle.
type PublicKey struct {
	key *stdmlkem.EncapsulationKey768
}

// Keygen generates a fresh ML-KEM-768 key pair.
func Keygen() (*PrivateKey, *PublicKey, error) {
	sk, err := stdmlkem.GenerateKey768()
	if err != nil {
		return nil, nil, err
	}
	return &PrivateKey{key: sk}, &PublicKey{key: sk.EncapsulationKey()}, nil
}

// Bytes returns the private key's seed encoding.
func (sk *PrivateKey) Bytes() []byte { return sk.key.Bytes() }

// ParsePrivateKey reconstructs a private key from its seed encoding.
func ParsePrivateKey(seed []byte) (*PrivateKey, error) {
	sk, err := stdmlkem.NewDecapsulationKey768(seed)
	if err != nil {
		return nil, ErrInvalidPrivateKey
	}
	return &PrivateKey{key: sk}, nil
}

// Public returns the public key matching sk.
func (sk *PrivateKey) Public() *PublicKey {
	return &PublicKey{key: sk.key.EncapsulationKey()}
}

// Bytes returns the public key's encoding.
func (pk *PublicKey) Bytes() []byte { return pk.key.Bytes() }

// ParsePublicKey reconstructs a public key from its encoding.
func ParsePublicKey(b []byte) (*PublicKey, error) {
	k, err := stdmlkem.NewEncapsulationKey768(b)
	if err != nil {
		return nil, ErrInvalidPublicKey
	}
	return &PublicKey{key: k}, nil
}

// Encap encapsulates a fresh shared secret against pk, returning the
// ciphertext to send and the shared secret to use locally.
func Encap(pk *PublicKey) (ciphertext, sharedSecret []byte, err error) {
	sharedSecret, ciphertext = pk.key.Encapsulate()
	return ciphertext, sharedSecret, nil
}

// Decap recovers the shared secret from ciphertext using sk.
func Decap(sk *PrivateKey, ciphertext []byte) ([]byte, error) {
	ss, err := sk.key.Decapsulate(ciphertext)
	if err != nil {
		return nil, err
	}
	return ss, nil
}
