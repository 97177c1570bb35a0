// Package primitive is the C1 façade: a thin, typed wrapper over the
// crypto building blocks dawn-stdlib's protocol layer is built from.
// It mirrors the shape of the teacher's protocol/doubleratchet
// DoubleRatchet interface — a small interface plus an unexported
// struct implementing it, constructed via a New func — but widened to
// cover every primitive spec.md §4.1 names (KEM, DH, signatures, AEAD,
// KDF, hash, RNG, id/MDC generation) instead of just the ratchet step.
// It is the single seam where constant-time and zeroization policy
// would live if the underlying libraries exposed hooks for it; none of
// go.dedis.ch/kyber, crypto/mlkem, or golang.org/x/crypto/chacha20poly1305
// expose an explicit zeroize-on-drop, so callers are expected to drop
// references to secret byte slices promptly.
package primitive

import (
	dawncrypto "github.com/c0d3-rev0lut10n/dawn-stdlib/crypto"
	"github.com/c0d3-rev0lut10n/dawn-stdlib/crypto/aead"
	"github.com/c0d3-rev0lut10n/dawn-stdlib/crypto/dh25519"
	"github.com/c0d3-rev0lut10n/dawn-stdlib/crypto/hkdf"
	"github.com/c0d3-rev0lut10n/dawn-stdlib/crypto/ids"
	"github.com/c0d3-rev0lut10n/dawn-stdlib/crypto/key_ed25519"
	"github.com/c0d3-rev0lut10n/dawn-stdlib/crypto/mlkem"
	dawnsha256 "github.com/c0d3-rev0lut10n/dawn-stdlib/crypto/sha256"
	"github.com/c0d3-rev0lut10n/dawn-stdlib/crypto/signer_schnorr"
	"github.com/c0d3-rev0lut10n/dawn-stdlib/params"
)

// Sizes exposed by the façade, per spec.md §4.1.
const (
	DHPubSize     = params.DHPubSize
	SymKeySize    = params.SymKeySize
	NonceSize     = params.NonceSize
	SignatureSize = params.SignatureSize
	KEMPubSize    = mlkem.PublicKeySize
	KEMCtSize     = mlkem.CiphertextSize
)

// SigVerdict is the tri-state result of signature verification spec.md
// §4.1 calls for: a required-but-missing signature must never be
// silently treated as success (invariant I5).
type SigVerdict int

const (
	SigOK SigVerdict = iota
	SigBad
	SigAbsent
)

// KEMKeyPair is a post-quantum encapsulation key pair.
type KEMKeyPair struct {
	Priv *mlkem.PrivateKey
	Pub  *mlkem.PublicKey
}

// DHKeyPair is a classical (Edwards25519 group) Diffie-Hellman key pair.
type DHKeyPair struct {
	Priv key_ed25519.PrivateKey
	Pub  key_ed25519.PublicKey
}

// SigKeyPair is a Schnorr signature key pair.
type SigKeyPair struct {
	Priv key_ed25519.PrivateKey
	Pub  key_ed25519.PublicKey
}

// Provider is the crypto primitive boundary every other dawn-stdlib
// component calls through.
type Provider interface {
	KEMKeygen() (*KEMKeyPair, error)
	KEMEncap(pub *mlkem.PublicKey) (ciphertext, shared []byte, err error)
	KEMDecap(priv *mlkem.PrivateKey, ciphertext []byte) (shared []byte, err error)

	DHKeygen() (*DHKeyPair, error)
	DH(priv key_ed25519.PrivateKey, pub key_ed25519.PublicKey) ([]byte, error)

	SigKeygen() (*SigKeyPair, error)
	SigSign(priv key_ed25519.PrivateKey, msg []byte) ([]byte, error)
	SigVerify(pub key_ed25519.PublicKey, msg, sig []byte) SigVerdict

	AEADSeal(key, nonce, ad, plaintext []byte) ([]byte, error)
	AEADOpen(key, nonce, ad, ciphertext []byte) ([]byte, error)

	KDF(ikm, salt, info []byte, length int) ([]byte, error)
	Hash(data []byte) []byte
	Rand(n int) ([]byte, error)

	IDGen() (string, error)
	NextID(idHex string) (string, error)
	MDCGen() (string, error)
	PredictableMDC(seed []byte, idHex string) (string, error)
	SecurityNumber(a, b []byte) string
}

type defaultProvider struct{}

// Default returns the standard Provider implementation: kyber's
// Edwards25519 suite for DH and Schnorr signatures, the standard
// library's ML-KEM-768 for the post-quantum KEM, chacha20poly1305 for
// AEAD, and HKDF-SHA-256 for key derivation.
func Default() Provider { return &defaultProvider{} }

func (defaultProvider) KEMKeygen() (*KEMKeyPair, error) {
	priv, pub, err := mlkem.Keygen()
	if err != nil {
		return nil, err
	}
	return &KEMKeyPair{Priv: priv, Pub: pub}, nil
}

func (defaultProvider) KEMEncap(pub *mlkem.PublicKey) ([]byte, []byte, error) {
	return mlkem.Encap(pub)
}

func (defaultProvider) KEMDecap(priv *mlkem.PrivateKey, ciphertext []byte) ([]byte, error) {
	return mlkem.Decap(priv, ciphertext)
}

func (defaultProvider) DHKeygen() (*DHKeyPair, error) {
	priv, err := key_ed25519.New()
	if err != nil {
		return nil, err
	}
	pub, err := priv.Public()
	if err != nil {
		return nil, err
	}
	return &DHKeyPair{Priv: *priv, Pub: *pub}, nil
}

func (defaultProvider) DH(priv key_ed25519.PrivateKey, pub key_ed25519.PublicKey) ([]byte, error) {
	return dh25519.GetSecret(&priv, &pub)
}

func (defaultProvider) SigKeygen() (*SigKeyPair, error) {
	priv, err := key_ed25519.New()
	if err != nil {
		return nil, err
	}
	pub, err := priv.Public()
	if err != nil {
		return nil, err
	}
	return &SigKeyPair{Priv: *priv, Pub: *pub}, nil
}

func (defaultProvider) SigSign(priv key_ed25519.PrivateKey, msg []byte) ([]byte, error) {
	return signer_schnorr.Sign(priv, msg)
}

func (defaultProvider) SigVerify(pub key_ed25519.PublicKey, msg, sig []byte) SigVerdict {
	if len(sig) == 0 {
		return SigAbsent
	}
	if err := signer_schnorr.Verify(pub, msg, sig); err != nil {
		return SigBad
	}
	return SigOK
}

func (defaultProvider) AEADSeal(key, nonce, ad, plaintext []byte) ([]byte, error) {
	return aead.Seal(key, nonce, ad, plaintext)
}

func (defaultProvider) AEADOpen(key, nonce, ad, ciphertext []byte) ([]byte, error) {
	return aead.Open(key, nonce, ad, ciphertext)
}

func (defaultProvider) KDF(ikm, salt, info []byte, length int) ([]byte, error) {
	buf := make([]byte, length)
	if _, err := hkdf.KDF(dawncrypto.DefaultHashFunc, ikm, salt, info, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

func (defaultProvider) Hash(data []byte) []byte { return dawnsha256.Hash(data) }

func (defaultProvider) Rand(n int) ([]byte, error) { return ids.Random(n) }

func (defaultProvider) IDGen() (string, error) { return ids.New() }

func (defaultProvider) NextID(idHex string) (string, error) { return ids.Next(idHex) }

func (defaultProvider) MDCGen() (string, error) { return ids.New() }

func (defaultProvider) PredictableMDC(seed []byte, idHex string) (string, error) {
	return ids.PredictableMDC(seed, idHex)
}

func (defaultProvider) SecurityNumber(a, b []byte) string { return ids.SecurityNumber(a, b) }
