// Package params holds the protocol-wide constants dawn-stdlib's
// components agree on: byte lengths and HKDF domain-separation labels.
// It plays the role the teacher's configs package plays for its own
// constants, but owns no addresses, paths, or storage keys since the
// core has no transport or persistence of its own.
package params

const (
	// DHPubSize is the size in bytes of an X25519-style (Edwards25519 group) public key.
	DHPubSize = 32
	// SymKeySize is the size in bytes of every symmetric secret: PFS chain keys, salts, mdc_seed.
	SymKeySize = 32
	// NonceSize is the AEAD nonce size used throughout (matches chacha20poly1305.NonceSize).
	NonceSize = 12
	// SignatureSize is the size in bytes of a Schnorr signature over the Edwards25519 group.
	SignatureSize = 64
	// IDSize is the size in bytes of a conversation id / MDC before hex-encoding.
	IDSize = 32
)

var (
	// HKDFInfoPFSSalt is the KDF info label for deriving pfs_salt.
	HKDFInfoPFSSalt = []byte("pfs_salt")
	// HKDFInfoIDSalt is the KDF info label for deriving id_salt.
	HKDFInfoIDSalt = []byte("id_salt")
	// HKDFInfoRatchet is the KDF info label for deriving the next ratchet key.
	HKDFInfoRatchet = []byte("ratchet")
	// HKDFInfoFileWrap is a KDF info label for the file wrapper. No code in this module
	// derives a key with it: filewrap seals directly under its random key.
	HKDFInfoFileWrap = []byte("dawn-stdlib-file")
)
