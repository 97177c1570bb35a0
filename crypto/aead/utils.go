// Package aead wraps golang.org/x/crypto/chacha20poly1305, the same
// AEAD FiloSottile-age uses for its own file-key wrapping step. Its
// 12-byte nonce matches the nonce size dawn-stdlib's ratchet draws at
// random per message (spec.md §4.4), so it replaces the teacher's AES-256-CBC
// + HMAC composition (crypto/aes256, crypto/hmac) with a single
// authenticated primitive.
package aead

import (
	"errors"

	"golang.org/x/crypto/chacha20poly1305"
)

var (
	ErrInvalidKeySize   = errors.New("invalid aead key length")
	ErrInvalidNonceSize = errors.New("invalid aead nonce length")
	ErrOpenFailed       = errors.New("aead open failed")
)

// KeySize is the required symmetric key length.
const KeySize = chacha20poly1305.KeySize

// NonceSize is the required nonce length.
const NonceSize = chacha20poly1305.NonceSize

// Seal encrypts and authenticates plaintext under key/nonce with ad as
// associated data.
func Seal(key, nonce, ad, plaintext []byte) ([]byte, error) {
	if len(key) != KeySize {
		return nil, ErrInvalidKeySize
	}
	if len(nonce) != NonceSize {
		return nil, ErrInvalidNonceSize
	}
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	return aead.Seal(nil, nonce, plaintext, ad), nil
}

// Open authenticates and decrypts ciphertext under key/nonce/ad.
func Open(key, nonce, ad, ciphertext []byte) ([]byte, error) {
	if len(key) != KeySize {
		return nil, ErrInvalidKeySize
	}
	if len(nonce) != NonceSize {
		return nil, ErrInvalidNonceSize
	}
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	pt, err := aead.Open(nil, nonce, ciphertext, ad)
	if err != nil {
		return nil, ErrOpenFailed
	}
	return pt, nil
}
