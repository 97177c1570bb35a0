// Package filewrap implements C8: a one-shot, one-key-per-file AEAD
// wrapper (spec.md §4.6). It is adapted from the shape of the
// teacher's crypto/aes256 package — a two-function encrypt/decrypt
// pair with no chaining and no metadata — rebuilt on the chacha20poly1305
// façade instead of the teacher's AES-256-CBC+HMAC composition.
package filewrap

import (
	"github.com/c0d3-rev0lut10n/dawn-stdlib/dawnerr"
	"github.com/c0d3-rev0lut10n/dawn-stdlib/params"
	"github.com/c0d3-rev0lut10n/dawn-stdlib/primitive"
)

// EncryptFile generates a fresh random symmetric key and nonce, seals
// plaintext under them, and returns the ciphertext alongside the key.
// There is no chaining and no metadata: the caller is responsible for
// remembering the key out of band.
func EncryptFile(p primitive.Provider, plaintext []byte) (ciphertext, key []byte, err error) {
	const op = "filewrap.EncryptFile"

	key, err = p.Rand(params.SymKeySize)
	if err != nil {
		return nil, nil, dawnerr.New(op, dawnerr.Primitive, err)
	}
	nonce, err := p.Rand(params.NonceSize)
	if err != nil {
		return nil, nil, dawnerr.New(op, dawnerr.Primitive, err)
	}
	body, err := p.AEADSeal(key, nonce, nil, plaintext)
	if err != nil {
		return nil, nil, dawnerr.New(op, dawnerr.Primitive, err)
	}

	out := make([]byte, 0, len(nonce)+len(body))
	out = append(out, nonce...)
	out = append(out, body...)
	return out, key, nil
}

// DecryptFile opens a ciphertext produced by EncryptFile under key.
func DecryptFile(p primitive.Provider, ciphertext, key []byte) ([]byte, error) {
	const op = "filewrap.DecryptFile"

	if len(ciphertext) < params.NonceSize {
		return nil, dawnerr.New(op, dawnerr.Decode, errTooShort)
	}
	nonce := ciphertext[:params.NonceSize]
	body := ciphertext[params.NonceSize:]

	plaintext, err := p.AEADOpen(key, nonce, nil, body)
	if err != nil {
		return nil, dawnerr.New(op, dawnerr.Decrypt, err)
	}
	return plaintext, nil
}
