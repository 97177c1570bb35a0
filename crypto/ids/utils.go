// Package ids implements the identifier/MDC primitives from spec.md
// §4.1/§4.3: random 32-byte ids, deterministic successor ids, and the
// predictable-MDC and security-number hashes built on top of them.
// It follows the same one-function-per-file-group shape as the
// teacher's other crypto/* packages (crypto/sha256, crypto/hkdf), and
// is built new because the teacher has no analogue (it identifies
// users by caller-chosen strings, not by a generated hex id).
package ids

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"io"

	dawnsha256 "github.com/c0d3-rev0lut10n/dawn-stdlib/crypto/sha256"
)

// Size is the length in bytes of an id/MDC before hex encoding.
const Size = 32

var ErrInvalidLength = errors.New("invalid id length")

// Random returns n cryptographically random bytes.
func Random(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return nil, err
	}
	return b, nil
}

// New generates a fresh random 32-byte id, hex-encoded.
func New() (string, error) {
	b, err := Random(Size)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// Next deterministically advances a hex-encoded id to the next one in
// its sequence, by hashing it. Used to walk distinct ids into
// PredictableMDC so each message gets a fresh MDC without needing
// fresh randomness or shared counters.
func Next(idHex string) (string, error) {
	raw, err := hex.DecodeString(idHex)
	if err != nil {
		return "", err
	}
	if len(raw) != Size {
		return "", ErrInvalidLength
	}
	next := dawnsha256.Hash(raw)
	return hex.EncodeToString(next), nil
}

// PredictableMDC computes hex(hash(seed || id)), the MDC a transport
// will use to address the record carrying this id.
func PredictableMDC(seed []byte, idHex string) (string, error) {
	raw, err := hex.DecodeString(idHex)
	if err != nil {
		return "", err
	}
	buf := make([]byte, 0, len(seed)+len(raw))
	buf = append(buf, seed...)
	buf = append(buf, raw...)
	return hex.EncodeToString(dawnsha256.Hash(buf)), nil
}

// SecurityNumber computes the out-of-band verification string
// hex(hash(sort(a,b))), order-independent in its two inputs.
func SecurityNumber(a, b []byte) string {
	first, second := a, b
	if bytes.Compare(a, b) > 0 {
		first, second = b, a
	}
	buf := make([]byte, 0, len(first)+len(second))
	buf = append(buf, first...)
	buf = append(buf, second...)
	return hex.EncodeToString(dawnsha256.Hash(buf))
}
