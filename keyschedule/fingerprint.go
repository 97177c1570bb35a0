package keyschedule

import (
	"crypto/sha512"
	"encoding/binary"
)

// fingerprintRounds and fingerprintChunkBytes are fixed by the Signal
// numeric-fingerprint construction this mimics, not by any choice here:
// 5200 rounds of SHA-512 self-hashing is the iteration count Signal's
// own client uses to stretch an identity key into a fingerprint, and
// decoding 5 raw bytes into a 5-digit, mod-100000 chunk is how it turns
// 30 stretched bytes into the 30 displayed digits. Varying either would
// stop producing Signal-compatible fingerprints, so they're named
// constants rather than values to tune.
const (
	fingerprintRounds     = 5200
	fingerprintChunkBytes = 5
	fingerprintChunks     = 6
)

// stretch repeatedly self-hashes digest with SHA-512, fingerprintRounds
// times, the way Signal stretches an identity key before truncating it
// into a displayable fingerprint.
func stretch(seed []byte) [64]byte {
	digest := sha512.Sum512(seed)
	for i := 1; i < fingerprintRounds; i++ {
		digest = sha512.Sum512(digest[:])
	}
	return digest
}

// chunkToDigits decodes a fingerprintChunkBytes-long slice into that
// many decimal digits, most significant first, by reading it as a
// big-endian integer mod 100000.
func chunkToDigits(chunk []byte) [fingerprintChunkBytes]int {
	padded := make([]byte, 8)
	copy(padded[8-len(chunk):], chunk)
	num := binary.BigEndian.Uint64(padded) % 100000

	var digits [fingerprintChunkBytes]int
	for j := fingerprintChunkBytes - 1; j >= 0; j-- {
		digits[j] = int(num % 10)
		num /= 10
	}
	return digits
}

// fingerprintDigits mimics what the Signal app does to turn an
// identity key plus a user identifier into a 30-digit verification
// code, adapted from the teacher's protocol/fingerprint package. It
// operates on a raw public-key byte slice (KEM or DH, whichever the
// caller wants to display) instead of a fixed key_ed25519.PublicKey,
// and splits the stretch/decode steps the teacher inlined into two
// named helpers above.
func fingerprintDigits(pub []byte, userIdentifier []byte) ([30]int, error) {
	seed := append(append([]byte{}, pub...), userIdentifier...)
	digest := stretch(seed)

	var finalResult [30]int
	for i := 0; i < fingerprintChunks; i++ {
		start := i * fingerprintChunkBytes
		chunk := chunkToDigits(digest[start : start+fingerprintChunkBytes])
		copy(finalResult[start:start+fingerprintChunkBytes], chunk[:])
	}

	return finalResult, nil
}
