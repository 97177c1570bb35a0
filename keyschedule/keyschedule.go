// Package keyschedule implements C3: deriving the handshake's salts
// from the two shared secrets the handshake produces, generating the
// mdc_seed, and computing MDCs and the security number (spec.md §4.3).
// The initial PFS seeds are raw DH outputs computed in package
// handshake, not here. It is built the way
// the teacher's protocol/doubleratchet derives its root/chain keys —
// one KDF call per derived value, each with its own domain-separating
// label — but the inputs here are a DH secret plus a KEM secret
// instead of a single DH output.
package keyschedule

import (
	"github.com/c0d3-rev0lut10n/dawn-stdlib/dawnerr"
	"github.com/c0d3-rev0lut10n/dawn-stdlib/params"
	"github.com/c0d3-rev0lut10n/dawn-stdlib/primitive"
)

// Salts holds the two salts derived once per conversation and fixed
// for its life (invariant I4).
type Salts struct {
	PFSSalt []byte
	IDSalt  []byte
}

// DeriveSalts computes pfs_salt and id_salt from the handshake's two
// independent shared secrets.
func DeriveSalts(p primitive.Provider, dhSaltSecret, kemSaltSecret []byte) (*Salts, error) {
	const op = "keyschedule.DeriveSalts"
	ikm := make([]byte, 0, len(dhSaltSecret)+len(kemSaltSecret))
	ikm = append(ikm, dhSaltSecret...)
	ikm = append(ikm, kemSaltSecret...)

	pfsSalt, err := p.KDF(ikm, nil, params.HKDFInfoPFSSalt, params.SymKeySize)
	if err != nil {
		return nil, dawnerr.New(op, dawnerr.Primitive, err)
	}
	idSalt, err := p.KDF(ikm, nil, params.HKDFInfoIDSalt, params.SymKeySize)
	if err != nil {
		return nil, dawnerr.New(op, dawnerr.Primitive, err)
	}
	return &Salts{PFSSalt: pfsSalt, IDSalt: idSalt}, nil
}

// NewMDCSeed generates the initiator-chosen symmetric secret that
// seeds predictable MDC generation for the conversation's life.
func NewMDCSeed(p primitive.Provider) ([]byte, error) {
	seed, err := p.Rand(params.SymKeySize)
	if err != nil {
		return nil, dawnerr.New("keyschedule.NewMDCSeed", dawnerr.Primitive, err)
	}
	return seed, nil
}

// PredictableMDC derives the MDC for the given conversation id under
// the conversation's mdc_seed (spec.md §4.3, invariant I2).
func PredictableMDC(p primitive.Provider, mdcSeed []byte, idHex string) (string, error) {
	mdc, err := p.PredictableMDC(mdcSeed, idHex)
	if err != nil {
		return "", dawnerr.New("keyschedule.PredictableMDC", dawnerr.Decode, err)
	}
	return mdc, nil
}

// SecurityNumber computes the out-of-band verification string from
// both parties' long-term KEM public keys (spec.md §4.3, P8).
func SecurityNumber(p primitive.Provider, kemPubA, kemPubB []byte) string {
	return p.SecurityNumber(kemPubA, kemPubB)
}

// ShortVerificationCode produces a Signal-style 30-digit human
// verification code for a single party's identity key, adapted from
// the teacher's protocol/fingerprint package. It is a supplementary
// display format alongside SecurityNumber, not required by any
// invariant, kept because pairing a hex security number with a
// chunked decimal code is the teacher's own verification UX.
func ShortVerificationCode(pub []byte, identifier []byte) ([30]int, error) {
	return fingerprintDigits(pub, identifier)
}
