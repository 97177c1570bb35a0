// Package ratchet implements C4: the hybrid post-quantum/classical
// forward-secrecy ratchet (spec.md §4.4). Structurally this is the
// teacher's protocol/doubleratchet symmetric-chain idea — one chain
// key per direction, advanced by a KDF call on every message, each
// message AEAD-sealed under the key current before that advance — with the teacher's DH-ratchet
// step (a new DH keypair published every few messages) replaced by a
// fresh ML-KEM encapsulation against the peer's static long-term KEM
// public key on every single message, per spec.md §4.4's
// next_key = KDF(current_pfs_key ‖ kem_shared, pfs_salt, "ratchet", 32).
package ratchet

import (
	"github.com/c0d3-rev0lut10n/dawn-stdlib/crypto/key_ed25519"
	"github.com/c0d3-rev0lut10n/dawn-stdlib/crypto/mlkem"
	"github.com/c0d3-rev0lut10n/dawn-stdlib/dawnerr"
	"github.com/c0d3-rev0lut10n/dawn-stdlib/envelope"
	"github.com/c0d3-rev0lut10n/dawn-stdlib/params"
	"github.com/c0d3-rev0lut10n/dawn-stdlib/primitive"
)

// SendState is one direction's ratchet state on the sending side: the
// current chain key plus the peer's static KEM public key every
// message re-encapsulates against.
type SendState struct {
	PFSKey       []byte
	RemoteKEMPub *mlkem.PublicKey
}

// RecvState is one direction's ratchet state on the receiving side.
type RecvState struct {
	PFSKey       []byte
	LocalKEMPriv *mlkem.PrivateKey
}

// NewSendState seeds a fresh send chain from the handshake-derived
// initial key.
func NewSendState(initialKey []byte, remoteKEMPub *mlkem.PublicKey) *SendState {
	return &SendState{PFSKey: initialKey, RemoteKEMPub: remoteKEMPub}
}

// NewRecvState seeds a fresh receive chain from the handshake-derived
// initial key.
func NewRecvState(initialKey []byte, localKEMPriv *mlkem.PrivateKey) *RecvState {
	return &RecvState{PFSKey: initialKey, LocalKEMPriv: localKEMPriv}
}

// Encrypt seals plaintext under the current send key and then advances
// the send chain by one step to the newly derived key (invariant I1:
// every message ratchets forward, no key reuse). If signPriv is non-nil, the record is signed
// over hash(kem_ct ‖ nonce ‖ body); callers that omit signing produce
// a record the peer will surface as SignatureAbsent.
func Encrypt(p primitive.Provider, state *SendState, pfsSalt, plaintext []byte, signPriv *key_ed25519.PrivateKey) (envelope.Record, error) {
	const op = "ratchet.Encrypt"

	kemCt, shared, err := p.KEMEncap(state.RemoteKEMPub)
	if err != nil {
		return envelope.Record{}, dawnerr.New(op, dawnerr.Primitive, err)
	}

	ikm := append(append([]byte{}, state.PFSKey...), shared...)
	nextKey, err := p.KDF(ikm, pfsSalt, params.HKDFInfoRatchet, params.SymKeySize)
	if err != nil {
		return envelope.Record{}, dawnerr.New(op, dawnerr.Primitive, err)
	}

	nonce, err := p.Rand(params.NonceSize)
	if err != nil {
		return envelope.Record{}, dawnerr.New(op, dawnerr.Primitive, err)
	}

	// The current key, not the freshly derived one, seals this message
	// (invariant I3: a PFS key serves exactly one send, then is retired).
	ad := append(append([]byte{}, pfsSalt...), kemCt...)
	body, err := p.AEADSeal(state.PFSKey, nonce, ad, plaintext)
	if err != nil {
		return envelope.Record{}, dawnerr.New(op, dawnerr.Primitive, err)
	}

	var sig []byte
	if signPriv != nil {
		digest := p.Hash(append(append(append([]byte{}, kemCt...), nonce...), body...))
		sig, err = p.SigSign(*signPriv, digest)
		if err != nil {
			return envelope.Record{}, dawnerr.New(op, dawnerr.Primitive, err)
		}
	}

	state.PFSKey = nextKey

	return envelope.Record{KEMCt: kemCt, Nonce: nonce, Body: body, Sig: sig}, nil
}

// Decrypt advances the receive chain by one step and opens rec. It
// returns the plaintext and the verdict of signature verification
// against signPub; per invariant I5, a required signature that is
// missing or bad is never folded into an ok/err boolean alone — callers
// must branch on verdict, not just on err being nil.
func Decrypt(p primitive.Provider, state *RecvState, pfsSalt []byte, rec envelope.Record, signPub *key_ed25519.PublicKey) ([]byte, primitive.SigVerdict, error) {
	const op = "ratchet.Decrypt"

	shared, err := p.KEMDecap(state.LocalKEMPriv, rec.KEMCt)
	if err != nil {
		return nil, primitive.SigAbsent, dawnerr.New(op, dawnerr.Primitive, err)
	}

	ikm := append(append([]byte{}, state.PFSKey...), shared...)
	nextKey, err := p.KDF(ikm, pfsSalt, params.HKDFInfoRatchet, params.SymKeySize)
	if err != nil {
		return nil, primitive.SigAbsent, dawnerr.New(op, dawnerr.Primitive, err)
	}

	ad := append(append([]byte{}, pfsSalt...), rec.KEMCt...)
	plaintext, err := p.AEADOpen(state.PFSKey, rec.Nonce, ad, rec.Body)
	if err != nil {
		return nil, primitive.SigAbsent, dawnerr.New(op, dawnerr.Decrypt, err)
	}

	verdict := primitive.SigAbsent
	if signPub != nil {
		digest := p.Hash(append(append(append([]byte{}, rec.KEMCt...), rec.Nonce...), rec.Body...))
		verdict = p.SigVerify(*signPub, digest, rec.Sig)
	}

	state.PFSKey = nextKey

	return plaintext, verdict, nil
}
