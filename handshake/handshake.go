// Package handshake implements C5: the InitRequest/InitAccept state
// machine that bootstraps a conversation from a published handle
// (spec.md §4.5). It is grounded on the teacher's protocol/x3dh
// alice/bob split (two files, one function per state-machine step,
// each returning the artifacts the next step needs) — generalized from
// a single-DH X3DH exchange to the two-secret (DH+KEM) schedule C3
// derives and the per-message KEM-rekeying ratchet C4 runs instead of
// a DH ratchet.
package handshake

import (
	"encoding/hex"
	"fmt"

	"github.com/c0d3-rev0lut10n/dawn-stdlib/crypto/key_ed25519"
	"github.com/c0d3-rev0lut10n/dawn-stdlib/crypto/mlkem"
	"github.com/c0d3-rev0lut10n/dawn-stdlib/dawnerr"
	"github.com/c0d3-rev0lut10n/dawn-stdlib/envelope"
	"github.com/c0d3-rev0lut10n/dawn-stdlib/handle"
	"github.com/c0d3-rev0lut10n/dawn-stdlib/keyschedule"
	"github.com/c0d3-rev0lut10n/dawn-stdlib/message"
	"github.com/c0d3-rev0lut10n/dawn-stdlib/params"
	"github.com/c0d3-rev0lut10n/dawn-stdlib/primitive"
	"github.com/c0d3-rev0lut10n/dawn-stdlib/ratchet"
)

// InitiatorState is everything the initiator needs after gen_init_request,
// to later process the responder's InitAccept and begin steady-state
// messaging.
type InitiatorState struct {
	ID      string
	IDSalt  []byte
	PFSSalt []byte
	MDCSeed []byte

	ownKEMPriv *mlkem.PrivateKey

	Send *ratchet.SendState
	Recv *ratchet.RecvState

	RemoteSigPub *key_ed25519.PublicKey
}

// GenInitRequest is the initiator's first step: it derives the shared
// salts and initial PFS seeds from the responder's published bundle,
// seeds the initiator's send chain against the bundle's long-term KEM
// key, and frames an InitRequest as the handshake's first ratchet
// record.
func GenInitRequest(p primitive.Provider, remote handle.PublicBundle, sigKeys primitive.SigKeyPair, name, comment string, sign bool) (*InitiatorState, envelope.BootstrapFrame, error) {
	const op = "handshake.GenInitRequest"

	if name == "" {
		return nil, envelope.BootstrapFrame{}, dawnerr.New(op, dawnerr.BadInput, fmt.Errorf("display name must not be empty"))
	}

	dhForSalt, err := p.DHKeygen()
	if err != nil {
		return nil, envelope.BootstrapFrame{}, dawnerr.New(op, dawnerr.Primitive, err)
	}
	sDHSalt, err := p.DH(dhForSalt.Priv, remote.DHPubForSalt)
	if err != nil {
		return nil, envelope.BootstrapFrame{}, dawnerr.New(op, dawnerr.Primitive, err)
	}
	kemCtForSalt, sKEMSalt, err := p.KEMEncap(remote.KEMPubForSalt)
	if err != nil {
		return nil, envelope.BootstrapFrame{}, dawnerr.New(op, dawnerr.Primitive, err)
	}
	salts, err := keyschedule.DeriveSalts(p, sDHSalt, sKEMSalt)
	if err != nil {
		return nil, envelope.BootstrapFrame{}, err
	}

	ownDH, err := p.DHKeygen()
	if err != nil {
		return nil, envelope.BootstrapFrame{}, dawnerr.New(op, dawnerr.Primitive, err)
	}
	sendPFSKeyInitiator, err := p.DH(ownDH.Priv, remote.DHPub)
	if err != nil {
		return nil, envelope.BootstrapFrame{}, dawnerr.New(op, dawnerr.Primitive, err)
	}

	ownDHPFS2, err := p.DHKeygen()
	if err != nil {
		return nil, envelope.BootstrapFrame{}, dawnerr.New(op, dawnerr.Primitive, err)
	}
	sendPFSKeyResponder, err := p.DH(ownDHPFS2.Priv, remote.DHPubPFS2)
	if err != nil {
		return nil, envelope.BootstrapFrame{}, dawnerr.New(op, dawnerr.Primitive, err)
	}

	ownKEM, err := p.KEMKeygen()
	if err != nil {
		return nil, envelope.BootstrapFrame{}, dawnerr.New(op, dawnerr.Primitive, err)
	}

	id, err := p.IDGen()
	if err != nil {
		return nil, envelope.BootstrapFrame{}, dawnerr.New(op, dawnerr.Primitive, err)
	}
	mdcSeed, err := keyschedule.NewMDCSeed(p)
	if err != nil {
		return nil, envelope.BootstrapFrame{}, err
	}

	sigPubHex := hex.EncodeToString(sigKeys.Pub[:])
	if !sign {
		sigPubHex = ""
	}

	payload := message.InitRequest{
		ID:        id,
		MDC:       remote.AnchorMDC,
		Kyber:     hex.EncodeToString(ownKEM.Pub.Bytes()),
		Sign:      sigPubHex,
		CurvePFS2: hex.EncodeToString(ownDHPFS2.Pub[:]),
		MDCSeed:   hex.EncodeToString(mdcSeed),
		Name:      name,
		Comment:   comment,
	}
	plaintext, err := message.Encode(message.Message{Tag: message.TagInitRequest, InitRequest: &payload})
	if err != nil {
		return nil, envelope.BootstrapFrame{}, err
	}

	sendState := ratchet.NewSendState(sendPFSKeyInitiator, remote.KEMPub)
	var signPriv *key_ed25519.PrivateKey
	if sign {
		signPriv = &sigKeys.Priv
	}
	record, err := ratchet.Encrypt(p, sendState, salts.PFSSalt, plaintext, signPriv)
	if err != nil {
		return nil, envelope.BootstrapFrame{}, err
	}

	frame := envelope.BootstrapFrame{
		DHPub:        ownDH.Pub[:],
		DHPubForSalt: dhForSalt.Pub[:],
		KEMCtForSalt: kemCtForSalt,
		Record:       envelope.EncodeRecord(record),
	}

	state := &InitiatorState{
		ID:         id,
		IDSalt:     salts.IDSalt,
		PFSSalt:    salts.PFSSalt,
		MDCSeed:    mdcSeed,
		ownKEMPriv: ownKEM.Priv,
		Send:       sendState,
		Recv:       ratchet.NewRecvState(sendPFSKeyResponder, ownKEM.Priv),
	}
	return state, frame, nil
}

// ParsedInitRequest is the responder's view after parse_init_request:
// the initiator's identity material plus ratchet state seeded for the
// conversation, ready to either reject silently or accept.
type ParsedInitRequest struct {
	InitiatorID      string
	InitiatorName    string
	InitiatorComment string
	MDCSeed          []byte
	IDSalt           []byte
	PFSSalt          []byte

	RemoteSigPub *key_ed25519.PublicKey

	Plaintext []byte
	Record    envelope.Record

	Send *ratchet.SendState
	Recv *ratchet.RecvState

	SigVerdict primitive.SigVerdict
}

// ParseInitRequest is the responder-side mirror of GenInitRequest: it
// recomputes pfs_salt and id_salt from its own bundle secrets, decrypts
// the bootstrap frame's ratchet record, and recovers the initiator's
// signature and KEM public keys from the decrypted plaintext.
func ParseInitRequest(p primitive.Provider, own handle.PrivateBundle, frameBytes []byte, kemCtSize, sigSize int) (*ParsedInitRequest, error) {
	const op = "handshake.ParseInitRequest"

	frame, err := envelope.DecodeBootstrapFrame(frameBytes, kemCtSize)
	if err != nil {
		return nil, err
	}

	var initiatorDHPub, initiatorDHPubForSalt key_ed25519.PublicKey
	copy(initiatorDHPub[:], frame.DHPub)
	copy(initiatorDHPubForSalt[:], frame.DHPubForSalt)

	sDHSalt, err := p.DH(own.DHPrivForSalt, initiatorDHPubForSalt)
	if err != nil {
		return nil, dawnerr.New(op, dawnerr.Primitive, err)
	}
	sKEMSalt, err := p.KEMDecap(own.KEMPrivForSalt, frame.KEMCtForSalt)
	if err != nil {
		return nil, dawnerr.New(op, dawnerr.Primitive, err)
	}
	salts, err := keyschedule.DeriveSalts(p, sDHSalt, sKEMSalt)
	if err != nil {
		return nil, err
	}

	sendPFSKeyInitiator, err := p.DH(own.DHPriv, initiatorDHPub)
	if err != nil {
		return nil, dawnerr.New(op, dawnerr.Primitive, err)
	}

	record, err := envelope.DecodeRecord(frame.Record, kemCtSize, primitive.NonceSize, sigSize)
	if err != nil {
		return nil, err
	}

	recv := ratchet.NewRecvState(sendPFSKeyInitiator, own.KEMPriv)
	plaintext, _, err := ratchet.Decrypt(p, recv, salts.PFSSalt, record, nil)
	if err != nil {
		return nil, err
	}

	msg, err := message.Decode(plaintext)
	if err != nil {
		return nil, err
	}
	if msg.Tag != message.TagInitRequest {
		return nil, dawnerr.New(op, dawnerr.Decode, fmt.Errorf("expected InitRequest tag, got %q", msg.Tag))
	}
	req := msg.InitRequest

	remoteKEMPub, err := decodeKEMPub(op, req.Kyber)
	if err != nil {
		return nil, err
	}
	remoteDHPFS2, err := decodeDHPub(op, req.CurvePFS2)
	if err != nil {
		return nil, err
	}
	mdcSeed, err := hex.DecodeString(req.MDCSeed)
	if err != nil {
		return nil, dawnerr.New(op, dawnerr.Decode, err)
	}

	sendPFSKeyResponder, err := p.DH(own.DHPrivPFS2, remoteDHPFS2)
	if err != nil {
		return nil, dawnerr.New(op, dawnerr.Primitive, err)
	}

	var remoteSigPub *key_ed25519.PublicKey
	verdict := primitive.SigAbsent
	if req.Sign != "" {
		pub, err := decodeDHPub(op, req.Sign)
		if err != nil {
			return nil, err
		}
		remoteSigPub = &pub
		verdict = p.SigVerify(pub, p.Hash(append(append(append([]byte{}, record.KEMCt...), record.Nonce...), record.Body...)), record.Sig)
	}

	return &ParsedInitRequest{
		InitiatorID:      req.ID,
		InitiatorName:    req.Name,
		InitiatorComment: req.Comment,
		MDCSeed:          mdcSeed,
		IDSalt:           salts.IDSalt,
		PFSSalt:          salts.PFSSalt,
		RemoteSigPub:     remoteSigPub,
		Plaintext:        plaintext,
		Record:           record,
		Send:             ratchet.NewSendState(sendPFSKeyResponder, remoteKEMPub),
		Recv:             recv,
		SigVerdict:       verdict,
	}, nil
}

// AcceptInitRequest is the responder's reply step: it generates a
// fresh KEM keypair to replace the bundle's long-term one for all
// future decapsulation in this conversation, and seals the first
// steady-state InitAccept record.
func AcceptInitRequest(p primitive.Provider, parsed *ParsedInitRequest, sigKeys primitive.SigKeyPair, sign bool) (envelope.Record, *mlkem.PrivateKey, error) {
	const op = "handshake.AcceptInitRequest"

	freshKEM, err := p.KEMKeygen()
	if err != nil {
		return envelope.Record{}, nil, dawnerr.New(op, dawnerr.Primitive, err)
	}

	mdc, err := keyschedule.PredictableMDC(p, parsed.MDCSeed, parsed.InitiatorID)
	if err != nil {
		return envelope.Record{}, nil, err
	}

	sigPubHex := ""
	if sign {
		sigPubHex = hex.EncodeToString(sigKeys.Pub[:])
	}
	payload := message.InitAccept{
		Kyber: hex.EncodeToString(freshKEM.Pub.Bytes()),
		Sign:  sigPubHex,
		MDC:   mdc,
	}
	plaintext, err := message.Encode(message.Message{Tag: message.TagInitAccept, InitAccept: &payload})
	if err != nil {
		return envelope.Record{}, nil, err
	}

	var signPriv *key_ed25519.PrivateKey
	if sign {
		signPriv = &sigKeys.Priv
	}
	record, err := ratchet.Encrypt(p, parsed.Send, parsed.PFSSalt, plaintext, signPriv)
	if err != nil {
		return envelope.Record{}, nil, err
	}

	// From here on, incoming initiator records decapsulate against the
	// fresh key, not the bundle's long-term one (invariant: the bundle
	// secret is consumed once per incoming request, not reused).
	parsed.Recv.LocalKEMPriv = freshKEM.Priv

	return record, freshKEM.Priv, nil
}

// ParseInitResponse is the initiator's final step. It decrypts the
// InitAccept record, learns the responder's fresh KEM and signature
// public keys, and enforces invariant I5: if signing was requested, a
// missing or bad signature is fatal, never silently ignored.
func ParseInitResponse(p primitive.Provider, state *InitiatorState, record envelope.Record, requireSignature bool) (primitive.SigVerdict, error) {
	const op = "handshake.ParseInitResponse"

	plaintext, _, err := ratchet.Decrypt(p, state.Recv, state.PFSSalt, record, nil)
	if err != nil {
		return primitive.SigAbsent, err
	}

	msg, err := message.Decode(plaintext)
	if err != nil {
		return primitive.SigAbsent, err
	}
	if msg.Tag != message.TagInitAccept {
		return primitive.SigAbsent, dawnerr.New(op, dawnerr.Decode, fmt.Errorf("expected InitAccept tag, got %q", msg.Tag))
	}
	acc := msg.InitAccept

	remoteKEMPub, err := decodeKEMPub(op, acc.Kyber)
	if err != nil {
		return primitive.SigAbsent, err
	}
	state.Send = ratchet.NewSendState(state.Send.PFSKey, remoteKEMPub)

	verdict := primitive.SigAbsent
	if acc.Sign != "" {
		pub, err := decodeDHPub(op, acc.Sign)
		if err != nil {
			return primitive.SigAbsent, err
		}
		state.RemoteSigPub = &pub
		verdict = p.SigVerify(pub, p.Hash(append(append(append([]byte{}, record.KEMCt...), record.Nonce...), record.Body...)), record.Sig)
	}

	if requireSignature && verdict != primitive.SigOK {
		kind := dawnerr.SignatureBad
		if verdict == primitive.SigAbsent {
			kind = dawnerr.SignatureAbsent
		}
		return verdict, dawnerr.New(op, kind, fmt.Errorf("signature required but not valid"))
	}

	return verdict, nil
}

func decodeKEMPub(op, field string) (*mlkem.PublicKey, error) {
	raw, err := hex.DecodeString(field)
	if err != nil {
		return nil, dawnerr.New(op, dawnerr.Decode, err)
	}
	pub, err := mlkem.ParsePublicKey(raw)
	if err != nil {
		return nil, dawnerr.New(op, dawnerr.Decode, err)
	}
	return pub, nil
}

func decodeDHPub(op, field string) (key_ed25519.PublicKey, error) {
	raw, err := hex.DecodeString(field)
	if err != nil {
		return key_ed25519.PublicKey{}, dawnerr.New(op, dawnerr.Decode, err)
	}
	if len(raw) != params.DHPubSize {
		return key_ed25519.PublicKey{}, dawnerr.New(op, dawnerr.Decode, fmt.Errorf("expected %d bytes, got %d", params.DHPubSize, len(raw)))
	}
	var pub key_ed25519.PublicKey
	copy(pub[:], raw)
	return pub, nil
}
