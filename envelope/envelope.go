// Package envelope implements C2: the on-wire framing of handshake and
// steady-state records (spec.md §4.2/§6). It is pure encode/decode —
// no cryptography happens here, mirroring how the teacher's
// protocol/doubleratchet package kept header (de)serialization
// (Header.Marshal, doubleRatchetUtils.concat) separate from the
// ratchet's KDF steps.
package envelope

import (
	"github.com/c0d3-rev0lut10n/dawn-stdlib/dawnerr"
	"github.com/c0d3-rev0lut10n/dawn-stdlib/primitive"
)

// BootstrapFrame is the wire layout carrying an InitRequest:
// DH_pub ‖ DH_pub_for_salt ‖ KEM_ct_for_salt ‖ AEAD_record.
type BootstrapFrame struct {
	DHPub        []byte
	DHPubForSalt []byte
	KEMCtForSalt []byte
	Record       []byte
}

// EncodeBootstrapFrame concatenates the four bootstrap fields in order.
func EncodeBootstrapFrame(f BootstrapFrame) []byte {
	out := make([]byte, 0, len(f.DHPub)+len(f.DHPubForSalt)+len(f.KEMCtForSalt)+len(f.Record))
	out = append(out, f.DHPub...)
	out = append(out, f.DHPubForSalt...)
	out = append(out, f.KEMCtForSalt...)
	out = append(out, f.Record...)
	return out
}

// DecodeBootstrapFrame splits a bootstrap frame at its known, fixed
// offsets. It fails with dawnerr.Decode ("TooShort") if data is not
// longer than 2*DHPubSize + kemCtSize.
func DecodeBootstrapFrame(data []byte, kemCtSize int) (BootstrapFrame, error) {
	minLen := 2*primitive.DHPubSize + kemCtSize
	if len(data) <= minLen {
		return BootstrapFrame{}, dawnerr.New("envelope.DecodeBootstrapFrame", dawnerr.Decode, errTooShort)
	}
	dhPub := data[:primitive.DHPubSize]
	dhPubForSalt := data[primitive.DHPubSize : 2*primitive.DHPubSize]
	kemCtForSalt := data[2*primitive.DHPubSize : minLen]
	record := data[minLen:]
	return BootstrapFrame{
		DHPub:        dhPub,
		DHPubForSalt: dhPubForSalt,
		KEMCtForSalt: kemCtForSalt,
		Record:       record,
	}, nil
}

// Record is the wire layout of every steady-state (and per-message
// ratchet) record: KEM_ct ‖ nonce ‖ sig_flag ‖ AEAD_body ‖ sig?.
type Record struct {
	KEMCt []byte
	Nonce []byte
	Body  []byte
	Sig   []byte // nil/empty means unsigned
}

// EncodeRecord concatenates a steady-state record's fields. sig_flag
// is placed immediately after the nonce rather than immediately before
// the signature as spec.md §6 lists it: AEAD_body has no length
// prefix and no fixed length, so a flag following it cannot be told
// apart from body bytes that happen to look like one. Moving the flag
// ahead of the variable-length body removes the ambiguity (see
// DESIGN.md); the signature, when present, is always the final
// sigSize bytes, so the body is still recovered by simple subtraction.
func EncodeRecord(r Record) []byte {
	flag := byte(0)
	if len(r.Sig) > 0 {
		flag = 1
	}
	out := make([]byte, 0, len(r.KEMCt)+len(r.Nonce)+1+len(r.Body)+len(r.Sig))
	out = append(out, r.KEMCt...)
	out = append(out, r.Nonce...)
	out = append(out, flag)
	out = append(out, r.Body...)
	out = append(out, r.Sig...)
	return out
}

// DecodeRecord splits a steady-state record. kemCtSize and nonceSize
// are the façade's published sizes; sigSize is the façade's fixed
// signature length, needed to know how many trailing bytes belong to
// the signature when sig_flag says one is present.
func DecodeRecord(data []byte, kemCtSize, nonceSize, sigSize int) (Record, error) {
	head := kemCtSize + nonceSize
	if len(data) < head+1 {
		return Record{}, dawnerr.New("envelope.DecodeRecord", dawnerr.Decode, errTooShort)
	}
	kemCt := data[:kemCtSize]
	nonce := data[kemCtSize:head]
	flag := data[head]
	rest := data[head+1:]

	switch flag {
	case 0:
		return Record{KEMCt: kemCt, Nonce: nonce, Body: rest, Sig: nil}, nil
	case 1:
		if len(rest) < sigSize {
			return Record{}, dawnerr.New("envelope.DecodeRecord", dawnerr.Decode, errTooShort)
		}
		body := rest[:len(rest)-sigSize]
		sig := rest[len(rest)-sigSize:]
		return Record{KEMCt: kemCt, Nonce: nonce, Body: body, Sig: sig}, nil
	default:
		return Record{}, dawnerr.New("envelope.DecodeRecord", dawnerr.Decode, errBadTag)
	}
}
