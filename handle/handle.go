// Package handle implements C7: the published contact bundle codec
// (spec.md §4.7). There is no direct teacher analogue — the teacher
// ships public keys inline as protobuf-free Go structs it never
// serializes to a standalone text format — so this package is grounded
// on the shape of the teacher's own key types (key_ed25519.PublicKey,
// crypto/mlkem.PublicKey) plus the newline-separated, hex-encoded
// layout spec.md §4.7 specifies directly.
package handle

import (
	"encoding/hex"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/c0d3-rev0lut10n/dawn-stdlib/crypto/key_ed25519"
	"github.com/c0d3-rev0lut10n/dawn-stdlib/crypto/mlkem"
	"github.com/c0d3-rev0lut10n/dawn-stdlib/dawnerr"
	"github.com/c0d3-rev0lut10n/dawn-stdlib/primitive"
)

const fieldCount = 7

// PublicBundle is the five-key init bundle plus display metadata that
// a handle publishes (spec.md §3).
type PublicBundle struct {
	KEMPub        *mlkem.PublicKey
	DHPub         key_ed25519.PublicKey
	DHPubPFS2     key_ed25519.PublicKey
	KEMPubForSalt *mlkem.PublicKey
	DHPubForSalt  key_ed25519.PublicKey
	Name          string
	AnchorMDC     string
}

// PrivateBundle is the publisher's side: the five secret counterparts
// plus the published PublicBundle. All five secrets are retained and
// may be consumed by many incoming InitRequests (spec.md §3).
type PrivateBundle struct {
	KEMPriv        *mlkem.PrivateKey
	DHPriv         key_ed25519.PrivateKey
	DHPrivPFS2     key_ed25519.PrivateKey
	KEMPrivForSalt *mlkem.PrivateKey
	DHPrivForSalt  key_ed25519.PrivateKey
	Public         PublicBundle
}

// Generate creates a fresh init bundle: five keypairs and a random
// anchor MDC, published under the given display name.
func Generate(p primitive.Provider, name string) (*PrivateBundle, error) {
	const op = "handle.Generate"

	kemKP, err := p.KEMKeygen()
	if err != nil {
		return nil, dawnerr.New(op, dawnerr.Primitive, err)
	}
	kemForSaltKP, err := p.KEMKeygen()
	if err != nil {
		return nil, dawnerr.New(op, dawnerr.Primitive, err)
	}
	dhKP, err := p.DHKeygen()
	if err != nil {
		return nil, dawnerr.New(op, dawnerr.Primitive, err)
	}
	dhPFS2KP, err := p.DHKeygen()
	if err != nil {
		return nil, dawnerr.New(op, dawnerr.Primitive, err)
	}
	dhForSaltKP, err := p.DHKeygen()
	if err != nil {
		return nil, dawnerr.New(op, dawnerr.Primitive, err)
	}
	anchorMDC, err := p.MDCGen()
	if err != nil {
		return nil, dawnerr.New(op, dawnerr.Primitive, err)
	}

	return &PrivateBundle{
		KEMPriv:        kemKP.Priv,
		DHPriv:         dhKP.Priv,
		DHPrivPFS2:     dhPFS2KP.Priv,
		KEMPrivForSalt: kemForSaltKP.Priv,
		DHPrivForSalt:  dhForSaltKP.Priv,
		Public: PublicBundle{
			KEMPub:        kemKP.Pub,
			DHPub:         dhKP.Pub,
			DHPubPFS2:     dhPFS2KP.Pub,
			KEMPubForSalt: kemForSaltKP.Pub,
			DHPubForSalt:  dhForSaltKP.Pub,
			Name:          name,
			AnchorMDC:     anchorMDC,
		},
	}, nil
}

// Encode renders b as the seven newline-separated fields spec.md §4.7
// fixes: KEM pub, DH pub, DH pub (pfs_2), KEM pub for salt, DH pub for
// salt, display name, anchor MDC.
func Encode(b PublicBundle) string {
	fields := []string{
		hex.EncodeToString(b.KEMPub.Bytes()),
		hex.EncodeToString(b.DHPub[:]),
		hex.EncodeToString(b.DHPubPFS2[:]),
		hex.EncodeToString(b.KEMPubForSalt.Bytes()),
		hex.EncodeToString(b.DHPubForSalt[:]),
		b.Name,
		b.AnchorMDC,
	}
	return strings.Join(fields, "\n")
}

// Decode parses a published handle back into a PublicBundle. It fails
// on invalid UTF-8, a field count other than seven, or any key field
// that does not hex-decode to the expected length.
func Decode(data []byte) (PublicBundle, error) {
	const op = "handle.Decode"

	if !utf8.Valid(data) {
		return PublicBundle{}, dawnerr.New(op, dawnerr.Decode, fmt.Errorf("handle is not valid UTF-8"))
	}

	fields := strings.Split(string(data), "\n")
	if len(fields) != fieldCount {
		return PublicBundle{}, dawnerr.New(op, dawnerr.Decode, fmt.Errorf("expected %d fields, got %d", fieldCount, len(fields)))
	}

	kemPub, err := decodeKEMPub(op, fields[0])
	if err != nil {
		return PublicBundle{}, err
	}
	dhPub, err := decodeDHPub(op, fields[1])
	if err != nil {
		return PublicBundle{}, err
	}
	dhPubPFS2, err := decodeDHPub(op, fields[2])
	if err != nil {
		return PublicBundle{}, err
	}
	kemPubForSalt, err := decodeKEMPub(op, fields[3])
	if err != nil {
		return PublicBundle{}, err
	}
	dhPubForSalt, err := decodeDHPub(op, fields[4])
	if err != nil {
		return PublicBundle{}, err
	}

	return PublicBundle{
		KEMPub:        kemPub,
		DHPub:         dhPub,
		DHPubPFS2:     dhPubPFS2,
		KEMPubForSalt: kemPubForSalt,
		DHPubForSalt:  dhPubForSalt,
		Name:          fields[5],
		AnchorMDC:     fields[6],
	}, nil
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
	if len(raw) != primitive.DHPubSize {
		return key_ed25519.PublicKey{}, dawnerr.New(op, dawnerr.Decode, fmt.Errorf("expected %d bytes, got %d", primitive.DHPubSize, len(raw)))
	}
	var pub key_ed25519.PublicKey
	copy(pub[:], raw)
	return pub, nil
}
