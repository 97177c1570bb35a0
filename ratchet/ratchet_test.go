package ratchet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c0d3-rev0lut10n/dawn-stdlib/primitive"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	p := primitive.Default()

	kemKP, err := p.KEMKeygen()
	require.NoError(t, err)

	initialKey := []byte("0123456789abcdef0123456789abcdef")[:32]
	pfsSalt := []byte("salt-for-this-conversation-xxxxx")[:32]

	send := NewSendState(initialKey, kemKP.Pub)
	recv := NewRecvState(initialKey, kemKP.Priv)

	rec, err := Encrypt(p, send, pfsSalt, []byte("hello, bob"), nil)
	require.NoError(t, err)

	plaintext, verdict, err := Decrypt(p, recv, pfsSalt, rec, nil)
	require.NoError(t, err)
	assert.Equal(t, "hello, bob", string(plaintext))
	assert.Equal(t, primitive.SigAbsent, verdict)

	// Both sides advance to the same next key.
	assert.Equal(t, send.PFSKey, recv.PFSKey)
	assert.NotEqual(t, initialKey, send.PFSKey)
}

func TestEncryptDecryptWithSignature(t *testing.T) {
	p := primitive.Default()

	kemKP, err := p.KEMKeygen()
	require.NoError(t, err)
	sigKP, err := p.SigKeygen()
	require.NoError(t, err)

	initialKey := make([]byte, 32)
	pfsSalt := make([]byte, 32)

	send := NewSendState(initialKey, kemKP.Pub)
	recv := NewRecvState(initialKey, kemKP.Priv)

	rec, err := Encrypt(p, send, pfsSalt, []byte("signed message"), &sigKP.Priv)
	require.NoError(t, err)

	plaintext, verdict, err := Decrypt(p, recv, pfsSalt, rec, &sigKP.Pub)
	require.NoError(t, err)
	assert.Equal(t, "signed message", string(plaintext))
	assert.Equal(t, primitive.SigOK, verdict)
}

func TestDecryptSignatureAbsentWhenNotSigned(t *testing.T) {
	p := primitive.Default()

	kemKP, err := p.KEMKeygen()
	require.NoError(t, err)
	sigKP, err := p.SigKeygen()
	require.NoError(t, err)

	initialKey := make([]byte, 32)
	pfsSalt := make([]byte, 32)

	send := NewSendState(initialKey, kemKP.Pub)
	recv := NewRecvState(initialKey, kemKP.Priv)

	rec, err := Encrypt(p, send, pfsSalt, []byte("unsigned"), nil)
	require.NoError(t, err)

	_, verdict, err := Decrypt(p, recv, pfsSalt, rec, &sigKP.Pub)
	require.NoError(t, err)
	assert.Equal(t, primitive.SigAbsent, verdict)
}

func TestDecryptSignatureBadOnTamperedSig(t *testing.T) {
	p := primitive.Default()

	kemKP, err := p.KEMKeygen()
	require.NoError(t, err)
	sigKP, err := p.SigKeygen()
	require.NoError(t, err)

	initialKey := make([]byte, 32)
	pfsSalt := make([]byte, 32)

	send := NewSendState(initialKey, kemKP.Pub)
	recv := NewRecvState(initialKey, kemKP.Priv)

	rec, err := Encrypt(p, send, pfsSalt, []byte("tampered sig"), &sigKP.Priv)
	require.NoError(t, err)
	rec.Sig[0] ^= 0xff

	_, verdict, err := Decrypt(p, recv, pfsSalt, rec, &sigKP.Pub)
	require.NoError(t, err)
	assert.Equal(t, primitive.SigBad, verdict)
}

func TestDecryptFailsOnTamperedBody(t *testing.T) {
	p := primitive.Default()

	kemKP, err := p.KEMKeygen()
	require.NoError(t, err)

	initialKey := make([]byte, 32)
	pfsSalt := make([]byte, 32)

	send := NewSendState(initialKey, kemKP.Pub)
	recv := NewRecvState(initialKey, kemKP.Priv)

	rec, err := Encrypt(p, send, pfsSalt, []byte("authentic"), nil)
	require.NoError(t, err)
	rec.Body[0] ^= 0xff

	_, _, err = Decrypt(p, recv, pfsSalt, rec, nil)
	assert.Error(t, err)
}

func TestSuccessiveMessagesUseDistinctKeys(t *testing.T) {
	p := primitive.Default()

	kemKP, err := p.KEMKeygen()
	require.NoError(t, err)

	initialKey := make([]byte, 32)
	pfsSalt := make([]byte, 32)

	send := NewSendState(initialKey, kemKP.Pub)
	recv := NewRecvState(initialKey, kemKP.Priv)

	rec1, err := Encrypt(p, send, pfsSalt, []byte("first"), nil)
	require.NoError(t, err)
	keyAfterFirst := append([]byte{}, send.PFSKey...)

	rec2, err := Encrypt(p, send, pfsSalt, []byte("second"), nil)
	require.NoError(t, err)
	assert.NotEqual(t, keyAfterFirst, send.PFSKey)

	pt1, _, err := Decrypt(p, recv, pfsSalt, rec1, nil)
	require.NoError(t, err)
	assert.Equal(t, "first", string(pt1))

	pt2, _, err := Decrypt(p, recv, pfsSalt, rec2, nil)
	require.NoError(t, err)
	assert.Equal(t, "second", string(pt2))
}
