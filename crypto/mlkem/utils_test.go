package mlkem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeygenEncapDecapRoundTrip(t *testing.T) {
	priv, pub, err := Keygen()
	require.NoError(t, err)

	ct, shared1, err := Encap(pub)
	require.NoError(t, err)
	assert.Len(t, ct, CiphertextSize)
	assert.Len(t, shared1, SharedSecretSize)

	shared2, err := Decap(priv, ct)
	require.NoError(t, err)
	assert.Equal(t, shared1, shared2)
}

func TestPublicKeyBytesRoundTrip(t *testing.T) {
	_, pub, err := Keygen()
	require.NoError(t, err)

	encoded := pub.Bytes()
	assert.Len(t, encoded, PublicKeySize)

	decoded, err := ParsePublicKey(encoded)
	require.NoError(t, err)
	assert.Equal(t, encoded, decoded.Bytes())
}

func TestParsePublicKeyRejectsBadLength(t *testing.T) {
	_, err := ParsePublicKey(make([]byte, 10))
	assert.ErrorIs(t, err, ErrInvalidPublicKey)
}

func TestPrivateKeyPublicMatchesOriginal(t *testing.T) {
	priv, pub, err := Keygen()
	require.NoError(t, err)
	assert.Equal(t, pub.Bytes(), priv.Public().Bytes())
}
