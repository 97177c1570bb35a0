package keyschedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c0d3-rev0lut10n/dawn-stdlib/params"
	"github.com/c0d3-rev0lut10n/dawn-stdlib/primitive"
)

func TestDeriveSaltsDeterministicAndDistinct(t *testing.T) {
	p := primitive.Default()
	dhSecret := []byte("dh-shared-secret-bytes-32byteslong")
	kemSecret := []byte("kem-shared-secret-bytes-32byteslo")

	a, err := DeriveSalts(p, dhSecret, kemSecret)
	require.NoError(t, err)
	b, err := DeriveSalts(p, dhSecret, kemSecret)
	require.NoError(t, err)

	assert.Equal(t, a.PFSSalt, b.PFSSalt)
	assert.Equal(t, a.IDSalt, b.IDSalt)
	assert.NotEqual(t, a.PFSSalt, a.IDSalt)
	assert.Len(t, a.PFSSalt, params.SymKeySize)
}

func TestPredictableMDCDeterministic(t *testing.T) {
	p := primitive.Default()
	seed, err := NewMDCSeed(p)
	require.NoError(t, err)

	id, err := p.IDGen()
	require.NoError(t, err)

	mdc1, err := PredictableMDC(p, seed, id)
	require.NoError(t, err)
	mdc2, err := PredictableMDC(p, seed, id)
	require.NoError(t, err)
	assert.Equal(t, mdc1, mdc2)

	nextID, err := p.NextID(id)
	require.NoError(t, err)
	mdc3, err := PredictableMDC(p, seed, nextID)
	require.NoError(t, err)
	assert.NotEqual(t, mdc1, mdc3)
}

func TestSecurityNumberOrderIndependent(t *testing.T) {
	p := primitive.Default()
	a := []byte("alice-kem-public-key-bytes")
	b := []byte("bob-kem-public-key-bytes--")

	assert.Equal(t, SecurityNumber(p, a, b), SecurityNumber(p, b, a))
}

func TestShortVerificationCodeStable(t *testing.T) {
	pub := []byte("some-public-key-material")
	id := []byte("user-identifier")

	a, err := ShortVerificationCode(pub, id)
	require.NoError(t, err)
	b, err := ShortVerificationCode(pub, id)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	for _, d := range a {
		assert.GreaterOrEqual(t, d, 0)
		assert.LessOrEqual(t, d, 9)
	}
}
