package primitive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKEMEncapDecapRoundTrip(t *testing.T) {
	p := Default()
	kp, err := p.KEMKeygen()
	require.NoError(t, err)

	ct, shared, err := p.KEMEncap(kp.Pub)
	require.NoError(t, err)

	got, err := p.KEMDecap(kp.Priv, ct)
	require.NoError(t, err)
	assert.Equal(t, shared, got)
}

func TestDHIsSymmetric(t *testing.T) {
	p := Default()
	a, err := p.DHKeygen()
	require.NoError(t, err)
	b, err := p.DHKeygen()
	require.NoError(t, err)

	s1, err := p.DH(a.Priv, b.Pub)
	require.NoError(t, err)
	s2, err := p.DH(b.Priv, a.Pub)
	require.NoError(t, err)
	assert.Equal(t, s1, s2)
}

func TestSigSignVerify(t *testing.T) {
	p := Default()
	kp, err := p.SigKeygen()
	require.NoError(t, err)

	sig, err := p.SigSign(kp.Priv, []byte("message"))
	require.NoError(t, err)
	assert.Equal(t, SigOK, p.SigVerify(kp.Pub, []byte("message"), sig))
	assert.Equal(t, SigBad, p.SigVerify(kp.Pub, []byte("tampered"), sig))
	assert.Equal(t, SigAbsent, p.SigVerify(kp.Pub, []byte("message"), nil))
}

func TestAEADSealOpen(t *testing.T) {
	p := Default()
	key := make([]byte, SymKeySize)
	nonce := make([]byte, NonceSize)

	ct, err := p.AEADSeal(key, nonce, []byte("ad"), []byte("plaintext"))
	require.NoError(t, err)
	pt, err := p.AEADOpen(key, nonce, []byte("ad"), ct)
	require.NoError(t, err)
	assert.Equal(t, []byte("plaintext"), pt)
}

func TestKDFDeterministic(t *testing.T) {
	p := Default()
	ikm := []byte("input-key-material")
	salt := []byte("salt")
	info := []byte("info")

	a, err := p.KDF(ikm, salt, info, 32)
	require.NoError(t, err)
	b, err := p.KDF(ikm, salt, info, 32)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Len(t, a, 32)
}

func TestIDGenAndNextID(t *testing.T) {
	p := Default()
	id, err := p.IDGen()
	require.NoError(t, err)
	assert.Len(t, id, 64)

	next, err := p.NextID(id)
	require.NoError(t, err)
	assert.NotEqual(t, id, next)
}

func TestPredictableMDCAndSecurityNumber(t *testing.T) {
	p := Default()
	id, err := p.IDGen()
	require.NoError(t, err)
	seed, err := p.Rand(SymKeySize)
	require.NoError(t, err)

	mdc1, err := p.PredictableMDC(seed, id)
	require.NoError(t, err)
	mdc2, err := p.PredictableMDC(seed, id)
	require.NoError(t, err)
	assert.Equal(t, mdc1, mdc2)

	a := []byte("party-a-key")
	b := []byte("party-b-key")
	assert.Equal(t, p.SecurityNumber(a, b), p.SecurityNumber(b, a))
}
