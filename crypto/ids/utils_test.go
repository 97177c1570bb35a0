package ids

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProducesHexOfExpectedLength(t *testing.T) {
	id, err := New()
	require.NoError(t, err)
	assert.Len(t, id, Size*2)
}

func TestNextIsDeterministicAndChanges(t *testing.T) {
	id, err := New()
	require.NoError(t, err)

	next1, err := Next(id)
	require.NoError(t, err)
	next2, err := Next(id)
	require.NoError(t, err)

	assert.Equal(t, next1, next2)
	assert.NotEqual(t, id, next1)
}

func TestNextRejectsInvalidLength(t *testing.T) {
	_, err := Next("abcd")
	assert.Error(t, err)
}

func TestPredictableMDCDeterministic(t *testing.T) {
	id, err := New()
	require.NoError(t, err)
	seed := []byte("a 32 byte mdc seed value-------")

	a, err := PredictableMDC(seed, id)
	require.NoError(t, err)
	b, err := PredictableMDC(seed, id)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	next, err := Next(id)
	require.NoError(t, err)
	c, err := PredictableMDC(seed, next)
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}

func TestSecurityNumberIsOrderIndependent(t *testing.T) {
	a := []byte("key-material-a")
	b := []byte("key-material-b")
	assert.Equal(t, SecurityNumber(a, b), SecurityNumber(b, a))
}
