package random

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStream_SameSeedSameSequence(t *testing.T) {
	a := New(123)
	b := New(123)

	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Float64(), b.Float64())
	}
}

func TestStream_Reseed(t *testing.T) {
	s := New(7)
	first := []float64{s.Float64(), s.Float64(), s.Float64()}

	s.Reseed(7)
	again := []float64{s.Float64(), s.Float64(), s.Float64()}

	assert.Equal(t, first, again)
	assert.Equal(t, int64(7), s.Seed())
}

func TestStream_IntRange(t *testing.T) {
	s := New(1)
	for i := 0; i < 1000; i++ {
		n, err := s.IntRange(5, 8)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 5)
		assert.Less(t, n, 8)
	}

	_, err := s.IntRange(3, 3)
	assert.Error(t, err)
}

func TestStream_Read(t *testing.T) {
	a, b := New(9), New(9)
	bufA, bufB := make([]byte, 16), make([]byte, 16)

	_, err := a.Read(bufA)
	require.NoError(t, err)
	_, err = b.Read(bufB)
	require.NoError(t, err)

	assert.Equal(t, bufA, bufB)
}

func TestDerive(t *testing.T) {
	assert.NotZero(t, Derive(0, 0))
	assert.Equal(t, Derive(42, 1), Derive(42, 1))
	assert.NotEqual(t, Derive(42, 1), Derive(42, 2))
}
