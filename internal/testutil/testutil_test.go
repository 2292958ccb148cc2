package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/headfake/internal/provider"
)

func TestScriptedRandom_ReplaysThenFallsBack(t *testing.T) {
	r := NewScriptedRandom(0.1, 0.9).WithInts(4)

	assert.Equal(t, 0.1, r.Float64())
	assert.Equal(t, 0.9, r.Float64())

	n, err := r.IntRange(0, 10)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	// Fallback draws are deterministic.
	a := r.Float64()
	b := NewScriptedRandom().Float64()
	assert.Equal(t, b, a)
	assert.Equal(t, 4, r.Calls())
}

func TestScriptedRandom_RejectsOutOfRange(t *testing.T) {
	r := NewScriptedRandom().WithInts(12)
	_, err := r.IntRange(0, 10)
	assert.Error(t, err)

	_, err = r.IntRange(5, 5)
	assert.Error(t, err)
}

func TestScriptedSamplers(t *testing.T) {
	s := NewScriptedSamplers(3, 4)

	a, err := s.NewSampler("norm", 10, 1, nil)
	require.NoError(t, err)
	b, err := s.NewSampler("norm", 20, 1, nil)
	require.NoError(t, err)

	assert.Equal(t, 3.0, a.Sample())
	assert.Equal(t, 4.0, b.Sample())
	assert.Equal(t, 20.0, b.Sample(), "exhausted script returns loc")
	assert.Len(t, s.Requests, 2)
}

func TestStubFaker_CyclesNames(t *testing.T) {
	f := NewStubFaker()
	assert.Equal(t, "John", f.FirstName(provider.Male))
	assert.Equal(t, "David", f.FirstName(provider.Male))
	assert.Equal(t, "John", f.FirstName(provider.Male))
	assert.Equal(t, "Mary", f.FirstName(provider.Female))

	tm, err := f.Time("%H:%M")
	require.NoError(t, err)
	assert.Equal(t, "09:30", tm)
}
