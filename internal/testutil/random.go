// Package testutil provides deterministic stand-ins for the random stream,
// distribution samplers and fake-value provider, so field behavior can be
// asserted value by value.
package testutil

import (
	"fmt"

	"github.com/roach88/headfake/internal/random"
)

// ScriptedRandom replays scripted draws, then falls back to a fixed-seed
// stream once a script is exhausted.
//
// Float64 pops from Floats; Intn and IntRange pop from Ints.
//
// Thread-safety: not safe for concurrent use, like the stream it replaces.
type ScriptedRandom struct {
	Floats []float64
	Ints   []int

	fallback *random.Stream
	calls    int
}

// NewScriptedRandom creates a random source replaying floats.
func NewScriptedRandom(floats ...float64) *ScriptedRandom {
	return &ScriptedRandom{Floats: floats, fallback: random.New(1)}
}

// WithInts scripts the integer draws.
func (r *ScriptedRandom) WithInts(ints ...int) *ScriptedRandom {
	r.Ints = ints
	return r
}

// Calls returns the number of draws made.
func (r *ScriptedRandom) Calls() int { return r.calls }

func (r *ScriptedRandom) Float64() float64 {
	r.calls++
	if len(r.Floats) == 0 {
		return r.fallback.Float64()
	}
	v := r.Floats[0]
	r.Floats = r.Floats[1:]
	return v
}

func (r *ScriptedRandom) Intn(n int) int {
	r.calls++
	if len(r.Ints) == 0 {
		return r.fallback.Intn(n)
	}
	v := r.Ints[0]
	r.Ints = r.Ints[1:]
	if v < 0 || v >= n {
		panic(fmt.Sprintf("scripted Intn value %d outside [0, %d)", v, n))
	}
	return v
}

// IntRange returns the next scripted integer as-is; it must lie within
// [min, max).
func (r *ScriptedRandom) IntRange(min, max int) (int, error) {
	if max <= min {
		return 0, fmt.Errorf("empty range for randrange (%d, %d)", min, max)
	}
	r.calls++
	if len(r.Ints) == 0 {
		return r.fallback.IntRange(min, max)
	}
	v := r.Ints[0]
	r.Ints = r.Ints[1:]
	if v < min || v >= max {
		return 0, fmt.Errorf("scripted value %d outside [%d, %d)", v, min, max)
	}
	return v, nil
}

func (r *ScriptedRandom) Read(p []byte) (int, error) {
	return r.fallback.Read(p)
}
